package links

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/wikiexport/internal/util/sets"
)

// Assignment records one heading id handed out by a Registry.
type Assignment struct {
	Page string
	Text string
	ID   string
}

// Registry hands out heading ids that are unique across a whole export.
// It is not safe for concurrent use.
type Registry struct {
	used     sets.Set[string]
	assigned []Assignment
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{used: sets.New[string]()}
}

// ForPage returns the goldmark id generator for the page called name. Every
// generated id starts with the slug of name.
func (r *Registry) ForPage(name string) parser.IDs {
	return &pageIDs{registry: r, page: name}
}

// Assigned lists every generated id in assignment order.
func (r *Registry) Assigned() []Assignment {
	return append([]Assignment(nil), r.assigned...)
}

// Reserve marks id as taken. It reports false when id was already used.
func (r *Registry) Reserve(id string) bool {
	return r.used.TryAdd(id)
}

func (r *Registry) next(base string) string {
	if base == "" {
		base = "section"
	}
	id := base
	for i := 1; !r.Reserve(id); i++ {
		id = base + "-" + strconv.Itoa(i)
	}
	return id
}

type pageIDs struct {
	registry *Registry
	page     string
}

func (p *pageIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	text := string(value)
	id := p.registry.next(Slug(p.page + "-" + text))
	p.registry.assigned = append(p.registry.assigned, Assignment{Page: p.page, Text: text, ID: id})
	return []byte(id)
}

// Put registers an id written explicitly in the markdown.
func (p *pageIDs) Put(value []byte) {
	p.registry.Reserve(string(value))
}

var foldASCII = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug turns heading text into an ASCII id: accents are folded, letters are
// lowercased, leading non-letters dropped, runs of other characters collapse
// to one "-", and "-", "_" and "." survive except at the end.
func Slug(text string) string {
	folded, _, err := transform.String(foldASCII, text)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	hasLetter, prevDash := false, false
	for _, c := range folded {
		switch {
		case unicode.IsLetter(c):
			if c >= unicode.MaxASCII {
				continue
			}
			b.WriteRune(unicode.ToLower(c))
			hasLetter, prevDash = true, false
		case !hasLetter:
		case c == '_' || c == '-' || c == '.':
			s := b.String()
			if prevDash {
				b.Reset()
				b.WriteString(s[:len(s)-1])
			}
			b.WriteRune(c)
			prevDash = false
		case c >= '0' && c <= '9':
			b.WriteRune(c)
			prevDash = false
		case !prevDash:
			b.WriteByte('-')
			prevDash = true
		}
	}
	return strings.TrimRight(b.String(), "-_.")
}
