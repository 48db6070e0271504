package logfields

import "log/slog"

// Canonical log field names shared by every package.
const (
	KeyExportID   = "export_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyName       = "name"
	KeyLevel      = "level"
	KeyIndent     = "indent"
	KeySection    = "section"
	KeyURL        = "url"
	KeyAnchor     = "anchor"
	KeyKind       = "kind"
	KeyPolicy     = "policy"
	KeyPattern    = "pattern"
	KeyCount      = "count"
	KeyEvent      = "event"
	KeyError      = "error"
)

func ExportID(id string) slog.Attr    { return slog.String(KeyExportID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Name(n string) slog.Attr         { return slog.String(KeyName, n) }
func Level(l int) slog.Attr           { return slog.Int(KeyLevel, l) }
func Section(s string) slog.Attr      { return slog.String(KeySection, s) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Anchor(a string) slog.Attr       { return slog.String(KeyAnchor, a) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func Policy(p string) slog.Attr       { return slog.String(KeyPolicy, p) }
func Pattern(p string) slog.Attr      { return slog.String(KeyPattern, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Event(e string) slog.Attr        { return slog.String(KeyEvent, e) }

// Indent is the nesting depth of a message, used to mirror the page tree in logs.
func Indent(n int) slog.Attr { return slog.Int(KeyIndent, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
