package render

import (
	"regexp"
	"strings"
)

const wikiTOCMarker = "[[_TOC_]]"

// imageScaling matches the wiki's image size suffix: ![alt](file.png =600x400),
// =600x or =x400.
var imageScaling = regexp.MustCompile(`\(([^()\s]+) =(\d*)x(\d*)\)`)

type imageSize struct {
	width, height string
}

// preprocess rewrites wiki-specific markdown that goldmark does not understand.
// Image size suffixes are removed and returned per destination, in order.
func preprocess(md string, globalTOC bool) (string, map[string][]imageSize) {
	tocReplacement := "[TOC]"
	if globalTOC {
		tocReplacement = ""
	}
	md = strings.ReplaceAll(md, wikiTOCMarker, tocReplacement)

	sizes := map[string][]imageSize{}
	md = imageScaling.ReplaceAllStringFunc(md, func(m string) string {
		sub := imageScaling.FindStringSubmatch(m)
		if sub[2] == "" && sub[3] == "" {
			return m
		}
		sizes[sub[1]] = append(sizes[sub[1]], imageSize{width: sub[2], height: sub[3]})
		return "(" + sub[1] + ")"
	})
	return md, sizes
}
