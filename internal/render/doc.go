// Package render turns the pages of an export into HTML with goldmark and
// assembles them into one document.
//
// Each page is parsed with a per-page context: heading levels are shifted by the
// page's nesting level, heading ids come from the export-wide links.Registry,
// links and images are rewritten by the links.Resolver, and `[TOC]` paragraphs
// become a navigation list of the page's headings. The global TOC page is
// rendered last so its navigation can point at the ids the real pages received.
package render
