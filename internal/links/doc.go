// Package links rewrites the links and images of a wiki page so they work
// inside the single merged export document.
//
// References to other pages become fragment links to the page anchors of the
// merged document (see MergedAnchor and PageAnchor). References to any other
// local file are inlined as base64 data URIs. Heading ids are handed out by a
// Registry shared by every page of one export, which keeps them unique.
package links
