// Package corpus assembles the ordered page sequence of a wiki export.
//
// A wiki directory lists its pages in an optional `.order` manifest, one page
// base name per line. A page `Name.md` owns the sibling directory `Name/`, whose
// pages follow it one level deeper. Three policies select the pages:
//
//   - manifest-only: exactly the manifest entries, descending only into
//     directories a manifest entry owns
//   - directory: every `*.md` page, manifest entries first, then unlisted pages
//     and unowned directories in ordinal order
//   - single-file: one page (or one manifest entry plus its descendants)
//
// Scanning never reads page content; call Page.LoadContent for that.
package corpus
