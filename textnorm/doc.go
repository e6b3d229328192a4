// Package textnorm cleans raw text before it reaches the matcher or the
// variant generator.
//
// Input read from templates and source files may carry a byte order mark,
// be encoded as UTF-16, contain invalid UTF-8 or use Windows or classic Mac
// line endings. Clean removes all of that:
//
//	text := textnorm.Clean(raw)   // valid UTF-8, no BOM, "\n" line endings
//	lines := textnorm.Lines(raw)  // same, split into lines
//
// Invalid byte sequences become U+FFFD rather than errors, so Clean never
// fails.
package textnorm
