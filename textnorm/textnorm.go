package textnorm

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Clean decodes raw bytes into normalized UTF-8 text.
//
// A UTF-8 BOM is dropped; a UTF-16 BOM selects UTF-16 decoding of the rest
// of the input. Without a BOM the input is read as UTF-8 and invalid
// sequences are replaced with U+FFFD. Line endings are normalized to "\n".
func Clean(raw []byte) string {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		out = []byte(strings.ToValidUTF8(string(raw), string(utf8.RuneError)))
	}
	return NormalizeNewlines(string(out))
}

// CleanString is Clean for text already held in a string.
func CleanString(s string) string {
	return Clean([]byte(s))
}

// NormalizeNewlines converts "\r\n" and lone "\r" to "\n".
func NormalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Lines cleans raw and splits it into lines. A trailing newline does not
// produce a final empty line. Empty input gives no lines.
func Lines(raw []byte) []string {
	text := Clean(raw)
	if text == "" {
		return []string{}
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// IsASCII reports whether s contains only 7-bit ASCII.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// HasBOM reports whether raw starts with a UTF-8 or UTF-16 byte order mark.
func HasBOM(raw []byte) bool {
	switch {
	case len(raw) >= 3 && raw[0] == 0xEF && raw[1] == 0xBB && raw[2] == 0xBF:
		return true
	case len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF:
		return true
	case len(raw) >= 2 && raw[0] == 0xFF && raw[1] == 0xFE:
		return true
	default:
		return false
	}
}
