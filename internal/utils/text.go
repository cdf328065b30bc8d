package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText trims surrounding whitespace and converts s to Unicode NFC so
// that visually identical input is stored identically.
//
// Example:
//
//	utils.NormalizeText("  café ") // "café" (single code point é)
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// NormalizePtr applies NormalizeText to *p, keeping nil as nil.
func NormalizePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := NormalizeText(*p)
	return &v
}
