package js_ast

import "unicode"

func IsIdentifier(text string) bool {
	if len(text) == 0 {
		return false
	}
	for i, codePoint := range text {
		if i == 0 {
			if !IsIdentifierStart(codePoint) {
				return false
			}
		} else if !IsIdentifierContinue(codePoint) {
			return false
		}
	}
	return true
}

func IsIdentifierStart(codePoint rune) bool {
	switch {
	case codePoint == '_', codePoint == '$',
		codePoint >= 'a' && codePoint <= 'z',
		codePoint >= 'A' && codePoint <= 'Z':
		return true
	}

	// All ASCII identifier start code points are listed above
	if codePoint < 0x7F {
		return false
	}

	return unicode.In(codePoint, unicode.L, unicode.Nl, unicode.Other_ID_Start)
}

func IsIdentifierContinue(codePoint rune) bool {
	switch {
	case codePoint == '_', codePoint == '$',
		codePoint >= '0' && codePoint <= '9',
		codePoint >= 'a' && codePoint <= 'z',
		codePoint >= 'A' && codePoint <= 'Z':
		return true
	}

	// All ASCII identifier continue code points are listed above
	if codePoint < 0x7F {
		return false
	}

	// ZWNJ and ZWJ are allowed in identifiers
	if codePoint == 0x200C || codePoint == 0x200D {
		return true
	}

	return unicode.In(codePoint, unicode.L, unicode.Nl, unicode.Other_ID_Start,
		unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}

func IsWhitespace(codePoint rune) bool {
	switch codePoint {
	case
		'\u0009', // character tabulation
		'\u000B', // line tabulation
		'\u000C', // form feed
		'\u0020', // space
		'\u00A0', // no-break space
		'\uFEFF': // zero width no-break space
		return true
	}
	return unicode.Is(unicode.Zs, codePoint)
}

var keywords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true,
}

// Reserved words can't be used as variable names but they can be used as
// property names with the "a.b" syntax.
func IsReservedWord(text string) bool {
	return keywords[text]
}
