package js_lexer

import (
	"testing"

	"github.com/esdart/esdart/internal/logger"
	"github.com/esdart/esdart/internal/test"
)

func lexToken(t *testing.T, contents string) T {
	t.Helper()
	log := logger.NewDeferLog()
	lexer := NewLexer(log, test.SourceForTest(contents))
	return lexer.Token
}

func expectLexerError(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		func() {
			defer func() {
				r := recover()
				if _, isLexerPanic := r.(LexerPanic); r != nil && !isLexerPanic {
					panic(r)
				}
			}()
			lexer := NewLexer(log, test.SourceForTest(contents))
			for lexer.Token != TEndOfFile {
				lexer.Next()
			}
		}()
		msgs := log.Done()
		text := ""
		for _, msg := range msgs {
			text += msg.String(logger.StderrOptions{}, logger.TerminalInfo{})
		}
		test.AssertEqual(t, text, expected)
	})
}

func TestComment(t *testing.T) {
	expectLexerError(t, "/*", "<stdin>: error: Expected \"*/\" to terminate multi-line comment\n")
	expectLexerError(t, "/*/", "<stdin>: error: Expected \"*/\" to terminate multi-line comment\n")
	expectLexerError(t, "/**/", "")
	expectLexerError(t, "//", "")
	expectLexerError(t, "a // b\nc", "")
}

func TestHasNewlineBefore(t *testing.T) {
	log := logger.NewDeferLog()
	lexer := NewLexer(log, test.SourceForTest("a /*\n*/ b c\nd"))
	test.AssertEqual(t, lexer.HasNewlineBefore, true)
	lexer.Next()
	test.AssertEqual(t, lexer.HasNewlineBefore, true)
	lexer.Next()
	test.AssertEqual(t, lexer.HasNewlineBefore, false)
	lexer.Next()
	test.AssertEqual(t, lexer.HasNewlineBefore, true)
	test.AssertEqual(t, lexer.Identifier, "d")
}

func expectNumber(t *testing.T, contents string, expected float64) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		lexer := NewLexer(log, test.SourceForTest(contents))
		test.AssertEqual(t, lexer.Token, TNumericLiteral)
		test.AssertEqual(t, lexer.Number, expected)
		lexer.Next()
		test.AssertEqual(t, lexer.Token, TEndOfFile)
	})
}

func TestNumericLiteral(t *testing.T) {
	expectNumber(t, "0", 0.0)
	expectNumber(t, "123", 123.0)
	expectNumber(t, "1.5", 1.5)
	expectNumber(t, ".5", 0.5)
	expectNumber(t, "1.", 1.0)
	expectNumber(t, "1e3", 1000.0)
	expectNumber(t, "1.5E-1", 0.15)
	expectNumber(t, "0x10", 16.0)
	expectNumber(t, "0XfF", 255.0)
	expectNumber(t, "0o17", 15.0)
	expectNumber(t, "0b101", 5.0)
	expectNumber(t, "1e21", 1e21)

	expectLexerError(t, "0x", "<stdin>: error: Unexpected end of file\n")
	expectLexerError(t, "0b12", "<stdin>: error: Unexpected end of file\n")
	expectLexerError(t, "1e", "<stdin>: error: Unexpected end of file\n")
	expectLexerError(t, "1a", "<stdin>: error: Syntax error \"a\"\n")
}

func expectString(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		lexer := NewLexer(log, test.SourceForTest(contents))
		test.AssertEqual(t, lexer.Token, TStringLiteral)
		test.AssertEqual(t, lexer.StringLiteral, expected)
	})
}

func TestStringLiteral(t *testing.T) {
	expectString(t, "''", "")
	expectString(t, "\"\"", "")
	expectString(t, "'abc'", "abc")
	expectString(t, "\"a'b\"", "a'b")
	expectString(t, "'a\\'b'", "a'b")
	expectString(t, "'\\n\\t\\r\\b\\f\\v\\0'", "\n\t\r\b\f\v\x00")
	expectString(t, "'\\x41'", "A")
	expectString(t, "'\\u0041'", "A")
	expectString(t, "'\\u{1F600}'", string(rune(0x1F600)))
	expectString(t, "'a\\\nb'", "ab")
	expectString(t, "'a\\\r\nb'", "ab")
	expectString(t, "'\\q'", "q")

	expectLexerError(t, "'abc", "<stdin>: error: Unexpected end of file\n")
	expectLexerError(t, "'abc\n'", "<stdin>: error: Unterminated string literal\n")
	expectLexerError(t, "'\\x4'", "<stdin>: error: Invalid escape sequence\n")
	expectLexerError(t, "'\\u{110000}'", "<stdin>: error: Invalid escape sequence\n")
}

func TestTokens(t *testing.T) {
	expected := []struct {
		contents string
		token    T
	}{
		{"", TEndOfFile},
		{"\x00", TSyntaxError},
		{"@", TSyntaxError},

		{"&", TAmpersand},
		{"&&", TAmpersandAmpersand},
		{"&&=", TAmpersandAmpersandEquals},
		{"&=", TAmpersandEquals},
		{"*", TAsterisk},
		{"**", TAsteriskAsterisk},
		{"**=", TAsteriskAsteriskEquals},
		{"*=", TAsteriskEquals},
		{"|", TBar},
		{"||", TBarBar},
		{"||=", TBarBarEquals},
		{"|=", TBarEquals},
		{"^", TCaret},
		{"^=", TCaretEquals},
		{"}", TCloseBrace},
		{"]", TCloseBracket},
		{")", TCloseParen},
		{":", TColon},
		{",", TComma},
		{".", TDot},
		{"=", TEquals},
		{"==", TEqualsEquals},
		{"===", TEqualsEqualsEquals},
		{"=>", TEqualsGreaterThan},
		{"!", TExclamation},
		{"!=", TExclamationEquals},
		{"!==", TExclamationEqualsEquals},
		{">", TGreaterThan},
		{">=", TGreaterThanEquals},
		{">>", TGreaterThanGreaterThan},
		{">>=", TGreaterThanGreaterThanEquals},
		{">>>", TGreaterThanGreaterThanGreaterThan},
		{">>>=", TGreaterThanGreaterThanGreaterThanEquals},
		{"<", TLessThan},
		{"<=", TLessThanEquals},
		{"<<", TLessThanLessThan},
		{"<<=", TLessThanLessThanEquals},
		{"-", TMinus},
		{"-=", TMinusEquals},
		{"--", TMinusMinus},
		{"{", TOpenBrace},
		{"[", TOpenBracket},
		{"(", TOpenParen},
		{"%", TPercent},
		{"%=", TPercentEquals},
		{"+", TPlus},
		{"+=", TPlusEquals},
		{"++", TPlusPlus},
		{"?", TQuestion},
		{"??", TQuestionQuestion},
		{"??=", TQuestionQuestionEquals},
		{";", TSemicolon},
		{"/", TSlash},
		{"/=", TSlashEquals},
		{"~", TTilde},

		{"super", TSuper},
		{"class", TClass},
		{"extends", TExtends},
		{"this", TThis},
		{"static", TIdentifier},
		{"get", TIdentifier},
		{"$jscomp", TIdentifier},
		{"_x1", TIdentifier},
	}

	for _, it := range expected {
		contents := it.contents
		token := it.token
		t.Run(contents, func(t *testing.T) {
			test.AssertEqual(t, lexToken(t, contents), token)
		})
	}
}

func TestUnicodeWhitespace(t *testing.T) {
	test.AssertEqual(t, lexToken(t, "\u2003x"), TIdentifier)
	test.AssertEqual(t, lexToken(t, "\u00A0\uFEFFx"), TIdentifier)

	log := logger.NewDeferLog()
	lexer := NewLexer(log, test.SourceForTest("a\u3000b"))
	test.AssertEqual(t, lexer.Raw(), "a")
	lexer.Next()
	test.AssertEqual(t, lexer.Raw(), "b")
	test.AssertEqual(t, lexer.HasNewlineBefore, false)
}

func TestIsIdentifierOrKeyword(t *testing.T) {
	log := logger.NewDeferLog()
	lexer := NewLexer(log, test.SourceForTest("super x 1"))
	test.AssertEqual(t, lexer.IsIdentifierOrKeyword(), true)
	lexer.Next()
	test.AssertEqual(t, lexer.IsIdentifierOrKeyword(), true)
	test.AssertEqual(t, lexer.IsContextualKeyword("x"), true)
	lexer.Next()
	test.AssertEqual(t, lexer.IsIdentifierOrKeyword(), false)
}
