package js_lexer

// The lexer converts a source file to a stream of tokens. It is not run to
// completion before the parser starts. Instead, the parser calls "Next()"
// repeatedly and can save and restore the lexer state (it's a plain value) to
// look ahead, which is how arrow functions are detected.
//
// Only the class-based subset of JavaScript that the rest of the compiler
// understands is supported: no template literals, regular expressions, or
// JSX.

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/esdart/esdart/internal/js_ast"
	"github.com/esdart/esdart/internal/logger"
)

type T uint8

// If you add a new token, remember to add it to "tokenToString" too
const (
	TEndOfFile T = iota
	TSyntaxError

	// Literals
	TNumericLiteral // Contents are in lexer.Number (float64)
	TStringLiteral  // Contents are in lexer.StringLiteral (string)

	// Punctuation
	TAmpersand
	TAmpersandAmpersand
	TAsterisk
	TAsteriskAsterisk
	TBar
	TBarBar
	TCaret
	TCloseBrace
	TCloseBracket
	TCloseParen
	TColon
	TComma
	TDot
	TEqualsEquals
	TEqualsEqualsEquals
	TEqualsGreaterThan
	TExclamation
	TExclamationEquals
	TExclamationEqualsEquals
	TGreaterThan
	TGreaterThanEquals
	TGreaterThanGreaterThan
	TGreaterThanGreaterThanGreaterThan
	TLessThan
	TLessThanEquals
	TLessThanLessThan
	TMinus
	TMinusMinus
	TOpenBrace
	TOpenBracket
	TOpenParen
	TPercent
	TPlus
	TPlusPlus
	TQuestion
	TQuestionQuestion
	TSemicolon
	TSlash
	TTilde

	// Assignments
	TAmpersandAmpersandEquals
	TAmpersandEquals
	TAsteriskAsteriskEquals
	TAsteriskEquals
	TBarBarEquals
	TBarEquals
	TCaretEquals
	TEquals
	TGreaterThanGreaterThanEquals
	TGreaterThanGreaterThanGreaterThanEquals
	TLessThanLessThanEquals
	TMinusEquals
	TPercentEquals
	TPlusEquals
	TQuestionQuestionEquals
	TSlashEquals

	// Identifiers
	TIdentifier // Contents are in lexer.Identifier (string)

	// Reserved words
	TBreak
	TCase
	TCatch
	TClass
	TConst
	TContinue
	TDebugger
	TDefault
	TDelete
	TDo
	TElse
	TEnum
	TExport
	TExtends
	TFalse
	TFinally
	TFor
	TFunction
	TIf
	TImport
	TIn
	TInstanceof
	TNew
	TNull
	TReturn
	TSuper
	TSwitch
	TThis
	TThrow
	TTrue
	TTry
	TTypeof
	TVar
	TVoid
	TWhile
	TWith
)

var Keywords = map[string]T{
	"break":      TBreak,
	"case":       TCase,
	"catch":      TCatch,
	"class":      TClass,
	"const":      TConst,
	"continue":   TContinue,
	"debugger":   TDebugger,
	"default":    TDefault,
	"delete":     TDelete,
	"do":         TDo,
	"else":       TElse,
	"enum":       TEnum,
	"export":     TExport,
	"extends":    TExtends,
	"false":      TFalse,
	"finally":    TFinally,
	"for":        TFor,
	"function":   TFunction,
	"if":         TIf,
	"import":     TImport,
	"in":         TIn,
	"instanceof": TInstanceof,
	"new":        TNew,
	"null":       TNull,
	"return":     TReturn,
	"super":      TSuper,
	"switch":     TSwitch,
	"this":       TThis,
	"throw":      TThrow,
	"true":       TTrue,
	"try":        TTry,
	"typeof":     TTypeof,
	"var":        TVar,
	"void":       TVoid,
	"while":      TWhile,
	"with":       TWith,
}

var tokenToString = map[T]string{
	TEndOfFile:     "end of file",
	TSyntaxError:   "syntax error",
	TNumericLiteral: "number",
	TStringLiteral: "string",

	TAmpersand:                         "\"&\"",
	TAmpersandAmpersand:                "\"&&\"",
	TAsterisk:                          "\"*\"",
	TAsteriskAsterisk:                  "\"**\"",
	TBar:                               "\"|\"",
	TBarBar:                            "\"||\"",
	TCaret:                             "\"^\"",
	TCloseBrace:                        "\"}\"",
	TCloseBracket:                      "\"]\"",
	TCloseParen:                        "\")\"",
	TColon:                             "\":\"",
	TComma:                             "\",\"",
	TDot:                               "\".\"",
	TEqualsEquals:                      "\"==\"",
	TEqualsEqualsEquals:                "\"===\"",
	TEqualsGreaterThan:                 "\"=>\"",
	TExclamation:                       "\"!\"",
	TExclamationEquals:                 "\"!=\"",
	TExclamationEqualsEquals:           "\"!==\"",
	TGreaterThan:                       "\">\"",
	TGreaterThanEquals:                 "\">=\"",
	TGreaterThanGreaterThan:            "\">>\"",
	TGreaterThanGreaterThanGreaterThan: "\">>>\"",
	TLessThan:                          "\"<\"",
	TLessThanEquals:                    "\"<=\"",
	TLessThanLessThan:                  "\"<<\"",
	TMinus:                             "\"-\"",
	TMinusMinus:                        "\"--\"",
	TOpenBrace:                         "\"{\"",
	TOpenBracket:                       "\"[\"",
	TOpenParen:                         "\"(\"",
	TPercent:                           "\"%\"",
	TPlus:                              "\"+\"",
	TPlusPlus:                          "\"++\"",
	TQuestion:                          "\"?\"",
	TQuestionQuestion:                  "\"??\"",
	TSemicolon:                         "\";\"",
	TSlash:                             "\"/\"",
	TTilde:                             "\"~\"",

	TAmpersandAmpersandEquals:                "\"&&=\"",
	TAmpersandEquals:                         "\"&=\"",
	TAsteriskAsteriskEquals:                  "\"**=\"",
	TAsteriskEquals:                          "\"*=\"",
	TBarBarEquals:                            "\"||=\"",
	TBarEquals:                               "\"|=\"",
	TCaretEquals:                             "\"^=\"",
	TEquals:                                  "\"=\"",
	TGreaterThanGreaterThanEquals:            "\">>=\"",
	TGreaterThanGreaterThanGreaterThanEquals: "\">>>=\"",
	TLessThanLessThanEquals:                  "\"<<=\"",
	TMinusEquals:                             "\"-=\"",
	TPercentEquals:                           "\"%=\"",
	TPlusEquals:                              "\"+=\"",
	TQuestionQuestionEquals:                  "\"??=\"",
	TSlashEquals:                             "\"/=\"",

	TIdentifier: "identifier",
}

func init() {
	for text, token := range Keywords {
		tokenToString[token] = fmt.Sprintf("%q", text)
	}
}

type Lexer struct {
	log              logger.Log
	source           logger.Source
	current          int
	start            int
	end              int
	codePoint        rune
	Token            T
	HasNewlineBefore bool
	Identifier       string
	StringLiteral    string
	Number           float64
}

type LexerPanic struct{}

func NewLexer(log logger.Log, source logger.Source) Lexer {
	lexer := Lexer{
		log:    log,
		source: source,
	}
	lexer.step()
	lexer.Next()
	return lexer
}

func (lexer *Lexer) Loc() logger.Loc {
	return logger.Loc{Start: int32(lexer.start)}
}

func (lexer *Lexer) Range() logger.Range {
	return logger.Range{Loc: logger.Loc{Start: int32(lexer.start)}, Len: int32(lexer.end - lexer.start)}
}

func (lexer *Lexer) Raw() string {
	return lexer.source.TextForRange(lexer.Range())
}

// Reserved words are allowed as property names
func (lexer *Lexer) IsIdentifierOrKeyword() bool {
	return lexer.Token >= TIdentifier
}

func (lexer *Lexer) IsContextualKeyword(text string) bool {
	return lexer.Token == TIdentifier && lexer.Raw() == text
}

func (lexer *Lexer) SyntaxError() {
	loc := logger.Loc{Start: int32(lexer.end)}
	message := "Unexpected end of file"
	if lexer.end < len(lexer.source.Contents) {
		c, _ := utf8.DecodeRuneInString(lexer.source.Contents[lexer.end:])
		if c < 0x20 {
			message = fmt.Sprintf("Syntax error \"\\x%02X\"", c)
		} else if c >= 0x80 {
			message = fmt.Sprintf("Syntax error \"\\u{%x}\"", c)
		} else {
			message = fmt.Sprintf("Syntax error \"%c\"", c)
		}
	}
	lexer.log.AddError(&lexer.source, loc, message)
	panic(LexerPanic{})
}

func (lexer *Lexer) ExpectedString(text string) {
	found := fmt.Sprintf("%q", lexer.Raw())
	if lexer.start == len(lexer.source.Contents) {
		found = "end of file"
	}
	lexer.log.AddRangeError(&lexer.source, lexer.Range(), fmt.Sprintf("Expected %s but found %s", text, found))
	panic(LexerPanic{})
}

func (lexer *Lexer) Expected(token T) {
	if text, ok := tokenToString[token]; ok {
		lexer.ExpectedString(text)
	} else {
		lexer.Unexpected()
	}
}

func (lexer *Lexer) Unexpected() {
	found := fmt.Sprintf("%q", lexer.Raw())
	if lexer.start == len(lexer.source.Contents) {
		found = "end of file"
	}
	lexer.log.AddRangeError(&lexer.source, lexer.Range(), fmt.Sprintf("Unexpected %s", found))
	panic(LexerPanic{})
}

func (lexer *Lexer) Expect(token T) {
	if lexer.Token != token {
		lexer.Expected(token)
	}
	lexer.Next()
}

func (lexer *Lexer) ExpectOrInsertSemicolon() {
	if lexer.Token == TSemicolon || (!lexer.HasNewlineBefore &&
		lexer.Token != TCloseBrace && lexer.Token != TEndOfFile) {
		lexer.Expect(TSemicolon)
	}
}

func isLineTerminator(codePoint rune) bool {
	return codePoint == '\r' || codePoint == '\n' || codePoint == 0x2028 || codePoint == 0x2029
}

func (lexer *Lexer) Next() {
	lexer.HasNewlineBefore = lexer.end == 0

	for {
		lexer.start = lexer.end
		lexer.Token = 0

		switch lexer.codePoint {
		case -1: // This indicates the end of the file
			lexer.Token = TEndOfFile

		case '\r', '\n', 0x2028, 0x2029:
			lexer.step()
			lexer.HasNewlineBefore = true
			continue

		case '\t', '\f', '\v', ' ', 0xA0, 0xFEFF:
			lexer.step()
			continue

		case '(':
			lexer.step()
			lexer.Token = TOpenParen

		case ')':
			lexer.step()
			lexer.Token = TCloseParen

		case '[':
			lexer.step()
			lexer.Token = TOpenBracket

		case ']':
			lexer.step()
			lexer.Token = TCloseBracket

		case '{':
			lexer.step()
			lexer.Token = TOpenBrace

		case '}':
			lexer.step()
			lexer.Token = TCloseBrace

		case ',':
			lexer.step()
			lexer.Token = TComma

		case ':':
			lexer.step()
			lexer.Token = TColon

		case ';':
			lexer.step()
			lexer.Token = TSemicolon

		case '~':
			lexer.step()
			lexer.Token = TTilde

		case '?':
			// '?' or '??' or '??='
			lexer.step()
			lexer.Token = TQuestion
			if lexer.codePoint == '?' {
				lexer.step()
				lexer.Token = TQuestionQuestion
				if lexer.codePoint == '=' {
					lexer.step()
					lexer.Token = TQuestionQuestionEquals
				}
			}

		case '%':
			// '%' or '%='
			lexer.step()
			lexer.Token = TPercent
			if lexer.codePoint == '=' {
				lexer.step()
				lexer.Token = TPercentEquals
			}

		case '&':
			// '&' or '&=' or '&&' or '&&='
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				lexer.Token = TAmpersandEquals
			case '&':
				lexer.step()
				lexer.Token = TAmpersandAmpersand
				if lexer.codePoint == '=' {
					lexer.step()
					lexer.Token = TAmpersandAmpersandEquals
				}
			default:
				lexer.Token = TAmpersand
			}

		case '|':
			// '|' or '|=' or '||' or '||='
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				lexer.Token = TBarEquals
			case '|':
				lexer.step()
				lexer.Token = TBarBar
				if lexer.codePoint == '=' {
					lexer.step()
					lexer.Token = TBarBarEquals
				}
			default:
				lexer.Token = TBar
			}

		case '^':
			// '^' or '^='
			lexer.step()
			lexer.Token = TCaret
			if lexer.codePoint == '=' {
				lexer.step()
				lexer.Token = TCaretEquals
			}

		case '+':
			// '+' or '+=' or '++'
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				lexer.Token = TPlusEquals
			case '+':
				lexer.step()
				lexer.Token = TPlusPlus
			default:
				lexer.Token = TPlus
			}

		case '-':
			// '-' or '-=' or '--'
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				lexer.Token = TMinusEquals
			case '-':
				lexer.step()
				lexer.Token = TMinusMinus
			default:
				lexer.Token = TMinus
			}

		case '*':
			// '*' or '*=' or '**' or '**='
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				lexer.Token = TAsteriskEquals
			case '*':
				lexer.step()
				lexer.Token = TAsteriskAsterisk
				if lexer.codePoint == '=' {
					lexer.step()
					lexer.Token = TAsteriskAsteriskEquals
				}
			default:
				lexer.Token = TAsterisk
			}

		case '/':
			// '/' or '/=' or '//' or '/* ... */'
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				lexer.Token = TSlashEquals

			case '/':
				for {
					lexer.step()
					if isLineTerminator(lexer.codePoint) || lexer.codePoint == -1 {
						break
					}
				}
				continue

			case '*':
				lexer.step()
			multiLineComment:
				for {
					switch lexer.codePoint {
					case '*':
						lexer.step()
						if lexer.codePoint == '/' {
							lexer.step()
							break multiLineComment
						}

					case '\r', '\n', 0x2028, 0x2029:
						lexer.step()
						lexer.HasNewlineBefore = true

					case -1: // This indicates the end of the file
						lexer.start = lexer.end
						lexer.log.AddError(&lexer.source, lexer.Loc(), "Expected \"*/\" to terminate multi-line comment")
						panic(LexerPanic{})

					default:
						lexer.step()
					}
				}
				continue

			default:
				lexer.Token = TSlash
			}

		case '=':
			// '=' or '=>' or '==' or '==='
			lexer.step()
			switch lexer.codePoint {
			case '>':
				lexer.step()
				lexer.Token = TEqualsGreaterThan
			case '=':
				lexer.step()
				lexer.Token = TEqualsEquals
				if lexer.codePoint == '=' {
					lexer.step()
					lexer.Token = TEqualsEqualsEquals
				}
			default:
				lexer.Token = TEquals
			}

		case '<':
			// '<' or '<<' or '<=' or '<<='
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				lexer.Token = TLessThanEquals
			case '<':
				lexer.step()
				lexer.Token = TLessThanLessThan
				if lexer.codePoint == '=' {
					lexer.step()
					lexer.Token = TLessThanLessThanEquals
				}
			default:
				lexer.Token = TLessThan
			}

		case '>':
			// '>' or '>>' or '>>>' or '>=' or '>>=' or '>>>='
			lexer.step()
			switch lexer.codePoint {
			case '=':
				lexer.step()
				lexer.Token = TGreaterThanEquals
			case '>':
				lexer.step()
				switch lexer.codePoint {
				case '=':
					lexer.step()
					lexer.Token = TGreaterThanGreaterThanEquals
				case '>':
					lexer.step()
					lexer.Token = TGreaterThanGreaterThanGreaterThan
					if lexer.codePoint == '=' {
						lexer.step()
						lexer.Token = TGreaterThanGreaterThanGreaterThanEquals
					}
				default:
					lexer.Token = TGreaterThanGreaterThan
				}
			default:
				lexer.Token = TGreaterThan
			}

		case '!':
			// '!' or '!=' or '!=='
			lexer.step()
			lexer.Token = TExclamation
			if lexer.codePoint == '=' {
				lexer.step()
				lexer.Token = TExclamationEquals
				if lexer.codePoint == '=' {
					lexer.step()
					lexer.Token = TExclamationEqualsEquals
				}
			}

		case '\'', '"':
			lexer.parseStringLiteral()

		case '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			lexer.parseNumericLiteralOrDot()

		default:
			// Other "Zs" spaces such as U+2003
			if js_ast.IsWhitespace(lexer.codePoint) {
				lexer.step()
				continue
			}

			if js_ast.IsIdentifierStart(lexer.codePoint) {
				lexer.step()
				for js_ast.IsIdentifierContinue(lexer.codePoint) {
					lexer.step()
				}
				lexer.Identifier = lexer.Raw()
				lexer.Token = Keywords[lexer.Identifier]
				if lexer.Token == 0 {
					lexer.Token = TIdentifier
				}
				break
			}

			if lexer.codePoint == '\\' {
				lexer.log.AddError(&lexer.source, lexer.Loc(), "Escape sequences in identifiers are not supported")
				panic(LexerPanic{})
			}

			lexer.end = lexer.current
			lexer.Token = TSyntaxError
		}

		return
	}
}

func (lexer *Lexer) parseStringLiteral() {
	quote := lexer.codePoint
	hasEscape := false
	lexer.Token = TStringLiteral
	lexer.step()

stringLiteral:
	for {
		switch lexer.codePoint {
		case '\\':
			hasEscape = true
			lexer.step()
			if lexer.codePoint == -1 {
				lexer.SyntaxError()
			}

			// Windows-style line continuation
			if lexer.codePoint == '\r' && lexer.current < len(lexer.source.Contents) && lexer.source.Contents[lexer.current] == '\n' {
				lexer.step()
			}

		case -1: // This indicates the end of the file
			lexer.SyntaxError()

		case '\r', '\n':
			lexer.log.AddError(&lexer.source, logger.Loc{Start: int32(lexer.end)}, "Unterminated string literal")
			panic(LexerPanic{})

		case quote:
			lexer.step()
			break stringLiteral
		}
		lexer.step()
	}

	text := lexer.source.Contents[lexer.start+1 : lexer.end-1]
	if hasEscape {
		lexer.StringLiteral = lexer.decodeEscapeSequences(lexer.start+1, text)
	} else {
		lexer.StringLiteral = text
	}
}

func (lexer *Lexer) decodeEscapeSequences(start int, text string) string {
	sb := strings.Builder{}
	i := 0

	for i < len(text) {
		c, width := utf8.DecodeRuneInString(text[i:])
		i += width

		if c != '\\' {
			sb.WriteRune(c)
			continue
		}

		c, width = utf8.DecodeRuneInString(text[i:])
		i += width

		switch c {
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)

		case '\r':
			// Line continuation, with an optional "\n" for Windows CRLF
			if i < len(text) && text[i] == '\n' {
				i++
			}

		case '\n', 0x2028, 0x2029:
			// Line continuation

		case 'x':
			if i+2 > len(text) {
				lexer.invalidEscape(start + i)
			}
			value, err := strconv.ParseUint(text[i:i+2], 16, 8)
			if err != nil {
				lexer.invalidEscape(start + i)
			}
			sb.WriteRune(rune(value))
			i += 2

		case 'u':
			var hex string
			if i < len(text) && text[i] == '{' {
				end := strings.IndexByte(text[i:], '}')
				if end < 0 {
					lexer.invalidEscape(start + i)
				}
				hex = text[i+1 : i+end]
				i += end + 1
			} else {
				if i+4 > len(text) {
					lexer.invalidEscape(start + i)
				}
				hex = text[i : i+4]
				i += 4
			}
			value, err := strconv.ParseUint(hex, 16, 32)
			if err != nil || value > utf8.MaxRune {
				lexer.invalidEscape(start + i)
			}
			sb.WriteRune(rune(value))

		default:
			sb.WriteRune(c)
		}
	}

	return sb.String()
}

func (lexer *Lexer) invalidEscape(offset int) {
	lexer.log.AddError(&lexer.source, logger.Loc{Start: int32(offset)}, "Invalid escape sequence")
	panic(LexerPanic{})
}

func (lexer *Lexer) parseNumericLiteralOrDot() {
	first := lexer.codePoint
	lexer.step()

	// Dot without a digit after it
	if first == '.' && (lexer.codePoint < '0' || lexer.codePoint > '9') {
		lexer.Token = TDot
		return
	}

	lexer.Token = TNumericLiteral

	// Hexadecimal, octal, and binary integer literals
	if first == '0' {
		base := 0
		switch lexer.codePoint {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			lexer.step()
			for isDigitInBase(lexer.codePoint, 16) {
				lexer.step()
			}
			value, err := strconv.ParseUint(lexer.Raw()[2:], base, 64)
			if err != nil {
				lexer.SyntaxError()
			}
			lexer.Number = float64(value)
			return
		}
	}

	// Decimal literal with an optional fraction and exponent
	for lexer.codePoint >= '0' && lexer.codePoint <= '9' {
		lexer.step()
	}
	if first != '.' && lexer.codePoint == '.' {
		lexer.step()
		for lexer.codePoint >= '0' && lexer.codePoint <= '9' {
			lexer.step()
		}
	}
	if lexer.codePoint == 'e' || lexer.codePoint == 'E' {
		lexer.step()
		if lexer.codePoint == '+' || lexer.codePoint == '-' {
			lexer.step()
		}
		if lexer.codePoint < '0' || lexer.codePoint > '9' {
			lexer.SyntaxError()
		}
		for lexer.codePoint >= '0' && lexer.codePoint <= '9' {
			lexer.step()
		}
	}

	// Identifiers can't occur immediately after numbers
	if js_ast.IsIdentifierStart(lexer.codePoint) {
		lexer.SyntaxError()
	}

	value, err := strconv.ParseFloat(lexer.Raw(), 64)
	if err != nil {
		lexer.SyntaxError()
	}
	lexer.Number = value
}

func isDigitInBase(c rune, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return int(c-'0') < base
	case c >= 'a' && c <= 'f':
		return base == 16
	case c >= 'A' && c <= 'F':
		return base == 16
	}
	return false
}

func (lexer *Lexer) step() {
	codePoint, width := utf8.DecodeRuneInString(lexer.source.Contents[lexer.current:])

	// Use -1 to indicate the end of the file
	if width == 0 {
		codePoint = -1
	}

	lexer.codePoint = codePoint
	lexer.end = lexer.current
	lexer.current += width
}
