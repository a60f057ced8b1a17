package js_parser

// This parser produces the mutable tree from the "js_ast" package in a single
// pass over the token stream. Syntax errors are reported to the log and then
// unwind the parser with a "LexerPanic", which is recovered in "Parse".
//
// The accepted language is the subset that the compiler passes operate on:
// classes, functions, arrow functions, simple declarations, and the usual
// expression operators. Anything else is a syntax error.

import (
	"strconv"

	"github.com/esdart/esdart/internal/js_ast"
	"github.com/esdart/esdart/internal/js_lexer"
	"github.com/esdart/esdart/internal/logger"
)

type parser struct {
	log    logger.Log
	source logger.Source
	lexer  js_lexer.Lexer
}

func newParser(log logger.Log, source logger.Source) *parser {
	return &parser{
		log:    log,
		source: source,
		lexer:  js_lexer.NewLexer(log, source),
	}
}

// Parses a whole file into a KScript node
func Parse(log logger.Log, source logger.Source) (result *js_ast.Node, ok bool) {
	ok = true
	defer func() {
		r := recover()
		if _, isLexerPanic := r.(js_lexer.LexerPanic); isLexerPanic {
			result = nil
			ok = false
		} else if r != nil {
			panic(r)
		}
	}()

	p := newParser(log, source)
	script := js_ast.NewNode(js_ast.KScript, logger.Loc{Start: 0})
	p.parseStmtsUpTo(script, js_lexer.TEndOfFile)
	result = script
	return
}

// Parses a single expression. This is used for command-line values and tests.
func ParseExpr(log logger.Log, source logger.Source) (result *js_ast.Node, ok bool) {
	ok = true
	defer func() {
		r := recover()
		if _, isLexerPanic := r.(js_lexer.LexerPanic); isLexerPanic {
			result = nil
			ok = false
		} else if r != nil {
			panic(r)
		}
	}()

	p := newParser(log, source)
	result = p.parseExpr(js_ast.LLowest)
	p.lexer.Expect(js_lexer.TEndOfFile)
	return
}

func (p *parser) parseStmtsUpTo(parent *js_ast.Node, end js_lexer.T) {
	for p.lexer.Token != end {
		if p.lexer.Token == js_lexer.TEndOfFile {
			p.lexer.Expected(end)
		}
		if stmt := p.parseStmt(); stmt != nil {
			parent.AddChild(stmt)
		}
	}
}

func (p *parser) parseStmt() *js_ast.Node {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TSemicolon:
		p.lexer.Next()
		return nil

	case js_lexer.TOpenBrace:
		return p.parseBlock()

	case js_lexer.TVar:
		p.lexer.Next()
		decls := p.parseDecls(js_ast.KVar, loc)
		p.lexer.ExpectOrInsertSemicolon()
		return decls

	case js_lexer.TConst:
		p.lexer.Next()
		decls := p.parseDecls(js_ast.KConst, loc)
		p.lexer.ExpectOrInsertSemicolon()
		return decls

	case js_lexer.TFunction:
		p.lexer.Next()
		return p.parseFn(loc, true /* requireName */)

	case js_lexer.TClass:
		p.lexer.Next()
		return p.parseClass(loc, true /* requireName */)

	case js_lexer.TReturn:
		p.lexer.Next()
		stmt := js_ast.NewNode(js_ast.KReturn, loc)
		if p.lexer.Token != js_lexer.TSemicolon && !p.lexer.HasNewlineBefore &&
			p.lexer.Token != js_lexer.TCloseBrace && p.lexer.Token != js_lexer.TEndOfFile {
			stmt.AddChild(p.parseExpr(js_ast.LLowest))
		}
		p.lexer.ExpectOrInsertSemicolon()
		return stmt

	case js_lexer.TThrow:
		p.lexer.Next()
		if p.lexer.HasNewlineBefore {
			p.log.AddError(&p.source, logger.Loc{Start: loc.Start + 5}, "Unexpected newline after \"throw\"")
			panic(js_lexer.LexerPanic{})
		}
		stmt := js_ast.NewNode(js_ast.KThrow, loc, p.parseExpr(js_ast.LLowest))
		p.lexer.ExpectOrInsertSemicolon()
		return stmt

	case js_lexer.TIf:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		stmt := js_ast.NewNode(js_ast.KIf, loc, test, p.parseBody())
		if p.lexer.Token == js_lexer.TElse {
			p.lexer.Next()
			stmt.AddChild(p.parseBody())
		}
		return stmt

	case js_lexer.TWhile:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		return js_ast.NewNode(js_ast.KWhile, loc, test, p.parseBody())

	case js_lexer.TIdentifier:
		// "let" is only a keyword when it's followed by a binding
		if p.lexer.IsContextualKeyword("let") {
			lookahead := p.lexer
			lookahead.Next()
			if lookahead.Token == js_lexer.TIdentifier && !lookahead.HasNewlineBefore {
				p.lexer.Next()
				decls := p.parseDecls(js_ast.KLet, loc)
				p.lexer.ExpectOrInsertSemicolon()
				return decls
			}
		}
	}

	expr := p.parseExpr(js_ast.LLowest)
	p.lexer.ExpectOrInsertSemicolon()
	return js_ast.NewNode(js_ast.KExprStmt, loc, expr)
}

// Declarations aren't allowed as the direct body of "if" and "while"
func (p *parser) parseBody() *js_ast.Node {
	switch p.lexer.Token {
	case js_lexer.TClass, js_lexer.TConst, js_lexer.TFunction:
		p.lexer.Unexpected()
	}
	if stmt := p.parseStmt(); stmt != nil {
		return stmt
	}
	return js_ast.NewNode(js_ast.KBlock, p.lexer.Loc())
}

func (p *parser) parseBlock() *js_ast.Node {
	block := js_ast.NewNode(js_ast.KBlock, p.lexer.Loc())
	p.lexer.Expect(js_lexer.TOpenBrace)
	p.parseStmtsUpTo(block, js_lexer.TCloseBrace)
	p.lexer.Next()
	return block
}

func (p *parser) parseDecls(kind js_ast.Kind, loc logger.Loc) *js_ast.Node {
	decls := js_ast.NewNode(kind, loc)
	for {
		name := p.parseBindingName()
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			name.AddChild(p.parseExpr(js_ast.LComma))
		} else if kind == js_ast.KConst {
			p.log.AddRangeError(&p.source, p.lexer.Range(), "The constant \""+name.Str+"\" must be initialized")
			panic(js_lexer.LexerPanic{})
		}
		decls.AddChild(name)
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}
	return decls
}

func (p *parser) parseBindingName() *js_ast.Node {
	if p.lexer.Token != js_lexer.TIdentifier {
		p.lexer.Expect(js_lexer.TIdentifier)
	}
	name := js_ast.NewName(p.lexer.Loc(), p.lexer.Identifier)
	p.lexer.Next()
	return name
}

// Parses everything after the "function" keyword
func (p *parser) parseFn(loc logger.Loc, requireName bool) *js_ast.Node {
	var name *js_ast.Node
	if p.lexer.Token == js_lexer.TIdentifier {
		name = p.parseBindingName()
	} else if requireName {
		p.lexer.Expect(js_lexer.TIdentifier)
	} else {
		name = js_ast.NewNode(js_ast.KEmpty, p.lexer.Loc())
	}
	return p.parseFnRest(loc, name)
}

// Parses the parameter list and body of a function
func (p *parser) parseFnRest(loc logger.Loc, name *js_ast.Node) *js_ast.Node {
	params := p.parseParams()
	body := p.parseBlock()
	return js_ast.NewNode(js_ast.KFunction, loc, name, params, body)
}

func (p *parser) parseParams() *js_ast.Node {
	params := js_ast.NewNode(js_ast.KParamList, p.lexer.Loc())
	p.lexer.Expect(js_lexer.TOpenParen)
	for p.lexer.Token != js_lexer.TCloseParen {
		params.AddChild(p.parseBindingName())
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}
	p.lexer.Expect(js_lexer.TCloseParen)
	return params
}

// Parses everything after the "class" keyword
func (p *parser) parseClass(loc logger.Loc, requireName bool) *js_ast.Node {
	var name *js_ast.Node
	if p.lexer.Token == js_lexer.TIdentifier {
		name = p.parseBindingName()
	} else if requireName {
		p.lexer.Expect(js_lexer.TIdentifier)
	} else {
		name = js_ast.NewNode(js_ast.KEmpty, p.lexer.Loc())
	}

	extends := js_ast.NewNode(js_ast.KEmpty, p.lexer.Loc())
	if p.lexer.Token == js_lexer.TExtends {
		p.lexer.Next()
		extends = p.parseExpr(js_ast.LNew - 1)
	}

	members := js_ast.NewNode(js_ast.KClassMembers, p.lexer.Loc())
	p.lexer.Expect(js_lexer.TOpenBrace)
	hasConstructor := false
	for p.lexer.Token != js_lexer.TCloseBrace {
		if p.lexer.Token == js_lexer.TSemicolon {
			p.lexer.Next()
			continue
		}
		member := p.parseMember(true /* isClass */)
		if member.Kind == js_ast.KMemberFunctionDef && member.Str == "constructor" && !member.IsStatic() {
			if hasConstructor {
				p.log.AddError(&p.source, member.Loc, "Classes cannot contain more than one constructor")
				panic(js_lexer.LexerPanic{})
			}
			hasConstructor = true
		}
		members.AddChild(member)
	}
	p.lexer.Next()

	return js_ast.NewNode(js_ast.KClass, loc, name, extends, members)
}

// Parses a class member or an object literal property
func (p *parser) parseMember(isClass bool) *js_ast.Node {
	loc := p.lexer.Loc()
	var flags js_ast.NodeFlags
	kind := js_ast.KMemberFunctionDef

	// "static" is only a modifier if something other than "(" follows it
	if isClass && p.lexer.IsContextualKeyword("static") {
		lookahead := p.lexer
		lookahead.Next()
		if lookahead.Token != js_lexer.TOpenParen {
			p.lexer.Next()
			flags |= js_ast.FlagStatic
		}
	}

	// The same goes for "get" and "set"
	if p.lexer.IsContextualKeyword("get") || p.lexer.IsContextualKeyword("set") {
		lookahead := p.lexer
		lookahead.Next()
		switch lookahead.Token {
		case js_lexer.TOpenParen, js_lexer.TColon, js_lexer.TComma, js_lexer.TCloseBrace:
		default:
			if p.lexer.Raw() == "get" {
				kind = js_ast.KGetterDef
			} else {
				kind = js_ast.KSetterDef
			}
			p.lexer.Next()
		}
	}

	// Computed keys
	if p.lexer.Token == js_lexer.TOpenBracket {
		p.lexer.Next()
		key := p.parseExpr(js_ast.LComma)
		p.lexer.Expect(js_lexer.TCloseBracket)
		member := js_ast.NewNode(js_ast.KComputedProp, loc, key)
		switch kind {
		case js_ast.KGetterDef:
			flags |= js_ast.FlagComputedGetter
		case js_ast.KSetterDef:
			flags |= js_ast.FlagComputedSetter
		}
		if !isClass && kind == js_ast.KMemberFunctionDef && p.lexer.Token == js_lexer.TColon {
			p.lexer.Next()
			member.AddChild(p.parseExpr(js_ast.LComma))
		} else {
			if !isClass && kind == js_ast.KMemberFunctionDef {
				flags |= js_ast.FlagComputedMethod
			}
			member.AddChild(p.parseMethod(p.lexer.Loc(), kind))
		}
		member.Flags = flags
		return member
	}

	// Plain keys
	nameLoc := p.lexer.Loc()
	var name string
	switch p.lexer.Token {
	case js_lexer.TStringLiteral:
		name = p.lexer.StringLiteral
		flags |= js_ast.FlagQuoted
	case js_lexer.TNumericLiteral:
		name = numberToPropertyName(p.lexer.Number)
		flags |= js_ast.FlagQuoted
	default:
		if !p.lexer.IsIdentifierOrKeyword() {
			p.lexer.Expect(js_lexer.TIdentifier)
		}
		name = p.lexer.Identifier
	}
	isIdentifier := p.lexer.Token == js_lexer.TIdentifier
	p.lexer.Next()

	if isClass && p.lexer.Token != js_lexer.TOpenParen {
		p.lexer.Expect(js_lexer.TOpenParen)
	}

	// Object literal properties with values
	if !isClass && kind == js_ast.KMemberFunctionDef && p.lexer.Token != js_lexer.TOpenParen {
		var value *js_ast.Node
		if p.lexer.Token == js_lexer.TColon {
			p.lexer.Next()
			value = p.parseExpr(js_ast.LComma)
		} else if isIdentifier {
			// Shorthand properties such as "{ x }"
			value = js_ast.NewName(nameLoc, name)
		} else {
			p.lexer.Expect(js_lexer.TColon)
		}
		key := js_ast.NewNode(js_ast.KStringKey, loc, value)
		key.Str = name
		key.Flags = flags
		return key
	}

	member := js_ast.NewNode(kind, loc, p.parseMethod(p.lexer.Loc(), kind))
	member.Str = name
	member.Flags = flags
	return member
}

func (p *parser) parseMethod(loc logger.Loc, kind js_ast.Kind) *js_ast.Node {
	fn := p.parseFnRest(loc, js_ast.NewNode(js_ast.KEmpty, loc))
	params := fn.Children[1]
	switch kind {
	case js_ast.KGetterDef:
		if len(params.Children) != 0 {
			p.log.AddError(&p.source, params.Loc, "Getter functions must have no arguments")
			panic(js_lexer.LexerPanic{})
		}
	case js_ast.KSetterDef:
		if len(params.Children) != 1 {
			p.log.AddError(&p.source, params.Loc, "Setter functions must have exactly one argument")
			panic(js_lexer.LexerPanic{})
		}
	}
	return fn
}

func numberToPropertyName(value float64) string {
	if asInt := int64(value); value == float64(asInt) {
		return strconv.FormatInt(asInt, 10)
	}
	return strconv.FormatFloat(value, 'g', -1, 64)
}

func (p *parser) parseExpr(level js_ast.L) *js_ast.Node {
	return p.parseSuffix(p.parsePrefix(level), level)
}

func (p *parser) parsePrefix(level js_ast.L) *js_ast.Node {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TSuper:
		p.lexer.Next()
		switch p.lexer.Token {
		case js_lexer.TDot, js_lexer.TOpenBracket, js_lexer.TOpenParen:
			return js_ast.NewNode(js_ast.KSuper, loc)
		}
		p.log.AddRangeError(&p.source, logger.Range{Loc: loc, Len: 5}, "Unexpected \"super\"")
		panic(js_lexer.LexerPanic{})

	case js_lexer.TThis:
		p.lexer.Next()
		return js_ast.NewThis(loc)

	case js_lexer.TTrue:
		p.lexer.Next()
		return js_ast.NewNode(js_ast.KTrue, loc)

	case js_lexer.TFalse:
		p.lexer.Next()
		return js_ast.NewNode(js_ast.KFalse, loc)

	case js_lexer.TNull:
		p.lexer.Next()
		return js_ast.NewNode(js_ast.KNull, loc)

	case js_lexer.TNumericLiteral:
		value := p.lexer.Number
		p.lexer.Next()
		return js_ast.NewNumber(loc, value)

	case js_lexer.TStringLiteral:
		value := p.lexer.StringLiteral
		p.lexer.Next()
		return js_ast.NewString(loc, value)

	case js_lexer.TIdentifier:
		name := p.lexer.Identifier
		p.lexer.Next()

		// Handle the start of an arrow function
		if p.lexer.Token == js_lexer.TEqualsGreaterThan && level <= js_ast.LAssign {
			params := js_ast.NewNode(js_ast.KParamList, loc, js_ast.NewName(loc, name))
			return p.parseArrowBody(loc, params)
		}
		return js_ast.NewName(loc, name)

	case js_lexer.TOpenParen:
		if level <= js_ast.LAssign && p.isArrowAhead() {
			params := p.parseParams()
			return p.parseArrowBody(loc, params)
		}
		p.lexer.Next()
		value := p.parseExpr(js_ast.LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		return value

	case js_lexer.TFunction:
		p.lexer.Next()
		return p.parseFn(loc, false /* requireName */)

	case js_lexer.TClass:
		p.lexer.Next()
		return p.parseClass(loc, false /* requireName */)

	case js_lexer.TNew:
		p.lexer.Next()
		target := p.parseExpr(js_ast.LMember)
		n := js_ast.NewNode(js_ast.KNew, loc, target)
		if p.lexer.Token == js_lexer.TOpenParen {
			p.parseCallArgs(n)
		}
		return n

	case js_lexer.TOpenBracket:
		p.lexer.Next()
		array := js_ast.NewNode(js_ast.KArrayLit, loc)
		for p.lexer.Token != js_lexer.TCloseBracket {
			array.AddChild(p.parseExpr(js_ast.LComma))
			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
		}
		p.lexer.Expect(js_lexer.TCloseBracket)
		return array

	case js_lexer.TOpenBrace:
		p.lexer.Next()
		object := js_ast.NewNode(js_ast.KObjectLit, loc)
		for p.lexer.Token != js_lexer.TCloseBrace {
			object.AddChild(p.parseMember(false /* isClass */))
			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
		}
		p.lexer.Expect(js_lexer.TCloseBrace)
		return object

	case js_lexer.TPlusPlus:
		p.lexer.Next()
		return p.parseUpdate(loc, js_ast.UnOpPreInc)

	case js_lexer.TMinusMinus:
		p.lexer.Next()
		return p.parseUpdate(loc, js_ast.UnOpPreDec)

	case js_lexer.TPlus:
		p.lexer.Next()
		return js_ast.NewUnary(loc, js_ast.UnOpPos, p.parseExpr(js_ast.LPrefix-1))

	case js_lexer.TMinus:
		p.lexer.Next()
		return js_ast.NewUnary(loc, js_ast.UnOpNeg, p.parseExpr(js_ast.LPrefix-1))

	case js_lexer.TTilde:
		p.lexer.Next()
		return js_ast.NewUnary(loc, js_ast.UnOpCpl, p.parseExpr(js_ast.LPrefix-1))

	case js_lexer.TExclamation:
		p.lexer.Next()
		return js_ast.NewUnary(loc, js_ast.UnOpNot, p.parseExpr(js_ast.LPrefix-1))

	case js_lexer.TVoid:
		p.lexer.Next()
		return js_ast.NewUnary(loc, js_ast.UnOpVoid, p.parseExpr(js_ast.LPrefix-1))

	case js_lexer.TTypeof:
		p.lexer.Next()
		return js_ast.NewUnary(loc, js_ast.UnOpTypeof, p.parseExpr(js_ast.LPrefix-1))

	case js_lexer.TDelete:
		p.lexer.Next()
		return js_ast.NewUnary(loc, js_ast.UnOpDelete, p.parseExpr(js_ast.LPrefix-1))
	}

	p.lexer.Unexpected()
	return nil
}

func (p *parser) parseUpdate(loc logger.Loc, op js_ast.OpCode) *js_ast.Node {
	operand := p.parseExpr(js_ast.LPrefix - 1)
	p.checkAssignTarget(operand)
	return js_ast.NewUnary(loc, op, operand)
}

// Scans forward over a parenthesized group to see if "=>" follows it. This
// copies the lexer so the real parse starts again at the "(".
func (p *parser) isArrowAhead() bool {
	lookahead := p.lexer
	depth := 0
	for {
		switch lookahead.Token {
		case js_lexer.TOpenParen, js_lexer.TOpenBracket, js_lexer.TOpenBrace:
			depth++
		case js_lexer.TCloseParen, js_lexer.TCloseBracket, js_lexer.TCloseBrace:
			depth--
		case js_lexer.TEndOfFile:
			return false
		}
		lookahead.Next()
		if depth == 0 {
			return lookahead.Token == js_lexer.TEqualsGreaterThan && !lookahead.HasNewlineBefore
		}
	}
}

func (p *parser) parseArrowBody(loc logger.Loc, params *js_ast.Node) *js_ast.Node {
	if p.lexer.HasNewlineBefore {
		p.log.AddRangeError(&p.source, p.lexer.Range(), "Unexpected newline before \"=>\"")
		panic(js_lexer.LexerPanic{})
	}
	p.lexer.Expect(js_lexer.TEqualsGreaterThan)

	var body *js_ast.Node
	if p.lexer.Token == js_lexer.TOpenBrace {
		body = p.parseBlock()
	} else {
		body = p.parseExpr(js_ast.LComma)
	}
	fn := js_ast.NewNode(js_ast.KFunction, loc, js_ast.NewNode(js_ast.KEmpty, loc), params, body)
	fn.Flags |= js_ast.FlagArrow
	return fn
}

func (p *parser) parseCallArgs(call *js_ast.Node) {
	p.lexer.Expect(js_lexer.TOpenParen)
	for p.lexer.Token != js_lexer.TCloseParen {
		call.AddChild(p.parseExpr(js_ast.LComma))
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}
	p.lexer.Expect(js_lexer.TCloseParen)
}

func (p *parser) checkAssignTarget(target *js_ast.Node) {
	switch target.Kind {
	case js_ast.KName, js_ast.KDot, js_ast.KIndex:
		return
	}
	p.log.AddError(&p.source, target.Loc, "Invalid assignment target")
	panic(js_lexer.LexerPanic{})
}

var binaryOps = map[js_lexer.T]js_ast.OpCode{
	js_lexer.TComma:                                  js_ast.BinOpComma,
	js_lexer.TPlus:                                   js_ast.BinOpAdd,
	js_lexer.TMinus:                                  js_ast.BinOpSub,
	js_lexer.TAsterisk:                               js_ast.BinOpMul,
	js_lexer.TSlash:                                  js_ast.BinOpDiv,
	js_lexer.TPercent:                                js_ast.BinOpRem,
	js_lexer.TAsteriskAsterisk:                       js_ast.BinOpPow,
	js_lexer.TLessThan:                               js_ast.BinOpLt,
	js_lexer.TLessThanEquals:                         js_ast.BinOpLe,
	js_lexer.TGreaterThan:                            js_ast.BinOpGt,
	js_lexer.TGreaterThanEquals:                      js_ast.BinOpGe,
	js_lexer.TIn:                                     js_ast.BinOpIn,
	js_lexer.TInstanceof:                             js_ast.BinOpInstanceof,
	js_lexer.TLessThanLessThan:                       js_ast.BinOpShl,
	js_lexer.TGreaterThanGreaterThan:                 js_ast.BinOpShr,
	js_lexer.TGreaterThanGreaterThanGreaterThan:      js_ast.BinOpUShr,
	js_lexer.TEqualsEquals:                           js_ast.BinOpLooseEq,
	js_lexer.TExclamationEquals:                      js_ast.BinOpLooseNe,
	js_lexer.TEqualsEqualsEquals:                     js_ast.BinOpStrictEq,
	js_lexer.TExclamationEqualsEquals:                js_ast.BinOpStrictNe,
	js_lexer.TQuestionQuestion:                       js_ast.BinOpNullishCoalescing,
	js_lexer.TBarBar:                                 js_ast.BinOpLogicalOr,
	js_lexer.TAmpersandAmpersand:                     js_ast.BinOpLogicalAnd,
	js_lexer.TBar:                                    js_ast.BinOpBitwiseOr,
	js_lexer.TAmpersand:                              js_ast.BinOpBitwiseAnd,
	js_lexer.TCaret:                                  js_ast.BinOpBitwiseXor,
	js_lexer.TEquals:                                 js_ast.BinOpAssign,
	js_lexer.TPlusEquals:                             js_ast.BinOpAddAssign,
	js_lexer.TMinusEquals:                            js_ast.BinOpSubAssign,
	js_lexer.TAsteriskEquals:                         js_ast.BinOpMulAssign,
	js_lexer.TSlashEquals:                            js_ast.BinOpDivAssign,
	js_lexer.TPercentEquals:                          js_ast.BinOpRemAssign,
	js_lexer.TAsteriskAsteriskEquals:                 js_ast.BinOpPowAssign,
	js_lexer.TLessThanLessThanEquals:                 js_ast.BinOpShlAssign,
	js_lexer.TGreaterThanGreaterThanEquals:           js_ast.BinOpShrAssign,
	js_lexer.TGreaterThanGreaterThanGreaterThanEquals: js_ast.BinOpUShrAssign,
	js_lexer.TBarEquals:                              js_ast.BinOpBitwiseOrAssign,
	js_lexer.TAmpersandEquals:                        js_ast.BinOpBitwiseAndAssign,
	js_lexer.TCaretEquals:                            js_ast.BinOpBitwiseXorAssign,
	js_lexer.TQuestionQuestionEquals:                 js_ast.BinOpNullishCoalescingAssign,
	js_lexer.TBarBarEquals:                           js_ast.BinOpLogicalOrAssign,
	js_lexer.TAmpersandAmpersandEquals:               js_ast.BinOpLogicalAndAssign,
}

func (p *parser) parseSuffix(left *js_ast.Node, level js_ast.L) *js_ast.Node {
	for {
		loc := left.Loc

		switch p.lexer.Token {
		case js_lexer.TDot:
			p.lexer.Next()
			if !p.lexer.IsIdentifierOrKeyword() {
				p.lexer.Expect(js_lexer.TIdentifier)
			}
			name := js_ast.NewString(p.lexer.Loc(), p.lexer.Identifier)
			p.lexer.Next()
			left = js_ast.NewDot(loc, left, name)
			continue

		case js_lexer.TOpenBracket:
			p.lexer.Next()
			index := p.parseExpr(js_ast.LLowest)
			p.lexer.Expect(js_lexer.TCloseBracket)
			left = js_ast.NewNode(js_ast.KIndex, loc, left, index)
			continue

		case js_lexer.TOpenParen:
			if level >= js_ast.LCall {
				return left
			}
			call := js_ast.NewNode(js_ast.KCall, loc, left)
			p.parseCallArgs(call)
			left = call
			continue

		case js_lexer.TPlusPlus, js_lexer.TMinusMinus:
			if p.lexer.HasNewlineBefore || level >= js_ast.LPostfix {
				return left
			}
			op := js_ast.UnOpPostInc
			if p.lexer.Token == js_lexer.TMinusMinus {
				op = js_ast.UnOpPostDec
			}
			p.lexer.Next()
			p.checkAssignTarget(left)
			left = js_ast.NewUnary(loc, op, left)
			continue

		case js_lexer.TQuestion:
			if level >= js_ast.LConditional {
				return left
			}
			p.lexer.Next()
			yes := p.parseExpr(js_ast.LComma)
			p.lexer.Expect(js_lexer.TColon)
			no := p.parseExpr(js_ast.LComma)
			left = js_ast.NewNode(js_ast.KCond, loc, left, yes, no)
			continue
		}

		op, ok := binaryOps[p.lexer.Token]
		if !ok {
			return left
		}
		opLevel := js_ast.OpTable[op].Level
		if level >= opLevel {
			return left
		}

		// Right-associative operators parse their right side at a lower level
		rightLevel := opLevel
		if op.IsRightAssociative() {
			rightLevel = opLevel - 1
		}
		if op.IsAssign() {
			p.checkAssignTarget(left)
		}

		p.lexer.Next()
		left = js_ast.NewBinary(loc, op, left, p.parseExpr(rightLevel))
	}
}
