package js_printer

import (
	"bytes"
	"math"
	"strconv"

	"github.com/esdart/esdart/internal/helpers"
	"github.com/esdart/esdart/internal/js_ast"
)

var positiveInfinity = math.Inf(1)
var negativeInfinity = math.Inf(-1)

type Options struct {
	MinifyWhitespace bool

	// The number of indentation levels to start at
	Indent int
}

type printer struct {
	options        Options
	js             []byte
	stmtStart      int
	arrowExprStart int
	prevOpEnd      int
	prevNumEnd     int
	prevOp         js_ast.OpCode
	needsSemicolon bool
}

// Prints a script, a single statement, or a single expression
func Print(n *js_ast.Node, options Options) []byte {
	p := &printer{
		options:        options,
		stmtStart:      -1,
		arrowExprStart: -1,
		prevOpEnd:      -1,
		prevNumEnd:     -1,
	}

	switch n.Kind {
	case js_ast.KRoot:
		panic("Internal error: print the main script, not the root")

	case js_ast.KScript:
		for _, stmt := range n.Children {
			p.printStmt(stmt)
		}

	case js_ast.KBlock, js_ast.KExprStmt, js_ast.KReturn, js_ast.KThrow, js_ast.KIf, js_ast.KWhile,
		js_ast.KVar, js_ast.KLet, js_ast.KConst:
		p.printStmt(n)

	default:
		p.printExpr(n, js_ast.LLowest)
	}

	return p.js
}

func (p *printer) print(text string) {
	p.js = append(p.js, text...)
}

func (p *printer) printBytes(bytes []byte) {
	p.js = append(p.js, bytes...)
}

func (p *printer) printIndent() {
	if !p.options.MinifyWhitespace {
		for i := 0; i < p.options.Indent; i++ {
			p.print("  ")
		}
	}
}

func (p *printer) printSpace() {
	if !p.options.MinifyWhitespace {
		p.print(" ")
	}
}

func (p *printer) printNewline() {
	if !p.options.MinifyWhitespace {
		p.print("\n")
	}
}

func (p *printer) printSpaceBeforeOperator(next js_ast.OpCode) {
	if p.prevOpEnd == len(p.js) {
		prev := p.prevOp

		// "+ + y" => "+ +y"
		// "+ ++ y" => "+ ++y"
		// "x + + y" => "x+ +y"
		// "x ++ + y" => "x+++y"
		// "x + ++ y" => "x+ ++y"
		// "-- >" => "-- >"
		// "< ! --" => "<! --"
		if ((prev == js_ast.BinOpAdd || prev == js_ast.UnOpPos) && (next == js_ast.BinOpAdd || next == js_ast.UnOpPos || next == js_ast.UnOpPreInc)) ||
			((prev == js_ast.BinOpSub || prev == js_ast.UnOpNeg) && (next == js_ast.BinOpSub || next == js_ast.UnOpNeg || next == js_ast.UnOpPreDec)) ||
			(prev == js_ast.UnOpPostDec && next == js_ast.BinOpGt) ||
			(prev == js_ast.UnOpNot && next == js_ast.UnOpPreDec && len(p.js) > 1 && p.js[len(p.js)-2] == '<') {
			p.print(" ")
		}
	}
}

func (p *printer) printSemicolonAfterStatement() {
	if !p.options.MinifyWhitespace {
		p.print(";\n")
	} else {
		p.needsSemicolon = true
	}
}

func (p *printer) printSemicolonIfNeeded() {
	if p.needsSemicolon {
		p.print(";")
		p.needsSemicolon = false
	}
}

func (p *printer) printSpaceBeforeIdentifier() {
	buffer := p.js
	n := len(buffer)
	if n > 0 && (js_ast.IsIdentifierContinue(rune(buffer[n-1])) || n == p.prevNumEnd) {
		p.print(" ")
	}
}

func (p *printer) printIdentifier(name string) {
	p.printSpaceBeforeIdentifier()
	p.print(name)
}

func (p *printer) printQuoted(text string) {
	p.printBytes(helpers.QuoteForJSON(text, false))
}

func (p *printer) printParams(params *js_ast.Node, isArrow bool) {
	wrap := true

	// Minify "(a) => {}" as "a=>{}"
	if p.options.MinifyWhitespace && isArrow && len(params.Children) == 1 {
		wrap = false
	}

	if wrap {
		p.print("(")
	}
	for i, param := range params.Children {
		if i != 0 {
			p.print(",")
			p.printSpace()
		}
		p.printIdentifier(param.Str)
	}
	if wrap {
		p.print(")")
	}
}

// Prints the parameters and body of a non-arrow function
func (p *printer) printFn(fn *js_ast.Node) {
	p.printParams(fn.Children[1], false /* isArrow */)
	p.printSpace()
	p.printBlock(fn.Children[2])
}

func (p *printer) printClass(class *js_ast.Node) {
	if name := class.Children[0]; name.Kind == js_ast.KName {
		p.printSpace()
		p.printIdentifier(name.Str)
	}
	if extends := class.Children[1]; extends.Kind != js_ast.KEmpty {
		p.print(" extends")
		p.printSpace()
		p.printExpr(extends, js_ast.LNew-1)
	}
	p.printSpace()

	p.print("{")
	p.printNewline()
	p.options.Indent++

	for _, member := range class.Children[2].Children {
		p.printSemicolonIfNeeded()
		p.printIndent()
		p.printProperty(member)
		p.printNewline()
	}

	p.needsSemicolon = false
	p.options.Indent--
	p.printIndent()
	p.print("}")
}

func (p *printer) printPropertyKey(name string, flags js_ast.NodeFlags) {
	if !flags.Has(js_ast.FlagQuoted) && js_ast.IsIdentifier(name) {
		p.printIdentifier(name)
	} else {
		p.printQuoted(name)
	}
}

// Prints a class member or an object literal property
func (p *printer) printProperty(item *js_ast.Node) {
	if item.IsStatic() {
		p.printSpaceBeforeIdentifier()
		p.print("static")
		p.printSpace()
	}

	switch item.Kind {
	case js_ast.KStringKey:
		value := item.FirstChild()

		// Print "{ x: x }" as "{ x }"
		if value.Kind == js_ast.KName && value.Str == item.Str && !item.Flags.Has(js_ast.FlagQuoted) {
			p.printIdentifier(item.Str)
			return
		}

		p.printPropertyKey(item.Str, item.Flags)
		p.print(":")
		p.printSpace()
		p.printExpr(value, js_ast.LComma)
		return

	case js_ast.KComputedProp:
		key, value := item.Children[0], item.Children[1]
		if item.Flags.Has(js_ast.FlagComputedGetter) {
			p.printSpaceBeforeIdentifier()
			p.print("get")
			p.printSpace()
		} else if item.Flags.Has(js_ast.FlagComputedSetter) {
			p.printSpaceBeforeIdentifier()
			p.print("set")
			p.printSpace()
		}
		p.print("[")
		p.printExpr(key, js_ast.LComma)
		p.print("]")
		if !item.IsMemberDef() {
			p.print(":")
			p.printSpace()
			p.printExpr(value, js_ast.LComma)
			return
		}
		p.printFn(value)
		return

	case js_ast.KGetterDef:
		p.printSpaceBeforeIdentifier()
		p.print("get")
		p.printSpace()

	case js_ast.KSetterDef:
		p.printSpaceBeforeIdentifier()
		p.print("set")
		p.printSpace()
	}

	p.printPropertyKey(item.Str, item.Flags)
	p.printFn(item.FirstChild())
}

func (p *printer) printNumber(value float64, level js_ast.L) {
	absValue := math.Abs(value)

	if value != value {
		p.printSpaceBeforeIdentifier()
		p.print("NaN")
	} else if value == positiveInfinity || value == negativeInfinity {
		wrap := value == negativeInfinity && level >= js_ast.LPrefix
		if wrap {
			p.print("(")
		}
		if value == negativeInfinity {
			p.printSpaceBeforeOperator(js_ast.UnOpNeg)
			p.print("-")
		} else {
			p.printSpaceBeforeIdentifier()
		}
		p.print("Infinity")
		if wrap {
			p.print(")")
		}
	} else {
		if !math.Signbit(value) {
			p.printSpaceBeforeIdentifier()
			p.printNonNegativeFloat(absValue)

			// Remember the end of the latest number
			p.prevNumEnd = len(p.js)
		} else if level >= js_ast.LPrefix {
			// Expressions such as "(-1).toString" need to wrap negative numbers
			p.print("(-")
			p.printNonNegativeFloat(absValue)
			p.print(")")
		} else {
			p.printSpaceBeforeOperator(js_ast.UnOpNeg)
			p.print("-")
			p.printNonNegativeFloat(absValue)

			// Remember the end of the latest number
			p.prevNumEnd = len(p.js)
		}
	}
}

func (p *printer) printNonNegativeFloat(absValue float64) {
	// Integers are printed without an exponent up to the point where
	// JavaScript itself switches to exponential notation
	if absValue < 1e21 && absValue == math.Trunc(absValue) {
		p.print(strconv.FormatFloat(absValue, 'f', -1, 64))
		return
	}

	result := []byte(strconv.FormatFloat(absValue, 'g', -1, 64))

	// Simplify the exponent
	// "e+05" => "e5"
	// "e-05" => "e-5"
	if e := bytes.LastIndexByte(result, 'e'); e != -1 {
		from := e + 1
		to := from

		switch result[from] {
		case '+':
			// Strip off the leading "+"
			from++

		case '-':
			// Skip past the leading "-"
			to++
			from++
		}

		// Strip off leading zeros
		for from < len(result) && result[from] == '0' {
			from++
		}

		result = append(result[:to], result[from:]...)
	}

	// Strip off the leading zero when minifying
	// "0.5" => ".5"
	if p.options.MinifyWhitespace && len(result) > 1 && result[0] == '0' && result[1] == '.' {
		result = result[1:]
	}

	p.printBytes(result)
}

func (p *printer) printExpr(n *js_ast.Node, level js_ast.L) {
	switch n.Kind {
	case js_ast.KName:
		p.printIdentifier(n.Str)

	case js_ast.KString:
		p.printQuoted(n.Str)

	case js_ast.KNumber:
		p.printNumber(n.Num, level)

	case js_ast.KTrue:
		p.printIdentifier("true")

	case js_ast.KFalse:
		p.printIdentifier("false")

	case js_ast.KNull:
		p.printIdentifier("null")

	case js_ast.KThis:
		p.printIdentifier("this")

	case js_ast.KSuper:
		p.printIdentifier("super")

	case js_ast.KArrayLit:
		p.print("[")
		for i, item := range n.Children {
			if i != 0 {
				p.print(",")
				p.printSpace()
			}
			p.printExpr(item, js_ast.LComma)
		}
		p.print("]")

	case js_ast.KObjectLit:
		start := len(p.js)
		wrap := p.stmtStart == start || p.arrowExprStart == start
		if wrap {
			p.print("(")
		}
		p.print("{")
		if len(n.Children) > 0 {
			p.printSpace()
			for i, item := range n.Children {
				if i != 0 {
					p.print(",")
					p.printSpace()
				}
				p.printProperty(item)
			}
			p.printSpace()
		}
		p.print("}")
		if wrap {
			p.print(")")
		}

	case js_ast.KDot:
		target, name := n.Children[0], n.Children[1]
		p.printMemberTarget(target)
		if js_ast.IsIdentifier(name.Str) {
			p.print(".")
			p.print(name.Str)
		} else {
			p.print("[")
			p.printQuoted(name.Str)
			p.print("]")
		}

	case js_ast.KIndex:
		target, index := n.Children[0], n.Children[1]
		p.printMemberTarget(target)
		p.print("[")
		p.printExpr(index, js_ast.LLowest)
		p.print("]")

	case js_ast.KCall:
		wrap := level >= js_ast.LNew
		if wrap {
			p.print("(")
		}

		// Calls without a "this" value need to hide the property access
		callee := n.Children[0]
		if n.Flags.Has(js_ast.FlagFreeCall) && (callee.Kind == js_ast.KDot || callee.Kind == js_ast.KIndex) {
			p.print("(0,")
			p.printSpace()
			p.printExpr(callee, js_ast.LPostfix)
			p.print(")")
		} else {
			p.printExpr(callee, js_ast.LPostfix)
		}

		p.printArgs(n.Children[1:])
		if wrap {
			p.print(")")
		}

	case js_ast.KNew:
		wrap := level >= js_ast.LCall
		if wrap {
			p.print("(")
		}
		p.printIdentifier("new")
		p.printSpace()
		if callee := n.Children[0]; containsCall(callee) {
			p.print("(")
			p.printExpr(callee, js_ast.LLowest)
			p.print(")")
		} else {
			p.printExpr(callee, js_ast.LNew)
		}
		p.printArgs(n.Children[1:])
		if wrap {
			p.print(")")
		}

	case js_ast.KCond:
		wrap := level >= js_ast.LConditional
		if wrap {
			p.print("(")
		}
		p.printExpr(n.Children[0], js_ast.LConditional)
		p.printSpace()
		p.print("?")
		p.printSpace()
		p.printExpr(n.Children[1], js_ast.LYield)
		p.printSpace()
		p.print(":")
		p.printSpace()
		p.printExpr(n.Children[2], js_ast.LYield)
		if wrap {
			p.print(")")
		}

	case js_ast.KUnary:
		entry := js_ast.OpTable[n.Op]
		wrap := level >= entry.Level
		if wrap {
			p.print("(")
		}

		if n.Op.IsPrefix() {
			if entry.IsKeyword {
				p.printIdentifier(entry.Text)
				p.print(" ")
			} else {
				p.printSpaceBeforeOperator(n.Op)
				p.print(entry.Text)
				p.prevOp = n.Op
				p.prevOpEnd = len(p.js)
			}
			p.printExpr(n.Children[0], js_ast.LPrefix-1)
		} else {
			p.printExpr(n.Children[0], js_ast.LPostfix-1)
			p.print(entry.Text)
			p.prevOp = n.Op
			p.prevOpEnd = len(p.js)
		}

		if wrap {
			p.print(")")
		}

	case js_ast.KBinary:
		entry := js_ast.OpTable[n.Op]
		wrap := level >= entry.Level
		if wrap {
			p.print("(")
		}

		leftLevel := entry.Level - 1
		rightLevel := entry.Level - 1
		if n.Op.IsRightAssociative() {
			leftLevel = entry.Level
		}
		if n.Op.IsLeftAssociative() {
			rightLevel = entry.Level
		}

		// "??" can't directly contain "||" or "&&" without being wrapped in parentheses
		if n.Op == js_ast.BinOpNullishCoalescing {
			if isLogicalOrAnd(n.Children[0]) {
				leftLevel = js_ast.LPrefix
			}
			if isLogicalOrAnd(n.Children[1]) {
				rightLevel = js_ast.LPrefix
			}
		}

		p.printExpr(n.Children[0], leftLevel)

		if n.Op != js_ast.BinOpComma {
			p.printSpace()
		}
		if entry.IsKeyword {
			p.printIdentifier(entry.Text)
		} else {
			p.printSpaceBeforeOperator(n.Op)
			p.print(entry.Text)
			p.prevOp = n.Op
			p.prevOpEnd = len(p.js)
		}
		p.printSpace()

		p.printExpr(n.Children[1], rightLevel)

		if wrap {
			p.print(")")
		}

	case js_ast.KFunction:
		if n.Flags.Has(js_ast.FlagArrow) {
			wrap := level >= js_ast.LAssign
			if wrap {
				p.print("(")
			}
			p.printParams(n.Children[1], true /* isArrow */)
			p.printSpace()
			p.print("=>")
			p.printSpace()
			if body := n.Children[2]; body.Kind == js_ast.KBlock {
				p.printBlock(body)
			} else {
				p.arrowExprStart = len(p.js)
				p.printExpr(body, js_ast.LComma)
			}
			if wrap {
				p.print(")")
			}
			return
		}

		wrap := p.stmtStart == len(p.js)
		if wrap {
			p.print("(")
		}
		p.printIdentifier("function")
		if name := n.Children[0]; name.Kind == js_ast.KName {
			p.printSpace()
			p.printIdentifier(name.Str)
		}
		p.printFn(n)
		if wrap {
			p.print(")")
		}

	case js_ast.KClass:
		wrap := p.stmtStart == len(p.js)
		if wrap {
			p.print("(")
		}
		p.printIdentifier("class")
		p.printClass(n)
		if wrap {
			p.print(")")
		}

	default:
		panic("Internal error: unexpected " + n.Kind.String() + " in expression position")
	}
}

func isLogicalOrAnd(n *js_ast.Node) bool {
	return n.Kind == js_ast.KBinary && (n.Op == js_ast.BinOpLogicalOr || n.Op == js_ast.BinOpLogicalAnd)
}

func (p *printer) printArgs(args []*js_ast.Node) {
	p.print("(")
	for i, arg := range args {
		if i != 0 {
			p.print(",")
			p.printSpace()
		}
		p.printExpr(arg, js_ast.LComma)
	}
	p.print(")")
}

// Integer literals need parentheses before a "." so the dot isn't parsed as
// a decimal point
func (p *printer) printMemberTarget(target *js_ast.Node) {
	if target.Kind == js_ast.KNumber && !math.Signbit(target.Num) && !math.IsInf(target.Num, 0) {
		if asInt := int64(target.Num); target.Num == float64(asInt) {
			p.print("(")
			p.printExpr(target, js_ast.LLowest)
			p.print(")")
			return
		}
	}
	p.printExpr(target, js_ast.LPostfix)
}

// The callee of "new" must not end in a call, or the call's arguments would
// be taken as the arguments of "new"
func containsCall(n *js_ast.Node) bool {
	for n.Kind == js_ast.KDot || n.Kind == js_ast.KIndex {
		n = n.Children[0]
	}
	return n.Kind == js_ast.KCall
}

func (p *printer) printBlock(block *js_ast.Node) {
	p.print("{")
	p.printNewline()

	p.options.Indent++
	for _, stmt := range block.Children {
		p.printStmt(stmt)
	}
	p.options.Indent--
	p.needsSemicolon = false

	p.printIndent()
	p.print("}")
}

func (p *printer) printBody(body *js_ast.Node) {
	if body.Kind == js_ast.KBlock {
		p.printSpace()
		p.printBlock(body)
		p.printNewline()
	} else {
		p.printNewline()
		p.options.Indent++
		p.printStmt(body)
		p.options.Indent--
	}
}

func (p *printer) printDecls(keyword string, decls *js_ast.Node) {
	p.printIndent()
	p.printIdentifier(keyword)
	p.printSpace()
	for i, decl := range decls.Children {
		if i != 0 {
			p.print(",")
			p.printSpace()
		}
		p.printIdentifier(decl.Str)
		if value := decl.FirstChild(); value != nil {
			p.printSpace()
			p.print("=")
			p.printSpace()
			p.printExpr(value, js_ast.LComma)
		}
	}
	p.printSemicolonAfterStatement()
}

// An "if" without an "else" as the "yes" branch of another "if" would steal
// that "else", so it has to be wrapped in a block
func wrapToAvoidAmbiguousElse(n *js_ast.Node) bool {
	for {
		switch n.Kind {
		case js_ast.KIf:
			if len(n.Children) < 3 {
				return true
			}
			n = n.Children[2]
		case js_ast.KWhile:
			n = n.Children[1]
		default:
			return false
		}
	}
}

func (p *printer) printIf(n *js_ast.Node) {
	p.printSpaceBeforeIdentifier()
	p.print("if")
	p.printSpace()
	p.print("(")
	p.printExpr(n.Children[0], js_ast.LLowest)
	p.print(")")

	yes := n.Children[1]
	var no *js_ast.Node
	if len(n.Children) > 2 {
		no = n.Children[2]
	}

	if yes.Kind == js_ast.KBlock {
		p.printSpace()
		p.printBlock(yes)
		if no != nil {
			p.printSpace()
		} else {
			p.printNewline()
		}
	} else if no != nil && wrapToAvoidAmbiguousElse(yes) {
		p.printSpace()
		p.print("{")
		p.printNewline()

		p.options.Indent++
		p.printStmt(yes)
		p.options.Indent--
		p.needsSemicolon = false

		p.printIndent()
		p.print("}")
		p.printSpace()
	} else {
		p.printNewline()
		p.options.Indent++
		p.printStmt(yes)
		p.options.Indent--
		if no != nil {
			p.printIndent()
		}
	}

	if no != nil {
		p.printSemicolonIfNeeded()
		p.printSpaceBeforeIdentifier()
		p.print("else")

		if no.Kind == js_ast.KBlock {
			p.printSpace()
			p.printBlock(no)
			p.printNewline()
		} else if no.Kind == js_ast.KIf {
			p.print(" ")
			p.printIf(no)
		} else {
			p.printNewline()
			p.options.Indent++
			p.printStmt(no)
			p.options.Indent--
		}
	}
}

func (p *printer) printStmt(n *js_ast.Node) {
	p.printSemicolonIfNeeded()

	switch n.Kind {
	case js_ast.KEmpty:
		p.printIndent()
		p.print(";")
		p.printNewline()

	case js_ast.KBlock:
		p.printIndent()
		p.printBlock(n)
		p.printNewline()

	case js_ast.KExprStmt:
		p.printIndent()
		p.stmtStart = len(p.js)
		p.printExpr(n.Children[0], js_ast.LLowest)
		p.printSemicolonAfterStatement()

	case js_ast.KReturn, js_ast.KThrow:
		p.printIndent()
		if n.Kind == js_ast.KReturn {
			p.printIdentifier("return")
		} else {
			p.printIdentifier("throw")
		}
		if value := n.FirstChild(); value != nil {
			p.printSpace()
			p.printExpr(value, js_ast.LLowest)
		}
		p.printSemicolonAfterStatement()

	case js_ast.KIf:
		p.printIndent()
		p.printIf(n)

	case js_ast.KWhile:
		p.printIndent()
		p.printIdentifier("while")
		p.printSpace()
		p.print("(")
		p.printExpr(n.Children[0], js_ast.LLowest)
		p.print(")")
		p.printBody(n.Children[1])

	case js_ast.KVar:
		p.printDecls("var", n)

	case js_ast.KLet:
		p.printDecls("let", n)

	case js_ast.KConst:
		p.printDecls("const", n)

	case js_ast.KFunction:
		p.printIndent()
		p.printIdentifier("function")
		p.printSpace()
		p.printIdentifier(n.Children[0].Str)
		p.printFn(n)
		p.printNewline()

	case js_ast.KClass:
		p.printIndent()
		p.printIdentifier("class")
		p.printClass(n)
		p.printNewline()

	default:
		panic("Internal error: unexpected " + n.Kind.String() + " in statement position")
	}
}
