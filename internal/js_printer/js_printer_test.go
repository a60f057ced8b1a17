package js_printer

import (
	"math"
	"testing"

	"github.com/esdart/esdart/internal/js_ast"
	"github.com/esdart/esdart/internal/js_parser"
	"github.com/esdart/esdart/internal/logger"
	"github.com/esdart/esdart/internal/test"
)

func expectPrintedCommon(t *testing.T, name string, contents string, expected string, options Options) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog()
		tree, ok := js_parser.Parse(log, test.SourceForTest(contents))
		msgs := log.Done()
		text := ""
		for _, msg := range msgs {
			text += msg.String(logger.StderrOptions{}, logger.TerminalInfo{})
		}
		test.AssertEqualWithDiff(t, text, "")
		if !ok {
			t.Fatal("Parse error")
		}
		js := Print(tree, options)
		test.AssertEqualWithDiff(t, string(js), expected)
	})
}

func expectPrinted(t *testing.T, contents string, expected string) {
	t.Helper()
	expectPrintedCommon(t, contents, contents, expected, Options{})
}

func expectPrintedMinify(t *testing.T, contents string, expected string) {
	t.Helper()
	expectPrintedCommon(t, contents+" [minified]", contents, expected, Options{
		MinifyWhitespace: true,
	})
}

func expectPrintedNode(t *testing.T, n *js_ast.Node, expected string) {
	t.Helper()
	test.AssertEqualWithDiff(t, string(Print(n, Options{})), expected)
}

func loc() logger.Loc {
	return logger.Loc{}
}

func TestMinify(t *testing.T) {
	expectPrintedMinify(t, "class A extends B { m() { return super.x; } }", "class A extends B{m(){return super.x}}")
	expectPrintedMinify(t, "class A { static get x() { return 1; } }", "class A{static get x(){return 1}}")
	expectPrintedMinify(t, "a = b + +c; d = e - -f;", "a=b+ +c;d=e- -f")
	expectPrintedMinify(t, "a = b + ++c; d = e-- > f;", "a=b+ ++c;d=e-- >f")
	expectPrintedMinify(t, "if (a) b(); else c();", "if(a)b();else c()")
	expectPrintedMinify(t, "x = (a) => a;", "x=a=>a")
	expectPrintedMinify(t, "x = 0.5; y = typeof z;", "x=.5;y=typeof z")
	expectPrintedMinify(t, "x = 1 in y;", "x=1 in y")
	expectPrintedMinify(t, "var a = 1, b = { c: 2 };", "var a=1,b={c:2}")
}

func TestNumber(t *testing.T) {
	expectPrinted(t, "x = 1e21;", "x = 1e21;\n")
	expectPrinted(t, "x = 123456789012;", "x = 123456789012;\n")
	expectPrinted(t, "x = 0.000001;", "x = 1e-6;\n")
	expectPrinted(t, "x = 1.5e-10;", "x = 1.5e-10;\n")
	expectPrinted(t, "x = 1..y;", "x = (1).y;\n")

	expectPrintedNode(t, js_ast.NewNumber(loc(), math.NaN()), "NaN")
	expectPrintedNode(t, js_ast.NewNumber(loc(), math.Inf(1)), "Infinity")
	expectPrintedNode(t, js_ast.NewNumber(loc(), math.Inf(-1)), "-Infinity")
	expectPrintedNode(t, js_ast.NewDot(loc(), js_ast.NewNumber(loc(), -1), js_ast.NewString(loc(), "x")), "(-1).x")
	expectPrintedNode(t, js_ast.NewDot(loc(), js_ast.NewNumber(loc(), 2), js_ast.NewString(loc(), "x")), "(2).x")
}

func TestFreeCall(t *testing.T) {
	call := js_ast.NewCall(loc(), js_ast.NewQualifiedName(loc(), "a.b"), js_ast.NewThis(loc()))
	expectPrintedNode(t, call, "a.b(this)")
	call.Flags |= js_ast.FlagFreeCall
	expectPrintedNode(t, call, "(0, a.b)(this)")

	// A free call through a plain name has no "this" to hide
	rename := js_ast.NewCall(loc(), js_ast.NewName(loc(), "JSCompiler_renameProperty"), js_ast.NewString(loc(), "x"))
	rename.Flags |= js_ast.FlagFreeCall
	expectPrintedNode(t, rename, "JSCompiler_renameProperty(\"x\")")
}

func TestPropertyNames(t *testing.T) {
	// Selectors that aren't identifiers are printed as index expressions
	dot := js_ast.NewDot(loc(), js_ast.NewName(loc(), "a"), js_ast.NewString(loc(), "b-c"))
	expectPrintedNode(t, dot, "a[\"b-c\"]")

	expectPrinted(t, "x = { 'a': 1, a: a, 'b': b };", "x = { \"a\": 1, a, \"b\": b };\n")
}

func TestStatementStart(t *testing.T) {
	expectPrinted(t, "(class {}).x;", "(class {\n}).x;\n")
	expectPrinted(t, "(function f() {}).call();", "(function f() {\n}).call();\n")
	expectPrinted(t, "x = function() {};", "x = function() {\n};\n")
}

func TestNestedIf(t *testing.T) {
	// The inner "if" would steal the "else" without braces
	inner := js_ast.NewNode(js_ast.KIf, loc(), js_ast.NewName(loc(), "b"),
		js_ast.NewNode(js_ast.KExprStmt, loc(), js_ast.NewName(loc(), "c")))
	outer := js_ast.NewNode(js_ast.KIf, loc(), js_ast.NewName(loc(), "a"), inner,
		js_ast.NewNode(js_ast.KExprStmt, loc(), js_ast.NewName(loc(), "d")))
	expectPrintedNode(t, outer, "if (a) {\n  if (b)\n    c;\n} else\n  d;\n")
}

func TestIndent(t *testing.T) {
	log := logger.NewDeferLog()
	tree, _ := js_parser.Parse(log, test.SourceForTest("f();"))
	test.AssertEqualWithDiff(t, string(Print(tree, Options{Indent: 2})), "    f();\n")
}
