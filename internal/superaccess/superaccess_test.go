package superaccess

import (
	"fmt"
	"strings"
	"testing"

	"github.com/esdart/esdart/internal/compiler"
	"github.com/esdart/esdart/internal/config"
	"github.com/esdart/esdart/internal/js_ast"
	"github.com/esdart/esdart/internal/js_printer"
	"github.com/esdart/esdart/internal/js_traverse"
	"github.com/esdart/esdart/internal/logger"
	"github.com/esdart/esdart/internal/renamer"
	"github.com/esdart/esdart/internal/test"
)

// Builds a class in the same format the printer uses so unchanged input
// prints back identically
func classWith(member string, body ...string) string {
	return "class A extends B {\n  " + member + " {\n    " + strings.Join(body, "\n    ") + "\n  }\n}\n"
}

func method(body ...string) string {
	return classWith("m()", body...)
}

func printScripts(root *js_ast.Node) string {
	sb := strings.Builder{}
	for _, script := range root.Children {
		sb.Write(js_printer.Print(script, js_printer.Options{}))
	}
	return sb.String()
}

// Everything except debug messages
func messages(log logger.Log) string {
	text := ""
	for _, msg := range log.Done() {
		if msg.Kind != logger.Debug {
			text += msg.String(logger.StderrOptions{}, logger.TerminalInfo{})
		}
	}
	return text
}

func newCompiler(t *testing.T, options config.Options, contents string) (*compiler.Compiler, logger.Log) {
	t.Helper()
	log := logger.NewDeferLog()
	options.SuperAccessors = true
	c := compiler.New(log, options)
	if !c.AddScript(contents, "<stdin>") {
		t.Fatal("Parse error: " + messages(log))
	}
	return c, log
}

func expectLoweredWithWarnings(t *testing.T, options config.Options, contents string, expected string, warnings string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		c, log := newCompiler(t, options, contents)
		if err := c.Compile(Factory()); err != nil {
			t.Fatal(err)
		}
		test.AssertEqualWithDiff(t, messages(log), warnings)
		test.AssertEqualWithDiff(t, printScripts(c.Main()), expected)

		// Nothing is lowered unless the output changed
		test.AssertEqual(t, c.Signals().CodeChanged, contents != expected)
		test.AssertEqual(t, c.Signals().NeedsRuntime, contents != expected)
	})
}

func expectLowered(t *testing.T, contents string, expected string) {
	t.Helper()
	expectLoweredWithWarnings(t, config.Options{}, contents, expected, "")
}

func expectLoweredRenaming(t *testing.T, contents string, expected string) {
	t.Helper()
	expectLoweredWithWarnings(t, config.Options{PropertyRenaming: config.PropertyRenamingAllUnquoted}, contents, expected, "")
}

func expectUnchanged(t *testing.T, contents string) {
	t.Helper()
	expectLowered(t, contents, contents)
}

var instanceMembers = []string{
	"m()",
	"constructor()",
	"get g()",
	"set s(v)",
	"[k]()",
	"get [k]()",
	"set [k](v)",
}

var staticMembers = []string{
	"static m()",
	"static constructor()",
	"static get g()",
	"static set s(v)",
	"static [k]()",
	"static get [k]()",
	"static set [k](v)",
}

type accessCase struct {
	source  string
	lowered string
}

var accessCases = []accessCase{
	{"f(super.x);", "f($jscomp.superGet(this, \"x\"));"},
	{"f(super[i]);", "f($jscomp.superGet(this, i));"},
	{"super.x = 1;", "$jscomp.superSet(this, \"x\", 1);"},
	{"super[i] = 1;", "$jscomp.superSet(this, i, 1);"},
	{"super.x -= 1;", "$jscomp.superSet(this, \"x\", $jscomp.superGet(this, \"x\") - 1);"},
	{"super[i] -= 1;", "$jscomp.superSet(this, i, $jscomp.superGet(this, i) - 1);"},
}

func TestMemberMatrix(t *testing.T) {
	for _, member := range instanceMembers {
		for _, c := range accessCases {
			expectLowered(t, classWith(member, c.source), classWith(member, c.lowered))
		}
	}
	for _, member := range staticMembers {
		for _, c := range accessCases {
			expectUnchanged(t, classWith(member, c.source))
		}
	}
}

func TestOutsideClass(t *testing.T) {
	expectUnchanged(t, "super.x;\n")
	expectUnchanged(t, "super.x = 1;\n")
	expectUnchanged(t, "function f() {\n  return super[k];\n}\n")
}

func TestCallsAreNotLowered(t *testing.T) {
	expectUnchanged(t, method("super.m();"))
	expectUnchanged(t, method("super[\"m\"]();"))
	expectUnchanged(t, method("super[m](1, 2);"))
	expectUnchanged(t, classWith("constructor()", "super(1);"))

	// The arguments of a call are still lowered
	expectLowered(t, method("super.m(super.x);"), method("super.m($jscomp.superGet(this, \"x\"));"))

	// A super property used as a constructor is just a read
	expectLowered(t, method("new super.x();"), method("new ($jscomp.superGet(this, \"x\"))();"))

	// Accessing a property of a method isn't a call of the method
	expectLowered(t, method("super.m.call(this);"), method("$jscomp.superGet(this, \"m\").call(this);"))
}

func TestNested(t *testing.T) {
	expectLowered(t, method("super.x = super.y;"),
		method("$jscomp.superSet(this, \"x\", $jscomp.superGet(this, \"y\"));"))
	expectLowered(t, method("super.x = super.y = 10;"),
		method("$jscomp.superSet(this, \"x\", $jscomp.superSet(this, \"y\", 10));"))
	expectLowered(t, method("super.x = 1 + super.y;"),
		method("$jscomp.superSet(this, \"x\", 1 + $jscomp.superGet(this, \"y\"));"))
	expectLowered(t, method("return super[super.k];"),
		method("return $jscomp.superGet(this, $jscomp.superGet(this, \"k\"));"))
	expectLowered(t, method("super[super.k] = super.v;"),
		method("$jscomp.superSet(this, $jscomp.superGet(this, \"k\"), $jscomp.superGet(this, \"v\"));"))
	expectLowered(t, method("return super.x + super.y;"),
		method("return $jscomp.superGet(this, \"x\") + $jscomp.superGet(this, \"y\");"))
	expectLowered(t, method("x = super.y;"), method("x = $jscomp.superGet(this, \"y\");"))
}

func TestCompound(t *testing.T) {
	expectLowered(t, method("super.a += b;"),
		method("$jscomp.superSet(this, \"a\", $jscomp.superGet(this, \"a\") + b);"))
	expectLowered(t, method("super.a += super.b;"),
		method("$jscomp.superSet(this, \"a\", $jscomp.superGet(this, \"a\") + $jscomp.superGet(this, \"b\"));"))
	expectLowered(t, method("super.a *= b + c;"),
		method("$jscomp.superSet(this, \"a\", $jscomp.superGet(this, \"a\") * (b + c));"))
	expectLowered(t, method("super.a **= 2;"),
		method("$jscomp.superSet(this, \"a\", $jscomp.superGet(this, \"a\") ** 2);"))
	expectLowered(t, method("super.a >>>= 1;"),
		method("$jscomp.superSet(this, \"a\", $jscomp.superGet(this, \"a\") >>> 1);"))
	expectLowered(t, method("super.a = super.b += 1;"),
		method("$jscomp.superSet(this, \"a\", $jscomp.superSet(this, \"b\", $jscomp.superGet(this, \"b\") + 1));"))

	// Indices with side effects are evaluated twice, so that gets a warning
	expectLoweredWithWarnings(t, config.Options{},
		method("super[k()] += 1;"),
		method("$jscomp.superSet(this, k(), $jscomp.superGet(this, k()) + 1);"),
		"<stdin>: warning: The index of this compound assignment to a super property will be evaluated twice\n")
}

func TestUnsupportedWrites(t *testing.T) {
	for _, source := range []string{"super.x ||= 1;", "super.x &&= 1;", "super[i] ??= 1;", "super.x++;", "--super[i];"} {
		expectLoweredWithWarnings(t, config.Options{}, method(source), method(source),
			"<stdin>: warning: This assignment to a super property cannot be lowered and is left unchanged\n")
	}

	// Reads on the right side are still lowered
	expectLoweredWithWarnings(t, config.Options{},
		method("super.x ||= super.y;"),
		method("super.x ||= $jscomp.superGet(this, \"y\");"),
		"<stdin>: warning: This assignment to a super property cannot be lowered and is left unchanged\n")
}

func TestDeleteIsNotLowered(t *testing.T) {
	for _, source := range []string{"delete super.x;", "delete super[i];"} {
		expectLoweredWithWarnings(t, config.Options{}, method(source), method(source),
			"<stdin>: warning: Deleting a super property cannot be lowered and is left unchanged\n")
	}

	// Only the deleted access itself is kept
	expectLoweredWithWarnings(t, config.Options{},
		method("delete super[super.k];"),
		method("delete super[$jscomp.superGet(this, \"k\")];"),
		"<stdin>: warning: Deleting a super property cannot be lowered and is left unchanged\n")
}

func TestNestedFunctionsAndClasses(t *testing.T) {
	expectLowered(t, method("return () => super.x;"), method("return () => $jscomp.superGet(this, \"x\");"))

	// The nearest class member decides
	expectLowered(t,
		method("class C {", "  static s() {", "    return super.x;", "  }", "}", "return super.y;"),
		method("class C {", "  static s() {", "    return super.x;", "  }", "}", "return $jscomp.superGet(this, \"y\");"))
	expectLowered(t,
		classWith("static m()", "class C {", "  n() {", "    return super.x;", "  }", "}"),
		classWith("static m()", "class C {", "  n() {", "    return $jscomp.superGet(this, \"x\");", "  }", "}"))

	// Computed keys belong to the code around the class
	expectLowered(t,
		method("class C {", "  [super.k]() {", "  }", "}"),
		method("class C {", "  [$jscomp.superGet(this, \"k\")]() {", "  }", "}"))
	expectUnchanged(t, classWith("static m()", "class C {", "  [super.k]() {", "  }", "}"))

	// Object literal methods have their own home object
	expectUnchanged(t, method("return { n() {", "  return super.x;", "} };"))
	expectUnchanged(t, "x = { n() {\n  return super.x;\n} };\n")
}

func TestRenamingPolicy(t *testing.T) {
	expectLoweredRenaming(t, method("return super.x;"),
		method("return $jscomp.superGet(this, JSCompiler_renameProperty(\"x\"));"))
	expectLoweredRenaming(t, method("super.x = 1;"),
		method("$jscomp.superSet(this, JSCompiler_renameProperty(\"x\"), 1);"))

	// Indices are never wrapped
	expectLoweredRenaming(t, method("return super[\"x\"];"),
		method("return $jscomp.superGet(this, \"x\");"))

	// Both copies of the name are wrapped the same way
	expectLoweredRenaming(t, method("super.a += 1;"),
		method("$jscomp.superSet(this, JSCompiler_renameProperty(\"a\"), $jscomp.superGet(this, JSCompiler_renameProperty(\"a\")) + 1);"))
}

func TestRenamingAfterLowering(t *testing.T) {
	c, log := newCompiler(t, config.Options{PropertyRenaming: config.PropertyRenamingAllUnquoted},
		"class B { get foo() { return 1; } }\n"+
			"class A extends B { get foo() { return super.foo + 1; } }\n"+
			"x['bar'];\n")
	if err := c.Compile(Factory(), renamer.Factory()); err != nil {
		t.Fatal(err)
	}
	test.AssertEqualWithDiff(t, messages(log), "")
	test.AssertEqualWithDiff(t, printScripts(c.Main()), ""+
		"class B {\n  get a() {\n    return 1;\n  }\n}\n"+
		"class A extends B {\n  get a() {\n    return $jscomp.superGet(this, \"a\") + 1;\n  }\n}\n"+
		"x[\"bar\"];\n")
}

func TestPreconditions(t *testing.T) {
	c, _ := newCompiler(t, config.Options{AmbiguateProperties: true}, "x;")
	_, err := NewPass(c)
	test.AssertEqual(t, err, ErrIncompatibleOptions)

	c, _ = newCompiler(t, config.Options{DisambiguateProperties: true}, "x;")
	_, err = NewPass(c)
	test.AssertEqual(t, err, ErrIncompatibleOptions)

	c, _ = newCompiler(t, config.Options{PropertyRenaming: config.PropertyRenamingAllUnquoted}, "x;")
	if err := c.Compile(renamer.Factory(), Factory()); err == nil || !strings.HasSuffix(err.Error(), ErrPropertiesAlreadyRenamed.Error()) {
		t.Fatalf("Expected %q, got %v", ErrPropertiesAlreadyRenamed, err)
	}
}

func expectPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil || !strings.HasPrefix(fmt.Sprint(r), "Internal error") {
			t.Fatalf("Expected an internal error, got %v", r)
		}
	}()
	fn()
}

func TestRewriteRequiresMatch(t *testing.T) {
	c, _ := newCompiler(t, config.Options{}, classWith("static m()", "super.x = super.y;"))
	p, err := NewPass(c)
	if err != nil {
		t.Fatal(err)
	}
	tr := c.NewTraversal(p)
	assign := findFirst(c.Main(), func(n *js_ast.Node) bool { return n.IsAssign() })
	read := assign.LastChild()
	expectPanic(t, func() { p.rewriteSuperGet(tr, read) })
	expectPanic(t, func() { p.rewriteSuperSet(tr, assign) })
	expectPanic(t, func() { p.rewriteSuperGet(tr, js_ast.NewName(logger.Loc{}, "x")) })
}

func TestIdempotence(t *testing.T) {
	c, _ := newCompiler(t, config.Options{PropertyRenaming: config.PropertyRenamingAllUnquoted},
		method("super.a += super[b] = super.c;"))
	p, err := NewPass(c)
	if err != nil {
		t.Fatal(err)
	}

	first := p.Process(c.Externs(), c.Main())
	test.AssertEqual(t, first, compiler.Signals{CodeChanged: true, NeedsRuntime: true})
	output := printScripts(c.Main())

	second := p.Process(c.Externs(), c.Main())
	test.AssertEqual(t, second, compiler.Signals{})
	test.AssertEqualWithDiff(t, printScripts(c.Main()), output)
}

func TestLocations(t *testing.T) {
	// Offsets: "super" is at 16, "x" at 22, and "y" at 26
	contents := "class A { m() { super.x = y; } }"

	for _, policy := range []config.PropertyRenaming{config.PropertyRenamingOff, config.PropertyRenamingAllUnquoted} {
		c, _ := newCompiler(t, config.Options{PropertyRenaming: policy}, contents)
		if err := c.Compile(Factory()); err != nil {
			t.Fatal(err)
		}
		stmt := findFirst(c.Main(), func(n *js_ast.Node) bool { return n.Kind == js_ast.KExprStmt })

		selector := "        STRING x 22\n"
		if policy == config.PropertyRenamingAllUnquoted {
			selector = "" +
				"        CALL [free_call] 22\n" +
				"            NAME JSCompiler_renameProperty 22\n" +
				"            STRING x 22\n"
		}
		test.AssertEqualWithDiff(t, stmt.ToStringTree(), ""+
			"EXPR_RESULT 16\n"+
			"    CALL 16\n"+
			"        GETPROP 16\n"+
			"            NAME $jscomp 16\n"+
			"            STRING superSet 16\n"+
			"        THIS 16\n"+
			selector+
			"        NAME y 26\n")
	}
}

func TestDebugMessages(t *testing.T) {
	c, log := newCompiler(t, config.Options{}, "class A { m() { super.x = super.y; } }")
	if err := c.Compile(Factory()); err != nil {
		t.Fatal(err)
	}
	text := ""
	for _, msg := range log.Done() {
		text += msg.String(logger.StderrOptions{}, logger.TerminalInfo{})
	}
	test.AssertEqualWithDiff(t, text, ""+
		"<stdin>: debug: Lowered super property write to \"$jscomp.superSet\"\n"+
		"<stdin>: debug: Lowered super property read to \"$jscomp.superGet\"\n")
}

func TestExternsAndHotSwap(t *testing.T) {
	log := logger.NewDeferLog()
	c := compiler.New(log, config.Options{SuperAccessors: true})
	if !c.AddExterns(method("return super.e;"), "externs.js") || !c.AddScript("x;\n", "a.js") {
		t.Fatal("Parse error")
	}
	if err := c.Compile(Factory()); err != nil {
		t.Fatal(err)
	}
	test.AssertEqualWithDiff(t, printScripts(c.Externs()), method("return $jscomp.superGet(this, \"e\");"))
	test.AssertEqualWithDiff(t, printScripts(c.Main()), "x;\n")

	if !c.HotSwap(method("return super.x;"), "a.js") {
		t.Fatal("Parse error")
	}
	test.AssertEqualWithDiff(t, printScripts(c.Main()), method("return $jscomp.superGet(this, \"x\");"))
	test.AssertEqual(t, c.Signals().NeedsRuntime, true)
}

func findFirst(root *js_ast.Node, match func(n *js_ast.Node) bool) *js_ast.Node {
	if match(root) {
		return root
	}
	for _, child := range root.Children {
		if found := findFirst(child, match); found != nil {
			return found
		}
	}
	return nil
}

// Collects every "super.x" and "super[x]" in a tree
func superAccesses(c *compiler.Compiler, root *js_ast.Node) []*js_ast.Node {
	var result []*js_ast.Node
	c.NewTraversal(js_traverse.VisitFunc(func(t *js_traverse.Traversal, n *js_ast.Node, parent *js_ast.Node) {
		if (n.IsDot() || n.IsIndex()) && n.FirstChild().IsSuper() {
			result = append(result, n)
		}
	})).Traverse(root)
	return result
}
