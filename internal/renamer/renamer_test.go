package renamer

import (
	"strings"
	"testing"

	"github.com/esdart/esdart/internal/compiler"
	"github.com/esdart/esdart/internal/config"
	"github.com/esdart/esdart/internal/js_ast"
	"github.com/esdart/esdart/internal/js_printer"
	"github.com/esdart/esdart/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func printMain(c *compiler.Compiler) string {
	sb := strings.Builder{}
	for _, script := range c.Main().Children {
		sb.Write(js_printer.Print(script, js_printer.Options{}))
	}
	return sb.String()
}

func messages(msgs []logger.Msg) string {
	text := ""
	for _, msg := range msgs {
		text += msg.String(logger.StderrOptions{}, logger.TerminalInfo{})
	}
	return text
}

func expectRenamed(t *testing.T, externs string, contents string, expected string) *compiler.Compiler {
	t.Helper()
	log := logger.NewDeferLog()
	c := compiler.New(log, config.Options{PropertyRenaming: config.PropertyRenamingAllUnquoted})
	if externs != "" {
		require.True(t, c.AddExterns(externs, "externs.js"))
	}
	require.True(t, c.AddScript(contents, "<stdin>"))
	require.NoError(t, c.Compile(Factory()))
	assert.Empty(t, messages(log.Done()))
	assert.Equal(t, expected, printMain(c))
	return c
}

func TestWrapPropertyNameOff(t *testing.T) {
	name := js_ast.NewString(logger.Loc{Start: 7}, "x")
	wrapped := WrapPropertyName(config.PropertyRenamingOff, name)
	assert.Equal(t, "STRING x 7\n", wrapped.ToStringTree())
	assert.NotSame(t, name, wrapped)
}

func TestWrapPropertyNameAllUnquoted(t *testing.T) {
	name := js_ast.NewString(logger.Loc{Start: 7}, "x")
	wrapped := WrapPropertyName(config.PropertyRenamingAllUnquoted, name)
	assert.Equal(t, ""+
		"CALL [free_call] 7\n"+
		"    NAME JSCompiler_renameProperty 7\n"+
		"    STRING x 7\n", wrapped.ToStringTree())
	assert.True(t, IsRenameMarker(wrapped))
	assert.Equal(t, "JSCompiler_renameProperty(\"x\")", string(js_printer.Print(wrapped, js_printer.Options{})))
}

func TestWrapPropertyNameUnknownPolicy(t *testing.T) {
	assert.Panics(t, func() {
		WrapPropertyName(config.PropertyRenaming(9), js_ast.NewString(logger.Loc{}, "x"))
	})
}

func TestRenameByFrequency(t *testing.T) {
	c := expectRenamed(t, "",
		"class A { foo() { return this.bar + this.bar; } } new A().foo(); x.baz; x['baz'];",
		"class A {\n  b() {\n    return this.a + this.a;\n  }\n}\nnew A().b();\nx.baz;\nx[\"baz\"];\n")
	assert.Equal(t, map[string]string{"foo": "b", "bar": "a"}, c.PropertyMap())
	assert.True(t, c.PropertiesRenamed())
	assert.True(t, c.Signals().CodeChanged)
}

func TestExternsAndBuiltinsAreReserved(t *testing.T) {
	expectRenamed(t, "x.keep;",
		"a.keep; a.other; A.prototype.toString; class B { constructor() {} }",
		"a.keep;\na.a;\nA.prototype.toString;\nclass B {\n  constructor() {\n  }\n}\n")
}

func TestUserReservedProps(t *testing.T) {
	log := logger.NewDeferLog()
	c := compiler.New(log, config.Options{
		PropertyRenaming: config.PropertyRenamingAllUnquoted,
		ReservedProps:    []string{"keep"},
	})
	require.True(t, c.AddScript("o.keep; o.other;", "<stdin>"))
	require.NoError(t, c.Compile(Factory()))
	assert.Equal(t, "o.keep;\no.a;\n", printMain(c))
}

func TestMarkers(t *testing.T) {
	expectRenamed(t, "",
		"JSCompiler_renameProperty('foo'); o.foo; JSCompiler_renameProperty('toString');",
		"\"a\";\no.a;\n\"toString\";\n")
}

func TestShorthandProperty(t *testing.T) {
	expectRenamed(t, "", "x = { foo }; y.foo;", "x = { a: foo };\ny.a;\n")
}

func TestInvalidMarker(t *testing.T) {
	log := logger.NewDeferLog()
	c := compiler.New(log, config.Options{})
	require.True(t, c.AddScript("JSCompiler_renameProperty(x);", "<stdin>"))
	require.NoError(t, c.Compile(Factory()))
	assert.Equal(t, "<stdin>: error: The argument to JSCompiler_renameProperty must be a single string literal\n",
		messages(log.Done()))
}

func TestHotSwapKeepsNames(t *testing.T) {
	c := expectRenamed(t, "", "a.foo;", "a.a;\n")
	require.True(t, c.HotSwap("a.bar; a.foo; a.bar;", "<stdin>"))
	assert.Equal(t, "a.b;\na.a;\na.b;\n", printMain(c))
	assert.Equal(t, map[string]string{"foo": "a", "bar": "b"}, c.PropertyMap())
}

func TestAlreadyRenamed(t *testing.T) {
	c := compiler.New(logger.NewDeferLog(), config.Options{})
	c.SetPropertyMap(nil)
	_, err := NewPropertyRenamer(c)
	assert.ErrorIs(t, err, ErrAlreadyRenamed)

	err = c.Compile(Factory())
	assert.ErrorIs(t, err, ErrAlreadyRenamed)
	assert.ErrorContains(t, err, "renameProperties: ")
}

func TestNumberToMinifiedName(t *testing.T) {
	assert.Equal(t, "a", DefaultNameMinifier.NumberToMinifiedName(0))
	assert.Equal(t, "$", DefaultNameMinifier.NumberToMinifiedName(53))
	assert.Equal(t, "aa", DefaultNameMinifier.NumberToMinifiedName(54))
	assert.Equal(t, "ba", DefaultNameMinifier.NumberToMinifiedName(55))
}

func TestGeneratedNamesSkipKeywords(t *testing.T) {
	assert.True(t, isKeyword("do"))
	assert.True(t, isKeyword("in"))
	assert.False(t, isKeyword("a"))
}
