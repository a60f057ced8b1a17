package compiler

// The compiler owns the parsed program and runs passes over it strictly in
// sequence. Passes are created just before they run so that a pass can refuse
// to be constructed based on what earlier passes did (e.g. after properties
// were renamed).

import (
	"fmt"

	"github.com/esdart/esdart/internal/config"
	"github.com/esdart/esdart/internal/helpers"
	"github.com/esdart/esdart/internal/js_ast"
	"github.com/esdart/esdart/internal/js_parser"
	"github.com/esdart/esdart/internal/js_traverse"
	"github.com/esdart/esdart/internal/logger"
)

// What a pass reports back about its run. Both signals only ever go from
// false to true.
type Signals struct {
	// The tree was modified
	CodeChanged bool

	// The output uses the helpers from "internal/runtime"
	NeedsRuntime bool
}

func (s *Signals) Merge(other Signals) {
	s.CodeChanged = s.CodeChanged || other.CodeChanged
	s.NeedsRuntime = s.NeedsRuntime || other.NeedsRuntime
}

type Pass interface {
	Process(externs *js_ast.Node, root *js_ast.Node) Signals
}

// A pass that can re-run over a single changed script
type HotSwapPass interface {
	Pass
	HotSwapScript(script *js_ast.Node) Signals
}

type PassFactory struct {
	Name   string
	Create func(c *Compiler) (Pass, error)
}

type Compiler struct {
	Options config.Options

	log     logger.Log
	externs *js_ast.Node
	main    *js_ast.Node
	sources map[*js_ast.Node]*logger.Source
	timer   *helpers.Timer

	// Passes that already ran, in order, so hot swaps can repeat them
	passes []Pass

	signals           Signals
	propertiesRenamed bool
	propertyMap       map[string]string
	nextSourceIndex   uint32
}

func New(log logger.Log, options config.Options) *Compiler {
	c := &Compiler{
		Options: options,
		log:     log,
		externs: js_ast.NewNode(js_ast.KRoot, logger.Loc{}),
		main:    js_ast.NewNode(js_ast.KRoot, logger.Loc{}),
		sources: make(map[*js_ast.Node]*logger.Source),
	}
	if options.Timing {
		c.timer = &helpers.Timer{}
	}
	return c
}

func (c *Compiler) Log() logger.Log {
	return c.log
}

// Messages from anything that happens after this call go to "log". This is
// used to collect the messages of each incremental update separately.
func (c *Compiler) SetLog(log logger.Log) {
	c.log = log
}

func (c *Compiler) Externs() *js_ast.Node {
	return c.externs
}

func (c *Compiler) Main() *js_ast.Node {
	return c.main
}

func (c *Compiler) Signals() Signals {
	return c.signals
}

func (c *Compiler) PropertiesRenamed() bool {
	return c.propertiesRenamed
}

func (c *Compiler) PropertyMap() map[string]string {
	return c.propertyMap
}

// Called by the property renaming pass once it has renamed everything. Any
// pass that emits rename markers must be created before this.
func (c *Compiler) SetPropertyMap(propertyMap map[string]string) {
	c.propertiesRenamed = true
	c.propertyMap = propertyMap
}

func (c *Compiler) AddExterns(contents string, prettyPath string) bool {
	return c.addScript(c.externs, contents, prettyPath)
}

func (c *Compiler) AddScript(contents string, prettyPath string) bool {
	return c.addScript(c.main, contents, prettyPath)
}

func (c *Compiler) addScript(root *js_ast.Node, contents string, prettyPath string) bool {
	script, ok := c.parse(contents, prettyPath)
	if ok {
		root.AddChild(script)
	}
	return ok
}

func (c *Compiler) parse(contents string, prettyPath string) (*js_ast.Node, bool) {
	source := &logger.Source{
		Index:      c.nextSourceIndex,
		PrettyPath: prettyPath,
		Contents:   contents,
	}
	c.nextSourceIndex++

	script, ok := js_parser.Parse(c.log, *source)
	if !ok {
		return nil, false
	}
	c.sources[script] = source
	return script, true
}

func (c *Compiler) SourceOf(script *js_ast.Node) *logger.Source {
	return c.sources[script]
}

// Returns the script in the main program that was parsed from this path
func (c *Compiler) ScriptByPath(prettyPath string) *js_ast.Node {
	for _, script := range c.main.Children {
		if source := c.sources[script]; source != nil && source.PrettyPath == prettyPath {
			return script
		}
	}
	return nil
}

func (c *Compiler) NewTraversal(callback js_traverse.Callback) *js_traverse.Traversal {
	return js_traverse.New(c.log, c.sources, callback)
}

// Creates and runs each pass in order. Creating a pass can fail with a
// configuration error, which stops compilation. Passes also don't run once
// an error has been logged.
func (c *Compiler) Compile(factories ...PassFactory) error {
	defer c.timer.Log(c.log)

	for _, factory := range factories {
		if c.log.HasErrors() {
			break
		}

		pass, err := factory.Create(c)
		if err != nil {
			return fmt.Errorf("%s: %w", factory.Name, err)
		}

		c.timer.Begin(factory.Name)
		c.signals.Merge(pass.Process(c.externs, c.main))
		c.timer.End(factory.Name)
		c.passes = append(c.passes, pass)
	}
	return nil
}

// Replaces the main script that was parsed from "prettyPath" with a fresh
// parse of "contents" and repeats every pass that ran on the new script. A
// path that wasn't seen before is added as a new script.
func (c *Compiler) HotSwap(contents string, prettyPath string) bool {
	script, ok := c.parse(contents, prettyPath)
	if !ok {
		return false
	}

	if old := c.ScriptByPath(prettyPath); old != nil {
		c.main.ReplaceChild(old, script)
		delete(c.sources, old)
	} else {
		c.main.AddChild(script)
	}

	defer c.timer.Log(c.log)
	for _, pass := range c.passes {
		if hotSwap, ok := pass.(HotSwapPass); ok {
			c.timer.Begin("hot swap")
			c.signals.Merge(hotSwap.HotSwapScript(script))
			c.timer.End("hot swap")
		}
	}
	return true
}
