package api

import (
	"fmt"
	"sort"
	"sync"

	"github.com/esdart/esdart/internal/compiler"
	"github.com/esdart/esdart/internal/config"
	"github.com/esdart/esdart/internal/helpers"
	"github.com/esdart/esdart/internal/js_ast"
	"github.com/esdart/esdart/internal/js_parser"
	"github.com/esdart/esdart/internal/js_printer"
	"github.com/esdart/esdart/internal/logger"
	"github.com/esdart/esdart/internal/renamer"
	"github.com/esdart/esdart/internal/runtime"
	"github.com/esdart/esdart/internal/superaccess"
)

func validateColor(value StderrColor) logger.StderrColor {
	switch value {
	case ColorIfTerminal:
		return logger.ColorIfTerminal
	case ColorNever:
		return logger.ColorNever
	case ColorAlways:
		return logger.ColorAlways
	default:
		panic("Invalid color")
	}
}

func validateLogLevel(value LogLevel) logger.LogLevel {
	switch value {
	case LogLevelDebug:
		return logger.LevelDebug
	case LogLevelInfo:
		return logger.LevelInfo
	case LogLevelWarning:
		return logger.LevelWarning
	case LogLevelError:
		return logger.LevelError
	case LogLevelSilent:
		return logger.LevelSilent
	default:
		panic("Invalid log level")
	}
}

func validatePropertyRenaming(value PropertyRenaming) config.PropertyRenaming {
	switch value {
	case PropertyRenamingOff:
		return config.PropertyRenamingOff
	case PropertyRenamingAllUnquoted:
		return config.PropertyRenamingAllUnquoted
	default:
		panic("Invalid property renaming policy")
	}
}

func validateReservedProps(log logger.Log, names []string) []string {
	var valid []string
	for _, name := range names {
		if !js_ast.IsIdentifier(name) {
			log.AddError(nil, logger.Loc{}, fmt.Sprintf("Invalid reserved property name: %q", name))
			continue
		}
		valid = append(valid, name)
	}
	return valid
}

func validateInputs(log logger.Log, inputs []Input) []Input {
	seen := make(map[string]bool)
	valid := make([]Input, 0, len(inputs))
	for _, input := range inputs {
		path := prettyPath(input.Path)
		if seen[path] {
			log.AddError(nil, logger.Loc{}, fmt.Sprintf("Duplicate input file %q", path))
			continue
		}
		seen[path] = true
		valid = append(valid, Input{Path: path, Contents: input.Contents})
	}
	return valid
}

func validateOptions(log logger.Log, options TransformOptions) config.Options {
	return config.Options{
		SuperAccessors:         options.LowerSuperAccessors,
		AmbiguateProperties:    options.AmbiguateProperties,
		DisambiguateProperties: options.DisambiguateProperties,
		PropertyRenaming:       validatePropertyRenaming(options.PropertyRenaming),
		ReservedProps:          validateReservedProps(log, options.ReservedProps),
		RemoveWhitespace:       options.MinifyWhitespace,
		OmitRuntimeForTests:    options.OmitRuntime,
		Timing:                 options.Timing,
	}
}

func prettyPath(path string) string {
	if path == "" {
		return "<stdin>"
	}
	return path
}

func newLog(options TransformOptions) logger.Log {
	if options.LogLevel == LogLevelSilent {
		return logger.NewDeferLog()
	}
	return logger.NewStderrLog(logger.StderrOptions{
		IncludeSource: true,
		ErrorLimit:    options.ErrorLimit,
		Color:         validateColor(options.Color),
		LogLevel:      validateLogLevel(options.LogLevel),
	})
}

func messagesOfKind(kind logger.MsgKind, msgs []logger.Msg) []Message {
	var filtered []Message
	for _, msg := range msgs {
		if msg.Kind != kind {
			continue
		}
		var location *Location
		if loc := msg.Location; loc != nil {
			location = &Location{
				File:     loc.File,
				Line:     loc.Line,
				Column:   loc.Column,
				Length:   loc.Length,
				LineText: loc.LineText,
			}
		}
		filtered = append(filtered, Message{Text: msg.Text, Location: location})
	}
	return filtered
}

// Turns a panic inside "fn" into an error message instead of crashing the
// host. Returns true if there was a panic.
func catchPanic(log logger.Log, fn func()) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			log.AddError(nil, logger.Loc{}, fmt.Sprintf("panic: %v\n%s", r, helpers.PrettyPrintedStack()))
			panicked = true
		}
	}()
	fn()
	return
}

func passesFor(options config.Options) []compiler.PassFactory {
	var factories []compiler.PassFactory
	if options.SuperAccessors {
		factories = append(factories, superaccess.Factory())
	}
	if options.PropertyRenaming == config.PropertyRenamingAllUnquoted {
		factories = append(factories, renamer.Factory())
	}
	return factories
}

var runtimeOnce sync.Once
var runtimeScript *js_ast.Node

// The runtime is parsed once per process and only ever printed, never
// modified, so it's safe to share between compilations
func parsedRuntime() *js_ast.Node {
	runtimeOnce.Do(func() {
		log := logger.NewDeferLog()
		script, ok := js_parser.Parse(log, logger.Source{PrettyPath: "<runtime>", Contents: runtime.Code})
		if !ok {
			panic(fmt.Sprintf("Internal error: failed to parse the runtime: %v", log.Done()))
		}
		runtimeScript = script
	})
	return runtimeScript
}

func printOutput(c *compiler.Compiler) []byte {
	minify := c.Options.RemoveWhitespace
	printOptions := js_printer.Options{MinifyWhitespace: minify}
	j := helpers.Joiner{}

	// Minified scripts don't end in a semicolon, so chunks need a separator
	// to keep automatic semicolon insertion from merging them
	addChunk := func(js []byte) {
		if len(js) == 0 {
			return
		}
		if j.Length() > 0 {
			if minify {
				if j.LastByte() != ';' {
					j.AddString(";")
				}
			} else {
				j.EnsureNewlineAtEnd()
			}
		}
		j.AddBytes(js)
	}

	if c.Signals().NeedsRuntime && !c.Options.OmitRuntimeForTests {
		if !minify {
			j.AddString(runtime.Banner())
		}
		addChunk(js_printer.Print(parsedRuntime(), printOptions))
	}
	for _, script := range c.Main().Children {
		addChunk(js_printer.Print(script, printOptions))
	}

	j.EnsureNewlineAtEnd()
	return j.Done()
}

type compilation struct {
	compiler *compiler.Compiler

	// Only a successful compilation can be hot swapped. Otherwise some passes
	// may never have run over the tree.
	ok bool
}

func transformImpl(inputs []Input, options TransformOptions) (*compilation, TransformResult) {
	log := newLog(options)
	comp := &compilation{}
	var js []byte

	if catchPanic(log, func() {
		opts := validateOptions(log, options)
		inputs := validateInputs(log, inputs)
		c := compiler.New(log, opts)
		comp.compiler = c

		for _, externs := range options.Externs {
			c.AddExterns(externs.Contents, prettyPath(externs.Path))
		}
		for _, input := range inputs {
			c.AddScript(input.Contents, input.Path)
		}
		if log.HasErrors() {
			return
		}

		if err := c.Compile(passesFor(opts)...); err != nil {
			log.AddError(nil, logger.Loc{}, err.Error())
			return
		}
		if log.HasErrors() {
			return
		}

		js = printOutput(c)
		comp.ok = true
	}) {
		comp.ok = false
	}

	return comp, finishResult(log, comp, js)
}

func (s *Session) updateImpl(path string, contents string) TransformResult {
	path = prettyPath(path)
	found := false
	for i := range s.inputs {
		if prettyPath(s.inputs[i].Path) == path {
			s.inputs[i].Contents = contents
			found = true
		}
	}
	if !found {
		s.inputs = append(s.inputs, Input{Path: path, Contents: contents})
	}

	// Start over if there's no good tree to patch
	if s.compiled == nil || !s.compiled.ok {
		var result TransformResult
		s.compiled, result = transformImpl(s.inputs, s.options)
		return result
	}

	log := newLog(s.options)
	c := s.compiled.compiler
	var js []byte

	if catchPanic(log, func() {
		c.SetLog(log)
		if !c.HotSwap(contents, path) || log.HasErrors() {
			return
		}
		js = printOutput(c)
	}) {
		// The tree may be half rewritten
		s.compiled.ok = false
	}

	return finishResult(log, s.compiled, js)
}

func finishResult(log logger.Log, comp *compilation, js []byte) TransformResult {
	msgs := log.Done()
	result := TransformResult{
		Errors:   messagesOfKind(logger.Error, msgs),
		Warnings: messagesOfKind(logger.Warning, msgs),
	}
	if len(result.Errors) == 0 && js != nil {
		result.JS = js
		if c := comp.compiler; c != nil && c.PropertiesRenamed() {
			result.PropertyMap = c.PropertyMap()
		}
	}
	return result
}

func propertyMapJSON(propertyMap map[string]string) []byte {
	keys := make([]string, 0, len(propertyMap))
	for key := range propertyMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	j := helpers.Joiner{}
	j.AddString("{")
	for i, key := range keys {
		if i > 0 {
			j.AddString(",")
		}
		j.AddString("\n  ")
		j.AddBytes(helpers.QuoteForJSON(key, false))
		j.AddString(": ")
		j.AddBytes(helpers.QuoteForJSON(propertyMap[key], false))
	}
	if len(keys) > 0 {
		j.AddString("\n")
	}
	j.AddString("}\n")
	return j.Done()
}
