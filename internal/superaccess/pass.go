package superaccess

// Lowers property accesses through "super" in class instance members into
// calls to runtime helpers:
//
//   super.x          =>  $jscomp.superGet(this, "x")
//   super[k] = v     =>  $jscomp.superSet(this, k, v)
//   super.x += v     =>  $jscomp.superSet(this, "x", $jscomp.superGet(this, "x") + v)
//
// Calls such as "super.m()" and constructor calls such as "super()" are left
// alone. Names of properties accessed by name are passed through the property
// renaming policy, so this pass has to run before properties are renamed.

import (
	"errors"

	"github.com/esdart/esdart/internal/compiler"
	"github.com/esdart/esdart/internal/config"
	"github.com/esdart/esdart/internal/js_ast"
	"github.com/esdart/esdart/internal/js_traverse"
)

var ErrIncompatibleOptions = errors.New("super accessor lowering is not compatible with property ambiguation or disambiguation")

var ErrPropertiesAlreadyRenamed = errors.New("super accessor lowering must run before properties are renamed")

type Pass struct {
	compiler *compiler.Compiler
	policy   config.PropertyRenaming

	// Reset at the start of every run
	signals compiler.Signals
}

func Factory() compiler.PassFactory {
	return compiler.PassFactory{
		Name: "superAccessors",
		Create: func(c *compiler.Compiler) (compiler.Pass, error) {
			return NewPass(c)
		},
	}
}

func NewPass(c *compiler.Compiler) (*Pass, error) {
	// The rename markers this pass emits don't know about types
	if c.Options.AmbiguateProperties || c.Options.DisambiguateProperties {
		return nil, ErrIncompatibleOptions
	}
	if c.PropertiesRenamed() {
		return nil, ErrPropertiesAlreadyRenamed
	}
	return &Pass{
		compiler: c,
		policy:   c.Options.PropertyRenaming,
	}, nil
}

func (p *Pass) ShouldTraverse(t *js_traverse.Traversal, n *js_ast.Node, parent *js_ast.Node) bool {
	if IsSuperGet(n) {
		p.rewriteSuperGet(t, n)
		return false
	}
	if IsSuperSet(n) {
		p.rewriteSuperSet(t, n)
		return false
	}
	if isUnsupportedSuperWrite(n) {
		t.Warn(n, "This assignment to a super property cannot be lowered and is left unchanged")
	}
	if isSuperDelete(n) {
		t.Warn(n, "Deleting a super property cannot be lowered and is left unchanged")
	}
	return true
}

func (p *Pass) Visit(t *js_traverse.Traversal, n *js_ast.Node, parent *js_ast.Node) {}

func (p *Pass) Process(externs *js_ast.Node, root *js_ast.Node) compiler.Signals {
	p.signals = compiler.Signals{}
	p.compiler.NewTraversal(p).TraverseRoots(externs, root)
	return p.signals
}

func (p *Pass) HotSwapScript(script *js_ast.Node) compiler.Signals {
	p.signals = compiler.Signals{}
	p.compiler.NewTraversal(p).Traverse(script)
	return p.signals
}
