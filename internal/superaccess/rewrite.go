package superaccess

import (
	"github.com/esdart/esdart/internal/js_ast"
	"github.com/esdart/esdart/internal/js_traverse"
	"github.com/esdart/esdart/internal/renamer"
	"github.com/esdart/esdart/internal/runtime"
)

// Returns a fresh copy of the property selector of "super.x" or "super[x]".
// Names go through the renaming policy. Copies keep the selector's location.
func (p *Pass) selector(access *js_ast.Node) *js_ast.Node {
	sel := access.LastChild()
	if access.IsDot() {
		return renamer.WrapPropertyName(p.policy, sel)
	}
	return sel.CloneTree()
}

// Builds "helper(this, args...)" with every synthesized node at "from"
func helperCall(from *js_ast.Node, helper string, args ...*js_ast.Node) *js_ast.Node {
	return js_ast.NewCall(from.Loc,
		js_ast.NewQualifiedName(from.Loc, helper),
		append([]*js_ast.Node{js_ast.NewThis(from.Loc)}, args...)...)
}

// "super.x" => "$jscomp.superGet(this, 'x')"
func (p *Pass) rewriteSuperGet(t *js_traverse.Traversal, n *js_ast.Node) {
	if !IsSuperGet(n) {
		panic("Internal error: expected a super property read")
	}

	// Lower anything inside "super[...]" first
	if n.IsIndex() {
		t.Traverse(n.LastChild())
	}

	call := helperCall(n, runtime.SuperGet, p.selector(n))
	n.Parent.ReplaceChild(n, call)
	p.reportRewrite(t, call, "read", runtime.SuperGet)
}

// "super.x = y" => "$jscomp.superSet(this, 'x', y)"
// "super.x += y" => "$jscomp.superSet(this, 'x', $jscomp.superGet(this, 'x') + y)"
func (p *Pass) rewriteSuperSet(t *js_traverse.Traversal, n *js_ast.Node) {
	if !IsSuperSet(n) {
		panic("Internal error: expected an assignment to a super property")
	}
	target := n.FirstChild()

	// The operands have to be in their final form before they're copied
	if target.IsIndex() {
		t.Traverse(target.LastChild())
	}
	t.Traverse(n.LastChild())

	rhs := n.LastChild()
	value := rhs.CloneTree()
	kind := "write"

	if op, ok := n.Op.CompoundAssignOperator(); ok {
		if target.IsIndex() && mayHaveSideEffects(target.LastChild()) {
			t.Warn(target.LastChild(), "The index of this compound assignment to a super property will be evaluated twice")
		}
		get := helperCall(target, runtime.SuperGet, p.selector(target))
		value = js_ast.NewBinary(n.Loc, op, get, value)
		kind = "compound write"
	}

	call := helperCall(n, runtime.SuperSet, p.selector(target), value)
	n.Parent.ReplaceChild(n, call)
	p.reportRewrite(t, call, kind, runtime.SuperSet)
}

func (p *Pass) reportRewrite(t *js_traverse.Traversal, call *js_ast.Node, kind string, helper string) {
	p.signals.CodeChanged = true
	p.signals.NeedsRuntime = true
	t.Debugf(call, "Lowered super property %s to %q", kind, helper)
}
