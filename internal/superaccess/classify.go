package superaccess

import "github.com/esdart/esdart/internal/js_ast"

// Returns true for "super.x" and "super[x]" inside an instance member. This
// doesn't care how the access is used.
func isSuperAccess(n *js_ast.Node) bool {
	return (n.IsDot() || n.IsIndex()) &&
		n.FirstChild().IsSuper() &&
		!n.IsCallee() &&
		ContextOf(n).IsInstance()
}

// Returns true for a read of a property through "super" that can be lowered.
// Method calls such as "super.x()" keep their native form since the helper
// would lose the "this" binding.
func IsSuperGet(n *js_ast.Node) bool {
	return isSuperAccess(n) && !n.IsAssignTarget() && !isDeleteOperand(n)
}

func isDeleteOperand(n *js_ast.Node) bool {
	p := n.Parent
	return p != nil && p.Kind == js_ast.KUnary && p.Op == js_ast.UnOpDelete
}

// Returns true for "super.x = y" and for compound assignments such as
// "super.x += y" that can be split into a read and a write.
func IsSuperSet(n *js_ast.Node) bool {
	if n.Kind != js_ast.KBinary {
		return false
	}
	if n.Op != js_ast.BinOpAssign {
		if _, ok := n.Op.CompoundAssignOperator(); !ok {
			return false
		}
	}
	return isSuperAccess(n.FirstChild())
}

// Returns true for writes to a super property that aren't lowered: logical
// assignments ("super.x ||= y") and updates ("super.x++")
func isUnsupportedSuperWrite(n *js_ast.Node) bool {
	switch n.Kind {
	case js_ast.KBinary:
		if !n.IsAssignOp() || n.IsAssign() {
			return false
		}
		if _, ok := n.Op.CompoundAssignOperator(); ok {
			return false
		}
	case js_ast.KUnary:
		if !n.Op.IsUpdate() {
			return false
		}
	default:
		return false
	}
	return isSuperAccess(n.FirstChild())
}

// Returns true for "delete super.x", which throws at run time. Lowering it
// would delete the helper call's result instead and silently succeed.
func isSuperDelete(n *js_ast.Node) bool {
	return n.Kind == js_ast.KUnary && n.Op == js_ast.UnOpDelete && isSuperAccess(n.FirstChild())
}

// Reports whether evaluating "n" twice could behave differently from
// evaluating it once
func mayHaveSideEffects(n *js_ast.Node) bool {
	switch n.Kind {
	case js_ast.KName, js_ast.KString, js_ast.KNumber, js_ast.KThis,
		js_ast.KTrue, js_ast.KFalse, js_ast.KNull:
		return false
	}
	return true
}
