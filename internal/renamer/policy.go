package renamer

import (
	"github.com/esdart/esdart/internal/config"
	"github.com/esdart/esdart/internal/js_ast"
)

// Calls to this function mark a string that holds a property name. The
// property renaming pass replaces each call with the renamed string.
const RenamePropertyFn = "JSCompiler_renameProperty"

// Returns a new expression that evaluates to the property name in "name" at
// run time, taking into account how properties are going to be renamed. The
// result has the location of "name".
func WrapPropertyName(policy config.PropertyRenaming, name *js_ast.Node) *js_ast.Node {
	str := js_ast.NewString(name.Loc, name.Str)

	switch policy {
	case config.PropertyRenamingOff:
		return str

	case config.PropertyRenamingAllUnquoted:
		call := js_ast.NewCall(name.Loc, js_ast.NewName(name.Loc, RenamePropertyFn), str)
		call.Flags |= js_ast.FlagFreeCall
		return call.SrcrefTree(name)
	}

	panic("Internal error: unknown property renaming policy " + policy.String())
}

func IsRenameMarker(n *js_ast.Node) bool {
	if n.Kind != js_ast.KCall {
		return false
	}
	callee := n.FirstChild()
	return callee.Kind == js_ast.KName && callee.Str == RenamePropertyFn
}
