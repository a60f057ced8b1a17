package superaccess

import "github.com/esdart/esdart/internal/js_ast"

type MemberKind uint8

const (
	MemberNone MemberKind = iota
	MemberMethod
	MemberConstructor
	MemberGetter
	MemberSetter
)

var memberKindNames = []string{
	MemberNone:        "none",
	MemberMethod:      "method",
	MemberConstructor: "constructor",
	MemberGetter:      "getter",
	MemberSetter:      "setter",
}

func (kind MemberKind) String() string {
	return memberKindNames[kind]
}

// The class member whose body contains a node
type Context struct {
	Member *js_ast.Node
	Kind   MemberKind
	Static bool
}

func (ctx Context) IsInstance() bool {
	return ctx.Kind != MemberNone && !ctx.Static
}

// Walks up from "n" to the class member that decides what "super" means at
// "n". Only class members count: methods in object literals have a different
// home object, so they end the search with no context. So does reaching a
// class body without passing through a member.
//
// The key of a computed member and the "extends" clause of a class are
// evaluated outside the class body, so the search skips the class there and
// continues in the enclosing code.
func ContextOf(n *js_ast.Node) Context {
	child := n
	for p := n.Parent; p != nil; child, p = p, p.Parent {
		switch {
		case p.IsClass():
			if child == p.LastChild() {
				return Context{}
			}

		case p.IsMemberDef():
			if p.Parent == nil || p.Parent.Kind != js_ast.KClassMembers {
				return Context{}
			}
			if p.Kind == js_ast.KComputedProp && child == p.FirstChild() {
				// Continue from the class itself
				p = p.Parent.Parent
				if p == nil {
					return Context{}
				}
				continue
			}
			return Context{
				Member: p,
				Kind:   memberKind(p),
				Static: p.IsStatic(),
			}
		}
	}
	return Context{}
}

func memberKind(member *js_ast.Node) MemberKind {
	switch member.Kind {
	case js_ast.KGetterDef:
		return MemberGetter
	case js_ast.KSetterDef:
		return MemberSetter
	case js_ast.KComputedProp:
		switch {
		case member.Flags.Has(js_ast.FlagComputedGetter):
			return MemberGetter
		case member.Flags.Has(js_ast.FlagComputedSetter):
			return MemberSetter
		}
	case js_ast.KMemberFunctionDef:
		if member.Str == "constructor" && !member.IsStatic() {
			return MemberConstructor
		}
	}
	return MemberMethod
}
