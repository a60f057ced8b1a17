package js_ast

import (
	"fmt"
	"math"
	"strings"

	"github.com/esdart/esdart/internal/logger"
)

type Node struct {
	// This is a non-owning back-reference. It's nil for detached nodes and for
	// the root of a tree.
	Parent *Node

	Children []*Node

	// Identifier names, string values, and non-computed member names
	Str string

	// Number literals
	Num float64

	Loc   logger.Loc
	Kind  Kind
	Op    OpCode
	Flags NodeFlags
}

func NewNode(kind Kind, loc logger.Loc, children ...*Node) *Node {
	n := &Node{Kind: kind, Loc: loc}
	for _, child := range children {
		n.AddChild(child)
	}
	return n
}

func NewName(loc logger.Loc, name string) *Node {
	return &Node{Kind: KName, Loc: loc, Str: name}
}

func NewString(loc logger.Loc, value string) *Node {
	return &Node{Kind: KString, Loc: loc, Str: value}
}

func NewNumber(loc logger.Loc, value float64) *Node {
	return &Node{Kind: KNumber, Loc: loc, Num: value}
}

func NewThis(loc logger.Loc) *Node {
	return &Node{Kind: KThis, Loc: loc}
}

func NewDot(loc logger.Loc, target *Node, name *Node) *Node {
	return NewNode(KDot, loc, target, name)
}

func NewCall(loc logger.Loc, callee *Node, args ...*Node) *Node {
	return NewNode(KCall, loc, append([]*Node{callee}, args...)...)
}

func NewBinary(loc logger.Loc, op OpCode, left *Node, right *Node) *Node {
	n := NewNode(KBinary, loc, left, right)
	n.Op = op
	return n
}

func NewUnary(loc logger.Loc, op OpCode, operand *Node) *Node {
	n := NewNode(KUnary, loc, operand)
	n.Op = op
	return n
}

// Creates a name or a chain of property accesses from a dotted name such as
// "$jscomp.superGet". All nodes share the same location.
func NewQualifiedName(loc logger.Loc, name string) *Node {
	parts := strings.Split(name, ".")
	result := NewName(loc, parts[0])
	for _, part := range parts[1:] {
		result = NewDot(loc, result, NewString(loc, part))
	}
	return result
}

func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

func (n *Node) IndexOfChild(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		panic("Internal error: node already has a parent")
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Puts "replacement" at the position of "child" and detaches "child". The
// replacement must not already be part of a tree.
func (n *Node) ReplaceChild(child *Node, replacement *Node) {
	if replacement.Parent != nil {
		panic("Internal error: replacement node already has a parent")
	}
	i := n.IndexOfChild(child)
	if i < 0 {
		panic("Internal error: node is not a child of this parent")
	}
	n.Children[i] = replacement
	replacement.Parent = n
	child.Parent = nil
}

func (n *Node) RemoveChild(child *Node) {
	i := n.IndexOfChild(child)
	if i < 0 {
		panic("Internal error: node is not a child of this parent")
	}
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	child.Parent = nil
}

// Returns a deep copy of this subtree. The copy is detached from any parent
// and keeps the locations of the original nodes.
func (n *Node) CloneTree() *Node {
	clone := *n
	clone.Parent = nil
	clone.Children = nil
	if len(n.Children) > 0 {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c := child.CloneTree()
			c.Parent = &clone
			clone.Children[i] = c
		}
	}
	return &clone
}

// Overwrites the location of every node in this subtree with the location of
// "from". Used for synthesized nodes so diagnostics and source maps point at
// the code they were generated from.
func (n *Node) SrcrefTree(from *Node) *Node {
	n.Loc = from.Loc
	for _, child := range n.Children {
		child.SrcrefTree(from)
	}
	return n
}

// Structural comparison that ignores locations and parents
func (n *Node) IsEquivalentTo(other *Node) bool {
	if n.Kind != other.Kind || n.Op != other.Op || n.Flags != other.Flags ||
		n.Str != other.Str || len(n.Children) != len(other.Children) {
		return false
	}
	if n.Num != other.Num && !(math.IsNaN(n.Num) && math.IsNaN(other.Num)) {
		return false
	}
	for i, child := range n.Children {
		if !child.IsEquivalentTo(other.Children[i]) {
			return false
		}
	}
	return true
}

func (n *Node) IsName() bool   { return n.Kind == KName }
func (n *Node) IsString() bool { return n.Kind == KString }
func (n *Node) IsThis() bool   { return n.Kind == KThis }
func (n *Node) IsSuper() bool  { return n.Kind == KSuper }
func (n *Node) IsDot() bool    { return n.Kind == KDot }
func (n *Node) IsIndex() bool  { return n.Kind == KIndex }
func (n *Node) IsCall() bool   { return n.Kind == KCall }
func (n *Node) IsClass() bool  { return n.Kind == KClass }

func (n *Node) IsStatic() bool {
	return n.Flags.Has(FlagStatic)
}

func (n *Node) IsAssign() bool {
	return n.Kind == KBinary && n.Op == BinOpAssign
}

func (n *Node) IsAssignOp() bool {
	return n.Kind == KBinary && n.Op.IsAssign()
}

// Returns true for methods, constructors, getters, setters, and computed
// members. These can appear both in class bodies and in object literals.
func (n *Node) IsMemberDef() bool {
	switch n.Kind {
	case KMemberFunctionDef, KGetterDef, KSetterDef:
		return true
	case KComputedProp:
		// Computed object literal properties with a plain value don't define a function
		return n.Parent == nil || n.Parent.Kind == KClassMembers ||
			n.Flags.Has(FlagComputedGetter|FlagComputedSetter|FlagComputedMethod)
	}
	return false
}

// Returns true if this node is written to by its parent, either as the left
// side of an assignment or as the operand of "++" or "--".
func (n *Node) IsAssignTarget() bool {
	p := n.Parent
	if p == nil {
		return false
	}
	switch p.Kind {
	case KBinary:
		return p.Op.IsAssign() && p.FirstChild() == n
	case KUnary:
		return p.Op.IsUpdate()
	}
	return false
}

// Returns true if this node is the function being called by its parent
func (n *Node) IsCallee() bool {
	p := n.Parent
	return p != nil && p.Kind == KCall && p.FirstChild() == n
}

// Returns a multi-line description of the tree, mostly for tests and debugging
func (n *Node) ToStringTree() string {
	sb := strings.Builder{}
	n.appendStringTree(&sb, 0)
	return sb.String()
}

func (n *Node) appendStringTree(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat("    ", indent))
	sb.WriteString(n.Kind.String())
	switch n.Kind {
	case KName, KString, KMemberFunctionDef, KGetterDef, KSetterDef, KStringKey:
		sb.WriteString(fmt.Sprintf(" %s", n.Str))
	case KNumber:
		sb.WriteString(fmt.Sprintf(" %v", n.Num))
	case KBinary, KUnary:
		sb.WriteString(fmt.Sprintf(" %s", OpTable[n.Op].Text))
	}
	if n.IsStatic() {
		sb.WriteString(" [static]")
	}
	if n.Flags.Has(FlagFreeCall) {
		sb.WriteString(" [free_call]")
	}
	sb.WriteString(fmt.Sprintf(" %d\n", n.Loc.Start))
	for _, child := range n.Children {
		child.appendStringTree(sb, indent+1)
	}
}
