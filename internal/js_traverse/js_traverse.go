package js_traverse

// This drives passes over the mutable tree in "js_ast". A pass gets two
// callbacks for every node: "ShouldTraverse" before the children are visited
// and "Visit" after. A pass that replaces a node from "ShouldTraverse" must
// return false, since the node it was given is no longer in the tree.
//
// Children are iterated by index, so replacing the current child is safe and
// the replacement is not visited again.

import (
	"fmt"

	"github.com/esdart/esdart/internal/js_ast"
	"github.com/esdart/esdart/internal/logger"
)

type Callback interface {
	ShouldTraverse(t *Traversal, n *js_ast.Node, parent *js_ast.Node) bool
	Visit(t *Traversal, n *js_ast.Node, parent *js_ast.Node)
}

// Adapts a plain function into a post-order callback that visits everything
type VisitFunc func(t *Traversal, n *js_ast.Node, parent *js_ast.Node)

func (f VisitFunc) ShouldTraverse(*Traversal, *js_ast.Node, *js_ast.Node) bool {
	return true
}

func (f VisitFunc) Visit(t *Traversal, n *js_ast.Node, parent *js_ast.Node) {
	f(t, n, parent)
}

type Traversal struct {
	log      logger.Log
	callback Callback

	// Maps each script node to the source it was parsed from so messages
	// can point into the right file. Scripts without an entry get messages
	// without a location.
	sources map[*js_ast.Node]*logger.Source
}

func New(log logger.Log, sources map[*js_ast.Node]*logger.Source, callback Callback) *Traversal {
	return &Traversal{
		log:      log,
		callback: callback,
		sources:  sources,
	}
}

// Traverses each root in order. Nil roots are skipped so that callers can
// pass an absent externs tree.
func (t *Traversal) TraverseRoots(roots ...*js_ast.Node) {
	for _, root := range roots {
		if root != nil {
			t.Traverse(root)
		}
	}
}

// Traverses a subtree with this traversal's callback. This can be called
// from inside a callback to handle part of the tree early, before the node
// containing it is replaced.
func (t *Traversal) Traverse(n *js_ast.Node) {
	t.traverseBranch(n, n.Parent)
}

func (t *Traversal) traverseBranch(n *js_ast.Node, parent *js_ast.Node) {
	if !t.callback.ShouldTraverse(t, n, parent) {
		return
	}
	for i := 0; i < len(n.Children); i++ {
		t.traverseBranch(n.Children[i], n)
	}
	t.callback.Visit(t, n, parent)
}

func (t *Traversal) Log() logger.Log {
	return t.log
}

// Returns the source of the script containing this node, or nil if the
// node isn't in a script with a known source
func (t *Traversal) SourceOf(n *js_ast.Node) *logger.Source {
	for ; n != nil; n = n.Parent {
		if n.Kind == js_ast.KScript {
			return t.sources[n]
		}
	}
	return nil
}

func (t *Traversal) Warn(n *js_ast.Node, text string) {
	t.log.AddWarning(t.SourceOf(n), n.Loc, text)
}

func (t *Traversal) Debugf(n *js_ast.Node, format string, args ...interface{}) {
	t.log.AddDebug(t.SourceOf(n), n.Loc, fmt.Sprintf(format, args...))
}
