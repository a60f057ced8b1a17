package renamer

// Renames every unquoted property name in the main program. Quoted names and
// names that appear anywhere in externs are treated as part of the outside
// world and are never renamed, and no property is renamed to one of them.
// Names that are used more often get shorter names.

import (
	"errors"
	"sort"

	"github.com/esdart/esdart/internal/compiler"
	"github.com/esdart/esdart/internal/config"
	"github.com/esdart/esdart/internal/js_ast"
	"github.com/esdart/esdart/internal/js_traverse"
)

var ErrAlreadyRenamed = errors.New("properties have already been renamed")

type propertySlot struct {
	original string
	name     string
	count    uint32

	// The order the name was first seen in, for determinism
	order uint32
}

type PropertyRenamer struct {
	compiler *compiler.Compiler
	minifier NameMinifier
	reserved map[string]bool
	slots    map[string]*propertySlot
	assigned map[string]bool
	nextName int
}

func Factory() compiler.PassFactory {
	return compiler.PassFactory{
		Name: "renameProperties",
		Create: func(c *compiler.Compiler) (compiler.Pass, error) {
			return NewPropertyRenamer(c)
		},
	}
}

func NewPropertyRenamer(c *compiler.Compiler) (*PropertyRenamer, error) {
	if c.PropertiesRenamed() {
		return nil, ErrAlreadyRenamed
	}

	// Copy the shared set since names from externs are added to it
	reserved := make(map[string]bool)
	for name := range config.ProcessReservedProps(c.Options.ReservedProps) {
		reserved[name] = true
	}

	return &PropertyRenamer{
		compiler: c,
		minifier: DefaultNameMinifier,
		reserved: reserved,
		slots:    make(map[string]*propertySlot),
		assigned: make(map[string]bool),
	}, nil
}

func (r *PropertyRenamer) Process(externs *js_ast.Node, root *js_ast.Node) compiler.Signals {
	if externs != nil {
		r.reserveAll(externs)
	}
	r.countUses(root)
	r.assignNamesByFrequency()
	changed := r.apply(root)
	r.compiler.SetPropertyMap(r.PropertyMap())
	return compiler.Signals{CodeChanged: changed}
}

// Names seen for the first time in a swapped script are appended to the end
// of the existing assignment, so names already in use stay stable
func (r *PropertyRenamer) HotSwapScript(script *js_ast.Node) compiler.Signals {
	r.countUses(script)
	r.assignNamesByFrequency()
	changed := r.apply(script)
	r.compiler.SetPropertyMap(r.PropertyMap())
	return compiler.Signals{CodeChanged: changed}
}

// Maps each renamed property to its new name
func (r *PropertyRenamer) PropertyMap() map[string]string {
	result := make(map[string]string)
	for original, slot := range r.slots {
		if slot.name != "" && slot.name != original {
			result[original] = slot.name
		}
	}
	return result
}

type nameUse uint8

const (
	nameUseRenameable nameUse = iota
	nameUseQuoted
)

// Calls "visit" for every property name in the tree. "at" is the node whose
// "Str" holds the name.
func forEachPropertyName(n *js_ast.Node, visit func(at *js_ast.Node, use nameUse)) {
	switch n.Kind {
	case js_ast.KDot:
		visit(n.LastChild(), nameUseRenameable)

	case js_ast.KMemberFunctionDef, js_ast.KGetterDef, js_ast.KSetterDef, js_ast.KStringKey:
		if n.Flags.Has(js_ast.FlagQuoted) {
			visit(n, nameUseQuoted)
		} else {
			visit(n, nameUseRenameable)
		}

	case js_ast.KIndex:
		if index := n.LastChild(); index.Kind == js_ast.KString {
			visit(index, nameUseQuoted)
		}

	case js_ast.KComputedProp:
		if key := n.FirstChild(); key.Kind == js_ast.KString {
			visit(key, nameUseQuoted)
		}

	case js_ast.KCall:
		if isValidMarker(n) {
			visit(n.LastChild(), nameUseRenameable)
		}
	}
}

// Everything named in externs belongs to code we can't see
func (r *PropertyRenamer) reserveAll(externs *js_ast.Node) {
	r.compiler.NewTraversal(js_traverse.VisitFunc(func(t *js_traverse.Traversal, n *js_ast.Node, parent *js_ast.Node) {
		forEachPropertyName(n, func(at *js_ast.Node, use nameUse) {
			r.reserved[at.Str] = true
		})
	})).Traverse(externs)
}

func (r *PropertyRenamer) countUses(root *js_ast.Node) {
	r.compiler.NewTraversal(js_traverse.VisitFunc(func(t *js_traverse.Traversal, n *js_ast.Node, parent *js_ast.Node) {
		if IsRenameMarker(n) && !isValidMarker(n) {
			t.Log().AddError(t.SourceOf(n), n.Loc, "The argument to "+RenamePropertyFn+" must be a single string literal")
		}
		forEachPropertyName(n, func(at *js_ast.Node, use nameUse) {
			if use == nameUseQuoted {
				r.reserved[at.Str] = true
				return
			}
			slot, ok := r.slots[at.Str]
			if !ok {
				slot = &propertySlot{original: at.Str, order: uint32(len(r.slots))}
				r.slots[at.Str] = slot
			}
			slot.count++
		})
	})).Traverse(root)
}

// This type is just so we can use Go's native sort function
type slotArray []*propertySlot

func (a slotArray) Len() int          { return len(a) }
func (a slotArray) Swap(i int, j int) { a[i], a[j] = a[j], a[i] }

func (a slotArray) Less(i int, j int) bool {
	ai, aj := a[i], a[j]
	return ai.count > aj.count || (ai.count == aj.count && ai.order < aj.order)
}

func (r *PropertyRenamer) assignNamesByFrequency() {
	// Only slots without a name yet take part
	var sorted slotArray
	for _, slot := range r.slots {
		if slot.name == "" {
			sorted = append(sorted, slot)
		}
	}
	sort.Sort(sorted)

	for _, slot := range sorted {
		if r.reserved[slot.original] {
			slot.name = slot.original
			continue
		}

		// Make sure we never generate a reserved name or one that's in use
		name := r.minifier.NumberToMinifiedName(r.nextName)
		r.nextName++
		for r.reserved[name] || r.assigned[name] || isKeyword(name) {
			name = r.minifier.NumberToMinifiedName(r.nextName)
			r.nextName++
		}

		slot.name = name
		r.assigned[name] = true
	}
}

func (r *PropertyRenamer) apply(root *js_ast.Node) bool {
	changed := false
	r.compiler.NewTraversal(js_traverse.VisitFunc(func(t *js_traverse.Traversal, n *js_ast.Node, parent *js_ast.Node) {
		forEachPropertyName(n, func(at *js_ast.Node, use nameUse) {
			if use == nameUseQuoted {
				return
			}
			if slot := r.slots[at.Str]; slot != nil && slot.name != at.Str {
				at.Str = slot.name
				changed = true
			}
		})

		// The marker has served its purpose once the string inside it is renamed
		if isValidMarker(n) {
			str := n.LastChild()
			n.RemoveChild(str)
			parent.ReplaceChild(n, str.SrcrefTree(n))
			changed = true
		}
	})).Traverse(root)
	return changed
}

func isValidMarker(n *js_ast.Node) bool {
	return IsRenameMarker(n) && len(n.Children) == 2 && n.LastChild().Kind == js_ast.KString
}

func isKeyword(name string) bool {
	return js_ast.IsReservedWord(name)
}
