package config

import (
	"errors"
	"fmt"
)

type PropertyRenaming uint8

const (
	// Property names are left alone. By-name super selectors become plain
	// string literals.
	PropertyRenamingOff PropertyRenaming = iota

	// Every unquoted property name is renamed. By-name super selectors are
	// wrapped in a "JSCompiler_renameProperty" marker so that the renaming
	// pass can rename the string consistently with the matching property.
	PropertyRenamingAllUnquoted
)

var ErrUnknownPropertyRenaming = errors.New("unknown property renaming policy")

var propertyRenamingNames = map[PropertyRenaming]string{
	PropertyRenamingOff:         "off",
	PropertyRenamingAllUnquoted: "all-unquoted",
}

func (p PropertyRenaming) String() string {
	if name, ok := propertyRenamingNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PropertyRenaming(%d)", uint8(p))
}

func ParsePropertyRenaming(text string) (PropertyRenaming, error) {
	for p, name := range propertyRenamingNames {
		if name == text {
			return p, nil
		}
	}
	return PropertyRenamingOff, fmt.Errorf("%w: %q (valid values are \"off\" and \"all-unquoted\")", ErrUnknownPropertyRenaming, text)
}

type Options struct {
	// Rewrite "super.x" reads and writes in instance members into calls to
	// the "$jscomp.superGet" and "$jscomp.superSet" runtime helpers
	SuperAccessors bool

	// Type-based property optimizations. Neither composes with the renaming
	// markers the super accessor pass emits, so enabling either one together
	// with "SuperAccessors" is a configuration error.
	AmbiguateProperties    bool
	DisambiguateProperties bool

	PropertyRenaming PropertyRenaming

	// Extra property names that the renaming pass must never change, in
	// addition to the known globals and anything declared in externs
	ReservedProps []string

	RemoveWhitespace bool

	OmitRuntimeForTests bool

	// Emit a debug message with the duration of each compiler phase
	Timing bool
}
