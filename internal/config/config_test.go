package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePropertyRenaming(t *testing.T) {
	cases := []struct {
		desc string
		text string
		want PropertyRenaming
		err  error
	}{
		{desc: "off", text: "off", want: PropertyRenamingOff},
		{desc: "all unquoted", text: "all-unquoted", want: PropertyRenamingAllUnquoted},
		{desc: "unknown", text: "all", want: PropertyRenamingOff, err: ErrUnknownPropertyRenaming},
		{desc: "empty", text: "", want: PropertyRenamingOff, err: ErrUnknownPropertyRenaming},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := ParsePropertyRenaming(tc.text)
			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPropertyRenamingString(t *testing.T) {
	for _, p := range []PropertyRenaming{PropertyRenamingOff, PropertyRenamingAllUnquoted} {
		parsed, err := ParsePropertyRenaming(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	assert.Equal(t, "PropertyRenaming(7)", PropertyRenaming(7).String())
}

func TestProcessReservedProps(t *testing.T) {
	reserved := ProcessReservedProps(nil)
	for _, name := range []string{"prototype", "getPrototypeOf", "superGet", "superSet", "call", "value"} {
		assert.True(t, reserved[name], name)
	}

	// Global names themselves aren't property names
	assert.False(t, reserved["Object"])
	assert.False(t, reserved["myProp"])

	// The shared default must not pick up user-specified names
	withUser := ProcessReservedProps([]string{"myProp"})
	assert.True(t, withUser["myProp"])
	assert.True(t, withUser["prototype"])
	assert.False(t, ProcessReservedProps(nil)["myProp"])
}
