package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelResolve(t *testing.T) {
	literal := Literal("Asset")
	assert.False(t, literal.IsComputed())
	assert.Equal(t, "Asset", literal.Resolve(RenderContext{RenderedInButton: true}))
	assert.Equal(t, "Asset", literal.String())

	computed := Computed(func(ctx RenderContext) string {
		if ctx.RenderedInButton {
			return "BSC"
		}
		return "BNB Chain"
	})
	assert.True(t, computed.IsComputed())
	assert.Equal(t, "BSC", computed.Resolve(RenderContext{RenderedInButton: true}))
	assert.Equal(t, "BNB Chain", computed.String())
}

func TestButtonText(t *testing.T) {
	options := []SelectOption[int]{
		{Label: Literal("one"), Value: 1},
		{Label: Computed(func(ctx RenderContext) string {
			if ctx.RenderedInButton {
				return "2"
			}
			return "two"
		}), Value: 2},
	}

	assert.Equal(t, "one", ButtonText(options, 1, "-"))
	assert.Equal(t, "2", ButtonText(options, 2, "-"))
	assert.Equal(t, "-", ButtonText(options, 3, "-"))

	_, ok := SelectedOption(options, 3)
	assert.False(t, ok)
}
