package ui

// RenderContext describes where a label is being rendered.
type RenderContext struct {
	RenderedInButton bool
	RenderedInHeader bool
}

// Label is either a literal string or a string computed from the render context.
type Label struct {
	text    string
	compute func(RenderContext) string
}

// Literal returns a Label that renders the same text everywhere.
func Literal(text string) Label {
	return Label{text: text}
}

// Computed returns a Label resolved per render context.
func Computed(fn func(RenderContext) string) Label {
	return Label{compute: fn}
}

// IsComputed reports whether the label depends on the render context.
func (l Label) IsComputed() bool {
	return l.compute != nil
}

// Resolve renders the label for ctx.
func (l Label) Resolve(ctx RenderContext) string {
	if l.compute != nil {
		return l.compute(ctx)
	}
	return l.text
}

// String renders the label outside of any button or header.
func (l Label) String() string {
	return l.Resolve(RenderContext{})
}
