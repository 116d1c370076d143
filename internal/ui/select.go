package ui

// SelectOption is one entry of a dropdown.
type SelectOption[T comparable] struct {
	Label Label
	Value T
}

// SelectedOption returns the option whose value matches value.
func SelectedOption[T comparable](options []SelectOption[T], value T) (SelectOption[T], bool) {
	for _, option := range options {
		if option.Value == value {
			return option, true
		}
	}
	return SelectOption[T]{}, false
}

// ButtonText renders the label of the selected option as shown inside the
// select button, or placeholder when nothing matches.
func ButtonText[T comparable](options []SelectOption[T], value T, placeholder string) string {
	option, ok := SelectedOption(options, value)
	if !ok {
		return placeholder
	}
	return option.Label.Resolve(RenderContext{RenderedInButton: true})
}
