package chain

import "marketScope/internal/ui"

// SelectOptions builds the chain switcher options. The button shows the
// short name, the menu shows the full one.
func SelectOptions() []ui.SelectOption[ChainID] {
	ids := ChainIDs()
	options := make([]ui.SelectOption[ChainID], 0, len(ids))
	for _, id := range ids {
		meta := chainMetadata[id]
		options = append(options, ui.SelectOption[ChainID]{
			Label: ui.Computed(func(ctx ui.RenderContext) string {
				if ctx.RenderedInButton {
					return meta.ShortName
				}
				return meta.Name
			}),
			Value: id,
		})
	}
	return options
}
