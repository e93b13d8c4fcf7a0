package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	List  ListConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// ListConfig holds bookmark list dimension configuration.
type ListConfig struct {
	// HeaderLines are the rows above the list.
	// Accounts for: app padding (1) + title (1) + category bar (1) + search line (1) + gap (1) = 5
	HeaderLines int

	// FooterLines are the rows below the list: message (1) + hints (1) = 2
	FooterLines int

	// LinesPerItem is the rendered height of one bookmark: title, meta, gap.
	LinesPerItem int

	// MinHeight is the minimum list height.
	MinHeight int

	// ContentPadding is subtracted from terminal width for item rendering.
	ContentPadding int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	URLCharLimit         int
	TitleCharLimit       int
	DescriptionCharLimit int
	CategoryCharLimit    int
	TagsCharLimit        int
	SearchCharLimit      int

	StandardWidth int // Used for form fields
	SearchWidth   int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		List: ListConfig{
			HeaderLines:    5,
			FooterLines:    2,
			LinesPerItem:   3,
			MinHeight:      3,
			ContentPadding: 6,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 50,
			MinWidth:            44,
			MaxWidth:            80,
		},
		Input: InputConfig{
			URLCharLimit:         500,
			TitleCharLimit:       100,
			DescriptionCharLimit: 300,
			CategoryCharLimit:    40,
			TagsCharLimit:        200,
			SearchCharLimit:      100,
			StandardWidth:        48,
			SearchWidth:          40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
