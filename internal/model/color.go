package model

// ColorVariant holds the CSS classes for one contrast mode.
type ColorVariant struct {
	Background string `json:"background"`
	Border     string `json:"border"`
	Text       string `json:"text"`
}

// ColorAssignment is one palette entry, carrying both contrast modes so the
// grid can render normal and "light" cells without re-deriving anything.
type ColorAssignment struct {
	ID     string       `json:"id"`
	Normal ColorVariant `json:"normal"`
	Light  ColorVariant `json:"light"`
}
