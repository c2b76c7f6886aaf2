package model

import "time"

// Category color tags, matching the fixed pastel palette the UI renders.
const (
	ColorPink     = "pink"
	ColorPeach    = "peach"
	ColorMint     = "mint"
	ColorLavender = "lavender"
	ColorSky      = "sky"
	ColorButter   = "butter"
)

// PaletteColors lists every valid category color tag in display order.
var PaletteColors = []string{
	ColorPink, ColorPeach, ColorMint, ColorLavender, ColorSky, ColorButter,
}

// ValidColor reports whether the tag belongs to the palette.
func ValidColor(color string) bool {
	for _, c := range PaletteColors {
		if c == color {
			return true
		}
	}
	return false
}

// Category is a user-defined bucket owning zero or more tasks.
// Deleting a category deletes its tasks with it.
type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
