package output

import (
	"wtask/internal/config"
	"wtask/internal/service"
)

const ansiReset = "\x1b[0m"

// Palette maps statuses to ANSI color sequences. A nil *Palette paints
// nothing.
type Palette struct {
	colors map[service.Status]string
}

var (
	lightPalette = &Palette{colors: map[service.Status]string{
		service.StatusNew:        "\x1b[34m", // blue
		service.StatusInProgress: "\x1b[33m", // yellow
		service.StatusDone:       "\x1b[32m", // green
	}}
	darkPalette = &Palette{colors: map[service.Status]string{
		service.StatusNew:        "\x1b[94m",
		service.StatusInProgress: "\x1b[93m",
		service.StatusDone:       "\x1b[92m",
	}}
)

// PaletteFor returns the palette for theme, or nil when color is off.
func PaletteFor(theme config.Theme, color bool) *Palette {
	if !color {
		return nil
	}
	if theme == config.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// Paint wraps s in the color of status.
func (p *Palette) Paint(status service.Status, s string) string {
	if p == nil {
		return s
	}
	code, ok := p.colors[status.OrDefault()]
	if !ok {
		return s
	}
	return code + s + ansiReset
}
