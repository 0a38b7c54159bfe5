package config

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/blockone/pkg/errors"
	"github.com/matzehuels/blockone/pkg/scene"
)

// ParseColor parses "#rgb" or "#rrggbb" into an opaque color.
func ParseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse color %q", s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Style converts the theme into a scene style. Debug marker colors are not
// configurable.
func (t ThemeConfig) Style() (scene.Style, error) {
	st := scene.DefaultStyle()
	for _, f := range []struct {
		hex string
		dst *color.Color
	}{
		{t.Fill, &st.Fill},
		{t.Border, &st.Border},
		{t.BorderFocused, &st.BorderFocused},
		{t.Link, &st.Link},
	} {
		c, err := ParseColor(f.hex)
		if err != nil {
			return scene.Style{}, err
		}
		*f.dst = c
	}
	st.Radius = t.Radius
	st.BorderWidth = t.BorderWidth
	st.LinkWidth = t.LinkWidth
	return st, nil
}

// BackgroundColor returns the canvas background, falling back to white.
func (t ThemeConfig) BackgroundColor() color.RGBA {
	c, err := ParseColor(t.Background)
	if err != nil {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return c
}
