package area

import (
	"regexp"
	"strings"

	errs "github.com/matzehuels/stackviz/pkg/errors"
)

// Style selects how layers are painted.
type Style string

const (
	StyleFilled  Style = "filled"
	StyleOutline Style = "outline"
)

// ParseStyle resolves a style name. The empty string selects StyleFilled.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case "", StyleFilled:
		return StyleFilled, nil
	case StyleOutline:
		return StyleOutline, nil
	}
	return "", errs.New(errs.ErrCodeInvalidStyle, "invalid style: %s (must be 'filled' or 'outline')", s)
}

// DefaultPalette is cycled by layer index.
var DefaultPalette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ParsePalette splits a comma separated list of hex colors.
// An empty string yields DefaultPalette.
func ParsePalette(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultPalette, nil
	}
	var out []string
	for c := range strings.SplitSeq(s, ",") {
		c = strings.TrimSpace(c)
		if !hexColor.MatchString(c) {
			return nil, errs.New(errs.ErrCodeInvalidStyle, "invalid palette color %q", c)
		}
		out = append(out, c)
	}
	return out, nil
}

func colorAt(palette []string, i int) string {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return palette[i%len(palette)]
}
