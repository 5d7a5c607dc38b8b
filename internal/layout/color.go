package layout

import (
	"fmt"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// Default feature colours.
const (
	DefaultExonColor = "#305c96"
	DefaultCDSColor  = "#b38d1b"
)

var (
	edgeColor      = gg.Black
	connectorColor = gg.Hex("#808080")
	labelColor     = gg.Black
)

// ParseColor accepts "#rgb", "#rrggbb" (optionally with alpha) or an SVG
// colour keyword such as "steelblue".
func ParseColor(s string) (gg.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		switch len(hex) {
		case 3, 4, 6, 8:
		default:
			return gg.RGBA{}, fmt.Errorf("invalid colour %q: expected #rgb or #rrggbb", s)
		}
		for _, c := range hex {
			if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
				return gg.RGBA{}, fmt.Errorf("invalid colour %q: bad hex digit %q", s, c)
			}
		}
		return gg.Hex(s), nil
	}

	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return gg.RGBA{}, fmt.Errorf("invalid colour %q: not a hex value or colour name", s)
	}
	return gg.FromColor(c), nil
}
