package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHexColor turns "#rgb" or "#rrggbb" into its components.
func ParseHexColor(s string) (r, g, b int, err error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q", s)
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), nil
}

// ContrastingText picks black or white text for a background color using
// the YIQ brightness formula.
func ContrastingText(r, g, b int) (int, int, int) {
	yiq := (r*299 + g*587 + b*114) / 1000
	if yiq >= 128 {
		return 0, 0, 0
	}
	return 255, 255, 255
}
