package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// Preview returns an ANSI-coloured block for a colour. Width is the number
// of character cells. Alpha is ignored.
func Preview(c Color, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R(), c.G(), c.B(), ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// PreviewPair renders sample text in the foreground colour on the
// background colour, centred in a block of the given width.
func PreviewPair(foreground, background Color, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	display := text
	if len(text) > width {
		display = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		display = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, background.R(), background.G(), background.B(), ansiSuffix)
	fg := fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, foreground.R(), foreground.G(), foreground.B(), ansiSuffix)

	return bg + fg + display + ansiReset
}

// FormatWithPreview formats a colour as its preview block followed by its hex code.
func FormatWithPreview(c Color, width int) string {
	return fmt.Sprintf("%s %s", Preview(c, width), c.Hex())
}
