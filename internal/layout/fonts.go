package layout

import _ "embed"

// EmbeddedFont is the family registered from the bundled DejaVu Sans Condensed files.
// It covers Latin Extended, Greek and Cyrillic, which the core PDF fonts do not.
const EmbeddedFont = "DejaVu Sans Condensed"

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
	//go:embed fonts/DejaVuSansCondensed-Oblique.ttf
	fontItalic []byte
	//go:embed fonts/DejaVuSansCondensed-BoldOblique.ttf
	fontBoldItalic []byte
)

// embeddedStyles maps gofpdf style strings to the bundled font files.
var embeddedStyles = []struct {
	style string
	data  []byte
}{
	{"", fontRegular},
	{"B", fontBold},
	{"I", fontItalic},
	{"BI", fontBoldItalic},
}
