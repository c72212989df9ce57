package render

import (
	"fmt"
	"os"
	"strings"
)

type svgRenderer struct {
	opts Options
}

func (r *svgRenderer) Ext() string { return "svg" }

func (r *svgRenderer) Render(data, path string) error {
	code, err := encode(data, r.opts.Border)
	if err != nil {
		return err
	}
	svg, err := svgFromBitmap(code.Bitmap(), r.opts.Size)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(svg), 0o644)
}

// svgFromBitmap produces a self-contained SVG document for a QR module
// bitmap: a white background with one black rect per dark module. The
// viewBox is in module units so the document scales losslessly.
func svgFromBitmap(bitmap [][]bool, size int) (string, error) {
	n := len(bitmap)
	if n == 0 {
		return "", fmt.Errorf("empty QR bitmap")
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`,
		n, n, size, size,
	))
	sb.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="#fff"/>`, n, n))

	for y, row := range bitmap {
		for x, dark := range row {
			if dark {
				sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="1" height="1" fill="#000"/>`, x, y))
			}
		}
	}

	sb.WriteString(`</svg>` + "\n")
	return sb.String(), nil
}
