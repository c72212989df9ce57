// Package render turns per-row URLs into QR symbol image files. Two
// backends share one encoder: PNG rasterizes via go-qrcode directly, SVG is
// emitted from the encoder's module bitmap.
package render

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Renderer writes a QR encoding of data to a file. Implementations pick the
// file format; Ext names the matching extension without a dot.
type Renderer interface {
	Render(data, path string) error
	Ext() string
}

// Options holds the fixed visual parameters shared by both backends.
type Options struct {
	Size   int  // output width and height in pixels
	Border bool // include the four-module quiet zone
}

// ForFormat returns the renderer for a format selector, "png" or "svg".
func ForFormat(format string, opts Options) (Renderer, error) {
	switch format {
	case "png":
		return &pngRenderer{opts: opts}, nil
	case "svg":
		return &svgRenderer{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown image format %q: must be png or svg", format)
	}
}

// BuildURL joins a base URL and token into the address the QR symbol
// encodes. Any trailing query delimiter on the base is trimmed first; the
// base is otherwise passed through unvalidated.
func BuildURL(base, token string) string {
	return strings.TrimRight(base, "?") + "?token=" + token
}

// encode runs the shared QR encoding step. Highest recovery level tolerates
// roughly 30% symbol damage, which matters for printed badges.
func encode(data string, border bool) (*qrcode.QRCode, error) {
	code, err := qrcode.New(data, qrcode.Highest)
	if err != nil {
		return nil, fmt.Errorf("encoding QR data: %w", err)
	}
	code.DisableBorder = !border
	return code, nil
}

type pngRenderer struct {
	opts Options
}

func (r *pngRenderer) Ext() string { return "png" }

func (r *pngRenderer) Render(data, path string) error {
	code, err := encode(data, r.opts.Border)
	if err != nil {
		return err
	}
	return code.WriteFile(r.opts.Size, path)
}
