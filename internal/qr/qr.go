// Package qr encodes payloads as QR codes and renders them as PNG or SVG.
package qr

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
	goqrcode "github.com/skip2/go-qrcode"
)

// DefaultScale is the number of pixels per module.
const DefaultScale = 10

// ErrEmptyPayload is returned when there is nothing to encode.
var ErrEmptyPayload = errors.New("no url set")

// Format is an image serialization.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat returns FormatSVG for "svg" and FormatPNG for anything else.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatSVG)) {
		return FormatSVG
	}
	return FormatPNG
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Code is an encoded payload. Modules includes the quiet zone; true is dark.
type Code struct {
	Payload string
	Modules [][]bool
}

// Encode builds the module grid for payload at the highest error-correction
// level. The payload is encoded as its UTF-8 bytes.
func Encode(payload string) (*Code, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}
	q, err := goqrcode.New(payload, goqrcode.Highest)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return &Code{Payload: payload, Modules: q.Bitmap()}, nil
}

// Size returns the grid width in modules.
func (c *Code) Size() int { return len(c.Modules) }

// Write renders c in format f at scale pixels per module.
func (c *Code) Write(w io.Writer, f Format, scale int) error {
	if f == FormatSVG {
		return c.WriteSVG(w, scale)
	}
	return c.WritePNG(w, scale)
}

// WritePNG renders a two-colour paletted PNG.
func (c *Code) WritePNG(w io.Writer, scale int) error {
	scale = normalizeScale(scale)
	size := c.Size() * scale
	img := image.NewPaletted(image.Rect(0, 0, size, size), color.Palette{color.White, color.Black})
	for y, row := range c.Modules {
		for x, dark := range row {
			if !dark {
				continue
			}
			for py := y * scale; py < (y+1)*scale; py++ {
				off := img.PixOffset(x*scale, py)
				for i := 0; i < scale; i++ {
					img.Pix[off+i] = 1
				}
			}
		}
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WriteSVG renders a white background and one rect per horizontal run of
// dark modules.
func (c *Code) WriteSVG(w io.Writer, scale int) error {
	scale = normalizeScale(scale)
	size := c.Size() * scale
	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Rect(0, 0, size, size, "fill:#ffffff")
	for y, row := range c.Modules {
		for x := 0; x < len(row); {
			if !row[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] {
				x++
			}
			canvas.Rect(start*scale, y*scale, (x-start)*scale, scale, "fill:#000000")
		}
	}
	canvas.End()
	return nil
}

func normalizeScale(scale int) int {
	if scale < 1 {
		return DefaultScale
	}
	return scale
}
