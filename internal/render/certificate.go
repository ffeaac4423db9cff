// Package render draws certificates as PNG images.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"strconv"

	"codequiz-service/internal/app"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	Width  = 1200
	Height = 800
)

// PNGRasterizer renders certificates with the Go fonts onto a gradient card.
type PNGRasterizer struct {
	regular *truetype.Font
	bold    *truetype.Font
}

func NewPNGRasterizer() (*PNGRasterizer, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &PNGRasterizer{regular: regular, bold: bold}, nil
}

func (r *PNGRasterizer) face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size})
}

// Rasterize draws cert and encodes it as PNG.
func (r *PNGRasterizer) Rasterize(ctx context.Context, cert app.Certificate) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dc := gg.NewContext(Width, Height)

	grad := gg.NewLinearGradient(0, 0, Width, Height)
	grad.AddColorStop(0, color.RGBA{R: 0x66, G: 0x7e, B: 0xea, A: 0xff})
	grad.AddColorStop(1, color.RGBA{R: 0x76, G: 0x4b, B: 0xa2, A: 0xff})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, Width, Height)
	dc.Fill()

	dc.SetColor(color.White)
	dc.SetLineWidth(4)
	dc.DrawRoundedRectangle(30, 30, Width-60, Height-60, 16)
	dc.Stroke()

	cx := float64(Width) / 2
	dc.SetFontFace(r.face(r.bold, 56))
	dc.DrawStringAnchored("Certificate of Completion", cx, 140, 0.5, 0.5)
	dc.DrawRoundedRectangle(cx-64, 180, 128, 4, 2)
	dc.Fill()

	dc.SetFontFace(r.face(r.regular, 26))
	dc.DrawStringAnchored("This is to certify that", cx, 260, 0.5, 0.5)

	dc.SetFontFace(r.face(r.bold, 48))
	dc.DrawStringAnchored(cert.Student, cx, 330, 0.5, 0.5)

	dc.SetFontFace(r.face(r.regular, 26))
	dc.DrawStringAnchored("has successfully completed the", cx, 400, 0.5, 0.5)

	dc.SetFontFace(r.face(r.bold, 38))
	dc.DrawStringAnchored(cert.Course+" Quiz", cx, 455, 0.5, 0.5)

	dc.SetFontFace(r.face(r.regular, 26))
	dc.DrawStringAnchored("with a score of", cx, 510, 0.5, 0.5)

	dc.SetFontFace(r.face(r.bold, 60))
	dc.DrawStringAnchored(strconv.Itoa(cert.Score)+"%", cx, 580, 0.5, 0.5)

	dc.SetLineWidth(2)
	dc.DrawLine(120, 680, 380, 680)
	dc.DrawLine(Width-380, 680, Width-120, 680)
	dc.Stroke()

	dc.SetFontFace(r.face(r.regular, 20))
	dc.DrawStringAnchored(cert.Signatory, 250, 705, 0.5, 0.5)
	dc.DrawStringAnchored(cert.IssueDate(), Width-250, 705, 0.5, 0.5)
	dc.DrawStringAnchored(cert.Issuer, cx, 705, 0.5, 0.5)

	dc.SetFontFace(r.face(r.regular, 14))
	dc.DrawStringAnchored("Founder, "+cert.Issuer, 250, 730, 0.5, 0.5)
	dc.DrawStringAnchored("Certificate ID "+cert.ID, cx, 740, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
