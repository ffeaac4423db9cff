package render

import (
	"bytes"
	"context"
	"image/png"
	"testing"
	"time"

	"codequiz-service/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterizeProducesPNG(t *testing.T) {
	r, err := NewPNGRasterizer()
	require.NoError(t, err)

	out, err := r.Rasterize(context.Background(), app.Certificate{
		ID:        "cert-1",
		Student:   "Ada Lovelace",
		Course:    "HTML",
		Score:     100,
		IssuedAt:  time.Date(2024, 11, 22, 0, 0, 0, 0, time.UTC),
		Issuer:    "CodeWithHimanshu",
		Signatory: "Himanshu Vishwakarma",
	})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, Width, img.Bounds().Dx())
	assert.Equal(t, Height, img.Bounds().Dy())
}

func TestRasterizeHonoursCancelledContext(t *testing.T) {
	r, err := NewPNGRasterizer()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Rasterize(ctx, app.Certificate{Student: "Ada"})
	assert.ErrorIs(t, err, context.Canceled)
}
