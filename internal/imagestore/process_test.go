package imagestore

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"runtime"
	"testing"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 80, B: 40, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func animatedGIF(t *testing.T, w, h int) []byte {
	t.Helper()
	anim := &gif.GIF{}
	for i := 0; i < 2; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, w, h), palette.Plan9)
		frame.Set(i, i, color.White)
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 10)
	}
	var buf bytes.Buffer
	require.NoError(t, gif.EncodeAll(&buf, anim))
	return buf.Bytes()
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		data   func(t *testing.T) []byte
		c      Constraints
		reason string
	}{
		{
			name: "ok",
			data: func(t *testing.T) []byte { return pngBytes(t, 400, 300) },
			c:    ProfileConstraints,
		},
		{
			name:   "too small",
			data:   func(t *testing.T) []byte { return pngBytes(t, 99, 300) },
			c:      ProfileConstraints,
			reason: "Image too small. Minimum dimensions: 100x100px",
		},
		{
			name:   "too large",
			data:   func(t *testing.T) []byte { return pngBytes(t, 2001, 300) },
			c:      ProfileConstraints,
			reason: "Image too large. Maximum dimensions: 2000x2000px",
		},
		{
			name:   "too many bytes",
			data:   func(t *testing.T) []byte { return make([]byte, 1<<20+1) },
			c:      Constraints{MaxBytes: 1 << 20},
			reason: "File size exceeds 1MB limit",
		},
		{
			name:   "aspect mismatch",
			data:   func(t *testing.T) []byte { return pngBytes(t, 400, 400) },
			c:      Constraints{MinWidth: 1, MinHeight: 1, AspectW: 2, AspectH: 1},
			reason: "Image aspect ratio must be 2:1",
		},
		{
			name: "aspect within tolerance",
			data: func(t *testing.T) []byte { return pngBytes(t, 410, 200) },
			c:    Constraints{MinWidth: 1, MinHeight: 1, AspectW: 2, AspectH: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rej := Validate(tt.data(t), tt.c)
			if tt.reason == "" {
				assert.Nil(t, rej)
				return
			}
			require.NotNil(t, rej)
			assert.Equal(t, tt.reason, rej.Reason)
		})
	}
}

func TestValidate_GarbageIsRejectedNotErrored(t *testing.T) {
	meta, rej := Validate([]byte("definitely not an image"), ProfileConstraints)
	require.NotNil(t, rej)
	assert.Contains(t, rej.Reason, "Image validation failed")
	assert.Zero(t, meta.Width)
}

func TestValidate_ReportsMetadata(t *testing.T) {
	data := pngBytes(t, 640, 480)
	meta, rej := Validate(data, ProfileConstraints)
	require.Nil(t, rej)
	assert.Equal(t, "png", meta.Format)
	assert.Equal(t, 640, meta.Width)
	assert.Equal(t, 480, meta.Height)
	assert.Equal(t, int64(len(data)), meta.Bytes)
	assert.False(t, meta.Animated)
}

func TestTransform_DownscalesAndEncodesWebP(t *testing.T) {
	out, err := Transform(pngBytes(t, 3000, 1500))
	require.NoError(t, err)
	require.True(t, isWebP(out))

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.Width)
	assert.Equal(t, 1000, cfg.Height)
}

func TestTransform_NoUpscale(t *testing.T) {
	out, err := Transform(pngBytes(t, 320, 200))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestTransform_AnimatedPassThrough(t *testing.T) {
	in := animatedGIF(t, 120, 120)

	meta, rej := Validate(in, ProfileConstraints)
	require.Nil(t, rej)
	assert.True(t, meta.Animated)

	out, err := Transform(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

// gifHeader is a GIF whose logical screen is w x h, followed by frames empty
// image descriptors and no pixel data.
func gifHeader(w, h uint16, frames int) []byte {
	b := []byte("GIF89a")
	b = append(b, byte(w), byte(w>>8), byte(h), byte(h>>8), 0x00, 0x00, 0x00)
	for i := 0; i < frames; i++ {
		b = append(b, 0x2C, 0, 0, 0, 0, byte(w), byte(w>>8), byte(h), byte(h>>8), 0x00)
		b = append(b, 0x08, 0x00) // LZW code size, empty data
	}
	return append(b, 0x3B)
}

func TestValidate_OversizedGIFRejectedFromHeader(t *testing.T) {
	meta, rej := Validate(gifHeader(8000, 8000, 2), ProfileConstraints)
	require.NotNil(t, rej)
	assert.Equal(t, "Image too large. Maximum dimensions: 2000x2000px", rej.Reason)
	assert.Equal(t, 8000, meta.Width)
	assert.True(t, meta.Animated)
}

func TestValidate_OversizedAnimatedGIFDoesNotDecodeFrames(t *testing.T) {
	in := animatedGIF(t, 2500, 2500)

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	_, rej := Validate(in, ProfileConstraints)
	runtime.ReadMemStats(&after)

	require.NotNil(t, rej)
	assert.Contains(t, rej.Reason, "too large")
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20),
		"a rejected GIF must not have its frames decoded")
}

func TestGIFFrames(t *testing.T) {
	assert.Equal(t, 2, gifFrames(animatedGIF(t, 16, 16), 10))
	assert.Equal(t, 1, gifFrames(gifHeader(16, 16, 1), 10))
	assert.Equal(t, 2, gifFrames(gifHeader(16, 16, 5), 2))
	assert.Equal(t, 0, gifFrames([]byte("GIF89a"), 10))

	var single bytes.Buffer
	require.NoError(t, gif.Encode(&single, image.NewPaletted(image.Rect(0, 0, 8, 8), palette.Plan9), nil))
	assert.Equal(t, 1, gifFrames(single.Bytes(), 10))
}

func TestTransform_Corrupt(t *testing.T) {
	_, err := Transform([]byte{0x89, 'P', 'N', 'G'})
	assert.Error(t, err)
}
