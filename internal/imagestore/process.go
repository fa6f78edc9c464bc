package imagestore

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	MaxEdge     = 2000
	WebPQuality = 85
)

// Validate never fails for a bad image; it returns a Rejection instead.
func Validate(data []byte, c Constraints) (Metadata, *Rejection) {
	if c.MaxBytes > 0 && int64(len(data)) > c.MaxBytes {
		return Metadata{}, &Rejection{Reason: fmt.Sprintf("File size exceeds %dMB limit", c.MaxBytes>>20)}
	}

	meta, err := inspect(data)
	if err != nil {
		return Metadata{}, &Rejection{Reason: "Image validation failed: " + err.Error()}
	}

	if meta.Width < c.MinWidth || meta.Height < c.MinHeight {
		return meta, &Rejection{Reason: fmt.Sprintf("Image too small. Minimum dimensions: %dx%dpx", c.MinWidth, c.MinHeight)}
	}
	if (c.MaxWidth > 0 && meta.Width > c.MaxWidth) || (c.MaxHeight > 0 && meta.Height > c.MaxHeight) {
		return meta, &Rejection{Reason: fmt.Sprintf("Image too large. Maximum dimensions: %dx%dpx", c.MaxWidth, c.MaxHeight)}
	}

	if c.AspectW > 0 && c.AspectH > 0 {
		got := float64(meta.Width) / float64(meta.Height)
		want := float64(c.AspectW) / float64(c.AspectH)
		if math.Abs(got-want) > aspectTolerance {
			return meta, &Rejection{Reason: fmt.Sprintf("Image aspect ratio must be %d:%d", c.AspectW, c.AspectH)}
		}
	}

	return meta, nil
}

// Transform fits the image inside MaxEdge x MaxEdge without upscaling and
// re-encodes it as WebP. Animated GIFs are returned untouched.
func Transform(data []byte) ([]byte, error) {
	meta, err := inspect(data)
	if err != nil {
		return nil, err
	}
	if meta.Animated {
		return data, nil
	}

	img, err := decode(data, meta.Format)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", meta.Format, err)
	}

	if meta.Width > MaxEdge || meta.Height > MaxEdge {
		img = imaging.Fit(img, MaxEdge, MaxEdge, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: WebPQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func inspect(data []byte) (Metadata, error) {
	var (
		cfg    image.Config
		format string
		err    error
	)
	if isWebP(data) {
		format = "webp"
		cfg, err = webp.DecodeConfig(bytes.NewReader(data))
	} else {
		cfg, format, err = image.DecodeConfig(bytes.NewReader(data))
	}
	if err != nil {
		return Metadata{}, fmt.Errorf("unsupported or corrupt image: %w", err)
	}

	meta := Metadata{Format: format, Width: cfg.Width, Height: cfg.Height, Bytes: int64(len(data))}
	if format == "gif" {
		meta.Animated = gifFrames(data, 2) > 1
	}
	return meta, nil
}

// gifFrames counts image descriptors, up to limit, by walking the GIF block
// structure. Pixel data is skipped, never decoded. A truncated stream returns
// the frames seen so far.
func gifFrames(data []byte, limit int) int {
	const (
		headerLen      = 6
		screenLen      = 7
		descriptorLen  = 9
		extensionIntro = 0x21
		imageSeparator = 0x2C
		trailer        = 0x3B
	)
	if len(data) < headerLen+screenLen {
		return 0
	}
	pos := headerLen + screenLen
	if flags := data[headerLen+4]; flags&0x80 != 0 {
		pos += 3 << ((flags & 0x07) + 1)
	}

	// skipSubBlocks advances past a run of length-prefixed sub-blocks.
	skipSubBlocks := func(p int) int {
		for p < len(data) {
			n := int(data[p])
			p++
			if n == 0 {
				return p
			}
			p += n
		}
		return len(data)
	}

	frames := 0
	for pos < len(data) && frames < limit {
		switch data[pos] {
		case extensionIntro:
			pos = skipSubBlocks(pos + 2)
		case imageSeparator:
			frames++
			if pos+descriptorLen >= len(data) {
				return frames
			}
			flags := data[pos+descriptorLen]
			pos += 1 + descriptorLen
			if flags&0x80 != 0 {
				pos += 3 << ((flags & 0x07) + 1)
			}
			pos = skipSubBlocks(pos + 1) // LZW minimum code size
		case trailer:
			return frames
		default:
			return frames
		}
	}
	return frames
}

func decode(data []byte, format string) (image.Image, error) {
	if format == "webp" {
		return webp.Decode(bytes.NewReader(data))
	}
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}

func isWebP(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP"
}
