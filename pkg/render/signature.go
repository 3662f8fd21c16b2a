package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
)

// ErrSignature marks a stored signature that is not a readable image.
var ErrSignature = errors.New("invalid signature image")

// Signature box in pixels. Images are scaled to fit inside it keeping their
// aspect ratio.
const (
	SignatureBoxW = 600
	SignatureBoxH = 250

	// maxSignatureSide bounds the declared size of a stored image so a
	// small file cannot claim a huge pixel buffer.
	maxSignatureSide = 4096
)

// DecodeSignature turns a stored signature (plain base64 or a data URL)
// into a PNG scaled into the signature box on a white background. An empty
// signature returns nil, nil.
func DecodeSignature(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, nil
	}
	if strings.HasPrefix(encoded, "data:") {
		i := strings.Index(encoded, ",")
		if i < 0 {
			return nil, fmt.Errorf("%w: data url has no payload", ErrSignature)
		}
		encoded = encoded[i+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(encoded)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignature, err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignature, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > maxSignatureSide || cfg.Height > maxSignatureSide {
		return nil, fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrSignature, cfg.Width, cfg.Height, maxSignatureSide, maxSignatureSide)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignature, err)
	}

	dst := image.NewRGBA(fitBox(src.Bounds(), SignatureBoxW, SignatureBoxH))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignature, err)
	}
	return buf.Bytes(), nil
}

// fitBox returns the largest rectangle with b's aspect ratio that fits in
// w x h. Images smaller than the box are not enlarged.
func fitBox(b image.Rectangle, w, h int) image.Rectangle {
	sw, sh := b.Dx(), b.Dy()
	if sw <= w && sh <= h {
		return image.Rect(0, 0, sw, sh)
	}
	scale := float64(w) / float64(sw)
	if s := float64(h) / float64(sh); s < scale {
		scale = s
	}
	nw, nh := int(float64(sw)*scale), int(float64(sh)*scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return image.Rect(0, 0, nw, nh)
}
