package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Decode decodes a PNG or JPEG container into its raw sample bytes.
// PNG keeps its stored channel layout and bit depth (gray, gray+alpha, RGB,
// RGBA); 16-bit samples stay big-endian as PNG stores them. Paletted PNG and
// every JPEG are converted to 8-bit RGBA.
func Decode(data []byte) (RawImage, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return RawImage{}, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	raw := RawImage{Width: w, Height: h}

	switch m := img.(type) {
	case *image.Gray:
		raw.Depth, raw.Data = 8, packRows(m.Pix, m.Stride, w, h)
	case *image.Gray16:
		raw.Depth, raw.Data = 16, packRows(m.Pix, m.Stride, w*2, h)
	case *image.NRGBA:
		raw.Depth, raw.Data = 8, packRows(m.Pix, m.Stride, w*4, h)
	case *image.RGBA:
		raw.Depth, raw.Data = 8, packRows(m.Pix, m.Stride, w*4, h)
	case *image.NRGBA64:
		raw.Depth, raw.Data = 16, packRows(m.Pix, m.Stride, w*8, h)
	case *image.RGBA64:
		raw.Depth, raw.Data = 16, packRows(m.Pix, m.Stride, w*8, h)
	default:
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		raw.Depth, raw.Data = 8, dst.Pix
	}

	if colorType, ok := pngColorType(data); ok {
		raw.Data = storedChannels(raw, colorType)
	}
	return raw, nil
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

const (
	pngRGB       = 2
	pngGrayAlpha = 4
)

// pngColorType reads the colour type byte of the IHDR chunk, which always
// directly follows the signature.
func pngColorType(data []byte) (byte, bool) {
	if len(data) < 26 || !bytes.HasPrefix(data, pngSignature) || string(data[12:16]) != "IHDR" {
		return 0, false
	}
	return data[25], true
}

// storedChannels drops the channels image/png synthesizes when it widens
// RGB to RGBA and gray+alpha to RGBA.
func storedChannels(raw RawImage, colorType byte) []byte {
	pixels := raw.Width * raw.Height
	sample := raw.Depth / 8
	if pixels == 0 || len(raw.Data) != pixels*4*sample {
		return raw.Data
	}

	var keep []int
	switch colorType {
	case pngRGB:
		keep = []int{0, 1, 2}
	case pngGrayAlpha:
		keep = []int{0, 3}
	default:
		return raw.Data
	}

	out := make([]byte, 0, pixels*len(keep)*sample)
	for p := 0; p < pixels; p++ {
		px := raw.Data[p*4*sample : (p+1)*4*sample]
		for _, c := range keep {
			out = append(out, px[c*sample:(c+1)*sample]...)
		}
	}
	return out
}

// DecodeAndRepack runs Decode then Repack.
func DecodeAndRepack(data []byte) (PixelBuffer, UploadFormat, error) {
	raw, err := Decode(data)
	if err != nil {
		return PixelBuffer{}, UploadFormat{}, err
	}
	return Repack(raw)
}

func packRows(pix []byte, stride, rowLen, height int) []byte {
	if stride == rowLen {
		return pix[:rowLen*height]
	}
	out := make([]byte, 0, rowLen*height)
	for y := 0; y < height; y++ {
		out = append(out, pix[y*stride:y*stride+rowLen]...)
	}
	return out
}
