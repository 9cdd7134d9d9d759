package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecode_Gray16KeepsBigEndian(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 2, 2))
	img.SetGray16(0, 0, color.Gray16{Y: 0x0102})
	img.SetGray16(1, 0, color.Gray16{Y: 0x0304})
	img.SetGray16(0, 1, color.Gray16{Y: 0x0506})
	img.SetGray16(1, 1, color.Gray16{Y: 0x0708})

	raw, err := Decode(encodePNG(t, img))
	require.NoError(t, err)
	assert.Equal(t, 16, raw.Depth)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, raw.Data)

	buf, format, err := Repack(raw)
	require.NoError(t, err)
	assert.Equal(t, UploadR16UI, format)
	assert.Equal(t, []uint16{0x0102, 0x0304, 0x0506, 0x0708}, buf.Data16)
}

func TestDecode_NRGBA64(t *testing.T) {
	img := image.NewNRGBA64(image.Rect(0, 0, 1, 1))
	img.SetNRGBA64(0, 0, color.NRGBA64{R: 0x1111, G: 0x2222, B: 0x3333, A: 0x4444})

	buf, format, err := DecodeAndRepack(encodePNG(t, img))
	require.NoError(t, err)
	assert.Equal(t, UploadRGBA16UI, format)
	assert.Equal(t, []uint16{0x1111, 0x2222, 0x3333, 0x4444}, buf.Data16)
}

func TestDecode_Gray8(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 1))
	img.Pix = []byte{10, 20, 30}

	buf, format, err := DecodeAndRepack(encodePNG(t, img))
	require.NoError(t, err)
	assert.Equal(t, UploadR8, format)
	assert.Equal(t, []byte{10, 20, 30}, buf.Data8)
}

func TestDecode_NRGBA8(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 128})
	img.SetNRGBA(1, 0, color.NRGBA{R: 4, G: 5, B: 6, A: 255})

	buf, format, err := DecodeAndRepack(encodePNG(t, img))
	require.NoError(t, err)
	assert.Equal(t, UploadRGBA8, format)
	assert.Equal(t, []byte{1, 2, 3, 128, 4, 5, 6, 255}, buf.Data8)
}

func TestDecode_PalettedConvertsToRGBA(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 2, 2), palette.Plan9)
	img.SetColorIndex(1, 1, 3)

	raw, err := Decode(encodePNG(t, img))
	require.NoError(t, err)
	assert.Equal(t, 8, raw.Depth)
	assert.Len(t, raw.Data, 2*2*4)

	r, g, b, _ := palette.Plan9[3].RGBA()
	assert.Equal(t, []byte{byte(r >> 8), byte(g >> 8), byte(b >> 8), 255}, raw.Data[12:16])
}

func TestDecode_JPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	pb, format, err := DecodeAndRepack(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, UploadRGBA8, format)
	assert.Equal(t, 4, pb.Width)
	assert.Len(t, pb.Data8, 4*4*4)
	assert.Equal(t, byte(255), pb.Data8[3])
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte("not an image"))
	assert.Error(t, err)
}

func TestPackRows_Stride(t *testing.T) {
	pix := []byte{1, 2, 0, 0, 3, 4, 0, 0}
	assert.Equal(t, []byte{1, 2, 3, 4}, packRows(pix, 4, 2, 2))
	assert.Equal(t, pix, packRows(pix, 4, 4, 2))
}

func TestDecode_RGB8IsUnsupported(t *testing.T) {
	// opaque RGBA is written as 8-bit RGB
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = byte(i)
		if i%4 == 3 {
			img.Pix[i] = 255
		}
	}
	data := encodePNG(t, img)

	raw, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 8, raw.Depth)
	assert.Equal(t, []byte{0, 1, 2, 4, 5, 6, 8, 9, 10, 12, 13, 14}, raw.Data)

	_, _, err = Repack(raw)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.ErrorContains(t, err, "3 channels")
}

func TestDecode_RGB16IsUnsupported(t *testing.T) {
	img := image.NewRGBA64(image.Rect(0, 0, 1, 2))
	img.SetRGBA64(0, 0, color.RGBA64{R: 0x0102, G: 0x0304, B: 0x0506, A: 0xFFFF})
	img.SetRGBA64(0, 1, color.RGBA64{R: 0x0708, G: 0x090A, B: 0x0B0C, A: 0xFFFF})

	raw, err := Decode(encodePNG(t, img))
	require.NoError(t, err)
	assert.Equal(t, 16, raw.Depth)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, raw.Data)

	_, _, err = DecodeAndRepack(encodePNG(t, img))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestStoredChannels(t *testing.T) {
	widened := RawImage{Width: 2, Height: 1, Depth: 8, Data: []byte{7, 7, 7, 100, 9, 9, 9, 200}}
	assert.Equal(t, []byte{7, 100, 9, 200}, storedChannels(widened, pngGrayAlpha))
	assert.Equal(t, []byte{7, 7, 7, 9, 9, 9}, storedChannels(widened, pngRGB))
	assert.Equal(t, widened.Data, storedChannels(widened, 6))

	wide16 := RawImage{Width: 1, Height: 1, Depth: 16, Data: []byte{1, 2, 1, 2, 1, 2, 0xFF, 0xFE}}
	assert.Equal(t, []byte{1, 2, 0xFF, 0xFE}, storedChannels(wide16, pngGrayAlpha))

	gray := RawImage{Width: 2, Height: 1, Depth: 8, Data: []byte{1, 2}}
	assert.Equal(t, gray.Data, storedChannels(gray, pngRGB), "already narrow")
}

func TestPNGColorType(t *testing.T) {
	ct, ok := pngColorType(encodePNG(t, image.NewGray(image.Rect(0, 0, 1, 1))))
	require.True(t, ok)
	assert.Equal(t, byte(0), ct)

	ct, ok = pngColorType(encodePNG(t, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	require.True(t, ok)
	assert.Equal(t, byte(pngRGB), ct)

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1)), nil))
	_, ok = pngColorType(buf.Bytes())
	assert.False(t, ok)
}
