package texture

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepack_16BitSingleChannel(t *testing.T) {
	raw := RawImage{
		Width: 2, Height: 2, Depth: 16,
		Data: []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
	}

	buf, format, err := Repack(raw)
	require.NoError(t, err)

	assert.Equal(t, UploadR16UI, format)
	assert.Equal(t, 1, buf.Channels)
	assert.Equal(t, 16, buf.BitDepth)
	assert.Equal(t, []uint16{0x0102, 0x0304, 0x0506, 0x0708}, buf.Data16)
	assert.Equal(t, buf.Width*buf.Height*buf.Channels*2, buf.ByteLength())
}

func TestRepack_16BitRGBA(t *testing.T) {
	data := make([]byte, 0, 16)
	for i := 0; i < 8; i++ {
		data = append(data, byte(i), 0xFF)
	}
	buf, format, err := Repack(RawImage{Width: 2, Height: 1, Depth: 16, Data: data})
	require.NoError(t, err)

	assert.Equal(t, UploadRGBA16UI, format)
	assert.Equal(t, 4, buf.Channels)
	require.Len(t, buf.Data16, 8)
	for i, v := range buf.Data16 {
		assert.Equal(t, uint16(i)<<8|0xFF, v)
	}
}

func TestRepack_8Bit(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		format   UploadFormat
		channels int
	}{
		{"single channel", []byte{1, 2, 3, 4}, UploadR8, 1},
		{"rgba", make([]byte, 16), UploadRGBA8, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, format, err := Repack(RawImage{Width: 2, Height: 2, Depth: 8, Data: tt.data})
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, tt.channels, buf.Channels)
			assert.Equal(t, tt.data, buf.Data8)
			assert.Equal(t, tt.data, buf.Bytes())
		})
	}
}

func TestRepack_UnsupportedChannels(t *testing.T) {
	_, _, err := Repack(RawImage{Width: 2, Height: 2, Depth: 8, Data: make([]byte, 12)})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "3 channels")

	_, _, err = Repack(RawImage{Width: 2, Height: 2, Depth: 16, Data: make([]byte, 24)})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, _, err = Repack(RawImage{Width: 1, Height: 1, Depth: 8, Data: make([]byte, 2)})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRepack_EmptyAndShort(t *testing.T) {
	_, _, err := Repack(RawImage{Width: 0, Height: 4, Depth: 8, Data: []byte{1}})
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, _, err = Repack(RawImage{Width: 2, Height: 2, Depth: 8})
	assert.ErrorIs(t, err, ErrEmptyImage)

	// 14 bytes over 4 pixels rounds to 4 channels but cannot fill them
	_, _, err = Repack(RawImage{Width: 2, Height: 2, Depth: 8, Data: make([]byte, 14)})
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestPixelBufferBytes_NativeOrder(t *testing.T) {
	buf := PixelBuffer{Width: 2, Height: 1, Channels: 1, BitDepth: 16, Data16: []uint16{0x0102, 0xA0B0}}
	out := buf.Bytes()
	require.Len(t, out, 4)
	assert.Equal(t, uint16(0x0102), binary.NativeEndian.Uint16(out[0:]))
	assert.Equal(t, uint16(0xA0B0), binary.NativeEndian.Uint16(out[2:]))
}

func TestSwapBigEndian16(t *testing.T) {
	got := SwapBigEndian16([]byte{0xFF, 0x00, 0x00, 0xFF, 0x12, 0x34, 0x99}, 3)
	assert.Equal(t, []uint16{0xFF00, 0x00FF, 0x1234}, got)
}

func TestPlaceholder(t *testing.T) {
	buf, format := Placeholder(SampleUint)
	assert.Equal(t, UploadR16UI, format)
	assert.Equal(t, []uint16{0xFFFF}, buf.Data16)
	assert.Equal(t, SampleUint, format.SampleKind())

	buf, format = Placeholder(SampleFloat)
	assert.Equal(t, UploadRGBA8, format)
	assert.Equal(t, []byte{0, 0, 255, 255}, buf.Data8)
	assert.Equal(t, SampleFloat, format.SampleKind())
	assert.Equal(t, 1, buf.Width)
	assert.Equal(t, 1, buf.Height)
}

func TestUploadFormatBytesPerPixel(t *testing.T) {
	assert.Equal(t, 1, UploadR8.BytesPerPixel())
	assert.Equal(t, 2, UploadR16UI.BytesPerPixel())
	assert.Equal(t, 4, UploadRGBA8.BytesPerPixel())
	assert.Equal(t, 8, UploadRGBA16UI.BytesPerPixel())
	assert.Panics(t, func() { UploadFormat{}.BytesPerPixel() })
	assert.Equal(t, "R16UI", UploadR16UI.String())
}
