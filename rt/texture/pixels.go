package texture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported pixel format")
	ErrEmptyImage        = errors.New("image has no pixels")
	ErrShortBuffer       = errors.New("pixel data shorter than image")
)

// RawImage is a decoded image as the PNG container stores it: 16-bit
// samples are big-endian byte pairs.
type RawImage struct {
	Width  int
	Height int
	Depth  int
	Data   []byte
}

// PixelBuffer holds samples ready for upload. Exactly one of Data8 or
// Data16 is set, according to BitDepth.
type PixelBuffer struct {
	Width    int
	Height   int
	Channels int
	BitDepth int
	Data8    []byte
	Data16   []uint16
}

// ByteLength is Width*Height*Channels*(BitDepth/8).
func (p PixelBuffer) ByteLength() int {
	if p.BitDepth == 16 {
		return len(p.Data16) * 2
	}
	return len(p.Data8)
}

// Bytes returns the samples in native byte order.
func (p PixelBuffer) Bytes() []byte {
	if p.BitDepth != 16 {
		return p.Data8
	}
	out := make([]byte, len(p.Data16)*2)
	for i, v := range p.Data16 {
		binary.NativeEndian.PutUint16(out[i*2:], v)
	}
	return out
}

// Repack detects the channel count of raw and re-packs its samples for the
// GPU. Only 1 and 4 channels are uploadable; anything else returns an error
// wrapping ErrUnsupportedFormat.
func Repack(raw RawImage) (PixelBuffer, UploadFormat, error) {
	pixels := raw.Width * raw.Height
	if pixels <= 0 || len(raw.Data) == 0 {
		return PixelBuffer{}, UploadFormat{}, fmt.Errorf("%dx%d: %w", raw.Width, raw.Height, ErrEmptyImage)
	}

	if raw.Depth == 16 {
		channels := int(math.Round(float64(len(raw.Data)) / 2 / float64(pixels)))
		var format UploadFormat
		switch channels {
		case 1:
			format = UploadR16UI
		case 4:
			format = UploadRGBA16UI
		default:
			return PixelBuffer{}, UploadFormat{}, fmt.Errorf("16-bit, %d channels: %w", channels, ErrUnsupportedFormat)
		}
		if len(raw.Data) < pixels*channels*2 {
			return PixelBuffer{}, UploadFormat{}, fmt.Errorf("16-bit, %d of %d bytes: %w", len(raw.Data), pixels*channels*2, ErrShortBuffer)
		}
		return PixelBuffer{
			Width:    raw.Width,
			Height:   raw.Height,
			Channels: channels,
			BitDepth: 16,
			Data16:   SwapBigEndian16(raw.Data, pixels*channels),
		}, format, nil
	}

	channels := int(math.Round(float64(len(raw.Data)) / float64(pixels)))
	var format UploadFormat
	switch channels {
	case 1:
		format = UploadR8
	case 4:
		format = UploadRGBA8
	default:
		return PixelBuffer{}, UploadFormat{}, fmt.Errorf("8-bit, %d channels: %w", channels, ErrUnsupportedFormat)
	}
	if len(raw.Data) < pixels*channels {
		return PixelBuffer{}, UploadFormat{}, fmt.Errorf("8-bit, %d of %d bytes: %w", len(raw.Data), pixels*channels, ErrShortBuffer)
	}
	return PixelBuffer{
		Width:    raw.Width,
		Height:   raw.Height,
		Channels: channels,
		BitDepth: 8,
		Data8:    raw.Data[:pixels*channels],
	}, format, nil
}

// SwapBigEndian16 reassembles count big-endian (msb, lsb) pairs into native
// uint16 values, preserving sample order.
func SwapBigEndian16(data []byte, count int) []uint16 {
	out := make([]uint16, count)
	for i, j := 0, 0; i < count; i, j = i+1, j+2 {
		out[i] = uint16(data[j])<<8 | uint16(data[j+1])
	}
	return out
}

// Placeholder returns the 1x1 texture bound until a load completes.
// Integer slots get a single 0xFFFF sample, float slots opaque blue.
func Placeholder(kind SampleKind) (PixelBuffer, UploadFormat) {
	if kind == SampleUint {
		return PixelBuffer{
			Width: 1, Height: 1, Channels: 1, BitDepth: 16,
			Data16: []uint16{0xFFFF},
		}, UploadR16UI
	}
	return PixelBuffer{
		Width: 1, Height: 1, Channels: 4, BitDepth: 8,
		Data8: []byte{0, 0, 255, 255},
	}, UploadRGBA8
}
