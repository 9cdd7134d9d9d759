package texture

import "fmt"

// InternalFormat is the GPU-side storage format of a texture.
type InternalFormat uint32

const (
	FormatUndefined InternalFormat = iota
	FormatR8
	FormatRGBA8
	FormatR16UI
	FormatRGBA16UI
)

func (f InternalFormat) String() string {
	switch f {
	case FormatR8:
		return "R8"
	case FormatRGBA8:
		return "RGBA8"
	case FormatR16UI:
		return "R16UI"
	case FormatRGBA16UI:
		return "RGBA16UI"
	default:
		return fmt.Sprintf("InternalFormat(%d)", uint32(f))
	}
}

// SourceFormat describes the channel layout of the uploaded bytes.
type SourceFormat uint32

const (
	SourceRed SourceFormat = iota + 1
	SourceRGBA
	SourceRedInteger
	SourceRGBAInteger
)

// SourceType is the per-channel type of the uploaded bytes.
type SourceType uint32

const (
	TypeUnsignedByte SourceType = iota + 1
	TypeUnsignedShort
)

// SampleKind is how a shader reads a texture: normalized floats or raw integers.
type SampleKind int

const (
	SampleFloat SampleKind = iota
	SampleUint
)

func (k SampleKind) String() string {
	if k == SampleUint {
		return "uint"
	}
	return "float"
}

// UploadFormat is the (internal format, source format, source type) triple
// handed to the graphics context.
type UploadFormat struct {
	Internal InternalFormat
	Source   SourceFormat
	Type     SourceType
}

var (
	UploadR8       = UploadFormat{FormatR8, SourceRed, TypeUnsignedByte}
	UploadRGBA8    = UploadFormat{FormatRGBA8, SourceRGBA, TypeUnsignedByte}
	UploadR16UI    = UploadFormat{FormatR16UI, SourceRedInteger, TypeUnsignedShort}
	UploadRGBA16UI = UploadFormat{FormatRGBA16UI, SourceRGBAInteger, TypeUnsignedShort}
)

func (f UploadFormat) String() string {
	return f.Internal.String()
}

// BytesPerPixel of the packed upload data.
func (f UploadFormat) BytesPerPixel() int {
	switch f.Internal {
	case FormatR8:
		return 1
	case FormatR16UI:
		return 2
	case FormatRGBA8:
		return 4
	case FormatRGBA16UI:
		return 8
	}
	panic(fmt.Sprintf("unknown texture format %v", f.Internal))
}

// SampleKind reports whether shaders read f as floats or integers.
func (f UploadFormat) SampleKind() SampleKind {
	if f.Type == TypeUnsignedShort {
		return SampleUint
	}
	return SampleFloat
}
