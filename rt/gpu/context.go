package gpu

import (
	"fmt"
	"runtime"

	"github.com/gekko3d/relight/rt/texture"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Context owns the WebGPU device and every texture uploaded through it.
// It must only be used from the render goroutine.
type Context struct {
	Instance *wgpu.Instance
	Surface  *wgpu.Surface
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Config   *wgpu.SurfaceConfiguration

	textures map[string]*Texture
	// bumped on every upload so bind groups know to rebuild
	generation uint64
}

type Texture struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
	Format  texture.UploadFormat
	Width   uint32
	Height  uint32
}

func NewContext(window *glfw.Window) (*Context, error) {
	runtime.LockOSThread()

	c := &Context{textures: make(map[string]*Texture)}
	c.Instance = wgpu.CreateInstance(nil)
	// wraps GLFW window into a wgpu surface
	c.Surface = c.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))

	adapter, err := c.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: c.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	c.Adapter = adapter

	c.Device, err = adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Relight Device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	c.Queue = c.Device.GetQueue()

	width, height := window.GetFramebufferSize()
	caps := c.Surface.GetCapabilities(adapter)
	c.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo, // vsync
		AlphaMode:   caps.AlphaModes[0],
	}
	c.Surface.Configure(adapter, c.Device, c.Config)

	return c, nil
}

// Resize reconfigures the surface when the framebuffer size changed.
// It reports whether anything was done.
func (c *Context) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if c.Config.Width == uint32(width) && c.Config.Height == uint32(height) {
		return false
	}
	c.Config.Width = uint32(width)
	c.Config.Height = uint32(height)
	c.Surface.Configure(c.Adapter, c.Device, c.Config)
	return true
}

// UploadTexture creates (or replaces) the texture stored under id with the
// contents of buf. WebGPU textures cannot change size or format, so a
// replacement allocates a new texture and releases the old one.
func (c *Context) UploadTexture(id string, buf texture.PixelBuffer, format texture.UploadFormat) error {
	wgpuFormat, err := TextureFormat(format)
	if err != nil {
		return err
	}
	if got, want := buf.ByteLength(), buf.Width*buf.Height*format.BytesPerPixel(); got != want {
		return fmt.Errorf("texture %s: %d bytes for %dx%d %v, want %d", id, got, buf.Width, buf.Height, format, want)
	}

	extent := wgpu.Extent3D{
		Width:              uint32(buf.Width),
		Height:             uint32(buf.Height),
		DepthOrArrayLayers: 1,
	}
	tex, err := c.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         id,
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpuFormat,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create texture %s: %w", id, err)
	}

	err = c.Queue.WriteTexture(
		tex.AsImageCopy(),
		buf.Bytes(),
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(buf.Width * format.BytesPerPixel()),
			RowsPerImage: uint32(buf.Height),
		},
		&extent,
	)
	if err != nil {
		tex.Release()
		return fmt.Errorf("write texture %s: %w", id, err)
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("texture view %s: %w", id, err)
	}

	if old, ok := c.textures[id]; ok {
		old.View.Release()
		old.Texture.Release()
	}
	c.textures[id] = &Texture{
		Texture: tex,
		View:    view,
		Format:  format,
		Width:   extent.Width,
		Height:  extent.Height,
	}
	c.generation++
	return nil
}

func (c *Context) Texture(id string) (*Texture, bool) {
	t, ok := c.textures[id]
	return t, ok
}

func (c *Context) Generation() uint64 {
	return c.generation
}

func (c *Context) Release() {
	for id, t := range c.textures {
		t.View.Release()
		t.Texture.Release()
		delete(c.textures, id)
	}
	if c.Queue != nil {
		c.Queue.Release()
	}
	if c.Device != nil {
		c.Device.Release()
	}
	if c.Adapter != nil {
		c.Adapter.Release()
	}
	if c.Surface != nil {
		c.Surface.Release()
	}
	if c.Instance != nil {
		c.Instance.Release()
	}
}

// TextureFormat maps an upload triple to the WebGPU storage format.
func TextureFormat(format texture.UploadFormat) (wgpu.TextureFormat, error) {
	switch format.Internal {
	case texture.FormatR8:
		return wgpu.TextureFormatR8Unorm, nil
	case texture.FormatRGBA8:
		return wgpu.TextureFormatRGBA8Unorm, nil
	case texture.FormatR16UI:
		return wgpu.TextureFormatR16Uint, nil
	case texture.FormatRGBA16UI:
		return wgpu.TextureFormatRGBA16Uint, nil
	}
	return wgpu.TextureFormatUndefined, fmt.Errorf("no texture format for %v: %w", format, texture.ErrUnsupportedFormat)
}
