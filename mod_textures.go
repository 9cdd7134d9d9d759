package relight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/gekko3d/relight/rt/texture"

	"github.com/google/uuid"
)

type TextureId string

func makeTextureId() TextureId {
	return TextureId(uuid.NewString())
}

// TextureUploader is the part of the graphics context the texture server
// writes through. It is only called from the render goroutine.
type TextureUploader interface {
	UploadTexture(id string, buf texture.PixelBuffer, format texture.UploadFormat) error
}

type textureEntry struct {
	path   string
	kind   texture.SampleKind
	format texture.UploadFormat
	loaded bool
}

type loadResult struct {
	id     TextureId
	buf    texture.PixelBuffer
	format texture.UploadFormat
	err    error
}

// TextureServer binds a placeholder for every requested texture right away,
// then swaps in the decoded image once a background load finishes.
type TextureServer struct {
	fsys     fs.FS
	uploader TextureUploader
	logger   Logger
	decode   func(data []byte) (texture.RawImage, error)

	mu       sync.Mutex
	entries  map[TextureId]*textureEntry
	results  chan loadResult
	inflight sync.WaitGroup
}

func NewTextureServer(fsys fs.FS, uploader TextureUploader, logger Logger) *TextureServer {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &TextureServer{
		fsys:     fsys,
		uploader: uploader,
		logger:   logger,
		decode:   texture.Decode,
		entries:  make(map[TextureId]*textureEntry),
		results:  make(chan loadResult, 16),
	}
}

// Load returns once the placeholder is uploaded. The fetch and decode run on
// their own goroutine and always queue a result for Apply.
func (server *TextureServer) Load(path string, kind texture.SampleKind) TextureId {
	id := makeTextureId()

	buf, format := texture.Placeholder(kind)
	if err := server.uploader.UploadTexture(string(id), buf, format); err != nil {
		server.logger.Errorf("Placeholder for %s: %v", path, err)
	}

	server.mu.Lock()
	server.entries[id] = &textureEntry{path: path, kind: kind, format: format}
	server.mu.Unlock()

	server.inflight.Add(1)
	go func() {
		defer server.inflight.Done()
		server.results <- server.fetch(id, path)
	}()

	return id
}

func (server *TextureServer) fetch(id TextureId, path string) loadResult {
	data, err := fs.ReadFile(server.fsys, path)
	if err != nil {
		return loadResult{id: id, err: fmt.Errorf("fetch %s: %w", path, err)}
	}
	raw, err := server.decode(data)
	if err != nil {
		return loadResult{id: id, err: fmt.Errorf("decode %s: %w", path, err)}
	}
	buf, format, err := texture.Repack(raw)
	if err != nil {
		return loadResult{id: id, err: fmt.Errorf("repack %s: %w", path, err)}
	}
	return loadResult{id: id, buf: buf, format: format}
}

// Apply uploads every load that finished since the previous call and reports
// how many textures were replaced. It never blocks.
func (server *TextureServer) Apply() int {
	applied := 0
	for {
		select {
		case result := <-server.results:
			if server.apply(result) {
				applied++
			}
		default:
			return applied
		}
	}
}

func (server *TextureServer) apply(result loadResult) bool {
	server.mu.Lock()
	entry, ok := server.entries[result.id]
	server.mu.Unlock()
	if !ok {
		return false
	}

	if result.err != nil {
		if errors.Is(result.err, texture.ErrUnsupportedFormat) {
			server.logger.Warnf("Texture %s keeps its placeholder: %v", entry.path, result.err)
		} else {
			server.logger.Errorf("Texture %s failed to load: %v", entry.path, result.err)
		}
		return false
	}

	if got := result.format.SampleKind(); got != entry.kind {
		server.logger.Warnf("Texture %s decoded as %v (%v samples), slot expects %v samples; keeping placeholder",
			entry.path, result.format, got, entry.kind)
		return false
	}

	if err := server.uploader.UploadTexture(string(result.id), result.buf, result.format); err != nil {
		server.logger.Errorf("Texture %s upload: %v", entry.path, err)
		return false
	}

	server.mu.Lock()
	entry.format = result.format
	entry.loaded = true
	server.mu.Unlock()

	server.logger.Debugf("Texture %s %dx%d %v", entry.path, result.buf.Width, result.buf.Height, result.format)
	return true
}

// Wait blocks until every started load has been fetched and decoded. Results
// still need Apply to reach the GPU.
func (server *TextureServer) Wait() {
	server.inflight.Wait()
}

// Loaded reports whether id has been replaced by its decoded image.
func (server *TextureServer) Loaded(id TextureId) bool {
	server.mu.Lock()
	defer server.mu.Unlock()
	entry, ok := server.entries[id]
	return ok && entry.loaded
}

// Format is the upload format currently bound for id.
func (server *TextureServer) Format(id TextureId) (texture.UploadFormat, bool) {
	server.mu.Lock()
	defer server.mu.Unlock()
	entry, ok := server.entries[id]
	if !ok {
		return texture.UploadFormat{}, false
	}
	return entry.format, true
}

// Scene texture slots, in shader binding order.
const (
	SlotBase = iota
	SlotAlbedoMetal
	SlotNormalRoughness
	SlotDepth
	sceneSlots
)

type SceneTexture struct {
	Path string
	Kind texture.SampleKind
}

var DefaultSceneTextures = [sceneSlots]SceneTexture{
	SlotBase:            {Path: "texture/dt.jpg", Kind: texture.SampleFloat},
	SlotAlbedoMetal:     {Path: "texture/DR_0_c_att_0.png", Kind: texture.SampleFloat},
	SlotNormalRoughness: {Path: "texture/DR_0_c_att_1.png", Kind: texture.SampleFloat},
	SlotDepth:           {Path: "texture/DR_0_d_att.png", Kind: texture.SampleUint},
}

// SceneTextures holds the ids bound to each shader slot.
type SceneTextures struct {
	Ids [sceneSlots]TextureId
}

func (s *SceneTextures) Strings() [sceneSlots]string {
	var out [sceneSlots]string
	for i, id := range s.Ids {
		out[i] = string(id)
	}
	return out
}

// TextureModule starts loading the scene textures. It needs a TextureUploader,
// either from Uploader or from an installed renderer.
type TextureModule struct {
	AssetRoot string
	// FS overrides AssetRoot when set.
	FS       fs.FS
	Uploader TextureUploader
	Textures [sceneSlots]SceneTexture
}

func (m TextureModule) Install(app *App, cmd *Commands) {
	fsys := m.FS
	if fsys == nil {
		root := m.AssetRoot
		if root == "" {
			root = "."
		}
		fsys = os.DirFS(root)
	}

	uploader := m.Uploader
	if uploader == nil {
		r, ok := resource[Renderer](app)
		if !ok {
			panic("TextureModule needs a TextureUploader or a renderer installed before it")
		}
		uploader = r.Context
	}

	textures := m.Textures
	if textures == ([sceneSlots]SceneTexture{}) {
		textures = DefaultSceneTextures
	}

	server := NewTextureServer(fsys, uploader, app.Logger())
	scene := &SceneTextures{}
	for slot, tex := range textures {
		scene.Ids[slot] = server.Load(tex.Path, tex.Kind)
	}

	cmd.AddResources(server, scene)
	cmd.UseSystem(System(textureSystem).InStage(PreRender))
}

func textureSystem(server *TextureServer) {
	server.Apply()
}
