// Package textures caches textures by source and generates simple images.
package textures

import (
	"image"
	"image/color"
	"sync"

	"glkit/gfx"
)

// Manager hands out textures by source, loading each source only once.
// Loads run on the gfx.TextureLoader; call Poll once per frame.
type Manager struct {
	gl     gfx.GL
	loader *gfx.TextureLoader

	mu       sync.RWMutex
	textures map[string]*gfx.AsyncTexture
	white    gfx.Texture
}

// NewManager creates a texture manager issuing GL calls through gl.
func NewManager(gl gfx.GL, opts ...gfx.LoaderOption) *Manager {
	return &Manager{
		gl:       gl,
		loader:   gfx.NewTextureLoader(gl, opts...),
		textures: make(map[string]*gfx.AsyncTexture),
	}
}

// Load returns the texture for source, starting a background load the
// first time source is seen. Later calls return the same texture whatever
// its state; unit only applies to the first call.
func (tm *Manager) Load(source string, unit int, onLoaded func()) (*gfx.AsyncTexture, error) {
	tm.mu.RLock()
	if tex, ok := tm.textures[source]; ok {
		tm.mu.RUnlock()
		return tex, nil
	}
	tm.mu.RUnlock()

	tex, err := tm.loader.Load(source, unit, onLoaded)
	if err != nil {
		return nil, err
	}

	tm.mu.Lock()
	tm.textures[source] = tex
	tm.mu.Unlock()
	return tex, nil
}

// Poll applies finished loads. See gfx.TextureLoader.Poll.
func (tm *Manager) Poll() int { return tm.loader.Poll() }

// Pending returns the number of loads still in flight.
func (tm *Manager) Pending() int { return tm.loader.Pending() }

// Texture returns the texture for source if Load was called for it and it
// finished loading, or the default white texture.
func (tm *Manager) Texture(source string) (gfx.Texture, error) {
	tm.mu.RLock()
	tex, ok := tm.textures[source]
	tm.mu.RUnlock()
	if ok && tex.State() == gfx.LoadLoaded {
		return tex.Texture, nil
	}
	return tm.DefaultTexture()
}

// DefaultTexture returns a 1x1 white texture, created on first use.
func (tm *Manager) DefaultTexture() (gfx.Texture, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tm.white.Valid() {
		return tm.white, nil
	}
	tex, err := gfx.CreateTexture(tm.gl, Solid(color.NRGBA{255, 255, 255, 255}), 0)
	if err != nil {
		return gfx.Texture{}, err
	}
	tm.white = tex
	return tex, nil
}

// DestroyAll deletes every texture the manager created. Call it once
// Pending reports zero, or use Close.
func (tm *Manager) DestroyAll() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for _, tex := range tm.textures {
		gfx.DeleteTexture(tm.gl, tex.Texture)
	}
	gfx.DeleteTexture(tm.gl, tm.white)
	tm.white = gfx.Texture{}
	tm.textures = make(map[string]*gfx.AsyncTexture)
}

// Close stops the loader and deletes every texture. Loads still in flight
// are dropped.
func (tm *Manager) Close() {
	tm.loader.Close()
	tm.DestroyAll()
}

// Solid returns a 1x1 image of c.
func Solid(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, c)
	return img
}

// Checker returns a size×size checkerboard of 8×8 cells alternating c1 and
// c2, starting with c1 at the origin.
func Checker(size int, c1, c2 color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	blockSize := size / 8
	if blockSize < 1 {
		blockSize = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if ((x/blockSize)+(y/blockSize))%2 == 0 {
				img.SetNRGBA(x, y, c1)
			} else {
				img.SetNRGBA(x, y, c2)
			}
		}
	}
	return img
}
