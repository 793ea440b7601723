// Package core opens a window with a current OpenGL context and drives
// its frame loop.
package core

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"glkit/gfx"
	"glkit/internal/opengl"
)

func init() {
	runtime.LockOSThread()
}

// Context is a window with a current OpenGL context in the default state of
// gfx.ApplyDefaults.
type Context struct {
	Handle *glfw.Window
	GL     gfx.GL
	Width  int
	Height int
	Title  string
	Config ContextConfig
}

// ContextConfig selects the window and the framebuffer of the context.
type ContextConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool

	// Depth requests a 24-bit depth buffer for the default framebuffer.
	Depth bool
	// Antialias requests Samples samples per pixel for the default
	// framebuffer.
	Antialias bool
	Samples   int
	// PreserveDrawingBuffer is recorded for hosts that read the window
	// back after SwapBuffers. Desktop swap chains give no such guarantee,
	// so such hosts should render into an OffscreenTarget instead.
	PreserveDrawingBuffer bool
}

// DefaultContextConfig returns the fixed configuration: depth on,
// antialiasing on, drawing buffer preserved.
func DefaultContextConfig() ContextConfig {
	return ContextConfig{
		Width:                 1280,
		Height:                720,
		Title:                 "glkit",
		Resizable:             true,
		VSync:                 true,
		Depth:                 true,
		Antialias:             true,
		Samples:               4,
		PreserveDrawingBuffer: true,
	}
}

type windowHint struct {
	hint  glfw.Hint
	value int
}

func windowHints(config ContextConfig) []windowHint {
	depth, samples := 0, 0
	if config.Depth {
		depth = 24
	}
	if config.Antialias {
		samples = config.Samples
	}
	return []windowHint{
		{glfw.ClientAPI, glfw.OpenGLAPI},
		{glfw.ContextVersionMajor, 4},
		{glfw.ContextVersionMinor, 1},
		{glfw.OpenGLProfile, glfw.OpenGLCoreProfile},
		{glfw.OpenGLForwardCompatible, glfw.True},
		{glfw.Resizable, boolToInt(config.Resizable)},
		{glfw.DepthBits, depth},
		{glfw.Samples, samples},
	}
}

// NewContext opens a window, makes its OpenGL context current on the
// calling goroutine and applies gfx.ApplyDefaults at the framebuffer size.
// Every failure wraps gfx.ErrContextUnavailable.
func NewContext(config ContextConfig) (*Context, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w: %w", gfx.ErrContextUnavailable, err)
	}

	for _, h := range windowHints(config) {
		glfw.WindowHint(h.hint, h.value)
	}

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w: %w", gfx.ErrContextUnavailable, err)
	}
	handle.MakeContextCurrent()

	functions, err := opengl.New()
	if err != nil {
		handle.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %w", gfx.ErrContextUnavailable, err)
	}
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	ctx := &Context{
		Handle: handle,
		GL:     functions,
		Title:  config.Title,
		Config: config,
	}
	ctx.Width, ctx.Height = handle.GetFramebufferSize()
	gfx.ApplyDefaults(functions, ctx.Width, ctx.Height)

	handle.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		ctx.Width = width
		ctx.Height = height
	})

	return ctx, nil
}

// ShouldClose reports whether the window was asked to close.
func (c *Context) ShouldClose() bool {
	return c.Handle.ShouldClose()
}

// Close asks the window to close; Run returns after the current frame.
func (c *Context) Close() {
	c.Handle.SetShouldClose(true)
}

// PollEvents processes pending window events.
func (c *Context) PollEvents() {
	glfw.PollEvents()
}

// SwapBuffers presents the back buffer.
func (c *Context) SwapBuffers() {
	c.Handle.SwapBuffers()
}

// FramebufferSize returns the drawable size in pixels, which differs from
// the window size on high-DPI displays.
func (c *Context) FramebufferSize() (int, int) {
	return c.Handle.GetFramebufferSize()
}

// Destroy closes the window and terminates GLFW.
func (c *Context) Destroy() {
	c.Handle.Destroy()
	glfw.Terminate()
}

// IsKeyPressed reports whether key is held down.
func (c *Context) IsKeyPressed(key int) bool {
	return c.Handle.GetKey(glfw.Key(key)) == glfw.Press
}

// SetTitle changes the window title.
func (c *Context) SetTitle(title string) {
	c.Handle.SetTitle(title)
	c.Title = title
}

// Run calls frame once per display frame until the window should close or
// frame returns an error. now is the time since GLFW was initialized and
// elapsed the time since the previous rendered frame. Frames whose
// timestamp equals the previous one are skipped, including the first, which
// only starts the clock. Buffers are swapped after every rendered frame.
func (c *Context) Run(frame func(now, elapsed time.Duration) error) error {
	var clock frameClock
	for !c.ShouldClose() {
		c.PollEvents()
		now := time.Duration(glfw.GetTime() * float64(time.Second))
		elapsed, ok := clock.tick(now)
		if !ok {
			continue
		}
		if err := frame(now, elapsed); err != nil {
			return err
		}
		c.SwapBuffers()
	}
	return nil
}

// frameClock measures the time between frames.
type frameClock struct {
	prev    time.Duration
	started bool
}

// tick records now and returns the time since the previous tick. ok is
// false on the first tick and when now has not advanced.
func (fc *frameClock) tick(now time.Duration) (elapsed time.Duration, ok bool) {
	if !fc.started {
		fc.started = true
		fc.prev = now
		return 0, false
	}
	elapsed = now - fc.prev
	fc.prev = now
	return elapsed, elapsed != 0
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Key codes for IsKeyPressed.
const (
	KeyEscape = int(glfw.KeyEscape)
	KeySpace  = int(glfw.KeySpace)
	KeyR      = int(glfw.KeyR)
)
