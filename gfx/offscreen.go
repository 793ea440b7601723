package gfx

import "fmt"

// OffscreenTarget is an anti-aliased render target whose result can be
// sampled: the scene is drawn into a multisampled framebuffer (color +
// depth renderbuffers) and Resolve blits it into a resolve framebuffer
// backed by textures.
type OffscreenTarget struct {
	MSAA     Framebuffer
	ColorRB  Renderbuffer
	DepthRB  Renderbuffer
	Resolved Framebuffer
	ColorTex Texture
	DepthTex Texture
	Width    int
	Height   int
}

// NewOffscreenTarget creates both framebuffers at width×height and checks
// that each one is complete. The default framebuffer is bound on return.
func NewOffscreenTarget(gl GL, width, height int) (*OffscreenTarget, error) {
	t := &OffscreenTarget{Width: width, Height: height}
	var err error

	if t.MSAA, err = CreateFramebuffer(gl); err != nil {
		return nil, fmt.Errorf("offscreen msaa: %w", err)
	}
	if t.ColorRB, err = CreateColorRenderbuffer(gl, 0, width, height); err != nil {
		return nil, fmt.Errorf("offscreen msaa: %w", err)
	}
	if t.DepthRB, err = CreateDepthRenderbuffer(gl, width, height); err != nil {
		return nil, fmt.Errorf("offscreen msaa: %w", err)
	}
	if err := CheckFramebuffer(gl); err != nil {
		return nil, fmt.Errorf("offscreen msaa: %w", err)
	}

	if t.Resolved, err = CreateFramebuffer(gl); err != nil {
		return nil, fmt.Errorf("offscreen resolve: %w", err)
	}
	if t.ColorTex, err = CreateColorTexture(gl, 0, width, height); err != nil {
		return nil, fmt.Errorf("offscreen resolve: %w", err)
	}
	if t.DepthTex, err = CreateDepthTexture(gl, width, height); err != nil {
		return nil, fmt.Errorf("offscreen resolve: %w", err)
	}
	if err := CheckFramebuffer(gl); err != nil {
		return nil, fmt.Errorf("offscreen resolve: %w", err)
	}

	BindDefaultFramebuffer(gl)
	return t, nil
}

// Bind directs drawing into the multisampled framebuffer and sets the
// viewport to the target size.
func (t *OffscreenTarget) Bind(gl GL) {
	BindFramebuffer(gl, t.MSAA)
	gl.Viewport(0, 0, t.Width, t.Height)
}

// Resize reallocates every attachment at the new size. Attachments stay
// attached, so no framebuffer needs rebuilding.
func (t *OffscreenTarget) Resize(gl GL, width, height int) {
	if width == t.Width && height == t.Height {
		return
	}
	t.Width, t.Height = width, height
	ResizeColorRenderbuffer(gl, t.ColorRB, width, height)
	ResizeDepthRenderbuffer(gl, t.DepthRB, width, height)
	ResizeColorTexture(gl, t.ColorTex, width, height)
	ResizeDepthTexture(gl, t.DepthTex, width, height)
}

// Resolve blits the multisampled color and depth into the resolve textures.
// ColorTex can be sampled afterwards.
func (t *OffscreenTarget) Resolve(gl GL) error {
	return Blit(gl, t.MSAA, 0, t.Resolved, 0, t.Width, t.Height)
}

// Delete frees every GPU object of the target.
func (t *OffscreenTarget) Delete(gl GL) {
	DeleteFramebuffer(gl, t.MSAA)
	DeleteFramebuffer(gl, t.Resolved)
	DeleteRenderbuffer(gl, t.ColorRB)
	DeleteRenderbuffer(gl, t.DepthRB)
	DeleteTexture(gl, t.ColorTex)
	DeleteTexture(gl, t.DepthTex)
	*t = OffscreenTarget{}
}
