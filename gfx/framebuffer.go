package gfx

import "fmt"

// Framebuffer attachments come in two kinds:
//   - renderbuffers can only be written to; they are multisampled here
//   - textures can be sampled but not multisampled
//
// To read the (anti-aliased) output of one pass as input to another, render
// into renderbuffers and Blit the result into a texture attachment.

// MaxColorSlots is the number of color attachment points every conforming
// implementation provides.
const MaxColorSlots = 8

// CreateFramebuffer creates a framebuffer and binds it to FRAMEBUFFER, so the
// attachments created next land on it.
func CreateFramebuffer(gl GL) (Framebuffer, error) {
	fb := gl.CreateFramebuffer()
	if !fb.Valid() {
		return Framebuffer{}, creationFailed("create framebuffer")
	}
	gl.BindFramebuffer(FRAMEBUFFER, fb)
	return fb, nil
}

// BindFramebuffer makes fb the target for drawing and attachment calls.
func BindFramebuffer(gl GL, fb Framebuffer) {
	gl.BindFramebuffer(FRAMEBUFFER, fb)
}

// BindDefaultFramebuffer returns drawing to the window surface.
func BindDefaultFramebuffer(gl GL) {
	gl.BindFramebuffer(FRAMEBUFFER, Framebuffer{})
}

// DeleteFramebuffer releases fb. Its attachments are not deleted.
func DeleteFramebuffer(gl GL, fb Framebuffer) {
	if fb.Valid() {
		gl.DeleteFramebuffer(fb)
	}
}

// CheckFramebuffer returns an *IncompleteFramebufferError unless the bound
// framebuffer is complete.
func CheckFramebuffer(gl GL) error {
	if status := gl.CheckFramebufferStatus(FRAMEBUFFER); status != FRAMEBUFFER_COMPLETE {
		return &IncompleteFramebufferError{Status: status}
	}
	return nil
}

// MaxSamples returns the largest sample count the context supports for
// multisampled renderbuffers.
func MaxSamples(gl GL) int {
	return gl.GetInteger(MAX_SAMPLES)
}

func colorAttachment(slot int) (Enum, error) {
	if slot < 0 || slot >= MaxColorSlots {
		return 0, fmt.Errorf("slot %d: %w", slot, ErrSlotOutOfRange)
	}
	return Enum(COLOR_ATTACHMENT0 + slot), nil
}

// CreateColorRenderbuffer creates a multisampled RGBA8 renderbuffer and
// attaches it at color slot 0..7 of the bound framebuffer.
func CreateColorRenderbuffer(gl GL, slot, width, height int) (Renderbuffer, error) {
	attachment, err := colorAttachment(slot)
	if err != nil {
		return Renderbuffer{}, err
	}
	rb := gl.CreateRenderbuffer()
	if !rb.Valid() {
		return Renderbuffer{}, creationFailed("create color renderbuffer")
	}
	ResizeColorRenderbuffer(gl, rb, width, height)
	gl.FramebufferRenderbuffer(FRAMEBUFFER, attachment, RENDERBUFFER, rb)
	return rb, nil
}

// ResizeColorRenderbuffer reallocates rb's storage. The attachment is kept.
func ResizeColorRenderbuffer(gl GL, rb Renderbuffer, width, height int) {
	gl.BindRenderbuffer(RENDERBUFFER, rb)
	gl.RenderbufferStorageMultisample(RENDERBUFFER, MaxSamples(gl), RGBA8, width, height)
}

// CreateDepthRenderbuffer creates a multisampled 24-bit depth renderbuffer
// and attaches it at the depth slot of the bound framebuffer.
func CreateDepthRenderbuffer(gl GL, width, height int) (Renderbuffer, error) {
	rb := gl.CreateRenderbuffer()
	if !rb.Valid() {
		return Renderbuffer{}, creationFailed("create depth renderbuffer")
	}
	ResizeDepthRenderbuffer(gl, rb, width, height)
	gl.FramebufferRenderbuffer(FRAMEBUFFER, DEPTH_ATTACHMENT, RENDERBUFFER, rb)
	return rb, nil
}

// ResizeDepthRenderbuffer reallocates rb's storage. The attachment is kept.
func ResizeDepthRenderbuffer(gl GL, rb Renderbuffer, width, height int) {
	gl.BindRenderbuffer(RENDERBUFFER, rb)
	gl.RenderbufferStorageMultisample(RENDERBUFFER, MaxSamples(gl), DEPTH_COMPONENT24, width, height)
}

// DeleteRenderbuffer releases rb.
func DeleteRenderbuffer(gl GL, rb Renderbuffer) {
	if rb.Valid() {
		gl.DeleteRenderbuffer(rb)
	}
}

// CreateColorTexture creates an RGBA texture with nearest filtering and
// edge clamping and attaches it at color slot 0..7 of the bound framebuffer.
func CreateColorTexture(gl GL, slot, width, height int) (Texture, error) {
	attachment, err := colorAttachment(slot)
	if err != nil {
		return Texture{}, err
	}
	tex, err := newAttachmentTexture(gl, "create color texture")
	if err != nil {
		return Texture{}, err
	}
	ResizeColorTexture(gl, tex, width, height)
	gl.FramebufferTexture2D(FRAMEBUFFER, attachment, TEXTURE_2D, tex, 0)
	return tex, nil
}

// ResizeColorTexture reallocates tex's storage in place.
func ResizeColorTexture(gl GL, tex Texture, width, height int) {
	gl.BindTexture(TEXTURE_2D, tex)
	gl.TexImage2D(TEXTURE_2D, 0, RGBA, width, height, RGBA, UNSIGNED_BYTE, nil)
}

// CreateDepthTexture creates a 24-bit depth texture with nearest filtering
// and edge clamping and attaches it at the depth slot of the bound
// framebuffer.
func CreateDepthTexture(gl GL, width, height int) (Texture, error) {
	tex, err := newAttachmentTexture(gl, "create depth texture")
	if err != nil {
		return Texture{}, err
	}
	ResizeDepthTexture(gl, tex, width, height)
	gl.FramebufferTexture2D(FRAMEBUFFER, DEPTH_ATTACHMENT, TEXTURE_2D, tex, 0)
	return tex, nil
}

// ResizeDepthTexture reallocates tex's storage in place.
func ResizeDepthTexture(gl GL, tex Texture, width, height int) {
	gl.BindTexture(TEXTURE_2D, tex)
	gl.TexImage2D(TEXTURE_2D, 0, DEPTH_COMPONENT24, width, height, DEPTH_COMPONENT, UNSIGNED_INT, nil)
}

func newAttachmentTexture(gl GL, call string) (Texture, error) {
	tex := gl.CreateTexture()
	if !tex.Valid() {
		return Texture{}, creationFailed(call)
	}
	gl.BindTexture(TEXTURE_2D, tex)
	gl.TexParameteri(TEXTURE_2D, TEXTURE_MAG_FILTER, NEAREST)
	gl.TexParameteri(TEXTURE_2D, TEXTURE_MIN_FILTER, NEAREST)
	gl.TexParameteri(TEXTURE_2D, TEXTURE_WRAP_S, CLAMP_TO_EDGE)
	gl.TexParameteri(TEXTURE_2D, TEXTURE_WRAP_T, CLAMP_TO_EDGE)
	return tex, nil
}

// Blit copies color and depth from the color attachment at srcSlot of src
// into the attachment at dstSlot of dst, over [0,width]×[0,height] with
// nearest filtering.
//
// This is how a multisampled renderbuffer is resolved into a sampleable,
// anti-aliased texture: there are no multisampled textures in this model.
//
// The draw buffer list of dst is set to [NONE, ..., COLOR_ATTACHMENT0+dstSlot]
// so only dstSlot receives the copy. Both framebuffers stay bound to their
// READ/DRAW targets afterwards.
func Blit(gl GL, src Framebuffer, srcSlot int, dst Framebuffer, dstSlot int, width, height int) error {
	readAttachment, err := colorAttachment(srcSlot)
	if err != nil {
		return fmt.Errorf("blit source: %w", err)
	}
	if _, err := colorAttachment(dstSlot); err != nil {
		return fmt.Errorf("blit destination: %w", err)
	}

	gl.BindFramebuffer(READ_FRAMEBUFFER, src)
	gl.ReadBuffer(readAttachment)

	gl.BindFramebuffer(DRAW_FRAMEBUFFER, dst)
	gl.DrawBuffers(drawBuffersFor(dstSlot))
	gl.BlitFramebuffer(
		0, 0, width, height,
		0, 0, width, height,
		COLOR_BUFFER_BIT|DEPTH_BUFFER_BIT,
		NEAREST,
	)
	return nil
}

// drawBuffersFor returns [NONE × slot, COLOR_ATTACHMENT0+slot].
func drawBuffersFor(slot int) []Enum {
	bufs := make([]Enum, slot+1)
	for i := range slot {
		bufs[i] = NONE
	}
	bufs[slot] = Enum(COLOR_ATTACHMENT0 + slot)
	return bufs
}
