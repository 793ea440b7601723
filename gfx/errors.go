package gfx

import (
	"errors"
	"fmt"
)

var (
	// ErrContextUnavailable is returned when the platform cannot provide a
	// rendering context.
	ErrContextUnavailable = errors.New("rendering context unavailable")

	// ErrResourceCreation is returned when the driver hands back a null
	// handle for a shader, program, buffer, texture or framebuffer object.
	ErrResourceCreation = errors.New("resource creation failed")

	// ErrSlotOutOfRange is returned for color attachment slots outside 0..7.
	ErrSlotOutOfRange = errors.New("color attachment slot out of range")
)

// CompileError carries the driver diagnostic of a failed compile or link.
type CompileError struct {
	Stage string // "vertex", "fragment" or "link"
	Log   string
}

func (e *CompileError) Error() string {
	if e.Stage == "link" {
		return fmt.Sprintf("link failed: %s", e.Log)
	}
	return fmt.Sprintf("%s: compile failed: %s", e.Stage, e.Log)
}

// IncompleteFramebufferError reports a CheckFramebufferStatus result other
// than FRAMEBUFFER_COMPLETE.
type IncompleteFramebufferError struct {
	Status Enum
}

func (e *IncompleteFramebufferError) Error() string {
	return fmt.Sprintf("framebuffer incomplete: status=0x%X", uint32(e.Status))
}

func creationFailed(call string) error {
	return fmt.Errorf("%s: %w", call, ErrResourceCreation)
}
