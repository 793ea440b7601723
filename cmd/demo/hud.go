package main

import (
	"fmt"
	"strings"
)

// DebugOverlay collects status lines shown in the window title.
type DebugOverlay struct {
	lines []string
}

func (do *DebugOverlay) AddLine(format string, args ...any) {
	do.lines = append(do.lines, fmt.Sprintf(format, args...))
}

func (do *DebugOverlay) Clear() {
	do.lines = do.lines[:0]
}

// Title joins the lines into a single window title.
func (do *DebugOverlay) Title() string {
	return strings.Join(do.lines, " | ")
}
