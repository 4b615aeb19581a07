// video_interface.go - Video output interfaces for IntuitionGPU

/*
video_interface.go - Video Output Interfaces

Sources produce RGBA frames (the GPU), outputs put them on screen (Ebiten
window or the headless stub) and the compositor moves frames between the
two at the display refresh rate.
*/

package main

import (
	"fmt"
	"time"
)

// VideoError provides detailed error context for video operations
type VideoError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *VideoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("video %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("video %s failed: %s", e.Operation, e.Details)
}

func (e *VideoError) Unwrap() error {
	return e.Err
}

// FrameSnapshot encapsulates the data needed to represent a complete frame
type FrameSnapshot struct {
	Buffer    []byte
	Width     int
	Height    int
	Format    PixelFormat
	Timestamp time.Time
}

// DisplayConfig contains hardware-independent configuration
type DisplayConfig struct {
	Width       int
	Height      int
	Scale       int // Integer scaling factor for output
	RefreshRate int // Target refresh rate in Hz
	PixelFormat PixelFormat
	VSync       bool
	Fullscreen  bool
}

const (
	MIN_DISPLAY_SCALE = 1
	MAX_DISPLAY_SCALE = 4
)

// ClampScale keeps a window scale factor in the supported range.
func ClampScale(scale int) int {
	return max(MIN_DISPLAY_SCALE, min(scale, MAX_DISPLAY_SCALE))
}

// VideoOutput defines the minimal interface that backends must implement
type VideoOutput interface {
	Start() error
	Stop() error
	Close() error
	IsStarted() bool

	SetDisplayConfig(config DisplayConfig) error
	GetDisplayConfig() DisplayConfig
	UpdateFrame(buffer []byte) error // Takes raw RGBA pixels only

	WaitForVSync() error
	GetFrameCount() uint64
	GetRefreshRate() int
}

// VideoSource is anything the compositor can pull frames from.
type VideoSource interface {
	GetFrame() []byte // RGBA, nil when there is nothing to show
	IsEnabled() bool
	GetLayer() int // higher layers are drawn on top
	GetDimensions() (int, int)
	SignalVSync()
}

type PixelFormat int

const (
	PixelFormatRGBA PixelFormat = iota
	PixelFormatRGB565
)

// KeyboardInput is implemented by outputs that forward key presses.
type KeyboardInput interface {
	SetKeyHandler(fn func(byte))
}

// StatusToken is one highlighted word on a status bar line.
type StatusToken struct {
	Name string
	On   bool
}

type StatusLine struct {
	Label  string
	Tokens []StatusToken
}

// StatusCapable outputs draw a status bar fed by the provider.
type StatusCapable interface {
	SetStatusProvider(fn func() []StatusLine)
}

// SnapshotCapable outputs hand out a copy of the frame they last showed.
type SnapshotCapable interface {
	GetSnapshot() (FrameSnapshot, error)
}

// ControlCapable outputs expose reset and clipboard paste hooks.
type ControlCapable interface {
	SetHardResetHandler(fn func())
	SetPasteHandler(fn func(text string))
}

// Predefined video backend types
const (
	VIDEO_BACKEND_EBITEN = iota // Pure Go Ebiten backend
	VIDEO_BACKEND_HEADLESS
)

// NewVideoOutput creates a new video output instance using the specified backend
func NewVideoOutput(backend int) (VideoOutput, error) {
	switch backend {
	case VIDEO_BACKEND_EBITEN:
		return NewEbitenOutput()
	case VIDEO_BACKEND_HEADLESS:
		return NewHeadlessVideoOutput(), nil
	}
	return nil, &VideoError{
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend type: %d", backend),
	}
}
