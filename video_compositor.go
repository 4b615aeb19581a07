// video_compositor.go - Video compositor for IntuitionGPU

/*
video_compositor.go - Video Compositor

Pulls frames from registered VideoSource implementations, scales each one
to the output size and draws them in layer order (higher layer on top).
Runs on its own ticker at the display refresh rate, or one frame at a time
through Composite for headless replays.

                    ┌─────────────┐     ┌─────────────┐     ┌─────────┐
  GP0/GP1 words  →  │     GPU     │ ──→ │ Compositor  │ ──→ │ Display │
                    └─────────────┘     └─────────────┘     └─────────┘
*/

package main

import (
	"log"
	"slices"
	"sync"
	"time"
)

// Compositor constants
const (
	COMPOSITOR_REFRESH_RATE     = 60
	COMPOSITOR_REFRESH_INTERVAL = time.Second / COMPOSITOR_REFRESH_RATE
	COMPOSITOR_DEFAULT_WIDTH    = 640
	COMPOSITOR_DEFAULT_HEIGHT   = 480
	BYTES_PER_PIXEL             = 4
)

// VideoCompositor blends multiple video sources into a single output
type VideoCompositor struct {
	mutex       sync.RWMutex
	output      VideoOutput
	sources     []VideoSource
	finalFrame  []byte
	zeroFrame   []byte
	done        chan struct{}
	stopOnce    sync.Once
	frameWidth  int
	frameHeight int
}

func NewVideoCompositor(output VideoOutput) *VideoCompositor {
	c := &VideoCompositor{
		output: output,
		done:   make(chan struct{}),
	}
	c.SetDimensions(COMPOSITOR_DEFAULT_WIDTH, COMPOSITOR_DEFAULT_HEIGHT)
	return c
}

// RegisterSource adds a video source, keeping sources sorted by layer.
func (c *VideoCompositor) RegisterSource(source VideoSource) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.sources = append(c.sources, source)
	slices.SortStableFunc(c.sources, func(a, b VideoSource) int {
		return a.GetLayer() - b.GetLayer()
	})
}

// SetDimensions sets the output frame dimensions
func (c *VideoCompositor) SetDimensions(width, height int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.frameWidth = width
	c.frameHeight = height
	c.finalFrame = make([]byte, width*height*BYTES_PER_PIXEL)
	c.zeroFrame = make([]byte, width*height*BYTES_PER_PIXEL)
}

// Start begins the compositor refresh loop
func (c *VideoCompositor) Start() error {
	go c.refreshLoop()
	return nil
}

// Stop halts the compositor refresh loop
func (c *VideoCompositor) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

func (c *VideoCompositor) refreshLoop() {
	ticker := time.NewTicker(COMPOSITOR_REFRESH_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.Composite()
		}
	}
}

// Composite builds one output frame and hands it to the output. It reports
// whether any source contributed.
func (c *VideoCompositor) Composite() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	copy(c.finalFrame, c.zeroFrame)

	hasContent := false
	for _, source := range c.sources {
		if !source.IsEnabled() {
			continue
		}
		frame := source.GetFrame()
		if frame == nil {
			continue
		}
		hasContent = true
		srcW, srcH := source.GetDimensions()
		c.blendFrame(frame, srcW, srcH)
		source.SignalVSync()
	}

	if hasContent && c.output != nil && c.output.IsStarted() {
		if err := c.output.UpdateFrame(c.finalFrame); err != nil {
			log.Printf("compositor: error updating frame: %v", err)
		}
	}
	return hasContent
}

// Frame returns a copy of the last composited frame.
func (c *VideoCompositor) Frame() []byte {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return append([]byte(nil), c.finalFrame...)
}

// blendFrame scales a source frame onto the final frame. Pixels with zero
// alpha leave the layer below visible.
func (c *VideoCompositor) blendFrame(srcFrame []byte, srcW, srcH int) {
	dstW, dstH := c.frameWidth, c.frameHeight
	if srcW <= 0 || srcH <= 0 {
		return
	}

	for dstY := 0; dstY < dstH; dstY++ {
		srcY := dstY * srcH / dstH
		for dstX := 0; dstX < dstW; dstX++ {
			srcX := dstX * srcW / dstW

			srcIdx := (srcY*srcW + srcX) * BYTES_PER_PIXEL
			dstIdx := (dstY*dstW + dstX) * BYTES_PER_PIXEL
			if srcIdx+3 >= len(srcFrame) || dstIdx+3 >= len(c.finalFrame) {
				continue
			}
			if srcFrame[srcIdx+3] == 0 {
				continue
			}
			copy(c.finalFrame[dstIdx:dstIdx+4], srcFrame[srcIdx:srcIdx+4])
		}
	}
}
