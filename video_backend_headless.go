// video_backend_headless.go - Headless video output for IntuitionGPU

package main

import (
	"sync"
	"sync/atomic"
	"time"
)

// HeadlessVideoOutput keeps the last frame in memory instead of showing it.
type HeadlessVideoOutput struct {
	mutex       sync.Mutex
	started     bool
	config      DisplayConfig
	frame       []byte
	frameCount  uint64
	refreshRate int
}

func NewHeadlessVideoOutput() *HeadlessVideoOutput {
	return &HeadlessVideoOutput{refreshRate: 60}
}

func (h *HeadlessVideoOutput) Start() error {
	h.mutex.Lock()
	h.started = true
	h.mutex.Unlock()
	return nil
}

func (h *HeadlessVideoOutput) Stop() error {
	h.mutex.Lock()
	h.started = false
	h.mutex.Unlock()
	return nil
}

func (h *HeadlessVideoOutput) Close() error {
	return h.Stop()
}

func (h *HeadlessVideoOutput) IsStarted() bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.started
}

func (h *HeadlessVideoOutput) SetDisplayConfig(config DisplayConfig) error {
	h.mutex.Lock()
	h.config = config
	h.mutex.Unlock()
	return nil
}

func (h *HeadlessVideoOutput) GetDisplayConfig() DisplayConfig {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.config
}

func (h *HeadlessVideoOutput) UpdateFrame(buffer []byte) error {
	h.mutex.Lock()
	h.frame = append(h.frame[:0], buffer...)
	h.mutex.Unlock()
	atomic.AddUint64(&h.frameCount, 1)
	return nil
}

// LastFrame returns a copy of the most recent frame.
func (h *HeadlessVideoOutput) LastFrame() []byte {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return append([]byte(nil), h.frame...)
}

func (h *HeadlessVideoOutput) GetSnapshot() (FrameSnapshot, error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return FrameSnapshot{
		Buffer:    append([]byte(nil), h.frame...),
		Width:     h.config.Width,
		Height:    h.config.Height,
		Format:    PixelFormatRGBA,
		Timestamp: time.Now(),
	}, nil
}

func (h *HeadlessVideoOutput) WaitForVSync() error {
	return nil
}

func (h *HeadlessVideoOutput) GetFrameCount() uint64 {
	return atomic.LoadUint64(&h.frameCount)
}

func (h *HeadlessVideoOutput) GetRefreshRate() int {
	if h.refreshRate == 0 {
		return 60
	}
	return h.refreshRate
}
