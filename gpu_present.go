// gpu_present.go - PlayStation GPU Display Control and Frame Presentation

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine

License: GPLv3 or later
*/

/*
gpu_present.go - Display Control and Frame Presentation

GPU wraps a RenderContext with the two hardware ports and the display side
of the chip:

  GP0  WriteGP0 / ReadGPUData       packet stream and VRAM transfers (gpu_stream.go)
  GP1  WriteGP1 / Status            display control and status

A buffer swap happens when the display start moves (double buffered titles)
or on VSync for interlaced and single buffered output. DoBufferSwap runs, in
order:

  1. 24-bit movie or pending interlace upload into the back buffer
  2. deferred FF9 quad
  3. Render() if anything was drawn
  4. clear on swap, depth reset
  5. upload after swap, seeding the next frame from VRAM

Every public method takes the GPU mutex; the interpreter underneath is not
safe for concurrent use.
*/

package main

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// GP1 commands
const (
	GP1_RESET          = 0x00
	GP1_RESET_BUFFER   = 0x01
	GP1_ACK_IRQ        = 0x02
	GP1_DISPLAY_ENABLE = 0x03
	GP1_DMA_DIRECTION  = 0x04
	GP1_DISPLAY_START  = 0x05
	GP1_HORIZ_RANGE    = 0x06
	GP1_VERT_RANGE     = 0x07
	GP1_DISPLAY_MODE   = 0x08
	GP1_TEXTURE_DIS    = 0x09
	GP1_GET_INFO       = 0x10
)

const (
	statusIRQ            = 0x01000000
	statusDMAMask        = 0x60000000
	statusOddLine        = 0x80000000
	gpuVersion2Info      = 2
	interlaceSettleSwaps = 2
)

var displayWidths = [4]int{256, 320, 512, 640}

// GPU is the host facing device.
type GPU struct {
	mutex    sync.Mutex
	cfg      GPUConfig
	renderer Renderer
	rc       *RenderContext

	enabled atomic.Bool
	layer   int

	// GP0 packet assembly
	packet    []uint32
	need      int
	variable  bool
	dataLatch uint32

	swappedSinceVSync bool
	interlaceSettle   int
	oddLine           bool

	frames    uint64
	vsyncs    uint64
	displayed atomic.Uint64

	packetHook func(words []uint32)
}

// NewGPU validates the configuration, initialises the renderer at the
// configured display size and builds the interpreter around it.
func NewGPU(cfg GPUConfig, renderer Renderer) (*GPU, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &VideoError{Operation: "gpu creation", Details: "invalid configuration", Err: err}
	}
	if err := renderer.Init(cfg.DisplayWidth, cfg.DisplayHeight); err != nil {
		return nil, &VideoError{
			Operation: "renderer init",
			Details:   fmt.Sprintf("%dx%d surface", cfg.DisplayWidth, cfg.DisplayHeight),
			Err:       err,
		}
	}
	g := &GPU{
		cfg:      cfg,
		renderer: renderer,
		rc:       NewRenderContext(cfg, renderer),
		packet:   make([]uint32, 0, PSX_MAX_POLYLINE_IDX+1),
	}
	g.enabled.Store(true)
	return g, nil
}

// Context exposes the interpreter. Callers must not use it concurrently
// with the GPU.
func (g *GPU) Context() *RenderContext {
	return g.rc
}

// SetPacketHook installs a function called with every completed GP0
// packet before it executes.
func (g *GPU) SetPacketHook(fn func(words []uint32)) {
	g.mutex.Lock()
	g.packetHook = fn
	g.mutex.Unlock()
}

// Reset performs a GP1 reset.
func (g *GPU) Reset() {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.reset()
}

func (g *GPU) reset() {
	g.rc.Reset()
	g.rc.display.Disabled = true
	g.packet = g.packet[:0]
	g.dataLatch = 0
	g.interlaceSettle = 0
	g.swappedSinceVSync = false
}

// Destroy releases the renderer.
func (g *GPU) Destroy() {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.rc.texCache.Purge()
	g.renderer.Destroy()
}

// WriteGP1 executes one display control command.
func (g *GPU) WriteGP1(word uint32) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	rc := g.rc
	switch cmd := word >> 24; {
	case cmd == GP1_RESET:
		g.reset()
	case cmd == GP1_RESET_BUFFER:
		g.packet = g.packet[:0]
		rc.dataWriteMode = DR_NORMAL
	case cmd == GP1_ACK_IRQ:
		rc.statusReg &^= statusIRQ
	case cmd == GP1_DISPLAY_ENABLE:
		g.setDisplayEnabled(word&1 == 0)
	case cmd == GP1_DMA_DIRECTION:
		rc.statusReg = rc.statusReg&^statusDMAMask | (word&3)<<29
	case cmd == GP1_DISPLAY_START:
		ymask := uint32(0x1ff)
		if rc.vramHeight == PSX_VRAM_HEIGHT_2MB {
			ymask = 0x3ff
		}
		g.setDisplayStart(int(word&0x3ff), int((word>>10)&ymask))
	case cmd == GP1_HORIZ_RANGE, cmd == GP1_VERT_RANGE:
		// ranges only change analog timing; the surface always shows the whole mode
	case cmd == GP1_DISPLAY_MODE:
		w := displayWidths[word&3]
		if word&0x40 != 0 {
			w = 368
		}
		interlaced := word&0x20 != 0
		h := 240
		if word&0x04 != 0 && interlaced {
			h = 480
		}
		g.setDisplayMode(w, h, interlaced, word&0x10 != 0)
	case cmd == GP1_TEXTURE_DIS:
	case cmd >= GP1_GET_INFO && cmd <= 0x1f:
		g.dataLatch = g.info(word & 0x0f)
	}
}

func (g *GPU) info(which uint32) uint32 {
	switch which {
	case 2:
		return g.rc.gpuInfo[INFO_TW]
	case 3:
		return g.rc.gpuInfo[INFO_DRAWSTART]
	case 4:
		return g.rc.gpuInfo[INFO_DRAWEND]
	case 5:
		return g.rc.gpuInfo[INFO_DRAWOFF]
	case 7:
		return gpuVersion2Info
	}
	return g.dataLatch
}

// SetDisplayStart moves the display window. A move in progressive modes
// is the page flip of a double buffered title and presents the frame.
func (g *GPU) SetDisplayStart(x, y int) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.setDisplayStart(x, y)
}

func (g *GPU) setDisplayStart(x, y int) {
	rc := g.rc
	pos := PSXPoint{X: x, Y: y}
	if pos == rc.display.DisplayPosition {
		return
	}
	rc.prevDisplay.DisplayPosition = rc.display.DisplayPosition
	rc.prevDisplay.DisplayEnd = rc.display.DisplayEnd
	rc.display.DisplayPosition = pos
	rc.display.DisplayEnd = PSXPoint{X: x + rc.display.DisplayMode.X, Y: y + rc.display.DisplayMode.Y}
	rc.displayNotSet = true

	if !rc.display.Interlaced {
		g.doBufferSwap()
		g.swappedSinceVSync = true
	}
}

// SetDisplayMode changes resolution, interlace and colour depth.
func (g *GPU) SetDisplayMode(width, height int, interlaced, rgb24 bool) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.setDisplayMode(width, height, interlaced, rgb24)
}

func (g *GPU) setDisplayMode(width, height int, interlaced, rgb24 bool) {
	rc := g.rc
	d := &rc.display
	if interlaced && !d.Interlaced {
		d.InterlacedTest = true
		g.interlaceSettle = interlaceSettleSwaps
		rc.prevDisplay.InterlacedNew = true
	} else if !interlaced {
		d.InterlacedTest = false
		g.interlaceSettle = 0
	}
	d.Interlaced = interlaced
	d.DisplayMode = PSXPoint{X: width, Y: height}
	d.DisplayEnd = PSXPoint{X: d.DisplayPosition.X + width, Y: d.DisplayPosition.Y + height}
	switch {
	case !rgb24:
		d.RGB24 = 0
	case d.RGB24 == 0:
		d.RGB24 = 1
	}
	rc.prevDisplay.DisplayMode = d.DisplayMode
	rc.displayNotSet = true
}

// SetDisplayEnabled turns the video output on or off.
func (g *GPU) SetDisplayEnabled(on bool) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.setDisplayEnabled(on)
}

func (g *GPU) setDisplayEnabled(on bool) {
	g.rc.display.Disabled = !on
	g.rc.prevDisplay.Disabled = !on
}

// Status returns the GPUSTAT register.
func (g *GPU) Status() uint32 {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	rc := g.rc
	s := rc.statusReg &^ (STATUS_DISPLAY_OFF | STATUS_INTERLACE | STATUS_RGB24 | STATUS_READY_VRAM | statusOddLine)
	s |= STATUS_READY_CMD | STATUS_READY_DMA
	if rc.display.Disabled {
		s |= STATUS_DISPLAY_OFF
	}
	if rc.display.Interlaced {
		s |= STATUS_INTERLACE
	}
	if rc.display.RGB24 != 0 {
		s |= STATUS_RGB24
	}
	if rc.dataReadMode == DR_VRAMTRANSFER {
		s |= STATUS_READY_VRAM
	}
	if g.oddLine {
		s |= statusOddLine
	}
	return s
}

// VSync marks the end of a field. Interlaced output and frames that were
// drawn without a page flip are presented here.
func (g *GPU) VSync() {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.vsyncs++
	rc := g.rc
	if rc.display.Interlaced {
		g.oddLine = !g.oddLine
	}
	if rc.display.Interlaced || (!g.swappedSinceVSync && rc.drawnSomething != 0) {
		g.doBufferSwap()
	}
	g.swappedSinceVSync = false
}

// DoBufferSwap presents the current frame.
func (g *GPU) DoBufferSwap() {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.doBufferSwap()
}

func (g *GPU) doBufferSwap() {
	rc := g.rc
	rc.DoBufferSwap()
	g.frames++

	if g.interlaceSettle > 0 {
		g.interlaceSettle--
		if g.interlaceSettle == 0 {
			rc.display.InterlacedTest = false
		}
	}
	if g.cfg.FrameSkip {
		rc.skipFrame = !rc.skipFrame
	}
}

// DoBufferSwap flushes pending uploads and deferred primitives, presents
// the back buffer and prepares the next frame.
func (rc *RenderContext) DoBufferSwap() {
	interlaced := 0
	if rc.display.Interlaced {
		interlaced = 1
	}

	switch {
	case rc.display.RGB24 != 0:
		rc.PrepareFullScreenUpload(-1)
		rc.UploadScreen(interlaced)
		rc.needUploadTest, rc.needInterlaceUpd = false, false
		rc.needUploadAfter, rc.needRGB24Update = false, false
	case rc.needInterlaceUpd:
		rc.needInterlaceUpd = false
		rc.uploadRect(rc.uploadAreaIL, 1)
	}

	rc.replayFF9G4()

	if rc.display.Disabled {
		rc.renderer.DisableScissor()
		rc.renderer.ClearColor(0, 0, 0, 255)
		rc.renderer.Clear(CLEAR_COLOR)
		rc.renderer.EnableScissor()
		rc.drawnSomething = 1
	}
	rc.fakeFrontBuffer, rc.renderFrontBuffer = false, false
	if rc.drawnSomething != 0 && !rc.skipFrame {
		rc.renderer.Render()
	}
	rc.drawnSomething = 0

	rc.renderer.DisableScissor()
	if rc.clearOnSwap {
		c := rc.clearOnSwapColor
		rc.renderer.ClearColor(uint8(c), uint8(c>>8), uint8(c>>16), 255)
		rc.renderer.Clear(CLEAR_COLOR)
		rc.clearOnSwap = false
	}
	if rc.cfg.UseMask {
		rc.renderer.Clear(CLEAR_DEPTH)
		rc.glZ = 0
	}
	rc.renderer.EnableScissor()
	rc.displayNotSet = true

	if rc.needUploadAfter {
		rc.needUploadAfter, rc.needUploadTest = false, false
		rc.PrepareFullScreenUpload(-1)
		rc.UploadScreen(interlaced)
	}
}

// updateFrontDisplay presents what was drawn into the visible buffer.
func (rc *RenderContext) updateFrontDisplay() {
	rc.fakeFrontBuffer, rc.renderFrontBuffer = false, false
	if rc.drawnSomething != 0 {
		rc.renderer.Render()
	}
}

// Frames reports buffer swaps and VSyncs seen so far.
func (g *GPU) Frames() (swaps, vsyncs uint64) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.frames, g.vsyncs
}

// VideoSource

func (g *GPU) GetFrame() []byte {
	return g.renderer.GetFrame()
}

func (g *GPU) IsEnabled() bool {
	return g.enabled.Load()
}

func (g *GPU) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *GPU) GetLayer() int {
	return g.layer
}

func (g *GPU) GetDimensions() (int, int) {
	return g.renderer.GetDimensions()
}

// SignalVSync counts compositor refreshes. Field timing comes from VSync.
func (g *GPU) SignalVSync() {
	g.displayed.Add(1)
}

// Displayed reports how many times the compositor has shown a frame.
func (g *GPU) Displayed() uint64 {
	return g.displayed.Load()
}
