// gpu_context.go - PlayStation GPU Render Context

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
gpu_context.go - Render Context

RenderContext owns every piece of state the command handlers share: VRAM, the
current and previous display windows, the draw area and offsets, texture page
and window, mask policy, blend flags and the upload accumulators. Handlers are
methods on the context and receive a DecodedPrimitive describing the packet
being executed, so nothing leaks between primitives except the state that the
hardware itself keeps between commands.

Display naming:
- display:     the window currently being scanned out (the front)
- prevDisplay: the window of the previous frame, where the game is drawing
*/

package main

// PSXPoint is a 2D integer coordinate.
type PSXPoint struct {
	X, Y int
}

// PSXRect is an integer rectangle. Depending on use X1/Y1 is an end
// coordinate or a size; the owning field documents which.
type PSXRect struct {
	X0, X1, Y0, Y1 int
}

// PSXDisplay describes one display window and the offsets derived from it.
type PSXDisplay struct {
	DisplayMode     PSXPoint // width, height
	DisplayPosition PSXPoint
	DisplayEnd      PSXPoint
	DrawOffset      PSXPoint
	GDrawOffset     PSXPoint
	CumulOffset     PSXPoint
	DrawArea        PSXRect // end coordinates, inclusive
	Range           PSXRect
	Interlaced      bool
	InterlacedNew   bool
	InterlacedTest  bool
	RGB24           int
	Disabled        bool
}

// TextureWindow holds the decoded E2 texture window.
type TextureWindow struct {
	Position     PSXRect // X0/Y0 origin, X1/Y1 power of two size
	OPosition    PSXRect // X1/Y1 raw size
	UScaleFactor float32
	VScaleFactor float32
}

// Vertex is one emitted vertex. Col is packed 0xAABBGGRR.
type Vertex struct {
	X, Y, Z float32
	S, T    float32
	Col     uint32
}

func (v *Vertex) setColor(bgr uint32, a uint8) {
	v.Col = (bgr & 0x00ffffff) | uint32(a)<<24
}

func (v *Vertex) setAlpha(a uint8) {
	v.Col = (v.Col & 0x00ffffff) | uint32(a)<<24
}

func (v *Vertex) rgba() (uint8, uint8, uint8, uint8) {
	return uint8(v.Col), uint8(v.Col >> 8), uint8(v.Col >> 16), uint8(v.Col >> 24)
}

// VRAMLoad tracks an image transfer in progress.
type VRAMLoad struct {
	X, Y          int
	Width, Height int
	RowsRemaining int
	ColsRemaining int
	CurX, CurY    int
}

// RenderContext is the complete interpreter state.
type RenderContext struct {
	cfg      GPUConfig
	renderer Renderer
	texCache *TextureCache

	vram       []uint16
	vramHeight int
	heightMask int

	display     PSXDisplay
	prevDisplay PSXDisplay

	drawX, drawY, drawW, drawH int
	displayNotSet              bool

	statusReg uint32
	gpuInfo   [INFO_COUNT]uint32

	// Texture page
	globalTextAddrX   int
	globalTextAddrY   int
	globalTextTP      int
	globalTextABR     int
	globalTexturePage int
	globalTextREST    uint32
	usMirror          uint32

	twin       TextureWindow
	usingTWin  bool
	usingMovie bool
	movieArea  PSXRect
	boundTex   *Texture

	// Per primitive render flags
	drawTextured     bool
	drawSmoothShaded bool
	drawNonShaded    bool
	drawSemiTrans    bool
	drawMultiPass    bool
	opaqueDraw       bool
	gloAlpha         uint8
	gloColAlpha      uint8
	mirrorColor      [3]int32 // texture modulation used by the software mirror

	// Mask policy
	setMask   int
	sSetMask  uint16
	lSetMask  uint32
	checkMask bool
	depthFunc int
	glZ       float32

	// Upload tracking
	uploadArea        PSXRect
	checkArea         PSXRect
	uploadAreaIL      PSXRect
	uploadAreaRGB24   PSXRect
	needUploadAfter   bool
	needUploadTest    bool
	needRGB24Update   bool
	needWriteUpload   bool
	needInterlaceUpd  bool
	fakeFrontBuffer   bool
	renderFrontBuffer bool
	drawnSomething    int
	skipFrame         bool

	clearOnSwap      bool
	clearOnSwapColor uint32
	ignoreNextTile   bool

	vramWrite     VRAMLoad
	vramRead      VRAMLoad
	dataWriteMode int
	dataReadMode  int

	ff9State int
	ff9Cache [8]uint32
}

// NewRenderContext builds a context around an initialised renderer.
func NewRenderContext(cfg GPUConfig, renderer Renderer) *RenderContext {
	rc := &RenderContext{
		cfg:        cfg,
		renderer:   renderer,
		vramHeight: cfg.VRAMHeight,
		heightMask: cfg.VRAMHeight - 1,
	}
	rc.vram = make([]uint16, PSX_VRAM_WIDTH*rc.vramHeight)
	rc.texCache = NewTextureCache(rc)
	rc.Reset()
	return rc
}

// Reset returns every register to its power-on value and clears VRAM.
func (rc *RenderContext) Reset() {
	clear(rc.vram)
	rc.texCache.Purge()

	mode := PSXPoint{X: rc.cfg.DisplayWidth, Y: rc.cfg.DisplayHeight}
	rc.display = PSXDisplay{DisplayMode: mode, DisplayEnd: mode}
	rc.prevDisplay = rc.display
	rc.drawX, rc.drawY = 0, 0
	rc.drawW, rc.drawH = PSX_VRAM_WIDTH-1, rc.heightMask
	rc.display.DrawArea = PSXRect{X0: 0, Y0: 0, X1: rc.drawW, Y1: rc.drawH}
	rc.prevDisplay.DrawArea = rc.display.DrawArea
	rc.displayNotSet = true

	rc.statusReg = STATUS_DEFAULT_VALUE
	rc.gpuInfo = [INFO_COUNT]uint32{}

	rc.globalTextAddrX, rc.globalTextAddrY = 0, 0
	rc.globalTextTP, rc.globalTextABR = 0, 0
	rc.globalTexturePage, rc.globalTextREST, rc.usMirror = 0, 0, 0
	rc.twin = TextureWindow{UScaleFactor: 1, VScaleFactor: 1}
	rc.usingTWin, rc.usingMovie = false, false
	rc.boundTex = nil

	rc.drawTextured, rc.drawSmoothShaded = false, false
	rc.drawNonShaded, rc.drawSemiTrans = false, false
	rc.drawMultiPass, rc.opaqueDraw = false, false
	rc.gloAlpha, rc.gloColAlpha = 255, 255
	rc.mirrorColor = [3]int32{128, 128, 128}

	rc.setMask, rc.sSetMask, rc.lSetMask = 0, 0, 0
	rc.checkMask = false
	rc.glZ = 0

	rc.uploadArea = PSXRect{}
	rc.checkArea = PSXRect{}
	rc.uploadAreaIL = PSXRect{}
	rc.uploadAreaRGB24 = PSXRect{}
	rc.needUploadAfter, rc.needUploadTest = false, false
	rc.needRGB24Update, rc.needWriteUpload = false, false
	rc.needInterlaceUpd = false
	rc.fakeFrontBuffer, rc.renderFrontBuffer = false, false
	rc.drawnSomething = 0
	rc.skipFrame = false
	rc.clearOnSwap, rc.clearOnSwapColor = false, 0
	rc.ignoreNextTile = false

	rc.vramWrite, rc.vramRead = VRAMLoad{}, VRAMLoad{}
	rc.dataWriteMode, rc.dataReadMode = DR_NORMAL, DR_NORMAL
	rc.ff9State = 0

	rc.renderer.EnableAlphaTest()
	rc.renderer.SetAlphaFunc(CMP_GREATER, OPAQUE_OFF_REF)
	rc.renderer.DisableBlend()
	rc.renderer.DisableTexture()
	if rc.cfg.UseMask {
		rc.renderer.EnableDepthTest()
		rc.renderer.DepthFunc(CMP_ALWAYS)
		rc.depthFunc = 1
	} else {
		rc.renderer.DisableDepthTest()
		rc.depthFunc = 0
	}
	rc.renderer.EnableScissor()
}

// VRAM exposes the 16-bit framebuffer memory.
func (rc *RenderContext) VRAM() []uint16 {
	return rc.vram
}

func (rc *RenderContext) vramAt(x, y int) uint16 {
	return rc.vram[(y&rc.heightMask)*PSX_VRAM_WIDTH+(x&PSX_VRAM_X_MASK)]
}

func (rc *RenderContext) setVRAM(x, y int, v uint16) {
	rc.vram[(y&rc.heightMask)*PSX_VRAM_WIDTH+(x&PSX_VRAM_X_MASK)] = v
}

// ensureDisplaySettings derives the screen mapping from the previous display
// the first time a primitive needs it after a draw area or display change.
func (rc *RenderContext) ensureDisplaySettings() {
	if rc.displayNotSet {
		rc.setDisplaySettings(true)
	}
}

// setDisplaySettings rebuilds the offsets and scissor. Without a draw area
// the scissor opens to the whole surface, which uploads need; the next
// primitive then restores the draw area.
func (rc *RenderContext) setDisplaySettings(drawArea bool) {
	rc.display.GDrawOffset = rc.prevDisplay.DisplayPosition
	rc.updateCumulOffset()

	if !drawArea {
		w, h := rc.renderer.GetDimensions()
		rc.renderer.SetScissor(0, 0, w, h)
		rc.displayNotSet = true
		return
	}
	da := rc.display.DrawArea
	x := da.X0 - rc.display.GDrawOffset.X + rc.prevDisplay.Range.X0
	y := da.Y0 - rc.display.GDrawOffset.Y + rc.prevDisplay.Range.Y0
	rc.renderer.SetScissor(x, y, da.X1-da.X0+1, da.Y1-da.Y0+1)
	rc.displayNotSet = false
}

func (rc *RenderContext) updateCumulOffset() {
	rc.display.CumulOffset.X = rc.display.DrawOffset.X - rc.display.GDrawOffset.X + rc.prevDisplay.Range.X0
	rc.display.CumulOffset.Y = rc.display.DrawOffset.Y - rc.display.GDrawOffset.Y + rc.prevDisplay.Range.Y0
}
