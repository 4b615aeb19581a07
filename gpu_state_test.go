// gpu_state_test.go - Render state and E1-E6 command tests

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

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGPU_TexturePageDecode(t *testing.T) {
	rc, _ := newTestContext(t, nil)

	gdata := uint32(0x1F | 2<<5 | 2<<7 | 0x1000)
	rc.cmdTexturePage(uint32(GP0_TEXTURE_PAGE)<<24 | gdata)

	require.Equal(t, 960, rc.globalTextAddrX)
	require.Equal(t, 256, rc.globalTextAddrY)
	require.Equal(t, 2, rc.globalTextABR)
	require.Equal(t, TEXMODE_15BIT, rc.globalTextTP)
	require.Equal(t, 31, rc.globalTexturePage)
	require.Equal(t, uint32(0x1000), rc.usMirror)
	require.Equal(t, gdata&STATUS_DRAW_MODE, rc.statusReg&STATUS_DRAW_MODE)
}

func TestGPU_TextureWindowDecode(t *testing.T) {
	rc, _ := newTestContext(t, nil)

	// 8x8 window at (32, 16)
	rc.cmdTextureWindow(uint32(GP0_TEXTURE_WIN)<<24 | 1 | 1<<5 | 4<<10 | 2<<15)

	require.True(t, rc.usingTWin)
	require.Equal(t, PSXRect{X0: 32, X1: 8, Y0: 16, Y1: 8}, rc.twin.Position)
	require.Equal(t, float32(8.0/256), rc.twin.UScaleFactor)
	require.Equal(t, float32(8.0/256), rc.twin.VScaleFactor)
	require.Equal(t, uint32(1|1<<5|4<<10|2<<15), rc.gpuInfo[INFO_TW])
}

func TestGPU_TextureWindowFullPageIsIdentity(t *testing.T) {
	rc, _ := newTestContext(t, nil)

	rc.cmdTextureWindow(uint32(GP0_TEXTURE_WIN)<<24 | 1 | 1<<5)
	require.True(t, rc.usingTWin)

	rc.cmdTextureWindow(uint32(GP0_TEXTURE_WIN) << 24)
	require.False(t, rc.usingTWin)
	require.Equal(t, float32(1), rc.twin.UScaleFactor)
	require.Equal(t, float32(1), rc.twin.VScaleFactor)
}

func TestGPU_TwinSize(t *testing.T) {
	tests := []struct {
		bits uint32
		want int
	}{
		{0x00, 256},
		{0x01, 8},
		{0x02, 16},
		{0x06, 16},
		{0x10, 128},
		{0x1F, 8},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, twinSize(tt.bits), "bits %02X", tt.bits)
	}
}

func TestGPU_DrawOffsetSignExtends(t *testing.T) {
	rc, _ := newTestContext(t, nil)

	gdata := uint32(0x7FF | 0x400<<11)
	rc.cmdDrawOffset(uint32(GP0_DRAW_OFFSET)<<24 | gdata)

	if rc.display.DrawOffset != (PSXPoint{X: -1, Y: -1024}) {
		t.Fatalf("draw offset = %+v, want (-1,-1024)", rc.display.DrawOffset)
	}
	if rc.gpuInfo[INFO_DRAWOFF] != gdata&0x3FFFFF {
		t.Fatalf("info = %06X, want %06X", rc.gpuInfo[INFO_DRAWOFF], gdata&0x3FFFFF)
	}
}

func TestGPU_DrawOffsetVersion2(t *testing.T) {
	rc, _ := newTestContext(t, func(cfg *GPUConfig) { cfg.GPUVersion = 2 })

	rc.cmdDrawOffset(uint32(GP0_DRAW_OFFSET)<<24 | 16 | 8<<12)
	if rc.display.DrawOffset != (PSXPoint{X: 16, Y: 8}) {
		t.Fatalf("draw offset = %+v, want (16,8)", rc.display.DrawOffset)
	}
}

func TestGPU_DrawOffsetMovesPrimitives(t *testing.T) {
	g, r := newTestGPU(t, nil)
	r.reset()

	writeWords(t, g, 0xE5000000|16|8<<11)
	writeWords(t, g, 0x20FFFFFF, xy(0, 0), xy(10, 0), xy(0, 10))

	p := r.last()
	if p.Type != PRIM_TRIANGLE || len(p.Verts) != 3 {
		t.Fatalf("got %v with %d vertices", p.Type, len(p.Verts))
	}
	if p.Verts[0].X != 16 || p.Verts[0].Y != 8 {
		t.Fatalf("vertex 0 at (%v,%v), want (16,8)", p.Verts[0].X, p.Verts[0].Y)
	}
}

func TestGPU_DrawAreaSetsScissor(t *testing.T) {
	g, r := newTestGPU(t, nil)

	writeWords(t, g, 0xE3000000|16|8<<10)
	writeWords(t, g, 0xE4000000|200|100<<10)

	rc := g.Context()
	require.Equal(t, PSXRect{X0: 16, Y0: 8, X1: 200, Y1: 100}, rc.display.DrawArea)
	require.Equal(t, uint32(16|8<<10), rc.gpuInfo[INFO_DRAWSTART])
	require.Equal(t, uint32(200|100<<10), rc.gpuInfo[INFO_DRAWEND])

	writeWords(t, g, 0x20FFFFFF, xy(0, 0), xy(10, 0), xy(0, 10))
	require.Equal(t, [4]int{16, 8, 185, 93}, r.scissor)
}

func TestGPU_DrawAreaClampsToVRAM(t *testing.T) {
	rc, _ := newTestContext(t, nil)

	rc.cmdDrawAreaEnd(uint32(GP0_DRAW_AREA_BR)<<24 | 0x3FF | 0x3FF<<10)
	require.Equal(t, PSX_VRAM_WIDTH-1, rc.display.DrawArea.X1)
	require.Equal(t, PSX_VRAM_HEIGHT_STD-1, rc.display.DrawArea.Y1)
	require.True(t, rc.displayNotSet)
}

func TestGPU_MaskBitDepthFunc(t *testing.T) {
	rc, r := newTestContext(t, nil)

	rc.cmdSTP(uint32(GP0_MASK_BIT)<<24 | 2)
	require.True(t, rc.checkMask)
	require.Equal(t, 2, rc.setMask)
	require.Equal(t, CMP_GREATER, r.depthFunc)
	require.Equal(t, uint32(2<<11), rc.statusReg&STATUS_MASK_BITS)

	// the depth function only changes on a flip of the check bit
	rc.cmdSTP(uint32(GP0_MASK_BIT)<<24 | 3)
	require.Len(t, r.depthFuncLog, 1)
	require.Equal(t, uint16(0x8000), rc.sSetMask)
	require.Equal(t, 1, rc.setMask)

	rc.cmdSTP(uint32(GP0_MASK_BIT)<<24 | 1)
	require.False(t, rc.checkMask)
	require.Equal(t, CMP_ALWAYS, r.depthFunc)
	require.Equal(t, uint32(1<<11), rc.statusReg&STATUS_MASK_BITS)
}

func TestGPU_MaskBitWithoutMaskEmulation(t *testing.T) {
	rc, r := newTestContext(t, func(cfg *GPUConfig) { cfg.UseMask = false })

	rc.cmdSTP(uint32(GP0_MASK_BIT)<<24 | 3)
	require.Empty(t, r.depthFuncLog)
	require.Equal(t, uint16(0), rc.sSetMask)
	require.Equal(t, uint32(3<<11), rc.statusReg&STATUS_MASK_BITS)
}

func TestGPU_SemiTransPresets(t *testing.T) {
	tests := []struct {
		abr      uint32
		src, dst BlendFactor
		op       BlendOp
		alpha    uint8
	}{
		{0, BLEND_SRCALPHA, BLEND_INVSRCALPHA, BLENDOP_ADD, 127},
		{1, BLEND_ONE, BLEND_ONE, BLENDOP_ADD, 255},
		{2, BLEND_ONE, BLEND_ONE, BLENDOP_REVSUBTRACT, 255},
		{3, BLEND_SRCALPHA, BLEND_ONE, BLENDOP_ADD, 64},
	}
	for _, tt := range tests {
		g, r := newTestGPU(t, nil)
		r.reset()

		writeWords(t, g, 0xE1000000|tt.abr<<5)
		writeWords(t, g, 0x22102030, xy(0, 0), xy(10, 0), xy(0, 10))

		p := r.last()
		require.True(t, p.Blend, "abr %d", tt.abr)
		require.Equal(t, tt.src, p.Src, "abr %d", tt.abr)
		require.Equal(t, tt.dst, p.Dst, "abr %d", tt.abr)
		require.Equal(t, tt.op, p.Op, "abr %d", tt.abr)
		require.Equal(t, tt.alpha, p.Verts[0].A, "abr %d", tt.abr)
		require.Equal(t, [3]uint8{0x30, 0x20, 0x10}, [3]uint8{p.Verts[0].R, p.Verts[0].G, p.Verts[0].B})
	}
}

func TestGPU_OpaquePrimitiveDisablesBlend(t *testing.T) {
	g, r := newTestGPU(t, nil)
	r.reset()

	writeWords(t, g, 0xE1000020)
	writeWords(t, g, 0x20102030, xy(0, 0), xy(10, 0), xy(0, 10))

	p := r.last()
	require.False(t, p.Blend)
	require.Equal(t, uint8(255), p.Verts[0].A)
}

func TestGPU_DoubleBGR2RGB(t *testing.T) {
	tests := []struct{ in, want uint32 }{
		{0x000000, 0x000000},
		{0x404040, 0x808080},
		{0x80FF40, 0xFFFF80},
		{0x7F7F7F, 0xFEFEFE},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, DoubleBGR2RGB(tt.in), "in %06X", tt.in)
	}
}

func TestGPU_BGR24to16(t *testing.T) {
	tests := []struct {
		in   uint32
		want uint16
	}{
		{0x0000F8, 0x001F},
		{0x00F800, 0x03E0},
		{0xF80000, 0x7C00},
		{0xFFFFFF, 0x7FFF},
		{0x070707, 0x0000},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, BGR24to16(tt.in), "in %06X", tt.in)
	}
}

func TestGPU_ResetState(t *testing.T) {
	rc, r := newTestContext(t, nil)

	rc.Reset()
	require.Equal(t, CMP_GREATER, r.alphaFunc)
	require.Equal(t, float32(OPAQUE_OFF_REF), r.alphaRef)
	require.False(t, r.blend)
	require.False(t, r.textured)
	require.Equal(t, CMP_ALWAYS, r.depthFunc)
	require.Equal(t, uint32(STATUS_DEFAULT_VALUE), rc.statusReg)
	require.Equal(t, 1, rc.depthFunc)
}

func TestGPU_ConfigValidate(t *testing.T) {
	require.NoError(t, DefaultGPUConfig().Validate())

	bad := []func(c *GPUConfig){
		func(c *GPUConfig) { c.OffscreenDrawing = 5 },
		func(c *GPUConfig) { c.FilterType = -1 },
		func(c *GPUConfig) { c.VRAMHeight = 768 },
		func(c *GPUConfig) { c.GPUVersion = 3 },
		func(c *GPUConfig) { c.DisplayWidth = 0 },
	}
	for i, fn := range bad {
		cfg := DefaultGPUConfig()
		fn(&cfg)
		require.Error(t, cfg.Validate(), "case %d", i)

		_, err := NewGPU(cfg, NewSoftwareRenderer())
		var verr *VideoError
		require.ErrorAs(t, err, &verr, "case %d", i)
	}
}
