// gpu_present_test.go - GP1, status and buffer swap tests

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

var _ VideoSource = (*GPU)(nil)

func TestGPU_StatusAfterReset(t *testing.T) {
	g, _ := newTestGPU(t, nil)
	require.Equal(t, uint32(0x14002000), g.Status())

	g.WriteGP1(0x00000000)
	require.Equal(t, uint32(STATUS_DEFAULT_VALUE), g.Status())
	require.True(t, g.Context().display.Disabled)
}

func TestGPU_GP1ResetClearsState(t *testing.T) {
	g, _ := newTestGPU(t, nil)
	rc := g.Context()

	writeWords(t, g, 0xE1000020, 0xE5000000|16|8<<11)
	require.NoError(t, g.WriteGP0(0x28FFFFFF))
	require.Equal(t, 1, g.PendingWords())

	g.WriteGP1(0x00000000)
	require.Equal(t, 0, rc.globalTextABR)
	require.Equal(t, PSXPoint{}, rc.display.DrawOffset)
	require.Equal(t, 0, g.PendingWords())
}

func TestGPU_GP1ResetBuffer(t *testing.T) {
	g, r := newTestGPU(t, nil)
	r.reset()

	require.NoError(t, g.WriteGP0(0x20FFFFFF))
	require.NoError(t, g.WriteGP0(xy(0, 0)))
	g.WriteGP1(0x01000000)
	require.Equal(t, 0, g.PendingWords())

	// the remaining words now start a new packet
	writeWords(t, g, 0xE1000040)
	require.Empty(t, r.prims)
	require.Equal(t, 2, g.Context().globalTextABR)
}

func TestGPU_GP1DisplayMode(t *testing.T) {
	tests := []struct {
		word       uint32
		w, h       int
		interlaced bool
		rgb24      bool
	}{
		{0x08000001, 320, 240, false, false},
		{0x08000003, 640, 240, false, false},
		{0x08000024, 256, 480, true, false},
		{0x08000004, 256, 240, false, false},
		{0x08000040, 368, 240, false, false},
		{0x08000011, 320, 240, false, true},
	}
	for _, tt := range tests {
		g, _ := newTestGPU(t, nil)
		g.WriteGP1(tt.word)

		d := g.Context().display
		require.Equal(t, PSXPoint{X: tt.w, Y: tt.h}, d.DisplayMode, "word %08X", tt.word)
		require.Equal(t, tt.interlaced, d.Interlaced, "word %08X", tt.word)
		require.Equal(t, tt.interlaced, g.Status()&STATUS_INTERLACE != 0, "word %08X", tt.word)
		require.Equal(t, tt.rgb24, g.Status()&STATUS_RGB24 != 0, "word %08X", tt.word)
	}
}

func TestGPU_GP1DisplayEnable(t *testing.T) {
	g, _ := newTestGPU(t, nil)

	g.WriteGP1(0x03000001)
	require.NotZero(t, g.Status()&STATUS_DISPLAY_OFF)
	g.WriteGP1(0x03000000)
	require.Zero(t, g.Status()&STATUS_DISPLAY_OFF)
}

func TestGPU_GP1DMADirection(t *testing.T) {
	g, _ := newTestGPU(t, nil)

	g.WriteGP1(0x04000002)
	require.Equal(t, uint32(2<<29), g.Status()&statusDMAMask)
}

func TestGPU_GP1GetInfo(t *testing.T) {
	g, _ := newTestGPU(t, nil)

	writeWords(t, g, 0xE2000000|1|1<<5, 0xE3000000|16|8<<10, 0xE4000000|200|100<<10, 0xE5000000|4|2<<11)

	tests := []struct {
		word uint32
		want uint32
	}{
		{0x10000002, 1 | 1<<5},
		{0x10000003, 16 | 8<<10},
		{0x10000004, 200 | 100<<10},
		{0x10000005, 4 | 2<<11},
		{0x10000007, 2},
	}
	for _, tt := range tests {
		g.WriteGP1(tt.word)
		require.Equal(t, tt.want, g.ReadGPUData(), "GP1 %08X", tt.word)
	}
}

func TestGPU_DisplayStartSwapsBuffers(t *testing.T) {
	g, r := newTestGPU(t, nil)
	r.reset()

	writeWords(t, g, 0x20FFFFFF, xy(0, 0), xy(10, 0), xy(0, 10))
	g.WriteGP1(0x05000000 | 256<<10)

	swaps, _ := g.Frames()
	require.Equal(t, uint64(1), swaps)
	require.Equal(t, 1, r.renders)
	require.Equal(t, PSXPoint{X: 0, Y: 256}, g.Context().display.DisplayPosition)
	require.Equal(t, PSXPoint{X: 0, Y: 0}, g.Context().prevDisplay.DisplayPosition)

	// a page flip already presented this frame
	writeWords(t, g, 0x20FFFFFF, xy(0, 0), xy(10, 0), xy(0, 10))
	g.VSync()
	swaps, vsyncs := g.Frames()
	require.Equal(t, uint64(1), swaps)
	require.Equal(t, uint64(1), vsyncs)
}

func TestGPU_VSyncPresentsSingleBufferedFrame(t *testing.T) {
	g, r := newTestGPU(t, nil)
	r.reset()

	g.VSync()
	swaps, _ := g.Frames()
	require.Zero(t, swaps, "nothing drawn, nothing to present")

	writeWords(t, g, 0x20FFFFFF, xy(0, 0), xy(10, 0), xy(0, 10))
	g.VSync()
	swaps, vsyncs := g.Frames()
	require.Equal(t, uint64(1), swaps)
	require.Equal(t, uint64(2), vsyncs)
	require.Equal(t, 1, r.renders)

	w, _ := g.GetDimensions()
	require.Equal(t, [4]byte{0xff, 0xff, 0xff, 0xff}, pixelAt(g.GetFrame(), w, 1, 1))
}

func TestGPU_InterlacedVSyncAlwaysSwaps(t *testing.T) {
	g, _ := newTestGPU(t, nil)
	g.WriteGP1(0x08000024)

	g.VSync()
	require.NotZero(t, g.Status()&statusOddLine)
	g.VSync()
	require.Zero(t, g.Status()&statusOddLine)

	swaps, _ := g.Frames()
	require.Equal(t, uint64(2), swaps)
	require.False(t, g.Context().display.InterlacedTest, "interlace settle period did not end")
}

func TestGPU_DisabledDisplayPresentsBlack(t *testing.T) {
	g, r := newTestGPU(t, nil)
	writeWords(t, g, 0x20FFFFFF, xy(0, 0), xy(10, 0), xy(0, 10))
	g.WriteGP1(0x03000001)
	r.reset()

	g.DoBufferSwap()
	require.Contains(t, r.clears, uint32(CLEAR_COLOR))
	require.Equal(t, 1, r.renders)

	w, _ := g.GetDimensions()
	require.Equal(t, [4]byte{0, 0, 0, 0xff}, pixelAt(g.GetFrame(), w, 1, 1))
}

func TestGPU_FrameSkip(t *testing.T) {
	g, r := newTestGPU(t, func(cfg *GPUConfig) { cfg.FrameSkip = true })

	g.DoBufferSwap()
	r.reset()
	writeWords(t, g, 0xE1000020)
	writeWords(t, g, 0x20FFFFFF, xy(0, 0), xy(10, 0), xy(0, 10))
	require.Empty(t, r.prims, "skipped frame drew")
	require.Equal(t, 1, g.Context().globalTextABR, "skipped frame lost state")

	g.DoBufferSwap()
	writeWords(t, g, 0x20FFFFFF, xy(0, 0), xy(10, 0), xy(0, 10))
	require.Len(t, r.prims, 1)
}

func TestGPU_ClearOnSwap(t *testing.T) {
	g, r := newTestGPU(t, nil)

	writeWords(t, g, 0x020000FF, xy(0, 0), xy(320, 240))
	require.True(t, g.Context().clearOnSwap)
	r.reset()

	g.DoBufferSwap()
	require.False(t, g.Context().clearOnSwap)
	require.Contains(t, r.clears, uint32(CLEAR_COLOR))
}

func TestGPU_VideoSource(t *testing.T) {
	g, _ := newTestGPU(t, nil)

	w, h := g.GetDimensions()
	require.Equal(t, 320, w)
	require.Equal(t, 240, h)
	require.Len(t, g.GetFrame(), w*h*4)
	require.True(t, g.IsEnabled())

	g.SetEnabled(false)
	require.False(t, g.IsEnabled())

	g.SignalVSync()
	g.SignalVSync()
	require.Equal(t, uint64(2), g.Displayed())
	_, vsyncs := g.Frames()
	require.Zero(t, vsyncs, "compositor refresh is not a GPU field")
}
