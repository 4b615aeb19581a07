// gpu_soft_test.go - Software VRAM mirror tests

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
)

func offscreenF4(attr uint32) []uint32 {
	return []uint32{attr, xy(400, 300), xy(410, 300), xy(400, 310), xy(410, 310)}
}

func TestGPU_SoftMirrorFlatQuad(t *testing.T) {
	g, _ := newTestGPU(t, nil)
	rc := g.Context()

	writeWords(t, g, offscreenF4(0x280000F8)...)

	if got := rc.vramAt(405, 305); got != 0x001F {
		t.Fatalf("vram(405,305) = %04X, want 001F", got)
	}
	if rc.vramAt(399, 305) != 0 || rc.vramAt(405, 299) != 0 || rc.vramAt(410, 305) != 0 {
		t.Fatal("quad leaked outside its edges")
	}
}

func TestGPU_SoftMirrorSemiTransparency(t *testing.T) {
	g, _ := newTestGPU(t, nil)
	rc := g.Context()

	rc.setVRAM(405, 305, 0x0010)
	writeWords(t, g, 0xE1000020)
	writeWords(t, g, offscreenF4(0x2A000080)...)

	if got := rc.vramAt(405, 305); got != 0x001F {
		t.Fatalf("additive blend gave %04X, want 001F", got)
	}
	if got := rc.vramAt(404, 305); got != 0x0010 {
		t.Fatalf("blend over black gave %04X, want 0010", got)
	}
}

func TestGPU_SoftMirrorMaskCheck(t *testing.T) {
	g, _ := newTestGPU(t, nil)
	rc := g.Context()

	rc.setVRAM(405, 305, 0x8001)
	writeWords(t, g, 0xE6000002)
	writeWords(t, g, offscreenF4(0x280000F8)...)

	if got := rc.vramAt(405, 305); got != 0x8001 {
		t.Fatalf("masked pixel overwritten: %04X", got)
	}
	if got := rc.vramAt(404, 305); got != 0x001F {
		t.Fatalf("unmasked pixel = %04X, want 001F", got)
	}
}

func TestGPU_SoftMirrorSetMask(t *testing.T) {
	g, _ := newTestGPU(t, nil)
	rc := g.Context()

	writeWords(t, g, 0xE6000001)
	writeWords(t, g, offscreenF4(0x280000F8)...)

	if got := rc.vramAt(405, 305); got != 0x801F {
		t.Fatalf("vram(405,305) = %04X, want 801F", got)
	}
}

func TestGPU_SoftMirrorClipsToDrawArea(t *testing.T) {
	g, _ := newTestGPU(t, nil)
	rc := g.Context()

	writeWords(t, g, 0xE3000000|400|300<<10, 0xE4000000|404|304<<10)
	writeWords(t, g, offscreenF4(0x280000F8)...)

	if rc.vramAt(404, 304) != 0x001F {
		t.Fatal("inside of the draw area not drawn")
	}
	if rc.vramAt(405, 300) != 0 || rc.vramAt(400, 305) != 0 {
		t.Fatal("draw area did not clip the mirror")
	}
}

func TestGPU_SoftMirrorTexturedQuad(t *testing.T) {
	g, _ := newTestGPU(t, nil)
	rc := g.Context()

	for y := 0; y <= 16; y++ {
		for x := 0; x <= 16; x++ {
			rc.setVRAM(x, y, 0x001F)
		}
	}
	writeWords(t, g,
		0x2C404040,
		xy(400, 300), uvw(0, 0, 0),
		xy(416, 300), uvw(0x100, 16, 0),
		xy(400, 316), uvw(0, 0, 16),
		xy(416, 316), uvw(0, 16, 16))

	// 31 * 0x40 >> 7
	if got := rc.vramAt(408, 308); got != 0x000F {
		t.Fatalf("modulated texel = %04X, want 000F", got)
	}
}

func TestGPU_SoftMirrorSprite(t *testing.T) {
	g, _ := newTestGPU(t, nil)
	rc := g.Context()

	rc.setVRAM(3, 0, 0x1234)
	writeWords(t, g, 0xE1000100)
	writeWords(t, g, 0x7D000000, xy(400, 300), uvw(0, 0, 0))

	if got := rc.vramAt(403, 300); got != 0x1234 {
		t.Fatalf("sprite texel = %04X, want 1234", got)
	}
	if got := rc.vramAt(404, 300); got != 0 {
		t.Fatalf("transparent texel written: %04X", got)
	}
}

func TestGPU_SoftMirrorMirroredSprite(t *testing.T) {
	g, _ := newTestGPU(t, nil)
	rc := g.Context()

	rc.setVRAM(15, 0, 0x0011)
	rc.setVRAM(0, 0, 0x0022)
	writeWords(t, g, 0xE1001100)
	writeWords(t, g, 0x7D000000, xy(400, 300), uvw(0, 15, 0))

	if rc.vramAt(400, 300) != 0x0011 || rc.vramAt(415, 300) != 0x0022 {
		t.Fatalf("mirrored row = %04X..%04X", rc.vramAt(400, 300), rc.vramAt(415, 300))
	}
}

func TestGPU_Blend555(t *testing.T) {
	dst := uint16(10 | 20<<5 | 31<<10)
	src := uint16(4 | 8<<5 | 31<<10)
	tests := []struct {
		abr  int
		want uint16
	}{
		{0, 7 | 14<<5 | 31<<10},
		{1, 14 | 28<<5 | 31<<10},
		{2, 6 | 12<<5 | 0<<10},
		{3, 11 | 22<<5 | 31<<10},
	}
	for _, tt := range tests {
		if got := blend555(dst, src, tt.abr); got != tt.want {
			t.Errorf("blend555 abr %d = %04X, want %04X", tt.abr, got, tt.want)
		}
	}
}

func TestGPU_Modulate555(t *testing.T) {
	tests := []struct {
		texel   uint16
		r, g, b int32
		want    uint16
	}{
		{31, 128, 128, 128, 31},
		{16, 255, 255, 255, 31},
		{0x8000 | 10, 64, 64, 64, 0x8000 | 5},
		{31 << 5, 128, 0, 128, 0},
		{31 << 10, 128, 128, 64, 15 << 10},
	}
	for _, tt := range tests {
		if got := modulate555(tt.texel, tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("modulate555(%04X, %d,%d,%d) = %04X, want %04X", tt.texel, tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestGPU_FillSoftwareAreaClamps(t *testing.T) {
	rc, _ := newTestContext(t, nil)

	rc.FillSoftwareArea(1020, 510, 1100, 600, 0x7FFF)
	if rc.vramAt(1023, 511) != 0x7FFF || rc.vramAt(0, 0) != 0 {
		t.Fatal("fill did not clamp at the VRAM edge")
	}
	rc.FillSoftwareArea(10, 10, 5, 20, 0x7FFF)
	if rc.vramAt(7, 12) != 0 {
		t.Fatal("inverted rectangle was filled")
	}
}
