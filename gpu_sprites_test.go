// gpu_sprites_test.go - Sprite and tile tests

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

func TestGPU_SpriteInTextureWindow(t *testing.T) {
	g, r := newTestGPU(t, nil)

	writeWords(t, g, 0xE2000000|1|1<<5)
	r.reset()
	writeWords(t, g, 0x74808080, xy(10, 10), uvw(0, 0, 0))

	p := r.last()
	if p.Type != PRIM_RECTLIST || len(p.Verts) != 4 {
		t.Fatalf("SPRT8 drew %v with %d vertices", p.Type, len(p.Verts))
	}
	if p.Tex == nil || p.Tex.Width != 8 || p.Tex.Height != 8 {
		t.Fatalf("window texture not bound: %+v", p.Tex)
	}
	want := []recVertex{
		{X: 10, Y: 10, S: 0, T: 0},
		{X: 18, Y: 10, S: 256, T: 0},
		{X: 10, Y: 18, S: 0, T: 256},
		{X: 18, Y: 18, S: 256, T: 256},
	}
	for i, w := range want {
		v := p.Verts[i]
		if v.X != w.X || v.Y != w.Y || v.S != w.S || v.T != w.T {
			t.Errorf("vertex %d = pos (%v,%v) tex (%v,%v), want (%v,%v) (%v,%v)",
				i, v.X, v.Y, v.S, v.T, w.X, w.Y, w.S, w.T)
		}
	}
}

func TestGPU_SpritePageOverhang(t *testing.T) {
	g, r := newTestGPU(t, nil)
	r.reset()

	writeWords(t, g, 0x64808080, xy(10, 20), uvw(0, 200, 0), xy(100, 16))

	if len(r.prims) != 2 {
		t.Fatalf("drew %d primitives, want sprite plus one rest", len(r.prims))
	}
	main, rest := r.prims[0], r.prims[1]
	if main.Type != PRIM_RECTLIST || !main.Textured || rest.Type != PRIM_RECTLIST || !rest.Textured {
		t.Fatal("sprite parts are not textured rect lists")
	}
	if main.Verts[0].X != 10 || main.Verts[1].X != 66 || main.Verts[0].S != 200 || main.Verts[1].S != 256 {
		t.Errorf("main part %+v", main.Verts[:2])
	}
	if rest.Verts[0].X != 66 || rest.Verts[1].X != 110 || rest.Verts[0].S != 0 || rest.Verts[1].S != 44 {
		t.Errorf("rest part %+v", rest.Verts[:2])
	}
}

func TestGPU_SpriteMirrorBits(t *testing.T) {
	g, r := newTestGPU(t, nil)

	writeWords(t, g, 0xE1001000)
	r.reset()
	writeWords(t, g, 0x7C808080, xy(0, 0), uvw(0, 32, 0))

	p := r.last()
	if p.Verts[0].S != 33 || p.Verts[1].S != 17 {
		t.Fatalf("mirrored S = %v..%v, want 33..17", p.Verts[0].S, p.Verts[1].S)
	}
}

func TestGPU_ZeroSizeSpriteIsDropped(t *testing.T) {
	g, r := newTestGPU(t, nil)
	r.reset()

	writeWords(t, g, 0x64808080, xy(10, 20), uvw(0, 0, 0), xy(0, 16))
	if len(r.prims) != 0 {
		t.Fatalf("zero width sprite drew %d primitives", len(r.prims))
	}
}

func TestGPU_Tile(t *testing.T) {
	g, r := newTestGPU(t, nil)
	r.reset()

	writeWords(t, g, 0x60FF0000, xy(4, 4), xy(8, 8))

	p := r.last()
	if p.Type != PRIM_RECTLIST || len(p.Verts) != 4 || p.Textured {
		t.Fatalf("tile drew %v with %d vertices, textured=%v", p.Type, len(p.Verts), p.Textured)
	}
	want := [][2]float32{{4, 4}, {12, 4}, {12, 12}, {4, 12}}
	for i, w := range want {
		if p.Verts[i].X != w[0] || p.Verts[i].Y != w[1] {
			t.Errorf("vertex %d at (%v,%v), want (%v,%v)", i, p.Verts[i].X, p.Verts[i].Y, w[0], w[1])
		}
	}
	if v := p.Verts[0]; v.R != 0 || v.B != 0xff {
		t.Errorf("tile colour %02X%02X%02X", v.R, v.G, v.B)
	}
}

func TestGPU_FixedTiles(t *testing.T) {
	tests := []struct {
		op   uint32
		size float32
	}{
		{0x68, 1},
		{0x70, 8},
		{0x78, 16},
	}
	for _, tt := range tests {
		g, r := newTestGPU(t, nil)
		r.reset()

		writeWords(t, g, tt.op<<24|0xFFFFFF, xy(5, 5))
		p := r.last()
		if len(p.Verts) != 4 || p.Verts[2].X-p.Verts[0].X != tt.size {
			t.Errorf("opcode %02X: tile %+v", tt.op, p.Verts)
		}
	}
}

func TestGPU_FF7CursorTileSkipped(t *testing.T) {
	g, r := newTestGPU(t, func(cfg *GPUConfig) { cfg.Fixes = FIX_FF7_CURSOR })
	r.reset()

	writeWords(t, g, 0x60FFFFFF, xy(QUIRK_FF7_CURSOR_X, QUIRK_FF7_CURSOR_Y), xy(QUIRK_FF7_CURSOR_W, QUIRK_FF7_CURSOR_H))
	if len(r.prims) != 0 {
		t.Fatalf("cursor tile drew %d primitives", len(r.prims))
	}

	writeWords(t, g, 0x60FFFFFF, xy(0, 0), xy(24, 17))
	if len(r.prims) != 1 {
		t.Fatalf("ordinary tile drew %d primitives", len(r.prims))
	}
}

func TestGPU_FF7CursorFixKeepsPageSprites(t *testing.T) {
	g, r := newTestGPU(t, func(cfg *GPUConfig) { cfg.Fixes = FIX_FF7_CURSOR })
	r.reset()

	writeWords(t, g, 0x64808080, xy(0, 0), uvw(0, 0, 0), xy(QUIRK_FF7_CURSOR_W, QUIRK_FF7_CURSOR_H))
	if len(r.prims) != 1 {
		t.Fatalf("page textured sprite drew %d primitives", len(r.prims))
	}
	if g.Context().texCache.IsMovie(r.last().Tex) {
		t.Fatal("sprite sampled the movie texture")
	}
}

func TestGPU_OffscreenTileMirrored(t *testing.T) {
	g, _ := newTestGPU(t, nil)
	rc := g.Context()

	writeWords(t, g, 0x600000F8, xy(400, 300), xy(8, 8))

	if rc.vramAt(400, 300) != 0x001F || rc.vramAt(407, 307) != 0x001F {
		t.Fatal("offscreen tile missing from VRAM")
	}
	if rc.vramAt(408, 300) != 0 || rc.vramAt(400, 308) != 0 {
		t.Fatal("offscreen tile overran its rectangle")
	}
}

func TestGPU_OnscreenTileNotMirrored(t *testing.T) {
	g, _ := newTestGPU(t, nil)

	writeWords(t, g, 0x600000F8, xy(10, 10), xy(8, 8))
	if g.Context().vramAt(10, 10) != 0 {
		t.Fatal("displayed tile was mirrored without full VRAM mode")
	}

	g2, _ := newTestGPU(t, func(cfg *GPUConfig) { cfg.FullVRAM = true })
	writeWords(t, g2, 0x600000F8, xy(10, 10), xy(8, 8))
	if g2.Context().vramAt(10, 10) != 0x001F {
		t.Fatal("full VRAM mode did not mirror the tile")
	}
}
