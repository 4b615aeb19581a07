// gpu_software_test.go - Software renderer tests

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

func newSoftware(t *testing.T) *SoftwareRenderer {
	t.Helper()
	r := NewSoftwareRenderer()
	if err := r.Init(16, 16); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(r.Destroy)
	return r
}

func swQuad(r *SoftwareRenderer, prim PrimType, x0, y0, x1, y1, z float32) {
	r.PrimBegin(prim)
	r.PrimVertex(x0, y0, z)
	r.PrimVertex(x1, y0, z)
	r.PrimVertex(x1, y1, z)
	r.PrimVertex(x0, y1, z)
	r.PrimEnd()
}

func TestSoftwareRenderer_InitRejectsEmptySurface(t *testing.T) {
	if err := NewSoftwareRenderer().Init(0, 240); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestSoftwareRenderer_Clear(t *testing.T) {
	r := newSoftware(t)

	r.ClearColor(10, 20, 30, 255)
	r.Clear(CLEAR_COLOR)
	if px := pixelAt(r.BackBuffer(), 16, 7, 7); px != [4]byte{10, 20, 30, 255} {
		t.Fatalf("cleared pixel = %v", px)
	}
	if px := pixelAt(r.GetFrame(), 16, 7, 7); px != [4]byte{} {
		t.Fatal("front buffer changed before Render")
	}
	r.Render()
	if px := pixelAt(r.GetFrame(), 16, 7, 7); px != [4]byte{10, 20, 30, 255} {
		t.Fatalf("presented pixel = %v", px)
	}
}

func TestSoftwareRenderer_ClearHonoursScissor(t *testing.T) {
	r := newSoftware(t)

	r.EnableScissor()
	r.SetScissor(4, 4, 4, 4)
	r.ClearColor(255, 255, 255, 255)
	r.Clear(CLEAR_COLOR)

	if pixelAt(r.BackBuffer(), 16, 5, 5)[0] != 255 || pixelAt(r.BackBuffer(), 16, 1, 1)[0] != 0 {
		t.Fatal("scissored clear touched the wrong pixels")
	}
}

func TestSoftwareRenderer_Triangle(t *testing.T) {
	r := newSoftware(t)

	r.PrimBegin(PRIM_TRIANGLE)
	r.PrimColor(255, 0, 0, 255)
	r.PrimVertex(0, 0, 0)
	r.PrimVertex(8, 0, 0)
	r.PrimVertex(0, 8, 0)
	r.PrimEnd()

	if px := pixelAt(r.BackBuffer(), 16, 1, 1); px != [4]byte{255, 0, 0, 255} {
		t.Fatalf("inside pixel = %v", px)
	}
	if px := pixelAt(r.BackBuffer(), 16, 7, 7); px[0] != 0 {
		t.Fatal("pixel beyond the hypotenuse was drawn")
	}
	if tris, _, _ := r.Stats(); tris != 1 {
		t.Fatalf("triangles = %d", tris)
	}
}

func TestSoftwareRenderer_QuadDiagonalWrittenOnce(t *testing.T) {
	r := newSoftware(t)

	r.ClearColor(100, 100, 100, 255)
	r.Clear(CLEAR_COLOR)
	r.EnableBlend()
	r.SetBlendFunc(BLEND_ONE, BLEND_ONE)
	r.SetBlendOp(BLENDOP_ADD)
	r.PrimColor(100, 100, 100, 255)
	swQuad(r, PRIM_RECTLIST, 0, 0, 8, 8, 0)

	for _, p := range [][2]int{{1, 6}, {2, 2}, {5, 5}, {6, 1}} {
		if px := pixelAt(r.BackBuffer(), 16, p[0], p[1]); px[0] != 200 {
			t.Errorf("pixel %v = %d, want 200", p, px[0])
		}
	}
}

func TestSoftwareRenderer_ReverseSubtract(t *testing.T) {
	r := newSoftware(t)

	r.ClearColor(100, 100, 100, 255)
	r.Clear(CLEAR_COLOR)
	r.EnableBlend()
	r.SetBlendFunc(BLEND_ONE, BLEND_ONE)
	r.SetBlendOp(BLENDOP_REVSUBTRACT)
	r.PrimColor(40, 40, 40, 255)
	swQuad(r, PRIM_QUAD, 0, 0, 8, 8, 0)

	if px := pixelAt(r.BackBuffer(), 16, 3, 3); px[0] != 60 || px[3] != 255 {
		t.Fatalf("pixel = %v, want 60 with opaque alpha", px)
	}
}

func TestSoftwareRenderer_DepthTest(t *testing.T) {
	r := newSoftware(t)

	r.Clear(CLEAR_DEPTH)
	r.EnableDepthTest()
	r.DepthFunc(CMP_GREATER)

	r.PrimColor(255, 0, 0, 255)
	swQuad(r, PRIM_QUAD, 0, 0, 8, 8, 0.5)
	r.PrimColor(0, 255, 0, 255)
	swQuad(r, PRIM_QUAD, 0, 0, 8, 8, 0.3)

	if px := pixelAt(r.BackBuffer(), 16, 4, 4); px != [4]byte{255, 0, 0, 255} {
		t.Fatalf("pixel = %v, nearer quad should have won", px)
	}
}

func TestSoftwareRenderer_AlphaTestRejectsTransparentTexels(t *testing.T) {
	r := newSoftware(t)

	tex := r.CreateTexture(2, 1)
	tex.CoordScale = 0.5
	pix := r.TextureLock(tex)
	copy(pix, []byte{0, 0, 0, 0, 0, 255, 0, 255})
	r.TextureUnlock(tex)

	r.SetTexture(tex)
	r.EnableTexture()
	r.SetTextureFiltering(TEXF_POINT)
	r.EnableAlphaTest()
	r.SetAlphaFunc(CMP_GREATER, 0.49)

	r.PrimBegin(PRIM_QUAD)
	r.PrimTexCoord(0, 0)
	r.PrimVertex(0, 0, 0)
	r.PrimTexCoord(2, 0)
	r.PrimVertex(8, 0, 0)
	r.PrimTexCoord(2, 1)
	r.PrimVertex(8, 8, 0)
	r.PrimTexCoord(0, 1)
	r.PrimVertex(0, 8, 0)
	r.PrimEnd()

	if px := pixelAt(r.BackBuffer(), 16, 1, 4); px != [4]byte{} {
		t.Fatalf("transparent texel drawn: %v", px)
	}
	if px := pixelAt(r.BackBuffer(), 16, 6, 4); px != [4]byte{0, 255, 0, 255} {
		t.Fatalf("solid texel = %v", px)
	}
}

func TestSoftwareRenderer_Scissor(t *testing.T) {
	r := newSoftware(t)

	r.EnableScissor()
	r.SetScissor(2, 2, 2, 2)
	swQuad(r, PRIM_QUAD, 0, 0, 16, 16, 0)

	if pixelAt(r.BackBuffer(), 16, 2, 2)[0] != 255 || pixelAt(r.BackBuffer(), 16, 3, 3)[0] != 255 {
		t.Fatal("inside of the scissor not drawn")
	}
	if pixelAt(r.BackBuffer(), 16, 1, 1)[0] != 0 || pixelAt(r.BackBuffer(), 16, 4, 4)[0] != 0 {
		t.Fatal("scissor did not clip")
	}
}

func TestSoftwareRenderer_TextureLifetime(t *testing.T) {
	r := newSoftware(t)

	tex := r.CreateTexture(4, 4)
	r.SetTexture(tex)
	if _, _, n := r.Stats(); n != 1 {
		t.Fatalf("live textures = %d", n)
	}
	r.DestroyTexture(tex)
	if _, _, n := r.Stats(); n != 0 {
		t.Fatalf("live textures = %d after destroy", n)
	}
	if tex.Pixels != nil {
		t.Fatal("destroyed texture kept its pixels")
	}
}
