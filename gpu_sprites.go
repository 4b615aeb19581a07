// gpu_sprites.go - PlayStation GPU Sprites and Tiles

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
gpu_sprites.go - Sprites and Tiles

Textured rectangles (SPRT, SPRT8, SPRT16) and flat rectangles (TILE, TILE1,
TILE8, TILE16). Sprites are axis aligned, so they are drawn as rect lists
and skip every polygon sanity check except the 11-bit sign extension.

Free size sprites may address texels past the 256x256 page. The hardware
wraps those reads; the backend texture cannot, so the overhang is drawn as
extra sprites starting at texel 0:

  rest 1: horizontal overhang  (follow-up 4 past 512)
  rest 2: vertical overhang    (follow-up 5 past 512)
  rest 3: corner overhang      (follow-up 6 past 512)

At most three first level rests run, each with at most one follow-up.
*/

package main

// spriteRest kinds
const (
	restWrapU = 1 << iota
	restWrapV
)

// spriteUV places the sprite's texel rectangle at (u, v), honouring the
// mirror bits. It returns the unclamped far edges.
func (rc *RenderContext) spriteUV(p *DecodedPrimitive, u, v int16) (u2, v2 int16) {
	if rc.usMirror&0x1000 != 0 {
		u -= p.SprtW - 1
		if u < 0 {
			u = 0
		}
	}
	if rc.usMirror&0x2000 != 0 {
		v -= p.SprtH - 1
		if v < 0 {
			v = 0
		}
	}
	p.U[0], p.U[3] = uint8(u), uint8(u)
	p.V[0], p.V[1] = uint8(v), uint8(v)
	return u + p.SprtW, v + p.SprtH
}

// spriteFarEdge stores the inclusive far texel of a sprite.
func (p *DecodedPrimitive) spriteFarEdge(u2, v2 int16, inclusive bool) {
	cap255 := func(s int16) uint8 {
		if inclusive && s != 0 {
			s--
		}
		if s > 255 {
			s = 255
		}
		return uint8(s)
	}
	eu, ev := cap255(u2), cap255(v2)
	p.U[1], p.U[2] = eu, eu
	p.V[2], p.V[3] = ev, ev
}

// clipSpriteToPage shortens a sprite whose texels run past the page edge and
// reports which axes need a rest sprite.
func (rc *RenderContext) clipSpriteToPage(p *DecodedPrimitive, u2, v2 int16) int {
	if rc.usingTWin {
		return 0
	}
	rest := 0
	if u2 > 256 {
		p.SprtW = 256 - int16(p.U[0])
		rest |= restWrapU
	}
	if v2 > 256 {
		p.SprtH = 256 - int16(p.V[0])
		rest |= restWrapV
	}
	return rest
}

// drawSprite runs the shared sprite pipeline once SprtX/SprtY/SprtW/SprtH
// and the texel origin are known. It reports false when the frame texture
// check suppressed the draw.
func (rc *RenderContext) drawSprite(p *DecodedPrimitive, frameCheck bool) bool {
	attr := p.word(0)

	p.Lx[0], p.Ly[0] = p.SprtX, p.SprtY
	rc.offsetST(p)

	p.ClutID = p.word(2) >> 16
	rc.drawTextured, rc.drawSmoothShaded = true, false
	rc.SetRenderState(attr)

	if rc.cfg.OffscreenDrawing != 0 {
		rc.offsetPSX4(p)
		if rc.bDrawOffscreen4(p) {
			rc.invalidateTextureAreaEx(p, 4)
			rc.SetRenderColor(attr)
			x, y := int(p.Lx[0]), int(p.Ly[0])
			w, h := int(p.SprtW), int(p.SprtH)
			switch {
			case rc.usingTWin:
				rc.DrawSoftwareSpriteTWin(p, x, y, w, h)
			case rc.usMirror != 0:
				rc.DrawSoftwareSpriteMirror(p, x, y, w, h)
			default:
				rc.DrawSoftwareSprite(p, x, y, w, h, int(p.byteAt(8)), int(p.byteAt(9)))
			}
		}
	}

	rc.SetRenderMode(p, attr, true)
	rc.SetZMask4SP(p)

	// The frame texture is the one sampled from the displayed VRAM area. Only
	// the movie texture is built that way; page and window textures never
	// trigger the skip.
	if frameCheck && rc.cfg.Fixes&FIX_FF7_CURSOR != 0 && rc.texCache.IsMovie(rc.boundTex) {
		return false
	}

	p.SpriteU2 = int16(p.U[0]) + p.SprtW
	p.SpriteV2 = int16(p.V[0]) + p.SprtH
	rc.assignTextureSprite(p)

	v := &p.Vertex
	if rc.cfg.FilterType > 4 {
		rc.DrawMultiFilterSprite(p)
	} else {
		rc.drawTexturedRect(&v[0], &v[1], &v[2], &v[3])
	}

	if rc.drawMultiPass {
		rc.SetSemiTransMulti(1)
		rc.drawTexturedRect(&v[0], &v[1], &v[2], &v[3])
	}

	if rc.opaqueDraw {
		rc.SetZMask4O(p)
		if rc.cfg.UseMultiPass {
			rc.SetOpaqueColor(p, attr)
		}
		rc.opaqueOn()
		if rc.cfg.SmallAlpha && rc.cfg.FilterType <= 2 {
			rc.renderer.SetTextureFiltering(TEXF_POINT)
			rc.drawTexturedRect(&v[0], &v[1], &v[2], &v[3])
			rc.renderer.SetTextureFiltering(TEXF_LINEAR)
			rc.SetZMask4O(p)
		}
		rc.drawTexturedRect(&v[0], &v[1], &v[2], &v[3])
		rc.opaqueOff()
	}
	return true
}

// DrawMultiFilterSprite softens a sprite by drawing it twice, the second
// copy shifted by a fraction of a pixel and averaged in.
func (rc *RenderContext) DrawMultiFilterSprite(p *DecodedPrimitive) {
	v := &p.Vertex
	if rc.cfg.UseMultiPass || rc.drawSemiTrans || rc.opaqueDraw {
		rc.drawTexturedQuad(&v[0], &v[1], &v[2], &v[3])
		return
	}

	abr, semi := rc.globalTextABR, rc.drawSemiTrans
	v[0].setAlpha(rc.gloAlpha / 2)
	rc.setCol(&v[0])
	rc.drawTexturedQuad(&v[0], &v[1], &v[2], &v[3])
	for i := range v {
		v[i].X += POFF
		v[i].Y += POFF
	}
	rc.globalTextABR, rc.drawSemiTrans = 0, true
	rc.SetSemiTrans()
	rc.drawTexturedQuad(&v[0], &v[1], &v[2], &v[3])
	rc.globalTextABR, rc.drawSemiTrans = abr, semi
}

// primSprtFixed handles the 8x8 and 16x16 sprites.
func (rc *RenderContext) primSprtFixed(p *DecodedPrimitive, size int16) {
	p.SprtX, p.SprtY = p.s16(2), p.s16(3)
	p.SprtW, p.SprtH = size, size

	u2, v2 := rc.spriteUV(p, int16(p.byteAt(8)), int16(p.byteAt(9)))
	p.spriteFarEdge(u2, v2, true)

	rc.drawSprite(p, false)
	rc.drawnSomething = 1
}

func (rc *RenderContext) primSprt8(p *DecodedPrimitive) {
	rc.primSprtFixed(p, 8)
}

func (rc *RenderContext) primSprt16(p *DecodedPrimitive) {
	rc.primSprtFixed(p, 16)
}

// primSprtS handles free size sprites, including the page overhang rests.
func (rc *RenderContext) primSprtS(p *DecodedPrimitive) {
	p.SprtX, p.SprtY = p.s16(2), p.s16(3)
	p.SprtW = p.s16(6) & 0x3ff
	p.SprtH = p.s16(7) & 0x1ff
	if p.SprtW == 0 || p.SprtH == 0 {
		return
	}

	u2, v2 := rc.spriteUV(p, int16(p.byteAt(8)), int16(p.byteAt(9)))
	p.spriteFarEdge(u2, v2, true)
	rest := rc.clipSpriteToPage(p, u2, v2)

	if !rc.drawSprite(p, true) {
		return
	}

	if rest&restWrapU != 0 {
		rc.sprtRestChain(p.Words, 1)
	}
	if rest&restWrapV != 0 {
		rc.sprtRestChain(p.Words, 2)
	}
	if rest == restWrapU|restWrapV {
		rc.sprtRestChain(p.Words, 3)
	}
	rc.drawnSomething = 1
}

// sprtRestChain draws one first level rest and its follow-up, if any.
func (rc *RenderContext) sprtRestChain(words []uint32, kind int) {
	if rc.primSprtSRest(words, kind) {
		rc.primSprtSRest(words, kind+3)
	}
}

// primSprtSRest draws the part of a free size sprite past a page edge. Kinds
// 1-3 start at 256 texels, 4-6 at 512. It reports whether the same axis
// overflows again and needs the follow-up kind.
func (rc *RenderContext) primSprtSRest(words []uint32, kind int) bool {
	p := DecodedPrimitive{Words: words}
	p.SprtX, p.SprtY = p.s16(2), p.s16(3)
	p.SprtW = p.s16(6) & 0x3ff
	p.SprtH = p.s16(7) & 0x1ff

	bu, bv := int16(p.byteAt(8)), int16(p.byteAt(9))
	edge := int16(256)
	if kind > 3 {
		edge = 512
	}
	u, v := bu, bv
	if kind == 1 || kind == 3 || kind == 4 || kind == 6 {
		s := edge - bu
		p.SprtW -= s
		p.SprtX += s
		u = 0
	}
	if kind == 2 || kind == 3 || kind == 5 || kind == 6 {
		s := edge - bv
		p.SprtH -= s
		p.SprtY += s
		v = 0
	}

	u2, v2 := rc.spriteUV(&p, u, v)
	p.spriteFarEdge(u2, v2, false)
	rest := rc.clipSpriteToPage(&p, u2, v2)

	rc.drawSprite(&p, false)

	if kind > 3 || rest == 0 {
		return false
	}
	switch kind {
	case 1:
		return rest&restWrapU != 0
	case 2:
		return rest&restWrapV != 0
	}
	return rest == restWrapU|restWrapV
}

// drawTile runs the flat rectangle pipeline once the size is known.
func (rc *RenderContext) drawTile(p *DecodedPrimitive) {
	attr := p.word(0)
	rc.drawTextured, rc.drawSmoothShaded = false, false
	rc.SetRenderState(attr)

	if rc.cfg.OffscreenDrawing != 0 {
		rc.offsetPSX4(p)
		if rc.bDrawOffscreen4(p) {
			rc.invalidateTextureAreaEx(p, 4)
			rc.FillSoftwareAreaTrans(int(p.Lx[0]), int(p.Ly[0]), int(p.Lx[2]), int(p.Ly[2]), BGR24to16(attr))
		}
	}

	rc.SetRenderMode(p, attr, false)
	rc.SetZMask4NT(p)

	p.Vertex[0].setColor(attr, rc.gloColAlpha)
	rc.setCol(&p.Vertex[0])
	v := &p.Vertex
	rc.drawRect(&v[0], &v[1], &v[2], &v[3])
	rc.drawnSomething = 1
}

// primTileS handles free size tiles. Two titles need special treatment: a
// cursor tile FF7 draws over its own frame texture, and a Gradius tile that
// must count as a full screen clear.
func (rc *RenderContext) primTileS(p *DecodedPrimitive) {
	attr := p.word(0)
	p.SprtX, p.SprtY = p.s16(2), p.s16(3)
	p.SprtW = p.s16(4) & 0x3ff
	p.SprtH = p.s16(5) & int16(rc.heightMask)

	p.Lx[0], p.Ly[0] = p.SprtX, p.SprtY
	rc.offsetST(p)

	if rc.cfg.Fixes&FIX_FF7_CURSOR != 0 &&
		p.SprtX == QUIRK_FF7_CURSOR_X && p.SprtY == QUIRK_FF7_CURSOR_Y &&
		p.SprtW == QUIRK_FF7_CURSOR_W && p.SprtH == QUIRK_FF7_CURSOR_H {
		return
	}

	rc.drawTextured, rc.drawSmoothShaded = false, false
	rc.SetRenderState(attr)

	if rc.cfg.OffscreenDrawing != 0 {
		if rc.IsPrimCompleteInsideNextScreen(p.Lx[0], p.Ly[0], p.Lx[2], p.Ly[2]) ||
			(p.Ly[0] == QUIRK_GRADIUS_LY0 && p.Ly[2] == QUIRK_GRADIUS_LY2) {
			rc.clearOnSwapColor = attr & 0x00ffffff
			rc.clearOnSwap = true
		}

		rc.offsetPSX4(p)
		if rc.bDrawOffscreen4(p) {
			cheat := rc.cfg.TileCheat && p.SprtH == QUIRK_TILE_CHEAT_H && attr == QUIRK_TILE_CHEAT_COLOR
			if !cheat {
				rc.invalidateTextureAreaEx(p, 4)
				rc.FillSoftwareAreaTrans(int(p.Lx[0]), int(p.Ly[0]), int(p.Lx[2]), int(p.Ly[2]), BGR24to16(attr))
			}
		}
	}

	rc.SetRenderMode(p, attr, false)
	rc.SetZMask4NT(p)

	if rc.ignoreNextTile {
		rc.ignoreNextTile = false
		return
	}

	p.Vertex[0].setColor(attr, rc.gloColAlpha)
	rc.setCol(&p.Vertex[0])
	v := &p.Vertex
	rc.drawRect(&v[0], &v[1], &v[2], &v[3])
	rc.drawnSomething = 1
}

func (rc *RenderContext) primTileFixed(p *DecodedPrimitive, size int16) {
	p.SprtX, p.SprtY = p.s16(2), p.s16(3)
	p.SprtW, p.SprtH = size, size
	p.Lx[0], p.Ly[0] = p.SprtX, p.SprtY
	rc.offsetST(p)
	rc.drawTile(p)
}

func (rc *RenderContext) primTile1(p *DecodedPrimitive) {
	rc.primTileFixed(p, 1)
}

func (rc *RenderContext) primTile8(p *DecodedPrimitive) {
	rc.primTileFixed(p, 8)
}

func (rc *RenderContext) primTile16(p *DecodedPrimitive) {
	rc.primTileFixed(p, 16)
}
