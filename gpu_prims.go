// gpu_prims.go - PlayStation GPU Polygon Primitives

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
gpu_prims.go - Polygon Primitives

Flat, gouraud, textured and textured gouraud triangles and quads (GP0
0x20-0x3F). Each handler follows the same pipeline:

  decode -> offset and cull -> classify -> software mirror -> render mode
         -> depth -> draw -> second blend pass -> opaque pass

Quads are handed to the strip helpers as (0, 1, 3, 2) so the backend sees
the packet order 0, 1, 2, 3, which is already strip order on the PS1.

Two title fixes live here. Textured triangles that are really one or two
pixel wide rectangles are widened into quads, and FF9 draws a gouraud quad
over its battle screen that only looks right when deferred to the swap
and drawn additively.
*/

package main

// Texel nudge applied by RectTexAlign to the far edge of a flipped axis.
const rectTexAlignStep = 1.0

// ff9 deferral states
const (
	ff9Idle = iota
	ff9Checked
	ff9Pending
)

// invalidateTextureAreaEx drops cached textures under a primitive that is
// being mirrored into VRAM. p holds VRAM space coordinates.
func (rc *RenderContext) invalidateTextureAreaEx(p *DecodedPrimitive, n int) {
	b := boxOf(p, n)
	b.xmin = max(b.xmin, rc.drawX)
	b.ymin = max(b.ymin, rc.drawY)
	b.xmax = min(b.xmax, rc.drawW)
	b.ymax = min(b.ymax, rc.drawH)
	if b.xmax < b.xmin || b.ymax < b.ymin {
		return
	}
	rc.texCache.InvalidateArea(b.xmin, b.ymin, b.xmax-b.xmin, b.ymax-b.ymin)
}

// loadXY reads n vertex positions from the given signed half word slots.
func (p *DecodedPrimitive) loadXY(slots ...int) {
	for i, s := range slots {
		p.Lx[i] = p.s16(s)
		p.Ly[i] = p.s16(s + 1)
	}
}

// loadUV reads texel coordinates from the given byte offsets.
func (p *DecodedPrimitive) loadUV(offsets ...int) {
	for i, o := range offsets {
		p.U[i] = p.byteAt(o)
		p.V[i] = p.byteAt(o + 1)
	}
}

// shadeColors loads per vertex colours from the given packet words. Without
// multi pass or GL blending the colours are doubled to undo the PS1's 0x80
// neutral point.
func (rc *RenderContext) shadeColors(p *DecodedPrimitive, double bool, words ...int) {
	for i, w := range words {
		c := p.word(w)
		if double {
			c = DoubleBGR2RGB(c)
		}
		p.Vertex[i].setColor(c, rc.gloAlpha)
	}
}

func (rc *RenderContext) doubleShade() bool {
	return !rc.cfg.UseMultiPass && !rc.cfg.GLBlend
}

// texturedPasses runs the second blend pass and the opaque pass shared by
// the flat textured polygons.
func (rc *RenderContext) texturedPasses(p *DecodedPrimitive, attr uint32, n int, pointSample bool, draw func()) {
	if rc.drawMultiPass {
		rc.SetSemiTransMulti(1)
		draw()
	}
	if !rc.opaqueDraw {
		return
	}
	rc.setZMaskO(p, n)
	if rc.cfg.UseMultiPass {
		rc.SetOpaqueColor(p, attr)
	}
	rc.opaqueOn()
	if pointSample && rc.cfg.SmallAlpha && rc.cfg.FilterType <= 2 {
		rc.renderer.SetTextureFiltering(TEXF_POINT)
		draw()
		rc.renderer.SetTextureFiltering(TEXF_LINEAR)
		rc.setZMaskO(p, n)
	}
	draw()
	rc.opaqueOff()
}

func (rc *RenderContext) primPolyF3(p *DecodedPrimitive) {
	attr := p.word(0)
	p.loadXY(2, 4, 6)
	if rc.offset3(p) {
		return
	}

	rc.drawTextured, rc.drawSmoothShaded = false, false
	rc.SetRenderState(attr)

	if rc.cfg.OffscreenDrawing != 0 {
		rc.offsetPSX3(p)
		if rc.bDrawOffscreen3(p) {
			rc.invalidateTextureAreaEx(p, 3)
			rc.drawPoly3F(p, attr)
		}
	}

	rc.SetRenderMode(p, attr, false)
	rc.SetZMask3NT(p)

	p.Vertex[0].setColor(attr, rc.gloColAlpha)
	rc.setCol(&p.Vertex[0])
	rc.drawTri(&p.Vertex[0], &p.Vertex[1], &p.Vertex[2])
	rc.drawnSomething = 1
}

func (rc *RenderContext) primPolyF4(p *DecodedPrimitive) {
	attr := p.word(0)
	p.loadXY(2, 4, 6, 8)
	if rc.offset4(p) {
		return
	}

	rc.drawTextured, rc.drawSmoothShaded = false, false
	rc.SetRenderState(attr)

	if rc.cfg.OffscreenDrawing != 0 {
		rc.offsetPSX4(p)
		if rc.bDrawOffscreen4(p) {
			rc.invalidateTextureAreaEx(p, 4)
			rc.drawPoly4F(p, attr)
		}
	}

	rc.SetRenderMode(p, attr, false)
	rc.SetZMask4NT(p)

	p.Vertex[0].setColor(attr, rc.gloColAlpha)
	rc.setCol(&p.Vertex[0])
	v := &p.Vertex
	rc.drawTri2(&v[0], &v[1], &v[2], &v[3])
	rc.drawnSomething = 1
}

func (rc *RenderContext) primPolyG3(p *DecodedPrimitive) {
	attr := p.word(0)
	p.loadXY(2, 6, 10)
	if rc.offset3(p) {
		return
	}

	rc.drawTextured, rc.drawSmoothShaded = false, true
	rc.SetRenderState(attr)

	if rc.cfg.OffscreenDrawing != 0 {
		rc.offsetPSX3(p)
		if rc.bDrawOffscreen3(p) {
			rc.invalidateTextureAreaEx(p, 3)
			rc.drawPoly3G(p, p.word(0), p.word(2), p.word(4))
		}
	}

	rc.SetRenderMode(p, attr, false)
	rc.SetZMask3NT(p)

	for i, w := range [3]int{0, 2, 4} {
		p.Vertex[i].setColor(p.word(w), rc.gloColAlpha)
	}
	rc.drawGouraudTriColor(&p.Vertex[0], &p.Vertex[1], &p.Vertex[2])
	rc.drawnSomething = 1
}

func (rc *RenderContext) primPolyG4(p *DecodedPrimitive) {
	attr := p.word(0)
	p.loadXY(2, 6, 10, 14)
	if rc.offset4(p) {
		return
	}

	rc.drawTextured, rc.drawSmoothShaded = false, true
	rc.SetRenderState(attr)

	if rc.cfg.OffscreenDrawing != 0 {
		rc.offsetPSX4(p)
		if rc.cfg.Fixes&FIX_FF9_RECT != 0 && rc.checkFF9G4(p) {
			return
		}
		if rc.bDrawOffscreen4(p) {
			rc.invalidateTextureAreaEx(p, 4)
			rc.drawPoly4G(p, p.word(0), p.word(2), p.word(4), p.word(6))
		}
	}

	rc.SetRenderMode(p, attr, false)
	rc.SetZMask4NT(p)

	for i, w := range [4]int{0, 2, 4, 6} {
		p.Vertex[i].setColor(p.word(w), rc.gloAlpha)
	}
	v := &p.Vertex
	rc.drawGouraudTri2Color(&v[0], &v[1], &v[2], &v[3])
	rc.drawnSomething = 1
}

// ff9FrontOnly reports a quad lying completely inside the current display.
func (rc *RenderContext) ff9FrontOnly(p *DecodedPrimitive) bool {
	d := &rc.display
	for i := 0; i < 4; i++ {
		x, y := int(p.Lx[i]), int(p.Ly[i])
		if x < d.DisplayPosition.X || x > d.DisplayEnd.X || y < d.DisplayPosition.Y || y > d.DisplayEnd.Y {
			return false
		}
	}
	return true
}

// checkFF9G4 defers the first front buffer gouraud quad of a frame. The
// copy is shifted right when it starts at the battle menu column.
func (rc *RenderContext) checkFF9G4(p *DecodedPrimitive) bool {
	if rc.ff9State != ff9Idle {
		return false
	}
	if !rc.ff9FrontOnly(p) {
		rc.ff9State = ff9Checked
		return false
	}
	rc.ff9State = ff9Pending
	copy(rc.ff9Cache[:], p.Words[:8])
	if int16(rc.ff9Cache[1]) == QUIRK_FF9_X {
		rc.ff9Cache[1] = addLow16(rc.ff9Cache[1], QUIRK_FF9_SHIFT)
		rc.ff9Cache[5] = addLow16(rc.ff9Cache[5], QUIRK_FF9_SHIFT)
	}
	return true
}

func addLow16(w uint32, d int) uint32 {
	return w&0xffff0000 | uint32(uint16(int(int16(w))+d))
}

// replayFF9G4 draws a deferred quad additively and rearms the check.
func (rc *RenderContext) replayFF9G4() {
	if rc.ff9State == ff9Pending {
		abr := rc.globalTextABR
		rc.globalTextABR = 1
		cache := rc.ff9Cache
		p := DecodedPrimitive{Words: cache[:]}
		rc.primPolyG4(&p)
		rc.globalTextABR = abr
	}
	rc.ff9State = ff9Idle
}

func (rc *RenderContext) primPolyFT3(p *DecodedPrimitive) {
	attr := p.word(0)
	p.loadXY(2, 6, 10)
	if rc.offset3(p) {
		return
	}

	p.loadUV(8, 16, 24)
	p.U[3], p.V[3] = p.U[0], p.V[0]
	rc.UpdateGlobalTP(uint16(p.word(4) >> 16))
	p.ClutID = p.word(2) >> 16

	rc.drawTextured, rc.drawSmoothShaded = true, false
	rc.SetRenderState(attr)

	if rc.cfg.OffscreenDrawing != 0 {
		rc.offsetPSX3(p)
		if rc.bDrawOffscreen3(p) {
			rc.invalidateTextureAreaEx(p, 3)
			rc.SetRenderColor(attr)
			rc.drawPoly3FT(p)
		}
	}

	rc.SetRenderMode(p, attr, true)
	rc.SetZMask3(p)
	rc.assignTexture3(p)

	if rc.cfg.Fixes&FIX_NO_COORD_CHECK == 0 && rc.DoLineCheck(p, attr) {
		return
	}

	v := &p.Vertex
	draw := func() { rc.drawTexturedTri(&v[0], &v[1], &v[2]) }
	draw()
	rc.texturedPasses(p, attr, 3, false, draw)
	rc.drawnSomething = 1
}

func (rc *RenderContext) primPolyFT4(p *DecodedPrimitive) {
	attr := p.word(0)
	p.loadXY(2, 6, 10, 14)
	if rc.offset4(p) {
		return
	}

	p.loadUV(8, 16, 24, 32)
	rc.UpdateGlobalTP(uint16(p.word(4) >> 16))
	p.ClutID = p.word(2) >> 16

	rc.drawTextured, rc.drawSmoothShaded = true, false
	rc.SetRenderState(attr)

	if rc.cfg.OffscreenDrawing != 0 {
		rc.offsetPSX4(p)
		if rc.bDrawOffscreen4(p) {
			rc.invalidateTextureAreaEx(p, 4)
			rc.SetRenderColor(attr)
			rc.drawPoly4FT(p)
		}
	}

	rc.SetRenderMode(p, attr, true)
	rc.SetZMask4(p)
	rc.assignTexture4(p)
	rc.RectTexAlign(p)

	v := &p.Vertex
	draw := func() { rc.drawTexturedQuad(&v[0], &v[1], &v[3], &v[2]) }
	draw()
	rc.texturedPasses(p, attr, 4, true, draw)
	rc.drawnSomething = 1
}

// rawTextureColor is the vertex colour of an unmodulated textured polygon.
func (rc *RenderContext) rawTextureColor(p *DecodedPrimitive) {
	if rc.cfg.GLBlend {
		p.Vertex[0].setColor(0x7f7f7f, rc.gloAlpha)
	} else {
		p.Vertex[0].setColor(0xffffff, rc.gloAlpha)
	}
	rc.setCol(&p.Vertex[0])
}

func (rc *RenderContext) primPolyGT3(p *DecodedPrimitive) {
	attr := p.word(0)
	p.loadXY(2, 8, 14)
	if rc.offset3(p) {
		return
	}

	p.loadUV(8, 20, 32)
	p.U[3], p.V[3] = p.U[0], p.V[0]
	rc.UpdateGlobalTP(uint16(p.word(5) >> 16))
	p.ClutID = p.word(2) >> 16

	rc.drawTextured, rc.drawSmoothShaded = true, true
	rc.SetRenderState(attr)

	if rc.cfg.OffscreenDrawing != 0 {
		rc.offsetPSX3(p)
		if rc.bDrawOffscreen3(p) {
			rc.invalidateTextureAreaEx(p, 3)
			rc.drawPoly3GT(p)
		}
	}

	rc.SetRenderMode(p, attr, false)
	rc.SetZMask3(p)
	rc.assignTexture3(p)

	v := &p.Vertex
	if rc.drawNonShaded {
		rc.rawTextureColor(p)
		rc.drawTexturedTri(&v[0], &v[1], &v[2])
		if rc.opaqueDraw {
			rc.SetZMask3O(p)
			rc.opaqueOn()
			rc.drawTexturedTri(&v[0], &v[1], &v[2])
			rc.opaqueOff()
		}
		return
	}

	rc.shadeColors(p, rc.doubleShade(), 0, 3, 6)
	rc.drawTexGouraudTriColor(&v[0], &v[1], &v[2])

	if rc.drawMultiPass {
		rc.SetSemiTransMulti(1)
		rc.drawTexGouraudTriColor(&v[0], &v[1], &v[2])
	}
	if rc.opaqueDraw {
		rc.SetZMask3O(p)
		if rc.cfg.UseMultiPass {
			rc.shadeColors(p, true, 0, 3, 6)
		}
		rc.opaqueOn()
		rc.drawTexGouraudTriColor(&v[0], &v[1], &v[2])
		rc.opaqueOff()
	}
	rc.drawnSomething = 1
}

func (rc *RenderContext) primPolyGT4(p *DecodedPrimitive) {
	attr := p.word(0)
	p.loadXY(2, 8, 14, 20)
	if rc.offset4(p) {
		return
	}

	p.loadUV(8, 20, 32, 44)
	rc.UpdateGlobalTP(uint16(p.word(5) >> 16))
	p.ClutID = p.word(2) >> 16

	rc.drawTextured, rc.drawSmoothShaded = true, true
	rc.SetRenderState(attr)

	if rc.cfg.OffscreenDrawing != 0 {
		rc.offsetPSX4(p)
		if rc.bDrawOffscreen4(p) {
			rc.invalidateTextureAreaEx(p, 4)
			rc.drawPoly4GT(p)
		}
	}

	rc.SetRenderMode(p, attr, false)
	rc.SetZMask4(p)
	rc.assignTexture4(p)
	rc.RectTexAlign(p)

	v := &p.Vertex
	if rc.drawNonShaded {
		rc.rawTextureColor(p)
		rc.drawTexturedQuad(&v[0], &v[1], &v[3], &v[2])
		if rc.opaqueDraw {
			rc.SetZMask4O(p)
			rc.gloAlpha, rc.gloColAlpha = 0xff, 0xff
			rc.opaqueOn()
			rc.drawTexturedQuad(&v[0], &v[1], &v[3], &v[2])
			rc.opaqueOff()
		}
		return
	}

	rc.shadeColors(p, rc.doubleShade(), 0, 3, 6, 9)
	rc.drawTexGouraudTriColorQuad(&v[0], &v[1], &v[3], &v[2])

	if rc.drawMultiPass {
		rc.SetSemiTransMulti(1)
		rc.drawTexGouraudTriColorQuad(&v[0], &v[1], &v[3], &v[2])
	}
	if rc.opaqueDraw {
		rc.SetZMask4O(p)
		if rc.cfg.UseMultiPass {
			rc.shadeColors(p, true, 0, 3, 6, 9)
		}
		rc.gloAlpha, rc.gloColAlpha = 0xff, 0xff
		rc.opaqueOn()
		rc.drawTexGouraudTriColorQuad(&v[0], &v[1], &v[3], &v[2])
		rc.opaqueOff()
	}
	rc.drawnSomething = 1
}

func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

// DoLineCheck turns a textured triangle that is at most one pixel wide
// along an axis into a quad, so the hairline it stands for is drawn. It
// reports whether the triangle was consumed.
func (rc *RenderContext) DoLineCheck(p *DecodedPrimitive, attr uint32) bool {
	lx, ly := &p.Lx, &p.Ly
	v := &p.Vertex
	quad := false

	if lx[0] == lx[1] {
		dx := abs16(lx[0] - lx[2])
		switch {
		case ly[1] == ly[2]:
			dy := abs16(ly[1] - ly[0])
			switch {
			case dx <= 1:
				v[3] = v[2]
				v[2] = v[0]
				v[2].X = v[3].X
			case dy <= 1:
				v[3] = v[2]
				v[2].Y = v[0].Y
			default:
				return false
			}
			quad = true
		case ly[0] == ly[2]:
			dy := abs16(ly[0] - ly[1])
			switch {
			case dx <= 1:
				v[3] = v[1]
				v[3].X = v[2].X
			case dy <= 1:
				v[3] = v[2]
				v[3].Y = v[1].Y
			default:
				return false
			}
			quad = true
		}
	}

	if lx[0] == lx[2] {
		dx := abs16(lx[0] - lx[1])
		switch {
		case ly[2] == ly[1]:
			dy := abs16(ly[2] - ly[0])
			switch {
			case dx <= 1:
				v[3] = v[1]
				v[1] = v[0]
				v[1].X = v[3].X
			case dy <= 1:
				v[3] = v[1]
				v[1].Y = v[0].Y
			default:
				return false
			}
			quad = true
		case ly[0] == ly[1]:
			dy := abs16(ly[2] - ly[0])
			switch {
			case dx <= 1:
				v[3] = v[2]
				v[3].X = v[1].X
			case dy <= 1:
				v[3] = v[1]
				v[3].Y = v[2].Y
			default:
				return false
			}
			quad = true
		}
	}

	if lx[1] == lx[2] {
		dx := abs16(lx[1] - lx[0])
		switch {
		case ly[1] == ly[0]:
			dy := abs16(ly[1] - ly[2])
			switch {
			case dx <= 1:
				v[3] = v[2]
				v[2].X = v[0].X
			case dy <= 1:
				v[3] = v[2]
				v[2] = v[0]
				v[2].Y = v[3].Y
			default:
				return false
			}
			quad = true
		case ly[2] == ly[0]:
			dy := abs16(ly[2] - ly[1])
			switch {
			case dx <= 1:
				v[3] = v[1]
				v[1].X = v[0].X
			case dy <= 1:
				v[3] = v[1]
				v[1] = v[0]
				v[1].Y = v[3].Y
			default:
				return false
			}
			quad = true
		}
	}

	if !quad {
		return false
	}

	draw := func() { rc.drawTexturedQuad(&v[0], &v[1], &v[3], &v[2]) }
	draw()
	if rc.drawMultiPass {
		rc.SetSemiTransMulti(1)
		draw()
	}
	if rc.opaqueDraw {
		rc.SetZMask4O(p)
		if rc.cfg.UseMultiPass {
			rc.SetOpaqueColor(p, attr)
		}
		rc.opaqueOn()
		draw()
		rc.opaqueOff()
	}
	rc.drawnSomething = 1
	return true
}

// RectTexAlign widens the texel range of an axis aligned textured quad by
// one texel on axes whose texture runs against the screen direction, which
// otherwise loses the last row or column to the sampling rule.
func (rc *RenderContext) RectTexAlign(p *DecodedPrimitive) {
	if rc.texCache.IsMovie(rc.boundTex) {
		return
	}
	lx, ly := &p.Lx, &p.Ly
	v := &p.Vertex

	// flips name the two vertices that get nudged
	var vflip, uflip [2]int
	var hasV, hasU bool

	switch {
	case ly[0] == ly[1]:
		if !((lx[1] == lx[3] && ly[3] == ly[2] && lx[2] == lx[0]) ||
			(lx[1] == lx[2] && ly[2] == ly[3] && lx[3] == lx[0])) {
			return
		}
		if ly[0] < ly[2] {
			hasV, vflip = v[0].T > v[2].T, [2]int{2, 3}
		} else {
			hasV, vflip = v[0].T < v[2].T, [2]int{0, 1}
		}
	case ly[0] == ly[2]:
		if !((lx[2] == lx[3] && ly[3] == ly[1] && lx[1] == lx[0]) ||
			(lx[2] == lx[1] && ly[1] == ly[3] && lx[3] == lx[0])) {
			return
		}
		if ly[0] < ly[1] {
			hasV, vflip = v[0].T > v[1].T, [2]int{1, 3}
		} else {
			hasV, vflip = v[0].T < v[1].T, [2]int{0, 2}
		}
	case ly[0] == ly[3]:
		if !((lx[3] == lx[2] && ly[2] == ly[1] && lx[1] == lx[0]) ||
			(lx[3] == lx[1] && ly[1] == ly[2] && lx[2] == lx[0])) {
			return
		}
		if ly[0] < ly[1] {
			hasV, vflip = v[0].T > v[1].T, [2]int{1, 2}
		} else {
			hasV, vflip = v[0].T < v[1].T, [2]int{0, 3}
		}
	default:
		return
	}

	switch {
	case lx[0] == lx[1]:
		if lx[0] < lx[2] {
			hasU, uflip = v[0].S > v[2].S, [2]int{2, 3}
		} else {
			hasU, uflip = v[0].S < v[2].S, [2]int{0, 1}
		}
	case lx[0] == lx[2]:
		if lx[0] < lx[1] {
			hasU, uflip = v[0].S > v[1].S, [2]int{1, 3}
		} else {
			hasU, uflip = v[0].S < v[1].S, [2]int{0, 2}
		}
	case lx[0] == lx[3]:
		if lx[0] < lx[1] {
			hasU, uflip = v[0].S > v[1].S, [2]int{1, 2}
		} else {
			hasU, uflip = v[0].S < v[1].S, [2]int{0, 3}
		}
	}

	du, dv := float32(rectTexAlignStep), float32(rectTexAlignStep)
	if rc.usingTWin {
		du /= rc.twin.UScaleFactor
		dv /= rc.twin.VScaleFactor
	}
	if hasU {
		v[uflip[0]].S += du
		v[uflip[1]].S += du
	}
	if hasV {
		v[vflip[0]].T += dv
		v[vflip[1]].T += dv
	}
}
