// gpu_soft.go - PlayStation GPU Software VRAM Mirror

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
gpu_soft.go - Software VRAM Mirror

When offscreen drawing is enabled, primitives that land outside the
displayed area (or everywhere, in full VRAM mode) are also rasterized into
the 16-bit VRAM array so later transfers, moves and texture fetches see
them. The rules are the PS1's own, not the backend's:

- colours are 5:5:5 with bit 15 as the mask bit
- texture modulation is (texel * colour) >> 7, saturating at 31
- texel 0x0000 is transparent; only texels with bit 15 set are blended
- pixels with bit 15 set are skipped while mask checking is on
- every written pixel gets the current set-mask bit

Polygons are clipped to the draw area; block fills are not.
*/

package main

import "math"

// softVertex is one corner in VRAM space.
type softVertex struct {
	x, y    float32
	u, v    float32
	r, g, b float32
}

func rgbOf(c uint32) (float32, float32, float32) {
	return float32(c & 0xff), float32((c >> 8) & 0xff), float32((c >> 16) & 0xff)
}

// FillSoftwareArea writes a solid colour, ignoring the mask and draw area.
// x1 and y1 are exclusive.
func (rc *RenderContext) FillSoftwareArea(x0, y0, x1, y1 int, col uint16) {
	if y0 > y1 || x0 > x1 {
		return
	}
	if y0 >= rc.vramHeight || x0 >= PSX_VRAM_WIDTH {
		return
	}
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, PSX_VRAM_WIDTH), min(y1, rc.vramHeight)
	for y := y0; y < y1; y++ {
		row := rc.vram[y*PSX_VRAM_WIDTH:]
		for x := x0; x < x1; x++ {
			row[x] = col
		}
	}
}

// FillSoftwareAreaTrans fills a rectangle inside the draw area with the
// current blend and mask policy. x1 and y1 are exclusive.
func (rc *RenderContext) FillSoftwareAreaTrans(x0, y0, x1, y1 int, col uint16) {
	if y0 > y1 || x0 > x1 {
		return
	}
	if x1 < rc.drawX || y1 < rc.drawY || x0 > rc.drawW || y0 > rc.drawH {
		return
	}
	x0, y0 = max(x0, rc.drawX), max(y0, rc.drawY)
	x1, y1 = min(x1, rc.drawW+1), min(y1, rc.drawH+1)
	x1, y1 = min(x1, PSX_VRAM_WIDTH), min(y1, rc.vramHeight)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			rc.softPixel(x, y, col, rc.drawSemiTrans)
		}
	}
}

// softPixel writes one pixel through the mask check and semi transparency.
func (rc *RenderContext) softPixel(x, y int, c uint16, blend bool) {
	i := y*PSX_VRAM_WIDTH + x
	dst := rc.vram[i]
	if rc.checkMask && dst&0x8000 != 0 {
		return
	}
	if blend {
		c = blend555(dst, c, rc.globalTextABR) | c&0x8000
	}
	rc.vram[i] = c | rc.sSetMask
}

// blend555 applies one of the four hardware blend equations per channel.
func blend555(dst, src uint16, abr int) uint16 {
	var out uint16
	for shift := uint(0); shift < 15; shift += 5 {
		d := int(dst>>shift) & 0x1f
		s := int(src>>shift) & 0x1f
		var r int
		switch abr {
		case 0:
			r = (d + s) >> 1
		case 1:
			r = min(d+s, 31)
		case 2:
			r = max(d-s, 0)
		default:
			r = min(d+(s>>2), 31)
		}
		out |= uint16(r) << shift
	}
	return out
}

// modulate555 multiplies a texel by an 8-bit colour, 0x80 being neutral.
func modulate555(t uint16, r, g, b int32) uint16 {
	ch := func(v uint16, m int32) uint16 {
		x := (int32(v&0x1f) * m) >> 7
		if x > 31 {
			x = 31
		}
		return uint16(x)
	}
	return ch(t, r) | ch(t>>5, g)<<5 | ch(t>>10, b)<<10 | t&0x8000
}

// pageTexel fetches one 15-bit texel of the page at (px, py).
func (rc *RenderContext) pageTexel(px, py, tp int, clut uint32, u, v int) uint16 {
	y := py + v
	switch tp {
	case TEXMODE_4BIT:
		w := rc.vramAt(px+(u>>2), y)
		return rc.clutAt(clut, int(w>>(uint(u&3)*4))&0xf)
	case TEXMODE_8BIT:
		w := rc.vramAt(px+(u>>1), y)
		return rc.clutAt(clut, int(w>>(uint(u&1)*8))&0xff)
	}
	return rc.vramAt(px+u, y)
}

// softTexel fetches a texel of the current page through the texture window.
func (rc *RenderContext) softTexel(clut uint32, u, v int) uint16 {
	u &= 0xff
	v &= 0xff
	if rc.usingTWin {
		tw := &rc.twin.Position
		u = tw.X0 + (u & (rc.twin.OPosition.X1 - 1))
		v = tw.Y0 + (v & (rc.twin.OPosition.Y1 - 1))
	}
	return rc.pageTexel(rc.globalTextAddrX, rc.globalTextAddrY, rc.globalTextTP, clut, u&0xff, v&0xff)
}

// texturedPixel modulates and writes one texel; transparent texels are
// dropped and only STP texels blend.
func (rc *RenderContext) texturedPixel(x, y int, t uint16, r, g, b int32) {
	if t == 0 {
		return
	}
	if !rc.drawNonShaded {
		t = modulate555(t, r, g, b)
	}
	rc.softPixel(x, y, t, rc.drawSemiTrans && t&0x8000 != 0)
}

const (
	shadeFlat = iota
	shadeGouraud
	shadeTextured
	shadeTexturedGouraud
)

// softTriangle rasterizes one triangle into VRAM, clipped to the draw area.
func (rc *RenderContext) softTriangle(a, b, c softVertex, mode int, flat uint16, clut uint32) {
	area := edgeFunction(a.x, a.y, b.x, b.y, c.x, c.y)
	if area == 0 {
		return
	}
	if area < 0 {
		a, c = c, a
		area = -area
	}
	inv := 1 / area

	minX := max(int(math.Floor(float64(min3f(a.x, b.x, c.x)))), rc.drawX, 0)
	maxX := min(int(math.Ceil(float64(max3f(a.x, b.x, c.x)))), rc.drawW+1, PSX_VRAM_WIDTH)
	minY := max(int(math.Floor(float64(min3f(a.y, b.y, c.y)))), rc.drawY, 0)
	maxY := min(int(math.Ceil(float64(max3f(a.y, b.y, c.y)))), rc.drawH+1, rc.vramHeight)

	mc := rc.mirrorColor
	for y := minY; y < maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float32(x) + 0.5
			w0 := edgeFunction(b.x, b.y, c.x, c.y, px, py)
			w1 := edgeFunction(c.x, c.y, a.x, a.y, px, py)
			w2 := edgeFunction(a.x, a.y, b.x, b.y, px, py)
			if !edgeCovers(w0, b, c) || !edgeCovers(w1, c, a) || !edgeCovers(w2, a, b) {
				continue
			}
			w0, w1, w2 = w0*inv, w1*inv, w2*inv

			switch mode {
			case shadeFlat:
				rc.softPixel(x, y, flat, rc.drawSemiTrans)
			case shadeGouraud:
				r := w0*a.r + w1*b.r + w2*c.r
				g := w0*a.g + w1*b.g + w2*c.g
				bl := w0*a.b + w1*b.b + w2*c.b
				col := uint32(r) | uint32(g)<<8 | uint32(bl)<<16
				rc.softPixel(x, y, BGR24to16(col), rc.drawSemiTrans)
			case shadeTextured:
				u := w0*a.u + w1*b.u + w2*c.u
				v := w0*a.v + w1*b.v + w2*c.v
				rc.texturedPixel(x, y, rc.softTexel(clut, int(u), int(v)), mc[0], mc[1], mc[2])
			case shadeTexturedGouraud:
				u := w0*a.u + w1*b.u + w2*c.u
				v := w0*a.v + w1*b.v + w2*c.v
				r := w0*a.r + w1*b.r + w2*c.r
				g := w0*a.g + w1*b.g + w2*c.g
				bl := w0*a.b + w1*b.b + w2*c.b
				rc.texturedPixel(x, y, rc.softTexel(clut, int(u), int(v)), int32(r), int32(g), int32(bl))
			}
		}
	}
}

// edgeCovers applies the top-left fill rule: a pixel centre exactly on an
// edge belongs only to the triangle for which that edge is a top or left
// one, so the shared diagonal of a quad is written once.
func edgeCovers(w float32, from, to softVertex) bool {
	if w != 0 {
		return w > 0
	}
	dy := to.y - from.y
	return dy > 0 || (dy == 0 && to.x < from.x)
}

// softVerts gathers VRAM space corners, texel coordinates and the colours
// of the given packet words.
func (p *DecodedPrimitive) softVerts(n int, colors ...int) [4]softVertex {
	var sv [4]softVertex
	for i := 0; i < n; i++ {
		sv[i].x, sv[i].y = float32(p.Lx[i]), float32(p.Ly[i])
		sv[i].u, sv[i].v = float32(p.U[i]), float32(p.V[i])
		if i < len(colors) {
			sv[i].r, sv[i].g, sv[i].b = rgbOf(p.word(colors[i]))
		}
	}
	return sv
}

// softQuad splits a PS1 quad into its two hardware triangles.
func (rc *RenderContext) softQuad(sv [4]softVertex, mode int, flat uint16, clut uint32) {
	rc.softTriangle(sv[0], sv[1], sv[2], mode, flat, clut)
	rc.softTriangle(sv[1], sv[3], sv[2], mode, flat, clut)
}

func (rc *RenderContext) drawPoly3F(p *DecodedPrimitive, col uint32) {
	sv := p.softVerts(3)
	rc.softTriangle(sv[0], sv[1], sv[2], shadeFlat, BGR24to16(col), 0)
}

func (rc *RenderContext) drawPoly4F(p *DecodedPrimitive, col uint32) {
	rc.softQuad(p.softVerts(4), shadeFlat, BGR24to16(col), 0)
}

func (rc *RenderContext) drawPoly3G(p *DecodedPrimitive, c0, c1, c2 uint32) {
	sv := p.softVerts(3)
	for i, c := range [3]uint32{c0, c1, c2} {
		sv[i].r, sv[i].g, sv[i].b = rgbOf(c)
	}
	rc.softTriangle(sv[0], sv[1], sv[2], shadeGouraud, 0, 0)
}

func (rc *RenderContext) drawPoly4G(p *DecodedPrimitive, c0, c1, c2, c3 uint32) {
	sv := p.softVerts(4)
	for i, c := range [4]uint32{c0, c1, c2, c3} {
		sv[i].r, sv[i].g, sv[i].b = rgbOf(c)
	}
	rc.softQuad(sv, shadeGouraud, 0, 0)
}

func (rc *RenderContext) drawPoly3FT(p *DecodedPrimitive) {
	sv := p.softVerts(3)
	rc.softTriangle(sv[0], sv[1], sv[2], shadeTextured, 0, p.ClutID)
}

func (rc *RenderContext) drawPoly4FT(p *DecodedPrimitive) {
	rc.softQuad(p.softVerts(4), shadeTextured, 0, p.ClutID)
}

func (rc *RenderContext) drawPoly3GT(p *DecodedPrimitive) {
	sv := p.softVerts(3, 0, 3, 6)
	rc.softTriangle(sv[0], sv[1], sv[2], shadeTexturedGouraud, 0, p.ClutID)
}

func (rc *RenderContext) drawPoly4GT(p *DecodedPrimitive) {
	rc.softQuad(p.softVerts(4, 0, 3, 6, 9), shadeTexturedGouraud, 0, p.ClutID)
}

// softSprite draws a w x h sprite at VRAM (x, y). texel maps a sprite
// relative pixel to its texel.
func (rc *RenderContext) softSprite(x, y, w, h int, texel func(i, j int) uint16) {
	x0, y0 := max(x, rc.drawX, 0), max(y, rc.drawY, 0)
	x1 := min(x+w, rc.drawW+1, PSX_VRAM_WIDTH)
	y1 := min(y+h, rc.drawH+1, rc.vramHeight)
	mc := rc.mirrorColor
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			rc.texturedPixel(px, py, texel(px-x, py-y), mc[0], mc[1], mc[2])
		}
	}
}

// DrawSoftwareSprite draws a sprite whose top left texel is (tx, ty).
func (rc *RenderContext) DrawSoftwareSprite(p *DecodedPrimitive, x, y, w, h, tx, ty int) {
	rc.softSprite(x, y, w, h, func(i, j int) uint16 {
		return rc.softTexel(p.ClutID, tx+i, ty+j)
	})
}

// DrawSoftwareSpriteMirror draws a sprite with the texture page mirror bits
// applied; a mirrored axis walks its texels backwards.
func (rc *RenderContext) DrawSoftwareSpriteMirror(p *DecodedPrimitive, x, y, w, h int) {
	tx, ty := int(p.byteAt(8)), int(p.byteAt(9))
	du, dv := 1, 1
	if rc.usMirror&0x1000 != 0 {
		du = -1
	}
	if rc.usMirror&0x2000 != 0 {
		dv = -1
	}
	rc.softSprite(x, y, w, h, func(i, j int) uint16 {
		return rc.softTexel(p.ClutID, tx+i*du, ty+j*dv)
	})
}

// DrawSoftwareSpriteTWin draws a sprite whose texels repeat inside the
// texture window.
func (rc *RenderContext) DrawSoftwareSpriteTWin(p *DecodedPrimitive, x, y, w, h int) {
	rc.DrawSoftwareSprite(p, x, y, w, h, int(p.byteAt(8)), int(p.byteAt(9)))
}
