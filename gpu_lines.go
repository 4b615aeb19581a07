// gpu_lines.go - PlayStation GPU Lines and Polylines

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
gpu_lines.go - Lines and Polylines

Lines are widened into one pixel quads by offsetline. Polylines carry no
count; they end at the first word matching POLYLINE_END_MASK once enough
words have been read that the match cannot be vertex data. The scan never
goes past PSX_MAX_POLYLINE_IDX or the end of the packet, whichever comes
first.

Packet layouts:
  flat:    color, xy0, xy1, ... , end
  shaded:  color0, xy0, color1, xy1, ... , end
*/

package main

func isPolylineEnd(w uint32) bool {
	return w&POLYLINE_END_MASK == POLYLINE_END_VALUE
}

func unpackXY(w uint32) (int16, int16) {
	return int16(w), int16(w >> 16)
}

// polylineLimit is the last word index a polyline scan may read.
func polylineLimit(words []uint32) int {
	return min(PSX_MAX_POLYLINE_IDX, len(words)-1)
}

// mirrorLine pushes one segment into VRAM, preserving the screen space
// endpoints the next segment starts from.
func (rc *RenderContext) mirrorLine(p *DecodedPrimitive, fill func()) {
	x0, x1, y0, y1 := p.Lx[0], p.Lx[1], p.Ly[0], p.Ly[1]
	rc.offsetPSXLine(p)
	if rc.bDrawOffscreen4(p) {
		rc.invalidateTextureAreaEx(p, 4)
		fill()
	}
	p.Lx[0], p.Lx[1], p.Ly[0], p.Ly[1] = x0, x1, y0, y1
}

func (rc *RenderContext) primLineF2(p *DecodedPrimitive) {
	attr := p.word(0)
	p.loadXY(2, 4)
	if rc.offsetline(p) {
		return
	}

	rc.drawTextured, rc.drawSmoothShaded = false, false
	rc.SetRenderState(attr)
	rc.SetRenderMode(p, attr, false)
	rc.SetZMask4NT(p)

	p.Vertex[0].setColor(attr, rc.gloColAlpha)

	if rc.cfg.OffscreenDrawing != 0 {
		rc.mirrorLine(p, func() { rc.drawPoly4F(p, attr) })
	}

	v := &p.Vertex
	rc.drawFlatLine(&v[0], &v[1], &v[2], &v[3])
	rc.drawnSomething = 1
}

func (rc *RenderContext) primLineG2(p *DecodedPrimitive) {
	attr := p.word(0)
	p.loadXY(2, 6)

	c0, c1 := p.word(0), p.word(2)
	p.Vertex[0].setColor(c0, rc.gloColAlpha)
	p.Vertex[3].setColor(c0, rc.gloColAlpha)
	p.Vertex[1].setColor(c1, rc.gloColAlpha)
	p.Vertex[2].setColor(c1, rc.gloColAlpha)

	rc.drawTextured, rc.drawSmoothShaded = false, true

	if p.Lx[0] == p.Lx[1] && p.Ly[0] == p.Ly[1] {
		return
	}
	if rc.offsetline(p) {
		return
	}

	rc.SetRenderState(attr)
	rc.SetRenderMode(p, attr, false)
	rc.SetZMask4NT(p)

	if rc.cfg.OffscreenDrawing != 0 {
		rc.mirrorLine(p, func() { rc.drawPoly4G(p, c0, c1, c0, c1) })
	}

	v := &p.Vertex
	rc.drawGouraudLine(&v[0], &v[1], &v[2], &v[3])
	rc.drawnSomething = 1
}

func (rc *RenderContext) primLineFEx(p *DecodedPrimitive) {
	attr := p.word(0)
	limit := polylineLimit(p.Words)

	rc.drawTextured, rc.drawSmoothShaded = false, false
	rc.SetRenderState(attr)
	rc.SetRenderMode(p, attr, false)
	rc.SetZMask4NT(p)

	p.Vertex[0].setColor(attr, rc.gloColAlpha)
	p.Lx[1], p.Ly[1] = unpackXY(p.word(1))

	v := &p.Vertex
	for i := 2; i <= limit; i++ {
		w := p.word(i)
		if i >= 3 && isPolylineEnd(w) {
			break
		}
		p.Lx[0], p.Ly[0] = p.Lx[1], p.Ly[1]
		p.Lx[1], p.Ly[1] = unpackXY(w)

		if rc.offsetline(p) {
			continue
		}
		if rc.cfg.OffscreenDrawing != 0 {
			rc.mirrorLine(p, func() { rc.drawPoly4F(p, attr) })
		}
		rc.drawFlatLine(&v[0], &v[1], &v[2], &v[3])
	}
	rc.drawnSomething = 1
}

func (rc *RenderContext) primLineGEx(p *DecodedPrimitive) {
	attr := p.word(0)
	limit := polylineLimit(p.Words)

	rc.drawTextured, rc.drawSmoothShaded = false, true
	rc.SetRenderState(attr)
	rc.SetRenderMode(p, attr, false)
	rc.SetZMask4NT(p)

	v := &p.Vertex
	v[0].setColor(attr, rc.gloColAlpha)
	v[3].setColor(attr, rc.gloColAlpha)
	p.Lx[1], p.Ly[1] = unpackXY(p.word(1))

	for i := 2; i <= limit; i += 2 {
		if i >= 4 && isPolylineEnd(p.word(i)) {
			break
		}
		if i+1 > limit {
			break
		}
		p.Lx[0], p.Ly[0] = p.Lx[1], p.Ly[1]
		v[1].Col, v[2].Col = v[0].Col, v[0].Col
		v[0].setColor(p.word(i), rc.gloColAlpha)
		v[3].setColor(p.word(i), rc.gloColAlpha)
		p.Lx[1], p.Ly[1] = unpackXY(p.word(i + 1))

		if rc.offsetline(p) {
			continue
		}
		if p.Lx[0] == p.Lx[1] && p.Ly[0] == p.Ly[1] {
			continue
		}
		if rc.cfg.OffscreenDrawing != 0 {
			c0, c1 := p.word(i-2), p.word(i)
			rc.mirrorLine(p, func() { rc.drawPoly4G(p, c0, c1, c0, c1) })
		}
		rc.drawGouraudLine(&v[0], &v[1], &v[2], &v[3])
	}
	rc.drawnSomething = 1
}

// primLineFSkip walks a flat polyline without drawing it.
func (rc *RenderContext) primLineFSkip(p *DecodedPrimitive) int {
	limit := polylineLimit(p.Words)
	i := 2
	for ; i <= limit; i++ {
		if i >= 3 && isPolylineEnd(p.word(i)) {
			break
		}
	}
	return i
}

// primLineGSkip walks a shaded polyline without drawing it.
func (rc *RenderContext) primLineGSkip(p *DecodedPrimitive) int {
	limit := polylineLimit(p.Words)
	i := 2
	for ; i <= limit; i += 2 {
		if i >= 4 && isPolylineEnd(p.word(i)) {
			break
		}
	}
	return i
}
