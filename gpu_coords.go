// gpu_coords.go - PlayStation GPU Coordinate and Clipping Utilities

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
gpu_coords.go - Coordinate and Clipping Utilities

Offsetting of primitive coordinates into screen space, the VRAM space
variants used by the software mirror, display window classification and the
rectangle clamps used by transfers.

All primitive coordinates are 16-bit. Sums wrap exactly like the hardware's
short arithmetic, so every translation goes through int16.
*/

package main

func signExtend11(v int16) int16 {
	return int16(int32(v) << 21 >> 21)
}

func add16(v int16, d int) int16 {
	return int16(int(v) + d)
}

// rejectSpread reports a polygon whose negative coordinates are too far
// from the others to be anything but garbage.
func rejectSpread(c []int16, limit int) bool {
	for i, a := range c {
		if a >= 0 {
			continue
		}
		for j, b := range c {
			if i != j && int(b)-int(a) > limit {
				return true
			}
		}
	}
	return false
}

// offset3 sign-extends and culls a triangle, then places it on screen.
func (rc *RenderContext) offset3(p *DecodedPrimitive) bool {
	rc.ensureDisplaySettings()
	if rc.cfg.Fixes&FIX_NO_COORD_CHECK == 0 {
		for i := 0; i < 3; i++ {
			p.Lx[i] = signExtend11(p.Lx[i])
			p.Ly[i] = signExtend11(p.Ly[i])
		}
		if rejectSpread(p.Lx[:3], CHKMAX_X) || rejectSpread(p.Ly[:3], CHKMAX_Y) {
			return true
		}
	}
	co := rc.display.CumulOffset
	for i := 0; i < 3; i++ {
		p.Vertex[i].X = float32(add16(p.Lx[i], co.X))
		p.Vertex[i].Y = float32(add16(p.Ly[i], co.Y))
	}
	return false
}

// offset4 is offset3 for quads.
func (rc *RenderContext) offset4(p *DecodedPrimitive) bool {
	rc.ensureDisplaySettings()
	if rc.cfg.Fixes&FIX_NO_COORD_CHECK == 0 {
		for i := 0; i < 4; i++ {
			p.Lx[i] = signExtend11(p.Lx[i])
			p.Ly[i] = signExtend11(p.Ly[i])
		}
		if rejectSpread(p.Lx[:], CHKMAX_X) || rejectSpread(p.Ly[:], CHKMAX_Y) {
			return true
		}
	}
	co := rc.display.CumulOffset
	for i := 0; i < 4; i++ {
		p.Vertex[i].X = float32(add16(p.Lx[i], co.X))
		p.Vertex[i].Y = float32(add16(p.Ly[i], co.Y))
	}
	return false
}

// lineWidening returns the half pixel offsets that turn a line into a quad
// one pixel wide, chosen by the dominant direction.
func lineWidening(dx, dy int) (px, py float32) {
	if dx >= 0 {
		if dy >= 0 {
			px = 0.5
			switch {
			case dx > dy:
				py = -0.5
			case dx < dy:
				py = 0.5
			}
			return
		}
		py = -0.5
		dy = -dy
		switch {
		case dx > dy:
			px = 0.5
		case dx < dy:
			px = -0.5
		}
		return
	}
	if dy >= 0 {
		py = 0.5
		dx = -dx
		switch {
		case dx > dy:
			px = -0.5
		case dx < dy:
			px = 0.5
		}
		return
	}
	px = -0.5
	switch {
	case dx > dy:
		py = -0.5
	case dx < dy:
		py = 0.5
	}
	return
}

// offsetline culls a line segment and expands it into a screen quad.
func (rc *RenderContext) offsetline(p *DecodedPrimitive) bool {
	rc.ensureDisplaySettings()
	if rc.cfg.Fixes&FIX_NO_COORD_CHECK == 0 {
		for i := 0; i < 2; i++ {
			p.Lx[i] = signExtend11(p.Lx[i])
			p.Ly[i] = signExtend11(p.Ly[i])
		}
		if rejectSpread(p.Lx[:2], CHKMAX_X) || rejectSpread(p.Ly[:2], CHKMAX_Y) {
			return true
		}
	}
	co := rc.display.CumulOffset
	x0 := float32(add16(p.Lx[0], co.X+1))
	x1 := float32(add16(p.Lx[1], co.X+1))
	y0 := float32(add16(p.Ly[0], co.Y+1))
	y1 := float32(add16(p.Ly[1], co.Y+1))
	px, py := lineWidening(int(x1-x0), int(y1-y0))

	p.Vertex[0].X, p.Vertex[0].Y = x0-px, y0-py
	p.Vertex[3].X, p.Vertex[3].Y = x0+py, y0-px
	p.Vertex[1].X, p.Vertex[1].Y = x1-py, y1+px
	p.Vertex[2].X, p.Vertex[2].Y = x1+px, y1+py
	return false
}

// offsetST builds the sprite rectangle from SprtW/SprtH and places it.
func (rc *RenderContext) offsetST(p *DecodedPrimitive) {
	rc.ensureDisplaySettings()
	if rc.cfg.Fixes&FIX_NO_COORD_CHECK == 0 {
		p.Lx[0] = signExtend11(p.Lx[0])
		p.Ly[0] = signExtend11(p.Ly[0])
		if p.Lx[0] < -512 && rc.display.DrawOffset.X <= -512 {
			p.Lx[0] += 2048
		}
		if p.Ly[0] < -512 && rc.display.DrawOffset.Y <= -512 {
			p.Ly[0] += 2048
		}
	}
	p.Ly[1] = p.Ly[0]
	p.Ly[2] = p.Ly[0] + p.SprtH
	p.Ly[3] = p.Ly[2]
	p.Lx[3] = p.Lx[0]
	p.Lx[1] = p.Lx[0] + p.SprtW
	p.Lx[2] = p.Lx[1]

	co := rc.display.CumulOffset
	for i := 0; i < 4; i++ {
		p.Vertex[i].X = float32(add16(p.Lx[i], co.X))
		p.Vertex[i].Y = float32(add16(p.Ly[i], co.Y))
	}
}

// offsetBlk places a block fill, which ignores the draw offset.
func (rc *RenderContext) offsetBlk(p *DecodedPrimitive) {
	rc.ensureDisplaySettings()
	gx := rc.display.GDrawOffset.X - rc.prevDisplay.Range.X0
	gy := rc.display.GDrawOffset.Y - rc.prevDisplay.Range.Y0
	for i := 0; i < 4; i++ {
		p.Vertex[i].X = float32(int(p.Lx[i]) - gx)
		p.Vertex[i].Y = float32(int(p.Ly[i]) - gy)
		p.Vertex[i].Z = ZMASK_PROTECTED
	}
}

// offsetScreenUpload places the movie quad for an upload of the given area.
func (rc *RenderContext) offsetScreenUpload(p *DecodedPrimitive, position int) {
	rc.ensureDisplaySettings()
	var dx, dy int
	switch {
	case position == -1:
		dx, dy = rc.uploadArea.X0, rc.uploadArea.Y0
	case position != 0:
		dx, dy = rc.display.DisplayPosition.X, rc.display.DisplayPosition.Y
	default:
		dx, dy = rc.prevDisplay.DisplayPosition.X, rc.prevDisplay.DisplayPosition.Y
	}
	for i := 0; i < 4; i++ {
		p.Lx[i] = add16(p.Lx[i], -dx)
		p.Ly[i] = add16(p.Ly[i], -dy)
		p.Vertex[i].X = float32(int(p.Lx[i]) + rc.prevDisplay.Range.X0)
		p.Vertex[i].Y = float32(int(p.Ly[i]) + rc.prevDisplay.Range.Y0)
	}
}

// offsetPSX3 moves a triangle into VRAM space for the software mirror.
func (rc *RenderContext) offsetPSX3(p *DecodedPrimitive) {
	for i := 0; i < 3; i++ {
		p.Lx[i] = add16(p.Lx[i], rc.display.DrawOffset.X)
		p.Ly[i] = add16(p.Ly[i], rc.display.DrawOffset.Y)
	}
}

// offsetPSX4 moves a quad into VRAM space for the software mirror.
func (rc *RenderContext) offsetPSX4(p *DecodedPrimitive) {
	for i := 0; i < 4; i++ {
		p.Lx[i] = add16(p.Lx[i], rc.display.DrawOffset.X)
		p.Ly[i] = add16(p.Ly[i], rc.display.DrawOffset.Y)
	}
}

// offsetPSXLine expands a line into a VRAM space quad.
func (rc *RenderContext) offsetPSXLine(p *DecodedPrimitive) {
	off := rc.display.DrawOffset
	x0 := float32(add16(p.Lx[0], off.X+1))
	x1 := float32(add16(p.Lx[1], off.X+1))
	y0 := float32(add16(p.Ly[0], off.Y+1))
	y1 := float32(add16(p.Ly[1], off.Y+1))
	px, py := lineWidening(int(x1-x0), int(y1-y0))

	p.Lx[0], p.Ly[0] = int16(x0-px), int16(y0-py)
	p.Lx[3], p.Ly[3] = int16(x0+py), int16(y0-px)
	p.Lx[1], p.Ly[1] = int16(x1-py), int16(y1+px)
	p.Lx[2], p.Ly[2] = int16(x1+px), int16(y1+py)
}

// ClipVertexListScreen reports whether a block fill touches the current or
// (outside interlace) the previous display.
func (rc *RenderContext) ClipVertexListScreen(p *DecodedPrimitive) bool {
	if inDisplay(&rc.display, p) {
		return true
	}
	if rc.display.InterlacedTest {
		return false
	}
	return inDisplay(&rc.prevDisplay, p)
}

func inDisplay(d *PSXDisplay, p *DecodedPrimitive) bool {
	if int(p.Lx[0]) >= d.DisplayEnd.X || int(p.Ly[0]) >= d.DisplayEnd.Y {
		return false
	}
	if int(p.Lx[2]) < d.DisplayPosition.X || int(p.Ly[2]) < d.DisplayPosition.Y {
		return false
	}
	return true
}

type screenBox struct {
	xmin, xmax, ymin, ymax int
}

func boxOf(p *DecodedPrimitive, n int) screenBox {
	b := screenBox{xmin: int(p.Lx[0]), xmax: int(p.Lx[0]), ymin: int(p.Ly[0]), ymax: int(p.Ly[0])}
	for i := 1; i < n; i++ {
		b.xmin = min(b.xmin, int(p.Lx[i]))
		b.xmax = max(b.xmax, int(p.Lx[i]))
		b.ymin = min(b.ymin, int(p.Ly[i]))
		b.ymax = max(b.ymax, int(p.Ly[i]))
	}
	return b
}

// inFrontCompletely reports a box that lies entirely in the current display.
func (b screenBox) inFrontCompletely(d *PSXDisplay) bool {
	return b.xmin >= d.DisplayPosition.X && b.ymin >= d.DisplayPosition.Y &&
		b.xmax <= d.DisplayEnd.X && b.ymax <= d.DisplayEnd.Y
}

// touches reports a box with at least one point in the display.
func (b screenBox) touches(d *PSXDisplay) bool {
	return b.xmax >= d.DisplayPosition.X && b.ymax >= d.DisplayPosition.Y &&
		b.xmin < d.DisplayEnd.X && b.ymin < d.DisplayEnd.Y
}

// drawOffscreen decides whether a primitive in VRAM space must also be
// mirrored into VRAM. It may redirect the hardware vertices to the front
// display when the primitive is drawn there.
func (rc *RenderContext) drawOffscreen(p *DecodedPrimitive, n int) bool {
	b := boxOf(p, n)
	if b.xmax < rc.drawX || b.xmin > rc.drawW || b.ymax < rc.drawY || b.ymin > rc.drawH {
		return false
	}
	if rc.display.Disabled {
		return true
	}
	if rc.cfg.OffscreenDrawing == 1 {
		return rc.cfg.FullVRAM
	}

	if n == 4 && rc.cfg.Fixes&FIX_FF7_CURSOR != 0 && rc.cfg.OffscreenDrawing == 4 {
		if rc.prevDisplay.DisplayPosition == rc.display.DisplayPosition &&
			rc.prevDisplay.DisplayEnd == rc.display.DisplayEnd {
			rc.renderFrontBuffer = true
			return false
		}
	}

	sW, sH := rc.drawW-1, rc.drawH-1
	b.xmin = min(sW, max(b.xmin, rc.drawX))
	b.xmax = max(rc.drawX, min(b.xmax, sW))
	b.ymin = min(sH, max(b.ymin, rc.drawY))
	b.ymax = max(rc.drawY, min(b.ymax, sH))

	if b.touches(&rc.prevDisplay) {
		return rc.cfg.FullVRAM
	}

	var front bool
	if rc.cfg.OffscreenDrawing == 2 {
		front = b.inFrontCompletely(&rc.display)
	} else {
		front = b.touches(&rc.display)
	}
	if !front {
		return true
	}
	if rc.display.InterlacedTest {
		return rc.cfg.FullVRAM
	}

	pos := rc.display.DisplayPosition
	for i := 0; i < n; i++ {
		p.Vertex[i].X = float32(int(p.Lx[i]) - pos.X + rc.prevDisplay.Range.X0)
		p.Vertex[i].Y = float32(int(p.Ly[i]) - pos.Y + rc.prevDisplay.Range.Y0)
	}
	if rc.cfg.OffscreenDrawing == 4 && (n == 3 || rc.cfg.Fixes&FIX_FF7_CURSOR == 0) {
		rc.renderFrontBuffer = true
	}
	return rc.cfg.FullVRAM
}

func (rc *RenderContext) bDrawOffscreen4(p *DecodedPrimitive) bool {
	return rc.drawOffscreen(p, 4)
}

func (rc *RenderContext) bDrawOffscreen3(p *DecodedPrimitive) bool {
	return rc.drawOffscreen(p, 3)
}

// clampToDisplay clips the rect (x, y, w, h) to a display window and
// reports whether anything is left.
func clampToDisplay(d *PSXDisplay, x, y, w, h int) (PSXRect, bool) {
	clampAxis := func(v, lo, hi int) int {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	r := PSXRect{
		X0: clampAxis(x, d.DisplayPosition.X, d.DisplayEnd.X),
		X1: clampAxis(x+w, d.DisplayPosition.X, d.DisplayEnd.X),
		Y0: clampAxis(y, d.DisplayPosition.Y, d.DisplayEnd.Y),
		Y1: clampAxis(y+h, d.DisplayPosition.Y, d.DisplayEnd.Y),
	}
	return r, r.X0 != r.X1 && r.Y0 != r.Y1
}

// CheckAgainstScreen tests a VRAM rect against the previous display and
// leaves the clipped rect in checkArea. The pending upload area is not
// touched.
func (rc *RenderContext) CheckAgainstScreen(x, y, w, h int) bool {
	r, ok := clampToDisplay(&rc.prevDisplay, int(int16(x)), int(int16(y)), int(int16(w)), int(int16(h)))
	rc.checkArea = r
	return ok
}

// CheckAgainstFrontScreen is CheckAgainstScreen for the current display.
func (rc *RenderContext) CheckAgainstFrontScreen(x, y, w, h int) bool {
	r, ok := clampToDisplay(&rc.display, int(int16(x)), int(int16(y)), int(int16(w)), int(int16(h)))
	rc.checkArea = r
	return ok
}

// IsCompleteInsideNextScreen reports a VRAM rect covering the whole current
// display (with one pixel of slack).
func (rc *RenderContext) IsCompleteInsideNextScreen(x, y, xoff, yoff int16) bool {
	d := &rc.display
	if int(x) > d.DisplayPosition.X+1 {
		return false
	}
	if int(x+xoff) < d.DisplayEnd.X-1 {
		return false
	}
	yoff += y
	if int(y) >= d.DisplayPosition.Y && int(y) <= d.DisplayEnd.Y {
		if int(yoff) >= d.DisplayPosition.Y && int(yoff) <= d.DisplayEnd.Y {
			return true
		}
	}
	if int(y) > d.DisplayPosition.Y+1 {
		return false
	}
	if int(yoff) < d.DisplayEnd.Y-1 {
		return false
	}
	return true
}

// IsPrimCompleteInsideNextScreen is the primitive space variant; xoff and
// yoff are absolute end coordinates.
func (rc *RenderContext) IsPrimCompleteInsideNextScreen(x, y, xoff, yoff int16) bool {
	d := &rc.display
	if int(add16(x, d.DrawOffset.X)) > d.DisplayPosition.X+1 {
		return false
	}
	if int(add16(y, d.DrawOffset.Y)) > d.DisplayPosition.Y+1 {
		return false
	}
	if int(add16(xoff, d.DrawOffset.X)) < d.DisplayEnd.X-1 {
		return false
	}
	if int(add16(yoff, d.DrawOffset.Y)) < d.DisplayEnd.Y-1 {
		return false
	}
	return true
}

// ClampToPSXScreen clamps two corner points into VRAM.
func (rc *RenderContext) ClampToPSXScreen(x0, y0, x1, y1 *int) {
	*x0 = max(0, min(*x0, PSX_VRAM_WIDTH-1))
	*x1 = max(0, min(*x1, PSX_VRAM_WIDTH-1))
	*y0 = max(0, min(*y0, rc.heightMask))
	*y1 = max(0, min(*y1, rc.heightMask))
}

// ClampToPSXScreenOffset clamps an origin and size pair into VRAM.
func (rc *RenderContext) ClampToPSXScreenOffset(x0, y0, x1, y1 *int) {
	if *x0 < 0 {
		*x1 += *x0
		*x0 = 0
	} else if *x0 > PSX_VRAM_WIDTH-1 {
		*x0 = PSX_VRAM_WIDTH - 1
		*x1 = 0
	}
	if *y0 < 0 {
		*y1 += *y0
		*y0 = 0
	} else if *y0 > rc.heightMask {
		*y0 = rc.heightMask
		*y1 = 0
	}
	if *x1 < 0 {
		*x1 = 0
	}
	if *x1+*x0 > PSX_VRAM_WIDTH {
		*x1 = PSX_VRAM_WIDTH - *x0
	}
	if *y1 < 0 {
		*y1 = 0
	}
	if *y1+*y0 > rc.vramHeight {
		*y1 = rc.vramHeight - *y0
	}
}
