// gpu_vram.go - PlayStation GPU VRAM Transfer Engine

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
gpu_vram.go - VRAM Transfer Engine

Image upload (A0), image store (C0), VRAM to VRAM moves (80) and block fills
(02), plus the dirty rectangle bookkeeping that decides when VRAM contents
must be pushed back to the backend as a textured "movie" quad.

Upload area accumulator:
  uploadArea grows as the union of every write that lands in a display
  window while needUploadAfter is set. It is only reset by the upload that
  consumes it, never shrunk.

Move semantics:
  Moves that cross the right or bottom edge first run a wrap-aware copy of
  the whole rectangle, then repeat the clipped part as a plain forward copy.
  Neither pass is overlap safe; content relies on the resulting smear.
*/

package main

// primLoadImage starts a host to VRAM transfer. The data words arrive
// through the streaming port.
func (rc *RenderContext) primLoadImage(p *DecodedPrimitive) {
	w := &rc.vramWrite
	w.X = int(p.s16(2)) & PSX_VRAM_X_MASK
	w.Y = int(p.s16(3)) & rc.heightMask
	w.Width = int(p.s16(4))
	w.Height = int(p.s16(5))
	w.CurX, w.CurY = 0, 0
	w.RowsRemaining = w.Width
	w.ColsRemaining = w.Height

	rc.dataWriteMode = DR_VRAMTRANSFER
	rc.needWriteUpload = true
}

// primStoreImage starts a VRAM to host transfer.
func (rc *RenderContext) primStoreImage(p *DecodedPrimitive) {
	r := &rc.vramRead
	r.X = int(p.s16(2)) & PSX_VRAM_X_MASK
	r.Y = int(p.s16(3)) & rc.heightMask
	r.Width = int(p.s16(4))
	r.Height = int(p.s16(5))
	r.CurX, r.CurY = 0, 0
	r.RowsRemaining = r.Width
	r.ColsRemaining = r.Height

	rc.dataReadMode = DR_VRAMTRANSFER
	rc.statusReg |= STATUS_READY_VRAM
}

func unionRect(a, b PSXRect) PSXRect {
	return PSXRect{
		X0: min(a.X0, b.X0),
		X1: max(a.X1, b.X1),
		Y0: min(a.Y0, b.Y0),
		Y1: max(a.Y1, b.Y1),
	}
}

// prepareRGB24Upload records a write into a 24-bit display, in display
// relative coordinates.
func (rc *RenderContext) prepareRGB24Upload() {
	w := &rc.vramWrite
	w.X = (w.X * 2) / 3
	w.Width = (w.Width * 2) / 3

	var origin PSXPoint
	switch {
	case !rc.display.InterlacedTest && rc.CheckAgainstScreen(w.X, w.Y, w.Width, w.Height):
		origin = rc.prevDisplay.DisplayPosition
	case rc.CheckAgainstFrontScreen(w.X, w.Y, w.Width, w.Height):
		origin = rc.display.DisplayPosition
	default:
		return
	}
	r := rc.checkArea
	r.X0 -= origin.X
	r.X1 -= origin.X
	r.Y0 -= origin.Y
	r.Y1 -= origin.Y

	if rc.renderFrontBuffer {
		rc.updateFrontDisplay()
	}
	if !rc.needRGB24Update {
		rc.uploadAreaRGB24 = r
		rc.needRGB24Update = true
		return
	}
	rc.uploadAreaRGB24 = unionRect(rc.uploadAreaRGB24, r)
}

// CheckWriteUpdate runs once an image upload has finished.
func (rc *RenderContext) CheckWriteUpdate() {
	w := &rc.vramWrite
	ix, iy := 0, 0
	if w.Width != 0 {
		ix = 1
	}
	if w.Height != 0 {
		iy = 1
	}
	rc.texCache.InvalidateArea(w.X, w.Y, w.Width-ix, w.Height-iy)

	if rc.display.Interlaced && rc.cfg.OffscreenDrawing == 0 {
		return
	}
	if rc.display.RGB24 != 0 {
		rc.prepareRGB24Upload()
		return
	}

	if !rc.display.InterlacedTest && rc.CheckAgainstScreen(w.X, w.Y, w.Width, w.Height) {
		if rc.cfg.Fixes&FIX_NO_SCREEN_UPLOAD != 0 {
			return
		}
		if rc.renderFrontBuffer {
			rc.updateFrontDisplay()
		}
		rc.uploadRect(rc.checkArea, 0)
		rc.needUploadTest = true
		return
	}

	if rc.cfg.OffscreenDrawing == 0 || !rc.CheckAgainstFrontScreen(w.X, w.Y, w.Width, w.Height) {
		return
	}

	if rc.display.InterlacedTest {
		if rc.prevDisplay.InterlacedNew {
			rc.prevDisplay.InterlacedNew = false
			rc.needInterlaceUpd = true
			d := &rc.display
			rc.uploadAreaIL = PSXRect{
				X0: d.DisplayPosition.X,
				Y0: d.DisplayPosition.Y,
				X1: min(d.DisplayPosition.X+d.DisplayMode.X, PSX_VRAM_WIDTH-1),
				Y1: min(d.DisplayPosition.Y+d.DisplayMode.Y, PSX_VRAM_HEIGHT_STD-1),
			}
		}
		if !rc.needInterlaceUpd {
			rc.uploadAreaIL = rc.checkArea
			rc.needInterlaceUpd = true
		} else {
			rc.uploadAreaIL = unionRect(rc.uploadAreaIL, rc.checkArea)
		}
		return
	}

	rc.accumulateUpload(PSXRect{X0: w.X, X1: w.X + w.Width, Y0: w.Y, Y1: w.Y + w.Height})

	if rc.cfg.Fixes&FIX_LARGE_FRONT_UPLOAD != 0 {
		a := rc.uploadArea
		if a.X1-a.X0 >= rc.display.DisplayMode.X-QUIRK_LARGE_UPLOAD_SLOP &&
			a.Y1-a.Y0 >= rc.display.DisplayMode.Y-QUIRK_LARGE_UPLOAD_SLOP {
			rc.UploadScreen(-1)
			rc.updateFrontDisplay()
		}
	}
}

// accumulateUpload grows the pending upload area by r.
func (rc *RenderContext) accumulateUpload(r PSXRect) {
	if !rc.needUploadAfter {
		rc.needUploadAfter = true
		rc.uploadArea = r
		return
	}
	rc.uploadArea = unionRect(rc.uploadArea, r)
}

// uploadRect uploads r at once and leaves the pending upload area as it was.
func (rc *RenderContext) uploadRect(r PSXRect, position int) {
	pending := rc.uploadArea
	rc.uploadArea = r
	rc.UploadScreen(position)
	rc.uploadArea = pending
}

// primBlkFill fills a rectangle, ignoring draw area, offset and mask.
func (rc *RenderContext) primBlkFill(p *DecodedPrimitive) {
	col := p.word(0)
	rc.drawnSomething = 1

	sx := int(p.s16(2))
	sy := int(p.s16(3))
	sw := int(p.s16(4)) & 0x3ff
	sh := int(p.s16(5)) & rc.heightMask

	sw = (sw + 15) &^ 15
	// one short of full is full; the fields cannot express the real value
	if sh == rc.heightMask {
		sh = rc.vramHeight
	}
	if sw == 1023 {
		sw = 1024
	}

	p.Ly[0], p.Ly[1] = int16(sy), int16(sy)
	p.Ly[2], p.Ly[3] = int16(sy+sh), int16(sy+sh)
	p.Lx[0], p.Lx[3] = int16(sx), int16(sx)
	p.Lx[1], p.Lx[2] = int16(sx+sw), int16(sx+sw)
	rc.offsetBlk(p)

	if rc.ClipVertexListScreen(p) {
		pd := &rc.prevDisplay
		if rc.display.InterlacedTest {
			pd = &rc.display
		}
		lx0, ly0 := int(p.Lx[0]), int(p.Ly[0])
		lx2, ly2 := int(p.Lx[2]), int(p.Ly[2])

		if lx0 <= pd.DisplayPosition.X+BLOCKFILL_EDGE_SLOP &&
			ly0 <= pd.DisplayPosition.Y+BLOCKFILL_EDGE_SLOP &&
			lx2 >= pd.DisplayEnd.X-BLOCKFILL_EDGE_SLOP &&
			ly2 >= pd.DisplayEnd.Y-BLOCKFILL_EDGE_SLOP {
			rc.fullScreenFill(p, pd, col)
		} else {
			rc.drawTextured, rc.drawSmoothShaded = false, false
			rc.SetRenderState(ATTR_NON_SHADED)
			rc.SetRenderMode(p, ATTR_NON_SHADED, false)
			p.Vertex[0].setColor(col, 0xff)
			rc.setCol(&p.Vertex[0])
			rc.renderer.DisableScissor()
			rc.drawRect(&p.Vertex[0], &p.Vertex[1], &p.Vertex[2], &p.Vertex[3])
			rc.renderer.EnableScissor()
		}
	}

	if rc.IsCompleteInsideNextScreen(int16(sx), int16(sy), int16(sw), int16(sh)) {
		rc.clearOnSwapColor = col & 0x00ffffff
		rc.clearOnSwap = true
	}

	if rc.cfg.OffscreenDrawing == 0 {
		return
	}
	rc.ClampToPSXScreenOffset(&sx, &sy, &sw, &sh)
	if sw == 0 || sh == 0 {
		return
	}
	rc.texCache.InvalidateArea(sx, sy, sw-1, sh-1)
	rc.FillSoftwareArea(sx, sy, sx+sw, sy+sh, BGR24to16(col))
	rc.markFillUpload(sx, sy, sw, sh)
}

// fullScreenFill clears the whole backend surface and paints the black
// border bars a partial height fill leaves above and below it.
func (rc *RenderContext) fullScreenFill(p *DecodedPrimitive, pd *PSXDisplay, col uint32) {
	rc.renderer.DisableScissor()
	rc.renderer.ClearColor(uint8(col), uint8(col>>8), uint8(col>>16), 255)
	rc.renderer.Clear(CLEAR_COLOR | CLEAR_DEPTH)
	rc.glZ = 0

	ly0, ly2 := float32(p.Ly[0]), float32(p.Ly[2])
	top := int(p.Ly[0]) > pd.DisplayPosition.Y
	bottom := int(p.Ly[2]) < pd.DisplayEnd.Y
	if col != QUIRK_FILL_NO_BORDER && (top || bottom) {
		rc.drawTextured, rc.drawSmoothShaded = false, false
		rc.SetRenderState(ATTR_NON_SHADED)
		rc.SetRenderMode(p, ATTR_NON_SHADED, false)
		p.Vertex[0].setColor(0, 0xff)
		rc.setCol(&p.Vertex[0])

		v := &p.Vertex
		width := float32(pd.DisplayEnd.X - pd.DisplayPosition.X)
		if top {
			v[0].X, v[0].Y = 0, 0
			v[1].X, v[1].Y = width, 0
			v[2].X, v[2].Y = width, ly0-float32(pd.DisplayPosition.Y)
			v[3].X, v[3].Y = 0, v[2].Y
			rc.drawRect(&v[0], &v[1], &v[2], &v[3])
		}
		if bottom {
			v[0].X = 0
			v[0].Y = float32(pd.DisplayEnd.Y-pd.DisplayPosition.Y) - (float32(pd.DisplayEnd.Y) - ly2)
			v[1].X, v[1].Y = width, v[0].Y
			v[2].X, v[2].Y = width, float32(pd.DisplayEnd.Y)
			v[3].X, v[3].Y = 0, v[2].Y
			rc.drawRect(&v[0], &v[1], &v[2], &v[3])
		}
	}
	rc.renderer.EnableScissor()
}

// markFillUpload schedules the filled part of a display for upload so the
// backend picks up what the software mirror just wrote.
func (rc *RenderContext) markFillUpload(x, y, w, h int) {
	r, ok := clampToDisplay(&rc.prevDisplay, x, y, w, h)
	if !ok {
		if _, front := clampToDisplay(&rc.display, x, y, w, h); !front {
			return
		}
		r = PSXRect{X0: x, X1: x + w, Y0: y, Y1: y + h}
	}
	rc.accumulateUpload(r)
}

// moveImageWrapped copies a rectangle pixel by pixel with both source and
// destination wrapping at the VRAM edges, then invalidates every piece of
// the wrapped destination.
func (rc *RenderContext) moveImageWrapped(x0, y0, x1, y1, sx, sy int) {
	for j := 0; j < sy; j++ {
		for i := 0; i < sx; i++ {
			rc.setVRAM(x1+i, y1+j, rc.vramAt(x0+i, y0+j))
		}
	}
	if rc.display.RGB24 != 0 {
		return
	}

	xe, ye := x1+sx, y1+sy
	h := rc.vramHeight
	if ye > h && xe > PSX_VRAM_WIDTH {
		rc.texCache.InvalidateArea(0, 0, (xe&PSX_VRAM_X_MASK)-1, (ye&rc.heightMask)-1)
	}
	if xe > PSX_VRAM_WIDTH {
		rc.texCache.InvalidateArea(0, y1, (xe&PSX_VRAM_X_MASK)-1, min(ye, h)-y1-1)
	}
	if ye > h {
		rc.texCache.InvalidateArea(x1, 0, min(xe, PSX_VRAM_WIDTH)-x1-1, (ye&rc.heightMask)-1)
	}
	rc.texCache.InvalidateArea(x1, y1, min(xe, PSX_VRAM_WIDTH)-x1-1, min(ye, h)-y1-1)
}

func inWindow(d *PSXDisplay, x, y int) bool {
	return x >= d.DisplayPosition.X && x < d.DisplayEnd.X &&
		y >= d.DisplayPosition.Y && y < d.DisplayEnd.Y
}

// primMoveImage copies a VRAM rectangle.
func (rc *RenderContext) primMoveImage(p *DecodedPrimitive) {
	x0 := int(p.s16(2)) & PSX_VRAM_X_MASK
	y0 := int(p.s16(3)) & rc.heightMask
	x1 := int(p.s16(4)) & PSX_VRAM_X_MASK
	y1 := int(p.s16(5)) & rc.heightMask
	sx := int(p.s16(6))
	sy := int(p.s16(7))

	if x0 == x1 && y0 == y1 {
		return
	}
	if sx <= 0 || sy <= 0 {
		return
	}
	if rc.vramHeight == PSX_VRAM_HEIGHT_2MB && sy > PSX_VRAM_HEIGHT_2MB {
		return
	}

	h := rc.vramHeight
	if y0+sy > h || x0+sx > PSX_VRAM_WIDTH || y1+sy > h || x1+sx > PSX_VRAM_WIDTH {
		rc.moveImageWrapped(x0, y0, x1, y1, sx, sy)
		if y0+sy > h {
			sy = h - y0
		}
		if x0+sx > PSX_VRAM_WIDTH {
			sx = PSX_VRAM_WIDTH - x0
		}
		if y1+sy > h {
			sy = h - y1
		}
		if x1+sx > PSX_VRAM_WIDTH {
			sx = PSX_VRAM_WIDTH - x1
		}
	}
	rc.copyRect(x0, y0, x1, y1, sx, sy)

	if rc.display.RGB24 != 0 {
		return
	}
	rc.texCache.InvalidateArea(x1, y1, sx-1, sy-1)

	if rc.CheckAgainstScreen(x1, y1, sx, sy) {
		pd := &rc.prevDisplay
		if inWindow(pd, x1, y1) {
			ex, ey := x1+sx, y1+sy
			if ex >= pd.DisplayPosition.X && ex <= pd.DisplayEnd.X &&
				ey >= pd.DisplayPosition.Y && ey <= pd.DisplayEnd.Y {
				if !inWindow(&rc.display, x0, y0) {
					if rc.renderFrontBuffer {
						rc.updateFrontDisplay()
					}
					rc.uploadRect(rc.checkArea, 0)
				} else {
					rc.fakeFrontBuffer = true
				}
			}
		}
		rc.needUploadTest = true
		return
	}

	if rc.cfg.OffscreenDrawing == 0 || !rc.CheckAgainstFrontScreen(x1, y1, sx, sy) {
		return
	}
	if !rc.display.InterlacedTest && (inWindow(&rc.prevDisplay, x0, y0) || inWindow(&rc.display, x0, y0)) {
		return
	}
	rc.needUploadTest = true
	rc.accumulateUpload(PSXRect{X0: x0, X1: x0 + sx, Y0: y0, Y1: y0 + sy})
}

// copyRect is the direct row copy of a move. Even widths move pixel pairs,
// reading both pixels of a pair before writing either, exactly like a
// 32-bit copy loop would.
func (rc *RenderContext) copyRect(x0, y0, x1, y1, sx, sy int) {
	for j := 0; j < sy; j++ {
		src := (y0+j)*PSX_VRAM_WIDTH + x0
		dst := (y1+j)*PSX_VRAM_WIDTH + x1
		if sx&1 != 0 {
			for i := 0; i < sx; i++ {
				rc.vram[dst+i] = rc.vram[src+i]
			}
			continue
		}
		for i := 0; i < sx; i += 2 {
			a, b := rc.vram[src+i], rc.vram[src+i+1]
			rc.vram[dst+i], rc.vram[dst+i+1] = a, b
		}
	}
}

// PrepareFullScreenUpload selects a whole display window as the upload
// area. position -1 is the 24-bit path, 1 the current display and 0 the
// previous one.
func (rc *RenderContext) PrepareFullScreenUpload(position int) {
	var d *PSXDisplay
	switch {
	case position == -1 && rc.display.Interlaced, position > 0:
		d = &rc.display
	default:
		d = &rc.prevDisplay
	}
	rc.uploadArea = PSXRect{X0: d.DisplayPosition.X, X1: d.DisplayEnd.X, Y0: d.DisplayPosition.Y, Y1: d.DisplayEnd.Y}

	if position == -1 && rc.needRGB24Update && !rc.clearOnSwap {
		if rc.display.Interlaced && rc.prevDisplay.RGB24 < 2 {
			// interlaced menus need two complete frames
			rc.prevDisplay.RGB24++
		} else {
			rc.uploadArea.Y1 = min(rc.uploadArea.Y0+rc.uploadAreaRGB24.Y1, rc.uploadArea.Y1)
			rc.uploadArea.Y0 += rc.uploadAreaRGB24.Y0
		}
	}

	a := &rc.uploadArea
	a.X0 = max(0, min(a.X0, PSX_VRAM_WIDTH-1))
	a.X1 = max(0, min(a.X1, PSX_VRAM_WIDTH))
	a.Y0 = max(0, min(a.Y0, rc.heightMask))
	a.Y1 = max(0, min(a.Y1, rc.vramHeight))

	if rc.display.RGB24 != 0 {
		rc.texCache.InvalidateArea(a.X0, a.Y0, a.X1-a.X0, a.Y1-a.Y0)
	}
}

// UploadScreen draws the upload area of VRAM onto the backend surface as a
// textured quad sampled from the movie texture.
func (rc *RenderContext) UploadScreen(position int) {
	a := &rc.uploadArea
	a.X0 = min(a.X0, PSX_VRAM_WIDTH-1)
	a.X1 = min(a.X1, PSX_VRAM_WIDTH)
	a.Y0 = min(a.Y0, rc.heightMask)
	a.Y1 = min(a.Y1, rc.vramHeight)
	if a.X0 == a.X1 || a.Y0 == a.Y1 {
		return
	}
	if rc.display.Disabled && rc.cfg.OffscreenDrawing < 4 {
		return
	}

	rc.drawnSomething = 2
	if rc.skipFrame {
		return
	}

	rc.usingMovie = true
	rc.drawTextured, rc.drawSmoothShaded = true, false

	var p DecodedPrimitive
	if rc.cfg.GLBlend {
		p.Vertex[0].Col = 0xff7f7f7f
	} else {
		p.Vertex[0].Col = 0xffffffff
	}
	rc.setCol(&p.Vertex[0])
	rc.setDisplaySettings(false)

	rc.movieArea = *a
	p.Lx[0], p.Lx[3] = int16(a.X0), int16(a.X0)
	p.Ly[0], p.Ly[1] = int16(a.Y0), int16(a.Y0)
	p.Lx[1], p.Lx[2] = int16(a.X1), int16(a.X1)
	p.Ly[2], p.Ly[3] = int16(a.Y1), int16(a.Y1)

	rc.SetRenderState(ATTR_NON_SHADED)
	rc.SetRenderMode(&p, ATTR_NON_SHADED, false)
	rc.offsetScreenUpload(&p, position)

	const span = float32(PSX_VRAM_WIDTH)
	m := rc.movieArea
	p.Vertex[0].S, p.Vertex[0].T = float32(m.X0)/span, float32(m.Y0)/span
	p.Vertex[1].S, p.Vertex[1].T = float32(m.X1)/span, float32(m.Y0)/span
	p.Vertex[2].S, p.Vertex[2].T = float32(m.X1)/span, float32(m.Y1)/span
	p.Vertex[3].S, p.Vertex[3].T = float32(m.X0)/span, float32(m.Y1)/span
	rc.drawFmvQuad(&p.Vertex[0], &p.Vertex[1], &p.Vertex[2], &p.Vertex[3])

	rc.usingMovie = false
	rc.displayNotSet = true
}
