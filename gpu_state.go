// gpu_state.go - PlayStation GPU Render-State Machine

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
gpu_state.go - Render-State Machine

Translates attribute words and the E1-E6 state commands into renderer state.
Nothing here remembers a "mode"; each primitive re-derives blend, texture and
depth settings from its attribute word plus the persistent registers.

Blend presets, indexed by the 2-bit ABR field:
  0: 0.5*B + 0.5*F  (average)
  1: B + F          (additive)
  2: B - F          (subtractive)
  3: B + 0.25*F     (quarter additive)
*/

package main

// SemiTransParams is one blend preset.
type SemiTransParams struct {
	Src   BlendFactor
	Dst   BlendFactor
	Alpha uint8
	Op    BlendOp
}

var transSets = [4]SemiTransParams{
	{BLEND_SRCALPHA, BLEND_INVSRCALPHA, 127, BLENDOP_ADD},
	{BLEND_ONE, BLEND_ONE, 255, BLENDOP_ADD},
	{BLEND_ONE, BLEND_ONE, 255, BLENDOP_REVSUBTRACT},
	{BLEND_SRCALPHA, BLEND_ONE, 64, BLENDOP_ADD},
}

// Two pass textured blending, [abr][pass].
var multiTexTransSets = [4][2]SemiTransParams{
	{{BLEND_ONE, BLEND_SRCALPHA, 127, BLENDOP_ADD}, {BLEND_SRCALPHA, BLEND_ONE, 127, BLENDOP_ADD}},
	{{BLEND_ONE, BLEND_SRCALPHA, 255, BLENDOP_ADD}, {BLEND_SRCALPHA, BLEND_ONE, 255, BLENDOP_ADD}},
	{{BLEND_ZERO, BLEND_INVSRCCOLOR, 255, BLENDOP_ADD}, {BLEND_ZERO, BLEND_INVSRCCOLOR, 255, BLENDOP_ADD}},
	{{BLEND_SRCALPHA, BLEND_ONE, 127, BLENDOP_ADD}, {BLEND_INVSRCALPHA, BLEND_ONE, 255, BLENDOP_ADD}},
}

// Two pass untextured blending.
var multiColTransSets = [4]SemiTransParams{
	{BLEND_INVSRCALPHA, BLEND_SRCALPHA, 127, BLENDOP_ADD},
	{BLEND_ONE, BLEND_ONE, 255, BLENDOP_ADD},
	{BLEND_ZERO, BLEND_INVSRCCOLOR, 255, BLENDOP_ADD},
	{BLEND_SRCALPHA, BLEND_ONE, 127, BLENDOP_ADD},
}

// SetSemiTrans applies the single pass blend preset for the current ABR.
func (rc *RenderContext) SetSemiTrans() {
	if !rc.drawSemiTrans {
		rc.renderer.DisableBlend()
		rc.gloAlpha, rc.gloColAlpha = 255, 255
		return
	}
	ts := transSets[rc.globalTextABR]
	rc.gloAlpha, rc.gloColAlpha = ts.Alpha, ts.Alpha
	rc.renderer.EnableBlend()
	rc.renderer.SetBlendFunc(ts.Src, ts.Dst)
	rc.renderer.SetBlendOp(ts.Op)
}

// SetSemiTransMulti applies the factors of one pass of two pass blending.
func (rc *RenderContext) SetSemiTransMulti(pass int) {
	rc.gloAlpha, rc.gloColAlpha = 255, 255
	rc.renderer.SetBlendOp(BLENDOP_ADD)

	var src, dst BlendFactor
	switch {
	case rc.drawSemiTrans && rc.drawTextured:
		ts := multiTexTransSets[rc.globalTextABR][pass]
		src, dst = ts.Src, ts.Dst
		rc.gloAlpha = ts.Alpha
	case rc.drawSemiTrans:
		ts := multiColTransSets[rc.globalTextABR]
		src, dst = ts.Src, ts.Dst
		rc.gloColAlpha = ts.Alpha
	case pass == 0:
		src, dst = BLEND_ONE, BLEND_ZERO
	default:
		// second pass adds the source colour again
		src, dst = BLEND_ONE, BLEND_ONE
	}
	rc.renderer.EnableBlend()
	rc.renderer.SetBlendFunc(src, dst)
}

// SetRenderState derives the non-shaded and semi transparent flags.
func (rc *RenderContext) SetRenderState(attr uint32) {
	rc.drawNonShaded = attr&ATTR_NON_SHADED != 0
	rc.drawSemiTrans = attr&ATTR_SEMI_TRANS != 0
}

// SetRenderColor sets the modulation colour used by the software mirror.
func (rc *RenderContext) SetRenderColor(attr uint32) {
	if rc.drawNonShaded {
		rc.mirrorColor = [3]int32{128, 128, 128}
		return
	}
	rc.mirrorColor = [3]int32{int32(attr & 0xff), int32((attr >> 8) & 0xff), int32((attr >> 16) & 0xff)}
}

// SetRenderMode picks the blend mode and texture for a primitive and,
// when setColor is true, the flat vertex colour.
func (rc *RenderContext) SetRenderMode(p *DecodedPrimitive, attr uint32, setColor bool) {
	if rc.cfg.UseMultiPass && rc.drawTextured && !rc.drawNonShaded {
		rc.drawMultiPass = true
		rc.SetSemiTransMulti(0)
	} else {
		rc.drawMultiPass = false
		rc.SetSemiTrans()
	}

	if rc.drawTextured {
		var tex *Texture
		switch {
		case rc.usingTWin:
			tex = rc.texCache.Window(rc.globalTextTP, p.ClutID)
		case rc.usingMovie:
			tex = rc.texCache.Movie()
		default:
			tex = rc.texCache.Page(rc.globalTextTP, p.ClutID)
		}
		rc.boundTex = tex
		rc.renderer.EnableTexture()
		rc.renderer.SetTexture(tex)
	} else {
		rc.renderer.DisableTexture()
	}

	if !setColor {
		return
	}
	if rc.cfg.Fixes&FIX_BLACK_SEMI_COLOR != 0 && attr&0x00ffffff == 0 {
		attr |= QUIRK_BLACK_SEMI_COLOR
	}
	switch {
	case rc.drawNonShaded && rc.cfg.GLBlend:
		p.Vertex[0].Col = 0x7f7f7f
	case rc.drawNonShaded:
		p.Vertex[0].Col = 0xffffff
	case !rc.cfg.UseMultiPass && !rc.cfg.GLBlend:
		p.Vertex[0].Col = DoubleBGR2RGB(attr)
	default:
		p.Vertex[0].Col = attr & 0x00ffffff
	}
	p.Vertex[0].setAlpha(rc.gloAlpha)
	rc.setCol(&p.Vertex[0])
}

// SetOpaqueColor doubles the flat colour for the opaque pass of two pass
// blending, which otherwise only carries half the intensity.
func (rc *RenderContext) SetOpaqueColor(p *DecodedPrimitive, attr uint32) {
	if rc.drawNonShaded {
		return
	}
	p.Vertex[0].setColor(DoubleBGR2RGB(attr), 0xff)
	rc.setCol(&p.Vertex[0])
}

func (rc *RenderContext) setCol(v *Vertex) {
	rc.renderer.PrimColor(v.rgba())
}

// opaqueOn switches to drawing only the texels the texture cache marked
// opaque; opaqueOff restores normal alpha testing.
func (rc *RenderContext) opaqueOn() {
	rc.renderer.SetAlphaFunc(CMP_EQUAL, OPAQUE_ON_REF)
	rc.renderer.DisableBlend()
}

func (rc *RenderContext) opaqueOff() {
	rc.renderer.SetAlphaFunc(CMP_GREATER, OPAQUE_OFF_REF)
	rc.renderer.EnableBlend()
}

// Depth assignment. Mask protected and semi transparent primitives sit on a
// fixed plane; everything else gets the next pseudo depth.

func (rc *RenderContext) setZ(p *DecodedPrimitive, n int, z float32) {
	for i := 0; i < n; i++ {
		p.Vertex[i].Z = z
	}
}

func (rc *RenderContext) nextZ(p *DecodedPrimitive, n int) {
	rc.setZ(p, n, rc.glZ)
	rc.glZ += ZMASK_STEP
}

// setZMaskO assigns depth for the opaque pass.
func (rc *RenderContext) setZMaskO(p *DecodedPrimitive, n int) {
	if rc.cfg.UseMask && rc.drawSemiTrans && rc.setMask == 0 {
		rc.nextZ(p, n)
	}
}

// setZMask assigns depth for textured polygons.
func (rc *RenderContext) setZMask(p *DecodedPrimitive, n int) {
	if !rc.cfg.UseMask {
		return
	}
	if rc.setMask != 0 || rc.drawSemiTrans {
		rc.setZ(p, n, ZMASK_PROTECTED)
		return
	}
	rc.nextZ(p, n)
}

// setZMaskNT assigns depth for untextured primitives.
func (rc *RenderContext) setZMaskNT(p *DecodedPrimitive, n int) {
	if !rc.cfg.UseMask {
		return
	}
	if rc.setMask == 1 {
		rc.setZ(p, n, ZMASK_PROTECTED)
		return
	}
	rc.nextZ(p, n)
}

// setZMaskSP assigns depth for sprites.
func (rc *RenderContext) setZMaskSP(p *DecodedPrimitive) {
	if !rc.cfg.UseMask {
		return
	}
	if rc.setMask == 1 || !rc.checkMask {
		rc.setZ(p, 4, ZMASK_PROTECTED)
		return
	}
	rc.nextZ(p, 4)
}

func (rc *RenderContext) SetZMask3O(p *DecodedPrimitive)  { rc.setZMaskO(p, 3) }
func (rc *RenderContext) SetZMask3(p *DecodedPrimitive)   { rc.setZMask(p, 3) }
func (rc *RenderContext) SetZMask3NT(p *DecodedPrimitive) { rc.setZMaskNT(p, 3) }
func (rc *RenderContext) SetZMask4O(p *DecodedPrimitive)  { rc.setZMaskO(p, 4) }
func (rc *RenderContext) SetZMask4(p *DecodedPrimitive)   { rc.setZMask(p, 4) }
func (rc *RenderContext) SetZMask4NT(p *DecodedPrimitive) { rc.setZMaskNT(p, 4) }
func (rc *RenderContext) SetZMask4SP(p *DecodedPrimitive) { rc.setZMaskSP(p) }

// DoubleBGR2RGB doubles each channel of a BGR word, saturating at 0xff.
func DoubleBGR2RGB(bgr uint32) uint32 {
	r := (bgr & 0x000000ff) << 1
	if r&0x00000100 != 0 {
		r = 0x000000ff
	}
	g := (bgr & 0x0000ff00) << 1
	if g&0x00010000 != 0 {
		g = 0x0000ff00
	}
	b := (bgr & 0x00ff0000) << 1
	if b&0x01000000 != 0 {
		b = 0x00ff0000
	}
	return r | g | b
}

// BGR24to16 packs a 24-bit command colour into a VRAM pixel.
func BGR24to16(bgr uint32) uint16 {
	return uint16(((bgr >> 3) & 0x1f) | ((bgr & 0xf80000) >> 9) | ((bgr & 0xf800) >> 6))
}

// UpdateGlobalTP decodes the texture page bits of an attribute half word.
func (rc *RenderContext) UpdateGlobalTP(gdata uint16) {
	rc.globalTextAddrX = int(gdata<<6) & 0x3c0
	rc.globalTextAddrY = int(gdata<<4) & 0x100
	rc.usMirror = uint32(gdata) & 0x3000

	rc.globalTextTP = int(gdata>>7) & 0x3
	if rc.globalTextTP == 3 {
		rc.globalTextTP = TEXMODE_15BIT
	}
	rc.globalTextABR = int(gdata>>5) & 0x3
	rc.globalTexturePage = (rc.globalTextAddrX >> 6) + (rc.globalTextAddrY >> 4)

	rc.statusReg &^= STATUS_TEXPAGE_MASK
	rc.statusReg |= uint32(gdata) & STATUS_TEXPAGE_MASK
}

// cmdTexturePage handles E1.
func (rc *RenderContext) cmdTexturePage(gdata uint32) {
	rc.statusReg &^= STATUS_DRAW_MODE
	rc.statusReg |= gdata & STATUS_DRAW_MODE
	rc.UpdateGlobalTP(uint16(gdata))
	rc.globalTextREST = (gdata & 0x00ffffff) >> 9
}

// twinSize decodes one 5-bit window mask field; the lowest set bit wins.
func twinSize(bits uint32) int {
	for i := 0; i < 5; i++ {
		if bits&(1<<uint(i)) != 0 {
			return 8 << uint(i)
		}
	}
	return 256
}

// twinRound rounds a window size up to a power of two in 2..256.
func twinRound(v int) int {
	s := 2
	for s < v && s < 256 {
		s <<= 1
	}
	return s
}

// cmdTextureWindow handles E2.
func (rc *RenderContext) cmdTextureWindow(gdata uint32) {
	rc.gpuInfo[INFO_TW] = gdata & 0xFFFFF

	tw := &rc.twin
	tw.Position.Y1 = twinSize((gdata >> 5) & 0x1f)
	tw.Position.X1 = twinSize(gdata & 0x1f)

	yAlign := uint32(32 - (tw.Position.Y1 >> 3))
	xAlign := uint32(32 - (tw.Position.X1 >> 3))
	tw.Position.Y0 = int(((gdata >> 15) & yAlign) << 3)
	tw.Position.X0 = int(((gdata >> 10) & xAlign) << 3)

	off := tw.Position.X0 == 0 && tw.Position.Y0 == 0 && tw.Position.X1 == 0 && tw.Position.Y1 == 0
	if off || (tw.Position.X1 == 256 && tw.Position.Y1 == 256) {
		rc.usingTWin = false
		tw.UScaleFactor, tw.VScaleFactor = 1, 1
		return
	}

	rc.usingTWin = true
	tw.OPosition.X1, tw.OPosition.Y1 = tw.Position.X1, tw.Position.Y1
	tw.Position.X1 = twinRound(tw.Position.X1)
	tw.Position.Y1 = twinRound(tw.Position.Y1)
	tw.UScaleFactor = float32(tw.Position.X1) / 256
	tw.VScaleFactor = float32(tw.Position.Y1) / 256
}

// drawAreaY decodes the Y field of E3/E4, which moved on version 2 GPUs.
func (rc *RenderContext) drawAreaY(gdata uint32, slot int) int {
	var y int
	if rc.cfg.GPUVersion == 2 {
		rc.gpuInfo[slot] = gdata & 0x3FFFFF
		y = int(gdata>>12) & 0x3ff
	} else {
		rc.gpuInfo[slot] = gdata & 0xFFFFF
		y = int(gdata>>10) & 0x3ff
	}
	if y >= rc.vramHeight {
		y = rc.heightMask
	}
	return y
}

// cmdDrawAreaStart handles E3.
func (rc *RenderContext) cmdDrawAreaStart(gdata uint32) {
	rc.drawX = min(int(gdata&0x3ff), PSX_VRAM_WIDTH-1)
	rc.drawY = rc.drawAreaY(gdata, INFO_DRAWSTART)

	rc.prevDisplay.DrawArea.X0 = rc.display.DrawArea.X0
	rc.prevDisplay.DrawArea.Y0 = rc.display.DrawArea.Y0
	rc.display.DrawArea.X0 = rc.drawX
	rc.display.DrawArea.Y0 = rc.drawY
}

// cmdDrawAreaEnd handles E4. The area is clamped into VRAM and the screen
// mapping is rebuilt before the next primitive.
func (rc *RenderContext) cmdDrawAreaEnd(gdata uint32) {
	rc.drawW = min(int(gdata&0x3ff), PSX_VRAM_WIDTH-1)
	rc.drawH = rc.drawAreaY(gdata, INFO_DRAWEND)

	da := &rc.display.DrawArea
	da.X1, da.Y1 = rc.drawW, rc.drawH
	rc.ClampToPSXScreen(&da.X0, &da.Y0, &da.X1, &da.Y1)
	rc.displayNotSet = true
}

// cmdDrawOffset handles E5. Offsets are 11-bit signed.
func (rc *RenderContext) cmdDrawOffset(gdata uint32) {
	x := int(gdata & 0x7ff)
	rc.prevDisplay.DrawOffset.X = x

	var y int
	if rc.cfg.GPUVersion == 2 {
		rc.gpuInfo[INFO_DRAWOFF] = gdata & 0x7FFFFF
		y = int(gdata>>12) & 0x7ff
	} else {
		rc.gpuInfo[INFO_DRAWOFF] = gdata & 0x3FFFFF
		y = int(gdata>>11) & 0x7ff
	}
	rc.display.DrawOffset.X = int(signExtend11(int16(x)))
	rc.display.DrawOffset.Y = int(signExtend11(int16(y)))
	rc.updateCumulOffset()
}

// cmdSTP handles E6. Mask checking is emulated through the depth test, so
// the depth function only changes when the check bit flips.
func (rc *RenderContext) cmdSTP(gdata uint32) {
	rc.statusReg &^= STATUS_MASK_BITS
	rc.statusReg |= (gdata & 0x03) << 11

	if !rc.cfg.UseMask {
		return
	}
	if gdata&1 != 0 {
		rc.sSetMask, rc.lSetMask, rc.setMask = 0x8000, 0x80008000, 1
	} else {
		rc.sSetMask, rc.lSetMask, rc.setMask = 0, 0, 0
	}

	if gdata&2 != 0 {
		if gdata&1 == 0 {
			rc.setMask = 2
		}
		rc.checkMask = true
		if rc.depthFunc == 0 {
			return
		}
		rc.depthFunc = 0
		rc.renderer.DepthFunc(CMP_GREATER)
		return
	}
	rc.checkMask = false
	if rc.depthFunc == 1 {
		return
	}
	rc.renderer.DepthFunc(CMP_ALWAYS)
	rc.depthFunc = 1
}
