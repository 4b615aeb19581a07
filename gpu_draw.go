// gpu_draw.go - PlayStation GPU Primitive Emission

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
gpu_draw.go - Primitive Emission

Thin adapters from a vertex list to renderer begin/vertex/end calls, plus the
texture coordinate assignment shared by the textured handlers. The vertex
order of each helper is fixed: quads are handed to the renderer in strip
order (0, 1, 3, 2 of the argument list) and lines in polygon order.
*/

package main

const (
	emitColor = 1 << iota // per vertex colour
	emitTex               // texture coordinates
)

func (rc *RenderContext) emit(prim PrimType, flags int, vs ...*Vertex) {
	r := rc.renderer
	r.PrimBegin(prim)
	for _, v := range vs {
		if flags&emitColor != 0 {
			r.PrimColor(v.rgba())
		}
		if flags&emitTex != 0 {
			r.PrimTexCoord(v.S, v.T)
		}
		r.PrimVertex(v.X, v.Y, v.Z)
	}
	r.PrimEnd()
}

func (rc *RenderContext) drawFmvQuad(v1, v2, v3, v4 *Vertex) {
	rc.emit(PRIM_RECTLIST, emitTex, v1, v2, v4, v3)
}

func (rc *RenderContext) drawTexturedQuad(v1, v2, v3, v4 *Vertex) {
	rc.emit(PRIM_TRIANGLE_STRIP, emitTex, v1, v2, v4, v3)
}

func (rc *RenderContext) drawTexturedRect(v1, v2, v3, v4 *Vertex) {
	rc.emit(PRIM_RECTLIST, emitTex, v1, v2, v4, v3)
}

func (rc *RenderContext) drawTexturedTri(v1, v2, v3 *Vertex) {
	rc.emit(PRIM_TRIANGLE, emitTex, v1, v2, v3)
}

func (rc *RenderContext) drawTexGouraudTriColor(v1, v2, v3 *Vertex) {
	rc.emit(PRIM_TRIANGLE, emitTex|emitColor, v1, v2, v3)
}

func (rc *RenderContext) drawTexGouraudTriColorQuad(v1, v2, v3, v4 *Vertex) {
	rc.emit(PRIM_TRIANGLE_STRIP, emitTex|emitColor, v1, v2, v4, v3)
}

func (rc *RenderContext) drawTri(v1, v2, v3 *Vertex) {
	rc.emit(PRIM_TRIANGLE, 0, v1, v2, v3)
}

func (rc *RenderContext) drawTri2(v1, v2, v3, v4 *Vertex) {
	rc.emit(PRIM_TRIANGLE_STRIP, 0, v1, v3, v2, v4)
}

func (rc *RenderContext) drawGouraudTriColor(v1, v2, v3 *Vertex) {
	rc.emit(PRIM_TRIANGLE, emitColor, v1, v2, v3)
}

func (rc *RenderContext) drawGouraudTri2Color(v1, v2, v3, v4 *Vertex) {
	rc.emit(PRIM_TRIANGLE_STRIP, emitColor, v1, v3, v2, v4)
}

func (rc *RenderContext) drawFlatLine(v1, v2, v3, v4 *Vertex) {
	rc.setCol(v1)
	rc.emit(PRIM_QUAD, 0, v1, v2, v3, v4)
}

func (rc *RenderContext) drawGouraudLine(v1, v2, v3, v4 *Vertex) {
	rc.emit(PRIM_QUAD, emitColor, v1, v2, v3, v4)
}

func (rc *RenderContext) drawRect(v1, v2, v3, v4 *Vertex) {
	rc.emit(PRIM_RECTLIST, 0, v1, v2, v3, v4)
}

// Texture coordinates are texel positions inside the bound texture. Window
// textures are only as large as the window, so their coordinates are divided
// by the window scale and wrap.

func (rc *RenderContext) texCoord(u, v float32) (float32, float32) {
	if rc.usingTWin {
		return u / rc.twin.UScaleFactor, v / rc.twin.VScaleFactor
	}
	return u, v
}

func (rc *RenderContext) assignTexture3(p *DecodedPrimitive) {
	for i := 0; i < 3; i++ {
		p.Vertex[i].S, p.Vertex[i].T = rc.texCoord(float32(p.U[i]), float32(p.V[i]))
	}
}

func (rc *RenderContext) assignTexture4(p *DecodedPrimitive) {
	for i := 0; i < 4; i++ {
		p.Vertex[i].S, p.Vertex[i].T = rc.texCoord(float32(p.U[i]), float32(p.V[i]))
	}
}

// assignTextureSprite maps the sprite's texel rectangle onto its corners and
// applies the texture page mirror bits.
func (rc *RenderContext) assignTextureSprite(p *DecodedPrimitive) {
	s0, t0 := rc.texCoord(float32(p.U[0]), float32(p.V[0]))
	s1, t1 := rc.texCoord(float32(p.SpriteU2), float32(p.SpriteV2))
	v := &p.Vertex
	v[0].S, v[3].S = s0, s0
	v[1].S, v[2].S = s1, s1
	v[0].T, v[1].T = t0, t0
	v[2].T, v[3].T = t1, t1

	if rc.usMirror&0x1000 != 0 {
		v[0].S, v[1].S = v[1].S, v[0].S
		v[2].S, v[3].S = v[3].S, v[2].S
	}
	if rc.usMirror&0x2000 != 0 {
		v[0].T, v[3].T = v[3].T, v[0].T
		v[1].T, v[2].T = v[2].T, v[1].T
	}
}

// setAlpha4 stamps one alpha into all four vertex colours.
func (p *DecodedPrimitive) setAlpha4(a uint8) {
	for i := range p.Vertex {
		p.Vertex[i].setAlpha(a)
	}
}
