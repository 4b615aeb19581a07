// gpu_software.go - Software Renderer for the PlayStation GPU

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
gpu_software.go - Software Renderer

CPU implementation of the Renderer interface. It is the fallback when Vulkan
is unavailable and the backend every test draws through.

Pipeline per fragment:
  scissor -> depth test -> texture sample -> alpha test -> blend -> write

Notes:
- Sampling wraps in both directions; coordinates are texel units scaled by
  the bound texture's CoordScale.
- The alpha test only looks at texel alpha. Untextured fragments always pass,
  their vertex alpha is a blend weight.
- QUAD and RECTLIST groups are split along the diagonal from vertex 0.
- Pixels covered by two triangles of one PrimBegin/PrimEnd batch are only
  written once.
*/

package main

import (
	"fmt"
	"math"
	"sync"
)

type swVertex struct {
	X, Y, Z    float32
	S, T       float32
	R, G, B, A float32
}

// SoftwareRenderer rasterizes into an RGBA buffer.
type SoftwareRenderer struct {
	mutex sync.RWMutex

	width, height int
	colorBuffer   []byte
	depthBuffer   []float32
	frontBuffer   []byte
	stamp         []uint32
	stampID       uint32

	nextTexID int
	liveTex   int
	tex       *Texture
	texOn     bool
	filter    TextureFilter

	blendOn  bool
	src, dst BlendFactor
	op       BlendOp

	alphaOn   bool
	alphaFunc CompareFunc
	alphaRef  float32

	depthOn   bool
	depthFunc CompareFunc

	scissorOn                  bool
	scissorX, scissorY         int
	scissorX1, scissorY1       int
	clearR, clearG, clearB     uint8
	clearA                     uint8
	prim                       PrimType
	inPrim                     bool
	verts                      []swVertex
	curS, curT                 float32
	curR, curG, curB, curA     float32
	triangles, framesPresented int
}

// NewSoftwareRenderer creates an uninitialised software renderer.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{
		src:       BLEND_ONE,
		dst:       BLEND_ZERO,
		alphaFunc: CMP_ALWAYS,
		depthFunc: CMP_ALWAYS,
		curR:      1, curG: 1, curB: 1, curA: 1,
	}
}

func (r *SoftwareRenderer) Init(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", width, height)
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.width, r.height = width, height
	n := width * height
	r.colorBuffer = make([]byte, n*4)
	r.depthBuffer = make([]float32, n)
	r.frontBuffer = make([]byte, n*4)
	r.stamp = make([]uint32, n)
	r.stampID = 0
	r.scissorX, r.scissorY, r.scissorX1, r.scissorY1 = 0, 0, width, height
	return nil
}

func (r *SoftwareRenderer) Destroy() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.colorBuffer = nil
	r.depthBuffer = nil
	r.frontBuffer = nil
	r.stamp = nil
}

// Render presents the back buffer.
func (r *SoftwareRenderer) Render() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	copy(r.frontBuffer, r.colorBuffer)
	r.framesPresented++
}

func (r *SoftwareRenderer) GetFrame() []byte {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.frontBuffer
}

// BackBuffer returns the buffer being drawn into.
func (r *SoftwareRenderer) BackBuffer() []byte {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.colorBuffer
}

func (r *SoftwareRenderer) GetDimensions() (int, int) {
	return r.width, r.height
}

// Stats reports rasterized triangles, presented frames and live textures.
func (r *SoftwareRenderer) Stats() (triangles, frames, textures int) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.triangles, r.framesPresented, r.liveTex
}

// Textures

func (r *SoftwareRenderer) CreateTexture(width, height int) *Texture {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.nextTexID++
	r.liveTex++
	return &Texture{
		ID:         r.nextTexID,
		Width:      width,
		Height:     height,
		CoordScale: 1,
		Pixels:     make([]byte, width*height*4),
	}
}

func (r *SoftwareRenderer) DestroyTexture(tex *Texture) {
	if tex == nil {
		return
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.tex == tex {
		r.tex = nil
	}
	tex.Pixels = nil
	r.liveTex--
}

func (r *SoftwareRenderer) TextureLock(tex *Texture) []byte { return tex.Pixels }
func (r *SoftwareRenderer) TextureUnlock(tex *Texture)      {}

func (r *SoftwareRenderer) SetTexture(tex *Texture) {
	r.mutex.Lock()
	r.tex = tex
	r.mutex.Unlock()
}

func (r *SoftwareRenderer) EnableTexture()  { r.texOn = true }
func (r *SoftwareRenderer) DisableTexture() { r.texOn = false }

func (r *SoftwareRenderer) SetTextureFiltering(filter TextureFilter) { r.filter = filter }

// Fixed function state

func (r *SoftwareRenderer) EnableBlend()  { r.blendOn = true }
func (r *SoftwareRenderer) DisableBlend() { r.blendOn = false }

func (r *SoftwareRenderer) SetBlendFunc(src, dst BlendFactor) { r.src, r.dst = src, dst }
func (r *SoftwareRenderer) SetBlendOp(op BlendOp)             { r.op = op }

func (r *SoftwareRenderer) EnableAlphaTest()  { r.alphaOn = true }
func (r *SoftwareRenderer) DisableAlphaTest() { r.alphaOn = false }

func (r *SoftwareRenderer) SetAlphaFunc(fn CompareFunc, ref float32) {
	r.alphaFunc, r.alphaRef = fn, ref
}

func (r *SoftwareRenderer) EnableDepthTest()        { r.depthOn = true }
func (r *SoftwareRenderer) DisableDepthTest()       { r.depthOn = false }
func (r *SoftwareRenderer) DepthFunc(fn CompareFunc) { r.depthFunc = fn }

func (r *SoftwareRenderer) EnableScissor()  { r.scissorOn = true }
func (r *SoftwareRenderer) DisableScissor() { r.scissorOn = false }

func (r *SoftwareRenderer) SetScissor(x, y, w, h int) {
	r.scissorX = max(0, x)
	r.scissorY = max(0, y)
	r.scissorX1 = min(r.width, x+w)
	r.scissorY1 = min(r.height, y+h)
}

func (r *SoftwareRenderer) ClearColor(cr, cg, cb, ca uint8) {
	r.clearR, r.clearG, r.clearB, r.clearA = cr, cg, cb, ca
}

func (r *SoftwareRenderer) Clear(flags uint32) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	x0, y0, x1, y1 := r.bounds()
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			i := y*r.width + x
			if flags&CLEAR_COLOR != 0 {
				c := r.colorBuffer[i*4 : i*4+4]
				c[0], c[1], c[2], c[3] = r.clearR, r.clearG, r.clearB, r.clearA
			}
			if flags&CLEAR_DEPTH != 0 {
				r.depthBuffer[i] = 0
			}
		}
	}
}

func (r *SoftwareRenderer) bounds() (x0, y0, x1, y1 int) {
	if !r.scissorOn {
		return 0, 0, r.width, r.height
	}
	return r.scissorX, r.scissorY, r.scissorX1, r.scissorY1
}

// Primitive stream

func (r *SoftwareRenderer) PrimBegin(prim PrimType) {
	r.prim = prim
	r.inPrim = true
	r.verts = r.verts[:0]
}

func (r *SoftwareRenderer) PrimTexCoord(s, t float32) { r.curS, r.curT = s, t }

func (r *SoftwareRenderer) PrimColor(cr, cg, cb, ca uint8) {
	r.curR = float32(cr) / 255
	r.curG = float32(cg) / 255
	r.curB = float32(cb) / 255
	r.curA = float32(ca) / 255
}

func (r *SoftwareRenderer) PrimVertex(x, y, z float32) {
	if !r.inPrim {
		return
	}
	r.verts = append(r.verts, swVertex{
		X: x, Y: y, Z: z,
		S: r.curS, T: r.curT,
		R: r.curR, G: r.curG, B: r.curB, A: r.curA,
	})
}

func (r *SoftwareRenderer) PrimEnd() {
	if !r.inPrim {
		return
	}
	r.inPrim = false

	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.colorBuffer == nil {
		return
	}

	r.stampID++
	if r.stampID == 0 {
		clear(r.stamp)
		r.stampID = 1
	}

	v := r.verts
	switch r.prim {
	case PRIM_TRIANGLE:
		for i := 0; i+2 < len(v); i += 3 {
			r.rasterizeTriangle(&v[i], &v[i+1], &v[i+2])
		}
	case PRIM_TRIANGLE_STRIP:
		for i := 2; i < len(v); i++ {
			r.rasterizeTriangle(&v[i-2], &v[i-1], &v[i])
		}
	case PRIM_QUAD, PRIM_RECTLIST:
		for i := 0; i+3 < len(v); i += 4 {
			q := v[i : i+4]
			a, d, b := quadDiagonal(q)
			r.rasterizeTriangle(&q[0], &q[a], &q[d])
			r.rasterizeTriangle(&q[0], &q[d], &q[b])
		}
	}
}

// quadDiagonal finds the vertex opposite q[0]: the one whose diagonal has
// the other two vertices on opposite sides.
func quadDiagonal(q []swVertex) (a, d, b int) {
	for _, c := range [3][3]int{{1, 2, 3}, {1, 3, 2}, {2, 1, 3}} {
		a, d, b = c[0], c[1], c[2]
		sa := edgeFunction(q[0].X, q[0].Y, q[d].X, q[d].Y, q[a].X, q[a].Y)
		sb := edgeFunction(q[0].X, q[0].Y, q[d].X, q[d].Y, q[b].X, q[b].Y)
		if sa*sb < 0 {
			return a, d, b
		}
	}
	return 1, 2, 3
}

func (r *SoftwareRenderer) rasterizeTriangle(v0, v1, v2 *swVertex) {
	area := edgeFunction(v0.X, v0.Y, v1.X, v1.Y, v2.X, v2.Y)
	if area == 0 {
		return
	}
	if area < 0 {
		v0, v2 = v2, v0
		area = -area
	}
	invArea := 1 / area
	r.triangles++

	bx0, by0, bx1, by1 := r.bounds()
	minX := max(bx0, int(math.Floor(float64(min3f(v0.X, v1.X, v2.X)))))
	maxX := min(bx1, int(math.Ceil(float64(max3f(v0.X, v1.X, v2.X)))))
	minY := max(by0, int(math.Floor(float64(min3f(v0.Y, v1.Y, v2.Y)))))
	maxY := min(by1, int(math.Ceil(float64(max3f(v0.Y, v1.Y, v2.Y)))))

	textured := r.texOn && r.tex != nil && len(r.tex.Pixels) > 0

	for y := minY; y < maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float32(x) + 0.5

			w0 := edgeFunction(v1.X, v1.Y, v2.X, v2.Y, px, py)
			w1 := edgeFunction(v2.X, v2.Y, v0.X, v0.Y, px, py)
			w2 := edgeFunction(v0.X, v0.Y, v1.X, v1.Y, px, py)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			idx := y*r.width + x
			if r.stamp[idx] == r.stampID {
				continue
			}
			w0 *= invArea
			w1 *= invArea
			w2 *= invArea

			z := w0*v0.Z + w1*v1.Z + w2*v2.Z
			if r.depthOn && !compare(r.depthFunc, z, r.depthBuffer[idx]) {
				continue
			}

			cr := w0*v0.R + w1*v1.R + w2*v2.R
			cg := w0*v0.G + w1*v1.G + w2*v2.G
			cb := w0*v0.B + w1*v1.B + w2*v2.B
			ca := w0*v0.A + w1*v1.A + w2*v2.A

			if textured {
				s := w0*v0.S + w1*v1.S + w2*v2.S
				t := w0*v0.T + w1*v1.T + w2*v2.T
				tr, tg, tb, ta := r.sample(s, t)
				if r.alphaOn && !compare(r.alphaFunc, ta, r.alphaRef) {
					continue
				}
				cr, cg, cb = cr*tr, cg*tg, cb*tb
			}

			r.stamp[idx] = r.stampID
			r.writePixel(idx, clampf(cr, 0, 1), clampf(cg, 0, 1), clampf(cb, 0, 1), clampf(ca, 0, 1))
			if r.depthOn {
				r.depthBuffer[idx] = z
			}
		}
	}
}

func (r *SoftwareRenderer) writePixel(idx int, sr, sg, sb, sa float32) {
	c := r.colorBuffer[idx*4 : idx*4+4]
	if r.blendOn {
		dr, dg, db := float32(c[0])/255, float32(c[1])/255, float32(c[2])/255
		fr, fg, fb := blendFactor(r.src, sr, sg, sb, sa, dr, dg, db)
		gr, gg, gb := blendFactor(r.dst, sr, sg, sb, sa, dr, dg, db)
		sr = blendOp(r.op, sr*fr, dr*gr)
		sg = blendOp(r.op, sg*fg, dg*gg)
		sb = blendOp(r.op, sb*fb, db*gb)
	}
	c[0] = byte(sr*255 + 0.5)
	c[1] = byte(sg*255 + 0.5)
	c[2] = byte(sb*255 + 0.5)
	c[3] = 0xff
}

func blendFactor(f BlendFactor, sr, sg, sb, sa, dr, dg, db float32) (float32, float32, float32) {
	switch f {
	case BLEND_ZERO:
		return 0, 0, 0
	case BLEND_ONE:
		return 1, 1, 1
	case BLEND_SRCCOLOR:
		return sr, sg, sb
	case BLEND_INVSRCCOLOR:
		return 1 - sr, 1 - sg, 1 - sb
	case BLEND_SRCALPHA:
		return sa, sa, sa
	case BLEND_INVSRCALPHA:
		return 1 - sa, 1 - sa, 1 - sa
	case BLEND_DSTCOLOR:
		return dr, dg, db
	case BLEND_INVDSTCOLOR:
		return 1 - dr, 1 - dg, 1 - db
	}
	return 1, 1, 1
}

func blendOp(op BlendOp, s, d float32) float32 {
	switch op {
	case BLENDOP_SUBTRACT:
		return clampf(s-d, 0, 1)
	case BLENDOP_REVSUBTRACT:
		return clampf(d-s, 0, 1)
	}
	return clampf(s+d, 0, 1)
}

func compare(fn CompareFunc, a, b float32) bool {
	switch fn {
	case CMP_NEVER:
		return false
	case CMP_LESS:
		return a < b
	case CMP_EQUAL:
		return a == b
	case CMP_LEQUAL:
		return a <= b
	case CMP_GREATER:
		return a > b
	case CMP_NOTEQUAL:
		return a != b
	case CMP_GEQUAL:
		return a >= b
	}
	return true
}

// sample returns the texel at texel space (s, t) as normalized RGBA.
func (r *SoftwareRenderer) sample(s, t float32) (float32, float32, float32, float32) {
	tex := r.tex
	u := s * tex.CoordScale * float32(tex.Width)
	v := t * tex.CoordScale * float32(tex.Height)
	if r.filter == TEXF_POINT {
		return r.texel(tex, int(math.Floor(float64(u))), int(math.Floor(float64(v))))
	}

	u -= 0.5
	v -= 0.5
	fu, fv := float32(math.Floor(float64(u))), float32(math.Floor(float64(v)))
	du, dv := u-fu, v-fv
	x, y := int(fu), int(fv)
	r00, g00, b00, a00 := r.texel(tex, x, y)
	r10, g10, b10, a10 := r.texel(tex, x+1, y)
	r01, g01, b01, a01 := r.texel(tex, x, y+1)
	r11, g11, b11, a11 := r.texel(tex, x+1, y+1)
	lerp2 := func(c00, c10, c01, c11 float32) float32 {
		top := c00 + (c10-c00)*du
		bot := c01 + (c11-c01)*du
		return top + (bot-top)*dv
	}
	return lerp2(r00, r10, r01, r11), lerp2(g00, g10, g01, g11),
		lerp2(b00, b10, b01, b11), lerp2(a00, a10, a01, a11)
}

func (r *SoftwareRenderer) texel(tex *Texture, x, y int) (float32, float32, float32, float32) {
	x = wrap(x, tex.Width)
	y = wrap(y, tex.Height)
	o := (y*tex.Width + x) * 4
	p := tex.Pixels[o : o+4]
	return float32(p[0]) / 255, float32(p[1]) / 255, float32(p[2]) / 255, float32(p[3]) / 255
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// edgeFunction computes the signed area of a parallelogram
func edgeFunction(ax, ay, bx, by, cx, cy float32) float32 {
	return (cx-ax)*(by-ay) - (cy-ay)*(bx-ax)
}

func min3f(a, b, c float32) float32 {
	return min(a, b, c)
}

func max3f(a, b, c float32) float32 {
	return max(a, b, c)
}

func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
