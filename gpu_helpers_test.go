// gpu_helpers_test.go - Shared fixtures for the GPU tests

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

type recVertex struct {
	X, Y, Z float32
	S, T    float32
	R, G, B uint8
	A       uint8
}

type recPrim struct {
	Type     PrimType
	Verts    []recVertex
	Blend    bool
	Src, Dst BlendFactor
	Op       BlendOp
	Textured bool
	Tex      *Texture
}

// recordingRenderer draws through the software renderer and keeps a log
// of every primitive and the state it was drawn with.
type recordingRenderer struct {
	*SoftwareRenderer

	prims   []recPrim
	cur     *recPrim
	clears  []uint32
	renders int

	blend     bool
	src, dst  BlendFactor
	op        BlendOp
	alphaFunc CompareFunc
	alphaRef  float32
	depthFunc CompareFunc
	textured  bool
	tex       *Texture
	scissor   [4]int

	col          [4]uint8
	s, t         float32
	depthFuncLog []CompareFunc
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{SoftwareRenderer: NewSoftwareRenderer(), col: [4]uint8{255, 255, 255, 255}}
}

func (r *recordingRenderer) Render() {
	r.renders++
	r.SoftwareRenderer.Render()
}

func (r *recordingRenderer) SetTexture(tex *Texture) {
	r.tex = tex
	r.SoftwareRenderer.SetTexture(tex)
}

func (r *recordingRenderer) EnableTexture() {
	r.textured = true
	r.SoftwareRenderer.EnableTexture()
}

func (r *recordingRenderer) DisableTexture() {
	r.textured = false
	r.SoftwareRenderer.DisableTexture()
}

func (r *recordingRenderer) EnableBlend() {
	r.blend = true
	r.SoftwareRenderer.EnableBlend()
}

func (r *recordingRenderer) DisableBlend() {
	r.blend = false
	r.SoftwareRenderer.DisableBlend()
}

func (r *recordingRenderer) SetBlendFunc(src, dst BlendFactor) {
	r.src, r.dst = src, dst
	r.SoftwareRenderer.SetBlendFunc(src, dst)
}

func (r *recordingRenderer) SetBlendOp(op BlendOp) {
	r.op = op
	r.SoftwareRenderer.SetBlendOp(op)
}

func (r *recordingRenderer) SetAlphaFunc(fn CompareFunc, ref float32) {
	r.alphaFunc, r.alphaRef = fn, ref
	r.SoftwareRenderer.SetAlphaFunc(fn, ref)
}

func (r *recordingRenderer) DepthFunc(fn CompareFunc) {
	r.depthFunc = fn
	r.depthFuncLog = append(r.depthFuncLog, fn)
	r.SoftwareRenderer.DepthFunc(fn)
}

func (r *recordingRenderer) SetScissor(x, y, w, h int) {
	r.scissor = [4]int{x, y, w, h}
	r.SoftwareRenderer.SetScissor(x, y, w, h)
}

func (r *recordingRenderer) Clear(flags uint32) {
	r.clears = append(r.clears, flags)
	r.SoftwareRenderer.Clear(flags)
}

func (r *recordingRenderer) PrimBegin(prim PrimType) {
	r.prims = append(r.prims, recPrim{
		Type: prim, Blend: r.blend, Src: r.src, Dst: r.dst, Op: r.op,
		Textured: r.textured, Tex: r.tex,
	})
	r.cur = &r.prims[len(r.prims)-1]
	r.SoftwareRenderer.PrimBegin(prim)
}

func (r *recordingRenderer) PrimTexCoord(s, t float32) {
	r.s, r.t = s, t
	r.SoftwareRenderer.PrimTexCoord(s, t)
}

func (r *recordingRenderer) PrimColor(cr, cg, cb, ca uint8) {
	r.col = [4]uint8{cr, cg, cb, ca}
	r.SoftwareRenderer.PrimColor(cr, cg, cb, ca)
}

func (r *recordingRenderer) PrimVertex(x, y, z float32) {
	if r.cur != nil {
		r.cur.Verts = append(r.cur.Verts, recVertex{
			X: x, Y: y, Z: z, S: r.s, T: r.t,
			R: r.col[0], G: r.col[1], B: r.col[2], A: r.col[3],
		})
	}
	r.SoftwareRenderer.PrimVertex(x, y, z)
}

func (r *recordingRenderer) PrimEnd() {
	r.cur = nil
	r.SoftwareRenderer.PrimEnd()
}

func (r *recordingRenderer) reset() {
	r.prims = r.prims[:0]
	r.clears = r.clears[:0]
	r.depthFuncLog = r.depthFuncLog[:0]
}

func (r *recordingRenderer) last() recPrim {
	if len(r.prims) == 0 {
		return recPrim{}
	}
	return r.prims[len(r.prims)-1]
}

// newTestGPU builds a GPU with the default configuration adjusted by fn.
func newTestGPU(t *testing.T, fn func(cfg *GPUConfig)) (*GPU, *recordingRenderer) {
	t.Helper()
	cfg := DefaultGPUConfig()
	if fn != nil {
		fn(&cfg)
	}
	r := newRecordingRenderer()
	g, err := NewGPU(cfg, r)
	if err != nil {
		t.Fatalf("NewGPU failed: %v", err)
	}
	t.Cleanup(g.Destroy)
	return g, r
}

// newTestContext is newTestGPU for tests that drive the interpreter directly.
func newTestContext(t *testing.T, fn func(cfg *GPUConfig)) (*RenderContext, *recordingRenderer) {
	t.Helper()
	g, r := newTestGPU(t, fn)
	r.reset()
	return g.Context(), r
}

func writeWords(t *testing.T, g *GPU, words ...uint32) {
	t.Helper()
	if err := g.WriteGP0Words(words); err != nil {
		t.Fatalf("WriteGP0Words(%08X...) failed: %v", words[0], err)
	}
}

func xy(x, y int) uint32 {
	return uint32(uint16(int16(x))) | uint32(uint16(int16(y)))<<16
}

func pixelAt(frame []byte, width, x, y int) [4]byte {
	o := (y*width + x) * 4
	return [4]byte{frame[o], frame[o+1], frame[o+2], frame[o+3]}
}
