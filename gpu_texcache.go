// gpu_texcache.go - PlayStation GPU Texture Cache

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
gpu_texcache.go - Texture Cache

Decodes texture pages, texture windows and the movie area out of VRAM into
backend textures. Decoded pages are kept in an LRU keyed by everything that
changes their texels; any VRAM write overlapping a page or its CLUT drops
the entry.

Texel alpha:
  plain        black (0x0000) is transparent, everything else solid
  opaque pass  black gets TEXEL_ALPHA_TRANSPARENT; inside a semi transparent
               primitive, texels without the STP bit get TEXEL_ALPHA_OPAQUE
               so a second, unblended pass can pick them out
*/

package main

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	texCacheEntries = 128
	movieTexSize    = 1024
)

const (
	texKindPage = iota
	texKindWindow
)

type texKey struct {
	kind   int
	x, y   int // VRAM origin of the page
	tp     int
	clut   uint32
	wx, wy int // window origin inside the page
	ww, wh int // window size
	semi   bool
}

type texEntry struct {
	tex       *Texture
	hasOpaque bool
}

// TextureCache owns every texture the interpreter binds.
type TextureCache struct {
	rc    *RenderContext
	cache *lru.Cache[texKey, *texEntry]
	movie *Texture
}

// NewTextureCache creates an empty cache for a context.
func NewTextureCache(rc *RenderContext) *TextureCache {
	tc := &TextureCache{rc: rc}
	cache, err := lru.NewWithEvict[texKey, *texEntry](texCacheEntries, func(_ texKey, e *texEntry) {
		rc.renderer.DestroyTexture(e.tex)
	})
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	tc.cache = cache
	return tc
}

// Purge drops every cached texture.
func (tc *TextureCache) Purge() {
	tc.cache.Purge()
}

// Len reports the number of cached textures.
func (tc *TextureCache) Len() int {
	return tc.cache.Len()
}

func (tc *TextureCache) key(kind, tp int, clut uint32) texKey {
	rc := tc.rc
	k := texKey{
		kind: kind,
		x:    rc.globalTextAddrX,
		y:    rc.globalTextAddrY,
		tp:   tp,
		semi: rc.cfg.OpaquePass && rc.drawSemiTrans,
	}
	if tp != TEXMODE_15BIT {
		k.clut = clut & 0xffff
	}
	if kind == texKindWindow {
		k.wx, k.wy = rc.twin.Position.X0, rc.twin.Position.Y0
		k.ww, k.wh = rc.twin.Position.X1, rc.twin.Position.Y1
	}
	return k
}

// Page returns the current texture page decoded with the given CLUT.
func (tc *TextureCache) Page(tp int, clut uint32) *Texture {
	return tc.lookup(tc.key(texKindPage, tp, clut))
}

// Window returns the current texture window as its own wrapping texture.
func (tc *TextureCache) Window(tp int, clut uint32) *Texture {
	return tc.lookup(tc.key(texKindWindow, tp, clut))
}

func (tc *TextureCache) lookup(k texKey) *Texture {
	e, ok := tc.cache.Get(k)
	if !ok {
		e = tc.build(k)
		tc.cache.Add(k, e)
	}
	tc.rc.opaqueDraw = e.hasOpaque
	return e.tex
}

func (tc *TextureCache) build(k texKey) *texEntry {
	w, h, ox, oy := PSX_TEXPAGE_SIZE, PSX_TEXPAGE_SIZE, 0, 0
	if k.kind == texKindWindow {
		w, h, ox, oy = k.ww, k.wh, k.wx, k.wy
	}
	r := tc.rc.renderer
	tex := r.CreateTexture(w, h)
	tex.CoordScale = 1.0 / PSX_TEXPAGE_SIZE
	pix := r.TextureLock(tex)

	e := &texEntry{tex: tex}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := tc.texel(k, (ox+x)&0xff, (oy+y)&0xff)
			off := (y*w + x) * 4
			pix[off+0] = uint8(c<<3) & 0xf8
			pix[off+1] = uint8(c>>2) & 0xf8
			pix[off+2] = uint8(c>>7) & 0xf8
			if k.semi && c != 0 && c&0x8000 == 0 {
				e.hasOpaque = true
			}
			pix[off+3] = texelAlpha(c, k.semi)
		}
	}
	r.TextureUnlock(tex)
	return e
}

// texel fetches one 15-bit texel of a page at page relative (u, v).
func (tc *TextureCache) texel(k texKey, u, v int) uint16 {
	return tc.rc.pageTexel(k.x, k.y, k.tp, k.clut, u, v)
}

func (rc *RenderContext) clutAt(clut uint32, idx int) uint16 {
	cx := int(clut&0x3f) << 4
	cy := int(clut>>6) & 0x1ff
	return rc.vramAt(cx+idx, cy)
}

func texelAlpha(c uint16, semi bool) uint8 {
	if c == 0 {
		if semi {
			return TEXEL_ALPHA_TRANSPARENT
		}
		return 0
	}
	if semi && c&0x8000 == 0 {
		return TEXEL_ALPHA_OPAQUE
	}
	return TEXEL_ALPHA_SOLID
}

// Movie returns a VRAM sized texture holding the current movie area at its
// VRAM position. It is rebuilt on every call; uploads always follow a write.
func (tc *TextureCache) Movie() *Texture {
	rc := tc.rc
	r := rc.renderer
	if tc.movie == nil {
		tc.movie = r.CreateTexture(movieTexSize, movieTexSize)
		tc.movie.CoordScale = 1
	}
	pix := r.TextureLock(tc.movie)
	m := rc.movieArea
	for y := m.Y0; y < m.Y1 && y < rc.vramHeight; y++ {
		for x := m.X0; x < m.X1 && x < PSX_VRAM_WIDTH; x++ {
			off := (y*movieTexSize + x) * 4
			if rc.display.RGB24 != 0 {
				b := (y*PSX_VRAM_WIDTH+m.X0)*2 + (x-m.X0)*3
				pix[off+0] = rc.vramByte(b)
				pix[off+1] = rc.vramByte(b + 1)
				pix[off+2] = rc.vramByte(b + 2)
			} else {
				c := rc.vram[y*PSX_VRAM_WIDTH+x]
				pix[off+0] = uint8(c<<3) & 0xf8
				pix[off+1] = uint8(c>>2) & 0xf8
				pix[off+2] = uint8(c>>7) & 0xf8
			}
			pix[off+3] = 0xff
		}
	}
	r.TextureUnlock(tc.movie)
	rc.opaqueDraw = false
	return tc.movie
}

func (rc *RenderContext) vramByte(b int) uint8 {
	i := (b >> 1) % len(rc.vram)
	return uint8(rc.vram[i] >> (uint(b&1) * 8))
}

// IsMovie reports whether tex is the movie texture.
func (tc *TextureCache) IsMovie(tex *Texture) bool {
	return tex != nil && tex == tc.movie
}

// InvalidateArea drops every texture reading VRAM inside the inclusive
// rectangle (x, y)-(x+w, y+h).
func (tc *TextureCache) InvalidateArea(x, y, w, h int) {
	if w < 0 || h < 0 {
		return
	}
	x1, y1 := x+w, y+h
	for _, k := range tc.cache.Keys() {
		if k.overlaps(x, y, x1, y1) {
			tc.cache.Remove(k)
		}
	}
}

func (k texKey) overlaps(x0, y0, x1, y1 int) bool {
	span := [3]int{64, 128, 256}[k.tp]
	if spanOverlap(k.x, k.x+span-1, x0, x1) && spanOverlap(k.y, k.y+PSX_TEXPAGE_SIZE-1, y0, y1) {
		return true
	}
	if k.tp == TEXMODE_15BIT {
		return false
	}
	cx := int(k.clut&0x3f) << 4
	cy := int(k.clut>>6) & 0x1ff
	n := 16
	if k.tp == TEXMODE_8BIT {
		n = 256
	}
	return spanOverlap(cx, cx+n-1, x0, x1) && cy >= y0 && cy <= y1
}

func spanOverlap(a0, a1, b0, b1 int) bool {
	return a0 <= b1 && b0 <= a1
}
