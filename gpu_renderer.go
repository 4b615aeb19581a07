// gpu_renderer.go - Backend Renderer Interface for the PlayStation GPU

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
gpu_renderer.go - Backend Renderer Interface

The command interpreter never talks to a graphics API directly. It drives a
Renderer: a small immediate-mode surface with blend, alpha test, depth, scissor
and texture state plus a begin/vertex/end primitive stream. Two backends exist:

- SoftwareRenderer: CPU rasterizer, always available, used by tests and headless runs
- VulkanRenderer: software rasterization plus Vulkan pipeline descriptions for the same state

Texture coordinates are passed in texel units. A texture's CoordScale turns them
into normalized coordinates (1/256 for page and window textures, 1 for the movie
texture whose coordinates are already normalized).
*/

package main

// PrimType selects how PrimVertex calls between PrimBegin/PrimEnd are assembled.
type PrimType int

const (
	PRIM_TRIANGLE PrimType = iota
	PRIM_TRIANGLE_STRIP
	PRIM_QUAD
	PRIM_RECTLIST
)

func (p PrimType) String() string {
	switch p {
	case PRIM_TRIANGLE:
		return "TRIANGLE"
	case PRIM_TRIANGLE_STRIP:
		return "TRIANGLE_STRIP"
	case PRIM_QUAD:
		return "QUAD"
	case PRIM_RECTLIST:
		return "RECTLIST"
	}
	return "UNKNOWN"
}

// BlendFactor mirrors the usual fixed-function blend factors.
type BlendFactor int

const (
	BLEND_ZERO BlendFactor = iota
	BLEND_ONE
	BLEND_SRCCOLOR
	BLEND_INVSRCCOLOR
	BLEND_SRCALPHA
	BLEND_INVSRCALPHA
	BLEND_DSTCOLOR
	BLEND_INVDSTCOLOR
)

// BlendOp is the blend equation.
type BlendOp int

const (
	BLENDOP_ADD BlendOp = iota
	BLENDOP_SUBTRACT
	BLENDOP_REVSUBTRACT
)

// CompareFunc is shared by the alpha and depth tests.
type CompareFunc int

const (
	CMP_NEVER CompareFunc = iota
	CMP_LESS
	CMP_EQUAL
	CMP_LEQUAL
	CMP_GREATER
	CMP_NOTEQUAL
	CMP_GEQUAL
	CMP_ALWAYS
)

// TextureFilter selects texture sampling.
type TextureFilter int

const (
	TEXF_POINT TextureFilter = iota
	TEXF_LINEAR
)

// Clear flags
const (
	CLEAR_COLOR   = 1 << 0
	CLEAR_DEPTH   = 1 << 1
	CLEAR_STENCIL = 1 << 2
)

// Texture is a backend texture. Pixels are RGBA, R in the lowest byte.
type Texture struct {
	ID         int
	Width      int
	Height     int
	CoordScale float32
	Pixels     []byte
}

// Renderer is the outbound graphics surface used by the interpreter.
type Renderer interface {
	Init(width, height int) error
	Destroy()
	Render()
	GetFrame() []byte
	GetDimensions() (int, int)

	CreateTexture(width, height int) *Texture
	DestroyTexture(tex *Texture)
	TextureLock(tex *Texture) []byte
	TextureUnlock(tex *Texture)
	SetTexture(tex *Texture)
	EnableTexture()
	DisableTexture()
	SetTextureFiltering(filter TextureFilter)

	EnableBlend()
	DisableBlend()
	SetBlendFunc(src, dst BlendFactor)
	SetBlendOp(op BlendOp)

	EnableAlphaTest()
	DisableAlphaTest()
	SetAlphaFunc(fn CompareFunc, ref float32)

	EnableDepthTest()
	DisableDepthTest()
	DepthFunc(fn CompareFunc)

	EnableScissor()
	DisableScissor()
	SetScissor(x, y, w, h int)

	Clear(flags uint32)
	ClearColor(r, g, b, a uint8)

	PrimBegin(prim PrimType)
	PrimTexCoord(s, t float32)
	PrimColor(r, g, b, a uint8)
	PrimVertex(x, y, z float32)
	PrimEnd()
}
