// gpu_constants.go - PlayStation GPU Command and Quirk Definitions

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
gpu_constants.go - PlayStation GPU Command and Quirk Definitions

This file holds the GP0 opcode numbers, VRAM geometry, status register bits and the
per-title compatibility constants used by the command interpreter. The compatibility
values are empirically tuned against specific games and must stay bit-exact; they are
named here so every use site can be audited.
*/

package main

// VRAM geometry
const (
	PSX_VRAM_WIDTH       = 1024
	PSX_VRAM_HEIGHT_STD  = 512
	PSX_VRAM_HEIGHT_2MB  = 1024
	PSX_VRAM_X_MASK      = 0x3ff
	PSX_TEXPAGE_SIZE     = 256
	PSX_MAX_POLYLINE_IDX = 255 // hard cap on polyline word index
)

// GP0 primitive opcodes (first of each family)
const (
	GP0_NOP          = 0x00
	GP0_BLOCK_FILL   = 0x02
	GP0_POLY_F3      = 0x20
	GP0_POLY_FT3     = 0x24
	GP0_POLY_F4      = 0x28
	GP0_POLY_FT4     = 0x2C
	GP0_POLY_G3      = 0x30
	GP0_POLY_GT3     = 0x34
	GP0_POLY_G4      = 0x38
	GP0_POLY_GT4     = 0x3C
	GP0_LINE_F2      = 0x40
	GP0_LINE_F_EX    = 0x48
	GP0_LINE_G2      = 0x50
	GP0_LINE_G_EX    = 0x58
	GP0_TILE         = 0x60
	GP0_SPRT         = 0x64
	GP0_TILE_1       = 0x68
	GP0_TILE_8       = 0x70
	GP0_SPRT_8       = 0x74
	GP0_TILE_16      = 0x78
	GP0_SPRT_16      = 0x7C
	GP0_MOVE_IMAGE   = 0x80
	GP0_LOAD_IMAGE   = 0xA0
	GP0_STORE_IMAGE  = 0xC0
	GP0_TEXTURE_PAGE = 0xE1
	GP0_TEXTURE_WIN  = 0xE2
	GP0_DRAW_AREA_TL = 0xE3
	GP0_DRAW_AREA_BR = 0xE4
	GP0_DRAW_OFFSET  = 0xE5
	GP0_MASK_BIT     = 0xE6
)

// Attribute word bits
const (
	ATTR_NON_SHADED = 0x01000000 // raw texture colour, no modulation
	ATTR_SEMI_TRANS = 0x02000000
)

// Polyline terminator pattern
const (
	POLYLINE_END_MASK  = 0xF000F000
	POLYLINE_END_VALUE = 0x50005000
)

// Status register bits
const (
	STATUS_TEXPAGE_MASK  = 0x000001ff
	STATUS_DRAW_MODE     = 0x000007ff
	STATUS_MASK_BITS     = 0x00001800
	STATUS_DISPLAY_OFF   = 0x00800000
	STATUS_READY_VRAM    = 0x08000000
	STATUS_READY_CMD     = 0x04000000
	STATUS_READY_DMA     = 0x10000000
	STATUS_INTERLACE     = 0x00400000
	STATUS_RGB24         = 0x00200000
	STATUS_DEFAULT_VALUE = 0x14802000
)

// GPU info slots (GP1 0x10 reads)
const (
	INFO_TW        = 0
	INFO_DRAWSTART = 1
	INFO_DRAWEND   = 2
	INFO_DRAWOFF   = 3
	INFO_COUNT     = 4
)

// Texture page colour depths
const (
	TEXMODE_4BIT  = 0
	TEXMODE_8BIT  = 1
	TEXMODE_15BIT = 2
)

// Data transfer modes
const (
	DR_NORMAL        = 0
	DR_VRAMTRANSFER  = 1
	DR_VRAMREADBACK  = 2
	DATA_MODE_IDLE   = 0
	DATA_MODE_WRITE  = 1
	DATA_MODE_READ   = 2
	DATA_MODE_UNUSED = 3
)

// Depth plane and ordering
const (
	ZMASK_PROTECTED = 0.95    // depth written by mask-protected primitives
	ZMASK_STEP      = 0.00004 // per-primitive pseudo-depth increment
	POFF            = 0.375   // multi-filter sprite half texel offset
)

// Alpha test thresholds used around the opaque pass
const (
	OPAQUE_ON_REF  = 0.0  // opaque texels carry alpha 0
	OPAQUE_OFF_REF = 0.49 // regular pass rejects transparent texels
)

// Texel alpha encodings used when the opaque pass is enabled
const (
	TEXEL_ALPHA_TRANSPARENT = 0x50 // fully black texel, below both thresholds
	TEXEL_ALPHA_OPAQUE      = 0x00 // non STP texel in a semi transparent page
	TEXEL_ALPHA_SOLID       = 0xff
)

// Compatibility fix bits (GPUConfig.Fixes)
const (
	FIX_FF7_CURSOR         = 0x0001 // FF7 cursor tile, frame texture sprites, front buffer quads
	FIX_EXPAND_SCREEN      = 0x0002
	FIX_BLACK_SEMI_COLOR   = 0x0004 // black vertex colour becomes grey 7f7f7f
	FIX_SWAP_FRONT_DETECT  = 0x0008
	FIX_NO_COORD_CHECK     = 0x0010 // no sign extension or spread culling, no degenerate line detection
	FIX_FF9_RECT           = 0x0200 // FF9 battle rectangle deferral
	FIX_NO_SCREEN_UPLOAD   = 0x0800 // skip uploads into the previous display
	FIX_LARGE_FRONT_UPLOAD = 0x8000 // full front upload on large writes
)

// Title specific constants
const (
	QUIRK_FF7_CURSOR_X      = 0
	QUIRK_FF7_CURSOR_Y      = 0
	QUIRK_FF7_CURSOR_W      = 24
	QUIRK_FF7_CURSOR_H      = 16
	QUIRK_GRADIUS_LY0       = -6
	QUIRK_GRADIUS_LY2       = 10
	QUIRK_TILE_CHEAT_H      = 32
	QUIRK_TILE_CHEAT_COLOR  = 0x60ffffff
	QUIRK_FF9_X             = 142
	QUIRK_FF9_SHIFT         = 65
	QUIRK_BLACK_SEMI_COLOR  = 0x7f7f7f
	QUIRK_FILL_NO_BORDER    = 0x02000000 // block fill colour that skips border bars
	QUIRK_LARGE_UPLOAD_SLOP = 32
)

// Offscreen coordinate sanity limits
const (
	CHKMAX_X = 1024
	CHKMAX_Y = 512
)

// Display edge tolerance for full screen block fills
const BLOCKFILL_EDGE_SLOP = 16
