// gpu_dispatch.go - GP0 Command Decode and Dispatch

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
gpu_dispatch.go - GP0 Command Decode and Dispatch

Every GP0 packet goes through Dispatch (render) or DispatchSkip (buffer advance
only). The opcode lives in bits 31:24 of the first word. Before any handler runs
the packet length is checked against the opcode's fixed size so handlers can
index words freely; polylines only need their minimum length because the
terminator scan is bounded by the packet itself.

The skip variant keeps block fills, image transfers, state commands and the
polyline walks, and drops everything that only produces visible output.
*/

package main

import (
	"errors"
	"fmt"
)

// ErrShortPacket is wrapped by every DecodeError.
var ErrShortPacket = errors.New("short packet")

// DecodeError reports a packet shorter than its opcode requires.
type DecodeError struct {
	Opcode uint8
	Need   int
	Have   int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("gp0 decode failed: opcode 0x%02X needs %d words, have %d", e.Opcode, e.Need, e.Have)
}

func (e *DecodeError) Unwrap() error {
	return ErrShortPacket
}

// DecodedPrimitive carries one packet through decode, classify and draw.
type DecodedPrimitive struct {
	Words []uint32

	Lx, Ly [4]int16
	Vertex [4]Vertex
	U, V   [4]uint8

	SprtX, SprtY int16
	SprtW, SprtH int16
	SpriteU2     int16
	SpriteV2     int16
	ClutID       uint32
}

func (p *DecodedPrimitive) word(i int) uint32 {
	return p.Words[i]
}

// s16 reads the i-th signed 16-bit half of the packet.
func (p *DecodedPrimitive) s16(i int) int16 {
	return int16(p.Words[i>>1] >> (16 * uint(i&1)))
}

// byteAt reads the i-th byte of the packet.
func (p *DecodedPrimitive) byteAt(i int) uint8 {
	return uint8(p.Words[i>>2] >> (8 * uint(i&3)))
}

// PacketWords returns the fixed packet length of an opcode, the minimum
// length for polylines (variable reports true) and 1 for no-ops.
func PacketWords(op uint8) (words int, variable bool) {
	switch {
	case op == GP0_BLOCK_FILL:
		return 3, false
	case op >= 0x20 && op <= 0x23:
		return 4, false
	case op >= 0x24 && op <= 0x27:
		return 7, false
	case op >= 0x28 && op <= 0x2B:
		return 5, false
	case op >= 0x2C && op <= 0x2F:
		return 9, false
	case op >= 0x30 && op <= 0x33:
		return 6, false
	case op >= 0x34 && op <= 0x37:
		return 9, false
	case op >= 0x38 && op <= 0x3B:
		return 8, false
	case op >= 0x3C && op <= 0x3F:
		return 12, false
	case op >= 0x40 && op <= 0x43:
		return 3, false
	case op >= 0x48 && op <= 0x4F:
		return 3, true
	case op >= 0x50 && op <= 0x53:
		return 4, false
	case op >= 0x58 && op <= 0x5F:
		return 4, true
	case op >= 0x60 && op <= 0x63:
		return 3, false
	case op >= 0x64 && op <= 0x67:
		return 4, false
	case op >= 0x68 && op <= 0x6B:
		return 2, false
	case op >= 0x70 && op <= 0x73:
		return 2, false
	case op >= 0x74 && op <= 0x77:
		return 3, false
	case op >= 0x78 && op <= 0x7B:
		return 2, false
	case op >= 0x7C && op <= 0x7F:
		return 3, false
	case op == GP0_MOVE_IMAGE:
		return 4, false
	case op == GP0_LOAD_IMAGE, op == GP0_STORE_IMAGE:
		return 3, false
	}
	return 1, false
}

// Dispatch executes one packet and emits its draw calls.
func (rc *RenderContext) Dispatch(words []uint32) error {
	return rc.execute(words, false)
}

// DispatchSkip executes one packet without producing visible output.
func (rc *RenderContext) DispatchSkip(words []uint32) error {
	return rc.execute(words, true)
}

func (rc *RenderContext) execute(words []uint32, skip bool) error {
	if len(words) == 0 {
		return &DecodeError{Need: 1}
	}
	op := uint8(words[0] >> 24)
	need, _ := PacketWords(op)
	if len(words) < need {
		return &DecodeError{Opcode: op, Need: need, Have: len(words)}
	}

	p := DecodedPrimitive{Words: words}

	// State commands and transfers behave the same in both tables.
	switch {
	case op == GP0_BLOCK_FILL:
		rc.primBlkFill(&p)
		return nil
	case op == GP0_MOVE_IMAGE:
		rc.primMoveImage(&p)
		return nil
	case op == GP0_LOAD_IMAGE:
		rc.primLoadImage(&p)
		return nil
	case op == GP0_STORE_IMAGE:
		rc.primStoreImage(&p)
		return nil
	case op == GP0_TEXTURE_PAGE:
		rc.cmdTexturePage(words[0])
		return nil
	case op == GP0_TEXTURE_WIN:
		rc.cmdTextureWindow(words[0])
		return nil
	case op == GP0_DRAW_AREA_TL:
		rc.cmdDrawAreaStart(words[0])
		return nil
	case op == GP0_DRAW_AREA_BR:
		rc.cmdDrawAreaEnd(words[0])
		return nil
	case op == GP0_DRAW_OFFSET:
		rc.cmdDrawOffset(words[0])
		return nil
	case op == GP0_MASK_BIT:
		rc.cmdSTP(words[0])
		return nil
	}

	if skip {
		switch {
		case op >= 0x48 && op <= 0x4F:
			rc.primLineFSkip(&p)
		case op >= 0x58 && op <= 0x5F:
			rc.primLineGSkip(&p)
		}
		return nil
	}

	switch {
	case op >= 0x20 && op <= 0x23:
		rc.primPolyF3(&p)
	case op >= 0x24 && op <= 0x27:
		rc.primPolyFT3(&p)
	case op >= 0x28 && op <= 0x2B:
		rc.primPolyF4(&p)
	case op >= 0x2C && op <= 0x2F:
		rc.primPolyFT4(&p)
	case op >= 0x30 && op <= 0x33:
		rc.primPolyG3(&p)
	case op >= 0x34 && op <= 0x37:
		rc.primPolyGT3(&p)
	case op >= 0x38 && op <= 0x3B:
		rc.primPolyG4(&p)
	case op >= 0x3C && op <= 0x3F:
		rc.primPolyGT4(&p)
	case op >= 0x40 && op <= 0x43:
		rc.primLineF2(&p)
	case op >= 0x48 && op <= 0x4F:
		rc.primLineFEx(&p)
	case op >= 0x50 && op <= 0x53:
		rc.primLineG2(&p)
	case op >= 0x58 && op <= 0x5F:
		rc.primLineGEx(&p)
	case op >= 0x60 && op <= 0x63:
		rc.primTileS(&p)
	case op >= 0x64 && op <= 0x67:
		rc.primSprtS(&p)
	case op >= 0x68 && op <= 0x6B:
		rc.primTile1(&p)
	case op >= 0x70 && op <= 0x73:
		rc.primTile8(&p)
	case op >= 0x74 && op <= 0x77:
		rc.primSprt8(&p)
	case op >= 0x78 && op <= 0x7B:
		rc.primTile16(&p)
	case op >= 0x7C && op <= 0x7F:
		rc.primSprt16(&p)
	}
	return nil
}
