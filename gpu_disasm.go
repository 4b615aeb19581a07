// gpu_disasm.go - GP0 Packet Disassembler

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
gpu_disasm.go - GP0 Packet Disassembler

Turns a complete GP0 packet into one line of text for trace logging:

  2C POLY_FT4+ABE col=808080 (0,0) uv(0,0) (32,0) uv(255,0) ... clut=7FC0 tpage=0015

Polygon vertex layout is derived from the opcode bits: every vertex has
an XY word, textured packets add a UV word, shaded packets add a colour word
before every vertex but the first.
*/

package main

import (
	"fmt"
	"strings"
)

var gp0StateNames = map[uint8]string{
	0x00:             "NOP",
	0x01:             "CLEAR_CACHE",
	GP0_BLOCK_FILL:   "FILL",
	0x1F:             "IRQ",
	GP0_MOVE_IMAGE:   "MOVE_IMAGE",
	GP0_LOAD_IMAGE:   "LOAD_IMAGE",
	GP0_STORE_IMAGE:  "STORE_IMAGE",
	GP0_TEXTURE_PAGE: "TPAGE",
	GP0_TEXTURE_WIN:  "TWIN",
	GP0_DRAW_AREA_TL: "AREA_TL",
	GP0_DRAW_AREA_BR: "AREA_BR",
	GP0_DRAW_OFFSET:  "OFFSET",
	GP0_MASK_BIT:     "MASK",
}

var rectSizeNames = [4]string{"", "1", "8", "16"}

// gp0Mnemonic names an opcode, including the semi transparent and raw
// texture modifiers.
func gp0Mnemonic(op uint8) string {
	if name, ok := gp0StateNames[op]; ok {
		return name
	}
	var b strings.Builder
	switch op >> 5 {
	case 1:
		b.WriteString("POLY_")
		if op&0x10 != 0 {
			b.WriteByte('G')
		} else {
			b.WriteByte('F')
		}
		if op&0x04 != 0 {
			b.WriteByte('T')
		}
		if op&0x08 != 0 {
			b.WriteByte('4')
		} else {
			b.WriteByte('3')
		}
	case 2:
		switch {
		case op&0x08 != 0 && op&0x10 != 0:
			b.WriteString("POLYLINE_G")
		case op&0x08 != 0:
			b.WriteString("POLYLINE_F")
		case op&0x10 != 0:
			b.WriteString("LINE_G2")
		default:
			b.WriteString("LINE_F2")
		}
	case 3:
		if op&0x04 != 0 {
			b.WriteString("SPRT")
		} else {
			b.WriteString("TILE")
		}
		if s := rectSizeNames[(op>>3)&3]; s != "" {
			b.WriteByte('_')
			b.WriteString(s)
		}
	default:
		return fmt.Sprintf("UNKNOWN_%02X", op)
	}
	if op&0x02 != 0 {
		b.WriteString("+ABE")
	}
	if op>>5 != 2 && op&0x04 != 0 && op&0x01 != 0 {
		b.WriteString("+RAW")
	}
	return b.String()
}

func fmtXY(w uint32) string {
	x, y := unpackXY(w)
	return fmt.Sprintf("(%d,%d)", x, y)
}

// DisassembleGP0 renders one packet.
func DisassembleGP0(words []uint32) string {
	if len(words) == 0 {
		return "<empty>"
	}
	op := uint8(words[0] >> 24)
	var b strings.Builder
	fmt.Fprintf(&b, "%02X %s", op, gp0Mnemonic(op))

	need, _ := PacketWords(op)
	if len(words) < need {
		fmt.Fprintf(&b, " <short: %d of %d words>", len(words), need)
		return b.String()
	}
	arg := func(format string, a ...any) {
		b.WriteByte(' ')
		fmt.Fprintf(&b, format, a...)
	}

	switch op >> 5 {
	case 1:
		textured, shaded := op&0x04 != 0, op&0x10 != 0
		n := 3
		if op&0x08 != 0 {
			n = 4
		}
		stride := 1
		if textured {
			stride++
		}
		if shaded {
			stride++
		}
		arg("col=%06X", words[0]&0xffffff)
		for i := 0; i < n; i++ {
			xy := 1 + i*stride
			if shaded && i > 0 {
				arg("col=%06X", words[xy-1]&0xffffff)
			}
			arg("%s", fmtXY(words[xy]))
			if textured {
				arg("uv(%d,%d)", uint8(words[xy+1]), uint8(words[xy+1]>>8))
			}
		}
		if textured {
			arg("clut=%04X tpage=%04X", words[2]>>16, words[2+stride]>>16&0xffff)
		}
	case 2:
		arg("col=%06X", words[0]&0xffffff)
		limit := min(len(words)-1, PSX_MAX_POLYLINE_IDX)
		shaded := op&0x10 != 0
		for i := 1; i <= limit; i++ {
			if isPolylineEnd(words[i]) && ((!shaded && i >= 3) || (shaded && i >= 4 && i%2 == 0)) {
				break
			}
			if shaded && i%2 == 0 {
				arg("col=%06X", words[i]&0xffffff)
				continue
			}
			arg("%s", fmtXY(words[i]))
		}
	case 3:
		arg("col=%06X %s", words[0]&0xffffff, fmtXY(words[1]))
		next := 2
		if op&0x04 != 0 {
			arg("uv(%d,%d) clut=%04X", uint8(words[2]), uint8(words[2]>>8), words[2]>>16)
			next++
		}
		if (op>>3)&3 == 0 {
			w, h := unpackXY(words[next])
			arg("size=%dx%d", w, h)
		}
	default:
		switch op {
		case GP0_BLOCK_FILL:
			w, h := unpackXY(words[2])
			arg("col=%06X %s size=%dx%d", words[0]&0xffffff, fmtXY(words[1]), w, h)
		case GP0_MOVE_IMAGE:
			w, h := unpackXY(words[3])
			arg("src=%s dst=%s size=%dx%d", fmtXY(words[1]), fmtXY(words[2]), w, h)
		case GP0_LOAD_IMAGE, GP0_STORE_IMAGE:
			w, h := unpackXY(words[2])
			arg("%s size=%dx%d", fmtXY(words[1]), w, h)
		default:
			if op >= GP0_TEXTURE_PAGE && op <= GP0_MASK_BIT {
				arg("%06X", words[0]&0xffffff)
			}
		}
	}
	return b.String()
}
