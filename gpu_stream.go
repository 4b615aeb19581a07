// gpu_stream.go - PlayStation GPU GP0 Word Stream

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
gpu_stream.go - GP0 Word Stream

The GP0 port receives one 32-bit word at a time. Words are collected into a
packet until the opcode's length is reached, then the packet is dispatched.
While an image upload (A0) is active, words bypass packet assembly and are
written into VRAM two pixels at a time; the transfer wraps at the VRAM
edges. Image store (C0) is the reverse direction through ReadGPUData.

Polyline packets have no length. They complete on the terminator word once
it can no longer be vertex data, or when the word cap is hit.
*/

package main

// WriteGP0 feeds one word into the command port.
func (g *GPU) WriteGP0(word uint32) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return g.writeGP0(word)
}

// WriteGP0Words feeds a block of words, as a DMA transfer would. It stops
// at the first packet that fails to decode.
func (g *GPU) WriteGP0Words(words []uint32) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	for _, w := range words {
		if err := g.writeGP0(w); err != nil {
			return err
		}
	}
	return nil
}

func (g *GPU) writeGP0(word uint32) error {
	rc := g.rc
	if rc.dataWriteMode == DR_VRAMTRANSFER {
		rc.writeVRAMWord(word)
		return nil
	}

	if len(g.packet) == 0 {
		g.need, g.variable = PacketWords(uint8(word >> 24))
	}
	g.packet = append(g.packet, word)

	if !g.packetComplete() {
		return nil
	}
	words := g.packet
	g.packet = g.packet[:0]

	if g.packetHook != nil {
		g.packetHook(words)
	}
	var err error
	if rc.skipFrame {
		err = rc.DispatchSkip(words)
	} else {
		err = rc.Dispatch(words)
	}
	if err != nil {
		return err
	}
	rc.startTransfers()
	return nil
}

func (g *GPU) packetComplete() bool {
	n := len(g.packet)
	if !g.variable {
		return n >= g.need
	}
	if n > PSX_MAX_POLYLINE_IDX {
		return true
	}
	last := n - 1
	if !isPolylineEnd(g.packet[last]) {
		return false
	}
	if uint8(g.packet[0]>>24)&0x10 != 0 {
		// shaded: the terminator replaces a colour word
		return last >= 4 && last%2 == 0
	}
	return last >= 3
}

// startTransfers drops image transfers with an empty rectangle.
func (rc *RenderContext) startTransfers() {
	if rc.dataWriteMode == DR_VRAMTRANSFER && (rc.vramWrite.Width <= 0 || rc.vramWrite.Height <= 0) {
		rc.dataWriteMode = DR_NORMAL
	}
	if rc.dataReadMode == DR_VRAMTRANSFER && (rc.vramRead.Width <= 0 || rc.vramRead.Height <= 0) {
		rc.dataReadMode = DR_NORMAL
		rc.statusReg &^= STATUS_READY_VRAM
	}
}

// writeVRAMWord stores the two pixels of one upload word.
func (rc *RenderContext) writeVRAMWord(word uint32) {
	w := &rc.vramWrite
	for i := 0; i < 2 && w.CurY < w.Height; i++ {
		rc.setVRAM(w.X+w.CurX, w.Y+w.CurY, uint16(word>>(16*uint(i))))
		w.CurX++
		if w.CurX >= w.Width {
			w.CurX = 0
			w.CurY++
		}
	}
	w.RowsRemaining = w.Width - w.CurX
	w.ColsRemaining = w.Height - w.CurY
	if w.CurY >= w.Height {
		rc.dataWriteMode = DR_NORMAL
		rc.CheckWriteUpdate()
	}
}

// readVRAMWord fetches the next two pixels of a store transfer.
func (rc *RenderContext) readVRAMWord() uint32 {
	r := &rc.vramRead
	var out uint32
	for i := 0; i < 2 && r.CurY < r.Height; i++ {
		out |= uint32(rc.vramAt(r.X+r.CurX, r.Y+r.CurY)) << (16 * uint(i))
		r.CurX++
		if r.CurX >= r.Width {
			r.CurX = 0
			r.CurY++
		}
	}
	r.RowsRemaining = r.Width - r.CurX
	r.ColsRemaining = r.Height - r.CurY
	if r.CurY >= r.Height {
		rc.dataReadMode = DR_NORMAL
		rc.statusReg &^= STATUS_READY_VRAM
	}
	return out
}

// ReadGPUData returns the next word of an image store, or the last GP1
// info result when no store is active.
func (g *GPU) ReadGPUData() uint32 {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.rc.dataReadMode == DR_VRAMTRANSFER {
		g.dataLatch = g.rc.readVRAMWord()
	}
	return g.dataLatch
}

// PendingWords reports how many words of an unfinished packet are buffered.
func (g *GPU) PendingWords() int {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return len(g.packet)
}
