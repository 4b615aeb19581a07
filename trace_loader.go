// trace_loader.go - GPU Command Trace Loading and Replay

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
trace_loader.go - GPU Command Trace Loading and Replay

A trace is a recorded stream of GPU port writes:

  "PSXT" magic
  repeated records: kind (1 byte) + value (uint32 little endian)

  kind 0: GP0 word
  kind 1: GP1 word
  kind 2: vertical blank (value ignored)

Trace files may be compressed; the extension picks the decoder
(.lz4, .xz, .br, .zst). All file access goes through an afero.Fs so
traces can be replayed from memory in tests.
*/

package main

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/spf13/afero"
	"github.com/ulikunitz/xz"
)

const traceMagic = "PSXT"

type TraceKind uint8

const (
	TRACE_GP0 TraceKind = iota
	TRACE_GP1
	TRACE_VSYNC
)

type TraceRecord struct {
	Kind  TraceKind
	Value uint32
}

var ErrBadTrace = errors.New("not a gpu trace")

// openDecompressed wraps r with the decoder matching the file extension.
func openDecompressed(path string, r io.Reader) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lz4":
		return lz4.NewReader(r), func() {}, nil
	case ".xz":
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("xz: %w", err)
		}
		return xr, func() {}, nil
	case ".br":
		return brotli.NewReader(r), func() {}, nil
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd: %w", err)
		}
		return zr, zr.Close, nil
	}
	return r, func() {}, nil
}

// LoadTrace reads every record of a trace file.
func LoadTrace(fs afero.Fs, path string) ([]TraceRecord, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, done, err := openDecompressed(path, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer done()

	recs, err := ReadTrace(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// ReadTrace decodes an uncompressed trace stream.
func ReadTrace(r io.Reader) ([]TraceRecord, error) {
	br := bufio.NewReader(r)
	magic := make([]byte, len(traceMagic))
	if _, err := io.ReadFull(br, magic); err != nil || string(magic) != traceMagic {
		return nil, ErrBadTrace
	}

	var recs []TraceRecord
	var buf [5]byte
	for {
		_, err := io.ReadFull(br, buf[:])
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(recs), err)
		}
		kind := TraceKind(buf[0])
		if kind > TRACE_VSYNC {
			return nil, fmt.Errorf("record %d: unknown kind %d", len(recs), kind)
		}
		recs = append(recs, TraceRecord{Kind: kind, Value: binary.LittleEndian.Uint32(buf[1:])})
	}
}

// TraceWriter records port writes in trace format.
type TraceWriter struct {
	w   *bufio.Writer
	err error
	n   int
}

func NewTraceWriter(w io.Writer) (*TraceWriter, error) {
	tw := &TraceWriter{w: bufio.NewWriter(w)}
	if _, err := tw.w.WriteString(traceMagic); err != nil {
		return nil, err
	}
	return tw, nil
}

func (tw *TraceWriter) Write(kind TraceKind, value uint32) {
	if tw.err != nil {
		return
	}
	var buf [5]byte
	buf[0] = byte(kind)
	binary.LittleEndian.PutUint32(buf[1:], value)
	_, tw.err = tw.w.Write(buf[:])
	tw.n++
}

// Packet records a complete GP0 packet. It fits SetPacketHook.
func (tw *TraceWriter) Packet(words []uint32) {
	for _, w := range words {
		tw.Write(TRACE_GP0, w)
	}
}

func (tw *TraceWriter) Records() int { return tw.n }

func (tw *TraceWriter) Flush() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.w.Flush()
}

// ReplayOptions controls trace playback.
type ReplayOptions struct {
	FrameDelay time.Duration // pause after each vsync, zero runs flat out
	Loop       bool
	Paused     func() bool
	OnError    func(index int, err error) bool // return false to stop
}

// ReplayTrace feeds records into g until the trace ends or ctx is done.
// Packet decode errors are reported through OnError and skipped otherwise.
func ReplayTrace(ctx context.Context, g *GPU, recs []TraceRecord, opts ReplayOptions) error {
	var tick *time.Ticker
	if opts.FrameDelay > 0 {
		tick = time.NewTicker(opts.FrameDelay)
		defer tick.Stop()
	}

	for {
		for i, rec := range recs {
			switch rec.Kind {
			case TRACE_GP0:
				if err := g.WriteGP0(rec.Value); err != nil {
					if opts.OnError != nil && !opts.OnError(i, err) {
						return err
					}
				}
			case TRACE_GP1:
				g.WriteGP1(rec.Value)
			case TRACE_VSYNC:
				g.VSync()
				for opts.Paused != nil && opts.Paused() {
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-time.After(10 * time.Millisecond):
					}
				}
				if tick != nil {
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-tick.C:
					}
				}
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
		if !opts.Loop || len(recs) == 0 {
			return nil
		}
	}
}
