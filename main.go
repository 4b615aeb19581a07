// main.go - Trace replay front end for IntuitionGPU

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
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// Version is stamped at build time with -ldflags "-X main.Version=..."
var Version = "dev"

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147mIntuitionGPU\033[0m - PlayStation GPU command interpreter")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("License: GPLv3 or later")
}

type runOptions struct {
	input       string
	headless    bool
	vulkan      bool
	verbose     bool
	loop        bool
	fps         int
	scale       int
	fullscreen  bool
	outPNG      string
	record      string
	snapshotIn  string
	snapshotOut string
}

func main() {
	var (
		opts      runOptions
		cfg       = DefaultGPUConfig()
		fixes     string
		features  bool
		showUsage bool
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.BoolVar(&opts.headless, "headless", false, "Replay without opening a window")
	flagSet.BoolVar(&opts.vulkan, "vulkan", true, "Use the Vulkan renderer when a device is present")
	flagSet.BoolVar(&opts.verbose, "v", false, "Log every GP0 packet")
	flagSet.BoolVar(&opts.loop, "loop", false, "Restart the trace when it ends")
	flagSet.IntVar(&opts.fps, "fps", 60, "Frames per second to pace vsync records at (0 = unpaced)")
	flagSet.IntVar(&opts.scale, "scale", 2, "Window scale factor (1-4)")
	flagSet.BoolVar(&opts.fullscreen, "fullscreen", false, "Start fullscreen")
	flagSet.StringVar(&opts.outPNG, "out", "", "Write the final frame to a PNG file")
	flagSet.StringVar(&opts.record, "record", "", "Record dispatched packets to a trace file")
	flagSet.StringVar(&opts.snapshotIn, "snapshot-in", "", "Restore VRAM and state before replaying")
	flagSet.StringVar(&opts.snapshotOut, "snapshot-out", "", "Save VRAM and state after replaying")

	flagSet.IntVar(&cfg.OffscreenDrawing, "offscreen", cfg.OffscreenDrawing, "Offscreen drawing level (0-4)")
	flagSet.IntVar(&cfg.FilterType, "filter", cfg.FilterType, "Texture filter type (0-6)")
	flagSet.BoolVar(&cfg.UseMultiPass, "multipass", cfg.UseMultiPass, "Two pass textured blending")
	flagSet.BoolVar(&cfg.UseMask, "mask", cfg.UseMask, "Emulate the mask bit")
	flagSet.BoolVar(&cfg.OpaquePass, "opaque", cfg.OpaquePass, "Split opaque and semi transparent texels")
	flagSet.BoolVar(&cfg.GLBlend, "glblend", cfg.GLBlend, "Modulate with 0x7f7f7f instead of doubled colours")
	flagSet.BoolVar(&cfg.SmallAlpha, "smallalpha", cfg.SmallAlpha, "Point sampled opaque pass for small sprites")
	flagSet.BoolVar(&cfg.FullVRAM, "fullvram", cfg.FullVRAM, "Mirror every primitive into VRAM")
	flagSet.BoolVar(&cfg.TileCheat, "tilecheat", cfg.TileCheat, "Skip mirroring white 32 pixel tiles")
	flagSet.BoolVar(&cfg.FrameSkip, "frameskip", cfg.FrameSkip, "Render every other frame")
	flagSet.IntVar(&cfg.VRAMHeight, "vram", cfg.VRAMHeight, "VRAM height (512 or 1024)")
	flagSet.IntVar(&cfg.GPUVersion, "gpuver", cfg.GPUVersion, "GPU revision (1 or 2)")
	flagSet.IntVar(&cfg.DisplayWidth, "width", cfg.DisplayWidth, "Render surface width")
	flagSet.IntVar(&cfg.DisplayHeight, "height", cfg.DisplayHeight, "Render surface height")
	flagSet.StringVar(&fixes, "fixes", "0", "Game fix bits (hex or decimal)")
	flagSet.BoolVar(&features, "features", false, "Print compiled features and exit")
	flagSet.BoolVar(&showUsage, "h", false, "Show usage")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./intuition_gpu [flags] trace.psxt[.lz4|.xz|.br|.zst] | scene.lua")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			flagSet.Usage()
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if showUsage {
		flagSet.Usage()
		os.Exit(0)
	}
	if features {
		printFeatures()
		os.Exit(0)
	}

	boilerPlate()

	fixBits, err := parseUint16Flag(fixes)
	if err != nil {
		fmt.Printf("Error: invalid -fixes value: %v\n", err)
		os.Exit(1)
	}
	cfg.Fixes = uint32(fixBits)

	opts.input = flagSet.Arg(0)
	if opts.input == "" {
		fmt.Println("Error: a trace or script file is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, afero.NewOsFs(), cfg, opts); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// newRenderer picks the Vulkan renderer when requested and falls back to
// plain software rasterization.
func newRenderer(useVulkan bool) Renderer {
	if useVulkan {
		return NewVulkanRenderer()
	}
	return NewSoftwareRenderer()
}

func run(ctx context.Context, fs afero.Fs, cfg GPUConfig, opts runOptions) error {
	gpu, err := NewGPU(cfg, newRenderer(opts.vulkan))
	if err != nil {
		return err
	}
	defer gpu.Destroy()

	if vr, ok := gpu.renderer.(*VulkanRenderer); ok {
		log.Printf("gpu: vulkan device present: %v", vr.Accelerated())
	}

	if opts.snapshotIn != "" {
		snap, err := LoadSnapshotFile(fs, opts.snapshotIn)
		if err != nil {
			return fmt.Errorf("loading snapshot: %w", err)
		}
		if err := gpu.RestoreSnapshot(snap); err != nil {
			return fmt.Errorf("restoring snapshot: %w", err)
		}
	}

	var recorder *TraceWriter
	if opts.record != "" {
		f, err := fs.Create(opts.record)
		if err != nil {
			return fmt.Errorf("creating trace: %w", err)
		}
		defer f.Close()
		if recorder, err = NewTraceWriter(f); err != nil {
			return err
		}
	}
	gpu.SetPacketHook(func(words []uint32) {
		if opts.verbose {
			log.Printf("gpu: %s", DisassembleGP0(words))
		}
		if recorder != nil {
			recorder.Packet(words)
		}
	})

	var paused atomic.Bool
	keys := func(b byte) {
		switch b {
		case ' ', 'p':
			paused.Store(!paused.Load())
			log.Printf("gpu: paused=%v", paused.Load())
		}
	}

	group, gctx := errgroup.WithContext(ctx)
	gctx, cancel := context.WithCancel(gctx)
	defer cancel()

	var out VideoOutput
	var compositor *VideoCompositor
	if !opts.headless {
		if out, err = NewVideoOutput(VIDEO_BACKEND_EBITEN); err != nil {
			return err
		}
		out.SetDisplayConfig(DisplayConfig{
			Width:      cfg.DisplayWidth,
			Height:     cfg.DisplayHeight,
			Scale:      opts.scale,
			Fullscreen: opts.fullscreen,
		})
		wireControls(gctx, out, gpu, fs, keys)
		if err := out.Start(); err != nil {
			return err
		}
		defer out.Close()

		compositor = NewVideoCompositor(out)
		compositor.SetDimensions(cfg.DisplayWidth, cfg.DisplayHeight)
		compositor.RegisterSource(gpu)
		compositor.Start()
		defer compositor.Stop()

		if eo, ok := out.(interface{ Done() <-chan struct{} }); ok {
			group.Go(func() error {
				select {
				case <-eo.Done():
					cancel()
				case <-gctx.Done():
				}
				return nil
			})
		}
	} else if term.IsTerminal(int(os.Stdin.Fd())) {
		restore, err := rawKeys(gctx, keys)
		if err != nil {
			log.Printf("gpu: keyboard unavailable: %v", err)
		} else {
			defer restore()
		}
	}

	group.Go(func() error {
		defer cancel()
		err := replayInput(gctx, fs, gpu, opts, paused.Load)
		if err == nil && !opts.headless && !opts.loop {
			// keep the last frame on screen until the window closes
			<-gctx.Done()
		}
		return err
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if recorder != nil {
		if err := recorder.Flush(); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		log.Printf("trace: recorded %d words to %s", recorder.Records(), opts.record)
	}
	if opts.snapshotOut != "" {
		if err := SaveSnapshotFile(fs, opts.snapshotOut, gpu.TakeSnapshot()); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
	}
	if opts.outPNG != "" {
		frame, w, h := pngFrame(out, gpu)
		if err := writePNG(fs, opts.outPNG, frame, w, h); err != nil {
			return fmt.Errorf("writing %s: %w", opts.outPNG, err)
		}
	}

	swaps, vsyncs := gpu.Frames()
	log.Printf("gpu: %d swaps, %d vsyncs", swaps, vsyncs)
	return nil
}

// replayInput runs a Lua scene or a recorded trace depending on the extension.
func replayInput(ctx context.Context, fs afero.Fs, gpu *GPU, opts runOptions, paused func() bool) error {
	if strings.EqualFold(filepath.Ext(opts.input), ".lua") {
		return NewScriptRunner(gpu).RunFile(ctx, fs, opts.input)
	}

	recs, err := LoadTrace(fs, opts.input)
	if err != nil {
		return err
	}
	log.Printf("trace: %s: %d records", opts.input, len(recs))

	var delay time.Duration
	if opts.fps > 0 {
		delay = time.Second / time.Duration(opts.fps)
	}
	return ReplayTrace(ctx, gpu, recs, ReplayOptions{
		FrameDelay: delay,
		Loop:       opts.loop,
		Paused:     paused,
		OnError: func(index int, err error) bool {
			log.Printf("trace: record %d: %v", index, err)
			return true
		},
	})
}

// wireControls connects the window's keys, reset and paste hooks.
func wireControls(ctx context.Context, out VideoOutput, gpu *GPU, fs afero.Fs, keys func(byte)) {
	if ki, ok := out.(KeyboardInput); ok {
		ki.SetKeyHandler(keys)
	}
	if cc, ok := out.(ControlCapable); ok {
		cc.SetHardResetHandler(gpu.Reset)
		cc.SetPasteHandler(func(path string) {
			log.Printf("trace: replaying pasted path %s", path)
			recs, err := LoadTrace(fs, path)
			if err != nil {
				log.Printf("trace: %v", err)
				return
			}
			if err := ReplayTrace(ctx, gpu, recs, ReplayOptions{}); err != nil {
				log.Printf("trace: %v", err)
			}
		})
	}
	if sc, ok := out.(StatusCapable); ok {
		sc.SetStatusProvider(func() []StatusLine { return gpuStatusLines(gpu) })
	}
}

// gpuStatusLines describes the GPU for the window status bar.
func gpuStatusLines(gpu *GPU) []StatusLine {
	stat := gpu.Status()
	swaps, vsyncs := gpu.Frames()
	accel := false
	var pipelines int
	if vr, ok := gpu.renderer.(*VulkanRenderer); ok {
		accel = vr.Accelerated()
		pipelines, _ = vr.PipelineStats()
	}
	return []StatusLine{
		{Label: "GPU  ", Tokens: []StatusToken{
			{Name: "DISP", On: stat&STATUS_DISPLAY_OFF == 0},
			{Name: "|"},
			{Name: "ILACE", On: stat&STATUS_INTERLACE != 0},
			{Name: "|"},
			{Name: "RGB24", On: stat&STATUS_RGB24 != 0},
			{Name: "|"},
			{Name: "VK", On: accel},
		}},
		{Label: "STATS", Tokens: []StatusToken{
			{Name: fmt.Sprintf("swaps %d", swaps), On: true},
			{Name: fmt.Sprintf("vsyncs %d", vsyncs), On: true},
			{Name: fmt.Sprintf("pipelines %d", pipelines), On: pipelines > 0},
		}},
	}
}

// rawKeys puts the terminal in raw mode and forwards key presses until ctx
// is done.
func rawKeys(ctx context.Context, keys func(byte)) (func(), error) {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	go func() {
		buf := make([]byte, 1)
		for ctx.Err() == nil {
			n, err := os.Stdin.Read(buf)
			if err != nil || n == 0 {
				return
			}
			if buf[0] == 3 { // Ctrl+C is swallowed by raw mode
				p, _ := os.FindProcess(os.Getpid())
				p.Signal(os.Interrupt)
				return
			}
			keys(buf[0])
		}
	}()
	return func() { term.Restore(fd, state) }, nil
}

// pngFrame picks what a PNG dump shows: the composited window frame when an
// output keeps one, otherwise the GPU's presented frame.
func pngFrame(out VideoOutput, gpu *GPU) ([]byte, int, int) {
	if sc, ok := out.(SnapshotCapable); ok {
		snap, err := sc.GetSnapshot()
		if err == nil && snap.Format == PixelFormatRGBA && snap.Width > 0 &&
			len(snap.Buffer) >= snap.Width*snap.Height*4 {
			return snap.Buffer, snap.Width, snap.Height
		}
	}
	w, h := gpu.GetDimensions()
	return gpu.GetFrame(), w, h
}

func writePNG(fs afero.Fs, path string, rgba []byte, w, h int) error {
	if len(rgba) < w*h*4 {
		return fmt.Errorf("frame has %d bytes, need %d", len(rgba), w*h*4)
	}
	img := &image.RGBA{Pix: append([]byte(nil), rgba[:w*h*4]...), Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	f, err := fs.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func parseUint16Flag(value string) (uint16, error) {
	parsed, err := strconv.ParseUint(value, 0, 16)
	if err != nil {
		return 0, err
	}
	if parsed > 0xFFFF {
		return 0, fmt.Errorf("value out of range: 0x%X", parsed)
	}
	return uint16(parsed), nil
}
