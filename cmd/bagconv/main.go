package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"file-bag/internal/convert"
	"file-bag/internal/imageconv"
	"file-bag/internal/scratch"
	"file-bag/internal/videoconv"

	"github.com/gabriel-vasile/mimetype"
)

func main() {
	var (
		inPath  = flag.String("in", "", "input media file (required)")
		formats = flag.String("formats", "", "comma-separated output formats (required)")
		tierArg = flag.String("tier", "free", `account tier: "free" or "premium"`)
		outDir  = flag.String("out", ".", "output directory")
	)
	flag.Parse()

	if *inPath == "" || *formats == "" {
		flag.Usage()
		os.Exit(1)
	}

	// Cancel in-flight work on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		cancel()
	}()

	if err := run(ctx, *inPath, *formats, *tierArg, *outDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, inPath, formats, tierArg, outDir string) error {
	input, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	kind, err := detectKind(input)
	if err != nil {
		return err
	}

	if err := imageconv.InitVips(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: libvips unavailable, using fallback image pipeline: %v\n", err)
	}
	defer imageconv.ShutdownVips()

	scratchDir := os.Getenv("SCRATCH_DIR")
	if scratchDir == "" {
		scratchDir = os.TempDir()
	}
	space, err := scratch.New(scratchDir)
	if err != nil {
		return fmt.Errorf("failed to initialize scratch space: %w", err)
	}

	videoCfg := videoconv.DefaultConfig()
	if p := os.Getenv("FFMPEG_PATH"); p != "" {
		videoCfg.FFmpegPath = p
	}

	converter := convert.New(
		imageconv.New(imageconv.DefaultConfig()),
		videoconv.New(videoCfg, space),
		"https://putthefilesinthebag.xyz/media",
	)

	var requested []string
	for _, f := range strings.Split(formats, ",") {
		if f = strings.TrimSpace(f); f != "" {
			requested = append(requested, f)
		}
	}

	results, err := converter.Convert(ctx, convert.Request{
		Input:        input,
		OriginalName: filepath.Base(inPath),
		Kind:         kind,
		Formats:      requested,
		Tier:         convert.ParseTier(tierArg),
	})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no format converted successfully")
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, res := range results {
		dest := filepath.Join(outDir, res.Filename)
		if err := os.WriteFile(dest, res.Payload, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", dest, err)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", dest, res.Size)
	}
	if len(results) < len(requested) {
		fmt.Printf("Converted %d of %d requested formats\n", len(results), len(requested))
	}
	return nil
}

func detectKind(input []byte) (convert.MediaKind, error) {
	mime := mimetype.Detect(input).String()
	switch {
	case strings.HasPrefix(mime, "image/"):
		return convert.KindImage, nil
	case strings.HasPrefix(mime, "video/"):
		return convert.KindVideo, nil
	default:
		return 0, fmt.Errorf("unsupported input type %s, only images and videos are supported", mime)
	}
}
