package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneType    string
	width        int
	samples      int
	maxPasses    int
	workers      int
	singleThread bool
	rrMinBounces int
	plyPath      string
	texturePath  string
	output       string
	writeToFile  bool
	listScenes   bool
}

func parseOptions(args []string, output io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.sceneType, "scene", "weekend", "Built-in scene id (see -list)")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.samples, "spp", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.maxPasses, "passes", renderer.DefaultProgressiveConfig().MaxPasses, "Maximum number of progressive passes")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.BoolVar(&opts.singleThread, "single-thread", false, "Render on a single goroutine")
	fs.IntVar(&opts.rrMinBounces, "rr", -1, "Bounces before Russian roulette (0 disables, -1 = scene default)")
	fs.StringVar(&opts.plyPath, "ply", "", "Render a PLY model on a floor instead of a built-in scene")
	fs.StringVar(&opts.texturePath, "texture", "", "Image file used as the floor texture of the mesh scene")
	fs.StringVar(&opts.output, "output", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	fs.BoolVar(&opts.writeToFile, "write", true, "Write the final image to a PNG file")
	fs.BoolVar(&opts.listScenes, "list", false, "List built-in scenes and exit")

	fs.Usage = func() {
		fmt.Fprintln(output, "Progressive Path Tracer")
		fmt.Fprintln(output, "Usage: pathtracer [options]")
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if opts.listScenes {
		for _, info := range scene.ListBuiltinScenes() {
			fmt.Printf("  %-10s %s\n", info.ID, info.Description)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// createScene builds the scene selected by the options
func createScene(opts options) (*scene.Scene, error) {
	var overrides []geometry.CameraConfig
	if opts.width > 0 {
		overrides = append(overrides, geometry.CameraConfig{Width: opts.width})
	}

	if opts.plyPath != "" {
		model, err := loaders.LoadPLYMesh(opts.plyPath, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load model: %w", err)
		}
		return scene.NewModelScene(model, core.IdentityTransform(), overrides...)
	}

	if opts.texturePath != "" {
		if opts.sceneType != "mesh" {
			return nil, fmt.Errorf("-texture applies to the mesh scene, not %q", opts.sceneType)
		}
		texture, err := loaders.LoadTexture(opts.texturePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load texture: %w", err)
		}
		return scene.NewMeshScene(texture, overrides...)
	}

	return scene.NewBuiltinScene(opts.sceneType, overrides...)
}

// renderSettings applies command line overrides to the scene's settings
func renderSettings(s *scene.Scene, opts options) renderer.RenderSettings {
	settings := renderer.SettingsForScene(s)
	if opts.samples > 0 {
		settings.SamplesPerPixel = opts.samples
	}
	if opts.rrMinBounces >= 0 {
		settings.RussianRouletteMinBounces = opts.rrMinBounces
	}
	settings.NumWorkers = opts.workers
	settings.SingleThread = opts.singleThread
	settings.WriteToFile = opts.writeToFile
	settings.OutputPath = opts.output
	if settings.OutputPath == "" {
		name := opts.sceneType
		if opts.plyPath != "" {
			name = "model"
		}
		timestamp := time.Now().Format("20060102_150405")
		settings.OutputPath = filepath.Join("output", name, fmt.Sprintf("render_%s.png", timestamp))
	}
	return settings
}

func run(ctx context.Context, opts options, logger core.Logger) error {
	s, err := createScene(opts)
	if err != nil {
		return err
	}

	settings := renderSettings(s, opts)
	config := renderer.DefaultProgressiveConfig()
	config.MaxPasses = opts.maxPasses

	view := renderer.ViewForScene(s)
	logger.Printf("Rendering %s: %dx%d, %d samples per pixel, %d primitives\n",
		opts.sceneType, view.Width, view.Height, settings.SamplesPerPixel, s.GetPrimitiveCount())

	raytracer, err := renderer.NewProgressiveRaytracer(s, config, settings, logger)
	if err != nil {
		return err
	}

	startTime := time.Now()
	passChan, _, errChan := raytracer.RenderProgressive(ctx, renderer.RenderOptions{})

	var final *image.RGBA
	for result := range passChan {
		final = result.Image
		if result.IsLast {
			logger.Printf("Average depth %.2f bounces per path\n", result.Stats.AverageDepth())
		}
	}
	if err := <-errChan; err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Render completed in %v\n", time.Since(startTime))

	if !settings.WriteToFile || final == nil {
		return nil
	}
	if err := savePNG(settings.OutputPath, final); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", settings.OutputPath)
	return nil
}

func savePNG(filename string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return nil
}
