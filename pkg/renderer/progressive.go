package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	InitialSamples int // Samples for first pass (1 recommended)
	MaxPasses      int // Maximum number of passes
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		InitialSamples: 1,
		MaxPasses:      7,
	}
}

// ProgressiveRaytracer drives repeated Render calls in passes of growing sample
// counts until the target samples per pixel is reached
type ProgressiveRaytracer struct {
	scene       *scene.Scene
	view        View
	config      ProgressiveConfig
	settings    RenderSettings
	frameBuffer *FrameBuffer
	tiles       []Tile
	currentPass int
	logger      core.Logger
}

// NewProgressiveRaytracer creates a new progressive raytracer for the scene's view
func NewProgressiveRaytracer(s *scene.Scene, config ProgressiveConfig, settings RenderSettings, logger core.Logger) (*ProgressiveRaytracer, error) {
	view := ViewForScene(s)
	fb, err := NewFrameBuffer(view)
	if err != nil {
		return nil, fmt.Errorf("progressive raytracer: %w", err)
	}
	if config.MaxPasses <= 0 {
		config.MaxPasses = 1
	}
	if config.InitialSamples <= 0 {
		config.InitialSamples = 1
	}
	if settings.SamplesPerPixel <= 0 {
		settings.SamplesPerPixel = 1
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &ProgressiveRaytracer{
		scene:       s,
		view:        view,
		config:      config,
		settings:    settings,
		frameBuffer: fb,
		tiles:       NewTileGrid(view.Width, view.Height, settings.TileSize),
		logger:      logger,
	}, nil
}

// FrameBuffer returns the accumulation buffer shared by all passes
func (pr *ProgressiveRaytracer) FrameBuffer() *FrameBuffer {
	return pr.frameBuffer
}

// getSamplesForPass calculates the target total samples for a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	maxSamples := pr.settings.SamplesPerPixel

	// Special case: if only 1 pass, use all samples
	if pr.config.MaxPasses == 1 {
		return maxSamples
	}

	// For multiple passes: first pass is quick preview
	if passNumber == 1 {
		return min(pr.config.InitialSamples, maxSamples)
	}

	// Divide remaining samples evenly across remaining passes
	remainingSamples := maxSamples - pr.config.InitialSamples
	remainingPasses := pr.config.MaxPasses - 1
	samplesPerPass := max(1, remainingSamples/remainingPasses)

	targetSamples := pr.config.InitialSamples + (passNumber-1)*samplesPerPass

	// For the final pass, use all remaining samples
	if passNumber == pr.config.MaxPasses {
		targetSamples = maxSamples
	}

	return min(targetSamples, maxSamples)
}

// RenderPass renders until every pixel holds the pass's target sample count.
// tileCallback, if set, receives each tile once the pass's last sample lands in it.
func (pr *ProgressiveRaytracer) RenderPass(ctx context.Context, passNumber int, tileCallback func(TileCompletionResult)) (*image.RGBA, RenderStats, error) {
	pr.currentPass = passNumber
	targetSamples := pr.getSamplesForPass(passNumber)

	pr.logger.Printf("Pass %d: Target %d samples per pixel...\n", passNumber, targetSamples)

	var stats RenderStats
	for pr.frameBuffer.CurrentSample < targetSamples {
		var onTile func(Tile, TileResult)
		if tileCallback != nil && pr.frameBuffer.CurrentSample+1 == targetSamples {
			tileNumber := 0
			onTile = func(tile Tile, result TileResult) {
				tileNumber++
				tileCallback(TileCompletionResult{
					TileX:       tile.Bounds.Min.X / pr.tileSize(),
					TileY:       tile.Bounds.Min.Y / pr.tileSize(),
					TileImage:   extractTileImage(pr.frameBuffer, tile.Bounds),
					PassNumber:  passNumber,
					TileNumber:  tileNumber,
					TotalTiles:  len(pr.tiles),
					TotalPasses: pr.config.MaxPasses,
				})
			}
		}

		sampleStats, err := render(ctx, pr.scene, pr.view, pr.frameBuffer, pr.settings, onTile)
		if err != nil {
			return nil, stats, err
		}
		stats.add(sampleStats)
		stats.Duration += sampleStats.Duration
	}
	stats.SamplesPerPixel = pr.frameBuffer.CurrentSample

	return ToImage(pr.frameBuffer), stats, nil
}

func (pr *ProgressiveRaytracer) tileSize() int {
	if pr.settings.TileSize <= 0 {
		return DefaultTileSize
	}
	return pr.settings.TileSize
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	IsLast     bool
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX      int // Tile coordinates (not pixel coordinates)
	TileY      int
	TileImage  *image.RGBA // Image data for just this tile
	PassNumber int         // Which pass this tile was rendered in

	// Progress information
	TileNumber  int // Current tile number in this pass (1-based)
	TotalTiles  int // Total number of tiles in the image
	TotalPasses int // Total number of passes planned
}

// RenderOptions configures progressive rendering behavior
type RenderOptions struct {
	TileUpdates bool // Whether to generate tile completion events
}

// RenderProgressive renders with channel-based communication.
// The caller should drain the channels; passChan closes after the last pass.
// If options.TileUpdates is false, the tile channel is closed immediately.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context, options RenderOptions) (<-chan PassResult, <-chan TileCompletionResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	tileChan := make(chan TileCompletionResult, 100)
	errChan := make(chan error, 1)

	if !options.TileUpdates {
		close(tileChan)
	}

	go func() {
		defer close(passChan)
		if options.TileUpdates {
			defer close(tileChan)
		}
		defer close(errChan)

		pr.logger.Printf("Starting progressive rendering with %d passes...\n", pr.config.MaxPasses)

		for pass := 1; pass <= pr.config.MaxPasses; pass++ {
			select {
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()

			var tileCallback func(TileCompletionResult)
			if options.TileUpdates {
				tileCallback = func(result TileCompletionResult) {
					select {
					case tileChan <- result:
					case <-ctx.Done():
					default:
						// Slow consumer, drop the update
					}
				}
			}

			img, stats, err := pr.RenderPass(ctx, pass, tileCallback)
			if err != nil {
				pr.logger.Printf("Pass %d failed: %v\n", pass, err)
				errChan <- err
				return
			}

			pr.logger.Printf("Pass %d completed in %v (%d samples/pixel)\n",
				pass, time.Since(startTime), stats.SamplesPerPixel)

			isLast := pass == pr.config.MaxPasses || stats.SamplesPerPixel >= pr.settings.SamplesPerPixel
			result := PassResult{
				PassNumber: pass,
				Image:      img,
				Stats:      stats,
				IsLast:     isLast,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			if isLast {
				pr.logger.Printf("Reached %d samples per pixel, stopping.\n", stats.SamplesPerPixel)
				return
			}
		}
	}()

	return passChan, tileChan, errChan
}
