package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// DefaultTileSize is the edge length of a square render tile
const DefaultTileSize = 64

// ErrNoCamera is returned when rendering a scene without a camera
var ErrNoCamera = errors.New("scene has no camera")

// RenderSettings contains the options for a render
type RenderSettings struct {
	SingleThread              bool          // Render tiles sequentially on the calling goroutine
	SamplesPerPixel           int           // Target accumulation count for progressive drivers
	MaxDepth                  int           // Maximum ray bounce depth
	SkyColorTint              core.Spectrum // Multiplies every environment lookup
	WriteToFile               bool          // Write the final image as PNG
	OutputPath                string        // PNG destination when WriteToFile is set
	NumWorkers                int           // Parallel workers (0 = use CPU count)
	TileSize                  int           // Tile edge length in pixels
	RussianRouletteMinBounces int           // Bounces before Russian roulette may end a path; 0 disables it

	// NewSampler creates the sampler for one tile and sample. Defaults to a seeded RandomSampler.
	NewSampler func(seed int64) core.Sampler
}

// DefaultRenderSettings returns sensible default values
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		SamplesPerPixel: 100,
		MaxDepth:        integrator.DefaultMaxDepth,
		SkyColorTint:    core.White,
		TileSize:        DefaultTileSize,
		NewSampler:      defaultSampler,
	}
}

// SettingsForScene returns the default settings tuned with the scene's sampling config
func SettingsForScene(s *scene.Scene) RenderSettings {
	settings := DefaultRenderSettings()
	if s.SamplingConfig.SamplesPerPixel > 0 {
		settings.SamplesPerPixel = s.SamplingConfig.SamplesPerPixel
	}
	if s.SamplingConfig.MaxDepth > 0 {
		settings.MaxDepth = s.SamplingConfig.MaxDepth
	}
	settings.RussianRouletteMinBounces = s.SamplingConfig.RussianRouletteMinBounces
	return settings
}

// ViewForScene returns the image size the scene was set up for
func ViewForScene(s *scene.Scene) View {
	return View{Width: s.SamplingConfig.Width, Height: s.SamplingConfig.Height}
}

// integratorConfig maps render settings onto the integrator
func (rs RenderSettings) integratorConfig() integrator.Config {
	return integrator.Config{
		MaxDepth:                  rs.MaxDepth,
		RussianRouletteMinBounces: rs.RussianRouletteMinBounces,
		SkyColorTint:              rs.SkyColorTint,
	}
}

// Render adds exactly one sample to every pixel of fb and increments fb.CurrentSample.
// Call it repeatedly to refine the image. If ctx is cancelled mid-pass the error is
// returned, CurrentSample is left unchanged, and fb should be discarded.
func Render(ctx context.Context, s *scene.Scene, view View, fb *FrameBuffer, settings RenderSettings) (RenderStats, error) {
	return render(ctx, s, view, fb, settings, nil)
}

func render(ctx context.Context, s *scene.Scene, view View, fb *FrameBuffer, settings RenderSettings, onTile func(Tile, TileResult)) (RenderStats, error) {
	if err := view.Validate(); err != nil {
		return RenderStats{}, err
	}
	if fb == nil || !fb.matches(view) {
		return RenderStats{}, fmt.Errorf("%w: frame buffer does not match %dx%d", ErrInvalidView, view.Width, view.Height)
	}
	if s == nil || s.Camera == nil {
		return RenderStats{}, ErrNoCamera
	}

	start := time.Now()
	sample := fb.CurrentSample + 1

	tileRenderer := NewTileRenderer(s, integrator.NewPathTracingIntegrator(settings.integratorConfig()), settings.NewSampler)
	tiles := NewTileGrid(view.Width, view.Height, settings.TileSize)

	var stats RenderStats
	if settings.SingleThread {
		for i, tile := range tiles {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			tileStats := tileRenderer.RenderTile(tile, fb, sample)
			stats.add(tileStats)
			if onTile != nil {
				onTile(tile, TileResult{TaskID: i, Stats: tileStats})
			}
		}
	} else {
		tasks := make([]TileTask, len(tiles))
		for i, tile := range tiles {
			tasks[i] = TileTask{Tile: tile, Sample: sample}
		}

		var notify func(TileResult)
		if onTile != nil {
			notify = func(result TileResult) { onTile(tiles[result.TaskID], result) }
		}

		poolStats, err := NewWorkerPool(tileRenderer, settings.NumWorkers).Run(ctx, fb, tasks, notify)
		stats = poolStats
		if err != nil {
			return stats, err
		}
	}

	fb.CurrentSample = sample
	stats.SamplesPerPixel = sample
	stats.Duration = time.Since(start)
	return stats, nil
}
