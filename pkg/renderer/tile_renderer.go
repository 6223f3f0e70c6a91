package renderer

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, row-major over the tile grid
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []Tile {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]Tile, 0, tilesX*tilesY)
	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, Tile{ID: len(tiles), Bounds: image.Rect(x0, y0, x1, y1)})
		}
	}

	return tiles
}

// tileSeed derives the sampler seed for one tile and sample index.
// Seeds depend only on the tile and the sample, never on the worker.
func tileSeed(tileID, sample int) int64 {
	return int64(sample)*1_000_003 + int64(tileID) + 42
}

// TileRenderer traces one sample for every pixel of a tile
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	newSampler func(seed int64) core.Sampler
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(s *scene.Scene, integratorInst integrator.Integrator, newSampler func(seed int64) core.Sampler) *TileRenderer {
	if newSampler == nil {
		newSampler = defaultSampler
	}
	return &TileRenderer{
		scene:      s,
		integrator: integratorInst,
		newSampler: newSampler,
	}
}

// RenderTile adds sample number `sample` (1-based) to every fragment inside the tile.
// Tiles never overlap, so concurrent calls on distinct tiles are safe.
func (tr *TileRenderer) RenderTile(tile Tile, fb *FrameBuffer, sample int) RenderStats {
	camera := tr.scene.Camera
	sampler := tr.newSampler(tileSeed(tile.ID, sample))

	stats := RenderStats{Tiles: 1}
	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			fragment := fb.At(x, y)

			uv := core.SampleFromPixel(sampler, x, y, fb.Width, fb.Height)
			fragment.Ray = camera.GetRay(uv, sampler)

			traced := tr.integrator.Li(*fragment, tr.scene, sampler)
			traced.Accumulate(traced.Radiance, sample)
			*fragment = traced

			stats.TotalPixels++
			stats.TotalSamples++
			stats.TotalBounces += traced.Depth
		}
	}

	return stats
}

func defaultSampler(seed int64) core.Sampler {
	return core.NewSeededSampler(seed)
}
