package renderer

import (
	"context"
	"image"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
		lastBounds    image.Rectangle
	}{
		{"exact fit", 128, 64, 64, 2, image.Rect(64, 0, 128, 64)},
		{"partial edge tiles", 100, 50, 32, 8, image.Rect(96, 32, 100, 50)},
		{"single small tile", 10, 5, 64, 1, image.Rect(0, 0, 10, 5)},
		{"default size", 130, 10, 0, 3, image.Rect(128, 0, 130, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}
			if last := tiles[len(tiles)-1].Bounds; last != tt.lastBounds {
				t.Errorf("Expected last tile %v, got %v", tt.lastBounds, last)
			}

			// Tiles cover every pixel exactly once
			covered := make([]int, tt.width*tt.height)
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Expected tile ID %d, got %d", i, tile.ID)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						covered[y*tt.width+x]++
					}
				}
			}
			for i, c := range covered {
				if c != 1 {
					t.Fatalf("Pixel %d covered %d times", i, c)
				}
			}
		})
	}
}

func TestTileSeed_Unique(t *testing.T) {
	seen := make(map[int64]bool)
	for tile := 0; tile < 100; tile++ {
		for sample := 1; sample <= 100; sample++ {
			seed := tileSeed(tile, sample)
			if seen[seed] {
				t.Fatalf("Seed collision at tile %d sample %d", tile, sample)
			}
			seen[seed] = true
		}
	}
}

func TestTileRenderer_OnlyTouchesTile(t *testing.T) {
	s := createTestScene(t, 16, 2)
	view := ViewForScene(s)
	fb := newTestFrameBuffer(t, view)

	tr := NewTileRenderer(s, integrator.NewPathTracingIntegrator(integrator.DefaultConfig()), nil)
	tile := Tile{ID: 3, Bounds: image.Rect(4, 2, 8, 6)}
	stats := tr.RenderTile(tile, fb, 1)

	if stats.TotalPixels != 16 || stats.Tiles != 1 {
		t.Errorf("Expected 16 pixels in one tile, got %+v", stats)
	}

	for _, f := range fb.Fragments {
		inside := image.Pt(f.X, f.Y).In(tile.Bounds)
		if inside == f.Spectrum.IsBlack() {
			t.Fatalf("Pixel (%d,%d): inside=%v but spectrum %v", f.X, f.Y, inside, f.Spectrum)
		}
	}
}

func TestWorkerPool_RunAll(t *testing.T) {
	s := createTestScene(t, 32, 1)
	view := ViewForScene(s)
	fb := newTestFrameBuffer(t, view)

	tr := NewTileRenderer(s, integrator.NewPathTracingIntegrator(integrator.DefaultConfig()), nil)
	pool := NewWorkerPool(tr, 3)
	if pool.GetNumWorkers() != 3 {
		t.Errorf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}

	tiles := NewTileGrid(view.Width, view.Height, 8)
	tasks := make([]TileTask, len(tiles))
	for i, tile := range tiles {
		tasks[i] = TileTask{Tile: tile, Sample: 1}
	}

	seen := make(map[int]bool)
	stats, err := pool.Run(context.Background(), fb, tasks, func(result TileResult) {
		seen[result.TaskID] = true
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(seen) != len(tasks) {
		t.Errorf("Expected %d tile callbacks, got %d", len(tasks), len(seen))
	}
	if stats.TotalPixels != 32*32 || stats.Tiles != 16 {
		t.Errorf("Expected full coverage, got %+v", stats)
	}
	for _, f := range fb.Fragments {
		if f.Spectrum == (core.Spectrum{}) {
			t.Fatalf("Pixel (%d,%d) was not rendered", f.X, f.Y)
		}
	}
}

func TestNewWorkerPool_DefaultWorkers(t *testing.T) {
	if pool := NewWorkerPool(nil, 0); pool.GetNumWorkers() <= 0 {
		t.Errorf("Expected CPU count workers, got %d", pool.GetNumWorkers())
	}
}
