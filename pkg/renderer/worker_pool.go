package renderer

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   Tile
	Sample int // 1-based sample index being added
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
}

// WorkerPool renders tiles in parallel. Each Run call is a fork/join pass:
// it returns only after every submitted tile is done or the context is cancelled.
type WorkerPool struct {
	renderer   *TileRenderer
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(tileRenderer *TileRenderer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		renderer:   tileRenderer,
		numWorkers: numWorkers,
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders every task into fb. onTile, if set, is called once per finished
// tile from a single goroutine at a time.
func (wp *WorkerPool) Run(ctx context.Context, fb *FrameBuffer, tasks []TileTask, onTile func(TileResult)) (RenderStats, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	var (
		mu    sync.Mutex
		stats RenderStats
	)

	for i, task := range tasks {
		if gctx.Err() != nil {
			break
		}
		i, task := i, task

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			tileStats := wp.renderer.RenderTile(task.Tile, fb, task.Sample)

			mu.Lock()
			defer mu.Unlock()
			stats.add(tileStats)
			if onTile != nil {
				onTile(TileResult{TaskID: i, Stats: tileStats})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return stats, err
	}
	// Wait reports nothing when cancellation only stopped the submit loop
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}
