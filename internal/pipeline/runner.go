package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"image-analysis/internal/logger"
	"image-analysis/internal/source"
)

// ProgressInterval is how often Run logs throughput.
var ProgressInterval = 2 * time.Second

// Run processes all items using a worker pool of opts.Workers goroutines.
// Results are returned in item order. Items not started before ctx is done
// are reported as failed with the context error.
func Run(ctx context.Context, opts Options, items []source.Item, log logger.Logger) []Result {
	if log == nil {
		log = logger.Nop()
	}
	total := len(items)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(ProgressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("pipeline", "progress", map[string]interface{}{
						"done":      p,
						"total":     total,
						"items_sec": float64(p) / elapsed,
					})
				}
			}
		}
	}()

	workers := max(1, opts.Workers)
	itemChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range itemChan {
				results[idx] = process(ctx, opts, items[idx], log)
				processed.Add(1)
			}
		}()
	}

	// Send work
	sent := 0
send:
	for ; sent < total; sent++ {
		select {
		case itemChan <- sent:
		case <-ctx.Done():
			break send
		}
	}
	close(itemChan)

	wg.Wait()
	close(done)

	for i := sent; i < total; i++ {
		results[i] = Result{Name: items[i].Name, Path: items[i].Path, Error: ctx.Err().Error()}
	}
	return results
}

func process(ctx context.Context, opts Options, item source.Item, log logger.Logger) Result {
	t0 := time.Now()
	res := Process(ctx, opts, item)
	if !res.Success {
		log.Warning("pipeline", "item failed", map[string]interface{}{
			"name":  item.Name,
			"path":  item.Path,
			"error": res.Error,
		})
		return res
	}
	if !res.Converged {
		log.Warning("posterize", "k-means hit the iteration cap", map[string]interface{}{
			"name":       item.Name,
			"iterations": res.Iterations,
		})
	}
	log.Debug("pipeline", "item done", map[string]interface{}{
		"name":       item.Name,
		"size":       [2]int{res.Width, res.Height},
		"components": res.Components,
		"centers":    res.Centers,
		"elapsed_ms": time.Since(t0).Milliseconds(),
	})
	return res
}
