package partialgen

import (
	"context"
	"os"
	"runtime"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/jward/partialgen/internal/store"
	"github.com/jward/partialgen/internal/syntax/csharp"
)

// workItem is one file for a worker.
type workItem struct {
	index int
	path  string
}

// GenerateFiles generates output for every target in the files at paths.
// Outputs keep the order of paths. Files that fail are reported together
// after all others are done.
func (g *Generator) GenerateFiles(ctx context.Context, paths []string) ([]Output, error) {
	if !g.useParallel || len(paths) < 2 {
		return g.generateFilesSerial(ctx, paths)
	}
	return g.generateFilesParallel(ctx, paths)
}

func (g *Generator) generateFilesSerial(ctx context.Context, paths []string) ([]Output, error) {
	p := csharp.NewParser()
	defer p.Close()

	var outs []Output
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fileOuts, err := g.generateFile(ctx, p, g.cacheFor(), path)
		if err != nil {
			return nil, err
		}
		outs = append(outs, fileOuts...)
	}
	return outs, nil
}

func (g *Generator) generateFile(ctx context.Context, p *csharp.Parser, cache store.Cache, path string) ([]Output, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}
	return g.generate(ctx, p, cache, path, src)
}

// generateFilesParallel runs in two phases:
//
//	Phase A (parallel): parse, convert and render via a worker pool. Each
//	                    worker owns a parser and buffers cache writes.
//	Phase B (serial):   commit the buffered cache writes to SQLite.
func (g *Generator) generateFilesParallel(ctx context.Context, paths []string) ([]Output, error) {
	numWorkers := g.workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	numWorkers = max(1, min(numWorkers, len(paths)))

	workCh := make(chan workItem, len(paths))
	for i, path := range paths {
		workCh <- workItem{index: i, path: path}
	}
	close(workCh)

	type result struct {
		item workItem
		outs []Output
		err  error
	}
	resultCh := make(chan result, len(paths))

	var (
		wg      sync.WaitGroup
		batches []*store.BatchedStore
	)
	for range numWorkers {
		var (
			batch *store.BatchedStore
			cache store.Cache
		)
		if g.cache != nil {
			batch = store.NewBatchedStore(g.cache)
			batches = append(batches, batch)
			cache = batch
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			p := csharp.NewParser()
			defer p.Close()
			for item := range workCh {
				if err := ctx.Err(); err != nil {
					resultCh <- result{item: item, err: err}
					continue
				}
				outs, err := g.generateFile(ctx, p, cache, item.path)
				resultCh <- result{item: item, outs: outs, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	perFile := make([][]Output, len(paths))
	var errs []error
	for res := range resultCh {
		if res.err != nil {
			errs = append(errs, errors.Wrapf(res.err, "generate %s", res.item.path))
			continue
		}
		perFile[res.item.index] = res.outs
	}

	// ---- Phase B: Serial commit ----
	for _, batch := range batches {
		if err := g.cache.CommitBatch(batch); err != nil {
			errs = append(errs, errors.Wrap(err, "commit render cache"))
		}
	}

	if len(errs) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, errors.Wrapf(errs[0], "parallel generation had %d error(s)", len(errs))
	}

	var outs []Output
	for _, fileOuts := range perFile {
		outs = append(outs, fileOuts...)
	}
	return outs, nil
}
