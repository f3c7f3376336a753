// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package neural fans planned queries out to a neural-search API and
// collects the results per query category. Implements: prd011-search
// (R1-R3);
//
//	docs/ARCHITECTURE § Neural Search.
package neural

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pdiddy/profile-engine/pkg/types"
)

// Backend searches a single neural-search API. Implementations take the
// query's category so they can apply category-specific domain filters.
type Backend interface {
	Name() string
	Search(ctx context.Context, query types.Query, cfg types.NeuralConfig) ([]types.SearchResult, error)
}

// defaultCallTimeout bounds one backend call when the config does not.
const defaultCallTimeout = 30 * time.Second

// SearchAll runs every planned query concurrently and returns the results
// keyed by the originating category. A failed query logs a warning to w
// and contributes an empty category; no failure aborts the fan-out.
func SearchAll(ctx context.Context, backend Backend, queries []types.Query, cfg types.NeuralConfig, w io.Writer) types.CategoryResults {
	out := make(types.CategoryResults, len(queries))
	if backend == nil || len(queries) == 0 {
		return out
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	type queryResult struct {
		category types.QueryCategory
		results  []types.SearchResult
		err      error
	}

	ch := make(chan queryResult, len(queries))
	var wg sync.WaitGroup

	for _, q := range queries {
		wg.Add(1)
		go func(q types.Query) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			results, err := backend.Search(callCtx, q, cfg)
			ch <- queryResult{category: q.Category, results: results, err: err}
		}(q)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	// Single accumulating reader; the category labels ride along with the
	// results so ordering across goroutines does not matter.
	for qr := range ch {
		if qr.err != nil {
			fmt.Fprintf(w, "warning: %s query via %s failed: %v\n", qr.category, backend.Name(), qr.err)
			out[qr.category] = nil
			continue
		}
		out[qr.category] = append(out[qr.category], qr.results...)
	}

	return out
}
