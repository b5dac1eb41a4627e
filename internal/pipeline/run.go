// Package pipeline orchestrates one ETL run: it drives every source adapter,
// merges their candidate records, and hands the merged batch to the storage
// upsert engine.
package pipeline

import (
	"context"
	"log"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/ntokozo078/entry-job-market-pipeline/internal/source"
)

var validate = validator.New()

// Store is the persistence boundary of the pipeline: an all-or-nothing batch
// upsert keyed on (source, source_job_id) that returns the number of newly
// created records.
type Store interface {
	UpsertBatch(ctx context.Context, records []source.CandidateRecord) (int, error)
}

// Pipeline runs the full extract-classify-upsert cycle.
type Pipeline struct {
	store    Store
	adapters []source.Adapter
}

// New constructs a pipeline over the given adapters.
func New(store Store, adapters ...source.Adapter) *Pipeline {
	return &Pipeline{store: store, adapters: adapters}
}

// RunETL executes one blocking pipeline run and returns the count of newly
// inserted records. Adapters run concurrently with no shared mutable state;
// an adapter failure is logged and contributes zero records rather than
// aborting the batch. Only cancellation and persistence failures propagate.
func (p *Pipeline) RunETL(ctx context.Context) (int, error) {
	results := make([][]source.CandidateRecord, len(p.adapters))

	g, gctx := errgroup.WithContext(ctx)
	for i, adapter := range p.adapters {
		g.Go(func() error {
			records, err := adapter.Fetch(gctx)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Printf("[pipeline] adapter %s failed: %v (contributing zero records)", adapter.Name(), err)
				return nil
			}
			log.Printf("[pipeline] adapter %s produced %d records", adapter.Name(), len(records))
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var batch []source.CandidateRecord
	for _, records := range results {
		for _, rec := range records {
			// A record with a missing source id would collide spuriously under
			// the composite-key constraint; reject before it reaches storage.
			if err := validate.Struct(rec); err != nil {
				log.Printf("[pipeline] skipping malformed candidate %s/%s: %v", rec.Source, rec.SourceJobID, err)
				continue
			}
			batch = append(batch, rec)
		}
	}
	log.Printf("[pipeline] processing %d candidates", len(batch))

	newCount, err := p.store.UpsertBatch(ctx, batch)
	if err != nil {
		return 0, err
	}
	log.Printf("[pipeline] run finished, new records: %d", newCount)
	return newCount, nil
}
