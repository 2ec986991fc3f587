package ingest

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/hove-io/munin/internal/alias"
	"github.com/hove-io/munin/internal/catalog"
	"github.com/hove-io/munin/internal/place"
	"github.com/hove-io/munin/internal/store"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("munin-ingest")

// Config carries every ingest tunable spec.md §7 requires be injected
// rather than hardcoded: chunk size, worker-pool concurrency, retry
// policy, and force-merge timeout handling.
type Config struct {
	ChunkSize              int
	Concurrency            int
	RetryCount             int
	RetryWait              time.Duration
	ForceMergeTimeout      time.Duration
	AllowForceMergeTimeout bool
	Visibility             alias.Visibility
}

// DefaultConfig returns the "typical 1000" chunk size and modest
// concurrency/retry defaults spec.md §4.6 step 3 names as conventional.
func DefaultConfig() Config {
	return Config{
		ChunkSize:              1000,
		Concurrency:            4,
		RetryCount:             3,
		RetryWait:              200 * time.Millisecond,
		ForceMergeTimeout:      30 * time.Second,
		AllowForceMergeTimeout: true,
		Visibility:             alias.VisibilityPublic,
	}
}

// Result is the per-run outcome summary, mirroring the teacher's
// SyncResult (started/completed timestamps, fetched/indexed/failed
// counts, accumulated per-item error strings) generalized from one HTTP
// sync call to one physical-index build.
type Result struct {
	DocType      catalog.DocType
	Dataset      string
	Index        string
	StartedAt    time.Time
	CompletedAt  time.Time
	TotalSource  int
	TotalIndexed int
	TotalFailed  int
	Errors       []string
	OldDocCount  int
	NewDocCount  int
	AliasResult  *alias.Result
}

// bulkStore is the narrow surface pipeline.go actually drives. It is
// satisfied by store.IngestAdapter wrapping *store.Store, keeping
// typesense-go's api types (schemas, import params) out of this package
// the same way alias.Store keeps them out of internal/alias.
type bulkStore interface {
	CreateCollection(ctx context.Context, name string) error
	ImportDocuments(ctx context.Context, collection string, documents []interface{}) ([]ImportOutcome, error)
	Refresh(ctx context.Context, collection string) error
	ForceMerge(ctx context.Context, collection string, allowTimeout bool) error
	CollectionDocCount(ctx context.Context, collection string) (int, error)
}

// ImportOutcome is one document's bulk-import verdict.
type ImportOutcome struct {
	Success bool
	Error   string
}

// Orchestrator runs the five-step ingest skeleton of spec.md §4.6 shared
// by every per-source pipeline: create dated index, bulk-ship enriched
// places in bounded-concurrency chunks with retry, refresh, optionally
// force-merge, then hand off to AliasPublisher.
type Orchestrator struct {
	Store     bulkStore
	Catalog   *catalog.Catalog
	Publisher *alias.Publisher
	Config    Config
	Logger    *logrus.Logger
}

// NewOrchestrator builds an Orchestrator, defaulting Config and Logger.
func NewOrchestrator(s bulkStore, c *catalog.Catalog, p *alias.Publisher, cfg Config, logger *logrus.Logger) *Orchestrator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Orchestrator{Store: s, Catalog: c, Publisher: p, Config: cfg, Logger: logger}
}

// Run ships places into a freshly created, dated (docType, dataset) index
// and publishes it per AliasPublisher's four-step rotation.
func (o *Orchestrator) Run(ctx context.Context, docType catalog.DocType, dataset string, places []*place.Place) (*Result, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("ingest.%s", docType))
	defer span.End()
	span.SetAttributes(attribute.String("doc_type", string(docType)), attribute.String("dataset", dataset))

	now := time.Now()
	result := &Result{DocType: docType, Dataset: dataset, StartedAt: now, TotalSource: len(places)}

	index := o.Catalog.PhysicalIndexName(docType, dataset, now)
	result.Index = index

	if err := o.Store.CreateCollection(ctx, index); err != nil {
		return result, fmt.Errorf("ingest %s/%s: create collection %s: %w", docType, dataset, index, err)
	}

	indexed, failed, errs := o.bulkShip(ctx, index, dataset, places)
	result.TotalIndexed = indexed
	result.TotalFailed = failed
	result.Errors = errs

	if err := o.Store.Refresh(ctx, index); err != nil {
		o.Logger.WithFields(logrus.Fields{"error": err, "index": index}).Warn("ingest: refresh failed")
	}

	if err := o.Store.ForceMerge(ctx, index, o.Config.AllowForceMergeTimeout); err != nil {
		if !o.Config.AllowForceMergeTimeout {
			return result, fmt.Errorf("ingest %s/%s: force-merge %s: %w", docType, dataset, index, err)
		}
		// Per spec.md §7 retries: "Force-merge failures with a timeout are
		// treated as success when allow_timeout is set."
		o.Logger.WithFields(logrus.Fields{"error": err, "index": index}).Warn("ingest: force-merge timed out, left running in background")
	}

	if old, err := o.oldDocCount(ctx, docType, dataset); err == nil {
		result.OldDocCount = old
	}
	if n, err := o.Store.CollectionDocCount(ctx, index); err == nil {
		result.NewDocCount = n
	}

	aliasResult, err := o.Publisher.Publish(ctx, index, docType, dataset, o.Config.Visibility)
	if err != nil {
		// Per spec.md §7: "a failed alias swap aborts the publish and leaves
		// the old alias intact so the service remains serving the prior
		// index." The new physical index is left in place; a subsequent
		// ingest run will observe and retry the residual state.
		return result, fmt.Errorf("ingest %s/%s: publish %s: %w", docType, dataset, index, err)
	}
	result.AliasResult = aliasResult

	result.CompletedAt = time.Now()
	o.Logger.WithFields(logrus.Fields{
		"doc_type":      docType,
		"dataset":       dataset,
		"index":         index,
		"indexed":       result.TotalIndexed,
		"failed":        result.TotalFailed,
		"old_doc_count": result.OldDocCount,
		"new_doc_count": result.NewDocCount,
		"duration":      result.CompletedAt.Sub(result.StartedAt).String(),
	}).Info("ingest: run completed")

	return result, nil
}

func (o *Orchestrator) oldDocCount(ctx context.Context, docType catalog.DocType, dataset string) (int, error) {
	oldAlias := o.Catalog.Alias(docType, dataset)
	olds, err := o.Publisher.Store.CollectionsBehindAlias(ctx, oldAlias)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, old := range olds {
		n, err := o.Store.CollectionDocCount(ctx, old)
		if err != nil {
			continue
		}
		total += n
	}
	return total, nil
}

// bulkShip chunks places into Config.ChunkSize-sized batches and ships
// them through a bounded worker pool (a buffered-channel semaphore, the
// idiomatic stdlib substitute for a worker-pool library none of the
// example repos import), each chunk retried with exponential backoff per
// spec.md §7's bulk-write retry policy. Per-item failures are logged and
// counted, never abort the stream (spec.md §7 propagation policy).
func (o *Orchestrator) bulkShip(ctx context.Context, index, dataset string, places []*place.Place) (indexed, failed int, errs []string) {
	chunkSize := o.Config.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	concurrency := o.Config.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	type chunkResult struct {
		indexed, failed int
		errs            []string
	}

	var chunks [][]*place.Place
	for i := 0; i < len(places); i += chunkSize {
		end := i + chunkSize
		if end > len(places) {
			end = len(places)
		}
		chunks = append(chunks, places[i:end])
	}

	results := make([]chunkResult, len(chunks))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, chunk := range chunks {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, chunk []*place.Place) {
			defer wg.Done()
			defer func() { <-sem }()

			docs := make([]interface{}, len(chunk))
			for j, p := range chunk {
				docs[j] = store.ToDocument(p, dataset)
			}

			outcomes, err := o.shipChunkWithRetry(ctx, index, docs)
			if err != nil {
				results[i] = chunkResult{failed: len(chunk), errs: []string{fmt.Sprintf("chunk %d: %v", i, err)}}
				return
			}
			r := chunkResult{}
			for _, outcome := range outcomes {
				if outcome.Success {
					r.indexed++
				} else {
					r.failed++
					if outcome.Error != "" {
						r.errs = append(r.errs, outcome.Error)
					}
				}
			}
			results[i] = r
		}(i, chunk)
	}
	wg.Wait()

	for _, r := range results {
		indexed += r.indexed
		failed += r.failed
		for _, e := range r.errs {
			o.Logger.WithFields(logrus.Fields{"error": e, "index": index}).Warn("ingest: document import failed")
		}
		errs = append(errs, r.errs...)
	}
	return indexed, failed, errs
}

// shipChunkWithRetry retries a single chunk import with exponential
// backoff, per spec.md §7: "Bulk writes use exponential backoff with a
// configurable retry count and wait."
func (o *Orchestrator) shipChunkWithRetry(ctx context.Context, index string, docs []interface{}) ([]ImportOutcome, error) {
	retries := o.Config.RetryCount
	if retries < 0 {
		retries = 0
	}
	wait := o.Config.RetryWait
	if wait <= 0 {
		wait = 200 * time.Millisecond
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			backoff := wait * time.Duration(1<<uint(attempt-1))
			jitter := time.Duration(rand.Int63n(int64(backoff)/2 + 1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}
		outcomes, err := o.Store.ImportDocuments(ctx, index, docs)
		if err == nil {
			return outcomes, nil
		}
		lastErr = err
		o.Logger.WithFields(logrus.Fields{"error": err, "index": index, "attempt": attempt}).Warn("ingest: bulk import attempt failed")
	}
	return nil, lastErr
}
