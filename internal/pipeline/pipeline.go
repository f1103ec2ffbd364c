// Package pipeline runs load, repair, coercion, aggregation and persistence
// once and hands back the immutable store.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/KaramelBytes/review-digest/internal/loader"
	"github.com/KaramelBytes/review-digest/internal/metrics"
	"github.com/KaramelBytes/review-digest/internal/review"
	"github.com/KaramelBytes/review-digest/internal/store"
)

// Options configures a pipeline run.
type Options struct {
	InputPath  string
	OutputPath string
	// SQLitePath enables the SQLite mirror when non-empty.
	SQLitePath string

	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// Result is what a run produced. Store is never nil.
type Result struct {
	Store review.Store
	// JSON is the encoded store, byte-identical to the persisted file.
	JSON      []byte
	Candidate *loader.Candidate
	// Loaded is false when the input could not be loaded and Store is empty.
	Loaded bool
}

// Run executes the pipeline. A load failure is logged and yields an empty
// store with a nil error; persistence failures are returned.
func Run(ctx context.Context, opt Options) (*Result, error) {
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("pipeline")

	log.Info("loading reviews", zap.String("file", opt.InputPath))
	l := &loader.Loader{OnAttempt: func(a loader.Attempt) {
		opt.Metrics.ObserveAttempt(a)
		log.Debug("candidate evaluated",
			zap.String("candidate", a.Candidate.String()),
			zap.Int("rows", a.Rows),
			zap.Bool("accepted", a.Accepted),
			zap.Error(a.Err))
	}}
	loaded, err := l.Load(opt.InputPath)
	if err != nil {
		var le *loader.LoadError
		if !errors.As(err, &le) {
			return nil, fmt.Errorf("load: %w", err)
		}
		log.Error("review data unavailable, serving an empty store", zap.Error(err))
		empty := review.Store{}
		b, encErr := store.EncodeJSON(empty)
		if encErr != nil {
			return nil, encErr
		}
		opt.Metrics.ObserveStore(empty)
		return &Result{Store: empty, JSON: b}, nil
	}
	log.Info("reviews loaded",
		zap.String("encoding", loaded.Candidate.Encoding),
		zap.String("delimiter", loader.DelimiterName(loaded.Candidate.Delimiter)),
		zap.Int("rows", len(loaded.Rows)))

	s := review.Aggregate(review.CoerceAll(loaded.Rows), review.MaxPerProduct)

	b, err := store.WriteJSON(opt.OutputPath, s)
	if err != nil {
		return nil, err
	}
	log.Info("store persisted",
		zap.String("file", opt.OutputPath),
		zap.Int("categories", len(s)),
		zap.Int("records", s.Len()))

	if opt.SQLitePath != "" {
		n, err := store.WriteSQLite(ctx, opt.SQLitePath, s)
		if err != nil {
			return nil, fmt.Errorf("sqlite mirror: %w", err)
		}
		log.Info("sqlite mirror written", zap.String("file", opt.SQLitePath), zap.Int("rows", n))
	}

	opt.Metrics.ObserveStore(s)
	cand := loaded.Candidate
	return &Result{Store: s, JSON: b, Candidate: &cand, Loaded: true}, nil
}
