// Package pipeline runs one analysis request end-to-end: input quality gate,
// archetype derivation, the three concurrent generation calls, the
// second-stage wealth and qi steps, report assembly and persistence.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tonyback0101-cmyk/seeqi/internal/archetype"
	"github.com/tonyback0101-cmyk/seeqi/internal/feature"
	"github.com/tonyback0101-cmyk/seeqi/internal/insight"
	"github.com/tonyback0101-cmyk/seeqi/internal/qi"
	"github.com/tonyback0101-cmyk/seeqi/internal/report"
)

// Request is one analysis intake.
type Request struct {
	Features feature.Set
	Locale   string
	Timezone string
}

// Metadata captures diagnostic information about one analysis run.
type Metadata struct {
	GenerationUsed     report.GenerationUsed
	AnalysisDurationMs int64
}

// ReportStore abstracts report persistence.
type ReportStore interface {
	SaveReport(r report.Report) error
}

// PersistenceError wraps a storage failure so callers can distinguish it
// from generation failures: a generated report that could not be saved must
// not be reported as success.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("persisting report: %v", e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }

// Analyzer wires the synthesis pipeline together.
type Analyzer struct {
	orch   *insight.Orchestrator
	engine *qi.Engine
	store  ReportStore

	now   func() time.Time
	newID func() string
}

// NewAnalyzer creates an Analyzer with all pipeline dependencies.
func NewAnalyzer(orch *insight.Orchestrator, engine *qi.Engine, store ReportStore) *Analyzer {
	return &Analyzer{
		orch:   orch,
		engine: engine,
		store:  store,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Analyze runs the full pipeline. The three modality generation calls share
// no mutable state and run concurrently; wealth enrichment and qi advice
// elaboration depend on their base computations and run after. Under the
// strict policy any generation failure aborts before persistence.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (report.Report, Metadata, error) {
	start := a.now()
	var meta Metadata

	if err := feature.CheckQuality(req.Features); err != nil {
		return report.Report{}, meta, err
	}

	palmA := archetype.BuildPalm(req.Features.Palm)
	tongueA := archetype.BuildTongue(req.Features.Tongue)
	dreamA := archetype.BuildDream(req.Features.Dream)

	var palmIns, tongueIns, dreamIns insight.Insight
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		palmIns, err = a.orch.PalmInsight(gCtx, palmA, req.Locale)
		return err
	})
	g.Go(func() error {
		var err error
		tongueIns, err = a.orch.TongueInsight(gCtx, tongueA, req.Locale)
		return err
	})
	g.Go(func() error {
		var err error
		dreamIns, err = a.orch.DreamInsight(gCtx, dreamA, req.Locale)
		return err
	})
	if err := g.Wait(); err != nil {
		return report.Report{}, meta, err
	}

	// Second stage: wealth enrichment and qi advice elaboration both need
	// their base computation first.
	wealth, err := a.orch.EnrichWealth(ctx, palmA, insight.BuildWealth(palmA), req.Locale)
	if err != nil {
		return report.Report{}, meta, err
	}

	date := a.now().In(locationFor(req.Timezone))
	rhythm := a.engine.Compute(date, palmA.SystemTags, tongueA.SystemTags, dreamA.SystemTags)

	advice, err := a.orch.ElaborateAdvice(ctx, string(rhythm.Tag), rhythm.Advice, rhythm.Calendar, req.Locale)
	if err != nil {
		return report.Report{}, meta, err
	}
	rhythm.Advice = advice

	r := report.Assemble(report.AssembleParams{
		ID:        a.newID(),
		CreatedAt: a.now().UTC(),
		Locale:    req.Locale,
		Timezone:  req.Timezone,
		Palm:      palmIns,
		Tongue:    tongueIns,
		Dream:     dreamIns,
		Wealth:    wealth,
		Qi:        rhythm,
		Echo: report.Echo{
			Palm:   req.Features.Palm,
			Tongue: req.Features.Tongue,
			Dream:  req.Features.Dream,
		},
	})

	if err := a.store.SaveReport(r); err != nil {
		return report.Report{}, meta, &PersistenceError{Err: err}
	}

	meta.GenerationUsed = r.Generation
	meta.AnalysisDurationMs = a.now().Sub(start).Milliseconds()
	slog.Debug("analysis complete",
		"report_id", r.ID,
		"qi_index", r.Qi.Index,
		"constitution", r.Constitution,
		"generation_palm", meta.GenerationUsed.Palm,
		"generation_tongue", meta.GenerationUsed.Tongue,
		"generation_dream", meta.GenerationUsed.Dream,
	)
	return r, meta, nil
}

// locationFor resolves an IANA timezone name, falling back to UTC so an
// unknown zone degrades the calendar lookup rather than failing the request.
func locationFor(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		slog.Warn("unknown timezone, using UTC", "tz", tz)
		return time.UTC
	}
	return loc
}
