// Package monitor owns the check cycle: per source,
// fetch → classify → extract → filter → reconcile → notify → persist.
package monitor

import (
	"context"
	"log/slog"
	"time"

	"jobwatch-engine/internal/archive"
	"jobwatch-engine/internal/config"
	"jobwatch-engine/internal/domain"
	"jobwatch-engine/internal/extract"
	"jobwatch-engine/internal/filter"
	"jobwatch-engine/internal/notify"
	"jobwatch-engine/internal/reconcile"
	"jobwatch-engine/internal/seen"

	"golang.org/x/sync/errgroup"
)

// fetchConcurrency bounds how many sources are fetched at once. Only the
// fetch/extract stage fans out; reconciliation and persistence stay
// serialized in config order.
const fetchConcurrency = 4

// notifyPause keeps per-message pacing polite toward the notification
// transport.
const notifyPause = time.Second

// Fetcher is the external document-retrieval collaborator.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

type Monitor struct {
	cfg      config.Config
	fetcher  Fetcher
	notifier notify.Notifier
	store    *seen.Store
	archive  *archive.Archive // optional
	logger   *slog.Logger

	status Status
}

func New(cfg config.Config, fetcher Fetcher, notifier notify.Notifier, store *seen.Store, arch *archive.Archive, logger *slog.Logger) *Monitor {
	return &Monitor{
		cfg:      cfg,
		fetcher:  fetcher,
		notifier: notifier,
		store:    store,
		archive:  arch,
		logger:   logger,
	}
}

// batch is the outcome of one source's fetch/extract/filter stage.
type batch struct {
	src     config.Source
	records []domain.JobRecord
	err     error
}

// RunOnce executes a full check cycle across all configured sources. A
// failing source is logged and skipped; the cycle itself only errors when
// the context dies. Returns how many new postings were reported.
func (m *Monitor) RunOnce(ctx context.Context) (int, error) {
	m.status.markRunning()

	batches := make([]batch, len(m.cfg.Sources))

	var g errgroup.Group
	g.SetLimit(fetchConcurrency)
	for i, src := range m.cfg.Sources {
		g.Go(func() error {
			batches[i] = m.collect(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		m.status.markDone(0, err)
		return 0, err
	}

	totalNew := 0
	for _, b := range batches {
		if b.err != nil {
			m.logger.Warn("source skipped", "source", b.src.Name, "error", b.err)
			continue
		}
		totalNew += m.reconcileSource(ctx, b)
	}

	m.status.markDone(totalNew, nil)
	if totalNew > 0 {
		m.logger.Info("cycle complete", "new", totalNew)
	} else {
		m.logger.Info("cycle complete, no new jobs")
	}
	return totalNew, nil
}

// Status returns a copy of the last cycle's bookkeeping.
func (m *Monitor) Status() Status { return m.status }

// collect runs the stateless half of the pipeline for one source. Safe to
// run concurrently across sources: nothing here touches shared state.
func (m *Monitor) collect(ctx context.Context, src config.Source) batch {
	body, err := m.fetcher.Get(ctx, src.URL)
	if err != nil {
		return batch{src: src, err: err}
	}

	doc := extract.NewDocument(src.URL, body)
	ex := extract.Classify(doc)

	var records []domain.JobRecord
	extracted := 0
	for rec := range ex.Extract(doc, src.Name) {
		extracted++
		if filter.Match(src, rec) {
			records = append(records, rec)
		}
	}

	m.logger.Debug("extracted",
		"source", src.Name,
		"strategy", ex.Name(),
		"candidates", extracted,
		"matched", len(records),
	)
	return batch{src: src, records: records}
}

// reconcileSource runs the stateful half for one source: dedup against the
// seen store, notify, archive, and persist. The store write lands right
// after this source's reconciliation so a crash later in the run cannot
// undo it, and a notify failure never rolls it back.
func (m *Monitor) reconcileSource(ctx context.Context, b batch) int {
	name := b.src.Name
	set := m.store.ForSource(name)
	bootstrap := !m.cfg.Notify.OnFirstRun && !m.store.HasSource(name)

	fresh := reconcile.Reconcile(b.records, set, bootstrap)

	if bootstrap {
		m.logger.Info("bootstrap: recorded backlog without notifying",
			"source", name, "recorded", set.Cardinality())
	}

	for i, rec := range fresh {
		if i > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(notifyPause):
			}
		}
		if err := m.notifier.NotifyNewJob(ctx, rec); err != nil {
			m.logger.Error("notify failed", "source", name, "title", rec.Title, "error", err)
		}
		if m.archive != nil {
			if err := m.archive.Record(ctx, rec, reconcile.Fingerprint(rec)); err != nil {
				m.logger.Warn("archive write failed", "source", name, "error", err)
			}
		}
	}

	if err := m.store.SaveAtomic(); err != nil {
		m.logger.Error("seen store save failed", "source", name, "error", err)
	}
	return len(fresh)
}
