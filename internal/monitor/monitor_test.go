package monitor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"jobwatch-engine/internal/config"
	"jobwatch-engine/internal/domain"
	"jobwatch-engine/internal/seen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	pages map[string]string
	errs  map[string]error
}

func (f *fakeFetcher) Get(_ context.Context, url string) (string, error) {
	if err, ok := f.errs[url]; ok {
		return "", err
	}
	body, ok := f.pages[url]
	if !ok {
		return "", errors.New("unexpected url: " + url)
	}
	return body, nil
}

type capturingNotifier struct {
	sent []domain.JobRecord
	fail bool
}

func (n *capturingNotifier) NotifyNewJob(_ context.Context, rec domain.JobRecord) error {
	if n.fail {
		return errors.New("telegram unreachable")
	}
	n.sent = append(n.sent, rec)
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func careersPage(links ...string) string {
	body := "<html><body><div class=\"job-listings\"><ul>"
	for _, l := range links {
		body += l
	}
	body += "</ul></div></body></html>"
	return body
}

func jobLink(path, title string) string {
	return `<li><a href="` + path + `">` + title + `</a></li>`
}

func testConfig(url string) config.Config {
	var cfg config.Config
	cfg.Polling.CheckIntervalMinutes = 60
	cfg.Sources = []config.Source{
		{Name: "Acme", URL: url, Keywords: []string{"backend"}, ExcludeKeywords: []string{"senior"}},
	}
	return cfg
}

func newTestMonitor(t *testing.T, cfg config.Config, fetcher *fakeFetcher, notifier *capturingNotifier) (*Monitor, *seen.Store) {
	t.Helper()
	store := seen.Load(filepath.Join(t.TempDir(), "seen_jobs.json"), discard())
	return New(cfg, fetcher, notifier, store, nil, discard()), store
}

func TestRunOnce_BootstrapSuppressesBacklog(t *testing.T) {
	const url = "https://example.com/careers"
	fetcher := &fakeFetcher{pages: map[string]string{
		url: careersPage(
			jobLink("/jobs/1", "Backend Engineer"),
			jobLink("/jobs/2", "Senior Backend Engineer"),
			jobLink("/jobs/3", "Product Designer"),
		),
	}}
	notifier := &capturingNotifier{}
	m, store := newTestMonitor(t, testConfig(url), fetcher, notifier)

	n, err := m.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n, "the first check records the backlog silently")
	assert.Empty(t, notifier.sent)

	// Only the record that passed the keyword rules was fingerprinted.
	set := store.ForSource("Acme")
	assert.Equal(t, 1, set.Cardinality())
	assert.True(t, set.Contains("https://example.com/jobs/1"))
}

func TestRunOnce_SecondIdenticalRunIsQuiet(t *testing.T) {
	const url = "https://example.com/careers"
	fetcher := &fakeFetcher{pages: map[string]string{
		url: careersPage(jobLink("/jobs/1", "Backend Engineer")),
	}}
	notifier := &capturingNotifier{}
	m, _ := newTestMonitor(t, testConfig(url), fetcher, notifier)

	_, err := m.RunOnce(context.Background())
	require.NoError(t, err)

	n, err := m.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, notifier.sent)
}

func TestRunOnce_ReportsOnlyTheDelta(t *testing.T) {
	const url = "https://example.com/careers"
	fetcher := &fakeFetcher{pages: map[string]string{
		url: careersPage(jobLink("/jobs/1", "Backend Engineer")),
	}}
	notifier := &capturingNotifier{}
	m, _ := newTestMonitor(t, testConfig(url), fetcher, notifier)

	_, err := m.RunOnce(context.Background())
	require.NoError(t, err)

	fetcher.pages[url] = careersPage(
		jobLink("/jobs/1", "Backend Engineer"),
		jobLink("/jobs/4", "Backend Engineer II"),
	)

	n, err := m.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "Backend Engineer II", notifier.sent[0].Title)
	assert.Equal(t, "https://example.com/jobs/4", notifier.sent[0].URL)
	assert.Equal(t, "Acme", notifier.sent[0].SourceName)
}

func TestRunOnce_FailingSourceDoesNotBlockOthers(t *testing.T) {
	cfg := testConfig("https://down.example.com/careers")
	cfg.Sources = append(cfg.Sources, config.Source{
		Name: "Globex", URL: "https://globex.example.com/careers", Keywords: []string{"backend"},
	})

	fetcher := &fakeFetcher{
		pages: map[string]string{
			"https://globex.example.com/careers": careersPage(jobLink("/jobs/9", "Backend Engineer")),
		},
		errs: map[string]error{
			"https://down.example.com/careers": errors.New("connect: connection refused"),
		},
	}
	notifier := &capturingNotifier{}
	m, store := newTestMonitor(t, cfg, fetcher, notifier)

	n, err := m.RunOnce(context.Background())
	require.NoError(t, err, "a transport failure on one source never fails the cycle")
	assert.Equal(t, 0, n)

	assert.True(t, store.HasSource("Globex"))
	assert.False(t, store.HasSource("Acme"), "a failed fetch leaves the source's state untouched")
}

func TestRunOnce_NotifyFailureStillPersists(t *testing.T) {
	const url = "https://example.com/careers"
	fetcher := &fakeFetcher{pages: map[string]string{
		url: careersPage(jobLink("/jobs/1", "Backend Engineer")),
	}}
	notifier := &capturingNotifier{}
	cfg := testConfig(url)
	m, store := newTestMonitor(t, cfg, fetcher, notifier)

	_, err := m.RunOnce(context.Background())
	require.NoError(t, err)

	fetcher.pages[url] = careersPage(
		jobLink("/jobs/1", "Backend Engineer"),
		jobLink("/jobs/5", "Backend Engineer III"),
	)
	notifier.fail = true

	n, err := m.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, store.ForSource("Acme").Contains("https://example.com/jobs/5"),
		"a delivery failure must not cause a re-notification storm next cycle")
}

func TestRunOnce_OnFirstRunReportsBacklog(t *testing.T) {
	const url = "https://example.com/careers"
	fetcher := &fakeFetcher{pages: map[string]string{
		url: careersPage(jobLink("/jobs/1", "Backend Engineer")),
	}}
	notifier := &capturingNotifier{}
	cfg := testConfig(url)
	cfg.Notify.OnFirstRun = true
	m, _ := newTestMonitor(t, cfg, fetcher, notifier)

	n, err := m.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "Backend Engineer", notifier.sent[0].Title)
}

func TestRunOnce_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &fakeFetcher{errs: map[string]error{
		"https://example.com/careers": context.Canceled,
	}}
	m, _ := newTestMonitor(t, testConfig("https://example.com/careers"), fetcher, &capturingNotifier{})

	_, err := m.RunOnce(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatus_TracksLastCycle(t *testing.T) {
	const url = "https://example.com/careers"
	fetcher := &fakeFetcher{pages: map[string]string{
		url: careersPage(jobLink("/jobs/1", "Backend Engineer")),
	}}
	m, _ := newTestMonitor(t, testConfig(url), fetcher, &capturingNotifier{})

	_, err := m.RunOnce(context.Background())
	require.NoError(t, err)

	st := m.Status()
	assert.NotEmpty(t, st.LastRunAt)
	assert.NotEmpty(t, st.LastOkAt)
	assert.Empty(t, st.LastError)
	assert.False(t, st.Running)
}
