package harvest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ghostreach/internal/entity"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestHarvester(timeout time.Duration) *Harvester {
	return NewHarvester(timeout, nil, WithClock(func() time.Time { return fixedNow }))
}

func TestHarvester_BuildsEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Write([]byte(`<p>ceo@acme.io and jane@gmail.com</p>`))
	}))
	defer srv.Close()

	report := newTestHarvester(time.Second).Harvest(context.Background(), []entity.Target{{
		URL:     srv.URL,
		Label:   "acme-listing",
		Extract: entity.TargetExtract{Category: "forum"},
		Price:   12.5,
	}})

	assert.Equal(t, 1, report.Fetched)
	assert.Zero(t, report.Failed)
	require.Len(t, report.Entries, 2)

	first := report.Entries[0]
	assert.Equal(t, "ceo@acme.io", first.String(entity.EntryEmail))
	assert.Equal(t, "acme.io", first.String(entity.EntryDomain))
	assert.Equal(t, "acme", first.String(entity.EntryCompany))
	assert.Equal(t, "acme-listing", first.String(entity.EntrySource))
	assert.Equal(t, "forum", first.String(entity.EntryCategory))
	assert.Equal(t, "2026-03-01T12:00:00Z", first.String(entity.EntryTimestamp))
	assert.Equal(t, ScoreCompanyDomain, first[entity.EntryScore])
	assert.Equal(t, 12.5, first[entity.EntryPrice])

	second := report.Entries[1]
	assert.Equal(t, ScoreGenericProvider, second[entity.EntryScore])
	assert.Equal(t, "", second.String(entity.EntryCompany))
}

func TestHarvester_FailedTargetDoesNotStopLaterTargets(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer broken.Close()

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`founder@startup.dev`))
	}))
	defer ok.Close()

	report := newTestHarvester(time.Second).Harvest(context.Background(), []entity.Target{
		{URL: broken.URL},
		{URL: closedURL},
		{URL: ""},
		{URL: ok.URL},
	})

	assert.Equal(t, 3, report.Failed)
	assert.Equal(t, []string{broken.URL, closedURL, ""}, report.FailedSources)
	assert.Equal(t, 1, report.Fetched)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, "founder@startup.dev", report.Entries[0].String(entity.EntryEmail))
	assert.Equal(t, ok.URL, report.Entries[0].String(entity.EntrySource))
}

func TestHarvester_TimeoutSkipsTarget(t *testing.T) {
	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer slow.Close()
	defer close(release)

	report := newTestHarvester(50*time.Millisecond).Harvest(context.Background(), []entity.Target{{URL: slow.URL}})

	assert.Equal(t, 1, report.Failed)
	assert.Empty(t, report.Entries)
}

func TestHarvester_AllTargetsFail(t *testing.T) {
	report := newTestHarvester(time.Second).Harvest(context.Background(), []entity.Target{{URL: "http://127.0.0.1:1/"}})

	assert.Equal(t, 1, report.Failed)
	assert.Empty(t, report.Entries)
	assert.NotNil(t, report.Entries)
}
