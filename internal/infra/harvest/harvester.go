package harvest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xavierca1/ghostreach/internal/entity"
	"github.com/xavierca1/ghostreach/internal/logger"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "ghostreach-harvester/1.0"
	maxBodyBytes     = 10 << 20
)

type Harvester struct {
	client    *http.Client
	log       logger.Logger
	userAgent string
	now       func() time.Time
}

type Option func(*Harvester)

func WithHTTPClient(c *http.Client) Option {
	return func(h *Harvester) { h.client = c }
}

func WithUserAgent(ua string) Option {
	return func(h *Harvester) { h.userAgent = ua }
}

func WithClock(now func() time.Time) Option {
	return func(h *Harvester) { h.now = now }
}

func NewHarvester(timeout time.Duration, log logger.Logger, opts ...Option) *Harvester {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.NewNop()
	}
	h := &Harvester{
		client:    &http.Client{Timeout: timeout},
		log:       log,
		userAgent: DefaultUserAgent,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Report is the outcome of one pass over the targets.
type Report struct {
	Entries []entity.Entry
	Fetched int
	Failed  int
	// FailedSources holds the label of every skipped target.
	FailedSources []string
}

// Harvest visits targets one after another. A target that cannot be fetched is
// logged and skipped; it never stops the pass.
func (h *Harvester) Harvest(ctx context.Context, targets []entity.Target) Report {
	report := Report{Entries: []entity.Entry{}}

	for _, target := range targets {
		entries, err := h.HarvestTarget(ctx, target)
		if err != nil {
			report.Failed++
			report.FailedSources = append(report.FailedSources, target.DisplayLabel())
			h.log.Warn("Skipping target",
				logger.String("target", target.DisplayLabel()),
				logger.String("url", target.URL),
				logger.Error(err),
			)
			continue
		}
		report.Fetched++
		h.log.Info("Harvested target",
			logger.String("target", target.DisplayLabel()),
			logger.Int("emails", len(entries)),
		)
		report.Entries = append(report.Entries, entries...)
	}

	return report
}

// HarvestTarget fetches one page and turns every distinct address on it into
// an entry.
func (h *Harvester) HarvestTarget(ctx context.Context, target entity.Target) ([]entity.Entry, error) {
	body, err := h.fetch(ctx, target.URL)
	if err != nil {
		return nil, err
	}

	emails := ExtractEmails(body, target.Selector)
	at := h.now()
	entries := make([]entity.Entry, 0, len(emails))
	for _, email := range emails {
		entries = append(entries, entity.NewHarvestEntry(target, email, Score(email), CompanyFor(email), at))
	}
	return entries, nil
}

func (h *Harvester) fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("target has no url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return body, nil
}
