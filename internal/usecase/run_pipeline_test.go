package usecase_test

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ghostreach/internal/config"
	"github.com/xavierca1/ghostreach/internal/entity"
	"github.com/xavierca1/ghostreach/internal/infra/database"
	"github.com/xavierca1/ghostreach/internal/infra/harvest"
	"github.com/xavierca1/ghostreach/internal/infra/vault"
	"github.com/xavierca1/ghostreach/internal/logger"
	"github.com/xavierca1/ghostreach/internal/templating"
	"github.com/xavierca1/ghostreach/internal/usecase"
)

type pipelineFixture struct {
	dir     string
	repo    *database.LeadRepository
	vault   *vault.AppendLog
	sender  *recordingSender
	uc      *usecase.RunPipelineUseCase
	targets string
	market  string
}

func newPipeline(t *testing.T, targets []entity.Target, market map[string]any) *pipelineFixture {
	t.Helper()
	dir := t.TempDir()
	log := logger.NewNop()

	f := &pipelineFixture{
		dir:     dir,
		repo:    newSQLiteRepo(t),
		vault:   vault.NewAppendLog(filepath.Join(dir, "vault", "v.jsonl"), log),
		sender:  &recordingSender{},
		targets: filepath.Join(dir, "mirror_targets.json"),
		market:  filepath.Join(dir, "market_targets.json"),
	}
	writeJSON(t, f.targets, targets)
	if market != nil {
		writeJSON(t, f.market, market)
	}

	rng := rand.New(rand.NewPCG(1, 2))
	f.uc = usecase.NewRunPipelineUseCase(
		usecase.NewHarvestLeadsUseCase(harvest.NewHarvester(time.Second, log), f.vault, f.repo, "Founder", log),
		usecase.NewSendOutreachUseCase(f.repo, f.sender, "", log),
		usecase.NewMutateTemplatesUseCase(templating.NewMutator(templating.DefaultSynonyms, rng), log),
		rng,
		log,
	)
	return f
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func pageServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunPipeline_EndToEnd(t *testing.T) {
	page := pageServer(t, `<p>Contact ada@acme.io or bob@gmail.com. Again: ada@acme.io</p>`)
	f := newPipeline(t,
		[]entity.Target{{URL: page.URL, Label: "acme-mirror", Extract: entity.TargetExtract{Category: "saas"}}},
		map[string]any{"template": "Hi {name} at {company}", "owner": "ops"},
	)

	out, err := f.uc.Execute(context.Background(), usecase.RunPipelineInput{TargetsPath: f.targets, MarketPath: f.market})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Harvest.Harvested)
	assert.Equal(t, 2, out.Harvest.Inserted)
	require.NotNil(t, out.Outreach)
	assert.Equal(t, 2, out.Outreach.Sent)
	assert.ElementsMatch(t, []string{"Hi ada at acme", "Hi bob at "}, f.sender.Bodies())

	entries, err := f.vault.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, out.RunID, entries[0].String(entity.EntryRunID))
	assert.Equal(t, "acme-mirror", entries[0].String(entity.EntrySource))
	assert.Equal(t, "saas", entries[0].String(entity.EntryCategory))

	// a rerun logs the entries again but contacts nobody twice
	out, err = f.uc.Execute(context.Background(), usecase.RunPipelineInput{TargetsPath: f.targets, MarketPath: f.market})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Harvest.AlreadyPresent)
	assert.Equal(t, usecase.MsgNoNewLeads, out.Outreach.Msg)
	assert.Len(t, f.sender.Bodies(), 2)

	entries, err = f.vault.ReadAll()
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestRunPipeline_AllTargetsFail(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(broken.Close)

	f := newPipeline(t, []entity.Target{{URL: broken.URL}, {URL: ""}}, nil)

	out, err := f.uc.Execute(context.Background(), usecase.RunPipelineInput{TargetsPath: f.targets, MarketPath: f.market})
	require.NoError(t, err)

	assert.Equal(t, usecase.MsgNoEmailsHarvested, out.Harvest.Msg)
	assert.Nil(t, out.Outreach)
	assert.Empty(t, f.sender.Bodies())
	_, statErr := os.Stat(f.vault.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunPipeline_MissingTargetsFile(t *testing.T) {
	f := newPipeline(t, nil, nil)

	_, err := f.uc.Execute(context.Background(), usecase.RunPipelineInput{
		TargetsPath: filepath.Join(f.dir, "nope.json"),
		MarketPath:  f.market,
	})

	require.Error(t, err)
	assert.True(t, usecase.IsTechnicalError(err))
}

func TestRunPipeline_MissingMarketConfigIsFatal(t *testing.T) {
	page := pageServer(t, `a@x.com`)
	f := newPipeline(t, []entity.Target{{URL: page.URL}}, nil)

	out, err := f.uc.Execute(context.Background(), usecase.RunPipelineInput{TargetsPath: f.targets, MarketPath: f.market})

	require.Error(t, err)
	assert.Equal(t, 1, out.Harvest.Inserted)
	assert.Empty(t, f.sender.Bodies())
}

func TestRunPipeline_RotatePersonaKeepsUnknownKeys(t *testing.T) {
	page := pageServer(t, `lead@startup.dev`)
	f := newPipeline(t,
		[]entity.Target{{URL: page.URL}},
		map[string]any{"industry": "Old", "template": "Hi {name}", "owner": "ops"},
	)

	out, err := f.uc.Execute(context.Background(), usecase.RunPipelineInput{
		TargetsPath:   f.targets,
		MarketPath:    f.market,
		RotatePersona: true,
		Mutate:        true,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "Old", out.Industry)
	assert.Equal(t, 1, out.Outreach.Sent)

	cfg, err := config.LoadMarketConfig(f.market)
	require.NoError(t, err)
	assert.Equal(t, "ops", cfg.Extra["owner"])
	require.NotEmpty(t, cfg.BuyerPersonas)

	names := make([]string, 0, len(templating.BuiltinPersonas))
	for _, p := range templating.BuiltinPersonas {
		names = append(names, p.Industry)
	}
	assert.Contains(t, names, cfg.Industry)
}

func TestMutateTemplates_RewritesPresentTemplates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "market_targets.json")
	writeJSON(t, path, map[string]any{
		"template": "We offer a free audit",
		"buyer_personas": []map[string]any{
			{"role": "CTO", "pain_points": []string{"x"}, "tone": "formal", "template": "Quick question for {name}"},
			{"role": "CEO", "pain_points": "cost, speed"},
		},
	})

	synonyms := map[string][]string{"free": {"complimentary"}, "quick": {"brief"}}
	uc := usecase.NewMutateTemplatesUseCase(templating.NewMutator(synonyms, rand.New(rand.NewPCG(3, 4))), logger.NewNop())

	out, err := uc.Execute(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Mutated)

	cfg, err := config.LoadMarketConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "We offer a complimentary audit", cfg.Template)
	assert.Equal(t, "Brief question for {name}", cfg.BuyerPersonas[0].Template)
	assert.Empty(t, cfg.BuyerPersonas[1].Template)
	assert.Equal(t, "formal", cfg.BuyerPersonas[0].Extra["tone"])
	assert.Equal(t, []string{"x"}, cfg.BuyerPersonas[0].PainPoints)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"pain_points": "cost, speed"`)
}
