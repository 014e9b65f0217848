package usecase

import (
	"context"
	"errors"
	"io/fs"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/xavierca1/ghostreach/internal/config"
	"github.com/xavierca1/ghostreach/internal/logger"
	"github.com/xavierca1/ghostreach/internal/metrics"
	"github.com/xavierca1/ghostreach/internal/templating"
)

// RunPipelineUseCase chains harvest and outreach for one run.
type RunPipelineUseCase struct {
	Harvest *HarvestLeadsUseCase
	Send    *SendOutreachUseCase
	Mutate  *MutateTemplatesUseCase
	rng     *rand.Rand
	log     logger.Logger
}

func NewRunPipelineUseCase(h *HarvestLeadsUseCase, s *SendOutreachUseCase, m *MutateTemplatesUseCase, rng *rand.Rand, log logger.Logger) *RunPipelineUseCase {
	return &RunPipelineUseCase{Harvest: h, Send: s, Mutate: m, rng: rng, log: log}
}

func (uc *RunPipelineUseCase) Execute(ctx context.Context, input RunPipelineInput) (*RunPipelineOutput, error) {
	out, err := uc.execute(ctx, input)
	switch {
	case err != nil:
		metrics.RecordPipelineRun("error")
	case out.Outreach == nil:
		metrics.RecordPipelineRun("empty")
	default:
		metrics.RecordPipelineRun("completed")
	}
	return out, err
}

func (uc *RunPipelineUseCase) execute(ctx context.Context, input RunPipelineInput) (*RunPipelineOutput, error) {
	runID := uuid.NewString()
	log := uc.log.With(logger.String("run_id", runID))
	log.Info("Pipeline run started", logger.String("targets", input.TargetsPath))

	targets, err := config.LoadTargets(input.TargetsPath)
	if err != nil {
		return nil, &TechnicalError{Code: CodeConfigLoad, Message: "failed to load targets", Err: err}
	}

	harvested, err := uc.Harvest.Execute(ctx, HarvestLeadsInput{RunID: runID, Targets: targets})
	if err != nil {
		return nil, err
	}

	out := &RunPipelineOutput{RunID: runID, Harvest: *harvested}
	if harvested.Harvested == 0 {
		return out, nil
	}

	if input.RotatePersona {
		industry, err := uc.rotatePersona(input.MarketPath)
		if err != nil {
			return out, err
		}
		log.Info("Rotated market persona", logger.String("industry", industry))
	}

	if input.Mutate {
		if _, err := uc.Mutate.Execute(ctx, input.MarketPath); err != nil {
			return out, err
		}
	}

	market, err := config.LoadMarketConfig(input.MarketPath)
	if err != nil {
		return out, &TechnicalError{Code: CodeConfigLoad, Message: "failed to load market config", Err: err}
	}
	for _, verr := range ValidateMarketConfig(market) {
		log.Warn("Market config issue", logger.String("field", verr.Field), logger.String("reason", verr.Message))
	}
	out.Industry = market.Industry

	sent, err := uc.Send.Execute(ctx, SendOutreachInput{RunID: runID, Market: market})
	out.Outreach = sent
	if err != nil {
		return out, err
	}

	log.Info("Pipeline run finished")
	return out, nil
}

// rotatePersona replaces the market config with a built-in persona. Keys the
// config carries besides the persona fields survive the rewrite.
func (uc *RunPipelineUseCase) rotatePersona(path string) (string, error) {
	picked := templating.RotatePersona(uc.rng)

	current, err := config.LoadMarketConfig(path)
	switch {
	case err == nil:
		picked.Extra = current.Extra
	case errors.Is(err, fs.ErrNotExist):
	default:
		return "", &TechnicalError{Code: CodeConfigLoad, Message: "failed to load market config", Err: err}
	}

	if err := config.SaveMarketConfig(path, &picked); err != nil {
		return "", &TechnicalError{Code: CodeConfigSave, Message: "failed to save market config", Err: err}
	}
	return picked.Industry, nil
}
