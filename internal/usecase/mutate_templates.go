package usecase

import (
	"context"

	"github.com/xavierca1/ghostreach/internal/config"
	"github.com/xavierca1/ghostreach/internal/entity"
	"github.com/xavierca1/ghostreach/internal/logger"
)

type MutateTemplatesUseCase struct {
	Mutator TemplateMutator
	log     logger.Logger
}

func NewMutateTemplatesUseCase(m TemplateMutator, log logger.Logger) *MutateTemplatesUseCase {
	return &MutateTemplatesUseCase{Mutator: m, log: log}
}

// Execute rewrites the templates stored in the market config at path. Only
// templates that are present are touched.
func (uc *MutateTemplatesUseCase) Execute(ctx context.Context, path string) (*MutateTemplatesOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, err := config.LoadMarketConfig(path)
	if err != nil {
		return nil, &TechnicalError{Code: CodeConfigLoad, Message: "failed to load market config", Err: err}
	}

	out := &MutateTemplatesOutput{Mutated: uc.Apply(cfg)}

	if err := config.SaveMarketConfig(path, cfg); err != nil {
		return nil, &TechnicalError{Code: CodeConfigSave, Message: "failed to save market config", Err: err}
	}

	uc.log.Info("Templates mutated", logger.String("config", path), logger.Int("templates", out.Mutated))
	return out, nil
}

// Apply mutates cfg in place and returns the number of templates rewritten.
func (uc *MutateTemplatesUseCase) Apply(cfg *entity.MarketConfig) int {
	n := 0
	for i := range cfg.BuyerPersonas {
		if cfg.BuyerPersonas[i].Template != "" {
			cfg.BuyerPersonas[i].Template = uc.Mutator.MutateTemplate(cfg.BuyerPersonas[i].Template)
			n++
		}
	}
	if cfg.Template != "" {
		cfg.Template = uc.Mutator.MutateTemplate(cfg.Template)
		n++
	}
	return n
}
