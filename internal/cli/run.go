package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xavierca1/ghostreach/internal/logger"
	"github.com/xavierca1/ghostreach/internal/usecase"
)

type pipelineFlags struct {
	rotatePersona bool
	mutate        bool
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().String("targets", "", "targets file (default mirror_targets.json)")
	cmd.Flags().String("config", "", "market config file (default market_targets.json)")
	cmd.Flags().BoolVar(&f.rotatePersona, "rotate-persona", false, "replace the market config with a built-in persona before sending")
	cmd.Flags().BoolVar(&f.mutate, "mutate", false, "mutate the market config templates before sending")
}

func (a *app) pipelineInput(f *pipelineFlags) usecase.RunPipelineInput {
	return usecase.RunPipelineInput{
		TargetsPath:   a.settings.Targets,
		MarketPath:    a.settings.Market,
		RotatePersona: f.rotatePersona,
		Mutate:        f.mutate,
	}
}

func (a *app) runCommand() *cobra.Command {
	flags := &pipelineFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Harvest, then contact every new lead",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runOnce(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) runOnce(ctx context.Context, w io.Writer, flags *pipelineFlags) error {
	db, repo, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	sender, closeSender, err := a.newSender()
	if err != nil {
		return err
	}
	defer closeSender()

	out, err := a.newPipeline(repo, sender).Execute(ctx, a.pipelineInput(flags))
	if out != nil {
		renderHarvest(w, &out.Harvest)
		if out.Outreach != nil {
			renderOutreach(w, out.Outreach)
		}
	}
	if err != nil {
		a.log.Error("Pipeline run failed", logger.Error(err))
		return fmt.Errorf("pipeline run failed: %w", err)
	}
	return nil
}
