package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xavierca1/ghostreach/internal/config"
	"github.com/xavierca1/ghostreach/internal/usecase"
)

func (a *app) harvestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Harvest emails from the targets into the vault and the lead store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, err := config.LoadTargets(a.settings.Targets)
			if err != nil {
				return err
			}

			db, repo, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			out, err := a.newHarvestUseCase(repo).Execute(cmd.Context(), usecase.HarvestLeadsInput{Targets: targets})
			if err != nil {
				return err
			}
			renderHarvest(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("targets", "", "targets file (default mirror_targets.json)")
	return cmd
}

func (a *app) outreachCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outreach",
		Short: "Send the templated message to every new lead",
		RunE: func(cmd *cobra.Command, _ []string) error {
			market, err := config.LoadMarketConfig(a.settings.Market)
			if err != nil {
				return err
			}

			db, repo, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			sender, closeSender, err := a.newSender()
			if err != nil {
				return err
			}
			defer closeSender()

			out, err := a.newSendUseCase(repo, sender).Execute(cmd.Context(), usecase.SendOutreachInput{Market: market})
			if out != nil {
				renderOutreach(cmd.OutOrStdout(), out)
			}
			return err
		},
	}
	cmd.Flags().String("config", "", "market config file (default market_targets.json)")
	return cmd
}

func (a *app) mutateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mutate",
		Short: "Rewrite the market config templates with synonym mutation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.newMutateUseCase(newRand()).Execute(cmd.Context(), a.settings.Market)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mutated %d template(s) in %s\n", out.Mutated, a.settings.Market)
			return nil
		},
	}
	cmd.Flags().String("config", "", "market config file (default market_targets.json)")
	return cmd
}
