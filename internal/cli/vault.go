package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xavierca1/ghostreach/internal/entity"
)

func (a *app) vaultCommand() *cobra.Command {
	var (
		initStore bool
		list      bool
		status    string
		entries   int
	)

	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Manage the lead store and inspect the append log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !initStore && !list && entries <= 0 {
				return cmd.Help()
			}

			out := cmd.OutOrStdout()
			if entries > 0 {
				tail, err := a.newVault().Tail(entries)
				if err != nil {
					return err
				}
				renderEntries(out, tail)
			}
			if !initStore && !list {
				return nil
			}

			db, repo, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if initStore {
				fmt.Fprintf(out, "Lead store ready at %s\n", a.settings.DB)
			}
			if list {
				st, err := entity.ParseLeadStatus(status)
				if err != nil {
					return err
				}
				leads, err := repo.FetchByStatus(cmd.Context(), st)
				if err != nil {
					return err
				}
				renderLeads(out, leads)

				counts, err := repo.CountByStatus(cmd.Context())
				if err != nil {
					return err
				}
				renderCounts(out, counts)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&initStore, "init", false, "create the lead store schema")
	cmd.Flags().BoolVar(&list, "list", false, "list leads")
	cmd.Flags().StringVar(&status, "status", string(entity.LeadStatusNew), "status to list: new or contacted")
	cmd.Flags().IntVar(&entries, "entries", 0, "show the last N append log entries")
	return cmd
}
