package main

import (
	"github.com/spf13/cobra"

	"budgetwise/internal/backend"
	"budgetwise/internal/log"
	"budgetwise/internal/report"
	"budgetwise/internal/view"
)

func reportCmd() *cobra.Command {
	var (
		page     string
		search   string
		category string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a dashboard page to the terminal",
		Example: `  budgetwise report
  budgetwise report --page expenses --search bill
  budgetwise report --page budgets`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap(cmd)
			if err != nil {
				return err
			}

			backendCfg, err := backend.FromAppConfig(cfg)
			if err != nil {
				return err
			}
			snap, source, err := backend.LoadSnapshot(cmd.Context(), backend.NewFactory(logger), backendCfg)
			if err != nil {
				return err
			}
			defer source.Close()
			if err := snap.Validate(); err != nil {
				return err
			}

			logger.WithComponent(log.ComponentReport).Debug("Rendering report",
				log.FieldPage, page,
				log.FieldCount, len(snap.Transactions))
			return report.New(cmd.OutOrStdout()).Render(page, snap, view.NewExpenseFilter(search, category))
		},
	}
	cmd.Flags().StringVarP(&page, "page", "p", report.PageDashboard, "page to print: dashboard, expenses, budgets or analytics")
	cmd.Flags().StringVarP(&search, "search", "s", "", "expenses page: description filter")
	cmd.Flags().StringVarP(&category, "category", "c", "", "expenses page: category id filter")
	return cmd
}
