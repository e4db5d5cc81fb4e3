package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/chai-ledger/internal/render"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Totais gerais, série mensal e consumo por escritório",
	RunE:  runDashboard,
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	dashboard := services.Aggregator.Dashboard(cmd.Context())
	out := cmd.OutOrStdout()

	if done, err := printJSON(out, dashboard); done {
		return err
	}

	_, err := fmt.Fprint(out, render.DashboardTables(dashboard, tableMode(), cfg.Business.Currency))
	return err
}
