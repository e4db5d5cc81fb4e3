package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/chai-ledger/internal/render"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Pedidos filtrados, total geral e resumo por mês e escritório",
	RunE:  runReport,
}

func init() {
	addFilterFlags(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	filter, err := parsedFilter()
	if err != nil {
		return err
	}

	report := services.Aggregator.Report(cmd.Context(), filter)

	out := cmd.OutOrStdout()
	if done, err := printJSON(out, report); done {
		return err
	}

	_, err = fmt.Fprint(out, render.ReportTables(report, tableMode(), cfg.Business.Currency))
	return err
}
