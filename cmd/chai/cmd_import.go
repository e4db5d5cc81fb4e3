package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/chai-ledger/infrastructure/repository"
)

var importFlags struct {
	from string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copia um arquivo de dados (JSON ou YAML) para o armazenamento configurado",
	Long:  "Lê escritórios, entregas e o número da última fatura do arquivo informado\ne substitui todo o conteúdo do DATA_BACKEND atual.",
	RunE:  runImport,
}

func init() {
	f := importCmd.Flags()
	f.StringVar(&importFlags.from, "from", "", "Arquivo de origem, ex: data.json (obrigatório)")
	_ = importCmd.MarkFlagRequired("from")
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	startTime := time.Now()

	source := repository.NewFileLedgerRepository(importFlags.from)
	ledger, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("ler %s: %w", importFlags.from, err)
	}

	if err := services.Storage.Ledger.Save(ctx, ledger); err != nil {
		return fmt.Errorf("gravar no backend %s: %w", cfg.Storage.Backend, err)
	}

	logrus.WithFields(logrus.Fields{
		"offices":  len(ledger.Offices),
		"orders":   len(ledger.Orders),
		"duration": time.Since(startTime).String(),
	}).Info("import: concluído")

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Importados %d escritório(s) e %d entrega(s) de %s\n",
		len(ledger.Offices), len(ledger.Orders), importFlags.from)
	return err
}
