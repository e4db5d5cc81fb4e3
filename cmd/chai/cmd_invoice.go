package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vfg2006/chai-ledger/internal/render"
)

var invoiceFlags struct {
	format string
	outDir string
}

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Emite a fatura do filtro e grava Invoice-<número>.<formato>",
	RunE:  runInvoice,
}

func init() {
	addFilterFlags(invoiceCmd)

	f := invoiceCmd.Flags()
	f.StringVar(&invoiceFlags.format, "format", string(render.FormatPDF), "pdf, txt, md, html ou chrome")
	f.StringVarP(&invoiceFlags.outDir, "output", "o", ".", "Diretório de saída")
}

func runInvoice(cmd *cobra.Command, _ []string) error {
	filter, err := parsedFilter()
	if err != nil {
		return err
	}

	format, err := render.ParseFormat(invoiceFlags.format)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	invoice, renderer, err := services.Invoicer.Export(cmd.Context(), filter, format, &buf)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(invoiceFlags.outDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(invoiceFlags.outDir, render.FileName(invoice, renderer))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("gravar fatura: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, warning := range invoice.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "aviso: %s\n", warning)
	}

	if done, err := printJSON(out, map[string]any{"number": invoice.Number, "path": path, "total": invoice.Total}); done {
		return err
	}
	_, err = fmt.Fprintf(out, "Fatura %s gravada em %s (%s)\n", invoice.Number, path, invoice.AmountInWords)
	return err
}
