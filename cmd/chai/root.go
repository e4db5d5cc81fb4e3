package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vfg2006/chai-ledger/internal/app"
	"github.com/vfg2006/chai-ledger/internal/config"
	"github.com/vfg2006/chai-ledger/internal/render"
	"github.com/vfg2006/chai-ledger/pkg/log"
	"github.com/vfg2006/chai-ledger/pkg/utils"
)

// version é definido no build via -ldflags
var version = "dev"

var rootFlags struct {
	json     bool
	markdown bool
}

// Preenchidos no PersistentPreRunE de cada execução
var (
	cfg      *config.Config
	services *app.Services
)

// setup carrega configuração e serviços; os testes trocam por um livro-caixa temporário
var setup = func(ctx context.Context) (*config.Config, *app.Services, error) {
	c, err := config.NewConfig()
	if err != nil {
		return nil, nil, err
	}

	log.Setup(c.App.LogLevel, os.Stderr)

	var secrets config.SecretStorage
	if c.Render.APIKey != "" {
		secrets = config.NewRenderClient(c)
	}

	s, err := app.Build(ctx, c, secrets)
	if err != nil {
		return nil, nil, err
	}
	return c, s, nil
}

var rootCmd = &cobra.Command{
	Use:   "chai",
	Short: "Livro-caixa de entregas de chá e café para escritórios",
	Long:  "chai registra escritórios e entregas, mostra o painel e o relatório\ne emite faturas direto no armazenamento configurado (DATA_BACKEND).",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, s, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		cfg, services = c, s
		return nil
	},
	PersistentPostRunE: func(*cobra.Command, []string) error {
		if services == nil {
			return nil
		}
		err := services.Close()
		services = nil
		return err
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&rootFlags.json, "json", false, "Saída em JSON")
	pf.BoolVar(&rootFlags.markdown, "markdown", false, "Tabelas em markdown")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(officeCmd)
	rootCmd.AddCommand(entryCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(invoiceCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.Version = version
}

func tableMode() render.Mode {
	if rootFlags.markdown {
		return render.Markdown
	}
	return render.ASCII
}

// printJSON escreve v indentado quando --json foi informado
func printJSON(w io.Writer, v any) (bool, error) {
	if !rootFlags.json {
		return false, nil
	}

	out, err := utils.PrettyJson(v)
	if err != nil {
		return true, err
	}
	_, err = fmt.Fprintln(w, out)
	return true, err
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
