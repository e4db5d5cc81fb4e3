package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/chai-ledger/internal/domain"
	"github.com/vfg2006/chai-ledger/internal/render"
)

var officeAddFlags struct {
	name    string
	mobile  string
	address string
}

var officeCmd = &cobra.Command{
	Use:   "office",
	Short: "Cadastro de escritórios",
}

var officeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Cadastra um escritório",
	RunE:  runOfficeAdd,
}

var officeListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista os escritórios cadastrados",
	RunE:  runOfficeList,
}

var officeRemoveCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Remove todos os escritórios com esse nome",
	Args:  cobra.ExactArgs(1),
	RunE:  runOfficeRemove,
}

func init() {
	f := officeAddCmd.Flags()
	f.StringVar(&officeAddFlags.name, "name", "", "Nome do escritório (obrigatório)")
	f.StringVar(&officeAddFlags.mobile, "mobile", "", "Telefone (obrigatório)")
	f.StringVar(&officeAddFlags.address, "address", "", "Endereço")

	officeCmd.AddCommand(officeAddCmd, officeListCmd, officeRemoveCmd)
}

func runOfficeAdd(cmd *cobra.Command, _ []string) error {
	office, err := services.Recorder.AddOffice(cmd.Context(), domain.Office{
		Name:    officeAddFlags.name,
		Mobile:  officeAddFlags.mobile,
		Address: officeAddFlags.address,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if done, err := printJSON(out, office); done {
		return err
	}
	_, err = fmt.Fprintf(out, "Escritório %q cadastrado\n", office.Name)
	return err
}

func runOfficeList(cmd *cobra.Command, _ []string) error {
	offices := services.Recorder.Offices()
	out := cmd.OutOrStdout()

	if done, err := printJSON(out, offices); done {
		return err
	}

	table := render.NewTable(tableMode())
	table.Header("Name", "Mobile", "Address")
	for _, office := range offices {
		table.Row(office.Name, office.Mobile, office.Address)
	}
	_, err := fmt.Fprintln(out, table.String())
	return err
}

func runOfficeRemove(cmd *cobra.Command, args []string) error {
	removed, err := services.Recorder.RemoveOffice(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if done, err := printJSON(out, map[string]any{"name": args[0], "removed": removed}); done {
		return err
	}
	_, err = fmt.Fprintf(out, "%d escritório(s) removido(s)\n", removed)
	return err
}
