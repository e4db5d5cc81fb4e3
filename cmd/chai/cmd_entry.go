package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vfg2006/chai-ledger/internal/domain"
	"github.com/vfg2006/chai-ledger/internal/render"
	"github.com/vfg2006/chai-ledger/pkg/utils"
)

var entryAddFlags struct {
	office      string
	teaCount    string
	coffeeCount string
	teaPrice    string
	coffeePrice string
	date        string
}

var filterFlags struct {
	office string
	from   string
	to     string
}

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Lançamento de entregas",
}

var entryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Registra uma entrega de chá e café",
	RunE:  runEntryAdd,
}

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista as entregas filtradas",
	RunE:  runEntryList,
}

func init() {
	f := entryAddCmd.Flags()
	f.StringVar(&entryAddFlags.office, "office", "", "Escritório")
	f.StringVar(&entryAddFlags.teaCount, "tea", "0", "Quantidade de chá")
	f.StringVar(&entryAddFlags.coffeeCount, "coffee", "0", "Quantidade de café")
	f.StringVar(&entryAddFlags.teaPrice, "tea-price", "0", "Preço unitário do chá")
	f.StringVar(&entryAddFlags.coffeePrice, "coffee-price", "0", "Preço unitário do café")
	f.StringVar(&entryAddFlags.date, "date", "", "Data AAAA-MM-DD (padrão: hoje)")

	addFilterFlags(entryListCmd)

	entryCmd.AddCommand(entryAddCmd, entryListCmd)
}

// addFilterFlags registra --office, --from e --to, usados por entry list, report e invoice
func addFilterFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&filterFlags.office, "office", domain.AllOffices, "Escritório ou All")
	f.StringVar(&filterFlags.from, "from", "", "Data inicial AAAA-MM-DD")
	f.StringVar(&filterFlags.to, "to", "", "Data final AAAA-MM-DD")
}

func parsedFilter() (domain.ReportFilter, error) {
	from, to, err := utils.ParseDateRange(filterFlags.from, filterFlags.to)
	if err != nil {
		return domain.ReportFilter{}, err
	}
	return domain.ReportFilter{Office: filterFlags.office, From: from, To: to}, nil
}

func runEntryAdd(cmd *cobra.Command, _ []string) error {
	input := domain.OrderInput{OfficeName: entryAddFlags.office}
	var err error

	if input.TeaCount, err = utils.ParseQuantity("tea", entryAddFlags.teaCount); err != nil {
		return err
	}
	if input.CoffeeCount, err = utils.ParseQuantity("coffee", entryAddFlags.coffeeCount); err != nil {
		return err
	}
	if input.TeaPrice, err = utils.ParseAmount("tea-price", entryAddFlags.teaPrice); err != nil {
		return err
	}
	if input.CoffeePrice, err = utils.ParseAmount("coffee-price", entryAddFlags.coffeePrice); err != nil {
		return err
	}
	if input.Date, err = utils.ParseDate("date", entryAddFlags.date); err != nil {
		return err
	}

	order, err := services.Recorder.AddOrder(cmd.Context(), input)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if done, err := printJSON(out, order); done {
		return err
	}
	_, err = fmt.Fprintf(out, "Entrega %s registrada: %s em %s, total %s\n",
		order.ID, order.OfficeName, order.Date, domain.FormatMoney(cfg.Business.Currency, order.TotalAmount))
	return err
}

func runEntryList(cmd *cobra.Command, _ []string) error {
	filter, err := parsedFilter()
	if err != nil {
		return err
	}

	orders := services.Aggregator.FilterOrders(cmd.Context(), filter)

	out := cmd.OutOrStdout()
	if done, err := printJSON(out, orders); done {
		return err
	}

	table := render.NewTable(tableMode())
	table.Header("Date", "Office", "Tea", "Coffee", "Total")
	table.Columns(
		render.ColumnConfig{Number: 3, Align: render.AlignRight},
		render.ColumnConfig{Number: 4, Align: render.AlignRight},
		render.ColumnConfig{Number: 5, Align: render.AlignRight},
	)
	for _, order := range orders {
		table.Row(order.Date.String(), order.OfficeName, order.TeaCount, order.CoffeeCount, order.TotalAmount.StringFixed(2))
	}
	_, err = fmt.Fprintln(out, table.String())
	return err
}
