package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AllOffices é o valor do filtro que desliga o filtro por escritório
const AllOffices = "All"

type GlobalTotals struct {
	Offices int             `json:"offices"`
	Tea     int             `json:"tea"`
	Coffee  int             `json:"coffee"`
	Revenue decimal.Decimal `json:"revenue"`
}

type MonthlyPoint struct {
	Month  string `json:"month"`
	Tea    int    `json:"tea"`
	Coffee int    `json:"coffee"`
}

type OfficePoint struct {
	OfficeName string `json:"office_name"`
	Tea        int    `json:"tea"`
	Coffee     int    `json:"coffee"`
}

type MonthOfficeSummary struct {
	Month      string          `json:"month"`
	OfficeName string          `json:"office_name"`
	Tea        int             `json:"tea"`
	Coffee     int             `json:"coffee"`
	Total      decimal.Decimal `json:"total"`
}

type ReportFilter struct {
	Office string `json:"office"`
	From   Date   `json:"from"`
	To     Date   `json:"to"`
}

// AllOfficesSelected indica se o filtro não restringe o escritório
func (f ReportFilter) AllOfficesSelected() bool {
	office := strings.TrimSpace(f.Office)
	return office == "" || office == AllOffices
}

type Dashboard struct {
	Totals   GlobalTotals   `json:"totals"`
	Monthly  []MonthlyPoint `json:"monthly"`
	ByOffice []OfficePoint  `json:"by_office"`
}

type Report struct {
	Filter         ReportFilter         `json:"filter"`
	Orders         []Order              `json:"orders"`
	GrandTotal     decimal.Decimal      `json:"grand_total"`
	MonthlySummary []MonthOfficeSummary `json:"monthly_summary"`
}
