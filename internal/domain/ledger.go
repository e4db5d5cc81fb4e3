package domain

// Ledger é todo o estado persistido: escritórios, pedidos e a última fatura emitida
type Ledger struct {
	Offices         []Office `json:"offices"`
	Orders          []Order  `json:"orders"`
	InvoiceSequence int      `json:"invoice_sequence"`
}

// Clone devolve uma cópia independente das coleções
func (l Ledger) Clone() Ledger {
	offices := make([]Office, len(l.Offices))
	copy(offices, l.Offices)

	orders := make([]Order, len(l.Orders))
	copy(orders, l.Orders)

	return Ledger{
		Offices:         offices,
		Orders:          orders,
		InvoiceSequence: l.InvoiceSequence,
	}
}
