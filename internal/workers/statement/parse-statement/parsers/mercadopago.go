// internal/workers/statement/parse-statement/parsers/mercadopago.go
package parsers

// mercadoPagoParser uses an explicit income whitelist. Mercado Pago
// reports mix sales, collections and platform movements in one table;
// only rows with recognized income wording count.
type mercadoPagoParser struct {
	cfg lineScanConfig
}

func newMercadoPagoParser() *mercadoPagoParser {
	return &mercadoPagoParser{cfg: lineScanConfig{
		incomeKeywords: []string{
			"DINERO RECIBIDO",
			"PAGO RECIBIDO",
			"VENTA",
			"COBRO",
			"TRANSFERENCIA RECIBIDA",
			"DEPOSITO",
		},
		dropLastAmount: true,
		minAmount:      0.01,
	}}
}

func (p *mercadoPagoParser) Institution() string { return InstitutionMercadoPago }

func (p *mercadoPagoParser) Parse(pages []string) (*Result, error) {
	res := runLineScan(pages, p.cfg)
	res.Period = extractPeriod(pages)
	res.Balance = extractLabeledBalance(pages)
	return res, nil
}
