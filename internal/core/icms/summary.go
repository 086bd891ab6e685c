package icms

import (
	"icms-service/internal/domain"

	"github.com/shopspring/decimal"
)

// Summarize totaliza a tabela. Os totais por UF seguem a ordem em que cada UF aparece.
func (svc *service) Summarize(table *domain.TransactionTable) domain.Summary {
	var s domain.Summary
	if table == nil || len(table.Rows) == 0 {
		return s
	}

	byUF := make(map[string]int)
	for i, r := range table.Rows {
		tax := r.Taxes()
		s.Rows++
		s.BaseTotal = s.BaseTotal.Add(r.BaseCalculo)
		s.ICMSOrigemTotal = s.ICMSOrigemTotal.Add(tax.ICMSOrigem)
		s.ICMSDestinoTotal = s.ICMSDestinoTotal.Add(tax.ICMSDestino)
		s.DIFALTotal = s.DIFALTotal.Add(tax.DIFAL)
		s.TotalICMS = s.TotalICMS.Add(tax.TotalICMS)

		if i == 0 || r.BaseCalculo.LessThan(s.BaseMin) {
			s.BaseMin = r.BaseCalculo
		}
		if i == 0 || r.BaseCalculo.GreaterThan(s.BaseMax) {
			s.BaseMax = r.BaseCalculo
		}

		if !table.HasUF {
			continue
		}
		pos, ok := byUF[r.UF]
		if !ok {
			pos = len(s.ByUF)
			byUF[r.UF] = pos
			s.ByUF = append(s.ByUF, domain.UFTotal{UF: r.UF})
		}
		s.ByUF[pos].Rows++
		s.ByUF[pos].TotalICMS = s.ByUF[pos].TotalICMS.Add(tax.TotalICMS)
	}

	s.BaseMean = s.BaseTotal.Div(decimal.NewFromInt(int64(s.Rows))).Round(domain.MoneyPlaces)
	return s
}
