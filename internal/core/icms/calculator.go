package icms

import (
	"errors"
	"strings"

	"icms-service/internal/domain"

	"github.com/shopspring/decimal"
)

// ---------------------- calculadora individual ----------------------

// CalculateSingle calcula um lançamento avulso. Com UsarNCM e uma tabela carregada,
// as alíquotas da primeira linha com o mesmo NCM substituem as informadas manualmente.
// Falhas de conversão voltam como *domain.CalculationInputError.
func (svc *service) CalculateSingle(req domain.CalculationRequest, table *domain.TransactionTable) (*domain.CalculationResult, error) {
	base, err := parseInput("base_calculo", req.BaseCalculo)
	if err != nil {
		return nil, err
	}
	origemPct, err := parseInput("aliq_origem", req.AliqOrigemPct)
	if err != nil {
		return nil, err
	}
	destinoPct, err := parseInput("aliq_destino", req.AliqDestinoPct)
	if err != nil {
		return nil, err
	}

	result := &domain.CalculationResult{
		BaseCalculo: base,
		Source:      domain.SourceManual,
		AliqOrigem:  domain.PercentToFraction(origemPct),
		AliqDestino: domain.PercentToFraction(destinoPct),
	}

	if req.UsarNCM && table != nil {
		if row, ok := table.LookupNCM(req.NCM); ok {
			result.AliqOrigem = row.AliqOrigem
			result.AliqDestino = row.AliqDestino
			sugOrigem := domain.FractionToPercent(row.AliqOrigem)
			sugDestino := domain.FractionToPercent(row.AliqDestino)
			result.SugestaoOrigemPct = &sugOrigem
			result.SugestaoDestinoPct = &sugDestino
			result.Source = strings.TrimSpace(req.NCM)
		}
	}

	result.AliqOrigemPct = domain.FractionToPercent(result.AliqOrigem)
	result.AliqDestinoPct = domain.FractionToPercent(result.AliqDestino)

	tax := domain.ComputeTaxes(base, result.AliqOrigem, result.AliqDestino)
	result.ICMSOrigem = tax.ICMSOrigem
	result.ICMSDestino = tax.ICMSDestino
	result.DIFAL = tax.DIFAL
	result.TotalICMS = tax.TotalICMS

	return result, nil
}

// parseInput trata campo vazio como zero.
func parseInput(field string, val domain.NumericInput) (decimal.Decimal, error) {
	d, err := domain.ParseDecimal(string(val))
	if err == nil {
		return d, nil
	}
	if errors.Is(err, domain.ErrEmptyValue) {
		return decimal.Zero, nil
	}
	return decimal.Zero, &domain.CalculationInputError{Field: field, Value: string(val), Err: err}
}
