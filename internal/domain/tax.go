package domain

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places kept on every monetary value.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// TaxValues are the ICMS values derived from one base amount and its two rates.
type TaxValues struct {
	ICMSOrigem  decimal.Decimal
	ICMSDestino decimal.Decimal
	DIFAL       decimal.Decimal
	TotalICMS   decimal.Decimal
}

// ComputeTaxes applies the ICMS/DIFAL rules. Rates are fractions (0.07 = 7%).
// Both ICMS values are rounded half away from zero before DIFAL is taken, so
// ICMSOrigem + DIFAL == ICMSDestino holds exactly.
func ComputeTaxes(base, aliqOrigem, aliqDestino decimal.Decimal) TaxValues {
	origem := base.Mul(aliqOrigem).Round(MoneyPlaces)
	destino := base.Mul(aliqDestino).Round(MoneyPlaces)
	return TaxValues{
		ICMSOrigem:  origem,
		ICMSDestino: destino,
		DIFAL:       destino.Sub(origem),
		TotalICMS:   destino,
	}
}

// PercentToFraction converts 18 into 0.18.
func PercentToFraction(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred)
}

// FractionToPercent converts 0.18 into 18.
func FractionToPercent(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(hundred)
}
