package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTaxes(t *testing.T) {
	tests := []struct {
		name                    string
		base, origem, destino   string
		wantOrigem, wantDestino string
		wantDIFAL, wantTotal    string
	}{
		{"interestadual 7%", "100", "0.07", "0.18", "7.00", "18.00", "11.00", "18.00"},
		{"interestadual 12%", "200", "0.12", "0.18", "24.00", "36.00", "12.00", "36.00"},
		{"base mil", "1000", "0.07", "0.18", "70.00", "180.00", "110.00", "180.00"},
		{"arredonda meio para cima", "0.5", "0.01", "0.03", "0.01", "0.02", "0.01", "0.02"},
		{"origem maior que destino", "100", "0.18", "0.12", "18.00", "12.00", "-6.00", "12.00"},
		{"base zero", "0", "0.07", "0.18", "0", "0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTaxes(dec(tt.base), dec(tt.origem), dec(tt.destino))
			if !got.ICMSOrigem.Equal(dec(tt.wantOrigem)) {
				t.Errorf("ICMSOrigem = %s, want %s", got.ICMSOrigem, tt.wantOrigem)
			}
			if !got.ICMSDestino.Equal(dec(tt.wantDestino)) {
				t.Errorf("ICMSDestino = %s, want %s", got.ICMSDestino, tt.wantDestino)
			}
			if !got.DIFAL.Equal(dec(tt.wantDIFAL)) {
				t.Errorf("DIFAL = %s, want %s", got.DIFAL, tt.wantDIFAL)
			}
			if !got.TotalICMS.Equal(dec(tt.wantTotal)) {
				t.Errorf("TotalICMS = %s, want %s", got.TotalICMS, tt.wantTotal)
			}
		})
	}
}

func TestComputeTaxes_DIFALClosesTheGap(t *testing.T) {
	bases := []string{"0", "0.01", "1", "99.99", "123.456", "1000000.005", "-50"}
	rates := []string{"0", "0.04", "0.07", "0.12", "0.175", "0.18", "0.205"}

	for _, b := range bases {
		for _, o := range rates {
			for _, d := range rates {
				tax := ComputeTaxes(dec(b), dec(o), dec(d))
				if !tax.ICMSOrigem.Add(tax.DIFAL).Equal(tax.ICMSDestino) {
					t.Errorf("base=%s origem=%s destino=%s: %s + %s != %s",
						b, o, d, tax.ICMSOrigem, tax.DIFAL, tax.ICMSDestino)
				}
				if !tax.TotalICMS.Equal(tax.ICMSDestino) {
					t.Errorf("base=%s origem=%s destino=%s: total %s != destino %s",
						b, o, d, tax.TotalICMS, tax.ICMSDestino)
				}
				if tax.ICMSDestino.Exponent() < -MoneyPlaces {
					t.Errorf("ICMSDestino %s has more than %d places", tax.ICMSDestino, MoneyPlaces)
				}
			}
		}
	}
}

func TestPercentConversions(t *testing.T) {
	if got := PercentToFraction(dec("18")); !got.Equal(dec("0.18")) {
		t.Errorf("PercentToFraction(18) = %s, want 0.18", got)
	}
	if got := FractionToPercent(dec("0.07")); !got.Equal(dec("7")) {
		t.Errorf("FractionToPercent(0.07) = %s, want 7", got)
	}
}
