package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type tableJSON struct {
	Sheet   string              `json:"sheet"`
	Columns []string            `json:"columns"`
	Rows    []rowJSON           `json:"rows"`
	Report  NormalizationReport `json:"report"`
}

type rowJSON struct {
	UF          string          `json:"uf,omitempty"`
	NCM         string          `json:"ncm,omitempty"`
	BaseCalculo decimal.Decimal `json:"base_calculo"`
	AliqOrigem  decimal.Decimal `json:"aliq_origem"`
	AliqDestino decimal.Decimal `json:"aliq_destino"`
	// derived values are written for readers and ignored when decoding
	ICMSOrigem  decimal.Decimal `json:"icms_origem"`
	DIFAL       decimal.Decimal `json:"difal"`
	ICMSDestino decimal.Decimal `json:"icms_destino"`
	TotalICMS   decimal.Decimal `json:"total_icms"`
	Extra       []string        `json:"extra,omitempty"`
}

// MarshalJSON writes the table with its derived values and output column order.
// Decimals are encoded as strings, so no precision is lost.
func (t TransactionTable) MarshalJSON() ([]byte, error) {
	out := tableJSON{
		Sheet:   t.Sheet,
		Columns: t.Columns(),
		Rows:    make([]rowJSON, 0, len(t.Rows)),
		Report:  t.Report,
	}
	for _, r := range t.Rows {
		tax := r.Taxes()
		out.Rows = append(out.Rows, rowJSON{
			UF:          r.UF,
			NCM:         r.NCM,
			BaseCalculo: r.BaseCalculo,
			AliqOrigem:  r.AliqOrigem,
			AliqDestino: r.AliqDestino,
			ICMSOrigem:  tax.ICMSOrigem,
			DIFAL:       tax.DIFAL,
			ICMSDestino: tax.ICMSDestino,
			TotalICMS:   tax.TotalICMS,
			Extra:       r.Extra,
		})
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a table written by MarshalJSON. Derived values are recomputed.
func (t *TransactionTable) UnmarshalJSON(data []byte) error {
	var in tableJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*t = TransactionTable{Sheet: in.Sheet, Report: in.Report}
	for _, col := range in.Columns {
		switch col {
		case ColUF:
			t.HasUF = true
		case ColNCM:
			t.HasNCM = true
		case ColBaseCalculo, ColAliqOrigem, ColAliqDestino,
			ColICMSOrigem, ColDIFAL, ColICMSDestino, ColTotalICMS:
		default:
			t.ExtraColumns = append(t.ExtraColumns, col)
		}
	}

	t.Rows = make([]TransactionRow, 0, len(in.Rows))
	for _, r := range in.Rows {
		t.Rows = append(t.Rows, TransactionRow{
			UF:          r.UF,
			NCM:         r.NCM,
			BaseCalculo: r.BaseCalculo,
			AliqOrigem:  r.AliqOrigem,
			AliqDestino: r.AliqDestino,
			Extra:       r.Extra,
		})
	}
	return nil
}
