// package domain/models.go
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Canonical column names, compared after trim + upper-case.
const (
	ColUF          = "UF"
	ColNCM         = "NCM"
	ColBaseCalculo = "BASE_CALCULO"
	ColAliqOrigem  = "ALIQ_ORIGEM"
	ColAliqDestino = "ALIQ_DESTINO"
	ColICMSOrigem  = "ICMS_ORIGEM"
	ColDIFAL       = "DIFAL"
	ColICMSDestino = "ICMS_DESTINO"
	ColTotalICMS   = "TOTAL_ICMS"
)

// PreferredSheet is the sheet picked from a multi-sheet workbook when present.
const PreferredSheet = "Entradas"

// SourceManual marks a single-entry result computed with the rates typed by the user.
const SourceManual = "Manual"

// RequiredColumns are the numeric columns every normalized table carries.
var RequiredColumns = []string{ColBaseCalculo, ColAliqOrigem, ColAliqDestino}

// DerivedColumns are recomputed on every normalization and never read from the source.
var DerivedColumns = []string{ColICMSOrigem, ColDIFAL, ColICMSDestino, ColTotalICMS}

// ColumnPolicy defines how the normalizer reacts to a missing required column.
type ColumnPolicy string

// Supported column policies.
const (
	PolicyLenient ColumnPolicy = "lenient"
	PolicyStrict  ColumnPolicy = "strict"
)

// ParseColumnPolicy converts a configuration value into a ColumnPolicy.
// An empty value selects the lenient policy.
func ParseColumnPolicy(s string) (ColumnPolicy, error) {
	switch ColumnPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyLenient:
		return PolicyLenient, nil
	case PolicyStrict:
		return PolicyStrict, nil
	}
	return "", &InvalidPolicyError{Value: s}
}

// RawTable is one decoded sheet: a header row plus data rows, all as text.
type RawTable struct {
	Name   string
	Header []string
	Rows   [][]string
}

// SelectSheet picks the "Entradas" sheet when present, otherwise the first one.
func SelectSheet(sheets []RawTable) (RawTable, bool) {
	if len(sheets) == 0 {
		return RawTable{}, false
	}
	for _, s := range sheets {
		if s.Name == PreferredSheet {
			return s, true
		}
	}
	return sheets[0], true
}

// TransactionRow is one normalized line. Tax values are derived on demand through Taxes.
type TransactionRow struct {
	UF          string
	NCM         string
	BaseCalculo decimal.Decimal
	AliqOrigem  decimal.Decimal
	AliqDestino decimal.Decimal
	// Extra holds the pass-through columns, aligned with TransactionTable.ExtraColumns.
	Extra []string
}

// Taxes recomputes the derived ICMS values of the row.
func (r TransactionRow) Taxes() TaxValues {
	return ComputeTaxes(r.BaseCalculo, r.AliqOrigem, r.AliqDestino)
}

// CellIssue records a cell that could not be parsed and was coerced to zero.
type CellIssue struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
	Value  string `json:"value"`
}

// NormalizationReport describes what the lenient normalizer had to fix.
type NormalizationReport struct {
	DefaultedColumns []string          `json:"defaulted_columns,omitempty"`
	Suggestions      map[string]string `json:"suggestions,omitempty"`
	CoercedCells     []CellIssue       `json:"coerced_cells,omitempty"`
}

// TransactionTable is an immutable, ordered set of rows sharing one schema.
type TransactionTable struct {
	Sheet        string
	HasUF        bool
	HasNCM       bool
	ExtraColumns []string
	Rows         []TransactionRow
	Report       NormalizationReport
}

// Columns returns the output column order: canonical prefix, then pass-through columns.
func (t *TransactionTable) Columns() []string {
	cols := make([]string, 0, 9+len(t.ExtraColumns))
	if t.HasUF {
		cols = append(cols, ColUF)
	}
	if t.HasNCM {
		cols = append(cols, ColNCM)
	}
	cols = append(cols,
		ColBaseCalculo, ColAliqOrigem, ColAliqDestino,
		ColICMSOrigem, ColDIFAL, ColICMSDestino, ColTotalICMS,
	)
	return append(cols, t.ExtraColumns...)
}

// Records renders every row as text in Columns order.
// Monetary values always carry two decimal places.
func (t *TransactionTable) Records() [][]string {
	records := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		tax := r.Taxes()
		rec := make([]string, 0, 9+len(t.ExtraColumns))
		if t.HasUF {
			rec = append(rec, r.UF)
		}
		if t.HasNCM {
			rec = append(rec, r.NCM)
		}
		rec = append(rec,
			r.BaseCalculo.String(),
			r.AliqOrigem.String(),
			r.AliqDestino.String(),
			tax.ICMSOrigem.StringFixed(MoneyPlaces),
			tax.DIFAL.StringFixed(MoneyPlaces),
			tax.ICMSDestino.StringFixed(MoneyPlaces),
			tax.TotalICMS.StringFixed(MoneyPlaces),
		)
		for i := range t.ExtraColumns {
			if i < len(r.Extra) {
				rec = append(rec, r.Extra[i])
			} else {
				rec = append(rec, "")
			}
		}
		records = append(records, rec)
	}
	return records
}

// Raw converts the table back into a RawTable with the output column order.
func (t *TransactionTable) Raw() RawTable {
	return RawTable{Name: t.Sheet, Header: t.Columns(), Rows: t.Records()}
}

// LookupNCM returns the first row whose trimmed NCM equals ncm.
func (t *TransactionTable) LookupNCM(ncm string) (TransactionRow, bool) {
	key := strings.TrimSpace(ncm)
	if t == nil || !t.HasNCM || key == "" {
		return TransactionRow{}, false
	}
	for _, r := range t.Rows {
		if strings.TrimSpace(r.NCM) == key {
			return r, true
		}
	}
	return TransactionRow{}, false
}

// CalculationRequest is one manual calculation as typed by the user.
// Rates are in percentage form (7 means 7%).
type CalculationRequest struct {
	BaseCalculo    NumericInput `json:"base_calculo"`
	NCM            string       `json:"ncm"`
	UsarNCM        bool         `json:"usar_ncm"`
	AliqOrigemPct  NumericInput `json:"aliq_origem"`
	AliqDestinoPct NumericInput `json:"aliq_destino"`
}

// CalculationResult is the outcome of a single-entry calculation.
type CalculationResult struct {
	BaseCalculo    decimal.Decimal `json:"base"`
	Source         string          `json:"ncm"`
	AliqOrigemPct  decimal.Decimal `json:"aliq_origem"`
	AliqDestinoPct decimal.Decimal `json:"aliq_destino"`
	AliqOrigem     decimal.Decimal `json:"aliq_origem_fracao"`
	AliqDestino    decimal.Decimal `json:"aliq_destino_fracao"`
	// Sugestões só existem quando a alíquota veio de uma linha da planilha.
	SugestaoOrigemPct  *decimal.Decimal `json:"sugestao_origem,omitempty"`
	SugestaoDestinoPct *decimal.Decimal `json:"sugestao_destino,omitempty"`
	ICMSOrigem         decimal.Decimal  `json:"icms_origem"`
	ICMSDestino        decimal.Decimal  `json:"icms_destino"`
	DIFAL              decimal.Decimal  `json:"difal"`
	TotalICMS          decimal.Decimal  `json:"total"`
}

// UFTotal aggregates the rows of one destination state.
type UFTotal struct {
	UF        string          `json:"uf"`
	Rows      int             `json:"rows"`
	TotalICMS decimal.Decimal `json:"total_icms"`
}

// Summary holds the descriptive totals of a normalized table.
type Summary struct {
	Rows             int             `json:"rows"`
	BaseTotal        decimal.Decimal `json:"base_calculo_total"`
	BaseMin          decimal.Decimal `json:"base_calculo_min"`
	BaseMax          decimal.Decimal `json:"base_calculo_max"`
	BaseMean         decimal.Decimal `json:"base_calculo_mean"`
	ICMSOrigemTotal  decimal.Decimal `json:"icms_origem_total"`
	ICMSDestinoTotal decimal.Decimal `json:"icms_destino_total"`
	DIFALTotal       decimal.Decimal `json:"difal_total"`
	TotalICMS        decimal.Decimal `json:"total_icms"`
	ByUF             []UFTotal       `json:"by_uf,omitempty"`
}
