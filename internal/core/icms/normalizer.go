package icms

import (
	"errors"
	"fmt"
	"strings"

	"icms-service/internal/domain"

	"github.com/schollz/closestmatch"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// ---------------------- normalização de colunas ----------------------

// normalizeColumnName aplica trim + maiúsculas; a comparação com os nomes canônicos é exata.
func normalizeColumnName(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.ToUpper(norm.NFC.String(strings.TrimSpace(name)))
}

func isDerivedColumn(name string) bool {
	for _, col := range domain.DerivedColumns {
		if name == col {
			return true
		}
	}
	return false
}

// columnMapping liga cada coluna canônica ao índice da coluna de origem.
type columnMapping struct {
	canonical  map[string]int
	extras     []int
	extraNames []string
}

func (svc *service) mapColumns(header []string) columnMapping {
	m := columnMapping{canonical: make(map[string]int)}
	for i, raw := range header {
		name := normalizeColumnName(raw)
		switch name {
		case domain.ColUF, domain.ColNCM, domain.ColBaseCalculo, domain.ColAliqOrigem, domain.ColAliqDestino:
			if _, seen := m.canonical[name]; !seen {
				m.canonical[name] = i
				continue
			}
			// repetida: segue como coluna extra com sufixo da posição
			name = fmt.Sprintf("%s_%d", name, i+1)
		}
		// colunas derivadas são sempre recalculadas
		if isDerivedColumn(name) {
			continue
		}
		if name == "" {
			name = fmt.Sprintf("COLUNA_%d", i+1)
		}
		m.extras = append(m.extras, i)
		m.extraNames = append(m.extraNames, name)
	}
	return m
}

// suggestColumns procura, entre as colunas não reconhecidas, a mais parecida com cada coluna ausente.
func (svc *service) suggestColumns(missing []string, candidates []string) map[string]string {
	if len(missing) == 0 || len(candidates) == 0 {
		return nil
	}
	cm := closestmatch.New(candidates, []int{2, 3})
	suggestions := make(map[string]string)
	for _, col := range missing {
		if match := cm.Closest(col); match != "" {
			suggestions[col] = match
		}
	}
	if len(suggestions) == 0 {
		return nil
	}
	return suggestions
}

// ---------------------- cálculo em lote ----------------------

// NormalizeAndCalculate mapeia as colunas, converte os valores numéricos e monta a tabela final.
// Na política strict, a ausência de qualquer coluna obrigatória retorna *domain.ValidationError.
func (svc *service) NormalizeAndCalculate(raw domain.RawTable, policy domain.ColumnPolicy) (*domain.TransactionTable, error) {
	mapping := svc.mapColumns(raw.Header)

	var missing []string
	for _, col := range domain.RequiredColumns {
		if _, ok := mapping.canonical[col]; !ok {
			missing = append(missing, col)
		}
	}
	suggestions := svc.suggestColumns(missing, mapping.extraNames)

	if len(missing) > 0 && policy == domain.PolicyStrict {
		return nil, &domain.ValidationError{Missing: missing, Suggestions: suggestions}
	}

	_, hasUF := mapping.canonical[domain.ColUF]
	_, hasNCM := mapping.canonical[domain.ColNCM]

	table := &domain.TransactionTable{
		Sheet:        raw.Name,
		HasUF:        hasUF,
		HasNCM:       hasNCM,
		ExtraColumns: mapping.extraNames,
		Rows:         make([]domain.TransactionRow, 0, len(raw.Rows)),
		Report: domain.NormalizationReport{
			DefaultedColumns: missing,
			Suggestions:      suggestions,
		},
	}

	for i, cells := range raw.Rows {
		if isBlankRow(cells) {
			continue
		}
		cell := func(col string) string {
			idx, ok := mapping.canonical[col]
			if !ok || idx >= len(cells) {
				return ""
			}
			return cells[idx]
		}
		numeric := func(col string) decimal.Decimal {
			if _, ok := mapping.canonical[col]; !ok {
				return decimal.Zero
			}
			val := cell(col)
			d, err := domain.ParseDecimal(val)
			if err != nil {
				if !errors.Is(err, domain.ErrEmptyValue) {
					table.Report.CoercedCells = append(table.Report.CoercedCells, domain.CellIssue{
						Row:    i + 1,
						Column: col,
						Value:  val,
					})
				}
				return decimal.Zero
			}
			return d
		}

		row := domain.TransactionRow{
			UF:          strings.TrimSpace(cell(domain.ColUF)),
			NCM:         strings.TrimSpace(cell(domain.ColNCM)),
			BaseCalculo: numeric(domain.ColBaseCalculo),
			AliqOrigem:  numeric(domain.ColAliqOrigem),
			AliqDestino: numeric(domain.ColAliqDestino),
		}
		if len(mapping.extras) > 0 {
			row.Extra = make([]string, len(mapping.extras))
			for j, idx := range mapping.extras {
				if idx < len(cells) {
					row.Extra[j] = cells[idx]
				}
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
