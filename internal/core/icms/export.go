package icms

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode"

	"icms-service/internal/domain"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ResultSheet é o nome da aba gerada na exportação .xlsx.
const ResultSheet = "Resultado"

var numericColumns = map[string]bool{
	domain.ColBaseCalculo: true,
	domain.ColAliqOrigem:  true,
	domain.ColAliqDestino: true,
	domain.ColICMSOrigem:  true,
	domain.ColDIFAL:       true,
	domain.ColICMSDestino: true,
	domain.ColTotalICMS:   true,
}

// sanitizeForCSV remove quebras de linha e tabs e troca outros controles por espaço.
func sanitizeForCSV(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\r' || r == '\n' || r == '\t':
			continue
		case unicode.IsControl(r):
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExportCSV gera o CSV no padrão dos sistemas contábeis: ';', vírgula decimal e cp1252.
func (svc *service) ExportCSV(table *domain.TransactionTable) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	writer := csv.NewWriter(transform.NewWriter(&buffer, encoder))
	writer.Comma = ';'

	columns := table.Columns()
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = sanitizeForCSV(col)
	}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, rec := range table.Records() {
		for i := range rec {
			if numericColumns[columns[i]] {
				rec[i] = strings.Replace(rec[i], ".", ",", 1)
			}
			rec[i] = sanitizeForCSV(rec[i])
		}
		if err := writer.Write(rec); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// ExportXLSX gera uma planilha com a aba "Resultado"; colunas numéricas saem como números.
func (svc *service) ExportXLSX(table *domain.TransactionTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetList()[0]
	if err := f.SetSheetName(defaultSheet, ResultSheet); err != nil {
		return nil, fmt.Errorf("erro ao renomear aba: %w", err)
	}

	columns := table.Columns()
	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(ResultSheet, "A1", &header); err != nil {
		return nil, err
	}

	for r, rec := range table.Records() {
		values := make([]interface{}, len(rec))
		for i, v := range rec {
			values[i] = v
			if numericColumns[columns[i]] {
				if d, err := domain.ParseDecimal(v); err == nil {
					values[i] = d.InexactFloat64()
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(ResultSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar .xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
