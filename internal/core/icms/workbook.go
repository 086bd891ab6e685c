package icms

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"icms-service/internal/domain"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// LoadWorkbook decodifica .xlsx, .xls ou .csv em tabelas cruas, uma por aba, na ordem do arquivo.
func (svc *service) LoadWorkbook(file io.Reader, filename string) ([]domain.RawTable, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		sheets []domain.RawTable
		err    error
	)
	switch ext {
	case ".xlsx", ".xlsm":
		sheets, err = svc.loadXLSX(file)
		if err != nil {
			return nil, fmt.Errorf("%w (.xlsx): %w", domain.ErrUnreadableFile, err)
		}
	case ".xls":
		sheets, err = svc.loadXLS(file)
		if err != nil {
			return nil, fmt.Errorf("%w (.xls): %w", domain.ErrUnreadableFile, err)
		}
	case ".csv":
		name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		sheets, err = svc.loadCSV(file, name)
		if err != nil {
			return nil, fmt.Errorf("%w (.csv): %w", domain.ErrUnreadableFile, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, ext)
	}

	if len(sheets) == 0 {
		return nil, domain.ErrEmptyWorkbook
	}
	return sheets, nil
}

func (svc *service) loadXLSX(file io.Reader) ([]domain.RawTable, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sheets []domain.RawTable
	for _, name := range f.GetSheetList() {
		// valores crus: 0.07 formatado como 7% continua chegando como 0.07
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("aba %q: %w", name, err)
		}
		sheets = append(sheets, toRawTable(name, rows))
	}
	return sheets, nil
}

func (svc *service) loadXLS(file io.Reader) ([]domain.RawTable, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		// talvez seja xlsx salvo com extensão .xls; tentar excelize
		if sheets, errX := svc.loadXLSX(bytes.NewReader(data)); errX == nil {
			return sheets, nil
		}
		return nil, err
	}

	var sheets []domain.RawTable
	for _, sheet := range workbook.GetSheets() {
		var rows [][]string
		for _, row := range sheet.GetRows() {
			var cells []string
			for _, cell := range row.GetCols() {
				cells = append(cells, cell.GetString())
			}
			rows = append(rows, cells)
		}
		sheets = append(sheets, toRawTable(sheet.GetName(), rows))
	}
	return sheets, nil
}

func (svc *service) loadCSV(file io.Reader, name string) ([]domain.RawTable, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var src io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}

	reader := csv.NewReader(src)
	reader.Comma = detectDelimiter(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return []domain.RawTable{toRawTable(name, records)}, nil
}

// detectDelimiter escolhe ';' ou ',' olhando apenas a linha de cabeçalho.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) >= bytes.Count(line, []byte(",")) && bytes.Contains(line, []byte(";")) {
		return ';'
	}
	return ','
}

// toRawTable usa a primeira linha não vazia como cabeçalho.
func toRawTable(name string, rows [][]string) domain.RawTable {
	table := domain.RawTable{Name: name}
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		table.Header = row
		table.Rows = rows[i+1:]
		break
	}
	return table
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
