package icms

import (
	"fmt"
	"io"

	"icms-service/internal/domain"
)

// Service define a interface do núcleo de cálculo de ICMS/DIFAL.
type Service interface {
	LoadWorkbook(file io.Reader, filename string) ([]domain.RawTable, error)
	NormalizeAndCalculate(raw domain.RawTable, policy domain.ColumnPolicy) (*domain.TransactionTable, error)
	ProcessUpload(file io.Reader, filename string, policy domain.ColumnPolicy) (*domain.TransactionTable, error)
	CalculateSingle(req domain.CalculationRequest, table *domain.TransactionTable) (*domain.CalculationResult, error)
	Summarize(table *domain.TransactionTable) domain.Summary
	ExportCSV(table *domain.TransactionTable) ([]byte, error)
	ExportXLSX(table *domain.TransactionTable) ([]byte, error)
}

type service struct{}

// NewService cria uma nova instância do serviço de cálculo.
func NewService() Service {
	return &service{}
}

// ProcessUpload lê a planilha, escolhe a aba de entradas e calcula a tabela final.
func (svc *service) ProcessUpload(file io.Reader, filename string, policy domain.ColumnPolicy) (*domain.TransactionTable, error) {
	sheets, err := svc.LoadWorkbook(file, filename)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler planilha: %w", err)
	}

	raw, ok := domain.SelectSheet(sheets)
	if !ok {
		return nil, domain.ErrEmptyWorkbook
	}

	table, err := svc.NormalizeAndCalculate(raw, policy)
	if err != nil {
		return nil, fmt.Errorf("erro ao processar aba %q: %w", raw.Name, err)
	}
	return table, nil
}
