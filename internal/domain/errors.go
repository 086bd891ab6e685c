package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("formato de arquivo não suportado")
	ErrEmptyWorkbook     = errors.New("a planilha não contém abas com dados")
	ErrUnreadableFile    = errors.New("não foi possível ler o arquivo")
	ErrSessionNotFound   = errors.New("sessão não encontrada ou expirada")
	ErrEmptyValue        = errors.New("valor vazio")
)

// ValidationError is returned by the strict policy when required columns are missing.
type ValidationError struct {
	Missing []string
	// Suggestions maps a missing column to the closest header found in the sheet.
	Suggestions map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Missing))
	for _, col := range e.Missing {
		if s, ok := e.Suggestions[col]; ok && s != "" {
			parts = append(parts, fmt.Sprintf("%s (encontrada %q)", col, s))
			continue
		}
		parts = append(parts, col)
	}
	return "planilha sem colunas obrigatórias: " + strings.Join(parts, ", ")
}

// ParseError reports a value that is not a number.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("valor numérico inválido %q: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CalculationInputError is the structured failure of a single-entry calculation.
type CalculationInputError struct {
	Field string
	Value string
	Err   error
}

func (e *CalculationInputError) Error() string {
	return fmt.Sprintf("campo %s inválido (%q): %v", e.Field, e.Value, e.Err)
}

func (e *CalculationInputError) Unwrap() error { return e.Err }

// InvalidPolicyError reports an unknown column policy name.
type InvalidPolicyError struct {
	Value string
}

func (e *InvalidPolicyError) Error() string {
	return fmt.Sprintf("política de colunas desconhecida %q (use %q ou %q)", e.Value, PolicyLenient, PolicyStrict)
}
