// internal/api/handlers/icms_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"icms-service/internal/api/responses"
	"icms-service/internal/core/icms"
	"icms-service/internal/domain"
	"icms-service/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ICMSHandler lida com as requisições de cálculo de ICMS/DIFAL.
type ICMSHandler struct {
	service        icms.Service
	store          session.Store
	policy         domain.ColumnPolicy
	maxUploadBytes int64
}

// NewICMSHandler cria um novo handler de cálculo.
func NewICMSHandler(service icms.Service, store session.Store, policy domain.ColumnPolicy, maxUploadBytes int64) *ICMSHandler {
	return &ICMSHandler{
		service:        service,
		store:          store,
		policy:         policy,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes registra as rotas do serviço no grupo informado.
func RegisterRoutes(group gin.IRouter, h *ICMSHandler) {
	group.POST("/icms/upload", h.HandleUpload)
	group.POST("/icms/calculate", h.HandleCalculate)
	group.GET("/icms/sessions/:id", h.HandleGetTable)
	group.GET("/icms/sessions/:id/summary", h.HandleSummary)
	group.GET("/icms/sessions/:id/export", h.HandleExport)
	group.DELETE("/icms/sessions/:id", h.HandleDeleteSession)
}

type uploadResponse struct {
	SessionID string                   `json:"session_id"`
	Table     *domain.TransactionTable `json:"table"`
	Summary   domain.Summary           `json:"summary"`
}

type calculateRequest struct {
	domain.CalculationRequest
	SessionID string `json:"session_id"`
}

var supportedExtensions = map[string]bool{".xlsx": true, ".xlsm": true, ".xls": true, ".csv": true}

// HandleUpload recebe a planilha, calcula a tabela e guarda o resultado na sessão.
func (h *ICMSHandler) HandleUpload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			responses.Error(c, http.StatusRequestEntityTooLarge, "Arquivo excede o tamanho máximo permitido")
			return
		}
		responses.Error(c, http.StatusBadRequest, "Arquivo (.xlsx, .xls, .csv) não encontrado ou inválido")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !supportedExtensions[ext] {
		responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Extensão de arquivo não suportada: %s", ext))
		return
	}

	policy := h.policy
	if raw := c.PostForm("policy"); raw != "" {
		policy, err = domain.ParseColumnPolicy(raw)
		if err != nil {
			responses.Error(c, http.StatusBadRequest, "Política de colunas inválida", err.Error())
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo enviado")
		return
	}
	defer file.Close()

	table, err := h.service.ProcessUpload(file, fileHeader.Filename, policy)
	if err != nil {
		h.writeError(c, err, "Erro ao ler/processar planilha")
		return
	}

	log := responses.Logger()
	log.Info("Planilha processada",
		zap.String("file", fileHeader.Filename),
		zap.String("sheet", table.Sheet),
		zap.Int("rows", len(table.Rows)),
		zap.String("policy", string(policy)),
	)
	if len(table.Report.DefaultedColumns) > 0 {
		log.Warn("Colunas ausentes preenchidas com zero", zap.Strings("columns", table.Report.DefaultedColumns))
	}
	if n := len(table.Report.CoercedCells); n > 0 {
		log.Warn("Células não numéricas convertidas para zero", zap.Int("cells", n))
	}

	id := h.store.Put(table)
	responses.Success(c, http.StatusCreated, uploadResponse{
		SessionID: id,
		Table:     table,
		Summary:   h.service.Summarize(table),
	}, "Planilha processada com sucesso")
}

// HandleCalculate executa a calculadora individual, com consulta por NCM opcional.
func (h *ICMSHandler) HandleCalculate(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Requisição inválida", err.Error())
		return
	}

	var table *domain.TransactionTable
	if req.SessionID != "" {
		t, err := h.store.Get(req.SessionID)
		if err != nil {
			// sem planilha carregada o cálculo segue com as alíquotas manuais
			responses.Logger().Warn("Sessão não encontrada para consulta de NCM", zap.String("session_id", req.SessionID))
		} else {
			table = t
		}
	}

	result, err := h.service.CalculateSingle(req.CalculationRequest, table)
	if err != nil {
		var inputErr *domain.CalculationInputError
		if errors.As(err, &inputErr) {
			responses.ErrorWithData(c, http.StatusUnprocessableEntity,
				gin.H{"field": inputErr.Field, "value": inputErr.Value},
				"Erro no cálculo", err.Error())
			return
		}
		responses.Error(c, http.StatusInternalServerError, "Erro no cálculo", err.Error())
		return
	}

	responses.Success(c, http.StatusOK, result, "Cálculo realizado com sucesso")
}

// HandleGetTable devolve a tabela calculada da sessão.
func (h *ICMSHandler) HandleGetTable(c *gin.Context) {
	table, err := h.store.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Planilha não encontrada")
		return
	}
	responses.Success(c, http.StatusOK, table, "")
}

// HandleSummary devolve os totais da tabela da sessão.
func (h *ICMSHandler) HandleSummary(c *gin.Context) {
	table, err := h.store.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Planilha não encontrada")
		return
	}
	responses.Success(c, http.StatusOK, h.service.Summarize(table), "")
}

// HandleExport baixa a tabela da sessão em .csv ou .xlsx.
func (h *ICMSHandler) HandleExport(c *gin.Context) {
	table, err := h.store.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Planilha não encontrada")
		return
	}

	var (
		data        []byte
		contentType string
		ext         string
	)
	switch format := strings.ToLower(c.DefaultQuery("format", "csv")); format {
	case "csv":
		data, err = h.service.ExportCSV(table)
		contentType, ext = "text/csv; charset=windows-1252", "csv"
	case "xlsx":
		data, err = h.service.ExportXLSX(table)
		contentType, ext = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx"
	default:
		responses.Error(c, http.StatusBadRequest, fmt.Sprintf("Formato de exportação não suportado: %s", format))
		return
	}
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao gerar arquivo", err.Error())
		return
	}

	fileName := fmt.Sprintf("CalculoICMS_%s.%s", time.Now().Format("20060102_150405"), ext)
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, contentType, data)
}

// HandleDeleteSession descarta a planilha da sessão.
func (h *ICMSHandler) HandleDeleteSession(c *gin.Context) {
	h.store.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *ICMSHandler) writeError(c *gin.Context, err error, message string) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		responses.ErrorWithData(c, http.StatusUnprocessableEntity,
			gin.H{"missing": vErr.Missing, "suggestions": vErr.Suggestions},
			message, err.Error())
	case errors.Is(err, domain.ErrUnsupportedFormat), errors.Is(err, domain.ErrEmptyWorkbook),
		errors.Is(err, domain.ErrUnreadableFile):
		responses.Error(c, http.StatusBadRequest, message, err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		responses.Error(c, http.StatusNotFound, message, err.Error())
	default:
		responses.Error(c, http.StatusInternalServerError, message, err.Error())
	}
}
