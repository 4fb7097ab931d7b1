package http

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contenedor-api/internal/application/batch"
	"github.com/jhoicas/Contenedor-api/internal/application/dto"
	"github.com/jhoicas/Contenedor-api/internal/application/processing"
	"github.com/jhoicas/Contenedor-api/internal/application/rules"
	"github.com/jhoicas/Contenedor-api/internal/domain"
	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
)

// BatchHandler carga y consulta lotes (protegido).
type BatchHandler struct {
	uc *batch.BatchUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *batch.BatchUseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// Create godoc
// @Summary      Procesar un lote
// @Description  Cruza los XML con la planilla, aplica las correcciones y guarda el lote.
// @Tags         batches
// @Accept       multipart/form-data
// @Produce      json
// @Param        records           formData  file    true   "Planilla .xlsx o .csv"
// @Param        xml               formData  file    true   "XML de facturas (uno o varios)"
// @Param        rules             formData  string  false  "Reglas ad hoc (JSON array)"
// @Param        use_stored_rules  formData  bool    false  "Agregar reglas guardadas"
// @Success      201  {object}  dto.BatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se esperaba multipart/form-data"})
	}
	recs := form.File["records"]
	if len(recs) != 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "se requiere exactamente un archivo 'records'"})
	}
	records, err := recs[0].Open()
	if err != nil {
		return writeError(c, err, "")
	}
	defer records.Close()

	inputs, err := readInputs(form.File["xml"])
	if err != nil {
		return writeError(c, err, "")
	}
	adhoc, err := parseAdhocRules(c.FormValue("rules"))
	if err != nil {
		return writeError(c, err, "")
	}
	useStored, _ := strconv.ParseBool(c.FormValue("use_stored_rules"))

	b, err := h.uc.Process(c.UserContext(), batch.ProcessRequest{
		RecordsName:    recs[0].Filename,
		Records:        records,
		XML:            inputs,
		Rules:          adhoc,
		UseStoredRules: useStored,
		CreatedBy:      GetUser(c),
	})
	if err != nil {
		return writeError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(toBatchResponse(b))
}

// GetByID godoc
// @Summary      Resumen de un lote
// @Tags         batches
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/batches/{id} [get]
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	b, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "lote no encontrado")
	}
	return c.JSON(toBatchResponse(b))
}

// Zip godoc
// @Summary      Descargar los XML del lote
// @Tags         batches
// @Produce      application/zip
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/batches/{id}/zip [get]
func (h *BatchHandler) Zip(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := h.uc.Archive(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "lote no encontrado")
	}
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="lote-%s.zip"`, id))
	return c.Send(data)
}

// Report godoc
// @Summary      Reporte PDF del lote
// @Tags         batches
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/batches/{id}/report [get]
func (h *BatchHandler) Report(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := h.uc.Report(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "lote no encontrado")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="lote-%s.pdf"`, id))
	return c.Send(data)
}

func readInputs(files []*multipart.FileHeader) ([]processing.Input, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("se requiere al menos un archivo 'xml': %w", domain.ErrInvalidInput)
	}
	inputs := make([]processing.Input, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", fh.Filename, err)
		}
		inputs = append(inputs, processing.Input{Name: fh.Filename, Data: data})
	}
	return inputs, nil
}

func parseAdhocRules(raw string) ([]entity.CorrectionRule, error) {
	if raw == "" {
		return nil, nil
	}
	var in []dto.CreateRuleRequest
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, fmt.Errorf("reglas: JSON inválido: %w", domain.ErrInvalidInput)
	}
	now := time.Now()
	out := make([]entity.CorrectionRule, 0, len(in))
	for i, r := range in {
		rule, err := rules.NewRule(r, now)
		if err != nil {
			return nil, fmt.Errorf("regla %d: %w", i+1, err)
		}
		rule.Position = i
		out = append(out, *rule)
	}
	return out, nil
}

func toBatchResponse(b *entity.Batch) dto.BatchResponse {
	out := dto.BatchResponse{
		ID:           b.ID,
		CreatedBy:    b.CreatedBy,
		CreatedAt:    b.CreatedAt,
		Inputs:       b.Inputs,
		Processed:    b.Processed(),
		TotalPayable: b.TotalPayable.StringFixed(2),
		Files:        make([]dto.BatchFileResponse, 0, len(b.Files)),
		Unmatched:    toSkipped(b.Unmatched),
		Malformed:    toSkipped(b.Malformed),
		RuleMatches:  make([]dto.RuleMatchResponse, 0, len(b.RuleMatches)),
	}
	for _, f := range b.Files {
		out.Files = append(out.Files, dto.BatchFileResponse{
			Sequence:      f.Sequence,
			Filename:      f.Filename,
			InputName:     f.InputName,
			Container:     f.Container,
			InvoiceNumber: f.Record.InvoiceNumber,
			NIT:           f.Record.NIT,
			PayableAmount: f.PayableAmount.StringFixed(2),
			Digest:        f.Digest,
		})
	}
	for _, m := range b.RuleMatches {
		out.RuleMatches = append(out.RuleMatches, dto.RuleMatchResponse{RuleID: m.RuleID, Description: m.Description, Matches: m.Matches})
	}
	return out
}

func toSkipped(list []entity.SkippedInput) []dto.SkippedResponse {
	out := make([]dto.SkippedResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SkippedResponse{InputName: s.InputName, Key: s.Key, Reason: s.Reason})
	}
	return out
}
