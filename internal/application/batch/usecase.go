// Package batch procesa lotes recibidos por la API y los persiste.
package batch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Contenedor-api/internal/application/processing"
	"github.com/jhoicas/Contenedor-api/internal/domain"
	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
	"github.com/jhoicas/Contenedor-api/internal/domain/repository"
	"github.com/jhoicas/Contenedor-api/internal/infrastructure/storage"
	"github.com/jhoicas/Contenedor-api/pkg/logger"
)

// ProcessRequest insumos de un lote.
type ProcessRequest struct {
	RecordsName    string
	Records        io.Reader
	XML            []processing.Input
	Rules          []entity.CorrectionRule // reglas ad hoc, se aplican primero
	UseStoredRules bool
	CreatedBy      string
}

// BatchUseCase procesa, guarda y exporta lotes.
type BatchUseCase struct {
	reader RecordReader
	repo   repository.BatchRepository
	rules  RuleSource
	report ReportGenerator
	opts   processing.Options
	log    *logger.Logger
	now    func() time.Time
}

// NewBatchUseCase construye el caso de uso. rules puede ser nil si no hay reglas persistidas.
func NewBatchUseCase(
	reader RecordReader,
	repo repository.BatchRepository,
	rules RuleSource,
	report ReportGenerator,
	opts processing.Options,
	log *logger.Logger,
) *BatchUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &BatchUseCase{reader: reader, repo: repo, rules: rules, report: report, opts: opts, log: log, now: time.Now}
}

// Process ejecuta el pipeline sobre los XML y persiste el lote.
func (uc *BatchUseCase) Process(ctx context.Context, req ProcessRequest) (*entity.Batch, error) {
	if req.Records == nil {
		return nil, fmt.Errorf("falta la planilla de registros: %w", domain.ErrInvalidInput)
	}
	if len(req.XML) == 0 {
		return nil, fmt.Errorf("no se recibieron XML: %w", domain.ErrInvalidInput)
	}

	id := uuid.New().String()
	log := uc.log.WithBatch(id)

	records, err := uc.reader.Read(req.RecordsName, req.Records)
	if err != nil {
		return nil, err
	}

	rules := append([]entity.CorrectionRule(nil), req.Rules...)
	if req.UseStoredRules && uc.rules != nil {
		stored, err := uc.rules.Stored(ctx)
		if err != nil {
			return nil, fmt.Errorf("leer reglas guardadas: %w", err)
		}
		rules = append(rules, stored...)
	}

	pipeline := processing.NewPipeline(records, uc.opts, processing.NewLogObserver(log))
	res, err := pipeline.Run(ctx, req.XML, rules)
	if err != nil {
		return nil, err
	}

	b := &entity.Batch{
		ID:           id,
		CreatedBy:    req.CreatedBy,
		Inputs:       res.Inputs,
		Files:        res.Invoices,
		Unmatched:    res.Unmatched,
		Malformed:    res.Malformed,
		RuleMatches:  res.RuleMatches,
		TotalPayable: res.TotalPayable,
		CreatedAt:    uc.now(),
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("guardar lote: %w", err)
	}

	log.Info().
		Int("records", len(records)).
		Int("inputs", b.Inputs).
		Int("processed", b.Processed()).
		Int("unmatched", len(b.Unmatched)).
		Int("malformed", len(b.Malformed)).
		Str("total_payable", b.TotalPayable.String()).
		Msg("lote procesado")
	return b, nil
}

// Get devuelve ErrNotFound si el lote no existe.
func (uc *BatchUseCase) Get(ctx context.Context, id string) (*entity.Batch, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// Archive ZIP con los XML del lote, en orden de consecutivo.
func (uc *BatchUseCase) Archive(ctx context.Context, id string) ([]byte, error) {
	b, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sink := storage.NewZipSink("")
	if _, err := processing.Persist(ctx, sink, b.Files, true); err != nil {
		return nil, err
	}
	return sink.Bytes()
}

// Report PDF del lote.
func (uc *BatchUseCase) Report(ctx context.Context, id string) ([]byte, error) {
	b, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.report.BatchReport(ctx, b)
}
