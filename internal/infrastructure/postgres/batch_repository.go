package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
	"github.com/jhoicas/Contenedor-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo persiste lotes y sus archivos.
type BatchRepo struct {
	q  Querier
	tx *TxRunner
}

// NewBatchRepository construye el adaptador. Con tx != nil, Create abre su
// propia transacción; con tx == nil se asume que q ya es una transacción.
func NewBatchRepository(q Querier, tx *TxRunner) *BatchRepo {
	return &BatchRepo{q: q, tx: tx}
}

var batchFileColumns = []string{
	"batch_id", "sequence", "filename", "input_name", "container",
	"nit", "invoice_number", "period_start", "period_end", "plan_code", "line_type",
	"payable_amount", "digest", "content",
}

// Create inserta la cabecera y copia los archivos con COPY.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if r.tx == nil {
		return r.create(ctx, r.q, b)
	}
	return r.tx.Run(ctx, func(q Querier) error { return r.create(ctx, q, b) })
}

func (r *BatchRepo) create(ctx context.Context, q Querier, b *entity.Batch) error {
	unmatched, err := json.Marshal(toSkippedRows(b.Unmatched))
	if err != nil {
		return fmt.Errorf("marshal unmatched: %w", err)
	}
	malformed, err := json.Marshal(toSkippedRows(b.Malformed))
	if err != nil {
		return fmt.Errorf("marshal malformed: %w", err)
	}
	matches, err := json.Marshal(toMatchRows(b.RuleMatches))
	if err != nil {
		return fmt.Errorf("marshal rule matches: %w", err)
	}

	query := `
		INSERT INTO batches (id, created_by, inputs, total_payable, unmatched, malformed, rule_matches, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := q.Exec(ctx, query,
		b.ID, b.CreatedBy, b.Inputs, b.TotalPayable, unmatched, malformed, matches, b.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	rows := make([][]any, 0, len(b.Files))
	for _, f := range b.Files {
		rows = append(rows, []any{
			b.ID, f.Sequence, f.Filename, f.InputName, f.Container,
			f.Record.NIT, f.Record.InvoiceNumber, f.Record.PeriodStart, f.Record.PeriodEnd, f.Record.PlanCode, f.Record.LineType,
			f.PayableAmount, f.Digest, f.Content,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	n, err := q.CopyFrom(ctx, pgx.Identifier{"batch_files"}, batchFileColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy batch files: %w", err)
	}
	if int(n) != len(rows) {
		return fmt.Errorf("copy batch files: se copiaron %d de %d", n, len(rows))
	}
	return nil
}

// GetByID obtiene el lote con sus archivos ordenados por consecutivo.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	query := `
		SELECT id, created_by, inputs, total_payable, unmatched, malformed, rule_matches, created_at
		FROM batches WHERE id = $1`
	var b entity.Batch
	var unmatched, malformed, matches []byte
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.CreatedBy, &b.Inputs, &b.TotalPayable, &unmatched, &malformed, &matches, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	if b.Unmatched, err = fromSkippedJSON(unmatched); err != nil {
		return nil, err
	}
	if b.Malformed, err = fromSkippedJSON(malformed); err != nil {
		return nil, err
	}
	var mrows []matchRow
	if err := json.Unmarshal(matches, &mrows); err != nil {
		return nil, fmt.Errorf("unmarshal rule matches: %w", err)
	}
	for _, m := range mrows {
		b.RuleMatches = append(b.RuleMatches, entity.RuleMatchCount{RuleID: m.RuleID, Description: m.Description, Matches: m.Matches})
	}

	files, err := r.listFiles(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Files = files
	return &b, nil
}

func (r *BatchRepo) listFiles(ctx context.Context, batchID string) ([]entity.ProcessedInvoice, error) {
	query := `
		SELECT sequence, filename, input_name, container,
		       nit, invoice_number, period_start, period_end, plan_code, line_type,
		       payable_amount, digest, content
		FROM batch_files WHERE batch_id = $1 ORDER BY sequence`
	rows, err := r.q.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch files: %w", err)
	}
	defer rows.Close()
	var files []entity.ProcessedInvoice
	for rows.Next() {
		var f entity.ProcessedInvoice
		var amount decimal.Decimal
		if err := rows.Scan(&f.Sequence, &f.Filename, &f.InputName, &f.Container,
			&f.Record.NIT, &f.Record.InvoiceNumber, &f.Record.PeriodStart, &f.Record.PeriodEnd,
			&f.Record.PlanCode, &f.Record.LineType, &amount, &f.Digest, &f.Content); err != nil {
			return nil, fmt.Errorf("scan batch file: %w", err)
		}
		f.PayableAmount = amount
		files = append(files, f)
	}
	return files, rows.Err()
}

type skippedRow struct {
	InputName string `json:"input_name"`
	Key       string `json:"key,omitempty"`
	Reason    string `json:"reason"`
}

type matchRow struct {
	RuleID      string `json:"rule_id"`
	Description string `json:"description,omitempty"`
	Matches     int    `json:"matches"`
}

func toSkippedRows(in []entity.SkippedInput) []skippedRow {
	out := make([]skippedRow, 0, len(in))
	for _, s := range in {
		out = append(out, skippedRow{InputName: s.InputName, Key: s.Key, Reason: s.Reason})
	}
	return out
}

func fromSkippedJSON(data []byte) ([]entity.SkippedInput, error) {
	var rows []skippedRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal skipped inputs: %w", err)
	}
	out := make([]entity.SkippedInput, 0, len(rows))
	for _, s := range rows {
		out = append(out, entity.SkippedInput{InputName: s.InputName, Key: s.Key, Reason: s.Reason})
	}
	return out, nil
}

func toMatchRows(in []entity.RuleMatchCount) []matchRow {
	out := make([]matchRow, 0, len(in))
	for _, m := range in {
		out = append(out, matchRow{RuleID: m.RuleID, Description: m.Description, Matches: m.Matches})
	}
	return out
}
