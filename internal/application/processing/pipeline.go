// Package processing orquesta una corrida del corrector: desenvolver, cruzar,
// corregir, nombrar y, sobre el lote completo, aplicar las correcciones manuales.
package processing

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Contenedor-api/internal/domain"
	"github.com/jhoicas/Contenedor-api/internal/domain/dian"
	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
	infradian "github.com/jhoicas/Contenedor-api/internal/infrastructure/dian"
	"github.com/jhoicas/Contenedor-api/internal/infrastructure/xmldoc"
	pkgdian "github.com/jhoicas/Contenedor-api/pkg/dian"
)

// Input XML de entrada con el nombre con el que llegó.
type Input struct {
	Name string
	Data []byte
}

// Result salida de una corrida, en el orden de las entradas.
type Result struct {
	Invoices     []entity.ProcessedInvoice
	Unmatched    []entity.SkippedInput
	Malformed    []entity.SkippedInput
	RuleMatches  []entity.RuleMatchCount
	Inputs       int
	TotalPayable decimal.Decimal
}

// Pipeline procesa lotes contra un conjunto fijo de registros. El índice es de
// sólo lectura, así que un Pipeline puede ejecutar varias corridas a la vez.
type Pipeline struct {
	index   *dian.RecordIndex
	mutator *infradian.Mutator
	obs     dian.Observer
	opts    Options
}

// NewPipeline indexa los registros. obs nil descarta los eventos.
func NewPipeline(records []entity.InvoiceRecord, opts Options, obs dian.Observer) *Pipeline {
	if obs == nil {
		obs = dian.NopObserver{}
	}
	return &Pipeline{
		index:   dian.NewRecordIndex(records),
		mutator: infradian.NewMutator(opts.Mutator, obs),
		obs:     obs,
		opts:    opts,
	}
}

type outcomeStatus int

const (
	statusMatched outcomeStatus = iota
	statusUnmatched
	statusMalformed
)

type outcome struct {
	status    outcomeStatus
	key       string
	reason    string
	record    entity.InvoiceRecord
	content   string
	container bool
	amount    decimal.Decimal
}

// Run procesa las entradas y luego aplica las correcciones manuales a todas
// las salidas. Los consecutivos son 1..M en el orden de entrada de los
// documentos cruzados; los no cruzados no consumen consecutivo.
// La cancelación se revisa entre documentos.
func (p *Pipeline) Run(ctx context.Context, inputs []Input, rules []entity.CorrectionRule) (*Result, error) {
	outcomes := make([]outcome, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.workers())
	for i := range inputs {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			o, err := p.process(inputs[i])
			if err != nil {
				return err
			}
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, wrapCanceled(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, wrapCanceled(err)
	}

	res := p.assemble(inputs, outcomes)
	if err := p.correct(ctx, res, rules); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *Pipeline) process(in Input) (outcome, error) {
	doc, err := xmldoc.Parse(in.Data)
	if err != nil {
		if p.opts.Strict {
			return outcome{}, fmt.Errorf("processing: %s: %w", in.Name, err)
		}
		return outcome{status: statusMalformed, reason: err.Error()}, nil
	}

	env := infradian.Unwrap(in.Name, doc, p.obs)
	rec, _, ok := p.index.Lookup(env.Key())
	if !ok {
		return outcome{status: statusUnmatched, key: env.Key()}, nil
	}

	mutated := p.mutator.Mutate(in.Name, env.Invoice(), rec)
	content, err := env.Rewrap(mutated)
	if err != nil {
		return outcome{}, fmt.Errorf("processing: %s: %w", in.Name, err)
	}
	return outcome{
		status:    statusMatched,
		key:       env.Key(),
		record:    rec,
		content:   xmldoc.EnsureDeclaration(content, pkgdian.XMLDeclaration),
		container: env.IsContainer(),
		amount:    infradian.PayableAmount(mutated),
	}, nil
}

// assemble recorre los resultados en orden de entrada y asigna consecutivos.
func (p *Pipeline) assemble(inputs []Input, outcomes []outcome) *Result {
	res := &Result{Inputs: len(inputs), TotalPayable: decimal.Zero}
	seq := 0
	for i, o := range outcomes {
		name := inputs[i].Name
		switch o.status {
		case statusMalformed:
			res.Malformed = append(res.Malformed, entity.SkippedInput{InputName: name, Reason: o.reason})
			p.obs.OnSkip(name, "XML mal formado")
		case statusUnmatched:
			reason := fmt.Sprintf("sin registro para la llave %q", o.key)
			res.Unmatched = append(res.Unmatched, entity.SkippedInput{InputName: name, Key: o.key, Reason: reason})
			p.obs.OnSkip(name, reason)
		default:
			seq++
			res.Invoices = append(res.Invoices, entity.ProcessedInvoice{
				Filename:      dian.BuildFilename(seq, o.record),
				Content:       o.content,
				Sequence:      seq,
				InputName:     name,
				Container:     o.container,
				Record:        o.record,
				PayableAmount: o.amount,
			})
			res.TotalPayable = res.TotalPayable.Add(o.amount)
		}
	}
	return res
}

// correct segundo pase sobre todas las salidas ya ordenadas.
func (p *Pipeline) correct(ctx context.Context, res *Result, rules []entity.CorrectionRule) error {
	engine := dian.NewCorrectionEngine(rules)
	perFile := make([][]int, len(res.Invoices))
	raw := make([]bool, len(res.Invoices))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.workers())
	for i := range res.Invoices {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			inv := &res.Invoices[i]
			inv.Content, perFile[i] = engine.Apply(inv.Content)
			var canonical bool
			inv.Digest, canonical = infradian.Digest(inv.Content)
			raw[i] = !canonical
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return wrapCanceled(err)
	}

	for i, r := range raw {
		if r {
			p.obs.OnWarning(res.Invoices[i].InputName, "la salida no se pudo canonicalizar: la huella es del texto sin C14N")
		}
	}

	active := engine.Rules()
	res.RuleMatches = make([]entity.RuleMatchCount, len(active))
	for j, r := range active {
		res.RuleMatches[j] = entity.RuleMatchCount{RuleID: r.ID, Description: r.Description}
	}
	for i, counts := range perFile {
		for j, n := range counts {
			if n == 0 {
				continue
			}
			res.RuleMatches[j].Matches += n
			p.obs.OnRuleApplied(res.Invoices[i].InputName, dian.RuleCorrection,
				fmt.Sprintf("%q → %q (%d)", active[j].SearchText, active[j].ReplaceText, n))
		}
	}
	return nil
}

func wrapCanceled(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("processing: %w: %w", domain.ErrCanceled, err)
	}
	return err
}
