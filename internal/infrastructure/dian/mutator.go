package dian

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	domaindian "github.com/jhoicas/Contenedor-api/internal/domain/dian"
	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
	"github.com/jhoicas/Contenedor-api/internal/infrastructure/xmldoc"
	"github.com/jhoicas/Contenedor-api/pkg/dian"
)

// Mutator aplica las reglas estructurales a una factura cruzada con su registro:
// contingencia, fechas del periodo y plan de beneficios. Las tres son
// idempotentes; si falta un ancla la regla se omite y se notifica.
// Es seguro para uso concurrente: no guarda estado por documento.
type Mutator struct {
	opts MutatorOptions
	obs  domaindian.Observer
}

// NewMutator crea el mutador. Un marcador vacío toma el de por defecto.
func NewMutator(opts MutatorOptions, obs domaindian.Observer) *Mutator {
	if strings.TrimSpace(opts.ContingencyMarker) == "" {
		opts.ContingencyMarker = dian.ContingencyMarkerDefault
	}
	if opts.UnknownLineType == "" {
		opts.UnknownLineType = LineTypeApply
	}
	if obs == nil {
		obs = domaindian.NopObserver{}
	}
	return &Mutator{opts: opts, obs: obs}
}

// Mutate devuelve un clon de src con las reglas aplicadas; src no se modifica.
func (m *Mutator) Mutate(input string, src *xmldoc.Document, r entity.InvoiceRecord) *xmldoc.Document {
	doc := src.Clone()
	m.applyContingency(input, doc)
	m.applyPeriodDates(input, doc, r)
	m.applyPlanCode(input, doc, r)
	return doc
}

// ──────────────────────────────────────────────────────────────────────────────
// Contingencia
// ──────────────────────────────────────────────────────────────────────────────

func (m *Mutator) applyContingency(input string, doc *xmldoc.Document) {
	cust := doc.First(nil, dian.ElemCustomizationID)
	if cust == nil {
		m.obs.OnWarning(input, "sin CustomizationID: se omite la regla de contingencia")
		return
	}
	current := strings.TrimSpace(xmldoc.Text(cust))
	if !strings.EqualFold(current, m.opts.ContingencyMarker) && current != dian.ContingencyCode {
		return
	}
	if current != m.opts.ContingencyMarker {
		xmldoc.SetText(cust, m.opts.ContingencyMarker)
		m.obs.OnRuleApplied(input, domaindian.RuleContingency,
			fmt.Sprintf("CustomizationID %q → %q", current, m.opts.ContingencyMarker))
	}

	if hasContingencyReference(doc) {
		return
	}
	profile := doc.First(nil, dian.ElemProfileID)
	if profile == nil {
		m.obs.OnWarning(input, "sin ProfileID: no se inserta la referencia de contingencia")
		return
	}
	parent := profile.Parent()
	ref := doc.CreateElement(parent, dian.NsCac, "cac:AdditionalDocumentReference")
	id := doc.CreateElement(parent, dian.NsCbc, "cbc:ID")
	xmldoc.SetText(id, dian.ContingencyCode)
	ref.AddChild(id)
	doc.InsertBefore(parent, ref, profile)
	m.obs.OnRuleApplied(input, domaindian.RuleContingency, "AdditionalDocumentReference/ID=11 insertado antes de ProfileID")
}

// hasContingencyReference busca en todas las referencias, no sólo la que
// precede a ProfileID: reaplicar la regla nunca debe crear un segundo bloque.
func hasContingencyReference(doc *xmldoc.Document) bool {
	for _, ref := range doc.FindAll(nil, dian.ElemAdditionalDocumentReference) {
		id := xmldoc.ChildByName(ref, dian.ElemID)
		if strings.TrimSpace(xmldoc.Text(id)) == dian.ContingencyCode {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────────────────────────────────────
// Fechas del periodo de facturación
// ──────────────────────────────────────────────────────────────────────────────

func (m *Mutator) applyPeriodDates(input string, doc *xmldoc.Document, r entity.InvoiceRecord) {
	var start, end string
	switch domaindian.ClassifyLineType(r.LineType) {
	case domaindian.LineTypeServicio:
		start, end = r.PeriodStart, r.PeriodEnd
	case domaindian.LineTypeTiquete:
		start, end = healthSectorDates(doc)
		if start == "" || end == "" {
			m.obs.OnWarning(input, "tiquete sin fechas de inicio y fin en AdditionalInformation: fechas sin cambios")
			return
		}
	default:
		if strings.TrimSpace(r.PeriodStart) == "" && strings.TrimSpace(r.PeriodEnd) == "" {
			return
		}
		if m.opts.UnknownLineType == LineTypeSkip {
			m.obs.OnWarning(input, fmt.Sprintf("tipo de ítem %q no reconocido: fechas sin cambios", r.LineType))
			return
		}
		m.obs.OnWarning(input, fmt.Sprintf("tipo de ítem %q no reconocido: se aplican las fechas del registro", r.LineType))
		start, end = r.PeriodStart, r.PeriodEnd
	}
	start, end = domaindian.NormalizeDate(start), domaindian.NormalizeDate(end)

	if period := doc.First(nil, dian.ElemInvoicePeriod); period == nil {
		m.obs.OnWarning(input, "sin InvoicePeriod: no se escriben las fechas del periodo")
	} else {
		m.setDate(input, period, dian.ElemStartDate, start)
		m.setDate(input, period, dian.ElemEndDate, end)
	}
	if m.opts.SyncHealthDates {
		m.syncHealthDates(input, doc, start, end)
	}
}

func (m *Mutator) setDate(input string, period *etree.Element, name, value string) {
	if strings.TrimSpace(value) == "" {
		m.obs.OnWarning(input, fmt.Sprintf("%s vacío en el registro: no se escribe", name))
		return
	}
	el := xmldoc.ChildByName(period, name)
	if el == nil {
		m.obs.OnWarning(input, fmt.Sprintf("InvoicePeriod sin %s", name))
		return
	}
	if xmldoc.Text(el) == value {
		return
	}
	xmldoc.SetText(el, value)
	m.obs.OnRuleApplied(input, domaindian.RulePeriodDates, name+"="+value)
}

type healthPair struct {
	name  string
	value *etree.Element
}

func healthSectorPairs(doc *xmldoc.Document) []healthPair {
	var out []healthPair
	for _, info := range doc.FindAll(nil, dian.ElemAdditionalInformation) {
		name := doc.First(info, dian.ElemName)
		value := doc.First(info, dian.ElemValue)
		if name == nil || value == nil {
			continue
		}
		out = append(out, healthPair{name: strings.TrimSpace(xmldoc.Text(name)), value: value})
	}
	return out
}

func isStartLabel(name string) bool { return containsAny(name, dian.PeriodStartLabels) }
func isEndLabel(name string) bool   { return containsAny(name, dian.PeriodEndLabels) }

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// healthSectorDates lee las fechas del periodo desde los pares Name/Value del
// sector salud. Un valor vacío no pisa uno ya encontrado.
func healthSectorDates(doc *xmldoc.Document) (start, end string) {
	for _, p := range healthSectorPairs(doc) {
		v := strings.TrimSpace(xmldoc.Text(p.value))
		if v == "" {
			continue
		}
		switch {
		case isStartLabel(p.name):
			start = v
		case isEndLabel(p.name):
			end = v
		}
	}
	return start, end
}

func (m *Mutator) syncHealthDates(input string, doc *xmldoc.Document, start, end string) {
	for _, p := range healthSectorPairs(doc) {
		var want string
		switch {
		case isStartLabel(p.name):
			want = start
		case isEndLabel(p.name):
			want = end
		default:
			continue
		}
		if strings.TrimSpace(want) == "" || xmldoc.Text(p.value) == want {
			continue
		}
		xmldoc.SetText(p.value, want)
		m.obs.OnRuleApplied(input, domaindian.RuleHealthDates, p.name+"="+want)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Plan de beneficios
// ──────────────────────────────────────────────────────────────────────────────

func (m *Mutator) applyPlanCode(input string, doc *xmldoc.Document, r entity.InvoiceRecord) {
	plan := domaindian.PadPlanCode(r.PlanCode)
	if plan == "" {
		return
	}
	found := false
	for _, p := range healthSectorPairs(doc) {
		if !strings.Contains(p.name, dian.PlanBenefitsMarker) {
			continue
		}
		found = true
		if current, ok := xmldoc.Attr(p.value, dian.AttrSchemeID); ok && current == plan {
			continue
		}
		xmldoc.SetAttr(p.value, dian.AttrSchemeID, plan)
		m.obs.OnRuleApplied(input, domaindian.RulePlanCode, "schemeID="+plan)
	}
	if !found {
		m.obs.OnWarning(input, "sin AdditionalInformation "+dian.PlanBenefitsMarker+": plan de beneficios sin cambios")
	}
}
