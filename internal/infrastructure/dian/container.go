package dian

import (
	"strings"

	"github.com/beevik/etree"

	domaindian "github.com/jhoicas/Contenedor-api/internal/domain/dian"
	"github.com/jhoicas/Contenedor-api/internal/infrastructure/xmldoc"
	"github.com/jhoicas/Contenedor-api/pkg/dian"
)

// Envelope resultado de desenvolver un documento de entrada: la factura que se
// cruza y se corrige, y lo necesario para volver a envolverla.
type Envelope struct {
	source    *xmldoc.Document // documento tal como se leyó; nunca se modifica
	invoice   *xmldoc.Document
	key       string
	container bool
	embedded  bool // la factura salió del Description del contenedor
	cdata     bool
}

// Unwrap clasifica el documento. Una factura plana se cruza y se corrige tal cual.
// Un AttachedDocument se desenvuelve por Attachment → ExternalReference → Description
// (primer hijo directo en cada nivel) y la llave sale de la factura embebida.
// Si la cadena no existe o el contenido no es XML válido, la llave es el ID del
// propio contenedor y el contenedor es el árbol a corregir.
func Unwrap(input string, doc *xmldoc.Document, obs domaindian.Observer) *Envelope {
	env := &Envelope{source: doc, invoice: doc}
	if doc.RootName() != dian.ElemAttachedDocument {
		env.key = matchKey(doc)
		return env
	}
	env.container = true

	desc := description(doc)
	if desc == nil {
		obs.OnWarning(input, "AttachedDocument sin Attachment/ExternalReference/Description: se usa el ID del contenedor")
		env.key = containerID(doc)
		return env
	}
	text := strings.TrimSpace(xmldoc.Text(desc))
	if text == "" {
		obs.OnWarning(input, "AttachedDocument con Description vacío: se usa el ID del contenedor")
		env.key = containerID(doc)
		return env
	}
	inner, err := xmldoc.ParseDecoded(text)
	if err != nil {
		obs.OnWarning(input, "la factura embebida no es XML válido: se usa el ID del contenedor")
		env.key = containerID(doc)
		return env
	}
	env.invoice = inner
	env.embedded = true
	env.cdata = xmldoc.IsCData(desc) || looksLikeXML(text)
	env.key = matchKey(inner)
	return env
}

// Key llave de cruce contra la planilla (puede ser vacía).
func (e *Envelope) Key() string { return e.key }

// IsContainer indica si la entrada era un AttachedDocument.
func (e *Envelope) IsContainer() bool { return e.container }

// Invoice árbol cruzable. El mutador trabaja sobre un clon.
func (e *Envelope) Invoice() *xmldoc.Document { return e.invoice }

// Rewrap serializa la salida final. Para contenedores escribe la factura
// corregida en el mismo Description de una copia del contenedor, como CDATA si
// así venía (o si el texto plano era XML), y serializa el contenedor.
func (e *Envelope) Rewrap(mutated *xmldoc.Document) (string, error) {
	if !e.embedded {
		return mutated.Serialize()
	}
	inner, err := mutated.Serialize()
	if err != nil {
		return "", err
	}
	outer := e.source.Clone()
	desc := description(outer)
	if e.cdata {
		xmldoc.SetCData(desc, inner)
	} else {
		xmldoc.SetText(desc, inner)
	}
	return outer.Serialize()
}

func description(doc *xmldoc.Document) *etree.Element {
	att := xmldoc.ChildByName(doc.Root(), dian.ElemAttachment)
	ref := xmldoc.ChildByName(att, dian.ElemExternalReference)
	return xmldoc.ChildByName(ref, dian.ElemDescription)
}

func looksLikeXML(s string) bool {
	return strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">")
}

// matchKey ID hijo directo de la raíz; si no hay, el primer ID del documento;
// si tampoco, el NIT del emisor para que el índice resuelva por NIT.
func matchKey(doc *xmldoc.Document) string {
	if id := strings.TrimSpace(xmldoc.Text(xmldoc.ChildByName(doc.Root(), dian.ElemID))); id != "" {
		return id
	}
	if id := strings.TrimSpace(xmldoc.Text(doc.First(nil, dian.ElemID))); id != "" {
		return id
	}
	if supplier := doc.First(nil, dian.ElemAccountingSupplierParty); supplier != nil {
		return strings.TrimSpace(xmldoc.Text(doc.First(supplier, dian.ElemCompanyID)))
	}
	return ""
}

func containerID(doc *xmldoc.Document) string {
	return strings.TrimSpace(xmldoc.Text(xmldoc.ChildByName(doc.Root(), dian.ElemID)))
}
