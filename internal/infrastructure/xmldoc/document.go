// Package xmldoc modela un documento XML sobre beevik/etree con búsquedas por
// nombre local. Los XML de los distintos proveedores tecnológicos no usan los
// mismos prefijos para los mismos namespaces (cbc:ID, ID, ns2:ID), así que
// nada aquí compara nombres calificados.
package xmldoc

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/jhoicas/Contenedor-api/internal/domain"
)

// Document árbol XML mutable con índice auxiliar por nombre local.
// No es seguro para uso concurrente; cada goroutine trabaja sobre su propio clon.
type Document struct {
	doc   *etree.Document
	index map[string][]*etree.Element // nombre local → elementos en orden de documento
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse lee un documento. Respeta las secciones CDATA (para poder reconstruirlas)
// y decodifica ISO-8859-1 / Windows-1252 a UTF-8.
func Parse(data []byte) (*Document, error) {
	data, err := toUTF8(bytes.TrimPrefix(data, utf8BOM))
	if err != nil {
		return nil, fmt.Errorf("xmldoc: %w: %v", domain.ErrMalformedDocument, err)
	}
	return read(data)
}

// ParseString igual que Parse sobre un string.
func ParseString(s string) (*Document, error) {
	return Parse([]byte(s))
}

// ParseDecoded parsea texto que ya es UTF-8, como el XML embebido en el
// Description de un contenedor. La declaración se reetiqueta como utf-8 sin
// volver a decodificar el contenido.
func ParseDecoded(s string) (*Document, error) {
	return read(relabelUTF8(bytes.TrimPrefix([]byte(s), utf8BOM)))
}

func read(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charsetReader,
		PreserveCData: true,
	}
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("xmldoc: parsear: %w: %v", domain.ErrMalformedDocument, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("xmldoc: documento sin elemento raíz: %w", domain.ErrMalformedDocument)
	}
	d := &Document{doc: doc}
	d.buildIndex()
	return d, nil
}

// Root elemento raíz.
func (d *Document) Root() *etree.Element { return d.doc.Root() }

// RootName nombre local del elemento raíz.
func (d *Document) RootName() string { return LocalName(d.doc.Root()) }

// LocalName nombre sin prefijo. etree separa el prefijo en Space.
func LocalName(e *etree.Element) string {
	if e == nil {
		return ""
	}
	return e.Tag
}

func (d *Document) buildIndex() {
	d.index = make(map[string][]*etree.Element)
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		d.index[e.Tag] = append(d.index[e.Tag], e)
		for _, c := range e.ChildElements() {
			walk(c)
		}
	}
	walk(d.doc.Root())
}

func (d *Document) invalidate() { d.index = nil }

// FindAll descendientes de node con ese nombre local, en orden de documento.
// node no se incluye. Con node nil busca en todo el documento (raíz incluida).
func (d *Document) FindAll(node *etree.Element, name string) []*etree.Element {
	if d.index == nil {
		d.buildIndex()
	}
	candidates := d.index[name]
	if node == nil {
		return append([]*etree.Element(nil), candidates...)
	}
	var out []*etree.Element
	for _, e := range candidates {
		if isDescendant(e, node) {
			out = append(out, e)
		}
	}
	return out
}

// First primer descendiente con ese nombre local, o nil.
func (d *Document) First(node *etree.Element, name string) *etree.Element {
	if all := d.FindAll(node, name); len(all) > 0 {
		return all[0]
	}
	return nil
}

// ChildByName primer hijo directo de parent con ese nombre local, o nil.
func ChildByName(parent *etree.Element, name string) *etree.Element {
	if parent == nil {
		return nil
	}
	for _, c := range parent.ChildElements() {
		if c.Tag == name {
			return c
		}
	}
	return nil
}

func isDescendant(e, ancestor *etree.Element) bool {
	for p := e.Parent(); p != nil; p = p.Parent() {
		if p == ancestor {
			return true
		}
	}
	return false
}

// Text contenido de texto del elemento (texto plano y CDATA consecutivos).
func Text(e *etree.Element) string {
	if e == nil {
		return ""
	}
	return e.Text()
}

// SetText reemplaza el contenido de texto (descarta CDATA previo).
func SetText(e *etree.Element, value string) {
	e.SetText(value)
}

// IsCData indica si alguno de los nodos de texto de e es una sección CDATA.
func IsCData(e *etree.Element) bool {
	for _, t := range e.Child {
		if cd, ok := t.(*etree.CharData); ok && cd.IsCData() {
			return true
		}
	}
	return false
}

// SetCData reemplaza el contenido de texto por secciones CDATA. Si el texto
// contiene "]]>" se parte en varias secciones para que el XML siga siendo válido.
func SetCData(e *etree.Element, value string) {
	removeLeadingCharData(e)
	parts := strings.Split(value, "]]>")
	for i, p := range parts {
		if i > 0 {
			p = ">" + p
		}
		if i < len(parts)-1 {
			p += "]]"
		}
		e.InsertChildAt(i, etree.NewCData(p))
	}
}

func removeLeadingCharData(e *etree.Element) {
	var leading []etree.Token
	for _, t := range e.Child {
		switch t.(type) {
		case *etree.CharData, *etree.Comment:
			leading = append(leading, t)
			continue
		}
		break
	}
	for _, t := range leading {
		if _, ok := t.(*etree.CharData); ok {
			e.RemoveChild(t)
		}
	}
}

// Attr valor de un atributo sin prefijo.
func Attr(e *etree.Element, name string) (string, bool) {
	a := e.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// SetAttr crea o reemplaza un atributo.
func SetAttr(e *etree.Element, name, value string) {
	e.CreateAttr(name, value)
}

// CreateElement crea un elemento suelto para el namespace indicado. Si en el
// alcance de scope ya hay un prefijo declarado para nsURI se reutiliza; si no,
// se usa el prefijo de qualifiedName y se declara en el propio elemento.
func (d *Document) CreateElement(scope *etree.Element, nsURI, qualifiedName string) *etree.Element {
	prefix, local := splitQName(qualifiedName)
	if p, ok := prefixFor(scope, nsURI); ok {
		return newElement(p, local)
	}
	e := newElement(prefix, local)
	if nsURI != "" {
		if prefix == "" {
			e.CreateAttr("xmlns", nsURI)
		} else {
			e.CreateAttr("xmlns:"+prefix, nsURI)
		}
	}
	return e
}

func newElement(prefix, local string) *etree.Element {
	if prefix == "" {
		return etree.NewElement(local)
	}
	return etree.NewElement(prefix + ":" + local)
}

func splitQName(q string) (prefix, local string) {
	if i := strings.IndexByte(q, ':'); i >= 0 {
		return q[:i], q[i+1:]
	}
	return "", q
}

// prefixFor busca el prefijo ligado a nsURI en scope o sus ancestros; el
// más cercano gana. "" con ok=true es el namespace por defecto.
func prefixFor(scope *etree.Element, nsURI string) (string, bool) {
	if nsURI == "" {
		return "", false
	}
	for e := scope; e != nil; e = e.Parent() {
		for _, a := range e.Attr {
			if a.Value != nsURI {
				continue
			}
			if a.Space == "xmlns" {
				return a.Key, true
			}
			if a.Space == "" && a.Key == "xmlns" {
				return "", true
			}
		}
	}
	return "", false
}

// InsertBefore inserta node como hijo de parent justo antes de ref.
// Si ref es nil o no es hijo de parent, lo agrega al final.
func (d *Document) InsertBefore(parent, node, ref *etree.Element) {
	defer d.invalidate()
	if ref == nil || ref.Parent() != parent {
		parent.AddChild(node)
		return
	}
	parent.InsertChildAt(ref.Index(), node)
}

// AppendChild agrega node al final de parent.
func (d *Document) AppendChild(parent, node *etree.Element) {
	parent.AddChild(node)
	d.invalidate()
}

// Clone copia profunda; el original no se ve afectado por mutaciones del clon.
func (d *Document) Clone() *Document {
	c := &Document{doc: d.doc.Copy()}
	c.buildIndex()
	return c
}

// Serialize texto XML del documento completo.
func (d *Document) Serialize() (string, error) {
	s, err := d.doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("xmldoc: serializar: %w", err)
	}
	return s, nil
}

var declaration = regexp.MustCompile(`^<\?xml\s`)

// HasDeclaration indica si s empieza con una declaración XML.
func HasDeclaration(s string) bool { return declaration.MatchString(s) }

// EnsureDeclaration antepone decl si s no empieza ya con una declaración XML.
func EnsureDeclaration(s, decl string) string {
	if HasDeclaration(s) {
		return s
	}
	return decl + "\n" + s
}
