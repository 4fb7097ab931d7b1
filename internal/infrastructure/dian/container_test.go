package dian_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contenedor-api/internal/domain/dian"
	infradian "github.com/jhoicas/Contenedor-api/internal/infrastructure/dian"
	"github.com/jhoicas/Contenedor-api/internal/infrastructure/xmldoc"
)

func TestUnwrap_FacturaPlana(t *testing.T) {
	env := infradian.Unwrap("a.xml", parse(t, invoiceXML("11", "FE100", "", "")), dian.NopObserver{})

	assert.False(t, env.IsContainer())
	assert.Equal(t, "FE100", env.Key())
	assert.Equal(t, "Invoice", env.Invoice().RootName())
}

// Sin ID la llave es el NIT del emisor, para el respaldo por NIT del índice.
func TestUnwrap_SinIDUsaNITDelEmisor(t *testing.T) {
	src := strings.Replace(invoiceXML("11", "X", "", ""), "<cbc:ID>X</cbc:ID>", "", 1)
	env := infradian.Unwrap("a.xml", parse(t, src), dian.NopObserver{})
	assert.Equal(t, "900123456", env.Key())
}

func TestUnwrap_ContenedorCDATA_IdaYVuelta(t *testing.T) {
	src := parse(t, containerXML(invoiceXML("11", "FE100", "", ""), true))
	env := infradian.Unwrap("ad.xml", src, dian.NopObserver{})

	require.True(t, env.IsContainer())
	assert.Equal(t, "FE100", env.Key(), "la llave sale de la factura embebida")

	mutated := infradian.NewMutator(infradian.DefaultMutatorOptions(), nil).Mutate("ad.xml", env.Invoice(), fe100Record())
	out, err := env.Rewrap(mutated)
	require.NoError(t, err)

	assert.Contains(t, out, "<![CDATA[")
	assert.Contains(t, out, "<cbc:ID>AD-77</cbc:ID>", "el contenedor se conserva")

	// la factura embebida en la salida lleva las correcciones
	outer := parse(t, out)
	desc := outer.First(nil, "Description")
	require.NotNil(t, desc)
	assert.True(t, xmldoc.IsCData(desc))
	inner := parse(t, strings.TrimSpace(xmldoc.Text(desc)))
	assert.Equal(t, "SS-CUFE", xmldoc.Text(inner.First(nil, "CustomizationID")))
	assert.Equal(t, "2024-03-01", xmldoc.Text(inner.First(nil, "StartDate")))

	// el contenedor leído no cambia
	orig, err := src.Serialize()
	require.NoError(t, err)
	assert.Contains(t, orig, "<cbc:CustomizationID>11</cbc:CustomizationID>")
}

// El Description ya es texto UTF-8: una declaración ISO-8859-1 en la factura
// embebida no debe provocar una segunda decodificación.
func TestUnwrap_FacturaEmbebidaLatin1ConservaAcentos(t *testing.T) {
	inner := strings.Replace(invoiceXML("11", "FE100", "", ""), `encoding="UTF-8"`, `encoding="ISO-8859-1"`, 1)
	inner = strings.Replace(inner, "<cbc:ID>FE100</cbc:ID>", "<cbc:Note>Compañía Niño</cbc:Note>\n  <cbc:ID>FE100</cbc:ID>", 1)
	src := parse(t, containerXML(inner, true))

	env := infradian.Unwrap("ad.xml", src, dian.NopObserver{})
	require.Equal(t, "FE100", env.Key())
	assert.Equal(t, "Compañía Niño", xmldoc.Text(env.Invoice().First(nil, "Note")))

	mutated := infradian.NewMutator(infradian.DefaultMutatorOptions(), nil).Mutate("ad.xml", env.Invoice(), fe100Record())
	out, err := env.Rewrap(mutated)
	require.NoError(t, err)
	assert.Contains(t, out, "Compañía Niño")
	assert.Contains(t, out, "Factura Electrónica de Venta")

	desc := parse(t, out).First(nil, "Description")
	require.NotNil(t, desc)
	embedded := strings.TrimSpace(xmldoc.Text(desc))
	assert.NotContains(t, embedded, "ISO-8859-1", "la declaración embebida queda en utf-8")
	again := parse(t, embedded)
	assert.Equal(t, "Compañía Niño", xmldoc.Text(again.First(nil, "Note")))
}

// Texto plano con forma de XML se vuelve a envolver como CDATA.
func TestUnwrap_TextoPlanoXMLSeEnvuelveEnCDATA(t *testing.T) {
	src := parse(t, containerXML(invoiceXML("11", "FE100", "", ""), false))
	env := infradian.Unwrap("ad.xml", src, dian.NopObserver{})
	require.Equal(t, "FE100", env.Key())

	out, err := env.Rewrap(env.Invoice().Clone())
	require.NoError(t, err)
	assert.Contains(t, out, "<![CDATA[")
	assert.NotContains(t, out, "&lt;Invoice")
}

func TestUnwrap_ContenedorSinCadenaUsaIDPropio(t *testing.T) {
	rec := &recorder{}
	src := parse(t, `<AttachedDocument><ID>AD-1</ID><Attachment><Other/></Attachment></AttachedDocument>`)
	env := infradian.Unwrap("ad.xml", src, rec)

	assert.True(t, env.IsContainer())
	assert.Equal(t, "AD-1", env.Key())
	assert.Equal(t, "AttachedDocument", env.Invoice().RootName())
	assert.NotEmpty(t, rec.warnings)

	out, err := env.Rewrap(env.Invoice())
	require.NoError(t, err)
	assert.Contains(t, out, "<ID>AD-1</ID>")
}

func TestUnwrap_FacturaEmbebidaInvalidaNoFalla(t *testing.T) {
	rec := &recorder{}
	src := parse(t, `<AttachedDocument><ID>AD-2</ID><Attachment><ExternalReference><Description>texto libre</Description></ExternalReference></Attachment></AttachedDocument>`)
	env := infradian.Unwrap("ad.xml", src, rec)

	assert.Equal(t, "AD-2", env.Key())
	assert.True(t, rec.warned("no es XML"))
}
