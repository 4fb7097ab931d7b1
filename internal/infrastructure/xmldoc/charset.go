package xmldoc

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Codificaciones de un solo byte que aparecen en XML generados por sistemas
// de facturación antiguos.
var charsets = map[string]encoding.Encoding{
	"iso-8859-1":   charmap.ISO8859_1,
	"iso8859-1":    charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
}

var (
	xmlDecl          = regexp.MustCompile(`^\s*<\?xml\s[^>]*\?>`)
	encodingInDecl   = regexp.MustCompile(`encoding\s*=\s*("[^"]*"|'[^']*')`)
	utf8EncodingDecl = []byte(`encoding="utf-8"`)
)

// toUTF8 decodifica el documento completo antes de parsear y deja la
// declaración en utf-8. Decodificar aquí y no en el decoder de encoding/xml
// mantiene alineados los offsets que etree usa para detectar CDATA.
func toUTF8(data []byte) ([]byte, error) {
	decl := xmlDecl.Find(data)
	if decl == nil {
		return data, nil
	}
	m := encodingInDecl.FindSubmatch(decl)
	if m == nil {
		return data, nil
	}
	label := strings.ToLower(strings.Trim(string(m[1]), `"'`))
	if label == "utf-8" || label == "utf8" || label == "us-ascii" || label == "ascii" {
		return data, nil
	}
	enc, ok := charsets[label]
	if !ok {
		return nil, fmt.Errorf("codificación no soportada: %s", label)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", label, err)
	}
	// la declaración es ASCII: conserva la misma longitud tras decodificar
	newDecl := encodingInDecl.ReplaceAll(decoded[:len(decl)], utf8EncodingDecl)
	return append(newDecl, decoded[len(decl):]...), nil
}

// relabelUTF8 cambia a utf-8 la etiqueta de la declaración sin tocar los bytes
// del documento.
func relabelUTF8(data []byte) []byte {
	decl := xmlDecl.Find(data)
	if decl == nil || !encodingInDecl.Match(decl) {
		return data
	}
	out := encodingInDecl.ReplaceAll(decl, utf8EncodingDecl)
	return append(out, data[len(decl):]...)
}

// charsetReader sólo llega a usarse con etiquetas que toUTF8 dejó pasar.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf8", "us-ascii", "ascii":
		return input, nil
	}
	return nil, fmt.Errorf("xmldoc: codificación no soportada: %s", label)
}
