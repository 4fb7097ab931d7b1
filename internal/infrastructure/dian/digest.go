package dian

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"

	"github.com/ucarion/c14n"
)

// Digest SHA-256 (hex) de la forma canónica C14N del XML de salida. Dos salidas
// que sólo difieren en formato tienen la misma huella. Si la canonicalización
// falla la huella es la del texto tal cual y canonical es false.
func Digest(content string) (digest string, canonical bool) {
	data := []byte(content)
	c, err := canonicalize(data)
	if err == nil {
		data, canonical = c, true
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), canonical
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
