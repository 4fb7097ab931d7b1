package dian

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"
)

// ZipEntry archivo dentro del ZIP de salida.
type ZipEntry struct {
	Name     string
	Content  []byte
	Modified time.Time
}

// CompressToZip empaqueta los XML corregidos de un lote en un ZIP en memoria,
// en el orden recibido. Los nombres deben venir ya saneados (SafeFilename).
func CompressToZip(entries []ZipEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("zip: entrada duplicada %s", e.Name)
		}
		seen[e.Name] = struct{}{}

		fw, err := zw.CreateHeader(&zip.FileHeader{Name: e.Name, Method: zip.Deflate, Modified: e.Modified})
		if err != nil {
			return nil, fmt.Errorf("zip: crear entrada %s: %w", e.Name, err)
		}
		if _, err := fw.Write(e.Content); err != nil {
			return nil, fmt.Errorf("zip: escribir %s: %w", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: cerrar archivo: %w", err)
	}
	return buf.Bytes(), nil
}
