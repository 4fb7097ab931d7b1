// Package storage implementa los destinos de salida del procesador.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/Contenedor-api/internal/application/processing"
	"github.com/jhoicas/Contenedor-api/internal/domain/dian"
)

// DirSink escribe cada XML en un directorio. Cada archivo se escribe en un
// temporal del mismo directorio y se renombra al final, así un fallo o una
// cancelación no dejan archivos a medias.
type DirSink struct {
	dir string
}

// NewDirSink crea el directorio si no existe.
func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear directorio de salida: %w", err)
	}
	return &DirSink{dir: dir}, nil
}

// Dir directorio de salida.
func (s *DirSink) Dir() string { return s.dir }

// Write escribe filename (saneado) con content.
func (s *DirSink) Write(ctx context.Context, filename string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target := filepath.Join(s.dir, dian.SafeFilename(filename))
	return writeAtomic(s.dir, target, content)
}

func writeAtomic(dir, target string, content []byte) (err error) {
	tmp, err := os.CreateTemp(dir, ".contenedor-*.tmp")
	if err != nil {
		return fmt.Errorf("storage: crear temporal: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("storage: escribir %s: %w", filepath.Base(target), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("storage: cerrar %s: %w", filepath.Base(target), err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("storage: permisos %s: %w", filepath.Base(target), err)
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("storage: renombrar %s: %w", filepath.Base(target), err)
	}
	return nil
}

var _ processing.OutputSink = (*DirSink)(nil)
