package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jhoicas/Contenedor-api/internal/application/processing"
	"github.com/jhoicas/Contenedor-api/internal/domain/dian"
	infradian "github.com/jhoicas/Contenedor-api/internal/infrastructure/dian"
)

// ZipSink acumula las salidas y las escribe como un único ZIP al cerrar.
// Si no se llama Close (cancelación, error) el archivo no se crea.
// Con path vacío sólo sirve en memoria (Bytes).
type ZipSink struct {
	path    string
	mu      sync.Mutex
	entries []infradian.ZipEntry
	now     func() time.Time
}

// NewZipSink destino ZIP en path.
func NewZipSink(path string) *ZipSink {
	return &ZipSink{path: path, now: time.Now}
}

func (s *ZipSink) Write(ctx context.Context, filename string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, infradian.ZipEntry{
		Name:     dian.SafeFilename(filename),
		Content:  append([]byte(nil), content...),
		Modified: s.now(),
	})
	return nil
}

// Bytes arma el ZIP con lo escrito hasta ahora.
func (s *ZipSink) Bytes() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := infradian.CompressToZip(s.entries)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return data, nil
}

// Close escribe el ZIP de forma atómica.
func (s *ZipSink) Close() error {
	if s.path == "" {
		return fmt.Errorf("storage: ZipSink sin ruta de destino")
	}
	data, err := s.Bytes()
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: crear directorio: %w", err)
	}
	return writeAtomic(dir, s.path, data)
}

var _ processing.OutputSink = (*ZipSink)(nil)
