package storage

import (
	"context"
	"sync"

	"github.com/jhoicas/Contenedor-api/internal/application/processing"
)

// MemorySink guarda las salidas en memoria (tests, respuestas HTTP).
type MemorySink struct {
	mu    sync.Mutex
	files map[string][]byte
	order []string
	// FailOn nombres cuyo Write falla; sirve para probar el manejo de errores.
	FailOn map[string]error
}

// NewMemorySink crea un destino vacío.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

func (s *MemorySink) Write(ctx context.Context, filename string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.FailOn[filename]; ok {
		return err
	}
	if _, exists := s.files[filename]; !exists {
		s.order = append(s.order, filename)
	}
	s.files[filename] = append([]byte(nil), content...)
	return nil
}

// Get contenido escrito para filename.
func (s *MemorySink) Get(filename string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[filename]
	return b, ok
}

// Names nombres en orden de escritura.
func (s *MemorySink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

var _ processing.OutputSink = (*MemorySink)(nil)
