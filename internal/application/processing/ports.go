package processing

import "context"

// OutputSink destino de los XML generados (directorio, memoria, ZIP).
// Write debe ser atómico por archivo: o queda completo o no queda.
type OutputSink interface {
	Write(ctx context.Context, filename string, content []byte) error
}
