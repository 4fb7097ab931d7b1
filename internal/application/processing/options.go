package processing

import (
	infradian "github.com/jhoicas/Contenedor-api/internal/infrastructure/dian"
)

// Options parámetros de una corrida del procesador.
type Options struct {
	Mutator infradian.MutatorOptions
	// Strict hace fatal para el lote un XML mal formado. Por defecto el
	// documento se aparta (lista Malformed) y el lote continúa.
	Strict bool
	// Workers documentos procesados en paralelo (<= 1: secuencial).
	Workers int
}

// DefaultOptions valores por defecto.
func DefaultOptions() Options {
	return Options{
		Mutator: infradian.DefaultMutatorOptions(),
		Workers: 1,
	}
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}
