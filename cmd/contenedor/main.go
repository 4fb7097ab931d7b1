// Comando contenedor: corrector de facturas DIAN en contingencia por línea de comandos.
//
//	contenedor process --records planilla.xlsx --xml ./xml --out ./salida
//	contenedor rules list | add | remove | import
//	contenedor version
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
