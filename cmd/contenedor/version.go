package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Se fijan al compilar:
//
//	go build -ldflags "-X main.Version=1.2.0 -X main.BuildDate=2024-05-01" ./cmd/contenedor
var (
	Version   = "dev"
	BuildDate = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión",
		// El comando no necesita configuración.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "contenedor")
			fmt.Fprintf(out, "Versión:    %s\n", Version)
			fmt.Fprintf(out, "Compilado:  %s\n", BuildDate)
			fmt.Fprintf(out, "Go:         %s\n", runtime.Version())
		},
	}
}
