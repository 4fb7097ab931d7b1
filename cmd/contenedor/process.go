package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Contenedor-api/internal/application/processing"
	"github.com/jhoicas/Contenedor-api/internal/application/rules"
	"github.com/jhoicas/Contenedor-api/internal/domain/entity"
	"github.com/jhoicas/Contenedor-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/Contenedor-api/internal/infrastructure/storage"
)

type processFlags struct {
	records        string
	xml            []string
	out            string
	rulesFile      string
	useStoredRules bool
	aliases        string
	workers        int
	strict         bool
	zip            string
	abortOnError   bool
}

func newProcessCmd(env *cliEnv) *cobra.Command {
	f := &processFlags{}
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Corrige los XML contra la planilla y escribe los contenedores",
		Long: `Cruza cada XML (o contenedor AttachedDocument) con la planilla de registros,
aplica las correcciones de contingencia, de periodo y de plan, luego las reglas
de corrección, y escribe los archivos con su nombre definitivo.

Los XML sin registro en la planilla se reportan y no consumen consecutivo.`,
		Example: `  contenedor process --records planilla.xlsx --xml ./xml --out ./salida
  contenedor process --records planilla.csv --xml a.xml --xml b.xml --zip lote.zip --rules reglas.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runProcess(ctx, cmd, env, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.records, "records", "", "planilla de registros (.xlsx o .csv)")
	fl.StringSliceVar(&f.xml, "xml", nil, "directorio o archivos XML (repetible)")
	fl.StringVar(&f.out, "out", "", "directorio de salida (default OUTPUT_DIR)")
	fl.StringVar(&f.rulesFile, "rules", "", "reglas de corrección ad hoc (YAML)")
	fl.BoolVar(&f.useStoredRules, "use-stored-rules", false, "agregar las reglas guardadas con 'rules add'")
	fl.StringVar(&f.aliases, "aliases", "", "alias de columnas (YAML, default ALIASES_FILE)")
	fl.IntVar(&f.workers, "workers", 0, "documentos en paralelo (default PROCESSING_WORKERS)")
	fl.BoolVar(&f.strict, "strict", false, "un XML mal formado detiene el lote")
	fl.StringVar(&f.zip, "zip", "", "escribir un único ZIP en vez de un directorio")
	fl.BoolVar(&f.abortOnError, "abort-on-error", true, "detener la escritura en el primer fallo (default OUTPUT_ABORT_ON_ERROR)")
	_ = cmd.MarkFlagRequired("records")
	_ = cmd.MarkFlagRequired("xml")
	return cmd
}

func runProcess(ctx context.Context, cmd *cobra.Command, env *cliEnv, f *processFlags) error {
	opts, err := env.cfg.ProcessingOptions()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		opts.Workers = f.workers
	}
	if cmd.Flags().Changed("strict") {
		opts.Strict = f.strict
	}
	abortOnError := env.cfg.Output.AbortOnError
	if cmd.Flags().Changed("abort-on-error") {
		abortOnError = f.abortOnError
	}
	aliasesFile := env.cfg.Store.AliasesFile
	if f.aliases != "" {
		aliasesFile = f.aliases
	}

	obs := processing.NewLogObserver(env.log)
	aliases, err := spreadsheet.LoadAliases(aliasesFile)
	if err != nil {
		return err
	}
	records, err := readRecords(spreadsheet.NewReader(aliases, obs), f.records)
	if err != nil {
		return err
	}
	inputs, err := collectXML(f.xml)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no se encontraron XML en %s", strings.Join(f.xml, ", "))
	}
	corrections, err := loadRules(ctx, env, f)
	if err != nil {
		return err
	}

	env.log.Info().
		Int("records", len(records)).
		Int("inputs", len(inputs)).
		Int("rules", len(corrections)).
		Msg("procesando lote")

	res, err := processing.NewPipeline(records, opts, obs).Run(ctx, inputs, corrections)
	if err != nil {
		return err
	}

	dest, rep, err := persist(ctx, f, env.cfg.Output.Dir, res.Invoices, abortOnError)
	printSummary(cmd.OutOrStdout(), res, rep, dest)
	return err
}

func readRecords(r *spreadsheet.Reader, path string) ([]entity.InvoiceRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir planilla: %w", err)
	}
	defer file.Close()
	return r.Read(filepath.Base(path), file)
}

// collectXML lee los archivos indicados. Un directorio aporta sus .xml
// (sin recorrer subdirectorios) en orden alfabético.
func collectXML(paths []string) ([]processing.Input, error) {
	var inputs []processing.Input
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		files := []string{p}
		if info.IsDir() {
			entries, err := os.ReadDir(p)
			if err != nil {
				return nil, err
			}
			files = files[:0]
			for _, e := range entries {
				if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".xml") {
					files = append(files, filepath.Join(p, e.Name()))
				}
			}
			sort.Strings(files)
		}
		for _, name := range files {
			data, err := os.ReadFile(name)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, processing.Input{Name: filepath.Base(name), Data: data})
		}
	}
	return inputs, nil
}

// loadRules reglas ad hoc primero, luego las guardadas.
func loadRules(ctx context.Context, env *cliEnv, f *processFlags) ([]entity.CorrectionRule, error) {
	var out []entity.CorrectionRule
	if f.rulesFile != "" {
		file, err := os.Open(f.rulesFile)
		if err != nil {
			return nil, fmt.Errorf("abrir reglas: %w", err)
		}
		adhoc, err := rules.ParseYAML(file, time.Now())
		file.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, adhoc...)
	}
	if f.useStoredRules {
		err := env.withRules(func(uc *rules.RuleUseCase) error {
			stored, err := uc.Stored(ctx)
			out = append(out, stored...)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func persist(ctx context.Context, f *processFlags, defaultDir string, invoices []entity.ProcessedInvoice, abortOnError bool) (string, *processing.PersistReport, error) {
	if f.zip != "" {
		sink := storage.NewZipSink(f.zip)
		rep, err := processing.Persist(ctx, sink, invoices, abortOnError)
		if err != nil {
			return f.zip, rep, err
		}
		return f.zip, rep, sink.Close()
	}
	dir := f.out
	if dir == "" {
		dir = defaultDir
	}
	sink, err := storage.NewDirSink(dir)
	if err != nil {
		return dir, nil, err
	}
	rep, err := processing.Persist(ctx, sink, invoices, abortOnError)
	return dir, rep, err
}

func printSummary(w io.Writer, res *processing.Result, rep *processing.PersistReport, dest string) {
	fmt.Fprintf(w, "Entradas:     %d\n", res.Inputs)
	fmt.Fprintf(w, "Procesadas:   %d\n", len(res.Invoices))
	fmt.Fprintf(w, "Sin registro: %d\n", len(res.Unmatched))
	fmt.Fprintf(w, "Mal formadas: %d\n", len(res.Malformed))
	fmt.Fprintf(w, "Total a pagar: %s\n", res.TotalPayable.StringFixed(2))
	for _, s := range res.Unmatched {
		fmt.Fprintf(w, "  sin registro  %s (%s)\n", s.InputName, s.Key)
	}
	for _, s := range res.Malformed {
		fmt.Fprintf(w, "  mal formado   %s: %s\n", s.InputName, s.Reason)
	}
	for _, m := range res.RuleMatches {
		fmt.Fprintf(w, "  regla %-12s %d reemplazos\n", m.RuleID, m.Matches)
	}
	if rep == nil {
		return
	}
	fmt.Fprintf(w, "Escritos %d archivos en %s\n", len(rep.Written), dest)
	for _, fail := range rep.Failed {
		fmt.Fprintf(w, "  error  %s: %v\n", fail.Filename, fail.Err)
	}
}
