package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/Contenedor-api/internal/application/rules"
	"github.com/jhoicas/Contenedor-api/internal/infrastructure/bolt"
	"github.com/jhoicas/Contenedor-api/pkg/config"
	"github.com/jhoicas/Contenedor-api/pkg/logger"
)

// cliEnv estado compartido por los subcomandos: configuración, logger y
// flags globales.
type cliEnv struct {
	cfg       *config.Config
	log       *logger.Logger
	storePath string
	logLevel  string
}

func newRootCmd() *cobra.Command {
	env := &cliEnv{}
	root := &cobra.Command{
		Use:           "contenedor",
		Short:         "Corrector de facturas electrónicas DIAN en contingencia",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			env.cfg = cfg
			if env.storePath == "" {
				env.storePath = cfg.Store.Path
			}
			if env.logLevel == "" {
				env.logLevel = cfg.App.LogLevel
			}
			env.log = logger.New(logger.Config{Level: env.logLevel, Service: "contenedor", Out: cmd.ErrOrStderr()})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&env.storePath, "store", "", "archivo bbolt con las reglas de corrección (default STORE_PATH)")
	root.PersistentFlags().StringVar(&env.logLevel, "log-level", "", "trace, debug, info, warn, error (default LOG_LEVEL)")

	root.AddCommand(newProcessCmd(env), newRulesCmd(env), newVersionCmd())
	return root
}

// withRules abre el almacén local de reglas mientras dura fn.
func (e *cliEnv) withRules(fn func(uc *rules.RuleUseCase) error) error {
	store, err := bolt.Open(e.storePath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(rules.NewRuleUseCase(store))
}
