package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Contenedor-api/internal/application/dto"
	"github.com/jhoicas/Contenedor-api/internal/application/rules"
)

func newRulesCmd(env *cliEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Administra las reglas de corrección guardadas",
	}
	cmd.AddCommand(
		newRulesListCmd(env),
		newRulesAddCmd(env),
		newRulesRemoveCmd(env),
		newRulesImportCmd(env),
	)
	return cmd
}

func newRulesListCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lista las reglas en orden de aplicación",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withRules(func(uc *rules.RuleUseCase) error {
				list, err := uc.List(cmd.Context())
				if err != nil {
					return err
				}
				printRules(cmd, list)
				return nil
			})
		},
	}
}

func newRulesAddCmd(env *cliEnv) *cobra.Command {
	var (
		in       dto.CreateRuleRequest
		disabled bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Agrega una regla al final",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enabled := !disabled
			in.Enabled = &enabled
			return env.withRules(func(uc *rules.RuleUseCase) error {
				out, err := uc.Create(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.SearchText, "search", "", "texto a buscar (literal)")
	cmd.Flags().StringVar(&in.ReplaceText, "replace", "", "texto de reemplazo")
	cmd.Flags().StringVar(&in.Description, "description", "", "descripción")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "guardar la regla inactiva")
	_ = cmd.MarkFlagRequired("search")
	_ = cmd.MarkFlagRequired("replace")
	return cmd
}

func newRulesRemoveCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Elimina una regla",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.withRules(func(uc *rules.RuleUseCase) error {
				return uc.Delete(cmd.Context(), args[0])
			})
		},
	}
}

func newRulesImportCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "import <archivo.yaml>",
		Short: "Agrega las reglas de un archivo YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()
			return env.withRules(func(uc *rules.RuleUseCase) error {
				out, err := uc.Import(cmd.Context(), file)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d reglas importadas\n", len(out))
				return nil
			})
		},
	}
}

func printRules(cmd *cobra.Command, list []dto.RuleResponse) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tID\tACTIVA\tBUSCAR\tREEMPLAZAR\tDESCRIPCIÓN")
	for _, r := range list {
		fmt.Fprintf(tw, "%d\t%s\t%t\t%q\t%q\t%s\n", r.Position, r.ID, r.Enabled, r.SearchText, r.ReplaceText, r.Description)
	}
	tw.Flush()
}
