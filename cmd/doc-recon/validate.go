package main

import (
	"errors"
	"fmt"

	"doc-recon/internal/validation"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newValidateCmd(_ *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <openapi.json|openapi.yaml>",
		Short: "Check an OpenAPI document for structural errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			data, err := readInput(args[0])
			if err != nil {
				return err
			}

			report, err := validation.ValidateDocument(cmd.Context(), data)
			if report != nil {
				fmt.Fprintf(out, "OpenAPI %s  %q  %d paths, %d operations\n",
					report.OpenAPI, report.Title, report.Paths, report.Operations)
			}
			if err != nil {
				if errors.Is(err, validation.ErrInvalidDocument) {
					fmt.Fprintln(out, color.YellowString("%v", err))
					return fmt.Errorf("%s is not a valid OpenAPI document", args[0])
				}
				return err
			}

			fmt.Fprintln(out, color.GreenString("%s is valid", args[0]))
			return nil
		},
	}
}
