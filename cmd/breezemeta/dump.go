package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var (
		src    sourceFlags
		indent int
	)

	cmd := &cobra.Command{
		Use:   "dump [context]",
		Short: "Print a metadata document as JSON",
		Long: `Print the metadata document of a built-in context (northwind when omitted)
or, with --file, of a model file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := src.service()
			if err != nil {
				return err
			}

			name := "northwind"
			switch {
			case src.file != "":
				name = "file"
			case len(args) == 1:
				name = args[0]
			}

			doc, err := svc.Build(cmd.Context(), name)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if indent > 0 {
				enc.SetIndent("", strings.Repeat(" ", indent))
			}
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("failed to write document: %w", err)
			}
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().IntVar(&indent, "indent", 2, "spaces of indentation, 0 for compact output")
	return cmd
}
