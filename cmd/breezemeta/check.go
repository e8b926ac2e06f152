package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var src sourceFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Build every context and report failures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := src.service()
			if err != nil {
				return err
			}

			ok := color.New(color.FgGreen)
			bad := color.New(color.FgRed, color.Bold)
			out := cmd.OutOrStdout()

			failed := 0
			for _, name := range svc.Contexts() {
				doc, err := svc.Build(cmd.Context(), name)
				if err != nil {
					failed++
					bad.Fprintf(out, "✗ %s: %v\n", name, err)
					continue
				}
				ok.Fprintf(out, "✓ %s: %d structural types, %d enum types\n",
					name, len(doc.StructuralTypes), len(doc.EnumTypes))
			}

			if failed > 0 {
				return fmt.Errorf("%d context(s) failed to build", failed)
			}
			return nil
		},
	}
	src.register(cmd)
	return cmd
}
