package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/localnerve/jam-build-breezemeta/internal/metadata"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "breezemeta version: %s\n", Version)
			fmt.Fprintf(out, "Git commit: %s\n", GitCommit)
			fmt.Fprintf(out, "Build date: %s\n", BuildDate)
			fmt.Fprintf(out, "Metadata version: %s\n", metadata.DefaultMetadataVersion)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
		},
	}
}
