package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/localnerve/jam-build-breezemeta/internal/config"
	"github.com/localnerve/jam-build-breezemeta/internal/metadata"
	"github.com/localnerve/jam-build-breezemeta/internal/modelfile"
	"github.com/localnerve/jam-build-breezemeta/internal/services"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// sourceFlags select the model and the build settings shared by dump and check.
type sourceFlags struct {
	file            string
	constraints     string
	metadataVersion string
	naming          string
	verbose         bool
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "YAML or JSON model file instead of the built-in contexts")
	cmd.Flags().StringVarP(&f.constraints, "constraints", "c", "", "YAML constraint table")
	cmd.Flags().StringVar(&f.metadataVersion, "metadata-version", metadata.DefaultMetadataVersion, "metadataVersion stamped on the document")
	cmd.Flags().StringVar(&f.naming, "naming", metadata.DefaultNamingConvention, "namingConvention stamped on the document")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log unmapped property types")
}

// service registers either the model file, as context "file", or the
// built-in contexts.
func (f *sourceFlags) service() (*services.MetadataService, error) {
	constraints, err := config.LoadConstraints(f.constraints)
	if err != nil {
		return nil, err
	}

	log := zap.NewNop()
	if f.verbose {
		if log, err = zap.NewDevelopment(); err != nil {
			return nil, err
		}
	}

	svc, err := services.NewMetadataService(nil, services.MetadataOptions{
		Version:          f.metadataVersion,
		NamingConvention: f.naming,
		Constraints:      constraints,
		Logger:           log,
	})
	if err != nil {
		return nil, err
	}

	if f.file == "" {
		return svc, svc.RegisterDefaults()
	}
	m, err := modelfile.Load(f.file)
	if err != nil {
		return nil, err
	}
	return svc, svc.Register("file", services.StaticContext(m))
}

func newRootCmd() *cobra.Command {
	var noColor bool

	rootCmd := &cobra.Command{
		Use:   "breezemeta",
		Short: "Breeze client metadata for gorm models",
		Long: `breezemeta builds the Breeze metadata document that the metadata server
serves, for the built-in model contexts or for a declarative model file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newCheckCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, fmt.Sprintf("Error: %v", err))
		os.Exit(1)
	}
}
