package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OliverFendt/oss-review-toolkit/cmd/ingest"
	"github.com/OliverFendt/oss-review-toolkit/cmd/version"
	sharederrors "github.com/OliverFendt/oss-review-toolkit/pkg/shared/errors"
	"github.com/OliverFendt/oss-review-toolkit/pkg/shared/config"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "ort [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Ort ingests raw ScanCode toolkit results into normalized scan summaries.",
		Long: `Ort consumes the raw JSON output of the ScanCode license and copyright scanner,
	associates copyright statements with license findings, compacts scanner errors,
	and reports whether a failed tool process still constitutes a successful scan.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.AddCommand(ingest.IngestCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)

		var commandError *sharederrors.CommandError
		if errors.As(err, &commandError) {
			return commandError.ExitCode
		}
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ingest.Init(AppConfig)
	version.Init(AppConfig)
}
