package cmd

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/scienceol/molview/cmd/api"
	"github.com/scienceol/molview/cmd/resolve"
	"github.com/scienceol/molview/internal/config"
	"github.com/scienceol/molview/pkg/middleware/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRoot assembles the molview command tree. Subcommands without their own
// pre-run get the service bootstrap: .env, viper env binding, file logging.
func NewRoot(ctx context.Context) *cobra.Command {
	root := &cobra.Command{
		Use:                "molview",
		Short:              "3-D molecular structure resolution",
		Long:               "molview resolves SDF structures from PubChem with a Metabolomics Workbench fallback",
		SilenceUsage:       true,
		PersistentPreRunE:  bootstrap,
		PersistentPostRunE: shutdown,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
	root.SetContext(ctx)
	root.AddCommand(api.NewWeb(), resolve.New())
	return root
}

func bootstrap(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found - using environment variables")
	}

	v := viper.NewWithOptions(viper.ExperimentalBindStruct())
	v.AutomaticEnv()

	conf := config.Global()
	if err := v.Unmarshal(conf); err != nil {
		return err
	}

	logger.Init(&logger.LogConfig{
		Path:     conf.Log.LogPath,
		LogLevel: conf.Log.LogLevel,
		ServiceEnv: logger.ServiceEnv{
			Platform: conf.Server.Platform,
			Service:  conf.Server.Service,
			Env:      conf.Server.Env,
		},
	})
	return nil
}

func shutdown(_ *cobra.Command, _ []string) error {
	logger.Close()
	return nil
}
