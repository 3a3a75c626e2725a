package resolve

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/scienceol/molview/internal/config"
	"github.com/scienceol/molview/pkg/core/structure"
	"github.com/scienceol/molview/pkg/core/structure/resolver"
	"github.com/scienceol/molview/pkg/middleware/logger"
	"github.com/spf13/cobra"
)

type options struct {
	cid   string
	regno string
	out   string
}

func New() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "resolve",
		Short:        "Resolve one structure document",
		Long:         "Fetch an SDF structure from PubChem by CID, falling back to Metabolomics Workbench by regno",
		SilenceUsage: true,
		// replaces the root pre-run: a one-shot CLI reads env through envconfig
		// and logs to stderr only
		PersistentPreRunE: initResolve,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, resolver.New(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.cid, "cid", "", "PubChem compound id (primary source), VIEWER_CID when empty")
	cmd.Flags().StringVar(&opts.regno, "regno", "", "Metabolomics Workbench regno (secondary source), VIEWER_REGNO when empty")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write the document to this file instead of stdout")
	return cmd
}

func initResolve(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	conf, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	*config.Global() = *conf

	logger.Init(&logger.LogConfig{
		LogLevel: conf.Log.LogLevel,
		ServiceEnv: logger.ServiceEnv{
			Platform: conf.Server.Platform,
			Service:  "resolve",
			Env:      conf.Server.Env,
		},
	})
	return nil
}

func run(cmd *cobra.Command, svc structure.Service, opts *options) error {
	display := structure.DisplayFromViewer(config.Global().Viewer).Merge(&structure.DisplayConfig{
		CID:   opts.cid,
		Regno: opts.regno,
	})
	doc, err := svc.Resolve(cmd.Context(), display.Request())
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if _, err := io.WriteString(w, doc.Data); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "resolved %s id %s from %s source\n", doc.Origin, doc.ID, doc.Source)
	return nil
}
