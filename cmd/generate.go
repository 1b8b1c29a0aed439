package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mbrivio/turni/app"
	"github.com/mbrivio/turni/config"
	"github.com/mbrivio/turni/infra/logger"
)

var (
	genYear int
	genSeed int64
	genOut  string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the roster for one year",
	RunE:  generate,
}

func init() {
	generateCmd.Flags().IntVar(&genYear, "year", time.Now().Year(), "year to generate")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed, 0 picks one from the clock")
	generateCmd.Flags().StringVar(&genOut, "out", "", "output directory, overrides the configured one")
	rootCmd.AddCommand(generateCmd)
}

func generate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if genOut != "" {
		cfg.Export.OutputDir = genOut
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx, genYear, genSeed)
}
