package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbrivio/turni/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration file",
	RunE:  check,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func check(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	rosterCfg, err := cfg.RosterConfig()
	if err != nil {
		return err
	}
	cmd.Printf("config ok: %d drivers, %d firefighters\n",
		len(rosterCfg.Drivers), len(rosterCfg.Firefighters))
	return nil
}
