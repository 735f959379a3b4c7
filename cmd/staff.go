package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schoolops/subplan/config"
)

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "Staff directory commands",
}

var staffLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List staff from the configured roster",
	RunE:  runStaffLs,
}

func init() {
	staffCmd.AddCommand(staffLsCmd)
	rootCmd.AddCommand(staffCmd)
}

func runStaffLs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	roster, err := config.LoadRoster(cfg.Roster.Path)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	out := cmd.OutOrStdout()
	for _, m := range roster.Staff {
		fmt.Fprintf(out, "%s\t%s\t%s\n", m.Code, m.Name, m.ID)
	}
	return nil
}
