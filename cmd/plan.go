package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schoolops/subplan/config"
	"github.com/schoolops/subplan/core/directory"
	"github.com/schoolops/subplan/core/history"
	"github.com/schoolops/subplan/core/model"
	"github.com/schoolops/subplan/core/plan"
	"github.com/schoolops/subplan/core/timetable"
	"github.com/schoolops/subplan/infra/logger"
)

var (
	planDate   string
	planAbsent []string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a substitution plan for one day",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planDate, "date", "", "planning date (YYYY-MM-DD, Mon-Fri)")
	planCmd.Flags().StringSliceVar(&planAbsent, "absent", nil, "absent staff codes, in priority order")
	_ = planCmd.MarkFlagRequired("date")
	_ = planCmd.MarkFlagRequired("absent")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	roster, err := config.LoadRoster(cfg.Roster.Path)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	dir := directory.NewMemoryStore()
	tts := timetable.NewMemoryStore()
	for _, m := range roster.Staff {
		if err := dir.Add(m); err != nil {
			return fmt.Errorf("roster: %w", err)
		}
	}
	for id, tt := range roster.Timetables {
		if err := tts.Set(id, tt); err != nil {
			return fmt.Errorf("roster: %w", err)
		}
	}

	var hist history.Store
	if cfg.History.Backend == "sqlite" {
		hist, err = history.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("history store: %w", err)
		}
		defer func() { _ = hist.Close() }()
	}

	planner, err := plan.NewPlanner(dir, tts, hist, logger.New("plan-command"), nil)
	if err != nil {
		return err
	}

	var absent []model.StaffMember
	for _, code := range planAbsent {
		m, err := dir.FindByCode(code)
		if err != nil {
			return fmt.Errorf("absent staff: %w", err)
		}
		absent = append(absent, m)
	}

	res, err := planner.Plan(cmd.Context(), model.AbsenceRequest{Date: planDate, Absent: absent})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, plan.Render(res))
	if len(res.Unassigned) > 0 {
		fmt.Fprintf(out, "\nUncovered periods:\n")
		for _, u := range res.Unassigned {
			fmt.Fprintf(out, "%s P%d %s\n", u.AbsentCode, model.PeriodNumber(u.PeriodTime), u.Class)
		}
	}
	rep := plan.Report(res)
	if rep.Substitutes > 0 {
		var codes []string
		for c := range rep.PerStaff {
			codes = append(codes, c)
		}
		sort.Strings(codes)
		fmt.Fprintf(out, "\nLoad: %d substitutes, mean %.1f, max %d (%s)\n",
			rep.Substitutes, rep.Mean, rep.Max, strings.Join(codes, " "))
	}
	return nil
}
