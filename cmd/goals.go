package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/joonho/ailearn/internal/catalog"
	"github.com/joonho/ailearn/internal/missions"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show progress goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, st, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		goals, err := eng.Missions().Goals(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Print(renderGoals(goals, eng.Now()))
		return nil
	},
}

var goalsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a progress goal",
	Long: `Add a goal with a target count and a deadline derived from its horizon.

  ailearn goals add "Quiz sprint" --horizon weekly --category quiz --target 20 --xp 120 --points 25`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, st, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		horizon, _ := cmd.Flags().GetString("horizon")
		category, _ := cmd.Flags().GetString("category")
		target, _ := cmd.Flags().GetInt("target")
		xp, _ := cmd.Flags().GetInt("xp")
		points, _ := cmd.Flags().GetInt("points")

		if err := validGoalFlags(horizon, category); err != nil {
			return err
		}

		g, err := eng.Missions().AddGoal(cmd.Context(), args[0], horizon, category, target,
			catalog.Reward{XP: xp, Points: points}, time.Time{})
		if err != nil {
			return err
		}
		fmt.Printf("Added goal %q (%s), due %s.\n", g.Name, g.ID, g.Deadline.Format("2006-01-02"))
		return nil
	},
}

func validGoalFlags(horizon, category string) error {
	switch horizon {
	case missions.GoalDaily, missions.GoalWeekly, missions.GoalMonthly, missions.GoalCustom:
	default:
		return fmt.Errorf("unknown horizon %q (want daily, weekly, monthly or custom)", horizon)
	}
	switch category {
	case "ai_info", "quiz", "terms":
		return nil
	default:
		return fmt.Errorf("unknown category %q (want ai_info, quiz or terms)", category)
	}
}

func renderGoals(goals []missions.Goal, now time.Time) string {
	if len(goals) == 0 {
		return styleDim.Render("No goals set. Add one with `ailearn goals add`.") + "\n"
	}
	var b strings.Builder
	b.WriteString(styleHeader.Render("Goals") + "\n")
	for _, g := range goals {
		mark := styleDim.Render("○")
		switch {
		case g.IsCompleted:
			mark = styleSuccess.Render("●")
		case g.Expired(now):
			mark = styleDim.Render("✗")
		}
		b.WriteString(fmt.Sprintf("  %s %s %s %s\n",
			mark, g.Name,
			styleDim.Render(fmt.Sprintf("%d/%d %s", g.Current, g.Target, g.Category)),
			styleDim.Render("due "+g.Deadline.Format("2006-01-02"))))
	}
	return b.String()
}

func init() {
	goalsAddCmd.Flags().String("horizon", missions.GoalWeekly, "Goal horizon: daily, weekly, monthly or custom")
	goalsAddCmd.Flags().String("category", "quiz", "Study category that advances the goal: ai_info, quiz or terms")
	goalsAddCmd.Flags().Int("target", 10, "Target count")
	goalsAddCmd.Flags().Int("xp", 100, "XP granted on completion")
	goalsAddCmd.Flags().Int("points", 20, "Points granted on completion")
	goalsCmd.AddCommand(goalsAddCmd)
}
