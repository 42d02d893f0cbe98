package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(cmd)
	},
}

func runStats(cmd *cobra.Command) error {
	eng, st, err := openEngine(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()

	p, err := eng.Profiles().Get(ctx)
	if err != nil {
		return err
	}
	today, err := eng.Today(ctx)
	if err != nil {
		return err
	}
	due, err := eng.Reviews().DueReviews(ctx, eng.Now())
	if err != nil {
		return err
	}

	fmt.Print(renderProfile(p))
	fmt.Printf("  Today:   %d items studied, +%d XP", today.Studied, today.XPEarned)
	if today.QuizTotal > 0 {
		fmt.Printf(", quiz %d/%d", today.QuizCorrect, today.QuizTotal)
	}
	fmt.Printf("\n  Reviews: %d due\n\n", len(due))
	fmt.Print(renderAchievements(p.Achievements))
	return nil
}
