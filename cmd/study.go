package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joonho/ailearn/internal/engine"
)

var studyCmd = &cobra.Command{
	Use:   "study <article|quiz|term>",
	Short: "Record a study action",
	Long: `Record one study action and fan it out to the progression engine:
XP, streak, achievements, daily missions and review scheduling.

  ailearn study article --content ai-042
  ailearn study quiz --content q-17 --correct
  ailearn study term --content transformer`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, st, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		kind, err := studyKind(args[0])
		if err != nil {
			return err
		}
		contentID, _ := cmd.Flags().GetString("content")
		correct, _ := cmd.Flags().GetBool("correct")

		res, err := eng.RecordStudy(cmd.Context(), engine.StudyEvent{
			Kind:      kind,
			ContentID: contentID,
			Correct:   correct,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Recorded. +%d XP, +%d points, streak %d days.\n",
			res.XPEarned, res.PointsEarned, res.StreakDays)
		return nil
	},
}

func studyKind(arg string) (string, error) {
	switch arg {
	case "article":
		return engine.KindStudyAI, nil
	case "quiz":
		return engine.KindQuiz, nil
	case "term":
		return engine.KindLearnTerm, nil
	default:
		return "", fmt.Errorf("unknown study kind %q (want article, quiz or term)", arg)
	}
}

func init() {
	studyCmd.Flags().String("content", "", "Content identifier to schedule for spaced review")
	studyCmd.Flags().Bool("correct", false, "Whether the quiz answer was correct")
}
