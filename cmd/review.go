package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List items due for spaced-repetition review",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, st, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		due, err := eng.Reviews().DueReviews(cmd.Context(), eng.Now())
		if err != nil {
			return err
		}
		fmt.Print(renderDue(due))
		return nil
	},
}

var reviewAnswerCmd = &cobra.Command{
	Use:   "answer <item-id>",
	Short: "Record a review outcome",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, st, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		correct, _ := cmd.Flags().GetBool("correct")
		found, err := eng.RecordReview(cmd.Context(), args[0], correct)
		if err != nil {
			return err
		}
		if !found {
			fmt.Printf("No active review item %q.\n", args[0])
			return nil
		}
		fmt.Println("Recorded.")
		return nil
	},
}

var reviewDropCmd = &cobra.Command{
	Use:   "drop <item-id>",
	Short: "Deactivate a review item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, st, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ok, err := eng.Reviews().Deactivate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("No active review item %q.\n", args[0])
			return nil
		}
		fmt.Println("Dropped from the review rotation.")
		return nil
	},
}

func init() {
	reviewAnswerCmd.Flags().Bool("correct", false, "Whether the recall was correct")
	reviewCmd.AddCommand(reviewAnswerCmd)
	reviewCmd.AddCommand(reviewDropCmd)
}
