package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var missionsCmd = &cobra.Command{
	Use:   "missions",
	Short: "Show today's missions",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, st, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		set, err := eng.Missions().Missions(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Print(renderMissions(set))
		return nil
	},
}

var missionsClaimCmd = &cobra.Command{
	Use:   "claim <mission-id>",
	Short: "Mark a completed mission as collected",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, st, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ok, err := eng.Missions().Claim(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("Mission %q is not completed or already claimed.\n", args[0])
			return nil
		}
		fmt.Println("Claimed.")
		return nil
	},
}

func init() {
	missionsCmd.AddCommand(missionsClaimCmd)
}
