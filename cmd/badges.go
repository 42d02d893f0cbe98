package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "Show unlocked badges",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, st, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		p, err := eng.Profiles().Get(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Print(renderBadges(p.Badges))
		return nil
	},
}
