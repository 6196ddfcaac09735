package cmd

import (
	"fmt"

	"github.com/zhouqcn/legalinfocollector/internal/config"

	"github.com/spf13/cobra"
)

var configResetCmd = &cobra.Command{
	Use:   "reset [label]",
	Short: "Restore a config (the active one by default) to the settings of its site preset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.DefaultStore()

		label := ""
		if len(args) == 1 {
			label = args[0]
		} else {
			current, err := store.Current()
			if err != nil {
				return err
			}
			label = current
		}

		preset, err := store.Reset(label)
		if err != nil {
			return err
		}

		fmt.Printf("Reset config %q to preset %q\n", label, preset)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
}
