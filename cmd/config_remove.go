package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/zhouqcn/legalinfocollector/internal/config"

	"github.com/spf13/cobra"
)

var forceRemove bool

var configRemoveCmd = &cobra.Command{
	Use:   "remove <label>",
	Short: "Remove a config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := args[0]
		store := config.DefaultStore()

		current, _ := store.Current()
		force := forceRemove

		if label == current && !force {
			fmt.Printf("Config %q is currently active. Remove it anyway? [y/N]: ", label)

			reader := bufio.NewReader(os.Stdin)
			resp, _ := reader.ReadString('\n')
			resp = strings.TrimSpace(strings.ToLower(resp))

			if resp != "y" && resp != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
			force = true
		}

		active, err := store.Remove(label, force)
		if err != nil {
			return err
		}

		fmt.Printf("Removed config %q\n", label)
		switch {
		case label != current:
		case active == "":
			fmt.Println("No config is active now; scrape falls back to the built-in LII defaults.")
		default:
			fmt.Println("Active config is now:", active)
		}
		return nil
	},
}

func init() {
	configRemoveCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "remove the active config without asking")
	configCmd.AddCommand(configRemoveCmd)
}
