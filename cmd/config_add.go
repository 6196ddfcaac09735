package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/zhouqcn/legalinfocollector/internal/config"

	"github.com/spf13/cobra"
)

var (
	flagAddFrom   string
	flagAddPreset string
)

var configAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Create a new config from a site preset or an existing YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string
		if len(args) == 1 {
			label = args[0]
		} else {
			reader := bufio.NewReader(os.Stdin)
			fmt.Print("Enter label for new config: ")
			label, _ = reader.ReadString('\n')
		}
		label = strings.TrimSpace(label)

		store := config.DefaultStore()

		if flagAddFrom != "" {
			path, err := store.Import(label, flagAddFrom)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %s as config %q: %s\n", flagAddFrom, label, path)
			return nil
		}

		path, err := store.Create(label, flagAddPreset)
		if err != nil {
			return err
		}

		fmt.Printf("Created config %q from preset %q: %s\n", label, flagAddPreset, path)
		return nil
	},
}

func init() {
	configAddCmd.Flags().StringVar(&flagAddPreset, "preset", config.DefaultLabel, "site preset to start from (see `legalinfo config init`)")
	configAddCmd.Flags().StringVar(&flagAddFrom, "from", "", "import an existing YAML file instead of a preset")
	configCmd.AddCommand(configAddCmd)
}
