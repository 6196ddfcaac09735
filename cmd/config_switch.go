package cmd

import (
	"fmt"

	"github.com/zhouqcn/legalinfocollector/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configSwitchCmd = &cobra.Command{
	Use:   "switch [label]",
	Short: "Choose the config scrape runs with",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.DefaultStore()

		if len(args) == 1 {
			if err := store.Switch(args[0]); err != nil {
				return err
			}
			fmt.Println("Switched to:", args[0])
			return nil
		}

		list, err := store.List()
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return fmt.Errorf("no configs available, run `legalinfo config init` first")
		}

		prompt := promptui.Select{
			Label: "Select config",
			Items: list,
			Size:  10,
			Templates: &promptui.SelectTemplates{
				Active:   `> {{ .Label | cyan }}  {{ .Mode }}  {{ .IndexURL | faint }}{{ if .Active }}  (active){{ end }}`,
				Inactive: `  {{ .Label }}  {{ .Mode }}  {{ .IndexURL | faint }}{{ if .Active }}  (active){{ end }}`,
				Selected: `Switched to: {{ .Label }}`,
			},
		}

		idx, _, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("selection cancelled")
		}

		return store.Switch(list[idx].Label)
	},
}

func init() {
	configCmd.AddCommand(configSwitchCmd)
}
