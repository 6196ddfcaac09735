package cmd

import (
	"fmt"
	"os"

	"github.com/zhouqcn/legalinfocollector/internal/config"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available configs",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := config.DefaultStore().List()
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("No configs yet. Run `legalinfo config init`.")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"", "Label", "Preset", "Mode", "Index URL"})
		for _, p := range list {
			mark := ""
			if p.Active {
				mark = "*"
			}
			if p.Err != nil {
				t.AppendRow(table.Row{mark, p.Label, "", "unreadable", p.Err.Error()})
				continue
			}
			t.AppendRow(table.Row{mark, p.Label, p.Preset, p.Mode, p.IndexURL})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()

		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd)
}
