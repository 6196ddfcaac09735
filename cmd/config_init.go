package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/zhouqcn/legalinfocollector/internal/config"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var flagInitYes bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create one config per supported site and activate the LII one",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.DefaultStore()

		fmt.Printf("Configs will be saved in:\n  %s\n\n", store.ProfilesDir())

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Preset", "Mode", "Index URL", "Output", "Description"})
		for _, p := range config.Presets() {
			c := p.Config()
			t.AppendRow(table.Row{p.Name, c.Mode, c.IndexURL, c.Output, p.Summary})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
		fmt.Println()

		if !flagInitYes {
			reader := bufio.NewReader(os.Stdin)
			fmt.Print("Create these configs? [y/N]: ")
			resp, _ := reader.ReadString('\n')
			resp = strings.TrimSpace(strings.ToLower(resp))

			if resp != "y" && resp != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		created, err := store.Seed()
		for _, path := range created {
			fmt.Println("Created:", path)
		}
		if err != nil {
			return fmt.Errorf("failed to write configs: %w", err)
		}
		if len(created) == 0 {
			fmt.Println("All preset configs already exist. Use `legalinfo config reset` to restore one.")
		}

		active, err := store.Current()
		if err != nil {
			return err
		}
		fmt.Printf("Active config: %s\n", active)

		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&flagInitYes, "yes", "y", false, "create the configs without asking")
	configCmd.AddCommand(configInitCmd)
}
