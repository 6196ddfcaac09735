package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/zhouqcn/legalinfocollector/internal/config"

	"github.com/spf13/cobra"
)

var configEditCmd = &cobra.Command{
	Use:   "edit [label]",
	Short: "Open the active or the named config in $EDITOR and re-check it afterwards",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.DefaultStore()

		label := ""
		if len(args) == 1 {
			label = args[0]
		} else {
			current, err := store.Current()
			if err != nil {
				return fmt.Errorf("failed to get current config label: %w", err)
			}
			label = current
		}

		path, err := store.Path(label)
		if err != nil {
			return err
		}

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		edit := exec.Command(editor, path)
		edit.Stdin = os.Stdin
		edit.Stdout = os.Stdout
		edit.Stderr = os.Stderr
		if err := edit.Run(); err != nil {
			return fmt.Errorf("failed to open editor: %w", err)
		}

		cfg, err := store.Load(label)
		if err != nil {
			return fmt.Errorf("config %q no longer parses: %w", label, err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config %q is invalid: %w", label, err)
		}

		fmt.Printf("Config %q saved (%s mode, %s)\n", label, cfg.Mode, cfg.IndexURL)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
