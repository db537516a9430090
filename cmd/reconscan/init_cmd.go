package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hakim/reconscan/internal/config"
)

var (
	initForce bool
	initDir   string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default reconscan.yaml",
	Long: `Creates a default configuration file (reconscan.yaml) holding the engine,
resolver, output, history, notification and scope settings.

Edit it, then run scans from the same directory or point --config at it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.WriteDefault(initDir, initForce)
		if err != nil {
			return err
		}
		fmt.Printf("[+] Created %s with default configuration\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().StringVar(&initDir, "dir", ".", "output directory")
	rootCmd.AddCommand(initCmd)
}
