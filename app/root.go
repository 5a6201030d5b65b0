// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "goshelter-admin",
	Short: "GoShelter-Admin is the back office for animal shelter volunteers",
	Long: `GoShelter-Admin is the back-office service for animal shelters
that manages rabbits, rabbit groups, volunteer teams, regional roles
and the notifications that keep the volunteers informed.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
