// Command todo is an interactive in-memory console todo list, unrelated to
// the HTTP backend.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"taskchat/internal/todo"
)

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "Interactive console todo list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(os.Stdin, os.Stdout, todo.NewService())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
