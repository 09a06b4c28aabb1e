package main

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/myrjola/suspectrelay/cmd/cli/suspect"
	"github.com/spf13/cobra"
	"io/fs"
	"os"
)

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(suspect.Group)
	rootCmd.AddCommand(suspect.Ask, suspect.Chat)
}

var rootCmd = &cobra.Command{
	Use:  "suspectrelay-cli",
	Long: `Command line utilities for interrogating suspects through a suspect dialogue relay`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
