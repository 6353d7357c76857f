package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	baseUrl string
	cookie  string
)

var rootCmd = &cobra.Command{
	Use:   "grader-cli",
	Short: "grader-cli lists, inspects and scores moodle assignments from the command line.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseUrl, "base-url", "https://moodle.nhu.edu.tw", "base url of the moodle deployment")
	rootCmd.PersistentFlags().StringVar(&cookie, "cookie", "", "session cookie for the portal")
	rootCmd.MarkPersistentFlagRequired("cookie")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
