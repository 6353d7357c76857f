package commands

import (
	"fmt"
	"os"

	"gradeassist-backend/services/grader"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info <assignment id>",
	Short: "Prints an assignment's requirements and submissions without scoring anything.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := grader.NewService(grader.Options{BaseUrl: baseUrl})
		res, err := svc.GetAssignmentInfo(cmd.Context(), args[0], cookie)
		if err != nil {
			return err
		}

		fmt.Println(res.PageTitle)
		fmt.Println()
		fmt.Println(res.Requirements)
		fmt.Println()

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Id", "Name", "Files"})
		for _, sub := range res.Submissions {
			first := ""
			if len(sub.Files) > 0 {
				first = sub.Files[0].Filename
			}
			t.AppendRow(table.Row{sub.StudentId, sub.StudentName, first})
		}
		t.Render()
		return nil
	},
}
