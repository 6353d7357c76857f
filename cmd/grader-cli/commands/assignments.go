package commands

import (
	"os"

	"gradeassist-backend/services/grader"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(assignmentsCmd)
}

var assignmentsCmd = &cobra.Command{
	Use:   "assignments <course name>",
	Short: "Prints the assignments of the course whose name contains the given substring.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := grader.NewService(grader.Options{BaseUrl: baseUrl})
		res, err := svc.ListAssignments(cmd.Context(), args[0], cookie)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Id", "Name"})
		for _, a := range res.Assignments {
			t.AppendRow(table.Row{a.Id, a.Name})
		}
		t.Render()
		return nil
	},
}
