package commands

import (
	"os"

	"gradeassist-backend/lib/scoring"
	"gradeassist-backend/services/grader"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	scoreModel       string
	scoreConcurrency int
)

func init() {
	scoreCmd.Flags().StringVar(&scoreModel, "model", scoring.DefaultModel, "scoring model identifier")
	scoreCmd.Flags().IntVar(&scoreConcurrency, "concurrency", 1, "number of submissions scored concurrently")
	rootCmd.AddCommand(scoreCmd)
}

var scoreCmd = &cobra.Command{
	Use:   "score <assignment id>",
	Short: "Scores every submission of an assignment, reads GEMINI_API_KEY from the environment.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scorer, err := scoring.NewGeminiScorer(os.Getenv("GEMINI_API_KEY"), scoreModel)
		if err != nil {
			return err
		}

		svc := grader.NewService(grader.Options{
			BaseUrl:          baseUrl,
			Scorer:           scorer,
			ScoreConcurrency: scoreConcurrency,
		})
		results, err := svc.ScoreAssignment(cmd.Context(), args[0], cookie)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Id", "Name", "Score", "Reason"})
		for _, r := range results {
			t.AppendRow(table.Row{r.StudentId, r.StudentName, r.Score, r.Reason})
		}
		t.Render()
		return nil
	},
}
