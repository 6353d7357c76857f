package grading

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type FileAttachment struct {
	// display text of the download link
	Filename string
	// absolute or relative download url
	Url string
}

type Submission struct {
	StudentId   string
	StudentName string
	// false while the "submitted" status marker is present, the portal
	// shows it only for submitted-but-ungraded work
	Graded     bool
	QuickGrade string
	Files      []FileAttachment
}

// ResolveRow assembles a Submission out of one grading-table row.
func ResolveRow(row *goquery.Selection) (Submission, error) {
	userAnchor := row.Find(`a[href*="/user/"][id*="action"]`).First()
	tokens := strings.Fields(userAnchor.Text())
	if userAnchor.Length() == 0 || len(tokens) == 0 {
		return Submission{}, &MalformedRowError{RowId: row.AttrOr("id", "")}
	}

	studentId := tokens[len(tokens)-1]
	studentName := strings.Join(tokens[:len(tokens)-1], " ")

	graded := row.Find(`div[class="submissionstatussubmitted"]`).Length() == 0

	// The upstream tool reports "0" for the quick-grade whether the
	// input carries a value or not; both branches collapse to the same
	// literal. Kept as-is until the intended behavior is confirmed.
	quickGrade := "0"

	var files []FileAttachment
	row.Find(`a[target="_blank"]`).Each(func(i int, s *goquery.Selection) {
		files = append(files, FileAttachment{
			Filename: s.Text(),
			Url:      s.AttrOr("href", ""),
		})
	})

	return Submission{
		StudentId:   studentId,
		StudentName: studentName,
		Graded:      graded,
		QuickGrade:  quickGrade,
		Files:       files,
	}, nil
}
