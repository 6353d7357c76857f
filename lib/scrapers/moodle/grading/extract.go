// Package grading extracts courses, assignments and grading-table
// submissions out of server-rendered moodle pages. All selector logic
// lives here, behind named extraction functions with explicit
// mandatory/optional contracts.
package grading

import (
	"net/url"
	"regexp"
	"strings"

	"gradeassist-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

type Course struct {
	Id   string
	Name string
	Href string
}

type Assignment struct {
	Id   string
	Name string
}

var assignmentIdRegex = regexp.MustCompile(`id=(\d+)`)

// CourseLink finds the first course anchor whose visible text contains
// the given name. The match is case-sensitive, the absence of a match
// is a *NotFoundError.
func CourseLink(doc *goquery.Document, name string) (Course, error) {
	var course Course
	found := false

	doc.Find(`a[href*="/course/view.php?id="]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := htmlutil.StrippedText(s)
		if !strings.Contains(text, name) {
			return true
		}

		href := s.AttrOr("href", "")
		course = Course{
			Id:   courseIdFromHref(href),
			Name: text,
			Href: href,
		}
		found = true
		return false
	})

	if !found {
		return Course{}, &NotFoundError{Course: name}
	}
	return course, nil
}

func courseIdFromHref(href string) string {
	link, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return link.Query().Get("id")
}

// AssignmentLinks returns every assignment anchor on a course page, in
// page order. Anchors lacking a parseable id or the instancename span
// are skipped silently, the markup is not uniform across themes.
func AssignmentLinks(doc *goquery.Document) []Assignment {
	var assignments []Assignment

	doc.Find(`a[href*="/mod/assign/view.php?id="]`).Each(func(i int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		groups := assignmentIdRegex.FindStringSubmatch(href)
		if len(groups) < 2 {
			return
		}

		nameSpan := s.Find("span.instancename")
		if nameSpan.Length() == 0 {
			return
		}

		assignments = append(assignments, Assignment{
			Id:   groups[1],
			Name: htmlutil.StrippedText(nameSpan),
		})
	})

	return assignments
}

// Requirements extracts the assignment's description block. The block
// is mandatory, a page without it cannot be graded.
func Requirements(doc *goquery.Document) (string, error) {
	sel := doc.Find("#intro .no-overflow")
	if sel.Length() == 0 {
		return "", &StructureError{Target: "#intro .no-overflow"}
	}
	return htmlutil.BlockText(sel.First()), nil
}

// GradingRows returns every row of the grading table, in page order.
// Zero rows is a valid result.
func GradingRows(doc *goquery.Document) []*goquery.Selection {
	var rows []*goquery.Selection
	doc.Find(`tr[id*="mod_assign_grading"]`).Each(func(i int, s *goquery.Selection) {
		rows = append(rows, s)
	})
	return rows
}

// PageTitle returns the document's title text, empty when absent.
func PageTitle(doc *goquery.Document) string {
	return doc.Find("title").First().Text()
}
