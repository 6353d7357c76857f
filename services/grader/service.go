// Package grader composes the authenticated fetcher, the grading-page
// extractor and the scoring client into the caller-facing pipeline
// operations. Every invocation is stateless given its inputs, nothing
// is cached across calls.
package grader

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"gradeassist-backend/lib/scoring"
	"gradeassist-backend/lib/scrapers/moodle/core"
	"gradeassist-backend/lib/scrapers/moodle/grading"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("services/grader")

const coursesPage = "/my/courses.php"

type Options struct {
	BaseUrl string
	Scorer  scoring.Scorer
	// number of submissions scored concurrently, 1 preserves the
	// strictly sequential behavior of the original tool
	ScoreConcurrency int
}

type Service struct {
	baseUrl     string
	scorer      scoring.Scorer
	concurrency int
}

func NewService(opts Options) Service {
	concurrency := opts.ScoreConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return Service{
		baseUrl:     opts.BaseUrl,
		scorer:      opts.Scorer,
		concurrency: concurrency,
	}
}

func (s Service) client(cookie string) (*core.Client, error) {
	return core.NewClient(core.ClientOptions{
		BaseUrl: s.baseUrl,
		Cookie:  cookie,
	})
}

func document(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewBuffer(body))
}

type ListAssignmentsResult struct {
	StatusCode  int
	PageTitle   string
	Assignments []grading.Assignment
}

// ListAssignments resolves the course whose name contains `course` and
// returns its assignment links in page order.
func (s Service) ListAssignments(ctx context.Context, course, cookie string) (ListAssignmentsResult, error) {
	ctx, span := tracer.Start(ctx, "grader:ListAssignments")
	defer span.End()
	span.SetAttributes(attribute.String("course", course))

	client, err := s.client(cookie)
	if err != nil {
		return ListAssignmentsResult{}, err
	}

	res, err := client.Fetch(ctx, coursesPage)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch courses page")
		return ListAssignmentsResult{}, err
	}
	doc, err := document(res.Body())
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse courses page")
		return ListAssignmentsResult{}, err
	}

	courseLink, err := grading.CourseLink(doc, course)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "course not found")
		return ListAssignmentsResult{}, err
	}

	res, err = client.Fetch(ctx, courseLink.Href)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch course page")
		return ListAssignmentsResult{}, err
	}
	doc, err = document(res.Body())
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse course page")
		return ListAssignmentsResult{}, err
	}

	return ListAssignmentsResult{
		StatusCode:  res.StatusCode(),
		PageTitle:   grading.PageTitle(doc),
		Assignments: grading.AssignmentLinks(doc),
	}, nil
}

// fetchGradingContext performs the two fetches shared by the info and
// scoring operations: the description page for the mandatory
// requirements block and the grading page for the submission rows.
func (s Service) fetchGradingContext(ctx context.Context, client *core.Client, assignmentId string) (requirements string, gradingDoc *goquery.Document, statusCode int, err error) {
	res, err := client.Fetch(ctx, fmt.Sprintf("/mod/assign/view.php?id=%s", assignmentId))
	if err != nil {
		return "", nil, 0, err
	}
	doc, err := document(res.Body())
	if err != nil {
		return "", nil, 0, err
	}
	requirements, err = grading.Requirements(doc)
	if err != nil {
		return "", nil, 0, err
	}

	res, err = client.Fetch(ctx, fmt.Sprintf("/mod/assign/view.php?id=%s&action=grading", assignmentId))
	if err != nil {
		return "", nil, 0, err
	}
	gradingDoc, err = document(res.Body())
	if err != nil {
		return "", nil, 0, err
	}

	return requirements, gradingDoc, res.StatusCode(), nil
}

type AssignmentInfoResult struct {
	StatusCode   int
	PageTitle    string
	Requirements string
	Submissions  []grading.Submission
}

// GetAssignmentInfo returns the requirements text and the resolved
// submissions without calling the scoring service, useful for preview
// without incurring scoring cost.
func (s Service) GetAssignmentInfo(ctx context.Context, assignmentId, cookie string) (AssignmentInfoResult, error) {
	ctx, span := tracer.Start(ctx, "grader:GetAssignmentInfo")
	defer span.End()
	span.SetAttributes(attribute.String("assignment_id", assignmentId))

	client, err := s.client(cookie)
	if err != nil {
		return AssignmentInfoResult{}, err
	}

	requirements, gradingDoc, statusCode, err := s.fetchGradingContext(ctx, client, assignmentId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch grading context")
		return AssignmentInfoResult{}, err
	}

	rows := grading.GradingRows(gradingDoc)
	submissions := make([]grading.Submission, len(rows))
	for i, row := range rows {
		submissions[i], err = grading.ResolveRow(row)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "malformed grading row")
			return AssignmentInfoResult{}, err
		}
	}

	return AssignmentInfoResult{
		StatusCode:   statusCode,
		PageTitle:    grading.PageTitle(gradingDoc),
		Requirements: requirements,
		Submissions:  submissions,
	}, nil
}

type ScoreResult struct {
	StudentId   string
	StudentName string
	Score       int
	Reason      string
}

// ScoreAssignment scores every submission in the grading table. The
// output has exactly one entry per row, in row order, even when scoring
// completes out of order under concurrency.
func (s Service) ScoreAssignment(ctx context.Context, assignmentId, cookie string) ([]ScoreResult, error) {
	ctx, span := tracer.Start(ctx, "grader:ScoreAssignment")
	defer span.End()
	span.SetAttributes(attribute.String("assignment_id", assignmentId))

	client, err := s.client(cookie)
	if err != nil {
		return nil, err
	}

	requirements, gradingDoc, _, err := s.fetchGradingContext(ctx, client, assignmentId)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch grading context")
		return nil, err
	}
	title := grading.PageTitle(gradingDoc)

	rows := grading.GradingRows(gradingDoc)
	submissions := make([]grading.Submission, len(rows))
	for i, row := range rows {
		submissions[i], err = grading.ResolveRow(row)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "malformed grading row")
			return nil, err
		}
	}

	results := make([]ScoreResult, len(submissions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, sub := range submissions {
		i, sub := i, sub
		g.Go(func() error {
			result, err := s.scoreSubmission(gctx, client, title, requirements, sub)
			if err != nil {
				return err
			}
			results[i] = ScoreResult{
				StudentId:   sub.StudentId,
				StudentName: sub.StudentName,
				Score:       result.Score,
				Reason:      result.Reason,
			}
			return nil
		})
	}
	err = g.Wait()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scoring failed")
		return nil, err
	}

	return results, nil
}

func (s Service) scoreSubmission(ctx context.Context, client *core.Client, title, requirements string, sub grading.Submission) (scoring.Result, error) {
	answer, eligible, err := s.fetchAnswer(ctx, client, sub)
	if err != nil {
		return scoring.Result{}, err
	}
	// the fallback is reserved for the no-eligible-file case, a failed
	// service call must propagate instead
	if !eligible {
		return scoring.Fallback(), nil
	}
	return s.scorer.Score(ctx, scoring.Request{
		Title:        title,
		Requirements: requirements,
		Answer:       answer,
	})
}

// fetchAnswer retrieves the submitted answer when the first attached
// file looks like a C++ source submission. The boolean reports
// eligibility, distinct from an eligible file with empty content.
func (s Service) fetchAnswer(ctx context.Context, client *core.Client, sub grading.Submission) (string, bool, error) {
	if len(sub.Files) == 0 {
		return "", false, nil
	}
	first := sub.Files[0]
	if !strings.Contains(first.Url, "cpp") {
		return "", false, nil
	}

	res, err := client.Fetch(ctx, first.Url)
	if err != nil {
		return "", false, err
	}
	return res.String(), true, nil
}
