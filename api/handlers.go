package api

import (
	"errors"
	"net/http"

	"gradeassist-backend/lib/filestore"
	"gradeassist-backend/lib/scrapers/moodle/core"
	"gradeassist-backend/lib/textutil"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, deps Deps) {
	h := handlers{deps: deps}

	e.GET("/", h.status)

	tools := e.Group("/tools")
	tools.POST("/crawl", h.crawl)
	tools.POST("/text-process", h.textProcess)
	tools.POST("/file/write", h.fileWrite)
	tools.GET("/file/list", h.fileList)
	tools.POST("/moodle-login-helper", h.loginHelper)
	tools.POST("/get-assignments-of-class", h.listAssignments)
	tools.POST("/get-assignment-info", h.assignmentInfo)
	tools.POST("/score-assignment", h.scoreAssignment)
}

type handlers struct {
	deps Deps
}

func (h handlers) status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "online"})
}

type crawlRequest struct {
	Url      string `json:"url"`
	Selector string `json:"selector"`
	Cookie   string `json:"cookie"`
}

type crawlResponse struct {
	Url        string `json:"url"`
	StatusCode int    `json:"status_code"`
	Content    string `json:"content"`
	Title      string `json:"title"`
}

func (h handlers) crawl(c echo.Context) error {
	var req crawlRequest
	err := c.Bind(&req)
	if err != nil {
		return err
	}

	res, err := h.deps.Grader.Crawl(c.Request().Context(), req.Url, req.Selector, req.Cookie)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, crawlResponse{
		Url:        res.Url,
		StatusCode: res.StatusCode,
		Content:    res.Content,
		Title:      res.Title,
	})
}

type textProcessRequest struct {
	Text      string `json:"text"`
	Operation string `json:"operation"`
}

type textProcessResponse struct {
	Original  string `json:"original"`
	Operation string `json:"operation"`
	Result    string `json:"result"`
}

func (h handlers) textProcess(c echo.Context) error {
	var req textProcessRequest
	err := c.Bind(&req)
	if err != nil {
		return err
	}

	result, err := textutil.Transform(req.Operation, req.Text)
	var unknownOp textutil.UnknownOperationError
	if errors.As(err, &unknownOp) {
		return c.JSON(http.StatusOK, map[string]string{"error": unknownOp.Error()})
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, textProcessResponse{
		Original:  req.Text,
		Operation: req.Operation,
		Result:    result,
	})
}

type fileWriteRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type fileWriteResponse struct {
	Status   string `json:"status"`
	FilePath string `json:"file_path"`
	Size     int    `json:"size"`
}

func (h handlers) fileWrite(c echo.Context) error {
	var req fileWriteRequest
	err := c.Bind(&req)
	if err != nil {
		return err
	}

	path, err := h.deps.Files.Write(req.Filename, req.Content)
	var invalid filestore.InvalidFilenameError
	if errors.As(err, &invalid) {
		return echo.NewHTTPError(http.StatusBadRequest, invalid.Error())
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fileWriteResponse{
		Status:   "success",
		FilePath: path,
		Size:     len(req.Content),
	})
}

type fileListResponse struct {
	Files []string `json:"files"`
	Count int      `json:"count"`
}

func (h handlers) fileList(c echo.Context) error {
	files, err := h.deps.Files.List()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fileListResponse{
		Files: files,
		Count: len(files),
	})
}

type loginRequest struct {
	Url      string `json:"url"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Status        int    `json:"status"`
	Cookie        string `json:"cookie"`
	UrlAfterLogin string `json:"url_after_login"`
}

func (h handlers) loginHelper(c echo.Context) error {
	var req loginRequest
	err := c.Bind(&req)
	if err != nil {
		return err
	}

	res, err := core.Login(c.Request().Context(), core.LoginOptions{
		Url:      req.Url,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Status:        res.StatusCode,
		Cookie:        res.Cookie,
		UrlAfterLogin: res.FinalUrl,
	})
}

type assignmentsRequest struct {
	Course string `json:"course"`
	Cookie string `json:"cookie"`
}

type assignmentEntry struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type assignmentsResponse struct {
	Status      int               `json:"status"`
	Title       string            `json:"title"`
	Assignments []assignmentEntry `json:"assignments"`
}

func (h handlers) listAssignments(c echo.Context) error {
	var req assignmentsRequest
	err := c.Bind(&req)
	if err != nil {
		return err
	}

	res, err := h.deps.Grader.ListAssignments(c.Request().Context(), req.Course, req.Cookie)
	if err != nil {
		return err
	}

	assignments := make([]assignmentEntry, len(res.Assignments))
	for i, a := range res.Assignments {
		assignments[i] = assignmentEntry{Id: a.Id, Name: a.Name}
	}
	return c.JSON(http.StatusOK, assignmentsResponse{
		Status:      res.StatusCode,
		Title:       res.PageTitle,
		Assignments: assignments,
	})
}

type assignmentRequest struct {
	AssignmentId string `json:"assignment_id"`
	Cookie       string `json:"cookie"`
}

type fileEntry struct {
	Filename string `json:"filename"`
	Url      string `json:"url"`
}

type submissionEntry struct {
	Id    string      `json:"id"`
	Name  string      `json:"name"`
	Score string      `json:"score"`
	Files []fileEntry `json:"files"`
}

type assignmentInfoResponse struct {
	Status       int               `json:"status"`
	Title        string            `json:"title"`
	Requirements string            `json:"requirements"`
	Submissions  []submissionEntry `json:"submissions"`
}

func (h handlers) assignmentInfo(c echo.Context) error {
	var req assignmentRequest
	err := c.Bind(&req)
	if err != nil {
		return err
	}

	res, err := h.deps.Grader.GetAssignmentInfo(c.Request().Context(), req.AssignmentId, req.Cookie)
	if err != nil {
		return err
	}

	submissions := make([]submissionEntry, len(res.Submissions))
	for i, sub := range res.Submissions {
		files := make([]fileEntry, len(sub.Files))
		for j, f := range sub.Files {
			files[j] = fileEntry{Filename: f.Filename, Url: f.Url}
		}
		submissions[i] = submissionEntry{
			Id:    sub.StudentId,
			Name:  sub.StudentName,
			Score: sub.QuickGrade,
			Files: files,
		}
	}
	return c.JSON(http.StatusOK, assignmentInfoResponse{
		Status:       res.StatusCode,
		Title:        res.PageTitle,
		Requirements: res.Requirements,
		Submissions:  submissions,
	})
}

type scoreEntry struct {
	Id     string `json:"id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

func (h handlers) scoreAssignment(c echo.Context) error {
	var req assignmentRequest
	err := c.Bind(&req)
	if err != nil {
		return err
	}

	results, err := h.deps.Grader.ScoreAssignment(c.Request().Context(), req.AssignmentId, req.Cookie)
	if err != nil {
		return err
	}

	entries := make([]scoreEntry, len(results))
	for i, r := range results {
		entries[i] = scoreEntry{
			Id:     r.StudentId,
			Name:   r.StudentName,
			Score:  r.Score,
			Reason: r.Reason,
		}
	}
	return c.JSON(http.StatusOK, entries)
}
