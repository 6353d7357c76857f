package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gradeassist-backend/lib/filestore"
	"gradeassist-backend/lib/scoring"
	"gradeassist-backend/lib/telemetry"
	"gradeassist-backend/services/grader"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubScorer struct{}

func (stubScorer) Score(ctx context.Context, req scoring.Request) (scoring.Result, error) {
	return scoring.Result{Score: 75, Reason: "partially correct"}, nil
}

func newTestRouter(t *testing.T, moodleUrl string) *echo.Echo {
	cleanup := telemetry.SetupForTesting(t, "test:api")
	t.Cleanup(cleanup)

	files, err := filestore.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRouter(Deps{
		Grader: grader.NewService(grader.Options{
			BaseUrl: moodleUrl,
			Scorer:  stubScorer{},
		}),
		Files: files,
	})
}

func doJSON(t *testing.T, router *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStatus(t *testing.T) {
	router := newTestRouter(t, "http://unused.invalid")

	rec := doJSON(t, router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"online"}`, rec.Body.String())
}

func TestTextProcess(t *testing.T) {
	router := newTestRouter(t, "http://unused.invalid")

	rec := doJSON(t, router, http.MethodPost, "/tools/text-process",
		`{"text":"hello world","operation":"uppercase"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t,
		`{"original":"hello world","operation":"uppercase","result":"HELLO WORLD"}`,
		rec.Body.String())

	// unknown operations answer 200 with an error field, matching the
	// tool contract automation callers expect
	rec = doJSON(t, router, http.MethodPost, "/tools/text-process",
		`{"text":"x","operation":"rot13"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &body)
	if err != nil {
		t.Fatal(err)
	}
	require.Contains(t, body["error"], "rot13")
}

func TestFileWriteAndList(t *testing.T) {
	router := newTestRouter(t, "http://unused.invalid")

	rec := doJSON(t, router, http.MethodPost, "/tools/file/write",
		`{"filename":"report.txt","content":"ten chars!"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var wrote struct {
		Status   string `json:"status"`
		FilePath string `json:"file_path"`
		Size     int    `json:"size"`
	}
	err := json.Unmarshal(rec.Body.Bytes(), &wrote)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "success", wrote.Status)
	require.Equal(t, 10, wrote.Size)
	require.True(t, strings.HasSuffix(wrote.FilePath, "report.txt"))

	rec = doJSON(t, router, http.MethodGet, "/tools/file/list", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"files":["report.txt"],"count":1}`, rec.Body.String())
}

func TestFileWriteInvalidFilename(t *testing.T) {
	router := newTestRouter(t, "http://unused.invalid")

	rec := doJSON(t, router, http.MethodPost, "/tools/file/write",
		`{"filename":"../escape.txt","content":"x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &body)
	if err != nil {
		t.Fatal(err)
	}
	require.Contains(t, body["detail"], "invalid filename")
}

func TestErrorResponseShape(t *testing.T) {
	router := newTestRouter(t, "http://unreachable.invalid")

	rec := doJSON(t, router, http.MethodPost, "/tools/get-assignment-info",
		`{"assignment_id":"100","cookie":"c"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &body)
	if err != nil {
		t.Fatal(err)
	}
	require.NotEmpty(t, body["detail"])
}

func TestScoreAssignment(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/mod/assign/view.php", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("action") == "grading" {
			fmt.Fprint(w, `<html><head><title>HW1: Grading</title></head><body><table>
<tr id="mod_assign_grading_r0">
  <td><a href="/user/view.php?id=7" id="user_action_7">Jane Doe 12345</a></td>
  <td><a target="_blank" href="/pluginfile.php/1/answer.cpp">answer.cpp</a></td>
</tr>
<tr id="mod_assign_grading_r1">
  <td><a href="/user/view.php?id=8" id="user_action_8">Bob Smith 67890</a></td>
</tr>
</table></body></html>`)
			return
		}
		fmt.Fprint(w, `<html><body><div id="intro"><div class="no-overflow"><p>Print Hello</p></div></div></body></html>`)
	})
	mux.HandleFunc("/pluginfile.php/1/answer.cpp", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `int main() {}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	router := newTestRouter(t, server.URL)

	rec := doJSON(t, router, http.MethodPost, "/tools/score-assignment",
		`{"assignment_id":"100","cookie":"MoodleSession=abc"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// the response is a bare array, one entry per grading row in order
	require.JSONEq(t, `[
		{"id":"12345","name":"Jane Doe","score":75,"reason":"partially correct"},
		{"id":"67890","name":"Bob Smith","score":0,"reason":"No answer submitted or Wrong file format"}
	]`, rec.Body.String())
}
