package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/attendance-go/internal/xlsxtest"
	"github.com/ukaji3/attendance-go/pkg/attendance"
	"github.com/ukaji3/attendance-go/pkg/attendance/loader"
	"github.com/ukaji3/attendance-go/pkg/attendance/manifest"
	"github.com/ukaji3/attendance-go/pkg/attendance/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, secret []byte, load bool) *Server {
	t.Helper()
	data := xlsxtest.Workbook(t, "HRM",
		xlsxtest.Student{Roll: "R001", Name: "Alice", Section: "A", Absent: 2, Present: 10},
	)
	files := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	t.Cleanup(files.Close)

	sources := manifest.Build(files.URL, []manifest.Subject{{Name: "HRM", Files: []string{"HRM (A) Attendance Sheet.xlsx"}}})
	svc := attendance.NewService(loader.New(files.Client(), loader.DefaultOptions(), nil), sources, nil, nil)
	if load {
		svc.Reload(context.Background())
	}
	return New(svc, secret, nil)
}

func do(s *Server, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestCheckAttendance(t *testing.T) {
	s := newTestServer(t, nil, true)

	w := do(s, http.MethodGet, "/api/attendance/r001", "")
	require.Equal(t, http.StatusOK, w.Code)

	var report models.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "R001", report.RollNumber)
	assert.Equal(t, "Alice", report.StudentName)
	assert.Equal(t, 83.3, report.OverallPercentage)
	require.Len(t, report.Subjects, 1)
	assert.Equal(t, "HRM", report.Subjects[0].CourseName)
}

func TestCheckAttendanceNotFound(t *testing.T) {
	s := newTestServer(t, nil, true)

	w := do(s, http.MethodGet, "/api/attendance/R404", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Roll number not found")
}

func TestCheckAttendanceNoData(t *testing.T) {
	s := newTestServer(t, nil, false)

	w := do(s, http.MethodGet, "/api/attendance/R001", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListCourses(t *testing.T) {
	s := newTestServer(t, nil, true)

	w := do(s, http.MethodGet, "/api/courses", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Courses []courseView `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Courses, 1)
	assert.Equal(t, "HRM", body.Courses[0].Name)
	assert.Equal(t, 1, body.Courses[0].Students)
	require.Len(t, body.Courses[0].Sources, 1)
	assert.Contains(t, body.Courses[0].Sources[0].ViewerURL, manifest.ViewerBaseURL)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil, true)

	w := do(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","courses":1}`, w.Body.String())
}

func TestReloadOpenWithoutSecret(t *testing.T) {
	s := newTestServer(t, nil, false)

	w := do(s, http.MethodPost, "/api/reload", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats loader.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Parsed)

	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/api/attendance/R001", "").Code)
}

func TestReloadOutlivesClientDisconnect(t *testing.T) {
	s := newTestServer(t, nil, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var stats loader.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Parsed)
	assert.Equal(t, 0, stats.FetchFailed)
}

func TestWarnsWhenReloadIsUnauthenticated(t *testing.T) {
	var buf bytes.Buffer
	New(attendance.NewService(loader.New(nil, loader.DefaultOptions(), nil), nil, nil, nil), nil, log.NewLogfmtLogger(&buf))
	assert.Contains(t, buf.String(), "reload endpoint is unauthenticated")

	buf.Reset()
	New(attendance.NewService(loader.New(nil, loader.DefaultOptions(), nil), nil, nil, nil), []byte("secret"), log.NewLogfmtLogger(&buf))
	assert.NotContains(t, buf.String(), "unauthenticated")
}

func TestReloadRequiresToken(t *testing.T) {
	secret := []byte("test-secret")
	s := newTestServer(t, secret, false)

	assert.Equal(t, http.StatusUnauthorized, do(s, http.MethodPost, "/api/reload", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(s, http.MethodPost, "/api/reload", "garbage").Code)

	wrong, err := IssueToken([]byte("other"), "ops", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(s, http.MethodPost, "/api/reload", wrong).Code)

	expired, err := IssueToken(secret, "ops", -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(s, http.MethodPost, "/api/reload", expired).Code)

	token, err := IssueToken(secret, "ops", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, do(s, http.MethodPost, "/api/reload", token).Code)
}
