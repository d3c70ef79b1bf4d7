package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remaimber-it/quizcore/internal/api"
	"github.com/remaimber-it/quizcore/internal/catalog"
	"github.com/remaimber-it/quizcore/internal/evaluator"
	"github.com/remaimber-it/quizcore/internal/metrics"
	"github.com/remaimber-it/quizcore/internal/service"
	"github.com/remaimber-it/quizcore/internal/store"
)

const geoFile = `{
  "metadata": {"title": "Geography"},
  "questions": [
    {"id": 1, "type": "objective", "question": {"questionText": "Capital of France?"},
     "choices": [{"id": "a", "text": "Paris"}, {"id": "b", "text": "Lyon"}],
     "answer": {"answerText": "Paris"}},
    {"id": 2, "type": "subjective", "question": {"questionText": "A primary colour"},
     "answer": {"answerText": ["red", "blue"]}},
    {"id": 3, "type": "objective", "question": {"questionText": "2+2"},
     "answer": {"answerText": "4"}}
  ]
}`

func newServer(t *testing.T, catalogPath string) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m := metrics.New()
	progress := service.NewProgressTracker(db, logger)
	h := api.NewHandler(api.Services{
		Library:  service.NewLibrary(db, logger),
		Stats:    service.NewStatsService(db, rand.New(rand.NewSource(1)), logger),
		Progress: progress,
		Practice: service.NewPractice(db, progress, evaluator.KeyEvaluator{}, m, logger, 10),
		CatalogSync: service.NewCatalogSync(catalogPath,
			catalog.NewLoader(2, logger),
			catalog.NewSynchronizer(db, logger, false),
			m, logger),
	}, logger)

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, h)
	srv := httptest.NewServer(api.CORS(mux))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func importGeo(t *testing.T, srv *httptest.Server) {
	t.Helper()
	resp := do(t, http.MethodPost, srv.URL+"/subjects/geo/import", geoFile)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv := newServer(t, "")
	resp := do(t, http.MethodGet, srv.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestSubjects_ImportListExportDelete(t *testing.T) {
	srv := newServer(t, "")
	importGeo(t, srv)

	subjects := decode[[]api.SubjectResponse](t, do(t, http.MethodGet, srv.URL+"/subjects", nil))
	require.Len(t, subjects, 1)
	assert.Equal(t, "geo", subjects[0].ID)
	assert.Equal(t, "Geography", subjects[0].Title)
	assert.Equal(t, 3, subjects[0].NumQuestions)

	questions := decode[[]api.QuestionResponse](t, do(t, http.MethodGet, srv.URL+"/subjects/geo/questions", nil))
	require.Len(t, questions, 3)
	assert.Equal(t, []string{"red", "blue"}, questions[1].AcceptedAnswers)
	assert.Len(t, questions[0].Choices, 2)

	exported := decode[catalog.QuestionFile](t, do(t, http.MethodGet, srv.URL+"/subjects/geo/export", nil))
	require.Len(t, exported.Questions, 3)
	assert.JSONEq(t, `"Paris"`, string(exported.Questions[0].Answer.AnswerText))
	assert.JSONEq(t, `["red","blue"]`, string(exported.Questions[1].Answer.AnswerText))

	resp := do(t, http.MethodDelete, srv.URL+"/subjects/geo", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, http.MethodGet, srv.URL+"/subjects/geo", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = do(t, http.MethodDelete, srv.URL+"/subjects/geo", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestImport_Rejects(t *testing.T) {
	srv := newServer(t, "")

	resp := do(t, http.MethodPost, srv.URL+"/subjects/geo/import", `{"questions": [`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/subjects/geo/import",
		`{"questions": [{"type": "objective", "question": {"questionText": "q"}, "answer": {"answerText": "a"}}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/subjects/geo", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateTags(t *testing.T) {
	srv := newServer(t, "")
	importGeo(t, srv)

	resp := do(t, http.MethodPut, srv.URL+"/subjects/geo/questions/2/tags", map[string]any{"tags": []string{"colour"}})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	questions := decode[[]api.QuestionResponse](t, do(t, http.MethodGet, srv.URL+"/subjects/geo/questions", nil))
	assert.Equal(t, []string{"colour"}, questions[1].Tags)

	resp = do(t, http.MethodPut, srv.URL+"/subjects/geo/questions/x/tags", map[string]any{"tags": []string{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = do(t, http.MethodPut, srv.URL+"/subjects/geo/questions/99/tags", map[string]any{"tags": []string{}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = do(t, http.MethodPut, srv.URL+"/subjects/geo/questions/1/tags", map[string]any{"tags": []string{""}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSessionFlow(t *testing.T) {
	srv := newServer(t, "")
	importGeo(t, srv)

	resp := do(t, http.MethodPost, srv.URL+"/sessions", map[string]any{"subject_id": "geo", "stage_size": 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sess := decode[api.SessionResponse](t, resp)
	id := sess.State.SessionID
	require.NotNil(t, sess.Question)
	assert.Equal(t, 1, sess.Question.ID)
	assert.Empty(t, sess.Question.AcceptedAnswers, "answer hidden until answered")

	sess = decode[api.SessionResponse](t, do(t, http.MethodPost, srv.URL+"/sessions/"+id+"/answers", map[string]any{"answer": " Paris "}))
	assert.True(t, sess.State.IsCorrect)
	assert.Equal(t, []string{"Paris"}, sess.Question.AcceptedAnswers)

	progress := decode[api.ProgressResponse](t, do(t, http.MethodGet, srv.URL+"/subjects/geo/progress", nil))
	assert.Equal(t, 0, progress.LastIndex)
	assert.Equal(t, 3, progress.Total)

	sess = decode[api.SessionResponse](t, do(t, http.MethodPost, srv.URL+"/sessions/"+id+"/actions/advance", nil))
	assert.Equal(t, 2, sess.Question.ID)

	sess = decode[api.SessionResponse](t, do(t, http.MethodPost, srv.URL+"/sessions/"+id+"/answers", map[string]any{"answer": "green"}))
	assert.False(t, sess.State.IsCorrect)

	sess = decode[api.SessionResponse](t, do(t, http.MethodPost, srv.URL+"/sessions/"+id+"/actions/advance", nil))
	assert.True(t, sess.State.IsStageSummary)

	resp = do(t, http.MethodPost, srv.URL+"/sessions/"+id+"/answers", map[string]any{"answer": "x"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	report := decode[service.StageReport](t, do(t, http.MethodGet, srv.URL+"/sessions/"+id+"/stage-report", nil))
	assert.Equal(t, 1, report.Stage)
	assert.Equal(t, 2, report.Answered)
	assert.Equal(t, 1, report.Correct)

	sess = decode[api.SessionResponse](t, do(t, http.MethodPost, srv.URL+"/sessions/"+id+"/actions/continue", nil))
	assert.Equal(t, 3, sess.Question.ID)

	sess = decode[api.SessionResponse](t, do(t, http.MethodPost, srv.URL+"/sessions/"+id+"/actions/advance", nil))
	assert.True(t, sess.State.IsComplete)

	resp = do(t, http.MethodPost, srv.URL+"/sessions/"+id+"/actions/advance", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/sessions/"+id+"/actions/jump", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	wrong := decode[[]api.QuestionResponse](t, do(t, http.MethodGet, srv.URL+"/subjects/geo/wrong", nil))
	require.Len(t, wrong, 1)
	assert.Equal(t, 2, wrong[0].ID)

	resp = do(t, http.MethodDelete, srv.URL+"/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, http.MethodGet, srv.URL+"/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateSession_Validation(t *testing.T) {
	srv := newServer(t, "")
	importGeo(t, srv)

	resp := do(t, http.MethodPost, srv.URL+"/sessions", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/sessions", map[string]any{"subject_id": "geo", "mode": "review"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/sessions", map[string]any{"subject_id": "nope"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/sessions", `{"subject_id":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatsAndProgressReset(t *testing.T) {
	srv := newServer(t, "")
	importGeo(t, srv)

	sess := decode[api.SessionResponse](t, do(t, http.MethodPost, srv.URL+"/sessions", map[string]any{"subject_id": "geo"}))
	do(t, http.MethodPost, srv.URL+"/sessions/"+sess.State.SessionID+"/answers", map[string]any{"answer": "Paris"})

	report := decode[service.SubjectReport](t, do(t, http.MethodGet, srv.URL+"/subjects/geo/stats", nil))
	assert.Equal(t, 3, report.TotalQuestions)
	assert.Equal(t, 1, report.AnsweredQuestions)
	assert.Equal(t, 1.0, report.Accuracy)

	resp := do(t, http.MethodDelete, srv.URL+"/subjects/geo/progress", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	progress := decode[api.ProgressResponse](t, do(t, http.MethodGet, srv.URL+"/subjects/geo/progress", nil))
	assert.Equal(t, 0, progress.LastIndex)
	assert.Equal(t, 0.0, progress.Percent)

	resp = do(t, http.MethodGet, srv.URL+"/subjects/nope/stats", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRandomQuestion(t *testing.T) {
	srv := newServer(t, "")

	resp := do(t, http.MethodGet, srv.URL+"/practice/random", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	importGeo(t, srv)
	q := decode[api.QuestionResponse](t, do(t, http.MethodGet, srv.URL+"/practice/random?subject_id=geo", nil))
	assert.Equal(t, "geo", q.SubjectID)
}

func TestCatalogSyncEndpoint(t *testing.T) {
	srv := newServer(t, "")
	resp := do(t, http.MethodPost, srv.URL+"/catalog/sync", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "geo.json"), []byte(geoFile), 0o644))
	manifest := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("subjects:\n  - key: geo\n    file: geo.json\n"), 0o644))

	srv = newServer(t, manifest)
	report := decode[catalog.Report](t, do(t, http.MethodPost, srv.URL+"/catalog/sync", nil))
	assert.Equal(t, []string{"geo"}, report.Added)

	subjects := decode[[]api.SubjectResponse](t, do(t, http.MethodGet, srv.URL+"/subjects", nil))
	require.Len(t, subjects, 1)
}

func TestAdminReset(t *testing.T) {
	srv := newServer(t, "")
	importGeo(t, srv)

	resp := do(t, http.MethodPost, srv.URL+"/admin/reset", map[string]any{"target": "progress"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/admin/reset", map[string]any{"target": "all"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	subjects := decode[[]api.SubjectResponse](t, do(t, http.MethodGet, srv.URL+"/subjects", nil))
	assert.Empty(t, subjects)
}

func TestLoggingAndInstrumentMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	m := metrics.New()

	h := api.Logging(logger)(api.Instrument(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brew", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/brew"`)

	mrec := httptest.NewRecorder()
	m.Handler().ServeHTTP(mrec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, mrec.Body.String(), `quizcore_http_requests_total{method="GET",status="418"} 1`)
}
