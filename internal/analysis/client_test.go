package analysis

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitforworks/internal/config"
	"fitforworks/internal/document"
)

func testDoc(t *testing.T) *document.Ref {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\nGo engineer"), 0644))
	ref, err := document.Load(path)
	require.NoError(t, err)
	return ref
}

func testClient(serverURL string) *Client {
	cfg := config.Default()
	cfg.Service.AnalyzeURL = serverURL + "/api/analyze"
	cfg.Service.MatchURL = serverURL + "/match"
	return NewClient(cfg)
}

func TestAnalyzeSendsMultipartForm(t *testing.T) {
	var gotPath, gotRequestID string
	var gotForm map[string]string
	var gotFile []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get("X-Request-ID")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotForm = map[string]string{}
		for name, values := range r.MultipartForm.Value {
			gotForm[name] = values[0]
		}
		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "resume.txt", header.Filename)
		gotFile, err = io.ReadAll(f)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"ats_score": 72, "summary": "Solid."}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	raw, err := c.Analyze(context.Background(), "k1", testDoc(t), ReviewParams{
		Category: "Software Engineering",
		Role:     "Backend Engineer",
		Level:    "Senior",
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/analyze", gotPath)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "Software Engineering", gotForm["job_category"])
	assert.Equal(t, "Backend Engineer", gotForm["job_role"])
	assert.Equal(t, "Senior", gotForm["experience_level"])
	assert.Equal(t, "Jane Doe\nGo engineer", string(gotFile))
	assert.Equal(t, 72, raw.ATSScore)
	assert.Equal(t, "Solid.", raw.Summary)
}

func TestAnalyzeOmitsEmptyContextFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, hasCategory := r.MultipartForm.Value["job_category"]
		assert.False(t, hasCategory, "empty context fields should not be sent")
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Analyze(context.Background(), "k2", testDoc(t), ReviewParams{})
	require.NoError(t, err)
}

func TestMatchSendsJobDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/match", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "We need a Go engineer.", r.MultipartForm.Value["jd"][0])
		io.WriteString(w, `{"match_score": 81, "matching_keywords": ["Go"]}`)
	}))
	defer srv.Close()

	raw, err := testClient(srv.URL).Match(context.Background(), "k3", testDoc(t), "We need a Go engineer.")
	require.NoError(t, err)
	assert.Equal(t, 81, raw.MatchScore)
	assert.Equal(t, []string{"Go"}, raw.MatchingKeywords)
}

func TestResultCachedByEffectKey(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		io.WriteString(w, `{"ats_score": 65}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	doc := testDoc(t)

	first, err := c.Analyze(context.Background(), "same-key", doc, ReviewParams{})
	require.NoError(t, err)
	second, err := c.Analyze(context.Background(), "same-key", doc, ReviewParams{})
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load(), "second call served from cache")
	assert.Equal(t, first.ATSScore, second.ATSScore)

	_, err = c.Analyze(context.Background(), "other-key", doc, ReviewParams{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "different key issues a fresh request")
}

func TestServerErrorNotCached(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		io.WriteString(w, `{"ats_score": 50}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	doc := testDoc(t)

	_, err := c.Analyze(context.Background(), "retry-key", doc, ReviewParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")

	raw, err := c.Analyze(context.Background(), "retry-key", doc, ReviewParams{})
	require.NoError(t, err, "failure is not memoized")
	assert.Equal(t, 50, raw.ATSScore)
}

func TestMalformedBodyIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `not json at all`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Analyze(context.Background(), "k4", testDoc(t), ReviewParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding analysis response")
}

func TestEffectKey(t *testing.T) {
	k := EffectKey(KindReview, "abc123", "Software Engineering", "Backend Engineer", "Senior")
	assert.Equal(t, "review:abc123:Software Engineering|Backend Engineer|Senior", k)

	assert.NotEqual(t,
		EffectKey(KindMatcher, "abc123", "jd-digest-1"),
		EffectKey(KindMatcher, "abc123", "jd-digest-2"))
}
