package handler

import (
	"encoding/base64"
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/journey-mate/journeymate/frontend/internal/apiclient"
	"github.com/journey-mate/journeymate/frontend/web"
	"github.com/journey-mate/journeymate/shared/config"
	"github.com/journey-mate/journeymate/shared/logger"
)

func init() {
	logger.Discard()
}

// fakeBackend stands in for the users API and records what it received.
type fakeBackend struct {
	mu       sync.Mutex
	requests map[string][]map[string]any

	addStatus   int
	addBody     string
	loginStatus int
	loginBody   string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		requests:    map[string][]map[string]any{},
		addStatus:   http.StatusCreated,
		addBody:     `{"id":1}`,
		loginStatus: http.StatusOK,
		loginBody:   `{"token":"abc","isAdmin":false}`,
	}
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	b.mu.Lock()
	b.requests[r.URL.Path] = append(b.requests[r.URL.Path], body)
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/users/add":
		w.WriteHeader(b.addStatus)
		w.Write([]byte(b.addBody))
	case "/api/users/login":
		w.WriteHeader(b.loginStatus)
		w.Write([]byte(b.loginBody))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (b *fakeBackend) calls(path string) []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[path]
}

func mustParseTemplates(t *testing.T) map[string]*template.Template {
	t.Helper()
	pages, err := fs.Glob(web.Templates, "templates/*.html")
	require.NoError(t, err)

	templates := map[string]*template.Template{}
	for _, page := range pages {
		name := path.Base(page)
		if name == "base.html" {
			continue
		}
		templates[name] = template.Must(template.New("base.html").ParseFS(web.Templates, "templates/base.html", page))
	}
	return templates
}

func newTestHandler(t *testing.T, backend *fakeBackend) *Handler {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	public := config.Default()
	public.Api.BaseURL = srv.URL
	return New(mustParseTemplates(t), public, apiclient.New(srv.URL, time.Second))
}

func postForm(h http.HandlerFunc, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func flashValue(t *testing.T, rec *httptest.ResponseRecorder, name string) string {
	t.Helper()
	c := findCookie(rec, name)
	require.NotNil(t, c, "cookie %s not set", name)
	decoded, err := base64.StdEncoding.DecodeString(c.Value)
	require.NoError(t, err)
	return string(decoded)
}

func flashCookie(name, value string) *http.Cookie {
	return &http.Cookie{Name: name, Value: base64.StdEncoding.EncodeToString([]byte(value))}
}
