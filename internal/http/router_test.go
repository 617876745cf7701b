package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrivas/biblioteca/internal/database"
	"github.com/mrivas/biblioteca/internal/database/authors"
	"github.com/mrivas/biblioteca/internal/database/books"
	"github.com/mrivas/biblioteca/internal/entities"
	"github.com/mrivas/biblioteca/internal/stats"
)

// testEnv wires the full router against a real temporary database so the
// handler tests exercise the same stack the server runs.
type testEnv struct {
	router  *gin.Engine
	db      *database.Database
	authors *authors.Repository
	books   *books.Repository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	authorRepo := authors.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)

	router := NewRouter(RouterConfig{
		Database:    db,
		AuthorStore: authorRepo,
		BookStore:   bookRepo,
		Stats:       stats.NewAggregator(authorRepo, bookRepo),
		Version:     "test",
	})

	return &testEnv{router: router, db: db, authors: authorRepo, books: bookRepo}
}

func (e *testEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (e *testEnv) createAuthor(t *testing.T, name, email string) *entities.Author {
	t.Helper()
	author := &entities.Author{Name: name, Email: email}
	require.NoError(t, e.authors.CreateAuthor(author))
	return author
}

func (e *testEnv) createBook(t *testing.T, book entities.Book) *entities.Book {
	t.Helper()
	created, err := e.books.CreateBook(&book)
	require.NoError(t, err)
	return created
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
