package stats

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrivas/biblioteca/internal/database"
	"github.com/mrivas/biblioteca/internal/database/authors"
	"github.com/mrivas/biblioteca/internal/database/books"
	"github.com/mrivas/biblioteca/internal/entities"
)

func setupAggregator(t *testing.T) (*Aggregator, *authors.Repository, *books.Repository) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	authorRepo := authors.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	return NewAggregator(authorRepo, bookRepo), authorRepo, bookRepo
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func createAuthor(t *testing.T, repo *authors.Repository, name, email string) *entities.Author {
	t.Helper()
	author := &entities.Author{Name: name, Email: email}
	require.NoError(t, repo.CreateAuthor(author))
	return author
}

func createBook(t *testing.T, repo *books.Repository, book entities.Book) {
	t.Helper()
	_, err := repo.CreateBook(&book)
	require.NoError(t, err)
}

func TestAuthorStats(t *testing.T) {
	t.Run("missing author is not found, not zeroed stats", func(t *testing.T) {
		agg, _, _ := setupAggregator(t)

		_, err := agg.AuthorStats(999)
		assert.ErrorIs(t, err, database.ErrNotFound)
	})

	t.Run("author without books gets zeroed figures", func(t *testing.T) {
		agg, authorRepo, _ := setupAggregator(t)
		author := createAuthor(t, authorRepo, "Sin Libros", "nada@example.com")

		s, err := agg.AuthorStats(author.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, s.TotalBooks)
		assert.Equal(t, 0, s.AveragePages)
		assert.Nil(t, s.FirstBook)
		assert.Nil(t, s.LatestBook)
		assert.Nil(t, s.LongestBook)
		assert.Nil(t, s.ShortestBook)
		assert.Empty(t, s.Genres)
	})

	t.Run("derives the full summary", func(t *testing.T) {
		agg, authorRepo, bookRepo := setupAggregator(t)
		author := createAuthor(t, authorRepo, "Gabriel Garcia Marquez", "gabo@example.com")

		createBook(t, bookRepo, entities.Book{
			Title: "Cien anos de soledad", ISBN: "isbn-1",
			PublishedYear: intPtr(1967), Genre: strPtr("Novela"), Pages: intPtr(417), AuthorID: author.ID,
		})
		createBook(t, bookRepo, entities.Book{
			Title: "El amor en los tiempos del colera", ISBN: "isbn-2",
			PublishedYear: intPtr(1985), Genre: strPtr("Novela"), Pages: intPtr(490), AuthorID: author.ID,
		})
		createBook(t, bookRepo, entities.Book{
			Title: "Cronica de una muerte anunciada", ISBN: "isbn-3",
			PublishedYear: intPtr(1981), Genre: strPtr("Cuento"), Pages: intPtr(122), AuthorID: author.ID,
		})

		s, err := agg.AuthorStats(author.ID)
		require.NoError(t, err)

		assert.Equal(t, author.ID, s.AuthorID)
		assert.Equal(t, "Gabriel Garcia Marquez", s.AuthorName)
		assert.Equal(t, 3, s.TotalBooks)

		// round((417+490+122)/3) = 343
		assert.Equal(t, 343, s.AveragePages)

		require.NotNil(t, s.FirstBook)
		assert.Equal(t, "Cien anos de soledad", s.FirstBook.Title)
		assert.Equal(t, 1967, s.FirstBook.Year)
		require.NotNil(t, s.LatestBook)
		assert.Equal(t, "El amor en los tiempos del colera", s.LatestBook.Title)
		assert.Equal(t, 1985, s.LatestBook.Year)

		require.NotNil(t, s.LongestBook)
		assert.Equal(t, "El amor en los tiempos del colera", s.LongestBook.Title)
		assert.Equal(t, 490, s.LongestBook.Pages)
		require.NotNil(t, s.ShortestBook)
		assert.Equal(t, "Cronica de una muerte anunciada", s.ShortestBook.Title)
		assert.Equal(t, 122, s.ShortestBook.Pages)

		assert.ElementsMatch(t, []string{"Novela", "Cuento"}, s.Genres)
	})

	t.Run("books without a year are excluded from year derivations", func(t *testing.T) {
		agg, authorRepo, bookRepo := setupAggregator(t)
		author := createAuthor(t, authorRepo, "Autor", "autor@example.com")

		createBook(t, bookRepo, entities.Book{
			Title: "Sin fecha", ISBN: "isbn-1", Pages: intPtr(200), AuthorID: author.ID,
		})
		createBook(t, bookRepo, entities.Book{
			Title: "Con fecha", ISBN: "isbn-2", PublishedYear: intPtr(1990), AuthorID: author.ID,
		})

		s, err := agg.AuthorStats(author.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, s.TotalBooks)
		require.NotNil(t, s.FirstBook)
		assert.Equal(t, "Con fecha", s.FirstBook.Title)
		require.NotNil(t, s.LatestBook)
		assert.Equal(t, "Con fecha", s.LatestBook.Title)
	})

	t.Run("no known years leaves first and latest nil", func(t *testing.T) {
		agg, authorRepo, bookRepo := setupAggregator(t)
		author := createAuthor(t, authorRepo, "Autor", "autor@example.com")

		createBook(t, bookRepo, entities.Book{Title: "Sin fecha", ISBN: "isbn-1", AuthorID: author.ID})

		s, err := agg.AuthorStats(author.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, s.TotalBooks)
		assert.Nil(t, s.FirstBook)
		assert.Nil(t, s.LatestBook)
		assert.Nil(t, s.LongestBook)
		assert.Nil(t, s.ShortestBook)
	})

	t.Run("ties on pages break by title ascending", func(t *testing.T) {
		agg, authorRepo, bookRepo := setupAggregator(t)
		author := createAuthor(t, authorRepo, "Autor", "autor@example.com")

		createBook(t, bookRepo, entities.Book{Title: "Zeta", ISBN: "isbn-1", Pages: intPtr(300), AuthorID: author.ID})
		createBook(t, bookRepo, entities.Book{Title: "Alfa", ISBN: "isbn-2", Pages: intPtr(300), AuthorID: author.ID})

		s, err := agg.AuthorStats(author.ID)
		require.NoError(t, err)
		require.NotNil(t, s.ShortestBook)
		assert.Equal(t, "Alfa", s.ShortestBook.Title)
		require.NotNil(t, s.LongestBook)
		assert.Equal(t, "Zeta", s.LongestBook.Title)
	})

	t.Run("genres are trimmed and deduplicated", func(t *testing.T) {
		agg, authorRepo, bookRepo := setupAggregator(t)
		author := createAuthor(t, authorRepo, "Autor", "autor@example.com")

		createBook(t, bookRepo, entities.Book{Title: "Uno", ISBN: "isbn-1", Genre: strPtr("  Novela "), AuthorID: author.ID})
		createBook(t, bookRepo, entities.Book{Title: "Dos", ISBN: "isbn-2", Genre: strPtr("Novela"), AuthorID: author.ID})
		createBook(t, bookRepo, entities.Book{Title: "Tres", ISBN: "isbn-3", Genre: strPtr("   "), AuthorID: author.ID})

		s, err := agg.AuthorStats(author.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Novela"}, s.Genres)
	})
}

func TestGlobalStats(t *testing.T) {
	t.Run("empty catalog yields zeroes and no genres", func(t *testing.T) {
		agg, _, _ := setupAggregator(t)

		s, err := agg.GlobalStats()
		require.NoError(t, err)
		assert.Equal(t, int64(0), s.TotalAuthors)
		assert.Equal(t, int64(0), s.TotalBooks)
		assert.Equal(t, 0, s.AveragePages)
		assert.Empty(t, s.Genres)
	})

	t.Run("derives totals, rounded average and distinct genres", func(t *testing.T) {
		agg, authorRepo, bookRepo := setupAggregator(t)
		gabo := createAuthor(t, authorRepo, "Gabo", "gabo@example.com")
		isabel := createAuthor(t, authorRepo, "Isabel", "isabel@example.com")

		createBook(t, bookRepo, entities.Book{
			Title: "Uno", ISBN: "isbn-1", Genre: strPtr("Novela"), Pages: intPtr(417), AuthorID: gabo.ID,
		})
		createBook(t, bookRepo, entities.Book{
			Title: "Dos", ISBN: "isbn-2", Genre: strPtr("Cuento"), Pages: intPtr(122), AuthorID: isabel.ID,
		})
		createBook(t, bookRepo, entities.Book{
			Title: "Tres", ISBN: "isbn-3", Genre: strPtr("Novela"), AuthorID: isabel.ID,
		})

		s, err := agg.GlobalStats()
		require.NoError(t, err)
		assert.Equal(t, int64(2), s.TotalAuthors)
		assert.Equal(t, int64(3), s.TotalBooks)
		// round((417+122)/2) = 270
		assert.Equal(t, 270, s.AveragePages)
		assert.Equal(t, []string{"Cuento", "Novela"}, s.Genres)
	})
}
