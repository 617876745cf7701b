// Package stats derives summary statistics from the catalog. Every call
// recomputes from the current store state; nothing is cached.
package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/mrivas/biblioteca/internal/entities"
)

// AuthorStore defines the author lookups the aggregator needs.
type AuthorStore interface {
	GetAuthorByID(id uint) (*entities.Author, error)
	CountAuthors() (int64, error)
}

// BookStore defines the book queries the aggregator needs.
type BookStore interface {
	GetBooksByAuthor(authorID uint, genre string) ([]entities.Book, error)
	CountBooks() (int64, error)
	AveragePages() (float64, error)
	DistinctGenres() ([]string, error)
}

// BookByYear references a book by title and published year.
type BookByYear struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
}

// BookByPages references a book by title and page count.
type BookByPages struct {
	Title string `json:"title"`
	Pages int    `json:"pages"`
}

// AuthorStats summarizes one author's bibliography. First/latest consider
// only books with a known published year, longest/shortest only books with a
// known page count; both pairs are nil when no book qualifies.
type AuthorStats struct {
	AuthorID     uint         `json:"authorId"`
	AuthorName   string       `json:"authorName"`
	TotalBooks   int          `json:"totalBooks"`
	FirstBook    *BookByYear  `json:"firstBook"`
	LatestBook   *BookByYear  `json:"latestBook"`
	AveragePages int          `json:"averagePages"`
	Genres       []string     `json:"genres"`
	LongestBook  *BookByPages `json:"longestBook"`
	ShortestBook *BookByPages `json:"shortestBook"`
}

// GlobalStats summarizes the whole catalog.
type GlobalStats struct {
	TotalAuthors int64    `json:"totalAuthors"`
	TotalBooks   int64    `json:"totalBooks"`
	AveragePages int      `json:"averagePages"`
	Genres       []string `json:"genres"`
}

// Aggregator computes catalog statistics on demand.
type Aggregator struct {
	authors AuthorStore
	books   BookStore
}

// NewAggregator creates a new statistics aggregator.
func NewAggregator(authors AuthorStore, books BookStore) *Aggregator {
	return &Aggregator{authors: authors, books: books}
}

// AuthorStats derives the statistics for one author. A missing author id
// surfaces the store's not-found error rather than zeroed statistics.
//
// Ties on year or pages are broken by title ascending: books are ordered by
// (key, title) and first/shortest take the first entry, latest/longest the
// last.
func (a *Aggregator) AuthorStats(authorID uint) (*AuthorStats, error) {
	author, err := a.authors.GetAuthorByID(authorID)
	if err != nil {
		return nil, err
	}

	// Ordered published_year ASC, title ASC by the store.
	books, err := a.books.GetBooksByAuthor(authorID, "")
	if err != nil {
		return nil, err
	}

	s := &AuthorStats{
		AuthorID:   author.ID,
		AuthorName: author.Name,
		TotalBooks: len(books),
		Genres:     []string{},
	}

	var withYear []entities.Book
	var pagesSum, pagesCount int
	seenGenres := make(map[string]bool)
	for _, b := range books {
		if b.PublishedYear != nil {
			withYear = append(withYear, b)
		}
		if b.Pages != nil {
			pagesSum += *b.Pages
			pagesCount++
		}
		if b.Genre != nil {
			genre := strings.TrimSpace(*b.Genre)
			if genre != "" && !seenGenres[genre] {
				seenGenres[genre] = true
				s.Genres = append(s.Genres, genre)
			}
		}
	}

	if len(withYear) > 0 {
		first := withYear[0]
		last := withYear[len(withYear)-1]
		s.FirstBook = &BookByYear{Title: first.Title, Year: *first.PublishedYear}
		s.LatestBook = &BookByYear{Title: last.Title, Year: *last.PublishedYear}
	}

	if pagesCount > 0 {
		s.AveragePages = int(math.Round(float64(pagesSum) / float64(pagesCount)))
	}

	withPages := make([]entities.Book, 0, len(books))
	for _, b := range books {
		if b.Pages != nil {
			withPages = append(withPages, b)
		}
	}
	if len(withPages) > 0 {
		sort.Slice(withPages, func(i, j int) bool {
			if *withPages[i].Pages != *withPages[j].Pages {
				return *withPages[i].Pages < *withPages[j].Pages
			}
			return withPages[i].Title < withPages[j].Title
		})
		shortest := withPages[0]
		longest := withPages[len(withPages)-1]
		s.ShortestBook = &BookByPages{Title: shortest.Title, Pages: *shortest.Pages}
		s.LongestBook = &BookByPages{Title: longest.Title, Pages: *longest.Pages}
	}

	return s, nil
}

// GlobalStats derives the catalog-wide figures.
func (a *Aggregator) GlobalStats() (*GlobalStats, error) {
	totalAuthors, err := a.authors.CountAuthors()
	if err != nil {
		return nil, err
	}
	totalBooks, err := a.books.CountBooks()
	if err != nil {
		return nil, err
	}
	avgPages, err := a.books.AveragePages()
	if err != nil {
		return nil, err
	}
	rawGenres, err := a.books.DistinctGenres()
	if err != nil {
		return nil, err
	}

	genres := []string{}
	seen := make(map[string]bool)
	for _, g := range rawGenres {
		g = strings.TrimSpace(g)
		if g != "" && !seen[g] {
			seen[g] = true
			genres = append(genres, g)
		}
	}

	return &GlobalStats{
		TotalAuthors: totalAuthors,
		TotalBooks:   totalBooks,
		AveragePages: int(math.Round(avgPages)),
		Genres:       genres,
	}, nil
}
