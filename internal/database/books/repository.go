// Package books provides database operations for book management, including
// the catalog search query with filtering, sorting and pagination.
//
// This package implements the BookStore interface defined in
// internal/http/books.go.
//
// # Interface Implementation
//
//	var _ http.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	result, err := repo.Search(books.SearchParams{Search: "amor"})
package books

import (
	"math"

	"gorm.io/gorm"

	"github.com/mrivas/biblioteca/internal/database"
	"github.com/mrivas/biblioteca/internal/entities"
)

const (
	// DefaultLimit is the page size used when the caller supplies none.
	DefaultLimit = 10
	// MaxLimit caps the page size regardless of what the caller asks for.
	MaxLimit = 50
)

// SearchParams carries the all-optional catalog search parameters.
// Zero values mean "no constraint"; out-of-range numeric values are clamped,
// never rejected.
type SearchParams struct {
	Search     string // case-insensitive substring match on the title
	Genre      string // exact genre match
	AuthorName string // case-insensitive substring match on the author's name
	AuthorID   uint   // exact author match
	Page       int    // 1-based, clamped to >= 1
	Limit      int    // clamped to [1, MaxLimit], default DefaultLimit
	SortBy     string // title | publishedYear | createdAt (default createdAt)
	Order      string // asc | desc (default desc)
}

// SearchResult is one page of matching books plus the pagination figures
// derived from the total match count.
type SearchResult struct {
	Books      []entities.Book
	Total      int64
	Page       int
	Limit      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// sortColumns whitelists the sortable fields. Columns are qualified because
// the author-name filter joins the authors table.
var sortColumns = map[string]string{
	"title":         "books.title",
	"publishedYear": "books.published_year",
	"createdAt":     "books.created_at",
}

func (p SearchParams) normalized() SearchParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	} else if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if _, ok := sortColumns[p.SortBy]; !ok {
		p.SortBy = "createdAt"
	}
	if p.Order != "asc" && p.Order != "desc" {
		p.Order = "desc"
	}
	return p
}

// apply attaches the combined filter predicate to a query. All supplied
// conditions are ANDed; absent ones impose no constraint.
func (p SearchParams) apply(q *gorm.DB) *gorm.DB {
	if p.Search != "" {
		q = q.Where("LOWER(books.title) LIKE LOWER(?)", "%"+p.Search+"%")
	}
	if p.Genre != "" {
		q = q.Where("books.genre = ?", p.Genre)
	}
	if p.AuthorName != "" {
		q = q.Joins("JOIN authors ON authors.id = books.author_id").
			Where("LOWER(authors.name) LIKE LOWER(?)", "%"+p.AuthorName+"%")
	}
	if p.AuthorID > 0 {
		q = q.Where("books.author_id = ?", p.AuthorID)
	}
	return q
}

// orderClause builds the ORDER BY for the requested sort. Ties are broken by
// title ascending so that pagination is stable across requests.
func (p SearchParams) orderClause() string {
	clause := sortColumns[p.SortBy] + " " + p.Order
	if p.SortBy != "title" {
		clause += ", books.title ASC"
	}
	return clause
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Search runs the catalog query: one count over the full predicate, then one
// page fetch with the same predicate, ordering and offset/limit. A page past
// the end returns an empty slice with the correct totals.
func (r *Repository) Search(params SearchParams) (*SearchResult, error) {
	p := params.normalized()

	var total int64
	if err := p.apply(r.db.Model(&entities.Book{})).Count(&total).Error; err != nil {
		return nil, err
	}

	var books []entities.Book
	err := p.apply(r.db.Model(&entities.Book{})).
		Preload("Author").
		Order(p.orderClause()).
		Offset((p.Page - 1) * p.Limit).
		Limit(p.Limit).
		Find(&books).Error
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(p.Limit)))
	if totalPages < 1 {
		totalPages = 1
	}

	return &SearchResult{
		Books:      books,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}, nil
}

// CreateBook inserts a new book after verifying the referenced author exists.
// A missing author yields database.ErrNotFound, a duplicate ISBN
// database.ErrConflict.
func (r *Repository) CreateBook(book *entities.Book) (*entities.Book, error) {
	if err := r.authorExists(book.AuthorID); err != nil {
		return nil, err
	}
	if err := r.db.Create(book).Error; err != nil {
		return nil, database.Translate(err)
	}
	return r.GetBookByID(book.ID)
}

// GetBookByID retrieves a book with its author.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").First(&book, id).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &book, nil
}

// ListBooks retrieves books with optional exact genre and author filters,
// newest publications first.
func (r *Repository) ListBooks(genre string, authorID uint) ([]entities.Book, error) {
	q := r.db.Preload("Author")
	if genre != "" {
		q = q.Where("genre = ?", genre)
	}
	if authorID > 0 {
		q = q.Where("author_id = ?", authorID)
	}
	var books []entities.Book
	err := q.Order("published_year DESC, title ASC").Find(&books).Error
	return books, err
}

// GetBooksByAuthor retrieves all books of one author with their author
// loaded, oldest publications first, optionally narrowed to an exact genre.
// Books without a published year sort before dated ones.
func (r *Repository) GetBooksByAuthor(authorID uint, genre string) ([]entities.Book, error) {
	q := r.db.Preload("Author").Where("author_id = ?", authorID)
	if genre != "" {
		q = q.Where("genre = ?", genre)
	}
	var books []entities.Book
	err := q.Order("published_year ASC, title ASC").Find(&books).Error
	return books, err
}

// UpdateBook applies a partial update and returns the fresh record. When the
// update moves the book to another author, that author must exist.
func (r *Repository) UpdateBook(id uint, updates map[string]any) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, database.Translate(err)
	}
	if authorID, ok := updates["author_id"].(uint); ok {
		if err := r.authorExists(authorID); err != nil {
			return nil, err
		}
	}
	if len(updates) > 0 {
		if err := r.db.Model(&book).Updates(updates).Error; err != nil {
			return nil, database.Translate(err)
		}
	}
	return r.GetBookByID(id)
}

// DeleteBook removes a book. A missing id yields database.ErrNotFound.
func (r *Repository) DeleteBook(id uint) error {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return database.Translate(err)
	}
	return r.db.Delete(&entities.Book{}, id).Error
}

// CountBooks returns the total number of books.
func (r *Repository) CountBooks() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}

// AveragePages returns the mean page count over books with a known page
// count, 0 when none is known.
func (r *Repository) AveragePages() (float64, error) {
	var avg float64
	err := r.db.Model(&entities.Book{}).
		Select("COALESCE(AVG(pages), 0)").
		Scan(&avg).Error
	return avg, err
}

// DistinctGenres returns the distinct non-empty genre values in the catalog.
func (r *Repository) DistinctGenres() ([]string, error) {
	var genres []string
	err := r.db.Model(&entities.Book{}).
		Where("genre IS NOT NULL AND TRIM(genre) <> ''").
		Distinct().
		Order("genre ASC").
		Pluck("genre", &genres).Error
	return genres, err
}

func (r *Repository) authorExists(authorID uint) error {
	var author entities.Author
	err := r.db.Select("id").First(&author, authorID).Error
	return database.Translate(err)
}
