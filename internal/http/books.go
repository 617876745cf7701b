package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrivas/biblioteca/internal/database"
	"github.com/mrivas/biblioteca/internal/database/books"
	"github.com/mrivas/biblioteca/internal/entities"
)

// BookStore defines database operations for book management and search.
type BookStore interface {
	Search(params books.SearchParams) (*books.SearchResult, error)
	CreateBook(book *entities.Book) (*entities.Book, error)
	GetBookByID(id uint) (*entities.Book, error)
	ListBooks(genre string, authorID uint) ([]entities.Book, error)
	GetBooksByAuthor(authorID uint, genre string) ([]entities.Book, error)
	UpdateBook(id uint, updates map[string]any) (*entities.Book, error)
	DeleteBook(id uint) error
}

// AuthorFinder is the author lookup the books controller needs for
// reference checks and the per-author book listing.
type AuthorFinder interface {
	GetAuthorByID(id uint) (*entities.Author, error)
}

// authorSummary is the projection of an author embedded in book responses.
type authorSummary struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Nationality *string `json:"nationality,omitempty"`
}

type bookResponse struct {
	*entities.Book
	Author authorSummary `json:"author"`
}

func toBookResponse(book *entities.Book) bookResponse {
	return bookResponse{
		Book: book,
		Author: authorSummary{
			ID:          book.Author.ID,
			Name:        book.Author.Name,
			Nationality: book.Author.Nationality,
		},
	}
}

func toBookResponses(list []entities.Book) []bookResponse {
	responses := make([]bookResponse, 0, len(list))
	for i := range list {
		responses = append(responses, toBookResponse(&list[i]))
	}
	return responses
}

// paginationMeta mirrors the search result figures in the response body.
type paginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

type searchResponse struct {
	Data       []bookResponse `json:"data"`
	Pagination paginationMeta `json:"pagination"`
}

type BooksController struct {
	store   BookStore
	authors AuthorFinder
}

func NewBooksController(store BookStore, authors AuthorFinder) *BooksController {
	return &BooksController{store: store, authors: authors}
}

// GetAllBooks returns books with optional exact genre/authorId filters.
// GET /api/books
func (bc *BooksController) GetAllBooks(c *gin.Context) {
	var authorID uint
	if v := queryIntDefault(c, "authorId", 0); v > 0 {
		authorID = uint(v)
	}

	list, err := bc.store.ListBooks(strings.TrimSpace(c.Query("genre")), authorID)
	if err != nil {
		respondInternalError(c, err, "get all books")
		return
	}
	c.JSON(http.StatusOK, toBookResponses(list))
}

// SearchBooks runs the catalog search. All parameters are optional;
// malformed numerics fall back to defaults and out-of-range page/limit
// values are clamped.
// GET /api/books/search
func (bc *BooksController) SearchBooks(c *gin.Context) {
	params := books.SearchParams{
		Search:     strings.TrimSpace(c.Query("search")),
		Genre:      strings.TrimSpace(c.Query("genre")),
		AuthorName: strings.TrimSpace(c.Query("authorName")),
		Page:       queryIntDefault(c, "page", 1),
		Limit:      queryIntDefault(c, "limit", books.DefaultLimit),
		SortBy:     c.Query("sortBy"),
		Order:      c.Query("order"),
	}
	if v := queryIntDefault(c, "authorId", 0); v > 0 {
		params.AuthorID = uint(v)
	}

	result, err := bc.store.Search(params)
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}

	c.JSON(http.StatusOK, searchResponse{
		Data: toBookResponses(result.Books),
		Pagination: paginationMeta{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
			HasNext:    result.HasNext,
			HasPrev:    result.HasPrev,
		},
	})
}

// GetBookByID returns one book with its author.
// GET /api/books/:id
func (bc *BooksController) GetBookByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBookByID(id)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, toBookResponse(book))
}

// GetAuthorBooks returns all books of one author, oldest first, optionally
// filtered by exact genre.
// GET /api/authors/:id/books
func (bc *BooksController) GetAuthorBooks(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := bc.authors.GetAuthorByID(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "author")
			return
		}
		respondInternalError(c, err, "get author books")
		return
	}

	list, err := bc.store.GetBooksByAuthor(id, strings.TrimSpace(c.Query("genre")))
	if err != nil {
		respondInternalError(c, err, "get author books")
		return
	}
	c.JSON(http.StatusOK, toBookResponses(list))
}

type createBookRequest struct {
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	ISBN          string  `json:"isbn"`
	PublishedYear FlexInt `json:"publishedYear"`
	Genre         *string `json:"genre"`
	Pages         FlexInt `json:"pages"`
	AuthorID      uint    `json:"authorId"`
}

// CreateBook creates a new book. The referenced author must exist.
// POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Title == "" || req.ISBN == "" || req.AuthorID == 0 {
		respondBadRequest(c, "title, isbn and authorId are required")
		return
	}

	book := &entities.Book{
		Title:         req.Title,
		Description:   req.Description,
		ISBN:          req.ISBN,
		PublishedYear: req.PublishedYear.Value,
		Genre:         req.Genre,
		Pages:         req.Pages.Value,
		AuthorID:      req.AuthorID,
	}
	created, err := bc.store.CreateBook(book)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "author")
		return
	}
	if errors.Is(err, database.ErrConflict) {
		respondConflict(c, "isbn is already registered")
		return
	}
	if err != nil {
		respondInternalError(c, err, "create book")
		return
	}

	respondCreated(c, toBookResponse(created))
}

type updateBookRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	ISBN          *string  `json:"isbn"`
	PublishedYear *FlexInt `json:"publishedYear"`
	Genre         *string  `json:"genre"`
	Pages         *FlexInt `json:"pages"`
	AuthorID      *uint    `json:"authorId"`
}

// UpdateBook applies a partial update; only supplied fields change. When
// authorId is supplied it must reference an existing author.
// PUT /api/books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if req.AuthorID != nil {
		if _, err := bc.authors.GetAuthorByID(*req.AuthorID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				respondNotFound(c, "author")
				return
			}
			respondInternalError(c, err, "update book")
			return
		}
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ISBN != nil {
		updates["isbn"] = *req.ISBN
	}
	if req.PublishedYear != nil && req.PublishedYear.Value != nil {
		updates["published_year"] = *req.PublishedYear.Value
	}
	if req.Genre != nil {
		updates["genre"] = *req.Genre
	}
	if req.Pages != nil && req.Pages.Value != nil {
		updates["pages"] = *req.Pages.Value
	}
	if req.AuthorID != nil {
		updates["author_id"] = *req.AuthorID
	}

	book, err := bc.store.UpdateBook(id, updates)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "book")
		return
	}
	if errors.Is(err, database.ErrConflict) {
		respondConflict(c, "isbn is already registered")
		return
	}
	if err != nil {
		respondInternalError(c, err, "update book")
		return
	}
	c.JSON(http.StatusOK, toBookResponse(book))
}

// DeleteBook removes a book.
// DELETE /api/books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := bc.store.DeleteBook(id)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "delete book")
		return
	}
	respondSuccess(c, "book deleted")
}
