package http

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/mrivas/biblioteca/internal/database"
	"github.com/mrivas/biblioteca/internal/entities"
)

// AuthorStore defines database operations for author management.
type AuthorStore interface {
	CreateAuthor(author *entities.Author) error
	GetAuthorByID(id uint) (*entities.Author, error)
	GetAllAuthors() ([]entities.Author, error)
	UpdateAuthor(id uint, updates map[string]any) (*entities.Author, error)
	DeleteAuthor(id uint) error
}

// emailPattern is deliberately loose: one @, no whitespace, a dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type authorResponse struct {
	*entities.Author
	BooksCount int `json:"booksCount"`
}

func toAuthorResponse(author *entities.Author) authorResponse {
	if author.Books == nil {
		author.Books = []entities.Book{}
	}
	return authorResponse{Author: author, BooksCount: len(author.Books)}
}

type AuthorsController struct {
	store AuthorStore
}

func NewAuthorsController(store AuthorStore) *AuthorsController {
	return &AuthorsController{store: store}
}

// GetAllAuthors returns every author ordered by name, with their books.
// GET /api/authors
func (ac *AuthorsController) GetAllAuthors(c *gin.Context) {
	authors, err := ac.store.GetAllAuthors()
	if err != nil {
		respondInternalError(c, err, "get all authors")
		return
	}

	response := make([]authorResponse, 0, len(authors))
	for i := range authors {
		response = append(response, toAuthorResponse(&authors[i]))
	}
	c.JSON(http.StatusOK, response)
}

// GetAuthorByID returns one author with their books.
// GET /api/authors/:id
func (ac *AuthorsController) GetAuthorByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.GetAuthorByID(id)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "author")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get author")
		return
	}
	c.JSON(http.StatusOK, toAuthorResponse(author))
}

type createAuthorRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Bio         *string `json:"bio"`
	Nationality *string `json:"nationality"`
	BirthYear   FlexInt `json:"birthYear"`
}

// CreateAuthor creates a new author.
// POST /api/authors
func (ac *AuthorsController) CreateAuthor(c *gin.Context) {
	var req createAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" {
		respondBadRequest(c, "name and email are required")
		return
	}
	if !emailPattern.MatchString(req.Email) {
		respondBadRequest(c, "email is not valid")
		return
	}

	author := &entities.Author{
		Name:        req.Name,
		Email:       req.Email,
		Bio:         req.Bio,
		Nationality: req.Nationality,
		BirthYear:   req.BirthYear.Value,
	}
	if err := ac.store.CreateAuthor(author); err != nil {
		if errors.Is(err, database.ErrConflict) {
			respondConflict(c, "email is already in use")
			return
		}
		respondInternalError(c, err, "create author")
		return
	}

	respondCreated(c, toAuthorResponse(author))
}

type updateAuthorRequest struct {
	Name        *string  `json:"name"`
	Email       *string  `json:"email"`
	Bio         *string  `json:"bio"`
	Nationality *string  `json:"nationality"`
	BirthYear   *FlexInt `json:"birthYear"`
}

// UpdateAuthor applies a partial update; only supplied fields change.
// PUT /api/authors/:id
func (ac *AuthorsController) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		if !emailPattern.MatchString(*req.Email) {
			respondBadRequest(c, "email is not valid")
			return
		}
		updates["email"] = *req.Email
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Nationality != nil {
		updates["nationality"] = *req.Nationality
	}
	if req.BirthYear != nil && req.BirthYear.Value != nil {
		updates["birth_year"] = *req.BirthYear.Value
	}

	author, err := ac.store.UpdateAuthor(id, updates)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "author")
		return
	}
	if errors.Is(err, database.ErrConflict) {
		respondConflict(c, "email is already in use")
		return
	}
	if err != nil {
		respondInternalError(c, err, "update author")
		return
	}
	c.JSON(http.StatusOK, toAuthorResponse(author))
}

// DeleteAuthor removes an author. Authors that still own books are not
// deleted; the request is rejected with a conflict.
// DELETE /api/authors/:id
func (ac *AuthorsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := ac.store.DeleteAuthor(id)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "author")
		return
	}
	if errors.Is(err, database.ErrConflict) {
		respondConflict(c, "author still has books")
		return
	}
	if err != nil {
		respondInternalError(c, err, "delete author")
		return
	}
	respondSuccess(c, "author deleted")
}
