package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrivas/biblioteca/internal/database"
)

// RouterConfig carries every dependency the router needs, so that tests can
// wire in whatever stores they want.
type RouterConfig struct {
	Database    *database.Database
	AuthorStore AuthorStore
	BookStore   BookStore
	Stats       StatsProvider
	Version     string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	authorsController := NewAuthorsController(cfg.AuthorStore)
	booksController := NewBooksController(cfg.BookStore, cfg.AuthorStore)
	statsController := NewStatsController(cfg.Stats)

	api := router.Group("/api")

	api.GET("/health", health.Status)

	api.GET("/authors", authorsController.GetAllAuthors)
	api.POST("/authors", authorsController.CreateAuthor)
	api.GET("/authors/:id", authorsController.GetAuthorByID)
	api.PUT("/authors/:id", authorsController.UpdateAuthor)
	api.DELETE("/authors/:id", authorsController.DeleteAuthor)
	api.GET("/authors/:id/books", booksController.GetAuthorBooks)
	api.GET("/authors/:id/stats", statsController.AuthorStats)

	api.GET("/books", booksController.GetAllBooks)
	api.POST("/books", booksController.CreateBook)
	api.GET("/books/search", booksController.SearchBooks)
	api.GET("/books/:id", booksController.GetBookByID)
	api.PUT("/books/:id", booksController.UpdateBook)
	api.DELETE("/books/:id", booksController.DeleteBook)

	api.GET("/stats", statsController.GlobalStats)

	return router
}
