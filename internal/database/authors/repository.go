// Package authors provides database operations for author management.
//
// This package implements the AuthorStore interface defined in
// internal/http/authors.go.
//
// # Interface Implementation
//
//	var _ http.AuthorStore = (*Repository)(nil)
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	author, err := repo.GetAuthorByID(123)
package authors

import (
	"gorm.io/gorm"

	"github.com/mrivas/biblioteca/internal/database"
	"github.com/mrivas/biblioteca/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateAuthor inserts a new author. A duplicate email yields database.ErrConflict.
func (r *Repository) CreateAuthor(author *entities.Author) error {
	if err := r.db.Create(author).Error; err != nil {
		return database.Translate(err)
	}
	return nil
}

// GetAuthorByID retrieves an author with their books, newest publications first.
func (r *Repository) GetAuthorByID(id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.Preload("Books", func(db *gorm.DB) *gorm.DB {
		return db.Order("published_year DESC, title ASC")
	}).First(&author, id).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return &author, nil
}

// GetAllAuthors retrieves all authors ordered by name, with their books.
func (r *Repository) GetAllAuthors() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Preload("Books", func(db *gorm.DB) *gorm.DB {
		return db.Order("published_year DESC, title ASC")
	}).Order("name ASC").Find(&authors).Error
	return authors, err
}

// UpdateAuthor applies a partial update and returns the fresh record.
// Keys in updates are column names; absent columns are left untouched.
func (r *Repository) UpdateAuthor(id uint, updates map[string]any) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, database.Translate(err)
	}
	if len(updates) > 0 {
		if err := r.db.Model(&author).Updates(updates).Error; err != nil {
			return nil, database.Translate(err)
		}
	}
	return r.GetAuthorByID(id)
}

// DeleteAuthor removes an author. Deletion is restricted: an author that
// still owns books yields database.ErrConflict.
func (r *Repository) DeleteAuthor(id uint) error {
	var author entities.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return database.Translate(err)
	}

	var bookCount int64
	if err := r.db.Model(&entities.Book{}).Where("author_id = ?", id).Count(&bookCount).Error; err != nil {
		return err
	}
	if bookCount > 0 {
		return database.ErrConflict
	}

	return r.db.Delete(&entities.Author{}, id).Error
}

// CountAuthors returns the total number of authors.
func (r *Repository) CountAuthors() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Author{}).Count(&count).Error
	return count, err
}
