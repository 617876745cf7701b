package entities

import (
	"time"
)

// Author is a catalog author. Optional fields are pointers so that a missing
// value is stored as NULL rather than a zero sentinel.
type Author struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:256;not null" json:"name"`
	Email       string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Bio         *string   `gorm:"type:text" json:"bio"`
	Nationality *string   `gorm:"size:100" json:"nationality"`
	BirthYear   *int      `json:"birthYear"`
	Books       []Book    `gorm:"foreignKey:AuthorID" json:"books"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Book belongs to exactly one Author. ISBN is unique across the catalog.
type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"index;size:512;not null" json:"title"`
	Description   *string   `gorm:"type:text" json:"description"`
	ISBN          string    `gorm:"uniqueIndex;size:32;not null" json:"isbn"`
	PublishedYear *int      `gorm:"index" json:"publishedYear"`
	Genre         *string   `gorm:"index;size:100" json:"genre"`
	Pages         *int      `json:"pages"`
	AuthorID      uint      `gorm:"index;not null" json:"authorId"`
	Author        Author    `gorm:"foreignKey:AuthorID" json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
