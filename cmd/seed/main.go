// Command seed populates a catalog database with a sample set of Latin
// American authors and their books.
// Usage: go run cmd/seed/main.go [-db path/to/biblioteca.db]
package main

import (
	"flag"
	"log"

	"github.com/mrivas/biblioteca/internal/config"
	"github.com/mrivas/biblioteca/internal/database"
	"github.com/mrivas/biblioteca/internal/database/authors"
	"github.com/mrivas/biblioteca/internal/database/books"
	"github.com/mrivas/biblioteca/internal/entities"
)

type seedBook struct {
	title string
	year  int
	genre string
	pages int
	isbn  string
}

type seedAuthor struct {
	name        string
	email       string
	bio         string
	nationality string
	birthYear   int
	books       []seedBook
}

var catalog = []seedAuthor{
	{
		name:        "Gabriel García Márquez",
		email:       "gabo@example.com",
		bio:         "Novelista y periodista colombiano, Nobel de Literatura 1982.",
		nationality: "Colombia",
		birthYear:   1927,
		books: []seedBook{
			{"Cien años de soledad", 1967, "Novela", 417, "978-84-376-0494-7"},
			{"El amor en los tiempos del cólera", 1985, "Novela", 490, "978-0-307-38984-5"},
			{"Crónica de una muerte anunciada", 1981, "Novela", 122, "978-1-4000-9656-9"},
			{"El coronel no tiene quien le escriba", 1961, "Novela", 106, "978-gabo-001"},
			{"Doce cuentos peregrinos", 1992, "Cuento", 188, "978-gabo-004"},
		},
	},
	{
		name:        "Isabel Allende",
		email:       "isabel@example.com",
		bio:         "Escritora chilena, referente del realismo mágico.",
		nationality: "Chile",
		birthYear:   1942,
		books: []seedBook{
			{"La casa de los espíritus", 1982, "Novela", 368, "978-84-663-1600-1"},
			{"De amor y de sombra", 1984, "Novela", 384, "978-84-663-1601-8"},
		},
	},
	{
		name:        "Jorge Luis Borges",
		email:       "borges@example.com",
		bio:         "Escritor argentino, maestro del cuento y la metafísica literaria.",
		nationality: "Argentina",
		birthYear:   1899,
		books: []seedBook{
			{"Ficciones", 1944, "Cuento", 224, "978-0-14-118384-8"},
			{"El Aleph", 1949, "Cuento", 176, "978-0-14-243788-9"},
		},
	},
	{
		name:        "Mario Vargas Llosa",
		email:       "vargasllosa@example.com",
		bio:         "Escritor peruano, Nobel de Literatura 2010.",
		nationality: "Perú",
		birthYear:   1936,
		books: []seedBook{
			{"La ciudad y los perros", 1963, "Novela", 472, "978-84-8346-279-1"},
			{"Conversación en La Catedral", 1969, "Novela", 632, "978-84-663-0569-2"},
		},
	},
	{
		name:        "Laura Esquivel",
		email:       "laura@example.com",
		bio:         "Escritora mexicana, conocida por 'Como agua para chocolate'.",
		nationality: "México",
		birthYear:   1950,
		books: []seedBook{
			{"Como agua para chocolate", 1989, "Novela", 256, "978-0-385-42017-5"},
		},
	},
}

func main() {
	dbPath := flag.String("db", config.DefaultDatabasePath, "path to the catalog database file")
	flag.Parse()

	log.Printf("Seeding catalog database at %s...", *dbPath)

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	authorRepo := authors.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)

	for _, sa := range catalog {
		author := &entities.Author{
			Name:        sa.name,
			Email:       sa.email,
			Bio:         strPtr(sa.bio),
			Nationality: strPtr(sa.nationality),
			BirthYear:   intPtr(sa.birthYear),
		}
		if err := authorRepo.CreateAuthor(author); err != nil {
			log.Printf("Skipping author %s: %v", sa.name, err)
			continue
		}
		log.Printf("Created author: %s", sa.name)

		for _, sb := range sa.books {
			book := &entities.Book{
				Title:         sb.title,
				ISBN:          sb.isbn,
				PublishedYear: intPtr(sb.year),
				Genre:         strPtr(sb.genre),
				Pages:         intPtr(sb.pages),
				AuthorID:      author.ID,
			}
			if _, err := bookRepo.CreateBook(book); err != nil {
				log.Printf("Skipping book %s: %v", sb.title, err)
				continue
			}
			log.Printf("  Created book: %s (%d)", sb.title, sb.year)
		}
	}

	log.Println("Catalog seeded successfully!")
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
