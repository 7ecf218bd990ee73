package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bookshelf/internal/config"
	"bookshelf/internal/db"
	apperrors "bookshelf/internal/errors"
	"bookshelf/internal/model"
	"bookshelf/internal/repository"
)

const (
	volumesAPIURL = "https://www.googleapis.com/books/v1/volumes"
	seedQuery     = "science fiction classics"

	demoUsername = "demo"
	demoEmail    = "demo@bookshelf.local"
	demoPassword = "password123"
)

// volumesResponse mirrors the catalog search payload.
type volumesResponse struct {
	Items []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title       string   `json:"title"`
			Subtitle    string   `json:"subtitle"`
			Authors     []string `json:"authors"`
			Description string   `json:"description"`
			ImageLinks  struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
			PreviewLink   string   `json:"previewLink"`
			InfoLink      string   `json:"infoLink"`
			PublishedDate string   `json:"publishedDate"`
			PageCount     int      `json:"pageCount"`
			Categories    []string `json:"categories"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Book{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	bookRepo := repository.NewBookRepository(gormDB)

	user, err := ensureDemoUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	log.Printf("Demo user ready: %s (%s)", user.Username, user.Email)

	log.Printf("Fetching volumes from: %s?q=%s", volumesAPIURL, url.QueryEscape(seedQuery))
	books, err := fetchVolumes(volumesAPIURL, seedQuery)
	if err != nil {
		log.Fatalf("Failed to fetch volumes: %v", err)
	}
	log.Printf("Fetched %d volumes from catalog", len(books))

	seeded, skipped := 0, 0
	for i := range books {
		books[i].UserID = user.ID
		if err := bookRepo.Create(ctx, &books[i]); err != nil {
			if errors.Is(err, apperrors.ErrBookAlreadyExists) {
				skipped++
				continue
			}
			log.Fatalf("Failed to seed book %q: %v", books[i].Title, err)
		}
		seeded++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New books saved: %d", seeded)
	log.Printf("  - Already in library: %d", skipped)
}

// ensureDemoUser returns the demo user, creating it on first run.
func ensureDemoUser(ctx context.Context, repo repository.UserRepository) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, demoEmail)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up demo user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	user := &model.User{
		Username:     demoUsername,
		Email:        demoEmail,
		PasswordHash: string(hashed),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// fetchVolumes queries the catalog and converts the payload into library
// entries (descriptive snapshot only; personal fields keep their defaults).
func fetchVolumes(baseURL, query string) ([]model.Book, error) {
	resp, err := http.Get(baseURL + "?q=" + url.QueryEscape(query))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var volumes volumesResponse
	if err := json.Unmarshal(body, &volumes); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	books := make([]model.Book, 0, len(volumes.Items))
	for _, item := range volumes.Items {
		if item.ID == "" || item.VolumeInfo.Title == "" {
			continue
		}
		books = append(books, model.Book{
			GoogleBooksID: item.ID,
			Title:         item.VolumeInfo.Title,
			Subtitle:      item.VolumeInfo.Subtitle,
			Authors:       item.VolumeInfo.Authors,
			Description:   item.VolumeInfo.Description,
			Thumbnail:     item.VolumeInfo.ImageLinks.Thumbnail,
			PreviewLink:   item.VolumeInfo.PreviewLink,
			InfoLink:      item.VolumeInfo.InfoLink,
			PublishedDate: item.VolumeInfo.PublishedDate,
			PageCount:     item.VolumeInfo.PageCount,
			Categories:    item.VolumeInfo.Categories,
		})
	}
	return books, nil
}
