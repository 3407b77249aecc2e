// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"agora/internal/auth"
	"agora/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumPosts    int
	ShouldClean bool
}

// DemoTOTPSecret is the shared secret configured for the seeded admin user,
// so a standard authenticator app can be pointed at it during development.
const DemoTOTPSecret = "LXBSMDTMSP2I5XFXIYRGFVWSFI"

type demoUser struct {
	email      string
	name       string
	password   string
	totpSecret string
}

var demoUsers = []demoUser{
	{email: "admin@agora.local", name: "Ada Admin", password: "password", totpSecret: DemoTOTPSecret},
	{email: "moderator@agora.local", name: "Milo Moderator", password: "password", totpSecret: DemoTOTPSecret},
	{email: "alice@agora.local", name: "Alice", password: "password"},
	{email: "bob@agora.local", name: "Bob", password: "password"},
	{email: "carol@agora.local", name: "Carol", password: "password"},
}

// Run populates the database with demo users, posts, comments and interest
// marks. It is idempotent per run only when ShouldClean is set.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumPosts <= 0 {
		opts.NumPosts = 10
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return err
		}
	}

	users, err := seedUsers(db)
	if err != nil {
		return err
	}

	posts, err := seedPosts(db, users, opts.NumPosts)
	if err != nil {
		return err
	}

	if err := seedComments(db, users, posts); err != nil {
		return err
	}

	log.Printf("Seeded %d users, %d posts", len(users), len(posts))
	return nil
}

func clean(db *gorm.DB) error {
	for _, table := range []string{"interest_marks", "comments", "posts", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clean table %s: %w", table, err)
		}
	}
	return nil
}

func seedUsers(db *gorm.DB) ([]models.User, error) {
	users := make([]models.User, 0, len(demoUsers))
	for _, d := range demoUsers {
		salt, err := auth.GenerateSalt()
		if err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(d.password, salt)
		if err != nil {
			return nil, err
		}

		user := models.User{
			Email:        d.email,
			Name:         d.name,
			PasswordHash: hash,
			PasswordSalt: salt,
		}
		if d.totpSecret != "" {
			secret := d.totpSecret
			user.TOTPSecret = &secret
		}

		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", d.email, err)
		}
		users = append(users, user)
	}
	return users, nil
}

func seedPosts(db *gorm.DB, users []models.User, numPosts int) ([]models.Post, error) {
	posts := make([]models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[rand.Intn(len(users))]
		post := models.Post{
			// The sentence index keeps titles unique across the run.
			Title:     fmt.Sprintf("%s #%d", gofakeit.HipsterSentence(4), i+1),
			Text:      gofakeit.Paragraph(2, 4, 12, " "),
			UserID:    author.ID,
			CreatedAt: time.Now().UTC().Add(-time.Duration(rand.Intn(72)) * time.Hour),
		}
		// A few capped posts so the comment limit is exercisable from seed data.
		if i%4 == 0 {
			capped := 3
			post.MaxComments = &capped
		}
		if err := db.Create(&post).Error; err != nil {
			return nil, fmt.Errorf("failed to seed post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func seedComments(db *gorm.DB, users []models.User, posts []models.Post) error {
	for _, post := range posts {
		n := rand.Intn(4)
		if post.MaxComments != nil && n > *post.MaxComments {
			n = *post.MaxComments
		}
		for i := 0; i < n; i++ {
			comment := models.Comment{
				Text:   gofakeit.HipsterSentence(8),
				PostID: post.ID,
			}
			// Roughly a third of comments are anonymous.
			if rand.Intn(3) != 0 {
				author := users[rand.Intn(len(users))]
				comment.UserID = &author.ID
			}
			if err := db.Create(&comment).Error; err != nil {
				return fmt.Errorf("failed to seed comment: %w", err)
			}

			// Scatter some interest marks over authored and anonymous comments.
			if rand.Intn(2) == 0 {
				marker := users[rand.Intn(len(users))]
				mark := models.InterestMark{UserID: marker.ID, CommentID: comment.ID}
				if err := db.Create(&mark).Error; err != nil {
					return fmt.Errorf("failed to seed interest mark: %w", err)
				}
			}
		}
	}
	return nil
}
