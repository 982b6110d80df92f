// Package seed populates the database with demo data for local development.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"crosspost/internal/auth"
	"crosspost/internal/models"
	"crosspost/internal/server"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded user gets.
const DefaultPassword = "password123"

var sampleContents = []string{
	"Just shipped a new feature — scheduling posts across every platform from one place 🚀",
	"Consistency beats virality. Post every day and the algorithm takes care of itself.",
	"Behind the scenes of our latest product launch. Thread below 👇",
	"Hot take: most social media automation tools overcomplicate things.",
	"Weekend project: automated our entire content calendar. Happy to share the setup.",
	"Why we moved our publishing pipeline to a single aggregator API.",
	"New blog post is live! Link in bio.",
	"Quick poll: which platform drives the most engagement for you?",
	"Throwback to our first thousand followers. Grateful for this community.",
	"Scheduling next week's content in one sitting. Batch work wins again.",
}

// Seeder creates demo users, connected accounts, and posts.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a Seeder backed by the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll removes all seeded data. Posts and social accounts go first to
// satisfy foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []interface{}{&models.Post{}, &models.SocialAccount{}, &models.User{}} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear table: %w", err)
		}
	}
	return nil
}

// SeedUsers creates n demo users, all sharing DefaultPassword.
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	log.Printf("Creating %d users...", n)

	// One hash for all seeded users; hashing is the slow part.
	hashed, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    gofakeit.Email(),
			Password: hashed,
			IsActive: true,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", user.Username, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedSocialAccounts connects each user to a few random platforms.
func (s *Seeder) SeedSocialAccounts(users []models.User) ([]models.SocialAccount, error) {
	log.Println("Connecting social accounts...")

	var accounts []models.SocialAccount
	for _, user := range users {
		platforms := rand.Perm(len(server.SupportedPlatforms))
		count := 1 + rand.Intn(3)
		for _, idx := range platforms[:count] {
			account := models.SocialAccount{
				UserID:   user.ID,
				Platform: server.SupportedPlatforms[idx],
				APIKey:   uuid.NewString(),
				Active:   true,
			}
			if err := s.db.Create(&account).Error; err != nil {
				return nil, fmt.Errorf("failed to create social account: %w", err)
			}
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

// SeedPosts creates n posts spread across the given users. Roughly one post
// in five is scheduled in the future; the rest are published.
func (s *Seeder) SeedPosts(users []models.User, n int) error {
	log.Printf("Creating %d posts...", n)

	for i := 0; i < n; i++ {
		user := users[rand.Intn(len(users))]

		var accounts []models.SocialAccount
		if err := s.db.Where("user_id = ?", user.ID).Find(&accounts).Error; err != nil {
			return err
		}
		if len(accounts) == 0 {
			continue
		}

		platforms := make([]string, 0, len(accounts))
		for _, a := range accounts {
			platforms = append(platforms, a.Platform)
		}

		post := models.Post{
			UserID:     user.ID,
			Content:    sampleContents[rand.Intn(len(sampleContents))],
			Platforms:  platforms,
			ExternalID: uuid.NewString(),
			Status:     models.PostStatusPublished,
			CreatedAt:  gofakeit.DateRange(time.Now().AddDate(0, -3, 0), time.Now()),
		}
		if rand.Intn(5) == 0 {
			future := time.Now().Add(time.Duration(1+rand.Intn(14*24)) * time.Hour)
			post.ScheduleDate = &future
			post.Status = models.PostStatusScheduled
		}
		if err := s.db.Create(&post).Error; err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
	}
	return nil
}
