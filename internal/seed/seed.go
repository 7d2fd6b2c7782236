// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"launchpad/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumProjects int
	ShouldClean bool
	// FixturePath points at an optional YAML file of curated launches that
	// are inserted alongside the generated ones.
	FixturePath string
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d projects...", opts.NumUsers, opts.NumProjects)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	projects, err := createProjects(db, users, opts.NumProjects)
	if err != nil {
		return fmt.Errorf("failed to create projects: %w", err)
	}
	log.Printf("%d projects created", len(projects))

	if opts.FixturePath != "" {
		curated, fixtureErr := loadFixtureProjects(db, users, opts.FixturePath)
		if fixtureErr != nil {
			return fmt.Errorf("failed to load fixture projects: %w", fixtureErr)
		}
		projects = append(projects, curated...)
		log.Printf("%d curated projects loaded", len(curated))
	}

	likes, err := createLikes(db, users, projects)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("%d likes created", likes)

	notifs, err := createNotifications(db, projects)
	if err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}
	log.Printf("%d notifications created", notifs)

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE notifications, likes, projects, users CASCADE").Error
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		u := NewUser()
		if err := db.Create(&u).Error; err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func createProjects(db *gorm.DB, users []models.User, count int) ([]models.Project, error) {
	if len(users) == 0 {
		return nil, nil
	}
	projects := make([]models.Project, 0, count)
	for i := 0; i < count; i++ {
		owner := users[rand.Intn(len(users))]
		p := NewProject(owner.ID)
		// Spread submissions over the last two weeks so the trending and
		// top voted orderings diverge.
		p.CreatedAt = time.Now().Add(-time.Duration(rand.Intn(14*24)) * time.Hour)
		if err := db.Create(&p).Error; err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func createLikes(db *gorm.DB, users []models.User, projects []models.Project) (int, error) {
	created := 0
	for _, p := range projects {
		likers := rand.Intn(len(users) + 1)
		for i := 0; i < likers; i++ {
			u := users[rand.Intn(len(users))]
			if u.ID == p.UserID {
				continue
			}
			like := models.Like{UserID: u.ID, ProjectID: p.ID}
			err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "project_id"}},
				DoNothing: true,
			}).Create(&like).Error
			if err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func createNotifications(db *gorm.DB, projects []models.Project) (int, error) {
	created := 0
	for _, p := range projects {
		var likes []models.Like
		if err := db.Where("project_id = ?", p.ID).Limit(5).Find(&likes).Error; err != nil {
			return created, err
		}
		for _, like := range likes {
			n := models.Notification{
				Type:      models.NotificationLike,
				UserID:    p.UserID,
				ProjectID: p.ID,
				ActorID:   like.UserID,
				Read:      rand.Intn(2) == 0,
			}
			if err := db.Create(&n).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}
