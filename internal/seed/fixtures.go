package seed

import (
	"math/rand"
	"os"

	"launchpad/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// fixtureProject is one curated launch in the YAML fixture file.
type fixtureProject struct {
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	WebsiteURL   string `yaml:"website_url"`
	ThumbnailURL string `yaml:"thumbnail_url"`
}

type fixtureFile struct {
	Projects []fixtureProject `yaml:"projects"`
}

// loadFixtureProjects inserts curated projects from a YAML file, assigning
// each to a random seeded user.
func loadFixtureProjects(db *gorm.DB, users []models.User, path string) ([]models.Project, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file fixtureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}

	projects := make([]models.Project, 0, len(file.Projects))
	for _, f := range file.Projects {
		p := models.Project{
			Title:        f.Title,
			Description:  f.Description,
			WebsiteURL:   f.WebsiteURL,
			ThumbnailURL: f.ThumbnailURL,
			UserID:       users[rand.Intn(len(users))].ID,
		}
		if err := db.Create(&p).Error; err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}
