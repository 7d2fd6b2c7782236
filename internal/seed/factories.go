package seed

import (
	"fmt"
	"strings"

	"launchpad/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// NewUser builds a fake member profile.
func NewUser() models.User {
	name := gofakeit.Name()
	return models.User{
		DisplayName: name,
		Email:       gofakeit.Email(),
		Avatar:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
}

// NewProject builds a fake project submission for the given owner.
func NewProject(ownerID uint) models.Project {
	product := gofakeit.ProductName()
	domain := strings.ToLower(strings.ReplaceAll(product, " ", "")) + ".example.com"
	return models.Project{
		Title:        product,
		Description:  gofakeit.Paragraph(1, 3, 8, "\n"),
		WebsiteURL:   "https://" + domain,
		ThumbnailURL: fmt.Sprintf("https://picsum.photos/seed/%s/640/360", gofakeit.UUID()),
		UserID:       ownerID,
	}
}
