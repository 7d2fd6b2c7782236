// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"launchpad/internal/cache"
	"launchpad/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Project, error)
	ListNewest(ctx context.Context, limit, offset int) ([]*models.Project, error)
	CountLikes(ctx context.Context, projectID uint) (int64, error)
	GetLikedProjectIDs(ctx context.Context, userID uint, projectIDs []uint) ([]uint, error)
	Like(ctx context.Context, userID, projectID uint) error
	Unlike(ctx context.Context, userID, projectID uint) error
}

// projectRepository implements ProjectRepository
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Project, error) {
	var project models.Project
	key := cache.ProjectKey(id)

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, key, &project, cache.ProjectTTL, func() error {
			return r.applyProjectDetails(r.db.WithContext(ctx), 0).
				Preload("User").
				First(&project, id).Error
		})
	} else {
		err = r.applyProjectDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			First(&project, id).Error
	}

	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListNewest returns the raw submission page in reverse chronological order.
// Engagement fields are filled in separately by the feed aggregation, which
// tolerates per-item failures; the single-query subquery variant would turn
// any likes-table hiccup into a failure of the whole page.
func (r *projectRepository) ListNewest(ctx context.Context, limit, offset int) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// applyProjectDetails adds subqueries to fetch the like count and liked status in a single query.
func (r *projectRepository) applyProjectDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "projects.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.project_id = projects.id) as like_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.project_id = projects.id AND likes.user_id = ?) as has_liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as has_liked")
}

func (r *projectRepository) CountLikes(ctx context.Context, projectID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

// GetLikedProjectIDs returns the subset of projectIDs the user has liked,
// one membership query per feed page.
func (r *projectRepository) GetLikedProjectIDs(ctx context.Context, userID uint, projectIDs []uint) ([]uint, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	var likedProjectIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND project_id IN ?", userID, projectIDs).
		Pluck("project_id", &likedProjectIDs).Error
	return likedProjectIDs, err
}

func (r *projectRepository) Like(ctx context.Context, userID, projectID uint) error {
	// ON CONFLICT DO NOTHING makes concurrent duplicate toggles a no-op
	// instead of a unique violation.
	like := models.Like{UserID: userID, ProjectID: projectID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "project_id"}},
			DoNothing: true,
		}).
		Create(&like).Error
	if isUniqueViolation(err) {
		err = nil
	}
	if err == nil {
		cache.InvalidateProject(ctx, projectID)
	}
	return err
}

func (r *projectRepository) Unlike(ctx context.Context, userID, projectID uint) error {
	// Hard delete the like record (not soft delete)
	err := r.db.WithContext(ctx).
		Unscoped().
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&models.Like{}).Error
	if err == nil {
		cache.InvalidateProject(ctx, projectID)
	}
	return err
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
