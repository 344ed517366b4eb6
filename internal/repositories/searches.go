package repositories

import (
	"context"
	"strings"

	"github.com/hirehall/jobboard/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const MaxSavedSearchNameLength = 200

var (
	ErrSearchNameRequired = errors.New("saved search name is required")
	ErrSearchNameTooLong  = errors.New("saved search name must be at most 200 characters")
	ErrSearchCapReached   = errors.New("saved search limit reached")
)

type SavedSearches struct {
	db  *gorm.DB
	cap int
}

func NewSavedSearchRepository(db *gorm.DB, cap int) *SavedSearches {
	if cap <= 0 {
		cap = 20
	}
	return &SavedSearches{db: db, cap: cap}
}

// Create validates the name and enforces the per-user cap. The count
// and insert run in one transaction so concurrent creations cannot
// exceed the cap. Validation failures come back as sentinel errors.
func (repo *SavedSearches) Create(ctx context.Context, userID int64, name string,
	filters models.JobFilters) (*models.SavedSearch, error) {

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrSearchNameRequired
	}
	if len(name) > MaxSavedSearchNameLength {
		return nil, ErrSearchNameTooLong
	}

	search := models.NewSavedSearch(userID, name, filters)

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.SavedSearch{}).Where("user_id = ?", userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(repo.cap) {
			return ErrSearchCapReached
		}
		return tx.Create(search).Error
	})
	if err != nil {
		return nil, err
	}

	return search, nil
}

func (repo *SavedSearches) GetByUser(ctx context.Context, userID int64) ([]models.SavedSearch, error) {

	searches := []models.SavedSearch{}
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&searches).Error; err != nil {
		return nil, err
	}
	return searches, nil
}

func (repo *SavedSearches) GetCountByUser(ctx context.Context, userID int64) (int64, error) {

	var count int64
	if err := repo.db.WithContext(ctx).Model(&models.SavedSearch{}).Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Get pages through all saved searches, used by the notifier when
// matching a new job against every stored filter set. Pages are ordered
// by id so concurrent writes cannot skip or repeat a search mid-scan.
func (repo *SavedSearches) Get(ctx context.Context, limit int, offset int) ([]models.SavedSearch, error) {

	searches := []models.SavedSearch{}
	if err := repo.db.WithContext(ctx).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&searches).Error; err != nil {
		return nil, err
	}
	return searches, nil
}

// Remove filters on both id and owner; deleting a search the user does
// not own silently affects zero rows.
func (repo *SavedSearches) Remove(ctx context.Context, id int, userID int64) error {
	return repo.db.WithContext(ctx).
		Delete(&models.SavedSearch{}, "id = ? AND user_id = ?", id, userID).Error
}
