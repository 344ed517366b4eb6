package repositories

import (
	"context"

	"github.com/hirehall/jobboard/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Favorites struct {
	db *gorm.DB
}

func NewFavoritesRepository(db *gorm.DB) *Favorites {
	return &Favorites{db: db}
}

// Add is idempotent: favoriting an already favorited job is a no-op,
// backed by the (user_id, job_id) unique index.
func (repo *Favorites) Add(ctx context.Context, userID int64, jobID int) error {
	return repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Favorite{UserID: userID, JobID: jobID}).Error
}

func (repo *Favorites) Remove(ctx context.Context, userID int64, jobID int) error {
	return repo.db.WithContext(ctx).
		Delete(&models.Favorite{}, "user_id = ? AND job_id = ?", userID, jobID).Error
}

func (repo *Favorites) IsFavorited(ctx context.Context, userID int64, jobID int) (bool, error) {

	var count int64
	err := repo.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error
	return count > 0, err
}

func (repo *Favorites) GetJobIDs(ctx context.Context, userID int64) ([]int, error) {

	jobIDs := []int{}
	err := repo.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("job_id", &jobIDs).Error
	if err != nil {
		return nil, err
	}
	return jobIDs, nil
}
