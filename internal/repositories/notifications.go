package repositories

import (
	"context"
	"time"

	"github.com/hirehall/jobboard/internal/domain/models"
	"gorm.io/gorm"
)

type Notifications struct {
	db *gorm.DB
}

func NewNotificationsRepository(db *gorm.DB) *Notifications {
	return &Notifications{db: db}
}

func (repo *Notifications) Add(ctx context.Context, notification *models.Notification) error {
	return repo.db.WithContext(ctx).Create(notification).Error
}

func (repo *Notifications) GetByUser(ctx context.Context, userID int64) ([]models.Notification, error) {

	notifications := []models.Notification{}
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead scopes on the owner as well; marking a foreign notification
// affects zero rows.
func (repo *Notifications) MarkRead(ctx context.Context, id int, userID int64) error {
	return repo.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

func (repo *Notifications) RemoveOldRead(ctx context.Context, before time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).
		Delete(&models.Notification{}, "is_read = ? AND created_at < ?", true, before)
	return res.RowsAffected, res.Error
}
