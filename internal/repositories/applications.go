package repositories

import (
	"context"
	"strings"

	"github.com/hirehall/jobboard/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrDuplicateApplication = errors.New("an application for this job already exists")

type Applications struct {
	db *gorm.DB
}

func NewApplicationsRepository(db *gorm.DB) *Applications {
	return &Applications{db: db}
}

// Create relies on the (job_id, applicant_id) unique index: the second
// submission for the same pair fails without a prior existence check.
func (repo *Applications) Create(ctx context.Context, application *models.Application) error {
	err := repo.db.WithContext(ctx).Create(application).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateApplication
	}
	return err
}

func (repo *Applications) GetByJob(ctx context.Context, jobID int) ([]models.Application, error) {

	applications := []models.Application{}
	if err := repo.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (repo *Applications) GetByApplicant(ctx context.Context, applicantID int64) ([]models.Application, error) {

	applications := []models.Application{}
	if err := repo.db.WithContext(ctx).
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (repo *Applications) HasApplied(ctx context.Context, jobID int, applicantID int64) (bool, error) {

	var count int64
	err := repo.db.WithContext(ctx).Model(&models.Application{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&count).Error
	return count > 0, err
}

func (repo *Applications) UpdateStatus(ctx context.Context, id int, status string) error {
	return repo.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
