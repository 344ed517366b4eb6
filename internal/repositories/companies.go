package repositories

import (
	"context"
	"errors"

	"github.com/hirehall/jobboard/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Companies struct {
	db *gorm.DB
}

func NewCompaniesRepository(db *gorm.DB) *Companies {
	return &Companies{db: db}
}

func (repo *Companies) GetProfile(ctx context.Context, employerID int64) (*models.CompanyProfile, error) {

	var profile models.CompanyProfile
	err := repo.db.WithContext(ctx).First(&profile, "employer_id = ?", employerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (repo *Companies) UpsertProfile(ctx context.Context, profile *models.CompanyProfile) error {
	return repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employer_id"}},
			UpdateAll: true,
		}).
		Create(profile).Error
}

func (repo *Companies) AddExperience(ctx context.Context, experience *models.CompanyExperience) error {
	experience.Approved = false
	return repo.db.WithContext(ctx).Create(experience).Error
}

// GetExperiences hides unapproved reviews unless the employer asks for
// the full moderation list.
func (repo *Companies) GetExperiences(ctx context.Context, employerID int64,
	onlyApproved bool) ([]models.CompanyExperience, error) {

	query := repo.db.WithContext(ctx).Where("employer_id = ?", employerID)
	if onlyApproved {
		query = query.Where("approved = ?", true)
	}

	experiences := []models.CompanyExperience{}
	if err := query.Order("created_at DESC").Find(&experiences).Error; err != nil {
		return nil, err
	}
	return experiences, nil
}

func (repo *Companies) ApproveExperience(ctx context.Context, id int, employerID int64) error {
	return repo.db.WithContext(ctx).Model(&models.CompanyExperience{}).
		Where("id = ? AND employer_id = ?", id, employerID).
		Update("approved", true).Error
}

func (repo *Companies) AddBenefit(ctx context.Context, benefit *models.CompanyBenefit) error {
	return repo.db.WithContext(ctx).Create(benefit).Error
}

func (repo *Companies) GetBenefits(ctx context.Context, employerID int64) ([]models.CompanyBenefit, error) {

	benefits := []models.CompanyBenefit{}
	if err := repo.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("position ASC").
		Find(&benefits).Error; err != nil {
		return nil, err
	}
	return benefits, nil
}

func (repo *Companies) AddGalleryItem(ctx context.Context, item *models.CompanyGalleryItem) error {
	return repo.db.WithContext(ctx).Create(item).Error
}

func (repo *Companies) GetGallery(ctx context.Context, employerID int64) ([]models.CompanyGalleryItem, error) {

	items := []models.CompanyGalleryItem{}
	if err := repo.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("position ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (repo *Companies) AddHiringStep(ctx context.Context, step *models.CompanyHiringStep) error {
	return repo.db.WithContext(ctx).Create(step).Error
}

func (repo *Companies) GetHiringSteps(ctx context.Context, employerID int64) ([]models.CompanyHiringStep, error) {

	steps := []models.CompanyHiringStep{}
	if err := repo.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("position ASC").
		Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}
