package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hirehall/jobboard/internal/domain/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

// Search returns active jobs matching the filter set, newest first.
// Filters combine conjunctively; values within one multi-valued filter
// combine disjunctively.
func (r *Jobs) Search(ctx context.Context, filters models.JobFilters, limit int) ([]models.Job, error) {

	query := r.db.WithContext(ctx).Model(&models.Job{}).Where("is_active = ?", true)
	query = applyFilters(query, filters)
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	jobs := []models.Job{}
	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func applyFilters(query *gorm.DB, filters models.JobFilters) *gorm.DB {

	if len(filters.WorkTypes) > 0 {
		query = query.Where("work_type IN ?", filters.WorkTypes)
	}

	if len(filters.JobTypes) > 0 {
		query = query.Where("job_type IN ?", filters.JobTypes)
	}

	// Role is free text; matching is a deliberate case-insensitive
	// substring match, not an exact tag match.
	if len(filters.Roles) > 0 {
		conditions := make([]string, 0, len(filters.Roles))
		args := make([]any, 0, len(filters.Roles))
		for _, role := range filters.Roles {
			conditions = append(conditions, "LOWER(role) LIKE ?")
			args = append(args, "%"+strings.ToLower(role)+"%")
		}
		query = query.Where(strings.Join(conditions, " OR "), args...)
	}

	// Tech stack is a comma-joined set; wrap both sides in commas so a
	// tag matches whole set members only.
	if len(filters.Tech) > 0 {
		conditions := make([]string, 0, len(filters.Tech))
		args := make([]any, 0, len(filters.Tech))
		for _, tag := range filters.Tech {
			conditions = append(conditions, "(',' || LOWER(tech_stack) || ',') LIKE ?")
			args = append(args, "%,"+strings.ToLower(strings.TrimSpace(tag))+",%")
		}
		query = query.Where(strings.Join(conditions, " OR "), args...)
	}

	// An unspecified bound on the opposite side always satisfies a
	// one-sided salary filter: open-ended jobs are never hidden.
	if filters.SalaryMin != nil {
		query = query.Where("salary_max IS NULL OR salary_max >= ?", *filters.SalaryMin)
	}
	if filters.SalaryMax != nil {
		query = query.Where("salary_min IS NULL OR salary_min <= ?", *filters.SalaryMax)
	}

	if filters.Query != "" {
		pattern := "%" + strings.ToLower(filters.Query) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(role) LIKE ?",
			pattern, pattern, pattern)
	}

	if filters.Location != "" {
		query = query.Where("location IS NOT NULL AND LOWER(location) LIKE ?",
			"%"+strings.ToLower(filters.Location)+"%")
	}

	return query
}

// GetBySlug returns (nil, nil) when the job is absent or inactive;
// callers treat both the same way.
func (r *Jobs) GetBySlug(ctx context.Context, slug string) (*models.Job, error) {

	var job models.Job
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&job).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (r *Jobs) GetByID(ctx context.Context, id int) (*models.Job, error) {

	var job models.Job
	err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (r *Jobs) GetActiveByEmployer(ctx context.Context, employerID int64) ([]models.Job, error) {

	jobs := []models.Job{}
	err := r.db.WithContext(ctx).
		Where("employer_id = ? AND is_active = ?", employerID, true).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetByEmployer returns an employer's own jobs regardless of active
// state, for the employer dashboard.
func (r *Jobs) GetByEmployer(ctx context.Context, employerID int64) ([]models.Job, error) {

	jobs := []models.Job{}
	err := r.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *Jobs) GetFavorited(ctx context.Context, userID int64) ([]models.Job, error) {

	jobs := []models.Job{}
	err := r.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.job_id = jobs.id").
		Where("favorites.user_id = ? AND jobs.is_active = ?", userID, true).
		Order("jobs.created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *Jobs) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// Update writes all columns, so callers pass a fully loaded job with
// the edits applied; cleared fields persist as cleared.
func (r *Jobs) Update(ctx context.Context, job models.Job) error {
	return r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ? AND employer_id = ?", job.ID, job.EmployerID).
		Select("*").Updates(job).Error
}

// Close suppresses the apply action without hiding the listing.
func (r *Jobs) Close(ctx context.Context, id int, employerID int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ? AND employer_id = ?", id, employerID).
		Update("closed_at", &now).Error
}

func (r *Jobs) Reopen(ctx context.Context, id int, employerID int64) error {
	return r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ? AND employer_id = ?", id, employerID).
		Update("closed_at", nil).Error
}

// Remove deletes the job together with its dependent rows, mirroring
// the referential cascade of the backing store.
func (r *Jobs) Remove(ctx context.Context, id int, employerID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND employer_id = ?", id, employerID).
			Delete(&models.Job{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		if err := tx.Delete(&models.Application{}, "job_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Favorite{}, "job_id = ?", id).Error
	})
}

// FilterOptions scans all active jobs for the distinct role and tech
// values offered as filter choices. Cost grows with the number of
// active jobs; callers cache the result.
func (r *Jobs) FilterOptions(ctx context.Context) (roles []string, tech []string, err error) {

	var rows []models.Job
	if err = r.db.WithContext(ctx).
		Select("role", "tech_stack").
		Where("is_active = ?", true).
		Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	for i := range rows {
		roles = append(roles, rows[i].RolesAsArray()...)
		tech = append(tech, rows[i].TechStackAsArray()...)
	}

	roles = lo.Uniq(lo.Filter(roles, func(item string, _ int) bool { return strings.TrimSpace(item) != "" }))
	tech = lo.Uniq(lo.Filter(tech, func(item string, _ int) bool { return strings.TrimSpace(item) != "" }))
	return roles, tech, nil
}
