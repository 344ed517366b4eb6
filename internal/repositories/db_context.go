package repositories

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/hirehall/jobboard/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {

	entities := []any{
		models.Job{},
		models.SavedSearch{},
		models.Application{},
		models.Favorite{},
		models.Notification{},
		models.CompanyProfile{},
		models.CompanyExperience{},
		models.CompanyBenefit{},
		models.CompanyGalleryItem{},
		models.CompanyHiringStep{},
	}

	for _, entity := range entities {
		if err := c.DB.AutoMigrate(entity); err != nil {
			return fmt.Errorf("failed to migrate %T entity: %w", entity, err)
		}
	}

	// Unique indexes back the duplicate-application and duplicate-favorite
	// guarantees; relying on a check-then-insert would leave a race window.
	if err := c.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_job_applicant ON applications (job_id, applicant_id); " +
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_user_job_favorite ON favorites (user_id, job_id);").
		Error; err != nil {
		return fmt.Errorf("failed to create unique indexes: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
