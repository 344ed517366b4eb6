package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hirehall/jobboard/internal/domain/models"
	"github.com/hirehall/jobboard/internal/metrics"
)

type tailoredSearchRepository interface {
	GetByUser(ctx context.Context, userID int64) ([]models.SavedSearch, error)
}

type tailoredJobRepository interface {
	Search(ctx context.Context, filters models.JobFilters, limit int) ([]models.Job, error)
}

// TailoredJobs computes the jobs recommended to a user from their saved
// searches: one capped fetch per search, merged, deduplicated by job ID
// and re-sorted newest first.
type TailoredJobs struct {
	searches       tailoredSearchRepository
	jobs           tailoredJobRepository
	perSearchLimit int
	overallLimit   int
}

func NewTailoredJobs(searches tailoredSearchRepository, jobs tailoredJobRepository,
	perSearchLimit int, overallLimit int) *TailoredJobs {

	if perSearchLimit <= 0 {
		perSearchLimit = 5
	}
	if overallLimit <= 0 {
		overallLimit = 12
	}
	return &TailoredJobs{
		searches:       searches,
		jobs:           jobs,
		perSearchLimit: perSearchLimit,
		overallLimit:   overallLimit,
	}
}

func (t *TailoredJobs) Get(ctx context.Context, userID int64) ([]models.Job, error) {

	startTime := time.Now()
	defer func() {
		metrics.TailoredDuration.Observe(time.Since(startTime).Seconds())
	}()

	searches, err := t.searches.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(searches) == 0 {
		return []models.Job{}, nil
	}

	// The per-search fetches are independent read-only queries, so they
	// fan out concurrently; the saved-search cap bounds the fan-out.
	results := make([][]models.Job, len(searches))
	errs := make([]error, len(searches))

	var wg sync.WaitGroup
	for i := range searches {
		wg.Add(1)
		go func(i int, filters models.JobFilters) {
			defer wg.Done()
			results[i], errs[i] = t.jobs.Search(ctx, filters, t.perSearchLimit)
		}(i, searches[i].Filters)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	// First search wins on duplicates; searches are already in recency
	// order from the repository.
	seen := make(map[int]struct{})
	merged := make([]models.Job, 0, t.overallLimit)
	for _, jobs := range results {
		for _, job := range jobs {
			if _, ok := seen[job.ID]; ok {
				continue
			}
			seen[job.ID] = struct{}{}
			merged = append(merged, job)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	if len(merged) > t.overallLimit {
		merged = merged[:t.overallLimit]
	}
	return merged, nil
}
