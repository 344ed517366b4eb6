package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/hirehall/jobboard/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func seedJob(t *testing.T, repo *Jobs, job *models.Job) *models.Job {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), job))
	return job
}

func Test_Jobs_Search_OnlyActiveJobsAreReturned(t *testing.T) {

	dbCtx := newTestDbContext(t)
	repo := NewJobsRepository(dbCtx.DB)

	active := seedJob(t, repo, models.NewJob(1, "Go Developer",
		nil, []string{"Go"}, models.WorkTypeRemote, models.JobTypeFullTime))

	inactive := models.NewJob(1, "Go Developer (old)",
		nil, []string{"Go"}, models.WorkTypeRemote, models.JobTypeFullTime)
	inactive.IsActive = false
	seedJob(t, repo, inactive)

	jobs, err := repo.Search(context.Background(),
		models.JobFilters{WorkTypes: []models.WorkType{models.WorkTypeRemote}, Tech: []string{"Go"}}, 0)

	assert.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, active.ID, jobs[0].ID)
}

func Test_Jobs_Search_RoleIsCaseInsensitiveSubstring(t *testing.T) {

	dbCtx := newTestDbContext(t)
	repo := NewJobsRepository(dbCtx.DB)

	match := seedJob(t, repo, models.NewJob(1, "Engineer",
		[]string{"Senior Backend Developer"}, nil, models.WorkTypeRemote, models.JobTypeFullTime))
	seedJob(t, repo, models.NewJob(1, "Designer",
		[]string{"Product Designer"}, nil, models.WorkTypeRemote, models.JobTypeFullTime))

	jobs, err := repo.Search(context.Background(),
		models.JobFilters{Roles: []string{"BACKEND"}}, 0)

	assert.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, match.ID, jobs[0].ID)
}

func Test_Jobs_Search_MultipleRolesMatchDisjunctively(t *testing.T) {

	dbCtx := newTestDbContext(t)
	repo := NewJobsRepository(dbCtx.DB)

	seedJob(t, repo, models.NewJob(1, "One",
		[]string{"Backend"}, nil, models.WorkTypeRemote, models.JobTypeFullTime))
	seedJob(t, repo, models.NewJob(1, "Two",
		[]string{"Frontend"}, nil, models.WorkTypeRemote, models.JobTypeFullTime))
	seedJob(t, repo, models.NewJob(1, "Three",
		[]string{"Data"}, nil, models.WorkTypeRemote, models.JobTypeFullTime))

	jobs, err := repo.Search(context.Background(),
		models.JobFilters{Roles: []string{"backend", "frontend"}}, 0)

	assert.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func Test_Jobs_Search_TechMatchesWholeSetMembersOnly(t *testing.T) {

	dbCtx := newTestDbContext(t)
	repo := NewJobsRepository(dbCtx.DB)

	seedJob(t, repo, models.NewJob(1, "Java Shop",
		nil, []string{"Java", "Spring"}, models.WorkTypeRemote, models.JobTypeFullTime))
	match := seedJob(t, repo, models.NewJob(1, "Script Shop",
		nil, []string{"JavaScript", "React"}, models.WorkTypeRemote, models.JobTypeFullTime))

	jobs, err := repo.Search(context.Background(),
		models.JobFilters{Tech: []string{"JavaScript"}}, 0)

	assert.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, match.ID, jobs[0].ID)
}

func Test_Jobs_Search_NullSalaryBoundSatisfiesOneSidedFilter(t *testing.T) {

	dbCtx := newTestDbContext(t)
	repo := NewJobsRepository(dbCtx.DB)

	openEnded := seedJob(t, repo, models.NewJob(1, "Open Range",
		nil, nil, models.WorkTypeRemote, models.JobTypeFullTime))

	tooLow := models.NewJob(1, "Low Range", nil, nil, models.WorkTypeRemote, models.JobTypeFullTime)
	tooLow.SalaryMax = intPtr(40000)
	seedJob(t, repo, tooLow)

	inRange := models.NewJob(1, "Good Range", nil, nil, models.WorkTypeRemote, models.JobTypeFullTime)
	inRange.SalaryMax = intPtr(120000)
	seedJob(t, repo, inRange)

	jobs, err := repo.Search(context.Background(),
		models.JobFilters{SalaryMin: intPtr(100000)}, 0)

	assert.NoError(t, err)
	ids := make(map[int]bool)
	for _, job := range jobs {
		ids[job.ID] = true
	}
	assert.True(t, ids[openEnded.ID], "job without salary ceiling must pass a salary_min filter")
	assert.True(t, ids[inRange.ID])
	assert.Len(t, jobs, 2)
}

func Test_Jobs_Search_QueryMatchesTitleDescriptionOrRole(t *testing.T) {

	dbCtx := newTestDbContext(t)
	repo := NewJobsRepository(dbCtx.DB)

	byTitle := seedJob(t, repo, models.NewJob(1, "Kubernetes Admin",
		nil, nil, models.WorkTypeRemote, models.JobTypeFullTime))

	byDescription := models.NewJob(1, "Engineer", nil, nil, models.WorkTypeRemote, models.JobTypeFullTime)
	byDescription.Description = "You will run our Kubernetes clusters."
	seedJob(t, repo, byDescription)

	seedJob(t, repo, models.NewJob(1, "Accountant",
		nil, nil, models.WorkTypeHybrid, models.JobTypeFullTime))

	jobs, err := repo.Search(context.Background(),
		models.JobFilters{Query: "kubernetes"}, 0)

	assert.NoError(t, err)
	assert.Len(t, jobs, 2)
	_ = byTitle
}

func Test_Jobs_Search_LocationSubstring(t *testing.T) {

	dbCtx := newTestDbContext(t)
	repo := NewJobsRepository(dbCtx.DB)

	located := models.NewJob(1, "On Site", nil, nil, models.WorkTypeHybrid, models.JobTypeFullTime)
	located.Location = strPtr("Berlin, Germany")
	seedJob(t, repo, located)

	seedJob(t, repo, models.NewJob(1, "Anywhere",
		nil, nil, models.WorkTypeRemote, models.JobTypeFullTime))

	jobs, err := repo.Search(context.Background(), models.JobFilters{Location: "berlin"}, 0)

	assert.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, located.ID, jobs[0].ID)
}

func Test_Jobs_Search_OrderedNewestFirst(t *testing.T) {

	dbCtx := newTestDbContext(t)
	repo := NewJobsRepository(dbCtx.DB)

	older := models.NewJob(1, "Older", nil, nil, models.WorkTypeRemote, models.JobTypeFullTime)
	older.CreatedAt = time.Now().Add(-time.Hour)
	seedJob(t, repo, older)

	newer := models.NewJob(1, "Newer", nil, nil, models.WorkTypeRemote, models.JobTypeFullTime)
	newer.CreatedAt = time.Now()
	seedJob(t, repo, newer)

	jobs, err := repo.Search(context.Background(), models.JobFilters{}, 0)

	assert.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, newer.ID, jobs[0].ID)
	assert.Equal(t, older.ID, jobs[1].ID)
}

func Test_Jobs_GetBySlug_NotFoundAndInactiveAreBothNil(t *testing.T) {

	dbCtx := newTestDbContext(t)
	repo := NewJobsRepository(dbCtx.DB)

	inactive := models.NewJob(1, "Hidden", nil, nil, models.WorkTypeRemote, models.JobTypeFullTime)
	inactive.IsActive = false
	seedJob(t, repo, inactive)

	job, err := repo.GetBySlug(context.Background(), "does-not-exist")
	assert.NoError(t, err)
	assert.Nil(t, job)

	job, err = repo.GetBySlug(context.Background(), inactive.Slug)
	assert.NoError(t, err)
	assert.Nil(t, job)
}

func Test_Jobs_GetByEmployer_IncludesInactive(t *testing.T) {

	dbCtx := newTestDbContext(t)
	repo := NewJobsRepository(dbCtx.DB)

	seedJob(t, repo, models.NewJob(7, "Active", nil, nil, models.WorkTypeRemote, models.JobTypeFullTime))
	inactive := models.NewJob(7, "Inactive", nil, nil, models.WorkTypeRemote, models.JobTypeFullTime)
	inactive.IsActive = false
	seedJob(t, repo, inactive)
	seedJob(t, repo, models.NewJob(8, "Other employer", nil, nil, models.WorkTypeRemote, models.JobTypeFullTime))

	all, err := repo.GetByEmployer(context.Background(), 7)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := repo.GetActiveByEmployer(context.Background(), 7)
	assert.NoError(t, err)
	assert.Len(t, active, 1)
}

func Test_Jobs_CloseAndReopen(t *testing.T) {

	dbCtx := newTestDbContext(t)
	repo := NewJobsRepository(dbCtx.DB)

	job := seedJob(t, repo, models.NewJob(1, "Role", nil, nil, models.WorkTypeRemote, models.JobTypeFullTime))

	assert.NoError(t, repo.Close(context.Background(), job.ID, 1))
	closed, err := repo.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.True(t, closed.Closed())
	assert.True(t, closed.IsActive, "closing must not hide the listing")

	assert.NoError(t, repo.Reopen(context.Background(), job.ID, 1))
	reopened, err := repo.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.False(t, reopened.Closed())
}

func Test_Jobs_Remove_CascadesToDependents(t *testing.T) {

	dbCtx := newTestDbContext(t)
	jobs := NewJobsRepository(dbCtx.DB)
	applications := NewApplicationsRepository(dbCtx.DB)
	favorites := NewFavoritesRepository(dbCtx.DB)

	job := seedJob(t, jobs, models.NewJob(1, "Role", nil, nil, models.WorkTypeRemote, models.JobTypeFullTime))

	require.NoError(t, applications.Create(context.Background(), &models.Application{
		JobID: job.ID, ApplicantID: 5, FullName: "A", Email: "a@b.c", CVKey: "cv",
	}))
	require.NoError(t, favorites.Add(context.Background(), 5, job.ID))

	require.NoError(t, jobs.Remove(context.Background(), job.ID, 1))

	remaining, err := applications.GetByJob(context.Background(), job.ID)
	assert.NoError(t, err)
	assert.Empty(t, remaining)

	favorited, err := favorites.GetJobIDs(context.Background(), 5)
	assert.NoError(t, err)
	assert.Empty(t, favorited)
}

func Test_Jobs_FilterOptions_DistinctRolesAndTech(t *testing.T) {

	dbCtx := newTestDbContext(t)
	repo := NewJobsRepository(dbCtx.DB)

	seedJob(t, repo, models.NewJob(1, "One",
		[]string{"Backend"}, []string{"Go", "Postgres"}, models.WorkTypeRemote, models.JobTypeFullTime))
	seedJob(t, repo, models.NewJob(1, "Two",
		[]string{"Backend", "DevOps"}, []string{"Go"}, models.WorkTypeRemote, models.JobTypeFullTime))

	inactive := models.NewJob(1, "Hidden", []string{"Design"}, []string{"Figma"},
		models.WorkTypeRemote, models.JobTypeFullTime)
	inactive.IsActive = false
	seedJob(t, repo, inactive)

	roles, tech, err := repo.FilterOptions(context.Background())

	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"Backend", "DevOps"}, roles)
	assert.ElementsMatch(t, []string{"Go", "Postgres"}, tech)
}

func Test_Jobs_Update_PersistsEditsAndClearedFields(t *testing.T) {

	dbCtx := newTestDbContext(t)
	repo := NewJobsRepository(dbCtx.DB)

	job := models.NewJob(1, "Go Developer",
		[]string{"Backend"}, []string{"Go"}, models.WorkTypeRemote, models.JobTypeFullTime)
	job.SalaryMin = intPtr(60000)
	job.Description = "legacy stack"
	seedJob(t, repo, job)

	job.Title = "Senior Go Developer"
	job.SetRoles([]string{"Backend", "Platform"})
	job.SalaryMin = nil
	job.Description = ""
	require.NoError(t, repo.Update(context.Background(), *job))

	stored, err := repo.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Senior Go Developer", stored.Title)
	assert.Equal(t, []string{"Backend", "Platform"}, stored.RolesAsArray())
	assert.Nil(t, stored.SalaryMin)
	assert.Empty(t, stored.Description)
	assert.Equal(t, job.Slug, stored.Slug)
}

func Test_Jobs_Update_IsScopedToEmployer(t *testing.T) {

	dbCtx := newTestDbContext(t)
	repo := NewJobsRepository(dbCtx.DB)

	job := seedJob(t, repo, models.NewJob(1, "Go Developer",
		nil, nil, models.WorkTypeRemote, models.JobTypeFullTime))

	hijacked := *job
	hijacked.EmployerID = 99
	hijacked.Title = "Changed"
	require.NoError(t, repo.Update(context.Background(), hijacked))

	stored, err := repo.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Go Developer", stored.Title)
}
