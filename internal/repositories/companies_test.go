package repositories

import (
	"context"
	"testing"

	"github.com/hirehall/jobboard/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Companies_UpsertProfile(t *testing.T) {

	dbCtx := newTestDbContext(t)
	repo := NewCompaniesRepository(dbCtx.DB)

	require.NoError(t, repo.UpsertProfile(context.Background(), &models.CompanyProfile{
		EmployerID: 7,
		Name:       "Acme",
	}))
	require.NoError(t, repo.UpsertProfile(context.Background(), &models.CompanyProfile{
		EmployerID: 7,
		Name:       "Acme Inc",
		Website:    "https://acme.example",
	}))

	profile, err := repo.GetProfile(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Acme Inc", profile.Name)
	assert.Equal(t, "https://acme.example", profile.Website)

	missing, err := repo.GetProfile(context.Background(), 8)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func Test_Companies_ExperiencesRequireApproval(t *testing.T) {

	dbCtx := newTestDbContext(t)
	repo := NewCompaniesRepository(dbCtx.DB)

	experience := &models.CompanyExperience{
		EmployerID: 7,
		AuthorName: "Former engineer",
		Text:       "Good place to work",
		Rating:     4,
		Approved:   true, // must be reset on submission
	}
	require.NoError(t, repo.AddExperience(context.Background(), experience))

	public, err := repo.GetExperiences(context.Background(), 7, true)
	require.NoError(t, err)
	assert.Empty(t, public)

	all, err := repo.GetExperiences(context.Background(), 7, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].Approved)

	require.NoError(t, repo.ApproveExperience(context.Background(), experience.ID, 7))

	public, err = repo.GetExperiences(context.Background(), 7, true)
	require.NoError(t, err)
	assert.Len(t, public, 1)
}

func Test_Companies_ContentOrderedByPosition(t *testing.T) {

	dbCtx := newTestDbContext(t)
	repo := NewCompaniesRepository(dbCtx.DB)

	require.NoError(t, repo.AddBenefit(context.Background(),
		&models.CompanyBenefit{EmployerID: 7, Title: "Gym", Position: 2}))
	require.NoError(t, repo.AddBenefit(context.Background(),
		&models.CompanyBenefit{EmployerID: 7, Title: "Remote budget", Position: 1}))

	benefits, err := repo.GetBenefits(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, benefits, 2)
	assert.Equal(t, "Remote budget", benefits[0].Title)
	assert.Equal(t, "Gym", benefits[1].Title)
}
