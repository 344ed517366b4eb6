package services

import (
	"context"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/hirehall/jobboard/internal/domain/events"
	"github.com/hirehall/jobboard/internal/domain/models"
	"github.com/hirehall/jobboard/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockApplicationRepository struct {
	created []*models.Application
	err     error
}

func (m *mockApplicationRepository) Create(_ context.Context, application *models.Application) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, application)
	return nil
}

type mockJobByIDRepository struct {
	job *models.Job
}

func (m *mockJobByIDRepository) GetByID(_ context.Context, _ int) (*models.Job, error) {
	return m.job, nil
}

func activeJob() *models.Job {
	return &models.Job{ID: 1, EmployerID: 7, Title: "Go developer", IsActive: true}
}

func validRequest() SubmitApplicationRequest {
	return SubmitApplicationRequest{
		JobID:       1,
		ApplicantID: 10,
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		CVKey:       "cv/jane.pdf",
	}
}

func Test_ApplicationService_Submit_Succeeds(t *testing.T) {

	bus := EventBus.New()
	repo := &mockApplicationRepository{}
	service := NewApplicationService(bus, repo, &mockJobByIDRepository{job: activeJob()})

	var published []events.ApplicationSubmitted
	require.NoError(t, bus.Subscribe(events.ApplicationSubmittedTopic,
		func(event events.ApplicationSubmitted) {
			published = append(published, event)
		}))

	application, err := service.Submit(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusPending, application.Status)
	require.Len(t, repo.created, 1)
	require.Len(t, published, 1)
	assert.Equal(t, 1, published[0].Job.ID)
	assert.Equal(t, "Jane Doe", published[0].Application.FullName)
}

func Test_ApplicationService_Submit_RejectsInvalidRequest(t *testing.T) {

	repo := &mockApplicationRepository{}
	service := NewApplicationService(EventBus.New(), repo, &mockJobByIDRepository{job: activeJob()})

	request := validRequest()
	request.Email = "not-an-email"

	_, err := service.Submit(context.Background(), request)
	assert.Error(t, err)
	assert.Empty(t, repo.created)
}

func Test_ApplicationService_Submit_MissingJob(t *testing.T) {

	service := NewApplicationService(EventBus.New(), &mockApplicationRepository{},
		&mockJobByIDRepository{job: nil})

	_, err := service.Submit(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func Test_ApplicationService_Submit_InactiveJobLooksMissing(t *testing.T) {

	job := activeJob()
	job.IsActive = false
	service := NewApplicationService(EventBus.New(), &mockApplicationRepository{},
		&mockJobByIDRepository{job: job})

	_, err := service.Submit(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func Test_ApplicationService_Submit_ClosedJob(t *testing.T) {

	job := activeJob()
	closedAt := time.Now()
	job.ClosedAt = &closedAt
	service := NewApplicationService(EventBus.New(), &mockApplicationRepository{},
		&mockJobByIDRepository{job: job})

	_, err := service.Submit(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrJobClosed)
}

func Test_ApplicationService_Submit_ValidatesScreeningAnswers(t *testing.T) {

	job := activeJob()
	job.ScreeningQuestions = models.ScreeningQuestions{
		{ID: "q1", Prompt: "Willing to relocate?", Type: models.QuestionTypeYesNo},
		{ID: "q2", Prompt: "Preferred stack?", Type: models.QuestionTypeMultipleChoice,
			Options: []string{"Go", "Rust"}},
	}
	service := NewApplicationService(EventBus.New(), &mockApplicationRepository{},
		&mockJobByIDRepository{job: job})

	tests := []struct {
		name    string
		answers []models.ScreeningAnswer
	}{
		{"missing answer", []models.ScreeningAnswer{
			{QuestionID: "q1", Answer: "yes"},
		}},
		{"invalid yes_no answer", []models.ScreeningAnswer{
			{QuestionID: "q1", Answer: "maybe"},
			{QuestionID: "q2", Answer: "Go"},
		}},
		{"answer outside the offered options", []models.ScreeningAnswer{
			{QuestionID: "q1", Answer: "yes"},
			{QuestionID: "q2", Answer: "Cobol"},
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			request := validRequest()
			request.Answers = test.answers
			_, err := service.Submit(context.Background(), request)
			assert.ErrorIs(t, err, ErrInvalidAnswers)
		})
	}
}

func Test_ApplicationService_Submit_NormalizesAnswersFromJobDefinitions(t *testing.T) {

	job := activeJob()
	job.ScreeningQuestions = models.ScreeningQuestions{
		{ID: "q1", Prompt: "Willing to relocate?", Type: models.QuestionTypeYesNo},
	}
	repo := &mockApplicationRepository{}
	service := NewApplicationService(EventBus.New(), repo, &mockJobByIDRepository{job: job})

	request := validRequest()
	request.Answers = []models.ScreeningAnswer{
		// client-sent prompt and type must not survive into storage
		{QuestionID: "q1", Prompt: "spoofed", Type: models.QuestionTypeText, Answer: " yes "},
	}

	application, err := service.Submit(context.Background(), request)
	require.NoError(t, err)

	require.Len(t, application.Answers, 1)
	assert.Equal(t, "Willing to relocate?", application.Answers[0].Prompt)
	assert.Equal(t, models.QuestionTypeYesNo, application.Answers[0].Type)
	assert.Equal(t, "yes", application.Answers[0].Answer)
}

func Test_ApplicationService_Submit_PassesDuplicateErrorThrough(t *testing.T) {

	repo := &mockApplicationRepository{err: repositories.ErrDuplicateApplication}
	service := NewApplicationService(EventBus.New(), repo, &mockJobByIDRepository{job: activeJob()})

	_, err := service.Submit(context.Background(), validRequest())
	assert.ErrorIs(t, err, repositories.ErrDuplicateApplication)
}
