package services

import (
	"context"
	"strings"

	"github.com/asaskevich/EventBus"
	"github.com/go-playground/validator/v10"
	"github.com/hirehall/jobboard/internal/domain/events"
	"github.com/hirehall/jobboard/internal/domain/models"
	"github.com/hirehall/jobboard/internal/metrics"
	"github.com/pkg/errors"
)

var (
	ErrJobNotFound    = errors.New("job not found")
	ErrJobClosed      = errors.New("this job is no longer accepting applications")
	ErrInvalidAnswers = errors.New("invalid screening answers")
)

type applicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
}

type jobByIDRepository interface {
	GetByID(ctx context.Context, id int) (*models.Job, error)
}

type SubmitApplicationRequest struct {
	JobID       int    `validate:"required"`
	ApplicantID int64  `validate:"required"`
	FullName    string `validate:"required"`
	Email       string `validate:"required,email"`
	Phone       string
	CoverLetter string
	CVKey       string `validate:"required"`
	Answers     []models.ScreeningAnswer
}

// ApplicationService validates and persists applications. Validation
// failures come back as plain error values for the caller to surface
// inline; only store failures are unexpected.
type ApplicationService struct {
	applications applicationRepository
	jobs         jobByIDRepository
	bus          EventBus.Bus
	validate     *validator.Validate
}

func NewApplicationService(bus EventBus.Bus, applications applicationRepository,
	jobs jobByIDRepository) *ApplicationService {

	return &ApplicationService{
		applications: applications,
		jobs:         jobs,
		bus:          bus,
		validate:     validator.New(),
	}
}

func (s *ApplicationService) Submit(ctx context.Context,
	request SubmitApplicationRequest) (*models.Application, error) {

	if err := s.validate.Struct(request); err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, request.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil || !job.IsActive {
		return nil, ErrJobNotFound
	}
	if job.Closed() {
		return nil, ErrJobClosed
	}

	answers, err := normalizeAnswers(job, request.Answers)
	if err != nil {
		return nil, err
	}

	application := &models.Application{
		JobID:       job.ID,
		ApplicantID: request.ApplicantID,
		FullName:    strings.TrimSpace(request.FullName),
		Email:       strings.TrimSpace(request.Email),
		Phone:       strings.TrimSpace(request.Phone),
		CoverLetter: request.CoverLetter,
		CVKey:       request.CVKey,
		Answers:     answers,
		Status:      models.ApplicationStatusPending,
	}

	if err = s.applications.Create(ctx, application); err != nil {
		return nil, err
	}

	metrics.ApplicationsCounter.Inc()
	s.bus.Publish(events.ApplicationSubmittedTopic, events.ApplicationSubmitted{
		Job:         *job,
		Application: *application,
	})
	return application, nil
}

// normalizeAnswers checks submitted answers against the job's screening
// question definitions and rebuilds the stored tuples from those
// definitions, so prompt and type always reflect the job, not the
// client payload.
func normalizeAnswers(job *models.Job, submitted []models.ScreeningAnswer) (models.ScreeningAnswers, error) {

	byQuestion := make(map[string]string, len(submitted))
	for _, answer := range submitted {
		byQuestion[answer.QuestionID] = strings.TrimSpace(answer.Answer)
	}

	normalized := make(models.ScreeningAnswers, 0, len(job.ScreeningQuestions))
	for _, question := range job.ScreeningQuestions {
		answer, ok := byQuestion[question.ID]
		if !ok || answer == "" {
			return nil, errors.Wrapf(ErrInvalidAnswers, "missing answer for question %q", question.Prompt)
		}

		switch question.Type {
		case models.QuestionTypeYesNo:
			if answer != "yes" && answer != "no" {
				return nil, errors.Wrapf(ErrInvalidAnswers, "answer for question %q must be yes or no", question.Prompt)
			}
		case models.QuestionTypeMultipleChoice:
			if !containsOption(question.Options, answer) {
				return nil, errors.Wrapf(ErrInvalidAnswers, "answer for question %q is not one of the offered options", question.Prompt)
			}
		}

		normalized = append(normalized, models.ScreeningAnswer{
			QuestionID: question.ID,
			Prompt:     question.Prompt,
			Type:       question.Type,
			Answer:     answer,
		})
	}

	return normalized, nil
}

func containsOption(options []string, answer string) bool {
	for _, option := range options {
		if option == answer {
			return true
		}
	}
	return false
}
