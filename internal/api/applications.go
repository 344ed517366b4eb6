package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/hirehall/jobboard/internal/domain/models"
	"github.com/hirehall/jobboard/internal/repositories"
	"github.com/hirehall/jobboard/internal/services"
	"github.com/pkg/errors"
)

type ApplicationsHandler struct {
	applications *services.ApplicationService
	jobs         *repositories.Jobs
	store        *repositories.Applications
}

func NewApplicationsHandler(applications *services.ApplicationService,
	jobs *repositories.Jobs, store *repositories.Applications) *ApplicationsHandler {

	return &ApplicationsHandler{applications: applications, jobs: jobs, store: store}
}

type applyRequest struct {
	FullName    string                   `json:"full_name"`
	Email       string                   `json:"email"`
	Phone       string                   `json:"phone"`
	CoverLetter string                   `json:"cover_letter"`
	CVKey       string                   `json:"cv_key"`
	Answers     []models.ScreeningAnswer `json:"answers"`
}

func (h *ApplicationsHandler) Submit(c *gin.Context) {

	applicantID, ok := requireUser(c)
	if !ok {
		return
	}

	job, err := h.jobs.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		storeError(c, err)
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	var request applyRequest
	if err = c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	application, err := h.applications.Submit(c.Request.Context(), services.SubmitApplicationRequest{
		JobID:       job.ID,
		ApplicantID: applicantID,
		FullName:    request.FullName,
		Email:       request.Email,
		Phone:       request.Phone,
		CoverLetter: request.CoverLetter,
		CVKey:       request.CVKey,
		Answers:     request.Answers,
	})

	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, services.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrJobClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrDuplicateApplication):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &validationErrs),
		errors.Is(err, services.ErrInvalidAnswers):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		storeError(c, err)
	default:
		c.JSON(http.StatusCreated, application)
	}
}

// ListForJob lets an employer review applications to their own posting.
func (h *ApplicationsHandler) ListForJob(c *gin.Context) {

	employerID, ok := requireUser(c)
	if !ok {
		return
	}

	jobID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	job, err := h.jobs.GetByID(c.Request.Context(), jobID)
	if err != nil {
		storeError(c, err)
		return
	}
	if job == nil || job.EmployerID != employerID {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	applications, err := h.store.GetByJob(c.Request.Context(), job.ID)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

func (h *ApplicationsHandler) ListOwn(c *gin.Context) {

	applicantID, ok := requireUser(c)
	if !ok {
		return
	}

	applications, err := h.store.GetByApplicant(c.Request.Context(), applicantID)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications})
}
