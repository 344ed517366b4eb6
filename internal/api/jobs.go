package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/gin-gonic/gin"
	"github.com/hirehall/jobboard/internal/domain/events"
	"github.com/hirehall/jobboard/internal/domain/models"
	"github.com/hirehall/jobboard/internal/metrics"
	"github.com/hirehall/jobboard/internal/repositories"
	"github.com/hirehall/jobboard/internal/services"
)

const defaultSearchLimit = 50

type JobsHandler struct {
	jobs    *repositories.Jobs
	options *services.FilterOptionsService
	bus     EventBus.Bus
}

func NewJobsHandler(jobs *repositories.Jobs, options *services.FilterOptionsService,
	bus EventBus.Bus) *JobsHandler {
	return &JobsHandler{jobs: jobs, options: options, bus: bus}
}

// List is the public board: raw query parameters go through
// ParseFilters unchanged, so malformed input degrades to an open filter
// instead of failing.
func (h *JobsHandler) List(c *gin.Context) {

	filters := models.ParseFilters(c.Request.URL.Query())

	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed < defaultSearchLimit {
			limit = parsed
		}
	}

	startTime := time.Now()
	jobs, err := h.jobs.Search(c.Request.Context(), filters, limit)
	if err != nil {
		storeError(c, err)
		return
	}
	metrics.SearchesCounter.Inc()
	metrics.SearchDuration.Observe(time.Since(startTime).Seconds())

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobsHandler) GetBySlug(c *gin.Context) {

	job, err := h.jobs.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		storeError(c, err)
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobsHandler) FilterOptions(c *gin.Context) {

	options, err := h.options.Get(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

type jobRequest struct {
	Title              string                     `json:"title" binding:"required"`
	Description        string                     `json:"description"`
	Summary            string                     `json:"summary"`
	Responsibilities   string                     `json:"responsibilities"`
	Requirements       string                     `json:"requirements"`
	WhatWeOffer        string                     `json:"what_we_offer"`
	GoodToHave         string                     `json:"good_to_have"`
	Benefits           string                     `json:"benefits"`
	Roles              []string                   `json:"roles"`
	Tech               []string                   `json:"tech"`
	WorkType           string                     `json:"work_type" binding:"required"`
	JobType            string                     `json:"job_type" binding:"required"`
	SalaryMin          *int                       `json:"salary_min"`
	SalaryMax          *int                       `json:"salary_max"`
	Location           *string                    `json:"location"`
	ApplyMethod        string                     `json:"apply_method"`
	ApplyURL           string                     `json:"apply_url"`
	NotificationEmail  string                     `json:"notification_email"`
	ScreeningQuestions []models.ScreeningQuestion `json:"screening_questions"`
}

func applyJobFields(job *models.Job, request jobRequest) {
	job.Description = request.Description
	job.Summary = request.Summary
	job.Responsibilities = request.Responsibilities
	job.Requirements = request.Requirements
	job.WhatWeOffer = request.WhatWeOffer
	job.GoodToHave = request.GoodToHave
	job.Benefits = request.Benefits
	job.SalaryMin = request.SalaryMin
	job.SalaryMax = request.SalaryMax
	job.Location = request.Location
	job.ApplyMethod = models.ApplyMethod(request.ApplyMethod)
	job.ApplyURL = request.ApplyURL
	job.NotificationEmail = request.NotificationEmail
	job.ScreeningQuestions = request.ScreeningQuestions
}

func (h *JobsHandler) Create(c *gin.Context) {

	employerID, ok := requireUser(c)
	if !ok {
		return
	}

	var request jobRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	workType, err := models.ToWorkType(request.WorkType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	jobType, err := models.ToJobType(request.JobType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job := models.NewJob(employerID, request.Title, request.Roles, request.Tech, workType, jobType)
	applyJobFields(job, request)

	if err = h.jobs.Create(c.Request.Context(), job); err != nil {
		storeError(c, err)
		return
	}

	h.bus.Publish(events.JobCreatedTopic, events.JobCreated{Job: *job})
	c.JSON(http.StatusCreated, job)
}

// Update edits an employer's own posting in place. The slug is minted
// at creation and never changes, so published links stay valid.
func (h *JobsHandler) Update(c *gin.Context) {

	employerID, ok := requireUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	var request jobRequest
	if err = c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	workType, err := models.ToWorkType(request.WorkType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	jobType, err := models.ToJobType(request.JobType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.jobs.GetByID(c.Request.Context(), id)
	if err != nil {
		storeError(c, err)
		return
	}
	if job == nil || job.EmployerID != employerID {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	job.Title = request.Title
	job.WorkType = workType
	job.JobType = jobType
	job.SetRoles(request.Roles)
	job.SetTechStack(request.Tech)
	applyJobFields(job, request)

	if err = h.jobs.Update(c.Request.Context(), *job); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListOwn returns all of the employer's jobs, inactive ones included.
func (h *JobsHandler) ListOwn(c *gin.Context) {

	employerID, ok := requireUser(c)
	if !ok {
		return
	}

	jobs, err := h.jobs.GetByEmployer(c.Request.Context(), employerID)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobsHandler) Close(c *gin.Context) {
	h.updateLifecycle(c, h.jobs.Close)
}

func (h *JobsHandler) Reopen(c *gin.Context) {
	h.updateLifecycle(c, h.jobs.Reopen)
}

func (h *JobsHandler) Delete(c *gin.Context) {
	h.updateLifecycle(c, h.jobs.Remove)
}

func (h *JobsHandler) updateLifecycle(c *gin.Context,
	action func(ctx context.Context, id int, employerID int64) error) {

	employerID, ok := requireUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	if err = action(c.Request.Context(), id, employerID); err != nil {
		storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
