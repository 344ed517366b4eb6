package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hirehall/jobboard/internal/domain/models"
	"github.com/hirehall/jobboard/internal/repositories"
)

type CompaniesHandler struct {
	companies *repositories.Companies
	jobs      *repositories.Jobs
}

func NewCompaniesHandler(companies *repositories.Companies, jobs *repositories.Jobs) *CompaniesHandler {
	return &CompaniesHandler{companies: companies, jobs: jobs}
}

// PublicPage assembles everything the public company page shows:
// profile, employer-authored content, approved experiences and the
// company's active jobs.
func (h *CompaniesHandler) PublicPage(c *gin.Context) {

	employerID, err := strconv.ParseInt(c.Param("employerID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employer id"})
		return
	}

	ctx := c.Request.Context()

	profile, err := h.companies.GetProfile(ctx, employerID)
	if err != nil {
		storeError(c, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
		return
	}

	experiences, err := h.companies.GetExperiences(ctx, employerID, true)
	if err != nil {
		storeError(c, err)
		return
	}
	benefits, err := h.companies.GetBenefits(ctx, employerID)
	if err != nil {
		storeError(c, err)
		return
	}
	gallery, err := h.companies.GetGallery(ctx, employerID)
	if err != nil {
		storeError(c, err)
		return
	}
	steps, err := h.companies.GetHiringSteps(ctx, employerID)
	if err != nil {
		storeError(c, err)
		return
	}
	jobs, err := h.jobs.GetActiveByEmployer(ctx, employerID)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":      profile,
		"experiences":  experiences,
		"benefits":     benefits,
		"gallery":      gallery,
		"hiring_steps": steps,
		"jobs":         jobs,
	})
}

type profileRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Location    string `json:"location"`
}

func (h *CompaniesHandler) UpsertProfile(c *gin.Context) {

	employerID, ok := requireUser(c)
	if !ok {
		return
	}

	var request profileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	profile := &models.CompanyProfile{
		EmployerID:  employerID,
		Name:        request.Name,
		Description: request.Description,
		Website:     request.Website,
		Location:    request.Location,
	}
	if err := h.companies.UpsertProfile(c.Request.Context(), profile); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type benefitRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Position    int    `json:"position"`
}

func (h *CompaniesHandler) AddBenefit(c *gin.Context) {

	employerID, ok := requireUser(c)
	if !ok {
		return
	}

	var request benefitRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	benefit := &models.CompanyBenefit{
		EmployerID:  employerID,
		Title:       request.Title,
		Description: request.Description,
		Position:    request.Position,
	}
	if err := h.companies.AddBenefit(c.Request.Context(), benefit); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, benefit)
}

type galleryItemRequest struct {
	ImageKey string `json:"image_key" binding:"required"`
	Caption  string `json:"caption"`
	Position int    `json:"position"`
}

func (h *CompaniesHandler) AddGalleryItem(c *gin.Context) {

	employerID, ok := requireUser(c)
	if !ok {
		return
	}

	var request galleryItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	item := &models.CompanyGalleryItem{
		EmployerID: employerID,
		ImageKey:   request.ImageKey,
		Caption:    request.Caption,
		Position:   request.Position,
	}
	if err := h.companies.AddGalleryItem(c.Request.Context(), item); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

type hiringStepRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Position    int    `json:"position"`
}

func (h *CompaniesHandler) AddHiringStep(c *gin.Context) {

	employerID, ok := requireUser(c)
	if !ok {
		return
	}

	var request hiringStepRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	step := &models.CompanyHiringStep{
		EmployerID:  employerID,
		Title:       request.Title,
		Description: request.Description,
		Position:    request.Position,
	}
	if err := h.companies.AddHiringStep(c.Request.Context(), step); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, step)
}

type experienceRequest struct {
	AuthorName string `json:"author_name" binding:"required"`
	Text       string `json:"text" binding:"required"`
	Rating     int    `json:"rating" binding:"min=1,max=5"`
}

func (h *CompaniesHandler) AddExperience(c *gin.Context) {

	if _, ok := requireUser(c); !ok {
		return
	}

	employerID, err := strconv.ParseInt(c.Param("employerID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employer id"})
		return
	}

	var request experienceRequest
	if err = c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	experience := &models.CompanyExperience{
		EmployerID: employerID,
		AuthorName: request.AuthorName,
		Text:       request.Text,
		Rating:     request.Rating,
	}
	if err = h.companies.AddExperience(c.Request.Context(), experience); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, experience)
}

func (h *CompaniesHandler) ApproveExperience(c *gin.Context) {

	employerID, ok := requireUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid experience id"})
		return
	}

	if err = h.companies.ApproveExperience(c.Request.Context(), id, employerID); err != nil {
		storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAllExperiences is the employer's moderation view: unapproved
// reviews included.
func (h *CompaniesHandler) ListAllExperiences(c *gin.Context) {

	employerID, ok := requireUser(c)
	if !ok {
		return
	}

	experiences, err := h.companies.GetExperiences(c.Request.Context(), employerID, false)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"experiences": experiences})
}
