package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hirehall/jobboard/internal/domain/models"
	"github.com/hirehall/jobboard/internal/repositories"
	"github.com/pkg/errors"
)

type SearchesHandler struct {
	searches *repositories.SavedSearches
}

func NewSearchesHandler(searches *repositories.SavedSearches) *SearchesHandler {
	return &SearchesHandler{searches: searches}
}

func (h *SearchesHandler) List(c *gin.Context) {

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	searches, err := h.searches.GetByUser(c.Request.Context(), userID)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"searches": searches})
}

type createSearchRequest struct {
	Name    string            `json:"name"`
	Filters models.JobFilters `json:"filters"`
}

func (h *SearchesHandler) Create(c *gin.Context) {

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var request createSearchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	search, err := h.searches.Create(c.Request.Context(), userID, request.Name, request.Filters)
	switch {
	case errors.Is(err, repositories.ErrSearchNameRequired),
		errors.Is(err, repositories.ErrSearchNameTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrSearchCapReached):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		storeError(c, err)
	default:
		c.JSON(http.StatusCreated, search)
	}
}

func (h *SearchesHandler) Delete(c *gin.Context) {

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid search id"})
		return
	}

	if err = h.searches.Remove(c.Request.Context(), id, userID); err != nil {
		storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
