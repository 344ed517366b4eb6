package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hirehall/jobboard/internal/repositories"
	"github.com/hirehall/jobboard/internal/services"
)

// DashboardHandler groups the signed-in user's board: tailored jobs,
// favorites and notifications.
type DashboardHandler struct {
	tailored      *services.TailoredJobs
	jobs          *repositories.Jobs
	favorites     *repositories.Favorites
	notifications *repositories.Notifications
}

func NewDashboardHandler(tailored *services.TailoredJobs, jobs *repositories.Jobs,
	favorites *repositories.Favorites, notifications *repositories.Notifications) *DashboardHandler {

	return &DashboardHandler{
		tailored:      tailored,
		jobs:          jobs,
		favorites:     favorites,
		notifications: notifications,
	}
}

func (h *DashboardHandler) TailoredJobs(c *gin.Context) {

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	jobs, err := h.tailored.Get(c.Request.Context(), userID)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *DashboardHandler) FavoriteJobs(c *gin.Context) {

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	jobs, err := h.jobs.GetFavorited(c.Request.Context(), userID)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *DashboardHandler) AddFavorite(c *gin.Context) {
	h.mutateFavorite(c, h.favorites.Add)
}

func (h *DashboardHandler) RemoveFavorite(c *gin.Context) {
	h.mutateFavorite(c, h.favorites.Remove)
}

func (h *DashboardHandler) mutateFavorite(c *gin.Context,
	action func(ctx context.Context, userID int64, jobID int) error) {

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	jobID, err := strconv.Atoi(c.Param("jobID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	if err = action(c.Request.Context(), userID, jobID); err != nil {
		storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DashboardHandler) Notifications(c *gin.Context) {

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	notifications, err := h.notifications.GetByUser(c.Request.Context(), userID)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *DashboardHandler) MarkNotificationRead(c *gin.Context) {

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err = h.notifications.MarkRead(c.Request.Context(), id, userID); err != nil {
		storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
