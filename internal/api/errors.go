package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hirehall/jobboard/internal/logger"
	log "github.com/sirupsen/logrus"
)

// storeError is the hard-failure path: the underlying store failed and
// the request aborts. Validation and not-found conditions never come
// through here.
func storeError(c *gin.Context, err error) {
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
