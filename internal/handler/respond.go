package handler

import (
	"net/http"
	"strconv"

	"github.com/chandragiri4649/milksync-sub000/config"
	"github.com/chandragiri4649/milksync-sub000/internal/apperr"
	"github.com/chandragiri4649/milksync-sub000/internal/models"

	"github.com/gin-gonic/gin"
)

// respondError maps an error from the taxonomy onto its HTTP status. Typed
// errors carry their own message to the caller; anything else is reported as
// an opaque failure and logged with full detail.
func respondError(c *gin.Context, module, funcName string, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		config.LogError(config.GetLogger(), module, funcName, c.FullPath(), nil, err)
		c.JSON(status, gin.H{"error": "failed to load/save"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// currentUser returns the acting user the auth middleware attached to the
// request.
func currentUser(c *gin.Context) (*models.User, error) {
	if v, ok := c.Get("actingUser"); ok {
		if user, ok := v.(*models.User); ok {
			return user, nil
		}
	}
	return nil, apperr.NewAuthError("no authenticated user on request")
}

// callerDistributorID returns the distributor account behind a
// distributor-role caller, for "mine" style listings and ownership checks.
func callerDistributorID(c *gin.Context) (uint, error) {
	id := c.GetUint("distributorID")
	if id == 0 {
		return 0, apperr.NewAuthError("user is not linked to a distributor")
	}
	return id, nil
}

func toParam(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
