package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tastebook-backend/internal/platform/apierr"
)

// Page is the standard list envelope.
type Page struct {
	Count   int64       `json:"count"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
	Results interface{} `json:"results"`
}

func OK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

func Created(c *gin.Context, body interface{}) {
	c.JSON(http.StatusCreated, body)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Paginated(c *gin.Context, count int64, limit, offset int, results interface{}) {
	c.JSON(http.StatusOK, &Page{Count: count, Limit: limit, Offset: offset, Results: results})
}

// Fail maps a service error onto the wire: apierr carries its own status and
// code, anything else is a 500.
func Fail(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{
			"error":   apiErr.Code,
			"message": apiErr.Error(),
		})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":   "internal_error",
		"message": "internal server error",
	})
}

// FailValidation is for binding errors caught at the handler boundary.
func FailValidation(c *gin.Context, err error) {
	Fail(c, apierr.Validation(err))
}
