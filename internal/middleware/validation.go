package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	"github.com/yigit/facultyhub/internal/pkg/validation"
)

// BindJSON decodes and validates the request body into obj. On failure the
// request is answered with 400 and false is returned.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		abortBinding(c, err)
		return false
	}
	return true
}

// BindQuery is BindJSON for query parameters
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		abortBinding(c, err)
		return false
	}
	return true
}

func abortBinding(c *gin.Context, err error) {
	ce := validation.FromValidator(err)
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, ce.Message).WithField(ce.Field)
	if len(ce.Details) > 0 {
		detail = detail.WithDetails(ce.Details)
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}
