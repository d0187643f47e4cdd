package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/papermill/internal/domain/errors"
	"github.com/polkiloo/papermill/internal/domain/model"
	"github.com/polkiloo/papermill/internal/server/http/dto"
	"github.com/polkiloo/papermill/internal/server/http/middleware"
)

// CurrentActor extracts the authenticated actor from context.
func CurrentActor(c *gin.Context) model.Actor {
	actor, _ := middleware.ActorFrom(c)
	return actor
}

var statusByKind = map[domainErrors.Kind]int{
	domainErrors.KindValidation:             http.StatusBadRequest,
	domainErrors.KindNotFound:               http.StatusNotFound,
	domainErrors.KindForbidden:              http.StatusForbidden,
	domainErrors.KindConflict:               http.StatusConflict,
	domainErrors.KindOrderCreationExhausted: http.StatusServiceUnavailable,
	domainErrors.KindUnauthorized:           http.StatusUnauthorized,
}

// writeError renders err as an ErrorResponse. Unexpected errors are attached
// to the gin context for the request logger and never reach the client.
func writeError(c *gin.Context, err error) {
	kind := domainErrors.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   string(domainErrors.KindUnexpected),
			Message: "internal server error",
		})
		return
	}

	resp := dto.ErrorResponse{Error: string(kind), Message: messageFor(kind)}
	var verr *domainErrors.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			resp.Fields = append(resp.Fields, dto.FieldErrorResponse{Field: f.Field, Reason: f.Reason})
		}
	}
	c.JSON(status, resp)
}

func messageFor(kind domainErrors.Kind) string {
	switch kind {
	case domainErrors.KindValidation:
		return "request validation failed"
	case domainErrors.KindNotFound:
		return "resource not found"
	case domainErrors.KindForbidden:
		return "operation not permitted for this account"
	case domainErrors.KindConflict:
		return "request conflicts with the current state of the resource"
	case domainErrors.KindOrderCreationExhausted:
		return "could not allocate an order number, please retry"
	case domainErrors.KindUnauthorized:
		return "invalid credentials"
	default:
		return "internal server error"
	}
}

// bindJSON decodes the request body into dst, writing a 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, domainErrors.NewValidationError("body", "malformed JSON"))
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON that accepts an empty body.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, domainErrors.NewValidationError("body", "malformed JSON"))
		return false
	}
	return true
}
