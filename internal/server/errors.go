package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Sternrassler/placeholder-proxy/pkg/client"
	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Error string `json:"error"`
}

var errInvalidID = errors.New("id must be a positive integer")

// statusFor maps a data-layer error to the HTTP status returned to callers.
func statusFor(err error) int {
	switch {
	case client.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// respondError logs err and writes the generic error response.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)

	event := h.logger.Warn()
	if status != http.StatusNotFound {
		event = h.logger.Error()
	}
	event.Err(err).
		Str("request_id", c.GetString(requestIDKey)).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Msg("Upstream request failed")

	msg := "upstream request failed"
	if status == http.StatusNotFound {
		msg = "not found"
	}
	c.AbortWithStatusJSON(status, errorBody{Error: msg})
}

// pathID parses a positive integer path parameter and answers 400 on
// failure.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: errInvalidID.Error()})
		return 0, false
	}
	return id, true
}
