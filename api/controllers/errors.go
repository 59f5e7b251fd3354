package controllers

import (
	"errors"
	"github.com/alex-pricope/simple-polls/api/models"
	"github.com/alex-pricope/simple-polls/api/transport"
	"github.com/alex-pricope/simple-polls/logging"
	"github.com/alex-pricope/simple-polls/services"
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
)

// respondError maps service errors onto HTTP statuses. Anything unexpected is logged and hidden.
func respondError(g *gin.Context, prefix string, err error) {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation):
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: validation.Message, Field: validation.Field})
	case errors.Is(err, services.ErrUnauthenticated), errors.Is(err, services.ErrInvalidCredentials):
		g.JSON(http.StatusUnauthorized, models.UnauthenticatedResponse{
			Error:    err.Error(),
			LoginURL: transport.LoginURL(g.Request.URL.RequestURI()),
		})
	case errors.Is(err, services.ErrPermissionDenied):
		g.JSON(http.StatusForbidden, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrNotFound):
		g.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrAlreadyVoted):
		g.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrThrottled):
		g.JSON(http.StatusTooManyRequests, models.ErrorResponse{Error: err.Error()})
	default:
		logging.Log.Errorf("%s: %v", prefix, err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error"})
	}
}

// pathID parses a positive numeric path parameter. Anything else cannot name a row.
func pathID(g *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(g.Param(name), 10, 64)
	if err != nil || id == 0 {
		g.JSON(http.StatusNotFound, models.ErrorResponse{Error: services.ErrNotFound.Error()})
		return 0, false
	}
	return uint(id), true
}

func resultsURL(questionID uint) string {
	return "/polls/" + strconv.FormatUint(uint64(questionID), 10) + "/results/"
}
