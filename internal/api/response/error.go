package response

import (
	"ctchen222/Tic-Tac-Toe-Solo/internal/game"
	"ctchen222/Tic-Tac-Toe-Solo/internal/repository"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Error struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Extras  string `json:"extras"`
}

func (e Error) Error() string {
	return e.Extras
}

func NewError(success bool, code int, message string) Error {
	return Error{
		Success: success,
		Code:    code,
		Extras:  message,
	}
}

// FromDomain maps a service error to the status and message a client sees.
// Anything unrecognised is an internal error and its details are hidden.
func FromDomain(err error) Error {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		return NewError(false, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrOutOfTurn), errors.Is(err, game.ErrCellOccupied):
		return NewError(false, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrOutOfBounds):
		return NewError(false, http.StatusUnprocessableEntity, err.Error())
	default:
		return NewError(false, http.StatusInternalServerError, "internal server error")
	}
}

// DomainErrorResponse writes the envelope for a service error.
func DomainErrorResponse(c *gin.Context, err error) {
	e := FromDomain(err)
	ErrorResponse(c, e.Code, e.Extras)
}
