package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shotam27/NoGambleMonsterBattle/internal/constants"
	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
	"github.com/shotam27/NoGambleMonsterBattle/internal/logging"
)

// respondError maps the battle error taxonomy onto HTTP statuses. Anything
// unclassified is logged and reported with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case game.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest, constants.JSONKeyDetails: err.Error()})
	case game.IsIllegalState(err):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrIllegalAction, constants.JSONKeyDetails: err.Error()})
	case game.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	default:
		logging.Error(fallback, err, logging.Fields{constants.LogFieldBattleID: c.Param(constants.ParamBattleID)})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
	}
}

// battleIDParam returns the path battle id, answering 400 when it is not a
// uuid.
func battleIDParam(c *gin.Context) (string, bool) {
	id := c.Param(constants.ParamBattleID)
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleID})
		return "", false
	}
	return id, true
}
