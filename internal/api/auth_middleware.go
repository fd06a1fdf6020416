package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shotam27/NoGambleMonsterBattle/internal/constants"
	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
)

// TicketRequired validates the bearer battle ticket and injects the battle id
// and side it grants into the context.
func TicketRequired(tickets *Tickets) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(constants.HeaderAuthorization)
		if !strings.HasPrefix(header, constants.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		ticket, err := tickets.Parse(strings.TrimPrefix(header, constants.BearerPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidTicket})
			return
		}
		if id := c.Param(constants.ParamBattleID); id != "" && id != ticket.BattleID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrTicketWrongBattle})
			return
		}
		c.Set(constants.ContextKeyBattleID, ticket.BattleID)
		c.Set(constants.ContextKeySide, string(ticket.Side))
		c.Next()
	}
}

// ticketSide reads the side injected by TicketRequired.
func ticketSide(c *gin.Context) game.SideRole {
	return game.SideRole(c.GetString(constants.ContextKeySide))
}
