package api

import (
	"github.com/gin-gonic/gin"

	"github.com/shotam27/NoGambleMonsterBattle/internal/constants"
)

// NewRouter wires every route. Battle mutations need a ticket; reads and the
// websocket upgrade are public.
func NewRouter(h *BattleHandler, ws *WebsocketHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteCreatures, h.ListCreatures)
		apiRoutes.GET(constants.RouteMoves, h.ListMoves)
		apiRoutes.GET(constants.RouteAbilities, h.ListAbilities)
		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)
		apiRoutes.POST(constants.RouteBattles, h.CreateBattle)
		apiRoutes.GET(constants.RouteBattleStatus, h.GetStatus)
		if ws != nil {
			apiRoutes.GET(constants.RouteWebsocket, ws.Serve)
		}

		protected := apiRoutes.Group("")
		protected.Use(TicketRequired(h.tickets))
		protected.POST(constants.RouteBattleAction, h.SubmitMove)
		protected.POST(constants.RouteBattleSwitch, h.SubmitSwitch)
		protected.POST(constants.RouteBattleCancel, h.CancelAction)
	}
	return router
}
