package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shotam27/NoGambleMonsterBattle/internal/constants"
)

func (h *BattleHandler) ListCreatures(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Creatures())
}

func (h *BattleHandler) ListMoves(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Moves())
}

func (h *BattleHandler) ListAbilities(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Abilities())
}

// ListLeaderboard returns the top players by wins; ?limit=N overrides the
// configured size up to 100.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	limit := h.leaderboardSize
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	players, err := h.leaderboard.GetTopPlayers(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, constants.ErrFailedFetchLeaderboard)
		return
	}
	c.JSON(http.StatusOK, players)
}
