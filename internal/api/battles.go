package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shotam27/NoGambleMonsterBattle/internal/constants"
	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
	"github.com/shotam27/NoGambleMonsterBattle/internal/service"
)

type CreateBattleRequest struct {
	PlayerName     string   `json:"player_name" binding:"required"`
	Roster         []string `json:"roster" binding:"required"`
	OpponentRoster []string `json:"opponent_roster"`
	Rematch        bool     `json:"rematch"`
	// ConnectionID optionally routes battle events to an open websocket.
	ConnectionID string `json:"connection_id"`
}

type MoveRequest struct {
	MoveID string `json:"move_id" binding:"required"`
}

type SwitchRequest struct {
	TargetIndex *int `json:"target_index" binding:"required"`
}

// CreateBattle starts a battle against the AI and returns a ticket for the
// player side.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	b, err := h.battles.StartBattle(c.Request.Context(), service.StartRequest{
		Identity:       req.ConnectionID,
		PlayerName:     req.PlayerName,
		Roster:         req.Roster,
		OpponentRoster: req.OpponentRoster,
		Rematch:        req.Rematch,
	})
	if err != nil {
		respondError(c, err, constants.ErrFailedCreateBattle)
		return
	}
	ticket, err := h.tickets.Issue(b.ID, game.RolePlayer)
	if err != nil {
		respondError(c, err, constants.ErrFailedIssueTicket)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"battle": b, "ticket": ticket, "side": game.RolePlayer})
}

// GetStatus returns the current battle snapshot.
func (h *BattleHandler) GetStatus(c *gin.Context) {
	id, ok := battleIDParam(c)
	if !ok {
		return
	}
	b, err := h.battles.GetStatus(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, constants.ErrFailedFetchBattle)
		return
	}
	c.JSON(http.StatusOK, b)
}

// SubmitMove records a move for the ticket's side.
func (h *BattleHandler) SubmitMove(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	h.submit(c, game.MoveAction(req.MoveID))
}

// SubmitSwitch records a switch for the ticket's side, voluntary or forced.
func (h *BattleHandler) SubmitSwitch(c *gin.Context) {
	var req SwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	h.submit(c, game.SwitchAction(*req.TargetIndex))
}

func (h *BattleHandler) submit(c *gin.Context, action *game.Action) {
	id, ok := battleIDParam(c)
	if !ok {
		return
	}
	out, err := h.battles.SubmitAction(c.Request.Context(), id, ticketSide(c), action)
	if err != nil {
		respondError(c, err, constants.ErrFailedStoreAction)
		return
	}
	msg := "Action stored. Waiting for opponent."
	if out.Resolved {
		msg = "Turn resolved"
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyMessage: msg,
		"resolved":               out.Resolved,
		"battle_log":             out.Log,
		"battle":                 out.Battle,
	})
}

// CancelAction withdraws the ticket side's pending action.
func (h *BattleHandler) CancelAction(c *gin.Context) {
	id, ok := battleIDParam(c)
	if !ok {
		return
	}
	b, err := h.battles.CancelAction(c.Request.Context(), id, ticketSide(c))
	if err != nil {
		respondError(c, err, constants.ErrFailedStoreAction)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Action cancelled", "battle": b})
}
