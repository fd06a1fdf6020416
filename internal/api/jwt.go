package api

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"

	"github.com/shotam27/NoGambleMonsterBattle/internal/game"
)

const (
	claimBattle = "bid"
	claimSide   = "side"
)

var (
	errTicketMalformed = errors.New("ticket is missing battle claims")
	errTicketMethod    = errors.New("unexpected ticket signing method")
)

// Ticket is what a verified battle ticket grants: the right to act for one
// side of one battle.
type Ticket struct {
	BattleID string
	Side     game.SideRole
}

// Tickets signs and verifies HS256 battle tickets.
type Tickets struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTickets builds a signer. An empty secret generates an in-memory one,
// so tickets do not survive a restart.
func NewTickets(secret string, ttl time.Duration) (*Tickets, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := crand.Read(key); err != nil {
			return nil, fmt.Errorf("generating dev ticket secret: %w", err)
		}
	}
	return &Tickets{secret: key, ttl: ttl, now: time.Now}, nil
}

func (t *Tickets) Issue(battleID string, side game.SideRole) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		claimBattle: battleID,
		claimSide:   string(side),
		"iat":       now.Unix(),
		"exp":       now.Add(t.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *Tickets) Parse(token string) (*Ticket, error) {
	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errTicketMethod
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errTicketMalformed
	}
	bid, _ := claims[claimBattle].(string)
	side, _ := claims[claimSide].(string)
	if bid == "" || (side != string(game.RolePlayer) && side != string(game.RoleOpponent)) {
		return nil, errTicketMalformed
	}
	return &Ticket{BattleID: bid, Side: game.SideRole(side)}, nil
}
