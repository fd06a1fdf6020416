package constants

// Centralized constants for headers, env keys, routes and messages.
const (
	// Environment variable keys
	EnvConfigPath     = "MONSTER_BATTLE_CONFIG"
	EnvDatabaseDSN    = "MONSTER_BATTLE_DB"
	EnvDatabaseDriver = "MONSTER_BATTLE_DB_DRIVER"
	EnvServerAddress  = "MONSTER_BATTLE_ADDR"
	EnvSessionSecret  = "SESSION_SECRET"
	EnvHealthcheckURL = "MONSTER_BATTLE_HEALTH_URL"

	DefaultConfigPath  = "./monster_battle.yaml"
	DefaultHealthcheck = "http://127.0.0.1:8080/api/version"

	// HTTP headers
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	ContentTypeJSON     = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteCreatures     = "/creatures"
	RouteMoves         = "/moves"
	RouteAbilities     = "/abilities"
	RouteLeaderboard   = "/leaderboard"
	RouteVersion       = "/version"
	RouteBattles       = "/battles"
	RouteBattleStatus  = "/battles/:battleID/status"
	RouteBattleAction  = "/battles/:battleID/action"
	RouteBattleSwitch  = "/battles/:battleID/switch"
	RouteBattleCancel  = "/battles/:battleID/cancel"
	RouteWebsocket     = "/ws"
	ParamBattleID      = "battleID"
	ContextKeyBattleID = "battleID"
	ContextKeySide     = "battleSide"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrInvalidBattleID        = "Invalid battle ID"
	ErrBattleNotFound         = "Battle not found"
	ErrFailedCreateBattle     = "Failed to create battle"
	ErrFailedStoreAction      = "Failed to store action"
	ErrFailedFetchBattle      = "Failed to fetch battle"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrIllegalAction          = "Action not allowed in the current battle state"
	ErrAuthRequired           = "Battle ticket required"
	ErrInvalidTicket          = "Invalid battle ticket"
	ErrTicketWrongBattle      = "Ticket does not belong to this battle"
	ErrFailedIssueTicket      = "Failed to issue battle ticket"
	ErrUnknownMessage         = "Unknown message type"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldSide     = "side"
	LogFieldConnID   = "conn_id"
	LogFieldTurn     = "turn"
	LogFieldStatus   = "status"
	LogFieldWinner   = "winner"
	LogFieldEvent    = "event"
	LogFieldWaiting  = "waiting"
	LogFieldDriver   = "driver"
	LogFieldAddr     = "addr"
	LogFieldConfig   = "config_path"
	LogFieldMode     = "mode"
)
