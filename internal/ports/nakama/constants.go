package nakama

const (
	// RpcNewGame creates a solo match owned by the caller.
	RpcNewGame = "tripeaks_new_game"
	// RpcLevels lists the playable levels.
	RpcLevels = "tripeaks_levels"
	// RpcVerifyReceipt checks a round receipt issued by the match.
	RpcVerifyReceipt = "tripeaks_verify_receipt"

	// MatchNameSolo is the authoritative match handler name registered with Nakama.
	MatchNameSolo = "tripeaks_solo"

	// DefaultTickRate is the match loop frequency when the env does not set one.
	DefaultTickRate = 10

	// StorageCollection holds per-player values such as the high score.
	StorageCollection = "tripeaks"
)

// Environment keys read from RUNTIME_CTX_ENV.
const (
	EnvTickRate      = "tripeaks_tick_rate"
	EnvReceiptSecret = "tripeaks_receipt_secret"
	EnvConfigPath    = "tripeaks_config_path"
	EnvLevelsPath    = "tripeaks_levels_path"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpRevealNextCard int64 = 1
	OpAttemptMatch   int64 = 2 // {"slot": n}
	OpUndo           int64 = 3
	OpShuffleBoard   int64 = 4
	OpWildCard       int64 = 5
	OpExtraCards     int64 = 6
	OpExtraTime      int64 = 7
	OpRestart        int64 = 8
	OpPause          int64 = 9 // {"paused": bool}
	OpEndRound       int64 = 10

	// Server -> Client events
	OpSnapshot   int64 = 101
	OpEvents     int64 = 102
	OpRoundEnded int64 = 103
	OpGameError  int64 = 104
)
