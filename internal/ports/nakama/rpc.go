package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"tripeaks/internal/app"
	"tripeaks/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// gRPC status codes used by runtime.NewError.
const (
	codeInvalidArgument = 3
	codeInternal        = 13
	codeUnauthenticated = 16
)

// NewGameRequest is the optional payload of RpcNewGame.
type NewGameRequest struct {
	Level int `json:"level"`
}

// NewGameResponse is returned by RpcNewGame.
type NewGameResponse struct {
	MatchID string `json:"match_id"`
}

// VerifyReceiptRequest is the payload of RpcVerifyReceipt.
type VerifyReceiptRequest struct {
	Receipt string `json:"receipt"`
}

// VerifyReceiptResponse is returned for a valid receipt.
type VerifyReceiptResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Round      int    `json:"round"`
	Won        bool   `json:"won"`
	TotalScore int64  `json:"total_score"`
	TotalCoins int64  `json:"total_coins"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer, levels config.LevelList) error {
	if err := initializer.RegisterRpc(RpcNewGame, rpcNewGame); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcLevels, newRpcLevels(levels)); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcVerifyReceipt, rpcVerifyReceipt)
}

// rpcNewGame creates a solo match owned by the caller. Seat assignment is
// fixed: only the owner may join.
func rpcNewGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("Authentication required", codeUnauthenticated)
	}

	var req NewGameRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("Invalid payload", codeInvalidArgument)
		}
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameSolo, map[string]interface{}{
		"owner": userID,
		"level": req.Level,
	})
	if err != nil {
		logger.Error("rpcNewGame [User:%s]: Failed to create match: %v", userID, err)
		return "", runtime.NewError("Internal error", codeInternal)
	}

	logger.Info("rpcNewGame [User:%s]: Created match %s at level %d", userID, matchID, req.Level)
	b, _ := json.Marshal(NewGameResponse{MatchID: matchID})
	return string(b), nil
}

func newRpcLevels(levels config.LevelList) func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error) {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		b, err := json.Marshal(levels)
		if err != nil {
			logger.Error("rpcLevels: Failed to marshal levels: %v", err)
			return "", runtime.NewError("Internal error", codeInternal)
		}
		return string(b), nil
	}
}

func rpcVerifyReceipt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req VerifyReceiptRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.Receipt == "" {
		return "", runtime.NewError("Receipt required", codeInvalidArgument)
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret := env[EnvReceiptSecret]
	if secret == "" {
		logger.Error("rpcVerifyReceipt: %s not set", EnvReceiptSecret)
		return "", runtime.NewError("Receipts are not enabled", codeInternal)
	}

	receipt, err := app.NewResultSigner(secret).Verify(req.Receipt)
	if err != nil {
		logger.Warn("rpcVerifyReceipt: Rejected receipt: %v", err)
		return "", runtime.NewError("Invalid receipt", codeInvalidArgument)
	}

	b, _ := json.Marshal(VerifyReceiptResponse{
		ID:         receipt.ID,
		UserID:     receipt.UserID,
		Round:      receipt.Round,
		Won:        receipt.Won,
		TotalScore: receipt.TotalScore,
		TotalCoins: receipt.TotalCoins,
	})
	return string(b), nil
}
