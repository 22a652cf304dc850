package nakama

import (
	"context"
	"database/sql"

	"tripeaks/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	defaultConfigPath = "data/game_config.json"
	defaultLevelsPath = "data/levels.yaml"
)

// InitModule loads the rules and levels, then wires RPCs, the solo match
// handler and the onboarding hook into the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	configPath := defaultConfigPath
	if p := env[EnvConfigPath]; p != "" {
		configPath = p
	}
	if err := config.LoadGameConfig(configPath); err != nil {
		logger.Warn("InitModule: Could not load game config, using defaults: %v", err)
	}
	rules := config.GetGameConfig()

	levelsPath := defaultLevelsPath
	if p := env[EnvLevelsPath]; p != "" {
		levelsPath = p
	}
	levels, err := config.LoadLevels(levelsPath)
	if err != nil {
		logger.Warn("InitModule: Could not load levels, using the default level: %v", err)
		levels = config.LevelList{Levels: []config.Level{config.DefaultLevel()}}
	}

	if err := RegisterRPCs(initializer, levels); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameSolo, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(rules, levels), nil
	}); err != nil {
		return err
	}

	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	logger.Info("TriPeaks Go module loaded with %d levels.", len(levels.Levels))
	return nil
}
