// Command simulate plays rounds of a level with a bot and reports the win
// rate and average score, for tuning the balance files.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tripeaks/internal/app"
	"tripeaks/internal/bot"
	"tripeaks/internal/config"
	"tripeaks/internal/ports"
	"tripeaks/internal/ports/memory"
	"tripeaks/internal/ports/postgres"
)

type options struct {
	configPath  string
	levelsPath  string
	databaseURL string
	level       int
	rounds      int
	botLevel    string
	seed        int64
	coins       int64
	stepSeconds float64
	verbose     bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseOptions() options {
	var o options
	flag.StringVar(&o.configPath, "config", getenv("TRIPEAKS_CONFIG", ""), "game config JSON (defaults when empty)")
	flag.StringVar(&o.levelsPath, "levels", getenv("TRIPEAKS_LEVELS", ""), "level list YAML (classic board when empty)")
	flag.StringVar(&o.databaseURL, "db", getenv("DATABASE_URL", ""), "Postgres DSN; in-memory store when empty")
	flag.IntVar(&o.level, "level", 1, "level to play")
	flag.IntVar(&o.rounds, "rounds", 100, "rounds to play")
	flag.StringVar(&o.botLevel, "bot", "greedy", "bot strategy: basic or greedy")
	flag.Int64Var(&o.seed, "seed", time.Now().UnixNano(), "random seed")
	flag.Int64Var(&o.coins, "coins", 0, "starting coins (config value when 0)")
	flag.Float64Var(&o.stepSeconds, "step", 1.5, "seconds of round time each bot move takes")
	flag.BoolVar(&o.verbose, "v", false, "log every round")
	flag.Parse()
	return o
}

func main() {
	os.Exit(realMain())
}

// realMain returns the exit code so deferred cleanup runs before exit.
func realMain() int {
	_ = godotenv.Load()
	opts := parseOptions()

	logger, err := newLogger(opts.verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, logger, opts); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		return 1
	}
	return 0
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

func run(ctx context.Context, logger *zap.Logger, opts options) error {
	rules := config.Default()
	if opts.configPath != "" {
		if err := config.LoadGameConfig(opts.configPath); err != nil {
			return err
		}
		rules = config.GetGameConfig()
	}

	levels := config.LevelList{Levels: []config.Level{config.DefaultLevel()}}
	if opts.levelsPath != "" {
		loaded, err := config.LoadLevels(opts.levelsPath)
		if err != nil {
			return err
		}
		levels = loaded
	}
	level, ok := levels.First(opts.level)
	if !ok {
		return fmt.Errorf("level %d not found", opts.level)
	}

	botLevel, err := bot.ParseBotLevel(opts.botLevel)
	if err != nil {
		return err
	}
	brain, err := bot.NewBrain(botLevel)
	if err != nil {
		return err
	}

	runID := uuid.New()
	playerID := "sim-" + runID.String()
	coins := opts.coins
	if coins == 0 {
		coins = rules.StartingCoins
	}

	var (
		store ports.ScoreStore
		db    *postgres.DB
	)
	if opts.databaseURL != "" {
		db, err = postgres.Open(ctx, opts.databaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
		playerStore := db.PlayerStore(playerID)
		if err := playerStore.Set(ctx, ports.KeyCoins, coins); err != nil {
			return err
		}
		store = playerStore
	} else {
		store = memory.NewStore(map[string]int64{ports.KeyCoins: coins})
	}

	logger.Info("starting simulation",
		zap.String("run_id", runID.String()),
		zap.String("bot", opts.botLevel),
		zap.Int("level", level.Level),
		zap.Int("rounds", opts.rounds),
		zap.Int64("seed", opts.seed),
		zap.Bool("postgres", db != nil),
	)

	engine := app.NewEngine(rules, store, rand.New(rand.NewSource(opts.seed)))
	agent := &bot.Agent{ID: playerID, Name: "Simulator", Strategy: brain}

	if _, err := engine.Start(ctx, level); err != nil {
		return err
	}

	var (
		wins       int
		totalScore int64
		played     int
	)
	for i := 0; i < opts.rounds; i++ {
		if i > 0 {
			if next, ok := levels.Find(level.Level, engine.NextRound()); ok {
				if err := engine.SetLevel(next); err != nil {
					return err
				}
			}
			if _, err := engine.Restart(ctx); err != nil {
				return err
			}
		}

		result, err := agent.PlayRound(ctx, engine, opts.stepSeconds)
		if err != nil {
			return err
		}
		played++
		if result.Won {
			wins++
		}
		totalScore += result.TotalScore

		logger.Debug("round finished",
			zap.Int("round", result.Round),
			zap.Bool("won", result.Won),
			zap.Int64("score", result.TotalScore),
			zap.Int64("coins", result.TotalCoins),
			zap.Int("cards_left", engine.OccupiedSlots()),
		)

		if db != nil {
			if err := db.RecordRound(ctx, runID, playerID, level.Level, result); err != nil {
				return fmt.Errorf("failed to record round: %w", err)
			}
		}
	}

	if played == 0 {
		logger.Warn("no rounds played")
		return nil
	}
	state := engine.State()
	logger.Info("simulation finished",
		zap.String("run_id", runID.String()),
		zap.Int("rounds", played),
		zap.Int("wins", wins),
		zap.Float64("win_rate", float64(wins)/float64(played)),
		zap.Float64("average_score", float64(totalScore)/float64(played)),
		zap.Int64("high_score", state.HighScore),
		zap.Int64("coins", state.Coins),
	)

	if db != nil {
		summary, err := db.SummarizeRun(ctx, runID)
		if err != nil {
			return err
		}
		logger.Info("stored run",
			zap.Int("rounds", summary.Rounds),
			zap.Int("wins", summary.Wins),
			zap.Float64("average_score", summary.AverageScore),
		)
	}

	fmt.Printf("%s: %d/%d won (%.1f%%), average score %.0f\n",
		opts.botLevel, wins, played, 100*float64(wins)/float64(played), float64(totalScore)/float64(played))
	return nil
}
