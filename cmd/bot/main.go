package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/crocodile/internal/common/clock"
	"github.com/KirkDiggler/crocodile/internal/common/keylock"
	"github.com/KirkDiggler/crocodile/internal/common/uuid"
	"github.com/KirkDiggler/crocodile/internal/handlers/discord"
	"github.com/KirkDiggler/crocodile/internal/handlers/web"
	"github.com/KirkDiggler/crocodile/internal/models"
	"github.com/KirkDiggler/crocodile/internal/repositories/score"
	"github.com/KirkDiggler/crocodile/internal/repositories/session"
	"github.com/KirkDiggler/crocodile/internal/repositories/settings"
	gameService "github.com/KirkDiggler/crocodile/internal/services/game"
	ledgerService "github.com/KirkDiggler/crocodile/internal/services/ledger"
	messagingService "github.com/KirkDiggler/crocodile/internal/services/messaging"
	"github.com/KirkDiggler/crocodile/internal/words"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &Config{}
	cmd := newCmd(cfg)
	cmd.SetContext(ctx)
	cobra.CheckErr(cmd.Execute())
}

func setupLogging(cfg *Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if lvl, err := zerolog.ParseLevel(cfg.logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.logPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func run(ctx context.Context, cfg *Config) error {
	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.redisAddr,
		Password: cfg.redisPassword,
		DB:       cfg.redisDB,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", cfg.redisAddr, err)
	}

	// Initialize repositories
	sessionRepo, err := session.NewRedis(&session.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create session repository: %w", err)
	}

	settingsRepo, err := settings.NewRedis(&settings.Config{
		RedisClient: redisClient,
		Defaults: settings.Defaults{
			Language: cfg.defaultLanguage,
			GameMode: models.Difficulty(cfg.defaultMode),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create settings repository: %w", err)
	}

	db, err := score.Open(cfg.sqlitePath)
	if err != nil {
		return fmt.Errorf("failed to open score database: %w", err)
	}
	defer db.Close()

	scoreRepo, err := score.NewSQLite(&score.Config{DB: db})
	if err != nil {
		return fmt.Errorf("failed to create score repository: %w", err)
	}

	// Load the word pool once; it is read-only afterwards
	lists, err := loadWords(cfg.wordsDir)
	if err != nil {
		return err
	}
	pool := words.New(&words.Config{Lists: lists})

	// Initialize services
	ledgerSvc, err := ledgerService.New(&ledgerService.Config{
		ScoreRepo: scoreRepo,
	})
	if err != nil {
		return fmt.Errorf("failed to create ledger service: %w", err)
	}

	gameSvc, err := gameService.New(&gameService.Config{
		RoundTimeout: cfg.roundTimeout,
		Reward: gameService.Reward{
			Score: cfg.rewardScore,
			Coins: cfg.rewardCoins,
			XP:    cfg.rewardXP,
		},
		SessionRepo:  sessionRepo,
		SettingsRepo: settingsRepo,
		Ledger:       ledgerSvc,
		Words:        pool,
		Clock:        clock.New(),
		UUID:         uuid.New(),
		Locker:       keylock.New(),
	})
	if err != nil {
		return fmt.Errorf("failed to create game service: %w", err)
	}

	messagingSvc, err := messagingService.NewService(&messagingService.Config{})
	if err != nil {
		return fmt.Errorf("failed to create messaging service: %w", err)
	}

	bot, err := discord.New(&discord.Config{
		Token:         cfg.discordToken,
		ApplicationID: cfg.applicationID,
		GuildID:       cfg.guildID,
		GameService:   gameSvc,
		Ledger:        ledgerSvc,
		Messaging:     messagingSvc,
		Prefixes:      cfg.prefixes,
	})
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	if err := bot.Start(); err != nil {
		return fmt.Errorf("failed to start bot: %w", err)
	}

	serverErr := make(chan error, 1)
	var server *web.Server
	if cfg.httpAddr != "" {
		server, err = web.New(&web.Config{
			Addr:   cfg.httpAddr,
			Ledger: ledgerSvc,
			Checks: map[string]web.CheckFunc{
				"redis": func(ctx context.Context) error {
					return redisClient.Ping(ctx).Err()
				},
			},
		})
		if err != nil {
			_ = bot.Stop()
			return fmt.Errorf("failed to create http server: %w", err)
		}

		go func() {
			serverErr <- server.Start()
		}()
	}

	log.Info().Msg("crocodile is running, press CTRL-C to exit")

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-serverErr:
		if err != nil {
			runErr = fmt.Errorf("http server stopped: %w", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("failed to stop http server")
		}
	}

	if err := bot.Stop(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("failed to stop bot: %w", err))
	}

	return runErr
}

func loadWords(dir string) (map[models.Difficulty][]string, error) {
	if dir == "" {
		lists, err := words.LoadEmbedded()
		if err != nil {
			return nil, fmt.Errorf("failed to load built-in word lists: %w", err)
		}
		return lists, nil
	}

	lists, err := words.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load word lists from %s: %w", dir, err)
	}
	return lists, nil
}
