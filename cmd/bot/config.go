package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/KirkDiggler/crocodile/internal/models"
	"github.com/KirkDiggler/crocodile/internal/services/game"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "CROCODILE"

// Config is the process configuration, read from flags, CROCODILE_* env
// vars and an optional .env file
type Config struct {
	discordToken  string
	applicationID string
	guildID       string
	prefixes      []string

	redisAddr     string
	redisPassword string
	redisDB       int

	sqlitePath string
	wordsDir   string

	roundTimeout    time.Duration
	rewardScore     int64
	rewardCoins     int64
	rewardXP        int64
	defaultLanguage string
	defaultMode     string

	httpAddr string

	logLevel  string
	logPretty bool
}

// validate checks the configuration and normalizes the default mode and
// language to their canonical form
func (c *Config) validate() error {
	if c.discordToken == "" {
		return errors.New("--discord-token is required (env: CROCODILE_DISCORD_TOKEN)")
	}
	if c.roundTimeout <= 0 {
		return fmt.Errorf("invalid round timeout: %s", c.roundTimeout)
	}
	if c.rewardScore < 0 || c.rewardCoins < 0 || c.rewardXP < 0 {
		return errors.New("rewards cannot be negative")
	}
	mode, ok := models.ParseDifficulty(c.defaultMode)
	if !ok {
		return fmt.Errorf("invalid default mode: %q", c.defaultMode)
	}
	c.defaultMode = mode.String()

	c.defaultLanguage = strings.ToLower(strings.TrimSpace(c.defaultLanguage))
	if !slices.Contains(game.SupportedLanguages, c.defaultLanguage) {
		return fmt.Errorf("unsupported default language: %q", c.defaultLanguage)
	}
	if len(c.prefixes) == 0 {
		return errors.New("at least one command prefix is required")
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "crocodile",
		Short:         "Crocodile word-guessing game bot for Discord.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			setupLogging(cfg)
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.discordToken, "discord-token", "", "Discord bot token (env: CROCODILE_DISCORD_TOKEN)")
	fs.StringVar(&cfg.applicationID, "application-id", "", "Discord application ID, defaults to the bot user (env: CROCODILE_APPLICATION_ID)")
	fs.StringVar(&cfg.guildID, "guild-id", "", "register slash commands for one guild only (env: CROCODILE_GUILD_ID)")
	fs.StringSliceVar(&cfg.prefixes, "prefixes", []string{"/", "."}, "text command prefixes (env: CROCODILE_PREFIXES)")

	fs.StringVar(&cfg.redisAddr, "redis-addr", "localhost:6379", "Redis address (env: CROCODILE_REDIS_ADDR)")
	fs.StringVar(&cfg.redisPassword, "redis-password", "", "Redis password (env: CROCODILE_REDIS_PASSWORD)")
	fs.IntVar(&cfg.redisDB, "redis-db", 0, "Redis database number (env: CROCODILE_REDIS_DB)")

	fs.StringVar(&cfg.sqlitePath, "sqlite-path", "data/scores.db", "score database file (env: CROCODILE_SQLITE_PATH)")
	fs.StringVar(&cfg.wordsDir, "words-dir", "", "directory with easy.txt, hard.txt and adult.txt, built-in lists when empty (env: CROCODILE_WORDS_DIR)")

	fs.DurationVar(&cfg.roundTimeout, "round-timeout", game.DefaultRoundTimeout, "time before an unsolved round expires (env: CROCODILE_ROUND_TIMEOUT)")
	fs.Int64Var(&cfg.rewardScore, "reward-score", game.DefaultReward.Score, "score for a correct guess (env: CROCODILE_REWARD_SCORE)")
	fs.Int64Var(&cfg.rewardCoins, "reward-coins", game.DefaultReward.Coins, "coins for a correct guess (env: CROCODILE_REWARD_COINS)")
	fs.Int64Var(&cfg.rewardXP, "reward-xp", game.DefaultReward.XP, "xp for a correct guess (env: CROCODILE_REWARD_XP)")
	fs.StringVar(&cfg.defaultLanguage, "default-language", models.DefaultLanguage, "language for chats without settings (env: CROCODILE_DEFAULT_LANGUAGE)")
	fs.StringVar(&cfg.defaultMode, "default-mode", string(models.DifficultyEasy), "game mode for chats without settings (env: CROCODILE_DEFAULT_MODE)")

	fs.StringVar(&cfg.httpAddr, "http-addr", ":8080", "health and leaderboard listen address, empty disables it (env: CROCODILE_HTTP_ADDR)")

	fs.StringVar(&cfg.logLevel, "log-level", "info", "trace, debug, info, warn or error (env: CROCODILE_LOG_LEVEL)")
	fs.BoolVar(&cfg.logPretty, "log-pretty", false, "human readable console logs (env: CROCODILE_LOG_PRETTY)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, v.GetString(f.Name))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}
