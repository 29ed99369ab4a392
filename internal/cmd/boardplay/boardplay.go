// Package boardplay parses the play command flags and drives one game
// session: create or load a state, apply moves, and print the result.
package boardplay

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/louisbranch/boardplay/internal/engine/game"
	"github.com/louisbranch/boardplay/internal/engine/render"
	"github.com/louisbranch/boardplay/internal/games"
	entrypoint "github.com/louisbranch/boardplay/internal/platform/cmd"
	"github.com/louisbranch/boardplay/internal/platform/config"
	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
	"github.com/louisbranch/boardplay/internal/random"
	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// Config holds play command configuration.
type Config struct {
	Game     string `env:"BOARDPLAY_GAME" envDefault:"sowing"`
	Variants string `env:"BOARDPLAY_VARIANTS"`
	// State is the path of a saved game to continue.
	State string `env:"BOARDPLAY_STATE"`
	// Out is the path the new state is written to.
	Out        string `env:"BOARDPLAY_OUT"`
	Moves      []string
	Random     int
	Partial    bool
	Compressed bool
	List       bool

	Locale   string
	LogLevel string
	Seed     int64
}

type moveList struct {
	moves *[]string
}

func (m moveList) String() string {
	if m.moves == nil {
		return ""
	}
	return strings.Join(*m.moves, ",")
}

func (m moveList) Set(value string) error {
	*m.moves = append(*m.moves, value)
	return nil
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	settings, err := config.LoadSettings()
	if err != nil {
		return Config{}, err
	}
	cfg.Locale, cfg.LogLevel, cfg.Seed = settings.Locale, settings.LogLevel, settings.Seed

	fs.StringVar(&cfg.Game, "game", cfg.Game, "game uid for a new session")
	fs.StringVar(&cfg.Variants, "variants", cfg.Variants, "comma separated variants for a new session")
	fs.StringVar(&cfg.State, "state", cfg.State, "saved state to continue instead of starting a new game")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "write the new state to this file")
	fs.Var(moveList{moves: &cfg.Moves}, "move", "move to apply (repeatable)")
	fs.IntVar(&cfg.Random, "random", 0, "number of random moves to apply after -move")
	fs.BoolVar(&cfg.Partial, "partial", false, "apply moves without committing them")
	fs.BoolVar(&cfg.Compressed, "compressed", false, "write the state compressed (requires -out)")
	fs.BoolVar(&cfg.List, "list", false, "list the available games")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "message locale")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for -random (0 = random)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	settings = config.Settings{Locale: cfg.Locale, LogLevel: cfg.LogLevel, Seed: cfg.Seed}
	if err := settings.Validate(); err != nil {
		return Config{}, err
	}
	cfg.Locale, cfg.LogLevel = settings.Locale, settings.LogLevel
	if cfg.Compressed && cfg.Out == "" {
		return Config{}, errors.New("-compressed requires -out")
	}
	if cfg.Random < 0 {
		return Config{}, fmt.Errorf("-random must not be negative, got %d", cfg.Random)
	}
	return cfg, nil
}

// Output is the printed summary of a session.
type Output struct {
	Game          string          `json:"game"`
	CurrentPlayer int             `json:"currplayer"`
	GameOver      bool            `json:"gameover"`
	Winner        []int           `json:"winner"`
	Applied       []string        `json:"applied"`
	Chat          []string        `json:"chat"`
	Render        render.Rep      `json:"render"`
	State         json.RawMessage `json:"state,omitempty"`
}

// Run executes the play command, writing its summary to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithLogger(ctx, entrypoint.CommandPlay, cfg.LogLevel, func(ctx context.Context, logger *zap.Logger) error {
		return play(ctx, cfg, logger, out)
	})
}

func play(ctx context.Context, cfg Config, logger *zap.Logger, out io.Writer) error {
	registry := games.Default()
	if cfg.List {
		for _, info := range registry.List() {
			fmt.Fprintf(out, "%s\t%s\t%s\n", info.UID, info.Name, info.Description)
		}
		return nil
	}

	g, err := open(registry, cfg, logger)
	if err != nil {
		return describe(err, cfg.Locale)
	}
	opts := game.MoveOptions{Partial: cfg.Partial}
	applied := []string{}
	for _, m := range cfg.Moves {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.Move(m, opts); err != nil {
			return fmt.Errorf("move %q: %w", m, describe(err, cfg.Locale))
		}
		applied = append(applied, m)
	}

	if cfg.Random > 0 {
		seed, err := random.ResolveSeed(cfg.Seed)
		if err != nil {
			return err
		}
		logger.Info("playing random moves", zap.Int64("seed", seed), zap.Int("count", cfg.Random))
		rng := random.NewRNG(seed)
		for i := 0; i < cfg.Random && !g.GameOver(); i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := g.RandomMove(rng)
			if err != nil {
				return err
			}
			if err := g.Move(m, game.MoveOptions{Partial: cfg.Partial, Trusted: true}); err != nil {
				return fmt.Errorf("random move %q: %w", m, describe(err, cfg.Locale))
			}
			applied = append(applied, m)
		}
	}

	rep, err := g.Render(render.Options{})
	if err != nil {
		return err
	}
	summary := Output{
		Game:          g.Info().UID,
		CurrentPlayer: g.CurrentPlayer(),
		GameOver:      g.GameOver(),
		Winner:        g.Winner(),
		Applied:       applied,
		Chat:          g.Chat(fmt.Sprintf("Player %d", lastPlayer(g, cfg.Partial))),
		Render:        rep,
	}
	if err := save(g, cfg, &summary); err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

func open(registry *games.Registry, cfg Config, logger *zap.Logger) (game.Game, error) {
	opts := []game.Option{game.WithLogger(logger), game.WithLocale(cfg.Locale)}
	if cfg.State == "" {
		return registry.New(cfg.Game, splitVariants(cfg.Variants), opts...)
	}
	data, err := os.ReadFile(cfg.State)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	return registry.Load(data, opts...)
}

func save(g game.Game, cfg Config, summary *Output) error {
	if cfg.Out == "" {
		data, err := g.Serialize()
		if err != nil {
			return err
		}
		summary.State = data
		return nil
	}
	data, err := g.Serialize()
	if cfg.Compressed {
		data, err = g.SerializeCompressed()
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.Out, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

func splitVariants(raw string) []string {
	variants := []string{}
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			variants = append(variants, v)
		}
	}
	return variants
}

// lastPlayer is the player whose move produced the current results.
// Partial moves leave the turn with the player making them.
func lastPlayer(g game.Game, partial bool) int {
	if partial || g.StackLen() == 1 {
		return g.CurrentPlayer()
	}
	return (g.CurrentPlayer()+g.NumPlayers()-2)%g.NumPlayers() + 1
}

// describe swaps user input errors for their localized message. The result
// carries the gRPC status a front end would receive for the same failure.
func describe(err error, locale string) error {
	if !apperrors.IsUserFacing(err) {
		return err
	}
	st := status.Convert(apperrors.HandleError(err, locale))
	message := st.Message()
	for _, detail := range st.Details() {
		if localized, ok := detail.(*errdetails.LocalizedMessage); ok {
			message = localized.GetMessage()
		}
	}
	return &rejection{status: st, message: message, cause: err}
}

type rejection struct {
	status  *status.Status
	message string
	cause   error
}

func (r *rejection) Error() string {
	return fmt.Sprintf("%s (%s)", r.message, r.status.Code())
}

func (r *rejection) Unwrap() error { return r.cause }

// GRPCStatus lets status.FromError recover the mapped status.
func (r *rejection) GRPCStatus() *status.Status { return r.status }
