package games

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/louisbranch/boardplay/internal/engine/game"
	"github.com/louisbranch/boardplay/internal/engine/snapshot"
	"github.com/louisbranch/boardplay/internal/games/pyramid"
	"github.com/louisbranch/boardplay/internal/games/sowing"
	"github.com/louisbranch/boardplay/internal/games/walls"
	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
	"github.com/tidwall/gjson"
)

var (
	// ErrRegistryRequired indicates a missing registry.
	ErrRegistryRequired = errors.New("registry is required")
	// ErrUIDRequired indicates a definition without a game uid.
	ErrUIDRequired = errors.New("game uid is required")
	// ErrConstructorRequired indicates a definition without New or Load.
	ErrConstructorRequired = errors.New("game constructors are required")
	// ErrAlreadyRegistered indicates a duplicate game uid.
	ErrAlreadyRegistered = errors.New("game already registered")
)

// Definition binds game metadata to its constructors.
type Definition struct {
	Info game.Info
	New  func(variants []string, opts ...game.Option) (game.Game, error)
	Load func(data []byte, opts ...game.Option) (game.Game, error)
}

// Registry maps game uids to definitions.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Default returns a registry holding every built-in game.
func Default() *Registry {
	r := NewRegistry()
	for _, def := range []Definition{
		{
			Info: sowing.Info,
			New: func(variants []string, opts ...game.Option) (game.Game, error) {
				return sowing.New(variants, opts...)
			},
			Load: func(data []byte, opts ...game.Option) (game.Game, error) {
				return sowing.Load(data, opts...)
			},
		},
		{
			Info: pyramid.Info,
			New: func(variants []string, opts ...game.Option) (game.Game, error) {
				return pyramid.New(variants, opts...)
			},
			Load: func(data []byte, opts ...game.Option) (game.Game, error) {
				return pyramid.Load(data, opts...)
			},
		},
		{
			Info: walls.Info,
			New: func(variants []string, opts ...game.Option) (game.Game, error) {
				return walls.New(variants, opts...)
			},
			Load: func(data []byte, opts ...game.Option) (game.Game, error) {
				return walls.Load(data, opts...)
			},
		},
	} {
		if err := r.Register(def); err != nil {
			panic(fmt.Sprintf("register %s: %v", def.Info.UID, err))
		}
	}
	return r
}

// Register adds a game definition.
func (r *Registry) Register(def Definition) error {
	if r == nil {
		return ErrRegistryRequired
	}
	uid := strings.TrimSpace(def.Info.UID)
	if uid == "" {
		return ErrUIDRequired
	}
	if def.New == nil || def.Load == nil {
		return fmt.Errorf("%w: %s", ErrConstructorRequired, uid)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[uid]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, uid)
	}
	r.defs[uid] = def
	return nil
}

// Definition returns the definition registered for uid.
func (r *Registry) Definition(uid string) (Definition, error) {
	if r == nil {
		return Definition{}, ErrRegistryRequired
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[strings.TrimSpace(uid)]
	if !ok {
		return Definition{}, apperrors.WithMetadata(apperrors.CodeUnknownGame, "game is not registered", map[string]string{"game": uid})
	}
	return def, nil
}

// List returns the metadata of every registered game ordered by uid.
func (r *Registry) List() []game.Info {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]game.Info, 0, len(r.defs))
	for _, def := range r.defs {
		out = append(out, def.Info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out
}

// New starts a fresh game of uid.
func (r *Registry) New(uid string, variants []string, opts ...game.Option) (game.Game, error) {
	def, err := r.Definition(uid)
	if err != nil {
		return nil, err
	}
	return def.New(variants, opts...)
}

// Load restores a serialized game, plain or compressed, dispatching on the
// document's game field.
func (r *Registry) Load(data []byte, opts ...game.Option) (game.Game, error) {
	uid, err := PeekGame(data)
	if err != nil {
		return nil, err
	}
	def, err := r.Definition(uid)
	if err != nil {
		return nil, err
	}
	return def.Load(data, opts...)
}

// PeekGame reads the game uid of a serialized document without decoding
// its snapshots.
func PeekGame(data []byte) (string, error) {
	raw := data
	if game.IsCompressed(data) {
		var err error
		if raw, err = snapshot.Decompress(data); err != nil {
			return "", err
		}
	}
	if !gjson.ValidBytes(raw) {
		return "", apperrors.New(apperrors.CodeMalformedState, "state is not valid JSON")
	}
	uid := gjson.GetBytes(raw, "game")
	if uid.Type != gjson.String || uid.Str == "" {
		return "", apperrors.New(apperrors.CodeMalformedState, "state does not name its game")
	}
	return uid.Str, nil
}
