package games

import (
	"errors"
	"testing"

	"github.com/louisbranch/boardplay/internal/engine/game"
	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultListsBuiltInGames(t *testing.T) {
	infos := Default().List()

	uids := make([]string, len(infos))
	for i, info := range infos {
		uids[i] = info.UID
	}
	assert.Equal(t, []string{"pyramid", "sowing", "walls"}, uids)
}

func TestRegisterRejectsBadDefinitions(t *testing.T) {
	r := NewRegistry()
	newFn := func([]string, ...game.Option) (game.Game, error) { return nil, nil }
	loadFn := func([]byte, ...game.Option) (game.Game, error) { return nil, nil }

	err := r.Register(Definition{Info: game.Info{UID: " "}, New: newFn, Load: loadFn})
	assert.ErrorIs(t, err, ErrUIDRequired)

	err = r.Register(Definition{Info: game.Info{UID: "x"}, New: newFn})
	assert.ErrorIs(t, err, ErrConstructorRequired)

	require.NoError(t, r.Register(Definition{Info: game.Info{UID: "x"}, New: newFn, Load: loadFn}))
	err = r.Register(Definition{Info: game.Info{UID: "x"}, New: newFn, Load: loadFn})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	var nilRegistry *Registry
	assert.True(t, errors.Is(nilRegistry.Register(Definition{}), ErrRegistryRequired))
}

func TestUnknownGame(t *testing.T) {
	r := Default()

	_, err := r.Definition("chess")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnknownGame))
	assert.Equal(t, map[string]string{"game": "chess"}, apperrors.GetMetadata(err))

	_, err = r.New("chess", nil)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnknownGame))

	_, err = r.Load([]byte(`{"game":"chess"}`))
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnknownGame))
}

func TestNewAndLoadDispatchOnUID(t *testing.T) {
	r := Default()
	for _, tt := range []struct {
		uid      string
		variants []string
	}{
		{uid: "sowing", variants: []string{"size-4"}},
		{uid: "pyramid"},
		{uid: "walls", variants: []string{"size-3x3"}},
	} {
		t.Run(tt.uid, func(t *testing.T) {
			g, err := r.New(tt.uid, tt.variants)
			require.NoError(t, err)
			assert.Equal(t, tt.uid, g.Info().UID)

			moves, err := g.Moves()
			require.NoError(t, err)
			require.NoError(t, g.Move(moves[0], game.MoveOptions{}))

			for _, compressed := range []bool{false, true} {
				data, err := g.Serialize()
				if compressed {
					data, err = g.SerializeCompressed()
				}
				require.NoError(t, err)

				uid, err := PeekGame(data)
				require.NoError(t, err)
				assert.Equal(t, tt.uid, uid)

				loaded, err := r.Load(data)
				require.NoError(t, err)
				assert.Equal(t, tt.uid, loaded.Info().UID)
				assert.Equal(t, 2, loaded.StackLen())
				assert.Equal(t, g.Variants(), loaded.Variants())
			}
		})
	}
}

func TestPeekGameRejectsMalformedDocuments(t *testing.T) {
	for _, data := range []string{
		`not json`,
		`{"numplayers":2}`,
		`{"game":7}`,
		`{"game":""}`,
	} {
		_, err := PeekGame([]byte(data))
		assert.True(t, apperrors.IsCode(err, apperrors.CodeMalformedState), data)
	}
	_, err := PeekGame([]byte{0x28, 0xb5, 0x2f, 0xfd, 0x00})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeMalformedState))
}
