package sowing

import (
	"fmt"

	"github.com/louisbranch/boardplay/internal/board/cells"
)

// Board holds the seeds in every pit and the captured seeds per player.
type Board struct {
	Pits   *cells.Map[int] `json:"pits"`
	Scores []int           `json:"scores"`
}

// Clone returns a deep copy.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	return &Board{Pits: b.Pits.Clone(), Scores: append([]int{}, b.Scores...)}
}

// Validate checks the board shape.
func (b *Board) Validate() error {
	if b == nil || b.Pits == nil {
		return fmt.Errorf("pits are missing")
	}
	if len(b.Scores) != numPlayers {
		return fmt.Errorf("expected %d scores, got %d", numPlayers, len(b.Scores))
	}
	var err error
	b.Pits.Each(func(pit string, seeds int) bool {
		if seeds < 0 {
			err = fmt.Errorf("pit %s holds %d seeds", pit, seeds)
			return false
		}
		return true
	})
	return err
}

func (b *Board) seeds(pit string) int {
	n, _ := b.Pits.Get(pit)
	return n
}
