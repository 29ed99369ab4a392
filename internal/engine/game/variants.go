package game

import (
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/boardplay/internal/platform/errors"
)

var (
	sizePattern      = regexp.MustCompile(`^size-(\d+)$`)
	dimensionPattern = regexp.MustCompile(`^size-(\d+)x(\d+)$`)
)

// SizeVariant reads a "size-N" variant, returning def when none is set.
// The size must lie within [min, max].
func SizeVariant(variants []string, def, min, max int) (int, error) {
	for _, v := range variants {
		m := sizePattern.FindStringSubmatch(strings.TrimSpace(v))
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < min || n > max {
			return 0, invalidSize(v)
		}
		return n, nil
	}
	for _, v := range variants {
		if strings.HasPrefix(strings.TrimSpace(v), "size-") {
			return 0, invalidSize(v)
		}
	}
	return def, nil
}

// DimensionVariant reads a "size-WxH" variant, returning the defaults when
// none is set. Both dimensions must lie within [min, max].
func DimensionVariant(variants []string, defWidth, defHeight, min, max int) (int, int, error) {
	for _, v := range variants {
		trimmed := strings.TrimSpace(v)
		if !strings.HasPrefix(trimmed, "size-") {
			continue
		}
		m := dimensionPattern.FindStringSubmatch(trimmed)
		if m == nil {
			return 0, 0, invalidSize(v)
		}
		w, errW := strconv.Atoi(m[1])
		h, errH := strconv.Atoi(m[2])
		if errW != nil || errH != nil || w < min || w > max || h < min || h > max {
			return 0, 0, invalidSize(v)
		}
		return w, h, nil
	}
	return defWidth, defHeight, nil
}

func invalidSize(variant string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidBoardSize, "unsupported board size variant", map[string]string{"size": variant})
}
