package puzzle

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// ShareCode encodes a grid size and seed as "<x>x<y>-<seed hex>".
func ShareCode(size GridSize, seed uint64) string {
	return fmt.Sprintf("%dx%d-%x", size.X, size.Y, seed)
}

// ParseShareCode decodes a code produced by ShareCode.
func ParseShareCode(code string) (GridSize, uint64, error) {
	dims, hex, ok := strings.Cut(strings.TrimSpace(code), "-")
	if !ok {
		return GridSize{}, 0, fmt.Errorf("%w: %q", ErrBadShareCode, code)
	}
	xs, ys, ok := strings.Cut(dims, "x")
	if !ok {
		return GridSize{}, 0, fmt.Errorf("%w: %q", ErrBadShareCode, code)
	}
	x, errX := strconv.Atoi(xs)
	y, errY := strconv.Atoi(ys)
	seed, errS := strconv.ParseUint(hex, 16, 64)
	if errX != nil || errY != nil || errS != nil || seed == 0 {
		return GridSize{}, 0, fmt.Errorf("%w: %q", ErrBadShareCode, code)
	}
	size := GridSize{X: x, Y: y}
	if !size.Valid() {
		return GridSize{}, 0, fmt.Errorf("%w: grid %s", ErrBadShareCode, size)
	}
	return size, seed, nil
}

// ShareCode returns the code reproducing the current layout.
func (p *Puzzle) ShareCode() string {
	return ShareCode(p.size, p.seed)
}

// LoadShareCode rebuilds the puzzle from the current image with the grid
// size and seed encoded in code.
func (p *Puzzle) LoadShareCode(ctx context.Context, code string) error {
	size, seed, err := ParseShareCode(code)
	if err != nil {
		return err
	}
	p.Destroy()
	p.cfg.Grid = GridSpec{Size: size}
	p.seed = seed
	return p.Init(ctx, p.src)
}
