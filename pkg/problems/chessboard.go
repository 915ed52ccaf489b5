package problems

import (
	"errors"
	"fmt"

	"github.com/satbench/bipartgen/pkg/kpartite"
)

// Variant fixes the geometry of a chessboard: how the edges of the board
// wrap, and therefore where the second removed square sits.
type Variant string

const (
	// VariantNormal is the classic flat board. The removed squares are
	// the top-left and bottom-right corners.
	VariantNormal Variant = "normal"

	// VariantCylinder joins the left and right sides. The second removed
	// square sits on the bottom row at the middle column.
	VariantCylinder Variant = "cylinder"

	// VariantTorus joins left to right and top to bottom. The second
	// removed square sits at the middle row and column.
	VariantTorus Variant = "torus"
)

// ErrUnknownVariant reports a board geometry outside the supported set.
var ErrUnknownVariant = errors.New("problems: unknown chessboard variant")

// ErrBoardSize reports a board side length below two.
var ErrBoardSize = errors.New("problems: chessboard size must be at least 2")

// ParseVariant maps a command-line name to a [Variant].
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantNormal, VariantCylinder, VariantTorus:
		return Variant(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Board is a mutilated chessboard: an n by n grid of squares, some
// removed, colored in the usual alternating pattern with white at the
// top-left. Rows are byte-packed presence bitsets.
type Board struct {
	n       int
	variant Variant
	white   int
	black   int
	rows    [][]byte
}

// NewBoard builds an n by n board of the given geometry with its two
// standard squares removed: the top-left corner, then the square farthest
// from it under the variant's wrapping.
func NewBoard(n int, variant Variant) (*Board, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrBoardSize, n)
	}
	if _, err := ParseVariant(string(variant)); err != nil {
		return nil, err
	}
	b := &Board{
		n:       n,
		variant: variant,
		white:   (n*n + 1) / 2,
		black:   n * n / 2,
		rows:    make([][]byte, n),
	}
	for r := range b.rows {
		b.rows[r] = make([]byte, (n+7)/8)
		for i := range b.rows[r] {
			b.rows[r][i] = 0xff
		}
	}

	b.RemoveSquare(0, 0)
	switch variant {
	case VariantCylinder:
		b.RemoveSquare(n-1, n/2)
	case VariantTorus:
		b.RemoveSquare(n/2, n/2)
	default:
		b.RemoveSquare(n-1, n-1)
	}
	return b, nil
}

// Size returns the side length of the board.
func (b *Board) Size() int { return b.n }

// Variant returns the board's geometry.
func (b *Board) Variant() Variant { return b.variant }

// Counts returns the number of present white and black squares.
func (b *Board) Counts() (white, black int) { return b.white, b.black }

func (b *Board) check(row, col int) {
	if row < 0 || row >= b.n || col < 0 || col >= b.n {
		panic(fmt.Sprintf("problems: square (%d, %d) out of range for board size %d", row, col, b.n))
	}
}

func isWhite(row, col int) bool { return (row+col)%2 == 0 }

// HasSquare reports whether the square at (row, col) is present.
func (b *Board) HasSquare(row, col int) bool {
	b.check(row, col)
	return b.rows[row][col/8]&(1<<(col%8)) != 0
}

// AddSquare restores a removed square. Present squares are untouched.
func (b *Board) AddSquare(row, col int) {
	if b.HasSquare(row, col) {
		return
	}
	if isWhite(row, col) {
		b.white++
	} else {
		b.black++
	}
	b.rows[row][col/8] |= 1 << (col % 8)
}

// RemoveSquare removes a square. Absent squares are untouched.
func (b *Board) RemoveSquare(row, col int) {
	if !b.HasSquare(row, col) {
		return
	}
	if isWhite(row, col) {
		b.white--
	} else {
		b.black--
	}
	b.rows[row][col/8] &^= 1 << (col % 8)
}

// TileID returns the partition-local node index of a present square:
// its rank among present squares of the same color in row-major order.
// Returns -1 for removed squares.
func (b *Board) TileID(row, col int) int {
	if !b.HasSquare(row, col) {
		return -1
	}
	id := 0
	for r := 0; r < b.n; r++ {
		for c := 0; c < b.n; c++ {
			if isWhite(r, c) != isWhite(row, col) {
				continue
			}
			if r == row && c == col {
				return id
			}
			if b.HasSquare(r, c) {
				id++
			}
		}
	}
	return id
}

// neighbors lists the present orthogonal neighbors of (row, col) under
// the board's wrapping, as (row, col) pairs.
func (b *Board) neighbors(row, col int) [][2]int {
	var out [][2]int
	for _, d := range [][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		r, c := row+d[0], col+d[1]
		if c < 0 || c >= b.n {
			if b.variant == VariantNormal {
				continue
			}
			c = (c + b.n) % b.n
		}
		if r < 0 || r >= b.n {
			if b.variant != VariantTorus {
				continue
			}
			r = (r + b.n) % b.n
		}
		if b.HasSquare(r, c) {
			out = append(out, [2]int{r, c})
		}
	}
	return out
}

// Graph builds the bipartite adjacency graph of the board. White squares
// form partition 0 and black squares partition 1, each numbered by
// [Board.TileID]. Wrapped adjacencies between same-colored squares, which
// occur on cylinders and tori of odd size, produce no edge.
func (b *Board) Graph() (*kpartite.Graph, error) {
	g, err := kpartite.New(b.white, b.black)
	if err != nil {
		return nil, err
	}
	for row := 0; row < b.n; row++ {
		for col := 0; col < b.n; col++ {
			if !b.HasSquare(row, col) {
				continue
			}
			id := b.TileID(row, col)
			for _, nb := range b.neighbors(row, col) {
				if isWhite(nb[0], nb[1]) == isWhite(row, col) {
					continue
				}
				nid := b.TileID(nb[0], nb[1])
				if isWhite(row, col) {
					g.AddEdge(0, id, 1, nid)
				} else {
					g.AddEdge(0, nid, 1, id)
				}
			}
		}
	}
	return g, nil
}
