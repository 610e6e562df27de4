package board

// Zobrist keys for board hashing, one per (player, row, col).
// Uses a PRNG with a fixed seed so hashes are stable across runs.
var zobristCell [2][Rows][Cols]uint64

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for p := 0; p < 2; p++ {
		for row := 0; row < Rows; row++ {
			for col := 0; col < Cols; col++ {
				zobristCell[p][row][col] = rng.next()
			}
		}
	}
}

// ZobristCell returns the key for player's disc at (row, col).
func ZobristCell(player Cell, row, col int) uint64 {
	return zobristCell[player-PlayerA][row][col]
}

// Hash computes the Zobrist hash of the board from scratch.
func (b *Board) Hash() uint64 {
	var hash uint64
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if c := b.Cells[row][col]; c.IsPlayer() {
				hash ^= zobristCell[c-PlayerA][row][col]
			}
		}
	}
	return hash
}
