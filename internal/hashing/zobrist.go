package hashing

import (
	"math/rand"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
)

const squares = chess.BoardSize * chess.BoardSize

var (
	// pieceKeys is indexed by square, team and kind.
	pieceKeys [squares][3][7]uint64
	turnKey   uint64
)

func init() {
	// Fixed seed so hashes are stable across runs and machines.
	r := rand.New(rand.NewSource(0x6269746d61746f))
	for sq := range pieceKeys {
		for team := range pieceKeys[sq] {
			for kind := range pieceKeys[sq][team] {
				pieceKeys[sq][team][kind] = r.Uint64()
			}
		}
	}
	turnKey = r.Uint64()
}

// Zobrist returns a 64-bit hash of the placement and side to move.
// HasMoved flags are not part of the hash.
func Zobrist(b *chess.Board) uint64 {
	var h uint64
	for y := 0; y < chess.BoardSize; y++ {
		for x := 0; x < chess.BoardSize; x++ {
			p, ok := b.EntityAt(chess.Pos{X: x, Y: y})
			if !ok {
				continue
			}
			h ^= pieceKeys[y*chess.BoardSize+x][p.Team][p.Kind]
		}
	}
	if b.Turn == chess.Black {
		h ^= turnKey
	}
	return h
}

// WeakHash is a cheap secondary hash used to confirm Zobrist matches.
func WeakHash(b *chess.Board) uint32 {
	var h uint32
	for y, row := range b.Glyphs() {
		for x := 0; x < len(row); x++ {
			h += uint32(row[x]) * uint32(y*chess.BoardSize+x+1)
		}
	}
	return h
}
