//
// chessvat - a Go chess engine core
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
// Copyright (c) 2026 chessvat contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package types contains the fundamental value types shared by every layer of
// the engine (squares, pieces, bitboards, moves, scores) plus the Zobrist key
// type. Keeping these in one leaf package lets position, movegen, evaluator,
// transpositiontable and search all depend on a single, cycle-free vocabulary.
package types

var initialized = false

func init() {
	if initialized {
		return
	}
	initBb()
	initPosValues()
	initialized = true
}

const (
	// SqLength is the number of squares on a board.
	SqLength int = 64

	// MaxDepth is the maximum search depth supported by ply-indexed tables.
	MaxDepth = 128

	// MaxMoves is the maximum number of half moves kept in a game history.
	MaxMoves = 512

	// KB is 1024 bytes.
	KB uint64 = 1024
	// MB is KB*KB bytes.
	MB uint64 = KB * KB
	// GB is KB*MB bytes.
	GB uint64 = KB * MB

	// GamePhaseMax is the maximum game phase value, reached with all officers
	// still on the board. Used to interpolate between midgame and endgame
	// piece-square tables.
	GamePhaseMax = 24
)

// Key is a 64-bit Zobrist hash identifying a position.
type Key uint64
