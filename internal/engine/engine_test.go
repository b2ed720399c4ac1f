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

package engine

import (
	"os"
	"path"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/VarunAgarwalOfficial/chessvat/internal/config"
	"github.com/VarunAgarwalOfficial/chessvat/internal/movegen"
	"github.com/VarunAgarwalOfficial/chessvat/internal/position"
	. "github.com/VarunAgarwalOfficial/chessvat/internal/types"
)

// playUci applies a sequence of UCI move strings to p in place, failing the
// test immediately if any move does not match a legal move on the position
// it is played from.
func playUci(t *testing.T, p *position.Position, moves ...string) {
	t.Helper()
	mg := movegen.NewMoveGen()
	for _, uci := range moves {
		m := mg.GetMoveFromUci(p, uci)
		if m == MoveNone {
			t.Fatalf("move %q is not legal in position %s", uci, p.StringFen())
		}
		p.DoMove(m)
	}
}

// make tests run in the project root directory so relative config/book
// paths resolve the same way the rest of the suite expects.
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

func TestMain(m *testing.M) {
	config.Setup()
	config.Settings.Search.UseBook = false
	os.Exit(m.Run())
}

func TestSearchRespectsMaxDepth(t *testing.T) {
	e := New()
	p := position.NewPosition()
	result, err := e.Search(p, Limits{MaxDepth: 3}, nil)
	assert.NoError(t, err)
	assert.NotEqual(t, MoveNone, result.BestMove)
	assert.LessOrEqual(t, result.DepthReached, 3)
	assert.Equal(t, TerminationDepth, result.Termination)
}

func TestSearchScoresCheckmatedPosition(t *testing.T) {
	e := New()
	p, err := position.NewPositionFen("8/8/8/8/8/5K2/8/R4k2 b - -")
	assert.NoError(t, err)
	result, err := e.Search(p, Limits{MaxDepth: 4}, nil)
	assert.NoError(t, err)
	assert.True(t, result.ScoreCp.IsCheckMateValue())
}

func TestSearchCancel(t *testing.T) {
	e := New()
	p := position.NewPosition()
	token := NewCancelToken()
	go func() {
		time.Sleep(200 * time.Millisecond)
		token.Cancel()
	}()
	start := time.Now()
	result, err := e.Search(p, Limits{}, token)
	elapsed := time.Since(start)
	assert.NoError(t, err)
	assert.Equal(t, TerminationCancelled, result.Termination)
	assert.Less(t, elapsed, 5*time.Second)
}

func TestSearchDeadline(t *testing.T) {
	e := New()
	p := position.NewPosition()
	deadline := time.Now().Add(300 * time.Millisecond)
	result, err := e.Search(p, Limits{Deadline: deadline}, nil)
	assert.NoError(t, err)
	assert.NotEqual(t, MoveNone, result.BestMove)
	assert.GreaterOrEqual(t, result.TimeMs, int64(0))
}

func TestNewGameResetsState(t *testing.T) {
	e := New()
	p := position.NewPosition()
	_, err := e.Search(p, Limits{MaxDepth: 2}, nil)
	assert.NoError(t, err)
	e.NewGame()
}

func TestCancelTokenZeroValue(t *testing.T) {
	var token CancelToken
	assert.False(t, token.Cancelled())
	token.Cancel()
	assert.True(t, token.Cancelled())
}

func TestSearchRejectsNegativeMaxDepth(t *testing.T) {
	e := New()
	p := position.NewPosition()
	_, err := e.Search(p, Limits{MaxDepth: -1}, nil)
	assert.Error(t, err)
	assert.True(t, IsKind(err, LimitsError))
}

func TestSearchZeroMaxDepthIsUnlimited(t *testing.T) {
	// MaxDepth's zero value is documented as "unlimited", not illegal -
	// only negative values are rejected.
	e := New()
	p := position.NewPosition()
	deadline := time.Now().Add(200 * time.Millisecond)
	result, err := e.Search(p, Limits{Deadline: deadline}, nil)
	assert.NoError(t, err)
	assert.NotEqual(t, MoveNone, result.BestMove)
}

// TestFoolsMate plays 1.f3 e5 2.g4 and expects the engine to find the
// queen-delivered mate d8h4 as its best move.
func TestFoolsMate(t *testing.T) {
	e := New()
	p := position.NewPosition()
	playUci(t, p, "f2f3", "e7e5", "g2g4")
	result, err := e.Search(p, Limits{MaxDepth: 4}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "d8h4", result.BestMove.StringUci())
}

// TestStalemateTrap verifies a stalemated side reports zero legal moves and
// a draw score at the root rather than a loss.
func TestStalemateTrap(t *testing.T) {
	e := New()
	p, err := position.NewPositionFen("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	assert.NoError(t, err)

	mg := movegen.NewMoveGen()
	legalMoves := mg.GenerateLegalMoves(p, movegen.GenAll)
	assert.Equal(t, 0, legalMoves.Len())

	result, err := e.Search(p, Limits{MaxDepth: 4}, nil)
	assert.NoError(t, err)
	assert.Equal(t, MoveNone, result.BestMove)
	assert.EqualValues(t, ValueDraw, result.ScoreCp)
}

// TestQueenVsKingMateInTwo checks a trivial KQ vs K endgame is solved well
// within ten plies by depth four.
func TestQueenVsKingMateInTwo(t *testing.T) {
	e := New()
	p, err := position.NewPositionFen("8/8/8/4k3/8/8/4K3/4Q3 w - - 0 1")
	assert.NoError(t, err)
	result, err := e.Search(p, Limits{MaxDepth: 4}, nil)
	assert.NoError(t, err)
	assert.True(t, result.ScoreCp.IsCheckMateValue())
	assert.LessOrEqual(t, result.DepthReached, 10)
}

// TestEnPassantAtPlyThree plays 1.e4 d5 2.e5 f5 and confirms the resulting
// position legally offers the en passant capture e5f6.
func TestEnPassantAtPlyThree(t *testing.T) {
	p := position.NewPosition()
	playUci(t, p, "e2e4", "d7d5", "e4e5", "f7f5")

	mg := movegen.NewMoveGen()
	m := mg.GetMoveFromUci(p, "e5f6")
	assert.NotEqual(t, MoveNone, m)
	assert.Equal(t, EnPassant, m.MoveType())
}

// TestCastlingThroughCheckIsIllegal sets up a king on e1 and rook on h1
// facing a black rook on f8, so kingside castling would cross an attacked
// square and must not be offered as a legal move.
func TestCastlingThroughCheckIsIllegal(t *testing.T) {
	p, err := position.NewPositionFen("5r2/8/8/8/8/8/8/4K2R w K - 0 1")
	assert.NoError(t, err)

	mg := movegen.NewMoveGen()
	m := mg.GetMoveFromUci(p, "e1g1")
	assert.Equal(t, MoveNone, m)
}

// TestThreefoldRepetitionDraw shuffles Nb1-c3-b1 / Nb8-c6-b8 back to the
// start position twice and expects the search to report a draw without
// searching further, since the position has already occurred three times.
func TestThreefoldRepetitionDraw(t *testing.T) {
	e := New()
	p := position.NewPosition()
	playUci(t, p,
		"b1c3", "b8c6", "c3b1", "c6b8",
		"b1c3", "b8c6", "c3b1", "c6b8",
	)
	assert.True(t, p.CheckRepetitions(2))

	result, err := e.Search(p, Limits{MaxDepth: 4}, nil)
	assert.NoError(t, err)
	assert.EqualValues(t, ValueDraw, result.ScoreCp)
}
