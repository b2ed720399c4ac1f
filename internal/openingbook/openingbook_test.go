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

package openingbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VarunAgarwalOfficial/chessvat/internal/position"
	. "github.com/VarunAgarwalOfficial/chessvat/internal/types"
)

func writeTempBook(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInitializeNonExistingFile(t *testing.T) {
	b := NewBook()
	err := b.Initialize(filepath.Join(t.TempDir(), "missing.txt"), "", Simple, false, false)
	assert.Error(t, err)
}

func TestInitializeRejectsUnsupportedFormats(t *testing.T) {
	path := writeTempBook(t, "e2e4 e7e5\n")
	for _, f := range []BookFormat{San, Pgn} {
		b := NewBook()
		err := b.Initialize(path, "", f, false, false)
		assert.Error(t, err)
	}
}

func TestProcessingSimpleSmall(t *testing.T) {
	path := writeTempBook(t, "e2e4 e7e5 g1f3 b8c6\ne2e4 c7c5\nd2d4 d7d5\n")

	book := NewBook()
	err := book.Initialize(path, "", Simple, false, false)
	assert.NoError(t, err)
	assert.Equal(t, 8, book.NumberOfEntries())

	startPos := position.NewPosition()
	entry, found := book.GetEntry(startPos.ZobristKey())
	assert.True(t, found)
	assert.Equal(t, 3, entry.Counter)
	assert.Equal(t, 2, len(entry.Moves))

	entry, found = book.GetEntry(Key(0xdeadbeef))
	assert.False(t, found)
	assert.Zero(t, entry.ZobristKey)
}

func TestGetEntryFollowsSuccessors(t *testing.T) {
	path := writeTempBook(t, "e2e4 e7e5\ne2e4 e7e5\n")

	book := NewBook()
	assert.NoError(t, book.Initialize(path, "", Simple, false, false))

	pos := position.NewPosition()
	entry, found := book.GetEntry(pos.ZobristKey())
	assert.True(t, found)
	assert.Equal(t, 1, len(entry.Moves))

	pos.DoMove(CreateMove(SqE2, SqE4, Normal, PtNone))
	next, found := book.GetEntry(Key(entry.Moves[0].NextEntry))
	assert.True(t, found)
	assert.Equal(t, pos.ZobristKey(), Key(next.ZobristKey))
	assert.Equal(t, 2, next.Counter)
}

func TestReset(t *testing.T) {
	path := writeTempBook(t, "e2e4 e7e5\n")
	book := NewBook()
	assert.NoError(t, book.Initialize(path, "", Simple, false, false))
	assert.NotZero(t, book.NumberOfEntries())

	book.Reset()
	assert.Equal(t, 0, book.NumberOfEntries())
}

func TestCacheRoundTrip(t *testing.T) {
	path := writeTempBook(t, "e2e4 e7e5 g1f3 b8c6\n")

	book := NewBook()
	assert.NoError(t, book.Initialize(path, "", Simple, true, true))
	want := book.NumberOfEntries()

	cached := NewBook()
	assert.NoError(t, cached.Initialize(path, "", Simple, true, false))
	assert.Equal(t, want, cached.NumberOfEntries())
}
