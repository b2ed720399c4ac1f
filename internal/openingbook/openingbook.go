/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 * Copyright (c) 2026 chessvat contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package openingbook reads a simple opening repertoire into a zobrist-key
// indexed map so the search can play a known move instantly without
// spending any search time on it. Only the "simple recognition" case is
// supported: one game per line, moves given as plain UCI strings
// (e.g. "e2e4 e7e5 g1f3 b8c6"). Richer formats such as SAN or PGN game
// databases are out of scope here.
package openingbook

import (
	"bufio"
	"encoding/gob"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/VarunAgarwalOfficial/chessvat/internal/logging"
	"github.com/VarunAgarwalOfficial/chessvat/internal/movegen"
	"github.com/VarunAgarwalOfficial/chessvat/internal/position"
	. "github.com/VarunAgarwalOfficial/chessvat/internal/types"
)

var out = message.NewPrinter(language.German)
var log *logging.Logger

func init() {
	log = myLogging.GetLog()
}

// run line processing in parallel goroutines; disable for deterministic
// debugging of a single book file.
const parallel = true

// BookFormat identifies the textual format of an opening book file.
type BookFormat uint8

// Supported book formats. Only Simple is implemented; San and Pgn are
// declared so callers and config values have a stable name to refer to,
// but Initialize rejects them.
const (
	Simple BookFormat = iota
	San
	Pgn
)

// FormatFromString maps the config.toml / command line spelling of a book
// format to its BookFormat value.
var FormatFromString = map[string]BookFormat{
	"Simple": Simple,
	"San":    San,
	"Pgn":    Pgn,
}

// Successor links a move to the zobrist key of the position it leads to.
type Successor struct {
	Move      uint32
	NextEntry uint64
}

// BookEntry describes one position reached while reading the book: how
// often it occurred and which moves were played from it.
type BookEntry struct {
	ZobristKey uint64
	Counter    int
	Moves      []Successor
}

// Book is an in-memory opening repertoire keyed by zobrist hash.
type Book struct {
	bookMap     map[uint64]BookEntry
	rootEntry   uint64
	initialized bool
}

var bookLock sync.Mutex

// NewBook creates an empty, uninitialized Book.
func NewBook() *Book {
	return &Book{bookMap: make(map[uint64]BookEntry)}
}

// Initialize reads bookFile (or, if bookFile is empty, bookPath directly)
// in the given format and builds the in-memory book. If useCache is set
// and a matching ".cache" file exists, it is loaded instead of
// re-parsing the source file, unless recreateCache forces a rebuild.
func (b *Book) Initialize(bookPath string, bookFile string, format BookFormat, useCache bool, recreateCache bool) error {
	if b.initialized {
		return nil
	}
	if format != Simple {
		return errors.New("openingbook: only the Simple format is supported")
	}

	path := bookPath
	if bookFile != "" {
		path = filepath.Join(bookPath, bookFile)
	}

	startTotal := time.Now()
	log.Infof("Initializing opening book from %s", path)

	if useCache && !recreateCache {
		loaded, err := b.loadFromCache(path)
		if err != nil {
			log.Warningf("Cache could not be loaded, reading source file instead: %s", err)
		}
		if loaded {
			log.Infof("Loaded book from cache with %d entries", len(b.bookMap))
			b.initialized = true
			return nil
		}
	}

	lines, err := readLines(path)
	if err != nil {
		log.Errorf("Book file %s could not be read: %s", path, err)
		return err
	}

	startPos := position.NewPosition()
	b.bookMap = make(map[uint64]BookEntry)
	b.rootEntry = uint64(startPos.ZobristKey())
	b.bookMap[b.rootEntry] = BookEntry{ZobristKey: b.rootEntry}

	b.processSimple(lines)

	log.Infof("Book contains %d entries (read in %s)", len(b.bookMap), time.Since(startTotal))

	if useCache {
		if _, n, err := b.saveToCache(path); err != nil {
			log.Errorf("Could not save book cache: %s", err)
		} else {
			log.Infof("Saved %d bytes to book cache", n)
		}
	}

	b.initialized = true
	return nil
}

// NumberOfEntries returns the number of positions currently in the book.
func (b *Book) NumberOfEntries() int {
	return len(b.bookMap)
}

// GetEntry returns a copy of the book entry for the given zobrist key.
func (b *Book) GetEntry(key Key) (BookEntry, bool) {
	entry, found := b.bookMap[uint64(key)]
	return entry, found
}

// Reset clears the book so Initialize can be called again.
func (b *Book) Reset() {
	b.bookMap = map[uint64]BookEntry{}
	b.rootEntry = 0
	b.initialized = false
}

func readLines(path string) (*[]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var lines []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return &lines, nil
}

var regexSimpleUciMove = regexp.MustCompile(`([a-h][1-8][a-h][1-8])[nbrqNBRQ]?`)

func (b *Book) processSimple(lines *[]string) {
	if parallel {
		var wg sync.WaitGroup
		wg.Add(len(*lines))
		for _, line := range *lines {
			go func(line string) {
				defer wg.Done()
				b.processSimpleLine(line)
			}(line)
		}
		wg.Wait()
	} else {
		for _, line := range *lines {
			b.processSimpleLine(line)
		}
	}
}

func (b *Book) processSimpleLine(line string) {
	line = strings.TrimSpace(line)
	matches := regexSimpleUciMove.FindAllString(line, -1)
	if len(matches) == 0 {
		return
	}

	pos := position.NewPosition()

	bookLock.Lock()
	e := b.bookMap[b.rootEntry]
	e.Counter++
	b.bookMap[b.rootEntry] = e
	bookLock.Unlock()

	mg := movegen.NewMoveGen()
	for _, moveString := range matches {
		if err := b.processSingleMove(moveString, mg, pos); err != nil {
			break
		}
	}
}

func (b *Book) processSingleMove(uciMove string, mg *movegen.Movegen, pos *position.Position) error {
	move := mg.GetMoveFromUci(pos, uciMove)
	if !move.IsValid() {
		return errors.New("openingbook: invalid move " + uciMove)
	}
	curKey := uint64(pos.ZobristKey())
	pos.DoMove(move)
	nextKey := uint64(pos.ZobristKey())
	b.addToBook(curKey, nextKey, uint32(move))
	return nil
}

func (b *Book) addToBook(curKey uint64, nextKey uint64, move uint32) {
	bookLock.Lock()
	defer bookLock.Unlock()

	if _, found := b.bookMap[curKey]; !found {
		return
	}

	nextEntry, found := b.bookMap[nextKey]
	if found {
		nextEntry.Counter++
	} else {
		nextEntry = BookEntry{ZobristKey: nextKey, Counter: 1}
	}
	b.bookMap[nextKey] = nextEntry

	curEntry := b.bookMap[curKey]
	for _, s := range curEntry.Moves {
		if s.Move == move {
			b.bookMap[curKey] = curEntry
			return
		}
	}
	curEntry.Moves = append(curEntry.Moves, Successor{Move: move, NextEntry: nextKey})
	b.bookMap[curKey] = curEntry
}

func (b *Book) loadFromCache(path string) (bool, error) {
	cachePath := path + ".cache"
	f, err := os.Open(cachePath)
	if err != nil {
		return false, err
	}
	defer f.Close()

	bookLock.Lock()
	defer bookLock.Unlock()
	b.bookMap = make(map[uint64]BookEntry)
	if err := gob.NewDecoder(f).Decode(&b.bookMap); err != nil {
		return false, err
	}
	b.rootEntry = uint64(position.NewPosition().ZobristKey())
	return true, nil
}

func (b *Book) saveToCache(path string) (string, int64, error) {
	cachePath := path + ".cache"
	f, err := os.Create(cachePath)
	if err != nil {
		return cachePath, 0, err
	}
	bookLock.Lock()
	err = gob.NewEncoder(f).Encode(b.bookMap)
	bookLock.Unlock()
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return cachePath, 0, err
	}
	info, _ := os.Stat(cachePath)
	return cachePath, info.Size(), nil
}
