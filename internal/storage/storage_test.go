package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/fourplay/internal/board"
	"github.com/hailam/fourplay/internal/engine"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPreferences(t *testing.T) {
	s := openTest(t)

	prefs, err := s.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, "Player", prefs.Username)
	assert.Equal(t, engine.KindMinimax, prefs.Engine)
	assert.Equal(t, board.PlayerA, prefs.HumanSide())

	prefs.Engine = engine.KindMCTS
	prefs.HumanPlaysFirst = false
	require.NoError(t, s.SavePreferences(prefs))

	loaded, err := s.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, engine.KindMCTS, loaded.Engine)
	assert.Equal(t, board.PlayerB, loaded.HumanSide())
	assert.False(t, loaded.LastPlayed.IsZero())
}

func TestRecordGame(t *testing.T) {
	s := openTest(t)

	results := []GameResult{
		{Won: true, Engine: engine.KindMinimax, Duration: time.Minute},
		{Won: true, Engine: engine.KindMCTS, Duration: time.Minute},
		{Engine: engine.KindMCTS, Duration: 2 * time.Minute},
		{Draw: true, Engine: engine.KindMinimax},
		{Won: true, Engine: engine.KindMinimax},
	}
	for _, r := range results {
		require.NoError(t, s.RecordGame(r))
	}

	stats, err := s.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, 5, stats.GamesPlayed)
	assert.Equal(t, 3, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.Equal(t, 1, stats.Draws)
	assert.Equal(t, 2, stats.WinsByEngine["minimax"])
	assert.Equal(t, 1, stats.LossesByEngine["mcts"])
	assert.Equal(t, 2, stats.LongestWinStrk)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 4*time.Minute, stats.TotalPlayTime)
	assert.InDelta(t, 60.0, stats.GetWinRate(), 1e-9)
}

func TestWinRate(t *testing.T) {
	assert.Zero(t, NewGameStats().GetWinRate())
	stats := &GameStats{GamesPlayed: 10, Wins: 5, Losses: 3, Draws: 2}
	assert.Equal(t, 50.0, stats.GetWinRate())
}

func TestGameRecords(t *testing.T) {
	s := openTest(t)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	for i := 0; i < 3; i++ {
		rec := &GameRecord{
			PlayedAt: base.Add(time.Duration(i) * time.Minute),
			PlayerA:  "minimax",
			PlayerB:  "mcts",
			Moves:    []int{3, 3, i},
			Winner:   board.PlayerA,
			Final:    board.EmptyNotation,
		}
		require.NoError(t, s.SaveGameRecord(rec))
		assert.NotEmpty(t, rec.ID)
	}

	all, err := s.ListGameRecords(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{3, 3, 2}, all[0].Moves, "newest first")
	assert.Equal(t, []int{3, 3, 0}, all[2].Moves)
	assert.Equal(t, board.PlayerA, all[0].Winner)
	assert.True(t, all[0].PlayedAt.Equal(base.Add(2*time.Minute)))

	latest, err := s.ListGameRecords(1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, all[0].ID, latest[0].ID)
}

func TestGameRecordsIgnoreOtherKeys(t *testing.T) {
	s := openTest(t)
	require.NoError(t, s.SaveStats(NewGameStats()))
	require.NoError(t, s.SavePreferences(DefaultPreferences()))

	records, err := s.ListGameRecords(0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.RecordGame(GameResult{Won: true}))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()
	stats, err := s.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Wins)
}

func TestDataPaths(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv(dataDirEnv, dir)

	dataDir, err := GetDataDir()
	require.NoError(t, err)
	assert.Equal(t, dir, dataDir)

	dbDir, err := GetDatabaseDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "db"), dbDir)

	_, err = os.Stat(dbDir)
	assert.NoError(t, err)
}
