package recorder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CoinPilot/internal/model"
)

func TestLogFileRecorder_AppendsOneLinePerCycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trade_log.txt")
	r, err := NewLogFileRecorder(path)
	require.NoError(t, err)

	ts := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	require.NoError(t, r.RecordCycle(&model.CycleRecord{
		Cycle: 1, Time: ts, Outcome: model.OutcomeBuy,
		WinnerSymbol: "btc", WinnerScore: 0.45, PortfolioValue: 100,
	}))
	require.NoError(t, r.RecordCycle(&model.CycleRecord{
		Cycle: 2, Time: ts.Add(time.Hour), Outcome: model.OutcomeNoCoins,
		PortfolioValue: 100,
	}))
	require.NoError(t, r.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2026-08-31T12:00:00Z,BUY:btc,0.4500,100.00", lines[0])
	assert.Equal(t, "2026-08-31T13:00:00Z,NO_VALID_COINS,0.0000,100.00", lines[1])
}

func TestLogFileRecorder_ReopenNeverRewrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trade_log.txt")
	ts := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	for i := 1; i <= 2; i++ {
		r, err := NewLogFileRecorder(path)
		require.NoError(t, err)
		require.NoError(t, r.RecordCycle(&model.CycleRecord{
			Cycle: int64(i), Time: ts, Outcome: model.OutcomeHold,
			WinnerSymbol: "btc", PortfolioValue: 100,
		}))
		require.NoError(t, r.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"), "reopening must append, not truncate")
}
