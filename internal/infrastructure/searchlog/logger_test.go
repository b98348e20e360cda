package searchlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/domain"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 18, 4, 5, 999, time.Local)
}

func readRecords(t *testing.T, path string) []domain.SearchLogRecord {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []domain.SearchLogRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec domain.SearchLogRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec), "line %q is not valid JSON", scanner.Text())
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestFileWriter_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search_logs.json")
	w := NewFileWriter(path)
	assert.Equal(t, path, w.Path())

	require.NoError(t, w.Append(domain.SearchLogRecord{
		Timestamp: "2024-03-09 18:04:05",
		Query:     "Cheese Pizza",
		Status:    domain.StatusExactMatch,
		Results:   []string{"Cheese Pizza"},
	}))
	require.NoError(t, w.Append(domain.SearchLogRecord{
		Timestamp: "2024-03-09 18:04:06",
		Query:     "zzz",
		Status:    domain.StatusSimilarityFallback,
		Results:   []string{"A", "B", "C"},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		`{"timestamp":"2024-03-09 18:04:05","query":"Cheese Pizza","status":"exact_match","results":["Cheese Pizza"]}`+"\n"+
			`{"timestamp":"2024-03-09 18:04:06","query":"zzz","status":"similarity_fallback","results":["A","B","C"]}`+"\n",
		string(data))
}

func TestFileWriter_AppendFailure(t *testing.T) {
	w := NewFileWriter(filepath.Join(t.TempDir(), "missing", "dir", "log.json"))

	err := w.Append(domain.SearchLogRecord{Query: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLogWrite)
}

func TestLogger_Sync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search_logs.json")
	logger, err := NewLogger(NewFileWriter(path), Config{Now: fixedClock})
	require.NoError(t, err)
	defer logger.Close()

	logger.Log("Cheese Pizza!", domain.StatusExactMatch, []string{"Cheese Pizza"})
	logger.Log("", domain.StatusSimilarityFallback, nil)

	records := readRecords(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, domain.SearchLogRecord{
		Timestamp: "2024-03-09 18:04:05",
		Query:     "Cheese Pizza!",
		Status:    domain.StatusExactMatch,
		Results:   []string{"Cheese Pizza"},
	}, records[0])
	assert.Equal(t, []string{}, records[1].Results)
}

func TestLogger_WriteFailureIsReported(t *testing.T) {
	diag, hook := test.NewNullLogger()
	path := filepath.Join(t.TempDir(), "missing", "search_logs.json")

	logger, err := NewLogger(NewFileWriter(path), Config{Logger: logrus.NewEntry(diag), Now: fixedClock})
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		logger.Log("soup", domain.StatusSimilarityFallback, []string{"Soup"})
	})
	logger.Close()

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "soup", entry.Data["query"])
	assert.ErrorIs(t, entry.Data[logrus.ErrorKey].(error), domain.ErrLogWrite)
}

func TestLogger_ConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search_logs.json")
	logger, err := NewLogger(NewFileWriter(path), Config{Workers: 4})
	require.NoError(t, err)

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.Log(fmt.Sprintf("query %d with a fairly long body to widen any race window", i),
				domain.StatusSimilarityFallback, []string{"A", "B", "C"})
		}(i)
	}
	wg.Wait()
	logger.Close()

	records := readRecords(t, path)
	require.Len(t, records, writers)

	seen := make(map[string]bool, writers)
	for _, rec := range records {
		seen[rec.Query] = true
		assert.Len(t, rec.Timestamp, len(TimestampLayout))
	}
	assert.Len(t, seen, writers)
}

func TestLogger_LogDuringClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search_logs.json")
	logger, err := NewLogger(NewFileWriter(path), Config{Workers: 2, Now: fixedClock})
	require.NoError(t, err)

	const (
		writers   = 20
		perWriter = 10
	)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			for j := 0; j < perWriter; j++ {
				logger.Log(fmt.Sprintf("query %d-%d", i, j), domain.StatusSimilarityFallback, nil)
			}
		}(i)
	}

	close(start)
	assert.NotPanics(t, logger.Close)
	wg.Wait()

	// writes after Close go straight to the file
	logger.Log("late query", domain.StatusExactMatch, []string{"Soup"})
	assert.NotPanics(t, logger.Close)

	records := readRecords(t, path)
	require.Len(t, records, writers*perWriter+1)
	assert.Equal(t, "late query", records[len(records)-1].Query)
}
