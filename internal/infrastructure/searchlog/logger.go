package searchlog

import (
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/domain"
)

// TimestampLayout is the second-precision local timestamp used in records
const TimestampLayout = "2006-01-02 15:04:05"

// Config holds configuration for the search logger
type Config struct {
	// Workers is the size of the write pool; 0 writes synchronously
	Workers int
	Logger  *logrus.Entry
	// Now overrides the clock, mainly for tests
	Now func() time.Time
}

// Logger records search outcomes without ever failing the search itself.
// Write failures go to the diagnostic logrus channel.
type Logger struct {
	writer domain.SearchLogWriter
	pool   *ants.Pool
	wg     sync.WaitGroup
	now    func() time.Time
	log    *logrus.Entry

	// mu orders wg.Add in Log before wg.Wait in Close
	mu     sync.RWMutex
	closed bool
}

// NewLogger creates a search logger that appends through writer
func NewLogger(writer domain.SearchLogWriter, config Config) (*Logger, error) {
	log := config.Logger
	if log == nil {
		log = logrus.WithField("component", "search_log")
	}

	now := config.Now
	if now == nil {
		now = time.Now
	}

	l := &Logger{
		writer: writer,
		now:    now,
		log:    log,
	}

	if config.Workers > 0 {
		pool, err := ants.NewPool(config.Workers, ants.WithNonblocking(true))
		if err != nil {
			return nil, err
		}
		l.pool = pool
	}

	return l, nil
}

// Log stamps and appends one record. It never blocks on a saturated pool:
// when no worker is free, or the logger is closed, the record is written inline.
func (l *Logger) Log(query string, status domain.SearchStatus, results []string) {
	if results == nil {
		results = []string{}
	}

	record := domain.SearchLogRecord{
		Timestamp: l.now().Local().Format(TimestampLayout),
		Query:     query,
		Status:    status,
		Results:   results,
	}

	l.mu.RLock()
	if l.pool == nil || l.closed {
		l.mu.RUnlock()
		l.write(record)
		return
	}
	l.wg.Add(1)
	l.mu.RUnlock()

	err := l.pool.Submit(func() {
		defer l.wg.Done()
		l.write(record)
	})
	if err != nil {
		l.wg.Done()
		l.log.WithError(err).Debug("write pool unavailable, writing inline")
		l.write(record)
	}
}

// write appends record and reports failures to the diagnostic channel
func (l *Logger) write(record domain.SearchLogRecord) {
	if err := l.writer.Append(record); err != nil {
		l.log.WithError(err).WithFields(logrus.Fields{
			"query":  record.Query,
			"status": record.Status,
		}).Error("failed to append search log record")
	}
}

// Close waits for pending writes and releases the write pool.
// Later calls to Log write synchronously; Close is safe to call twice.
func (l *Logger) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()

	l.wg.Wait()
	if l.pool != nil {
		l.pool.Release()
	}
}
