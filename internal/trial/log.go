package trial

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Header is the first row of every trial log.
var Header = []string{
	"Trial Index", "Date", "Time", "Subject", "Condition", "Card Selected",
	"Background Touches", "Video Touches", "Time till Choice (sec)", "Pellets Dispensed",
}

// Log appends trial rows to one subject's CSV file.
type Log struct {
	path string
}

// LogPath returns the CSV path for subject inside dir.
func LogPath(dir, subject string) string {
	return filepath.Join(dir, fmt.Sprintf("stats_%s.csv", FileStem(subject)))
}

// OpenLog prepares the subject's log in dir, writing the header if the file
// is new or empty. Existing rows are never touched.
func OpenLog(dir, subject string) (*Log, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure trial log dir: %w", err)
	}
	l := &Log{path: LogPath(dir, subject)}

	info, err := os.Stat(l.path)
	if err == nil && info.Size() > 0 {
		return l, nil
	}
	if err := l.write(Header); err != nil {
		return nil, fmt.Errorf("write trial log header: %w", err)
	}
	return l, nil
}

// Path returns the backing file.
func (l *Log) Path() string {
	return l.path
}

// Append writes one row for rec. The trial index is written one-based.
func (l *Log) Append(rec *Record) error {
	row := []string{
		strconv.Itoa(rec.TrialIndex + 1),
		rec.Date,
		rec.Time,
		rec.Subject,
		rec.Condition,
		rec.CardSelected,
		strconv.Itoa(rec.BackgroundTouches),
		strconv.Itoa(rec.VideoTouches),
		strconv.FormatFloat(rec.LatencySeconds(), 'f', -1, 64),
		strconv.Itoa(rec.PelletsDispensed),
	}
	if err := l.write(row); err != nil {
		return fmt.Errorf("append trial row: %w", err)
	}
	return nil
}

// write opens the file per row so each row is on disk once Append returns.
func (l *Log) write(row []string) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(row); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
