package movelog

import "time"

// FileName is the log file kept inside each output directory.
const FileName = "organize_log.json"

// TempPattern matches the temp files a log write renames over FileName.
const TempPattern = ".organize_log-*.tmp"

// TimestampLayout is the ISO-8601 layout used for Record.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Record is one completed relocation: Src is where the file was before
// organizing, Dest where it was moved to.
type Record struct {
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Src       string `json:"src" yaml:"src"`
	Dest      string `json:"dest" yaml:"dest"`
	RunID     string `json:"run_id,omitempty" yaml:"run_id,omitempty"`
}

// NewRecord stamps a record with the given time in TimestampLayout.
func NewRecord(at time.Time, src, dest, runID string) Record {
	return Record{
		Timestamp: at.Format(TimestampLayout),
		Src:       src,
		Dest:      dest,
		RunID:     runID,
	}
}

// Time parses Timestamp. Offsets written by other tools (RFC 3339) are accepted.
func (r Record) Time() (time.Time, bool) {
	for _, layout := range []string{TimestampLayout, time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, r.Timestamp, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (r Record) valid() bool {
	return r.Src != "" && r.Dest != ""
}
