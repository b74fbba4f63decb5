package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

const (
	ActionGrantSubscription  = "grant_subscription"
	ActionRevokeSubscription = "revoke_subscription"
	ActionChangeRole         = "change_role"
)

// Entry is one administrative action, stored as a single NDJSON line.
type Entry struct {
	Action         string    `json:"action"`
	AdminID        int       `json:"admin_id"`
	AdminEmail     string    `json:"admin_email"`
	TargetUserID   int       `json:"target_user_id"`
	SubscriptionID string    `json:"subscription_id,omitempty"`
	Detail         string    `json:"detail,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Log appends entries to a newline-delimited JSON file and reads them
// back most-recent-first. It is not a structured log store: a single
// append per action, a capped tail for display.
type Log struct {
	path string
	mu   sync.Mutex
}

func NewLog(path string) *Log {
	return &Log{path: path}
}

// Append writes one entry. The timestamp is set here if the caller left
// it zero.
func (l *Log) Append(entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return nil
}

// Tail returns up to limit entries, most recent first. Lines that fail
// to parse are skipped so one corrupt line cannot hide the rest.
func (l *Log) Tail(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}

	// Reverse to most-recent-first, then cap.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}
