package matchmaking

import (
	"errors"
	"sync"
	"time"

	"github.com/Dosada05/pokearena/models"
)

const (
	DefaultRatingRange = 200
	DefaultTimeout     = 5 * time.Minute
)

var (
	ErrAlreadyQueued = errors.New("user is already in the matchmaking queue")
	ErrQueueClosed   = errors.New("matchmaking queue is closed")
)

// Entry is a waiting player. It only lives in process memory.
type Entry struct {
	UserID      int              `json:"user_id"`
	Username    string           `json:"username"`
	Rating      int              `json:"rating"`
	TeamSize    int              `json:"team_size"`
	Mode        models.MatchMode `json:"mode"`
	RatingRange int              `json:"rating_range"`
	// MatchID is the WAITING match created for this entry. Zero until attached.
	MatchID  int       `json:"match_id"`
	JoinedAt time.Time `json:"joined_at"`
}

func (e *Entry) ratingRange() int {
	if e.RatingRange <= 0 {
		return DefaultRatingRange
	}
	return e.RatingRange
}

// Compatible: same mode, equal team size and, for ranked, a rating gap both
// sides accept.
func Compatible(a, b *Entry) bool {
	if a.Mode != b.Mode || a.TeamSize != b.TeamSize {
		return false
	}
	if a.Mode != models.ModeRanked {
		return true
	}
	gap := a.Rating - b.Rating
	if gap < 0 {
		gap = -gap
	}
	return gap <= a.ratingRange() && gap <= b.ratingRange()
}

// ExpiryFunc runs outside the queue lock after an entry timed out.
type ExpiryFunc func(entry Entry)

// Queue is a FIFO of waiting players guarded by a mutex. The first compatible
// entry wins; there is no best-match search.
type Queue struct {
	mu       sync.Mutex
	entries  []*Entry
	timers   map[int]*time.Timer
	timeout  time.Duration
	onExpire ExpiryFunc
	now      func() time.Time
	closed   bool
}

func NewQueue(timeout time.Duration, onExpire ExpiryFunc) *Queue {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Queue{
		timers:   make(map[int]*time.Timer),
		timeout:  timeout,
		onExpire: onExpire,
		now:      time.Now,
	}
}

// SetExpiryFunc replaces the expiry callback. Used when the owner of the
// callback is built after the queue.
func (q *Queue) SetExpiryFunc(fn ExpiryFunc) {
	q.mu.Lock()
	q.onExpire = fn
	q.mu.Unlock()
}

// FindOrEnqueue removes and returns the first compatible waiting entry, or
// queues the caller when there is none. Entries without a match attached yet
// are skipped.
func (q *Queue) FindOrEnqueue(entry Entry) (*Entry, bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, false, ErrQueueClosed
	}
	if q.indexOf(entry.UserID) >= 0 {
		return nil, false, ErrAlreadyQueued
	}

	for i, waiting := range q.entries {
		if waiting.MatchID == 0 || !Compatible(waiting, &entry) {
			continue
		}
		q.removeAt(i)
		found := *waiting
		return &found, true, nil
	}

	if entry.JoinedAt.IsZero() {
		entry.JoinedAt = q.now()
	}
	stored := entry
	q.entries = append(q.entries, &stored)
	q.arm(entry.UserID, entry.JoinedAt, q.timeout)
	return nil, false, nil
}

// Requeue puts back an entry that FindOrEnqueue handed out but could not be
// paired. It keeps its place by JoinedAt and only gets the rest of its
// original timeout.
func (q *Queue) Requeue(entry Entry) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	if q.indexOf(entry.UserID) >= 0 {
		return ErrAlreadyQueued
	}
	if entry.JoinedAt.IsZero() {
		entry.JoinedAt = q.now()
	}

	pos := len(q.entries)
	for i, e := range q.entries {
		if e.JoinedAt.After(entry.JoinedAt) {
			pos = i
			break
		}
	}
	stored := entry
	q.entries = append(q.entries, nil)
	copy(q.entries[pos+1:], q.entries[pos:])
	q.entries[pos] = &stored

	remaining := q.timeout - q.now().Sub(entry.JoinedAt)
	if remaining < 0 {
		remaining = 0
	}
	q.arm(entry.UserID, entry.JoinedAt, remaining)
	return nil
}

// arm must be called with q.mu held.
func (q *Queue) arm(userID int, joinedAt time.Time, after time.Duration) {
	q.timers[userID] = time.AfterFunc(after, func() {
		q.expire(userID, joinedAt)
	})
}

// AttachMatch links a queued entry to its WAITING match. False means the
// entry left the queue in the meantime.
func (q *Queue) AttachMatch(userID, matchID int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexOf(userID)
	if i < 0 {
		return false
	}
	q.entries[i].MatchID = matchID
	return true
}

// Remove is idempotent.
func (q *Queue) Remove(userID int) (*Entry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.indexOf(userID)
	if i < 0 {
		return nil, false
	}
	removed := *q.entries[i]
	q.removeAt(i)
	return &removed, true
}

func (q *Queue) Contains(userID int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.indexOf(userID) >= 0
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

func (q *Queue) Snapshot() []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Entry, 0, len(q.entries))
	for _, e := range q.entries {
		out = append(out, *e)
	}
	return out
}

// Close stops every pending expiry timer and rejects new entries.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	for userID, t := range q.timers {
		t.Stop()
		delete(q.timers, userID)
	}
	q.entries = nil
}

func (q *Queue) expire(userID int, joinedAt time.Time) {
	q.mu.Lock()
	i := q.indexOf(userID)
	// the user may have left and joined again since this timer was armed
	if i < 0 || !q.entries[i].JoinedAt.Equal(joinedAt) {
		q.mu.Unlock()
		return
	}
	expired := *q.entries[i]
	q.removeAt(i)
	callback := q.onExpire
	q.mu.Unlock()

	if callback != nil {
		callback(expired)
	}
}

func (q *Queue) indexOf(userID int) int {
	for i, e := range q.entries {
		if e.UserID == userID {
			return i
		}
	}
	return -1
}

// removeAt must be called with q.mu held.
func (q *Queue) removeAt(i int) {
	userID := q.entries[i].UserID
	if t, ok := q.timers[userID]; ok {
		t.Stop()
		delete(q.timers, userID)
	}
	q.entries = append(q.entries[:i], q.entries[i+1:]...)
}
