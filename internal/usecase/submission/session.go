package submission

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync/atomic"
)

// Guard records that a submission key has been processed. Claim returns
// true only for the first caller of a key until Release drops it.
type Guard interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Kind identifies one record kind guarded by a Session.
type Kind string

const (
	KindTasks     Kind = "tasks"
	KindConflicts Kind = "conflicts"
)

// Session is the caller-held already-processed guard for one analysis.
// Each record kind can be claimed once. When a durable Guard is attached,
// the claim also has to win there, so a second process or request that
// builds a Session with the same key gets nothing.
type Session struct {
	key   string
	guard Guard

	tasksDone     atomic.Bool
	conflictsDone atomic.Bool
}

// NewSession creates a session. guard may be nil for an in-process guard only.
func NewSession(key string, guard Guard) *Session {
	return &Session{key: key, guard: guard}
}

// Key returns the session key.
func (s *Session) Key() string {
	return s.key
}

// ClaimTasks claims the task submission for this session.
func (s *Session) ClaimTasks(ctx context.Context) (bool, error) {
	return s.claim(ctx, &s.tasksDone, KindTasks)
}

// ClaimConflicts claims the conflict submission for this session.
func (s *Session) ClaimConflicts(ctx context.Context) (bool, error) {
	return s.claim(ctx, &s.conflictsDone, KindConflicts)
}

// Done reports whether kind was already claimed in this session.
func (s *Session) Done(kind Kind) bool {
	if flag := s.flag(kind); flag != nil {
		return flag.Load()
	}
	return false
}

// Release gives up the claim on kind so the same analysis can be
// submitted again, locally and in the durable guard.
func (s *Session) Release(ctx context.Context, kind Kind) error {
	flag := s.flag(kind)
	if flag == nil {
		return fmt.Errorf("unknown kind %q", kind)
	}
	if s.guard != nil {
		if err := s.guard.Release(ctx, s.key+":"+string(kind)); err != nil {
			return fmt.Errorf("release %s: %w", kind, err)
		}
	}
	flag.Store(false)
	return nil
}

func (s *Session) flag(kind Kind) *atomic.Bool {
	switch kind {
	case KindTasks:
		return &s.tasksDone
	case KindConflicts:
		return &s.conflictsDone
	}
	return nil
}

// claim flips the local flag before any durable call so that concurrent
// callers on the same session never both proceed.
func (s *Session) claim(ctx context.Context, flag *atomic.Bool, kind Kind) (bool, error) {
	if !flag.CompareAndSwap(false, true) {
		return false, nil
	}
	if s.guard == nil {
		return true, nil
	}

	ok, err := s.guard.Claim(ctx, s.key+":"+string(kind))
	if err != nil {
		flag.Store(false)
		return false, fmt.Errorf("claim %s: %w", kind, err)
	}
	return ok, nil
}

// SessionKey derives a stable key for one analysis of one meeting.
func SessionKey(meetingID, analysisText string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(analysisText)))
	return "submission:" + meetingID + ":" + hex.EncodeToString(sum[:12])
}
