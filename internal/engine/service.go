package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"questrank/internal/logger"
	"questrank/internal/storage"
)

var ErrQuestNotFound = errors.New("quest not found")

// StateStore persists full snapshots plus the XP journal. Both the SQLite
// store and the bolt store satisfy it.
type StateStore interface {
	LoadSnapshot(ctx context.Context) (*storage.Snapshot, error)
	SaveSnapshot(ctx context.Context, snap storage.Snapshot, entries []storage.JournalEntry) error
	RecentJournal(ctx context.Context, limit int) ([]storage.JournalEntry, error)
	SumSince(ctx context.Context, since time.Time) (int, error)
}

type Options struct {
	Store  StateStore
	Logger *logger.Logger
	Now    func() time.Time
	Rand   Rand
}

// Service owns the current snapshot and applies one transition at a time,
// writing the full state through the store after each change.
type Service struct {
	mu    sync.Mutex
	store StateStore
	log   *logger.Logger
	now   func() time.Time
	rng   Rand
	st    AppState
}

func NewService(opts Options) *Service {
	s := &Service{
		store: opts.Store,
		log:   opts.Logger,
		now:   opts.Now,
		rng:   opts.Rand,
		st:    DefaultState(),
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(s.now().UnixNano())))
	}
	return s
}

// Load reads the persisted snapshot. Missing, unreadable or undecodable
// snapshots fall back to a fresh default state.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st = DefaultState()
	if s.store == nil {
		return nil
	}
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		s.log.Warn("load snapshot failed, starting fresh", "error", err)
		return nil
	}
	if snap == nil {
		s.log.Debug("no snapshot stored, starting fresh")
		return nil
	}
	st, err := DecodeState(snap.Payload)
	if err != nil {
		s.log.Warn("decode snapshot failed, starting fresh", "error", err)
		return nil
	}
	if st.SchemaVersion > CurrentSchemaVersion {
		s.log.Warn("snapshot is newer than this engine", "schema_version", st.SchemaVersion, "supported", CurrentSchemaVersion)
	}
	s.st = st
	return nil
}

// State returns a deep copy of the current snapshot.
func (s *Service) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Clone()
}

func (s *Service) Now() time.Time { return s.now() }

type transition func(st AppState, now time.Time) (AppState, Result, error)

// apply runs fn against the current state. Rejections leave state untouched;
// a failed write does not advance the in-memory state either.
func (s *Service) apply(ctx context.Context, action, ref string, fn transition) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	next, res, err := fn(s.st, now)
	if err != nil {
		var rej *RejectedError
		if errors.As(err, &rej) {
			s.log.Info("action rejected", "action", action, "ref", ref, "reason", rej.Reason)
		}
		return Result{}, err
	}
	if !res.Changed {
		return res, nil
	}

	var entries []storage.JournalEntry
	if res.Credited != 0 || res.Repaid != 0 {
		entries = append(entries, storage.JournalEntry{
			At:      now,
			DateKey: DayKey(next.Settings, now),
			Action:  action,
			Ref:     ref,
			Delta:   res.Credited,
			Repaid:  res.Repaid,
		})
	}
	if err := s.persist(ctx, next, entries); err != nil {
		s.log.Error("persist failed", "action", action, "error", err)
		return Result{}, err
	}
	s.st = next
	s.log.Debug("action applied", "action", action, "ref", ref, "credited", res.Credited, "repaid", res.Repaid)
	return res, nil
}

func (s *Service) persist(ctx context.Context, st AppState, entries []storage.JournalEntry) error {
	if s.store == nil {
		return nil
	}
	payload, err := EncodeState(st)
	if err != nil {
		return err
	}
	snap := storage.Snapshot{SchemaVersion: st.SchemaVersion, Payload: payload, SavedAt: s.now()}
	if err := s.store.SaveSnapshot(ctx, snap, entries); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

// Tick runs rollover, the bedtime penalty and challenge refresh for now.
func (s *Service) Tick(ctx context.Context) (Result, error) {
	return s.apply(ctx, "tick", "", func(st AppState, now time.Time) (AppState, Result, error) {
		next, res := Tick(st, now, s.rng)
		return next, res, nil
	})
}

// FindQuest resolves a quest by exact id, id prefix or case-insensitive name.
func (s *Service) FindQuest(ref string) (Quest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return findQuest(s.st, ref)
}

func findQuest(st AppState, ref string) (Quest, error) {
	r := strings.TrimSpace(ref)
	if r == "" {
		return Quest{}, ErrQuestNotFound
	}
	if i := st.QuestIndex(r); i >= 0 {
		return st.Quests[i], nil
	}
	var match []Quest
	for _, q := range st.Quests {
		if strings.EqualFold(q.Name, r) {
			return q, nil
		}
		if strings.HasPrefix(q.ID, r) {
			match = append(match, q)
		}
	}
	switch len(match) {
	case 0:
		return Quest{}, fmt.Errorf("%w: %s", ErrQuestNotFound, r)
	case 1:
		return match[0], nil
	default:
		return Quest{}, fmt.Errorf("ambiguous quest reference %q matches %d quests", r, len(match))
	}
}

func (s *Service) AddQuest(ctx context.Context, draft QuestDraft) (Quest, error) {
	var created Quest
	_, err := s.apply(ctx, "add", draft.Name, func(st AppState, now time.Time) (AppState, Result, error) {
		next, q := AddQuest(st, draft, now)
		created = q
		return next, Result{Changed: true}, nil
	})
	return created, err
}

func (s *Service) AddPreset(ctx context.Context, code string) (Quest, error) {
	var created Quest
	_, err := s.apply(ctx, "add", code, func(st AppState, now time.Time) (AppState, Result, error) {
		next, q, err := AddPreset(st, code, now)
		if err != nil {
			return st, Result{}, err
		}
		created = q
		return next, Result{Changed: true}, nil
	})
	return created, err
}

func (s *Service) UpdateQuest(ctx context.Context, id string, p QuestPatch) (Quest, error) {
	var updated Quest
	_, err := s.apply(ctx, "edit", id, func(st AppState, now time.Time) (AppState, Result, error) {
		if st.QuestIndex(id) < 0 {
			return st, Result{}, ErrQuestNotFound
		}
		next, res := UpdateQuest(st, id, p)
		updated = next.Quests[next.QuestIndex(id)]
		return next, res, nil
	})
	return updated, err
}

func (s *Service) DeleteQuest(ctx context.Context, id string) error {
	_, err := s.apply(ctx, "delete", id, func(st AppState, now time.Time) (AppState, Result, error) {
		if st.QuestIndex(id) < 0 {
			return st, Result{}, ErrQuestNotFound
		}
		next, res := DeleteQuest(st, id)
		return next, res, nil
	})
	return err
}

func (s *Service) ToggleQuest(ctx context.Context, id string) (Result, error) {
	return s.apply(ctx, "toggle", id, func(st AppState, now time.Time) (AppState, Result, error) {
		return ToggleQuest(st, id, now)
	})
}

func (s *Service) StartTimer(ctx context.Context, id string) (Result, error) {
	return s.apply(ctx, "start", id, func(st AppState, now time.Time) (AppState, Result, error) {
		return StartQuest(st, id, now)
	})
}

func (s *Service) PauseTimer(ctx context.Context, id string) (Result, error) {
	return s.apply(ctx, "pause", id, func(st AppState, now time.Time) (AppState, Result, error) {
		return PauseQuest(st, id, now)
	})
}

func (s *Service) ResumeTimer(ctx context.Context, id string) (Result, error) {
	return s.apply(ctx, "resume", id, func(st AppState, now time.Time) (AppState, Result, error) {
		return ResumeQuest(st, id, now)
	})
}

func (s *Service) CompleteQuest(ctx context.Context, id string) (Result, error) {
	return s.apply(ctx, "complete", id, func(st AppState, now time.Time) (AppState, Result, error) {
		return CompleteQuest(st, id, now)
	})
}

func (s *Service) ToggleBoss(ctx context.Context) (Result, error) {
	return s.apply(ctx, "boss", "", ToggleBoss)
}

func (s *Service) CompleteWeekly(ctx context.Context) (Result, error) {
	return s.apply(ctx, "weekly", "", CompleteWeeklyChallenge)
}

func (s *Service) RevealMystery(ctx context.Context) (Result, error) {
	return s.apply(ctx, "reveal", "", RevealMysteryBox)
}

func (s *Service) RerollMystery(ctx context.Context) (Result, error) {
	return s.apply(ctx, "reroll", "", func(st AppState, now time.Time) (AppState, Result, error) {
		return RerollMysteryBox(st, now, s.rng)
	})
}

func (s *Service) CompleteMystery(ctx context.Context) (Result, error) {
	return s.apply(ctx, "mystery", "", CompleteMysteryBox)
}

func (s *Service) UpdateSettings(ctx context.Context, p SettingsPatch) (Settings, error) {
	var out Settings
	_, err := s.apply(ctx, "settings", "", func(st AppState, now time.Time) (AppState, Result, error) {
		next, res := UpdateSettings(st, p)
		out = next.Settings
		return next, res, nil
	})
	return out, err
}

// History returns recent XP journal entries, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]storage.JournalEntry, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.RecentJournal(ctx, limit)
}

// XPThisWeek totals the journaled XP since the start of the current weekly
// window.
func (s *Service) XPThisWeek(ctx context.Context) (int, error) {
	if s.store == nil {
		return 0, nil
	}
	s.mu.Lock()
	settings := s.st.Settings
	s.mu.Unlock()
	start, _ := WeeklyWindow(settings, s.now())
	return s.store.SumSince(ctx, start)
}
