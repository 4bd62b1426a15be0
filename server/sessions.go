package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/benoitkugler/okgrad"
	"github.com/benoitkugler/okgrad/gradstate"
	"github.com/google/uuid"
)

var (
	errSessionNotFound = errors.New("session not found")
	errTooManySessions = errors.New("too many sessions")
	errBadAction       = errors.New("invalid action")
)

// session is an editing store with the time it was last used.
type session struct {
	store    *gradstate.Store
	lastUsed time.Time
}

// sessions maps ids to editing stores. Sessions idle for longer than ttl
// are dropped on the next access.
type sessions struct {
	mu     sync.Mutex
	stores map[string]*session
	max    int
	ttl    time.Duration
	now    func() time.Time
}

func newSessions(limit int, ttl time.Duration) *sessions {
	return &sessions{stores: make(map[string]*session), max: limit, ttl: ttl, now: time.Now}
}

// evictLocked drops the expired sessions. ss.mu must be held.
func (ss *sessions) evictLocked(now time.Time) {
	for id, s := range ss.stores {
		if now.Sub(s.lastUsed) > ss.ttl {
			delete(ss.stores, id)
			okgrad.Logger().Debug("session expired", "id", id)
		}
	}
}

func (ss *sessions) create(initial gradstate.State) (string, *gradstate.Store, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	now := ss.now()
	ss.evictLocked(now)
	if len(ss.stores) >= ss.max {
		return "", nil, errTooManySessions
	}
	id := uuid.NewString()
	store := gradstate.NewStore(initial)
	ss.stores[id] = &session{store: store, lastUsed: now}
	return id, store, nil
}

func (ss *sessions) get(id string) (*gradstate.Store, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	now := ss.now()
	ss.evictLocked(now)
	s, ok := ss.stores[id]
	if !ok {
		return nil, errSessionNotFound
	}
	s.lastUsed = now
	return s.store, nil
}

func (ss *sessions) delete(id string) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if _, ok := ss.stores[id]; !ok {
		return errSessionNotFound
	}
	delete(ss.stores, id)
	return nil
}

func (ss *sessions) len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.evictLocked(ss.now())
	return len(ss.stores)
}

// actionRequest is the JSON form of an edit.
//
//	{"action": "set", "field": "angle", "value": 45}
//	{"action": "addColorStop"}
//	{"action": "updateColorStop", "id": "2", "patch": {"alpha": 0.5}}
//	{"action": "removeColorStop", "id": "2"}
//	{"action": "replace", "state": {...}}
type actionRequest struct {
	Action string               `json:"action" binding:"required"`
	Field  string               `json:"field"`
	Value  json.RawMessage      `json:"value"`
	ID     string               `json:"id"`
	Patch  *gradstate.StopPatch `json:"patch"`
	State  *gradstate.State     `json:"state"`
}

// rawText returns the text of a JSON string, or the literal of other
// JSON values.
func rawText(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(v))
}

func (req actionRequest) toAction() (gradstate.Action, error) {
	switch req.Action {
	case "set":
		if len(req.Value) == 0 {
			return nil, fmt.Errorf("%w: missing value", errBadAction)
		}
		a, err := gradstate.SetField(req.Field, rawText(req.Value))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errBadAction, err)
		}
		return a, nil
	case "addColorStop":
		return gradstate.AddColorStop{}, nil
	case "updateColorStop":
		if req.ID == "" || req.Patch == nil {
			return nil, fmt.Errorf("%w: updateColorStop needs an id and a patch", errBadAction)
		}
		if req.Patch.Color != nil && !gradstate.IsHexColor(*req.Patch.Color) {
			return nil, fmt.Errorf("%w: stop color %q", errBadAction, *req.Patch.Color)
		}
		return gradstate.UpdateColorStop{ID: req.ID, Patch: *req.Patch}, nil
	case "removeColorStop":
		if req.ID == "" {
			return nil, fmt.Errorf("%w: removeColorStop needs an id", errBadAction)
		}
		return gradstate.RemoveColorStop{ID: req.ID}, nil
	case "replace":
		if req.State == nil {
			return nil, fmt.Errorf("%w: replace needs a state", errBadAction)
		}
		if err := gradstate.Validate(*req.State); err != nil {
			return nil, fmt.Errorf("%w: %w", errBadAction, err)
		}
		return gradstate.Replace{State: *req.State}, nil
	}
	return nil, fmt.Errorf("%w: unknown action %q", errBadAction, req.Action)
}
