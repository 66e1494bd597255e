package telegram

import "sync"

// Flow identifies a bounded conversational interaction that awaits exactly
// one more text input from a specific user.
type Flow string

const (
	FlowRegistration   Flow = "registration"
	FlowDeleteConfirm  Flow = "delete_confirmation"
	FlowAddAdmin       Flow = "add_admin"
	FlowRemoveAdmin    Flow = "remove_admin"
	FlowBroadcast      Flow = "broadcast_message"
	FlowScheduleChange Flow = "schedule_change"
	FlowReportDate     Flow = "report_by_date"
	FlowOtherStatus    Flow = "status_other"
)

// FlowStore holds the per-user conversation state in process memory. The
// state is ephemeral and best-effort: a restart drops in-flight flows and
// the user reissues the command. Each user has at most one active flow;
// opening another one overwrites it (last-write-wins).
type FlowStore struct {
	mu     sync.Mutex
	active map[int64]Flow
}

func NewFlowStore() *FlowStore {
	return &FlowStore{active: make(map[int64]Flow)}
}

// Begin records the awaited flow for the user.
func (s *FlowStore) Begin(userID int64, flow Flow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[userID] = flow
}

// Active reports the user's current flow without clearing it.
func (s *FlowStore) Active(userID int64) (Flow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flow, ok := s.active[userID]
	return flow, ok
}

// Pop returns the user's current flow and clears it. The flow is terminal
// whether or not the input turns out to be valid, so handlers call Pop once
// and never re-arm on failure.
func (s *FlowStore) Pop(userID int64) (Flow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flow, ok := s.active[userID]
	if ok {
		delete(s.active, userID)
	}
	return flow, ok
}

// Clear drops the user's flow, if any.
func (s *FlowStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, userID)
}
