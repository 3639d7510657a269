package subsystems

import (
	"sync"

	"arenacore/client"
)

// MetricService records the counters spec §4.D step 5 asks the
// authenticator to report: whether an invitation existed and whether a
// prior session was found.
type MetricService interface {
	RecordAuthStart(id client.PlayerID, hadInvitation, hadPriorSession bool)
	// Forget drops any per-player metric accumulation state owned here
	// (spec §4.H cascade); most metrics live on the client record itself
	// (spec §3 "metrics"), so this is typically a no-op.
	Forget(id client.PlayerID)
}

// MemMetricService is a minimal counting implementation, useful for tests
// asserting the authenticator actually reported what it observed.
type MemMetricService struct {
	mu                  sync.Mutex
	invitationStarts    int
	priorSessionStarts  int
	coldStarts          int
}

// NewMemMetricService returns a zeroed counter set.
func NewMemMetricService() *MemMetricService {
	return &MemMetricService{}
}

func (m *MemMetricService) RecordAuthStart(_ client.PlayerID, hadInvitation, hadPriorSession bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hadInvitation {
		m.invitationStarts++
	}
	if hadPriorSession {
		m.priorSessionStarts++
	} else {
		m.coldStarts++
	}
}

func (m *MemMetricService) Forget(client.PlayerID) {}

// Snapshot returns the current counters, for tests.
func (m *MemMetricService) Snapshot() (invitationStarts, priorSessionStarts, coldStarts int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.invitationStarts, m.priorSessionStarts, m.coldStarts
}
