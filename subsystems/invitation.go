package subsystems

import (
	"sync"

	"arenacore/client"
)

// InvitationID identifies an invitation a player may redeem on connect
// (spec §4.D input: "invitation_id?").
type InvitationID string

// InvitationRequest is an Invitation(r) dispatcher payload (spec §4.F).
type InvitationRequest struct {
	Create bool
	Redeem *InvitationID
}

// InvitationService owns pending invitations.
type InvitationService interface {
	// Exists reports whether id is a live, unredeemed invitation — used by
	// the authenticator (spec §4.D step 5: "whether an invitation existed").
	Exists(id InvitationID) bool
	// HandleRequest delegates an Invitation(r) request.
	HandleRequest(playerID client.PlayerID, req InvitationRequest) (reply interface{}, err error)
	// Forget drops any invitations owned by playerID (spec §4.H cascade).
	Forget(playerID client.PlayerID)
}

// MemInvitationService is a minimal real invitation store.
type MemInvitationService struct {
	mu          sync.Mutex
	invitations map[InvitationID]client.PlayerID
	byOwner     map[client.PlayerID][]InvitationID
}

// NewMemInvitationService returns an empty invitation store.
func NewMemInvitationService() *MemInvitationService {
	return &MemInvitationService{
		invitations: make(map[InvitationID]client.PlayerID),
		byOwner:     make(map[client.PlayerID][]InvitationID),
	}
}

func (s *MemInvitationService) Exists(id InvitationID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.invitations[id]
	return ok
}

func (s *MemInvitationService) HandleRequest(playerID client.PlayerID, req InvitationRequest) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Create {
		id := InvitationID(string(playerID) + "-invite")
		s.invitations[id] = playerID
		s.byOwner[playerID] = append(s.byOwner[playerID], id)
		return id, nil
	}
	if req.Redeem != nil {
		delete(s.invitations, *req.Redeem)
		return nil, nil
	}
	return nil, nil
}

func (s *MemInvitationService) Forget(playerID client.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.byOwner[playerID] {
		delete(s.invitations, id)
	}
	delete(s.byOwner, playerID)
}
