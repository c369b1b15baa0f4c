package authstore

import (
	"fmt"

	"github.com/iudanet/corekeeper/internal/models"
)

// GetCapabilities returns the capabilities of identityID in projectID: those of
// the winning role statement among the current heads, or the empty non-member
// set when the identity has no role.
func (s *Store) GetCapabilities(identityID, projectID string) models.Capabilities {
	role, ok := models.LookupRole(s.GetRole(identityID, projectID))
	if !ok {
		return models.NonMember().Capabilities
	}
	return role.Capabilities
}

// GetRole returns the name of the current role of identityID in projectID.
func (s *Store) GetRole(identityID, projectID string) string {
	winner := s.heads.Winner(models.RoleRegisterKey(projectID, identityID))
	if winner == nil {
		return models.RoleNonMember
	}
	return winner.Role
}

// GetCoreOwnership returns the current owner of coreID.
func (s *Store) GetCoreOwnership(coreID string) (models.CoreOwnership, error) {
	winner := s.heads.Winner(models.CoreRegisterKey(coreID))
	if winner == nil {
		return models.CoreOwnership{}, fmt.Errorf("%w: ownership of core %s", ErrNotFound, coreID)
	}
	return models.OwnershipFromStatement(winner), nil
}

// CoreOwnerships returns the current owner of every claimed core, in the
// order the cores were first claimed.
func (s *Store) CoreOwnerships() []models.CoreOwnership {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CoreOwnership, 0, len(s.cores))
	for _, coreID := range s.cores {
		if winner := s.heads.Winner(models.CoreRegisterKey(coreID)); winner != nil {
			out = append(out, models.OwnershipFromStatement(winner))
		}
	}
	return out
}

// Projects returns the ids of all projects with an accepted genesis statement.
func (s *Store) Projects() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedKeys(s.projects)
}

// Heads returns the ids of the current heads of registerKey, winner first.
func (s *Store) Heads(registerKey string) []string {
	return s.heads.HeadIDs(registerKey)
}

// Statement returns a copy of a statement known to the store in any status.
func (s *Store) Statement(id string) (*models.Statement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.arena[id]
	if !ok {
		return nil, fmt.Errorf("%w: statement %s", ErrNotFound, id)
	}
	return e.stmt.Clone(), nil
}

// Status returns the processing status of a statement, StatusUnknown if never seen.
func (s *Store) Status(id string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.arena[id]
	if !ok {
		return StatusUnknown
	}
	return e.status
}

// PendingCount returns the number of statements waiting for predecessors.
func (s *Store) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.pending)
}
