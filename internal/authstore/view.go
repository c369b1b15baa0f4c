package authstore

import (
	"fmt"

	"github.com/iudanet/corekeeper/internal/crypto"
	"github.com/iudanet/corekeeper/internal/models"
)

// vclock - число statements каждого устройства в causal past, включая сам statement.
// Statements устройства образуют цепочку по DeviceIndex, поэтому statement с
// позицией (device, index) достижим тогда и только тогда, когда vclock[device] > index.
type vclock map[string]uint64

// view - causal past набора links. Запросы идут по индексам Store,
// поэтому view не копирует принятые statements. Действителен под s.mu.
type view struct {
	s    *Store
	past vclock
}

// viewOf сливает vclock принятых links. Вызывается под s.mu.
func (s *Store) viewOf(links []string) *view {
	past := make(vclock)
	for _, link := range links {
		e, ok := s.arena[link]
		if !ok || e.status != StatusAccepted {
			continue
		}
		for device, n := range e.past {
			if n > past[device] {
				past[device] = n
			}
		}
	}
	return &view{s: s, past: past}
}

func (v *view) contains(e *entry) bool {
	return e != nil && e.status == StatusAccepted && v.past[e.stmt.DeviceID] > e.stmt.DeviceIndex
}

// winner - наибольший по models.Compare statement регистра в causal past.
// Он всегда head: statement, заменивший его, имел бы больший timestamp.
func (v *view) winner(key string) *models.Statement {
	list := v.s.registers[key]
	for i := len(list) - 1; i >= 0; i-- {
		if v.contains(list[i]) {
			return list[i].stmt
		}
	}
	return nil
}

func (v *view) projectKnown(projectID string) bool {
	for _, id := range v.s.projects[projectID] {
		if v.contains(v.s.arena[id]) {
			return true
		}
	}
	return false
}

// nextAuthorIndex - 1 + наибольший authorIndex автора в causal past.
func (v *view) nextAuthorIndex(authorID string) uint64 {
	list := v.s.authored[authorID]
	for i := len(list) - 1; i >= 0; i-- {
		if v.contains(list[i]) {
			return list[i].stmt.AuthorIndex + 1
		}
	}
	return 0
}

func (v *view) role(projectID, identityID string) string {
	winner := v.winner(models.RoleRegisterKey(projectID, identityID))
	if winner == nil {
		return models.RoleNonMember
	}
	return winner.Role
}

func (v *view) capabilities(projectID, identityID string) models.Capabilities {
	role, ok := models.LookupRole(v.role(projectID, identityID))
	if !ok {
		return models.NonMember().Capabilities
	}
	return role.Capabilities
}

func (v *view) deviceActive(identityID, deviceKey string) bool {
	winner := v.winner(models.DeviceRegisterKey(identityID, deviceKey))
	return winner != nil && winner.Action != models.ActionDeviceRemove
}

// authorize проверяет, что автор мог выполнить действие в этом causal past.
func (v *view) authorize(s *models.Statement) error {
	if s.DeviceID != s.AuthorID && !v.deviceActive(s.AuthorID, s.DeviceID) {
		return fmt.Errorf("%w: %s is not an active device of %s", ErrPermissionDenied, s.DeviceID, s.AuthorID)
	}
	if expected := v.nextAuthorIndex(s.AuthorID); s.AuthorIndex != expected {
		return fmt.Errorf("author_index %d does not follow causal past, expected %d", s.AuthorIndex, expected)
	}

	switch s.Type {
	case models.StatementRole:
		return v.authorizeRole(s)
	case models.StatementDevice:
		return v.authorizeDevice(s)
	case models.StatementCoreOwnership:
		return v.authorizeCoreOwnership(s)
	default:
		return fmt.Errorf("unknown statement type %q", s.Type)
	}
}

func (v *view) authorizeRole(s *models.Statement) error {
	if isGenesis(s) {
		return nil
	}
	if s.Role == models.RoleProjectCreator {
		return fmt.Errorf("%w: %s can only be taken by creating a project", ErrPermissionDenied, models.RoleProjectCreator)
	}
	if !v.projectKnown(s.ProjectID) {
		return fmt.Errorf("%w: project %s", ErrUnknownReference, s.ProjectID)
	}
	if role := v.role(s.ProjectID, s.AuthorID); !models.CanAssignRoles(role) {
		return fmt.Errorf("%w: role %s cannot assign roles", ErrPermissionDenied, role)
	}
	return nil
}

func (v *view) authorizeDevice(s *models.Statement) error {
	if s.Action != models.ActionDeviceAdd && v.winner(models.DeviceRegisterKey(s.IdentityID, s.DeviceKey)) == nil {
		return fmt.Errorf("%w: device %s of %s was never added", ErrUnknownReference, s.DeviceKey, s.IdentityID)
	}
	if s.IdentityID == s.AuthorID {
		return nil
	}
	if s.ProjectID == "" {
		return fmt.Errorf("%w: managing devices of another identity requires a project", ErrPermissionDenied)
	}
	if !v.projectKnown(s.ProjectID) {
		return fmt.Errorf("%w: project %s", ErrUnknownReference, s.ProjectID)
	}
	if !v.capabilities(s.ProjectID, s.AuthorID).Has(models.CapabilityManageDevices) {
		return fmt.Errorf("%w: %s required", ErrPermissionDenied, models.CapabilityManageDevices)
	}
	return nil
}

func (v *view) authorizeCoreOwnership(s *models.Statement) error {
	if !v.projectKnown(s.ProjectID) {
		return fmt.Errorf("%w: project %s", ErrUnknownReference, s.ProjectID)
	}
	if !v.capabilities(s.ProjectID, s.AuthorID).Has(models.CapabilityWrite) {
		return fmt.Errorf("%w: %s required", ErrPermissionDenied, models.CapabilityWrite)
	}
	proof := models.OwnershipProof(s.CoreID, s.AuthorID, s.ProjectID, s.StoreType)
	if err := crypto.Verify(s.CoreID, proof, s.CoreSignature); err != nil {
		return fmt.Errorf("invalid core signature: %w", err)
	}
	return nil
}

// validateCausal проверяет statement, все links которого приняты, и
// возвращает его causal past. Вызывается под s.mu.
func (s *Store) validateCausal(stmt *models.Statement) (*view, error) {
	for _, link := range stmt.Links {
		linked := s.arena[link].stmt
		if stmt.Timestamp <= linked.Timestamp {
			return nil, fmt.Errorf("timestamp %d does not exceed linked statement %s (%d)", stmt.Timestamp, link, linked.Timestamp)
		}
	}

	v := s.viewOf(stmt.Links)
	if err := s.checkPosition(stmt, v); err != nil {
		return nil, err
	}
	if err := v.authorize(stmt); err != nil {
		return nil, err
	}
	return v, nil
}

// checkPosition проверяет место statement в цепочке устройства: предыдущий
// statement устройства должен быть в causal past, а позиция - свободна.
func (s *Store) checkPosition(stmt *models.Statement, v *view) error {
	if have := v.past[stmt.DeviceID]; have != stmt.DeviceIndex {
		return fmt.Errorf("device_index %d does not follow causal past of device %s, expected %d", stmt.DeviceIndex, stmt.DeviceID, have)
	}
	if other, ok := s.positions[position{device: stmt.DeviceID, index: stmt.DeviceIndex}]; ok && other.stmt.ID != stmt.ID {
		return fmt.Errorf("device %s already signed statement %s at index %d", stmt.DeviceID, other.stmt.ID, stmt.DeviceIndex)
	}
	return nil
}
