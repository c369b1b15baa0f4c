package models

// Payload is the type-specific content of a statement appended locally.
// Implemented by RolePayload, DevicePayload and CoreOwnershipPayload.
type Payload interface {
	StatementType() StatementType
	apply(s *Statement)
}

// RolePayload assigns Role to IdentityID within ProjectID.
type RolePayload struct {
	ProjectID  string
	IdentityID string
	Role       string
}

func (RolePayload) StatementType() StatementType { return StatementRole }

func (p RolePayload) apply(s *Statement) {
	s.Type = StatementRole
	s.Action = ActionRoleSet
	s.ProjectID = p.ProjectID
	s.IdentityID = p.IdentityID
	s.Role = p.Role
}

// DevicePayload adds, removes or restores DeviceKey of IdentityID.
// ProjectID names the project in which the author holds manage:devices;
// it may be empty when an identity manages its own devices.
type DevicePayload struct {
	ProjectID  string
	IdentityID string
	DeviceKey  string
	Action     Action
}

func (DevicePayload) StatementType() StatementType { return StatementDevice }

func (p DevicePayload) apply(s *Statement) {
	s.Type = StatementDevice
	s.Action = p.Action
	s.ProjectID = p.ProjectID
	s.IdentityID = p.IdentityID
	s.DeviceKey = p.DeviceKey
}

// CoreOwnershipPayload claims CoreID for the author.
// CoreSignature must be the core key's signature over OwnershipProof.
type CoreOwnershipPayload struct {
	ProjectID     string
	CoreID        string
	StoreType     Namespace
	CoreSignature []byte
}

func (CoreOwnershipPayload) StatementType() StatementType { return StatementCoreOwnership }

func (p CoreOwnershipPayload) apply(s *Statement) {
	s.Type = StatementCoreOwnership
	s.Action = ActionCoreOwn
	s.ProjectID = p.ProjectID
	s.CoreID = p.CoreID
	s.StoreType = p.StoreType
	s.CoreSignature = append([]byte(nil), p.CoreSignature...)
}

// NewStatement returns an unsigned statement carrying payload.
func NewStatement(payload Payload) *Statement {
	s := &Statement{
		Version: StatementVersion,
		Links:   []string{},
		Forks:   []string{},
	}
	payload.apply(s)
	return s
}
