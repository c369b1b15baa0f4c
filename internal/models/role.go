package models

import "slices"

// Capability атомарное разрешение внутри проекта.
type Capability string

const (
	CapabilityRead          Capability = "read"
	CapabilityWrite         Capability = "write"
	CapabilityEdit          Capability = "edit"
	CapabilityManageDevices Capability = "manage:devices"
)

// AvailableCapabilities is the closed set of capability tokens.
var AvailableCapabilities = []Capability{
	CapabilityRead,
	CapabilityWrite,
	CapabilityEdit,
	CapabilityManageDevices,
}

// Capabilities is a sorted set of capabilities.
type Capabilities []Capability

// NewCapabilities builds a sorted, deduplicated capability set.
func NewCapabilities(caps ...Capability) Capabilities {
	out := make(Capabilities, 0, len(caps))
	for _, c := range caps {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out
}

// Has reports whether the set contains capability.
func (c Capabilities) Has(capability Capability) bool {
	return slices.Contains(c, capability)
}

// Role names.
const (
	RoleProjectCreator = "project-creator"
	RoleCoordinator    = "coordinator"
	RoleMember         = "member"
	RoleNonMember      = "non-member"
)

// Role именованный набор capabilities.
type Role struct {
	Name         string       `json:"name"`
	Capabilities Capabilities `json:"capabilities"`
}

var defaultRoles = map[string]Role{
	RoleProjectCreator: {
		Name:         RoleProjectCreator,
		Capabilities: NewCapabilities(CapabilityRead, CapabilityWrite, CapabilityManageDevices),
	},
	RoleCoordinator: {
		Name:         RoleCoordinator,
		Capabilities: NewCapabilities(CapabilityRead, CapabilityWrite, CapabilityManageDevices),
	},
	RoleMember: {
		Name:         RoleMember,
		Capabilities: NewCapabilities(CapabilityRead, CapabilityWrite),
	},
	RoleNonMember: {
		Name:         RoleNonMember,
		Capabilities: Capabilities{},
	},
}

// LookupRole returns the default role with the given name.
func LookupRole(name string) (Role, bool) {
	role, ok := defaultRoles[name]
	if !ok {
		return Role{}, false
	}
	// копия, чтобы вызывающий не мог изменить общий набор
	role.Capabilities = slices.Clone(role.Capabilities)
	return role, true
}

// NonMember returns the role of an identity without any role statement.
func NonMember() Role {
	role, _ := LookupRole(RoleNonMember)
	return role
}

// CanAssignRoles reports whether the named role may issue role:set statements.
func CanAssignRoles(roleName string) bool {
	return roleName == RoleProjectCreator || roleName == RoleCoordinator
}
