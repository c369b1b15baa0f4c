package models

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"slices"
)

// StatementVersion текущая версия схемы statement.
const StatementVersion = 1

// MaxTimestamp - наибольший допустимый Lamport timestamp. Запас до MaxInt64
// оставляет место для счетчика после любого принятого statement.
const MaxTimestamp int64 = math.MaxInt64 / 2

// StatementType тип записи в auth-логе.
type StatementType string

const (
	StatementCoreOwnership StatementType = "coreOwnership"
	StatementDevice        StatementType = "device"
	StatementRole          StatementType = "role"
)

// Action describes what a statement does.
type Action string

const (
	ActionCoreOwn       Action = "core:own"
	ActionDeviceAdd     Action = "add"
	ActionDeviceRemove  Action = "remove"
	ActionDeviceRestore Action = "restore"
	ActionRoleSet       Action = "role:set"
)

// Statement представляет подписанную неизменяемую запись авторизации.
// Поля подтипов (ownership, device, role) хранятся в одной структуре,
// неиспользуемые поля пустые.
type Statement struct {
	ID          string        `json:"id"`           // ID BLAKE2b-256 от подписанного payload и подписи
	Type        StatementType `json:"type"`         // Type тип statement
	Action      Action        `json:"action"`       // Action действие
	AuthorID    string        `json:"author_id"`    // AuthorID hex публичного ключа identity
	DeviceID    string        `json:"device_id"`    // DeviceID hex ключа устройства, подписавшего statement
	Signature   []byte        `json:"signature"`    // Signature Ed25519 подпись DeviceID
	Links       []string      `json:"links"`        // Links причинные предшественники
	Forks       []string      `json:"forks"`        // Forks конкурентные конфликтующие heads, которые сливает statement
	Version     int           `json:"version"`      // Version версия схемы
	AuthorIndex uint64        `json:"author_index"` // AuthorIndex порядковый номер среди statements identity
	DeviceIndex uint64        `json:"device_index"` // DeviceIndex индекс в core устройства
	Created     int64         `json:"created"`      // Created wall clock, unix ms (только для информации)
	Timestamp   int64         `json:"timestamp"`    // Timestamp Lamport timestamp

	// coreOwnership
	CoreID        string    `json:"core_id,omitempty"`
	StoreType     Namespace `json:"store_type,omitempty"`
	CoreSignature []byte    `json:"core_signature,omitempty"`

	// coreOwnership, role, device
	ProjectID string `json:"project_id,omitempty"`

	// device, role
	IdentityID string `json:"identity_id,omitempty"`

	// device
	DeviceKey string `json:"device_key,omitempty"`

	// role
	Role string `json:"role,omitempty"`
}

// SigningPayload returns the bytes covered by the device signature:
// the JSON encoding of the statement without ID and Signature.
func (s *Statement) SigningPayload() ([]byte, error) {
	unsigned := *s
	unsigned.ID = ""
	unsigned.Signature = nil
	payload, err := json.Marshal(&unsigned)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal signing payload: %w", err)
	}
	return payload, nil
}

// RegisterKey returns the key of the conflict register the statement writes.
// Statements with the same key compete; the winner is chosen by Compare.
func (s *Statement) RegisterKey() string {
	switch s.Type {
	case StatementRole:
		return RoleRegisterKey(s.ProjectID, s.IdentityID)
	case StatementDevice:
		return DeviceRegisterKey(s.IdentityID, s.DeviceKey)
	case StatementCoreOwnership:
		return CoreRegisterKey(s.CoreID)
	default:
		return ""
	}
}

// RoleRegisterKey is the register key of the role of identityID in projectID.
func RoleRegisterKey(projectID, identityID string) string {
	return "role/" + projectID + "/" + identityID
}

// DeviceRegisterKey is the register key of a device of identityID.
func DeviceRegisterKey(identityID, deviceKey string) string {
	return "device/" + identityID + "/" + deviceKey
}

// CoreRegisterKey is the register key of the ownership of coreID.
func CoreRegisterKey(coreID string) string {
	return "core/" + coreID
}

// Compare задает фиксированный тотальный порядок statements:
// (Timestamp, AuthorIndex, DeviceIndex, Signature), при полном равенстве ID.
// Одинаков на всех пирах, поэтому разрешение форков детерминировано.
func Compare(a, b *Statement) int {
	if c := cmp.Compare(a.Timestamp, b.Timestamp); c != 0 {
		return c
	}
	if c := cmp.Compare(a.AuthorIndex, b.AuthorIndex); c != 0 {
		return c
	}
	if c := cmp.Compare(a.DeviceIndex, b.DeviceIndex); c != 0 {
		return c
	}
	if c := bytes.Compare(a.Signature, b.Signature); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// IsNewerThan reports whether s wins over other in the statement order.
func (s *Statement) IsNewerThan(other *Statement) bool {
	return Compare(s, other) > 0
}

// Clone создает глубокую копию statement.
func (s *Statement) Clone() *Statement {
	c := *s
	c.Signature = slices.Clone(s.Signature)
	c.CoreSignature = slices.Clone(s.CoreSignature)
	c.Links = slices.Clone(s.Links)
	c.Forks = slices.Clone(s.Forks)
	return &c
}

// CoreOwnership is the materialized owner of a core.
type CoreOwnership struct {
	CoreID      string    `json:"core_id"`
	AuthorID    string    `json:"author_id"`
	DeviceID    string    `json:"device_id"`
	ProjectID   string    `json:"project_id"`
	StoreType   Namespace `json:"store_type"`
	StatementID string    `json:"statement_id"`
}

// OwnershipFromStatement extracts the ownership record of a coreOwnership statement.
func OwnershipFromStatement(s *Statement) CoreOwnership {
	return CoreOwnership{
		CoreID:      s.CoreID,
		AuthorID:    s.AuthorID,
		DeviceID:    s.DeviceID,
		ProjectID:   s.ProjectID,
		StoreType:   s.StoreType,
		StatementID: s.ID,
	}
}

// OwnershipProof returns the bytes a core key signs to prove it belongs to authorID.
func OwnershipProof(coreID, authorID, projectID string, storeType Namespace) []byte {
	return []byte("core-ownership\x00" + coreID + "\x00" + authorID + "\x00" + projectID + "\x00" + string(storeType))
}
