package validation

import (
	"crypto/ed25519"
	"fmt"
	"regexp"

	"github.com/iudanet/corekeeper/internal/models"
)

// HexKeyPattern определяет формат ключей и id: 32 байта в нижнем hex
var HexKeyPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// ValidateHexKey проверяет, что value - 64 символа hex в нижнем регистре
func ValidateHexKey(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", field)
	}
	if !HexKeyPattern.MatchString(value) {
		return fmt.Errorf("%s must be 64 lowercase hex characters", field)
	}
	return nil
}

// ValidateStatement проверяет структуру statement без обращения к состоянию:
// версию, согласованность type/action, формат ключей и наличие полей подтипа.
// Подпись, ссылки и права проверяются отдельно.
func ValidateStatement(s *models.Statement) error {
	if s.Version != models.StatementVersion {
		return fmt.Errorf("unsupported statement version %d", s.Version)
	}
	if err := ValidateHexKey("id", s.ID); err != nil {
		return err
	}
	if err := ValidateHexKey("author_id", s.AuthorID); err != nil {
		return err
	}
	if err := ValidateHexKey("device_id", s.DeviceID); err != nil {
		return err
	}
	if s.Timestamp <= 0 || s.Timestamp > models.MaxTimestamp {
		return fmt.Errorf("timestamp %d out of range (0, %d]", s.Timestamp, models.MaxTimestamp)
	}
	if len(s.Signature) != ed25519.SignatureSize {
		return fmt.Errorf("signature must be %d bytes, got %d", ed25519.SignatureSize, len(s.Signature))
	}
	if err := validateRefs("links", s.Links); err != nil {
		return err
	}
	if err := validateRefs("forks", s.Forks); err != nil {
		return err
	}

	switch s.Type {
	case models.StatementRole:
		return validateRole(s)
	case models.StatementDevice:
		return validateDevice(s)
	case models.StatementCoreOwnership:
		return validateCoreOwnership(s)
	default:
		return fmt.Errorf("unknown statement type %q", s.Type)
	}
}

func validateRefs(field string, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if err := ValidateHexKey(field, id); err != nil {
			return err
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%s contains duplicate id %s", field, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func validateRole(s *models.Statement) error {
	if s.Action != models.ActionRoleSet {
		return fmt.Errorf("role statement with action %q", s.Action)
	}
	if err := ValidateHexKey("project_id", s.ProjectID); err != nil {
		return err
	}
	if err := ValidateHexKey("identity_id", s.IdentityID); err != nil {
		return err
	}
	if _, ok := models.LookupRole(s.Role); !ok {
		return fmt.Errorf("unknown role %q", s.Role)
	}
	if s.CoreID != "" || s.DeviceKey != "" || s.StoreType != "" || len(s.CoreSignature) > 0 {
		return fmt.Errorf("role statement carries fields of another type")
	}
	return nil
}

func validateDevice(s *models.Statement) error {
	switch s.Action {
	case models.ActionDeviceAdd, models.ActionDeviceRemove, models.ActionDeviceRestore:
	default:
		return fmt.Errorf("device statement with action %q", s.Action)
	}
	if err := ValidateHexKey("identity_id", s.IdentityID); err != nil {
		return err
	}
	if err := ValidateHexKey("device_key", s.DeviceKey); err != nil {
		return err
	}
	if s.DeviceKey == s.IdentityID {
		return fmt.Errorf("identity key cannot be managed as a device")
	}
	if s.ProjectID != "" {
		if err := ValidateHexKey("project_id", s.ProjectID); err != nil {
			return err
		}
	}
	if s.CoreID != "" || s.Role != "" || s.StoreType != "" || len(s.CoreSignature) > 0 {
		return fmt.Errorf("device statement carries fields of another type")
	}
	return nil
}

func validateCoreOwnership(s *models.Statement) error {
	if s.Action != models.ActionCoreOwn {
		return fmt.Errorf("coreOwnership statement with action %q", s.Action)
	}
	if err := ValidateHexKey("core_id", s.CoreID); err != nil {
		return err
	}
	if err := ValidateHexKey("project_id", s.ProjectID); err != nil {
		return err
	}
	if !s.StoreType.Valid() {
		return fmt.Errorf("unknown store type %q", s.StoreType)
	}
	if len(s.CoreSignature) != ed25519.SignatureSize {
		return fmt.Errorf("core_signature must be %d bytes, got %d", ed25519.SignatureSize, len(s.CoreSignature))
	}
	if s.IdentityID != "" || s.DeviceKey != "" || s.Role != "" {
		return fmt.Errorf("coreOwnership statement carries fields of another type")
	}
	return nil
}
