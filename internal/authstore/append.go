package authstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/iudanet/corekeeper/internal/crypto"
	"github.com/iudanet/corekeeper/internal/models"
	"github.com/iudanet/corekeeper/internal/validation"
)

// AppendStatement signs payload with the device key, appends it to the device
// core and materializes it. The statement is validated exactly as a remote peer
// would validate it before anything is written: ErrPermissionDenied,
// ErrUnknownReference or ErrValidation mean nothing was written.
func (s *Store) AppendStatement(ctx context.Context, payload models.Payload) (string, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return "", ErrClosed
	}

	stmt, err := s.build(ctx, payload)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}

	raw, err := json.Marshal(stmt)
	if err != nil {
		s.mu.Unlock()
		return "", fmt.Errorf("failed to marshal statement: %w", err)
	}
	index, err := s.cfg.Core.Append(ctx, raw)
	if err != nil {
		s.mu.Unlock()
		return "", fmt.Errorf("failed to append statement: %w", err)
	}
	if index != stmt.DeviceIndex {
		s.logger.Warn("Device core grew concurrently", "expected_index", stmt.DeviceIndex, "index", index)
	}

	e := &entry{stmt: stmt, status: StatusPending}
	s.arena[stmt.ID] = e
	outs := s.settle(&readyQueue{e})
	s.localHead = stmt.ID
	s.cursors[s.cfg.Core.Key()] = index + 1
	err = e.err
	s.finish(ctx, outs)

	if err != nil {
		// не должно происходить: build уже проверил statement
		return stmt.ID, err
	}
	return stmt.ID, nil
}

// build собирает и подписывает statement, проверяя его в том же causal past,
// в котором его будут проверять другие пиры. Вызывается под s.mu.
func (s *Store) build(ctx context.Context, payload models.Payload) (*models.Statement, error) {
	stmt := models.NewStatement(payload)
	stmt.AuthorID = s.cfg.IdentityID
	stmt.DeviceID = s.cfg.Device.ID()

	key := stmt.RegisterKey()
	heads := s.heads.HeadIDs(key)
	stmt.Links = s.references(stmt, heads)
	if len(heads) > 1 {
		stmt.Forks = heads
		slices.Sort(stmt.Forks)
	}

	var maxLinked int64
	for _, link := range stmt.Links {
		maxLinked = max(maxLinked, s.arena[link].stmt.Timestamp)
	}
	timestamp, err := s.clock.Update(maxLinked)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	stmt.Timestamp = timestamp
	stmt.Created = s.cfg.Now().UnixMilli()

	length, err := s.cfg.Core.Length(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get device core length: %w", err)
	}
	stmt.DeviceIndex = length
	stmt.AuthorIndex = s.viewOf(stmt.Links).nextAuthorIndex(stmt.AuthorID)

	if err := s.sign(stmt); err != nil {
		return nil, err
	}
	if err := validation.ValidateStatement(stmt); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	// та же проверка, что в settle: statement, который другие пиры
	// отклонят, не должен попасть в core
	if _, err := s.validateCausal(stmt); err != nil {
		if errors.Is(err, ErrPermissionDenied) || errors.Is(err, ErrUnknownReference) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return stmt, nil
}

// references возвращает links: head устройства, текущие heads регистра и
// statements, на которых основаны права автора.
func (s *Store) references(stmt *models.Statement, heads []string) []string {
	refs := make(map[string]struct{})
	add := func(ids ...string) {
		for _, id := range ids {
			if e, ok := s.arena[id]; ok && e.status == StatusAccepted {
				refs[id] = struct{}{}
			}
		}
	}

	if s.localHead != "" {
		add(s.localHead)
	}
	add(heads...)
	if stmt.ProjectID != "" {
		add(s.projects[stmt.ProjectID]...)
		add(s.heads.HeadIDs(models.RoleRegisterKey(stmt.ProjectID, stmt.AuthorID))...)
	}
	if stmt.DeviceID != stmt.AuthorID {
		add(s.heads.HeadIDs(models.DeviceRegisterKey(stmt.AuthorID, stmt.DeviceID))...)
	}

	links := make([]string, 0, len(refs))
	for id := range refs {
		links = append(links, id)
	}
	slices.Sort(links)
	return links
}

func (s *Store) sign(stmt *models.Statement) error {
	payload, err := stmt.SigningPayload()
	if err != nil {
		return err
	}
	stmt.Signature = s.cfg.Device.Sign(payload)
	stmt.ID = crypto.StatementID(payload, stmt.Signature)
	return nil
}

// CreateProject writes the genesis statement that makes the local identity
// the project-creator of a new project, and returns the project id.
func (s *Store) CreateProject(ctx context.Context) (string, error) {
	projectID := crypto.ProjectID(s.cfg.IdentityID)
	_, err := s.AppendStatement(ctx, models.RolePayload{
		ProjectID:  projectID,
		IdentityID: s.cfg.IdentityID,
		Role:       models.RoleProjectCreator,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create project: %w", err)
	}
	return projectID, nil
}

// SetRole assigns role to identityID within projectID.
func (s *Store) SetRole(ctx context.Context, projectID, identityID, role string) (string, error) {
	return s.AppendStatement(ctx, models.RolePayload{
		ProjectID:  projectID,
		IdentityID: identityID,
		Role:       role,
	})
}

// AddDevice adds deviceKey to identityID. projectID may be empty when the
// local identity adds its own device.
func (s *Store) AddDevice(ctx context.Context, projectID, identityID, deviceKey string) (string, error) {
	return s.appendDevice(ctx, projectID, identityID, deviceKey, models.ActionDeviceAdd)
}

// RemoveDevice revokes a device added earlier.
func (s *Store) RemoveDevice(ctx context.Context, projectID, identityID, deviceKey string) (string, error) {
	return s.appendDevice(ctx, projectID, identityID, deviceKey, models.ActionDeviceRemove)
}

// RestoreDevice re-activates a removed device.
func (s *Store) RestoreDevice(ctx context.Context, projectID, identityID, deviceKey string) (string, error) {
	return s.appendDevice(ctx, projectID, identityID, deviceKey, models.ActionDeviceRestore)
}

func (s *Store) appendDevice(ctx context.Context, projectID, identityID, deviceKey string, action models.Action) (string, error) {
	return s.AppendStatement(ctx, models.DevicePayload{
		ProjectID:  projectID,
		IdentityID: identityID,
		DeviceKey:  deviceKey,
		Action:     action,
	})
}

// ClaimCore records that the local identity owns core in namespace ns of projectID.
// The core key signs the claim to prove possession.
func (s *Store) ClaimCore(ctx context.Context, projectID string, ns models.Namespace, core *crypto.KeyPair) (string, error) {
	proof := models.OwnershipProof(core.ID(), s.cfg.IdentityID, projectID, ns)
	return s.AppendStatement(ctx, models.CoreOwnershipPayload{
		ProjectID:     projectID,
		CoreID:        core.ID(),
		StoreType:     ns,
		CoreSignature: core.Sign(proof),
	})
}
