// Package cli implements the corekeeper command line: device initialization,
// role and device management, and replication of auth cores between devices.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/iudanet/corekeeper/internal/authstore"
	"github.com/iudanet/corekeeper/internal/config"
	"github.com/iudanet/corekeeper/internal/coreindex"
	"github.com/iudanet/corekeeper/internal/crypto"
	"github.com/iudanet/corekeeper/internal/iocli"
	"github.com/iudanet/corekeeper/internal/logging"
	"github.com/iudanet/corekeeper/internal/storage"
	"github.com/iudanet/corekeeper/internal/storage/boltdb"
	"github.com/iudanet/corekeeper/internal/storage/sqlite"
)

// Ключи metadata в bbolt
const (
	metaIdentityID = "identity_id"
	metaProjectID  = "project_id"
)

// Options - глобальные флаги
type Options struct {
	ConfigPath     string
	DataDir        string
	LogLevel       string
	PassphraseFile string
}

// Cli holds the services of one command invocation.
type Cli struct {
	io     iocli.IO
	logOut io.Writer
	opts   Options
	build  BuildInfo

	cfg      *config.Config
	logger   *slog.Logger
	state    *boltdb.Storage
	audit    *sqlite.Storage
	device   *crypto.KeyPair
	store    *authstore.Store
	registry *coreindex.Registry

	identityID string
	projectID  string
}

// New creates the CLI. Logs go to logOut, command output to io.
func New(out iocli.IO, logOut io.Writer, build BuildInfo) *Cli {
	return &Cli{io: out, logOut: logOut, build: build}
}

// loadConfig читает конфигурацию и применяет флаги
func (c *Cli) loadConfig() error {
	cfg, err := config.Load(c.opts.ConfigPath)
	if err != nil {
		return err
	}
	if c.opts.DataDir != "" {
		cfg.DataDir = c.opts.DataDir
	}
	if c.opts.LogLevel != "" {
		cfg.LogLevel = c.opts.LogLevel
	}

	logger, err := logging.New(c.logOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logger
	return nil
}

// openStorage открывает bbolt и индекс аудита в DataDir
func (c *Cli) openStorage(ctx context.Context) error {
	if err := c.loadConfig(); err != nil {
		return err
	}
	if err := os.MkdirAll(c.cfg.DataDir, 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	state, err := boltdb.New(ctx, c.cfg.StatePath())
	if err != nil {
		return err
	}
	c.state = state

	audit, err := sqlite.New(ctx, c.cfg.AuditPath())
	if err != nil {
		return err
	}
	c.audit = audit

	c.logger.Debug("Storage opened", "data_dir", c.cfg.DataDir)
	return nil
}

// unlock расшифровывает ключ устройства
func (c *Cli) unlock(ctx context.Context) error {
	sealed, err := c.state.GetSealedKey(ctx)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return fmt.Errorf("device is not initialized, run 'corekeeper init' first")
	}
	if err != nil {
		return fmt.Errorf("failed to load device key: %w", err)
	}

	passphrase, err := c.getPassphrase(false)
	if err != nil {
		return err
	}

	device, err := crypto.OpenSealedKey(sealed, passphrase)
	if errors.Is(err, crypto.ErrDecryptFailed) {
		return fmt.Errorf("wrong passphrase")
	}
	if err != nil {
		return err
	}
	c.device = device
	return nil
}

// openStore поднимает AuthStore и загружает все локальные копии cores
func (c *Cli) openStore(ctx context.Context) error {
	identityID, err := c.state.GetMetadata(ctx, metaIdentityID)
	if err != nil {
		return err
	}
	projectID, err := c.state.GetMetadata(ctx, metaProjectID)
	if err != nil {
		return err
	}
	c.identityID = identityID
	c.projectID = projectID

	core, err := c.state.OpenCore(ctx, c.device.ID())
	if err != nil {
		return err
	}

	store, err := authstore.New(ctx, authstore.Config{
		Device:     c.device,
		IdentityID: identityID,
		Core:       core,
		Audit:      c.audit,
		MaxPending: c.cfg.PendingLimit,
		PendingTTL: c.cfg.PendingTTL.Duration,
	}, c.logger)
	if err != nil {
		return fmt.Errorf("failed to open auth store: %w", err)
	}
	c.store = store
	if c.identityID == "" {
		c.identityID = store.IdentityID()
	}

	c.registry = coreindex.New(c.logger)
	c.registry.Attach(store)

	keys, err := c.state.ListCores(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if key == c.device.ID() {
			continue
		}
		replica, err := c.state.GetCore(ctx, key)
		if err != nil {
			return err
		}
		if _, err := store.Sync(ctx, replica); err != nil {
			return fmt.Errorf("failed to load core %s: %w", key, err)
		}
	}
	return nil
}

// open выполняет полный запуск для команд, которым нужен AuthStore
func (c *Cli) open(ctx context.Context) error {
	if err := c.openStorage(ctx); err != nil {
		return err
	}
	if err := c.unlock(ctx); err != nil {
		return err
	}
	return c.openStore(ctx)
}

// Close releases everything opened by the command.
func (c *Cli) Close() error {
	var errs []error
	if c.registry != nil {
		c.registry.Close()
		c.registry = nil
	}
	if c.store != nil {
		errs = append(errs, c.store.Close())
		c.store = nil
	}
	if c.audit != nil {
		errs = append(errs, c.audit.Close())
		c.audit = nil
	}
	if c.state != nil {
		errs = append(errs, c.state.Close())
		c.state = nil
	}
	return errors.Join(errs...)
}

// project returns the --project flag value or the device's own project.
func (c *Cli) project(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if c.projectID == "" {
		return "", fmt.Errorf("device has no project, pass --project")
	}
	return c.projectID, nil
}
