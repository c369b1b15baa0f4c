package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/corekeeper/internal/crypto"
	"github.com/iudanet/corekeeper/internal/models"
	"github.com/iudanet/corekeeper/internal/storage"
	"github.com/iudanet/corekeeper/internal/validation"
)

func (c *Cli) initCmd() *cobra.Command {
	var identityID string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate the device key and create a project",
		Long: `Generates a device key and seals it with a passphrase.
Without --identity the device is its own identity: a new project is created
with this identity as project-creator and the device core is claimed as an
auth core. With --identity the device writes on behalf of an existing
identity, which must add it with 'corekeeper device add'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if identityID != "" {
				if err := validation.ValidateHexKey("identity", identityID); err != nil {
					return err
				}
			}
			if err := c.openStorage(ctx); err != nil {
				return err
			}

			_, err := c.state.GetSealedKey(ctx)
			switch {
			case err == nil:
				return fmt.Errorf("device is already initialized in %s", c.cfg.DataDir)
			case !errors.Is(err, storage.ErrKeyNotFound):
				return fmt.Errorf("failed to check device key: %w", err)
			}

			passphrase, err := c.getPassphrase(true)
			if err != nil {
				return err
			}
			if err := validation.ValidatePassphrase(passphrase); err != nil {
				return fmt.Errorf("invalid passphrase: %w", err)
			}

			device, err := crypto.GenerateKeyPair()
			if err != nil {
				return err
			}
			sealed, err := crypto.SealKeyPair(device, passphrase)
			if err != nil {
				return err
			}
			if err := c.state.SaveSealedKey(ctx, sealed); err != nil {
				return fmt.Errorf("failed to save device key: %w", err)
			}
			if identityID == "" {
				identityID = device.ID()
			}
			if err := c.state.SetMetadata(ctx, metaIdentityID, identityID); err != nil {
				return err
			}

			c.device = device
			if err := c.openStore(ctx); err != nil {
				return err
			}

			c.io.Printf("Device:   %s\n", device.ID())
			c.io.Printf("Identity: %s\n", identityID)

			if identityID != device.ID() {
				c.io.Println("Ask the identity to run 'corekeeper device add " + device.ID() + "'.")
				return nil
			}

			projectID, err := c.store.CreateProject(ctx)
			if err != nil {
				return err
			}
			if _, err := c.store.ClaimCore(ctx, projectID, models.NamespaceAuth, device); err != nil {
				return fmt.Errorf("failed to claim auth core: %w", err)
			}
			if err := c.state.SetMetadata(ctx, metaProjectID, projectID); err != nil {
				return err
			}
			c.projectID = projectID

			c.io.Printf("Project:  %s\n", projectID)
			return nil
		},
	}

	cmd.Flags().StringVar(&identityID, "identity", "", "write on behalf of an existing identity")
	return cmd
}

func (c *Cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show device, identity and project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.open(cmd.Context()); err != nil {
				return err
			}

			c.io.Printf("Device:   %s\n", c.device.ID())
			c.io.Printf("Identity: %s\n", c.identityID)
			if c.projectID == "" {
				c.io.Println("Project:  none")
				return nil
			}
			c.io.Printf("Project:  %s\n", c.projectID)
			c.io.Printf("Role:     %s\n", c.store.GetRole(c.identityID, c.projectID))
			c.io.Printf("Pending:  %d\n", c.store.PendingCount())
			return nil
		},
	}
}
