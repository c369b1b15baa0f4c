package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/corekeeper/internal/models"
	"github.com/iudanet/corekeeper/internal/validation"
)

func (c *Cli) roleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Manage project roles",
	}

	var projectFlag string
	set := &cobra.Command{
		Use:   "set <identity> <role>",
		Short: "Assign a role to an identity",
		Long: fmt.Sprintf("Assigns one of %s, %s, %s to an identity.\nOnly a project-creator or coordinator may assign roles.",
			models.RoleCoordinator, models.RoleMember, models.RoleNonMember),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			identityID, role := args[0], args[1]
			if err := validation.ValidateHexKey("identity", identityID); err != nil {
				return err
			}
			if err := c.open(cmd.Context()); err != nil {
				return err
			}
			projectID, err := c.project(projectFlag)
			if err != nil {
				return err
			}

			id, err := c.store.SetRole(cmd.Context(), projectID, identityID, role)
			if err != nil {
				return fmt.Errorf("failed to set role: %w", err)
			}
			c.io.Printf("Statement: %s\n", id)
			return nil
		},
	}
	set.Flags().StringVar(&projectFlag, "project", "", "project id (default: the device's project)")

	cmd.AddCommand(set)
	return cmd
}

func (c *Cli) deviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "device",
		Short: "Add, remove or restore devices of an identity",
	}

	actions := []struct {
		name   string
		short  string
		action models.Action
	}{
		{name: "add", short: "Authorize a device to write for an identity", action: models.ActionDeviceAdd},
		{name: "remove", short: "Revoke a device", action: models.ActionDeviceRemove},
		{name: "restore", short: "Re-activate a removed device", action: models.ActionDeviceRestore},
	}

	for _, a := range actions {
		var identityFlag, projectFlag string
		sub := &cobra.Command{
			Use:   a.name + " <device-key>",
			Short: a.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				deviceKey := args[0]
				if err := validation.ValidateHexKey("device", deviceKey); err != nil {
					return err
				}
				if identityFlag != "" {
					if err := validation.ValidateHexKey("identity", identityFlag); err != nil {
						return err
					}
				}
				if err := c.open(cmd.Context()); err != nil {
					return err
				}
				return c.runDevice(cmd, a.action, identityFlag, projectFlag, deviceKey)
			},
		}
		sub.Flags().StringVar(&identityFlag, "identity", "", "identity owning the device (default: local identity)")
		sub.Flags().StringVar(&projectFlag, "project", "", "project granting manage:devices for another identity")
		cmd.AddCommand(sub)
	}
	return cmd
}

func (c *Cli) runDevice(cmd *cobra.Command, action models.Action, identityID, projectFlag, deviceKey string) error {
	ctx := cmd.Context()
	if identityID == "" {
		identityID = c.identityID
	}

	// свои устройства можно менять без проекта
	projectID := projectFlag
	if identityID != c.identityID {
		var err error
		if projectID, err = c.project(projectFlag); err != nil {
			return err
		}
	}

	var (
		id  string
		err error
	)
	switch action {
	case models.ActionDeviceAdd:
		id, err = c.store.AddDevice(ctx, projectID, identityID, deviceKey)
	case models.ActionDeviceRemove:
		id, err = c.store.RemoveDevice(ctx, projectID, identityID, deviceKey)
	default:
		id, err = c.store.RestoreDevice(ctx, projectID, identityID, deviceKey)
	}
	if err != nil {
		return fmt.Errorf("failed to %s device: %w", action, err)
	}

	c.io.Printf("Statement: %s\n", id)
	return nil
}

func (c *Cli) capsCmd() *cobra.Command {
	var projectFlag string

	cmd := &cobra.Command{
		Use:   "caps [identity]",
		Short: "Show the role and capabilities of an identity",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := validation.ValidateHexKey("identity", args[0]); err != nil {
					return err
				}
			}
			if err := c.open(cmd.Context()); err != nil {
				return err
			}
			projectID, err := c.project(projectFlag)
			if err != nil {
				return err
			}

			identityID := c.identityID
			if len(args) == 1 {
				identityID = args[0]
			}

			caps := c.store.GetCapabilities(identityID, projectID)
			names := make([]string, 0, len(caps))
			for _, capability := range caps {
				names = append(names, string(capability))
			}

			c.io.Printf("Identity:     %s\n", identityID)
			c.io.Printf("Role:         %s\n", c.store.GetRole(identityID, projectID))
			c.io.Printf("Capabilities: %s\n", strings.Join(names, ","))
			return nil
		},
	}
	cmd.Flags().StringVar(&projectFlag, "project", "", "project id (default: the device's project)")
	return cmd
}
