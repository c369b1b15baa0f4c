package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/corekeeper/internal/bitfield"
	"github.com/iudanet/corekeeper/internal/crypto"
	"github.com/iudanet/corekeeper/internal/models"
	"github.com/iudanet/corekeeper/internal/wire"
)

func (c *Cli) coresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cores [namespace]",
		Short: "List the cores with accepted ownership, grouped by namespace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			namespaces := models.Namespaces
			if len(args) == 1 {
				ns, ok := models.ParseNamespace(args[0])
				if !ok {
					return fmt.Errorf("unknown namespace: %s", args[0])
				}
				namespaces = []models.Namespace{ns}
			}
			if err := c.open(cmd.Context()); err != nil {
				return err
			}

			for _, ns := range namespaces {
				ids := c.registry.GetByStoreNamespace(ns)
				if len(ids) == 0 {
					continue
				}
				c.io.Printf("%s:\n", ns)
				for _, id := range ids {
					c.io.Printf("  %s\n", id)
				}
			}
			return nil
		},
	}
}

func (c *Cli) announceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "announce",
		Short: "Print the project extension message announcing known cores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.open(cmd.Context()); err != nil {
				return err
			}

			msg, err := wire.ProjectExtensionFromRegistry(c.registry)
			if err != nil {
				return err
			}
			b, err := msg.Marshal()
			if err != nil {
				return fmt.Errorf("failed to encode project extension: %w", err)
			}
			c.io.Println(hex.EncodeToString(b))
			return nil
		},
	}
}

func (c *Cli) encodeBitfieldCmd() *cobra.Command {
	var (
		coreKey string
		start   uint32
	)

	cmd := &cobra.Command{
		Use:   "encode-bitfield <hex>",
		Short: "Run-length encode a bitfield",
		Long: `Prints the run-length encoding of a hex bitfield.
With --core the encoded bitfield is wrapped into a have message for the core's discovery key.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bits, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("bitfield must be hex: %w", err)
			}
			if len(bits) > bitfield.MaxDecodedLength {
				return fmt.Errorf("bitfield exceeds %d bytes", bitfield.MaxDecodedLength)
			}

			if coreKey == "" {
				c.io.Println(hex.EncodeToString(bitfield.Encode(bits)))
				return nil
			}

			key, err := crypto.ParsePublicKey(coreKey)
			if err != nil {
				return err
			}
			have := wire.NewHave(crypto.DiscoveryKey(key), start, bits, models.NamespaceAuth)
			b, err := have.Marshal()
			if err != nil {
				return fmt.Errorf("failed to encode have message: %w", err)
			}
			c.io.Println(hex.EncodeToString(b))
			return nil
		},
	}

	cmd.Flags().StringVar(&coreKey, "core", "", "hex core key to build a have message for")
	cmd.Flags().Uint32Var(&start, "start", 0, "index of the first block the bitfield describes")
	return cmd
}
