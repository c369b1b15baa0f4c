package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iudanet/corekeeper/internal/authstore"
	"github.com/iudanet/corekeeper/internal/storage"
	"github.com/iudanet/corekeeper/internal/storage/boltdb"
)

func (c *Cli) syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync <state-file>...",
		Short: "Replicate auth cores from another device's state file",
		Long: `Copies the auth cores found in the state files of other devices into the
local store and ingests the new statements. The state files are opened read-only.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := c.open(ctx); err != nil {
				return err
			}

			var total authstore.SyncResult
			for _, path := range args {
				result, err := c.syncFrom(ctx, path)
				if err != nil {
					return fmt.Errorf("failed to sync %s: %w", path, err)
				}
				total.Accepted += result.Accepted
				total.Pending += result.Pending
				total.Rejected += result.Rejected
				total.Duplicate += result.Duplicate
			}

			c.io.Printf("Accepted:  %d\n", total.Accepted)
			c.io.Printf("Pending:   %d\n", c.store.PendingCount())
			c.io.Printf("Rejected:  %d\n", total.Rejected)
			c.io.Printf("Duplicate: %d\n", total.Duplicate)
			return nil
		},
	}
}

// syncFrom копирует недостающие блоки каждого core из remote в локальную копию
func (c *Cli) syncFrom(ctx context.Context, path string) (authstore.SyncResult, error) {
	var total authstore.SyncResult

	remote, err := boltdb.NewReadOnly(ctx, path)
	if err != nil {
		return total, err
	}
	defer func() {
		if err := remote.Close(); err != nil {
			c.logger.Error("Failed to close remote state", "path", path, "error", err)
		}
	}()

	keys, err := remote.ListCores(ctx)
	if err != nil {
		return total, err
	}

	for _, key := range keys {
		// свой core пишет только это устройство
		if key == c.device.ID() {
			continue
		}
		source, err := remote.GetCore(ctx, key)
		if err != nil {
			return total, err
		}
		replica, err := c.state.OpenCore(ctx, key)
		if err != nil {
			return total, err
		}

		copied, err := copyBlocks(ctx, source, replica)
		if err != nil {
			return total, fmt.Errorf("core %s: %w", key, err)
		}

		result, err := c.store.Sync(ctx, replica)
		if err != nil {
			return total, err
		}
		c.logger.Debug("Core synced",
			"core", key,
			"copied", copied,
			"accepted", result.Accepted,
			"pending", result.Pending,
			"rejected", result.Rejected)

		total.Accepted += result.Accepted
		total.Pending += result.Pending
		total.Rejected += result.Rejected
		total.Duplicate += result.Duplicate
	}
	return total, nil
}

// copyBlocks appends the blocks of src past the length of dst.
func copyBlocks(ctx context.Context, src, dst storage.Core) (uint64, error) {
	have, err := dst.Length(ctx)
	if err != nil {
		return 0, err
	}
	want, err := src.Length(ctx)
	if err != nil {
		return 0, err
	}

	var copied uint64
	for index := have; index < want; index++ {
		block, err := src.Get(ctx, index)
		if errors.Is(err, storage.ErrBlockNotFound) {
			break
		}
		if err != nil {
			return copied, err
		}
		if _, err := dst.Append(ctx, block); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}
