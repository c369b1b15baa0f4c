package authstore

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/corekeeper/internal/crypto"
	"github.com/iudanet/corekeeper/internal/models"
	"github.com/iudanet/corekeeper/internal/storage/memory"
)

type testPeer struct {
	kp    *crypto.KeyPair
	core  *memory.Core
	store *Store
}

func (p *testPeer) id() string {
	return p.kp.ID()
}

func newTestPeer(t *testing.T, opts ...func(*Config)) *testPeer {
	t.Helper()

	kp, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	return openTestPeer(t, kp, memory.NewCore(kp.ID()), opts...)
}

func openTestPeer(t *testing.T, kp *crypto.KeyPair, core *memory.Core, opts ...func(*Config)) *testPeer {
	t.Helper()

	cfg := Config{Device: kp, Core: core}
	for _, opt := range opts {
		opt(&cfg)
	}
	store, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return &testPeer{kp: kp, core: core, store: store}
}

// sync переносит в p все новые statements из cores других пиров
func (p *testPeer) sync(t *testing.T, from ...*testPeer) {
	t.Helper()
	for _, other := range from {
		_, err := p.store.Sync(context.Background(), other.core)
		require.NoError(t, err)
	}
}

func coreBlocks(t *testing.T, core *memory.Core) [][]byte {
	t.Helper()

	ctx := context.Background()
	n, err := core.Length(ctx)
	require.NoError(t, err)

	blocks := make([][]byte, 0, n)
	for i := uint64(0); i < n; i++ {
		block, err := core.Get(ctx, i)
		require.NoError(t, err)
		blocks = append(blocks, block)
	}
	return blocks
}

// forge подписывает statement в обход проверок AppendStatement,
// как это мог бы сделать злонамеренный пир. Пир пишет только ключом
// identity, поэтому позиция в цепочке устройства совпадает с authorIndex.
func forge(t *testing.T, kp *crypto.KeyPair, payload models.Payload, links []string, timestamp int64, authorIndex uint64) (*models.Statement, []byte) {
	t.Helper()

	stmt := models.NewStatement(payload)
	stmt.AuthorID = kp.ID()
	stmt.DeviceID = kp.ID()
	stmt.Links = links
	stmt.Timestamp = timestamp
	stmt.AuthorIndex = authorIndex
	stmt.DeviceIndex = authorIndex

	signingPayload, err := stmt.SigningPayload()
	require.NoError(t, err)
	stmt.Signature = kp.Sign(signingPayload)
	stmt.ID = crypto.StatementID(signingPayload, stmt.Signature)

	raw, err := json.Marshal(stmt)
	require.NoError(t, err)
	return stmt, raw
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
