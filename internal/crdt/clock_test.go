package crdt

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/corekeeper/internal/models"
)

func TestNewLamportClock(t *testing.T) {
	clock := NewLamportClock()

	require.NotNil(t, clock)
	assert.Equal(t, int64(0), clock.counter, "Initial counter should be 0")
}

func TestLamportClock_Update_Monotonicity(t *testing.T) {
	clock := NewLamportClock()

	var previous int64
	for i := 0; i < 100; i++ {
		current, err := clock.Update(0)
		require.NoError(t, err)
		assert.Greater(t, current, previous, "Update should always increase")
		previous = current
	}
	assert.Equal(t, int64(100), clock.counter)
}

func TestLamportClock_Update(t *testing.T) {
	tests := []struct {
		name            string
		localCounter    int64
		remoteTimestamp int64
		expectedResult  int64
		wantErr         bool
	}{
		{name: "remote greater than local", localCounter: 5, remoteTimestamp: 10, expectedResult: 11},
		{name: "remote less than local", localCounter: 15, remoteTimestamp: 10, expectedResult: 16},
		{name: "remote equal to local", localCounter: 10, remoteTimestamp: 10, expectedResult: 11},
		{name: "both are zero", localCounter: 0, remoteTimestamp: 0, expectedResult: 1},
		{name: "last representable", localCounter: 0, remoteTimestamp: models.MaxTimestamp - 1, expectedResult: models.MaxTimestamp},
		{name: "remote at ceiling", localCounter: 5, remoteTimestamp: models.MaxTimestamp, wantErr: true},
		{name: "remote at int64 max", localCounter: 5, remoteTimestamp: math.MaxInt64, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := NewLamportClock()
			clock.SetTimestamp(tt.localCounter)

			result, err := clock.Update(tt.remoteTimestamp)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrClockOverflow)
				assert.Equal(t, tt.localCounter, clock.counter, "counter must not move on overflow")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedResult, result)
			assert.Equal(t, tt.expectedResult, clock.counter)
		})
	}
}

func TestLamportClock_OverflowKeepsClockUsable(t *testing.T) {
	clock := NewLamportClock()
	clock.SetTimestamp(10)

	_, err := clock.Update(math.MaxInt64)
	require.ErrorIs(t, err, ErrClockOverflow)

	// statement без таких ссылок по-прежнему получает timestamp
	next, err := clock.Update(3)
	require.NoError(t, err)
	assert.Equal(t, int64(11), next)
}

func TestLamportClock_ConcurrentUpdates(t *testing.T) {
	clock := NewLamportClock()
	operations := 100

	var wg sync.WaitGroup
	wg.Add(2)

	for range 2 {
		go func() {
			defer wg.Done()
			for i := 0; i < operations; i++ {
				_, _ = clock.Update(int64(i))
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int64(2*operations), clock.counter)
}
