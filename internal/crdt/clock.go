package crdt

import (
	"errors"
	"fmt"
	"sync"

	"github.com/iudanet/corekeeper/internal/models"
)

// ErrClockOverflow возвращается, когда следующий timestamp вышел бы за models.MaxTimestamp.
var ErrClockOverflow = errors.New("lamport clock overflow")

// LamportClock представляет логические часы Лампорта для упорядочивания statements
// без синхронизации физического времени между устройствами.
type LamportClock struct {
	counter int64      // монотонно возрастающий счетчик
	mu      sync.Mutex // мьютекс для потокобезопасности
}

// NewLamportClock создает часы с нулевым счетчиком.
func NewLamportClock() *LamportClock {
	return &LamportClock{}
}

// Update возвращает timestamp, строго больший и локального счетчика, и remoteTimestamp.
// Используется при создании statement, ссылающегося на statements с timestamp до remoteTimestamp.
// counter = max(local_counter, remote_timestamp) + 1
//
// Если результат превысил бы models.MaxTimestamp, счетчик не меняется.
func (lc *LamportClock) Update(remoteTimestamp int64) (int64, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	next := max(lc.counter, remoteTimestamp)
	if next >= models.MaxTimestamp {
		return 0, fmt.Errorf("%w: %d", ErrClockOverflow, next)
	}
	lc.counter = next + 1

	return lc.counter, nil
}

// SetTimestamp устанавливает счетчик в заданное значение.
// Используется при перестроении состояния из лога.
func (lc *LamportClock) SetTimestamp(timestamp int64) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.counter = timestamp
}
