package memory

import (
	"context"
	"sync"

	"github.com/Gunvolt24/wb_cart/internal/ports"
)

// Проверка, что Slot удовлетворяет интерфейсу CartSlot.
var _ ports.CartSlot = (*Slot)(nil)

// Slot — слот в памяти процесса (локальный запуск и тесты).
// Хранит копии значений: внешние изменения срезов не отражаются на содержимом.
type Slot struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewSlot — пустой слот.
func NewSlot() *Slot {
	return &Slot{values: make(map[string][]byte)}
}

// Get — копия значения ключа.
func (s *Slot) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set — сохраняет копию value.
func (s *Slot) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = append([]byte(nil), value...)
	return nil
}
