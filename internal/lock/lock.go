package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Trava consultiva por funcionário usada na hora de confirmar a reserva.
// A detecção de conflito e a escrita não vivem na mesma transação, então
// dois pedidos simultâneos poderiam ambos passar; a trava reduz essa
// janela sem prometer exclusão global.
type SlotLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSlotLocker(client *redis.Client, ttl time.Duration) *SlotLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &SlotLocker{client: client, ttl: ttl}
}

func key(employeeID uint) string {
	return fmt.Sprintf("booking_lock:employee:%d", employeeID)
}

// TryLock tenta adquirir a trava via SETNX. Devolve o valor da trava
// (uuid) para o unlock verificar a posse.
func (l *SlotLocker) TryLock(ctx context.Context, employeeID uint) (bool, string, error) {
	if l == nil || l.client == nil {
		// sem redis configurado: segue sem trava
		return true, "", nil
	}

	value := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key(employeeID), value, l.ttl).Result()
	if err != nil {
		return false, "", err
	}
	if !ok {
		return false, "", nil
	}
	return true, value, nil
}

// Unlock solta a trava apenas se ainda formos os donos
func (l *SlotLocker) Unlock(ctx context.Context, employeeID uint, value string) error {
	if l == nil || l.client == nil || value == "" {
		return nil
	}

	stored, err := l.client.Get(ctx, key(employeeID)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	if stored != value {
		return fmt.Errorf("lock: not owned by this client")
	}

	return l.client.Del(ctx, key(employeeID)).Err()
}
