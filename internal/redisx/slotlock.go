package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Slot hold while a demo insert runs: slot:demo:{date}:{time} -> 1
	keySlotHold = "slot:demo:%s:%s"
)

var ttlSlotHold = 2 * time.Minute

// SlotLock is a best-effort hold on a demo (date, time) pair. The database's
// partial unique index stays the authoritative guard; this only narrows the
// window in which two requests race past the availability query.
type SlotLock struct {
	rdb *redis.Client
}

func NewSlotLock(rdb *redis.Client) *SlotLock {
	return &SlotLock{rdb: rdb}
}

func (l *SlotLock) AcquireSlot(ctx context.Context, date, timeStr string) (bool, error) {
	key := fmt.Sprintf(keySlotHold, date, timeStr)
	return l.rdb.SetNX(ctx, key, 1, ttlSlotHold).Result()
}

func (l *SlotLock) ReleaseSlot(ctx context.Context, date, timeStr string) {
	key := fmt.Sprintf(keySlotHold, date, timeStr)
	_ = l.rdb.Del(ctx, key).Err()
}
