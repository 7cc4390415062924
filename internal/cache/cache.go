package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// Slot computations are cheap but hot; the cache is an optimization
// only. Every read path tolerates a miss, and every error degrades to
// a miss so Redis being down never breaks booking.

const defaultTTL = 12 * time.Hour

type Cache struct {
	rdb *redis.Client
	log *slog.Logger
}

func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

func New(rdb *redis.Client, log *slog.Logger) *Cache {
	return &Cache{rdb: rdb, log: log}
}

func (c *Cache) enabled() bool {
	return c != nil && c.rdb != nil
}

// ===============================
// Keys
// ===============================

func slotKey(tenantID, professionalID uint, weekday int) string {
	return fmt.Sprintf("slots:t:%d:p:%d:wd:%d", tenantID, professionalID, weekday)
}

func dayKey(professionalID uint, date string) string {
	return fmt.Sprintf("appts:p:%d:d:%s", professionalID, date)
}

// ===============================
// Candidate slots (config-derived, keyed professional+weekday)
// ===============================

func (c *Cache) GetCandidateSlots(
	ctx context.Context,
	tenantID uint,
	professionalID uint,
	weekday int,
) ([]string, bool) {

	if !c.enabled() {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, slotKey(tenantID, professionalID, weekday)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("slot cache get failed", "err", err)
		}
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *Cache) SetCandidateSlots(
	ctx context.Context,
	tenantID uint,
	professionalID uint,
	weekday int,
	slots []string,
) {
	if !c.enabled() {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, slotKey(tenantID, professionalID, weekday), raw, defaultTTL).Err(); err != nil {
		c.log.Warn("slot cache set failed", "err", err)
	}
}

// ===============================
// Day appointments (keyed professional+date)
// ===============================

// DayAppointment is the subset of an appointment the conflict filter
// needs.
type DayAppointment struct {
	ID     uint      `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
}

func (c *Cache) GetDayAppointments(
	ctx context.Context,
	professionalID uint,
	date string,
) ([]DayAppointment, bool) {

	if !c.enabled() {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, dayKey(professionalID, date)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("day cache get failed", "err", err)
		}
		return nil, false
	}

	var entries []DayAppointment
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (c *Cache) SetDayAppointments(
	ctx context.Context,
	professionalID uint,
	date string,
	entries []DayAppointment,
) {
	if !c.enabled() {
		return
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, dayKey(professionalID, date), raw, defaultTTL).Err(); err != nil {
		c.log.Warn("day cache set failed", "err", err)
	}
}

// ===============================
// Invalidation (single dispatch point)
// ===============================

// InvalidateProfessional drops every cached weekday for one
// professional. Called on any availability-rule write.
func (c *Cache) InvalidateProfessional(ctx context.Context, tenantID, professionalID uint) {
	if !c.enabled() {
		return
	}

	keys := make([]string, 0, 7)
	for wd := 0; wd < 7; wd++ {
		keys = append(keys, slotKey(tenantID, professionalID, wd))
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("slot cache invalidation failed", "err", err)
	}
}

// InvalidateTenant drops every cached slot computation for a tenant.
// Called on business-hours writes, which affect all professionals.
func (c *Cache) InvalidateTenant(ctx context.Context, tenantID uint) {
	if !c.enabled() {
		return
	}

	pattern := fmt.Sprintf("slots:t:%d:*", tenantID)

	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			c.log.Warn("slot cache scan failed", "err", err)
			return
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				c.log.Warn("slot cache invalidation failed", "err", err)
			}
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}

// InvalidateDay drops the cached appointment list for one
// (professional, date). Called on appointment create and status change.
func (c *Cache) InvalidateDay(ctx context.Context, professionalID uint, date string) {
	if !c.enabled() {
		return
	}

	if err := c.rdb.Del(ctx, dayKey(professionalID, date)).Err(); err != nil {
		c.log.Warn("day cache invalidation failed", "err", err)
	}
}
