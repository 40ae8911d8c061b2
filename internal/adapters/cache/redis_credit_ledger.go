package cache

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/viralforge/adforge/internal/domain"
)

const creditKeyPrefix = "adforge:credits:"

// reserveScript debits the balance only when it covers the amount, in one
// round trip. Returns the remaining balance on success or -1 with the current
// balance when the check fails.
var reserveScript = redis.NewScript(`
local balance = tonumber(redis.call("GET", KEYS[1]) or "0")
local amount = tonumber(ARGV[1])
if balance < amount then
  return {-1, tostring(balance)}
end
local remaining = balance - amount
redis.call("SET", KEYS[1], tostring(remaining))
return {0, tostring(remaining)}
`)

// RedisCreditLedger keeps owner credit balances in Redis. Reservations are
// atomic so a burst of generation requests cannot overdraw an account.
type RedisCreditLedger struct {
	client *redis.Client
}

func NewRedisCreditLedger(client *redis.Client) *RedisCreditLedger {
	return &RedisCreditLedger{client: client}
}

func (l *RedisCreditLedger) Balance(ctx context.Context, ownerID string) (float64, error) {
	raw, err := l.client.Get(ctx, creditKeyPrefix+ownerID).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	balance, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (l *RedisCreditLedger) CheckAndReserve(ctx context.Context, ownerID string, amount float64) error {
	if amount < 0 {
		return domain.ErrInvalidInput
	}
	res, err := reserveScript.Run(ctx, l.client,
		[]string{creditKeyPrefix + ownerID},
		strconv.FormatFloat(amount, 'f', -1, 64),
	).Slice()
	if err != nil {
		return err
	}
	status, ok := res[0].(int64)
	if !ok {
		return domain.ErrInvalidInput
	}
	if status != 0 {
		available := 0.0
		if raw, ok := res[1].(string); ok {
			available, _ = strconv.ParseFloat(raw, 64)
		}
		return &domain.InsufficientCreditsError{Required: amount, Available: available}
	}
	return nil
}

func (l *RedisCreditLedger) Release(ctx context.Context, ownerID string, amount float64) error {
	if amount < 0 {
		return domain.ErrInvalidInput
	}
	return l.client.IncrByFloat(ctx, creditKeyPrefix+ownerID, amount).Err()
}

// Grant credits an owner directly. Billing tops accounts up through this
// path; the service itself only reserves and releases.
func (l *RedisCreditLedger) Grant(ctx context.Context, ownerID string, amount float64) error {
	if amount < 0 {
		return domain.ErrInvalidInput
	}
	return l.client.IncrByFloat(ctx, creditKeyPrefix+ownerID, amount).Err()
}
