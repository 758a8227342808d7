package redisad

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"review_dashboard/internal/adapters/observability"
)

const approvalsKey = "review:approvals"

// ApprovalStore keeps decisions in one hash: field = review id, value = "1"|"0".
type ApprovalStore struct{ c *redis.Client }

func New(addr, pass string, db int) *ApprovalStore {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}))
}

func NewWithClient(c *redis.Client) *ApprovalStore { return &ApprovalStore{c: c} }

func (r *ApprovalStore) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *ApprovalStore) Close() error { return r.c.Close() }

func (r *ApprovalStore) Get(ctx context.Context, id int64) (bool, bool, error) {
	v, err := r.c.HGet(ctx, approvalsKey, field(id)).Result()
	if err == redis.Nil {
		observability.ObserveApproval("redis", "miss")
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	observability.ObserveApproval("redis", "hit")
	return v == "1", true, nil
}

func (r *ApprovalStore) GetMany(ctx context.Context, ids []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	fields := make([]string, len(ids))
	for i, id := range ids {
		fields[i] = field(id)
	}
	vals, err := r.c.HMGet(ctx, approvalsKey, fields...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			observability.ObserveApproval("redis", "miss")
			continue
		}
		observability.ObserveApproval("redis", "hit")
		out[ids[i]] = s == "1"
	}
	return out, nil
}

func (r *ApprovalStore) Set(ctx context.Context, id int64, approved bool) error {
	observability.ObserveApproval("redis", "set")
	return r.c.HSet(ctx, approvalsKey, field(id), flag(approved)).Err()
}

func (r *ApprovalStore) Delete(ctx context.Context, id int64) error {
	observability.ObserveApproval("redis", "del")
	return r.c.HDel(ctx, approvalsKey, field(id)).Err()
}

func field(id int64) string { return strconv.FormatInt(id, 10) }

func flag(approved bool) string {
	if approved {
		return "1"
	}
	return "0"
}
