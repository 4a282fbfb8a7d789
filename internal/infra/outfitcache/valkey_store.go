package outfitcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/outfit-studio/internal/domain/outfit"
)

// ValkeyStore keeps generated outfits and vibe counters in Valkey.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "outfit"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) GetOutfit(ctx context.Context, id string) (outfit.Outfit, bool, error) {
	if id == "" {
		return outfit.Outfit{}, false, nil
	}
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.outfitKey(id)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return outfit.Outfit{}, false, nil
		}
		return outfit.Outfit{}, false, err
	}
	var o outfit.Outfit
	if err := json.Unmarshal([]byte(payload), &o); err != nil {
		return outfit.Outfit{}, false, err
	}
	return o, true, nil
}

func (s *ValkeyStore) SaveOutfit(ctx context.Context, o outfit.Outfit, ttl time.Duration) error {
	payload, err := json.Marshal(o)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.outfitKey(o.ID)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) IncrementVibe(ctx context.Context, vibe string) error {
	if vibe == "" {
		return nil
	}
	return s.client.Do(ctx, s.client.B().Zincrby().Key(s.trendingKey()).Increment(1).Member(vibe).Build()).Error()
}

func (s *ValkeyStore) TopVibes(ctx context.Context, limit int) ([]outfit.VibeCount, error) {
	if limit <= 0 {
		limit = 10
	}
	resp := s.client.Do(ctx, s.client.B().Zrevrange().Key(s.trendingKey()).Start(0).Stop(int64(limit-1)).Withscores().Build())
	arr, err := resp.ToArray()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]outfit.VibeCount, 0, len(arr))
	for i := 0; i < len(arr); {
		var (
			member string
			score  float64
		)
		if tuple, tupleErr := arr[i].ToArray(); tupleErr == nil && len(tuple) == 2 {
			// RESP3 returns [member, score] pairs
			if member, err = tuple[0].ToString(); err != nil {
				return nil, err
			}
			if score, err = tuple[1].ToFloat64(); err != nil {
				return nil, err
			}
			i++
		} else {
			// RESP2 returns a flat alternating array.
			if i+1 >= len(arr) {
				break
			}
			if member, err = arr[i].ToString(); err != nil {
				return nil, err
			}
			if score, err = arr[i+1].ToFloat64(); err != nil {
				return nil, err
			}
			i += 2
		}
		out = append(out, outfit.VibeCount{Vibe: member, Count: int64(score)})
	}
	return out, nil
}

func (s *ValkeyStore) outfitKey(id string) string {
	return fmt.Sprintf("%s:generated:%s", s.prefix, id)
}

func (s *ValkeyStore) trendingKey() string {
	return fmt.Sprintf("%s:vibes", s.prefix)
}

var _ outfit.Store = (*ValkeyStore)(nil)
