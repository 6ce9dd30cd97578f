package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
)

// RedisRepo keeps content as JSON records in a flat key-value layout:
//
//	<prefix>seq        INCR counter for ids
//	<prefix>ids        set of live ids
//	<prefix>item:<id>  JSON record
type RedisRepo struct {
	client *redis.Client
	prefix string
}

// NewRedisRepo creates a Redis-backed repository. Prefix may be empty.
func NewRedisRepo(client *redis.Client, prefix string) *RedisRepo {
	if prefix == "" {
		prefix = "content:"
	}
	return &RedisRepo{client: client, prefix: prefix}
}

func (r *RedisRepo) itemKey(id int64) string {
	return r.prefix + "item:" + strconv.FormatInt(id, 10)
}

func (r *RedisRepo) Create(ctx context.Context, it content.Item) (content.Item, error) {
	id, err := r.client.Incr(ctx, r.prefix+"seq").Result()
	if err != nil {
		return content.Item{}, err
	}
	it.ID = id
	b, err := json.Marshal(it.Record())
	if err != nil {
		return content.Item{}, err
	}
	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.itemKey(id), b, 0)
		p.SAdd(ctx, r.prefix+"ids", id)
		return nil
	})
	if err != nil {
		return content.Item{}, err
	}
	return it, nil
}

func (r *RedisRepo) Get(ctx context.Context, id int64) (content.Item, error) {
	b, err := r.client.Get(ctx, r.itemKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return content.Item{}, ErrNotFound
		}
		return content.Item{}, err
	}
	return decodeRecord(b)
}

// List returns items ordered by id.
func (r *RedisRepo) List(ctx context.Context) ([]content.Item, error) {
	members, err := r.client.SMembers(ctx, r.prefix+"ids").Result()
	if err != nil {
		return nil, err
	}
	out := []content.Item{}
	if len(members) == 0 {
		return out, nil
	}
	keys := make([]string, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		keys = append(keys, r.itemKey(id))
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		it, err := decodeRecord([]byte(s))
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RedisRepo) Replace(ctx context.Context, it content.Item) error {
	b, err := json.Marshal(it.Record())
	if err != nil {
		return err
	}
	ok, err := r.client.SetXX(ctx, r.itemKey(it.ID), b, 0).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (r *RedisRepo) Delete(ctx context.Context, id int64) error {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		del = p.Del(ctx, r.itemKey(id))
		p.SRem(ctx, r.prefix+"ids", id)
		return nil
	})
	if err != nil {
		return err
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeRecord(b []byte) (content.Item, error) {
	var rec content.Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return content.Item{}, err
	}
	return content.FromRecord(rec)
}
