package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"vidtube/config"
	"vidtube/internal/model"
	"vidtube/internal/util"
)

const (
	teaSequenceKey = "tea:seq"
	teaIndexKey    = "tea:index"
)

// TeaRedisRepository : чаи в Redis. Значения хранятся в JSON без TTL,
// порядок выдачи задаётся отсортированным множеством tea:index.
type TeaRedisRepository struct {
	client *config.RedisClient
}

func NewTeaRedisRepository(rdb *config.RedisClient) *TeaRedisRepository {
	return &TeaRedisRepository{rdb}
}

func (r *TeaRedisRepository) Create(ctx context.Context, tea model.Tea) (*model.Tea, error) {
	id, err := r.client.Client.Incr(ctx, teaSequenceKey).Result()
	if err != nil {
		return nil, util.LogError(ctx, "[TeaRedisRepo] ошибка получения идентификатора", err)
	}
	tea.ID = int(id)

	data, err := json.Marshal(tea)
	if err != nil {
		return nil, util.LogError(ctx, "[TeaRedisRepo] ошибка сериализации чая", err)
	}

	pipe := r.client.Client.TxPipeline()
	pipe.Set(ctx, r.key(tea.ID), data, 0)
	pipe.ZAdd(ctx, teaIndexKey, redis.Z{Score: float64(tea.ID), Member: tea.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, util.LogError(ctx, "[TeaRedisRepo] ошибка сохранения в Redis", err)
	}

	return &tea, nil
}

func (r *TeaRedisRepository) List(ctx context.Context) ([]model.Tea, error) {
	ids, err := r.client.Client.ZRange(ctx, teaIndexKey, 0, -1).Result()
	if err != nil {
		return nil, util.LogError(ctx, "[TeaRedisRepo] ошибка чтения индекса", err)
	}

	teas := make([]model.Tea, 0, len(ids))
	if len(ids) == 0 {
		return teas, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		keys = append(keys, r.key(n))
	}

	values, err := r.client.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, util.LogError(ctx, "[TeaRedisRepo] ошибка получения чаёв из Redis", err)
	}

	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var tea model.Tea
		if err := json.Unmarshal([]byte(s), &tea); err != nil {
			return nil, util.LogError(ctx, "[TeaRedisRepo] ошибка десериализации чая", err)
		}
		teas = append(teas, tea)
	}

	return teas, nil
}

func (r *TeaRedisRepository) Get(ctx context.Context, id int) (*model.Tea, error) {
	val, err := r.client.Client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("[TeaRedisRepo] %w", model.ErrTeaNotFound)
	} else if err != nil {
		return nil, util.LogError(ctx, "[TeaRedisRepo] ошибка получения чая из Redis", err)
	}

	var tea model.Tea
	if err := json.Unmarshal([]byte(val), &tea); err != nil {
		return nil, util.LogError(ctx, "[TeaRedisRepo] ошибка десериализации чая", err)
	}
	return &tea, nil
}

func (r *TeaRedisRepository) Update(ctx context.Context, tea model.Tea) (*model.Tea, error) {
	data, err := json.Marshal(tea)
	if err != nil {
		return nil, util.LogError(ctx, "[TeaRedisRepo] ошибка сериализации чая", err)
	}

	// XX : перезаписываем только существующий ключ
	ok, err := r.client.Client.SetXX(ctx, r.key(tea.ID), data, redis.KeepTTL).Result()
	if err != nil {
		return nil, util.LogError(ctx, "[TeaRedisRepo] ошибка обновления в Redis", err)
	}
	if !ok {
		return nil, fmt.Errorf("[TeaRedisRepo] %w", model.ErrTeaNotFound)
	}
	return &tea, nil
}

func (r *TeaRedisRepository) Delete(ctx context.Context, id int) error {
	pipe := r.client.Client.TxPipeline()
	del := pipe.Del(ctx, r.key(id))
	pipe.ZRem(ctx, teaIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return util.LogError(ctx, "[TeaRedisRepo] ошибка удаления из Redis", err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("[TeaRedisRepo] %w", model.ErrTeaNotFound)
	}
	return nil
}

func (r *TeaRedisRepository) key(id int) string {
	return fmt.Sprintf("tea:%d", id)
}
