package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"webcheckers/models"
)

const (
	gameKeyPrefix = "replay:game:"
	gameIndexKey  = "replay:games"
)

// RedisArchive stores finished games as JSON in redis, keyed by game id,
// with a set of known ids for listing.
type RedisArchive struct {
	Client *redis.Client
}

func NewRedisArchive(addr string, db int) (*RedisArchive, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("[archive] - failed to connect to Redis at %s: %w", addr, err)
	}
	return &RedisArchive{Client: client}, nil
}

func (a *RedisArchive) Close() {
	if a.Client != nil {
		a.Client.Close()
	}
}

func (a *RedisArchive) SaveGame(game *models.Game) error {
	if game == nil {
		return fmt.Errorf("cannot archive a nil game")
	}
	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("[archive] - failed to serialize game: %v", err)
	}

	ctx := context.Background()
	pipe := a.Client.TxPipeline()
	pipe.Set(ctx, gameKeyPrefix+game.ID, string(data), 0)
	pipe.SAdd(ctx, gameIndexKey, game.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("[archive] - failed to store game %s: %v", game.ID, err)
	}
	return nil
}

func (a *RedisArchive) GetGame(id string) (*models.Game, error) {
	data, err := a.Client.Get(context.Background(), gameKeyPrefix+id).Result()
	if err != nil {
		return nil, fmt.Errorf("[archive] - no archived game with id %s: %v", id, err)
	}

	var game models.Game
	if err := json.Unmarshal([]byte(data), &game); err != nil {
		return nil, fmt.Errorf("[archive] - failed to deserialize game %s: %v", id, err)
	}
	return &game, nil
}

func (a *RedisArchive) ListGames() ([]GameSummary, error) {
	ctx := context.Background()
	ids, err := a.Client.SMembers(ctx, gameIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("[archive] - failed to list archived games: %v", err)
	}

	summaries := make([]GameSummary, 0, len(ids))
	for _, id := range ids {
		game, err := a.GetGame(id)
		if err != nil {
			continue // index entry without a value, skip it
		}
		summaries = append(summaries, summarize(game))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].EndTime.After(summaries[j].EndTime)
	})
	return summaries, nil
}
