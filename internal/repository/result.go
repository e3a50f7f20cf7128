package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/connectfour/internal/entity"
)

var (
	ErrResultNotFound = errors.New("result not found")
	ErrResultNoID     = errors.New("result has no id")
	ErrGameNotOver    = errors.New("game is not over")
)

const (
	resultKeyPrefix = "result:"
	scoreboardKey   = "scoreboard"
	stalematesKey   = "stalemates"
)

type ResultRepository interface {
	Save(ctx context.Context, outcome *entity.Outcome) error
	GetByID(ctx context.Context, id string) (*entity.Outcome, error)
	Scoreboard(ctx context.Context) ([]entity.Score, error)
	Stalemates(ctx context.Context) (int64, error)
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

// Save - stores a finished game and counts it on the scoreboard in one transaction.
func (that *dbResult) Save(ctx context.Context, outcome *entity.Outcome) error {
	if outcome.ID == "" {
		return ErrResultNoID
	}

	if !outcome.IsFinished() {
		return fmt.Errorf("%w: status %s", ErrGameNotOver, outcome.Status)
	}

	resultJSON, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, resultKeyPrefix+outcome.ID, resultJSON, 0)

		if outcome.IsWon() {
			pipe.ZIncrBy(ctx, scoreboardKey, 1, outcome.Winner)
		} else {
			pipe.Incr(ctx, stalematesKey)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

func (that *dbResult) GetByID(ctx context.Context, id string) (*entity.Outcome, error) {
	response, err := that.client.Get(ctx, resultKeyPrefix+id).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.Outcome{}, ErrResultNotFound
	}

	if err != nil {
		return &entity.Outcome{}, fmt.Errorf("failed to get result by id: %w", err)
	}

	var outcome entity.Outcome
	if err = json.Unmarshal([]byte(response), &outcome); err != nil {
		return &entity.Outcome{}, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &outcome, nil
}

// Scoreboard - players ordered by number of wins, most wins first.
func (that *dbResult) Scoreboard(ctx context.Context) ([]entity.Score, error) {
	entries, err := that.client.ZRevRangeWithScores(ctx, scoreboardKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get scoreboard: %w", err)
	}

	scores := make([]entity.Score, 0, len(entries))
	for _, entry := range entries {
		scores = append(scores, entity.Score{
			Name: fmt.Sprint(entry.Member),
			Wins: int64(entry.Score),
		})
	}

	return scores, nil
}

func (that *dbResult) Stalemates(ctx context.Context) (int64, error) {
	count, err := that.client.Get(ctx, stalematesKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get stalemates: %w", err)
	}

	return count, nil
}
