package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/connectfour/internal/config"
	"github.com/rocketscienceinc/connectfour/internal/connectfour"
	"github.com/rocketscienceinc/connectfour/internal/entity"
	"github.com/rocketscienceinc/connectfour/internal/pkg"
	"github.com/rocketscienceinc/connectfour/internal/repository"
	"github.com/rocketscienceinc/connectfour/internal/repository/storage"
	"github.com/rocketscienceinc/connectfour/internal/transport/console"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs one game on the terminal.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	var results repository.ResultRepository
	if conf.Results.Enabled {
		redisAddrString := conf.Results.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		results = repository.NewResultRepository(redisStorage.Connection)
	}

	return Play(ctx, logger, conf, console.New(os.Stdin, os.Stdout), results)
}

// Play - sets up the players, runs the game and records its outcome when results is set.
// The game runs in its own goroutine because reading the terminal cannot be canceled.
func Play(ctx context.Context, logger *slog.Logger, conf *config.Config, term *console.Console, results repository.ResultRepository) error {
	log := logger.With("component", "app")

	playerOne, playerTwo, err := setupPlayers(conf, term)
	if errors.Is(err, io.EOF) {
		log.Info("Input closed before the game started")
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to set up players: %w", err)
	}

	game := connectfour.NewGame(logger, term, term, entity.NewBoard(), playerOne, playerTwo)

	type gameResult struct {
		outcome *entity.Outcome
		err     error
	}

	doneCh := make(chan gameResult, 1)
	go func() {
		outcome, startErr := game.Start(ctx)
		doneCh <- gameResult{outcome: outcome, err: startErr}
	}()

	select {
	case <-ctx.Done():
		log.Info("Application context canceled, game abandoned")
		return nil
	case res := <-doneCh:
		if res.err != nil {
			return fmt.Errorf("game failed: %w", res.err)
		}

		if results != nil {
			recordOutcome(ctx, log, term, results, res.outcome)
		}

		return nil
	}
}

func setupPlayers(conf *config.Config, term *console.Console) (*entity.Player, *entity.Player, error) {
	names := []struct {
		configured string
		label      string
	}{
		{conf.PlayerOneName, entity.DefaultPlayerOneName},
		{conf.PlayerTwoName, entity.DefaultPlayerTwoName},
	}

	players := make([]*entity.Player, 0, len(names))
	for _, n := range names {
		name := n.configured
		if name == "" {
			var err error
			if name, err = term.AskName(n.label, n.label); err != nil {
				return nil, nil, err
			}
		}

		players = append(players, entity.NewPlayer(name))
	}

	return players[0], players[1], nil
}

// recordOutcome - saves the outcome and shows the scoreboard. Storage failures are logged
// and never affect a game that has already been played.
func recordOutcome(ctx context.Context, log *slog.Logger, term *console.Console, results repository.ResultRepository, outcome *entity.Outcome) {
	log = log.With("method", "recordOutcome")

	gameID, err := pkg.GenerateGameID()
	if err != nil {
		log.Error("failed to generate game id", "error", err)
		return
	}

	outcome.ID = gameID
	if err = results.Save(ctx, outcome); err != nil {
		log.Error("failed to save result", "error", err)
		return
	}

	log.Info("result saved", "id", gameID)

	scores, err := results.Scoreboard(ctx)
	if err != nil {
		log.Error("failed to get scoreboard", "error", err)
		return
	}

	stalemates, err := results.Stalemates(ctx)
	if err != nil {
		log.Error("failed to get stalemates", "error", err)
		return
	}

	term.Say("\nScoreboard:")
	for _, score := range scores {
		term.Say(fmt.Sprintf("%s: %d", score.Name, score.Wins))
	}
	term.Say(fmt.Sprintf("Stalemates: %d", stalemates))
}
