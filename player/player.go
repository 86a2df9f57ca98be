package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"morris/agent"
	"morris/communication"
	"morris/experiments/metrics"
	"morris/game"
	"morris/gamemaster"
	"strings"

	"github.com/rs/zerolog/log"
)

type Option func(p *Player)

func WithRegistry(registry *metrics.Registry) Option {
	return func(p *Player) {
		p.registry = registry
	}
}

func WithName(name string) Option {
	return func(p *Player) {
		if name != "" {
			p.name = name
		}
	}
}

// Player plays one game against an external referee over a Communicator.
type Player struct {
	Color        game.Color
	Agent        agent.Agent
	Communicator communication.Communicator
	referee      *gamemaster.Referee
	registry     *metrics.Registry
	name         string
}

// NewPlayer creates a new Player instance.
func NewPlayer(a agent.Agent, comm communication.Communicator, options ...Option) *Player {
	p := &Player{
		Agent:        a,
		Communicator: comm,
		name:         "search",
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Play runs the session: read the assigned color, open when blue, then answer
// every opponent line with a move until END, an empty line or end of input.
// Unusable opponent lines are skipped. An unknown color ends the session
// without output.
func (p *Player) Play(ctx context.Context) error {
	line, err := p.Communicator.ReadLine()
	if err != nil {
		return ignoreEOF(err)
	}
	color, err := game.ParseColor(strings.TrimSpace(line))
	if err != nil {
		log.Warn().Err(err).Msg("not assigned a side, exiting")
		return nil
	}
	p.Color = color
	// Draw rules belong to the external referee
	p.referee = gamemaster.NewReferee(gamemaster.WithRepetitionLimit(0))
	log.Info().Msgf("playing %v", color)

	if color == game.Blue {
		if err := p.takeTurn(ctx); err != nil {
			return err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := p.Communicator.ReadLine()
		if err != nil {
			return ignoreEOF(err)
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "END") {
			log.Info().Msg("session ended")
			return nil
		}

		p.applyOpponentMove(line)
		if err := p.takeTurn(ctx); err != nil {
			return err
		}
	}
}

// applyOpponentMove plays line on the local state if it is a well-formed,
// legal move for the opponent, and logs why otherwise.
func (p *Player) applyOpponentMove(line string) {
	move, err := communication.ParseMove(line)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring opponent line")
		p.registry.ObserveIgnoredLine("malformed")
		return
	}
	p.referee.ForceTurn(p.Color.Opponent())
	if err := p.referee.Play(move); err != nil {
		log.Warn().Err(err).Msgf("ignoring opponent move %q", line)
		p.registry.ObserveIgnoredLine("illegal")
	}
}

func (p *Player) takeTurn(ctx context.Context) error {
	p.referee.ForceTurn(p.Color)
	state := p.referee.State()

	move, metric := p.Agent.FindMove(ctx, state)
	log.Debug().
		Int("depth", metric.Depth).
		Int("score", metric.Score).
		Int64("nodes", metric.Nodes).
		Dur("duration", metric.Duration).
		Bool("fallback", metric.Fallback).
		Msgf("chose %v", move)
	p.registry.ObserveSearch(p.name, metric)

	if err := p.referee.Play(move); err != nil {
		log.Warn().Err(err).Msgf("own move %v not applied", move)
	}

	if err := p.Communicator.SendMove(move, p.Color); err != nil {
		return fmt.Errorf("send move: %w", err)
	}
	return nil
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
