package agent

import (
	"context"
	"errors"
	"fmt"
	"morris/communication"
	"morris/experiments/metrics"
	"morris/game"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const rulesPrompt = `I am about to play a text-based game of Lasker Morris and I want to make the best move possible.
The board uses coordinates like a chessboard: a1 is the bottom-left and g7 is the top-right.
Moves must use ONLY these points: a1 a4 a7 b2 b4 b6 c3 c4 c5 d1 d2 d3 d5 d6 d7 e3 e4 e5 f2 f4 f6 g1 g4 g7.

Move format:
- Placing a stone from hand: "h1 d2 r0" for blue, "h2 d2 r0" for orange.
- Moving a stone: "d2 d3 r0" when no mill is formed.
- Moving and forming a mill: "d2 d3 a7" removes the opponent stone at a7.
- If you form a mill you MUST remove an opponent stone; otherwise the third value is r0.

Output ONLY the move inside ~ tildes, for example ~h1 d2 r0~ or ~d2 d3 a7~. No explanations.`

const invalidMovePrompt = "The move you suggested is invalid. Please choose a valid move."

var answerPattern = regexp.MustCompile(`~\s*(\S+)\s+(\S+)\s+(\S+)\s*~`)

var errNoMove = errors.New("no move in answer")

// ChatClient is the part of *openai.Client the advisor needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// AdvisorAgent asks a chat-completion model for a move, re-prompting when the
// answer is not a legal move, and defers to a fallback agent when the model
// fails or keeps answering with illegal moves.
type AdvisorAgent struct {
	client   ChatClient
	model    string
	fallback Agent
	retries  int

	// Timeout bounds the whole exchange with the model. Zero means no bound
	// beyond the caller's context.
	Timeout time.Duration
}

func NewAdvisorAgent(client ChatClient, model string, fallback Agent, retries int) *AdvisorAgent {
	return &AdvisorAgent{
		client:   client,
		model:    model,
		fallback: fallback,
		retries:  max(retries, 0),
	}
}

// NewOpenAIClient builds a client for an OpenAI-compatible endpoint. An empty
// baseURL keeps the library default.
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}

func (a *AdvisorAgent) FindMove(ctx context.Context, state game.State) (game.Move, metrics.SearchMetric) {
	start := time.Now()
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	move, err := a.ask(ctx, state)
	if err != nil {
		log.Warn().Err(err).Msg("advisor failed, falling back to search")
		fallbackMove, metric := a.fallback.FindMove(ctx, state)
		metric.Fallback = true
		return fallbackMove, metric
	}
	return move, metrics.SearchMetric{Duration: time.Since(start)}
}

func (a *AdvisorAgent) ask(ctx context.Context, state game.State) (game.Move, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: rulesPrompt},
		{Role: openai.ChatMessageRoleUser, Content: describe(state)},
	}

	for attempt := 0; attempt <= a.retries; attempt++ {
		resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    a.model,
			Messages: messages,
		})
		if err != nil {
			return game.Move{}, fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return game.Move{}, fmt.Errorf("chat completion returned no choices")
		}

		answer := resp.Choices[0].Message.Content
		move, err := extractMove(answer)
		if err == nil && game.IsLegal(state, move) {
			return move, nil
		}
		log.Debug().Str("answer", answer).Int("attempt", attempt+1).Msg("advisor suggested an invalid move")

		messages = append(messages,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: answer},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: invalidMovePrompt},
		)
	}
	return game.Move{}, fmt.Errorf("no legal move after %d attempts", a.retries+1)
}

func extractMove(answer string) (game.Move, error) {
	match := answerPattern.FindStringSubmatch(answer)
	if match == nil {
		return game.Move{}, errNoMove
	}
	return communication.ParseMove(strings.Join(match[1:], " "))
}

// describe renders the position and the legal moves for the prompt.
func describe(state game.State) string {
	var sb strings.Builder
	mover := state.Turn
	fmt.Fprintf(&sb, "We are playing %v. Stones in hand: blue %d, orange %d.\n",
		mover, state.Hand(game.Blue), state.Hand(game.Orange))
	for _, c := range []game.Color{game.Blue, game.Orange} {
		var points []string
		for _, p := range game.Points {
			if state.Board[p] == c {
				points = append(points, p.String())
			}
		}
		fmt.Fprintf(&sb, "%v stones: %s\n", c, strings.Join(points, " "))
	}
	sb.WriteString("Board:\n")
	sb.WriteString(state.String())

	var legal []string
	for _, m := range state.LegalMoves() {
		legal = append(legal, communication.FormatMove(m, mover))
	}
	fmt.Fprintf(&sb, "Legal moves: %s\n", strings.Join(legal, ", "))
	sb.WriteString("What is the best move from this position?")
	return sb.String()
}
