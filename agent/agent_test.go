package agent

import (
	"context"
	"encoding/json"
	"morris/experiments/metrics"
	"morris/game"
	"morris/searcher"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
)

type fixedAgent struct {
	move  game.Move
	calls int
}

func (a *fixedAgent) FindMove(_ context.Context, _ game.State) (game.Move, metrics.SearchMetric) {
	a.calls++
	return a.move, metrics.SearchMetric{Depth: 1}
}

// chatServer answers chat completions with the given replies in order,
// repeating the last one.
func chatServer(t *testing.T, replies ...string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(requests.Add(1))
		var request openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		reply := replies[min(n, len(replies))-1]
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "chatcmpl-test",
			Object: "chat.completion",
			Model:  request.Model,
			Choices: []openai.ChatCompletionChoice{{
				Index:        0,
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply},
				FinishReason: openai.FinishReasonStop,
			}},
		})
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestSearchAgent(t *testing.T) {
	a := NewSearchAgent(searcher.NewSearcher(searcher.WithMaxDepth(1), searcher.WithDuration(time.Minute), searcher.WithMetrics()))
	state := game.NewState()

	move, metric := a.FindMove(context.Background(), state)

	require.True(t, game.IsLegal(state, move))
	require.Equal(t, 1, metric.Depth)
}

func TestAdvisorAgent(t *testing.T) {
	state := game.NewState()

	t.Run("plays a legal suggestion", func(t *testing.T) {
		server, requests := chatServer(t, "I suggest ~h1 d2 r0~")
		fallback := &fixedAgent{move: game.Place(game.A1)}
		a := NewAdvisorAgent(NewOpenAIClient("test", server.URL+"/v1"), "test-model", fallback, 2)

		move, metric := a.FindMove(context.Background(), state)

		require.Equal(t, game.Place(game.D2), move)
		require.False(t, metric.Fallback)
		require.Zero(t, fallback.calls)
		require.EqualValues(t, 1, requests.Load())
	})

	t.Run("re-prompts after an illegal suggestion", func(t *testing.T) {
		server, requests := chatServer(t, "~d2 d3 r0~", "~h1 e4 r0~")
		fallback := &fixedAgent{move: game.Place(game.A1)}
		a := NewAdvisorAgent(NewOpenAIClient("test", server.URL+"/v1"), "test-model", fallback, 2)

		move, _ := a.FindMove(context.Background(), state)

		require.Equal(t, game.Place(game.E4), move)
		require.EqualValues(t, 2, requests.Load())
	})

	t.Run("falls back once retries run out", func(t *testing.T) {
		server, requests := chatServer(t, "let me think about it")
		fallback := &fixedAgent{move: game.Place(game.A1)}
		a := NewAdvisorAgent(NewOpenAIClient("test", server.URL+"/v1"), "test-model", fallback, 2)

		move, metric := a.FindMove(context.Background(), state)

		require.Equal(t, game.Place(game.A1), move)
		require.True(t, metric.Fallback)
		require.Equal(t, 1, fallback.calls)
		require.EqualValues(t, 3, requests.Load())
	})

	t.Run("falls back when the service fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"unavailable","type":"server_error"}}`, http.StatusServiceUnavailable)
		}))
		t.Cleanup(server.Close)
		fallback := &fixedAgent{move: game.Place(game.G7)}
		a := NewAdvisorAgent(NewOpenAIClient("test", server.URL+"/v1"), "test-model", fallback, 0)
		a.Timeout = 5 * time.Second

		move, metric := a.FindMove(context.Background(), state)

		require.Equal(t, game.Place(game.G7), move)
		require.True(t, metric.Fallback)
	})
}

func TestExtractMove(t *testing.T) {
	move, err := extractMove("Best is ~ d7 a7 f4 ~ because it closes a mill")
	require.NoError(t, err)
	require.Equal(t, game.Slide(game.D7, game.A7).WithRemoval(game.F4), move)

	_, err = extractMove("h1 d2 r0")
	require.Error(t, err)

	_, err = extractMove("~h1 x9 r0~")
	require.Error(t, err)
}

func TestDescribe(t *testing.T) {
	state := game.NewState().Play(game.Place(game.D2))

	prompt := describe(state)

	require.Contains(t, prompt, "We are playing orange")
	require.Contains(t, prompt, "blue stones: d2")
	require.Contains(t, prompt, "h2 a1 r0")
	require.NotContains(t, prompt, "h2 d2 r0")
}
