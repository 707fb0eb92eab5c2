package websocket

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"notegraph-be/internal/constant"
	"notegraph-be/internal/dto"
	"notegraph-be/internal/pkg/logger"

	"github.com/gofiber/websocket/v2"
)

const (
	ChatMessageAnswer = "answer"
	ChatMessageError  = "error"
)

type Answerer interface {
	AnswerQuestion(ctx context.Context, question string) (*dto.ChatResponse, error)
}

// ServeChat answers every {"question": ...} frame on its own goroutine.
// Replies may arrive out of order when questions overlap.
func ServeChat(answerer Answerer, log logger.ILogger, c *websocket.Conn) {
	ctx, cancel := context.WithCancel(context.Background())
	var inflight sync.WaitGroup

	var client *Client
	client = newClient(c, func(raw []byte) {
		inflight.Add(1)
		go func() {
			defer inflight.Done()
			reply := answerFrame(ctx, answerer, log, raw)
			select {
			case client.Send <- reply:
			case <-ctx.Done():
			}
		}()
	})

	go client.writePump()
	client.readPump()

	cancel()
	inflight.Wait()
	close(client.Send)
}

func answerFrame(ctx context.Context, answerer Answerer, log logger.ILogger, raw []byte) []byte {
	var in dto.ChatSocketMessage
	if err := json.Unmarshal(raw, &in); err != nil || strings.TrimSpace(in.Question) == "" {
		return encodeChat(dto.ChatSocketMessage{Type: ChatMessageError, Data: apology()})
	}

	res, err := answerer.AnswerQuestion(ctx, in.Question)
	if err != nil {
		log.Error("WS_CHAT", "Failed to answer question", map[string]interface{}{
			"error": err.Error(),
		})
		return encodeChat(dto.ChatSocketMessage{Type: ChatMessageError, Question: in.Question, Data: apology()})
	}
	return encodeChat(dto.ChatSocketMessage{Type: ChatMessageAnswer, Question: in.Question, Data: res})
}

func apology() *dto.ChatResponse {
	return &dto.ChatResponse{Answer: constant.ChatApologyAnswer, SourceNotes: []dto.SourceNote{}}
}

func encodeChat(msg dto.ChatSocketMessage) []byte {
	b, _ := json.Marshal(msg)
	return b
}
