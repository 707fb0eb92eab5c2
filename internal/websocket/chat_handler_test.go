package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"notegraph-be/internal/constant"
	"notegraph-be/internal/dto"
	"notegraph-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type answerFunc func(ctx context.Context, question string) (*dto.ChatResponse, error)

func (f answerFunc) AnswerQuestion(ctx context.Context, question string) (*dto.ChatResponse, error) {
	return f(ctx, question)
}

func decodeChat(t *testing.T, raw []byte) dto.ChatSocketMessage {
	t.Helper()
	var msg dto.ChatSocketMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestAnswerFrame(t *testing.T) {
	source := uuid.New()
	answerer := answerFunc(func(ctx context.Context, q string) (*dto.ChatResponse, error) {
		if q == "boom" {
			return nil, errors.New("model down")
		}
		return &dto.ChatResponse{Answer: "echo " + q, SourceNotes: []dto.SourceNote{{Id: source, Title: "src"}}}, nil
	})
	log := logger.NewNopLogger()

	t.Run("answer", func(t *testing.T) {
		msg := decodeChat(t, answerFrame(context.Background(), answerer, log, []byte(`{"question":"hi"}`)))
		assert.Equal(t, ChatMessageAnswer, msg.Type)
		assert.Equal(t, "hi", msg.Question)
		require.NotNil(t, msg.Data)
		assert.Equal(t, "echo hi", msg.Data.Answer)
		assert.Equal(t, source, msg.Data.SourceNotes[0].Id)
	})

	t.Run("failure apologizes", func(t *testing.T) {
		msg := decodeChat(t, answerFrame(context.Background(), answerer, log, []byte(`{"question":"boom"}`)))
		assert.Equal(t, ChatMessageError, msg.Type)
		assert.Equal(t, constant.ChatApologyAnswer, msg.Data.Answer)
		assert.Empty(t, msg.Data.SourceNotes)
	})

	t.Run("malformed frame", func(t *testing.T) {
		for _, raw := range []string{`not json`, `{"question":"   "}`, `{}`} {
			msg := decodeChat(t, answerFrame(context.Background(), answerer, log, []byte(raw)))
			assert.Equal(t, ChatMessageError, msg.Type, raw)
		}
	})
}
