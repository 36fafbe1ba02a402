package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"telos/internal/assistant"
)

type Assistant interface {
	Reply(ctx context.Context, message string) (assistant.Reply, error)
	Greetings() []string
}

type ChatHandler struct {
	assistant Assistant
	log       *zap.Logger
}

func NewChatHandler(a Assistant, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		assistant: a,
		log:       log,
	}
}

func (ch *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	op := "handlers.HandleChat"

	//text from user
	var input struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(w, r, &input); err != nil {
		badJSON(w, ch.log, op, err)
		return
	}

	reply, err := ch.assistant.Reply(r.Context(), input.Text)
	if err != nil {
		writeError(w, ch.log, op, err)
		return
	}

	writeData(w, ch.log, op, http.StatusOK, reply)
}

func (ch *ChatHandler) HandleGreetings(w http.ResponseWriter, r *http.Request) {
	writeData(w, ch.log, "handlers.HandleGreetings", http.StatusOK, ch.assistant.Greetings())
}
