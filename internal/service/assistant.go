package service

import (
	"context"
	"errors"
	"log/slog"

	"kanbanapi/internal/assistant"
	"kanbanapi/internal/model"

	"github.com/google/uuid"
)

// AssistantContext is what the assistant sees for a user.
type AssistantContext struct {
	Boards      []model.Board
	Context     string
	TotalBoards int
	TotalCards  int
}

type AssistantService struct {
	stores    Stores
	completer assistant.Completer
	logger    *slog.Logger
}

// NewAssistantService wires the completion client. A nil completer means no
// API key is configured and Chat always fails with KindUpstreamUnavailable.
func NewAssistantService(stores Stores, completer assistant.Completer, logger *slog.Logger) *AssistantService {
	return &AssistantService{stores: stores, completer: completer, logger: logger}
}

// boards loads everything the actor owns or belongs to, fully expanded.
func (s *AssistantService) boards(ctx context.Context, actor uuid.UUID) ([]model.Board, error) {
	boards, err := s.stores.Boards.ListForUser(ctx, actor)
	if err != nil {
		return nil, internal("Failed to retrieve boards", err)
	}
	for i := range boards {
		if err := s.stores.expandBoard(ctx, &boards[i]); err != nil {
			return nil, err
		}
	}
	return boards, nil
}

func (s *AssistantService) Context(ctx context.Context, actor uuid.UUID) (*AssistantContext, error) {
	user, err := s.stores.Users.GetByID(ctx, actor)
	if err != nil {
		return nil, internal("Failed to get boards context", err)
	}
	boards, err := s.boards(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &AssistantContext{
		Boards:      boards,
		Context:     assistant.BuildContext(user, boards),
		TotalBoards: len(boards),
		TotalCards:  assistant.CountCards(boards),
	}, nil
}

// Chat prepends the board context as a system message and asks the model
// for one reply.
func (s *AssistantService) Chat(ctx context.Context, actor uuid.UUID, messages []assistant.Message, referer string) (string, error) {
	if s.completer == nil {
		return "", &Error{
			Kind:    KindUpstreamUnavailable,
			Message: "OpenRouter API key not configured. Please add OPENROUTER_API_KEY to your environment variables.",
		}
	}
	if messages == nil {
		return "", invalid("Messages array is required")
	}

	actx, err := s.Context(ctx, actor)
	if err != nil {
		return "", err
	}

	conversation := make([]assistant.Message, 0, len(messages)+1)
	conversation = append(conversation, assistant.Message{Role: "system", Content: actx.Context})
	conversation = append(conversation, messages...)

	reply, err := s.completer.Complete(ctx, assistant.Request{Messages: conversation, Referer: referer})
	if err != nil {
		s.logger.Error("assistant completion failed", "user_id", actor, "error", err)
		return "", upstreamError(err)
	}
	return reply, nil
}

func upstreamError(err error) error {
	var providerErr *assistant.ProviderError
	if !errors.As(err, &providerErr) {
		return internal("Failed to get response from AI assistant. Please try again.", err)
	}
	switch {
	case providerErr.IsUnauthorized():
		return &Error{Kind: KindUpstreamAuthFailed, Message: "Invalid API key. Please check your OpenRouter API key.", Err: err}
	case providerErr.IsRateLimited():
		return &Error{Kind: KindUpstreamRateLimited, Message: "Rate limit exceeded. Please try again later.", Err: err}
	case providerErr.Message != "":
		return internal(providerErr.Message, err)
	default:
		return internal("Failed to get response from AI assistant. Please try again.", err)
	}
}
