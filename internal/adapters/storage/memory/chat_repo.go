package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"petvault/internal/domain/assistant"
)

type chatRepo struct {
	mu       sync.RWMutex
	byUserID map[string][]assistant.ChatMessage
}

func NewChatRepo() assistant.MessageRepository {
	return &chatRepo{
		byUserID: make(map[string][]assistant.ChatMessage),
	}
}

func (r *chatRepo) Append(ctx context.Context, msgs []assistant.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range msgs {
		if strings.TrimSpace(m.ID) == "" || strings.TrimSpace(m.UserID) == "" {
			return errors.New("chat message id and user id required")
		}
		r.byUserID[m.UserID] = append(r.byUserID[m.UserID], m)
	}
	return nil
}

func (r *chatRepo) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, m := range r.byUserID[userID] {
		if !m.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *chatRepo) Recent(ctx context.Context, userID string, limit int) ([]assistant.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := r.byUserID[userID]
	out := make([]assistant.ChatMessage, len(msgs))
	copy(out, msgs)

	// Más nuevos primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
