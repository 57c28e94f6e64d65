package email

import (
	"context"
	"sync"
)

// InlineDispatcher runs jobs synchronously. Used by tests.
type InlineDispatcher struct{}

func (InlineDispatcher) Submit(ctx context.Context, name string, job func(ctx context.Context) error) error {
	_ = job(ctx)
	return nil
}

// RecordingSender keeps every message it is asked to send. Used by tests.
type RecordingSender struct {
	mu        sync.Mutex
	Created   []EventCreatedMessage
	Comments  []EventCommentMessage
	Mentioned []EventCommentMessage
}

func (s *RecordingSender) AddEvent(ctx context.Context, msg EventCreatedMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Created = append(s.Created, msg)
	return nil
}

func (s *RecordingSender) SendEventCommentNotification(ctx context.Context, msg EventCommentMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Comments = append(s.Comments, msg)
	return nil
}

func (s *RecordingSender) SendMentionedInEventCommentNotification(ctx context.Context, msg EventCommentMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Mentioned = append(s.Mentioned, msg)
	return nil
}
