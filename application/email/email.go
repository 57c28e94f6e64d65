/*
Package email 邮件通知的应用层端口

应用服务只依赖这里的接口:
1. Sender 由 restclient 实现，负责调用兄弟邮件服务
2. Dispatcher 由 mailer.Pool 实现，负责在固定大小的线程池中异步执行
3. Notifier 组合两者，事务提交后以 fire-and-forget 方式投递
*/
package email

import (
	"context"
	"time"

	"greencity/pkg/logger"

	"go.uber.org/zap"
)

// Job names, also used as metric labels.
const (
	JobAddEvent        = "addEvent"
	JobCommentNotify   = "eventCommentNotification"
	JobMentionedNotify = "mentionedInEventComment"
)

type EventAuthor struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type EventDateLocation struct {
	StartDate  time.Time `json:"startDate"`
	FinishDate time.Time `json:"finishDate"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	OnlineLink string    `json:"onlineLink,omitempty"`
}

// EventCreatedMessage announces a new event.
type EventCreatedMessage struct {
	Author         EventAuthor         `json:"author"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	ImagePaths     []string            `json:"imagePaths"`
	DatesLocations []EventDateLocation `json:"datesLocations"`
}

// EventCommentMessage notifies one receiver about a comment.
type EventCommentMessage struct {
	ReceiverName           string    `json:"receiverName"`
	ReceiverEmail          string    `json:"receiverEmail"`
	EventID                int64     `json:"eventId"`
	EventName              string    `json:"eventName"`
	CommentAuthorName      string    `json:"commentAuthorName"`
	CommentCreatedDateTime time.Time `json:"commentCreatedDateTime"`
	CommentText            string    `json:"commentText"`
	CommentID              int64     `json:"commentId"`
}

// Sender delivers messages to the email service.
type Sender interface {
	AddEvent(ctx context.Context, msg EventCreatedMessage) error
	SendEventCommentNotification(ctx context.Context, msg EventCommentMessage) error
	SendMentionedInEventCommentNotification(ctx context.Context, msg EventCommentMessage) error
}

// Dispatcher runs jobs asynchronously. Submit must not block.
type Dispatcher interface {
	Submit(ctx context.Context, name string, job func(ctx context.Context) error) error
}

// Notifier submits email jobs. Failures never reach the caller.
type Notifier struct {
	sender     Sender
	dispatcher Dispatcher
}

func NewNotifier(sender Sender, dispatcher Dispatcher) *Notifier {
	return &Notifier{sender: sender, dispatcher: dispatcher}
}

func (n *Notifier) EventCreated(ctx context.Context, msg EventCreatedMessage) {
	n.submit(ctx, JobAddEvent, func(ctx context.Context) error {
		return n.sender.AddEvent(ctx, msg)
	})
}

func (n *Notifier) EventComment(ctx context.Context, msg EventCommentMessage) {
	n.submit(ctx, JobCommentNotify, func(ctx context.Context) error {
		return n.sender.SendEventCommentNotification(ctx, msg)
	})
}

func (n *Notifier) MentionedInComment(ctx context.Context, msg EventCommentMessage) {
	n.submit(ctx, JobMentionedNotify, func(ctx context.Context) error {
		return n.sender.SendMentionedInEventCommentNotification(ctx, msg)
	})
}

func (n *Notifier) submit(ctx context.Context, name string, job func(ctx context.Context) error) {
	if n == nil || n.dispatcher == nil {
		return
	}
	if err := n.dispatcher.Submit(ctx, name, job); err != nil {
		logger.FromContext(ctx).Warn("Email job not submitted", zap.String("job", name), zap.Error(err))
	}
}
