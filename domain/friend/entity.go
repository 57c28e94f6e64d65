package friend

import (
	"time"

	"greencity/domain/shared"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
)

// Habit assignment statuses read from habit_assign.
const (
	HabitInProgress = "INPROGRESS"
	HabitAcquired   = "ACQUIRED"
)

// DefaultFriendsPageSize is the page size of the shared-habits friend list.
const DefaultFriendsPageSize = 6

// Friendship is a directed edge user -> friend of the social graph.
type Friendship struct {
	userID      int64
	friendID    int64
	status      Status
	createdDate time.Time
}

// NewFriendRequest creates a pending edge.
func NewFriendRequest(userID, friendID int64, now time.Time) (*Friendship, error) {
	if userID == friendID {
		return nil, shared.NewBadRequestError("friend", "user cannot send a friend request to themselves")
	}
	return &Friendship{userID: userID, friendID: friendID, status: StatusPending, createdDate: now}, nil
}

func (f *Friendship) Accept() error {
	if f.status != StatusPending {
		return NewFriendRequestNotFoundError(f.userID, f.friendID)
	}
	f.status = StatusAccepted
	return nil
}

func (f *Friendship) UserID() int64          { return f.userID }
func (f *Friendship) FriendID() int64        { return f.friendID }
func (f *Friendship) Status() Status         { return f.status }
func (f *Friendship) CreatedDate() time.Time { return f.createdDate }
func (f *Friendship) IsPending() bool        { return f.status == StatusPending }
func (f *Friendship) IsAccepted() bool       { return f.status == StatusAccepted }

func RebuildFriendship(userID, friendID int64, status string, createdDate time.Time) *Friendship {
	return &Friendship{userID: userID, friendID: friendID, status: Status(status), createdDate: createdDate}
}

// Stats are the activity counters shown on a friend card.
type Stats struct {
	HabitsInProgress int64
	HabitsAcquired   int64
	NewsPublished    int64
}
