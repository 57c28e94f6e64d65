package po

import (
	"time"

	"greencity/domain/friend"
)

// UserFriendPO is one directed edge of the social graph.
type UserFriendPO struct {
	UserID      int64     `gorm:"primaryKey"`
	FriendID    int64     `gorm:"primaryKey;index"`
	Status      string    `gorm:"size:16;not null"`
	CreatedDate time.Time `gorm:"autoCreateTime"`
}

func (UserFriendPO) TableName() string {
	return "users_friends"
}

func FromFriendshipDomain(f *friend.Friendship) *UserFriendPO {
	return &UserFriendPO{
		UserID:      f.UserID(),
		FriendID:    f.FriendID(),
		Status:      string(f.Status()),
		CreatedDate: f.CreatedDate(),
	}
}

func (p *UserFriendPO) ToDomain() *friend.Friendship {
	return friend.RebuildFriendship(p.UserID, p.FriendID, p.Status, p.CreatedDate)
}
