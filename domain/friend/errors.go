package friend

import (
	"fmt"

	"greencity/domain/shared"
)

var ErrRequestAlreadyPending = fmt.Errorf("%w: friend request already sent", shared.ErrConflict)

func NewRequestAlreadyPendingError(userID, friendID int64) error {
	return shared.NewDomainError(ErrRequestAlreadyPending, "friend",
		fmt.Sprintf("friend request from %d to %d is already pending", userID, friendID))
}

func NewFriendRequestNotFoundError(userID, friendID int64) error {
	return shared.NewDomainError(shared.ErrNotFound, "friend",
		fmt.Sprintf("no pending friend request from %d to %d", userID, friendID))
}

func NewFriendNotFoundError(userID, friendID int64) error {
	return shared.NewDomainError(shared.ErrNotFound, "friend",
		fmt.Sprintf("user %d is not a friend of %d", friendID, userID))
}
