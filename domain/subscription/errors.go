package subscription

import (
	"fmt"

	"greencity/domain/shared"
)

var ErrAlreadySubscribed = fmt.Errorf("%w: email is already subscribed", shared.ErrConflict)

func NewAlreadySubscribedError(email string) error {
	return shared.NewDomainError(ErrAlreadySubscribed, "news subscription", "email is already subscribed: "+email)
}

func NewSubscriptionNotFoundError() error {
	return shared.NewNotFoundError("news subscription")
}
