package user

import "greencity/domain/shared"

func NewUserNotFoundError(userID int64) error {
	return shared.NewEntityNotFoundError("user", userID)
}

func NewUserNotFoundByEmailError(email string) error {
	return shared.NewEntityNotFoundError("user", email)
}
