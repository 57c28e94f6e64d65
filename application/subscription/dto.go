package subscription

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type SubscriptionResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Token string `json:"unsubscribeToken"`
}
