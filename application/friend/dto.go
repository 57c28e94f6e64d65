package friend

// FriendResponse 好友卡片
type FriendResponse struct {
	ID                     int64   `json:"id"`
	Name                   string  `json:"name"`
	Rating                 float64 `json:"rating"`
	OnlineStatus           bool    `json:"onlineStatus"`
	ProfilePicturePath     string  `json:"profilePicturePath"`
	City                   string  `json:"city"`
	UserCredo              string  `json:"userCredo"`
	AmountHabitsInProgress int64   `json:"amountHabitsInProgress"`
	AmountHabitsAcquired   int64   `json:"amountHabitsAcquired"`
	AmountNewsPublished    int64   `json:"amountNewsPublished"`
	MutualFriends          int64   `json:"mutualFriends"`
}
