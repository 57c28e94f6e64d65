package po

// Models lists every persistent object, in dependency order, for AutoMigrate.
func Models() []any {
	return []any{
		&UserPO{},
		&HabitAssignPO{},
		&EcoNewsPO{},
		&EventPO{},
		&EventDateLocationPO{},
		&EventTagPO{},
		&EventImagePO{},
		&EventAttendeePO{},
		&EventCommentPO{},
		&EventCommentMentionPO{},
		&UserFriendPO{},
		&NotificationPO{},
		&NewsSubscriptionPO{},
	}
}
