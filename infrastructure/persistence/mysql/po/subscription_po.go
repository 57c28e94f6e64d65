package po

import (
	"greencity/domain/subscription"
)

type NewsSubscriptionPO struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Email string `gorm:"size:255;uniqueIndex;not null"`
	Token string `gorm:"size:64;uniqueIndex;not null"`
}

func (NewsSubscriptionPO) TableName() string {
	return "news_subscriptions"
}

func (p *NewsSubscriptionPO) ToDomain() *subscription.NewsSubscription {
	return subscription.Rebuild(p.ID, p.Email, p.Token)
}
