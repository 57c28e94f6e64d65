package po

import (
	"time"

	"greencity/domain/notification"
)

type NotificationPO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"size:255;not null"`
	Message     string    `gorm:"type:text;not null"`
	CreatedDate time.Time `gorm:"not null;index"`
	ViewedDate  *time.Time
	Viewed      bool   `gorm:"not null;default:false"`
	Type        string `gorm:"size:64;not null"`
	ProjectName string `gorm:"size:32;not null"`
	UserID      int64  `gorm:"not null;index"`
}

func (NotificationPO) TableName() string {
	return "notifications"
}

func FromNotificationDomain(n *notification.Notification) *NotificationPO {
	return &NotificationPO{
		ID:          n.ID(),
		Title:       n.Title(),
		Message:     n.Message(),
		CreatedDate: n.CreatedDate(),
		ViewedDate:  n.ViewedDate(),
		Viewed:      n.IsViewed(),
		Type:        string(n.Type()),
		ProjectName: string(n.ProjectName()),
		UserID:      n.UserID(),
	}
}

func (p *NotificationPO) ToDomain() *notification.Notification {
	return notification.RebuildFromDTO(notification.ReconstructionDTO{
		ID:          p.ID,
		Title:       p.Title,
		Message:     p.Message,
		CreatedDate: p.CreatedDate,
		ViewedDate:  p.ViewedDate,
		Viewed:      p.Viewed,
		Type:        p.Type,
		ProjectName: p.ProjectName,
		UserID:      p.UserID,
	})
}
