package po

import (
	"time"

	"greencity/domain/user"
)

// UserPO maps the users table. Users are owned by the user service; this
// service only reads them.
type UserPO struct {
	ID                 int64   `gorm:"primaryKey;autoIncrement"`
	Name               string  `gorm:"size:100;not null;index"`
	FirstName          string  `gorm:"size:100"`
	Email              string  `gorm:"size:255;uniqueIndex;not null"`
	Role               string  `gorm:"size:32;not null;default:ROLE_USER"`
	City               string  `gorm:"size:100;index"`
	Rating             float64 `gorm:"not null;default:0"`
	ProfilePicturePath string  `gorm:"size:512"`
	UserCredo          string  `gorm:"size:512"`
	LastActivityTime   *time.Time
}

func (UserPO) TableName() string {
	return "users"
}

func (po *UserPO) ToDomain() *user.User {
	return user.RebuildFromDTO(user.ReconstructionDTO{
		ID:                 po.ID,
		Name:               po.Name,
		FirstName:          po.FirstName,
		Email:              po.Email,
		Role:               po.Role,
		City:               po.City,
		Rating:             po.Rating,
		ProfilePicturePath: po.ProfilePicturePath,
		UserCredo:          po.UserCredo,
		LastActivityTime:   po.LastActivityTime,
	})
}

func UsersToDomain(pos []UserPO) []*user.User {
	users := make([]*user.User, len(pos))
	for i := range pos {
		users[i] = pos[i].ToDomain()
	}
	return users
}

// HabitAssignPO maps habit_assign: which habits a user has taken up.
type HabitAssignPO struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	UserID  int64  `gorm:"not null;index"`
	HabitID int64  `gorm:"not null;index"`
	Status  string `gorm:"size:32;not null"`
}

func (HabitAssignPO) TableName() string {
	return "habit_assign"
}

// EcoNewsPO maps eco_news; only the author is read.
type EcoNewsPO struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	AuthorID     int64     `gorm:"not null;index"`
	Title        string    `gorm:"size:255"`
	CreationDate time.Time `gorm:"autoCreateTime"`
}

func (EcoNewsPO) TableName() string {
	return "eco_news"
}
