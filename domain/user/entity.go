package user

import (
	"time"
)

// Role mirrors the role names issued by the user service.
type Role string

const (
	RoleUser      Role = "ROLE_USER"
	RoleAdmin     Role = "ROLE_ADMIN"
	RoleModerator Role = "ROLE_MODERATOR"
)

// OnlineWindow is how recent the last activity must be for a user to count as online.
const OnlineWindow = 5 * time.Minute

// User is the read model of a GreenCity user. The user service owns the
// table; this service never writes it.
type User struct {
	id                 int64
	name               string
	firstName          string
	email              string
	role               Role
	city               string
	rating             float64
	profilePicturePath string
	userCredo          string
	lastActivityTime   *time.Time
}

func (u *User) ID() int64                  { return u.id }
func (u *User) Name() string               { return u.name }
func (u *User) FirstName() string          { return u.firstName }
func (u *User) Email() string              { return u.email }
func (u *User) Role() Role                 { return u.role }
func (u *User) City() string               { return u.city }
func (u *User) Rating() float64            { return u.rating }
func (u *User) ProfilePicturePath() string { return u.profilePicturePath }
func (u *User) UserCredo() string          { return u.userCredo }
func (u *User) LastActivityTime() *time.Time {
	return u.lastActivityTime
}

func (u *User) IsAdmin() bool {
	return u.role == RoleAdmin
}

// IsOnline reports whether the user was active within OnlineWindow of now.
func (u *User) IsOnline(now time.Time) bool {
	if u.lastActivityTime == nil {
		return false
	}
	return now.Sub(*u.lastActivityTime) <= OnlineWindow
}

// ReconstructionDTO 仅限仓储层使用，用于从存储重建 User
type ReconstructionDTO struct {
	ID                 int64
	Name               string
	FirstName          string
	Email              string
	Role               string
	City               string
	Rating             float64
	ProfilePicturePath string
	UserCredo          string
	LastActivityTime   *time.Time
}

// RebuildFromDTO 从 DTO 重建 User
func RebuildFromDTO(dto ReconstructionDTO) *User {
	return &User{
		id:                 dto.ID,
		name:               dto.Name,
		firstName:          dto.FirstName,
		email:              dto.Email,
		role:               Role(dto.Role),
		city:               dto.City,
		rating:             dto.Rating,
		profilePicturePath: dto.ProfilePicturePath,
		userCredo:          dto.UserCredo,
		lastActivityTime:   dto.LastActivityTime,
	}
}
