package sqlstore

import (
	"time"

	"github.com/synchub/attendance/internal/core/domain"
)

type officerModel struct {
	ID         uint   `gorm:"primaryKey"`
	Identifier string `gorm:"size:50;uniqueIndex;not null"`
	Name       string `gorm:"size:100;not null"`
	Position   string `gorm:"size:100"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (officerModel) TableName() string { return "officers" }

type timeLogModel struct {
	ID        uint   `gorm:"primaryKey"`
	OfficerID uint   `gorm:"not null;index"`
	Date      string `gorm:"type:varchar(10);not null;index"`
	TimeIn    *time.Time
	TimeOut   *time.Time

	Officer officerModel `gorm:"foreignKey:OfficerID;constraint:OnDelete:CASCADE"`
}

func (timeLogModel) TableName() string { return "time_logs" }

type groupModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:150;uniqueIndex;not null"`
}

func (groupModel) TableName() string { return "auth_groups" }

type userModel struct {
	ID            uint   `gorm:"primaryKey"`
	StudentNumber string `gorm:"size:50;uniqueIndex;not null"`
	FirstName     string `gorm:"size:150"`
	LastName      string `gorm:"size:150"`
	Email         string `gorm:"size:254"`
	PasswordHash  string `gorm:"size:255;not null"`
	IsSuperuser   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Groups []groupModel `gorm:"many2many:user_groups"`
}

func (userModel) TableName() string { return "users" }

type itemModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"type:text"`
	Quantity    uint
	Location    string `gorm:"size:100"`
	DateAdded   time.Time
}

func (itemModel) TableName() string { return "items" }

type profileModel struct {
	UserID               uint   `gorm:"primaryKey;autoIncrement:false"`
	Bio                  string `gorm:"type:text"`
	Theme                string `gorm:"size:10;default:light"`
	NotificationsEnabled bool

	User userModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (profileModel) TableName() string { return "profiles" }

func (m officerModel) toDomain() domain.Identity {
	return domain.Identity{
		ID:         m.ID,
		Identifier: m.Identifier,
		Name:       m.Name,
		Position:   m.Position,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (m timeLogModel) toDomain() domain.AttendanceEvent {
	return domain.AttendanceEvent{
		ID:         m.ID,
		IdentityID: m.OfficerID,
		Identifier: m.Officer.Identifier,
		Name:       m.Officer.Name,
		Date:       m.Date,
		TimeIn:     m.TimeIn,
		TimeOut:    m.TimeOut,
	}
}

func (m userModel) toDomain() *domain.User {
	groups := make([]string, 0, len(m.Groups))
	for _, g := range m.Groups {
		groups = append(groups, g.Name)
	}
	return &domain.User{
		ID:            m.ID,
		StudentNumber: m.StudentNumber,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		IsSuperuser:   m.IsSuperuser,
		Groups:        groups,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (m itemModel) toDomain() domain.Item {
	return domain.Item{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Quantity:    m.Quantity,
		Location:    m.Location,
		DateAdded:   m.DateAdded,
	}
}
