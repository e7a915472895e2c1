package model

import (
	"time"
)

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('student','instructor','admin');default:'student'" json:"role"`

	University string `gorm:"size:100" json:"university,omitempty"`
	Address    string `gorm:"size:255" json:"address,omitempty"`

	LearningGoals StringList `gorm:"type:json" json:"learningGoals"`
	SkillTags     StringList `gorm:"type:json" json:"skillTags"`

	PreferredLearningTime string `gorm:"size:20;default:'any'" json:"preferredLearningTime"`
	LearningPace          string `gorm:"size:20;default:'medium'" json:"learningPace"`
	NotificationsEnabled  bool   `gorm:"default:true" json:"notificationsEnabled"`

	// Derived fields, recomputed when a session ends.
	TotalLearningHours int        `gorm:"default:0" json:"totalLearningHours"`
	CurrentStreak      int        `gorm:"default:0" json:"currentStreak"`
	LongestStreak      int        `gorm:"default:0" json:"longestStreak"`
	LastLearningDate   *time.Time `json:"lastLearningDate,omitempty"`

	LastSeen time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
