package model

import (
	"time"

	"gorm.io/gorm"
)

// LearningSession is an append-only record of one study sitting. Duration is
// derived from start/end on save.
type LearningSession struct {
	BaseModel
	UserID   uint `gorm:"index:idx_session_user_date;type:bigint unsigned;not null" json:"userId"`
	CourseID uint `gorm:"index;type:bigint unsigned;not null" json:"courseId"`

	SessionDate time.Time  `gorm:"index:idx_session_user_date" json:"sessionDate"`
	StartTime   time.Time  `gorm:"not null" json:"startTime"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	Duration    int        `gorm:"default:0" json:"duration"` // minutes

	ModuleIndex *int `json:"moduleIndex,omitempty"`

	IsActive       bool   `gorm:"default:true" json:"isActive"`
	SessionQuality string `gorm:"size:20" json:"sessionQuality,omitempty"` // poor, fair, good, excellent
	SessionNotes   string `gorm:"type:text" json:"sessionNotes,omitempty"`
	DeviceType     string `gorm:"size:20;default:'desktop'" json:"deviceType"`
	IPAddress      string `gorm:"size:45" json:"-"`
	UserAgent      string `gorm:"size:255" json:"-"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (LearningSession) TableName() string {
	return "learning_sessions"
}

func (s *LearningSession) BeforeSave(tx *gorm.DB) error {
	if s.EndTime != nil {
		s.Duration = int(s.EndTime.Sub(s.StartTime).Round(time.Minute) / time.Minute)
		if s.Duration < 0 {
			s.Duration = 0
		}
	}
	return nil
}
