package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type CompletedModule struct {
	ModuleIndex int       `json:"moduleIndex"`
	CompletedAt time.Time `json:"completedAt"`
	TimeSpent   int       `json:"timeSpent"` // minutes
}

type CompletedModules []CompletedModule

func (m CompletedModules) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func (m *CompletedModules) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// Contains reports whether moduleIndex was already recorded. Module completion
// is idempotent per index.
func (m CompletedModules) Contains(moduleIndex int) bool {
	for _, cm := range m {
		if cm.ModuleIndex == moduleIndex {
			return true
		}
	}
	return false
}

type Bookmark struct {
	ID          string    `json:"id"`
	ModuleIndex int       `json:"moduleIndex"`
	Topic       string    `json:"topic"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Bookmarks []Bookmark

func (b Bookmarks) Value() (driver.Value, error) {
	if b == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(b)
	return string(raw), err
}

func (b *Bookmarks) Scan(src interface{}) error {
	return scanJSON(src, b)
}

// LearningProgress is the enrollment record, one row per (user, course).
type LearningProgress struct {
	BaseModel
	UserID   uint `gorm:"index;type:bigint unsigned;not null;uniqueIndex:idx_progress_user_course" json:"userId"`
	CourseID uint `gorm:"index;type:bigint unsigned;not null;uniqueIndex:idx_progress_user_course" json:"courseId"`

	EnrollmentDate       time.Time        `json:"enrollmentDate"`
	CompletionPercentage int              `gorm:"default:0" json:"completionPercentage"` // 0-100
	CurrentModule        int              `gorm:"default:0" json:"currentModule"`
	ModulesCompleted     CompletedModules `gorm:"type:json" json:"modulesCompleted"`
	TotalTimeSpent       int              `gorm:"default:0" json:"totalTimeSpent"` // minutes
	LastAccessDate       time.Time        `json:"lastAccessDate"`

	IsCompleted    bool       `gorm:"default:false;index" json:"isCompleted"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`
	Grade          *float64   `json:"grade,omitempty"` // 0-100

	CertificateIssued bool   `gorm:"default:false" json:"certificateIssued"`
	CertificateID     string `gorm:"size:64" json:"certificateId,omitempty"`

	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	Bookmarks Bookmarks `gorm:"type:json" json:"bookmarks"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (LearningProgress) TableName() string {
	return "learning_progress"
}
