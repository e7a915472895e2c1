package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AchievementType string

const (
	AchievementFirstCourse      AchievementType = "first_course"
	AchievementCourseCompletion AchievementType = "course_completion"
	AchievementStreak           AchievementType = "streak"
	AchievementTimeMilestone    AchievementType = "time_milestone"
	AchievementGradeExcellence  AchievementType = "grade_excellence"
	AchievementSkillMastery     AchievementType = "skill_mastery"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Criteria is the variant payload of an achievement: only the field matching
// the achievement type is set.
type Criteria struct {
	StreakDays       int     `json:"streakDays,omitempty"`
	HoursLearned     int     `json:"hoursLearned,omitempty"`
	CourseGrade      float64 `json:"courseGrade,omitempty"`
	SkillName        string  `json:"skillName,omitempty"`
	CoursesCompleted int     `json:"coursesCompleted,omitempty"`
}

func (c Criteria) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	return string(b), err
}

func (c *Criteria) Scan(src interface{}) error {
	return scanJSON(src, c)
}

// Key reduces the variant to the single discriminating value used in the
// dedup index. Types whose identity is (user, type, course) alone key to "".
func (c Criteria) Key(t AchievementType) string {
	switch t {
	case AchievementStreak:
		return fmt.Sprintf("streak:%d", c.StreakDays)
	case AchievementTimeMilestone:
		return fmt.Sprintf("hours:%d", c.HoursLearned)
	case AchievementCourseCompletion:
		if c.CoursesCompleted > 0 {
			return fmt.Sprintf("courses:%d", c.CoursesCompleted)
		}
		return ""
	case AchievementSkillMastery:
		return "skill:" + c.SkillName
	default:
		return ""
	}
}

type Certificate struct {
	CertificateID    string     `json:"certificateId,omitempty"`
	CertificateURL   string     `json:"certificateUrl,omitempty"`
	IssueDate        *time.Time `json:"issueDate,omitempty"`
	ExpiryDate       *time.Time `json:"expiryDate,omitempty"`
	VerificationCode string     `json:"verificationCode,omitempty"`
}

func (c Certificate) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	return string(b), err
}

func (c *Certificate) Scan(src interface{}) error {
	return scanJSON(src, c)
}

// Achievement is immutable once unlocked except for SharedAt. The composite
// unique index is the storage-layer backstop for the check-then-insert dedup
// in the rule engine.
type Achievement struct {
	BaseModel
	UserID uint            `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_achievement_identity" json:"userId"`
	Type   AchievementType `gorm:"size:30;not null;uniqueIndex:idx_achievement_identity" json:"type"`

	// 0 for achievements not tied to a course.
	CourseID uint `gorm:"type:bigint unsigned;default:0;uniqueIndex:idx_achievement_identity" json:"courseId,omitempty"`

	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"size:255;not null" json:"description"`
	Icon        string `gorm:"size:50" json:"icon,omitempty"`

	Criteria    Criteria `gorm:"type:json" json:"criteria"`
	CriteriaKey string   `gorm:"size:100;uniqueIndex:idx_achievement_identity" json:"-"`

	UnlockedAt time.Time `gorm:"index" json:"unlockedAt"`
	IsVisible  bool      `gorm:"default:true" json:"isVisible"`

	Certificate Certificate `gorm:"type:json" json:"certificate,omitempty"`

	// Certificate lookup columns, duplicated out of the JSON payload so the
	// verify endpoint can hit an index.
	CertificateID    string `gorm:"size:64;index" json:"-"`
	VerificationCode string `gorm:"size:32" json:"-"`

	Rarity   Rarity     `gorm:"size:20;default:'common'" json:"rarity"`
	Points   int        `gorm:"default:0" json:"points"`
	ShareURL string     `gorm:"size:255" json:"shareUrl,omitempty"`
	SharedAt *time.Time `json:"sharedAt,omitempty"`

	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Course *Course `gorm:"foreignKey:CourseID;references:ID" json:"course,omitempty"`
}

func (Achievement) TableName() string {
	return "achievements"
}

func (a *Achievement) BeforeCreate(tx *gorm.DB) error {
	if a.CriteriaKey == "" {
		a.CriteriaKey = a.Criteria.Key(a.Type)
	}
	if a.UnlockedAt.IsZero() {
		a.UnlockedAt = time.Now()
	}
	return nil
}
