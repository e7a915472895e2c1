package model

import (
	"database/sql/driver"
	"encoding/json"
	"math"
	"time"

	"gorm.io/gorm"
)

type SubmissionStatus string

const (
	SubmissionDraft     SubmissionStatus = "draft"
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
)

type Answer struct {
	QuestionIndex int     `json:"questionIndex"`
	Answer        string  `json:"answer"`
	IsCorrect     bool    `json:"isCorrect"`
	PointsEarned  float64 `json:"pointsEarned"`
}

type Answers []Answer

func (a Answers) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	return string(b), err
}

func (a *Answers) Scan(src interface{}) error {
	return scanJSON(src, a)
}

type RubricScore struct {
	Criterion    string  `json:"criterion"`
	PointsEarned float64 `json:"pointsEarned"`
	MaxPoints    float64 `json:"maxPoints"`
	Feedback     string  `json:"feedback,omitempty"`
}

type RubricScores []RubricScore

func (r RubricScores) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal(r)
	return string(b), err
}

func (r *RubricScores) Scan(src interface{}) error {
	return scanJSON(src, r)
}

type Submission struct {
	BaseModel
	AssignmentID uint `gorm:"index;type:bigint unsigned;not null;uniqueIndex:idx_submission_attempt" json:"assignmentId"`
	UserID       uint `gorm:"index;type:bigint unsigned;not null;uniqueIndex:idx_submission_attempt" json:"userId"`
	AttemptNumber int `gorm:"not null;default:1;uniqueIndex:idx_submission_attempt" json:"attemptNumber"`

	Status      SubmissionStatus `gorm:"size:20;default:'draft';index" json:"status"`
	SubmittedAt *time.Time       `json:"submittedAt,omitempty"`
	GradedAt    *time.Time       `json:"gradedAt,omitempty"`
	GradedBy    *uint            `gorm:"type:bigint unsigned" json:"gradedBy,omitempty"`

	Answers Answers `gorm:"type:json" json:"answers"`
	Content string  `gorm:"type:text" json:"content,omitempty"`

	Score        float64      `gorm:"default:0" json:"score"`
	MaxScore     float64      `gorm:"not null" json:"maxScore"`
	Percentage   int          `gorm:"default:0" json:"percentage"`
	Passed       bool         `gorm:"default:false" json:"passed"`
	Feedback     string       `gorm:"type:text" json:"feedback,omitempty"`
	RubricScores RubricScores `gorm:"type:json" json:"rubricScores"`

	TimeSpent int       `gorm:"default:0" json:"timeSpent"` // minutes
	StartedAt time.Time `json:"startedAt"`

	User       *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Assignment *Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

// Percentage is recomputed on every save so a manual grade can never leave it
// stale.
func (s *Submission) BeforeSave(tx *gorm.DB) error {
	if s.MaxScore > 0 {
		s.Percentage = int(math.Round(s.Score / s.MaxScore * 100))
	} else {
		s.Percentage = 0
	}
	return nil
}
