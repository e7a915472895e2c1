package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type AssignmentType string

const (
	AssignmentQuiz     AssignmentType = "quiz"
	AssignmentHomework AssignmentType = "assignment"
	AssignmentProject  AssignmentType = "project"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionShortAnswer    QuestionType = "short-answer"
	QuestionEssay          QuestionType = "essay"
)

type Question struct {
	Question      string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer,omitempty"`
	Points        float64      `json:"points"`
	Explanation   string       `json:"explanation,omitempty"`
}

type Questions []Question

func (q Questions) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	b, err := json.Marshal(q)
	return string(b), err
}

func (q *Questions) Scan(src interface{}) error {
	return scanJSON(src, q)
}

type RubricCriterion struct {
	Criterion   string  `json:"criterion"`
	MaxPoints   float64 `json:"maxPoints"`
	Description string  `json:"description,omitempty"`
}

type Rubric []RubricCriterion

func (r Rubric) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal(r)
	return string(b), err
}

func (r *Rubric) Scan(src interface{}) error {
	return scanJSON(src, r)
}

type Assignment struct {
	BaseModel
	CourseID    uint           `gorm:"index;type:bigint unsigned;not null" json:"courseId"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Type        AssignmentType `gorm:"size:20;not null" json:"type"`
	ModuleIndex int            `gorm:"default:0" json:"moduleIndex"`

	DueDate      *time.Time `json:"dueDate,omitempty"`
	MaxAttempts  int        `gorm:"default:1" json:"maxAttempts"`
	TimeLimit    *int       `json:"timeLimit,omitempty"` // minutes
	TotalPoints  float64    `gorm:"not null" json:"totalPoints"`
	PassingScore float64    `gorm:"not null" json:"passingScore"` // percentage
	Instructions string     `gorm:"type:text" json:"instructions,omitempty"`

	// Quiz questions carry the answer key; stripped for students that have not
	// been graded yet when ShowCorrectAnswers is off.
	Questions Questions `gorm:"type:json" json:"questions"`
	Rubric    Rubric    `gorm:"type:json" json:"rubric"`

	Weight float64 `gorm:"default:1" json:"weight"`

	IsActive           bool `gorm:"default:true;index" json:"isActive"`
	AutoGrade          bool `gorm:"default:false" json:"autoGrade"`
	ShowCorrectAnswers bool `gorm:"default:true" json:"showCorrectAnswers"`
	ShuffleQuestions   bool `gorm:"default:false" json:"shuffleQuestions"`

	CreatedBy uint `gorm:"type:bigint unsigned;not null" json:"createdBy"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}
