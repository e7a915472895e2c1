package model

import "time"

// Task is a personal learning task, independent of course enrollment.
type Task struct {
	BaseModel
	UserID      uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Completed   bool   `gorm:"default:false" json:"completed"`
	Deadline    *time.Time `json:"deadline,omitempty"`

	Category      string     `gorm:"size:50;default:'General';index" json:"category"`
	Difficulty    string     `gorm:"size:20;default:'Beginner'" json:"difficulty"`
	Progress      int        `gorm:"default:0" json:"progress"` // 0-100
	TimeSpent     int        `gorm:"default:0" json:"timeSpent"` // minutes
	EstimatedTime int        `gorm:"default:60" json:"estimatedTime"`
	Resources     StringList `gorm:"type:json" json:"resources"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	SkillsLearned StringList `gorm:"type:json" json:"skillsLearned"`
	LastStudied   time.Time  `json:"lastStudied"`
}

func (Task) TableName() string {
	return "tasks"
}
