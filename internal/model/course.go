package model

type Course struct {
	BaseModel
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Category    string `gorm:"size:50;index;not null" json:"category"`
	Difficulty  string `gorm:"size:20;index;not null" json:"difficulty"` // Beginner, Intermediate, Advanced

	// Instructor snapshot, denormalized for listing without a join.
	InstructorID    uint   `gorm:"index;type:bigint unsigned;not null" json:"instructorId"`
	InstructorName  string `gorm:"size:100;not null" json:"instructorName"`
	InstructorEmail string `gorm:"size:100;not null" json:"instructorEmail"`

	DurationWeeks           int     `gorm:"default:0" json:"durationWeeks"`
	HoursPerWeek            float64 `gorm:"default:0" json:"hoursPerWeek"`
	EstimatedCompletionTime float64 `gorm:"default:0" json:"estimatedCompletionTime"` // hours

	Prerequisites      StringList `gorm:"type:json" json:"prerequisites"`
	LearningObjectives StringList `gorm:"type:json" json:"learningObjectives"`
	Syllabus           Syllabus   `gorm:"type:json" json:"syllabus"`

	IsActive        bool    `gorm:"default:true;index" json:"isActive"`
	EnrollmentCount int     `gorm:"default:0" json:"enrollmentCount"`
	Rating          float64 `gorm:"default:0" json:"rating"`
	RatingCount     int     `gorm:"default:0" json:"ratingCount"`

	// Filled for authenticated callers on the detail endpoint, never persisted.
	Progress *LearningProgress `gorm:"-" json:"progress,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
