package calculator

import (
	"math"
	"sort"
	"strings"

	"learnhub_backend/internal/model"
)

// GradedAnswer is one quiz answer after scoring.
type GradedAnswer struct {
	QuestionIndex  int                `json:"questionIndex"`
	Answer         string             `json:"answer"`
	IsCorrect      bool               `json:"isCorrect"`
	PointsEarned   float64            `json:"pointsEarned"`
	MaxPoints      float64            `json:"maxPoints"`
	QuestionType   model.QuestionType `json:"questionType"`
	RequiresManual bool               `json:"requiresManual,omitempty"`
}

type QuizResult struct {
	Score          float64        `json:"score"`
	MaxScore       float64        `json:"maxScore"`
	Percentage     int            `json:"percentage"`
	CorrectAnswers int            `json:"correctAnswers"`
	TotalQuestions int            `json:"totalQuestions"`
	GradedAnswers  []GradedAnswer `json:"gradedAnswers"`
}

// ScoreQuiz grades answers against the question list by index. Choice and
// true/false questions need a case-insensitive trimmed exact match,
// short answers also accept a substring match in either direction, and essays
// are never auto-graded. An answer with no matching question earns nothing.
func ScoreQuiz(questions []model.Question, answers []model.Answer) QuizResult {
	if len(questions) == 0 || len(answers) == 0 {
		return QuizResult{}
	}

	res := QuizResult{TotalQuestions: len(questions)}
	res.GradedAnswers = make([]GradedAnswer, 0, len(answers))

	for i, ans := range answers {
		if i >= len(questions) {
			res.GradedAnswers = append(res.GradedAnswers, GradedAnswer{
				QuestionIndex: i,
				Answer:        ans.Answer,
			})
			continue
		}

		q := questions[i]
		res.MaxScore += q.Points

		graded := GradedAnswer{
			QuestionIndex: i,
			Answer:        ans.Answer,
			MaxPoints:     q.Points,
			QuestionType:  q.Type,
		}

		switch q.Type {
		case model.QuestionMultipleChoice, model.QuestionTrueFalse:
			graded.IsCorrect = q.CorrectAnswer != "" && normalize(ans.Answer) == normalize(q.CorrectAnswer)
		case model.QuestionShortAnswer:
			if q.CorrectAnswer != "" {
				user, correct := normalize(ans.Answer), normalize(q.CorrectAnswer)
				graded.IsCorrect = user == correct ||
					strings.Contains(user, correct) ||
					strings.Contains(correct, user)
			}
		case model.QuestionEssay:
			graded.RequiresManual = true
		}

		if graded.IsCorrect {
			graded.PointsEarned = q.Points
			res.CorrectAnswers++
		}
		res.Score += graded.PointsEarned
		res.GradedAnswers = append(res.GradedAnswers, graded)
	}

	res.Percentage = roundPercentage(res.Score, res.MaxScore)
	return res
}

type RubricResult struct {
	Score      float64             `json:"score"`
	MaxScore   float64             `json:"maxScore"`
	Percentage int                 `json:"percentage"`
	Breakdown  []model.RubricScore `json:"breakdown,omitempty"`
}

// ScoreRubric totals earned and maximum points across rubric entries.
func ScoreRubric(scores []model.RubricScore) RubricResult {
	if len(scores) == 0 {
		return RubricResult{}
	}

	res := RubricResult{Breakdown: scores}
	for _, s := range scores {
		res.Score += s.PointsEarned
		res.MaxScore += s.MaxPoints
	}
	res.Percentage = roundPercentage(res.Score, res.MaxScore)
	return res
}

type AssignmentGrade struct {
	AssignmentID  uint    `json:"assignmentId"`
	Title         string  `json:"title"`
	Score         float64 `json:"score"`
	MaxScore      float64 `json:"maxScore"`
	Percentage    int     `json:"percentage"`
	Weight        float64 `json:"weight"`
	WeightedScore float64 `json:"weightedScore"`
	Completed     bool    `json:"completed"`
}

type WeightedGrade struct {
	WeightedScore        float64           `json:"weightedScore"`
	TotalWeight          float64           `json:"totalWeight"`
	Percentage           float64           `json:"percentage"`
	Breakdown            []AssignmentGrade `json:"breakdown"`
	CompletedAssignments int               `json:"completedAssignments"`
	TotalAssignments     int               `json:"totalAssignments"`
}

// WeightedCourseGrade folds graded submissions into a weighted percentage.
// An assignment without a graded submission counts as zero over its full
// point value. Weight defaults to 1.
func WeightedCourseGrade(submissions []model.Submission, assignments []model.Assignment) WeightedGrade {
	if len(assignments) == 0 {
		return WeightedGrade{}
	}

	graded := make(map[uint]*model.Submission, len(submissions))
	for i := range submissions {
		s := &submissions[i]
		if s.Status == model.SubmissionGraded {
			graded[s.AssignmentID] = s
		}
	}

	res := WeightedGrade{TotalAssignments: len(assignments)}
	for _, a := range assignments {
		weight := a.Weight
		if weight <= 0 {
			weight = 1
		}
		res.TotalWeight += weight

		entry := AssignmentGrade{
			AssignmentID: a.ID,
			Title:        a.Title,
			MaxScore:     a.TotalPoints,
			Weight:       weight,
		}

		if sub, ok := graded[a.ID]; ok && sub.MaxScore > 0 {
			pct := sub.Score / sub.MaxScore * 100
			entry.Score = sub.Score
			entry.MaxScore = sub.MaxScore
			entry.Percentage = int(math.Round(pct))
			entry.WeightedScore = round2(pct * weight)
			entry.Completed = true
			res.WeightedScore += pct * weight
			res.CompletedAssignments++
		}
		res.Breakdown = append(res.Breakdown, entry)
	}

	res.WeightedScore = round2(res.WeightedScore)
	if res.TotalWeight > 0 {
		res.Percentage = round2(res.WeightedScore / res.TotalWeight)
	}
	return res
}

// LetterGrade maps a percentage onto the fixed letter scale.
func LetterGrade(percentage float64) string {
	switch {
	case percentage >= 97:
		return "A+"
	case percentage >= 93:
		return "A"
	case percentage >= 90:
		return "A-"
	case percentage >= 87:
		return "B+"
	case percentage >= 83:
		return "B"
	case percentage >= 80:
		return "B-"
	case percentage >= 77:
		return "C+"
	case percentage >= 73:
		return "C"
	case percentage >= 70:
		return "C-"
	case percentage >= 67:
		return "D+"
	case percentage >= 63:
		return "D"
	case percentage >= 60:
		return "D-"
	default:
		return "F"
	}
}

// GPA maps a percentage onto the 4.0 scale.
func GPA(percentage float64) float64 {
	switch {
	case percentage >= 93:
		return 4.0
	case percentage >= 90:
		return 3.7
	case percentage >= 87:
		return 3.3
	case percentage >= 83:
		return 3.0
	case percentage >= 80:
		return 2.7
	case percentage >= 77:
		return 2.3
	case percentage >= 73:
		return 2.0
	case percentage >= 70:
		return 1.7
	case percentage >= 67:
		return 1.3
	case percentage >= 63:
		return 1.0
	case percentage >= 60:
		return 0.7
	default:
		return 0.0
	}
}

type ClassStats struct {
	Mean              float64        `json:"mean"`
	Median            float64        `json:"median"`
	Mode              int            `json:"mode"`
	StandardDeviation float64        `json:"standardDeviation"`
	Min               int            `json:"min"`
	Max               int            `json:"max"`
	Distribution      map[string]int `json:"distribution"`
	TotalSubmissions  int            `json:"totalSubmissions"`
}

// ClassStatistics summarizes submission percentages for an instructor view.
// Standard deviation uses the population formula. Mode ties resolve to the
// greater percentage value.
func ClassStatistics(submissions []model.Submission) ClassStats {
	if len(submissions) == 0 {
		return ClassStats{Distribution: map[string]int{}}
	}

	scores := make([]int, len(submissions))
	for i, s := range submissions {
		scores[i] = s.Percentage
	}
	sort.Ints(scores)

	n := len(scores)
	sum := 0
	for _, s := range scores {
		sum += s
	}
	mean := float64(sum) / float64(n)

	var median float64
	if n%2 == 0 {
		median = float64(scores[n/2-1]+scores[n/2]) / 2
	} else {
		median = float64(scores[n/2])
	}

	freq := make(map[int]int, n)
	for _, s := range scores {
		freq[s]++
	}
	mode := scores[0]
	for value, count := range freq {
		if count > freq[mode] || (count == freq[mode] && value > mode) {
			mode = value
		}
	}

	var variance float64
	for _, s := range scores {
		d := float64(s) - mean
		variance += d * d
	}
	variance /= float64(n)

	dist := map[string]int{"A": 0, "B": 0, "C": 0, "D": 0, "F": 0}
	for _, s := range scores {
		switch {
		case s >= 90:
			dist["A"]++
		case s >= 80:
			dist["B"]++
		case s >= 70:
			dist["C"]++
		case s >= 60:
			dist["D"]++
		default:
			dist["F"]++
		}
	}

	return ClassStats{
		Mean:              round2(mean),
		Median:            round2(median),
		Mode:              mode,
		StandardDeviation: round2(math.Sqrt(variance)),
		Min:               scores[0],
		Max:               scores[n-1],
		Distribution:      dist,
		TotalSubmissions:  n,
	}
}

// Passed reports whether a raw score meets the passing threshold given as a
// percentage of the maximum score. The comparison uses the raw ratio so that
// rounding never flips a result on the boundary.
func Passed(score, maxScore, passingPercent float64) bool {
	if maxScore <= 0 {
		return false
	}
	return score/maxScore*100 >= passingPercent
}

// CompletionPercentage is the enrollment completion ratio, rounded and
// clamped to [0,100].
func CompletionPercentage(completedModules, totalModules int) int {
	if totalModules <= 0 {
		return 0
	}
	pct := int(math.Round(float64(completedModules) / float64(totalModules) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func roundPercentage(score, maxScore float64) int {
	if maxScore <= 0 {
		return 0
	}
	return int(math.Round(score / maxScore * 100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
