package calculator

import (
	"math"
	"testing"

	"learnhub_backend/internal/model"
)

func quizQuestions() []model.Question {
	return []model.Question{
		{Question: "2+2?", Type: model.QuestionMultipleChoice, CorrectAnswer: "4", Points: 10},
		{Question: "Go is compiled", Type: model.QuestionTrueFalse, CorrectAnswer: "true", Points: 5},
		{Question: "Capital of France", Type: model.QuestionShortAnswer, CorrectAnswer: "Paris", Points: 10},
		{Question: "Explain interfaces", Type: model.QuestionEssay, Points: 25},
	}
}

func TestScoreQuiz_CaseInsensitiveMatch(t *testing.T) {
	answers := []model.Answer{
		{QuestionIndex: 0, Answer: " 4 "},
		{QuestionIndex: 1, Answer: "TRUE"},
		{QuestionIndex: 2, Answer: "paris"},
	}

	res := ScoreQuiz(quizQuestions(), answers)

	if res.Score != 25 {
		t.Errorf("expected score 25, got %v", res.Score)
	}
	if res.CorrectAnswers != 3 {
		t.Errorf("expected 3 correct answers, got %d", res.CorrectAnswers)
	}
	// MaxScore only accumulates over answered questions.
	if res.MaxScore != 25 {
		t.Errorf("expected max score 25, got %v", res.MaxScore)
	}
	if res.Percentage != 100 {
		t.Errorf("expected 100%%, got %d", res.Percentage)
	}
}

func TestScoreQuiz_ShortAnswerSubstring(t *testing.T) {
	questions := []model.Question{
		{Question: "Capital of France", Type: model.QuestionShortAnswer, CorrectAnswer: "Paris", Points: 10},
	}

	cases := []struct {
		answer  string
		correct bool
	}{
		{"Paris", true},
		{"paris, france", true}, // answer contains the key
		{"par", true},           // key contains the answer
		{"london", false},
	}

	for _, c := range cases {
		res := ScoreQuiz(questions, []model.Answer{{Answer: c.answer}})
		got := res.CorrectAnswers == 1
		if got != c.correct {
			t.Errorf("answer %q: expected correct=%v, got %v", c.answer, c.correct, got)
		}
	}
}

func TestScoreQuiz_EssayNeverAutoGraded(t *testing.T) {
	questions := []model.Question{
		{Question: "Explain interfaces", Type: model.QuestionEssay, Points: 25},
	}

	res := ScoreQuiz(questions, []model.Answer{{Answer: "a brilliant essay"}})

	if res.Score != 0 {
		t.Errorf("essay must not earn points automatically, got %v", res.Score)
	}
	if !res.GradedAnswers[0].RequiresManual {
		t.Error("essay answer should be flagged for manual grading")
	}
}

func TestScoreQuiz_Empty(t *testing.T) {
	if res := ScoreQuiz(nil, nil); res.Score != 0 || res.MaxScore != 0 {
		t.Errorf("expected zero result, got %+v", res)
	}
}

func TestScoreQuiz_ExtraAnswerIgnored(t *testing.T) {
	questions := []model.Question{
		{Type: model.QuestionMultipleChoice, CorrectAnswer: "a", Points: 10},
	}
	answers := []model.Answer{
		{Answer: "a"},
		{Answer: "stray"},
	}

	res := ScoreQuiz(questions, answers)
	if res.Score != 10 || res.MaxScore != 10 {
		t.Errorf("expected 10/10, got %v/%v", res.Score, res.MaxScore)
	}
}

func TestLetterGradeBoundaries(t *testing.T) {
	cases := []struct {
		pct    float64
		letter string
	}{
		{97, "A+"},
		{96.9, "A"},
		{93, "A"},
		{92.9, "A-"},
		{90, "A-"},
		{87, "B+"},
		{83, "B"},
		{80, "B-"},
		{77, "C+"},
		{73, "C"},
		{70, "C-"},
		{67, "D+"},
		{63, "D"},
		{60, "D-"},
		{59.9, "F"},
		{0, "F"},
	}

	for _, c := range cases {
		if got := LetterGrade(c.pct); got != c.letter {
			t.Errorf("LetterGrade(%v) = %q, want %q", c.pct, got, c.letter)
		}
	}
}

func TestGPABoundaries(t *testing.T) {
	cases := []struct {
		pct float64
		gpa float64
	}{
		{100, 4.0},
		{93, 4.0},
		{92.9, 3.7},
		{90, 3.7},
		{87, 3.3},
		{83, 3.0},
		{80, 2.7},
		{60, 0.7},
		{59.9, 0.0},
	}

	for _, c := range cases {
		if got := GPA(c.pct); got != c.gpa {
			t.Errorf("GPA(%v) = %v, want %v", c.pct, got, c.gpa)
		}
	}
}

func TestWeightedCourseGrade(t *testing.T) {
	assignments := []model.Assignment{
		{BaseModel: model.BaseModel{ID: 1}, Title: "Quiz 1", TotalPoints: 100, Weight: 1},
		{BaseModel: model.BaseModel{ID: 2}, Title: "Final Project", TotalPoints: 100, Weight: 2},
	}
	submissions := []model.Submission{
		{AssignmentID: 1, Status: model.SubmissionGraded, Score: 80, MaxScore: 100},
		{AssignmentID: 2, Status: model.SubmissionGraded, Score: 100, MaxScore: 100},
	}

	grade := WeightedCourseGrade(submissions, assignments)

	// (80*1 + 100*2) / 3 = 93.33
	if grade.Percentage != 93.33 {
		t.Errorf("expected 93.33, got %v", grade.Percentage)
	}
	if grade.CompletedAssignments != 2 || grade.TotalAssignments != 2 {
		t.Errorf("unexpected completion counts: %+v", grade)
	}
}

func TestWeightedCourseGrade_MissingSubmissionCountsZero(t *testing.T) {
	assignments := []model.Assignment{
		{BaseModel: model.BaseModel{ID: 1}, TotalPoints: 100, Weight: 1},
		{BaseModel: model.BaseModel{ID: 2}, TotalPoints: 100, Weight: 1},
	}
	submissions := []model.Submission{
		{AssignmentID: 1, Status: model.SubmissionGraded, Score: 100, MaxScore: 100},
	}

	grade := WeightedCourseGrade(submissions, assignments)
	if grade.Percentage != 50 {
		t.Errorf("expected 50, got %v", grade.Percentage)
	}
	if grade.CompletedAssignments != 1 {
		t.Errorf("expected 1 completed, got %d", grade.CompletedAssignments)
	}
}

func TestWeightedCourseGrade_DefaultWeight(t *testing.T) {
	assignments := []model.Assignment{
		{BaseModel: model.BaseModel{ID: 1}, TotalPoints: 50, Weight: 0},
	}
	submissions := []model.Submission{
		{AssignmentID: 1, Status: model.SubmissionGraded, Score: 25, MaxScore: 50},
	}

	grade := WeightedCourseGrade(submissions, assignments)
	if grade.TotalWeight != 1 {
		t.Errorf("zero weight should default to 1, got %v", grade.TotalWeight)
	}
	if grade.Percentage != 50 {
		t.Errorf("expected 50, got %v", grade.Percentage)
	}
}

func TestClassStatistics(t *testing.T) {
	submissions := []model.Submission{
		{Percentage: 60},
		{Percentage: 70},
		{Percentage: 80},
		{Percentage: 90},
	}

	stats := ClassStatistics(submissions)

	if stats.Mean != 75 {
		t.Errorf("expected mean 75, got %v", stats.Mean)
	}
	if stats.Median != 75 {
		t.Errorf("expected median 75, got %v", stats.Median)
	}
	if math.Abs(stats.StandardDeviation-11.18) > 0.01 {
		t.Errorf("expected stddev ~11.18, got %v", stats.StandardDeviation)
	}
	if stats.Min != 60 || stats.Max != 90 {
		t.Errorf("unexpected min/max: %d/%d", stats.Min, stats.Max)
	}
	if stats.Distribution["A"] != 1 || stats.Distribution["B"] != 1 || stats.Distribution["C"] != 1 || stats.Distribution["D"] != 1 {
		t.Errorf("unexpected distribution: %v", stats.Distribution)
	}
}

func TestClassStatistics_ModeTieResolvesToGreater(t *testing.T) {
	submissions := []model.Submission{
		{Percentage: 70},
		{Percentage: 70},
		{Percentage: 90},
		{Percentage: 90},
	}

	stats := ClassStatistics(submissions)
	if stats.Mode != 90 {
		t.Errorf("tie should resolve to the greater value, got %d", stats.Mode)
	}
}

func TestClassStatistics_Empty(t *testing.T) {
	stats := ClassStatistics(nil)
	if stats.TotalSubmissions != 0 || stats.Distribution == nil {
		t.Errorf("unexpected empty stats: %+v", stats)
	}
}

func TestCompletionPercentage(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 10, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{5, 3, 100}, // clamped
		{1, 0, 0},   // no modules
	}

	for _, c := range cases {
		if got := CompletionPercentage(c.completed, c.total); got != c.want {
			t.Errorf("CompletionPercentage(%d, %d) = %d, want %d", c.completed, c.total, got, c.want)
		}
	}
}

func TestPassed_RawRatioAtBoundary(t *testing.T) {
	cases := []struct {
		name                          string
		score, maxScore, passingScore float64
		want                          bool
	}{
		// 69.5% rounds to 70 but is below the threshold.
		{"just below", 139, 200, 70, false},
		{"exactly at", 140, 200, 70, true},
		{"above", 141, 200, 70, true},
		{"zero max score", 10, 0, 70, false},
		{"full marks", 200, 200, 100, true},
	}

	for _, c := range cases {
		if got := Passed(c.score, c.maxScore, c.passingScore); got != c.want {
			t.Errorf("%s: Passed(%g, %g, %g) = %v, want %v", c.name, c.score, c.maxScore, c.passingScore, got, c.want)
		}
	}
}

func TestScoreRubric(t *testing.T) {
	scores := []model.RubricScore{
		{Criterion: "Correctness", PointsEarned: 40, MaxPoints: 50},
		{Criterion: "Style", PointsEarned: 20, MaxPoints: 25},
	}

	res := ScoreRubric(scores)
	if res.Score != 60 || res.MaxScore != 75 {
		t.Errorf("expected 60/75, got %v/%v", res.Score, res.MaxScore)
	}
	if res.Percentage != 80 {
		t.Errorf("expected 80%%, got %d", res.Percentage)
	}
}
