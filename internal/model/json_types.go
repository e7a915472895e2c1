package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// JSON column helpers. MySQL json columns scan as []byte; the typed slices
// below keep the call sites free of json.RawMessage plumbing.

func scanJSON(src interface{}, dst interface{}) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported json column source %T", src)
	}
}

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// SyllabusModule is one ordered unit of a course syllabus. The slice length is
// the denominator for completion percentage.
type SyllabusModule struct {
	ModuleTitle    string   `json:"moduleTitle"`
	Topics         []string `json:"topics"`
	EstimatedHours float64  `json:"estimatedHours"`
}

type Syllabus []SyllabusModule

func (s Syllabus) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *Syllabus) Scan(src interface{}) error {
	return scanJSON(src, s)
}

var ErrInvalidJSONColumn = errors.New("invalid json column payload")
