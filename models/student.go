package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// SubjectMark is a single subject result inside the subject_marks column.
type SubjectMark struct {
	Name  string      `json:"name"`
	Score json.Number `json:"score"`
	Grade string      `json:"grade"`
}

// SubjectMarks is the subject_marks column exactly as stored. It is
// returned to callers unmodified.
type SubjectMarks json.RawMessage

func (m *SubjectMarks) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = SubjectMarks("{}")
		return nil
	case []byte:
		raw = append([]byte(nil), v...)
	case string:
		raw = []byte(v)
	default:
		return errors.Errorf("subject_marks: unsupported type %T", src)
	}
	if len(raw) == 0 {
		*m = SubjectMarks("{}")
		return nil
	}
	if !json.Valid(raw) {
		return errors.New("subject_marks: invalid JSON")
	}
	*m = raw
	return nil
}

func (m SubjectMarks) Value() (driver.Value, error) {
	if len(m) == 0 {
		return []byte("{}"), nil
	}
	return []byte(m), nil
}

func (m SubjectMarks) MarshalJSON() ([]byte, error) {
	if len(m) == 0 {
		return []byte("{}"), nil
	}
	return m, nil
}

func (m *SubjectMarks) UnmarshalJSON(b []byte) error {
	*m = append(SubjectMarks(nil), b...)
	return nil
}

// Subjects decodes the marks by subject code. Entries without the usual
// name/score/grade shape are left out.
func (m SubjectMarks) Subjects() map[string]SubjectMark {
	out := map[string]SubjectMark{}
	var entries map[string]json.RawMessage
	if len(m) == 0 || json.Unmarshal(m, &entries) != nil {
		return out
	}
	for code, raw := range entries {
		var s SubjectMark
		if err := json.Unmarshal(raw, &s); err == nil {
			out[code] = s
		}
	}
	return out
}

// Student is one examinee for one (exam_type, year) pair.
type Student struct {
	ID              int          `json:"id"`
	RollNumber      string       `json:"roll_number"`
	StudentName     string       `json:"student_name"`
	InstitutionName string       `json:"institution_name"`
	GPA             string       `json:"gpa"`
	TotalMarks      int          `json:"total_marks"`
	RegistrationID  string       `json:"registration_id"`
	Board           string       `json:"board"`
	FatherName      string       `json:"father_name"`
	ScienceGroup    string       `json:"science_group"`
	MotherName      string       `json:"mother_name"`
	Year            string       `json:"year"`
	ExamType        string       `json:"exam_type"`
	StudentType     string       `json:"student_type"`
	DateOfBirth     string       `json:"date_of_birth"`
	SubjectMarks    SubjectMarks `json:"subject_marks"`
}

// RankedStudent is a Student as it appears in a results page.
type RankedStudent struct {
	Student
	Rank int `json:"rank"`
}
