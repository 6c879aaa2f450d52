// Package browse models the results browser navigation: pick an exam type,
// then a year, then page through results, optionally opening one student.
// The current view is derived only from which query parameters are present.
package browse

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

type View int

const (
	ViewExamTypeSelection View = iota
	ViewYearSelection
	ViewResults
	ViewDetail
)

var viewNames = map[View]string{
	ViewExamTypeSelection: "examTypeSelection",
	ViewYearSelection:     "yearSelection",
	ViewResults:           "results",
	ViewDetail:            "detail",
}

func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return fmt.Sprintf("View(%d)", int(v))
}

func (v View) MarshalText() ([]byte, error) {
	name, ok := viewNames[v]
	if !ok {
		return nil, errors.Errorf("unknown view %d", int(v))
	}
	return []byte(name), nil
}

func (v *View) UnmarshalText(b []byte) error {
	for view, name := range viewNames {
		if name == string(b) {
			*v = view
			return nil
		}
	}
	return errors.Errorf("unknown view %q", string(b))
}

// Query parameters that drive navigation.
const (
	ParamExamType   = "exam_type"
	ParamYear       = "year"
	ParamRollNumber = "roll_number"
)

// State is a resolved position in the browser.
type State struct {
	View       View   `json:"view"`
	ExamType   string `json:"exam_type,omitempty"`
	Year       string `json:"year,omitempty"`
	RollNumber string `json:"roll_number,omitempty"`
}

// Resolve derives the state from query parameters. A year without an exam
// type is ignored, the same way the year picker is unreachable without one.
func Resolve(q url.Values) State {
	s := State{
		ExamType:   strings.TrimSpace(q.Get(ParamExamType)),
		Year:       strings.TrimSpace(q.Get(ParamYear)),
		RollNumber: strings.TrimSpace(q.Get(ParamRollNumber)),
	}
	switch {
	case s.RollNumber != "":
		s.View = ViewDetail
	case s.ExamType != "" && s.Year != "":
		s.View = ViewResults
	case s.ExamType != "":
		s.View = ViewYearSelection
	default:
		s.View = ViewExamTypeSelection
		s.Year = ""
	}
	return s
}

// Next returns the view reached from v by supplying param, and whether that
// transition exists.
func Next(v View, param string) (View, bool) {
	switch {
	case v == ViewExamTypeSelection && param == ParamExamType:
		return ViewYearSelection, true
	case v == ViewYearSelection && param == ParamYear:
		return ViewResults, true
	case v == ViewResults && param == ParamRollNumber:
		return ViewDetail, true
	}
	return v, false
}

// Back returns the previous view, dropping the parameter that led here.
func (s State) Back() State {
	switch s.View {
	case ViewDetail:
		s.RollNumber = ""
		if s.ExamType != "" && s.Year != "" {
			s.View = ViewResults
		} else if s.ExamType != "" {
			s.View = ViewYearSelection
		} else {
			s.View = ViewExamTypeSelection
		}
	case ViewResults:
		s.Year = ""
		s.View = ViewYearSelection
	case ViewYearSelection:
		s.ExamType = ""
		s.View = ViewExamTypeSelection
	}
	return s
}

// Values encodes the state back into query parameters.
func (s State) Values() url.Values {
	q := url.Values{}
	if s.ExamType != "" {
		q.Set(ParamExamType, s.ExamType)
	}
	if s.Year != "" && s.ExamType != "" {
		q.Set(ParamYear, s.Year)
	}
	if s.RollNumber != "" {
		q.Set(ParamRollNumber, s.RollNumber)
	}
	return q
}
