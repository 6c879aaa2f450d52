package query

import (
	"fmt"
	"strings"
)

// Scope narrows a roll number lookup to one exam sitting. Both fields are
// optional.
type Scope struct {
	ExamType string
	Year     string
}

// DetailSelect finds one student by roll number. A roll number is only
// unique inside an (exam_type, year) pair, so the newest sitting wins when
// the scope leaves it ambiguous.
func DetailSelect(rollNumber string, scope Scope) Statement {
	args := []interface{}{strings.TrimSpace(rollNumber)}
	where := []string{"roll_number = $1"}
	if v := strings.TrimSpace(scope.ExamType); v != "" {
		args = append(args, v)
		where = append(where, fmt.Sprintf("exam_type = $%d", len(args)))
	}
	if v := strings.TrimSpace(scope.Year); v != "" {
		args = append(args, v)
		where = append(where, fmt.Sprintf("year = $%d", len(args)))
	}
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY year DESC, exam_type LIMIT 1",
		strings.Join(StudentColumns, ", "), Table, strings.Join(where, " AND "))
	return Statement{SQL: sql, Args: args}
}

// Facet is a categorical column offered as a filter choice.
type Facet struct {
	Column string
	Desc   bool
}

var (
	FacetInstitution = Facet{Column: "institution_name"}
	FacetYear        = Facet{Column: "year", Desc: true}
	FacetExamType    = Facet{Column: "exam_type"}
	FacetGroup       = Facet{Column: "science_group"}
)

// DistinctSelect lists the distinct non-null, non-empty values of a facet.
func DistinctSelect(f Facet) Statement {
	dir := "ASC"
	if f.Desc {
		dir = "DESC"
	}
	return Statement{SQL: fmt.Sprintf(
		"SELECT DISTINCT %[1]s FROM %[2]s WHERE %[1]s IS NOT NULL AND %[1]s <> '' ORDER BY %[1]s %[3]s",
		f.Column, Table, dir)}
}
