// Package query builds the parameterized SQL used to rank, filter and count
// student records. Caller supplied values only ever travel through the
// argument list; the statement text is assembled from constant fragments and
// placeholder numbers.
package query

import (
	"fmt"
	"strings"
)

// Criteria are the optional filters accepted by the students listing.
// An empty field means "no filter", never "match the empty string".
type Criteria struct {
	Search      string
	Institution string
	Year        string
	ExamType    string
}

func (c Criteria) normalized() Criteria {
	return Criteria{
		Search:      strings.TrimSpace(c.Search),
		Institution: strings.TrimSpace(c.Institution),
		Year:        strings.TrimSpace(c.Year),
		ExamType:    strings.TrimSpace(c.ExamType),
	}
}

// HasInstitution reports whether an institution filter is active.
func (c Criteria) HasInstitution() bool {
	return strings.TrimSpace(c.Institution) != ""
}

// Predicate is a conjunction of clauses with the positional arguments they
// reference, in emission order. The zero value matches every row.
type Predicate struct {
	clauses []string
	args    []interface{}
}

// Build turns criteria into a predicate. Placeholders start at $1.
func Build(c Criteria) Predicate {
	c = c.normalized()
	var p Predicate

	if c.Search != "" {
		n := p.bind("%" + strings.ToLower(c.Search) + "%")
		p.clauses = append(p.clauses, fmt.Sprintf(
			"(LOWER(student_name) LIKE $%[1]d OR LOWER(roll_number) LIKE $%[1]d OR LOWER(institution_name) LIKE $%[1]d)", n))
	}
	if c.Institution != "" {
		n := p.bind(c.Institution)
		p.clauses = append(p.clauses, fmt.Sprintf("LOWER(institution_name) = LOWER($%d)", n))
	}
	if c.Year != "" {
		n := p.bind(c.Year)
		p.clauses = append(p.clauses, fmt.Sprintf("year = $%d", n))
	}
	if c.ExamType != "" {
		n := p.bind(c.ExamType)
		p.clauses = append(p.clauses, fmt.Sprintf("exam_type = $%d", n))
	}
	return p
}

func (p *Predicate) bind(v interface{}) int {
	p.args = append(p.args, v)
	return len(p.args)
}

// Clauses returns a copy of the clause list.
func (p Predicate) Clauses() []string {
	return append([]string(nil), p.clauses...)
}

// Args returns a copy of the bound values.
func (p Predicate) Args() []interface{} {
	return append([]interface{}(nil), p.args...)
}

// Empty reports whether the predicate matches all rows.
func (p Predicate) Empty() bool {
	return len(p.clauses) == 0
}

// Where renders "WHERE a AND b", or "" for the empty predicate.
func (p Predicate) Where() string {
	if p.Empty() {
		return ""
	}
	return "WHERE " + strings.Join(p.clauses, " AND ")
}

// next is the number of the first placeholder free after the predicate.
func (p Predicate) next() int {
	return len(p.args) + 1
}
