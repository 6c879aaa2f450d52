package query

import (
	"fmt"
	"math"
	"strings"
)

const DefaultLimit = 100

// Table is the relation every statement reads from.
const Table = "students"

// StudentColumns is the projection shared by list and detail queries, in
// the order store scans them.
var StudentColumns = []string{
	"id",
	"roll_number",
	"student_name",
	"institution_name",
	"gpa",
	"total_marks",
	"registration_id",
	"board",
	"father_name",
	"science_group",
	"mother_name",
	"year",
	"exam_type",
	"student_type",
	"date_of_birth",
	"subject_marks",
}

type SortBy string

const (
	SortDefault SortBy = ""
	// SortInstitution ranks within each institution. Only honoured when an
	// institution filter is present.
	SortInstitution SortBy = "institution"
)

func ParseSortBy(s string) SortBy {
	if strings.EqualFold(strings.TrimSpace(s), string(SortInstitution)) {
		return SortInstitution
	}
	return SortDefault
}

// RankScope selects the population the dense rank is computed over.
type RankScope string

const (
	// RankPopulation ranks every row in the table, then filters the ranked
	// set. A student's rank is their standing in the full population.
	RankPopulation RankScope = "population"
	// RankFiltered filters first and ranks only the surviving rows.
	RankFiltered RankScope = "filtered"
)

func ParseRankScope(s string) RankScope {
	if strings.EqualFold(strings.TrimSpace(s), string(RankFiltered)) {
		return RankFiltered
	}
	return RankPopulation
}

// PageRequest holds the pagination and ordering controls of a listing.
type PageRequest struct {
	Page      int
	Limit     int
	SortBy    SortBy
	RankScope RankScope
}

// Normalize applies the defaults: page 1, limit DefaultLimit, population
// ranking.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	if r.RankScope != RankFiltered {
		r.RankScope = RankPopulation
	}
	return r
}

// Offset is the number of rows skipped before the page. It saturates at
// math.MaxInt instead of wrapping, so a far-off page is merely empty.
func (r PageRequest) Offset() int {
	r = r.Normalize()
	if r.Page-1 > math.MaxInt/r.Limit {
		return math.MaxInt
	}
	return (r.Page - 1) * r.Limit
}

// Statement is a complete SQL text with its positional arguments.
type Statement struct {
	SQL  string
	Args []interface{}
}

func partitioned(c Criteria, r PageRequest) bool {
	return r.SortBy == SortInstitution && c.HasInstitution()
}

// RankedSelect builds the page query. The dense rank runs over total_marks
// descending, partitioned by institution_name when institution sorting is
// active. Limit and offset are bound after the predicate arguments.
func RankedSelect(c Criteria, r PageRequest) Statement {
	r = r.Normalize()
	pred := Build(c)

	window := "DENSE_RANK() OVER (ORDER BY total_marks DESC)"
	orderBy := "ORDER BY total_marks DESC, id"
	if partitioned(c, r) {
		window = "DENSE_RANK() OVER (PARTITION BY institution_name ORDER BY total_marks DESC)"
		orderBy = "ORDER BY institution_name, total_marks DESC, id"
	}

	cols := strings.Join(StudentColumns, ", ")
	limitAt := pred.next()
	var b strings.Builder
	switch r.RankScope {
	case RankFiltered:
		fmt.Fprintf(&b, "SELECT %s, %s AS rank FROM %s", cols, window, Table)
		if w := pred.Where(); w != "" {
			b.WriteString(" " + w)
		}
	default:
		fmt.Fprintf(&b, "WITH ranked_students AS (SELECT %s, %s AS rank FROM %s) SELECT %s, rank FROM ranked_students",
			cols, window, Table, cols)
		if w := pred.Where(); w != "" {
			b.WriteString(" " + w)
		}
	}
	fmt.Fprintf(&b, " %s LIMIT $%d OFFSET $%d", orderBy, limitAt, limitAt+1)

	args := append(pred.Args(), r.Limit, r.Offset())
	return Statement{SQL: b.String(), Args: args}
}

// CountSelect counts the rows matching the same criteria, unranked and
// unpaged.
func CountSelect(c Criteria) Statement {
	pred := Build(c)
	sql := "SELECT COUNT(*) FROM " + Table
	if w := pred.Where(); w != "" {
		sql += " " + w
	}
	return Statement{SQL: sql, Args: pred.Args()}
}

// TotalPages is ceil(total / limit).
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}
