package store

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"student-rank/models"
)

const sqliteSchema = `
CREATE TABLE students (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	roll_number      TEXT NOT NULL,
	student_name     TEXT,
	institution_name TEXT,
	gpa              TEXT,
	total_marks      INTEGER NOT NULL,
	registration_id  TEXT,
	board            TEXT,
	father_name      TEXT,
	science_group    TEXT,
	mother_name      TEXT,
	year             TEXT,
	exam_type        TEXT,
	student_type     TEXT,
	date_of_birth    TEXT,
	subject_marks    TEXT,
	UNIQUE (roll_number, exam_type, year)
)`

// seed describes one row; zero fields get filler values.
type seed struct {
	roll        string
	name        string
	institution string
	marks       int
	year        string
	examType    string
	group       string
	subjects    models.SubjectMarks
}

// newSQLiteStore opens a private in-memory database. A single connection
// keeps every query on the same in-memory instance.
func newSQLiteStore(t *testing.T, rows ...seed) (*Store, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(sqliteSchema)
	require.NoError(t, err)

	for i, r := range rows {
		if r.roll == "" {
			r.roll = fmt.Sprintf("%06d", 100000+i)
		}
		if r.name == "" {
			r.name = "Student " + r.roll
		}
		if r.institution == "" {
			r.institution = "Other School"
		}
		if r.year == "" {
			r.year = "2025"
		}
		if r.examType == "" {
			r.examType = "SSC"
		}
		var group interface{}
		if r.group != "" {
			group = r.group
		}
		marks := r.subjects
		if marks == nil {
			marks = models.SubjectMarks(fmt.Sprintf(`{"101":{"name":"BANGLA-I","score":%d,"grade":"A+"}}`, r.marks))
		}
		_, err := db.Exec(`INSERT INTO students (
			roll_number, student_name, institution_name, gpa, total_marks, registration_id,
			board, father_name, science_group, mother_name, year, exam_type, student_type,
			date_of_birth, subject_marks
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.roll, r.name, r.institution, "5.00", r.marks, "REG"+r.roll,
			"DHAKA", "Father", group, "Mother", r.year, r.examType, "REGULAR",
			"01-01-2008", marks)
		require.NoError(t, err)
	}

	return New(db), db
}

func ranksOf(rows []models.RankedStudent) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Rank
	}
	return out
}

func rollsOf(rows []models.RankedStudent) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.RollNumber
	}
	return out
}
