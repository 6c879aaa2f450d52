package store

import (
	"database/sql"

	"student-rank/models"
)

// studentRow holds the nullable scan targets for query.StudentColumns and
// copies them into a models.Student once the row is read.
type studentRow struct {
	id           int64
	roll         string
	name         sql.NullString
	institution  sql.NullString
	gpa          sql.NullString
	total        sql.NullInt64
	registration sql.NullString
	board        sql.NullString
	father       sql.NullString
	group        sql.NullString
	mother       sql.NullString
	year         sql.NullString
	examType     sql.NullString
	studentType  sql.NullString
	dateOfBirth  sql.NullString
	marks        models.SubjectMarks
}

func (r *studentRow) dest() []interface{} {
	return []interface{}{
		&r.id,
		&r.roll,
		&r.name,
		&r.institution,
		&r.gpa,
		&r.total,
		&r.registration,
		&r.board,
		&r.father,
		&r.group,
		&r.mother,
		&r.year,
		&r.examType,
		&r.studentType,
		&r.dateOfBirth,
		&r.marks,
	}
}

func (r *studentRow) student() models.Student {
	marks := r.marks
	if len(marks) == 0 {
		marks = models.SubjectMarks("{}")
	}
	return models.Student{
		ID:              int(r.id),
		RollNumber:      r.roll,
		StudentName:     r.name.String,
		InstitutionName: r.institution.String,
		GPA:             r.gpa.String,
		TotalMarks:      int(r.total.Int64),
		RegistrationID:  r.registration.String,
		Board:           r.board.String,
		FatherName:      r.father.String,
		ScienceGroup:    r.group.String,
		MotherName:      r.mother.String,
		Year:            r.year.String,
		ExamType:        r.examType.String,
		StudentType:     r.studentType.String,
		DateOfBirth:     r.dateOfBirth.String,
		SubjectMarks:    marks,
	}
}
