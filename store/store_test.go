package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-rank/query"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.MatchExpectationsInOrder(false)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

var studentCols = append(append([]string(nil), query.StudentColumns...), "rank")

func TestListStudents_BindsSharedSearchParam(t *testing.T) {
	s, mock := newMockStore(t)
	c := query.Criteria{Search: "Ali", ExamType: "SSC"}

	mock.ExpectQuery(regexp.QuoteMeta("WITH ranked_students AS")).
		WithArgs("%ali%", "SSC", 10, 10).
		WillReturnRows(sqlmock.NewRows(studentCols).AddRow(
			7, "123", "Ali Raza", "Alice High School", "5.00", 1200, "REG", "DHAKA",
			"F", "Science", "M", "2025", "SSC", "REGULAR", "01-01-2008", []byte(`{"101":{"name":"BANGLA-I","score":90,"grade":"A+"}}`), 4,
		))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students WHERE")).
		WithArgs("%ali%", "SSC").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	page, err := s.ListStudents(context.Background(), c, query.PageRequest{Page: 2, Limit: 10})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, page.Data, 1)
	assert.Equal(t, 4, page.Data[0].Rank)
	assert.Equal(t, "Ali Raza", page.Data[0].StudentName)
	assert.JSONEq(t, `{"101":{"name":"BANGLA-I","score":90,"grade":"A+"}}`, string(page.Data[0].SubjectMarks))
	assert.Equal(t, 11, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
}

func TestListStudents_NullColumnsBecomeEmpty(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("ranked_students").
		WillReturnRows(sqlmock.NewRows(studentCols).AddRow(
			1, "9", nil, nil, nil, 10, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, 1,
		))
	mock.ExpectQuery("COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	page, err := s.ListStudents(context.Background(), query.Criteria{}, query.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "", page.Data[0].StudentName)
	assert.Equal(t, "{}", string(page.Data[0].SubjectMarks))
}

func TestListStudents_PageQueryFailure(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("ranked_students").WillReturnError(errors.New("connection refused"))
	mock.ExpectQuery("COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	page, err := s.ListStudents(context.Background(), query.Criteria{}, query.PageRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Nil(t, page.Data)
	assert.False(t, IsNotFound(err))
}

func TestListStudents_CountFailure(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("ranked_students").
		WillReturnRows(sqlmock.NewRows(studentCols))
	mock.ExpectQuery("COUNT").WillReturnError(errors.New("statement timeout"))

	page, err := s.ListStudents(context.Background(), query.Criteria{}, query.PageRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count students")
	assert.Equal(t, 0, page.Pagination.Total)
	assert.Nil(t, page.Data)
}

func TestListStudents_RowErrorFails(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows(studentCols).
		AddRow(1, "9", "n", "i", "5", 10, "r", "b", "f", "g", "m", "2025", "SSC", "t", "d", nil, 1).
		RowError(0, errors.New("broken pipe"))
	mock.ExpectQuery("ranked_students").WillReturnRows(rows)
	mock.ExpectQuery("COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := s.ListStudents(context.Background(), query.Criteria{}, query.PageRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
}

func TestGetStudent_NoRows(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE roll_number = $1")).
		WithArgs("404").
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetStudent(context.Background(), "404", query.Scope{})
	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetStudent_DatastoreFailure(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("roll_number").WillReturnError(errors.New("too many connections"))

	_, err := s.GetStudent(context.Background(), "1", query.Scope{})
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "get student 1")
}

func TestFilterOptions_AnyFailureFailsAll(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("DISTINCT institution_name").
		WillReturnRows(sqlmock.NewRows([]string{"institution_name"}).AddRow("A"))
	mock.ExpectQuery("DISTINCT year").WillReturnError(errors.New("boom"))
	mock.ExpectQuery("DISTINCT exam_type").
		WillReturnRows(sqlmock.NewRows([]string{"exam_type"}).AddRow("SSC"))
	mock.ExpectQuery("DISTINCT science_group").
		WillReturnRows(sqlmock.NewRows([]string{"science_group"}).AddRow("Science"))

	opts, err := s.FilterOptions(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "distinct year")
	assert.Nil(t, opts.Institutions)
}
