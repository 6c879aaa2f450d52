package migrations

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Versions(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)

	r, _, err := src.ReadUp(next)
	require.NoError(t, err)
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	r.Close()
	assert.Contains(t, string(body), "idx_students_institution_total_marks ON students (institution_name, total_marks DESC)")
	assert.Contains(t, string(body), "idx_students_total_marks ON students (total_marks DESC)")
}

func TestSource_TableDownKeepsData(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	r, _, err := src.ReadDown(1)
	require.NoError(t, err)
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	r.Close()
	assert.NotContains(t, strings.ToUpper(string(body)), "DROP")
}

var tableQuery = regexp.QuoteMeta("FROM information_schema.tables")

func TestVerify(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(tableQuery).WithArgs("students").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	assert.NoError(t, Verify(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerify_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(tableQuery).WithArgs("students").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err = Verify(context.Background(), db)
	assert.EqualError(t, err, "required table students does not exist")
	_, traced := err.(interface{ StackTrace() pkgerrors.StackTrace })
	assert.True(t, traced)
}

func TestVerify_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(tableQuery).WillReturnError(errors.New("no route to host"))

	err = Verify(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check table students")
}
