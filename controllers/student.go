package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"student-rank/models"
	"student-rank/query"
	"student-rank/store"
	"student-rank/utils"
)

// StudentStore is the read side the handlers depend on; *store.Store
// satisfies it.
type StudentStore interface {
	ListStudents(ctx context.Context, c query.Criteria, req query.PageRequest) (models.StudentPage, error)
	GetStudent(ctx context.Context, rollNumber string, scope query.Scope) (models.Student, error)
	FilterOptions(ctx context.Context) (models.FilterOptions, error)
}

type StudentController struct{}

// listingRequest reads filters and paging from the query string. Bad
// numbers fall back to the defaults instead of failing the request.
func listingRequest(r *http.Request) (query.Criteria, query.PageRequest) {
	q := r.URL.Query()
	c := query.Criteria{
		Search:      q.Get("search"),
		Institution: q.Get("institution"),
		Year:        q.Get("year"),
		ExamType:    q.Get("exam_type"),
	}
	req := query.PageRequest{
		Page:      utils.QueryInt(r, "page", 1),
		Limit:     utils.QueryInt(r, "limit", query.DefaultLimit),
		SortBy:    query.ParseSortBy(q.Get("sortBy")),
		RankScope: query.ParseRankScope(q.Get("rankScope")),
	}
	return c, req.Normalize()
}

func (sc StudentController) GetStudents(s StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, req := listingRequest(r)

		page, err := s.ListStudents(r.Context(), c, req)
		if err != nil {
			utils.Logger(r).WithError(err).Error("Error fetching students")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch students"})
			return
		}

		utils.ResponseJSON(w, page)
	}
}

func (sc StudentController) GetStudent(s StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roll := strings.TrimSpace(mux.Vars(r)["roll_number"])
		if roll == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Roll number is required"})
			return
		}
		scope := query.Scope{
			ExamType: r.URL.Query().Get("exam_type"),
			Year:     r.URL.Query().Get("year"),
		}

		student, err := s.GetStudent(r.Context(), roll, scope)
		if store.IsNotFound(err) {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Student not found"})
			return
		}
		if err != nil {
			utils.Logger(r).WithError(err).WithField("roll_number", roll).Error("Error fetching student details")
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch student details"})
			return
		}

		utils.ResponseJSON(w, student)
	}
}
