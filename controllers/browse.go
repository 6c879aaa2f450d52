package controllers

import (
	"net/http"

	"student-rank/browse"
	"student-rank/models"
	"student-rank/query"
	"student-rank/store"
	"student-rank/utils"
)

// BrowseResponse carries the resolved view and only the data that view
// renders.
type BrowseResponse struct {
	State   browse.State        `json:"state"`
	Options []string            `json:"options,omitempty"`
	Results *models.StudentPage `json:"results,omitempty"`
	Student *models.Student     `json:"student,omitempty"`
}

type BrowseController struct{}

func (bc BrowseController) GetView(s StudentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := browse.Resolve(r.URL.Query())
		resp := BrowseResponse{State: state}

		switch state.View {
		case browse.ViewExamTypeSelection, browse.ViewYearSelection:
			opts, err := s.FilterOptions(r.Context())
			if err != nil {
				utils.Logger(r).WithError(err).Error("Error fetching filter options")
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch filter options"})
				return
			}
			resp.Options = opts.ExamTypes
			if state.View == browse.ViewYearSelection {
				resp.Options = opts.Years
			}
			if resp.Options == nil {
				resp.Options = []string{}
			}

		case browse.ViewResults:
			c, req := listingRequest(r)
			page, err := s.ListStudents(r.Context(), c, req)
			if err != nil {
				utils.Logger(r).WithError(err).Error("Error fetching students")
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch students"})
				return
			}
			resp.Results = &page

		case browse.ViewDetail:
			student, err := s.GetStudent(r.Context(), state.RollNumber, query.Scope{ExamType: state.ExamType, Year: state.Year})
			if store.IsNotFound(err) {
				utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Student not found"})
				return
			}
			if err != nil {
				utils.Logger(r).WithError(err).Error("Error fetching student details")
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch student details"})
				return
			}
			resp.Student = &student
		}

		utils.ResponseJSON(w, resp)
	}
}
