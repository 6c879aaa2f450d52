package models

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// StudentPage is the response body of the students listing.
type StudentPage struct {
	Data       []RankedStudent `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// FilterOptions lists the distinct values used to fill the filter controls.
type FilterOptions struct {
	Institutions []string `json:"institutions"`
	Years        []string `json:"years"`
	ExamTypes    []string `json:"examTypes"`
	Groups       []string `json:"groups"`
}

type Error struct {
	Message string `json:"error"`
}
