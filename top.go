package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"student-rank/driver"
	"student-rank/models"
	"student-rank/query"
	"student-rank/store"
	"student-rank/utils"
)

func newTopCmd() *cobra.Command {
	var (
		c             query.Criteria
		req           query.PageRequest
		byInstitution bool
		filtered      bool
	)
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Print a ranked page of results",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, db, err := setup(ctx)
			if err != nil {
				return err
			}
			defer driver.Close(db)

			if byInstitution {
				req.SortBy = query.SortInstitution
			}
			if filtered {
				req.RankScope = query.RankFiltered
			}
			page, err := store.New(db).ListStudents(ctx, c, req)
			if err != nil {
				return err
			}
			renderPage(cmd.OutOrStdout(), page)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&c.Search, "search", "", "substring of name, roll number or institution")
	f.StringVar(&c.Institution, "institution", "", "exact institution name")
	f.StringVar(&c.Year, "year", "", "exam year")
	f.StringVar(&c.ExamType, "exam-type", "", "exam type, e.g. SSC or HSC")
	f.IntVar(&req.Page, "page", 1, "page number")
	f.IntVar(&req.Limit, "limit", 20, "rows per page")
	f.BoolVar(&byInstitution, "by-institution", false, "rank within the institution (needs --institution)")
	f.BoolVar(&filtered, "filtered", false, "rank only the filtered rows")
	return cmd
}

func renderPage(w io.Writer, page models.StudentPage) {
	p := page.Pagination
	color.New(color.FgYellow).Fprintf(w, "\nPage %d of %d (%d students)\n", p.Page, p.TotalPages, p.Total)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Roll", "Name", "Institution", "GPA", "Total", "Registration"})
	for _, s := range page.Data {
		table.Append([]string{
			strconv.Itoa(s.Rank),
			s.RollNumber,
			s.StudentName,
			s.InstitutionName,
			s.GPA,
			strconv.Itoa(s.TotalMarks),
			utils.MaskNumber(s.RegistrationID, 3),
		})
	}
	table.Render()
}

func renderStudent(w io.Writer, s models.Student) {
	color.New(color.FgCyan).Fprintf(w, "\n%s (%s)\n", s.StudentName, s.RollNumber)

	info := tablewriter.NewWriter(w)
	info.SetHeader([]string{"Field", "Value"})
	info.AppendBulk([][]string{
		{"Institution", s.InstitutionName},
		{"Exam", fmt.Sprintf("%s %s", s.ExamType, s.Year)},
		{"Board", s.Board},
		{"Group", s.ScienceGroup},
		{"Type", s.StudentType},
		{"GPA", s.GPA},
		{"Total marks", strconv.Itoa(s.TotalMarks)},
		{"Registration", utils.MaskNumber(s.RegistrationID, 3)},
		{"Father", s.FatherName},
		{"Mother", s.MotherName},
		{"Date of birth", s.DateOfBirth},
	})
	info.Render()

	subjects := s.SubjectMarks.Subjects()
	codes := make([]string, 0, len(subjects))
	for code := range subjects {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	marks := tablewriter.NewWriter(w)
	marks.SetHeader([]string{"Code", "Subject", "Score", "Grade"})
	for _, code := range codes {
		m := subjects[code]
		marks.Append([]string{code, m.Name, m.Score.String(), m.Grade})
	}
	marks.Render()
}
