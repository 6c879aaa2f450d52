package controllers

import (
	"github.com/gorilla/mux"
)

// Register mounts the read-only API on router.
func Register(router *mux.Router, s StudentStore, p Pinger) {
	studentController := StudentController{}
	filterController := FilterController{}
	browseController := BrowseController{}
	healthController := HealthController{}

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/filters", filterController.GetFilters(s)).Methods("GET")
	api.HandleFunc("/students", studentController.GetStudents(s)).Methods("GET")
	api.HandleFunc("/student/{roll_number}", studentController.GetStudent(s)).Methods("GET")
	api.HandleFunc("/browse", browseController.GetView(s)).Methods("GET")

	router.HandleFunc("/healthz", healthController.Health(p)).Methods("GET")
}
