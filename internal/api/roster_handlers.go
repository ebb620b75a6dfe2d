package api

import (
	"net/http"
	"strings"

	"github.com/vytor/mathsprout/internal/models"
)

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	classroomID := strings.TrimSpace(r.URL.Query().Get("classroomId"))

	students, err := s.StudentService.ListStudents(r.Context(), classroomID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, students)
}

func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStudentRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	student, err := s.StudentService.CreateStudent(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/students/"+student.ID)
	writeJSON(w, r, http.StatusCreated, student)
}

func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	student, err := s.StudentService.GetStudent(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, student)
}

func (s *Server) handleStudentReport(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	report, err := s.StatsService.GetStudentReport(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

func (s *Server) handleClassStats(w http.ResponseWriter, r *http.Request) {
	since, err := queryTime(r, "since")
	if err != nil {
		handleError(w, r, err)
		return
	}

	report, err := s.StatsService.GetClassReport(r.Context(), models.ClassFilter{
		ClassroomID: strings.TrimSpace(r.URL.Query().Get("classroomId")),
		GameType:    strings.TrimSpace(r.URL.Query().Get("gameType")),
		Since:       since,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}
