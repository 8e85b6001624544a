package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"wtask/internal/service"
)

type taskBody struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

// handleListTasks handles GET /tasks.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	owner := accountID(r)

	s.mu.Lock()
	result := []task{}
	for _, t := range s.tasks {
		if t.accountID == owner {
			result = append(result, *t)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, result)
}

// handleCreateTask handles POST /tasks. A missing status defaults to NEW.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var body taskBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	status, ok := parseStatus(body.Status)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid status: "+body.Status)
		return
	}

	s.mu.Lock()
	t := &task{ID: s.nextTask, Title: body.Title, Status: status, accountID: accountID(r)}
	s.nextTask++
	s.tasks = append(s.tasks, t)
	created := *t
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, created)
}

// handleUpdateStatus handles PUT /tasks/{taskID}/status.
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body taskBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	status, ok := parseStatus(body.Status)
	if !ok || strings.TrimSpace(body.Status) == "" {
		writeError(w, http.StatusBadRequest, "invalid status: "+body.Status)
		return
	}

	id, _ := strconv.Atoi(mux.Vars(r)["taskID"])
	owner := accountID(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id && t.accountID == owner {
			t.Status = status
			writeJSON(w, http.StatusOK, *t)
			return
		}
	}
	writeError(w, http.StatusNotFound, "task not found")
}

// handleDeleteTask handles DELETE /tasks/{taskID}. Deleting a missing task
// succeeds.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["taskID"])
	owner := accountID(r)

	s.mu.Lock()
	for i, t := range s.tasks {
		if t.ID == id && t.accountID == owner {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	w.WriteHeader(http.StatusOK)
}

// handleWeather handles GET /weather with a fixed sample.
func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"city":        "Berlin",
		"temperature": 12,
		"description": "Leicht bewölkt",
	})
}

// parseStatus normalizes a wire status. Blank means NEW.
func parseStatus(s string) (string, bool) {
	if strings.TrimSpace(s) == "" {
		return string(service.StatusNew), true
	}
	st, err := service.ParseStatus(s)
	if err != nil {
		return "", false
	}
	return string(st), true
}
