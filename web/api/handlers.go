package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/hochfrequenz/org-remind/internal/domain"
)

// TaskResponse is the API response for a task
type TaskResponse struct {
	Text  string `json:"text"`
	Due   string `json:"due"`
	DueIn string `json:"due_in"`
}

// StatusResponse is the API response for overall status
type StatusResponse struct {
	Status    string `json:"status"`
	OrgDir    string `json:"org_dir"`
	TaskCount int    `json:"task_count"`
	Overdue   int    `json:"overdue"`
}

func taskToResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		Text:  t.Text,
		Due:   t.Due.Format(time.RFC3339),
		DueIn: humanize.Time(t.Due),
	}
}

func (s *Server) statusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		tasks, err := s.scanner.Scan()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeJSON(w, StatusResponse{
			Status:    "ok",
			OrgDir:    s.orgDir,
			TaskCount: len(tasks),
			Overdue:   len(tasks.Overdue(time.Now())),
		})
	}
}

func (s *Server) listTasksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		tasks, err := s.scanner.Scan()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		// Selectors: ?overdue=true wins over ?within=N days.
		q := r.URL.Query()
		now := time.Now()
		if q.Get("overdue") == "true" {
			tasks = tasks.Overdue(now)
		} else if d := q.Get("within"); d != "" {
			days, err := strconv.Atoi(d)
			if err != nil || days < 0 {
				writeError(w, http.StatusBadRequest, "within must be a non-negative number of days")
				return
			}
			tasks = tasks.DueWithin(now, time.Duration(days)*24*time.Hour)
		}
		if q.Get("sort") == "due" {
			tasks = tasks.SortedByDue()
		}

		responses := make([]TaskResponse, len(tasks))
		for i, t := range tasks {
			responses[i] = taskToResponse(t)
		}

		writeJSON(w, responses)
	}
}
