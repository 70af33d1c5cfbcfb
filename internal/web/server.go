// Package web serves the job board browser UI. Each browser session gets its
// own screen controller, identified by a session cookie; actions are plain
// form posts followed by a redirect back to the board. Controllers are not
// safe for concurrent use, so requests for the same session serialize on a
// per-session lock.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/joblane/jobboard/internal/domain/model"
	"github.com/joblane/jobboard/internal/ui"
)

//go:embed templates/*.html
var templateFS embed.FS

const sessionCookieName = "jb_session"

// session pairs a controller with the lock that serializes requests sharing
// one session cookie. Two tabs or a double-clicked submit land on the same
// controller, which cannot handle concurrent calls.
type session struct {
	mu   sync.Mutex
	ctrl *ui.Controller
}

// Server renders the job board UI on top of the API client.
type Server struct {
	newController func() *ui.Controller
	logger        *slog.Logger
	tmpl          *template.Template

	mu       sync.Mutex
	sessions map[string]*session
}

// NewServer creates a UI server. The api is shared across sessions; each
// session gets its own controller so form state never leaks between browsers.
func NewServer(api ui.JobAPI, logger *slog.Logger) (*Server, error) {
	funcs := template.FuncMap{
		"jobTypes": func() []string {
			return []string{
				string(model.JobTypeFullTime),
				string(model.JobTypePartTime),
				string(model.JobTypeContract),
				string(model.JobTypeInternship),
			}
		},
		"jobStatuses": func() []string {
			return []string{
				string(model.JobStatusActive),
				string(model.JobStatusClosed),
				string(model.JobStatusDraft),
			}
		},
	}
	tmpl, err := template.New("board").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		newController: func() *ui.Controller { return ui.NewController(api) },
		logger:        logger,
		tmpl:          tmpl,
		sessions:      make(map[string]*session),
	}, nil
}

// Handler returns the routed HTTP handler for the UI.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.board)
	mux.HandleFunc("POST /jobs/new", s.openCreate)
	mux.HandleFunc("POST /jobs/submit", s.submit)
	mux.HandleFunc("POST /jobs/{id}/edit", s.openEdit)
	mux.HandleFunc("POST /jobs/{id}/delete", s.openDelete)
	mux.HandleFunc("POST /jobs/{id}/destroy", s.confirmDelete)
	mux.HandleFunc("POST /cancel", s.cancel)
	return mux
}

// sessionFor returns the request's session, creating it and setting its
// cookie on first contact. Callers must hold the returned session's lock
// while touching its controller.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) *session {
	var id string
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		id = cookie.Value
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			return sess
		}
	}

	id = uuid.NewString()
	sess := &session{ctrl: s.newController()}
	s.sessions[id] = sess
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (s *Server) board(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	ctrl := sess.ctrl

	// A failed refresh still renders: the controller keeps the last list and
	// carries the failure message.
	if err := ctrl.Load(r.Context()); err != nil {
		s.logger.WarnContext(r.Context(), "job list refresh failed", "error", err)
	}
	s.render(w, ctrl)
}

func (s *Server) openCreate(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.ctrl.StartCreate()
	s.render(w, sess.ctrl)
}

func (s *Server) openEdit(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.ctrl.StartEdit(r.PathValue("id"))
	s.render(w, sess.ctrl)
}

func (s *Server) openDelete(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.ctrl.StartDelete(r.PathValue("id"))
	s.render(w, sess.ctrl)
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	ctrl := sess.ctrl

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	ctrl.SetForm(ui.FormData{
		Title:       r.PostFormValue("title"),
		Company:     r.PostFormValue("company"),
		Location:    r.PostFormValue("location"),
		Description: r.PostFormValue("description"),
		Salary:      r.PostFormValue("salary"),
		Type:        r.PostFormValue("type"),
		Status:      r.PostFormValue("status"),
	})
	if err := ctrl.Submit(r.Context()); err != nil {
		s.logger.WarnContext(r.Context(), "job form submit failed", "error", err)
	}
	s.render(w, ctrl)
}

func (s *Server) confirmDelete(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	ctrl := sess.ctrl

	if ctrl.DeletingID() != r.PathValue("id") {
		// Stale form post; nothing to confirm.
		s.render(w, ctrl)
		return
	}
	if err := ctrl.ConfirmDelete(r.Context()); err != nil {
		s.logger.WarnContext(r.Context(), "job delete failed", "error", err)
	}
	s.render(w, ctrl)
}

func (s *Server) cancel(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.ctrl.Cancel()
	s.render(w, sess.ctrl)
}

func (s *Server) render(w http.ResponseWriter, ctrl *ui.Controller) {
	data := map[string]any{
		"State":      string(ctrl.State()),
		"Jobs":       ctrl.Jobs(),
		"Form":       ctrl.Form(),
		"EditingID":  ctrl.EditingID(),
		"DeletingID": ctrl.DeletingID(),
		"Message":    ctrl.Message(),
		"FieldError": ctrl.FieldError(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "board.html", data); err != nil {
		s.logger.Error("render board failed", "error", err)
	}
}
