package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/provide-io/erlc/pkg/calculator"
	"github.com/provide-io/erlc/pkg/expression"
	"github.com/provide-io/erlc/pkg/registry"
	"github.com/provide-io/erlc/pkg/widgets"
)

type versionRequest struct {
	Key string `json:"key"`
}

type toggleRequest struct {
	Name    string         `json:"name"`
	Value   registry.Level `json:"value"`
	Checked bool           `json:"checked"`
}

type levelRequest struct {
	Text string `json:"text"`
}

type expressionRequest struct {
	Expression string `json:"expression"`
}

// actionResponse carries the state after an event and the regions that
// re-rendered for it. The originating region is never listed.
type actionResponse struct {
	Snapshot calculator.Snapshot `json:"snapshot"`
	Rendered []string            `json:"rendered"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.calc.Snapshot()
	s.mu.Unlock()

	s.writeJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleVersions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	versions := s.calc.Versions.ListVersions()
	s.mu.Unlock()

	s.writeJSON(w, r, http.StatusOK, versions)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	var req versionRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	s.act(w, r, func() error {
		return s.calc.SelectVersion(req.Key)
	})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	s.act(w, r, func() error {
		if req.Name != "" {
			return s.calc.Toggle(req.Name, req.Checked)
		}
		return s.calc.Constants.Toggle(req.Value, req.Checked)
	})
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	var req levelRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	s.act(w, r, func() error {
		s.calc.EnterLevel(req.Text)
		return nil
	})
}

func (s *Server) handleExpression(w http.ResponseWriter, r *http.Request) {
	var req expressionRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	s.act(w, r, func() error {
		level, err := expression.Evaluate(s.calc.Registry(), s.calc.Versions.Active(), req.Expression)
		if err != nil {
			return err
		}
		s.calc.EnterLevel(level.String())
		return nil
	})
}

// act runs one event under the session lock and replies with the result.
func (s *Server) act(w http.ResponseWriter, r *http.Request, event func() error) {
	s.mu.Lock()
	s.last = nil
	err := event()
	resp := actionResponse{Snapshot: s.calc.Snapshot(), Rendered: []string{}}
	if s.last != nil {
		for _, o := range s.last.Rendered {
			resp.Rendered = append(resp.Rendered, o.String())
		}
	}
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func statusFor(err error) int {
	var cfgErr *registry.ConfigError
	switch {
	case errors.As(err, &cfgErr),
		errors.Is(err, widgets.ErrUnknownToggle),
		errors.Is(err, expression.ErrEmpty),
		errors.Is(err, expression.ErrUnknownConstant),
		errors.Is(err, expression.ErrUnexpectedToken),
		errors.Is(err, expression.ErrUnbalancedParen):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.calc.Snapshot()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, newPageData(snap)); err != nil {
		s.logger.Error("failed to render page", "error", err)
		http.Error(w, fmt.Sprintf("render: %v", err), http.StatusInternalServerError)
	}
}
