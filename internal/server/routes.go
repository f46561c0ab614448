package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pilahlab/pilah/internal/engine"
	"github.com/pilahlab/pilah/internal/kb"
)

func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := s.db.LoadRules()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if rules == nil {
		rules = []kb.Rule{}
	}
	writeJSON(w, http.StatusOK, rules)
}

func (s *Server) handleAddRule(w http.ResponseWriter, r *http.Request) {
	var req kb.Rule
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}

	rs, err := s.loadRuleStore()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if req.ID == "" {
		req.ID = rs.NextID()
	}
	if err := rs.Add(req); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if err := s.db.SaveRules(rs.List()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	stored, _ := rs.Get(req.ID)
	writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleGetRule(w http.ResponseWriter, r *http.Request) {
	ruleID := chi.URLParam(r, "ruleID")

	rs, err := s.loadRuleStore()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	rule, ok := rs.Get(ruleID)
	if !ok {
		http.Error(w, `{"error":"rule not found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

func (s *Server) handleUpdateRule(w http.ResponseWriter, r *http.Request) {
	ruleID := chi.URLParam(r, "ruleID")

	var req struct {
		Conditions  []string `json:"if"`
		Conclusion  *string  `json:"then"`
		Priority    *int     `json:"priority"`
		Description *string  `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}

	rs, err := s.loadRuleStore()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	update := kb.RuleUpdate{
		Conditions:  req.Conditions,
		Conclusion:  req.Conclusion,
		Priority:    req.Priority,
		Description: req.Description,
	}
	if err := rs.Update(ruleID, update); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if err := s.db.SaveRules(rs.List()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	rule, _ := rs.Get(ruleID)
	writeJSON(w, http.StatusOK, rule)
}

func (s *Server) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	ruleID := chi.URLParam(r, "ruleID")

	rs, err := s.loadRuleStore()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if err := rs.Delete(ruleID); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if err := s.db.SaveRules(rs.List()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": ruleID})
}

func (s *Server) handleListFacts(w http.ResponseWriter, r *http.Request) {
	facts, err := s.db.LoadFacts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if facts == nil {
		facts = []string{}
	}
	writeJSON(w, http.StatusOK, facts)
}

func (s *Server) handleAddFact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Fact string `json:"fact"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}

	fs, err := s.loadFactStore()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if err := fs.Add(req.Fact); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if err := s.db.SaveFacts(fs.List()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"fact": kb.Normalize(req.Fact)})
}

func (s *Server) handleRemoveFact(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	fs, err := s.loadFactStore()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if err := fs.Remove(token); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if err := s.db.SaveFacts(fs.List()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed", "fact": kb.Normalize(token)})
}

func (s *Server) handleInfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Facts []string `json:"facts"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}

	rules, err := s.db.LoadRules()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	// Facts in the request override the persisted fact store.
	initial := kb.NormalizeAll(req.Facts)
	if req.Facts == nil {
		initial, err = s.db.LoadFacts()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	result := engine.Run(rules, initial)
	writeJSON(w, http.StatusOK, map[string]any{
		"result":   result,
		"category": engine.Classify(result.Inferred).String(),
		"fired":    result.Fired(),
	})
}
