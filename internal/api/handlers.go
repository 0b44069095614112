package api

import (
	"errors"
	"net/http"

	"github.com/Faizan711/git-gandalf/internal/diff"
	"github.com/Faizan711/git-gandalf/internal/guard"
	"github.com/Faizan711/git-gandalf/internal/llm"
	"github.com/Faizan711/git-gandalf/internal/model"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Summarize ---

type summarizeRequest struct {
	Diff string `json:"diff"`
}

type fileJSON struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Added   int    `json:"added"`
	Deleted int    `json:"deleted"`
	Binary  bool   `json:"binary,omitempty"`
}

type summarizeResponse struct {
	Stats model.DiffStats `json:"stats"`
	Files []fileJSON      `json:"files,omitempty"`
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Diff == "" {
		writeError(w, http.StatusBadRequest, "diff is required")
		return
	}
	if len(req.Diff) > s.maxBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "diff exceeds maximum size")
		return
	}

	raw := diff.NormalizeLineEndings(req.Diff)
	resp := summarizeResponse{Stats: diff.Summarize(raw)}

	// Structured per-file detail when the diff is well formed.
	if ds, err := diff.Parse(raw); err == nil {
		for _, f := range ds.Files {
			resp.Files = append(resp.Files, fileJSON{
				Name:    f.Name(),
				Status:  f.Status(),
				Added:   f.AddedLines,
				Deleted: f.DeletedLines,
				Binary:  f.IsBinary,
			})
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// --- Judge ---

type judgeRequest struct {
	Diff string `json:"diff"`
}

type judgeResponse struct {
	Action  string          `json:"action"`
	Risk    string          `json:"risk,omitempty"`
	Issues  []string        `json:"issues,omitempty"`
	Summary string          `json:"summary,omitempty"`
	Stats   model.DiffStats `json:"stats"`
	Empty   bool            `json:"empty,omitempty"`
}

func (s *Server) handleJudge(w http.ResponseWriter, r *http.Request) {
	var req judgeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Diff == "" {
		writeError(w, http.StatusBadRequest, "diff is required")
		return
	}
	if len(req.Diff) > s.maxBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "diff exceeds maximum size")
		return
	}

	out, err := guard.Run(r.Context(), req.Diff, s.judge)
	if err != nil {
		if errors.Is(err, llm.ErrInvalidReply) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// On the HTTP surface an unreachable model is the caller's problem,
	// unlike the commit path which degrades to allow.
	if out.Skipped {
		writeError(w, http.StatusBadGateway, "model endpoint unavailable: "+out.SkipReason)
		return
	}

	resp := judgeResponse{
		Action: out.Action.String(),
		Stats:  out.Stats,
		Empty:  out.Empty,
	}
	if out.Decision != nil {
		resp.Risk = string(out.Decision.Risk)
		resp.Issues = out.Decision.Issues
		resp.Summary = out.Decision.Summary
	}

	writeJSON(w, http.StatusOK, resp)
}
