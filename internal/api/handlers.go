package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/freifahren/sichtungskern/internal/catalog"
	"github.com/freifahren/sichtungskern/internal/errs"
	"github.com/freifahren/sichtungskern/internal/risk"
	"github.com/freifahren/sichtungskern/internal/tracing"
)

// inspectorReportRequest is the shared body shape for POST /report-inspector
// and POST /mini-app/report (§6): a sighting already broken into fields by
// an upstream form or client, as opposed to the free-text chat path that
// runs through internal/pipeline.
type inspectorReportRequest struct {
	Line      *string `json:"line"`
	Station   *string `json:"station"`
	Direction *string `json:"direction"`
	Message   *string `json:"message"`
	StationID *string `json:"stationId"`
}

func (s *Server) checkPassword(r *http.Request) bool {
	return s.reportPassword != "" && r.Header.Get("X-Password") == s.reportPassword
}

func (s *Server) handleReportInspector(w http.ResponseWriter, r *http.Request) {
	if !s.checkPassword(r) {
		s.writeError(w, http.StatusUnauthorized, "invalid password")
		return
	}

	var req inspectorReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	now := time.Now()

	allowed, err := s.limiter.Allow(ctx, s.chatChannelID, now)
	if err != nil {
		errs.LogAndDrop(s.log, "rate_limit_check_failed", err)
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
		return
	}
	if !allowed {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Rate limited"})
		return
	}

	report, err := s.resolveAndSubmit(ctx, req, now)
	if err != nil {
		errs.LogAndDrop(s.log, "report_submit_failed", err)
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
		return
	}

	if s.notifier != nil && s.chatChannelID != "" {
		text := formatNotification(req)
		if err := s.notifier.Notify(ctx, s.chatChannelID, text); err != nil {
			errs.LogAndDrop(s.log, "chat_notify_failed", err)
		}
	}

	s.recordForRiskEngine(report, now)
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) handleMiniAppReport(w http.ResponseWriter, r *http.Request) {
	if !s.checkPassword(r) {
		s.writeError(w, http.StatusUnauthorized, "invalid password")
		return
	}

	var req inspectorReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	now := time.Now()

	report, err := s.resolveAndSubmit(ctx, req, now)
	if err != nil {
		errs.LogAndDrop(s.log, "report_submit_failed", err)
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
		return
	}

	s.recordForRiskEngine(report, now)
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// resolveAndSubmit resolves station/direction names to canonical catalog
// ids (unless the caller already supplied stationId) and submits the
// confirmed sighting, mirroring §4.D's contract for the form-driven ingress
// paths the same way internal/pipeline.ResolverStage does for the chat path.
func (s *Server) resolveAndSubmit(ctx context.Context, req inspectorReportRequest, now time.Time) (catalog.Report, error) {
	report := catalog.Report{
		Timestamp: now,
		Line:      req.Line,
		Message:   req.Message,
	}

	if req.StationID != nil {
		report.StationID = req.StationID
	} else if req.Station != nil {
		report.StationID = s.resolveName(ctx, *req.Station)
	}

	if req.Direction != nil {
		report.DirectionID = s.resolveName(ctx, *req.Direction)
	}

	if err := s.catalog.SubmitReport(ctx, report); err != nil {
		return report, fmt.Errorf("api: submit report: %w", err)
	}
	return report, nil
}

func (s *Server) resolveName(ctx context.Context, name string) *string {
	result := s.catalog.ResolveName(ctx, name)
	if result.Kind != errs.Resolved {
		return nil
	}
	id := result.ID
	return &id
}

func (s *Server) recordForRiskEngine(report catalog.Report, now time.Time) {
	if s.store == nil || report.Line == nil {
		return
	}
	s.store.Add(risk.Report{
		StationID:   report.StationID,
		Timestamp:   now,
		DirectionID: report.DirectionID,
		Lines:       []string{*report.Line},
	})
}

func formatNotification(req inspectorReportRequest) string {
	text := "🚨 Kontrolle gemeldet"
	if req.Line != nil {
		text += fmt.Sprintf(" auf %s", *req.Line)
	}
	if req.Station != nil {
		text += fmt.Sprintf(" an %s", *req.Station)
	}
	if req.Direction != nil {
		text += fmt.Sprintf(" Richtung %s", *req.Direction)
	}
	if req.Message != nil && *req.Message != "" {
		text += fmt.Sprintf(" (%s)", *req.Message)
	}
	return text
}

func (s *Server) handleSegmentColors(w http.ResponseWriter, r *http.Request) {
	reports := s.store.Snapshot(time.Now())

	_, end := tracing.StartRiskPredict(r.Context(), len(reports))
	colors := s.engine.Predict(reports, time.Now())
	end(len(colors))

	s.writeJSON(w, http.StatusOK, map[string]any{
		"last_modified":  time.Now().UTC().Format(time.RFC3339),
		"segment_colors": colors,
	})
}

const miniAppFormTemplate = `<!DOCTYPE html>
<html lang="de">
<head><meta charset="utf-8"><title>Kontrolle melden</title>%s</head>
<body>
<h1>Kontrolle melden</h1>
<form method="post" action="/mini-app/report">
  <label>Linie <input name="line"></label><br>
  <label>Station <input name="station"></label><br>
  <label>Richtung <input name="direction"></label><br>
  <label>Nachricht <input name="message"></label><br>
  <button type="submit">Melden</button>
</form>
</body>
</html>`

// handleRestart is the Go-native shape of the original bot's thread-level
// self-restart (restart_utils.RestartableThread): rather than recovering a
// single goroutine in place, it exits the whole process so its process
// supervisor (systemd, docker's restart policy) brings up a clean one —
// the process as the unit of restart, the way a long-running Go service
// usually recovers from a wedged background loop.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	if s.restartPassword == "" || r.Header.Get("X-Password") != s.restartPassword {
		s.writeError(w, http.StatusUnauthorized, "invalid password")
		return
	}

	s.log.Warn().Msg("restart requested, exiting for supervisor restart")
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
	go func() {
		time.Sleep(200 * time.Millisecond)
		os.Exit(0)
	}()
}

func (s *Server) handleMiniAppForm(w http.ResponseWriter, r *http.Request) {
	canonical := ""
	if s.miniAppPublicURL != "" {
		canonical = fmt.Sprintf(`<link rel="canonical" href=%q>`, s.miniAppPublicURL)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, miniAppFormTemplate, canonical)
}
