// Package api serves a read-only JSON view of experiment progress so the
// lab can check on subjects without interrupting a running session.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/primate/internal/catalog"
	"github.com/abhisek/primate/internal/progress"
	"github.com/abhisek/primate/internal/scheduler"
	"github.com/abhisek/primate/internal/store"
)

// Deps are the handler's collaborators. Events may be nil, in which case
// the trials route answers 503.
type Deps struct {
	Catalog      *catalog.Catalog
	Scheduler    *scheduler.Scheduler
	ProgressPath string
	Events       store.EventRepo
	Logger       *slog.Logger
}

type Handler struct {
	deps Deps
}

func NewHandler(deps Deps) *Handler {
	return &Handler{deps: deps}
}

type conditionView struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	AssetPath   string `json:"asset_path"`
}

type subjectSummary struct {
	Name              string `json:"name"`
	Done              bool   `json:"done"`
	ConditionsStarted int    `json:"conditions_started"`
	ConditionsDone    int    `json:"conditions_done"`
}

type conditionProgress struct {
	ID             string `json:"id"`
	DisplayName    string `json:"display_name"`
	Started        bool   `json:"started"`
	NextTrialIndex int    `json:"next_trial_index"`
	Remaining      int    `json:"remaining"`
	LastPlayed     bool   `json:"last_played"`
}

type trialView struct {
	Sequence          int64     `json:"sequence"`
	SessionID         string    `json:"session_id"`
	Subject           string    `json:"subject"`
	Condition         string    `json:"condition"`
	TrialIndex        int       `json:"trial_index"`
	Card              string    `json:"card"`
	Pellets           int       `json:"pellets"`
	BackgroundTouches int       `json:"background_touches"`
	VideoTouches      int       `json:"video_touches"`
	LatencySeconds    float64   `json:"latency_seconds"`
	Timestamp         time.Time `json:"timestamp"`
}

// ListConditions returns the catalog in scheduling order.
func (h *Handler) ListConditions(c *gin.Context) {
	ids := h.deps.Catalog.List()
	out := make([]conditionView, 0, len(ids))
	for _, id := range ids {
		out = append(out, conditionView{
			ID:          id,
			DisplayName: catalog.DisplayName(id),
			AssetPath:   h.deps.Catalog.AssetPath(id),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"total_trials": h.deps.Scheduler.TotalTrials(),
		"conditions":   out,
	})
}

// ListSubjects returns every subject with a short progress summary.
func (h *Handler) ListSubjects(c *gin.Context) {
	roster, ok := h.loadRoster(c)
	if !ok {
		return
	}
	out := make([]subjectSummary, 0, len(roster.Subjects()))
	for _, subj := range roster.Subjects() {
		sum := subjectSummary{Name: subj.Name, Done: h.deps.Scheduler.IsDone(subj)}
		for _, id := range h.deps.Scheduler.Conditions() {
			if _, started := subj.Progress(id); !started {
				continue
			}
			sum.ConditionsStarted++
			if h.deps.Scheduler.Remaining(subj, id) == 0 {
				sum.ConditionsDone++
			}
		}
		out = append(out, sum)
	}
	c.JSON(http.StatusOK, gin.H{"subjects": out})
}

// GetSubject returns per-condition progress for one subject.
func (h *Handler) GetSubject(c *gin.Context) {
	roster, ok := h.loadRoster(c)
	if !ok {
		return
	}
	subj, err := roster.Subject(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conds := make([]conditionProgress, 0, h.deps.Catalog.Len())
	for _, id := range h.deps.Scheduler.Conditions() {
		p, started := subj.Progress(id)
		conds = append(conds, conditionProgress{
			ID:             id,
			DisplayName:    catalog.DisplayName(id),
			Started:        started,
			NextTrialIndex: p.NextTrialIndex,
			Remaining:      h.deps.Scheduler.Remaining(subj, id),
			LastPlayed:     p.LastPlayed,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"name":       subj.Name,
		"done":       h.deps.Scheduler.IsDone(subj),
		"conditions": conds,
	})
}

// ListTrials returns mirrored trial events for one subject, newest first.
// Query parameters: condition, limit, after.
func (h *Handler) ListTrials(c *gin.Context) {
	if h.deps.Events == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "trial store not configured"})
		return
	}
	roster, ok := h.loadRoster(c)
	if !ok {
		return
	}
	name := c.Param("name")
	if _, err := roster.Subject(name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	opts := store.QueryOpts{Subject: name, Condition: c.Query("condition")}
	var err error
	if opts.Limit, err = intQuery(c, "limit"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	after, err := intQuery(c, "after")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	opts.After = int64(after)

	records, err := h.deps.Events.QueryTrials(c.Request.Context(), opts)
	if err != nil {
		h.deps.Logger.Error("query trials failed", "subject", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]trialView, 0, len(records))
	for _, r := range records {
		out = append(out, trialView{
			Sequence:          r.Sequence,
			SessionID:         r.SessionID,
			Subject:           r.Subject,
			Condition:         r.Condition,
			TrialIndex:        r.TrialIndex,
			Card:              r.Card,
			Pellets:           r.Pellets,
			BackgroundTouches: r.BackgroundTouches,
			VideoTouches:      r.VideoTouches,
			LatencySeconds:    r.Latency.Seconds(),
			Timestamp:         r.Timestamp,
		})
	}
	c.JSON(http.StatusOK, gin.H{"trials": out})
}

// loadRoster re-reads the progress file so the API never serves state a
// running session has not yet committed. A missing file is an empty roster.
func (h *Handler) loadRoster(c *gin.Context) (*progress.Roster, bool) {
	roster, err := progress.Load(h.deps.ProgressPath)
	if errors.Is(err, progress.ErrProgressFileMissing) {
		roster, err = progress.NewRoster()
	}
	if err == nil {
		err = roster.Validate(h.deps.Scheduler.TotalTrials())
	}
	if err != nil {
		h.deps.Logger.Error("load progress failed", "path", h.deps.ProgressPath, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return roster, true
}

func intQuery(c *gin.Context, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New("invalid " + key + ": " + v)
	}
	return n, nil
}
