package main

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/brensch/behaviortree"
)

// server bundles everything an HTTP handler needs: the simulated world, a
// live websocket hub, the GCS archiver, the failure-streak alerter, and a
// stable session ID identifying this run for snapshot object names.
type server struct {
	world     *World
	hub       *liveHub
	archiver  *archiver
	alerter   *failureStreakAlerter
	sessionID string
}

func newServer(world *World, hub *liveHub, arc *archiver, alerter *failureStreakAlerter) *server {
	return &server{
		world:     world,
		hub:       hub,
		archiver:  arc,
		alerter:   alerter,
		sessionID: uuid.NewString(),
	}
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"name":       "btreedemo",
		"session_id": s.sessionID,
		"tree":       "sentry_guard",
	})
}

// handleTick steps the world one tick, broadcasts the resulting trace to
// any connected live clients, archives a snapshot, feeds the failure-streak
// alerter, and reports the chosen action.
func (s *server) handleTick(w http.ResponseWriter, r *http.Request) {
	action, trace := s.world.Step()

	s.hub.Broadcast(trace)
	if err := s.archiver.ArchiveSnapshot(r.Context(), s.sessionID, trace); err != nil {
		writeJSON(w, map[string]string{"warning": err.Error()})
	}

	s.alerter.Observe(rootStatusOf(trace))

	writeJSON(w, map[string]any{
		"tick":   trace.Tick,
		"action": string(action),
	})
}

// rootStatusOf reports the status the root node exited with on this tick.
// The root is always the last event recorded, since collectingObserver
// appends on OnExit in post-order.
func rootStatusOf(trace collectedTrace) behaviortree.Status {
	if len(trace.Events) == 0 {
		return behaviortree.Running
	}
	switch trace.Events[len(trace.Events)-1].Status {
	case "Success":
		return behaviortree.Success
	case "Failure":
		return behaviortree.Failure
	default:
		return behaviortree.Running
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
