// Command btreedemo runs an illustrative sentry-guard NPC over the
// behaviortree engine: a simulated world perturbs blackboard inputs, scores
// three candidate actions through the Reasoner, ticks a UtilitySelector
// tree, and exposes the result over HTTP, a live websocket feed, and
// periodic Cloud Storage snapshots, alerting via Discord if the guard's
// tree starts failing. It is demo tooling, not part of the module's API.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

func getSecret(secretName string) (string, error) {
	if secretName == "" {
		return "", nil
	}
	ctx := context.Background()
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: secretName})
	if err != nil {
		return "", err
	}
	return string(result.Payload.GetData()), nil
}

func main() {
	slog.SetDefault(slog.New(newCloudHandler(os.Stdout, slog.LevelInfo)))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	webhookURL := os.Getenv("BTREEDEMO_DISCORD_WEBHOOK")
	if secretName := os.Getenv("BTREEDEMO_DISCORD_SECRET"); secretName != "" {
		secret, err := getSecret(secretName)
		if err != nil {
			slog.Error("failed to retrieve discord webhook secret", "error", err.Error())
		} else {
			webhookURL = secret
		}
	}

	bucket := os.Getenv("BTREEDEMO_BUCKET")

	world := NewWorld(time.Now().UnixNano())
	hub := newLiveHub()
	arc := newArchiver(bucket)
	alerter := newFailureStreakAlerter(webhookURL, "sentry_guard", 5)
	srv := newServer(world, hub, arc, alerter)

	slog.Info("starting btreedemo", "port", port, "session_id", srv.sessionID)
	_ = sendDiscordWebhook(webhookURL, "btreedemo starting up", nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleIndex)
	mux.HandleFunc("/tick", srv.handleTick)
	mux.HandleFunc("/live", hub.ServeHTTP)

	go runTicker(srv)

	log.Fatal(http.ListenAndServe(":"+port, mux))
}

// runTicker advances the world once a second so the live feed and
// periodic archive have something to show without requiring a client to
// poll /tick.
func runTicker(srv *server) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for range ticker.C {
		action, trace := srv.world.Step()
		srv.hub.Broadcast(trace)
		if err := srv.archiver.ArchiveSnapshot(context.Background(), srv.sessionID, trace); err != nil {
			slog.Warn("failed to archive tick snapshot", "error", err.Error())
		}
		srv.alerter.Observe(rootStatusOf(trace))
		slog.Debug("tick", "tick", trace.Tick, "action", action)
	}
}
