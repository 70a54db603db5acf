//go:build !js
// +build !js

// Dev server for the presentation: serves the shell page, the compiled
// script, and the JSON content payloads a real backend would provide.
package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Fragment mirrors the content payload's fragment entries.
type Fragment struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Tier      string  `json:"tier"`
	Threshold float64 `json:"threshold"`
}

// Content is one narrative day as served to the presentation host.
type Content struct {
	Day       int        `json:"day"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Fragments []Fragment `json:"fragments"`
}

// days is the canned content set. A production deployment would back this
// with storage or a generative endpoint; the core only ever sees the JSON.
var days = []Content{
	{
		Day:   1,
		Title: "DAY 1 — SUB-000 LOG",
		Body: "The hum settled an hour after waking. Readings hold steady. " +
			"I can still name every corridor from memory.",
		Fragments: []Fragment{
			{ID: "d1-a", Text: "every corridor", Tier: "stable", Threshold: 0.2},
			{ID: "d1-b", Text: "an hour after", Tier: "fraying", Threshold: 0.4},
		},
	},
	{
		Day:   4,
		Title: "DAY 4 — SUB-000 LOG",
		Body: "Something slips between readings now. The names come slower. " +
			"I wrote them on my arm so the morning version of me believes it.",
		Fragments: []Fragment{
			{ID: "d4-a", Text: "the morning version", Tier: "fraying", Threshold: 0.15},
			{ID: "d4-b", Text: "believes it", Tier: "fragmented", Threshold: 0.3},
		},
	},
	{
		Day:   9,
		Title: "DAY 9 — SUB-000 LOG",
		Body: "The corridor has no name. The hum is inside the walls or inside me. " +
			"Hold the line. Hold the line.",
		Fragments: []Fragment{
			{ID: "d9-a", Text: "inside me", Tier: "fragmented", Threshold: 0.1},
			{ID: "d9-b", Text: "hold the line", Tier: "critical", Threshold: 0.25},
		},
	},
}

type server struct {
	log *zap.Logger
}

// handleContent serves the full day list, or a single day via ?day=N.
func (s *server) handleContent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	q := r.URL.Query().Get("day")
	if q == "" {
		if err := json.NewEncoder(w).Encode(days); err != nil {
			s.log.Warn("encode content list", zap.Error(err))
		}
		return
	}

	n, err := strconv.Atoi(q)
	if err != nil {
		http.Error(w, "bad day", http.StatusBadRequest)
		return
	}
	for _, d := range days {
		if d.Day == n {
			if err := json.NewEncoder(w).Encode(d); err != nil {
				s.log.Warn("encode content", zap.Error(err))
			}
			return
		}
	}
	http.NotFound(w, r)
}

// withLogging wraps a handler with request logging.
func (s *server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dir := flag.String("dir", ".", "directory with the compiled script")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	s := &server{log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/", serveIndex)
	mux.HandleFunc("/content", s.handleContent)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(*dir))))

	log.Info("serving", zap.String("addr", *addr))
	if err := http.ListenAndServe(*addr, s.withLogging(mux)); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
