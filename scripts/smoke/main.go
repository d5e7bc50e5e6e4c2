package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Body     string `json:"body,omitempty"`
	Critical bool   `json:"critical"`
}

type config struct {
	Targets []target `json:"targets"`
}

type probe struct {
	Target   target
	Status   int
	Err      error
	Duration time.Duration
}

func main() {
	baseURL := flag.String("base", "http://localhost:8080", "API base URL")
	configPath := flag.String("config", "scripts/smoke/targets.json", "target list")
	token := flag.String("token", "", "bearer token for authenticated routes")
	timeout := flag.Duration("timeout", 10*time.Second, "per-request timeout")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	client := &http.Client{Timeout: *timeout}

	var failures int
	for _, t := range cfg.Targets {
		p := run(client, *baseURL, *token, t)
		status := "ok"
		if p.Err != nil || p.Status >= 500 {
			status = "FAIL"
			if t.Critical {
				failures++
			}
		}
		fmt.Printf("%-6s %-50s %3d %8s %s\n", t.Method, t.Path, p.Status, p.Duration.Round(time.Millisecond), status)
		if p.Err != nil {
			fmt.Printf("       error: %v\n", p.Err)
		}
	}

	if failures > 0 {
		fmt.Printf("\n%d critical probe(s) failed\n", failures)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func run(client *http.Client, base, token string, t target) probe {
	start := time.Now()

	var body io.Reader
	if t.Body != "" {
		body = strings.NewReader(t.Body)
	}
	req, err := http.NewRequest(t.Method, base+t.Path, body)
	if err != nil {
		return probe{Target: t, Err: err, Duration: time.Since(start)}
	}
	if t.Body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return probe{Target: t, Err: err, Duration: time.Since(start)}
	}
	defer resp.Body.Close() //nolint:errcheck
	_, _ = io.Copy(io.Discard, resp.Body)

	return probe{Target: t, Status: resp.StatusCode, Duration: time.Since(start)}
}
