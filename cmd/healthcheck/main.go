package main

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/shotam27/NoGambleMonsterBattle/internal/constants"
)

// Probes the version route; exits non-zero when the server is down or does
// not answer with a version payload.
func main() {
	url := os.Getenv(constants.EnvHealthcheckURL)
	if url == "" {
		url = constants.DefaultHealthcheck
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	var body struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Version == "" {
		os.Exit(1)
	}
	os.Exit(0)
}
