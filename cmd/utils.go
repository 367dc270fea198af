package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/wave-app/wave/internal/classify"
	"github.com/wave-app/wave/internal/config"
	"github.com/wave-app/wave/internal/utils"
)

// defaultPortBase is where auto-discovery starts probing.
const defaultPortBase = 4650

var appLock *flock.Flock

// AcquireLock tries to become the single running wave instance.
func AcquireLock() (bool, error) {
	if err := config.EnsureDirs(); err != nil {
		return false, err
	}
	appLock = flock.New(filepath.Join(config.GetWaveDir(), "wave.lock"))
	return appLock.TryLock()
}

// ReleaseLock releases the single-instance lock.
func ReleaseLock() error {
	if appLock == nil {
		return nil
	}
	return appLock.Unlock()
}

// findAvailablePort probes ports starting at base and returns the
// first one that binds.
func findAvailablePort(base int) (int, net.Listener) {
	for port := base; port < base+16; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
		if err == nil {
			return port, listener
		}
	}
	return 0, nil
}

func portFilePath() string {
	return filepath.Join(config.GetWaveDir(), "port")
}

// saveActivePort records the API port for CLI discovery.
func saveActivePort(port int) {
	os.WriteFile(portFilePath(), []byte(fmt.Sprintf("%d", port)), 0o644)
}

func removeActivePort() {
	os.Remove(portFilePath())
}

// readActivePort reads the port of a running instance, or 0.
func readActivePort() int {
	data, err := os.ReadFile(portFilePath())
	if err != nil {
		return 0
	}
	var port int
	fmt.Sscanf(string(data), "%d", &port)
	return port
}

// remoteFromSettings builds the remote classifier from settings, or
// nil when none is configured, honoring the configured timeout.
func remoteFromSettings(s *config.Settings) *classify.Remote {
	if s.Classifier.RemoteURL == "" {
		return nil
	}
	remote := classify.NewRemote(s.Classifier.RemoteURL, s.Classifier.RemoteToken)
	if s.Classifier.RemoteTimeout > 0 {
		remote.Client.Timeout = s.Classifier.RemoteTimeout
	}
	return remote
}

// ensureAuthToken returns the API token, generating and persisting
// one on first use so CLI invocations and the server agree.
func ensureAuthToken() string {
	tokenFile := filepath.Join(config.GetWaveDir(), "token")
	data, err := os.ReadFile(tokenFile)
	if err == nil {
		return strings.TrimSpace(string(data))
	}

	token := uuid.New().String()
	if err := os.WriteFile(tokenFile, []byte(token), 0o600); err != nil {
		utils.Debug("failed to persist auth token: %v", err)
	}
	return token
}

// serverAlive checks whether a wave instance answers on port.
func serverAlive(port int) bool {
	client := &http.Client{Timeout: 500 * time.Millisecond}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// postToServer sends a JSON payload to the running instance and
// decodes the JSON response into out (when out is non-nil).
func postToServer(port int, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("http://127.0.0.1:%d%s", port, path)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+ensureAuthToken())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("server error: %s - %s", resp.Status, string(errBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding server response: %w", err)
		}
	}
	return nil
}

// getFromServer fetches JSON from the running instance.
func getFromServer(port int, path string, out any) error {
	url := fmt.Sprintf("http://127.0.0.1:%d%s", port, path)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+ensureAuthToken())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("server error: %s - %s", resp.Status, string(errBody))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
