package config

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const apiTokenName = "api_token"

// SecretStore holds secrets outside config.json. The file implementation
// keeps them in a mode-0600 JSON file under the XDG data dir.
type SecretStore interface {
	Get(name string) (string, error)
	Set(name, value string) error
}

// NewSecretStore returns the file-backed secret store.
func NewSecretStore() SecretStore {
	return fileSecrets{path: secretsFilePath()}
}

func secretsFilePath() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".local", "share")
		} else {
			dir = "."
		}
	}
	return filepath.Join(dir, "seeqi", "secrets.json")
}

type fileSecrets struct {
	path string
}

func (f fileSecrets) Get(name string) (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("secret store not available: %w", err)
	}
	var secrets map[string]string
	if err := json.Unmarshal(data, &secrets); err != nil {
		return "", fmt.Errorf("parsing secrets file: %w", err)
	}
	val, ok := secrets[name]
	if !ok {
		return "", fmt.Errorf("secret %q not found", name)
	}
	return val, nil
}

func (f fileSecrets) Set(name, value string) error {
	var secrets map[string]string

	data, err := os.ReadFile(f.path)
	if err == nil {
		_ = json.Unmarshal(data, &secrets)
	}
	if secrets == nil {
		secrets = make(map[string]string)
	}
	secrets[name] = value

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating secrets dir: %w", err)
	}
	out, err := json.MarshalIndent(secrets, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, out, 0o600)
}

// GetAPIToken reads the bearer token for the management API.
// SEEQI_API_TOKEN overrides the secret store on all platforms.
func GetAPIToken(s SecretStore) (string, error) {
	if env := strings.TrimSpace(os.Getenv("SEEQI_API_TOKEN")); env != "" {
		return env, nil
	}
	token, err := s.Get(apiTokenName)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", fmt.Errorf("stored API token is empty")
	}
	return token, nil
}

// EnsureAPIToken returns the bearer token, generating and persisting a new
// random one on first run.
func EnsureAPIToken(s SecretStore) (string, error) {
	if token, err := GetAPIToken(s); err == nil {
		return token, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating API token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.Set(apiTokenName, token); err != nil {
		return "", fmt.Errorf("storing API token: %w", err)
	}
	return token, nil
}
