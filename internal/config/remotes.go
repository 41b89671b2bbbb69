package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// RemotesConfig holds all named remotes and tracks which one is active.
type RemotesConfig struct {
	Active  string            `toml:"active"`
	Remotes map[string]Remote `toml:"remotes"`
}

// Remote is a named server profile. UserID is the backend id of the operator
// behind this remote; the board's "mine" filter compares against it.
type Remote struct {
	URL     string `toml:"url"`
	Token   string `toml:"token,omitempty"`
	NATSURL string `toml:"nats_url,omitempty"`
	UserID  string `toml:"user_id,omitempty"`
}

// RemotesPath returns the path of the remotes file, creating its directory.
func RemotesPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "state", "trak")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "remotes.toml"), nil
}

// LoadRemotes reads the remotes file at path. A missing file yields an empty,
// usable configuration.
func LoadRemotes(path string) (RemotesConfig, error) {
	var cfg RemotesConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return RemotesConfig{Remotes: map[string]Remote{}}, nil
		}
		return RemotesConfig{}, err
	}
	if cfg.Remotes == nil {
		cfg.Remotes = map[string]Remote{}
	}
	return cfg, nil
}

// SaveRemotes writes the remotes file at path with owner-only permissions
// (it may hold tokens).
func SaveRemotes(path string, cfg RemotesConfig) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// ActiveRemote returns the remote the Active key points at.
func (c RemotesConfig) ActiveRemote() (Remote, error) {
	if c.Active == "" {
		return Remote{}, fmt.Errorf("no active remote configured")
	}
	r, ok := c.Remotes[c.Active]
	if !ok {
		return Remote{}, fmt.Errorf("active remote %q not found", c.Active)
	}
	return r, nil
}
