// Package assets copies presentation assets from local paths or remote
// hosts into a deck's assets directory.
package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Entry is one item of an assets manifest.
type Entry struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	RemoteHost  string `json:"remote_host,omitempty"`
	RemoteUser  string `json:"remote_user,omitempty"`
}

// Remote reports whether the entry is fetched over scp.
func (e Entry) Remote() bool {
	return e.RemoteHost != "" && e.RemoteUser != ""
}

// LoadManifest reads a JSON array of entries from path.
func LoadManifest(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("assets: parsing %s: %w", path, err)
	}
	if t := strings.TrimSpace(string(raw)); !strings.HasPrefix(t, "[") {
		return nil, fmt.Errorf("assets: %s must contain a JSON array", path)
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("assets: parsing %s: %w", path, err)
	}
	return entries, nil
}

// Summary counts the outcome of a retrieval run.
type Summary struct {
	Succeeded int
	Failed    int
}

func (s Summary) String() string {
	return fmt.Sprintf("Completed: %d succeeded, %d failed", s.Succeeded, s.Failed)
}

// Retriever copies manifest entries under Dir.
type Retriever struct {
	Dir    string // destination root, "assets" if empty
	Logger *slog.Logger

	// scp fetches remote into dest. Tests replace it.
	scp func(ctx context.Context, remote, dest string) error
}

// NewRetriever returns a Retriever writing under dir.
func NewRetriever(dir string, logger *slog.Logger) *Retriever {
	if dir == "" {
		dir = "assets"
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Retriever{Dir: dir, Logger: logger, scp: runSCP}
}

// Run retrieves every entry. A failed entry does not stop the others.
func (r *Retriever) Run(ctx context.Context, entries []Entry) Summary {
	var sum Summary
	for _, e := range entries {
		if e.Source == "" || e.Destination == "" {
			r.Logger.Warn("assets: skipping invalid entry", "source", e.Source, "destination", e.Destination)
			sum.Failed++
			continue
		}
		dest := filepath.Join(r.Dir, e.Destination)

		var err error
		if e.Remote() {
			remote := e.RemoteUser + "@" + e.RemoteHost + ":" + e.Source
			r.Logger.Info("assets: copying", "mode", "remote", "source", remote, "destination", dest)
			err = r.copyRemote(ctx, remote, dest)
		} else {
			r.Logger.Info("assets: copying", "mode", "local", "source", e.Source, "destination", dest)
			err = copyLocal(e.Source, dest)
		}
		if err != nil {
			r.Logger.Error("assets: copy failed", "source", e.Source, "error", err)
			sum.Failed++
			continue
		}
		sum.Succeeded++
	}
	return sum
}

// HasRemote reports whether any entry needs scp.
func HasRemote(entries []Entry) bool {
	for _, e := range entries {
		if e.Remote() {
			return true
		}
	}
	return false
}

// AgentKeys lists the keys loaded in ssh-agent.
func AgentKeys(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "ssh-add", "-l").CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

func (r *Retriever) copyRemote(ctx context.Context, remote, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return r.scp(ctx, remote, dest)
}

func runSCP(ctx context.Context, remote, dest string) error {
	out, err := exec.CommandContext(ctx, "scp", "-r", remote, dest).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("scp: %s: %w", msg, err)
		}
		return fmt.Errorf("scp: %w", err)
	}
	return nil
}

// copyLocal copies a file or directory tree to dest, overwriting files.
// Like cp -r, an existing directory dest receives src under its own name.
func copyLocal(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if di, err := os.Stat(dest); err == nil && di.IsDir() {
		dest = filepath.Join(dest, filepath.Base(src))
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	if !info.IsDir() {
		return copyFile(src, dest, info.Mode().Perm())
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, fi.Mode().Perm())
	})
}

func copyFile(src, dest string, perm fs.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()
	_, err = io.Copy(out, in)
	return err
}
