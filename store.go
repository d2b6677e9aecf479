package twitter

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteJSON writes v as indented JSON to path, replacing any previous
// content. The data goes to a temp file in the same directory first and is
// renamed into place, so readers never see a half-written file.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// TimelineStore is the accumulating post file shared by every account in a
// run. Each Merge reads the whole file back, folds the new posts in and
// rewrites it.
type TimelineStore struct {
	Path string
}

// Load returns the persisted posts. A file that does not exist yet is an
// empty set.
func (t *TimelineStore) Load() ([]Post, error) {
	data, err := os.ReadFile(t.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read timeline %s: %w", t.Path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var posts []Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("unmarshal timeline %s: %w", t.Path, err)
	}
	return posts, nil
}

// Merge folds posts into the persisted set and rewrites the file. It returns
// the set that was written.
func (t *TimelineStore) Merge(posts []Post) ([]Post, error) {
	existing, err := t.Load()
	if err != nil {
		return nil, err
	}
	merged := MergePosts(existing, posts)
	if err := WriteJSON(t.Path, merged); err != nil {
		return nil, fmt.Errorf("write timeline: %w", err)
	}
	return merged, nil
}

// MergePosts appends incoming to existing, keeps the first post for each
// body text and then drops posts with a missing field. The result is never
// nil so an empty set is written as [].
func MergePosts(existing, incoming []Post) []Post {
	seen := make(map[string]bool, len(existing)+len(incoming))
	merged := make([]Post, 0, len(existing)+len(incoming))
	for _, batch := range [][]Post{existing, incoming} {
		for _, p := range batch {
			if seen[p.Text] {
				continue
			}
			seen[p.Text] = true
			if p.Complete() {
				merged = append(merged, p)
			}
		}
	}
	return merged
}

// ReadUsernames reads one account per line from path. Lines are trimmed,
// a leading "@" is dropped and blank lines are skipped.
func ReadUsernames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open usernames %s: %w", path, err)
	}
	defer f.Close()

	var usernames []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name := strings.TrimPrefix(strings.TrimSpace(sc.Text()), "@")
		if name == "" {
			continue
		}
		usernames = append(usernames, name)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read usernames %s: %w", path, err)
	}
	return usernames, nil
}
