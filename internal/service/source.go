package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxSourceBytes bounds how much of a remote or local sheet is read.
const maxSourceBytes = 32 << 20

// Source yields the raw bytes of a knowledge sheet.
type Source interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
}

// SourceFor picks a URL source for http(s) locations and a file source otherwise.
func SourceFor(location string) Source {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return &URLSource{URL: location}
	}
	return &FileSource{Path: location}
}

type FileSource struct {
	Path string
}

func (s *FileSource) Name() string { return s.Path }

// Resolve finds the file as given, relative to the working directory, or next
// to the running binary.
func (s *FileSource) Resolve() (string, error) {
	if _, err := os.Stat(s.Path); err == nil {
		return s.Path, nil
	}
	if !filepath.IsAbs(s.Path) {
		if exe, err := os.Executable(); err == nil {
			candidate := filepath.Join(filepath.Dir(exe), s.Path)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("csv file not found at path: %s", s.Path)
}

func (s *FileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(s.Path, err)
	}
	path, err := s.Resolve()
	if err != nil {
		return nil, unavailable(s.Path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, unavailable(s.Path, err)
	}
	defer f.Close()

	return readLimited(s.Path, f)
}

// readLimited reads all of r, failing instead of truncating when the content
// is larger than maxSourceBytes.
func readLimited(name string, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSourceBytes+1))
	if err != nil {
		return nil, unavailable(name, err)
	}
	if len(data) > maxSourceBytes {
		return nil, unavailable(name, fmt.Errorf("source exceeds %d bytes", maxSourceBytes))
	}
	return data, nil
}

type URLSource struct {
	URL    string
	Client *http.Client
}

func (s *URLSource) Name() string { return s.URL }

func (s *URLSource) Read(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, unavailable(s.URL, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, unavailable(s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unavailable(s.URL, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	return readLimited(s.URL, resp.Body)
}

// BytesSource wraps content already in memory, e.g. an upload.
type BytesSource struct {
	FileName string
	Content  []byte
}

func (s *BytesSource) Name() string { return s.FileName }

func (s *BytesSource) Read(ctx context.Context) ([]byte, error) {
	if len(s.Content) == 0 {
		return nil, unavailable(s.FileName, fmt.Errorf("empty content"))
	}
	return s.Content, nil
}
