package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceFor(t *testing.T) {
	assert.IsType(t, &URLSource{}, SourceFor("https://example.com/kb.csv"))
	assert.IsType(t, &URLSource{}, SourceFor("HTTP://example.com/kb.csv"))
	assert.IsType(t, &FileSource{}, SourceFor("kb.csv"))
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.csv")
	require.NoError(t, os.WriteFile(path, []byte(policyCSV), 0o644))

	data, err := (&FileSource{Path: path}).Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, policyCSV, string(data))

	_, err = (&FileSource{Path: path + ".missing"}).Read(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = (&FileSource{Path: path}).Read(ctx)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestFileSourceRejectsOversizedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	_, err = f.WriteString("Nodes,Sub-type / VOC,Gold\nFirst Issue,first example text,Refund\n")
	require.NoError(t, err)
	require.NoError(t, f.Truncate(maxSourceBytes+1))
	require.NoError(t, f.Close())

	_, err = (&FileSource{Path: path}).Read(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "exceeds")

	s := loadedService(t, SummaryOptions{})
	before := s.Snapshot()
	_, err = s.Load(context.Background(), &FileSource{Path: path})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Same(t, before, s.Snapshot())
}

func TestReadLimitedAcceptsExactLimit(t *testing.T) {
	data, err := readLimited("kb.csv", io.LimitReader(zeroReader{}, maxSourceBytes))
	require.NoError(t, err)
	assert.Len(t, data, maxSourceBytes)
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestURLSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/kb.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(policyCSV))
	}))
	defer srv.Close()

	data, err := (&URLSource{URL: srv.URL + "/kb.csv", Client: srv.Client()}).Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, policyCSV, string(data))

	_, err = (&URLSource{URL: srv.URL + "/other.csv"}).Read(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestBytesSource(t *testing.T) {
	_, err := (&BytesSource{FileName: "x.csv"}).Read(context.Background())
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}
