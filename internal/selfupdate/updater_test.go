package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformAsset(t *testing.T) {
	tests := []struct {
		os, arch string
		want     string
	}{
		{"darwin", "amd64", "hashboard_Darwin_all.tar.gz"},
		{"darwin", "arm64", "hashboard_Darwin_all.tar.gz"},
		{"linux", "amd64", "hashboard_Linux_x86_64.tar.gz"},
		{"linux", "arm64", "hashboard_Linux_arm64.tar.gz"},
		{"linux", "386", "hashboard_Linux_i386.tar.gz"},
		{"windows", "amd64", "hashboard_Windows_x86_64.zip"},
		{"windows", "arm64", "hashboard_Windows_arm64.zip"},
	}
	for _, tt := range tests {
		t.Run(tt.os+"/"+tt.arch, func(t *testing.T) {
			got, err := platform{tt.os, tt.arch}.asset()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, p := range []platform{{"freebsd", "amd64"}, {"linux", "mips"}, {"windows", "riscv64"}} {
		_, err := p.asset()
		assert.ErrorIs(t, err, ErrUnsupported, p.os+"/"+p.arch)
	}
}

func TestParseChecksums(t *testing.T) {
	got := parseChecksums([]byte(
		"abc123  hashboard_Darwin_all.tar.gz\n" +
			"badline\n" +
			"   \n" +
			"foo  bar  baz\n" +
			"def456  hashboard_Linux_x86_64.tar.gz"))

	assert.Equal(t, map[string]string{
		"hashboard_Darwin_all.tar.gz":   "abc123",
		"hashboard_Linux_x86_64.tar.gz": "def456",
	}, got)
	assert.Empty(t, parseChecksums(nil))
}

func TestVerifyChecksum(t *testing.T) {
	data := []byte("hashboard")
	sum := sha256.Sum256(data)
	good := hex.EncodeToString(sum[:])

	assert.NoError(t, verifyChecksum(data, good))
	assert.NoError(t, verifyChecksum(data, strings.ToUpper(good)), "hex case does not matter")
	assert.ErrorIs(t, verifyChecksum(data, strings.Repeat("0", 64)), ErrChecksum)
}

func TestExtract(t *testing.T) {
	content := []byte("#!/bin/sh\necho hashboard")

	got, err := platform{"linux", "amd64"}.extract(tarGz(t, "dist/hashboard", content))
	require.NoError(t, err)
	assert.Equal(t, content, got)

	got, err = platform{"windows", "amd64"}.extract(zipped(t, "hashboard.exe", content))
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = platform{"darwin", "arm64"}.extract(tarGz(t, "README.md", content))
	assert.ErrorContains(t, err, "not found")

	_, err = platform{"windows", "amd64"}.extract(zipped(t, "hashboard", content))
	assert.ErrorContains(t, err, "not found")

	_, err = platform{"linux", "amd64"}.extract([]byte("not gzip"))
	assert.ErrorContains(t, err, "open gzip")
}

func TestReplaceBinaryKeepsMode(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "hashboard")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))

	require.NoError(t, replaceBinary(target, []byte("new-binary")))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("new-binary"), got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no staged file left behind")
}

func TestReplaceBinaryMissingTarget(t *testing.T) {
	err := replaceBinary(filepath.Join(t.TempDir(), "gone"), []byte("x"))
	assert.ErrorContains(t, err, "stat target")
}

// releaseFiles serves a release API plus tag v2.0.0 downloads from files.
func releaseFiles(t *testing.T, latest string, files map[string][]byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repos/abhisek/hashboard/releases/latest" {
			_, _ = w.Write([]byte(`{"tag_name":"` + latest + `","html_url":"https://example.com/` + latest + `"}`))
			return
		}
		name, ok := strings.CutPrefix(r.URL.Path, "/abhisek/hashboard/releases/download/v2.0.0/")
		data, found := files[name]
		if !ok || !found {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(data)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestUpdate(t *testing.T) {
	content := []byte("new-hashboard-binary")
	archive := tarGz(t, "hashboard", content)
	sum := sha256.Sum256(archive)

	t.Run("replaces the executable", func(t *testing.T) {
		asset := hostAsset(t)
		execPath := filepath.Join(t.TempDir(), "hashboard")
		require.NoError(t, os.WriteFile(execPath, []byte("old"), 0o755))

		server := releaseFiles(t, "v2.0.0", map[string][]byte{
			asset:           archive,
			"checksums.txt": []byte(hex.EncodeToString(sum[:]) + "  " + asset + "\n"),
		})
		checker := NewChecker(
			WithBaseURL(server.URL),
			WithDownloadBaseURL(server.URL),
			withExecPath(func() (string, error) { return execPath, nil }),
		)

		var stages []string
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(p UpdateProgress) {
			stages = append(stages, p.Stage)
		})
		require.NoError(t, err)

		got, err := os.ReadFile(execPath)
		require.NoError(t, err)
		assert.Equal(t, content, got)
		assert.Equal(t, []string{StageCheck, StageDownload, StageVerify, StageExtract, StageApply, StageDone}, stages)
	})

	t.Run("pinned version skips the check", func(t *testing.T) {
		asset := hostAsset(t)
		execPath := filepath.Join(t.TempDir(), "hashboard")
		require.NoError(t, os.WriteFile(execPath, []byte("old"), 0o755))

		server := releaseFiles(t, "v1.0.0", map[string][]byte{
			asset:           archive,
			"checksums.txt": []byte(hex.EncodeToString(sum[:]) + "  " + asset + "\n"),
		})
		checker := NewChecker(
			WithBaseURL(server.URL),
			WithDownloadBaseURL(server.URL),
			withExecPath(func() (string, error) { return execPath, nil }),
		)

		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0", TargetVersion: "v2.0.0"}, nil)
		require.NoError(t, err)
	})

	t.Run("dev build", func(t *testing.T) {
		err := NewChecker().Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, nil)
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("already latest", func(t *testing.T) {
		server := releaseFiles(t, "v1.0.0", nil)
		err := NewChecker(WithBaseURL(server.URL)).
			Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		asset := hostAsset(t)
		server := releaseFiles(t, "v2.0.0", map[string][]byte{
			asset:           archive,
			"checksums.txt": []byte(strings.Repeat("0", 64) + "  " + asset + "\n"),
		})
		err := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL)).
			Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("asset missing from checksums", func(t *testing.T) {
		asset := hostAsset(t)
		server := releaseFiles(t, "v2.0.0", map[string][]byte{
			asset:           archive,
			"checksums.txt": []byte(hex.EncodeToString(sum[:]) + "  other.tar.gz\n"),
		})
		err := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL)).
			Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("download failure", func(t *testing.T) {
		hostAsset(t)
		server := releaseFiles(t, "v2.0.0", nil)
		err := NewChecker(WithBaseURL(server.URL), WithDownloadBaseURL(server.URL)).
			Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, nil)
		assert.ErrorContains(t, err, "download archive")
	})
}

// hostAsset is the release asset for the machine running the tests. Only
// tar.gz hosts are exercised end to end.
func hostAsset(t *testing.T) string {
	t.Helper()
	p := hostPlatform()
	asset, err := p.asset()
	if err != nil || p.os == "windows" {
		t.Skip("no tar.gz release asset for this platform")
	}
	return asset
}

func tarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name:     name,
		Size:     int64(len(content)),
		Mode:     0o755,
		Typeflag: tar.TypeReg,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func zipped(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
