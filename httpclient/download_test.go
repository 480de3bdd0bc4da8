package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestDownload_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/report.csv" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte("a,b\n1,2\n"))
	}))
	defer srv.Close()

	fs := afero.NewMemMapFs()
	d := newTestDispatcher(t, srv.URL, WithFileSystem(fs))

	env := Download(context.Background(), d, "/files/report.csv", "out/nested/report.csv")
	if !env.IsSuccess {
		t.Fatalf("expected success, got %d %q", env.StatusCode, env.Message)
	}
	if env.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", env.StatusCode)
	}

	data, err := afero.ReadFile(fs, "out/nested/report.csv")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "a,b\n1,2\n" {
		t.Errorf("file = %q", data)
	}
}

func TestDownload_OverwritesExisting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("new"))
	}))
	defer srv.Close()

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "file.txt", []byte("old content"), 0o644); err != nil {
		t.Fatal(err)
	}
	d := newTestDispatcher(t, srv.URL, WithFileSystem(fs))

	if env := Download(context.Background(), d, "/f", "file.txt"); !env.IsSuccess {
		t.Fatalf("expected success, got %q", env.Message)
	}
	data, _ := afero.ReadFile(fs, "file.txt")
	if string(data) != "new" {
		t.Errorf("file = %q, want new", data)
	}
}

func TestDownload_Unreachable(t *testing.T) {
	fs := afero.NewMemMapFs()
	d := newTestDispatcher(t, unreachableURL(), WithFileSystem(fs))

	env := Download(context.Background(), d, "/file.bin", "file.bin")
	if env.IsSuccess {
		t.Fatal("expected failure")
	}
	if env.StatusCode != StatusInternalError {
		t.Errorf("StatusCode = %d, want %d", env.StatusCode, StatusInternalError)
	}
	if !strings.HasPrefix(env.Message, "DownloadFileAsync Error: ") {
		t.Errorf("Message = %q", env.Message)
	}
	if exists, _ := afero.Exists(fs, "file.bin"); exists {
		t.Error("file must not be created on failure")
	}
}

func TestDownload_RemoteFailureLeavesFileUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("no such file"))
	}))
	defer srv.Close()

	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "keep.txt", []byte("keep"), 0o644)
	d := newTestDispatcher(t, srv.URL, WithFileSystem(fs))

	env := Download(context.Background(), d, "/missing", "keep.txt")
	if env.IsSuccess {
		t.Fatal("expected failure")
	}
	if env.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", env.StatusCode)
	}
	if env.Message != "no such file" {
		t.Errorf("Message = %q", env.Message)
	}
	data, _ := afero.ReadFile(fs, "keep.txt")
	if string(data) != "keep" {
		t.Errorf("file = %q, want untouched", data)
	}
}

func TestDownload_FilesystemFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("data"))
	}))
	defer srv.Close()

	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	d := newTestDispatcher(t, srv.URL, WithFileSystem(fs))

	env := Download(context.Background(), d, "/f", "dir/file.txt")
	if env.IsSuccess {
		t.Fatal("expected failure")
	}
	if env.StatusCode != StatusInternalError {
		t.Errorf("StatusCode = %d, want %d", env.StatusCode, StatusInternalError)
	}
	if !IsFilesystem(env.Err) {
		t.Errorf("expected filesystem error, got %v", env.Err)
	}
	if exists, _ := afero.Exists(fs, "dir/file.txt"); exists {
		t.Error("file must not exist after a failed write")
	}
}
