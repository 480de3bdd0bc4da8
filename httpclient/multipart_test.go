package httpclient

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMultipartBody_Build_FieldsOnly(t *testing.T) {
	mp := &MultipartBody{
		Fields: P("name", "test", "value", "hello"),
	}

	payload, err := mp.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	mediaType, params, err := mime.ParseMediaType(payload.ContentType)
	if err != nil {
		t.Fatalf("ParseMediaType error: %v", err)
	}
	if mediaType != "multipart/form-data" {
		t.Errorf("media type = %q, want multipart/form-data", mediaType)
	}

	mr := multipart.NewReader(bytes.NewReader(payload.Body), params["boundary"])
	var names []string
	fields := map[string]string{}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextPart error: %v", err)
		}
		data, _ := io.ReadAll(part)
		names = append(names, part.FormName())
		fields[part.FormName()] = string(data)
	}

	if fields["name"] != "test" || fields["value"] != "hello" {
		t.Errorf("fields = %v, want name=test, value=hello", fields)
	}
	if len(names) != 2 || names[0] != "name" || names[1] != "value" {
		t.Errorf("field order = %v, want [name value]", names)
	}
}

func TestMultipartBody_Build_WithFile(t *testing.T) {
	fileData := []byte("audio data here")
	mp := &MultipartBody{
		Fields: P("language", "en"),
		Files: []FileField{
			{FieldName: "file", FileName: "audio.wav", Data: fileData},
		},
	}

	payload, err := mp.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	_, params, _ := mime.ParseMediaType(payload.ContentType)
	mr := multipart.NewReader(bytes.NewReader(payload.Body), params["boundary"])

	var gotField, gotFile bool
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextPart error: %v", err)
		}

		switch part.FormName() {
		case "language":
			data, _ := io.ReadAll(part)
			if string(data) != "en" {
				t.Errorf("language field = %q, want %q", data, "en")
			}
			gotField = true
		case "file":
			if part.FileName() != "audio.wav" {
				t.Errorf("filename = %q, want %q", part.FileName(), "audio.wav")
			}
			data, _ := io.ReadAll(part)
			if !bytes.Equal(data, fileData) {
				t.Errorf("file data = %q, want %q", data, fileData)
			}
			gotFile = true
		}
	}

	if !gotField {
		t.Error("language field not found")
	}
	if !gotFile {
		t.Error("file field not found")
	}
}

func TestMultipartBody_Build_WithFileContentType(t *testing.T) {
	mp := &MultipartBody{
		Files: []FileField{
			{
				FieldName:   "audio",
				FileName:    `say "hi".wav`,
				ContentType: "audio/wav",
				Data:        []byte("wav data"),
			},
		},
	}

	payload, err := mp.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if !bytes.Contains(payload.Body, []byte("Content-Type: audio/wav")) {
		t.Error("expected Content-Type: audio/wav in multipart body")
	}
	if !bytes.Contains(payload.Body, []byte(`filename="say \"hi\".wav"`)) {
		t.Error("expected escaped quotes in filename")
	}
}

func TestMultipartBody_Build_WithReader(t *testing.T) {
	content := "streamed content"
	mp := &MultipartBody{
		Files: []FileField{
			{FieldName: "file", FileName: "data.txt", Reader: bytes.NewReader([]byte(content))},
		},
	}

	payload, err := mp.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	_, params, _ := mime.ParseMediaType(payload.ContentType)
	mr := multipart.NewReader(bytes.NewReader(payload.Body), params["boundary"])
	part, err := mr.NextPart()
	if err != nil {
		t.Fatalf("NextPart error: %v", err)
	}

	data, _ := io.ReadAll(part)
	if string(data) != content {
		t.Errorf("file content = %q, want %q", data, content)
	}
}

func TestPostMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}

		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			t.Errorf("ParseMediaType error: %v", err)
		}
		if mediaType != "multipart/form-data" {
			t.Errorf("Content-Type = %q, want multipart/form-data", mediaType)
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm error: %v", err)
		}
		if got := r.FormValue("model"); got != "large-v3" {
			t.Errorf("model field = %q, want %q", got, "large-v3")
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile error: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Filename != "audio.wav" {
			t.Errorf("filename = %q, want %q", header.Filename, "audio.wav")
		}
		data, _ := io.ReadAll(file)
		if string(data) != "audio bytes" {
			t.Errorf("file data = %q, want %q", data, "audio bytes")
		}

		_, _ = w.Write([]byte(`{"text":"hello world"}`))
	}))
	defer srv.Close()

	d := newTestDispatcher(t, srv.URL)

	mp, err := (&MultipartBody{
		Fields: P("model", "large-v3"),
		Files: []FileField{
			{FieldName: "file", FileName: "audio.wav", Data: []byte("audio bytes")},
		},
	}).Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	type transcript struct {
		Text string `json:"text"`
	}
	env := PostMultipart[transcript](context.Background(), d, "/transcribe", mp)
	if !env.IsSuccess {
		t.Fatalf("PostMultipart failed: %d %s", env.StatusCode, env.Message)
	}
	if env.Data.Text != "hello world" {
		t.Errorf("text = %q, want %q", env.Data.Text, "hello world")
	}
}
