package httpclient

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/textproto"
)

// Multipart is a pre-built multipart/form-data payload sent as-is by
// PostMultipart.
type Multipart struct {
	// ContentType carries the boundary, e.g. "multipart/form-data; boundary=...".
	ContentType string
	// Body is the encoded payload.
	Body []byte
}

// MultipartBody describes a multipart/form-data payload to build.
type MultipartBody struct {
	// Fields are simple form fields, written in order.
	Fields Params
	// Files are file upload fields.
	Files []FileField
}

// FileField represents a file to upload in a multipart request.
type FileField struct {
	// FieldName is the form field name (e.g., "file", "audio").
	FieldName string
	// FileName is the file name sent to the server.
	FileName string
	// ContentType is the MIME type (e.g., "audio/wav"). If empty, uses application/octet-stream.
	ContentType string
	// Data is the file content. Used if Reader is nil.
	Data []byte
	// Reader is an alternative to Data.
	Reader io.Reader
}

// Build encodes the body into a Multipart payload.
func (m *MultipartBody) Build() (*Multipart, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range m.Fields {
		if err := w.WriteField(f.Key, f.Value); err != nil {
			return nil, err
		}
	}

	for _, f := range m.Files {
		var part io.Writer
		var err error

		if f.ContentType != "" {
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition",
				`form-data; name="`+escapeQuotes(f.FieldName)+`"; filename="`+escapeQuotes(f.FileName)+`"`)
			header.Set("Content-Type", f.ContentType)
			part, err = w.CreatePart(header)
		} else {
			part, err = w.CreateFormFile(f.FieldName, f.FileName)
		}
		if err != nil {
			return nil, err
		}

		if f.Data != nil {
			if _, err := part.Write(f.Data); err != nil {
				return nil, err
			}
		} else if f.Reader != nil {
			if _, err := io.Copy(part, f.Reader); err != nil {
				return nil, err
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return &Multipart{ContentType: w.FormDataContentType(), Body: buf.Bytes()}, nil
}

// escapeQuotes replaces special characters in header values.
func escapeQuotes(s string) string {
	var buf bytes.Buffer
	for _, b := range []byte(s) {
		if b == '"' || b == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(b)
	}
	return buf.String()
}
