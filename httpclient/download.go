package httpclient

import (
	"context"
	"io"
	"net/http"
	"path/filepath"

	"github.com/spf13/afero"
)

const downloadFileMode = 0o644

// Download fetches url and writes the body to outputPath. The file is only
// written once the whole body has been received. Local failures report
// StatusInternalError.
func Download(ctx context.Context, d *Dispatcher, url, outputPath string) *Result {
	c := &call{
		op:         OpDownload,
		method:     http.MethodGet,
		target:     url,
		failStatus: StatusInternalError,
	}
	return dispatch(ctx, d, c, func(body io.Reader) (NoContent, error) {
		data, err := io.ReadAll(body)
		if err != nil {
			return NoContent{}, transportError(ctx, OpDownload, err)
		}
		if err := writeFile(d, outputPath, data); err != nil {
			return NoContent{}, newError(OpDownload, ErrCodeFilesystem, err)
		}
		return NoContent{}, nil
	})
}

func writeFile(d *Dispatcher, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := d.fs.MkdirAll(dir, d.config.DownloadDirMode); err != nil {
			return err
		}
	}
	return afero.WriteFile(d.fs, path, data, downloadFileMode)
}
