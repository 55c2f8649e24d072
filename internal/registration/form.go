package registration

import (
	"bytes"
	"io"
	"maps"
	"mime/multipart"
	"strings"
)

// Upload is a file attached to a form. Content is read lazily through Open so large
// uploads parsed to disk by mime/multipart are not copied.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	open        func() (io.ReadCloser, error)
}

// NewUpload builds an in-memory Upload.
func NewUpload(filename, contentType string, data []byte) Upload {
	return Upload{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// UploadFromFileHeader wraps a parsed multipart file.
func UploadFromFileHeader(fh *multipart.FileHeader) Upload {
	return Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// Open returns the upload content. An Upload without content yields an empty reader.
func (u Upload) Open() (io.ReadCloser, error) {
	if u.open == nil {
		return io.NopCloser(strings.NewReader("")), nil
	}
	return u.open()
}

// Form is the raw user input of a registration surface: field name to entered text,
// plus any attached files.
type Form struct {
	Values map[string]string
	Files  map[string][]Upload
}

// NewForm copies values into a new Form.
func NewForm(values map[string]string) Form {
	f := Form{Values: make(map[string]string, len(values)), Files: map[string][]Upload{}}
	maps.Copy(f.Values, values)
	return f
}

// WithFiles returns a copy of f with the given files attached to field.
func (f Form) WithFiles(field string, files ...Upload) Form {
	out := Form{Values: maps.Clone(f.Values), Files: maps.Clone(f.Files)}
	if out.Values == nil {
		out.Values = map[string]string{}
	}
	if out.Files == nil {
		out.Files = map[string][]Upload{}
	}
	out.Files[field] = files
	return out
}

// FormFromMultipart converts a parsed multipart form. Only the first value of a repeated
// text field is kept, matching how a browser form with unique names submits.
func FormFromMultipart(mf *multipart.Form) Form {
	f := Form{Values: map[string]string{}, Files: map[string][]Upload{}}
	if mf == nil {
		return f
	}
	for k, vs := range mf.Value {
		if len(vs) > 0 {
			f.Values[k] = vs[0]
		}
	}
	for k, fhs := range mf.File {
		uploads := make([]Upload, 0, len(fhs))
		for _, fh := range fhs {
			uploads = append(uploads, UploadFromFileHeader(fh))
		}
		f.Files[k] = uploads
	}
	return f
}

func (f Form) value(name string) string {
	return f.Values[name]
}
