package slidepdf

import "os"

// Result holds a generated PDF together with the path it was written to.
type Result struct {
	path string
	data []byte
}

// Path returns the absolute path of the written PDF.
func (r *Result) Path() string {
	return r.path
}

// Bytes returns the raw PDF content.
func (r *Result) Bytes() []byte {
	return r.data
}

// WriteToFile writes the PDF to the file at path, creating or truncating it.
func (r *Result) WriteToFile(path string, perm os.FileMode) error {
	return os.WriteFile(path, r.data, perm)
}

// Len returns the size of the PDF in bytes.
func (r *Result) Len() int {
	return len(r.data)
}
