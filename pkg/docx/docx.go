// Package docx fills [TOKEN] placeholders in a Word template.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"p9e.in/ascomp/pkg/catalog"
)

// ErrTemplate is returned when the template is not a readable .docx.
var ErrTemplate = errors.New("invalid docx template")

// ContentType is the MIME type of a .docx file.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// textPart reports whether a zip entry holds document text: the body,
// headers and footers. Everything else is copied untouched.
func textPart(name string) bool {
	if name == "word/document.xml" {
		return true
	}
	dir, file := path.Split(name)
	if dir != "word/" || path.Ext(file) != ".xml" {
		return false
	}
	return strings.HasPrefix(file, "header") || strings.HasPrefix(file, "footer")
}

// Fill returns a copy of template with every known [TOKEN] replaced by its
// XML-escaped value. A token must sit inside a single text run to be
// found; unknown tokens are left in place.
func Fill(template []byte, values map[string]string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, f := range zr.File {
		if err := copyEntry(zw, f, values); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func copyEntry(zw *zip.Writer, f *zip.File, values map[string]string) error {
	if !textPart(f.Name) {
		return zw.Copy(f)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	body, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTemplate, err)
	}

	w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: f.Method, Modified: f.Modified})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, catalog.SubstituteFunc(string(body), values, escapeXML))
	return err
}

func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
