package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, parts map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func readParts(t *testing.T, doc []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(doc), int64(len(doc)))
	require.NoError(t, err)
	out := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		out[f.Name] = b
	}
	return out
}

func TestFill(t *testing.T) {
	image := []byte{0x89, 'P', 'N', 'G', '[', 'C', 'I', 'N', 'E', 'M', 'A', '_', 'N', 'A', 'M', 'E', ']'}
	tmpl := buildDocx(t, map[string][]byte{
		"word/document.xml": []byte(`<w:body><w:t>[CINEMA_NAME]</w:t><w:t>[OPT_REFLECTOR_STATUS]</w:t><w:t>[NOT_A_TOKEN]</w:t></w:body>`),
		"word/header1.xml":  []byte(`<w:hdr><w:t>Report [REPORT_NUMBER]</w:t></w:hdr>`),
		"word/footer2.xml":  []byte(`<w:ftr><w:t>[DATE]</w:t></w:ftr>`),
		"word/styles.xml":   []byte(`<w:styles>[CINEMA_NAME]</w:styles>`),
		"word/media/a.png":  image,
	})

	out, err := Fill(tmpl, map[string]string{
		"CINEMA_NAME":          `Fun <Cinemas> & "Co"`,
		"OPT_REFLECTOR_STATUS": "-",
		"REPORT_NUMBER":        "ASC-9",
		"DATE":                 "01/02/2024",
	})
	require.NoError(t, err)

	parts := readParts(t, out)
	assert.Equal(t,
		`<w:body><w:t>Fun &lt;Cinemas&gt; &amp; &#34;Co&#34;</w:t><w:t>-</w:t><w:t>[NOT_A_TOKEN]</w:t></w:body>`,
		string(parts["word/document.xml"]))
	assert.Equal(t, `<w:hdr><w:t>Report ASC-9</w:t></w:hdr>`, string(parts["word/header1.xml"]))
	assert.Equal(t, `<w:ftr><w:t>01/02/2024</w:t></w:ftr>`, string(parts["word/footer2.xml"]))
	assert.Equal(t, `<w:styles>[CINEMA_NAME]</w:styles>`, string(parts["word/styles.xml"]))
	assert.Equal(t, image, parts["word/media/a.png"])
}

func TestFillRejectsNonZip(t *testing.T) {
	_, err := Fill([]byte("not a zip"), nil)
	assert.ErrorIs(t, err, ErrTemplate)
}

func TestTextPart(t *testing.T) {
	for name, want := range map[string]bool{
		"word/document.xml":      true,
		"word/header1.xml":       true,
		"word/footer3.xml":       true,
		"word/styles.xml":        false,
		"word/_rels/header1.xml": false,
		"word/media/header1.png": false,
		"customXml/document.xml": false,
	} {
		assert.Equal(t, want, textPart(name), name)
	}
}
