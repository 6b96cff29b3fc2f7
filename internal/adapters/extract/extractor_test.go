package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPlainText(t *testing.T) {
	e := New()

	assert.Equal(t, "hello world", e.ExtractText("notes.txt", []byte("hello world")))
	assert.Equal(t, "# heading", e.ExtractText("readme.MD", []byte("# heading")))
}

func TestExtractEmptyInput(t *testing.T) {
	e := New()

	assert.Equal(t, "", e.ExtractText("", []byte("data")))
	assert.Equal(t, "", e.ExtractText("notes.txt", nil))
}

func TestExtractUnsupportedType(t *testing.T) {
	e := New()

	got := e.ExtractText("slides.pptx", []byte{0x50, 0x4b})
	assert.Equal(t, " [File Attached: slides.pptx (Content extraction not supported for this file type)]", got)
}

func TestExtractCorruptPDF(t *testing.T) {
	e := New()

	got := e.ExtractText("report.pdf", []byte("not a pdf at all"))
	assert.Contains(t, got, " [Error parsing file:")
}

func TestExtractDocx(t *testing.T) {
	e := New()

	doc := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>first paragraph</w:t></w:r></w:p>
    <w:p><w:r><w:t>second </w:t></w:r><w:r><w:t>paragraph</w:t></w:r></w:p>
  </w:body>
</w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	got := e.ExtractText("minutes.docx", buf.Bytes())
	assert.Equal(t, "first paragraph\nsecond paragraph\n", got)
}

func TestExtractDocxMissingDocument(t *testing.T) {
	e := New()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("something/else.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	got := e.ExtractText("minutes.docx", buf.Bytes())
	assert.Contains(t, got, " [Error parsing file:")
}
