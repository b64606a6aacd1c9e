// Package document loads and inspects local resume files. A Ref carries
// everything the guided flows need about an uploaded document: its display
// name, byte size, a content digest, and the extracted plain text.
package document

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// maxFileSize caps resume uploads. Anything larger is almost certainly not a
// resume.
const maxFileSize = 10 << 20 // 10 MiB

// Ref describes a validated resume file.
type Ref struct {
	Path   string
	Name   string
	Size   int64
	Digest string // sha256 of the file contents, hex encoded
	Text   string
	Words  int
}

// supportedExtensions maps accepted file extensions to their kind.
var supportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

// SupportedExtensions returns the accepted extensions in display order.
func SupportedExtensions() []string {
	return []string{".pdf", ".docx", ".txt"}
}

// Load validates path, reads the file, and extracts its text. The digest
// identifies the document contents independent of file name or location.
func Load(path string) (*Ref, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return nil, fmt.Errorf("unsupported file type %q (want %s)", ext, strings.Join(SupportedExtensions(), ", "))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("resume file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a resume file", path)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("%s is %d bytes, larger than the %d byte limit", path, info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resume file: %w", err)
	}

	text, err := extractText(ext, data)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	return &Ref{
		Path:   path,
		Name:   filepath.Base(path),
		Size:   info.Size(),
		Digest: hex.EncodeToString(sum[:]),
		Text:   text,
		Words:  len(strings.Fields(text)),
	}, nil
}

func extractText(ext string, data []byte) (string, error) {
	switch ext {
	case ".txt":
		return string(data), nil
	case ".pdf":
		return extractPDFText(data)
	case ".docx":
		return extractDocxText(data)
	default:
		return "", fmt.Errorf("unsupported file type %q", ext)
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parsing pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parsing docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
