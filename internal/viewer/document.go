// Package viewer renders catalog documents in the terminal.
package viewer

import (
	"bytes"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/llehouerou/tablib/internal/ui/render"
)

// Kind is the detected type of a document.
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindPDF
	KindBinary
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindPDF:
		return "pdf"
	case KindBinary:
		return "binary"
	}
	return "empty"
}

// PDFInfo is what can be read from a PDF without rendering it.
type PDFInfo struct {
	Version string
	Pages   int // estimate from page objects; 0 when none are visible
	Title   string
}

// Document is parsed content ready for display.
type Document struct {
	Kind  Kind
	Size  int64
	Lines []string // KindText only
	PDF   PDFInfo  // KindPDF only
}

var (
	pdfHeader = regexp.MustCompile(`^%PDF-(\d+\.\d+)`)
	pdfPage   = regexp.MustCompile(`/Type\s*/Page\b`)
	pdfTitle  = regexp.MustCompile(`/Title\s*\(((?:[^()\\]|\\.)*)\)`)
)

// Parse detects the kind of content and extracts what can be shown.
func Parse(content []byte, tabWidth int) Document {
	doc := Document{Size: int64(len(content))}
	switch {
	case content == nil:
		doc.Kind = KindEmpty
	case bytes.HasPrefix(content, []byte("%PDF-")):
		doc.Kind = KindPDF
		doc.PDF = parsePDF(content)
	case utf8.Valid(content) && !bytes.ContainsRune(content, 0):
		doc.Kind = KindText
		doc.Lines = render.Lines(string(content), tabWidth)
	default:
		doc.Kind = KindBinary
	}
	return doc
}

func parsePDF(content []byte) PDFInfo {
	var info PDFInfo
	if m := pdfHeader.FindSubmatch(content); m != nil {
		info.Version = string(m[1])
	}
	info.Pages = len(pdfPage.FindAllIndex(content, -1))
	if m := pdfTitle.FindSubmatch(content); m != nil {
		info.Title = unescapePDFString(m[1])
	}
	return info
}

// unescapePDFString decodes the backslash escapes of a PDF literal string.
// Titles in any other encoding are left as they are and sanitized later.
func unescapePDFString(b []byte) string {
	var out []byte
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c != '\\' || i+1 == len(b) {
			out = append(out, c)
			continue
		}
		i++
		switch b[i] {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(b) && j < i+3 && b[j] >= '0' && b[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(string(b[i:j]), 8, 8)
			out = append(out, byte(v))
			i = j - 1
		default:
			out = append(out, b[i])
		}
	}
	return render.Sanitize(string(out))
}
