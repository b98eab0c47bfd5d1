package viewer

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePDF = "%PDF-1.7\n" +
	"1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj\n" +
	"2 0 obj << /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >> endobj\n" +
	"3 0 obj << /Type /Page /Parent 2 0 R >> endobj\n" +
	"4 0 obj <</Type/Page/Parent 2 0 R>> endobj\n" +
	"5 0 obj << /Title (Master of Puppets \\(live\\)) >> endobj\n" +
	"%%EOF\n"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		kind    Kind
	}{
		{"nil is empty", nil, KindEmpty},
		{"text", []byte("e|---|\n"), KindText},
		{"pdf", []byte(samplePDF), KindPDF},
		{"invalid utf8 is binary", []byte{0xff, 0xfe, 0x00}, KindBinary},
		{"nul byte is binary", []byte("GP5\x00\x01"), KindBinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.content, 4)
			assert.Equal(t, tt.kind, doc.Kind)
			assert.Equal(t, int64(len(tt.content)), doc.Size)
		})
	}
}

func TestParse_PDF(t *testing.T) {
	doc := Parse([]byte(samplePDF), 4)

	assert.Equal(t, PDFInfo{Version: "1.7", Pages: 2, Title: "Master of Puppets (live)"}, doc.PDF)
}

func TestParse_PDFWithoutPages(t *testing.T) {
	doc := Parse([]byte("%PDF-2.0\n%%EOF"), 4)

	assert.Equal(t, PDFInfo{Version: "2.0"}, doc.PDF)
}

func TestParse_TextExpandsTabs(t *testing.T) {
	doc := Parse([]byte("a\tb\r\nc"), 4)

	assert.Equal(t, []string{"a   b", "c"}, doc.Lines)
}

func TestUnescapePDFString(t *testing.T) {
	assert.Equal(t, "A\tB", unescapePDFString([]byte(`A\tB`)))
	assert.Equal(t, "é", unescapePDFString([]byte(`\303\251`)))
	assert.Equal(t, `back\`, unescapePDFString([]byte(`back\\`)))
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{"empty", Document{}, "empty"},
		{"text", Document{Kind: KindText, Size: 12, Lines: []string{"a", "b"}}, "text, 2 lines, 12 B"},
		{"pdf", Document{Kind: KindPDF, Size: 2048, PDF: PDFInfo{Version: "1.4", Pages: 1}}, "PDF 1.4, 1 page, 2.0 kB"},
		{"pdf without pages", Document{Kind: KindPDF, Size: 10}, "PDF, 10 B"},
		{"binary", Document{Kind: KindBinary, Size: 3}, "binary, 3 B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.doc))
		})
	}
}

func longText(n int) []byte {
	var b strings.Builder
	for i := range n {
		b.WriteString("line ")
		b.WriteString(strings.Repeat("x", i%7))
		b.WriteString("\n")
	}
	return []byte(b.String())
}

func TestSurface_NewVersionResetsScroll(t *testing.T) {
	s := New(4)
	s.SetSize(20, 5)
	s.Render(longText(50), 1)

	s.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	require.Positive(t, s.YOffset())

	s.Render(longText(50), 2)

	assert.Zero(t, s.YOffset())
	assert.Equal(t, uint64(2), s.Version())
}

func TestSurface_SameVersionKeepsScroll(t *testing.T) {
	s := New(4)
	s.SetSize(20, 5)
	s.Render(longText(50), 1)
	s.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	offset := s.YOffset()
	require.Positive(t, offset)

	s.Render(longText(50), 1)

	assert.Equal(t, offset, s.YOffset())
}

func TestSurface_LettersDoNotScroll(t *testing.T) {
	s := New(4)
	s.SetSize(20, 5)
	s.Render(longText(50), 1)

	for _, r := range "jkfbdu" {
		s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Zero(t, s.YOffset())
}

func TestSurface_Clear(t *testing.T) {
	s := New(4)
	s.SetSize(20, 5)
	s.Render([]byte("hello"), 1)
	require.True(t, s.Showing())
	assert.Contains(t, ansi.Strip(s.View()), "hello")

	s.Clear()

	assert.False(t, s.Showing())
	assert.Equal(t, "nothing shown", s.Summary())
	assert.NotContains(t, ansi.Strip(s.View()), "hello")
	assert.Equal(t, uint64(1), s.Version())
}

func TestSurface_PDFCard(t *testing.T) {
	s := New(4)
	s.SetSize(60, 12)
	s.Render([]byte(samplePDF), 1)

	view := ansi.Strip(s.View())
	assert.Contains(t, view, "PDF document")
	assert.Contains(t, view, "about 2")
	assert.Contains(t, view, "Master of Puppets (live)")
	assert.True(t, strings.HasPrefix(s.Summary(), "PDF 1.7, 2 pages, "), s.Summary())
}
