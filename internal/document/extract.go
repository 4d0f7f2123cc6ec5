// Package document turns uploaded resume files into plain text.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

var (
	// ErrUnsupportedFormat means the content is not PDF, HTML or plain text.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrEncrypted means the PDF is password-protected.
	ErrEncrypted = errors.New("document is password-protected")
	// ErrCorrupt means the document could not be parsed.
	ErrCorrupt = errors.New("document is corrupt or unreadable")
	// ErrNoText means the document has no extractable text, e.g. a scanned PDF.
	ErrNoText = errors.New("document has no extractable text")
)

// Document is the extraction result.
type Document struct {
	MIME  string
	Pages int
	Text  string
}

// Extractor sniffs the content type and extracts text.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates an Extractor. A nil logger disables logging.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Extract returns the trimmed text of data. The file name is not trusted; the
// format is detected from content.
func (e *Extractor) Extract(ctx context.Context, data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNoText
	}

	mtype := mimetype.Detect(data)

	var (
		doc *Document
		err error
	)
	switch {
	case mtype.Is("application/pdf"):
		doc, err = extractPDF(ctx, data)
	case mtype.Is("text/html"):
		doc, err = extractHTML(data)
	case isText(mtype):
		doc = &Document{Pages: 1, Text: strings.TrimSpace(string(data))}
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, mtype.String())
	}
	if err != nil {
		e.logger.Debug("document extraction failed", zap.String("mime", mtype.String()), zap.Error(err))
		return nil, err
	}

	doc.MIME = mtype.String()
	if doc.Text == "" {
		return nil, ErrNoText
	}

	e.logger.Debug("document extracted",
		zap.String("mime", doc.MIME),
		zap.Int("pages", doc.Pages),
		zap.Int("text_length", len(doc.Text)),
	)

	return doc, nil
}

func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func extractPDF(ctx context.Context, data []byte) (*Document, error) {
	pdf, err := fitz.NewFromMemory(data)
	if err != nil {
		if errors.Is(err, fitz.ErrNeedsPassword) || strings.Contains(strings.ToLower(err.Error()), "password") {
			return nil, fmt.Errorf("%w: %v", ErrEncrypted, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer pdf.Close()

	pages := pdf.NumPage()
	if pages <= 0 {
		return nil, fmt.Errorf("%w: no pages", ErrCorrupt)
	}

	texts := make([]string, 0, pages)
	for i := 0; i < pages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := pdf.Text(i)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrCorrupt, i+1, err)
		}
		if text = strings.TrimSpace(text); text != "" {
			texts = append(texts, text)
		}
	}

	return &Document{Pages: pages, Text: strings.Join(texts, "\n\n")}, nil
}

const blockElements = "br,p,div,section,article,header,footer,li,tr,h1,h2,h3,h4,h5,h6,dt,dd,pre,blockquote"

func extractHTML(data []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	doc.Find("script,style,noscript,template").Remove()
	// Keep block boundaries so headings stay on their own lines.
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	lines := strings.Split(doc.Find("body").Text(), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			kept = append(kept, line)
		}
	}

	return &Document{Pages: 1, Text: strings.Join(kept, "\n")}, nil
}
