package scraper

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// MaxHTMLSize limits HTML input to 10MB to prevent memory exhaustion
const MaxHTMLSize = 10 * 1024 * 1024

var (
	ErrEmpty    = errors.New("html content required")
	ErrTooLarge = fmt.Errorf("html exceeds maximum size of %d bytes", MaxHTMLSize)
	ErrNotFound = errors.New("element not found")
)

// ValidateHTML checks HTML size
func ValidateHTML(data []byte) error {
	if len(data) == 0 {
		return ErrEmpty
	}
	if len(data) > MaxHTMLSize {
		return ErrTooLarge
	}
	return nil
}

// DetectCharset detects and returns charset from HTML bytes
func DetectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// utf8Reader returns data decoded to UTF-8. Valid UTF-8 is passed through
// untouched since detection on mostly ASCII pages is unreliable.
func utf8Reader(data []byte) io.Reader {
	if utf8.Valid(data) {
		return bytes.NewReader(data)
	}

	enc, _ := charset.Lookup(DetectCharset(data))
	if enc == nil {
		return bytes.NewReader(data)
	}
	return enc.NewDecoder().Reader(bytes.NewReader(data))
}

// LoadHTML parses a page for CSS selection
func LoadHTML(data []byte) (*goquery.Document, error) {
	if err := ValidateHTML(data); err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(utf8Reader(data))
}

// LoadHTMLNode parses a page for XPath queries
func LoadHTMLNode(data []byte) (*html.Node, error) {
	if err := ValidateHTML(data); err != nil {
		return nil, err
	}
	return htmlquery.Parse(utf8Reader(data))
}
