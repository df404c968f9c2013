package scraper

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// SelectText returns the text of the first element matching the CSS
// selector
func SelectText(doc *goquery.Document, selector string) (string, error) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", fmt.Errorf("%s: %w", selector, ErrNotFound)
	}
	return sel.Text(), nil
}

// XPathText returns the text of the first node matching expr
func XPathText(doc *html.Node, expr string) (string, error) {
	node, err := query(doc, expr)
	if err != nil {
		return "", err
	}
	return htmlquery.InnerText(node), nil
}

// FirstChildText returns the text of the first child of the node matching
// expr. A child element is reduced to its plain text.
func FirstChildText(doc *html.Node, expr string) (string, error) {
	node, err := query(doc, expr)
	if err != nil {
		return "", err
	}

	child := node.FirstChild
	switch {
	case child == nil:
		return "", fmt.Errorf("%s has no children: %w", expr, ErrNotFound)
	case child.Type == html.TextNode:
		return child.Data, nil
	default:
		return PlainText(htmlquery.OutputHTML(child, true)), nil
	}
}

func query(doc *html.Node, expr string) (*html.Node, error) {
	node, err := htmlquery.Query(doc, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query %s: %w", expr, err)
	}
	if node == nil {
		return nil, fmt.Errorf("%s: %w", expr, ErrNotFound)
	}
	return node, nil
}
