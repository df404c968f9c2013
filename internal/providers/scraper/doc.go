// Package scraper extracts horoscope text from web pages.
//
// Built on specialized libraries:
//   - goquery: jQuery-like CSS selectors
//   - htmlquery: XPath support for HTML
//   - bluemonday: markup stripping
//   - chardet: Character encoding detection
//   - x/ansi: word wrapping
//
// Pages that are not valid UTF-8 are decoded from the detected charset
// before parsing. Extracted text is normalized and filled to 70 columns,
// ending in a newline:
//
//	doc, err := scraper.LoadHTML(page)
//	text, err := scraper.SelectText(doc, ".ui-large-content-box")
//	content := scraper.Fill(text, scraper.DefaultWidth)
package scraper
