package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const astrosagePage = `<html><body>
<div class="ui-large-content-box">
  Today brings   new opportunities.
  Take care of your health.
</div>
<div class="ui-large-content-box">second</div>
</body></html>`

const astroyogiPage = `<html><body>
<span id="ContentPlaceHolder1_LblPrediction">  Be patient &amp; calm.  <br/>Ignored tail</span>
</body></html>`

func TestLoadHTML(t *testing.T) {
	doc, err := LoadHTML([]byte(astrosagePage))
	require.NoError(t, err)

	text, err := SelectText(doc, ".ui-large-content-box")
	require.NoError(t, err)
	assert.Equal(t, "Today brings new opportunities. Take care of your health.", NormalizeWhitespace(text))
}

func TestLoadHTMLValidation(t *testing.T) {
	_, err := LoadHTML(nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = LoadHTMLNode(make([]byte, MaxHTMLSize+1))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestLoadHTMLLatin1(t *testing.T) {
	// "Caf\xe9" is Latin-1 for Café and invalid as UTF-8
	page := []byte("<html><body><p class=\"sign\">Caf\xe9 au lait, d\xe9j\xe0 vu. " +
		strings.Repeat("Une journ\xe9e tr\xe8s agr\xe9able. ", 20) + "</p></body></html>")

	doc, err := LoadHTML(page)
	require.NoError(t, err)

	text, err := SelectText(doc, ".sign")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Café"), "got %q", text[:10])
}

func TestSelectTextNotFound(t *testing.T) {
	doc, err := LoadHTML([]byte(astrosagePage))
	require.NoError(t, err)

	_, err = SelectText(doc, ".ui-sign-content-box")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFirstChildText(t *testing.T) {
	doc, err := LoadHTMLNode([]byte(astroyogiPage))
	require.NoError(t, err)

	text, err := FirstChildText(doc, `//*[@id="ContentPlaceHolder1_LblPrediction"]`)
	require.NoError(t, err)
	assert.Equal(t, "  Be patient & calm.  ", text)
}

func TestFirstChildTextElement(t *testing.T) {
	page := `<html><body><div id="p"><b>Bold &lt;move&gt;</b> rest</div></body></html>`
	doc, err := LoadHTMLNode([]byte(page))
	require.NoError(t, err)

	text, err := FirstChildText(doc, `//div[@id="p"]`)
	require.NoError(t, err)
	assert.Equal(t, "Bold <move>", text)
}

func TestFirstChildTextErrors(t *testing.T) {
	page := `<html><body><div id="empty"></div></body></html>`
	doc, err := LoadHTMLNode([]byte(page))
	require.NoError(t, err)

	_, err = FirstChildText(doc, `//div[@id="empty"]`)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = FirstChildText(doc, `//div[@id="missing"]`)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = FirstChildText(doc, `//div[`)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestXPathText(t *testing.T) {
	doc, err := LoadHTMLNode([]byte(astroyogiPage))
	require.NoError(t, err)

	text, err := XPathText(doc, `//span`)
	require.NoError(t, err)
	assert.Equal(t, "Be patient & calm. Ignored tail", NormalizeWhitespace(text))
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "tags", input: "<p>Hello <em>world</em></p>", expected: "Hello world"},
		{name: "entities", input: "Fish &amp; chips", expected: "Fish & chips"},
		{name: "script", input: "ok<script>alert(1)</script>", expected: "ok"},
		{name: "plain", input: "nothing to do", expected: "nothing to do"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PlainText(tt.input))
		})
	}
}

func TestFill(t *testing.T) {
	assert.Equal(t, "Hello world\n", string(Fill("  Hello \n\t world  ", DefaultWidth)))
	assert.Equal(t, "\n", string(Fill("   ", DefaultWidth)))

	long := strings.Repeat("Mercury moves into your sign and brings clarity. ", 12)
	filled := string(Fill(long, DefaultWidth))

	require.True(t, strings.HasSuffix(filled, "\n"))
	lines := strings.Split(strings.TrimSuffix(filled, "\n"), "\n")
	assert.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), DefaultWidth, "line %q", line)
		assert.Equal(t, strings.TrimSpace(line), line)
	}
	assert.Equal(t, NormalizeWhitespace(long), strings.Join(lines, " "))
}

func TestFillDefaultsWidth(t *testing.T) {
	long := strings.Repeat("word ", 40)
	assert.Equal(t, Fill(long, DefaultWidth), Fill(long, 0))
}
