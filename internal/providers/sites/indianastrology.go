package sites

import (
	"fmt"
	"net/url"

	"github.com/GriffinCanCode/horoscopefs/internal/domain/horoscope"
	"github.com/GriffinCanCode/horoscopefs/internal/providers/scraper"
)

// IndianAstrology2000 publishes daily and monthly moon sign horoscopes.
// There is no weekly page.
func indianAstrology2000(base string) (locator, extractor) {
	locate := func(id horoscope.Identity, t horoscope.ContentType) (string, bool) {
		moon := url.PathEscape(id.MoonSign)
		switch t {
		case horoscope.Daily:
			return fmt.Sprintf("%s/index.php?zone=3&sign=%s", base, url.QueryEscape(id.MoonSign)), true
		case horoscope.Monthly:
			return fmt.Sprintf("%s/%s-monthly-horoscope.html", base, moon), true
		default:
			return "", false
		}
	}

	extract := func(page []byte, _ horoscope.ContentType) (string, error) {
		doc, err := scraper.LoadHTML(page)
		if err != nil {
			return "", err
		}
		return scraper.SelectText(doc, ".horoscope-sign-content-block")
	}

	return locate, extract
}
