package sites

import (
	"fmt"
	"net/url"

	"github.com/GriffinCanCode/horoscopefs/internal/domain/horoscope"
	"github.com/GriffinCanCode/horoscopefs/internal/providers/scraper"
)

// Astrosage publishes moon sign horoscopes at
// <base>/<type>-<moon>-horoscope.asp
func astrosage(base string) (locator, extractor) {
	locate := func(id horoscope.Identity, t horoscope.ContentType) (string, bool) {
		return fmt.Sprintf("%s/%s-%s-horoscope.asp", base, t, url.PathEscape(id.MoonSign)), true
	}

	extract := func(page []byte, t horoscope.ContentType) (string, error) {
		doc, err := scraper.LoadHTML(page)
		if err != nil {
			return "", err
		}

		selector := ".ui-sign-content-box"
		if t == horoscope.Daily {
			selector = ".ui-large-content-box"
		}
		return scraper.SelectText(doc, selector)
	}

	return locate, extract
}
