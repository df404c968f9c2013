package sites

import (
	"fmt"
	"net/url"

	"github.com/GriffinCanCode/horoscopefs/internal/domain/horoscope"
	"github.com/GriffinCanCode/horoscopefs/internal/providers/scraper"
)

const astroyogiPrediction = `//*[@id="ContentPlaceHolder1_LblPrediction"]`

// Astroyogi publishes sun sign horoscopes at
// <base>/<type>/<sun>-<page>-horoscope.aspx. Only the leading text of the
// prediction element is the horoscope itself.
func astroyogi(base, page string) (locator, extractor) {
	locate := func(id horoscope.Identity, t horoscope.ContentType) (string, bool) {
		return fmt.Sprintf("%s/%s/%s-%s-horoscope.aspx", base, t, url.PathEscape(id.SunSign), page), true
	}

	extract := func(data []byte, _ horoscope.ContentType) (string, error) {
		doc, err := scraper.LoadHTMLNode(data)
		if err != nil {
			return "", err
		}
		return scraper.FirstChildText(doc, astroyogiPrediction)
	}

	return locate, extract
}
