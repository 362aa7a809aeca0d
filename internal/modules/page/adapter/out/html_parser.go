package out

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"formnav/internal/modules/page/domain"
	pageout "formnav/internal/modules/page/port/out"
)

const headingSelector = "h1, h2, h3, h4"

type HTMLParser struct{}

func NewHTMLParser() pageout.DocumentParser {
	return HTMLParser{}
}

// Parse returns the first <title> and the text of every h1-h4 element in
// document order. Heading text is returned untrimmed.
func (HTMLParser) Parse(ctx context.Context, html string) (domain.PageInfo, error) {
	if err := ctx.Err(); err != nil {
		return domain.PageInfo{}, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return domain.PageInfo{}, err
	}
	info := domain.PageInfo{Title: doc.Find("title").First().Text()}
	doc.Find(headingSelector).Each(func(_ int, s *goquery.Selection) {
		info.Headings = append(info.Headings, s.Text())
	})
	return info, nil
}
