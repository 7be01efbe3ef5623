// Package seo builds the crawler-facing files of the public bulletin:
// sitemap.xml, robots.txt and security.txt.
package seo

import (
	"encoding/xml"
	"strings"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapSection is one menu section page, identified by its full path
// ("/urzad" or "/urzad/kierownictwo").
type SitemapSection struct {
	Path      string
	UpdatedAt time.Time
}

// SitemapArticle is one published article page.
type SitemapArticle struct {
	Path      string
	UpdatedAt time.Time
}

// SitemapBuilder builds the sitemap XML for the bulletin.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder. siteURL is the
// absolute base URL without a trailing slash.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: strings.TrimSuffix(siteURL, "/"),
		urls:    make([]SitemapURL, 0),
	}
}

// AddHomepage adds the bulletin home page.
func (b *SitemapBuilder) AddHomepage() {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + "/",
		ChangeFreq: ChangeFreqDaily,
		Priority:   "1.0",
	})
}

// AddSection adds a menu section page.
func (b *SitemapBuilder) AddSection(section SitemapSection) {
	url := SitemapURL{
		Loc:        b.siteURL + section.Path,
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "0.8",
	}
	if !section.UpdatedAt.IsZero() {
		url.LastMod = section.UpdatedAt.Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// AddSections adds multiple section pages.
func (b *SitemapBuilder) AddSections(sections []SitemapSection) {
	for _, s := range sections {
		b.AddSection(s)
	}
}

// AddArticle adds a published article page.
func (b *SitemapBuilder) AddArticle(article SitemapArticle) {
	url := SitemapURL{
		Loc:        b.siteURL + article.Path,
		ChangeFreq: ChangeFreqMonthly,
		Priority:   "0.6",
	}
	if !article.UpdatedAt.IsZero() {
		url.LastMod = article.UpdatedAt.Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// AddArticles adds multiple article pages.
func (b *SitemapBuilder) AddArticles(articles []SitemapArticle) {
	for _, a := range articles {
		b.AddArticle(a)
	}
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}
