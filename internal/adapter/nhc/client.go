// Package nhc fetches the tropical weather discussion and the graphical
// outlook from the National Hurricane Center website.
package nhc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrNoBulletin reports a bulletin page without the expected text block.
	ErrNoBulletin = errors.New("no bulletin text on page")
	// ErrNoOutlookImage reports an outlook page without the seven-day graphic.
	ErrNoOutlookImage = errors.New("no outlook image on page")
)

// outlookImageMarker identifies the seven-day Atlantic outlook graphic among
// the images on the outlook page.
const outlookImageMarker = "two_atl_7d0"

// Client scrapes bulletin text and outlook imagery from the NHC site.
type Client struct {
	bulletinURL string
	outlookURL  string
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewClient builds an NHC client for the given page URLs.
func NewClient(bulletinURL, outlookURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		bulletinURL: bulletinURL,
		outlookURL:  outlookURL,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// FetchBulletin downloads the discussion page and returns the text of its
// first preformatted block, which carries the full bulletin.
func (c *Client) FetchBulletin(ctx context.Context) (string, error) {
	doc, err := c.fetchDocument(ctx, c.bulletinURL)
	if err != nil {
		return "", err
	}

	pre := doc.Find("pre").First()
	if pre.Length() == 0 {
		return "", ErrNoBulletin
	}
	return pre.Text(), nil
}

// FetchOutlookImage locates the seven-day outlook graphic on the outlook page
// and downloads it. The reported content type falls back to image/png when
// the server does not send one.
func (c *Client) FetchOutlookImage(ctx context.Context) ([]byte, string, error) {
	doc, err := c.fetchDocument(ctx, c.outlookURL)
	if err != nil {
		return nil, "", err
	}

	src, found := findOutlookSource(doc)
	if !found {
		return nil, "", ErrNoOutlookImage
	}

	imageURL, err := c.resolveURL(c.outlookURL, src)
	if err != nil {
		return nil, "", fmt.Errorf("resolve image url %q: %w", src, err)
	}

	return c.download(ctx, imageURL)
}

func (c *Client) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return doc, nil
}

func findOutlookSource(doc *goquery.Document) (string, bool) {
	var src string
	doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		s, ok := sel.Attr("src")
		if ok && strings.Contains(s, outlookImageMarker) {
			src = s
			return false
		}
		return true
	})
	return src, src != ""
}

func (c *Client) resolveURL(base, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

func (c *Client) download(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download %s: %w", imageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download %s: unexpected status %d", imageURL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read image body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	c.logger.Debug("outlook image downloaded", "bytes", len(data), "content_type", contentType)
	return data, contentType, nil
}
