// Package fetcher turns a job posting URL into readable text. Static pages
// go through colly; pages that render client-side can fall back to a
// headless Chrome via chromedp.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/gocolly/colly/v2"
)

var (
	ErrInvalidURL = errors.New("invalid url")
	ErrEmptyPage  = errors.New("page has no readable text")
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// minTextLen below which a static fetch is treated as a client-rendered shell.
const minTextLen = 200

type Page struct {
	URL   string
	Title string
	Text  string
}

type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Page, error)
}

type Web struct {
	headless bool
	timeout  time.Duration
	logger   *log.Logger
}

func New(headless bool, timeout time.Duration, logger *log.Logger) *Web {
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &Web{headless: headless, timeout: timeout, logger: logger}
}

func (w *Web) Fetch(ctx context.Context, rawURL string) (Page, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return Page{}, err
	}

	page, err := w.fetchStatic(ctx, u)
	if err == nil && len(page.Text) >= minTextLen {
		return page, nil
	}
	if !w.headless {
		if err != nil {
			return Page{}, err
		}
		if page.Text == "" {
			return Page{}, ErrEmptyPage
		}
		return page, nil
	}

	if w.logger != nil {
		w.logger.Printf("[Fetcher] static fetch thin or failed, using headless | url=%s err=%v", u.String(), err)
	}
	return w.fetchHeadless(ctx, u)
}

func (w *Web) fetchStatic(ctx context.Context, u *url.URL) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}

	c := colly.NewCollector(colly.AllowedDomains(u.Hostname()), colly.UserAgent(userAgent))
	c.SetRequestTimeout(w.timeout)

	out := Page{URL: u.String()}
	var reqErr error

	c.OnHTML("title", func(e *colly.HTMLElement) {
		if out.Title == "" {
			out.Title = strings.TrimSpace(e.Text)
		}
	})
	c.OnHTML("body", func(e *colly.HTMLElement) {
		e.DOM.Find("script, style, noscript, nav, footer, header").Remove()
		out.Text = CollapseWhitespace(e.DOM.Text())
	})
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if err := c.Visit(u.String()); err != nil {
		return Page{}, err
	}
	c.Wait()
	if reqErr != nil {
		return Page{}, reqErr
	}
	return out, nil
}

func (w *Web) fetchHeadless(ctx context.Context, u *url.URL) (Page, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(userAgent),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, w.timeout)
	defer reqCancel()

	var title, text string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(u.String()),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.Title(&title),
		chromedp.Evaluate(`(() => {
			document.querySelectorAll('script, style, noscript, nav, footer, header').forEach(n => n.remove());
			return document.body ? document.body.innerText : '';
		})()`, &text),
	)
	if err != nil {
		return Page{}, fmt.Errorf("headless fetch: %w", err)
	}

	text = CollapseWhitespace(text)
	if text == "" {
		return Page{}, ErrEmptyPage
	}
	return Page{URL: u.String(), Title: strings.TrimSpace(title), Text: text}, nil
}

func ValidateURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrInvalidURL
	}
	if u.Hostname() == "" {
		return nil, ErrInvalidURL
	}
	return u, nil
}

func CollapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}
