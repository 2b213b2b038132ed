package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/apocrypha/forge/internal/marketplace"
	"github.com/apocrypha/forge/internal/models"
)

// The forge and marketplace pages are rendered server-side; per-field content
// and idea cards are only available as markup. These scrapers are the client's
// read path for that state.

// ForgeContent fetches /forge and returns the per-consideration content keyed
// by consideration id. The placeholder sentinel is translated to the empty
// string here, at the ingestion boundary.
func (c *Client) ForgeContent(ctx context.Context) (map[string]string, error) {
	body, err := c.getPage(ctx, "/forge")
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return parseForgeContent(body)
}

// MarketplaceIdeas fetches /marketplace and returns the idea cards.
func (c *Client) MarketplaceIdeas(ctx context.Context) ([]marketplace.Idea, error) {
	body, err := c.getPage(ctx, "/marketplace")
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return parseIdeaCards(body)
}

// IdeaDetail fetches /idea/<id> and returns the full idea view.
func (c *Client) IdeaDetail(ctx context.Context, ideaID string) (marketplace.IdeaDetail, error) {
	body, err := c.getPage(ctx, "/idea/"+ideaID)
	if err != nil {
		return marketplace.IdeaDetail{}, err
	}
	defer body.Close()
	detail, err := parseIdeaDetail(body)
	if err != nil {
		return marketplace.IdeaDetail{}, err
	}
	detail.ID = ideaID
	return detail, nil
}

func (c *Client) getPage(ctx context.Context, path string) (io.ReadCloser, error) {
	op := "GET " + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	return resp.Body, nil
}

func parseForgeContent(r io.Reader) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &NetworkError{Op: "parse forge page", Err: err}
	}
	content := make(map[string]string)
	doc.Find(".consideration-box").Each(func(_ int, box *goquery.Selection) {
		id, ok := box.Attr("data-consideration-id")
		if !ok {
			return
		}
		text := strings.TrimSpace(box.Find(".consideration-text").Text())
		if text == models.PlaceholderText {
			text = ""
		}
		content[id] = text
	})
	return content, nil
}

func parseIdeaCards(r io.Reader) ([]marketplace.Idea, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &NetworkError{Op: "parse marketplace page", Err: err}
	}
	var ideas []marketplace.Idea
	doc.Find(".idea-card").Each(func(_ int, card *goquery.Selection) {
		idea := marketplace.Idea{
			ID:           card.AttrOr("data-idea-id", ""),
			Title:        card.AttrOr("data-title", ""),
			Description:  card.AttrOr("data-description", ""),
			Status:       card.AttrOr("data-status", ""),
			Submitted:    parseSubmitted(card.AttrOr("data-submitted", "")),
			ViewCount:    atoi(card.AttrOr("data-views", "")),
			CommentCount: atoi(card.AttrOr("data-comments", "")),
		}
		ideas = append(ideas, idea)
	})
	return ideas, nil
}

func parseIdeaDetail(r io.Reader) (marketplace.IdeaDetail, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return marketplace.IdeaDetail{}, &NetworkError{Op: "parse idea page", Err: err}
	}
	detail := marketplace.IdeaDetail{
		Idea: marketplace.Idea{
			Title:       strings.TrimSpace(doc.Find(".idea-title").First().Text()),
			Description: strings.TrimSpace(doc.Find(".idea-description").First().Text()),
			Status:      strings.TrimSpace(doc.Find(".idea-status").First().Text()),
		},
	}
	doc.Find(".comment").Each(func(_ int, sel *goquery.Selection) {
		detail.Comments = append(detail.Comments, marketplace.Comment{
			Author: strings.TrimSpace(sel.Find(".comment-author").Text()),
			Text:   strings.TrimSpace(sel.Find(".comment-text").Text()),
		})
	})
	return detail, nil
}

func parseSubmitted(raw string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func atoi(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}
