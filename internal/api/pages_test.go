package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/apocrypha/forge/internal/models"
)

const forgePage = `<html><body>
<div class="consideration-box" data-consideration-id="problem_definition">
  <div class="consideration-text">A real problem statement.</div>
</div>
<div class="consideration-box" data-consideration-id="target_market">
  <div class="consideration-text">` + models.PlaceholderText + `</div>
</div>
<div class="consideration-box" data-consideration-id="business_model">
  <div class="consideration-text">
     Padded with whitespace.
  </div>
</div>
<div class="consideration-box">no id, skipped</div>
</body></html>`

func TestForgeContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forge" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, forgePage)
	}))
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	content, err := client.ForgeContent(context.Background())
	if err != nil {
		t.Fatalf("ForgeContent: %v", err)
	}

	if got := content["problem_definition"]; got != "A real problem statement." {
		t.Errorf("problem_definition = %q", got)
	}
	// The placeholder sentinel means unset; it never reaches domain state.
	if got := content["target_market"]; got != "" {
		t.Errorf("placeholder should ingest as empty, got %q", got)
	}
	if got := content["business_model"]; got != "Padded with whitespace." {
		t.Errorf("business_model = %q", got)
	}
	if _, ok := content["growth_strategy"]; ok {
		t.Error("boxes absent from the page should be absent from the map")
	}
}

const marketplacePage = `<html><body>
<div class="idea-card" data-idea-id="idea-1" data-title="Solar Kiosk"
     data-description="Off-grid retail" data-status="submitted"
     data-submitted="2025-03-01 10:30:00" data-views="42" data-comments="3"></div>
<div class="idea-card" data-idea-id="idea-2" data-title="Meal Planner"
     data-description="Weekly menus" data-status="in_review"
     data-submitted="2025-03-02" data-views="" data-comments="oops"></div>
</body></html>`

func TestMarketplaceIdeas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, marketplacePage)
	}))
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	ideas, err := client.MarketplaceIdeas(context.Background())
	if err != nil {
		t.Fatalf("MarketplaceIdeas: %v", err)
	}
	if len(ideas) != 2 {
		t.Fatalf("got %d ideas, want 2", len(ideas))
	}

	first := ideas[0]
	if first.ID != "idea-1" || first.Title != "Solar Kiosk" || first.ViewCount != 42 {
		t.Errorf("first card parsed as %+v", first)
	}
	want := time.Date(2025, time.March, 1, 10, 30, 0, 0, time.UTC)
	if !first.Submitted.Equal(want) {
		t.Errorf("submitted = %v, want %v", first.Submitted, want)
	}

	// Unparseable counts degrade to zero rather than failing the page.
	second := ideas[1]
	if second.ViewCount != 0 || second.CommentCount != 0 {
		t.Errorf("bad counts should be zero, got %+v", second)
	}
	if second.Submitted.IsZero() {
		t.Error("date-only timestamps should parse")
	}
}

const ideaPage = `<html><body>
<h1 class="idea-title">Solar Kiosk</h1>
<span class="idea-status">submitted</span>
<p class="idea-description">Off-grid retail for rural markets.</p>
<div class="comment">
  <span class="comment-author">Ada</span>
  <span class="comment-text">Love this.</span>
</div>
<div class="comment">
  <span class="comment-author">Grace</span>
  <span class="comment-text">What about monsoons?</span>
</div>
</body></html>`

func TestIdeaDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/idea/idea-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, ideaPage)
	}))
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	detail, err := client.IdeaDetail(context.Background(), "idea-1")
	if err != nil {
		t.Fatalf("IdeaDetail: %v", err)
	}
	if detail.ID != "idea-1" {
		t.Errorf("id = %q", detail.ID)
	}
	if detail.Title != "Solar Kiosk" || detail.Status != "submitted" {
		t.Errorf("idea parsed as %+v", detail.Idea)
	}
	if len(detail.Comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(detail.Comments))
	}
	if detail.Comments[1].Author != "Grace" || !strings.Contains(detail.Comments[1].Text, "monsoons") {
		t.Errorf("second comment parsed as %+v", detail.Comments[1])
	}
}

func TestGetPageNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.IdeaDetail(context.Background(), "missing"); err == nil {
		t.Fatal("expected an error for a 404 page")
	}
}
