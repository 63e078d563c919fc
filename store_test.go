package hubsite

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/flyballhub/hubsite/content"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_site.db")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testPage(slug string, published bool, blockTypes ...string) content.Page {
	blocks := make([]content.Block, 0, len(blockTypes))
	for i, bt := range blockTypes {
		raw, _ := json.Marshal(map[string]string{
			"_type": bt,
			"_key":  bt + "-" + string(rune('a'+i)),
		})
		decoded, _ := content.DecodeBlocks([]byte("[" + string(raw) + "]"))
		blocks = append(blocks, decoded[0])
	}
	return content.Page{
		Type:      "page",
		Slug:      slug,
		Title:     "Page " + slug,
		Blocks:    blocks,
		UpdatedAt: "2026-01-15T10:00:00Z",
		Published: published,
	}
}

func TestSaveAndGetPage(t *testing.T) {
	s := setupTestStore(t)

	saved, err := s.SavePage(testPage("features", true, "hero", "featureCardsIcon"))
	if err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("SavePage should mint an id")
	}

	got, err := s.GetPage("features")
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if got.ID != saved.ID {
		t.Errorf("ID = %q, want %q", got.ID, saved.ID)
	}
	if got.Title != "Page features" {
		t.Errorf("Title = %q, want %q", got.Title, "Page features")
	}
	if len(got.Blocks) != 2 {
		t.Fatalf("Blocks count = %d, want 2", len(got.Blocks))
	}
	if got.Blocks[0].Type != "hero" || got.Blocks[1].Type != "featureCardsIcon" {
		t.Errorf("block order not preserved: %s, %s", got.Blocks[0].Type, got.Blocks[1].Type)
	}
	if !got.Published {
		t.Error("Published should be true")
	}
}

func TestSavePageUpdateKeepsID(t *testing.T) {
	s := setupTestStore(t)

	saved, err := s.SavePage(testPage("about", true, "hero"))
	if err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}

	saved.Title = "Updated Title"
	again, err := s.SavePage(saved)
	if err != nil {
		t.Fatalf("SavePage update failed: %v", err)
	}
	if again.ID != saved.ID {
		t.Errorf("update minted a new id: %q != %q", again.ID, saved.ID)
	}

	got, err := s.GetPage("about")
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if got.Title != "Updated Title" {
		t.Errorf("Title = %q, want %q", got.Title, "Updated Title")
	}
}

func TestGetPageUnpublished(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.SavePage(testPage("draft", false, "hero")); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}

	if _, err := s.GetPage("draft"); err != sql.ErrNoRows {
		t.Errorf("GetPage should return ErrNoRows for a draft, got %v", err)
	}

	got, err := s.GetPageAny("draft")
	if err != nil {
		t.Fatalf("GetPageAny failed: %v", err)
	}
	if got.Published {
		t.Error("Published should be false")
	}
}

func TestListPagesExcludesDrafts(t *testing.T) {
	s := setupTestStore(t)

	for _, p := range []content.Page{
		testPage("a", true, "hero"),
		testPage("b", false, "hero"),
		testPage("c", true, "hero"),
	} {
		if _, err := s.SavePage(p); err != nil {
			t.Fatalf("SavePage failed: %v", err)
		}
	}

	got, err := s.ListPages()
	if err != nil {
		t.Fatalf("ListPages failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ListPages count = %d, want 2", len(got))
	}

	all, err := s.ListAllPages()
	if err != nil {
		t.Fatalf("ListAllPages failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListAllPages count = %d, want 3", len(all))
	}
}

func TestSaveAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	post := content.Post{
		Slug:        "tournament-recap",
		Title:       "Tournament Recap",
		Description: "How it went",
		Date:        "2026-01-15",
		Image:       &content.Image{ID: "image-abc123-800x600-jpg", Alt: "podium"},
		Published:   true,
	}
	if err := s.SavePost(post); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	got, err := s.GetPost("tournament-recap")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Title != post.Title {
		t.Errorf("Title = %q, want %q", got.Title, post.Title)
	}
	if got.Date != post.Date {
		t.Errorf("Date = %q, want %q", got.Date, post.Date)
	}
	if !got.Image.Valid() || got.Image.ID != post.Image.ID {
		t.Errorf("Image = %+v, want id %q", got.Image, post.Image.ID)
	}
}

func TestListPostsOrderedByDateDesc(t *testing.T) {
	s := setupTestStore(t)

	for _, p := range []content.Post{
		{Slug: "old", Title: "Old", Date: "2026-01-01", Published: true},
		{Slug: "new", Title: "New", Date: "2026-02-01", Published: true},
		{Slug: "draft", Title: "Draft", Date: "2026-03-01", Published: false},
	} {
		if err := s.SavePost(p); err != nil {
			t.Fatalf("SavePost failed: %v", err)
		}
	}

	got, err := s.ListPosts()
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListPosts count = %d, want 2 (excluding draft)", len(got))
	}
	if got[0].Slug != "new" {
		t.Errorf("first post = %q, want %q", got[0].Slug, "new")
	}
}

func TestDeletePage(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.SavePage(testPage("to-delete", true, "hero")); err != nil {
		t.Fatalf("SavePage failed: %v", err)
	}
	if err := s.DeletePage("to-delete"); err != nil {
		t.Fatalf("DeletePage failed: %v", err)
	}
	if _, err := s.GetPageAny("to-delete"); err != sql.ErrNoRows {
		t.Errorf("page should not exist after delete, got err: %v", err)
	}

	// Deleting a nonexistent page is not an error.
	if err := s.DeletePage("nonexistent"); err != nil {
		t.Errorf("DeletePage on nonexistent should not error, got: %v", err)
	}
}

func TestRedirects(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SaveRedirect("old-page", "/new-page/"); err != nil {
		t.Fatalf("SaveRedirect failed: %v", err)
	}

	got, err := s.ListRedirects()
	if err != nil {
		t.Fatalf("ListRedirects failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListRedirects count = %d, want 1", len(got))
	}
	// Source paths are normalized to /old-page/.
	if got[0][0] != "/old-page/" {
		t.Errorf("from = %q, want %q", got[0][0], "/old-page/")
	}
	if got[0][1] != "/new-page/" {
		t.Errorf("to = %q, want %q", got[0][1], "/new-page/")
	}

	if err := s.DeleteRedirect("old-page"); err != nil {
		t.Fatalf("DeleteRedirect failed: %v", err)
	}
	got, _ = s.ListRedirects()
	if len(got) != 0 {
		t.Errorf("redirect should be gone, got %v", got)
	}
}

func TestAddSubscriberDeduplicates(t *testing.T) {
	s := setupTestStore(t)

	for _, email := range []string{"handler@example.com", "Handler@Example.com", " handler@example.com "} {
		if err := s.AddSubscriber(email, "2026-01-01T00:00:00Z"); err != nil {
			t.Fatalf("AddSubscriber(%q) failed: %v", email, err)
		}
	}

	n, err := s.CountSubscribers()
	if err != nil {
		t.Fatalf("CountSubscribers failed: %v", err)
	}
	if n != 1 {
		t.Errorf("CountSubscribers = %d, want 1 (case and whitespace folded)", n)
	}
}

func TestImageMetadataRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	img := UploadedImage{
		Filename:     "team-photo.jpg",
		OriginalName: "Team Photo.png",
		Width:        1600,
		Height:       900,
		Size:         204800,
		UploadedAt:   "2026-01-15T10:00:00Z",
	}
	if err := s.SaveImage(img); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	images, err := s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 1 || images[0] != img {
		t.Errorf("ListImages = %+v, want [%+v]", images, img)
	}

	if err := s.DeleteImage("team-photo.jpg"); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	images, _ = s.ListImages()
	if len(images) != 0 {
		t.Errorf("image should be gone, got %+v", images)
	}
}
