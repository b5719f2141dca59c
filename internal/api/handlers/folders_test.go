package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Siddique-web/EchoPlay/internal/folder"
)

// fakeCatalog serves snapshots from fixed records, standing in for the
// gorm-backed catalog.
type fakeCatalog struct {
	music map[string]folder.MusicItem
	video map[string]folder.VideoItem
}

func (f *fakeCatalog) MusicItem(_ context.Context, id string, addedAt time.Time) (folder.MusicItem, error) {
	item, ok := f.music[id]
	if !ok {
		return folder.MusicItem{}, gorm.ErrRecordNotFound
	}
	item.CreatedAt = &addedAt
	return item, nil
}

func (f *fakeCatalog) VideoItem(_ context.Context, id string, addedAt time.Time) (folder.VideoItem, error) {
	item, ok := f.video[id]
	if !ok {
		return folder.VideoItem{}, gorm.ErrRecordNotFound
	}
	item.CreatedAt = &addedAt
	return item, nil
}

func newFolderRouter(t *testing.T) (*gin.Engine, *folder.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := &fakeCatalog{
		music: map[string]folder.MusicItem{
			"song1": folder.NewMusicItem("song1", "Song One", "Artist A", "/media/song1.mp3", "/media/song1.jpg", time.Time{}),
		},
		video: map[string]folder.VideoItem{
			"vid1": folder.NewVideoItem("vid1", "Video One", "A short film", "/media/vid1.mp4", "/media/vid1.jpg", time.Time{}),
		},
	}

	repo := folder.NewRepository(folder.NewMemStore())
	h := NewFolderHandler(repo, catalog)

	router := gin.New()
	router.POST("/folders", h.Create)
	router.GET("/folders", h.List)
	router.GET("/folders/:id", h.Get)
	router.DELETE("/folders/:id", h.Delete)
	router.POST("/folders/:id/items", h.AddItem)
	router.DELETE("/folders/:id/items/:itemId", h.RemoveItem)
	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFolderEndpoints(t *testing.T) {
	router, _ := newFolderRouter(t)

	// Create
	w := doJSON(t, router, http.MethodPost, "/folders", `{"name":"Road Trip","type":"music"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" || created.Name != "Road Trip" || created.Type != "music" {
		t.Fatalf("unexpected create response: %+v", created)
	}

	// Add item by catalog id
	item := `{"type":"music","id":"song1"}`
	w = doJSON(t, router, http.MethodPost, "/folders/"+created.ID+"/items", item)
	if w.Code != http.StatusOK {
		t.Fatalf("add item: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Duplicate add reports conflict
	w = doJSON(t, router, http.MethodPost, "/folders/"+created.ID+"/items", item)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate add: expected 409, got %d: %s", w.Code, w.Body.String())
	}

	// Detail still holds exactly one item
	w = doJSON(t, router, http.MethodGet, "/folders/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}
	var detail struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatal(err)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("expected 1 item after duplicate add, got %d", len(detail.Items))
	}

	// Remove item, twice (second is a no-op)
	for i := 0; i < 2; i++ {
		w = doJSON(t, router, http.MethodDelete, "/folders/"+created.ID+"/items/song1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("remove item: expected 200, got %d: %s", w.Code, w.Body.String())
		}
	}

	// Delete folder
	w = doJSON(t, router, http.MethodDelete, "/folders/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/folders/"+created.ID, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", w.Code)
	}
}

// The stored item's fields must come from the catalog record, not from
// anything the client sends: the payload names the record and the server
// takes the copy.
func TestAddItemSnapshotsCatalogRecord(t *testing.T) {
	router, repo := newFolderRouter(t)

	w := doJSON(t, router, http.MethodPost, "/folders", `{"name":"Watch Later","type":"video"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", w.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	// Extra fields in the payload are ignored; only the id matters.
	body := `{"type":"video","id":"vid1","title":"Client Title"}`
	w = doJSON(t, router, http.MethodPost, "/folders/"+created.ID+"/items", body)
	if w.Code != http.StatusOK {
		t.Fatalf("add item: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	f, err := repo.Find(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(f.Items))
	}
	vi, ok := f.Items[0].(folder.VideoItem)
	if !ok {
		t.Fatalf("expected VideoItem, got %T", f.Items[0])
	}
	if vi.Title != "Video One" || vi.Description != "A short film" || vi.URL != "/media/vid1.mp4" {
		t.Fatalf("item not copied from the catalog record: %+v", vi)
	}
	if vi.CreatedAt == nil || vi.CreatedAt.IsZero() {
		t.Fatal("expected the item to be stamped at add time")
	}
}

func TestAddItemUnknownMedia(t *testing.T) {
	router, _ := newFolderRouter(t)

	w := doJSON(t, router, http.MethodPost, "/folders", `{"name":"Mix","type":"music"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", w.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	w = doJSON(t, router, http.MethodPost, "/folders/"+created.ID+"/items", `{"type":"music","id":"no-such-track"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown media: expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Media not found") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestFolderValidationResponses(t *testing.T) {
	router, _ := newFolderRouter(t)

	// Whitespace-only name passes binding but fails repository validation.
	w := doJSON(t, router, http.MethodPost, "/folders", `{"name":"   ","type":"music"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank name: expected 400, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/folders", `{"name":"Mix","type":"podcast"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad type: expected 400, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/folders/missing/items", `{"type":"music","id":"song1"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing folder: expected 404, got %d", w.Code)
	}
}

func TestListFoldersByType(t *testing.T) {
	router, repo := newFolderRouter(t)

	mustCreate := func(name, mt string) {
		w := doJSON(t, router, http.MethodPost, "/folders", `{"name":"`+name+`","type":"`+mt+`"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("create %s: got %d", name, w.Code)
		}
	}
	mustCreate("Workout", "music")
	mustCreate("Movies", "video")

	w := doJSON(t, router, http.MethodGet, "/folders?type=video", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	var resp struct {
		Folders []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"folders"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Folders) != 1 || resp.Folders[0].Name != "Movies" {
		t.Fatalf("expected only the video folder, got %+v", resp.Folders)
	}

	// The repository view agrees with the HTTP view.
	all, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 folders in store, got %d", len(all))
	}
}
