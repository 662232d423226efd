package app

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/CloudGalleryGo/CloudGallery/internal/config"
	"github.com/CloudGalleryGo/CloudGallery/internal/domain"
	"github.com/CloudGalleryGo/CloudGallery/internal/handler"
	"github.com/CloudGalleryGo/CloudGallery/internal/session"
	"github.com/CloudGalleryGo/CloudGallery/internal/usecase"
)

// In-memory stand-ins for the mongo collections, scoping reads by UserID
// the same way the real storages do.

type memUserStorage struct {
	users map[string]*domain.User
}

func (m *memUserStorage) SaveUser(ctx context.Context, user *domain.User) error {
	m.users[user.Username] = user
	return nil
}

func (m *memUserStorage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.users[username], nil
}

type memPhotoStorage struct {
	photos []domain.Photo
}

func (m *memPhotoStorage) SavePhoto(ctx context.Context, photo *domain.Photo) error {
	m.photos = append(m.photos, *photo)
	return nil
}

func (m *memPhotoStorage) ListPhotosByUser(ctx context.Context, userID string) ([]domain.Photo, error) {
	out := []domain.Photo{}
	for _, p := range m.photos {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPhotoStorage) GetPhotoByID(ctx context.Context, photoID, userID string) (*domain.Photo, error) {
	for _, p := range m.photos {
		if p.PhotoID == photoID && p.UserID == userID {
			photo := p
			return &photo, nil
		}
	}
	return nil, nil
}

func (m *memPhotoStorage) SearchPhotos(ctx context.Context, userID, query string) ([]domain.Photo, error) {
	q := strings.ToLower(query)
	out := []domain.Photo{}
	for _, p := range m.photos {
		if p.UserID != userID {
			continue
		}
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Tags), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

type memFileStorage struct{}

func (memFileStorage) UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	return "https://bucket.s3.us-east-2.amazonaws.com/" + key, nil
}

type memMetadataReader struct{}

func (memMetadataReader) ReadMetadata(r io.Reader) (map[string]string, error) {
	return map[string]string{"Image Model": "TestCam"}, nil
}

// testTemplates are minimal pages exposing just enough markers for the
// assertions below.
func testTemplates(t *testing.T) *template.Template {
	t.Helper()
	tpl := template.New("pages")
	pages := map[string]string{
		"index.html":       `gallery of {{.Username}}:{{range .Photos}}[{{.Title}}]{{end}}`,
		"form.html":        `upload form for {{.Username}}`,
		"photodetail.html": `detail {{.Photo.Title}} tags={{range .Tags}}{{.}};{{end}} exif={{range $k, $v := .ExifData}}{{$k}}={{$v}};{{end}}`,
		"search.html":      `results for {{.SearchQuery}}:{{range .Photos}}[{{.Title}}]{{end}}`,
		"login.html":       `login page {{.Error}}`,
		"signup.html":      `signup page {{.Error}}`,
	}
	for name, body := range pages {
		template.Must(tpl.New(name).Parse(body))
	}
	return tpl
}

type testEnv struct {
	server *httptest.Server
	client *http.Client
	photos *memPhotoStorage
	users  *memUserStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := &memUserStorage{users: map[string]*domain.User{}}
	photos := &memPhotoStorage{}

	photoUC := usecase.NewPhotoUseCase(photos, memFileStorage{}, memMetadataReader{}, t.TempDir(), logger)
	userUC := usecase.NewUserUseCase(users, logger)
	sessions := session.NewManager("test-secret")
	gallery := handler.NewGalleryHandler(testTemplates(t), sessions, photoUC, userUC, logger)

	cfg := &config.Config{AssetsDir: t.TempDir()}
	router := NewRouter(cfg, gallery, sessions, logger)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &testEnv{
		server: server,
		client: &http.Client{Jar: jar},
		photos: photos,
		users:  users,
	}
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	res, err := e.client.Get(e.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("GET %s: read body: %v", path, err)
	}
	return res, string(body)
}

// getNoRedirect issues a GET that stops at the first redirect.
func (e *testEnv) getNoRedirect(t *testing.T, path string) *http.Response {
	t.Helper()
	client := &http.Client{
		Jar: e.client.Jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	res, err := client.Get(e.server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	res.Body.Close()
	return res
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	res, err := e.client.PostForm(e.server.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("POST %s: read body: %v", path, err)
	}
	return res, string(body)
}

func (e *testEnv) upload(t *testing.T, filename, title, tags, description string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("imagefile", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte("jpeg bytes")); err != nil {
		t.Fatal(err)
	}
	w.WriteField("title", title)
	w.WriteField("tags", tags)
	w.WriteField("description", description)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	res, err := e.client.Post(e.server.URL+"/add", w.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST /add: %v", err)
	}
	res.Body.Close()
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/", "/add", "/search", "/logout", "/12345"} {
		res := env.getNoRedirect(t, path)
		if res.StatusCode != http.StatusFound {
			t.Errorf("GET %s status = %d, want %d", path, res.StatusCode, http.StatusFound)
		}
		if loc := res.Header.Get("Location"); loc != "/login" {
			t.Errorf("GET %s redirects to %q, want /login", path, loc)
		}
	}
}

func TestSignupValidationMessages(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{"missing fields", url.Values{"username": {""}, "password": {""}}, "Username and password required"},
		{"mismatch", url.Values{"username": {"bob"}, "password": {"a"}, "confirm_password": {"b"}}, "Passwords do not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, body := env.postForm(t, "/signup", tt.form)
			if !strings.Contains(body, tt.want) {
				t.Errorf("signup response %q does not contain %q", body, tt.want)
			}
		})
	}
}

func TestGalleryEndToEnd(t *testing.T) {
	env := newTestEnv(t)

	// signup alice and land on the gallery
	_, body := env.postForm(t, "/signup", url.Values{
		"username":         {"alice"},
		"password":         {"pw123"},
		"confirm_password": {"pw123"},
	})
	if !strings.Contains(body, "gallery of alice") {
		t.Fatalf("signup did not land on the gallery: %q", body)
	}

	// a second signup with the same username fails and adds no user
	_, body = env.postForm(t, "/signup", url.Values{
		"username":         {"alice"},
		"password":         {"other"},
		"confirm_password": {"other"},
	})
	if !strings.Contains(body, "Username already exists") {
		t.Errorf("duplicate signup response: %q", body)
	}
	if len(env.users.users) != 1 {
		t.Errorf("user count after duplicate signup = %d, want 1", len(env.users.users))
	}

	// fresh login with the original credentials
	env.get(t, "/logout")
	_, body = env.postForm(t, "/login", url.Values{
		"username": {"alice"},
		"password": {"pw123"},
	})
	if !strings.Contains(body, "gallery of alice") {
		t.Fatalf("login did not land on the gallery: %q", body)
	}

	// a wrong password keeps the generic message
	_, wrongBody := env.postForm(t, "/login", url.Values{
		"username": {"alice"},
		"password": {"nope"},
	})
	if !strings.Contains(wrongBody, "Invalid username or password") {
		t.Errorf("wrong-password response: %q", wrongBody)
	}

	// upload one JPEG
	env.upload(t, "sunset.jpg", "Sunset", "beach,evening", "Evening at the beach")
	if len(env.photos.photos) != 1 {
		t.Fatalf("photo count after upload = %d, want 1", len(env.photos.photos))
	}

	// a disallowed extension creates nothing
	env.upload(t, "report.pdf", "Report", "", "")
	if len(env.photos.photos) != 1 {
		t.Fatalf("photo count after rejected upload = %d, want 1", len(env.photos.photos))
	}

	// gallery lists the upload
	_, body = env.get(t, "/")
	if !strings.Contains(body, "[Sunset]") {
		t.Errorf("gallery body %q does not list the upload", body)
	}

	// tag-only search matches, unrelated search does not
	_, body = env.get(t, "/search?query=beach")
	if !strings.Contains(body, "[Sunset]") {
		t.Errorf("search for beach: %q", body)
	}
	_, body = env.get(t, "/search?query=mountain")
	if strings.Contains(body, "[Sunset]") {
		t.Errorf("search for mountain unexpectedly matched: %q", body)
	}

	// empty query matches every photo
	_, body = env.get(t, "/search?query=")
	if !strings.Contains(body, "[Sunset]") {
		t.Errorf("empty search: %q", body)
	}

	// detail view splits tags and decodes metadata
	photoID := env.photos.photos[0].PhotoID
	res, body := env.get(t, "/"+photoID)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("detail status = %d", res.StatusCode)
	}
	if !strings.Contains(body, "tags=beach;evening;") {
		t.Errorf("detail tags: %q", body)
	}
	if !strings.Contains(body, "Image Model=TestCam") {
		t.Errorf("detail exif: %q", body)
	}

	// an unknown photo ID is a 404
	if res, _ := env.get(t, "/does-not-exist"); res.StatusCode != http.StatusNotFound {
		t.Errorf("unknown photo status = %d, want 404", res.StatusCode)
	}

	// logout drops the session; the gallery redirects to login again
	env.get(t, "/logout")
	res = env.getNoRedirect(t, "/")
	if res.StatusCode != http.StatusFound || res.Header.Get("Location") != "/login" {
		t.Errorf("after logout: status = %d location = %q", res.StatusCode, res.Header.Get("Location"))
	}
}

func TestForeignPhotoLooksNonexistent(t *testing.T) {
	env := newTestEnv(t)

	// bob owns a photo
	env.postForm(t, "/signup", url.Values{
		"username": {"bob"}, "password": {"pw"}, "confirm_password": {"pw"},
	})
	env.upload(t, "cat.jpg", "Cat", "pets", "")
	photoID := env.photos.photos[0].PhotoID
	env.get(t, "/logout")

	// alice cannot tell bob's photo from a nonexistent one
	env.postForm(t, "/signup", url.Values{
		"username": {"alice"}, "password": {"pw"}, "confirm_password": {"pw"},
	})
	foreign, _ := env.get(t, "/"+photoID)
	missing, _ := env.get(t, "/nonexistent")
	if foreign.StatusCode != http.StatusNotFound {
		t.Errorf("foreign photo status = %d, want 404", foreign.StatusCode)
	}
	if foreign.StatusCode != missing.StatusCode {
		t.Error("foreign and nonexistent photo lookups are distinguishable")
	}
}
