package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/tweeter-backend/internal/config"
	"github.com/tbourn/tweeter-backend/internal/domain"
	"github.com/tbourn/tweeter-backend/internal/repo"
)

// newTestStore opens a migrated file-backed SQLite store (pure Go, no CGO).
func newTestStore(t *testing.T) *repo.Store {
	t.Helper()
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "router.db"), false)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	st := repo.NewStore(db)
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return st
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath:  "/",
		MaxBodyBytes: 1 << 20,
		OTEL:         config.OTELConfig{ServiceName: "test-svc"},
	}
}

func newTestRouter(t *testing.T, cfg config.Config) (*gin.Engine, *repo.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := newTestStore(t)
	r := gin.New()
	RegisterRoutes(r, st, cfg)
	return r, st
}

type envelope struct {
	Payload json.RawMessage `json:"payload"`
	Message string          `json:"message"`
}

type errBody struct {
	Error     string  `json:"error"`
	RequestID *string `json:"request_id"`
	Details   []struct {
		Path, Message, Code string
	} `json:"details"`
}

func call(t *testing.T, r http.Handler, method, target, body string, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("json: %v (%s)", err, w.Body.String())
	}
	return v
}

func TestUserLifecycle(t *testing.T) {
	r, st := newTestRouter(t, testConfig())

	w := call(t, r, http.MethodPost, "/user", `{"email":"ana@example.com","name":"  Ana  ","username":"ana_b"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}
	env := decode[envelope](t, w)
	if env.Message != "User has been created successfully" {
		t.Fatalf("message = %q", env.Message)
	}
	if strings.Contains(string(env.Payload), `"id"`) {
		t.Fatalf("payload leaks id: %s", env.Payload)
	}

	users, err := st.ListUsers(context.Background())
	if err != nil || len(users) != 1 {
		t.Fatalf("users=%v err=%v", users, err)
	}
	id := users[0].ID
	if users[0].Name != "Ana" {
		t.Fatalf("name not normalized: %q", users[0].Name)
	}

	// Duplicate email -> 409 with the field-specific message.
	w = call(t, r, http.MethodPost, "/user", `{"email":"ana@example.com","name":"Other","username":"other_u"}`)
	if w.Code != http.StatusConflict || decode[errBody](t, w).Error != "A user account associated with that email already exists!" {
		t.Fatalf("duplicate = %d %s", w.Code, w.Body.String())
	}

	// Empty update returns the record unchanged.
	w = call(t, r, http.MethodPut, "/user/"+id, `{}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"name":"Ana"`) {
		t.Fatalf("empty update = %d %s", w.Code, w.Body.String())
	}

	w = call(t, r, http.MethodPut, "/user/"+id, `{"bio":"Coffee first.","image":"https://cdn.example.com/a.png"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"bio":"Coffee first."`) {
		t.Fatalf("update = %d %s", w.Code, w.Body.String())
	}
	w = call(t, r, http.MethodPut, "/user/"+id, `{"image":null}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"image":null`) {
		t.Fatalf("clear image = %d %s", w.Code, w.Body.String())
	}

	w = call(t, r, http.MethodGet, "/user", "")
	if w.Code != http.StatusOK || decode[envelope](t, w).Message != "Operation successful" {
		t.Fatalf("list = %d %s", w.Code, w.Body.String())
	}

	w = call(t, r, http.MethodDelete, "/user/"+id, "")
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("delete = %d %q", w.Code, w.Body.String())
	}
	if w.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("delete must disable caching: %v", w.Header())
	}
	if _, err := time.Parse(time.RFC3339, w.Header().Get("X-Deleted-At")); err != nil {
		t.Fatalf("X-Deleted-At: %v", err)
	}

	// Gone now.
	for _, m := range []string{http.MethodGet, http.MethodDelete} {
		w = call(t, r, m, "/user/"+id, "")
		if w.Code != http.StatusNotFound || decode[errBody](t, w).Error != "User not found!" {
			t.Fatalf("%s after delete = %d %s", m, w.Code, w.Body.String())
		}
	}
	w = call(t, r, http.MethodPut, "/user/"+id, `{"name":"x"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("update after delete = %d", w.Code)
	}
}

func TestTweetLifecycle(t *testing.T) {
	r, st := newTestRouter(t, testConfig())
	ctx := context.Background()

	u, err := st.CreateUser(ctx, "bo@example.com", "Bo", "bo_user")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	missing := domain.NewID()
	w := call(t, r, http.MethodPost, "/tweet", `{"content":"hi","userId":"`+missing+`"}`)
	if w.Code != http.StatusNotFound || decode[errBody](t, w).Error != "User not found!" {
		t.Fatalf("orphan tweet = %d %s", w.Code, w.Body.String())
	}

	w = call(t, r, http.MethodPost, "/tweet", `{"content":"hello world","userId":"`+u.ID+`"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"impression":0`) {
		t.Fatalf("impression default: %s", w.Body.String())
	}

	tweets, err := st.ListTweetsByUser(ctx, u.ID)
	if err != nil || len(tweets) != 1 {
		t.Fatalf("tweets=%v err=%v", tweets, err)
	}
	tid := tweets[0].ID

	w = call(t, r, http.MethodGet, "/tweet?userId="+u.ID, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "hello world") {
		t.Fatalf("list = %d %s", w.Code, w.Body.String())
	}
	w = call(t, r, http.MethodGet, "/tweet?userId="+missing, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("list for missing owner = %d", w.Code)
	}

	w = call(t, r, http.MethodPut, "/tweet/"+tid, `{"content":"edited"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"content":"edited"`) {
		t.Fatalf("update = %d %s", w.Code, w.Body.String())
	}

	// User with tweets cannot be removed.
	w = call(t, r, http.MethodDelete, "/user/"+u.ID, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("delete owner = %d %s", w.Code, w.Body.String())
	}

	w = call(t, r, http.MethodDelete, "/tweet/"+tid, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete tweet = %d", w.Code)
	}
	w = call(t, r, http.MethodGet, "/tweet/"+tid, "")
	if w.Code != http.StatusNotFound || decode[errBody](t, w).Error != "Tweet not found!" {
		t.Fatalf("get after delete = %d %s", w.Code, w.Body.String())
	}
}

func TestValidationErrors_EchoRequestID(t *testing.T) {
	r, _ := newTestRouter(t, testConfig())

	w := call(t, r, http.MethodGet, "/user/not-hex", "", "X-Request-ID", "rid-42")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode[errBody](t, w)
	if body.Error != "ValidationError" || body.RequestID == nil || *body.RequestID != "rid-42" {
		t.Fatalf("body = %+v", body)
	}
	if len(body.Details) != 1 || body.Details[0].Path != "id" || body.Details[0].Message != "Invalid ID format!" {
		t.Fatalf("details = %+v", body.Details)
	}

	w = call(t, r, http.MethodPost, "/user", `{"email":"x@y.z","name":"N","username":"abcde","role":"admin"}`)
	body = decode[errBody](t, w)
	if w.Code != http.StatusBadRequest || body.RequestID != nil || body.Details[0].Code != "unrecognized_keys" {
		t.Fatalf("strict body = %d %+v", w.Code, body)
	}
}

func TestUppercaseIDs_AddressTheSameRecords(t *testing.T) {
	r, st := newTestRouter(t, testConfig())
	ctx := context.Background()

	u, err := st.CreateUser(ctx, "cy@example.com", "Cy", "cy_user")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	upperUser := strings.ToUpper(u.ID)

	w := call(t, r, http.MethodPost, "/tweet", `{"content":"shouting ids","userId":"`+upperUser+`"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create with uppercase owner = %d %s", w.Code, w.Body.String())
	}
	w = call(t, r, http.MethodGet, "/tweet?userId="+upperUser, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "shouting ids") {
		t.Fatalf("list with uppercase owner = %d %s", w.Code, w.Body.String())
	}
	tweets, err := st.ListTweetsByUser(ctx, u.ID)
	if err != nil || len(tweets) != 1 || tweets[0].UserID != u.ID {
		t.Fatalf("tweets=%+v err=%v", tweets, err)
	}
	upperTweet := strings.ToUpper(tweets[0].ID)

	w = call(t, r, http.MethodGet, "/tweet/"+upperTweet, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get tweet = %d %s", w.Code, w.Body.String())
	}
	w = call(t, r, http.MethodPut, "/tweet/"+upperTweet, `{"content":"quiet"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"content":"quiet"`) {
		t.Fatalf("update tweet = %d %s", w.Code, w.Body.String())
	}
	w = call(t, r, http.MethodDelete, "/tweet/"+upperTweet, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete tweet = %d %s", w.Code, w.Body.String())
	}

	w = call(t, r, http.MethodGet, "/user/"+upperUser, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"username":"cy_user"`) {
		t.Fatalf("get user = %d %s", w.Code, w.Body.String())
	}
	w = call(t, r, http.MethodPut, "/user/"+upperUser, `{"name":"Cyrus"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"name":"Cyrus"`) {
		t.Fatalf("update user = %d %s", w.Code, w.Body.String())
	}
	w = call(t, r, http.MethodDelete, "/user/"+upperUser, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete user = %d %s", w.Code, w.Body.String())
	}
	if _, err := st.GetUser(ctx, u.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("user still stored: %v", err)
	}
}

func TestTweetContent_LengthCheckedAfterNormalization(t *testing.T) {
	r, st := newTestRouter(t, testConfig())
	ctx := context.Background()
	u, err := st.CreateUser(ctx, "di@example.com", "Di", "di_user")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// U+0958 decomposes under NFC into two code points.
	w := call(t, r, http.MethodPost, "/tweet", `{"content":"`+strings.Repeat("\u0958", 1000)+`","userId":"`+u.ID+`"}`)
	body := decode[errBody](t, w)
	if w.Code != http.StatusBadRequest || len(body.Details) != 1 || body.Details[0].Path != "content" || body.Details[0].Code != "max" {
		t.Fatalf("expanded content = %d %+v", w.Code, body)
	}

	w = call(t, r, http.MethodPost, "/tweet", `{"content":"`+strings.Repeat("\u0958", 500)+`","userId":"`+u.ID+`"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("content at the limit = %d %s", w.Code, w.Body.String())
	}
	tweets, err := st.ListTweetsByUser(ctx, u.ID)
	if err != nil || len(tweets) != 1 {
		t.Fatalf("tweets=%v err=%v", tweets, err)
	}
	if n := len([]rune(tweets[0].Content)); n != 1000 {
		t.Fatalf("stored %d runes", n)
	}
}

func TestStrictBodies_ExactKeysAndNulls(t *testing.T) {
	r, st := newTestRouter(t, testConfig())
	u, err := st.CreateUser(context.Background(), "ed@example.com", "Ed", "ed_user")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := call(t, r, http.MethodPost, "/tweet", `{"CONTENT":"hi","USERID":"`+u.ID+`"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("case-folded keys = %d %s", w.Code, w.Body.String())
	}
	codes := map[string]string{}
	for _, d := range decode[errBody](t, w).Details {
		codes[d.Path] = d.Code
	}
	want := map[string]string{"CONTENT": "unrecognized_keys", "USERID": "unrecognized_keys", "content": "required", "userId": "required"}
	for path, code := range want {
		if codes[path] != code {
			t.Fatalf("details = %v, want %s=%s", codes, path, code)
		}
	}

	w = call(t, r, http.MethodPut, "/user/"+u.ID, `{"bio":null}`)
	body := decode[errBody](t, w)
	if w.Code != http.StatusBadRequest || len(body.Details) != 1 || body.Details[0].Path != "bio" || body.Details[0].Code != "invalid_type" {
		t.Fatalf("null bio = %d %+v", w.Code, body)
	}
}

func TestRegisterRoutes_HealthMetricsFallbacks(t *testing.T) {
	r, st := newTestRouter(t, testConfig())

	w := call(t, r, http.MethodGet, "/health", "", "Origin", "http://anywhere.test")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("health = %d %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-all CORS expected '*', got %q", got)
	}
	if w.Header().Get("X-Request-ID") == "" || w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("missing request id or security headers: %v", w.Header())
	}

	w = call(t, r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Fatalf("metrics = %d", w.Code)
	}

	w = call(t, r, http.MethodGet, "/nope", "")
	if w.Code != http.StatusNotFound || decode[errBody](t, w).Error != "Route not found" {
		t.Fatalf("no route = %d %s", w.Code, w.Body.String())
	}
	w = call(t, r, http.MethodPost, "/health", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("no method = %d", w.Code)
	}

	// Swagger is opt-in.
	if w = call(t, r, http.MethodGet, "/swagger/index.html", ""); w.Code != http.StatusNotFound {
		t.Fatalf("swagger should be off: %d", w.Code)
	}

	// A closed store fails the health check.
	_ = st.Close(context.Background())
	if w = call(t, r, http.MethodGet, "/health", ""); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("health with closed store = %d", w.Code)
	}
}

func TestRegisterRoutes_CORSWithOrigins_BasePathAndSwagger(t *testing.T) {
	cfg := testConfig()
	cfg.APIBasePath = "/api/v1"
	cfg.SwaggerEnabled = true
	cfg.CORS = config.CORSConfig{AllowedOrigins: []string{"http://example.com"}}
	r, _ := newTestRouter(t, cfg)

	w := call(t, r, http.MethodGet, "/api/v1/user", "", "Origin", "http://example.com")
	if w.Code != http.StatusOK || w.Header().Get("Access-Control-Allow-Origin") != "http://example.com" {
		t.Fatalf("allowed origin = %d %v", w.Code, w.Header())
	}
	w = call(t, r, http.MethodGet, "/api/v1/user", "", "Origin", "http://evil.test")
	if w.Code != http.StatusForbidden {
		t.Fatalf("disallowed origin = %d", w.Code)
	}
	if w = call(t, r, http.MethodGet, "/user", ""); w.Code != http.StatusNotFound {
		t.Fatalf("root mount should be gone: %d", w.Code)
	}
	if w = call(t, r, http.MethodGet, "/swagger/doc.json", ""); w.Code != http.StatusOK {
		t.Fatalf("swagger doc = %d", w.Code)
	}
}

func TestPanicsBecomeJSON500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestStore(t), testConfig())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := call(t, r, http.MethodGet, "/boom", "")
	if w.Code != http.StatusInternalServerError || decode[errBody](t, w).Error != "Internal Server Error" {
		t.Fatalf("panic = %d %s", w.Code, w.Body.String())
	}
}

func TestBodyTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBodyBytes = 16
	r, _ := newTestRouter(t, cfg)

	w := call(t, r, http.MethodPost, "/user", `{"email":"ana@example.com","name":"Ana","username":"ana_b"}`)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d %s", w.Code, w.Body.String())
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	groupWithPrefix(r, "/").GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	groupWithPrefix(r, "").GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })
	groupWithPrefix(r, "/api").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK || rec.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, rec.Code, rec.Body.String())
		}
	}
}
