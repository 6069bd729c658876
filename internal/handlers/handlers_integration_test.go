package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"bookbazaar/internal/handlers"
	"bookbazaar/internal/middleware"
	"bookbazaar/internal/models"
	"bookbazaar/internal/repositories"
	"bookbazaar/internal/services"
	"bookbazaar/pkg/mlclient"
	"bookbazaar/pkg/ratelimit"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// mlUpstream is a stand-in for the external ML service. Status codes and
// responses are swappable mid-test to simulate rate limiting and recovery.
type mlUpstream struct {
	mu          sync.Mutex
	genreStatus int
	tagsStatus  int
	genre       []string
	tags        []string
	genreCalls  int
	tagCalls    int
}

func (u *mlUpstream) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		defer u.mu.Unlock()

		switch r.URL.Path {
		case "/predict-genre":
			u.genreCalls++
			if u.genreStatus != http.StatusOK {
				w.WriteHeader(u.genreStatus)
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"genre": u.genre})
		case "/extract-tags":
			u.tagCalls++
			if u.tagsStatus != http.StatusOK {
				w.WriteHeader(u.tagsStatus)
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"tags": u.tags})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func (u *mlUpstream) set(fn func(*mlUpstream)) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fn(u)
}

func (u *mlUpstream) counts() (int, int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.genreCalls, u.tagCalls
}

type testEnv struct {
	app      *fiber.App
	upstream *mlUpstream
}

// setupApp wires the full HTTP stack against a per-test in-memory SQLite
// database and a stubbed ML upstream. quota bounds the ML route group.
func setupApp(t *testing.T, dbName string, quota int) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.UserFavorite{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	upstream := &mlUpstream{genreStatus: http.StatusOK, tagsStatus: http.StatusOK}
	server := httptest.NewServer(upstream.handler())
	t.Cleanup(server.Close)

	userRepo := repositories.NewGORMUserRepository(db)
	bookRepo := repositories.NewGORMBookRepository(db)
	favoriteRepo := repositories.NewGORMFavoriteRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	authService := services.NewAuthService(userRepo, "test_secret")
	bookService := services.NewBookService(bookRepo)
	favoriteService := services.NewFavoriteService(favoriteRepo, bookRepo)
	orderService := services.NewOrderService(orderRepo, bookRepo, nil)
	mlService := services.NewMLService(bookRepo, mlclient.NewClient(mlclient.Config{
		URL:   server.URL,
		Sleep: func(time.Duration) {}, // no real backoff waits in tests
	}))

	app := fiber.New()
	protect := middleware.AuthRequired(authService)
	throttle := middleware.RateLimit(ratelimit.New(quota, time.Minute))

	api := app.Group("/api")
	handlers.NewAuthHandler(authService).RegisterRoutes(api, protect)
	handlers.NewBookHandler(bookService, t.TempDir()).RegisterRoutes(api, protect)
	handlers.NewFavoriteHandler(favoriteService).RegisterRoutes(api, protect)
	handlers.NewOrderHandler(orderService).RegisterRoutes(api, protect)
	handlers.NewMLHandler(mlService, bookService).RegisterRoutes(api, throttle)

	return &testEnv{app: app, upstream: upstream}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (e *testEnv) registerAndLogin(t *testing.T, name, email string) string {
	t.Helper()

	resp := e.request(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = e.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    email,
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Token)
	return body.Token
}

func (e *testEnv) createBook(t *testing.T, token string, payload fiber.Map) models.Book {
	t.Helper()

	resp := e.request(t, http.MethodPost, "/api/books/add", token, payload)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Book models.Book `json:"book"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Book.ID)
	return body.Book
}

func TestAuthEndpoints(t *testing.T) {
	env := setupApp(t, "auth_it", 50)

	resp := env.request(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Duplicate email is rejected.
	resp = env.request(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Alice Again",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Short password fails validation.
	resp = env.request(t, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Bob",
		"email":    "bob@example.com",
		"password": "shh",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &login)
	assert.NotEmpty(t, login.Token)

	resp = env.request(t, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/api/auth/profile", login.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var profile models.User
	decodeBody(t, resp, &profile)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, "Alice", profile.Name)
}

func TestBookEndpoints(t *testing.T) {
	env := setupApp(t, "books_it", 50)
	seller := env.registerAndLogin(t, "Seller", "seller@example.com")
	other := env.registerAndLogin(t, "Other", "other@example.com")

	// Creating a listing requires authentication.
	resp := env.request(t, http.MethodPost, "/api/books/add", "", fiber.Map{
		"title":   "Dune",
		"summary": "Spice and sandworms",
		"price":   12.5,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Missing author, condition and genre get schema defaults in the response.
	book := env.createBook(t, seller, fiber.Map{
		"title":   "Dune",
		"summary": "Spice and sandworms",
		"price":   12.5,
	})
	assert.Equal(t, 1, book.Index)
	assert.Equal(t, models.StringList{"Unknown"}, book.Author)
	assert.Equal(t, models.StringList{"General"}, book.Genre)
	assert.Equal(t, models.ConditionUsed, book.Condition)

	second := env.createBook(t, seller, fiber.Map{
		"title":     "Hyperion",
		"author":    []string{"Dan Simmons"},
		"summary":   "Pilgrims and the Shrike",
		"price":     9.0,
		"condition": "New",
		"genre":     []string{"Science Fiction"},
	})
	assert.Equal(t, 2, second.Index)
	assert.Equal(t, models.StringList{"Science Fiction"}, second.Genre)

	resp = env.request(t, http.MethodGet, "/api/books/all", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var listing struct {
		Books   []models.Book `json:"books"`
		HasMore bool          `json:"hasMore"`
	}
	decodeBody(t, resp, &listing)
	assert.Len(t, listing.Books, 2)
	assert.False(t, listing.HasMore)

	// Pagination reports remaining pages.
	resp = env.request(t, http.MethodGet, "/api/books/all?page=1&limit=1", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &listing)
	assert.Len(t, listing.Books, 1)
	assert.True(t, listing.HasMore)

	// Genre filter matches listings carrying the genre.
	resp = env.request(t, http.MethodGet, "/api/books/all?genre=Science+Fiction", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &listing)
	assert.Len(t, listing.Books, 1)
	assert.Equal(t, "Hyperion", listing.Books[0].Title)

	resp = env.request(t, http.MethodGet, "/api/books/my-books", seller, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []models.Book
	decodeBody(t, resp, &mine)
	assert.Len(t, mine, 2)

	// Only the seller may edit or delete a listing.
	update := fiber.Map{
		"title":   "Dune (Revised)",
		"summary": "Spice and sandworms",
		"price":   14.0,
	}
	resp = env.request(t, http.MethodPut, "/api/books/"+book.ID, other, update)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodPut, "/api/books/"+book.ID, seller, update)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated struct {
		Book models.Book `json:"book"`
	}
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Dune (Revised)", updated.Book.Title)

	resp = env.request(t, http.MethodDelete, "/api/books/"+book.ID, other, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodDelete, "/api/books/"+book.ID, seller, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/api/books/"+book.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestFavoriteEndpoints(t *testing.T) {
	env := setupApp(t, "favorites_it", 50)
	token := env.registerAndLogin(t, "Reader", "reader@example.com")
	book := env.createBook(t, token, fiber.Map{
		"title":   "Dune",
		"summary": "Spice and sandworms",
		"price":   12.5,
	})

	resp := env.request(t, http.MethodPost, "/api/favorites/", token, fiber.Map{
		"book_id": book.ID,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Favoriting the same book twice is idempotent.
	resp = env.request(t, http.MethodPost, "/api/favorites/", token, fiber.Map{
		"book_id": book.ID,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Unknown books cannot be favorited.
	resp = env.request(t, http.MethodPost, "/api/favorites/", token, fiber.Map{
		"book_id": "no-such-book",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/api/favorites/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var favorites struct {
		Favorites []models.Book `json:"favorites"`
	}
	decodeBody(t, resp, &favorites)
	assert.Len(t, favorites.Favorites, 1)
	assert.Equal(t, book.ID, favorites.Favorites[0].ID)

	resp = env.request(t, http.MethodDelete, "/api/favorites/"+book.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/api/favorites/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &favorites)
	assert.Empty(t, favorites.Favorites)
}

func TestOrderEndpoints(t *testing.T) {
	env := setupApp(t, "orders_it", 50)
	token := env.registerAndLogin(t, "Buyer", "buyer@example.com")
	dune := env.createBook(t, token, fiber.Map{
		"title":   "Dune",
		"summary": "Spice and sandworms",
		"price":   12.5,
	})
	hyperion := env.createBook(t, token, fiber.Map{
		"title":   "Hyperion",
		"summary": "Pilgrims and the Shrike",
		"price":   9.0,
	})

	resp := env.request(t, http.MethodPost, "/api/orders/", token, fiber.Map{
		"items": []fiber.Map{
			{"book_id": dune.ID, "quantity": 2},
			{"book_id": hyperion.ID},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decodeBody(t, resp, &order)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 34.0, order.Total)
	assert.Equal(t, "Dune", order.Items[0].Title)
	assert.Equal(t, 1, order.Items[1].Quantity)

	// Empty orders and unknown books are rejected.
	resp = env.request(t, http.MethodPost, "/api/orders/", token, fiber.Map{
		"items": []fiber.Map{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodPost, "/api/orders/", token, fiber.Map{
		"items": []fiber.Map{{"book_id": "no-such-book", "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, http.MethodGet, "/api/orders/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	decodeBody(t, resp, &orders)
	assert.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestMLGenrePredictionCaching(t *testing.T) {
	env := setupApp(t, "ml_genre_it", 50)
	token := env.registerAndLogin(t, "Seller", "seller@example.com")
	book := env.createBook(t, token, fiber.Map{
		"title":   "Neuromancer",
		"summary": "Console cowboys in cyberspace",
		"price":   7.5,
	})
	env.upstream.set(func(u *mlUpstream) { u.genre = []string{"Science Fiction"} })

	// First request goes upstream and persists the prediction.
	resp := env.request(t, http.MethodGet, "/api/ml/predict-genre/"+book.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var result struct {
		Genre  []string `json:"genre"`
		Cached bool     `json:"cached"`
	}
	decodeBody(t, resp, &result)
	assert.Equal(t, []string{"Science Fiction"}, result.Genre)
	assert.False(t, result.Cached)
	genreCalls, _ := env.upstream.counts()
	assert.Equal(t, 1, genreCalls)

	// Second request is served from the book record.
	resp = env.request(t, http.MethodGet, "/api/ml/predict-genre/"+book.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &result)
	assert.Equal(t, []string{"Science Fiction"}, result.Genre)
	assert.True(t, result.Cached)
	genreCalls, _ = env.upstream.counts()
	assert.Equal(t, 1, genreCalls)

	resp = env.request(t, http.MethodGet, "/api/ml/predict-genre/no-such-book", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestMLGenreRateLimitPersistsFallback(t *testing.T) {
	env := setupApp(t, "ml_genre_429_it", 50)
	token := env.registerAndLogin(t, "Seller", "seller@example.com")
	book := env.createBook(t, token, fiber.Map{
		"title":   "Neuromancer",
		"summary": "Console cowboys in cyberspace",
		"price":   7.5,
	})
	env.upstream.set(func(u *mlUpstream) { u.genreStatus = http.StatusTooManyRequests })

	// The upstream stays rate limited through all three attempts; the
	// fallback genre comes back with a 429.
	resp := env.request(t, http.MethodGet, "/api/ml/predict-genre/"+book.ID, "", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	var degraded struct {
		Genre []string `json:"genre"`
	}
	decodeBody(t, resp, &degraded)
	assert.Equal(t, []string{"General"}, degraded.Genre)
	genreCalls, _ := env.upstream.counts()
	assert.Equal(t, 3, genreCalls)

	// The fallback was persisted: even a recovered upstream is not consulted.
	env.upstream.set(func(u *mlUpstream) {
		u.genreStatus = http.StatusOK
		u.genre = []string{"Science Fiction"}
	})
	resp = env.request(t, http.MethodGet, "/api/ml/predict-genre/"+book.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var result struct {
		Genre  []string `json:"genre"`
		Cached bool     `json:"cached"`
	}
	decodeBody(t, resp, &result)
	assert.True(t, result.Cached)
	assert.Equal(t, []string{"General"}, result.Genre)
	genreCalls, _ = env.upstream.counts()
	assert.Equal(t, 3, genreCalls)
}

func TestMLTagsRateLimitDoesNotPersistFallback(t *testing.T) {
	env := setupApp(t, "ml_tags_429_it", 50)
	token := env.registerAndLogin(t, "Seller", "seller@example.com")
	book := env.createBook(t, token, fiber.Map{
		"title":   "Neuromancer",
		"summary": "Console cowboys in cyberspace",
		"price":   7.5,
	})
	env.upstream.set(func(u *mlUpstream) { u.tagsStatus = http.StatusTooManyRequests })

	resp := env.request(t, http.MethodGet, "/api/ml/extract-tags/"+book.ID, "", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	var degraded struct {
		Tags []string `json:"tags"`
	}
	decodeBody(t, resp, &degraded)
	assert.Equal(t, []string{"Book", "Reading", "Fiction"}, degraded.Tags)
	_, tagCalls := env.upstream.counts()
	assert.Equal(t, 3, tagCalls)

	// The tags fallback is not written through, so a recovered upstream gets
	// consulted on the next request and that answer is cached.
	env.upstream.set(func(u *mlUpstream) {
		u.tagsStatus = http.StatusOK
		u.tags = []string{"cyberpunk", "noir"}
	})
	resp = env.request(t, http.MethodGet, "/api/ml/extract-tags/"+book.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var result struct {
		Tags   []string `json:"tags"`
		Cached bool     `json:"cached"`
	}
	decodeBody(t, resp, &result)
	assert.False(t, result.Cached)
	assert.Equal(t, []string{"cyberpunk", "noir"}, result.Tags)
	_, tagCalls = env.upstream.counts()
	assert.Equal(t, 4, tagCalls)

	resp = env.request(t, http.MethodGet, "/api/ml/extract-tags/"+book.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &result)
	assert.True(t, result.Cached)
	_, tagCalls = env.upstream.counts()
	assert.Equal(t, 4, tagCalls)
}

func TestMLRawPrediction(t *testing.T) {
	env := setupApp(t, "ml_raw_it", 50)
	env.upstream.set(func(u *mlUpstream) { u.genre = []string{"Fantasy"} })

	resp := env.request(t, http.MethodPost, "/api/ml/predict-genre", "", fiber.Map{
		"summary": "A farm boy inherits a dragon egg",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var result struct {
		PredictedGenre []string `json:"predicted_genre"`
	}
	decodeBody(t, resp, &result)
	assert.Equal(t, []string{"Fantasy"}, result.PredictedGenre)

	resp = env.request(t, http.MethodPost, "/api/ml/predict-genre", "", fiber.Map{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestMLRoutesAreThrottled(t *testing.T) {
	env := setupApp(t, "ml_throttle_it", 2)

	// The first two requests in the window pass, the third is rejected
	// before it reaches any handler.
	for i := 0; i < 2; i++ {
		resp := env.request(t, http.MethodGet, "/api/ml/autocomplete?q=du", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp := env.request(t, http.MethodGet, "/api/ml/predict-genre/some-book", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &body)
	assert.Contains(t, body.Error, "Too many requests")

	// The throttled request never reached the ML upstream.
	genreCalls, tagCalls := env.upstream.counts()
	assert.Equal(t, 0, genreCalls)
	assert.Equal(t, 0, tagCalls)
}

func TestMLAutocomplete(t *testing.T) {
	env := setupApp(t, "ml_autocomplete_it", 50)
	token := env.registerAndLogin(t, "Seller", "seller@example.com")
	env.createBook(t, token, fiber.Map{
		"title":   "Dune",
		"author":  []string{"Frank Herbert"},
		"summary": "Spice and sandworms",
		"price":   12.5,
	})
	env.createBook(t, token, fiber.Map{
		"title":   "Dust",
		"author":  []string{"Hugh Howey"},
		"summary": "Silo finale",
		"price":   8.0,
	})

	resp := env.request(t, http.MethodGet, "/api/ml/autocomplete?q=du", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Suggestions []string `json:"suggestions"`
	}
	decodeBody(t, resp, &body)
	assert.ElementsMatch(t, []string{"Dune", "Dust"}, body.Suggestions)

	resp = env.request(t, http.MethodGet, "/api/ml/autocomplete?q=frank", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.Equal(t, []string{"Frank Herbert"}, body.Suggestions)

	resp = env.request(t, http.MethodGet, "/api/ml/autocomplete", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
