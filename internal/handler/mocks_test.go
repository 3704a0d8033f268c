package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"sneakerfav/internal/auth"
	"sneakerfav/internal/form"
	"sneakerfav/internal/model"
	"sneakerfav/internal/view"
)

// MockAccountService is a mock implementation of service.AccountService.
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, username, email, fullName, password string) (*model.User, error) {
	args := m.Called(ctx, username, email, fullName, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAccountService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAccountService) GetProfile(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAccountService) UpdateProfile(ctx context.Context, id uint, username, email, fullName string) (*model.User, error) {
	args := m.Called(ctx, id, username, email, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, id uint, password string) error {
	args := m.Called(ctx, id, password)
	return args.Error(0)
}

// MockFavoriteService is a mock implementation of service.FavoriteService.
type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) Add(ctx context.Context, userID uint, sneakerID string) (bool, error) {
	args := m.Called(ctx, userID, sneakerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteService) Remove(ctx context.Context, userID uint, sneakerID string) (bool, error) {
	args := m.Called(ctx, userID, sneakerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteService) List(ctx context.Context, userID uint) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// stubCatalog answers from fixed payloads keyed by sneaker id.
type stubCatalog struct {
	recent   json.RawMessage
	search   json.RawMessage
	byID     map[string]json.RawMessage
	err      error
	searched []string
}

func (s *stubCatalog) ListRecent(_ context.Context, _ int) (json.RawMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.recent, nil
}

func (s *stubCatalog) Search(_ context.Context, name string, _ int, _ string) (json.RawMessage, error) {
	s.searched = append(s.searched, name)
	if s.err != nil {
		return nil, s.err
	}
	return s.search, nil
}

func (s *stubCatalog) GetByID(_ context.Context, id string) (json.RawMessage, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("Error: Unable to retrieve data from the API (status 404)")
}

// recordingRenderer keeps the last rendered page instead of producing HTML.
type recordingRenderer struct {
	name string
	page *view.Page
}

func (r *recordingRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	r.name = name
	r.page, _ = data.(*view.Page)
	_, err := io.WriteString(w, name)
	return err
}

type testEnv struct {
	e         *echo.Echo
	tokens    *auth.JWTService
	sessions  *auth.SessionManager
	accounts  *MockAccountService
	favorites *MockFavoriteService
	catalog   *stubCatalog
	rendered  *recordingRenderer
}

func newTestEnv() *testEnv {
	tokens := auth.NewJWTService("test-secret", time.Hour)
	env := &testEnv{
		e:         echo.New(),
		tokens:    tokens,
		sessions:  auth.NewSessionManager(tokens, auth.NewTokenStore(nil), false),
		accounts:  new(MockAccountService),
		favorites: new(MockFavoriteService),
		catalog:   &stubCatalog{byID: map[string]json.RawMessage{}},
		rendered:  &recordingRenderer{},
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	catalogH := NewCatalogHandler(env.catalog, env.sessions, log)
	authH := NewAuthHandler(env.accounts, env.sessions, log)
	profileH := NewProfileHandler(env.accounts, env.sessions, log)
	favoriteH := NewFavoriteHandler(env.favorites, env.accounts, env.catalog, env.sessions, log)

	e := env.e
	e.Validator = form.NewValidator()
	e.Renderer = env.rendered
	e.Use(env.sessions.Middleware())

	methods := []string{http.MethodGet, http.MethodPost}
	e.GET("/", catalogH.Home)
	e.Match(methods, "/search", catalogH.Search)
	e.Match(methods, "/login", authH.Login)
	e.GET("/logout", authH.Logout)
	e.Match(methods, "/register", authH.Register)
	e.GET("/profile", profileH.Profile, RequireUser(env.sessions, "Please log in to view this page."))
	e.Match(methods, "/edit-profile", profileH.EditProfile, RequireUser(env.sessions, "Please log in to access this page."))
	e.Match(methods, "/delete-account", profileH.DeleteAccount, RequireUser(env.sessions, "Please log in to access this page."))
	e.POST("/add_to_favorites/:sneaker_id", favoriteH.AddFavorite, RequireUserJSON(env.sessions, "You must be logged in to add favorites."))
	e.Match(methods, "/favorites", favoriteH.Favorites, RequireUser(env.sessions, "You must be logged in to access your favorites."))
	e.POST("/delete_favorite/:sneaker_id", favoriteH.DeleteFavorite, RequireUser(env.sessions, "You must be logged in to delete favorites."))
	return env
}

// accountExists makes the account service find the user.
func (env *testEnv) accountExists(id uint, username string) {
	env.accounts.On("GetProfile", mock.Anything, id).Return(&model.User{ID: id, Username: username}, nil)
}

// loginAs returns a session cookie for the given user.
func (env *testEnv) loginAs(id uint, username string) *http.Cookie {
	token, _, err := env.tokens.Issue(id, username)
	if err != nil {
		panic(err)
	}
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func (env *testEnv) do(method, path string, values url.Values, cookie *http.Cookie, header ...string) *httptest.ResponseRecorder {
	var body io.Reader
	if values != nil {
		body = strings.NewReader(values.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if values != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	env.rendered.name, env.rendered.page = "", nil
	env.e.ServeHTTP(rec, req)
	return rec
}

// carriedFlashes returns the notices the response hands to the next request.
func carriedFlashes(rec *httptest.ResponseRecorder) []view.Notice {
	var last *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "flash" {
			last = c
		}
	}
	if last == nil || last.Value == "" {
		return nil
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(last)
	return view.TakeFlashes(echo.New().NewContext(req, httptest.NewRecorder()))
}

// lastCookie returns the final value set for name, or nil.
func lastCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var last *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			last = c
		}
	}
	return last
}

func messages(notices []view.Notice) []string {
	out := make([]string, 0, len(notices))
	for _, n := range notices {
		out = append(out, n.Message)
	}
	return out
}
