package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	rentalhttp "movierental/internal/rental/adapters/http"
	"movierental/internal/rental/adapters/http/middleware"
	"movierental/internal/rental/app"
	"movierental/internal/rental/app/dto"
	"movierental/internal/rental/domain/entities"
	"movierental/internal/rental/domain/pricing"
	"movierental/internal/rental/domain/stock"
	"movierental/internal/rental/ports/api"
	"movierental/pkg/logger"
)

type mockRentalService struct {
	mock.Mock
}

func (m *mockRentalService) CreateMovie(ctx context.Context, in api.MovieInput) (*entities.Movie, error) {
	args := m.Called(ctx, in)
	movie, _ := args.Get(0).(*entities.Movie)
	return movie, args.Error(1)
}

func (m *mockRentalService) ListMovies(ctx context.Context) ([]*entities.Movie, error) {
	args := m.Called(ctx)
	movies, _ := args.Get(0).([]*entities.Movie)
	return movies, args.Error(1)
}

func (m *mockRentalService) ListMoviesByRented(ctx context.Context, rented bool) ([]*entities.Movie, error) {
	args := m.Called(ctx, rented)
	movies, _ := args.Get(0).([]*entities.Movie)
	return movies, args.Error(1)
}

func (m *mockRentalService) GetMovie(ctx context.Context, id int) (*entities.Movie, error) {
	args := m.Called(ctx, id)
	movie, _ := args.Get(0).(*entities.Movie)
	return movie, args.Error(1)
}

func (m *mockRentalService) UpdateMovie(ctx context.Context, id int, in api.MovieInput) (*entities.Movie, error) {
	args := m.Called(ctx, id, in)
	movie, _ := args.Get(0).(*entities.Movie)
	return movie, args.Error(1)
}

func (m *mockRentalService) DeleteMovie(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRentalService) CreateUser(ctx context.Context, in api.UserInput) (*entities.User, error) {
	args := m.Called(ctx, in)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockRentalService) ListUsers(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*entities.User)
	return users, args.Error(1)
}

func (m *mockRentalService) GetUser(ctx context.Context, id int) (*entities.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockRentalService) GetUserByName(ctx context.Context, name string) (*entities.User, error) {
	args := m.Called(ctx, name)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockRentalService) UpdateUser(ctx context.Context, id int, in api.UserInput) (*entities.User, error) {
	args := m.Called(ctx, id, in)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockRentalService) DeleteUser(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRentalService) ListRentals(ctx context.Context) ([]*entities.Rental, error) {
	args := m.Called(ctx)
	rentals, _ := args.Get(0).([]*entities.Rental)
	return rentals, args.Error(1)
}

func (m *mockRentalService) CreateRental(ctx context.Context, userID, movieID int) (*entities.Rental, error) {
	args := m.Called(ctx, userID, movieID)
	rental, _ := args.Get(0).(*entities.Rental)
	return rental, args.Error(1)
}

func (m *mockRentalService) ReturnRental(ctx context.Context, rentalID int) (*entities.Rental, error) {
	args := m.Called(ctx, rentalID)
	rental, _ := args.Get(0).(*entities.Rental)
	return rental, args.Error(1)
}

func (m *mockRentalService) UserCharge(ctx context.Context, userID int) (api.Account, error) {
	args := m.Called(ctx, userID)
	account, _ := args.Get(0).(api.Account)
	return account, args.Error(1)
}

func (m *mockRentalService) UserBill(ctx context.Context, userID int) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockRentalService) PriceCategories() []string {
	args := m.Called()
	names, _ := args.Get(0).([]string)
	return names
}

type mockInventory struct {
	mock.Mock
}

func (m *mockInventory) AddCopy(ctx context.Context, movieID int) (int, error) {
	args := m.Called(ctx, movieID)
	return args.Int(0), args.Error(1)
}

func (m *mockInventory) RemoveCopy(ctx context.Context, movieID int) (int, error) {
	args := m.Called(ctx, movieID)
	return args.Int(0), args.Error(1)
}

func (m *mockInventory) InStock(ctx context.Context, title string) int {
	return m.Called(ctx, title).Int(0)
}

type mockAlerts struct {
	mock.Mock
}

func (m *mockAlerts) Levels(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	levels, _ := args.Get(0).(map[string]int)
	return levels, args.Error(1)
}

type testServer struct {
	app       *fiber.App
	rentals   *mockRentalService
	inventory *mockInventory
	alerts    *mockAlerts
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s := &testServer{
		app:       rentalhttp.NewApp(time.Second, time.Second),
		rentals:   new(mockRentalService),
		inventory: new(mockInventory),
		alerts:    new(mockAlerts),
	}
	rentalhttp.SetupRouter(s.app, logger.FromZap(zap.NewNop()), s.rentals, s.inventory, s.alerts)

	t.Cleanup(func() {
		s.rentals.AssertExpectations(t)
		s.inventory.AssertExpectations(t)
		s.alerts.AssertExpectations(t)
	})
	return s
}

func (s *testServer) do(t *testing.T, method, target, body string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

var ctxArg = mock.Anything

func movieFixture(t *testing.T, id int, title string) *entities.Movie {
	t.Helper()
	m, err := entities.NewMovie(title, entities.Date(2009, time.December, 17), pricing.Regular, 12)
	require.NoError(t, err)
	m.SetID(id)
	return m
}

func userFixture(t *testing.T, id int) *entities.User {
	t.Helper()
	u, err := entities.NewUser("Muster", "Hans", entities.Date(1980, time.March, 5))
	require.NoError(t, err)
	require.NoError(t, u.SetID(id))
	return u
}

func TestCreateMovie(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		s := newTestServer(t)
		in := api.MovieInput{
			Title:         "Avatar",
			ReleaseDate:   entities.Date(2009, time.December, 17),
			AgeRating:     12,
			PriceCategory: pricing.RegularName,
		}
		s.rentals.On("CreateMovie", ctxArg, in).Return(movieFixture(t, 1, "Avatar"), nil).Once()

		resp, body := s.do(t, http.MethodPost, "/api/v1/movies",
			`{"title":"Avatar","release_date":"2009-12-17","age_rating":12,"price_category":"Regular"}`)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.JSONEq(t, `{"id":1,"title":"Avatar","release_date":"2009-12-17","age_rating":12,
			"price_category":"Regular","rented":false}`, body)
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(t)

		resp, body := s.do(t, http.MethodPost, "/api/v1/movies", `{"title":`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"error":"invalid request body"}`, body)
	})

	t.Run("malformed date", func(t *testing.T) {
		s := newTestServer(t)

		resp, body := s.do(t, http.MethodPost, "/api/v1/movies", `{"title":"Avatar","release_date":"17.12.2009"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"error":"`+dto.ErrInvalidDate.Error()+`"}`, body)
	})

	t.Run("validation error", func(t *testing.T) {
		s := newTestServer(t)
		s.rentals.On("CreateMovie", ctxArg, mock.AnythingOfType("api.MovieInput")).
			Return(nil, entities.ErrTitleMissing).Once()

		resp, body := s.do(t, http.MethodPost, "/api/v1/movies", `{"release_date":"2009-12-17"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"error":"title must not be null nor empty"}`, body)
	})
}

func TestGetMovie(t *testing.T) {
	s := newTestServer(t)
	s.rentals.On("GetMovie", ctxArg, 7).Return(nil, entities.ErrMovieNotFound).Once()
	s.rentals.On("GetMovie", ctxArg, 1).Return(movieFixture(t, 1, "Avatar"), nil).Once()

	resp, body := s.do(t, http.MethodGet, "/api/v1/movies/7", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"movie not found"}`, body)

	resp, _ = s.do(t, http.MethodGet, "/api/v1/movies/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = s.do(t, http.MethodGet, "/api/v1/movies/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"invalid movie id"}`, body)
}

func TestListMovies(t *testing.T) {
	s := newTestServer(t)
	s.rentals.On("ListMovies", ctxArg).Return([]*entities.Movie{movieFixture(t, 1, "Avatar")}, nil).Once()
	s.rentals.On("ListMoviesByRented", ctxArg, true).Return([]*entities.Movie{}, nil).Once()

	resp, body := s.do(t, http.MethodGet, "/api/v1/movies", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"title":"Avatar"`)

	resp, body = s.do(t, http.MethodGet, "/api/v1/movies?rented=true", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, body)

	resp, body = s.do(t, http.MethodGet, "/api/v1/movies?rented=maybe", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"invalid rented filter"}`, body)
}

func TestDeleteRentedMovie(t *testing.T) {
	s := newTestServer(t)
	s.rentals.On("DeleteMovie", ctxArg, 1).Return(app.ErrMovieIsRented).Once()

	resp, body := s.do(t, http.MethodDelete, "/api/v1/movies/1", "")

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.JSONEq(t, `{"error":"movie is rented"}`, body)
}

func TestCreateUserWithoutName(t *testing.T) {
	s := newTestServer(t)
	s.rentals.On("CreateUser", ctxArg, mock.MatchedBy(func(in api.UserInput) bool {
		return in.Name == nil && in.FirstName != nil && *in.FirstName == "Hans" &&
			in.Birthdate.Equal(entities.Date(1980, time.March, 5))
	})).Return(nil, entities.ErrNameMissing).Once()

	resp, body := s.do(t, http.MethodPost, "/api/v1/users", `{"first_name":"Hans","birthdate":"1980-03-05"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"non-existing name"}`, body)
}

func TestUsers(t *testing.T) {
	s := newTestServer(t)
	user := userFixture(t, 3)
	s.rentals.On("GetUserByName", ctxArg, "Muster").Return(user, nil).Once()
	s.rentals.On("ListUsers", ctxArg).Return([]*entities.User{user}, nil).Once()
	s.rentals.On("DeleteUser", ctxArg, 3).Return(app.ErrUserHasRentals).Once()

	resp, body := s.do(t, http.MethodGet, "/api/v1/users?name=Muster", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"first_name":"Hans"`)
	assert.Contains(t, body, `"birthdate":"1980-03-05"`)

	resp, body = s.do(t, http.MethodGet, "/api/v1/users", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(body, "["))

	resp, body = s.do(t, http.MethodDelete, "/api/v1/users/3", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.JSONEq(t, `{"error":"user has active rentals"}`, body)

	resp, _ = s.do(t, http.MethodGet, "/api/v1/users/x/bill", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUserAccount(t *testing.T) {
	s := newTestServer(t)
	s.rentals.On("UserCharge", ctxArg, 3).Return(api.Account{Charge: 20, FrequentRenterPoints: 4}, nil).Once()
	s.rentals.On("UserBill", ctxArg, 3).Return("Statement\n", nil).Once()

	resp, body := s.do(t, http.MethodGet, "/api/v1/users/3/charge", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"user_id":3,"charge":20,"frequent_renter_points":4}`, body)

	resp, body = s.do(t, http.MethodGet, "/api/v1/users/3/bill", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Statement\n", body)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
}

func TestRentals(t *testing.T) {
	s := newTestServer(t)
	user := userFixture(t, 3)
	movie := movieFixture(t, 1, "Avatar")
	rental, err := entities.MaterializeRental(5, user, movie, entities.Today().AddDate(0, 0, -4))
	require.NoError(t, err)

	s.rentals.On("CreateRental", ctxArg, 3, 1).Return(rental, nil).Once()
	s.rentals.On("CreateRental", ctxArg, 3, 2).Return(nil, entities.ErrTooManyRentals).Once()
	s.rentals.On("ReturnRental", ctxArg, 5).Return(rental, nil).Once()
	s.rentals.On("ReturnRental", ctxArg, 6).Return(nil, entities.ErrRentalNotFound).Once()

	resp, body := s.do(t, http.MethodPost, "/api/v1/rentals", `{"user_id":3,"movie_id":1}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, body, `"id":5`)
	assert.Contains(t, body, `"rental_days":4`)
	assert.Contains(t, body, `"rental_fee":5`)

	resp, body = s.do(t, http.MethodPost, "/api/v1/rentals", `{"user_id":3,"movie_id":2}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.JSONEq(t, `{"error":"max. 3 movies can be rented"}`, body)

	resp, _ = s.do(t, http.MethodDelete, "/api/v1/rentals/5", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = s.do(t, http.MethodDelete, "/api/v1/rentals/6", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"rental not found"}`, body)
}

func TestStock(t *testing.T) {
	s := newTestServer(t)
	s.inventory.On("InStock", ctxArg, "Avatar").Return(2).Once()
	s.inventory.On("AddCopy", ctxArg, 1).Return(3, nil).Once()
	s.inventory.On("RemoveCopy", ctxArg, 1).Return(0, stock.ErrNotInStock).Once()
	s.alerts.On("Levels", ctxArg).Return(map[string]int{"Avatar": 1}, nil).Once()

	resp, body := s.do(t, http.MethodGet, "/api/v1/stock?title=Avatar", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"title":"Avatar","in_stock":2}`, body)

	resp, body = s.do(t, http.MethodPost, "/api/v1/stock/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"movie_id":1,"in_stock":3}`, body)

	resp, body = s.do(t, http.MethodDelete, "/api/v1/stock/1", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.JSONEq(t, `{"error":"movie is not in stock"}`, body)

	resp, body = s.do(t, http.MethodGet, "/api/v1/stock/alerts", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"Avatar":1}`, body)
}

func TestPriceCategories(t *testing.T) {
	s := newTestServer(t)
	s.rentals.On("PriceCategories").Return(pricing.DefaultRegistry().Names()).Once()

	resp, body := s.do(t, http.MethodGet, "/api/v1/price-categories", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, pricing.NewReleaseName)
}

func TestInternalErrorIsHidden(t *testing.T) {
	s := newTestServer(t)
	s.rentals.On("ListRentals", ctxArg).Return(nil, errors.New("connection refused")).Once()

	resp, body := s.do(t, http.MethodGet, "/api/v1/rentals", "")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Internal server error"}`, body)
}

func TestPanicRecovery(t *testing.T) {
	s := newTestServer(t)
	s.rentals.On("ListUsers", ctxArg).Run(func(mock.Arguments) { panic("boom") }).Once()

	resp, body := s.do(t, http.MethodGet, "/api/v1/users", "")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, body)
}

func TestRouteNotFound(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodGet, "/api/v2/movies", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Route not found"}`, body)
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)
	s.rentals.On("ListRentals", ctxArg).Return([]*entities.Rental{}, nil).Twice()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rentals", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-42")
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "req-42", resp.Header.Get(middleware.HeaderRequestID))

	resp, _ = s.do(t, http.MethodGet, "/api/v1/rentals", "")
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))
}
