package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"alcyxob/fitness-coach/internal/auth"
	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/repository"
	"alcyxob/fitness-coach/internal/service"
	"alcyxob/fitness-coach/internal/store/memory"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret    = "api-test-secret"
	testAppUserID = "0b9e1f3a-2c4d-4e6f-8a1b-3c5d7e9f1a2b"
)

type testServer struct {
	router *gin.Engine
	repos  *repository.Repositories
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := repository.New(memory.New(repository.Schema()...))
	verifier, err := auth.NewVerifier(testSecret, "")
	require.NoError(t, err)

	log := zerolog.Nop()
	router := gin.New()
	SetupRoutes(router, verifier, log,
		service.NewLibraryService(repos.Exercises, repos.Blocks, nil, log),
		service.NewTrainingService(repos.Workouts, repos.Blocks, repos.Programs, repos.Users, log),
		service.NewProfileService(repos.Users, log),
	)
	return &testServer{router: router, repos: repos}
}

func token(t *testing.T, premium bool, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":        testAppUserID,
		"exp":        time.Now().Add(expiresIn).Unix(),
		"is_premium": premium,
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func (s *testServer) do(t *testing.T, method, path, bearer, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestPing(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/ping", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{name: "missing header", wantMsg: "Authorization header is missing"},
		{name: "wrong scheme", header: "Basic abc", wantMsg: "Authorization header format must be Bearer {token}"},
		{name: "expired", header: "Bearer " + token(t, false, -time.Minute), wantMsg: "Token has expired"},
		{name: "garbage", header: "Bearer not.a.jwt", wantMsg: "Invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/exercises", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tt.wantMsg, errorBody(t, w))
		})
	}
}

func TestExercises(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	pushUp, err := s.repos.Exercises.Create(ctx, domain.Exercise{
		Name: "Push-up", EquipmentNeeded: []string{domain.NoEquipment},
		DifficultyLevel: domain.DifficultyBeginner, CreatedBy: 1, IsPublic: true,
	})
	require.NoError(t, err)
	_, err = s.repos.Exercises.Create(ctx, domain.Exercise{
		Name: "Deadlift", EquipmentNeeded: []string{"Barbell"},
		DifficultyLevel: domain.DifficultyAdvanced, CreatedBy: 1,
	})
	require.NoError(t, err)

	bearer := token(t, false, time.Hour)

	t.Run("list filtered", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/exercises?difficulty=advanced", bearer, "")
		require.Equal(t, http.StatusOK, w.Code)
		var got []domain.Exercise
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Deadlift", got[0].Name)
	})

	t.Run("invalid difficulty", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/exercises?difficulty=extreme", bearer, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("by id", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/exercises/"+pushUp.ID.String(), bearer, "")
		require.Equal(t, http.StatusOK, w.Code)
		var got domain.Exercise
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, pushUp.ID, got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/exercises/999", bearer, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Exercise with id 999 not found", errorBody(t, w))
	})

	t.Run("bad id", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/exercises/abc", bearer, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProgramSchedule_RequiresPremium(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	program, err := s.repos.Programs.Create(ctx, domain.Program{
		Name: "Base", DurationWeeks: 4, DifficultyLevel: domain.DifficultyBeginner, CreatedBy: 1,
	})
	require.NoError(t, err)
	path := "/api/v1/programs/" + program.ID.String() + "/schedule"

	w := s.do(t, http.MethodGet, path, token(t, false, time.Hour), "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, service.ErrPremiumRequired.Error(), errorBody(t, w))

	w = s.do(t, http.MethodGet, path, token(t, true, time.Hour), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/programs", token(t, false, time.Hour), "")
	require.Equal(t, http.StatusOK, w.Code)
	var summaries []service.ProgramSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.True(t, summaries[0].Locked)
}

func TestMeAndEntitlement(t *testing.T) {
	s := newTestServer(t)
	bearer := token(t, false, time.Hour)

	w := s.do(t, http.MethodGet, "/api/v1/me", bearer, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, err := s.repos.Users.Create(context.Background(), domain.User{
		AppUserID: testAppUserID, Username: "sam", Email: "sam@example.com", Role: domain.RoleUser, IsActive: true,
	})
	require.NoError(t, err)

	w = s.do(t, http.MethodGet, "/api/v1/me", bearer, "")
	require.Equal(t, http.StatusOK, w.Code)
	var profile service.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "sam", profile.DisplayName)
	assert.False(t, profile.IsPremium)

	w = s.do(t, http.MethodPut, "/api/v1/me/entitlement", bearer, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/v1/me/entitlement", bearer,
		`{"is_premium": true, "premium_expires_at": "2026-12-01T00:00:00Z", "premium_will_renew": false}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.True(t, profile.IsPremium)
	require.NotNil(t, profile.PremiumWillRenew)
	assert.False(t, *profile.PremiumWillRenew)
}
