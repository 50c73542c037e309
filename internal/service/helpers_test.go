package service

import (
	"context"
	"testing"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/repository"
	"alcyxob/fitness-coach/internal/store/memory"

	"github.com/stretchr/testify/require"
)

const testAppUserID = "6f1c3a52-8d1e-4b7a-9f0e-2b4c6d8e0a11"

func newTestRepos(t *testing.T) (*repository.Repositories, *memory.Client) {
	t.Helper()
	client := memory.New(repository.Schema()...)
	return repository.New(client), client
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func mustCreate[E any](t *testing.T, create func(context.Context, E) (E, error), e E) E {
	t.Helper()
	out, err := create(context.Background(), e)
	require.NoError(t, err)
	return out
}

func testUser(premium bool) domain.User {
	return domain.User{
		AppUserID: testAppUserID,
		Username:  "ana",
		Email:     "ana@example.com",
		Role:      domain.RoleUser,
		FirstName: strPtr("Ana"),
		IsActive:  true,
		IsPremium: premium,
	}
}

func testWorkout(name string, difficulty domain.Difficulty, creator domain.ID, template bool) domain.Workout {
	return domain.Workout{Name: name, DifficultyLevel: difficulty, CreatedBy: creator, IsTemplate: template}
}
