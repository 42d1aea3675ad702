package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/congo-pay/onboarding/internal/onboarding"
)

func TestMemoryStoreWritesOnce(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	record := onboarding.ProfileRecord{
		AccountID:  "7f1c9a6e-0f44-4a53-9a55-3c2b8d6f3e10",
		Email:      "ali@example.pk",
		NationalID: "3520212345671",
		CreatedAt:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	if err := store.WriteProfile(ctx, record); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	if err := store.WriteProfile(ctx, record); !errors.Is(err, ErrProfileExists) {
		t.Fatalf("expected ErrProfileExists, got %v", err)
	}

	got, err := store.Get(ctx, record.AccountID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != record {
		t.Fatalf("expected %+v, got %+v", record, got)
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
