package leads

import (
	"context"
	"testing"
)

func TestInMemoryRepositoryCreateAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	lead, err := repo.Create(ctx, &CreateLeadRequest{
		Name:    "Jordan",
		Contact: "jordan@example.com",
		Message: "demo please",
		PageURL: "https://agentica.ai",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if lead.ID == "" {
		t.Fatal("expected generated lead ID")
	}
	if lead.CreatedAt.IsZero() {
		t.Fatal("expected created_at timestamp")
	}

	got, err := repo.GetByID(ctx, lead.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "Jordan" {
		t.Errorf("expected stored name, got %q", got.Name)
	}
}

func TestInMemoryRepositoryGetMissing(t *testing.T) {
	repo := NewInMemoryRepository()

	_, err := repo.GetByID(context.Background(), "nope")
	if err != ErrLeadNotFound {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestInMemoryRepositoryListOrder(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	first, _ := repo.Create(ctx, &CreateLeadRequest{Name: "First"})
	second, _ := repo.Create(ctx, &CreateLeadRequest{Name: "Second"})

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(list))
	}
	if list[0].ID != first.ID || list[1].ID != second.ID {
		t.Error("expected insertion order preserved")
	}
}

func TestApplyDefaults(t *testing.T) {
	req := &CreateLeadRequest{}
	req.ApplyDefaults()

	if req.Name != "Unknown" || req.Contact != "Unknown" || req.PageURL != "Unknown" {
		t.Errorf("unexpected defaults: %+v", req)
	}
	if req.Message != "Inquired via Chat" {
		t.Errorf("unexpected default message: %q", req.Message)
	}
	if req.Source != "chat_widget" {
		t.Errorf("unexpected default source: %q", req.Source)
	}

	// Populated fields survive.
	req = &CreateLeadRequest{Name: "Ana", Source: "landing_page"}
	req.ApplyDefaults()
	if req.Name != "Ana" || req.Source != "landing_page" {
		t.Errorf("defaults must not overwrite provided values: %+v", req)
	}
}
