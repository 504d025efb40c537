package fleet

import (
	"context"
	"testing"

	"cabdesk/internal/types"
)

func TestServiceCreateNormalizesClass(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	d, err := svc.Create(ctx, CreateCommand{Name: " Lakshmi ", VehicleClass: "suv", VehicleNumber: "tn01 zz 0001"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if d.VehicleClass != types.VehicleSUV {
		t.Errorf("class = %s, want SUV", d.VehicleClass)
	}
	if d.Name != "Lakshmi" {
		t.Errorf("name = %q, want trimmed", d.Name)
	}
	if d.ID == "" {
		t.Error("expected generated id")
	}
	if d.Online {
		t.Error("new driver should default to offline")
	}

	got, err := svc.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.VehicleNumber != "TN01 ZZ 0001" {
		t.Errorf("vehicle number = %q", got.VehicleNumber)
	}
}

func TestServiceCreateRejectsBadInput(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()
	cases := []CreateCommand{
		{Name: "", VehicleClass: "SEDAN"},
		{Name: "Anand", VehicleClass: "rickshaw"},
	}
	for _, cmd := range cases {
		if _, err := svc.Create(ctx, cmd); err != ErrBadRequest {
			t.Errorf("Create(%+v) err = %v, want ErrBadRequest", cmd, err)
		}
	}
}

func TestServiceToggleAndSetOnline(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()
	if err := svc.Seed(ctx, DemoRoster()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	d, err := svc.Toggle(ctx, "drv-arjun")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !d.Online {
		t.Error("toggle should bring offline driver online")
	}
	d, err = svc.SetOnline(ctx, "drv-arjun", false)
	if err != nil {
		t.Fatalf("set online: %v", err)
	}
	if d.Online {
		t.Error("expected offline")
	}

	if _, err := svc.Toggle(ctx, "missing"); err != ErrNotFound {
		t.Errorf("toggle missing: err = %v, want ErrNotFound", err)
	}
}

func TestServiceListKeepsRosterOrder(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()
	roster := DemoRoster()
	if err := svc.Seed(ctx, roster); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != len(roster) {
		t.Fatalf("got %d drivers, want %d", len(got), len(roster))
	}
	for i := range roster {
		if got[i].ID != roster[i].ID {
			t.Errorf("roster[%d] = %s, want %s", i, got[i].ID, roster[i].ID)
		}
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Create(ctx, &Driver{ID: "d1", Online: true})

	d, _ := s.Get(ctx, "d1")
	d.Online = false

	again, _ := s.Get(ctx, "d1")
	if !again.Online {
		t.Error("mutating a returned driver leaked into the store")
	}
}
