package fixtures

import "testing"

func TestLoadParsesEmbeddedData(t *testing.T) {
	store, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	users := store.Users()
	if len(users) != 3 {
		t.Fatalf("expected 3 fixture users, got %d", len(users))
	}
	for i := 1; i < len(users); i++ {
		if users[i].ID < users[i-1].ID {
			t.Fatal("users not ordered by ID")
		}
	}

	reem, ok := store.User(1)
	if !ok {
		t.Fatal("expected user 1")
	}
	if reem.Name != "Reem AlHarbi" || reem.ActivityLevel != "high" {
		t.Fatalf("unexpected user: %+v", reem)
	}

	services := store.ServicesFor(1)
	if len(services) != 3 {
		t.Fatalf("expected 3 services for user 1, got %d", len(services))
	}
	if services[0].Name != "Passport Renewal" || services[0].DaysLeft != 28 {
		t.Fatalf("unexpected first service: %+v", services[0])
	}

	if got := store.ServicesFor(3); len(got) != 0 {
		t.Fatalf("expected no services for user 3, got %d", len(got))
	}

	if _, ok := store.User(99); ok {
		t.Fatal("expected user 99 to be absent")
	}
}
