package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/alquiler/internal/domain/repository"
)

func TestID(t *testing.T) {
	valids := []string{"507f1f77bcf86cd799439011", " 507F1F77BCF86CD799439011 "}
	for _, v := range valids {
		if _, err := ID("id", v); err != nil {
			t.Fatalf("expected valid: %q (%v)", v, err)
		}
	}
	invalids := []string{"", "abc", "507f1f77bcf86cd79943901z", "507f1f77bcf86cd7994390111"}
	for _, v := range invalids {
		_, err := ID("id", v)
		if !errors.Is(err, repository.ErrInvalidInput) {
			t.Fatalf("expected invalid: %q", v)
		}
	}
}

func TestApartmentNumber_Normalizes(t *testing.T) {
	got, err := ApartmentNumber("  A1 ")
	if err != nil || got != "a1" {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := ApartmentNumber("   "); err == nil {
		t.Fatal("expected error for blank number")
	}
	if _, err := ApartmentNumber("ABCDEFGHIJK"); err == nil {
		t.Fatal("expected error for 11 chars")
	}
}

func TestEmailAndNames(t *testing.T) {
	if got, err := Email(" Juan@Example.COM "); err != nil || got != "juan@example.com" {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := Email("juan@example"); err == nil {
		t.Fatal("expected invalid email")
	}
	if _, err := FullName("Juan David O'Neil-García"); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if _, err := FullName("R2D2"); err == nil {
		t.Fatal("expected invalid name")
	}
	if _, err := Description("Carpintería - Cerraduras"); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if _, err := Description("Pintura/Exterior"); err == nil {
		t.Fatal("expected invalid description")
	}
}

func TestDate_StartOfDay(t *testing.T) {
	got, err := Date("start_date", "2025-07-01")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("got %v", got)
	}
	got, err = Date("start_date", "2025-07-01T18:30:00Z")
	if err != nil {
		t.Fatal(err)
	}
	if got.Hour() != 0 || got.Day() != 1 {
		t.Fatalf("expected start of day, got %v", got)
	}
	if _, err := Date("start_date", "01/07/2025"); err == nil {
		t.Fatal("expected error")
	}
}

func TestDateRange(t *testing.T) {
	a := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.AddDate(0, 6, 0)
	if err := DateRange(a, b); err != nil {
		t.Fatal(err)
	}
	if err := DateRange(a, a); err != nil {
		t.Fatal(err)
	}
	if err := DateRange(b, a); err == nil {
		t.Fatal("expected error")
	}
}

func TestInstant(t *testing.T) {
	got, err := Instant("paid_at", "2025-07-01T18:30:00-03:00")
	if err != nil {
		t.Fatal(err)
	}
	if got.Hour() != 21 || got.Location() != time.UTC {
		t.Fatalf("expected UTC instant, got %v", got)
	}
	if _, err := Instant("paid_at", "2025-07-01"); err != nil {
		t.Fatal(err)
	}
	if _, err := Instant("paid_at", "yesterday"); !errors.Is(err, repository.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
