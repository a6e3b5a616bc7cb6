package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatSessionLength(t *testing.T) {
	tests := map[time.Duration]string{
		0:                               "00h 00m",
		150 * time.Minute:               "02h 30m",
		59*time.Minute + 59*time.Second: "00h 59m",
		123 * time.Minute:               "02h 03m",
		245 * time.Minute:               "04h 05m",
		490 * time.Minute:               "08h 10m",
		1515 * time.Minute:              "25h 15m",
	}
	for d, want := range tests {
		if got := FormatSessionLength(d); got != want {
			t.Fatalf("FormatSessionLength(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestHistoryEntryLengthIsExactForWholeMinutes(t *testing.T) {
	for m := 0; m < 24*60; m++ {
		s, err := NewParkingSession(1, VehicleCar, false, decimal.NewFromInt(2), checkIn)
		if err != nil {
			t.Fatalf("new session: %v", err)
		}
		if err := s.CheckOut(checkIn.Add(time.Duration(m) * time.Minute)); err != nil {
			t.Fatalf("check out: %v", err)
		}
		e, err := NewHistoryEntry(*s)
		if err != nil {
			t.Fatalf("history entry: %v", err)
		}
		if want := fmt.Sprintf("%02dh %02dm", m/60, m%60); e.SessionLength != want {
			t.Fatalf("%d minutes: session length = %q, want %q", m, e.SessionLength, want)
		}
	}
}

func TestNewHistoryEntry(t *testing.T) {
	s, err := NewParkingSession(45, VehicleCar, false, decimal.NewFromInt(5), checkIn)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, err := NewHistoryEntry(*s); err == nil {
		t.Fatal("expected error for active session")
	}
	if err := s.CheckOut(checkIn.Add(150 * time.Minute)); err != nil {
		t.Fatalf("check out: %v", err)
	}
	e, err := NewHistoryEntry(*s)
	if err != nil {
		t.Fatalf("history entry: %v", err)
	}
	if e.SessionLength != "02h 30m" || !e.TotalCharge.Equal(decimal.RequireFromString("12.5")) || e.ParkingSpaceID != 45 {
		t.Fatalf("entry = %+v", e)
	}
}

func TestHistoryQueryNormalize(t *testing.T) {
	q := HistoryQuery{}
	q.Normalize()
	if q.Page != 1 || q.Limit != 20 || q.Offset() != 0 {
		t.Fatalf("defaults = %+v", q)
	}
	q = HistoryQuery{Page: 3, Limit: 500}
	q.Normalize()
	if q.Limit != MaxHistoryLimit || q.Offset() != 200 {
		t.Fatalf("clamped = %+v offset %d", q, q.Offset())
	}
}

func TestNewPagination(t *testing.T) {
	if p := NewPagination(1, 20, 150); p.TotalPages != 8 {
		t.Fatalf("total pages = %d, want 8", p.TotalPages)
	}
	if p := NewPagination(1, 20, 0); p.TotalPages != 0 {
		t.Fatalf("total pages = %d, want 0", p.TotalPages)
	}
}
