package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultHistoryPage  = 1
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// HistoryQuery filters completed, non-resident sessions.
type HistoryQuery struct {
	Page           int        `form:"page" binding:"omitempty,min=1"`
	Limit          int        `form:"limit" binding:"omitempty,min=1,max=100"`
	StartDate      *time.Time `form:"start_date" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate        *time.Time `form:"end_date" time_format:"2006-01-02T15:04:05Z07:00"`
	ParkingSpaceID *int       `form:"parking_space_id" binding:"omitempty,min=1"`
}

// Normalize applies paging defaults and clamps the limit.
func (q *HistoryQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultHistoryPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultHistoryLimit
	}
	if q.Limit > MaxHistoryLimit {
		q.Limit = MaxHistoryLimit
	}
}

func (q HistoryQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type HistoryEntry struct {
	ParkingSpaceID int             `json:"parking_space_id"`
	CheckedInAt    time.Time       `json:"checked_in_at"`
	CheckedOutAt   time.Time       `json:"checked_out_at"`
	SessionLength  string          `json:"session_length"`
	RatePerHour    decimal.Decimal `json:"rate_per_hour"`
	TotalCharge    decimal.Decimal `json:"total_charge"`
}

func NewHistoryEntry(s ParkingSession) (HistoryEntry, error) {
	if s.IsActive() {
		return HistoryEntry{}, fmt.Errorf("session %s is still active", s.ID)
	}
	return HistoryEntry{
		ParkingSpaceID: s.ParkingSpaceID,
		CheckedInAt:    s.CheckInAt,
		CheckedOutAt:   s.CheckOutAt.Time,
		SessionLength:  FormatSessionLength(s.Duration(s.CheckOutAt.Time)),
		RatePerHour:    s.RatePerHour,
		TotalCharge:    s.CalculatedCharge.Decimal,
	}, nil
}

// FormatSessionLength renders whole minutes as "HHh MMm", dropping seconds.
func FormatSessionLength(d time.Duration) string {
	totalMinutes := int(d / time.Minute)
	return fmt.Sprintf("%02dh %02dm", totalMinutes/60, totalMinutes%60)
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

type HistoryPage struct {
	Data       []HistoryEntry `json:"data"`
	Pagination Pagination     `json:"pagination"`
}
