package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jascaniojs/parking-business-api/internal/domain"
	"github.com/jascaniojs/parking-business-api/internal/repository"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{fmt.Errorf("wrap: %w", domain.ErrInvalidVehicleType), KindValidation},
		{ErrNoSpaceAvailable, KindConflict},
		{ErrBuildingNotFound, KindNotFound},
		{fmt.Errorf("%w. Session is for residents", ErrResidencyMismatch), KindStateConflict},
		{ErrSessionAlreadyFinished, KindStateConflict},
		{ErrRateNotConfigured, KindConfiguration},
		{repository.ErrLockTimeout, KindInternal},
		{errors.New("disk full"), KindInternal},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Fatalf("KindOf(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
	if KindInternal.ClientCorrectable() || KindConfiguration.ClientCorrectable() {
		t.Fatal("internal and configuration errors must stay opaque")
	}
	if !KindStateConflict.ClientCorrectable() {
		t.Fatal("state conflicts are client correctable")
	}
}
