package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateDropUnavailableNeverValid(t *testing.T) {
	zone := DropZone{TableID: 1, MinCapacity: 1, MaxCapacity: 12, Available: false}
	for partySize := 1; partySize <= 12; partySize++ {
		decision := ValidateDrop(WalkInPayload("party", partySize), zone)
		require.False(t, decision.Valid, "party of %d must not drop on an unavailable table", partySize)
	}
}

func TestValidateDropFitIsCleanlyValid(t *testing.T) {
	zone := DropZone{TableID: 1, MinCapacity: 2, MaxCapacity: 6, Available: true}
	for partySize := zone.MinCapacity; partySize <= zone.MaxCapacity; partySize++ {
		decision := ValidateDrop(ReservationPayload(10, "party", partySize), zone)
		require.True(t, decision.Valid, "party of %d fits", partySize)
		require.Empty(t, decision.Warning, "party of %d fits without warning", partySize)
	}
}

func TestValidateDropSmallPartyWarns(t *testing.T) {
	zone := DropZone{TableID: 1, MinCapacity: 4, MaxCapacity: 8, Available: true}
	for partySize := 1; partySize < zone.MinCapacity; partySize++ {
		decision := ValidateDrop(WaitlistPayload("wl-1", "party", partySize), zone)
		require.True(t, decision.Valid, "undersized party of %d is still allowed", partySize)
		require.Equal(t, WarningOversizedTable, decision.Warning)
	}
}

func TestValidateDropOversizedPartyInvalid(t *testing.T) {
	zone := DropZone{TableID: 1, MinCapacity: 2, MaxCapacity: 4, Available: true}
	for partySize := zone.MaxCapacity + 1; partySize <= zone.MaxCapacity+8; partySize++ {
		decision := ValidateDrop(WalkInPayload("party", partySize), zone)
		require.False(t, decision.Valid, "party of %d does not fit", partySize)
	}
}

func TestValidateDropDeterministic(t *testing.T) {
	payload := WaitlistPayload("wl-9", "party", 3)
	zone := DropZone{TableID: 5, MinCapacity: 4, MaxCapacity: 6, Available: true}

	first := ValidateDrop(payload, zone)
	for i := 0; i < 50; i++ {
		require.Equal(t, first, ValidateDrop(payload, zone))
	}
}
