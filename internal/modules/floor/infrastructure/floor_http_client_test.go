package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"mesaYaFloor/internal/modules/floor/application/port"
	floor "mesaYaFloor/internal/modules/floor/domain"
)

func TestFetchFloorSnapshotDecodesEnvelope(t *testing.T) {
	var gotPath, gotAuth, gotDate string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotDate = r.URL.Query().Get("date")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {
				"tables": [
					{"id": 10, "number": 10, "sectionId": "patio", "minCapacity": 2, "maxCapacity": 4, "state": "AVAILABLE"},
					{"id": 0, "number": 99}
				],
				"reservations": [
					{"id": 7, "name": "Iris", "covers": 2, "time": "19:15", "status": "BOOKED"}
				],
				"waitlist": [
					{"uuid": "w-1", "name": "Ben", "partySize": 6, "status": "WAITING"}
				],
				"serverAssignments": [
					{"tableId": 10, "serverId": "srv-amy"},
					{"tableId": 0, "serverId": "srv-ignored"}
				]
			}
		}`))
	}))
	defer server.Close()

	client := NewFloorHTTPClient(server.URL, 0, nil)
	snapshot, err := client.FetchFloorSnapshot(context.Background(), "tok", "r1", "patio", "2026-08-30")
	require.NoError(t, err)

	require.Equal(t, "/api/v1/restaurant/sections/patio/floor", gotPath)
	require.Equal(t, "Bearer tok", gotAuth)
	require.Equal(t, "2026-08-30", gotDate)

	require.Len(t, snapshot.Tables, 1)
	require.Equal(t, 10, snapshot.Tables[0].ID)
	require.Len(t, snapshot.Reservations, 1)
	require.Equal(t, "Iris", snapshot.Reservations[0].Name)
	require.Len(t, snapshot.Waitlist, 1)
	require.Equal(t, map[int]string{10: "srv-amy"}, snapshot.ServerAssignments)
}

func TestFetchFloorSnapshotStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, port.ErrSnapshotForbidden},
		{http.StatusForbidden, port.ErrSnapshotForbidden},
		{http.StatusNotFound, port.ErrSnapshotNotFound},
		{http.StatusConflict, port.ErrSubmitRejected},
	}
	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
		}))
		client := NewFloorHTTPClient(server.URL, 0, nil)
		_, err := client.FetchFloorSnapshot(context.Background(), "tok", "r1", "patio", "")
		require.ErrorIs(t, err, tc.want, "status %d", tc.status)
		server.Close()
	}
}

func TestFetchFloorSnapshotRequiresSection(t *testing.T) {
	client := NewFloorHTTPClient("http://unused", 0, nil)
	_, err := client.FetchFloorSnapshot(context.Background(), "tok", "r1", "  ", "")
	require.ErrorIs(t, err, port.ErrSnapshotNotFound)
}

func TestSubmitAssignmentsPostsBatch(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/restaurant/tables/assignments", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewFloorHTTPClient(server.URL, 0, nil)
	err := client.SubmitAssignments(context.Background(), "tok", "r1", []floor.ServerAssignment{
		{TableID: 10, ServerID: "srv-amy"},
		{TableID: 11},
	})
	require.NoError(t, err)

	require.Equal(t, "r1", gotBody["restaurantId"])
	edits, ok := gotBody["assignments"].([]any)
	require.True(t, ok)
	require.Len(t, edits, 2)
}

func TestSeatWalkInRejectionMapsToSubmitError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewFloorHTTPClient(server.URL, 0, nil)
	err := client.SeatWalkIn(context.Background(), "tok", 10, 3, "ad hoc")
	require.ErrorIs(t, err, port.ErrSubmitRejected)
}

func TestMoveReservationUsesPatch(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewFloorHTTPClient(server.URL, 0, nil)
	require.NoError(t, client.MoveReservation(context.Background(), "tok", 7, 11))
	require.Equal(t, http.MethodPatch, gotMethod)
	require.Equal(t, "/api/v1/restaurant/reservations/7/table", gotPath)
}
