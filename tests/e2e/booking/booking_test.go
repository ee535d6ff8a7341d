//go:build e2e

package booking_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"facility-booking/internal/domain/user"
	"facility-booking/internal/handler/dto/request"
	"facility-booking/internal/handler/dto/response"
	"facility-booking/tests/common/dbtest"
	"facility-booking/tests/common/httptest"
	"facility-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	reservationURL  = "/api/reservations/%s"
	approveURL      = "/api/reservations/%s/approve"
	cancelURL       = "/api/reservations/%s/cancel"
	alertsURL       = "/api/reservations/%s/alerts"
	availabilityURL = "/api/resources/%s/availability?start=%s&end=%s"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

// slot returns [start, start+1h) on a day far enough out for every reminder.
func slot(hour int) (time.Time, time.Time) {
	day := time.Now().UTC().Add(72 * time.Hour).Truncate(24 * time.Hour)
	start := day.Add(time.Duration(hour) * time.Hour)
	return start, start.Add(time.Hour)
}

func (s *BookingSuite) token(userID uuid.UUID, role user.Role) string {
	return s.JWT.GenerateToken(s.T(), userID, role)
}

func (s *BookingSuite) create(t *testing.T, token string, resourceID uuid.UUID, start, end time.Time) *createResult {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, request.CreateReservationRequest{
		ResourceID: resourceID,
		StartTime:  start,
		EndTime:    end,
	}, token)
	var res response.ReservationResponse
	if w.Code == http.StatusCreated {
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
	}
	return &createResult{Code: w.Code, Reservation: res, Body: w.Body.String()}
}

type createResult struct {
	Code        int
	Reservation response.ReservationResponse
	Body        string
}

// =============================================================================
// TestReservationLifecycle
// =============================================================================

func (s *BookingSuite) TestReservationLifecycle() {
	s.Run("Normal case: create, approve and auto-reject overlapping requests", func() {
		t := s.T()
		resourceID := uuid.New()
		owner := uuid.New()
		other := uuid.New()
		dbtest.CreateTestContact(t, s.DB, owner, "owner@example.com", "")
		start, end := slot(10)

		first := s.create(t, s.token(owner, user.RoleViewer), resourceID, start, end)
		require.Equal(t, http.StatusCreated, first.Code, first.Body)

		expected := response.ReservationResponse{
			ResourceID: resourceID,
			UserID:     owner,
			Status:     "PENDING",
			StartTime:  start,
			EndTime:    end,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.ReservationResponse{}, "ID", "CreatedAt", "UpdatedAt"),
			cmpopts.EquateApproxTime(time.Second),
		}
		if diff := cmp.Diff(expected, first.Reservation, opts...); diff != "" {
			t.Errorf("Reservation response mismatch (-want +got):\n%s", diff)
		}

		overlapping := s.create(t, s.token(other, user.RoleViewer), resourceID, start.Add(30*time.Minute), end.Add(30*time.Minute))
		require.Equal(t, http.StatusCreated, overlapping.Code, "PENDING requests may overlap")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(approveURL, first.Reservation.ID), nil,
			s.token(uuid.New(), user.RoleOperator))
		var approval response.ApprovalResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &approval)
		assert.Equal(t, "APPROVED", approval.Reservation.Status)
		require.Len(t, approval.AutoRejected, 1)
		assert.Equal(t, overlapping.Reservation.ID, approval.AutoRejected[0].ID)
		assert.Equal(t, "AUTO_REJECTED", approval.AutoRejected[0].Status)

		conflicting := s.create(t, s.token(other, user.RoleViewer), resourceID, start.Add(15*time.Minute), end)
		require.Equal(t, http.StatusConflict, conflicting.Code)

		touching := s.create(t, s.token(other, user.RoleViewer), resourceID, end, end.Add(time.Hour))
		assert.Equal(t, http.StatusCreated, touching.Code, "touching intervals never conflict")
	})

	s.Run("Normal case: availability reflects approved reservations only", func() {
		t := s.T()
		resourceID := uuid.New()
		owner := uuid.New()
		start, end := slot(13)

		created := s.create(t, s.token(owner, user.RoleViewer), resourceID, start, end)
		require.Equal(t, http.StatusCreated, created.Code)

		url := fmt.Sprintf(availabilityURL, resourceID, start.Format(time.RFC3339), end.Format(time.RFC3339))
		var availability response.AvailabilityResponse
		httptest.AssertSuccessResponse(t,
			httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.token(owner, user.RoleViewer)),
			http.StatusOK, &availability)
		assert.True(t, availability.Available)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(approveURL, created.Reservation.ID), nil,
			s.token(uuid.New(), user.RoleAdmin))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		httptest.AssertSuccessResponse(t,
			httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.token(owner, user.RoleViewer)),
			http.StatusOK, &availability)
		assert.False(t, availability.Available)
		require.Len(t, availability.Conflicts, 1)
		assert.Equal(t, created.Reservation.ID, availability.Conflicts[0].ID)
	})

	s.Run("Error case: viewer cannot approve and stranger cannot read", func() {
		t := s.T()
		owner := uuid.New()
		start, end := slot(15)
		created := s.create(t, s.token(owner, user.RoleViewer), uuid.New(), start, end)
		require.Equal(t, http.StatusCreated, created.Code)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(approveURL, created.Reservation.ID), nil,
			s.token(owner, user.RoleViewer))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Forbidden")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(reservationURL, created.Reservation.ID), nil,
			s.token(uuid.New(), user.RoleViewer))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Forbidden")
	})

	s.Run("Auth test - expired token is rejected", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(reservationURL, uuid.New()), nil,
			s.JWT.CreateExpiredToken(t, uuid.New(), user.RoleAdmin))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestConcurrentApproval - at most one APPROVED reservation per slot
// =============================================================================

func (s *BookingSuite) TestConcurrentApproval() {
	s.Run("Normal case: exactly one of many overlapping approvals wins", func() {
		t := s.T()
		resourceID := uuid.New()
		start, end := slot(9)

		const n = 8
		ids := make([]uuid.UUID, n)
		for i := range n {
			offset := time.Duration(i) * 5 * time.Minute
			created := s.create(t, s.token(uuid.New(), user.RoleViewer), resourceID, start.Add(offset), end.Add(offset))
			require.Equal(t, http.StatusCreated, created.Code, created.Body)
			ids[i] = created.Reservation.ID
		}

		operator := s.token(uuid.New(), user.RoleOperator)
		codes := make([]int, n)
		var wg sync.WaitGroup
		for i, id := range ids {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(approveURL, id), nil, operator)
				codes[i] = w.Code
			}()
		}
		wg.Wait()

		ok := 0
		for _, code := range codes {
			if code == http.StatusOK {
				ok++
				continue
			}
			assert.Contains(t, []int{http.StatusConflict, http.StatusUnprocessableEntity}, code)
		}
		assert.Equal(t, 1, ok)
		assert.Equal(t, 1, dbtest.CountRows(t, s.DB,
			"SELECT count(*) FROM reservations WHERE resource_id = $1 AND status = 'APPROVED'", resourceID))
		assert.Equal(t, n-1, dbtest.CountRows(t, s.DB,
			"SELECT count(*) FROM reservations WHERE resource_id = $1 AND status = 'AUTO_REJECTED'", resourceID))
	})
}

// =============================================================================
// TestAlerts - scheduling, dispatch and cancellation
// =============================================================================

func (s *BookingSuite) TestAlerts() {
	s.Run("Normal case: due alerts are dispatched and the rest wait", func() {
		t := s.T()
		owner := uuid.New()
		dbtest.CreateTestContact(t, s.DB, owner, "owner@example.com", "")
		start, end := slot(11)

		created := s.create(t, s.token(owner, user.RoleViewer), uuid.New(), start, end)
		require.Equal(t, http.StatusCreated, created.Code)

		report, err := s.Dispatcher.DispatchDueAlerts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, report.Sent, "only the admin notification is due")

		var alerts []response.AlertResponse
		httptest.AssertSuccessResponse(t,
			httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(alertsURL, created.Reservation.ID), nil,
				s.token(owner, user.RoleViewer)),
			http.StatusOK, &alerts)
		states := map[string]int{}
		for _, a := range alerts {
			states[a.State]++
		}
		assert.Equal(t, 1, states["SENT"])
		assert.Equal(t, len(s.Config.Alert.Reminders), states["SCHEDULED"]+states["PENDING"])
	})

	s.Run("Normal case: cancelling a reservation cancels its alerts", func() {
		t := s.T()
		owner := uuid.New()
		dbtest.CreateTestContact(t, s.DB, owner, "owner@example.com", "")
		start, end := slot(14)
		created := s.create(t, s.token(owner, user.RoleViewer), uuid.New(), start, end)
		require.Equal(t, http.StatusCreated, created.Code)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, created.Reservation.ID),
			request.TransitionRequest{Reason: "plans changed"}, s.token(owner, user.RoleViewer))
		var cancelled response.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &cancelled)
		assert.Equal(t, "CANCELLED", cancelled.Status)

		// the admin notification and every reminder are withdrawn; only the
		// cancellation notice itself stays active
		assert.Equal(t, 1+len(s.Config.Alert.Reminders), dbtest.CountRows(t, s.DB,
			"SELECT count(*) FROM alerts WHERE reservation_id = $1 AND state = 'CANCELLED'", created.Reservation.ID))
		assert.Equal(t, 1, dbtest.CountRows(t, s.DB,
			"SELECT count(*) FROM alerts WHERE reservation_id = $1 AND state IN ('PENDING', 'SCHEDULED')", created.Reservation.ID))

		report, err := s.Dispatcher.DispatchDueAlerts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, report.Sent)
		assert.Equal(t, 1, dbtest.CountRows(t, s.DB,
			"SELECT count(*) FROM alerts WHERE reservation_id = $1 AND state = 'SENT' AND type = 'CANCELLED'", created.Reservation.ID))
	})

	s.Run("Normal case: outbox events are relayed once", func() {
		t := s.T()
		start, end := slot(16)
		created := s.create(t, s.token(uuid.New(), user.RoleViewer), uuid.New(), start, end)
		require.Equal(t, http.StatusCreated, created.Code)

		report, err := s.Relay.RelayOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, report.Published)

		report, err = s.Relay.RelayOnce(context.Background())
		require.NoError(t, err)
		assert.Zero(t, report.Published)
	})
}
