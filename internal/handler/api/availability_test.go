//go:build unit

package api_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"facility-booking/internal/domain/reservation"
	"facility-booking/internal/domain/user"
	"facility-booking/internal/handler/api"
	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/authz"
	"facility-booking/internal/usecase/queries"
	"facility-booking/tests/common/builder"
	"facility-booking/tests/common/httptest"
	queriesmock "facility-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockBookingQueries
	handler     *api.AvailabilityHandler
	actor       authz.Actor
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockQueries)
	s.actor = authz.Actor{UserID: uuid.New(), Role: user.RoleOperator}

	auth := fakeAuth(&s.actor)
	s.router.GET("/resources/:id/availability", auth, s.handler.Check)
	s.router.GET("/resources/:id/pending-overlaps", auth, s.handler.PendingOverlaps)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func intervalURL(path string, start, end time.Time) string {
	q := url.Values{}
	q.Set("start", start.Format(time.RFC3339))
	q.Set("end", end.Format(time.RFC3339))
	return path + "?" + q.Encode()
}

// ================================================================================
// TestCheck
// ================================================================================

func (s *AvailabilityHandlerTestSuite) TestCheck() {
	resourceID := uuid.New()
	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	path := "/resources/" + resourceID.String() + "/availability"

	s.Run("success: available slot", func() {
		s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), resourceID, start, end).
			Return(&queries.Availability{Available: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, intervalURL(path, start, end), nil, "bearer-token")

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Available)
		s.Empty(body.Conflicts)
	})

	s.Run("success: unavailable slot lists approved conflicts", func() {
		blocking := builder.NewReservationBuilder().WithStatus(reservation.StatusApproved).
			WithSlot(start.Add(-30*time.Minute), start.Add(30*time.Minute)).BuildDomain()
		s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), resourceID, start, end).
			Return(&queries.Availability{Available: false, Conflicts: []*reservation.Reservation{blocking}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, intervalURL(path, start, end), nil, "bearer-token")

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Available)
		s.Require().Len(body.Conflicts, 1)
		s.Equal(blocking.ID(), body.Conflicts[0].ID)
	})

	s.Run("error: 400 Bad Request on bad query", func() {
		cases := []struct {
			name string
			url  string
		}{
			{name: "missing start and end", url: path},
			{name: "malformed start", url: path + "?start=tomorrow&end=" + url.QueryEscape(end.Format(time.RFC3339))},
			{name: "malformed resource id", url: intervalURL("/resources/room-1/availability", start, end)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 400 Bad Request when the usecase rejects the interval", func() {
		s.mockQueries.EXPECT().CheckAvailability(gomock.Any(), resourceID, end, start).
			Return(nil, errs.Mark(reservation.ErrInvalidTimeSlot, errs.ErrValidation)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, intervalURL(path, end, start), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

// ================================================================================
// TestPendingOverlaps
// ================================================================================

func (s *AvailabilityHandlerTestSuite) TestPendingOverlaps() {
	resourceID := uuid.New()
	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	path := "/resources/" + resourceID.String() + "/pending-overlaps"

	s.Run("success: lists pending reservations", func() {
		pending := builder.NewReservationBuilder().WithSlot(start, end).BuildDomain()
		s.mockQueries.EXPECT().PendingOverlaps(gomock.Any(), resourceID, start, end).
			Return([]*reservation.Reservation{pending}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, intervalURL(path, start, end), nil, "bearer-token")

		var body []resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal("PENDING", body[0].Status)
	})

	s.Run("success: empty list is an empty array", func() {
		s.mockQueries.EXPECT().PendingOverlaps(gomock.Any(), resourceID, start, end).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, intervalURL(path, start, end), nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.JSONEq("[]", rec.Body.String())
	})
}
