package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/core/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/fintrack-app/fintrack_backend/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type SubscriptionHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockTxnSvc *MockTransactionService
	mockSubSvc *MockSubscriptionService
}

func (suite *SubscriptionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockTxnSvc = new(MockTransactionService)
	suite.mockSubSvc = new(MockSubscriptionService)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Transaction:  suite.mockTxnSvc,
		Subscription: suite.mockSubSvc,
		Reporting:    services.NewReportingService(),
	})
}

func (suite *SubscriptionHandlerTestSuite) serve(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func sampleSubscription() domain.Subscription {
	return domain.Subscription{
		SubscriptionID:  "sub-1",
		UserID:          "user-1",
		Name:            "Streaming",
		Amount:          decimal.NewFromInt(15),
		BillingCycle:    domain.CycleMonthly,
		CategoryID:      "entertainment",
		StartDate:       time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		NextBillingDate: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		IsActive:        true,
	}
}

// --- Summary Tests ---

func (suite *SubscriptionHandlerTestSuite) TestSubscriptionSummary() {
	active := sampleSubscription()
	paused := sampleSubscription()
	paused.SubscriptionID = "sub-2"
	paused.IsActive = false
	subs := []domain.Subscription{active, paused}

	suite.mockSubSvc.On("FetchSubscriptions", mock.Anything, "user-1").Return(subs, nil).Once()
	suite.mockSubSvc.On("TotalMonthlyCost", subs).Return(decimal.NewFromInt(15)).Once()

	w := suite.serve(http.MethodGet, "/api/v1/users/user-1/subscriptions/summary", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SubscriptionSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(decimal.NewFromInt(15).Equal(resp.MonthlyCost))
	suite.True(decimal.NewFromInt(180).Equal(resp.AnnualCost), "Annual cost is the monthly total times twelve")
	suite.Equal(1, resp.ActiveCount)
	suite.Equal(2, resp.TotalCount)
	suite.mockSubSvc.AssertExpectations(suite.T())
}

// --- Renewals Tests ---

func (suite *SubscriptionHandlerTestSuite) TestUpcomingRenewals_DefaultWindow() {
	sub := sampleSubscription()
	subs := []domain.Subscription{sub}
	renewals := []domain.Renewal{{Subscription: sub, DaysUntil: 2, Urgency: domain.UrgencyCritical}}

	suite.mockSubSvc.On("FetchSubscriptions", mock.Anything, "user-1").Return(subs, nil).Once()
	suite.mockSubSvc.On("UpcomingRenewals", subs, 14).Return(renewals).Once()

	w := suite.serve(http.MethodGet, "/api/v1/users/user-1/subscriptions/renewals", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.RenewalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("sub-1", resp[0].Subscription.SubscriptionID)
	suite.Equal(2, resp[0].DaysUntil)
	suite.Equal("critical", resp[0].Urgency)
	suite.mockSubSvc.AssertExpectations(suite.T())
}

func (suite *SubscriptionHandlerTestSuite) TestUpcomingRenewals_CustomWindow() {
	subs := []domain.Subscription{sampleSubscription()}

	suite.mockSubSvc.On("FetchSubscriptions", mock.Anything, "user-1").Return(subs, nil).Once()
	suite.mockSubSvc.On("UpcomingRenewals", subs, 30).Return([]domain.Renewal{}).Once()

	w := suite.serve(http.MethodGet, "/api/v1/users/user-1/subscriptions/renewals?days=30", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockSubSvc.AssertExpectations(suite.T())
}

func (suite *SubscriptionHandlerTestSuite) TestUpcomingRenewals_BadWindow() {
	w := suite.serve(http.MethodGet, "/api/v1/users/user-1/subscriptions/renewals?days=soon", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSubSvc.AssertNotCalled(suite.T(), "FetchSubscriptions", mock.Anything, mock.Anything)
}

// --- Billing Event Tests ---

func (suite *SubscriptionHandlerTestSuite) TestRecordBillingEvent_Success() {
	advanced := sampleSubscription()
	advanced.NextBillingDate = time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)

	suite.mockSubSvc.On("RecordBillingEvent", mock.Anything, "user-1", "sub-1").Return(&advanced, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/users/user-1/subscriptions/sub-1/billing-events", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SubscriptionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2025-08-01", resp.NextBillingDate)
	suite.mockSubSvc.AssertExpectations(suite.T())
}

func (suite *SubscriptionHandlerTestSuite) TestRecordBillingEvent_NotFound() {
	suite.mockSubSvc.On("RecordBillingEvent", mock.Anything, "user-1", "missing").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodPost, "/api/v1/users/user-1/subscriptions/missing/billing-events", "")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockSubSvc.AssertExpectations(suite.T())
}

// --- Create Tests ---

func (suite *SubscriptionHandlerTestSuite) TestCreateSubscription_BindingError() {
	// billingCycle fails the oneof binding
	body := `{"name":"Streaming","amount":15,"billingCycle":"weekly","category":"entertainment","startDate":"2025-01-01","nextBillingDate":"2025-07-01"}`
	w := suite.serve(http.MethodPost, "/api/v1/users/user-1/subscriptions", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSubSvc.AssertNotCalled(suite.T(), "CreateSubscription", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestSubscriptionHandler(t *testing.T) {
	suite.Run(t, new(SubscriptionHandlerTestSuite))
}
