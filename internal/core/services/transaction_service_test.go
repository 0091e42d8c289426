package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	"github.com/fintrack-app/fintrack_backend/internal/core/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, transactionID string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTransactionRepository
	service  *services.TransactionService
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.service = services.NewTransactionService(suite.mockRepo)
}

func newTransaction(id string, amount int64, txnType domain.TransactionType) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		UserID:        "user-1",
		Amount:        decimal.NewFromInt(amount),
		Type:          txnType,
		Description:   "Transaction " + id,
		CategoryID:    "other",
		Date:          time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
}

// --- FetchTransactions Tests ---

func (suite *TransactionServiceTestSuite) TestFetchTransactions_Success() {
	ctx := context.Background()
	stored := []domain.Transaction{newTransaction("t1", 100, domain.Expense)}

	suite.mockRepo.On("ListTransactions", ctx, "user-1", domain.TransactionFilter{}).Return(stored, nil).Once()

	txns, err := suite.service.FetchTransactions(ctx, "user-1", domain.TransactionFilter{})

	suite.Require().NoError(err)
	suite.Equal(stored, txns)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestFetchTransactions_AppliesSort() {
	ctx := context.Background()
	stored := []domain.Transaction{
		newTransaction("t1", 50, domain.Expense),
		newTransaction("t2", 10, domain.Expense),
		newTransaction("t3", 30, domain.Expense),
	}
	filter := domain.TransactionFilter{SortBy: domain.SortByAmount, SortDir: domain.SortAsc}

	suite.mockRepo.On("ListTransactions", ctx, "user-1", filter).Return(stored, nil).Once()

	txns, err := suite.service.FetchTransactions(ctx, "user-1", filter)

	suite.Require().NoError(err)
	suite.Require().Len(txns, 3)
	suite.Equal("t2", txns[0].TransactionID, "The requested sort is applied on top of the store ordering")
	suite.Equal("t3", txns[1].TransactionID)
	suite.Equal("t1", txns[2].TransactionID)
}

func (suite *TransactionServiceTestSuite) TestFetchTransactions_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("ListTransactions", ctx, "user-1", domain.TransactionFilter{}).Return(nil, expectedErr).Once()

	txns, err := suite.service.FetchTransactions(ctx, "user-1", domain.TransactionFilter{})

	suite.Require().Error(err)
	suite.Nil(txns)
	suite.ErrorIs(err, expectedErr)
	suite.ErrorIs(err, apperrors.ErrStoreFailure)
}

func (suite *TransactionServiceTestSuite) TestFetchTransactions_StaleFetchDiscarded() {
	ctx := context.Background()
	oldData := []domain.Transaction{newTransaction("old", 10, domain.Expense)}
	newData := []domain.Transaction{newTransaction("new", 20, domain.Expense)}

	// The first fetch's store call resolves only after a second fetch has
	// started and completed; its result must not clobber the collection.
	suite.mockRepo.On("ListTransactions", ctx, "user-1", domain.TransactionFilter{}).Return(oldData, nil).Once().Run(func(args mock.Arguments) {
		suite.mockRepo.On("ListTransactions", ctx, "user-1", domain.TransactionFilter{}).Return(newData, nil).Once()
		inner, err := suite.service.FetchTransactions(ctx, "user-1", domain.TransactionFilter{})
		suite.Require().NoError(err)
		suite.Equal(newData, inner)
	})

	outer, err := suite.service.FetchTransactions(ctx, "user-1", domain.TransactionFilter{})

	// The superseded caller still gets its own result back
	suite.Require().NoError(err)
	suite.Equal(oldData, outer)

	// But the held collection belongs to the newer fetch
	cached, err := suite.service.CachedTransactions(ctx, "user-1")
	suite.Require().NoError(err)
	suite.Equal(newData, cached)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- CachedTransactions Tests ---

func (suite *TransactionServiceTestSuite) TestCachedTransactions_FetchesWhenEmpty() {
	ctx := context.Background()
	stored := []domain.Transaction{newTransaction("t1", 100, domain.Income)}

	suite.mockRepo.On("ListTransactions", ctx, "user-1", domain.TransactionFilter{}).Return(stored, nil).Once()

	// First call fetches, second is served from the collection
	first, err := suite.service.CachedTransactions(ctx, "user-1")
	suite.Require().NoError(err)
	suite.Equal(stored, first)

	second, err := suite.service.CachedTransactions(ctx, "user-1")
	suite.Require().NoError(err)
	suite.Equal(stored, second)

	suite.mockRepo.AssertNumberOfCalls(suite.T(), "ListTransactions", 1)
}

// --- CreateTransaction Tests ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_PrependsToCollection() {
	ctx := context.Background()
	existing := []domain.Transaction{newTransaction("t1", 100, domain.Expense)}

	suite.mockRepo.On("ListTransactions", ctx, "user-1", domain.TransactionFilter{}).Return(existing, nil).Once()
	_, err := suite.service.FetchTransactions(ctx, "user-1", domain.TransactionFilter{})
	suite.Require().NoError(err)

	req := dto.CreateTransactionRequest{
		Amount:      decimal.NewFromInt(42),
		Type:        "expense",
		Description: "Coffee",
		Category:    "dining",
		Date:        "2025-06-10",
	}
	suite.mockRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Description == "Coffee" && txn.UserID == "user-1" && txn.Type == domain.Expense
	})).Return(nil).Once()

	created, err := suite.service.CreateTransaction(ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.TransactionID)

	// New record sits at the head of the collection, no refetch
	cached, err := suite.service.CachedTransactions(ctx, "user-1")
	suite.Require().NoError(err)
	suite.Require().Len(cached, 2)
	suite.Equal(created.TransactionID, cached[0].TransactionID)
	suite.Equal("t1", cached[1].TransactionID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_StoreFailureLeavesCollection() {
	ctx := context.Background()
	existing := []domain.Transaction{newTransaction("t1", 100, domain.Expense)}

	suite.mockRepo.On("ListTransactions", ctx, "user-1", domain.TransactionFilter{}).Return(existing, nil).Once()
	_, err := suite.service.FetchTransactions(ctx, "user-1", domain.TransactionFilter{})
	suite.Require().NoError(err)

	req := dto.CreateTransactionRequest{
		Amount:      decimal.NewFromInt(42),
		Type:        "expense",
		Description: "Coffee",
		Category:    "dining",
		Date:        "2025-06-10",
	}
	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(assert.AnError).Once()

	created, err := suite.service.CreateTransaction(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrStoreFailure)

	cached, err := suite.service.CachedTransactions(ctx, "user-1")
	suite.Require().NoError(err)
	suite.Len(cached, 1, "A failed store write must not dirty the collection")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_DuplicatePassthrough() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Amount:      decimal.NewFromInt(42),
		Type:        "expense",
		Description: "Coffee",
		Category:    "dining",
		Date:        "2025-06-10",
	}

	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateTransaction(ctx, "user-1", req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.NotErrorIs(err, apperrors.ErrStoreFailure, "Duplicates are a caller error, not a store fault")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Validation() {
	ctx := context.Background()

	cases := []dto.CreateTransactionRequest{
		{Amount: decimal.Zero, Type: "expense", Description: "x", Category: "other", Date: "2025-06-10"},
		{Amount: decimal.NewFromInt(-5), Type: "expense", Description: "x", Category: "other", Date: "2025-06-10"},
		{Amount: decimal.NewFromInt(5), Type: "transfer", Description: "x", Category: "other", Date: "2025-06-10"},
		{Amount: decimal.NewFromInt(5), Type: "expense", Description: "", Category: "other", Date: "2025-06-10"},
		{Amount: decimal.NewFromInt(5), Type: "expense", Description: "x", Category: "other", Date: "June 10th"},
	}

	for _, req := range cases {
		txn, err := suite.service.CreateTransaction(ctx, "user-1", req)
		suite.Require().Error(err)
		suite.Nil(txn)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

// --- UpdateTransaction Tests ---

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_ReplacesInCollection() {
	ctx := context.Background()
	original := newTransaction("t1", 100, domain.Expense)

	suite.mockRepo.On("ListTransactions", ctx, "user-1", domain.TransactionFilter{}).Return([]domain.Transaction{original}, nil).Once()
	_, err := suite.service.FetchTransactions(ctx, "user-1", domain.TransactionFilter{})
	suite.Require().NoError(err)

	newAmount := decimal.NewFromInt(250)
	req := dto.UpdateTransactionRequest{Amount: &newAmount}

	updated := original
	updated.Amount = newAmount

	suite.mockRepo.On("UpdateTransaction", ctx, "t1", mock.MatchedBy(func(patch domain.TransactionPatch) bool {
		return patch.Amount != nil && patch.Amount.Equal(newAmount)
	})).Return(&updated, nil).Once()

	result, err := suite.service.UpdateTransaction(ctx, "user-1", "t1", req)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(newAmount.Equal(result.Amount))

	cached, err := suite.service.CachedTransactions(ctx, "user-1")
	suite.Require().NoError(err)
	suite.Require().Len(cached, 1)
	suite.True(newAmount.Equal(cached[0].Amount), "The stored entity replaces the cached one")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NotFound() {
	ctx := context.Background()
	newAmount := decimal.NewFromInt(250)
	req := dto.UpdateTransactionRequest{Amount: &newAmount}

	suite.mockRepo.On("UpdateTransaction", ctx, "missing", mock.AnythingOfType("domain.TransactionPatch")).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.UpdateTransaction(ctx, "user-1", "missing", req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_InvalidPatch() {
	ctx := context.Background()
	badType := "transfer"
	req := dto.UpdateTransactionRequest{Type: &badType}

	result, err := suite.service.UpdateTransaction(ctx, "user-1", uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

// --- DeleteTransaction Tests ---

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_RemovesFromCollection() {
	ctx := context.Background()
	keep := newTransaction("keep", 10, domain.Expense)
	drop := newTransaction("drop", 20, domain.Expense)

	suite.mockRepo.On("ListTransactions", ctx, "user-1", domain.TransactionFilter{}).Return([]domain.Transaction{keep, drop}, nil).Once()
	_, err := suite.service.FetchTransactions(ctx, "user-1", domain.TransactionFilter{})
	suite.Require().NoError(err)

	suite.mockRepo.On("DeleteTransaction", ctx, "drop").Return(nil).Once()

	err = suite.service.DeleteTransaction(ctx, "user-1", "drop")
	suite.Require().NoError(err)

	cached, err := suite.service.CachedTransactions(ctx, "user-1")
	suite.Require().NoError(err)
	suite.Require().Len(cached, 1)
	suite.Equal("keep", cached[0].TransactionID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_StoreFailureLeavesCollection() {
	ctx := context.Background()
	existing := newTransaction("t1", 10, domain.Expense)

	suite.mockRepo.On("ListTransactions", ctx, "user-1", domain.TransactionFilter{}).Return([]domain.Transaction{existing}, nil).Once()
	_, err := suite.service.FetchTransactions(ctx, "user-1", domain.TransactionFilter{})
	suite.Require().NoError(err)

	suite.mockRepo.On("DeleteTransaction", ctx, "t1").Return(assert.AnError).Once()

	err = suite.service.DeleteTransaction(ctx, "user-1", "t1")
	suite.Require().Error(err)

	cached, err := suite.service.CachedTransactions(ctx, "user-1")
	suite.Require().NoError(err)
	suite.Len(cached, 1, "A failed store delete must not drop the cached record")
}

// --- Run Suite ---
func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
