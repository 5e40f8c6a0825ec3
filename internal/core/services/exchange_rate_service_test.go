package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/coreledger/erp-backend/internal/apperrors"
	"github.com/coreledger/erp-backend/internal/core/domain"
	"github.com/coreledger/erp-backend/internal/core/services"
	"github.com/coreledger/erp-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testTenantID = "tenant-1"

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          *services.ExchangeRateService

	usd domain.Currency
	eur domain.Currency
	jpy domain.Currency
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	currencySvc := services.NewCurrencyService(suite.mockCurrencyRepo, nil)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, currencySvc)

	suite.usd = domain.Currency{CurrencyID: uuid.NewString(), TenantID: testTenantID, CurrencyCode: "USD", DecimalPlaces: 2, IsActive: true}
	suite.eur = domain.Currency{CurrencyID: uuid.NewString(), TenantID: testTenantID, CurrencyCode: "EUR", DecimalPlaces: 2, IsActive: true}
	suite.jpy = domain.Currency{CurrencyID: uuid.NewString(), TenantID: testTenantID, CurrencyCode: "JPY", DecimalPlaces: 0, IsActive: true}
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_Identity() {
	asOf := time.Now()

	res, err := suite.service.ResolveRate(context.Background(), testTenantID, suite.usd, suite.usd, asOf)

	suite.NoError(err)
	suite.Equal(domain.ResolutionIdentity, res.Kind)
	suite.True(res.Rate.Equal(decimal.NewFromInt(1)), "identity rate must be exactly 1")
	suite.True(res.InverseRate.Equal(decimal.NewFromInt(1)))
	suite.Equal(domain.SourceManual, res.Source)
	// No repository lookup happens for a same-currency pair.
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindApplicableRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_Direct() {
	asOf := time.Now()
	stored := &domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		TenantID:       testTenantID,
		FromCurrencyID: suite.usd.CurrencyID,
		ToCurrencyID:   suite.eur.CurrencyID,
		Rate:           decimal.RequireFromString("0.92"),
		InverseRate:    decimal.RequireFromString("1.08695652"),
		EffectiveDate:  asOf.Add(-24 * time.Hour),
		Source:         domain.SourceECB,
		IsActive:       true,
	}
	suite.mockRateRepo.On("FindApplicableRate", mock.Anything, testTenantID, suite.usd.CurrencyID, suite.eur.CurrencyID, asOf).Return(stored, nil).Once()

	res, err := suite.service.ResolveRate(context.Background(), testTenantID, suite.usd, suite.eur, asOf)

	suite.NoError(err)
	suite.Equal(domain.ResolutionDirect, res.Kind)
	suite.True(res.Rate.Equal(stored.Rate))
	suite.True(res.InverseRate.Equal(stored.InverseRate))
	suite.Equal(domain.SourceECB, res.Source)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_InverseFallback() {
	asOf := time.Now()
	// Only EUR->USD is stored; resolving USD->EUR must synthesize from the
	// stored inverse.
	stored := &domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		TenantID:       testTenantID,
		FromCurrencyID: suite.eur.CurrencyID,
		ToCurrencyID:   suite.usd.CurrencyID,
		Rate:           decimal.RequireFromString("1.08695652"),
		InverseRate:    decimal.RequireFromString("0.92"),
		EffectiveDate:  asOf.Add(-time.Hour),
		Source:         domain.SourceFixer,
		IsActive:       true,
	}
	suite.mockRateRepo.On("FindApplicableRate", mock.Anything, testTenantID, suite.usd.CurrencyID, suite.eur.CurrencyID, asOf).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindApplicableRate", mock.Anything, testTenantID, suite.eur.CurrencyID, suite.usd.CurrencyID, asOf).Return(stored, nil).Once()

	res, err := suite.service.ResolveRate(context.Background(), testTenantID, suite.usd, suite.eur, asOf)

	suite.NoError(err)
	suite.Equal(domain.ResolutionInverse, res.Kind)
	suite.True(res.Rate.Equal(stored.InverseRate), "derived rate must be the stored inverse")
	suite.True(res.InverseRate.Equal(stored.Rate))
	suite.Equal(domain.SourceFixer, res.Source, "provenance follows the record the rate was derived from")
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_NotFound() {
	asOf := time.Now()
	suite.mockRateRepo.On("FindApplicableRate", mock.Anything, testTenantID, suite.usd.CurrencyID, suite.eur.CurrencyID, asOf).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindApplicableRate", mock.Anything, testTenantID, suite.eur.CurrencyID, suite.usd.CurrencyID, asOf).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolveRate(context.Background(), testTenantID, suite.usd, suite.eur, asOf)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_LapsedWindowRejected() {
	asOf := time.Now()
	expired := asOf.Add(-time.Hour)
	stale := &domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		TenantID:       testTenantID,
		FromCurrencyID: suite.usd.CurrencyID,
		ToCurrencyID:   suite.eur.CurrencyID,
		Rate:           decimal.RequireFromString("0.92"),
		InverseRate:    decimal.RequireFromString("1.08695652"),
		EffectiveDate:  asOf.Add(-48 * time.Hour),
		ExpiresAt:      &expired,
		Source:         domain.SourceManual,
		IsActive:       true,
	}
	suite.mockRateRepo.On("FindApplicableRate", mock.Anything, testTenantID, suite.usd.CurrencyID, suite.eur.CurrencyID, asOf).Return(stale, nil).Once()
	suite.mockRateRepo.On("FindApplicableRate", mock.Anything, testTenantID, suite.eur.CurrencyID, suite.usd.CurrencyID, asOf).Return(stale, nil).Once()

	_, err := suite.service.ResolveRate(context.Background(), testTenantID, suite.usd, suite.eur, asOf)

	suite.ErrorIs(err, apperrors.ErrNotFound, "a record whose window lapsed before asOf must not resolve")
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRateByCodes_UnknownCurrency() {
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, testTenantID, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolveRateByCodes(context.Background(), testTenantID, "XXX", "USD", time.Now())

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_DerivesInverse() {
	suite.mockCurrencyRepo.On("FindCurrencyByID", mock.Anything, testTenantID, suite.usd.CurrencyID).Return(&suite.usd, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByID", mock.Anything, testTenantID, suite.jpy.CurrencyID).Return(&suite.jpy, nil).Once()

	var saved domain.ExchangeRate
	suite.mockRateRepo.On("SaveExchangeRate", mock.Anything, mock.AnythingOfType("domain.ExchangeRate")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.ExchangeRate) }).
		Return(nil).Once()

	req := dto.CreateExchangeRateRequest{
		FromCurrencyID: suite.usd.CurrencyID,
		ToCurrencyID:   suite.jpy.CurrencyID,
		Rate:           decimal.RequireFromString("149.5"),
		EffectiveDate:  time.Now(),
	}
	rate, err := suite.service.CreateExchangeRate(context.Background(), testTenantID, req, "user-1")

	suite.NoError(err)
	suite.True(rate.InverseRate.Equal(decimal.RequireFromString("0.00668896")), "inverse is 1/rate rounded to 8 places, got %s", rate.InverseRate)
	suite.Equal(domain.SourceManual, rate.Source, "source defaults to MANUAL")
	suite.True(rate.IsActive)
	suite.True(saved.Rate.Equal(req.Rate))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SamePairRejected() {
	req := dto.CreateExchangeRateRequest{
		FromCurrencyID: suite.usd.CurrencyID,
		ToCurrencyID:   suite.usd.CurrencyID,
		Rate:           decimal.NewFromInt(2),
		EffectiveDate:  time.Now(),
	}
	_, err := suite.service.CreateExchangeRate(context.Background(), testTenantID, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrInvalidPair)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_UnknownCurrencyNotFound() {
	unknownID := uuid.NewString()
	suite.mockCurrencyRepo.On("FindCurrencyByID", mock.Anything, testTenantID, unknownID).Return(nil, apperrors.ErrNotFound).Once()

	req := dto.CreateExchangeRateRequest{
		FromCurrencyID: unknownID,
		ToCurrencyID:   suite.eur.CurrencyID,
		Rate:           decimal.NewFromInt(2),
		EffectiveDate:  time.Now(),
	}
	_, err := suite.service.CreateExchangeRate(context.Background(), testTenantID, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrNotFound, "an unresolvable currency id is a not-found condition, not a validation failure")
	suite.Contains(err.Error(), unknownID)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_NonPositiveRateRejected() {
	for _, rate := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		req := dto.CreateExchangeRateRequest{
			FromCurrencyID: suite.usd.CurrencyID,
			ToCurrencyID:   suite.eur.CurrencyID,
			Rate:           rate,
			EffectiveDate:  time.Now(),
		}
		_, err := suite.service.CreateExchangeRate(context.Background(), testTenantID, req, "user-1")
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_ExpiryBeforeEffectiveRejected() {
	effective := time.Now()
	expired := effective.Add(-time.Hour)
	req := dto.CreateExchangeRateRequest{
		FromCurrencyID: suite.usd.CurrencyID,
		ToCurrencyID:   suite.eur.CurrencyID,
		Rate:           decimal.NewFromInt(2),
		EffectiveDate:  effective,
		ExpiresAt:      &expired,
	}
	_, err := suite.service.CreateExchangeRate(context.Background(), testTenantID, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestUpdateExchangeRate_RecomputesInverse() {
	existing := &domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		TenantID:       testTenantID,
		FromCurrencyID: suite.usd.CurrencyID,
		ToCurrencyID:   suite.eur.CurrencyID,
		Rate:           decimal.RequireFromString("0.90"),
		InverseRate:    decimal.RequireFromString("1.11111111"),
		EffectiveDate:  time.Now().Add(-time.Hour),
		Source:         domain.SourceManual,
		IsActive:       true,
	}
	suite.mockRateRepo.On("FindExchangeRateByID", mock.Anything, testTenantID, existing.ExchangeRateID).Return(existing, nil).Once()

	var updated domain.ExchangeRate
	suite.mockRateRepo.On("UpdateExchangeRate", mock.Anything, mock.AnythingOfType("domain.ExchangeRate")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.ExchangeRate) }).
		Return(nil).Once()

	newRate := decimal.RequireFromString("0.92")
	rate, err := suite.service.UpdateExchangeRate(context.Background(), testTenantID, existing.ExchangeRateID, dto.UpdateExchangeRateRequest{Rate: &newRate}, "user-2")

	suite.NoError(err)
	suite.True(rate.InverseRate.Equal(decimal.RequireFromString("1.08695652")))
	suite.True(updated.Rate.Equal(newRate))
	suite.True(updated.InverseRate.Equal(rate.InverseRate), "rate and inverse travel in the same write")
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func TestInverseConsistency(t *testing.T) {
	// round(1/round(1/r, 8), 8) stays within a tight band of r for realistic rates
	for _, s := range []string{"0.92", "149.5", "1.08", "0.0075", "18.42"} {
		r := decimal.RequireFromString(s)
		roundTrip := domain.InverseOf(domain.InverseOf(r))
		diff := roundTrip.Sub(r).Abs()
		assert.True(t, diff.LessThan(decimal.RequireFromString("0.0001")),
			"round-trip inverse of %s drifted by %s", s, diff)
	}
}
