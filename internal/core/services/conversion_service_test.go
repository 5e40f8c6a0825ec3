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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ConversionServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          *services.ConversionService

	usd domain.Currency
	eur domain.Currency
	jpy domain.Currency
}

func (suite *ConversionServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	currencySvc := services.NewCurrencyService(suite.mockCurrencyRepo, nil)
	rateSvc := services.NewExchangeRateService(suite.mockRateRepo, currencySvc)
	suite.service = services.NewConversionService(currencySvc, rateSvc)

	suite.usd = domain.Currency{CurrencyID: uuid.NewString(), TenantID: testTenantID, CurrencyCode: "USD", DecimalPlaces: 2, IsActive: true}
	suite.eur = domain.Currency{CurrencyID: uuid.NewString(), TenantID: testTenantID, CurrencyCode: "EUR", DecimalPlaces: 2, IsActive: true}
	suite.jpy = domain.Currency{CurrencyID: uuid.NewString(), TenantID: testTenantID, CurrencyCode: "JPY", DecimalPlaces: 0, IsActive: true}
}

func TestConversionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConversionServiceTestSuite))
}

func (suite *ConversionServiceTestSuite) expectCurrency(curr domain.Currency) {
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, testTenantID, curr.CurrencyCode).Return(&curr, nil)
}

func (suite *ConversionServiceTestSuite) expectDirectRate(from, to domain.Currency, rate string) {
	r := decimal.RequireFromString(rate)
	stored := &domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		TenantID:       testTenantID,
		FromCurrencyID: from.CurrencyID,
		ToCurrencyID:   to.CurrencyID,
		Rate:           r,
		InverseRate:    domain.InverseOf(r),
		EffectiveDate:  time.Now().Add(-time.Hour),
		Source:         domain.SourceManual,
		IsActive:       true,
	}
	suite.mockRateRepo.On("FindApplicableRate", mock.Anything, testTenantID, from.CurrencyID, to.CurrencyID, mock.AnythingOfType("time.Time")).Return(stored, nil)
}

func (suite *ConversionServiceTestSuite) expectNoRate(from, to domain.Currency) {
	suite.mockRateRepo.On("FindApplicableRate", mock.Anything, testTenantID, from.CurrencyID, to.CurrencyID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound)
}

func (suite *ConversionServiceTestSuite) TestConvert_RoundsToTargetDecimalPlaces() {
	suite.expectCurrency(suite.usd)
	suite.expectCurrency(suite.jpy)
	suite.expectDirectRate(suite.usd, suite.jpy, "149.5")

	res, err := suite.service.Convert(context.Background(), testTenantID, dto.ConvertRequest{
		Amount:       decimal.NewFromInt(100),
		FromCurrency: "USD",
		ToCurrency:   "JPY",
	})

	suite.NoError(err)
	// JPY has zero decimal places; 100 * 149.5 lands exactly on 14950
	suite.True(res.ConvertedAmount.Equal(decimal.NewFromInt(14950)), "got %s", res.ConvertedAmount)
	suite.Equal("USD", res.FromCurrencyCode)
	suite.Equal("JPY", res.ToCurrencyCode)
}

func (suite *ConversionServiceTestSuite) TestConvert_FractionalRounding() {
	suite.expectCurrency(suite.usd)
	suite.expectCurrency(suite.eur)
	suite.expectDirectRate(suite.usd, suite.eur, "0.9237")

	res, err := suite.service.Convert(context.Background(), testTenantID, dto.ConvertRequest{
		Amount:       decimal.RequireFromString("19.99"),
		FromCurrency: "USD",
		ToCurrency:   "EUR",
	})

	suite.NoError(err)
	// 19.99 * 0.9237 = 18.464763, rounds to EUR's 2 places
	suite.True(res.ConvertedAmount.Equal(decimal.RequireFromString("18.46")), "got %s", res.ConvertedAmount)
}

func (suite *ConversionServiceTestSuite) TestConvert_FormatsWithTargetDisplaySettings() {
	usd := suite.usd
	usd.Symbol = "$"
	usd.SymbolPosition = domain.SymbolBefore
	usd.ThousandsSeparator = ","
	usd.DecimalSeparator = "."
	suite.expectCurrency(suite.eur)
	suite.expectCurrency(usd)
	suite.expectDirectRate(suite.eur, usd, "1.08")

	res, err := suite.service.Convert(context.Background(), testTenantID, dto.ConvertRequest{
		Amount:       decimal.NewFromInt(2000),
		FromCurrency: "EUR",
		ToCurrency:   "USD",
	})

	suite.NoError(err)
	suite.Equal("$2,160.00", res.FormattedAmount)
}

func (suite *ConversionServiceTestSuite) TestConvert_Identity() {
	suite.expectCurrency(suite.usd)

	res, err := suite.service.Convert(context.Background(), testTenantID, dto.ConvertRequest{
		Amount:       decimal.RequireFromString("123.456"),
		FromCurrency: "USD",
		ToCurrency:   "USD",
	})

	suite.NoError(err)
	suite.True(res.Rate.Equal(decimal.NewFromInt(1)))
	// Same-currency conversion still rounds to the currency's places.
	suite.True(res.ConvertedAmount.Equal(decimal.RequireFromString("123.46")), "got %s", res.ConvertedAmount)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindApplicableRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestConvert_HonorsRequestedDate() {
	suite.expectCurrency(suite.usd)
	suite.expectCurrency(suite.eur)

	asOf := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	stored := &domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		TenantID:       testTenantID,
		FromCurrencyID: suite.usd.CurrencyID,
		ToCurrencyID:   suite.eur.CurrencyID,
		Rate:           decimal.RequireFromString("0.95"),
		InverseRate:    domain.InverseOf(decimal.RequireFromString("0.95")),
		EffectiveDate:  asOf.Add(-48 * time.Hour),
		Source:         domain.SourceECB,
		IsActive:       true,
	}
	suite.mockRateRepo.On("FindApplicableRate", mock.Anything, testTenantID, suite.usd.CurrencyID, suite.eur.CurrencyID, asOf).Return(stored, nil).Once()

	res, err := suite.service.Convert(context.Background(), testTenantID, dto.ConvertRequest{
		Amount:       decimal.NewFromInt(10),
		FromCurrency: "USD",
		ToCurrency:   "EUR",
		Date:         &asOf,
	})

	suite.NoError(err)
	suite.True(res.ConvertedAmount.Equal(decimal.RequireFromString("9.50")))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_NegativeAmountRejected() {
	_, err := suite.service.Convert(context.Background(), testTenantID, dto.ConvertRequest{
		Amount:       decimal.NewFromInt(-5),
		FromCurrency: "USD",
		ToCurrency:   "EUR",
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ConversionServiceTestSuite) TestBulkConvert_SkipsFailedItems() {
	suite.expectCurrency(suite.usd)
	suite.expectCurrency(suite.eur)
	suite.expectCurrency(suite.jpy)
	suite.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, testTenantID, "XXX").Return(nil, apperrors.ErrNotFound)
	suite.expectDirectRate(suite.usd, suite.eur, "0.92")
	suite.expectDirectRate(suite.usd, suite.jpy, "149.5")

	reqs := []dto.ConvertRequest{
		{Amount: decimal.NewFromInt(100), FromCurrency: "USD", ToCurrency: "EUR"},
		{Amount: decimal.NewFromInt(100), FromCurrency: "USD", ToCurrency: "XXX"}, // unknown currency, skipped
		{Amount: decimal.NewFromInt(100), FromCurrency: "USD", ToCurrency: "JPY"},
		{Amount: decimal.NewFromInt(-1), FromCurrency: "USD", ToCurrency: "EUR"}, // negative, skipped
		{Amount: decimal.NewFromInt(100), FromCurrency: "US", ToCurrency: "EUR"}, // malformed code, skipped
		{Amount: decimal.NewFromInt(50), FromCurrency: "USD", ToCurrency: "USD"},
	}

	results, err := suite.service.BulkConvert(context.Background(), testTenantID, reqs)

	suite.NoError(err, "item failures never fail the batch")
	suite.Len(results, 3)
	suite.Equal("EUR", results[0].ToCurrencyCode)
	suite.Equal("JPY", results[1].ToCurrencyCode)
	suite.Equal("USD", results[2].ToCurrencyCode)
}

func (suite *ConversionServiceTestSuite) TestBulkConvert_NoRateSkipped() {
	suite.expectCurrency(suite.usd)
	suite.expectCurrency(suite.eur)
	suite.expectNoRate(suite.usd, suite.eur)
	suite.expectNoRate(suite.eur, suite.usd)

	results, err := suite.service.BulkConvert(context.Background(), testTenantID, []dto.ConvertRequest{
		{Amount: decimal.NewFromInt(1), FromCurrency: "USD", ToCurrency: "EUR"},
	})

	suite.NoError(err)
	suite.Empty(results)
}

func (suite *ConversionServiceTestSuite) TestBulkConvert_CapEnforcedBeforeProcessing() {
	reqs := make([]dto.ConvertRequest, services.MaxBulkConversionItems+1)
	for i := range reqs {
		reqs[i] = dto.ConvertRequest{Amount: decimal.NewFromInt(1), FromCurrency: "USD", ToCurrency: "EUR"}
	}

	_, err := suite.service.BulkConvert(context.Background(), testTenantID, reqs)

	suite.ErrorIs(err, apperrors.ErrTooManyItems)
	// No item is touched when the cap is exceeded.
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "FindCurrencyByCode", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestBulkConvert_ExactlyAtCap() {
	suite.expectCurrency(suite.usd)
	suite.expectCurrency(suite.eur)
	suite.expectDirectRate(suite.usd, suite.eur, "0.92")

	reqs := make([]dto.ConvertRequest, services.MaxBulkConversionItems)
	for i := range reqs {
		reqs[i] = dto.ConvertRequest{Amount: decimal.NewFromInt(1), FromCurrency: "USD", ToCurrency: "EUR"}
	}

	results, err := suite.service.BulkConvert(context.Background(), testTenantID, reqs)

	suite.NoError(err)
	suite.Len(results, services.MaxBulkConversionItems)
}
