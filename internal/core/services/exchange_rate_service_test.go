package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/shakotgabriel/tanina/internal/apperrors"
	"github.com/shakotgabriel/tanina/internal/core/domain"
	portssvc "github.com/shakotgabriel/tanina/internal/core/ports/services"
	"github.com/shakotgabriel/tanina/internal/core/services"
)

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	service portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	rates := map[string]decimal.Decimal{
		"USD_KES": decimal.RequireFromString("130.00"),
		"USD_UGX": decimal.RequireFromString("3700.00"),
		"USD_TZS": decimal.RequireFromString("2500.00"),
		"USD_SSP": decimal.RequireFromString("5000.00"),
	}
	suite.service = services.NewExchangeRateService(rates)
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_ConfiguredPair() {
	rate, err := suite.service.GetExchangeRate(domain.USD, domain.KES)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), rate.Equal(decimal.RequireFromString("130.00")))
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_IdenticalCurrencies() {
	rate, err := suite.service.GetExchangeRate(domain.KES, domain.KES)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), rate.Equal(decimal.NewFromInt(1)))
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_ReverseDirectionNotDerived() {
	_, err := suite.service.GetExchangeRate(domain.KES, domain.USD)

	assert.ErrorIs(suite.T(), err, apperrors.ErrRateNotFound)
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_ExactDecimal() {
	amount := decimal.RequireFromString("100.50")

	converted, err := suite.service.ConvertAmount(amount, domain.USD, domain.KES)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), converted.Equal(decimal.RequireFromString("13065.00")))
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_MissingRate() {
	_, err := suite.service.ConvertAmount(decimal.NewFromInt(10), domain.KES, domain.UGX)

	assert.ErrorIs(suite.T(), err, apperrors.ErrRateNotFound)
}

func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
