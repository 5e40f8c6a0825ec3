package mapping

import (
	"github.com/coreledger/erp-backend/internal/core/domain"
	"github.com/coreledger/erp-backend/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID:  d.ExchangeRateID,
		TenantID:        d.TenantID,
		FromCurrencyID:  d.FromCurrencyID,
		ToCurrencyID:    d.ToCurrencyID,
		Rate:            d.Rate,
		InverseRate:     d.InverseRate,
		EffectiveDate:   d.EffectiveDate,
		ExpiresAt:       d.ExpiresAt,
		Source:          string(d.Source),
		SourceReference: d.SourceReference,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:  m.ExchangeRateID,
		TenantID:        m.TenantID,
		FromCurrencyID:  m.FromCurrencyID,
		ToCurrencyID:    m.ToCurrencyID,
		Rate:            m.Rate,
		InverseRate:     m.InverseRate,
		EffectiveDate:   m.EffectiveDate,
		ExpiresAt:       m.ExpiresAt,
		Source:          domain.RateSource(m.Source),
		SourceReference: m.SourceReference,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExchangeRateSlice converts a slice of model ExchangeRates to domain ExchangeRates
func ToDomainExchangeRateSlice(ms []models.ExchangeRate) []domain.ExchangeRate {
	ds := make([]domain.ExchangeRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExchangeRate(m)
	}
	return ds
}
