package mapping

import (
	"github.com/coreledger/erp-backend/internal/core/domain"
	"github.com/coreledger/erp-backend/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyID:         d.CurrencyID,
		TenantID:           d.TenantID,
		CurrencyCode:       d.CurrencyCode,
		Name:               d.Name,
		Symbol:             d.Symbol,
		DecimalPlaces:      d.DecimalPlaces,
		SymbolPosition:     string(d.SymbolPosition),
		ThousandsSeparator: d.ThousandsSeparator,
		DecimalSeparator:   d.DecimalSeparator,
		IsBaseCurrency:     d.IsBaseCurrency,
		SortOrder:          d.SortOrder,
		IsActive:           d.IsActive,
		DeletedAt:          d.DeletedAt,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyID:         m.CurrencyID,
		TenantID:           m.TenantID,
		CurrencyCode:       m.CurrencyCode,
		Name:               m.Name,
		Symbol:             m.Symbol,
		DecimalPlaces:      m.DecimalPlaces,
		SymbolPosition:     domain.SymbolPosition(m.SymbolPosition),
		ThousandsSeparator: m.ThousandsSeparator,
		DecimalSeparator:   m.DecimalSeparator,
		IsBaseCurrency:     m.IsBaseCurrency,
		SortOrder:          m.SortOrder,
		IsActive:           m.IsActive,
		DeletedAt:          m.DeletedAt,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCurrencySlice converts a slice of model Currencies to a slice of domain Currencies
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}
