package advance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adelanta/internal/domain/advance"
	"adelanta/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// calcEmployee has a 2.5% service fee, a $25 bank transfer fee and a
// $1.50 network fee, with separate fiat and crypto ceilings.
func calcEmployee() *entity.Employee {
	return &entity.Employee{
		ID:        1,
		CompanyID: 1,
		Company: entity.Company{
			ID:             1,
			DispersionRate: dec("2.5"),
		},
		AdvanceAvailableAmount:       dec("1000"),
		AdvanceCryptoAvailableAmount: dec("300"),
		BankAccount: &entity.BankAccount{
			Bank: entity.Bank{Name: "Banco Azteca", TransferFee: dec("25")},
		},
		Wallet: &entity.Wallet{
			Network: entity.CryptoNetwork{Name: "Polygon", NetworkFee: dec("1.5")},
		},
	}
}

func TestCalculate_BankAccountQuote(t *testing.T) {
	quote, se := advance.Calculate(advance.Input{
		Employee:        calcEmployee(),
		RequestedAmount: dec("500"),
		PaymentMethod:   entity.PaymentBankAccount,
	})

	require.Nil(t, se)
	require.Len(t, quote.Taxes, 2)

	assert.Equal(t, advance.TaxServiceFee, quote.Taxes[0].Name)
	assert.True(t, quote.Taxes[0].Value.Equal(dec("12.50")), "got %s", quote.Taxes[0].Value)
	assert.Equal(t, advance.TaxBankTransferFee, quote.Taxes[1].Name)
	assert.True(t, quote.Taxes[1].Value.Equal(dec("25")))

	assert.True(t, quote.RequestedAmount.Equal(dec("500")))
	assert.True(t, quote.TotalAmount.Equal(dec("537.50")), "got %s", quote.TotalAmount)
}

func TestCalculate_WalletQuote(t *testing.T) {
	quote, se := advance.Calculate(advance.Input{
		Employee:        calcEmployee(),
		RequestedAmount: dec("200"),
		PaymentMethod:   entity.PaymentWallet,
	})

	require.Nil(t, se)
	require.Len(t, quote.Taxes, 2)
	assert.Equal(t, advance.TaxServiceFee, quote.Taxes[0].Name)
	assert.Equal(t, advance.TaxNetworkFee, quote.Taxes[1].Name)
	assert.True(t, quote.Taxes[1].Value.Equal(dec("1.50")))
	assert.True(t, quote.TotalAmount.Equal(dec("206.50")), "got %s", quote.TotalAmount)
}

func TestCalculate_ServiceFeeRoundsToCents(t *testing.T) {
	// 333.33 * 2.5% = 8.33325, which must come back as 8.33.
	quote, se := advance.Calculate(advance.Input{
		Employee:        calcEmployee(),
		RequestedAmount: dec("333.33"),
		PaymentMethod:   entity.PaymentBankAccount,
	})

	require.Nil(t, se)
	assert.True(t, quote.Taxes[0].Value.Equal(dec("8.33")), "got %s", quote.Taxes[0].Value)
	assert.True(t, quote.TotalAmount.Equal(dec("366.66")), "got %s", quote.TotalAmount)
}

func TestCalculate_ZeroFeesAreOmitted(t *testing.T) {
	emp := calcEmployee()
	emp.Company.DispersionRate = decimal.Zero
	emp.BankAccount.Bank.TransferFee = decimal.Zero

	quote, se := advance.Calculate(advance.Input{
		Employee:        emp,
		RequestedAmount: dec("100"),
		PaymentMethod:   entity.PaymentBankAccount,
	})

	require.Nil(t, se)
	assert.Empty(t, quote.Taxes)
	assert.True(t, quote.TotalAmount.Equal(dec("100")))
}

func TestCalculate_CeilingPerPaymentMethod(t *testing.T) {
	// 500 fits the fiat ceiling but exceeds the crypto one.
	emp := calcEmployee()

	_, se := advance.Calculate(advance.Input{
		Employee:        emp,
		RequestedAmount: dec("500"),
		PaymentMethod:   entity.PaymentBankAccount,
	})
	assert.Nil(t, se)

	_, se = advance.Calculate(advance.Input{
		Employee:        emp,
		RequestedAmount: dec("500"),
		PaymentMethod:   entity.PaymentWallet,
	})
	require.NotNil(t, se)
	assert.Contains(t, se.Errors, "requestedAmount")
}

func TestCalculate_CeilingIsInclusive(t *testing.T) {
	quote, se := advance.Calculate(advance.Input{
		Employee:        calcEmployee(),
		RequestedAmount: dec("1000"),
		PaymentMethod:   entity.PaymentBankAccount,
	})

	require.Nil(t, se, "requesting exactly the available amount is allowed")
	assert.True(t, quote.RequestedAmount.Equal(dec("1000")))
}

func TestCalculate_NonPositiveAmountRejected(t *testing.T) {
	for _, amount := range []string{"0", "-10"} {
		_, se := advance.Calculate(advance.Input{
			Employee:        calcEmployee(),
			RequestedAmount: dec(amount),
			PaymentMethod:   entity.PaymentBankAccount,
		})
		require.NotNil(t, se, "amount %s", amount)
		assert.Contains(t, se.Errors, "requestedAmount")
	}
}

func TestCalculate_MissingDestination(t *testing.T) {
	emp := calcEmployee()
	emp.BankAccount = nil
	emp.Wallet = nil

	_, se := advance.Calculate(advance.Input{
		Employee:        emp,
		RequestedAmount: dec("100"),
		PaymentMethod:   entity.PaymentBankAccount,
	})
	require.NotNil(t, se)
	assert.Contains(t, se.Errors, "paymentMethod")

	_, se = advance.Calculate(advance.Input{
		Employee:        emp,
		RequestedAmount: dec("100"),
		PaymentMethod:   entity.PaymentWallet,
	})
	require.NotNil(t, se)
	assert.Contains(t, se.Errors, "paymentMethod")
}

func TestCalculate_UnknownPaymentMethod(t *testing.T) {
	_, se := advance.Calculate(advance.Input{
		Employee:        calcEmployee(),
		RequestedAmount: dec("100"),
		PaymentMethod:   entity.PaymentMethod("CASH"),
	})

	require.NotNil(t, se)
	assert.Contains(t, se.Errors, "paymentMethod")
}

func summaryAdvance(status entity.AdvanceStatus, at time.Time, requested, total string) *entity.Advance {
	return &entity.Advance{
		Status:          status,
		CreatedAt:       at.UnixMilli(),
		RequestedAmount: dec(requested),
		TotalAmount:     dec(total),
	}
}

func TestMonthlySummary(t *testing.T) {
	march := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)
	advances := []*entity.Advance{
		summaryAdvance(entity.AdvancePaid, march, "100", "110"),
		summaryAdvance(entity.AdvanceRequested, march.AddDate(0, 0, 10), "200", "215"),
		summaryAdvance(entity.AdvanceApproved, march.AddDate(0, 4, 0), "50", "55"),
		// Excluded: terminal failures and other years
		summaryAdvance(entity.AdvanceDenied, march, "999", "999"),
		summaryAdvance(entity.AdvanceCancelled, march, "999", "999"),
		summaryAdvance(entity.AdvancePaid, march.AddDate(-1, 0, 0), "999", "999"),
	}

	totals := advance.MonthlySummary(advances, 2026)
	require.Len(t, totals, 12)

	assert.Equal(t, time.January, totals[0].Month)

	marchBucket := totals[2]
	assert.Equal(t, 2, marchBucket.Count)
	assert.True(t, marchBucket.RequestedTotal.Equal(dec("300")), "got %s", marchBucket.RequestedTotal)
	assert.True(t, marchBucket.Total.Equal(dec("325")), "got %s", marchBucket.Total)

	julyBucket := totals[6]
	assert.Equal(t, 1, julyBucket.Count)
	assert.True(t, julyBucket.Total.Equal(dec("55")))

	assert.Equal(t, 0, totals[0].Count)
	assert.True(t, totals[0].RequestedTotal.IsZero())
}

func TestMonthlySummary_MonthBoundaryIsUTC(t *testing.T) {
	// 2026-03-31 23:30 in UTC-6 is already April in UTC.
	tz := time.FixedZone("UTC-6", -6*3600)
	local := time.Date(2026, time.March, 31, 23, 30, 0, 0, tz)

	totals := advance.MonthlySummary([]*entity.Advance{
		summaryAdvance(entity.AdvancePaid, local, "100", "100"),
	}, 2026)

	assert.Equal(t, 0, totals[2].Count)
	assert.Equal(t, 1, totals[3].Count)
}
