package advance

import (
	"github.com/shopspring/decimal"

	"adelanta/internal/domain/entity"
	"adelanta/internal/utils/apierror"
)

const (
	TaxServiceFee      = "Service fee"
	TaxBankTransferFee = "Bank transfer fee"
	TaxNetworkFee      = "Network fee"
)

var oneHundred = decimal.NewFromInt(100)

// TaxItem is one fee line of a quote. The slice order is the order the
// fees were computed in and is preserved all the way to the UI.
type TaxItem struct {
	Name        string          `json:"name"`
	Value       decimal.Decimal `json:"value"`
	Description string          `json:"description,omitempty"`
}

// Quote is the advisory result of a cost calculation. Nothing is
// persisted until the employee confirms; the create step re-validates
// the ceiling against fresh data.
type Quote struct {
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Taxes           []TaxItem       `json:"taxes"`
}

// Input carries already-loaded employee context. Employee must be
// preloaded with Company, BankAccount (with Bank) and Wallet (with
// Network) as applicable.
type Input struct {
	Employee        *entity.Employee
	RequestedAmount decimal.Decimal
	PaymentMethod   entity.PaymentMethod
}

// Calculate computes the fee lines and total for a requested amount.
// Pure: no persistence, no clock. Validation problems come back as
// field-keyed errors so the caller can re-render the request form.
func Calculate(in Input) (*Quote, *apierror.StructuredError) {
	emp := in.Employee

	if !in.RequestedAmount.IsPositive() {
		return nil, apierror.NewFieldError("requestedAmount", "Amount must be greater than zero")
	}

	ceiling, se := ceilingFor(emp, in.PaymentMethod)
	if se != nil {
		return nil, se
	}

	if in.RequestedAmount.GreaterThan(ceiling) {
		return nil, apierror.NewFieldError("requestedAmount",
			"Amount exceeds your available amount of "+ceiling.StringFixed(2))
	}

	taxes := computeTaxes(emp, in.RequestedAmount, in.PaymentMethod)

	total := in.RequestedAmount
	for _, tax := range taxes {
		total = total.Add(tax.Value)
	}

	return &Quote{
		RequestedAmount: in.RequestedAmount.Round(2),
		TotalAmount:     total.Round(2),
		Taxes:           taxes,
	}, nil
}

// ceilingFor resolves the available amount for the chosen payout
// method and checks the employee has that destination on file.
func ceilingFor(emp *entity.Employee, method entity.PaymentMethod) (decimal.Decimal, *apierror.StructuredError) {
	switch method {
	case entity.PaymentBankAccount:
		if emp.BankAccount == nil {
			return decimal.Zero, apierror.NewFieldError("paymentMethod", "No bank account on file")
		}
		return emp.AdvanceAvailableAmount, nil

	case entity.PaymentWallet:
		if emp.Wallet == nil {
			return decimal.Zero, apierror.NewFieldError("paymentMethod", "No crypto wallet on file")
		}
		return emp.AdvanceCryptoAvailableAmount, nil

	default:
		return decimal.Zero, apierror.NewFieldError("paymentMethod", "Unknown payment method")
	}
}

func computeTaxes(emp *entity.Employee, amount decimal.Decimal, method entity.PaymentMethod) []TaxItem {
	taxes := []TaxItem{}

	rate := emp.Company.DispersionRate
	if rate.IsPositive() {
		taxes = append(taxes, TaxItem{
			Name:        TaxServiceFee,
			Value:       amount.Mul(rate).Div(oneHundred).Round(2),
			Description: rate.String() + "% of the requested amount",
		})
	}

	switch method {
	case entity.PaymentBankAccount:
		fee := emp.BankAccount.Bank.TransferFee
		if fee.IsPositive() {
			taxes = append(taxes, TaxItem{
				Name:        TaxBankTransferFee,
				Value:       fee.Round(2),
				Description: emp.BankAccount.Bank.Name,
			})
		}
	case entity.PaymentWallet:
		fee := emp.Wallet.Network.NetworkFee
		if fee.IsPositive() {
			taxes = append(taxes, TaxItem{
				Name:        TaxNetworkFee,
				Value:       fee.Round(2),
				Description: emp.Wallet.Network.Name,
			})
		}
	}
	return taxes
}
