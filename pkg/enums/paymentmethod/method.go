package paymentmethod

import "strings"

type Method struct {
	Name string
}

func (m Method) Code() string {
	return m.Name
}

func (m Method) Label() string {
	parts := strings.Split(strings.ToLower(m.Name), "_")
	for i := range parts {
		if len(parts[i]) > 0 {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, " ")
}

// RequiresReference reports whether a payment reference code must accompany
// the method. Only cash is exempt.
func (m Method) RequiresReference() bool {
	return m.Name != Methods.Cash.Name
}

type Enum struct {
	Cash           Method
	Card           Method
	MobilePayment  Method
	WalletTransfer Method
	BankTransfer   Method
}

var Methods = Enum{
	Cash:           Method{Name: "CASH"},
	Card:           Method{Name: "CARD"},
	MobilePayment:  Method{Name: "MOBILE_PAYMENT"},
	WalletTransfer: Method{Name: "WALLET_TRANSFER"},
	BankTransfer:   Method{Name: "BANK_TRANSFER"},
}

var All = []Method{
	Methods.Cash,
	Methods.Card,
	Methods.MobilePayment,
	Methods.WalletTransfer,
	Methods.BankTransfer,
}

// ByName returns the method for a given name, or nil if not found
func ByName(name string) *Method {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for _, m := range All {
		if m.Name == normalized {
			return &m
		}
	}
	return nil
}
