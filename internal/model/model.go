// Package model defines the billing hierarchy: a Profile (the biller) owns
// Clients, a Client owns Projects, a Project owns Invoices, an Invoice owns
// LineItems. An ID of 0 means the entity is an unsaved draft; the store
// assigns the real id on insert.
package model

type Profile struct {
	ID            int64
	Name          string
	Phone         string
	Address       *string
	Email         string
	BankName      string
	BankAccount   string
	RoutingNumber string
}

type Client struct {
	ID        int64
	ProfileID int64
	Name      string
	Phone     string
	Address   *string
	Email     string
}

type Project struct {
	ID        int64
	ClientID  int64
	Name      string
	StartDate Date
	EndDate   *Date
}

type Invoice struct {
	ID         int64
	ProjectID  int64
	Number     int64
	SubmitDate Date
	DueDate    Date
	Rate       float64
	Status     string
}

type LineItem struct {
	ID          int64
	InvoiceID   int64
	Description string
	Hours       float64
}

// Amount is the billed value of the item at the given hourly rate.
// Derived, never stored.
func (li LineItem) Amount(rate float64) float64 {
	return li.Hours * rate
}

// Total sums the derived amounts of the given line items at the invoice rate.
func (inv Invoice) Total(items []LineItem) float64 {
	var total float64
	for _, li := range items {
		total += li.Amount(inv.Rate)
	}
	return total
}

// TotalHours sums the hours of the given line items.
func TotalHours(items []LineItem) float64 {
	var total float64
	for _, li := range items {
		total += li.Hours
	}
	return total
}
