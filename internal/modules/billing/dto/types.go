package dto

import "time"

type InvoiceOutput struct {
	ID          int64
	ClientID    int64
	ClientName  string
	ClientEmail string
	Paid        bool
	PaidAt      time.Time
	ShiftCount  int
	Subtotal    string
	GST         string
	Total       string
}

type CreateInvoiceInput struct {
	ClientID int64
	ShiftIDs []int64
	Due      time.Time
}

type ListOutput struct {
	Invoices  []InvoiceOutput
	FromCache bool
}
