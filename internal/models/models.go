package models

import (
	"strconv"
	"time"
)

// Load statuses follow the dispatch lifecycle; payment status tracks the
// invoicing side independently.
const (
	StatusBooked    = "booked"
	StatusPickedUp  = "pickedUp"
	StatusDelivered = "delivered"
	StatusCanceled  = "canceled"

	PaymentUnpaid   = "unpaid"
	PaymentInvoiced = "invoiced"
	PaymentPaid     = "paid"
)

// Load is a single freight shipment record. Pickup/dropoff times and the
// money/miles fields are kept as the text the dispatcher entered; parsing
// happens at computation time and is deliberately forgiving.
type Load struct {
	ID            int64     `json:"id"`
	PickupTime    string    `json:"pickup_time"`
	DropoffTime   string    `json:"dropoff_time"`
	Origin        string    `json:"load_from"`
	Destination   string    `json:"load_to"`
	BrokerCompany string    `json:"broker_company"`
	BrokerMC      string    `json:"broker_mc"`
	BrokerName    string    `json:"broker_name"`
	LoadNumber    string    `json:"load_number"`
	Amount        string    `json:"load_amount"`
	Miles         string    `json:"miles"`
	Status        string    `json:"load_status"`
	PaymentStatus string    `json:"payment_status"`
	DriverID      int64     `json:"driver_id"`
	DispatcherID  int64     `json:"dispatcher_id"`
	InvoiceNumber string    `json:"invoice_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SearchFields returns the string form of every searchable field on the
// load. The dashboard's free-text search matches a load if any one of these,
// lower-cased, contains the query. Keeping this an explicit list (rather
// than reflecting over the struct) pins down exactly what "all fields" means.
func (l Load) SearchFields() []string {
	return []string{
		strconv.FormatInt(l.ID, 10),
		l.PickupTime,
		l.DropoffTime,
		l.Origin,
		l.Destination,
		l.BrokerCompany,
		l.BrokerMC,
		l.BrokerName,
		l.LoadNumber,
		l.Amount,
		l.Miles,
		l.Status,
		l.PaymentStatus,
		strconv.FormatInt(l.DriverID, 10),
		strconv.FormatInt(l.DispatcherID, 10),
		l.InvoiceNumber,
		l.CreatedAt.Format(time.RFC3339),
	}
}

// Driver is a contracted truck driver. Percentage is the dispatch-fee
// percentage agreed with the driver, stored as entered.
type Driver struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	MCNumber      string `json:"mc_number"`
	TruckType     string `json:"truck_type"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	JoinDate      string `json:"join_date"`
	SalesAgentID  int64  `json:"sales_agent_id,omitempty"`
	Percentage    string `json:"percentage"`
}

// User is a back-office account: admin, dispatcher or sales.
type User struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	Role          string `json:"role"` // admin, dispatcher, sales
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
}

// Assignment links a dispatcher to a driver they manage. The pair is the
// identity; there is nothing else to update on it.
type Assignment struct {
	DispatcherID int64 `json:"dispatcher_id"`
	DriverID     int64 `json:"driver_id"`
}

// LoadEvent is published on every load mutation and consumed by the board
// consumer and websocket clients.
type LoadEvent struct {
	Type string    `json:"type"` // created, updated, deleted
	Load Load      `json:"load"`
	At   time.Time `json:"at"`
}
