package settlement

import (
	"fmt"
	"time"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/models"
)

// Company is the dispatch company's identity block printed in the document
// header, including the account the driver remits the fee to.
type Company struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	BankName      string `json:"bank_name"`
	AccountHolder string `json:"account_holder"`
	AccountNumber string `json:"account_number"`
}

// DriverInfo is the driver identity snapshot embedded in the document. It is
// copied at generation time; later driver edits do not touch an issued
// settlement.
type DriverInfo struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	MCNumber      string `json:"mc_number"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
}

// Document is everything a settlement renderer needs: identities, line
// items and totals. It is derived on every request and never persisted.
type Document struct {
	SettlementID string     `json:"settlement_id"`
	IssueDate    string     `json:"issue_date"`
	Driver       DriverInfo `json:"driver"`
	Company      Company    `json:"company"`
	Settlement
}

// BuildDocument wraps a computed settlement with the driver and company
// identity snapshots.
func BuildDocument(d models.Driver, c Company, s Settlement) Document {
	return Document{
		SettlementID: fmt.Sprintf("DRV-%d", d.ID),
		IssueDate:    time.Now().Format("Jan 2, 2006"),
		Driver: DriverInfo{
			ID:            d.ID,
			Name:          d.Name,
			MCNumber:      d.MCNumber,
			ContactNumber: d.ContactNumber,
			Email:         d.Email,
		},
		Company:    c,
		Settlement: s,
	}
}
