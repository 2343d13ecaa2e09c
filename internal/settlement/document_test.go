package settlement

import (
	"testing"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/models"
)

func TestBuildDocumentSnapshotsIdentity(t *testing.T) {
	driver := models.Driver{ID: 42, Name: "Pat Jones", MCNumber: "MC-7788", Email: "pat@example.com"}
	company := Company{Name: "Drive Now Logistics", BankName: "First Bank"}
	s := Compute([]models.Load{{ID: 1, Amount: "100", Miles: "50"}}, 10)

	doc := BuildDocument(driver, company, s)

	if doc.SettlementID != "DRV-42" {
		t.Errorf("expected settlement id DRV-42, got %q", doc.SettlementID)
	}
	if doc.Driver.Name != "Pat Jones" || doc.Driver.MCNumber != "MC-7788" {
		t.Errorf("driver snapshot wrong: %+v", doc.Driver)
	}
	if doc.Company.Name != "Drive Now Logistics" {
		t.Errorf("company snapshot wrong: %+v", doc.Company)
	}
	if doc.IssueDate == "" {
		t.Error("issue date not set")
	}
	if doc.GrossDisplay != "$100.00" {
		t.Errorf("embedded settlement missing, gross=%q", doc.GrossDisplay)
	}
}
