package services

import (
	"testing"

	"hotel-billing/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchServices_AppliesPriceOverrides(t *testing.T) {
	f := newTestFixture(t)
	catalog := NewCatalogService(f.DB)

	laundry := models.HotelService{Name: "Laundry", Category: "Housekeeping", Price: 200, IsActive: true}
	require.NoError(t, f.DB.Create(&laundry).Error)
	require.NoError(t, f.DB.Create(&models.BranchServicePrice{
		BranchID: f.Booking.BranchID, ServiceID: laundry.ID, Price: 250, IsActive: true,
	}).Error)

	servicesList, err := catalog.BranchServices(f.Booking.BranchID)
	require.NoError(t, err)
	require.Len(t, servicesList, 2)

	byName := map[string]float64{}
	for _, svc := range servicesList {
		byName[svc.Name] = svc.Price
	}
	assert.Equal(t, 250.0, byName["Laundry"])           // override wins
	assert.Equal(t, 1500.0, byName["Airport Transfer"]) // catalog price stands
}

func TestActiveTaxes_DeterministicNameOrder(t *testing.T) {
	f := newTestFixture(t)
	catalog := NewCatalogService(f.DB)

	require.NoError(t, f.DB.Create(&models.TaxRule{
		BranchID: f.Booking.BranchID, Name: "City Levy", TaxType: models.TaxTypeOther,
		Rate: 120, IsPercentage: false, IsActive: true,
	}).Error)
	require.NoError(t, f.DB.Create(&models.TaxRule{
		BranchID: f.Booking.BranchID, Name: "Dormant", TaxType: models.TaxTypeOther,
		Rate: 1, IsPercentage: true, IsActive: false,
	}).Error)

	taxes, err := catalog.ActiveTaxes(f.Booking.BranchID)
	require.NoError(t, err)
	require.Len(t, taxes, 2)
	assert.Equal(t, "City Levy", taxes[0].Name)
	assert.Equal(t, "VAT", taxes[1].Name)
}
