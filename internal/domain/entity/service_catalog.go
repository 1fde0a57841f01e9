// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/shopspring/decimal"
)

// ServiceKey identifies a billable service in the catalog.
type ServiceKey string

const (
	ServiceOrders       ServiceKey = "orders"
	ServiceUsers        ServiceKey = "users"
	ServiceWarehouse    ServiceKey = "warehouse"
	ServiceDarkstore    ServiceKey = "darkstore"
	ServiceStore        ServiceKey = "store"
	ServiceSellerPanel  ServiceKey = "seller_panel"
	ServiceFBA          ServiceKey = "fba"
	ServiceSKU          ServiceKey = "sku"
	ServiceReco         ServiceKey = "reco"
	ServiceDisputeMgmt  ServiceKey = "dispute_mgmt"
	ServiceListings     ServiceKey = "listings"
	ServiceClientPortal ServiceKey = "client_portal"

	ServiceUATServer        ServiceKey = "uat_server"
	ServicePlatformFees     ServiceKey = "platform_fees"
	ServiceDedicatedSupport ServiceKey = "dedicated_support"
)

// ServiceType distinguishes usage-priced services from flat monthly fees.
type ServiceType string

const (
	ServiceTypeVariable ServiceType = "variable"
	ServiceTypeFixed    ServiceType = "fixed"
)

// ServiceDefinition describes one entry of the service catalog.
type ServiceDefinition struct {
	Key  ServiceKey
	Code string
	Name string
	Unit string
	Type ServiceType
}

// serviceCatalog is ordered; invoice line items follow this order.
var serviceCatalog = []ServiceDefinition{
	{Key: ServiceOrders, Code: "O", Name: "Orders", Unit: "per order", Type: ServiceTypeVariable},
	{Key: ServiceUsers, Code: "U", Name: "Users", Unit: "per user", Type: ServiceTypeVariable},
	{Key: ServiceWarehouse, Code: "WH", Name: "Warehouse", Unit: "per warehouse", Type: ServiceTypeVariable},
	{Key: ServiceDarkstore, Code: "DS", Name: "Darkstore", Unit: "per darkstore", Type: ServiceTypeVariable},
	{Key: ServiceStore, Code: "S", Name: "Store", Unit: "per store", Type: ServiceTypeVariable},
	{Key: ServiceSellerPanel, Code: "SP", Name: "Seller Panel", Unit: "per panel", Type: ServiceTypeVariable},
	{Key: ServiceFBA, Code: "FBA", Name: "FBA", Unit: "per transaction", Type: ServiceTypeVariable},
	{Key: ServiceSKU, Code: "SKU", Name: "SKU Management", Unit: "per SKU", Type: ServiceTypeVariable},
	{Key: ServiceReco, Code: "RECO", Name: "Reconciliation", Unit: "per reco", Type: ServiceTypeVariable},
	{Key: ServiceDisputeMgmt, Code: "DM", Name: "Dispute Management", Unit: "per dispute", Type: ServiceTypeVariable},
	{Key: ServiceListings, Code: "L", Name: "Listings", Unit: "per listing", Type: ServiceTypeVariable},
	{Key: ServiceClientPortal, Code: "CP", Name: "Client Portal", Unit: "per access", Type: ServiceTypeVariable},
	{Key: ServiceUATServer, Code: "UAT", Name: "UAT Server", Unit: "monthly", Type: ServiceTypeFixed},
	{Key: ServicePlatformFees, Code: "PF", Name: "Platform Fees", Unit: "monthly", Type: ServiceTypeFixed},
	{Key: ServiceDedicatedSupport, Code: "DS_FIXED", Name: "Dedicated Support", Unit: "monthly", Type: ServiceTypeFixed},
}

// Services returns the full service catalog in billing order.
func Services() []ServiceDefinition {
	out := make([]ServiceDefinition, len(serviceCatalog))
	copy(out, serviceCatalog)
	return out
}

// LookupService returns the catalog entry for a key.
func LookupService(key string) (ServiceDefinition, bool) {
	for _, def := range serviceCatalog {
		if string(def.Key) == key {
			return def, true
		}
	}
	return ServiceDefinition{}, false
}

// IsVariableService reports whether key is a usage-priced catalog service.
func IsVariableService(key string) bool {
	def, ok := LookupService(key)
	return ok && def.Type == ServiceTypeVariable
}

// BundleKey identifies a product bundle used for ROI attribution.
type BundleKey string

// BundleDefinition describes a product bundle and its ROI weight.
// When BaseFee is set, ROIWeight is a flat amount per invoice instead of a percentage.
type BundleDefinition struct {
	Key        BundleKey
	Name       string
	Components []ServiceKey
	ROIWeight  decimal.Decimal
	BaseFee    bool
}

var bundleCatalog = []BundleDefinition{
	{Key: "oms", Name: "OMS", Components: []ServiceKey{ServiceOrders, ServiceUsers}, ROIWeight: decimal.NewFromInt(50)},
	{Key: "wms", Name: "WMS", Components: []ServiceKey{ServiceWarehouse}, ROIWeight: decimal.NewFromInt(50)},
	{Key: "reco", Name: "Reconciliation", Components: []ServiceKey{ServiceReco}, ROIWeight: decimal.NewFromInt(38)},
	{Key: "pf_fees", Name: "Platform Fees", Components: []ServiceKey{ServicePlatformFees}, ROIWeight: decimal.NewFromInt(40)},
	{Key: "seller_panel", Name: "Seller Panel", Components: []ServiceKey{ServiceSellerPanel}, ROIWeight: decimal.NewFromInt(50)},
	{Key: "pim", Name: "PIM", Components: []ServiceKey{ServiceListings, ServiceSKU}, ROIWeight: decimal.NewFromInt(10)},
	{Key: "dm", Name: "Dispute Management", Components: []ServiceKey{ServiceDisputeMgmt}, ROIWeight: decimal.NewFromInt(39)},
	{Key: "oms_wms", Name: "OMS + WMS", Components: []ServiceKey{ServiceOrders, ServiceUsers, ServiceWarehouse}, ROIWeight: decimal.NewFromInt(50)},
	{Key: "oms_wms_reco", Name: "OMS + WMS + Reco", Components: []ServiceKey{ServiceOrders, ServiceUsers, ServiceWarehouse, ServiceReco}, ROIWeight: decimal.NewFromInt(50)},
	{Key: "oms_wms_pf", Name: "OMS + WMS + Platform", Components: []ServiceKey{ServiceOrders, ServiceUsers, ServiceWarehouse, ServicePlatformFees}, ROIWeight: decimal.NewFromInt(20000), BaseFee: true},
}

// Bundles returns the bundle catalog.
func Bundles() []BundleDefinition {
	out := make([]BundleDefinition, len(bundleCatalog))
	copy(out, bundleCatalog)
	return out
}

// LookupBundle returns the catalog entry for a bundle key.
func LookupBundle(key string) (BundleDefinition, bool) {
	for _, def := range bundleCatalog {
		if string(def.Key) == key {
			return def, true
		}
	}
	return BundleDefinition{}, false
}

// LookupBundleByName returns the catalog entry whose display name matches.
func LookupBundleByName(name string) (BundleDefinition, bool) {
	for _, def := range bundleCatalog {
		if def.Name == name {
			return def, true
		}
	}
	return BundleDefinition{}, false
}

// Includes reports whether the bundle attributes the given service.
func (b BundleDefinition) Includes(service ServiceKey) bool {
	for _, c := range b.Components {
		if c == service {
			return true
		}
	}
	return false
}

// WeightedROI converts bundle revenue into the weighted return metric.
func (b BundleDefinition) WeightedROI(revenue decimal.Decimal, invoiceCount int) decimal.Decimal {
	if b.BaseFee {
		return b.ROIWeight.Mul(decimal.NewFromInt(int64(invoiceCount)))
	}
	return revenue.Mul(b.ROIWeight).Div(decimal.NewFromInt(100))
}
