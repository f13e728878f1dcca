package models

const (
	StatusActive           = "Active"
	StatusInactive         = "Inactive"
	StatusUnderMaintenance = "Under Maintenance"
	StatusDraft            = "Draft"
	StatusUnknown          = "Unknown"
)

// AssetKind selects the asset table an operation targets.
type AssetKind string

const (
	KindRetail AssetKind = "retail"
	KindIT     AssetKind = "it"
	// KindNetwork addresses IT assets of type network.
	KindNetwork AssetKind = "network"
)

func (k AssetKind) Valid() bool {
	switch k {
	case KindRetail, KindIT, KindNetwork:
		return true
	}
	return false
}

// IT asset types.
const (
	AssetTypeCPU     = "cpu"
	AssetTypeCCTV    = "cctv"
	AssetTypeNetwork = "network"
	AssetTypePrinter = "printer"
	AssetTypeOther   = "other"
)

var AssetTypes = []string{AssetTypeCPU, AssetTypeCCTV, AssetTypeNetwork, AssetTypePrinter, AssetTypeOther}

type BulkAction string

const (
	ActionActivate    BulkAction = "activate"
	ActionDeactivate  BulkAction = "deactivate"
	ActionMaintenance BulkAction = "maintenance"
)

// StatusChange is the status and active flag a bulk action applies. A nil
// Active leaves the flag untouched.
type StatusChange struct {
	Status string
	Active *bool
}

func (a BulkAction) Change() (StatusChange, bool) {
	active, inactive := true, false
	switch a {
	case ActionActivate:
		return StatusChange{Status: StatusActive, Active: &active}, true
	case ActionDeactivate:
		return StatusChange{Status: StatusInactive, Active: &inactive}, true
	case ActionMaintenance:
		return StatusChange{Status: StatusUnderMaintenance}, true
	}
	return StatusChange{}, false
}
