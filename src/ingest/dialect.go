package ingest

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"assetserver/src/models"
)

var ErrUnknownDialect = errors.New("unknown sheet dialect")

// Field is a canonical record attribute a sheet column can feed.
type Field string

const (
	FieldOutlet     Field = "outlet"
	FieldAssetID    Field = "asset_id"
	FieldSerial     Field = "serial_number"
	FieldUser       Field = "user"
	FieldItem       Field = "item"
	FieldBrand      Field = "brand"
	FieldModel      Field = "model"
	FieldStatus     Field = "status"
	FieldRemark     Field = "remark"
	FieldAllocation Field = "allocation"
	FieldPowerInput Field = "power_input"

	FieldCPU             Field = "cpu"
	FieldGPU             Field = "gpu"
	FieldMemory          Field = "memory"
	FieldDisk            Field = "disk"
	FieldDiskID          Field = "disk_id"
	FieldMotherboard     Field = "motherboard_model"
	FieldOperatingSystem Field = "operating_system"
	FieldHostname        Field = "hostname"

	FieldNetwork     Field = "network"
	FieldIPAddress   Field = "ip_address"
	FieldMACAddress  Field = "mac_address"
	FieldLocalIP     Field = "local_ip"
	FieldNICSpeed    Field = "nic_speed"
	FieldGPONSN      Field = "gpon_sn"
	FieldWifiType    Field = "wifi_type"
	FieldPowerRating Field = "power_rating"

	FieldPowerAdapter    Field = "power_adapter"
	FieldPort            Field = "port"
	FieldVersion         Field = "version"
	FieldDeviceType      Field = "device_type"
	FieldDeviceModel     Field = "device_model"
	FieldBuild           Field = "build"
	FieldVideoInput      Field = "video_input"
	FieldTotalChannel    Field = "total_channel"
	FieldHDDTotalSpace   Field = "hdd_total_space"
	FieldFirmwareVersion Field = "firmware_version"
	FieldLocation        Field = "location"
	FieldHybrid          Field = "hybrid"
	FieldWIP             Field = "wip"
)

// ItemTemplate builds the item name from a single column, e.g. "CCTV DVR - 3".
type ItemTemplate struct {
	Column   string
	Format   string
	Fallback string
}

// Dialect is a spreadsheet layout: where its header sits, which header feeds
// which field and how gaps are filled. Adding a layout only needs a new value.
type Dialect struct {
	Name      string
	Kind      models.AssetKind
	AssetType string
	// HeaderOffset is the number of rows above the header row.
	HeaderOffset int
	// Columns lists the accepted header names per field, first match wins.
	Columns     map[Field][]string
	Required    []Field
	ForwardFill []Field
	Defaults    map[Field]string
	// DateColumns are tried in order for the purchase date.
	DateColumns []string
	// RemarkPrefix columns lead the remark, ahead of the remark column and
	// unmapped columns.
	RemarkPrefix []string
	Item         *ItemTemplate
}

var NetworkDialect = &Dialect{
	Name:      "network",
	Kind:      models.KindIT,
	AssetType: models.AssetTypeNetwork,
	Columns: map[Field][]string{
		FieldOutlet:      {"Outlet"},
		FieldAssetID:     {"Asset ID"},
		FieldItem:        {"Item"},
		FieldUser:        {"User", "Assigned"},
		FieldIPAddress:   {"IP Address"},
		FieldMACAddress:  {"MAC Address"},
		FieldBrand:       {"Brand"},
		FieldModel:       {"Model"},
		FieldPowerRating: {"Power Rating"},
		FieldWifiType:    {"WiFi_Type", "WiFi Type"},
		FieldGPONSN:      {"GPON SN"},
		FieldSerial:      {"SN", "Serial Number"},
		FieldNetwork:     {"Network"},
		FieldStatus:      {"Status"},
		FieldRemark:      {"Remark"},
	},
	Required: []Field{FieldOutlet},
	Defaults: map[Field]string{
		FieldItem:   "Network Device",
		FieldBrand:  "Unknown",
		FieldModel:  "Unknown",
		FieldStatus: models.StatusDraft,
	},
	DateColumns: []string{"Date Purchase"},
}

var CPUDialect = &Dialect{
	Name:         "cpu",
	Kind:         models.KindIT,
	AssetType:    models.AssetTypeCPU,
	HeaderOffset: 3,
	Columns: map[Field][]string{
		FieldOutlet:          {"Outlet"},
		FieldAssetID:         {"Asset ID"},
		FieldItem:            {"TYPE", "Item"},
		FieldUser:            {"Assigned", "User"},
		FieldHostname:        {"HOSTNAME"},
		FieldSerial:          {"SerialNumber"},
		FieldMotherboard:     {"Motherboard Model"},
		FieldOperatingSystem: {"Operating System"},
		FieldCPU:             {"CPU"},
		FieldMemory:          {"Memory"},
		FieldGPU:             {"GPU"},
		FieldIPAddress:       {"IP Address"},
		FieldMACAddress:      {"MAC Address"},
		FieldDisk:            {"Disk"},
		FieldDiskID:          {"Disk ID"},
		FieldBrand:           {"Brand"},
		FieldModel:           {"Model"},
		FieldStatus:          {"Status"},
		FieldRemark:          {"Remark"},
	},
	Required: []Field{FieldOutlet},
	Defaults: map[Field]string{
		FieldItem:   "CPU",
		FieldStatus: models.StatusDraft,
	},
	DateColumns: []string{"Date Purchase"},
}

var RetailDialect = &Dialect{
	Name:         "retail",
	Kind:         models.KindRetail,
	HeaderOffset: 2,
	Columns: map[Field][]string{
		FieldOutlet:     {"Outlet"},
		FieldAssetID:    {"Asset ID"},
		FieldUser:       {"User"},
		FieldItem:       {"Item"},
		FieldBrand:      {"Brand"},
		FieldModel:      {"Model"},
		FieldPowerInput: {"Power Input"},
		FieldSerial:     {"SN"},
		FieldAllocation: {"Allocation"},
		FieldStatus:     {"Status"},
		FieldRemark:     {"Remark"},
	},
	Required: []Field{FieldOutlet, FieldSerial},
	Defaults: map[Field]string{
		FieldModel:  "Unknown",
		FieldStatus: models.StatusDraft,
	},
	DateColumns: []string{"Date Purchase"},
}

var CCTVDialect = &Dialect{
	Name:         "cctv",
	Kind:         models.KindIT,
	AssetType:    models.AssetTypeCCTV,
	HeaderOffset: 1,
	Columns: map[Field][]string{
		FieldOutlet:        {"Outlet"},
		FieldAssetID:       {"Asset ID"},
		FieldSerial:        {"Serial Number"},
		FieldLocalIP:       {"Local IP"},
		FieldMACAddress:    {"MAC Address"},
		FieldVersion:       {"Version"},
		FieldDeviceType:    {"Device Type"},
		FieldModel:         {"Device Model"},
		FieldDeviceModel:   {"Device Model"},
		FieldBuild:         {"Build"},
		FieldPowerAdapter:  {"Power Adapter/Cord"},
		FieldVideoInput:    {"Video Input"},
		FieldTotalChannel:  {"Total Channel"},
		FieldNICSpeed:      {"NIC Speed"},
		FieldHDDTotalSpace: {"HDD Total Space"},
		FieldHybrid:        {"Hybrid"},
		FieldStatus:        {"WIP"},
		FieldWIP:           {"WIP"},
		FieldLocation:      {"Location"},
		FieldPort:          {"Port"},
	},
	Required:    []Field{FieldOutlet, FieldSerial},
	ForwardFill: []Field{FieldOutlet},
	Defaults: map[Field]string{
		FieldModel:  "Unknown",
		FieldStatus: models.StatusUnknown,
	},
	DateColumns:  []string{"Date Purchase", "Build"},
	RemarkPrefix: []string{"P2P QR"},
	Item: &ItemTemplate{
		Column:   "DVR",
		Format:   "CCTV DVR - %s",
		Fallback: "CCTV DVR",
	},
}

// Registry resolves dialects by name.
type Registry map[string]*Dialect

func DefaultRegistry() Registry {
	return NewRegistry(NetworkDialect, CPUDialect, RetailDialect, CCTVDialect)
}

func NewRegistry(dialects ...*Dialect) Registry {
	r := make(Registry, len(dialects))
	for _, d := range dialects {
		r[d.Name] = d
	}
	return r
}

func (r Registry) Get(name string) (*Dialect, error) {
	d, ok := r[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
	return d, nil
}

func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// headerKey makes header lookups insensitive to case, spacing and underscores.
func headerKey(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(header) {
		switch r {
		case ' ', '\t', '\n', '\r', '_', '\ufeff':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// binding ties a dialect to the concrete columns of one sheet.
type binding struct {
	fields       map[Field]string
	dates        []string
	remarkPrefix []string
	itemColumn   string
	recognized   map[string]bool
}

func (d *Dialect) bind(columns []string) *binding {
	byKey := make(map[string]string, len(columns))
	for _, c := range columns {
		k := headerKey(c)
		if _, ok := byKey[k]; !ok {
			byKey[k] = c
		}
	}

	b := &binding{
		fields:     make(map[Field]string, len(d.Columns)),
		recognized: make(map[string]bool),
	}
	lookup := func(header string) (string, bool) {
		c, ok := byKey[headerKey(header)]
		if ok {
			b.recognized[c] = true
		}
		return c, ok
	}

	for field, headers := range d.Columns {
		for _, h := range headers {
			if c, ok := lookup(h); ok {
				b.fields[field] = c
				break
			}
		}
	}
	for _, h := range d.DateColumns {
		if c, ok := lookup(h); ok {
			b.dates = append(b.dates, c)
		}
	}
	for _, h := range d.RemarkPrefix {
		if c, ok := lookup(h); ok {
			b.remarkPrefix = append(b.remarkPrefix, c)
		}
	}
	if d.Item != nil {
		if c, ok := lookup(d.Item.Column); ok {
			b.itemColumn = c
		}
	}
	return b
}
