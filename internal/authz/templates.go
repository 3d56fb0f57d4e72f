package authz

// allCapabilities returns a set with every flag enabled.
func allCapabilities() Capabilities {
	return Capabilities{
		ViewHotels: true, AddHotels: true, ChangeHotels: true, DeleteHotels: true,
		ViewRooms: true, AddRooms: true, ChangeRooms: true, DeleteRooms: true,
		ViewReservations: true, AddReservations: true, ChangeReservations: true, DeleteReservations: true,
		ViewCheckins: true, AddCheckins: true, ChangeCheckins: true,
		ViewGuests: true, AddGuests: true, ChangeGuests: true, DeleteGuests: true,
		ViewStaff: true, AddStaff: true, ChangeStaff: true, DeleteStaff: true,
		ViewHousekeeping: true, AddHousekeeping: true, ChangeHousekeeping: true,
		ViewMaintenance: true, AddMaintenance: true, ChangeMaintenance: true,
		ViewPOS: true, AddPOS: true, ChangePOS: true,
		ViewInventory: true, AddInventory: true, ChangeInventory: true,
		ViewBilling: true, AddBilling: true, ChangeBilling: true,
		ViewConfiguration: true, ChangeConfiguration: true,
		ViewCompanies: true, AddCompanies: true, ChangeCompanies: true,
	}
}

// roleTemplates maps each role to its canonical capability set. A template
// is a complete Capabilities value: flags not named in a literal are false
// by construction, never unspecified. Built once at init, read-only after.
var roleTemplates = map[Role]Capabilities{
	RoleOwner: allCapabilities(),
	RoleAdmin: allCapabilities(),

	RoleManager: {
		ViewHotels: true, ChangeHotels: true,
		ViewRooms: true, AddRooms: true, ChangeRooms: true, DeleteRooms: true,
		ViewReservations: true, AddReservations: true, ChangeReservations: true, DeleteReservations: true,
		ViewCheckins: true, AddCheckins: true, ChangeCheckins: true,
		ViewGuests: true, AddGuests: true, ChangeGuests: true, DeleteGuests: true,
		ViewStaff: true, AddStaff: true, ChangeStaff: true, DeleteStaff: true,
		ViewHousekeeping: true, AddHousekeeping: true, ChangeHousekeeping: true,
		ViewMaintenance: true, AddMaintenance: true, ChangeMaintenance: true,
		ViewPOS: true, AddPOS: true, ChangePOS: true,
		ViewInventory: true, AddInventory: true, ChangeInventory: true,
		ViewBilling: true, AddBilling: true, ChangeBilling: true,
		ViewConfiguration: true,
		ViewCompanies:     true, AddCompanies: true, ChangeCompanies: true,
	},

	RoleReceptionist: {
		ViewRooms:        true,
		ViewReservations: true, AddReservations: true, ChangeReservations: true,
		ViewCheckins: true, AddCheckins: true, ChangeCheckins: true,
		ViewGuests: true, AddGuests: true, ChangeGuests: true,
		ViewPOS: true, AddPOS: true,
		ViewBilling: true, AddBilling: true,
		ViewCompanies: true,
	},

	RoleStaff: {
		ViewRooms:        true,
		ViewReservations: true,
		ViewCheckins:     true,
		ViewGuests:       true,
		ViewHousekeeping: true,
		ViewMaintenance:  true,
	},

	RoleHousekeeping: {
		ViewRooms:        true,
		ViewHousekeeping: true, AddHousekeeping: true, ChangeHousekeeping: true,
		ViewMaintenance: true, AddMaintenance: true,
	},

	RoleMaintenance: {
		ViewRooms:       true,
		ViewMaintenance: true, AddMaintenance: true, ChangeMaintenance: true,
		ViewHousekeeping: true,
		ViewInventory:    true,
	},

	RoleAccountant: {
		ViewHotels:       true,
		ViewReservations: true,
		ViewPOS:          true,
		ViewInventory:    true, AddInventory: true, ChangeInventory: true,
		ViewBilling: true, AddBilling: true, ChangeBilling: true,
		ViewCompanies: true,
	},
}

// fallbackGrants lists per-role codenames that have no flag column and are
// therefore provisioned only into the group store.
var fallbackGrants = map[Role][]string{
	RoleOwner:        {PermDeletePOS, PermDeleteBilling, PermViewPayment, PermAddPayment, PermViewReport},
	RoleAdmin:        {PermDeletePOS, PermDeleteBilling, PermViewPayment, PermAddPayment, PermViewReport},
	RoleManager:      {PermViewPayment, PermAddPayment, PermViewReport},
	RoleReceptionist: {PermViewPayment, PermAddPayment},
	RoleAccountant:   {PermDeleteBilling, PermViewPayment, PermAddPayment, PermViewReport},
}

// TemplateFor returns the canonical capability set for a role. The boolean
// is false for unknown roles.
func TemplateFor(role Role) (Capabilities, bool) {
	tpl, ok := roleTemplates[role]
	return tpl, ok
}

// ApplyTemplate overwrites every flag in caps with the role's template
// values. This is a full overwrite, not a merge: prior manual edits are
// lost. Unknown roles leave caps untouched and return false.
func ApplyTemplate(caps *Capabilities, role Role) bool {
	tpl, ok := roleTemplates[role]
	if !ok || caps == nil {
		return false
	}
	*caps = tpl
	return true
}

// GroupCodenames returns the codename grant set provisioned into the role's
// group: every codename whose flag the template enables plus the role's
// fallback-only grants. This catalog is deliberately broader than the
// capability map. Unknown roles return ok=false.
func GroupCodenames(role Role) ([]string, bool) {
	tpl, ok := roleTemplates[role]
	if !ok {
		return nil, false
	}
	var codenames []string
	for _, codename := range Codenames {
		flag, mapped := TranslateCodename(codename)
		if !mapped {
			continue
		}
		if enabled, _ := tpl.Flag(flag); enabled {
			codenames = append(codenames, codename)
		}
	}
	codenames = append(codenames, fallbackGrants[role]...)
	return codenames, true
}
