package authz

// Capability flag names as stored on the identity record. The set is fixed;
// new flags require a schema change, a template change, and an entry here.
const (
	FlagViewHotels   = "can_view_hotels"
	FlagAddHotels    = "can_add_hotels"
	FlagChangeHotels = "can_change_hotels"
	FlagDeleteHotels = "can_delete_hotels"

	FlagViewRooms   = "can_view_rooms"
	FlagAddRooms    = "can_add_rooms"
	FlagChangeRooms = "can_change_rooms"
	FlagDeleteRooms = "can_delete_rooms"

	FlagViewReservations   = "can_view_reservations"
	FlagAddReservations    = "can_add_reservations"
	FlagChangeReservations = "can_change_reservations"
	FlagDeleteReservations = "can_delete_reservations"

	FlagViewCheckins   = "can_view_checkins"
	FlagAddCheckins    = "can_add_checkins"
	FlagChangeCheckins = "can_change_checkins"

	FlagViewGuests   = "can_view_guests"
	FlagAddGuests    = "can_add_guests"
	FlagChangeGuests = "can_change_guests"
	FlagDeleteGuests = "can_delete_guests"

	FlagViewStaff   = "can_view_staff"
	FlagAddStaff    = "can_add_staff"
	FlagChangeStaff = "can_change_staff"
	FlagDeleteStaff = "can_delete_staff"

	FlagViewHousekeeping   = "can_view_housekeeping"
	FlagAddHousekeeping    = "can_add_housekeeping"
	FlagChangeHousekeeping = "can_change_housekeeping"

	FlagViewMaintenance   = "can_view_maintenance"
	FlagAddMaintenance    = "can_add_maintenance"
	FlagChangeMaintenance = "can_change_maintenance"

	FlagViewPOS   = "can_view_pos"
	FlagAddPOS    = "can_add_pos"
	FlagChangePOS = "can_change_pos"

	FlagViewInventory   = "can_view_inventory"
	FlagAddInventory    = "can_add_inventory"
	FlagChangeInventory = "can_change_inventory"

	FlagViewBilling   = "can_view_billing"
	FlagAddBilling    = "can_add_billing"
	FlagChangeBilling = "can_change_billing"

	FlagViewConfiguration   = "can_view_configuration"
	FlagChangeConfiguration = "can_change_configuration"

	FlagViewCompanies   = "can_view_companies"
	FlagAddCompanies    = "can_add_companies"
	FlagChangeCompanies = "can_change_companies"
)

// Capabilities holds every per-identity boolean capability flag, grouped by
// domain area. Flags are seeded from a role template but may diverge after
// per-identity edits; a template reapply overwrites the whole struct.
type Capabilities struct {
	// Hotel management
	ViewHotels   bool
	AddHotels    bool
	ChangeHotels bool
	DeleteHotels bool

	// Rooms
	ViewRooms   bool
	AddRooms    bool
	ChangeRooms bool
	DeleteRooms bool

	// Reservations
	ViewReservations   bool
	AddReservations    bool
	ChangeReservations bool
	DeleteReservations bool

	// Check-ins
	ViewCheckins   bool
	AddCheckins    bool
	ChangeCheckins bool

	// Guests
	ViewGuests   bool
	AddGuests    bool
	ChangeGuests bool
	DeleteGuests bool

	// Staff
	ViewStaff   bool
	AddStaff    bool
	ChangeStaff bool
	DeleteStaff bool

	// Housekeeping
	ViewHousekeeping   bool
	AddHousekeeping    bool
	ChangeHousekeeping bool

	// Maintenance
	ViewMaintenance   bool
	AddMaintenance    bool
	ChangeMaintenance bool

	// Point of sale
	ViewPOS   bool
	AddPOS    bool
	ChangePOS bool

	// Inventory
	ViewInventory   bool
	AddInventory    bool
	ChangeInventory bool

	// Billing
	ViewBilling   bool
	AddBilling    bool
	ChangeBilling bool

	// Configuration
	ViewConfiguration   bool
	ChangeConfiguration bool

	// Companies
	ViewCompanies   bool
	AddCompanies    bool
	ChangeCompanies bool
}

// FlagNames lists every capability flag name. Iteration order matches the
// struct layout.
var FlagNames = []string{
	FlagViewHotels, FlagAddHotels, FlagChangeHotels, FlagDeleteHotels,
	FlagViewRooms, FlagAddRooms, FlagChangeRooms, FlagDeleteRooms,
	FlagViewReservations, FlagAddReservations, FlagChangeReservations, FlagDeleteReservations,
	FlagViewCheckins, FlagAddCheckins, FlagChangeCheckins,
	FlagViewGuests, FlagAddGuests, FlagChangeGuests, FlagDeleteGuests,
	FlagViewStaff, FlagAddStaff, FlagChangeStaff, FlagDeleteStaff,
	FlagViewHousekeeping, FlagAddHousekeeping, FlagChangeHousekeeping,
	FlagViewMaintenance, FlagAddMaintenance, FlagChangeMaintenance,
	FlagViewPOS, FlagAddPOS, FlagChangePOS,
	FlagViewInventory, FlagAddInventory, FlagChangeInventory,
	FlagViewBilling, FlagAddBilling, FlagChangeBilling,
	FlagViewConfiguration, FlagChangeConfiguration,
	FlagViewCompanies, FlagAddCompanies, FlagChangeCompanies,
}

// Flag returns the value of a capability flag by its stored name. The second
// result is false when the name is not a known flag; callers must treat that
// as a deny, not an error.
func (c Capabilities) Flag(name string) (value, known bool) {
	switch name {
	case FlagViewHotels:
		return c.ViewHotels, true
	case FlagAddHotels:
		return c.AddHotels, true
	case FlagChangeHotels:
		return c.ChangeHotels, true
	case FlagDeleteHotels:
		return c.DeleteHotels, true
	case FlagViewRooms:
		return c.ViewRooms, true
	case FlagAddRooms:
		return c.AddRooms, true
	case FlagChangeRooms:
		return c.ChangeRooms, true
	case FlagDeleteRooms:
		return c.DeleteRooms, true
	case FlagViewReservations:
		return c.ViewReservations, true
	case FlagAddReservations:
		return c.AddReservations, true
	case FlagChangeReservations:
		return c.ChangeReservations, true
	case FlagDeleteReservations:
		return c.DeleteReservations, true
	case FlagViewCheckins:
		return c.ViewCheckins, true
	case FlagAddCheckins:
		return c.AddCheckins, true
	case FlagChangeCheckins:
		return c.ChangeCheckins, true
	case FlagViewGuests:
		return c.ViewGuests, true
	case FlagAddGuests:
		return c.AddGuests, true
	case FlagChangeGuests:
		return c.ChangeGuests, true
	case FlagDeleteGuests:
		return c.DeleteGuests, true
	case FlagViewStaff:
		return c.ViewStaff, true
	case FlagAddStaff:
		return c.AddStaff, true
	case FlagChangeStaff:
		return c.ChangeStaff, true
	case FlagDeleteStaff:
		return c.DeleteStaff, true
	case FlagViewHousekeeping:
		return c.ViewHousekeeping, true
	case FlagAddHousekeeping:
		return c.AddHousekeeping, true
	case FlagChangeHousekeeping:
		return c.ChangeHousekeeping, true
	case FlagViewMaintenance:
		return c.ViewMaintenance, true
	case FlagAddMaintenance:
		return c.AddMaintenance, true
	case FlagChangeMaintenance:
		return c.ChangeMaintenance, true
	case FlagViewPOS:
		return c.ViewPOS, true
	case FlagAddPOS:
		return c.AddPOS, true
	case FlagChangePOS:
		return c.ChangePOS, true
	case FlagViewInventory:
		return c.ViewInventory, true
	case FlagAddInventory:
		return c.AddInventory, true
	case FlagChangeInventory:
		return c.ChangeInventory, true
	case FlagViewBilling:
		return c.ViewBilling, true
	case FlagAddBilling:
		return c.AddBilling, true
	case FlagChangeBilling:
		return c.ChangeBilling, true
	case FlagViewConfiguration:
		return c.ViewConfiguration, true
	case FlagChangeConfiguration:
		return c.ChangeConfiguration, true
	case FlagViewCompanies:
		return c.ViewCompanies, true
	case FlagAddCompanies:
		return c.AddCompanies, true
	case FlagChangeCompanies:
		return c.ChangeCompanies, true
	}
	return false, false
}
