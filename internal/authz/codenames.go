package authz

// Permission codenames form the abstract vocabulary guards are written
// against, independent of how a grant is stored. Most codenames translate
// 1:1 to a boolean capability flag; the rest (payments, reports, and a few
// delete verbs) resolve only through the group/permission store.
const (
	PermViewHotel   = "view_hotel"
	PermAddHotel    = "add_hotel"
	PermChangeHotel = "change_hotel"
	PermDeleteHotel = "delete_hotel"

	PermViewRoom   = "view_room"
	PermAddRoom    = "add_room"
	PermChangeRoom = "change_room"
	PermDeleteRoom = "delete_room"

	PermViewReservation   = "view_reservation"
	PermAddReservation    = "add_reservation"
	PermChangeReservation = "change_reservation"
	PermDeleteReservation = "delete_reservation"

	// No delete_checkin: check-in records are immutable once closed.
	PermViewCheckin   = "view_checkin"
	PermAddCheckin    = "add_checkin"
	PermChangeCheckin = "change_checkin"

	PermViewGuest   = "view_guest"
	PermAddGuest    = "add_guest"
	PermChangeGuest = "change_guest"
	PermDeleteGuest = "delete_guest"

	PermViewStaff   = "view_staff"
	PermAddStaff    = "add_staff"
	PermChangeStaff = "change_staff"
	PermDeleteStaff = "delete_staff"

	PermViewHousekeeping   = "view_housekeeping"
	PermAddHousekeeping    = "add_housekeeping"
	PermChangeHousekeeping = "change_housekeeping"

	PermViewMaintenance   = "view_maintenance"
	PermAddMaintenance    = "add_maintenance"
	PermChangeMaintenance = "change_maintenance"

	PermViewPOS   = "view_pos"
	PermAddPOS    = "add_pos"
	PermChangePOS = "change_pos"
	// delete_pos has no flag column; group-store only.
	PermDeletePOS = "delete_pos"

	PermViewInventory   = "view_inventory"
	PermAddInventory    = "add_inventory"
	PermChangeInventory = "change_inventory"

	PermViewBilling   = "view_billing"
	PermAddBilling    = "add_billing"
	PermChangeBilling = "change_billing"
	// delete_billing has no flag column; group-store only.
	PermDeleteBilling = "delete_billing"

	// Payments and reports never grew flag columns; group-store only.
	PermViewPayment = "view_payment"
	PermAddPayment  = "add_payment"
	PermViewReport  = "view_report"

	PermViewConfiguration   = "view_configuration"
	PermChangeConfiguration = "change_configuration"

	PermViewCompany   = "view_company"
	PermAddCompany    = "add_company"
	PermChangeCompany = "change_company"
)

// capabilityMap translates a codename to the capability flag that backs it.
// Intentionally partial: codenames absent here fall through to the group
// store, they are not errors.
var capabilityMap = map[string]string{
	PermViewHotel:   FlagViewHotels,
	PermAddHotel:    FlagAddHotels,
	PermChangeHotel: FlagChangeHotels,
	PermDeleteHotel: FlagDeleteHotels,

	PermViewRoom:   FlagViewRooms,
	PermAddRoom:    FlagAddRooms,
	PermChangeRoom: FlagChangeRooms,
	PermDeleteRoom: FlagDeleteRooms,

	PermViewReservation:   FlagViewReservations,
	PermAddReservation:    FlagAddReservations,
	PermChangeReservation: FlagChangeReservations,
	PermDeleteReservation: FlagDeleteReservations,

	PermViewCheckin:   FlagViewCheckins,
	PermAddCheckin:    FlagAddCheckins,
	PermChangeCheckin: FlagChangeCheckins,

	PermViewGuest:   FlagViewGuests,
	PermAddGuest:    FlagAddGuests,
	PermChangeGuest: FlagChangeGuests,
	PermDeleteGuest: FlagDeleteGuests,

	PermViewStaff:   FlagViewStaff,
	PermAddStaff:    FlagAddStaff,
	PermChangeStaff: FlagChangeStaff,
	PermDeleteStaff: FlagDeleteStaff,

	PermViewHousekeeping:   FlagViewHousekeeping,
	PermAddHousekeeping:    FlagAddHousekeeping,
	PermChangeHousekeeping: FlagChangeHousekeeping,

	PermViewMaintenance:   FlagViewMaintenance,
	PermAddMaintenance:    FlagAddMaintenance,
	PermChangeMaintenance: FlagChangeMaintenance,

	PermViewPOS:   FlagViewPOS,
	PermAddPOS:    FlagAddPOS,
	PermChangePOS: FlagChangePOS,

	PermViewInventory:   FlagViewInventory,
	PermAddInventory:    FlagAddInventory,
	PermChangeInventory: FlagChangeInventory,

	PermViewBilling:   FlagViewBilling,
	PermAddBilling:    FlagAddBilling,
	PermChangeBilling: FlagChangeBilling,

	PermViewConfiguration:   FlagViewConfiguration,
	PermChangeConfiguration: FlagChangeConfiguration,

	PermViewCompany:   FlagViewCompanies,
	PermAddCompany:    FlagAddCompanies,
	PermChangeCompany: FlagChangeCompanies,
}

// Codenames lists the full permission vocabulary, mapped and unmapped alike.
var Codenames = []string{
	PermViewHotel, PermAddHotel, PermChangeHotel, PermDeleteHotel,
	PermViewRoom, PermAddRoom, PermChangeRoom, PermDeleteRoom,
	PermViewReservation, PermAddReservation, PermChangeReservation, PermDeleteReservation,
	PermViewCheckin, PermAddCheckin, PermChangeCheckin,
	PermViewGuest, PermAddGuest, PermChangeGuest, PermDeleteGuest,
	PermViewStaff, PermAddStaff, PermChangeStaff, PermDeleteStaff,
	PermViewHousekeeping, PermAddHousekeeping, PermChangeHousekeeping,
	PermViewMaintenance, PermAddMaintenance, PermChangeMaintenance,
	PermViewPOS, PermAddPOS, PermChangePOS, PermDeletePOS,
	PermViewInventory, PermAddInventory, PermChangeInventory,
	PermViewBilling, PermAddBilling, PermChangeBilling, PermDeleteBilling,
	PermViewPayment, PermAddPayment, PermViewReport,
	PermViewConfiguration, PermChangeConfiguration,
	PermViewCompany, PermAddCompany, PermChangeCompany,
}

// TranslateCodename maps a codename to the flag that stores it. The second
// result is false when the codename has no flag equivalent and must be
// resolved through the group store instead.
func TranslateCodename(codename string) (flag string, ok bool) {
	flag, ok = capabilityMap[codename]
	return flag, ok
}
