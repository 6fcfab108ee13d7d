package models

// Reference kinds a ledger entry can point at.
const (
	RefNone    = ""
	RefPayment = "payment"
	RefListing = "listing"
	RefUser    = "user"
	RefPackage = "package"
)

// Reference ties a ledger entry to the domain object that caused it. A zero
// Reference means the entry stands on its own (manual adjustments).
type Reference struct {
	Kind string `gorm:"column:ref_kind" json:"kind,omitempty"`
	ID   uint   `gorm:"column:ref_id" json:"id,omitempty"`
}

func NoReference() Reference       { return Reference{} }
func PaymentRef(id uint) Reference { return Reference{Kind: RefPayment, ID: id} }
func ListingRef(id uint) Reference { return Reference{Kind: RefListing, ID: id} }
func UserRef(id uint) Reference    { return Reference{Kind: RefUser, ID: id} }
func PackageRef(id uint) Reference { return Reference{Kind: RefPackage, ID: id} }

// Valid reports whether the reference is either absent or a known kind with
// an id set. A kind without an id (or the reverse) is malformed.
func (r Reference) Valid() bool {
	if r.Kind == RefNone {
		return r.ID == 0
	}
	switch r.Kind {
	case RefPayment, RefListing, RefUser, RefPackage:
		return r.ID != 0
	default:
		return false
	}
}
