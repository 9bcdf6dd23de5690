package domain

// Identity is the party making a booking: either a registered customer or a
// guest identified by submitted contact fields. Constructors keep the two
// cases mutually exclusive.
type Identity struct {
	customerID int64
	guest      *GuestContact
}

type GuestContact struct {
	Email string
	Name  string
	Phone string
}

func RegisteredIdentity(customerID int64) Identity {
	return Identity{customerID: customerID}
}

func GuestIdentity(email, name, phone string) Identity {
	return Identity{guest: &GuestContact{Email: email, Name: name, Phone: phone}}
}

func (i Identity) IsRegistered() bool { return i.customerID != 0 }

func (i Identity) IsGuest() bool { return i.guest != nil }

func (i Identity) CustomerID() int64 { return i.customerID }

func (i Identity) Guest() *GuestContact { return i.guest }
