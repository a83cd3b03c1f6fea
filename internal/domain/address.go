package domain

// Address represents a user's postal address
type Address struct {
	ID           int64
	UserID       int64
	AddressLine1 string
	AddressLine2 *string
	City         string
	State        string
	PostalCode   string
	Country      string
	IsPrimary    bool
}

// PrimaryOrFirst returns the primary address, or the first one when none is flagged
func PrimaryOrFirst(addresses []Address) (Address, bool) {
	for _, a := range addresses {
		if a.IsPrimary {
			return a, true
		}
	}
	if len(addresses) > 0 {
		return addresses[0], true
	}
	return Address{}, false
}
