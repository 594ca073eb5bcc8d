package vehicle

import "dispatch/internal/core/domain/model/kernel"

// Cargo is one loaded parcel together with the address it is headed to.
type Cargo struct {
	ParcelID int
	Address  kernel.Address
}
