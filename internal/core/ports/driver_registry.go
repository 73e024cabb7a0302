package ports

import (
	"iter"

	"courierbot/internal/core/domain/model/driver"
	"courierbot/internal/core/domain/model/kernel"
)

// DriverRegistry is the set of drivers currently available for new orders.
// Presence is the only availability signal. Every operation is total.
type DriverRegistry interface {
	// Connect adds or refreshes an entry and reports whether the driver was new.
	Connect(info driver.Info) bool

	// Disconnect removes an entry and reports whether one was removed.
	Disconnect(id kernel.ActorID) bool

	IsConnected(id kernel.ActorID) bool

	Get(id kernel.ActorID) (driver.Info, bool)

	// List returns a lazy sequence over the entries present when it is ranged over.
	// The sequence can be ranged over again; order is unspecified.
	List() iter.Seq[driver.Info]

	Count() int
}
