package memory

import (
	"iter"

	"courierbot/internal/core/domain/model/driver"
	"courierbot/internal/core/domain/model/kernel"
)

// DriverRegistry is the set of connected drivers, keyed by id.
//
// The sequence returned by List reads the state when it is ranged over and is
// only valid while the unit of work that produced it is open.
type DriverRegistry struct {
	uow *UnitOfWork
}

func (r *DriverRegistry) Connect(info driver.Info) bool {
	_, known := r.uow.state.drivers[info.ID()]
	r.uow.stage(func(s *State) {
		s.drivers[info.ID()] = info
	})
	return !known
}

func (r *DriverRegistry) Disconnect(id kernel.ActorID) bool {
	if _, known := r.uow.state.drivers[id]; !known {
		return false
	}
	r.uow.stage(func(s *State) {
		delete(s.drivers, id)
	})
	return true
}

func (r *DriverRegistry) IsConnected(id kernel.ActorID) bool {
	_, ok := r.uow.state.drivers[id]
	return ok
}

func (r *DriverRegistry) Get(id kernel.ActorID) (driver.Info, bool) {
	info, ok := r.uow.state.drivers[id]
	return info, ok
}

func (r *DriverRegistry) List() iter.Seq[driver.Info] {
	return func(yield func(driver.Info) bool) {
		if !r.uow.open {
			return
		}
		for _, info := range r.uow.state.drivers {
			if !yield(info) {
				return
			}
		}
	}
}

func (r *DriverRegistry) Count() int {
	return len(r.uow.state.drivers)
}
