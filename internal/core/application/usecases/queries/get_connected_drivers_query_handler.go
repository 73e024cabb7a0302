package queries

import (
	"context"
	"slices"
	"strings"

	"courierbot/internal/core/domain/model/driver"
)

// GetConnectedDriversQueryHandler snapshots the driver registry.
type GetConnectedDriversQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetConnectedDriversQueryHandler(uowFactory ReadUoWFactory) GetConnectedDriversQueryHandler {
	return GetConnectedDriversQueryHandler{uowFactory: uowFactory}
}

// Handle returns the connected drivers sorted by id.
func (h GetConnectedDriversQueryHandler) Handle(ctx context.Context, query GetConnectedDriversQuery) ([]driver.Info, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var drivers []driver.Info
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		drivers = slices.SortedFunc(uow.DriverRegistry().List(), func(a, b driver.Info) int {
			return strings.Compare(a.ID().String(), b.ID().String())
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if drivers == nil {
		drivers = []driver.Info{}
	}
	return drivers, nil
}
