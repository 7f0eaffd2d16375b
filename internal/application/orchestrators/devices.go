package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"gymadmin/internal/domain/device"
)

// DeviceStoreForAdmin defines the store interface needed by device management.
type DeviceStoreForAdmin interface {
	GetByID(ctx context.Context, id string) (device.Device, error)
	Save(ctx context.Context, d device.Device) error
	Delete(ctx context.Context, id string) error
}

// SaveDeviceInput carries input for creating or updating a check-in device.
type SaveDeviceInput struct {
	DeviceID   string // empty when creating
	Name       string
	DeviceType string
	Location   string
	IsActive   bool
}

// SaveDeviceDeps holds dependencies for SaveDevice.
type SaveDeviceDeps struct {
	DeviceStore DeviceStoreForAdmin
	NewID       func() string
}

// ExecuteSaveDevice creates a new device or updates an existing one.
// PRE: Input passes domain validation
// POST: Device row reflects the input; LastSync is preserved on update
func ExecuteSaveDevice(ctx context.Context, input SaveDeviceInput, deps SaveDeviceDeps) (device.Device, error) {
	d := device.Device{
		ID:         input.DeviceID,
		Name:       input.Name,
		DeviceType: input.DeviceType,
		Location:   input.Location,
		IsActive:   input.IsActive,
	}

	event := "device_updated"
	if d.ID == "" {
		d.ID = deps.NewID()
		event = "device_created"
	} else {
		existing, err := deps.DeviceStore.GetByID(ctx, d.ID)
		if err != nil {
			return device.Device{}, fmt.Errorf("device not found: %w", err)
		}
		d.LastSync = existing.LastSync
	}

	if err := d.Validate(); err != nil {
		return device.Device{}, err
	}
	if err := deps.DeviceStore.Save(ctx, d); err != nil {
		return device.Device{}, fmt.Errorf("failed to save device: %w", err)
	}

	slog.Info("device_event", "event", event, "device_id", d.ID, "name", d.Name, "type", d.DeviceType)
	return d, nil
}
