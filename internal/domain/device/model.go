package device

import (
	"errors"
	"strings"
	"time"
)

// Device type constants
const (
	TypeBiometric = "biometric"
	TypeKeypad    = "keypad"
)

// ValidTypes contains all valid device type values.
var ValidTypes = []string{TypeBiometric, TypeKeypad}

// Domain errors
var (
	ErrEmptyName   = errors.New("device name cannot be empty")
	ErrInvalidType = errors.New("device type must be 'biometric' or 'keypad'")
)

// Device holds state for an attendance check-in device.
type Device struct {
	ID         string
	Name       string
	DeviceType string
	Location   string
	IsActive   bool
	LastSync   time.Time // zero until the device first reports in
}

// Validate checks if the Device has valid data.
func (d *Device) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if !isValidType(d.DeviceType) {
		return ErrInvalidType
	}
	return nil
}

// RecordSync marks the device as having reported in.
// POST: LastSync is set to now
func (d *Device) RecordSync(now time.Time) {
	d.LastSync = now
}

func isValidType(t string) bool {
	for _, v := range ValidTypes {
		if v == t {
			return true
		}
	}
	return false
}
