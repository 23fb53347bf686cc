package ble

import (
	"context"
	"fmt"
	"time"
)

// ScanForControllers scans for peripherals advertising the controller
// service. The underlying adapter scan only returns once its context
// ends, so the timeout is what actually bounds the scan and flushes the
// results.
func ScanForControllers(adapter Adapter, timeout time.Duration) ([]Device, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("ble: enable adapter: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	devices, err := adapter.Scan(ctx, ServiceUUID)
	if err != nil {
		return nil, fmt.Errorf("ble: scan: %w", err)
	}
	return devices, nil
}
