package ariston

import (
	"context"
	"sync"
)

// BatchResult contains the outcome of one device refresh within a batch.
type BatchResult struct {
	Gateway string // The gateway id
	Error   error  // Error if the refresh failed, nil on success
}

// BatchConfig configures batch refresh behavior.
type BatchConfig struct {
	// MaxConcurrent is the maximum number of concurrent API calls.
	// Defaults to 10 if not specified.
	MaxConcurrent int

	// StopOnError determines whether to stop scheduling remaining devices
	// when a refresh fails. Default is false (refresh all).
	StopOnError bool
}

// DefaultBatchConfig returns sensible defaults for batch operations.
func DefaultBatchConfig() *BatchConfig {
	return &BatchConfig{
		MaxConcurrent: 10,
		StopOnError:   false,
	}
}

// UpdateStatesBatch refreshes the state of multiple devices concurrently.
// Results are positional: results[i] belongs to devices[i]. Each handle is
// touched by exactly one goroutine, so the per-handle caches stay
// consistent.
//
// Example:
//
//	results := ariston.UpdateStatesBatch(ctx, devices, nil)
//	for _, r := range results {
//	    if r.Error != nil {
//	        log.Printf("gateway %s failed: %v", r.Gateway, r.Error)
//	    }
//	}
func UpdateStatesBatch(ctx context.Context, devices []Device, cfg *BatchConfig) []BatchResult {
	return runBatch(ctx, devices, cfg, func(ctx context.Context, d Device) error {
		return d.UpdateStateContext(ctx)
	})
}

// UpdateEnergiesBatch refreshes the consumption sequences of multiple
// devices concurrently. Results are positional, like UpdateStatesBatch.
func UpdateEnergiesBatch(ctx context.Context, devices []Device, cfg *BatchConfig) []BatchResult {
	return runBatch(ctx, devices, cfg, func(ctx context.Context, d Device) error {
		return d.UpdateEnergyContext(ctx)
	})
}

// runBatch applies op to every device through a bounded worker pool.
func runBatch(ctx context.Context, devices []Device, cfg *BatchConfig, op func(context.Context, Device) error) []BatchResult {
	if len(devices) == 0 {
		return nil
	}

	if cfg == nil {
		cfg = DefaultBatchConfig()
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 10
	}

	results := make([]BatchResult, len(devices))
	var mu sync.Mutex
	var stopped bool

	// Worker pool using semaphore pattern
	sem := make(chan struct{}, cfg.MaxConcurrent)
	var wg sync.WaitGroup

	for i, device := range devices {
		// Check if we should stop
		mu.Lock()
		if stopped {
			mu.Unlock()
			results[i] = BatchResult{Gateway: device.Gateway(), Error: context.Canceled}
			continue
		}
		mu.Unlock()

		// Check context
		select {
		case <-ctx.Done():
			results[i] = BatchResult{Gateway: device.Gateway(), Error: ctx.Err()}
			continue
		default:
		}

		wg.Add(1)
		go func(idx int, d Device) {
			defer wg.Done()

			// Acquire semaphore
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[idx] = BatchResult{Gateway: d.Gateway(), Error: ctx.Err()}
				return
			}

			// Check if stopped
			mu.Lock()
			if stopped {
				mu.Unlock()
				results[idx] = BatchResult{Gateway: d.Gateway(), Error: context.Canceled}
				return
			}
			mu.Unlock()

			err := op(ctx, d)
			results[idx] = BatchResult{Gateway: d.Gateway(), Error: err}

			// Handle stop on error
			if err != nil && cfg.StopOnError {
				mu.Lock()
				stopped = true
				mu.Unlock()
			}
		}(i, device)
	}

	wg.Wait()
	return results
}
