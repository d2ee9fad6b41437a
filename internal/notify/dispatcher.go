package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/octobees/lead-intake/api/internal/config"
	"github.com/octobees/lead-intake/api/internal/entity"
	"github.com/octobees/lead-intake/api/internal/logging"
)

// Dispatcher emails a notification for every captured lead. Sends run on their
// own goroutine; their outcome is only ever logged.
type Dispatcher struct {
	sender EmailSender
	to     string
	region string
	logger *logging.Logger
	wg     sync.WaitGroup
}

// NewDispatcher builds a dispatcher. When the mail config is incomplete or
// sender is nil the dispatcher does nothing.
func NewDispatcher(cfg config.MailConfig, sender EmailSender, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	d := &Dispatcher{
		to:     cfg.To,
		region: cfg.PhoneRegion,
		logger: logger.With("component", "lead_notifier"),
	}
	if cfg.Enabled() && sender != nil {
		d.sender = sender
	} else {
		d.logger.Debug("lead notifications disabled: smtp relay not configured")
	}
	return d
}

// Enabled reports whether Dispatch will attempt delivery.
func (d *Dispatcher) Enabled() bool {
	return d.sender != nil
}

// Notify sends the lead notification synchronously. It is a no-op when the
// dispatcher is disabled.
func (d *Dispatcher) Notify(ctx context.Context, lead entity.Lead) error {
	if !d.Enabled() {
		return nil
	}
	msg, err := BuildLeadEmail(lead, d.to, d.region)
	if err != nil {
		return err
	}
	return d.sender.Send(ctx, msg)
}

// Dispatch schedules Notify on a detached goroutine and returns immediately.
// Once scheduled a send runs to completion; there is no cancellation.
func (d *Dispatcher) Dispatch(lead entity.Lead) {
	if !d.Enabled() {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("lead notification panicked", "panic", fmt.Sprint(r), "brand", lead.Brand)
			}
		}()

		if err := d.Notify(context.Background(), lead); err != nil {
			d.logger.Error("email send error", "error", err, "to", d.to, "brand", lead.Brand)
			return
		}
		d.logger.Info("lead notification sent", "to", d.to, "brand", lead.Brand)
	}()
}

// Wait blocks until every scheduled notification has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
