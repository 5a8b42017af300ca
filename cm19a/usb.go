package cm19a

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abates/x10"
	"github.com/google/gousb"
)

const (
	VendorID  gousb.ID = 0x0bc7
	ProductID gousb.ID = 0x0002

	// endpoint numbers on the default interface (addresses 0x81 and 0x02)
	inEndpoint  = 1
	outEndpoint = 2

	DefaultReadTimeout  = 1 * time.Second
	DefaultWriteTimeout = 10 * time.Second
)

// USB is a Transport over the transceiver's interrupt endpoints
type USB struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	intf *gousb.Interface
	done func()

	in  *gousb.InEndpoint
	out *gousb.OutEndpoint

	readTimeout  time.Duration
	writeTimeout time.Duration
}

// OpenUSB finds the first CM19A on the bus and claims its default
// interface. Kernel drivers bound to the device (ati_remote for instance)
// are detached first.
func OpenUSB(readTimeout, writeTimeout time.Duration) (*USB, error) {
	u := &USB{
		ctx:          gousb.NewContext(),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}

	err := u.open()
	if err != nil {
		u.Close()
		return nil, err
	}
	return u, nil
}

func (u *USB) open() (err error) {
	u.dev, err = u.ctx.OpenDeviceWithVIDPID(VendorID, ProductID)
	if err != nil {
		return fmt.Errorf("opening %v:%v: %w", VendorID, ProductID, err)
	} else if u.dev == nil {
		return ErrNotFound
	}
	x10.Log.Infof("Discovered X10 CM19A")

	err = u.dev.SetAutoDetach(true)
	if err != nil {
		return fmt.Errorf("detaching kernel driver: %w", err)
	}

	u.intf, u.done, err = u.dev.DefaultInterface()
	if err != nil {
		return fmt.Errorf("claiming interface (are you root?): %w", err)
	}

	u.out, err = u.intf.OutEndpoint(outEndpoint)
	if err != nil {
		return fmt.Errorf("opening output endpoint: %w", err)
	}
	x10.Log.Debugf("Connected to output endpoint %v", u.out)

	u.in, err = u.intf.InEndpoint(inEndpoint)
	if err != nil {
		return fmt.Errorf("opening input endpoint: %w", err)
	}
	x10.Log.Debugf("Connected to input endpoint %v", u.in)
	return nil
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, gousb.ErrorTimeout) ||
		errors.Is(err, gousb.TransferTimedOut) ||
		errors.Is(err, gousb.TransferCancelled)
}

// Read waits up to the read timeout for a single frame
func (u *USB) Read(p []byte) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), u.readTimeout)
	defer cancel()

	n, err := u.in.ReadContext(ctx, p)
	if err != nil && isTimeout(err) {
		err = ErrReadTimeout
	}
	return n, err
}

func (u *USB) Write(p []byte) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), u.writeTimeout)
	defer cancel()
	return u.out.WriteContext(ctx, p)
}

// Close releases the interface, the device and the USB context
func (u *USB) Close() error {
	ae := x10.NewAggregateError()
	if u.done != nil {
		u.done()
	}

	if u.dev != nil {
		ae.Append(u.dev.Close())
	}
	ae.Append(u.ctx.Close())
	return ae.Err()
}
