package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/abates/cli"
	"github.com/abates/x10"
	"golang.org/x/sync/errgroup"
)

var sendCommand x10.Command

func init() {
	app.SubCommand("drive", cli.DescOption("send commands read from stdin and print commands received from remotes"), cli.CallbackOption(driveCmd))
	app.SubCommand("listen", cli.DescOption("print commands received from remotes"), cli.CallbackOption(listenCmd))
	cmd := app.SubCommand("send", cli.UsageOption("<command>"), cli.DescOption("send a single command such as +a1, -b16, sc3 or ub"), cli.CallbackOption(sendCmd))
	cmd.Arguments.Var(&sendCommand, "<command>")
}

func listenStop() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	go func() {
		<-sigCh
		cancel()
	}()

	return ctx
}

type lineSender interface {
	SendLine(line string) error
}

type listener interface {
	Listen(ctx context.Context, out io.Writer) error
}

type driver interface {
	lineSender
	listener
}

// drive sends each line read from in until in is exhausted or ctx is
// cancelled. Lines that fail to parse are logged and skipped, transport
// failures end the loop.
func drive(ctx context.Context, sender lineSender, in io.Reader, pace time.Duration) error {
	lines := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(in)
		for {
			line, err := reader.ReadString('\n')
			if len(line) > 0 {
				select {
				case lines <- strings.TrimRight(line, "\r\n"):
				case <-ctx.Done():
					return
				}
			}

			if err != nil {
				if err == io.EOF {
					err = nil
				}
				errCh <- err
				close(lines)
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, open := <-lines:
			if !open {
				return <-errCh
			}

			err := sender.SendLine(line)
			if x10.IsValidation(err) {
				x10.Log.Infof("Ignoring command: %v", truncate(err.Error(), 80))
			} else if err != nil {
				return err
			}

			select {
			case <-time.After(pace):
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func truncate(str string, max int) string {
	if len(str) > max {
		return str[:max] + "..."
	}
	return str
}

// runDrive joins the receive loop and the stdin loop. Either one ending
// stops the other.
func runDrive(parent context.Context, dev driver, in io.Reader, out io.Writer, pace time.Duration) error {
	parent, stop := context.WithCancel(parent)
	defer stop()

	g, ctx := errgroup.WithContext(parent)
	g.Go(func() error { return dev.Listen(ctx, out) })
	g.Go(func() error {
		defer stop()
		return drive(ctx, dev, in, pace)
	})
	return g.Wait()
}

func driveCmd() error {
	err := runDrive(listenStop(), device, os.Stdin, os.Stdout, paceFlag)
	x10.Log.Infof("Exiting X10 CM19A driver")
	return err
}

func listenCmd() error {
	return device.Listen(listenStop(), os.Stdout)
}

func sendCmd() error {
	return device.Send(sendCommand)
}
