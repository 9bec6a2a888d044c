// Package server provides the local preview server for rendered reports.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// DefaultAddr is the fixed local port the preview server binds to.
const DefaultAddr = ":8080"

// Serve exposes dir over plain HTTP until an interrupt arrives, then shuts
// the listener down gracefully. A normal interrupt is not an error.
func Serve(addr, dir string, out io.Writer) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: http.FileServer(http.Dir(dir)),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	fmt.Fprintf(out, "Local web server started at http://localhost%s/\n", addr)
	fmt.Fprintln(out, "Use Ctrl-C to stop web server.")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	fmt.Fprintln(out, "Exiting...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
