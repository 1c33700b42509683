// Command gomokud serves the JSON decision endpoint of spec.md §6.1 over
// HTTP: a stateless worker that decodes a GameState, runs the search when
// the seat due to move is an AI seat, and returns the updated GameState.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"k8s.io/klog/v2"

	"github.com/gomoku-ai/core/internal/api"
)

const version = "0.1.0"

var (
	flagAddr       = flag.String("addr", ":8080", "Address the /move endpoint listens on.")
	flagHealthAddr = flag.String("health_addr", ":8081", "Address the /healthz and /readyz endpoints listen on.")
	flagDrainDelay = flag.Duration("drain_delay", 2*time.Second, "How long to report \"drain\" before shutting down, giving a load balancer time to stop sending new requests.")

	startTime = time.Now()
	draining  atomic.Bool
	inFlight  atomic.Int32
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	moveMux := http.NewServeMux()
	moveMux.Handle("/move", trackInFlight(api.HTTPHandler()))
	moveServer := &http.Server{Addr: *flagAddr, Handler: moveMux}

	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/healthz", handleHealthz)
	healthMux.HandleFunc("/readyz", handleReadyz)
	healthServer := &http.Server{Addr: *flagHealthAddr, Handler: healthMux}

	errCh := make(chan error, 2)
	go func() {
		klog.Infof("gomokud: /move listening on %s", *flagAddr)
		if err := moveServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	go func() {
		klog.Infof("gomokud: /healthz, /readyz listening on %s", *flagHealthAddr)
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		klog.Infof("gomokud: received %s, draining", s)
	case err := <-errCh:
		klog.Errorf("gomokud: server error: %v", err)
	}

	// Report not-ready immediately so a load balancer stops routing new
	// traffic, but keep serving in-flight requests for flagDrainDelay
	// before actually closing the listeners.
	draining.Store(true)
	time.Sleep(*flagDrainDelay)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := moveServer.Shutdown(shutdownCtx); err != nil {
		klog.Errorf("gomokud: /move shutdown: %v", err)
	}
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		klog.Errorf("gomokud: /healthz shutdown: %v", err)
	}
	klog.Infof("gomokud: shut down cleanly")
}

// handleHealthz implements spec.md §6.2: {status, version, uptime}.
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","version":%q,"uptime":%d}`, version, int(time.Since(startTime).Seconds()))
}

// handleReadyz implements spec.md §6.2: 200 "ready" when idle, 503 "busy"
// while a search is in progress on this worker, 503 "drain" once shutdown
// has begun. The proxy uses this to distribute load and to stop routing
// new requests ahead of a shutdown.
func handleReadyz(w http.ResponseWriter, r *http.Request) {
	switch {
	case draining.Load():
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "drain")
	case inFlight.Load() > 0:
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "busy")
	default:
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ready")
	}
}

// trackInFlight counts requests currently being served by the /move
// handler, so /readyz can report "busy" while a search is in progress
// (spec.md §6.2, §7's Overloaded kind).
func trackInFlight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inFlight.Add(1)
		defer inFlight.Add(-1)
		next.ServeHTTP(w, r)
	})
}
