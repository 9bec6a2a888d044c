// Package collector implements the two-phase snapshot acquisition: request
// generation for every camera in the working set, a settle delay while the
// dashboard renders the images, then download of each surviving URL.
package collector

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/pkg/models"
)

// ErrAllSnapshotsFailed means every per-camera snapshot request failed, so
// there is nothing to download.
var ErrAllSnapshotsFailed = errors.New("no snapshots could be collected")

// DefaultSettleDelay is how long the dashboard is given to render snapshots
// after the requests are accepted. There is no readiness endpoint to poll,
// so this is a conservative batch-wide wait.
const DefaultSettleDelay = 15 * time.Second

const defaultWorkers = 4

// Record tracks one camera through the run. SnapshotURL is set by a
// successful request, LocalPath by a successful download; a record that
// fails either phase is removed from the working set.
type Record struct {
	Serial      string
	Name        string
	SnapshotURL string
	LocalPath   string
}

// DisplayName is the camera name used for output files and summaries.
// Cameras without a name share a placeholder, so two unnamed cameras (or
// two cameras with the same name) overwrite each other's file. Known
// limitation of naming by display name.
func (r *Record) DisplayName() string {
	if r.Name == "" {
		return "No Name Set"
	}
	return r.Name
}

// SnapshotRequester is the slice of the dashboard client the collector needs.
type SnapshotRequester interface {
	GenerateSnapshot(serial string, ts *time.Time) (models.Snapshot, error)
}

// ImageFetcher downloads the raw bytes behind a pre-signed snapshot URL.
type ImageFetcher interface {
	FetchImage(url string) ([]byte, error)
}

type Options struct {
	// Timestamp selects an archived frame near that instant; nil means a
	// live frame.
	Timestamp *time.Time
	OutputDir string
	// Workers bounds concurrent requests/downloads. Zero means the default.
	Workers int
	// SettleDelay overrides DefaultSettleDelay. Negative disables the wait.
	SettleDelay time.Duration
	// Out receives progress and failure summaries. Nil means os.Stdout.
	Out io.Writer
}

// Collect runs the two-phase protocol over cameras and returns the surviving
// subset: every record in the result has a file at LocalPath containing the
// downloaded bytes. Each request and each download is attempted exactly once;
// per-camera failures drop that camera and are summarized, they never abort
// the batch. The only fatal condition is every request failing.
func Collect(api SnapshotRequester, fetch ImageFetcher, cameras map[string]*Record, opts Options) (map[string]*Record, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	delay := opts.SettleDelay
	if delay == 0 {
		delay = DefaultSettleDelay
	}

	// Phase A: one generateSnapshot request per camera.
	fmt.Fprintln(out, "Requesting snapshots from cameras...")
	failed := runPhase(cameras, workers, func(rec *Record) error {
		snap, err := api.GenerateSnapshot(rec.Serial, opts.Timestamp)
		if err != nil {
			return err
		}
		rec.SnapshotURL = snap.URL
		return nil
	})
	reportFailures(out, "Failed to request snapshots from the following cameras:", failed)
	dropFailed(cameras, failed)

	if len(cameras) == 0 {
		return nil, ErrAllSnapshotsFailed
	}

	// Phase B: a single wait gating every download. The dashboard renders
	// asynchronously and offers no poll-for-ready endpoint.
	if delay > 0 {
		fmt.Fprintln(out, "Waiting for snapshots to be ready...")
		time.Sleep(delay)
	}

	// Phase C: download each surviving URL to <outputDir>/<name>.jpg.
	fmt.Fprintln(out, "Collecting snapshots...")
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	failed = runPhase(cameras, workers, func(rec *Record) error {
		img, err := fetch.FetchImage(rec.SnapshotURL)
		if err != nil {
			return err
		}
		path := filepath.Join(opts.OutputDir, rec.DisplayName()+".jpg")
		if err := os.WriteFile(path, img, 0o644); err != nil {
			return err
		}
		rec.LocalPath = path
		return nil
	})
	reportFailures(out, "Failed to download snapshots from the following cameras:", failed)
	dropFailed(cameras, failed)

	fmt.Fprintf(out, "Collected %d snapshot(s) to %s\n", len(cameras), opts.OutputDir)
	return cameras, nil
}

// runPhase fans one operation out over the working set with a bounded
// worker pool and returns the records that failed, keyed by serial.
func runPhase(cameras map[string]*Record, workers int, op func(*Record) error) map[string]*Record {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed = make(map[string]*Record)
	)
	sem := make(chan struct{}, workers)

	for _, rec := range cameras {
		wg.Add(1)
		sem <- struct{}{}
		go func(rec *Record) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := op(rec); err != nil {
				mu.Lock()
				failed[rec.Serial] = rec
				mu.Unlock()
			}
		}(rec)
	}
	wg.Wait()

	return failed
}

func reportFailures(out io.Writer, header string, failed map[string]*Record) {
	if len(failed) == 0 {
		return
	}
	fmt.Fprintln(out, header)
	names := make([]string, 0, len(failed))
	for _, rec := range failed {
		names = append(names, fmt.Sprintf("> %s / %s", rec.DisplayName(), rec.Serial))
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintln(out, n)
	}
}

func dropFailed(cameras map[string]*Record, failed map[string]*Record) {
	for serial := range failed {
		delete(cameras, serial)
	}
}
