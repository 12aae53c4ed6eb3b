// Package updater runs a full synchronization: fetch the manifest, resolve the
// mods, download what is missing, remove what is outdated and install the
// modpack into the launcher
package updater

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dchest/uniuri"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/evergales/tinkaros/internals/ctxlog"
	"github.com/evergales/tinkaros/internals/downloadmgr"
	"github.com/evergales/tinkaros/internals/launchers"
	"github.com/evergales/tinkaros/internals/ledger"
	"github.com/evergales/tinkaros/internals/merrors"
	"github.com/evergales/tinkaros/internals/notify"
	"github.com/evergales/tinkaros/internals/profiles"
	"github.com/evergales/tinkaros/internals/reconcile"
	"github.com/evergales/tinkaros/internals/resolver"
	"github.com/evergales/tinkaros/pkg/modpack"
)

const tracerName = "github.com/evergales/tinkaros/internals/updater"

// ModsDir is the mods directory inside the install root
const ModsDir = "mods"

// ManifestSource provides the desired state
type ManifestSource interface {
	Get(ctx context.Context) (*modpack.Manifest, error)
}

// Updater synchronizes one install root
type Updater struct {
	Manifests ManifestSource
	Resolver  *resolver.Resolver
	// Root is the install root (the folder that contains the mods folder)
	Root     string
	Launcher launchers.Kind
	// DotMinecraft is the data directory of the official launcher
	DotMinecraft string
	Concurrency  int
	// Client is used for mod downloads and launcher files
	Client   *http.Client
	Notifier notify.Notifier
	Now      func() time.Time
	Tracer   trace.Tracer
}

// Result describes a finished (or failed) run
type Result struct {
	RunID           string
	Manifest        *modpack.Manifest
	Plan            reconcile.Plan
	PreviousVersion string
	// Written is the number of downloaded bytes
	Written  int64
	Started  time.Time
	Finished time.Time
}

// Duration of the run
func (r *Result) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

func (u *Updater) now() time.Time {
	if u.Now == nil {
		return time.Now()
	}
	return u.Now()
}

func (u *Updater) tracer() trace.Tracer {
	if u.Tracer == nil {
		return otel.Tracer(tracerName)
	}
	return u.Tracer
}

func (u *Updater) client() *http.Client {
	if u.Client == nil {
		return http.DefaultClient
	}
	return u.Client
}

// stage runs fn inside a span called name
func (u *Updater) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := u.tracer().Start(ctx, name)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Plan resolves the manifest and compares it with the mods directory without changing anything
func (u *Updater) Plan(ctx context.Context) (*modpack.Manifest, *resolver.Resolved, reconcile.Plan, error) {
	var (
		man      *modpack.Manifest
		resolved *resolver.Resolved
		plan     reconcile.Plan
	)

	err := u.stage(ctx, "manifest", func(ctx context.Context) (err error) {
		man, err = u.Manifests.Get(ctx)
		return err
	})
	if err != nil {
		return nil, nil, plan, err
	}

	err = u.stage(ctx, "resolve", func(ctx context.Context) (err error) {
		resolved, err = u.Resolver.Resolve(ctx, man)
		return err
	})
	if err != nil {
		return man, nil, plan, err
	}

	err = u.stage(ctx, "reconcile", func(ctx context.Context) (err error) {
		plan, err = reconcile.PlanDir(resolved.Filenames(), filepath.Join(u.Root, ModsDir))
		return err
	})
	return man, resolved, plan, err
}

// Sync brings the install root in line with the manifest. Notification
// failures do not stop the run, they are returned as
// `NotificationDeliveryFailed` after everything else succeeded
func (u *Updater) Sync(ctx context.Context) (*Result, error) {
	result := &Result{RunID: uniuri.NewLen(8), Started: u.now()}
	defer func() { result.Finished = u.now() }()

	logger := ctxlog.FromContext(ctx).With("run", result.RunID)
	ctx = ctxlog.WithLogger(ctx, logger)

	ctx, span := u.tracer().Start(ctx, "sync", trace.WithAttributes(
		attribute.String("tinkaros.run", result.RunID),
		attribute.String("tinkaros.launcher", string(u.Launcher)),
	))
	defer span.End()

	tracker := notify.Track(u.Notifier)

	err := u.sync(ctx, tracker, result)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("sync failed", "err", err)
		return result, err
	}

	tracker.Status("done!")
	tracker.Progress(100)
	logger.Info("sync finished", "installed", len(result.Plan.ToInstall), "deleted", len(result.Plan.ToDelete), "duration", u.now().Sub(result.Started))

	return result, tracker.Err()
}

func (u *Updater) sync(ctx context.Context, tracker *notify.Tracker, result *Result) error {
	if err := os.MkdirAll(u.Root, os.ModePerm); err != nil {
		return merrors.E(merrors.FilesystemError, "create install root", err)
	}

	man, resolved, plan, err := u.Plan(ctx)
	result.Manifest = man
	result.Plan = plan
	if err != nil {
		return err
	}
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String("tinkaros.modpack", man.Name),
		attribute.String("tinkaros.version", man.Version),
	)

	modsDir := filepath.Join(u.Root, ModsDir)
	err = u.stage(ctx, "download", func(ctx context.Context) error {
		mgr := downloadmgr.New(u.Concurrency, tracker)
		for _, name := range plan.ToInstall {
			file := resolved.Files[name]
			item, err := downloadmgr.NewHTTPItem(u.client(), file.DownloadURL, filepath.Join(modsDir, name))
			if err != nil {
				return merrors.E(merrors.DownloadFailed, "queue "+name, err)
			}
			mgr.Add(item)
		}
		err := mgr.Start(ctx)
		result.Written = mgr.Written()
		if err != nil {
			return err
		}
		return downloadmgr.Cleanup(plan.ToDelete)
	})
	if err != nil {
		return err
	}

	installed := ledger.Read(u.Root)
	result.PreviousVersion = installed.Version

	err = u.stage(ctx, "profiles", func(ctx context.Context) error {
		merger := profiles.New(u.Launcher, u.Root, u.DotMinecraft, tracker)
		merger.Client = u.client()
		merger.Now = u.now
		return merger.Apply(ctx, man, installed.Version)
	})
	if err != nil {
		return err
	}

	return ledger.Record(u.Root, man.Version, u.now())
}
