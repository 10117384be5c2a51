package main

import (
	"context"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"

	"github.com/llehouerou/mcotp/internal/catalog"
	dbutil "github.com/llehouerou/mcotp/internal/db"
	"github.com/llehouerou/mcotp/internal/errmsg"
	"github.com/llehouerou/mcotp/internal/provider"
	"github.com/llehouerou/mcotp/internal/state"
)

// StateShow prints the saved queue as JSON followed by a one-line summary.
func (r *Runner) StateShow(_ context.Context, _ *cli.Command) error {
	mgr, err := state.Open(r.config.StateDB, r.logger)
	if err != nil {
		return errmsg.Error(errmsg.OpStateOpen, err)
	}
	defer mgr.Close()

	saved, err := mgr.GetSnapshot()
	if err != nil {
		return errmsg.Error(errmsg.OpQueueLoad, err)
	}
	if saved == nil {
		return r.writeLine("No saved queue.")
	}

	if err := r.writeJSON(saved.Snapshot); err != nil {
		return err
	}

	p, err := provider.Decode(saved.Snapshot.Provider)
	if err != nil {
		r.logger.Warn("saved provider unreadable", "err", err)
	}
	mode := p.Mode().String()
	if label := p.Label(); label != "" {
		mode += " - " + label
	}
	return r.writeLine("%s, %s tracks, saved %s",
		mode,
		humanize.Comma(int64(len(saved.Snapshot.Items()))),
		humanize.RelTime(saved.SavedAt, r.now(), "ago", "from now"))
}

// StateClear deletes the saved queue.
func (r *Runner) StateClear(_ context.Context, _ *cli.Command) error {
	mgr, err := state.Open(r.config.StateDB, r.logger)
	if err != nil {
		return errmsg.Error(errmsg.OpStateOpen, err)
	}
	defer mgr.Close()

	if err := mgr.Clear(); err != nil {
		return errmsg.Error(errmsg.OpQueueClear, err)
	}
	return r.writeLine("Saved queue cleared.")
}

// CatalogStats prints entity counts and the decades with dated songs.
func (r *Runner) CatalogStats(ctx context.Context, _ *cli.Command) error {
	db, err := dbutil.Open(r.config.CatalogDB, true)
	if err != nil {
		return errmsg.Error(errmsg.OpCatalogOpen, err)
	}
	defer db.Close()
	store := catalog.New(db)

	counts, err := store.Counts(ctx)
	if err != nil {
		return errmsg.Error(errmsg.OpCatalogStats, err)
	}
	decades, err := store.Decades(ctx)
	if err != nil {
		return errmsg.Error(errmsg.OpCatalogStats, err)
	}

	labels := lo.Map(decades, func(d int, _ int) string { return provider.YearLabel(d, d+9) })
	if len(labels) == 0 {
		labels = []string{"none"}
	}

	lines := []string{
		"Bands:   " + humanize.Comma(int64(counts.Bands)),
		"Albums:  " + humanize.Comma(int64(counts.Albums)),
		"Songs:   " + humanize.Comma(int64(counts.Songs)),
		"Decades: " + strings.Join(labels, ", "),
	}
	return r.writeLine("%s", strings.Join(lines, "\n"))
}
