// Package trash moves filesystem entries into a managed holding area
// instead of deleting them, records every batch in a durable history, and
// restores the most recent batch on demand.
package trash

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/rs/xid"
	"github.com/suteru-cli/suteru/internal/fs"
	"github.com/suteru-cli/suteru/internal/history"
	"golang.org/x/sync/errgroup"
)

// Engine orchestrates trash and undo batches over the resolved roots and
// the history store.
type Engine struct {
	cfg   Config
	roots *Roots
	store *history.Store

	protected []glob.Glob
}

// NewEngine resolves the on-disk roots, opens the history store, and
// compiles the protected patterns. Any failure here is a SetupError and
// fatal to the invocation.
func NewEngine(cfg Config) (*Engine, error) {
	roots, err := ResolveRoots(cfg)
	if err != nil {
		return nil, err
	}

	store, err := history.NewStore(roots.HistoryPath)
	if err != nil {
		return nil, &SetupError{Op: "open_history", Path: roots.HistoryPath, Err: err}
	}

	protected := make([]glob.Glob, 0, len(cfg.Protected))
	for _, pattern := range cfg.Protected {
		g, err := glob.Compile(pattern)
		if err != nil {
			slog.Warn("skipping invalid protected pattern", "pattern", pattern, "error", err)
			continue
		}
		protected = append(protected, g)
	}

	return &Engine{
		cfg:       cfg,
		roots:     roots,
		store:     store,
		protected: protected,
	}, nil
}

// Roots returns the resolved locations the engine operates on.
func (e *Engine) Roots() Roots {
	return *e.roots
}

// TrashOptions control a single trash invocation.
type TrashOptions struct {
	// Explain computes the plan without moving anything
	Explain bool

	// Verbose raises per-item logging from debug to info
	Verbose bool

	// IgnoreMissing silently skips arguments that do not exist
	IgnoreMissing bool
}

// UndoOptions control a single undo invocation.
type UndoOptions struct {
	// Explain shows what would be restored without touching the batch
	Explain bool
}

// candidate is one argument after validation, slotted by argument index so
// concurrent checks cannot reorder the batch.
type candidate struct {
	arg   string
	abs   string
	isDir bool
	skip  bool
	err   error
}

// Trash relocates each argument into the holding area and records the
// batch. Per-item failures are collected in the report and never abort
// sibling items.
func (e *Engine) Trash(args []string, opts TrashOptions) *TrashReport {
	slog.Debug("trash started", "args", len(args), "explain", opts.Explain)
	defer slog.Debug("trash finished")

	report := &TrashReport{RunID: e.cfg.RunID, Explain: opts.Explain}
	if len(args) == 0 {
		return report
	}

	// Validation touches each path independently, so it can run
	// concurrently. The slot index keeps argument order; errors stay in
	// their slot rather than aborting the group.
	candidates := make([]candidate, len(args))
	var eg errgroup.Group
	for i, arg := range args {
		eg.Go(func() error {
			candidates[i] = e.inspect(arg, opts)
			return nil
		})
	}
	_ = eg.Wait()

	// Name resolution shares one Namer so items in the same batch never
	// collide with each other. This pass is sequential on purpose.
	namer := NewNamer(e.roots.Hold)
	for _, c := range candidates {
		if c.skip {
			continue
		}
		if c.err != nil {
			report.Failed = append(report.Failed, ItemError{Path: c.arg, Err: c.err})
			continue
		}

		name := namer.UniqueName(filepath.Base(c.abs))
		plan := Plan{
			From:  c.abs,
			To:    filepath.Join(e.roots.Hold, name),
			IsDir: c.isDir,
		}
		if same, err := fs.SamePartition(plan.From, plan.To); err == nil {
			plan.CrossDevice = !same
		}
		if mount, err := fs.MountPoint(plan.From); err == nil {
			plan.Mount = mount
		}
		report.Plans = append(report.Plans, plan)
	}

	if opts.Explain {
		return report
	}

	// Moves run sequentially in argument order so the recorded batch
	// preserves it regardless of which items fail.
	var items []history.Item
	for _, plan := range report.Plans {
		if err := fs.Move(plan.From, plan.To, fs.Options{}); err != nil {
			slog.Error("failed to trash", "path", plan.From, "error", err)
			report.Failed = append(report.Failed, ItemError{Path: plan.From, Err: err})
			continue
		}

		item := history.Item{
			Name:  filepath.Base(plan.From),
			From:  plan.From,
			To:    plan.To,
			IsDir: plan.IsDir,
		}
		items = append(items, item)
		report.Trashed = append(report.Trashed, item)

		if opts.Verbose {
			slog.Info("trashed", "from", item.From, "to", item.To)
		} else {
			slog.Debug("trashed", "from", item.From, "to", item.To)
		}
	}

	if len(items) > 0 {
		batch := history.Batch{
			ID:        xid.New().String(),
			Timestamp: time.Now(),
			Items:     items,
		}
		if err := e.store.Append(batch); err != nil {
			// The moves are done and must not be rolled back. The report
			// carries the batch so the caller can tell the user exactly
			// what moved where.
			report.Persist = &PersistError{Batch: batch, Err: err}
			slog.Error("files moved but history not written", "batch", batch.ID, "error", err)
		} else {
			report.Batch = &batch
			slog.Debug("recorded batch", "batch", batch.ID, "items", len(items))
		}
	}

	return report
}

// inspect validates a single argument. Unsafe and protected checks run
// against the argument as given, before normalization, so inputs like "."
// keep their meaning.
func (e *Engine) inspect(arg string, opts TrashOptions) candidate {
	c := candidate{arg: arg}

	fi, err := os.Lstat(arg)
	if err != nil {
		if os.IsNotExist(err) && opts.IgnoreMissing {
			c.skip = true
			return c
		}
		c.err = &ValidationError{Path: arg, Err: err}
		return c
	}
	c.isDir = fi.IsDir()

	if unsafe, err := isUnsafePath(arg); err != nil || unsafe {
		if err == nil {
			err = ErrUnsafePath
		}
		c.err = &ValidationError{Path: arg, Err: err}
		return c
	}

	abs, err := filepath.Abs(arg)
	if err != nil {
		c.err = &ValidationError{Path: arg, Err: err}
		return c
	}
	c.abs = abs

	if err := e.validatePath(abs); err != nil {
		c.err = &ValidationError{Path: arg, Err: err}
		return c
	}
	return c
}

// validatePath checks if the absolute path is valid for trashing. The
// engine's own locations are always protected, the configured patterns
// come on top.
func (e *Engine) validatePath(absPath string) error {
	switch absPath {
	case e.roots.Home, e.roots.Hold, e.roots.HistoryPath, filepath.Dir(e.roots.HistoryPath):
		return ErrProtectedPath
	}
	for _, g := range e.protected {
		if g.Match(absPath) {
			return ErrProtectedPath
		}
	}
	return nil
}

// Undo restores the most recent batch. Items are restored most recently
// trashed first, so a directory trashed after its former contents is back
// in place before they land inside it. Items that fail to restore are
// re-appended as a reduced batch under the same id, making undo safe to
// retry.
func (e *Engine) Undo(opts UndoOptions) (*UndoReport, error) {
	slog.Debug("undo started", "explain", opts.Explain)
	defer slog.Debug("undo finished")

	report := &UndoReport{Explain: opts.Explain}

	if opts.Explain {
		batch := e.store.Last()
		if batch == nil {
			report.NothingToUndo = true
			return report, nil
		}
		report.Batch = batch
		report.Plans = undoPlans(batch)
		return report, nil
	}

	batch, err := e.store.PopLast()
	if err != nil {
		return nil, err
	}
	if batch == nil {
		report.NothingToUndo = true
		return report, nil
	}
	report.Batch = batch
	report.Plans = undoPlans(batch)

	var failed []history.Item
	for i := len(batch.Items) - 1; i >= 0; i-- {
		item := batch.Items[i]
		if err := fs.Move(item.To, item.From, fs.Options{RecreateParent: true}); err != nil {
			slog.Error("failed to restore", "from", item.To, "to", item.From, "error", err)
			report.Failed = append(report.Failed, ItemError{Path: item.From, Err: err})
			failed = append(failed, item)
			continue
		}
		slog.Debug("restored", "path", item.From)
		report.Restored = append(report.Restored, item)
	}

	if len(failed) > 0 {
		// Keep the record in original trashing order even though restores
		// ran in reverse.
		slices.Reverse(failed)
		retry := history.Batch{ID: batch.ID, Timestamp: batch.Timestamp, Items: failed}
		if err := e.store.Append(retry); err != nil {
			report.Persist = &PersistError{Batch: retry, Err: err}
			slog.Error("unrestored files dropped from history", "batch", retry.ID, "error", err)
		}
	}

	return report, nil
}

// undoPlans lists the restore moves for a batch in execution order.
func undoPlans(batch *history.Batch) []Plan {
	plans := make([]Plan, 0, len(batch.Items))
	for i := len(batch.Items) - 1; i >= 0; i-- {
		item := batch.Items[i]
		plan := Plan{From: item.To, To: item.From, IsDir: item.IsDir}
		if same, err := fs.SamePartition(plan.From, plan.To); err == nil {
			plan.CrossDevice = !same
		}
		if mount, err := fs.MountPoint(plan.From); err == nil {
			plan.Mount = mount
		}
		plans = append(plans, plan)
	}
	return plans
}

// History returns every recorded batch, oldest first.
func (e *Engine) History() []history.Batch {
	return e.store.List()
}

// FilteredHistory returns the recorded batches with the configured
// include and exclude rules applied. Batches left with no items are
// dropped from the result.
func (e *Engine) FilteredHistory() []history.Batch {
	opts := FilterOptions{
		Include: e.cfg.History.Include,
		Exclude: e.cfg.History.Exclude,
	}

	var batches []history.Batch
	for _, batch := range e.store.List() {
		entries := make([]Entry, 0, len(batch.Items))
		for _, item := range batch.Items {
			entries = append(entries, Entry{Item: item, DeletedAt: batch.Timestamp})
		}
		kept := Filter(entries, opts)
		if len(kept) == 0 {
			continue
		}

		items := make([]history.Item, 0, len(kept))
		for _, en := range kept {
			items = append(items, en.Item)
		}
		batch.Items = items
		batches = append(batches, batch)
	}
	return batches
}

// Orphans returns recorded entries whose holding-area entry no longer
// exists on disk, usually left behind after the temp directory was cleared.
func (e *Engine) Orphans() []Entry {
	var orphans []Entry
	for _, batch := range e.store.List() {
		for _, item := range batch.Items {
			if _, err := os.Lstat(item.To); os.IsNotExist(err) {
				orphans = append(orphans, Entry{Item: item, DeletedAt: batch.Timestamp})
			}
		}
	}
	return orphans
}

// OlderThan returns all entries of batches recorded before now minus age.
func (e *Engine) OlderThan(age time.Duration) []Entry {
	cutoff := time.Now().Add(-age)
	var entries []Entry
	for _, batch := range e.store.List() {
		if !batch.Timestamp.Before(cutoff) {
			continue
		}
		for _, item := range batch.Items {
			entries = append(entries, Entry{Item: item, DeletedAt: batch.Timestamp})
		}
	}
	return entries
}

// Purge deletes the given items from the holding area and drops their
// records. Items already gone from disk lose only their record. Existing
// entries outside the holding area are refused, a history file must never
// direct deletion of arbitrary paths.
func (e *Engine) Purge(items []history.Item) (*PruneReport, error) {
	report := &PruneReport{}

	var removed []history.Item
	for _, item := range items {
		if _, err := os.Lstat(item.To); os.IsNotExist(err) {
			removed = append(removed, item)
			report.Removed = append(report.Removed, item)
			continue
		}
		if !strings.HasPrefix(item.To, e.roots.Hold+string(filepath.Separator)) {
			report.Failed = append(report.Failed, ItemError{Path: item.To, Err: ErrUnsafePath})
			continue
		}
		if err := os.RemoveAll(item.To); err != nil {
			slog.Error("failed to remove", "path", item.To, "error", err)
			report.Failed = append(report.Failed, ItemError{Path: item.To, Err: err})
			continue
		}
		removed = append(removed, item)
		report.Removed = append(report.Removed, item)
	}

	if len(removed) > 0 {
		if err := e.store.RemoveItems(removed); err != nil {
			return report, err
		}
	}
	return report, nil
}
