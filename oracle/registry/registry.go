// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database/prefixdb"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/ids"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle/state"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/utils/logging"
)

const maxConcurrentUpdates = 16

var (
	ErrDuplicateSource = errors.New("source already registered")
	ErrUnknownSource   = errors.New("unknown source")
)

// Registry owns one oracle per monitored source.
type Registry struct {
	log logging.Logger

	lock    sync.RWMutex
	oracles map[ids.ID]*oracle.Oracle
	aliases *ids.Aliaser
}

func New(log logging.Logger) *Registry {
	return &Registry{
		log:     log,
		oracles: make(map[ids.ID]*oracle.Oracle),
		aliases: ids.NewAliaser(),
	}
}

func (r *Registry) Register(sourceID ids.ID, o *oracle.Oracle) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.oracles[sourceID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSource, sourceID)
	}
	r.oracles[sourceID] = o
	r.log.Info("registered oracle",
		zap.Stringer("sourceID", sourceID),
		zap.Uint64("windowSize", o.WindowSize()),
		zap.Uint64("granularity", o.Granularity()),
	)
	return nil
}

func (r *Registry) Get(sourceID ids.ID) (*oracle.Oracle, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	o, ok := r.oracles[sourceID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, sourceID)
	}
	return o, nil
}

// Alias gives the registered [sourceID] a human readable name.
func (r *Registry) Alias(sourceID ids.ID, alias string) error {
	if _, err := r.Get(sourceID); err != nil {
		return err
	}
	return r.aliases.Alias(sourceID, alias)
}

// Lookup resolves [alias] into the ID of a registered source.
func (r *Registry) Lookup(alias string) (ids.ID, error) {
	return r.aliases.Lookup(alias)
}

// Name returns the primary alias of [sourceID], or its string form if it was
// never aliased.
func (r *Registry) Name(sourceID ids.ID) string {
	return r.aliases.PrimaryAliasOrDefault(sourceID)
}

// IDs returns the registered sources in ascending order.
func (r *Registry) IDs() []ids.ID {
	r.lock.RLock()
	defer r.lock.RUnlock()

	sourceIDs := maps.Keys(r.oracles)
	slices.SortFunc(sourceIDs, ids.ID.Compare)
	return sourceIDs
}

// UpdateAll updates every registered oracle. A failing source does not prevent
// the others from being updated. The sources that were updated successfully
// are returned in ascending order, along with the failures joined together.
func (r *Registry) UpdateAll(ctx context.Context) ([]ids.ID, error) {
	sourceIDs := r.IDs()

	var (
		lock    sync.Mutex
		updated = make([]ids.ID, 0, len(sourceIDs))
		errs    []error
		eg      errgroup.Group
	)
	eg.SetLimit(maxConcurrentUpdates)
	for _, sourceID := range sourceIDs {
		sourceID := sourceID
		o, err := r.Get(sourceID)
		if err != nil {
			return nil, err
		}
		eg.Go(func() error {
			err := o.Update(ctx)

			lock.Lock()
			defer lock.Unlock()

			if err != nil {
				r.log.Warn("failed to update oracle",
					zap.Stringer("sourceID", sourceID),
					zap.Error(err),
				)
				errs = append(errs, fmt.Errorf("source %s: %w", sourceID, err))
				return nil
			}
			updated = append(updated, sourceID)
			return nil
		})
	}
	_ = eg.Wait()

	slices.SortFunc(updated, ids.ID.Compare)
	return updated, errors.Join(errs...)
}

// Persist writes a snapshot of every oracle into its own partition of [db].
func (r *Registry) Persist(db database.Database) error {
	for _, sourceID := range r.IDs() {
		o, err := r.Get(sourceID)
		if err != nil {
			return err
		}

		sourceDB := prefixdb.New(sourceID[:], db)
		batch := sourceDB.NewBatch()
		if err := state.Save(batch, o.Snapshot()); err != nil {
			return fmt.Errorf("failed to save %s: %w", sourceID, err)
		}
		if err := batch.Write(); err != nil {
			return fmt.Errorf("failed to write %s: %w", sourceID, err)
		}
	}
	return nil
}

// Restore loads any snapshot previously persisted into [db] for the
// registered oracles. Sources without a stored snapshot are left untouched.
func (r *Registry) Restore(db database.Database) error {
	for _, sourceID := range r.IDs() {
		o, err := r.Get(sourceID)
		if err != nil {
			return err
		}

		sourceDB := prefixdb.New(sourceID[:], db)
		snapshot, err := state.Load(sourceDB, o.Config())
		if errors.Is(err, database.ErrNotFound) {
			r.log.Debug("no stored snapshot",
				zap.Stringer("sourceID", sourceID),
			)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", sourceID, err)
		}
		if err := o.Restore(snapshot); err != nil {
			return fmt.Errorf("failed to restore %s: %w", sourceID, err)
		}
		r.log.Info("restored oracle",
			zap.Stringer("sourceID", sourceID),
			zap.Bool("warm", o.Warm()),
		)
	}
	return nil
}
