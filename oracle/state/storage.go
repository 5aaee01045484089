// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"errors"
	"fmt"

	"github.com/gustavo821/BarnBridge-SmartYieldBonds/database"
	"github.com/gustavo821/BarnBridge-SmartYieldBonds/oracle"
)

const observationSize = database.Uint64Size + database.Uint256Size

var (
	ErrConfigMismatch = errors.New("stored configuration does not match")

	errCorruptObservation = errors.New("corrupt observation")
)

/*
 * OracleDB
 * |-- initializedKey -> nil
 * |-- configKey -> windowSize | granularity
 * |-- latestKey -> slot index
 * |-- firstUpdateKey -> timestamp
 * |-- lastObservedKey -> timestamp | cumulative
 * |-- balanceKey -> underlying balance
 * '-. slots
 *   '-- index -> timestamp | cumulative
 */

// Save writes [s] to [db]. Slots that were never written are deleted.
func Save(db database.KeyValueWriterDeleter, s oracle.Snapshot) error {
	if err := PutConfig(db, s.Config); err != nil {
		return err
	}
	for i, observation := range s.Slots {
		key := Flatten(slotPrefix, database.PackUInt64(uint64(i)))
		if !s.Written[i] {
			if err := db.Delete(key); err != nil {
				return err
			}
			continue
		}
		if err := db.Put(key, PackObservation(observation)); err != nil {
			return err
		}
	}
	if !s.Initialized {
		return db.Delete(initializedKey)
	}
	if err := database.PutUInt64(db, latestKey, s.Latest); err != nil {
		return err
	}
	if err := database.PutUInt64(db, firstUpdateKey, s.FirstUpdate); err != nil {
		return err
	}
	if err := db.Put(lastObservedKey, PackObservation(s.LastObserved)); err != nil {
		return err
	}
	if err := database.PutUInt256(db, balanceKey, &s.UnderlyingBalance); err != nil {
		return err
	}
	return db.Put(initializedKey, nil)
}

// Load reads the snapshot stored in [db]. If nothing was stored,
// database.ErrNotFound is returned. If the stored configuration differs from
// [config], ErrConfigMismatch is returned.
func Load(db database.KeyValueReader, config oracle.Config) (oracle.Snapshot, error) {
	stored, err := GetConfig(db)
	if err != nil {
		return oracle.Snapshot{}, err
	}
	if stored != config {
		return oracle.Snapshot{}, fmt.Errorf("%w: stored %+v but expected %+v", ErrConfigMismatch, stored, config)
	}

	s := oracle.Snapshot{
		Config:  config,
		Slots:   make([]oracle.Observation, config.Granularity),
		Written: make([]bool, config.Granularity),
	}
	for i := range s.Slots {
		key := Flatten(slotPrefix, database.PackUInt64(uint64(i)))
		bytes, err := db.Get(key)
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return oracle.Snapshot{}, err
		}
		s.Slots[i], err = ParseObservation(bytes)
		if err != nil {
			return oracle.Snapshot{}, err
		}
		s.Written[i] = true
	}

	s.Initialized, err = db.Has(initializedKey)
	if err != nil || !s.Initialized {
		return s, err
	}
	if s.Latest, err = database.GetUInt64(db, latestKey); err != nil {
		return oracle.Snapshot{}, err
	}
	if s.FirstUpdate, err = database.GetUInt64(db, firstUpdateKey); err != nil {
		return oracle.Snapshot{}, err
	}
	bytes, err := db.Get(lastObservedKey)
	if err != nil {
		return oracle.Snapshot{}, err
	}
	if s.LastObserved, err = ParseObservation(bytes); err != nil {
		return oracle.Snapshot{}, err
	}
	balance, err := database.GetUInt256(db, balanceKey)
	if err != nil {
		return oracle.Snapshot{}, err
	}
	s.UnderlyingBalance = *balance
	return s, nil
}

func PutConfig(db database.KeyValueWriter, config oracle.Config) error {
	value := Flatten(
		database.PackUInt64(config.WindowSize),
		database.PackUInt64(config.Granularity),
	)
	return db.Put(configKey, value)
}

func GetConfig(db database.KeyValueReader) (oracle.Config, error) {
	bytes, err := db.Get(configKey)
	if err != nil {
		return oracle.Config{}, err
	}
	if len(bytes) != 2*database.Uint64Size {
		return oracle.Config{}, fmt.Errorf("%w: config has %d bytes", ErrConfigMismatch, len(bytes))
	}
	windowSize, err := database.ParseUInt64(bytes[:database.Uint64Size])
	if err != nil {
		return oracle.Config{}, err
	}
	granularity, err := database.ParseUInt64(bytes[database.Uint64Size:])
	if err != nil {
		return oracle.Config{}, err
	}
	return oracle.Config{
		WindowSize:  windowSize,
		Granularity: granularity,
	}, nil
}

func PackObservation(o oracle.Observation) []byte {
	return Flatten(
		database.PackUInt64(o.Timestamp),
		database.PackUInt256(&o.CumulativeYield),
	)
}

func ParseObservation(b []byte) (oracle.Observation, error) {
	if len(b) != observationSize {
		return oracle.Observation{}, fmt.Errorf("%w: expected %d bytes but got %d", errCorruptObservation, observationSize, len(b))
	}
	timestamp, err := database.ParseUInt64(b[:database.Uint64Size])
	if err != nil {
		return oracle.Observation{}, err
	}
	cumulative, err := database.ParseUInt256(b[database.Uint64Size:])
	if err != nil {
		return oracle.Observation{}, err
	}
	return oracle.Observation{
		Timestamp:       timestamp,
		CumulativeYield: *cumulative,
	}, nil
}
