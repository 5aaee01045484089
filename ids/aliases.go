// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ids

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrNoIDWithAlias      = errors.New("there is no ID with alias")
	errNoAliasForID       = errors.New("there is no alias for ID")
	errAliasAlreadyMapped = errors.New("alias already mapped to an ID")
)

// Aliaser gives IDs human readable names. An ID can have arbitrarily many
// aliases; two IDs may not share an alias.
type Aliaser struct {
	lock    sync.RWMutex
	dealias map[string]ID
	aliases map[ID][]string
}

func NewAliaser() *Aliaser {
	return &Aliaser{
		dealias: make(map[string]ID),
		aliases: make(map[ID][]string),
	}
}

// Lookup returns the ID associated with alias
func (a *Aliaser) Lookup(alias string) (ID, error) {
	a.lock.RLock()
	defer a.lock.RUnlock()

	if id, ok := a.dealias[alias]; ok {
		return id, nil
	}
	return Empty, fmt.Errorf("%w: %s", ErrNoIDWithAlias, alias)
}

// Aliases returns the aliases of an ID
func (a *Aliaser) Aliases(id ID) []string {
	a.lock.RLock()
	defer a.lock.RUnlock()

	return append([]string(nil), a.aliases[id]...)
}

// PrimaryAlias returns the first alias of [id]
func (a *Aliaser) PrimaryAlias(id ID) (string, error) {
	a.lock.RLock()
	defer a.lock.RUnlock()

	aliases := a.aliases[id]
	if len(aliases) == 0 {
		return "", fmt.Errorf("%w: %s", errNoAliasForID, id)
	}
	return aliases[0], nil
}

// PrimaryAliasOrDefault returns the first alias of [id], or [id] as a string
// if it has no alias.
func (a *Aliaser) PrimaryAliasOrDefault(id ID) string {
	alias, err := a.PrimaryAlias(id)
	if err != nil {
		return id.String()
	}
	return alias
}

// Alias gives [id] the alias [alias]
func (a *Aliaser) Alias(id ID, alias string) error {
	a.lock.Lock()
	defer a.lock.Unlock()

	if _, exists := a.dealias[alias]; exists {
		return fmt.Errorf("%w: %s", errAliasAlreadyMapped, alias)
	}

	a.dealias[alias] = id
	a.aliases[id] = append(a.aliases[id], alias)
	return nil
}

// RemoveAliases of the provided ID
func (a *Aliaser) RemoveAliases(id ID) {
	a.lock.Lock()
	defer a.lock.Unlock()

	for _, alias := range a.aliases[id] {
		delete(a.dealias, alias)
	}
	delete(a.aliases, id)
}
