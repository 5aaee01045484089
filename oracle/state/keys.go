// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

var (
	initializedKey  = []byte{0x00}
	configKey       = []byte{0x01}
	latestKey       = []byte{0x02}
	firstUpdateKey  = []byte{0x03}
	lastObservedKey = []byte{0x04}
	balanceKey      = []byte{0x05}
	slotPrefix      = []byte{0x06}
)

func Flatten[T any](slices ...[]T) []T {
	var size int
	for _, slice := range slices {
		size += len(slice)
	}

	result := make([]T, 0, size)
	for _, slice := range slices {
		result = append(result, slice...)
	}
	return result
}
