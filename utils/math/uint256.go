// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

var (
	ErrDivideByZero   = errors.New("divide by zero")
	ErrInvalidDecimal = errors.New("invalid decimal string")

	maxUint256 = new(uint256.Int).SetAllOne()
)

// MaxUint256 returns a fresh copy of 2^256 - 1.
func MaxUint256() *uint256.Int {
	return new(uint256.Int).Set(maxUint256)
}

// WrappingSub returns (newer - older) mod 2^256.
//
// The result equals the true amount accrued between the two readings as long
// as the counter wrapped at most once in between.
func WrappingSub(newer, older *uint256.Int) *uint256.Int {
	return new(uint256.Int).Sub(newer, older)
}

// WrappingAdd returns (a + b) mod 2^256.
func WrappingAdd(a, b *uint256.Int) *uint256.Int {
	return new(uint256.Int).Add(a, b)
}

// CumulativeOverflowProof pushes [x] past the top of the counter range and
// recovers it with a wrapping subtraction. It returns [x] unchanged for every
// x in [0, 2^256-1] iff the arithmetic width matches the counter width.
func CumulativeOverflowProof(x *uint256.Int) *uint256.Int {
	wrapped := WrappingAdd(x, maxUint256)
	return WrappingSub(wrapped, maxUint256)
}

// MulDiv returns floor(x * y / d) using a 512 bit intermediate product.
//
// If the quotient does not fit in 256 bits, MaxUint256 is returned.
func MulDiv(x, y, d *uint256.Int) (*uint256.Int, error) {
	if d.IsZero() {
		return nil, ErrDivideByZero
	}
	z, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	if overflow {
		return MaxUint256(), nil
	}
	return z, nil
}

// ParseUint256 parses a base 10 string into a 256 bit unsigned integer.
func ParseUint256(s string) (*uint256.Int, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok || b.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return nil, fmt.Errorf("%w: %q", ErrOverflow, s)
	}
	return v, nil
}

// FormatUint256 returns the base 10 representation of [x].
func FormatUint256(x *uint256.Int) string {
	if x == nil {
		return "0"
	}
	return x.ToBig().String()
}
