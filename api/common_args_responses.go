// Copyright (C) 2019-2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import "github.com/gustavo821/BarnBridge-SmartYieldBonds/ids"

// This file contains structs used in arguments and responses in services

// EmptyReply indicates that an api doesn't have a response to return.
type EmptyReply struct{}

// SuccessResponse indicates success of an API call
type SuccessResponse struct {
	Success bool `json:"success"`
}

// JSONSourceID contains the ID of a yield source
type JSONSourceID struct {
	SourceID ids.ID `json:"sourceID"`
}

// JSONSourceIDs contains a list of yield source IDs
type JSONSourceIDs struct {
	SourceIDs []ids.ID `json:"sourceIDs"`
}
