/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package report renders evaluation records and consensus analyses as
// markdown tables.
package report
