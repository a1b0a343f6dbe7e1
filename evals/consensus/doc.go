/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package consensus analyzes judged evaluation records across models and
// skill versions: which answer key issues every model finds, which are
// contested, how closely each model tracks the majority, and which skill
// version performs best.
package consensus
