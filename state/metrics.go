// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/meridianchain/meridian/metrics"

var metricStateCounter = metrics.LazyLoadCounterVec("account_state_count", []string{"type", "io"})
