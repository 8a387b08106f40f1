// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

// Package metrics defines the Prometheus collectors for the profiling and
// recommendation core. Collectors are registered via promauto at package
// load and exposed through the /metrics endpoint of the ops server.
package metrics
