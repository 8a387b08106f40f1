// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

// Package supervisor provides the suture-based supervision tree that
// keeps long-running components alive. The tree separates the profile
// refresh sweep from the operational HTTP server so a failure in one
// layer cannot cascade into the other.
package supervisor
