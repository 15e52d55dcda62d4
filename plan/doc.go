// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package plan computes execution plans for parallel work over a flat index space.
//
// A Plan slices the indices [0, n) into epochs that run one after another, and
// each epoch into blocks that run concurrently. Blocks never overlap, so the
// code executing them needs no coordination beyond waiting for an epoch to
// finish before starting the next one.
//
//	p, err := plan.Build(len(files), 4, 8)
//	if errors.Is(err, plan.ErrInvalidConfiguration) {
//	    ...
//	}
//	for _, epoch := range p.Epochs {
//	    for _, block := range epoch.Blocks {
//	        go process(files[block.Start:block.End])
//	    }
//	}
//
// # Traces
//
// Build logs a human-readable trace of the plan. When each index stands for a
// group of underlying items (for example a batch of term IDs), pass the group
// sizes with WithGroupedWork and the trace reports item offsets instead of
// index ranges. The partition itself is the same either way.
//
// The package does not execute anything. See package dispatch for the executor.
package plan
