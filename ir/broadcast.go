// Copyright 2025 Google LLC
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

package ir

// BroadcastShapes returns the shape obtained by broadcasting two shapes
// against each other. Axes are aligned from the right; two axis lengths
// are compatible if they are equal or if one of them is 1.
// The second value is false if the shapes are not compatible.
func BroadcastShapes(x, y []int) ([]int, bool) {
	if len(x) < len(y) {
		x, y = y, x
	}
	out := append([]int{}, x...)
	offset := len(x) - len(y)
	for i, yAx := range y {
		xAx := x[offset+i]
		switch {
		case xAx == yAx:
		case xAx == 1:
			out[offset+i] = yAx
		case yAx == 1:
		default:
			return nil, false
		}
	}
	return out, true
}

// BroadcastCompatible returns true if two types are guaranteed to be
// broadcastable to the same shape. Unranked types are assumed compatible.
func BroadcastCompatible(x, y Type) bool {
	if x.Unranked || y.Unranked {
		return true
	}
	_, ok := BroadcastShapes(x.AxisLengths, y.AxisLengths)
	return ok
}
