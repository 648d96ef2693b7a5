// Package posture scores live joint angles against stored reference poses.
//
// Angles are measured in degrees from 2D pose landmarks. A joint matches when
// it is within a threshold (20 degrees by default) of the reference, and a
// posture is correct when at least 60% of the shared joints match.
package posture
