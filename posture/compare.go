/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package posture

import (
	"math"
	"sort"
)

const (
	// DefaultThreshold is the largest angle difference, in degrees, at which a joint still matches.
	DefaultThreshold = 20.0

	// DefaultCorrectPercentage is the share of matching joints at which a posture counts as correct.
	DefaultCorrectPercentage = 60.0
)

// Match is the outcome of comparing live joint angles with a reference pose.
type Match struct {
	Total      int      `json:"total"`
	Matching   int      `json:"matching"`
	Percentage float64  `json:"percentage"`
	Correct    bool     `json:"correct"`
	Mismatched []string `json:"mismatched,omitempty"`
}

type compareOptions struct {
	threshold         float64
	correctPercentage float64
}

// CompareOption configures Compare.
type CompareOption func(*compareOptions)

// WithThreshold sets the per-joint tolerance in degrees.
func WithThreshold(degrees float64) CompareOption {
	return func(o *compareOptions) {
		o.threshold = degrees
	}
}

// WithCorrectPercentage sets the percentage of matching joints required for Correct.
func WithCorrectPercentage(pct float64) CompareOption {
	return func(o *compareOptions) {
		o.correctPercentage = pct
	}
}

// Compare scores live angles against a reference. Only joints present in
// both are counted; with none in common the percentage is zero.
func Compare(reference, live map[string]float64, opts ...CompareOption) Match {
	o := compareOptions{threshold: DefaultThreshold, correctPercentage: DefaultCorrectPercentage}
	for _, opt := range opts {
		opt(&o)
	}

	var m Match
	for joint, liveAngle := range live {
		refAngle, ok := reference[joint]
		if !ok {
			continue
		}
		m.Total++
		if math.Abs(refAngle-liveAngle) <= o.threshold {
			m.Matching++
		} else {
			m.Mismatched = append(m.Mismatched, joint)
		}
	}
	sort.Strings(m.Mismatched)

	if m.Total > 0 {
		m.Percentage = float64(m.Matching) / float64(m.Total) * 100
	}
	m.Correct = m.Total > 0 && m.Percentage >= o.correctPercentage
	return m
}
