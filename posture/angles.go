/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package posture

import (
	"fmt"
	"math"
)

// Point is a normalized 2D landmark position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Joint names tracked by the posture comparison.
const (
	LeftShoulder  = "left_shoulder"
	RightShoulder = "right_shoulder"
	LeftElbow     = "left_elbow"
	RightElbow    = "right_elbow"
	LeftHip       = "left_hip"
	RightHip      = "right_hip"
	LeftKnee      = "left_knee"
	RightKnee     = "right_knee"
)

// JointLandmarks maps each tracked joint to its MediaPipe pose landmark index.
var JointLandmarks = map[string]int{
	LeftShoulder:  11,
	RightShoulder: 12,
	LeftElbow:     13,
	RightElbow:    14,
	LeftHip:       23,
	RightHip:      24,
	LeftKnee:      25,
	RightKnee:     26,
}

// minLandmarks is one past the highest index in JointLandmarks.
const minLandmarks = 27

// jointTriples lists, per joint, the landmarks (a, b, c) whose angle at b is
// the joint angle. Elbows and knees are measured without wrist and ankle, so
// their third point is the joint itself.
var jointTriples = map[string][3]string{
	LeftShoulder:  {LeftHip, LeftShoulder, LeftElbow},
	RightShoulder: {RightHip, RightShoulder, RightElbow},
	LeftElbow:     {LeftShoulder, LeftElbow, LeftElbow},
	RightElbow:    {RightShoulder, RightElbow, RightElbow},
	LeftHip:       {LeftShoulder, LeftHip, LeftKnee},
	RightHip:      {RightShoulder, RightHip, RightKnee},
	LeftKnee:      {LeftHip, LeftKnee, LeftKnee},
	RightKnee:     {RightHip, RightKnee, RightKnee},
}

// Angle returns the angle at b formed by a-b-c, in degrees within [0, 180].
func Angle(a, b, c Point) float64 {
	radians := math.Atan2(c.Y-b.Y, c.X-b.X) - math.Atan2(a.Y-b.Y, a.X-b.X)
	angle := math.Abs(radians * 180.0 / math.Pi)
	if angle > 180.0 {
		angle = 360 - angle
	}
	return angle
}

// ExtractJointAngles computes the tracked joint angles from a full pose
// landmark list indexed as in JointLandmarks.
func ExtractJointAngles(landmarks []Point) (map[string]float64, error) {
	if len(landmarks) < minLandmarks {
		return nil, fmt.Errorf("need at least %d landmarks, got %d", minLandmarks, len(landmarks))
	}

	angles := make(map[string]float64, len(jointTriples))
	for joint, triple := range jointTriples {
		a := landmarks[JointLandmarks[triple[0]]]
		b := landmarks[JointLandmarks[triple[1]]]
		c := landmarks[JointLandmarks[triple[2]]]
		angles[joint] = Angle(a, b, c)
	}
	return angles, nil
}
