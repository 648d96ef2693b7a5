/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package importer

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	storeerrors "github.com/suparena/posestore/errors"
)

// Posture is one named entry of a posture file. JointAngles is kept verbatim.
type Posture struct {
	Name        string
	JointAngles json.RawMessage
}

// PostureSet holds a posture file's entries in document order.
type PostureSet []Posture

// Names returns the posture names in order.
func (s PostureSet) Names() []string {
	names := make([]string, len(s))
	for i, p := range s {
		names[i] = p.Name
	}
	return names
}

// ParsePostureSet parses a JSON object of posture name to joint-angle record.
func ParsePostureSet(data []byte) (PostureSet, error) {
	return parsePostureSet("", data)
}

func parsePostureSet(location string, data []byte) (PostureSet, error) {
	if !gjson.ValidBytes(data) {
		return nil, storeerrors.NewParseError(location, "invalid JSON", nil)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, storeerrors.NewParseError(location, "top-level value is not an object", nil)
	}

	set := PostureSet{}
	root.ForEach(func(key, value gjson.Result) bool {
		set = append(set, Posture{
			Name:        key.String(),
			JointAngles: json.RawMessage(value.Raw),
		})
		return true
	})
	return set, nil
}
