package api

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type hotspotCount struct {
	name  string
	count int
}

// hotspotCounts encodes as a JSON object whose keys keep registry order.
type hotspotCounts []hotspotCount

func (h hotspotCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, hc := range h {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(hc.name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(hc.count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
