// SPDX-License-Identifier: MIT
package catalog

// DuplicateName is the display name of the catalog entry that shares its id
// with the BBC Two HD channel. It never appears in the output, otherwise
// enabling BBC Two would list the channel twice.
const DuplicateName = "BBC Two England"

// Select filters channels down to the ids in enabled, keeping catalog order.
func Select(enabled []string, channels []Channel) []Channel {
	if len(enabled) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(enabled))
	for _, id := range enabled {
		set[id] = struct{}{}
	}

	out := make([]Channel, 0, len(enabled))
	for _, ch := range channels {
		if ch.Name == DuplicateName {
			continue
		}
		if _, ok := set[ch.ID]; ok {
			out = append(out, ch)
		}
	}
	return out
}
