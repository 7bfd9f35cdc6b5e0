package export

import (
	"sort"
	"strings"
)

// Group is one physical part's worth of capture records.
type Group struct {
	// Key is the trimmed part number, in the casing of the first record
	// seen for this part.
	Key string

	// Representative is the member with the lowest sequence number; its
	// measurements feed the export row.
	Representative Record

	// Members contains every record grouped under this part, in input order.
	Members []Record
}

// GroupRecords groups capture records by trimmed, case-insensitive part
// number. Records with blank part numbers are dropped entirely. The result
// is ordered by part number, case-insensitive ascending.
func GroupRecords(records []Record) []Group {
	type bucket struct {
		key     string
		members []Record
	}

	buckets := make(map[string]*bucket)
	var order []string // lowercased keys in first-seen order

	for _, rec := range records {
		trimmed := strings.TrimSpace(rec.PartNumber)
		if trimmed == "" {
			continue
		}

		lower := strings.ToLower(trimmed)
		b, ok := buckets[lower]
		if !ok {
			b = &bucket{key: trimmed}
			buckets[lower] = b
			order = append(order, lower)
		}
		b.members = append(b.members, rec)
	}

	groups := make([]Group, 0, len(order))
	for _, lower := range order {
		b := buckets[lower]

		// Lowest sequence wins; ties keep the earlier record.
		rep := b.members[0]
		for _, m := range b.members[1:] {
			if m.Sequence < rep.Sequence {
				rep = m
			}
		}

		groups = append(groups, Group{
			Key:            b.key,
			Representative: rep,
			Members:        b.members,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return strings.ToLower(groups[i].Key) < strings.ToLower(groups[j].Key)
	})

	return groups
}
