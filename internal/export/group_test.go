package export

import (
	"testing"
)

func TestGroupRecords_CaseInsensitiveKeys(t *testing.T) {
	records := []Record{
		{PartNumber: "abc", Sequence: 1},
		{PartNumber: "ABC", Sequence: 2},
		{PartNumber: " Abc ", Sequence: 3},
	}

	groups := GroupRecords(records)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].Key != "abc" {
		t.Errorf("group key = %q, want first-seen casing %q", groups[0].Key, "abc")
	}
	if len(groups[0].Members) != 3 {
		t.Errorf("group has %d members, want 3", len(groups[0].Members))
	}
}

func TestGroupRecords_DropsBlankPartNumbers(t *testing.T) {
	records := []Record{
		{PartNumber: "", Sequence: 1},
		{PartNumber: "   ", Sequence: 2},
		{PartNumber: "P-100", Sequence: 3},
	}

	groups := GroupRecords(records)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].Key != "P-100" {
		t.Errorf("group key = %q, want %q", groups[0].Key, "P-100")
	}
}

func TestGroupRecords_OrderedCaseInsensitiveAscending(t *testing.T) {
	records := []Record{
		{PartNumber: "zeta", Sequence: 1},
		{PartNumber: "Alpha", Sequence: 1},
		{PartNumber: "beta", Sequence: 1},
	}

	groups := GroupRecords(records)
	want := []string{"Alpha", "beta", "zeta"}
	if len(groups) != len(want) {
		t.Fatalf("got %d groups, want %d", len(groups), len(want))
	}
	for i, key := range want {
		if groups[i].Key != key {
			t.Errorf("groups[%d].Key = %q, want %q", i, groups[i].Key, key)
		}
	}
}

func TestGroupRecords_RepresentativeHasLowestSequence(t *testing.T) {
	records := []Record{
		{PartNumber: "P-1", Sequence: 5, LengthIn: 50},
		{PartNumber: "P-1", Sequence: 2, LengthIn: 20},
		{PartNumber: "P-1", Sequence: 9, LengthIn: 90},
	}

	groups := GroupRecords(records)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	rep := groups[0].Representative
	if rep.Sequence != 2 || rep.LengthIn != 20 {
		t.Errorf("representative = seq %d len %v, want seq 2 len 20", rep.Sequence, rep.LengthIn)
	}
}

func TestGroupRecords_SequenceTieKeepsInputOrder(t *testing.T) {
	records := []Record{
		{PartNumber: "P-1", Sequence: 3, LengthIn: 1},
		{PartNumber: "P-1", Sequence: 3, LengthIn: 2},
	}

	groups := GroupRecords(records)
	if groups[0].Representative.LengthIn != 1 {
		t.Errorf("tie broke to later record, want first-seen record as representative")
	}
}

func TestGroupRecords_Empty(t *testing.T) {
	if groups := GroupRecords([]Record{}); len(groups) != 0 {
		t.Errorf("got %d groups from empty input, want 0", len(groups))
	}
}
