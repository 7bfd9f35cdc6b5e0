package export

import (
	"testing"
	"time"
)

var rowTestNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.Local)

func TestAssembleRow_AllFields(t *testing.T) {
	rep := &Record{
		PartNumber: "P-100",
		Sequence:   1,
		LengthIn:   10,
		DepthIn:    5,
		HeightIn:   2,
		WeightLb:   3,
		Timestamp:  "20240131_154500",
	}
	settings := DefaultSettings()

	fields := assembleRow("P-100", rep, settings, rowTestNow)

	want := map[string]string{
		"ITEM_ID":         "P-100",
		"ITEM_TYPE":       "",
		"DESCRIPTION":     "",
		"NET_LENGTH":      "10",
		"NET_WIDTH":       "5",
		"NET_HEIGHT":      "2",
		"NET_WEIGHT":      "3",
		"NET_VOLUME":      "100",
		"NET_DIM_WGT":     "0.6024",
		"DIM_UNIT":        "in",
		"WGT_UNIT":        "lb",
		"VOL_UNIT":        "in",
		"FACTOR":          "166",
		"SITE_ID":         "733",
		"TIME_STAMP":      "01/31/2024",
		"OPT_INFO_1":      "",
		"OPT_INFO_2":      "Y",
		"OPT_INFO_3":      "Y",
		"OPT_INFO_8":      "0",
		"IMAGE_FILE_NAME": "",
		"UPDATED":         "N",
	}

	for col, wantVal := range want {
		if fields[col] != wantVal {
			t.Errorf("field %s = %q, want %q", col, fields[col], wantVal)
		}
	}
	if len(fields) != len(Columns) {
		t.Errorf("row has %d fields, want %d", len(fields), len(Columns))
	}
}

func TestAssembleRow_StripsCommasFromItemID(t *testing.T) {
	fields := assembleRow("P,10,0", nil, DefaultSettings(), rowTestNow)
	if fields["ITEM_ID"] != "P100" {
		t.Errorf("ITEM_ID = %q, want %q", fields["ITEM_ID"], "P100")
	}
}

func TestAssembleRow_MetricConversion(t *testing.T) {
	rep := &Record{LengthIn: 10, DepthIn: 10, HeightIn: 10, WeightLb: 10}
	settings := DefaultSettings()
	settings.DimUnit = "cm"
	settings.WgtUnit = "kg"

	fields := assembleRow("P-1", rep, settings, rowTestNow)

	if fields["NET_LENGTH"] != "25.4" {
		t.Errorf("NET_LENGTH = %q, want %q", fields["NET_LENGTH"], "25.4")
	}
	if fields["NET_WEIGHT"] != "4.5359" {
		t.Errorf("NET_WEIGHT = %q, want %q", fields["NET_WEIGHT"], "4.5359")
	}
	// 25.4^3 = 16387.064; derived from converted, unformatted dimensions.
	if fields["NET_VOLUME"] != "16387.064" {
		t.Errorf("NET_VOLUME = %q, want %q", fields["NET_VOLUME"], "16387.064")
	}
}

func TestAssembleRow_VolumeRequiresAllDimensions(t *testing.T) {
	rep := &Record{LengthIn: 10, DepthIn: 5} // height unmeasured
	fields := assembleRow("P-1", rep, DefaultSettings(), rowTestNow)

	if fields["NET_VOLUME"] != "0" {
		t.Errorf("NET_VOLUME = %q, want %q when a dimension is missing", fields["NET_VOLUME"], "0")
	}
	if fields["NET_DIM_WGT"] != "0" {
		t.Errorf("NET_DIM_WGT = %q, want %q when volume is zero", fields["NET_DIM_WGT"], "0")
	}
}

func TestAssembleRow_ZeroFactorDisablesDimWeight(t *testing.T) {
	rep := &Record{LengthIn: 10, DepthIn: 5, HeightIn: 2}
	settings := DefaultSettings()
	settings.Factor = 0

	fields := assembleRow("P-1", rep, settings, rowTestNow)
	if fields["NET_DIM_WGT"] != "0" {
		t.Errorf("NET_DIM_WGT = %q, want %q with zero factor", fields["NET_DIM_WGT"], "0")
	}
}

func TestAssembleRow_NoRepresentativeLeavesMeasurementsBlank(t *testing.T) {
	fields := assembleRow("P-1", nil, DefaultSettings(), rowTestNow)

	for _, col := range []string{"NET_LENGTH", "NET_WIDTH", "NET_HEIGHT", "NET_WEIGHT", "NET_VOLUME", "NET_DIM_WGT"} {
		if fields[col] != "" {
			t.Errorf("field %s = %q, want blank without a representative", col, fields[col])
		}
	}
	if fields["TIME_STAMP"] != "03/14/2025" {
		t.Errorf("TIME_STAMP = %q, want fallback %q", fields["TIME_STAMP"], "03/14/2025")
	}
}

func TestParseCaptureTime(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		wantOK bool
		want   string // formatted MM/dd/yyyy when ok
	}{
		{name: "compact with seconds", raw: "20240131_154500", wantOK: true, want: "01/31/2024"},
		{name: "compact without seconds", raw: "20240131_1545", wantOK: true, want: "01/31/2024"},
		{name: "iso date time", raw: "2024-01-31 15:45:00", wantOK: true, want: "01/31/2024"},
		{name: "us date only", raw: "01/31/2024", wantOK: true, want: "01/31/2024"},
		{name: "empty", raw: "", wantOK: false},
		{name: "garbage", raw: "yesterday-ish", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseCaptureTime(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("parseCaptureTime(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if ok && got.Format(timestampOutput) != tt.want {
				t.Errorf("parseCaptureTime(%q) = %s, want %s", tt.raw, got.Format(timestampOutput), tt.want)
			}
		})
	}
}
