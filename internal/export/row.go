package export

import (
	"strconv"
	"strings"
	"time"
)

// Columns is the fixed downstream schema, in emit order. The column names
// and their order are part of the wire contract and must not change without
// coordinating with the consuming system.
var Columns = []string{
	"ITEM_ID",
	"ITEM_TYPE",
	"DESCRIPTION",
	"NET_LENGTH",
	"NET_WIDTH",
	"NET_HEIGHT",
	"NET_WEIGHT",
	"NET_VOLUME",
	"NET_DIM_WGT",
	"DIM_UNIT",
	"WGT_UNIT",
	"VOL_UNIT",
	"FACTOR",
	"SITE_ID",
	"TIME_STAMP",
	"OPT_INFO_1",
	"OPT_INFO_2",
	"OPT_INFO_3",
	"OPT_INFO_4",
	"OPT_INFO_5",
	"OPT_INFO_6",
	"OPT_INFO_7",
	"OPT_INFO_8",
	"IMAGE_FILE_NAME",
	"UPDATED",
}

// Capture timestamp layouts, tried in order. First match wins.
var timestampLayouts = []string{
	"20060102_150405",
	"20060102_1504",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// timestampOutput is the TIME_STAMP column format (MM/dd/yyyy).
const timestampOutput = "01/02/2006"

// assembleRow builds the full field map for one part. Every column starts
// blank; fields the station does not populate (ITEM_TYPE, DESCRIPTION,
// OPT_INFO_1, OPT_INFO_4..7, IMAGE_FILE_NAME) stay blank by design of the
// downstream schema. now supplies the fallback for unparseable timestamps.
func assembleRow(partKey string, rep *Record, settings Settings, now time.Time) map[string]string {
	fields := make(map[string]string, len(Columns))
	for _, col := range Columns {
		fields[col] = ""
	}

	// The field is already quote-safe when serialized, but commas are still
	// stripped so the identifier stays unambiguous downstream.
	fields["ITEM_ID"] = strings.ReplaceAll(partKey, ",", "")

	if rep != nil {
		length := ConvertLength(rep.LengthIn, "in", settings.DimUnit)
		width := ConvertLength(rep.DepthIn, "in", settings.DimUnit)
		height := ConvertLength(rep.HeightIn, "in", settings.DimUnit)
		weight := ConvertWeight(rep.WeightLb, "lb", settings.WgtUnit)

		fields["NET_LENGTH"] = FormatMeasure(length)
		fields["NET_WIDTH"] = FormatMeasure(width)
		fields["NET_HEIGHT"] = FormatMeasure(height)
		fields["NET_WEIGHT"] = FormatMeasure(weight)

		// Volume only when all three dimensions were actually measured.
		var volume float64
		if length > 0 && width > 0 && height > 0 {
			volume = length * width * height
		}
		fields["NET_VOLUME"] = FormatMeasure(volume)

		var dimWeight float64
		if volume > 0 && settings.Factor > 0 {
			dimWeight = volume / settings.Factor
		}
		fields["NET_DIM_WGT"] = FormatMeasure(dimWeight)
	}

	fields["DIM_UNIT"] = settings.DimUnit
	fields["WGT_UNIT"] = settings.WgtUnit
	fields["VOL_UNIT"] = settings.VolUnit
	fields["FACTOR"] = strconv.FormatFloat(settings.Factor, 'f', 0, 64)
	fields["SITE_ID"] = settings.SiteID

	stamp := now
	if rep != nil {
		if t, ok := parseCaptureTime(rep.Timestamp); ok {
			stamp = t
		}
	}
	fields["TIME_STAMP"] = stamp.Format(timestampOutput)

	fields["OPT_INFO_2"] = settings.OptInfo2
	fields["OPT_INFO_3"] = settings.OptInfo3
	fields["OPT_INFO_8"] = "0"
	fields["UPDATED"] = "N"

	return fields
}

// parseCaptureTime tries each known capture timestamp layout in order.
func parseCaptureTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
