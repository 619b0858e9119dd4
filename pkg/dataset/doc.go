// Package dataset reads and writes the series tables that feed stacked
// area charts, and the TOML chart configuration that accompanies them.
//
// # Data Model
//
// A [Dataset] has an ordered list of columns (the samples of the time axis)
// and an ordered list of [Series]. Each series carries one value per column.
// The first series is drawn at the top of the stack, the last one sits on
// the baseline.
//
// # JSON Format
//
//	{
//	  "name": "Revenue by region",
//	  "columns": ["2021", "2022", "2023"],
//	  "series": [
//	    {"id": "emea", "label": "EMEA", "values": {"2021": 12, "2022": 15, "2023": 19}},
//	    {"id": "apac", "values": {"2021": 4, "2022": 9, "2023": 14}, "hidden": true}
//	  ]
//	}
//
// # CSV Format
//
// The header row is "id,label,<column>...". Every following row is one
// series:
//
//	id,label,2021,2022,2023
//	emea,EMEA,12,15,19
//	apac,APAC,4,9,14
//
// Use [Import] to pick the decoder from the file extension.
package dataset
