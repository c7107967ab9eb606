// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog describes the datasets the server can show.

Every state is one generic table viewer parameterised by a DatasetSpec:
where its records come from, which fields are searched, how each column
is formatted, which party names map to which badge, and the pie charts
and statistics shown beside the table.

# Catalog File

	datasets:
	  - name: uttar-pradesh
	    title: Uttar Pradesh Assembly 2017
	    status: completed
	    source: file:up.json
	    search_fields: [constituency, party]
	    party_tokens:
	      - { badge: sp, match: [sp] }
	      - { badge: bsp, match: [bsp] }
	    columns:
	      - { title: "#", kind: serial }
	      - { field: party, title: Party, kind: party }
	      - { field: margin, title: Margin, kind: margin, compare_field: votes2 }

Party tokens are tried in order and the first substring match wins, so
with the tokens above "BSP" gets the sp badge.

# Column Kinds

	text     trimmed value, "-" when absent
	serial   the field if present, else the 1-based row position
	number   integer with locale digit grouping
	compact  thousands as "145K"
	percent  one decimal and "%"
	party    party name with a badge
	margin   signed, coloured; needs compare_field

The catalog compiled into the binary is returned by Default. Load reads
one from disk. Both reject unknown keys.
*/
package catalog
