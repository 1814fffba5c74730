package provider

// Records returns the objects of a JSON array, skipping non-object items.
func Records(raw any) []Record {
	items, ok := raw.([]any)
	if !ok {
		return []Record{}
	}
	out := make([]Record, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// Object returns raw as a Record, or an empty Record.
func Object(raw any) Record {
	if obj, ok := raw.(map[string]any); ok && obj != nil {
		return obj
	}
	return Record{}
}

// First returns the first object of a JSON array, or an empty Record.
func First(raw any) Record {
	items := Records(raw)
	if len(items) == 0 {
		return Record{}
	}
	return items[0]
}

// ScheduleGames flattens a statsapi schedule body: dates[].games[].
func ScheduleGames(data Record) []Record {
	out := make([]Record, 0)
	for _, date := range Records(data["dates"]) {
		out = append(out, Records(date["games"])...)
	}
	return out
}

// SplitStat digs stats[0].splits[0].stat out of a statsapi people body.
func SplitStat(data Record) Record {
	first := First(data["stats"])
	return Object(First(first["splits"])["stat"])
}
