package datasetaudit

// Count pairs a distinct value with its number of occurrences.
type Count struct {
	Value       string
	Occurrences int
}

// orderedCounter counts strings and enumerates them in first-seen order.
type orderedCounter struct {
	positions map[string]int
	counts    []Count
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{positions: make(map[string]int)}
}

func (counter *orderedCounter) add(value string) {
	if position, seen := counter.positions[value]; seen {
		counter.counts[position].Occurrences++
		return
	}
	counter.positions[value] = len(counter.counts)
	counter.counts = append(counter.counts, Count{Value: value, Occurrences: 1})
}

func (counter *orderedCounter) snapshot() []Count {
	return append([]Count(nil), counter.counts...)
}
