package rotation

// SlotID identifies a rotation slot in a candidate pool. Slots are numbered
// from 1 in pool order; the zero value marks an empty grid cell. Display uses
// bijective base-26 letters, so pools larger than 26 render as AA, AB, …
// instead of silently breaking.
type SlotID int

// NoSlot is the empty grid cell.
const NoSlot SlotID = 0

// String renders the slot label: 1 -> A, 26 -> Z, 27 -> AA.
func (s SlotID) String() string {
	if s <= NoSlot {
		return ""
	}
	n := int(s)
	var buf []byte
	for n > 0 {
		n--
		buf = append(buf, byte('A'+n%26))
		n /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// Slots returns the first n slot identifiers in order.
func Slots(n int) []SlotID {
	out := make([]SlotID, n)
	for i := range out {
		out[i] = SlotID(i + 1)
	}
	return out
}
