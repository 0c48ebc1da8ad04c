package courierrepo

type regionChanges struct {
	removed []int64
	changed []RegionDTO
	added   []RegionDTO
}

// diffRegions matches wanted rows to stored rows by region number. Changed
// rows carry the stored row id; added rows keep the order of wanted.
func diffRegions(stored, wanted []RegionDTO) regionChanges {
	byNumber := make(map[int]RegionDTO, len(stored))
	for _, s := range stored {
		byNumber[s.Number] = s
	}

	var changes regionChanges
	kept := make(map[int]struct{}, len(wanted))
	for _, w := range wanted {
		kept[w.Number] = struct{}{}

		s, ok := byNumber[w.Number]
		if !ok {
			changes.added = append(changes.added, w)
			continue
		}
		if s.OrdersCount != w.OrdersCount || s.SumDeliverySeconds != w.SumDeliverySeconds {
			w.ID = s.ID
			changes.changed = append(changes.changed, w)
		}
	}

	for _, s := range stored {
		if _, ok := kept[s.Number]; !ok {
			changes.removed = append(changes.removed, s.ID)
		}
	}

	return changes
}

// sameWorkingHours compares windows in order; row ids are ignored.
func sameWorkingHours(stored, wanted []WorkingHoursDTO) bool {
	if len(stored) != len(wanted) {
		return false
	}
	for i := range stored {
		if stored[i].TimeStart != wanted[i].TimeStart || stored[i].TimeEnd != wanted[i].TimeEnd {
			return false
		}
	}
	return true
}
