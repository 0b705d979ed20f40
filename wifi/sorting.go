package wifi

import "sort"

// SortNetworks sorts a slice of Network structs in place.
// The sorting order is:
// 1. Active network first.
// 2. Signal strength (strongest first).
// 3. Secured networks before open ones.
// 4. Fallback to SSID alphabetically.
func SortNetworks(networks []Network) {
	sort.SliceStable(networks, func(i, j int) bool {
		a := networks[i]
		b := networks[j]

		if a.IsActive != b.IsActive {
			return a.IsActive
		}
		if a.Signal != b.Signal {
			return a.Signal > b.Signal
		}
		if a.IsSecure() != b.IsSecure() {
			return a.IsSecure()
		}
		return a.SSID < b.SSID
	})
}
