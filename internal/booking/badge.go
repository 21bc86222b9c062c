package booking

import "strconv"

// badgeCap is the largest count a notification badge renders verbatim.
const badgeCap = 99

// Badge derives the bounded, display-ready string for a pending-request
// count. Zero and negative counts render no badge. Callers re-derive the
// badge from CountPending on every change; it is never cached apart from
// the ledger.
func Badge(count int) string {
	switch {
	case count <= 0:
		return ""
	case count > badgeCap:
		return "99+"
	default:
		return strconv.Itoa(count)
	}
}
