package domain

// Season is a rainfall-calendar label derived purely from the month number.
type Season string

// The four seasons of the Colombian rainfall calendar. Labels are kept in
// Spanish because downstream consumers filter on them verbatim.
const (
	SeasonDry        Season = "Verano"          // Dec, Jan, Feb
	SeasonTransition Season = "Transición"      // Mar, Apr, May
	SeasonWet        Season = "Invierno"        // Jun, Jul, Aug
	SeasonLateRains  Season = "Lluvias_Tardías" // Sep, Oct, Nov
)

// SeasonOf maps a month number to its season. Total over 1..12; any other
// month is a malformed intermediate value and reports a regroup error.
func SeasonOf(month int) (Season, error) {
	switch month {
	case 12, 1, 2:
		return SeasonDry, nil
	case 3, 4, 5:
		return SeasonTransition, nil
	case 6, 7, 8:
		return SeasonWet, nil
	case 9, 10, 11:
		return SeasonLateRains, nil
	default:
		return "", parseErrorf(ReasonRegroup, "month %d outside 1..12", month)
	}
}

// CalendarOrder ranks seasons by their first calendar month, giving output
// files a stable Verano → Transición → Invierno → Lluvias_Tardías order.
func (s Season) CalendarOrder() int {
	switch s {
	case SeasonDry:
		return 0
	case SeasonTransition:
		return 1
	case SeasonWet:
		return 2
	case SeasonLateRains:
		return 3
	default:
		return 4
	}
}
