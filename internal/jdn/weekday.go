package jdn

// Weekday carries the three fixed name tables attached to every conversion
// result. The index convention is a fixed JDN parity: jdn mod 7 == 0 falls
// on a Monday. Number is that index shifted to the ISO-like 1..7 range.
type Weekday struct {
	Arabic  string `json:"arabic"`
	Persian string `json:"persian"`
	English string `json:"english"`
	Number  int    `json:"number"`
}

// The tables are pure immutable data; index 0 = Monday.
var (
	weekdayArabic = [7]string{
		"الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت", "الأحد",
	}
	weekdayPersian = [7]string{
		"دوشنبه", "سه‌شنبه", "چهارشنبه", "پنج‌شنبه", "جمعه", "شنبه", "یکشنبه",
	}
	weekdayEnglish = [7]string{
		"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
	}
)

// WeekdayOf derives the weekday metadata for a Julian Day Number.
func WeekdayOf(j int) Weekday {
	i := ((j % 7) + 7) % 7
	return Weekday{
		Arabic:  weekdayArabic[i],
		Persian: weekdayPersian[i],
		English: weekdayEnglish[i],
		Number:  i + 1,
	}
}
