// Package locale holds month and weekday names used to format headers.
// Locales are plain values passed to formatting calls; there is no
// process-wide current locale.
package locale

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Locale errors.
var (
	ErrInvalidTag    = errors.New("invalid locale tag")
	ErrIncomplete    = errors.New("locale tables are incomplete")
	ErrUnknownLocale = errors.New("unknown locale")
)

// Locale is a set of calendar name tables.
type Locale struct {
	Tag           language.Tag
	Months        [12]string
	MonthsShort   [12]string
	Weekdays      [7]string // indexed by time.Weekday
	WeekdaysShort [7]string
}

// English is the default locale.
var English = Locale{
	Tag: language.English,
	Months: [12]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	MonthsShort: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	Weekdays:      [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	WeekdaysShort: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
}

// Spanish is bundled as a second example locale.
var Spanish = Locale{
	Tag: language.Spanish,
	Months: [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	MonthsShort: [12]string{"ene", "feb", "mar", "abr", "may", "jun",
		"jul", "ago", "sep", "oct", "nov", "dic"},
	Weekdays:      [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
	WeekdaysShort: [7]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
}

// Validate checks that every table entry is filled.
func (l Locale) Validate() error {
	check := func(table string, names []string) error {
		for i, n := range names {
			if strings.TrimSpace(n) == "" {
				return fmt.Errorf("%w: %s[%d] is empty", ErrIncomplete, table, i)
			}
		}
		return nil
	}
	if err := check("months", l.Months[:]); err != nil {
		return err
	}
	if err := check("months_short", l.MonthsShort[:]); err != nil {
		return err
	}
	if err := check("weekdays", l.Weekdays[:]); err != nil {
		return err
	}
	return check("weekdays_short", l.WeekdaysShort[:])
}

// Titled returns a copy with every name title-cased using the locale's
// casing rules.
func (l Locale) Titled() Locale {
	c := cases.Title(l.Tag)
	for i := range l.Months {
		l.Months[i] = c.String(l.Months[i])
		l.MonthsShort[i] = c.String(l.MonthsShort[i])
	}
	for i := range l.Weekdays {
		l.Weekdays[i] = c.String(l.Weekdays[i])
		l.WeekdaysShort[i] = c.String(l.WeekdaysShort[i])
	}
	return l
}

// Format renders t with a small token language:
//
//	dddd  weekday name      ddd  short weekday
//	MMMM  month name        MMM  short month    MM  month number (01)
//	DD    day of month (01) D    day of month
//	YYYY  four digit year   YY   two digit year
//
// Text inside square brackets is copied verbatim.
func (l Locale) Format(t time.Time, layout string) string {
	var b strings.Builder
	for i := 0; i < len(layout); {
		rest := layout[i:]
		switch {
		case rest[0] == '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				b.WriteString(rest[1:])
				return b.String()
			}
			b.WriteString(rest[1:end])
			i += end + 1
		case strings.HasPrefix(rest, "dddd"):
			b.WriteString(l.Weekdays[t.Weekday()])
			i += 4
		case strings.HasPrefix(rest, "ddd"):
			b.WriteString(l.WeekdaysShort[t.Weekday()])
			i += 3
		case strings.HasPrefix(rest, "MMMM"):
			b.WriteString(l.Months[t.Month()-1])
			i += 4
		case strings.HasPrefix(rest, "MMM"):
			b.WriteString(l.MonthsShort[t.Month()-1])
			i += 3
		case strings.HasPrefix(rest, "MM"):
			fmt.Fprintf(&b, "%02d", int(t.Month()))
			i += 2
		case strings.HasPrefix(rest, "DD"):
			fmt.Fprintf(&b, "%02d", t.Day())
			i += 2
		case rest[0] == 'D':
			b.WriteString(strconv.Itoa(t.Day()))
			i++
		case strings.HasPrefix(rest, "YYYY"):
			fmt.Fprintf(&b, "%04d", t.Year())
			i += 4
		case strings.HasPrefix(rest, "YY"):
			fmt.Fprintf(&b, "%02d", t.Year()%100)
			i += 2
		default:
			b.WriteByte(rest[0])
			i++
		}
	}
	return b.String()
}
