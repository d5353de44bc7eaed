package simplepresign

import "time"

// signingTime carries the single timestamp a signing operation is bound to,
// with both wire formats computed exactly once. The scope date, X-Amz-Date,
// the string-to-sign and the key derivation all read from the same value;
// mixing two instants inside one operation would produce a signature the
// service rejects.
type signingTime struct {
	time.Time
	amzDate   string
	shortDate string
}

func newSigningTime(t time.Time) signingTime {
	utc := t.UTC()
	return signingTime{
		Time:      utc,
		amzDate:   utc.Format(TimeFormat),
		shortDate: utc.Format(ShortTimeFormat),
	}
}
