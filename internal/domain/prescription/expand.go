package prescription

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/meditrack/meditrack/pkg/datekey"
)

var (
	ErrInvalidPrescription = errors.New("invalid prescription")
	ErrDuplicateKey        = errors.New("administration key already exists")
)

// maxIntervalHours caps the dose interval at ten years. Larger values are
// clinically meaningless and a finite float above ~2.5e6 hours would overflow
// the step conversion to time.Duration.
const maxIntervalHours = 24 * 365 * 10

// Expand turns a prescription into its full administration schedule. The
// cursor starts at the save moment and advances by intervalHours per dose,
// rolling over day, month and year boundaries through plain time arithmetic.
// It returns exactly totalDoses records with contiguous indices, or an error
// and no records at all.
func Expand(patient, medicine string, totalDoses int, intervalHours float64, start time.Time) ([]*Administration, error) {
	if totalDoses < 1 {
		return nil, fmt.Errorf("%w: total_doses must be a positive integer, got %d", ErrInvalidPrescription, totalDoses)
	}
	if intervalHours <= 0 || math.IsNaN(intervalHours) || math.IsInf(intervalHours, 0) {
		return nil, fmt.Errorf("%w: interval_hours must be a positive finite number, got %v", ErrInvalidPrescription, intervalHours)
	}
	if intervalHours > maxIntervalHours {
		return nil, fmt.Errorf("%w: interval_hours %v exceeds the maximum of %d", ErrInvalidPrescription, intervalHours, maxIntervalHours)
	}

	step := time.Duration(intervalHours * float64(time.Hour))
	records := make([]*Administration, 0, totalDoses)
	cursor := start
	for i := 0; i < totalDoses; i++ {
		records = append(records, &Administration{
			Patient:  patient,
			Medicine: medicine,
			Index:    i,
			DueDate:  datekey.Format(cursor),
			DueHour:  cursor.Hour(),
			Taken:    false,
		})
		cursor = cursor.Add(step)
	}
	return records, nil
}
