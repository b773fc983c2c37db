package trajcore

import (
	"encoding/csv"
	"fmt"
	"io"
)

// csvHeader matches the column order written by each record row.
var csvHeader = []string{"time", "pos_x", "pos_y", "pos_z", "vel_x", "vel_y", "vel_z", "mach", "flag"}

// ExportCSV writes every sample currently held in buf as a CSV row,
// oldest-first, with a fixed header naming each of the eight state
// components plus a flag column (always NONE for raw buffer samples).
func ExportCSV(w io.Writer, buf *TrajectoryBuffer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := 0; i < buf.Len(); i++ {
		s, code := buf.Get(i)
		if code != NoError {
			return fmt.Errorf("trajcore: export row %d: %s", i, code)
		}
		if err := cw.Write(sampleRow(s, FlagNone)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportRecordsCSV writes a slice of filtered TrajectoryRecords as CSV,
// including the flag column describing why each row was emitted.
func ExportRecordsCSV(w io.Writer, records []TrajectoryRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(sampleRow(r.Sample, r.Flag)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func sampleRow(s Sample, flag TrajFlag) []string {
	return []string{
		fmt.Sprintf("%.9f", s.Time),
		fmt.Sprintf("%.6f", s.PosX),
		fmt.Sprintf("%.6f", s.PosY),
		fmt.Sprintf("%.6f", s.PosZ),
		fmt.Sprintf("%.6f", s.VelX),
		fmt.Sprintf("%.6f", s.VelY),
		fmt.Sprintf("%.6f", s.VelZ),
		fmt.Sprintf("%.5f", s.Mach),
		flag.String(),
	}
}
