package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/FatCoding3/walton-machine/internal/ladder"
)

type Data struct {
	Stages  int                `json:"stages"`
	Voltage float64            `json:"voltage"`
	Steps   int                `json:"steps"`
	History []Snapshot         `json:"history"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
}

type Snapshot struct {
	Step       int       `json:"step"`
	SumVoltage float64   `json:"sum_voltage"`
	Upper      []float64 `json:"upper"`
	Lower      []float64 `json:"lower"`
}

func collect(l *ladder.Ladder, metrics map[string]float64) (*Data, error) {
	data := &Data{
		Stages:  l.Stages(),
		Voltage: l.Voltage(),
		Steps:   l.Len() - 1,
		History: make([]Snapshot, 0, l.Len()),
		Metrics: metrics,
	}
	for step := 0; step < l.Len(); step++ {
		s, err := l.Snapshot(step, false)
		if err != nil {
			return nil, err
		}
		data.History = append(data.History, Snapshot{
			Step:       step,
			SumVoltage: s.Sum(),
			Upper:      s.Upper,
			Lower:      s.Lower,
		})
	}
	return data, nil
}

// JSON writes the full history as indented JSON.
func JSON(w io.Writer, l *ladder.Ladder, metrics map[string]float64) error {
	data, err := collect(l, metrics)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// CSV writes one row per step: step, sum voltage, upper nodes, lower nodes.
func CSV(w io.Writer, l *ladder.Ladder) error {
	cw := csv.NewWriter(w)

	header := []string{"step", "sum"}
	for i := 0; i <= l.Stages(); i++ {
		header = append(header, fmt.Sprintf("u%d", i))
	}
	for i := 0; i < l.Stages(); i++ {
		header = append(header, fmt.Sprintf("l%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for step := 0; step < l.Len(); step++ {
		s, err := l.Snapshot(step, false)
		if err != nil {
			return err
		}
		row := []string{strconv.Itoa(step), strconv.FormatFloat(s.Sum(), 'f', 6, 64)}
		for _, v := range s.Upper {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		for _, v := range s.Lower {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
