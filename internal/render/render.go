package render

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/limaJavier/eventgrid/pkg/model"
)

const (
	FormatText = "text"
	FormatJson = "json"
	FormatYaml = "yaml"
)

var Formats = []string{FormatText, FormatJson, FormatYaml}

const emptyCell = "-"

// Record is the serialized form of a single placement
type Record struct {
	Event string `json:"event" yaml:"event"`
	Time  uint64 `json:"time" yaml:"time"`
	Room  uint64 `json:"room" yaml:"room"`
}

// Write renders the grid in the given format
func Write(w io.Writer, grid *model.Grid, format string) error {
	switch format {
	case FormatText:
		return Text(w, grid)
	case FormatJson:
		return JSON(w, grid)
	case FormatYaml:
		return YAML(w, grid)
	default:
		return fmt.Errorf("unknown format %q: must be one of %v", format, Formats)
	}
}

// Text prints one row per time slot and one column per room
func Text(w io.Writer, grid *model.Grid) error {
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := append([]string{"time"}, lo.Times(int(grid.Rooms()), func(room int) string {
		return fmt.Sprintf("room %d", room)
	})...)
	fmt.Fprintln(writer, strings.Join(header, "\t"))

	for time, row := range grid.Rows() {
		cells := lo.Map(row, func(event string, _ int) string {
			return lo.Ternary(event == "", emptyCell, event)
		})
		fmt.Fprintln(writer, strings.Join(append([]string{fmt.Sprint(time)}, cells...), "\t"))
	}

	return writer.Flush()
}

// JSON prints the placements sorted by time and then by room
func JSON(w io.Writer, grid *model.Grid) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Records(grid))
}

func YAML(w io.Writer, grid *model.Grid) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(Records(grid)); err != nil {
		return err
	}
	return encoder.Close()
}

// Records lists the placements of the grid sorted by time and then by room
func Records(grid *model.Grid) []Record {
	records := lo.MapToSlice(grid.Placements(), func(event string, placement model.Placement) Record {
		return Record{Event: event, Time: uint64(placement.Time), Room: uint64(placement.Room)}
	})
	slices.SortFunc(records, func(a, b Record) int {
		return cmp.Or(cmp.Compare(a.Time, b.Time), cmp.Compare(a.Room, b.Room))
	})
	return records
}
