package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/itchyny/gojq"

	"github.com/vardr/utmp/pkg/codec"
)

// entryJSON is the JSON form of one record, also the input shape for
// --query expressions.
type entryJSON struct {
	Type    string    `json:"type"`
	Pid     int32     `json:"pid"`
	Line    string    `json:"line,omitempty"`
	ID      string    `json:"id,omitempty"`
	User    string    `json:"user,omitempty"`
	Host    string    `json:"host,omitempty"`
	Exit    exitJSON  `json:"exit"`
	Session int64     `json:"session"`
	Time    time.Time `json:"time"`
	Addr    string    `json:"addr,omitempty"`
}

type exitJSON struct {
	Termination int16 `json:"termination"`
	Exit        int16 `json:"exit"`
}

func toJSON(e codec.Entry) entryJSON {
	var addr string
	if e.Addr != [4]int32{} {
		addr = e.IP().String()
	}
	return entryJSON{
		Type:    e.Type.String(),
		Pid:     e.Pid,
		Line:    e.LineString(),
		ID:      e.IDString(),
		User:    e.UserString(),
		Host:    e.HostString(),
		Exit:    exitJSON{Termination: e.Exit.Termination, Exit: e.Exit.Exit},
		Session: e.Session,
		Time:    e.Time(),
		Addr:    addr,
	}
}

// renderJSON writes one JSON object per entry, in order.
func renderJSON(w io.Writer, entries []codec.Entry) error {
	enc := json.NewEncoder(w)
	for _, e := range entries {
		if err := enc.Encode(toJSON(e)); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, entries []codec.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tPID\tLINE\tID\tUSER\tHOST\tTIME")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			e.Type,
			e.Pid,
			e.LineString(),
			e.IDString(),
			e.UserString(),
			e.HostString(),
			e.Time().Format(time.RFC3339))
	}
	return tw.Flush()
}

// renderQuery runs a gojq expression over the JSON form of each entry
// and writes every produced value as a JSON line.
func renderQuery(w io.Writer, entries []codec.Entry, expr string) error {
	query, err := gojq.Parse(expr)
	if err != nil {
		return fmt.Errorf("invalid query %q: %w", expr, err)
	}

	enc := json.NewEncoder(w)
	for _, e := range entries {
		data, err := json.Marshal(toJSON(e))
		if err != nil {
			return err
		}
		var input any
		if err := json.Unmarshal(data, &input); err != nil {
			return err
		}

		iter := query.Run(input)
		for {
			v, ok := iter.Next()
			if !ok {
				break
			}
			if qerr, isErr := v.(error); isErr {
				return fmt.Errorf("query failed: %w", qerr)
			}
			if err := enc.Encode(v); err != nil {
				return err
			}
		}
	}
	return nil
}
