// Command genpackets turns a server-generated packets.json report into a Go
// source file of named packet-id constants, one constant per packet name in
// a given phase and direction.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"
)

// report mirrors the shape of the vanilla server's generated packets.json:
// phase -> direction -> "namespace:packet_name" -> {protocol_id}.
type report map[string]map[string]map[string]struct {
	ProtocolID int32 `json:"protocol_id"`
}

type constant struct {
	Name string
	ID   int32
}

var tmpl = template.Must(template.New("packets").Parse(`// Code generated by genpackets from a server packets.json report. DO NOT EDIT.

package {{.Package}}

// {{.Phase}} ({{.Direction}}) packet ids.
const (
{{- range .Constants}}
	{{.Name}} = {{.ID}}
{{- end}}
)
`))

func main() {
	var reportPath, phase, direction, pkg, out string
	flag.StringVar(&reportPath, "report", "", "path to packets.json report")
	flag.StringVar(&phase, "phase", "play", "protocol phase (handshake, login, configuration, play)")
	flag.StringVar(&direction, "direction", "clientbound", "packet direction (clientbound, serverbound)")
	flag.StringVar(&pkg, "package", "session", "package name for the generated file")
	flag.StringVar(&out, "out", "", "output file path (default: stdout)")
	flag.Parse()

	if reportPath == "" {
		fmt.Fprintln(os.Stderr, "genpackets: -report is required")
		os.Exit(1)
	}

	f, err := os.Open(reportPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "genpackets: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var rep report
	if err := json.NewDecoder(f).Decode(&rep); err != nil {
		fmt.Fprintf(os.Stderr, "genpackets: decoding report: %v\n", err)
		os.Exit(1)
	}

	byDirection, ok := rep[phase]
	if !ok {
		fmt.Fprintf(os.Stderr, "genpackets: phase %q not present in report\n", phase)
		os.Exit(1)
	}
	pool, ok := byDirection[direction]
	if !ok {
		fmt.Fprintf(os.Stderr, "genpackets: direction %q not present for phase %q\n", direction, phase)
		os.Exit(1)
	}

	constants := make([]constant, 0, len(pool))
	for name, entry := range pool {
		if i := strings.IndexByte(name, ':'); i >= 0 {
			name = name[i+1:]
		}
		constants = append(constants, constant{
			Name: goConstName(phase, direction, name),
			ID:   entry.ProtocolID,
		})
	}
	sort.Slice(constants, func(i, j int) bool { return constants[i].ID < constants[j].ID })

	dest := os.Stdout
	if out != "" {
		w, err := os.Create(out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "genpackets: %v\n", err)
			os.Exit(1)
		}
		defer w.Close()
		dest = w
	}

	data := struct {
		Package   string
		Phase     string
		Direction string
		Constants []constant
	}{Package: pkg, Phase: phase, Direction: direction, Constants: constants}

	if err := tmpl.Execute(dest, data); err != nil {
		fmt.Fprintf(os.Stderr, "genpackets: %v\n", err)
		os.Exit(1)
	}
}

// goConstName builds an exported-looking but lower-camel constant name
// matching the style already hand-written in the session package, e.g.
// play + clientbound + "keep_alive" -> playKeepAlive.
func goConstName(phase, direction, snake string) string {
	var b strings.Builder
	b.WriteString(phase)
	for _, part := range strings.Split(snake, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
