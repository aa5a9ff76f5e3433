package scene

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"starflow/internal/flowpath"
)

// Save writes the scene as a line-oriented text file:
//
//	STARFLOW
//	NODES:<n>
//	id,x,y,element,name
//	FLOWS:<n>
//	id,from,to,style,strength,element,color
//	PAN:x,y
//
// The node name is the last field and may contain commas.
func (s *Scene) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "STARFLOW\n")
	fmt.Fprintf(file, "NODES:%d\n", len(s.Nodes))
	for _, n := range s.Nodes {
		fmt.Fprintf(file, "%s,%s,%s,%s,%s\n",
			n.ID, formatCoord(n.Pos.X), formatCoord(n.Pos.Y), n.Element,
			strings.ReplaceAll(n.Name, "\n", " "))
	}

	fmt.Fprintf(file, "FLOWS:%d\n", len(s.Flows))
	for _, f := range s.Flows {
		fmt.Fprintf(file, "%s,%s,%s,%s,%d,%s,%s\n",
			f.ID, f.From, f.To, f.Style, f.Strength, f.Element, f.Color)
	}

	fmt.Fprintf(file, "PAN:%d,%d\n", s.PanX, s.PanY)
	return nil
}

// Load reads a scene saved by Save. Unknown styles fall back to line and
// out-of-range strengths are clamped, so an edited file still loads.
func Load(filename string) (*Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s := New()
	scanner := bufio.NewScanner(file)

	if !scanner.Scan() || scanner.Text() != "STARFLOW" {
		return nil, fmt.Errorf("invalid scene file format")
	}

	if !scanner.Scan() {
		return nil, fmt.Errorf("missing nodes header")
	}
	nodeCount, err := strconv.Atoi(strings.TrimPrefix(scanner.Text(), "NODES:"))
	if err != nil {
		return nil, fmt.Errorf("invalid node count: %v", err)
	}

	for i := 0; i < nodeCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("missing node data")
		}
		parts := strings.Split(scanner.Text(), ",")
		if len(parts) < 5 {
			return nil, fmt.Errorf("invalid node format")
		}
		x, _ := strconv.ParseFloat(parts[1], 64)
		y, _ := strconv.ParseFloat(parts[2], 64)
		s.Nodes = append(s.Nodes, Node{
			ID:      parts[0],
			Element: parts[3],
			Name:    strings.Join(parts[4:], ","),
			Pos:     flowpath.Pt(x, y),
		})
	}

	if !scanner.Scan() {
		return nil, fmt.Errorf("missing flows header")
	}
	flowCount, err := strconv.Atoi(strings.TrimPrefix(scanner.Text(), "FLOWS:"))
	if err != nil {
		return nil, fmt.Errorf("invalid flow count: %v", err)
	}

	for i := 0; i < flowCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("missing flow data")
		}
		parts := strings.Split(scanner.Text(), ",")
		if len(parts) < 7 {
			return nil, fmt.Errorf("invalid flow format")
		}
		strength, _ := strconv.Atoi(parts[4])
		s.Flows = append(s.Flows, Flow{
			ID:       parts[0],
			From:     parts[1],
			To:       parts[2],
			Style:    flowpath.ParseStyle(parts[3]),
			Strength: clampStrength(strength),
			Element:  parts[5],
			Color:    parts[6],
		})
	}

	// Pan line is optional for older files.
	if scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "PAN:") {
			fmt.Sscanf(strings.TrimPrefix(line, "PAN:"), "%d,%d", &s.PanX, &s.PanY)
		}
	}

	return s, scanner.Err()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
